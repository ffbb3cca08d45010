package model

import "time"

// BOMItem is one row of a project's bill of materials. ParentID builds the
// tree; nil means top level.
type BOMItem struct {
	ID         int64     `json:"id"`
	ProjectID  int64     `json:"project_id"`
	ParentID   *int64    `json:"parent_id"`
	PartNumber string    `json:"part_number"`
	Name       string    `json:"name"`
	Quantity   float64   `json:"quantity"`
	Unit       string    `json:"unit"`
	UnitCost   float64   `json:"unit_cost"`
	Status     string    `json:"status"` // draft / released / obsolete
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// BOMNode is a BOM item with its resolved children.
type BOMNode struct {
	BOMItem
	Children []*BOMNode `json:"children"`
}

// BuildBOMTree assembles the flat rows into trees, preserving input order
// within each level. Rows referencing a missing parent surface as roots
// rather than disappearing.
func BuildBOMTree(items []BOMItem) []*BOMNode {
	nodes := make(map[int64]*BOMNode, len(items))
	order := make([]*BOMNode, 0, len(items))
	for i := range items {
		n := &BOMNode{BOMItem: items[i]}
		nodes[items[i].ID] = n
		order = append(order, n)
	}

	var roots []*BOMNode
	for _, n := range order {
		if n.ParentID != nil {
			if parent, ok := nodes[*n.ParentID]; ok {
				parent.Children = append(parent.Children, n)
				continue
			}
		}
		roots = append(roots, n)
	}
	return roots
}
