package model

import "time"

// ChangeOrder is an engineering change request (ecr) or order (eco) against
// a project's BOM.
type ChangeOrder struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Kind        string    `json:"kind"` // eco / ecr
	Title       string    `json:"title"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"` // draft / review / approved / implemented / rejected
	AffectedBOM []int64   `json:"affected_bom_ids"`
	RequestedBy string    `json:"requested_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

const (
	ChangeKindECO = "eco"
	ChangeKindECR = "ecr"
)
