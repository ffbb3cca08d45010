package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type BOMRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewBOMRepository(db *pgxpool.Pool, logger *zap.Logger) *BOMRepository {
	return &BOMRepository{db: db, logger: logger}
}

func (r *BOMRepository) Insert(ctx context.Context, item *model.BOMItem) (int64, error) {
	query := `
        INSERT INTO bom_items (project_id, parent_id, part_number, name, quantity, unit, unit_cost, status)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		item.ProjectID,
		item.ParentID,
		item.PartNumber,
		item.Name,
		item.Quantity,
		item.Unit,
		item.UnitCost,
		item.Status,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert BOM item", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *BOMRepository) FindByID(ctx context.Context, id int64) (*model.BOMItem, error) {
	query := `
        SELECT id, project_id, parent_id, part_number, name, quantity, unit, unit_cost, status,
               created_at, updated_at
        FROM bom_items
        WHERE id = $1
    `
	var item model.BOMItem
	err := r.db.QueryRow(ctx, query, id).Scan(
		&item.ID,
		&item.ProjectID,
		&item.ParentID,
		&item.PartNumber,
		&item.Name,
		&item.Quantity,
		&item.Unit,
		&item.UnitCost,
		&item.Status,
		&item.CreatedAt,
		&item.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// ListByProject returns the flat rows; the tree is assembled in memory.
func (r *BOMRepository) ListByProject(ctx context.Context, projectID int64) ([]model.BOMItem, error) {
	query := `
        SELECT id, project_id, parent_id, part_number, name, quantity, unit, unit_cost, status,
               created_at, updated_at
        FROM bom_items
        WHERE project_id = $1
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.BOMItem{}
	for rows.Next() {
		var item model.BOMItem
		err := rows.Scan(
			&item.ID,
			&item.ProjectID,
			&item.ParentID,
			&item.PartNumber,
			&item.Name,
			&item.Quantity,
			&item.Unit,
			&item.UnitCost,
			&item.Status,
			&item.CreatedAt,
			&item.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *BOMRepository) Update(ctx context.Context, item *model.BOMItem) error {
	query := `
        UPDATE bom_items
        SET parent_id = $1, part_number = $2, name = $3, quantity = $4, unit = $5,
            unit_cost = $6, status = $7, updated_at = NOW()
        WHERE id = $8
    `
	_, err := r.db.Exec(ctx, query,
		item.ParentID,
		item.PartNumber,
		item.Name,
		item.Quantity,
		item.Unit,
		item.UnitCost,
		item.Status,
		item.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update BOM item", zap.Int64("id", item.ID), zap.Error(err))
	}
	return err
}

func (r *BOMRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM bom_items WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete BOM item", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
