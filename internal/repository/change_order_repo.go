package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ChangeOrderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewChangeOrderRepository(db *pgxpool.Pool, logger *zap.Logger) *ChangeOrderRepository {
	return &ChangeOrderRepository{db: db, logger: logger}
}

func (r *ChangeOrderRepository) Insert(ctx context.Context, c *model.ChangeOrder) (int64, error) {
	affected, err := json.Marshal(c.AffectedBOM)
	if err != nil {
		return 0, err
	}
	query := `
        INSERT INTO change_orders (project_id, kind, title, reason, status, affected_bom, requested_by)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int64
	err = r.db.QueryRow(ctx, query,
		c.ProjectID, c.Kind, c.Title, c.Reason, c.Status, affected, c.RequestedBy,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert change order", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ChangeOrderRepository) FindByID(ctx context.Context, id int64) (*model.ChangeOrder, error) {
	query := `
        SELECT id, project_id, kind, title, reason, status, affected_bom, requested_by, created_at, updated_at
        FROM change_orders
        WHERE id = $1
    `
	return scanChangeOrder(r.db.QueryRow(ctx, query, id))
}

func (r *ChangeOrderRepository) ListByProject(ctx context.Context, projectID int64) ([]model.ChangeOrder, error) {
	query := `
        SELECT id, project_id, kind, title, reason, status, affected_bom, requested_by, created_at, updated_at
        FROM change_orders
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	orders := []model.ChangeOrder{}
	for rows.Next() {
		c, err := scanChangeOrder(rows)
		if err != nil {
			return nil, err
		}
		orders = append(orders, *c)
	}
	return orders, rows.Err()
}

func (r *ChangeOrderRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE change_orders SET status = $1, updated_at = NOW() WHERE id = $2`
	tag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update change order status", zap.Int64("id", id), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *ChangeOrderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM change_orders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete change order", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func scanChangeOrder(row rowScanner) (*model.ChangeOrder, error) {
	var c model.ChangeOrder
	var affected []byte
	err := row.Scan(
		&c.ID,
		&c.ProjectID,
		&c.Kind,
		&c.Title,
		&c.Reason,
		&c.Status,
		&affected,
		&c.RequestedBy,
		&c.CreatedAt,
		&c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(affected) > 0 {
		if err := json.Unmarshal(affected, &c.AffectedBOM); err != nil {
			return nil, err
		}
	}
	return &c, nil
}
