package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type RAIDRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewRAIDRepository(db *pgxpool.Pool, logger *zap.Logger) *RAIDRepository {
	return &RAIDRepository{db: db, logger: logger}
}

func (r *RAIDRepository) Insert(ctx context.Context, e *model.RAIDEntry) (int64, error) {
	query := `
        INSERT INTO raid_entries (project_id, type, title, description, status, owner,
                                  probability, impact, score, band)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		e.ProjectID,
		e.Type,
		e.Title,
		e.Description,
		e.Status,
		e.Owner,
		e.Probability,
		e.Impact,
		e.Score,
		e.Band,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert RAID entry", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *RAIDRepository) FindByID(ctx context.Context, id int64) (*model.RAIDEntry, error) {
	query := `
        SELECT id, project_id, type, title, description, status, owner,
               probability, impact, score, band, created_at, updated_at
        FROM raid_entries
        WHERE id = $1
    `
	var e model.RAIDEntry
	err := r.db.QueryRow(ctx, query, id).Scan(
		&e.ID,
		&e.ProjectID,
		&e.Type,
		&e.Title,
		&e.Description,
		&e.Status,
		&e.Owner,
		&e.Probability,
		&e.Impact,
		&e.Score,
		&e.Band,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

func (r *RAIDRepository) ListByProject(ctx context.Context, projectID int64) ([]model.RAIDEntry, error) {
	query := `
        SELECT id, project_id, type, title, description, status, owner,
               probability, impact, score, band, created_at, updated_at
        FROM raid_entries
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.RAIDEntry{}
	for rows.Next() {
		var e model.RAIDEntry
		err := rows.Scan(
			&e.ID,
			&e.ProjectID,
			&e.Type,
			&e.Title,
			&e.Description,
			&e.Status,
			&e.Owner,
			&e.Probability,
			&e.Impact,
			&e.Score,
			&e.Band,
			&e.CreatedAt,
			&e.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

func (r *RAIDRepository) Update(ctx context.Context, e *model.RAIDEntry) error {
	query := `
        UPDATE raid_entries
        SET type = $1, title = $2, description = $3, status = $4, owner = $5,
            probability = $6, impact = $7, score = $8, band = $9, updated_at = NOW()
        WHERE id = $10
    `
	_, err := r.db.Exec(ctx, query,
		e.Type,
		e.Title,
		e.Description,
		e.Status,
		e.Owner,
		e.Probability,
		e.Impact,
		e.Score,
		e.Band,
		e.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update RAID entry", zap.Int64("id", e.ID), zap.Error(err))
	}
	return err
}

func (r *RAIDRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM raid_entries WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete RAID entry", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
