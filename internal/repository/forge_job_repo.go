package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ForgeJobRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewForgeJobRepository(db *pgxpool.Pool, logger *zap.Logger) *ForgeJobRepository {
	return &ForgeJobRepository{db: db, logger: logger}
}

func (r *ForgeJobRepository) Insert(ctx context.Context, j *model.ForgeJob) (int64, error) {
	query := `
        INSERT INTO forge_jobs (project_id, name, machine, material, status, submitted_by)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		j.ProjectID,
		j.Name,
		j.Machine,
		j.Material,
		j.Status,
		j.SubmittedBy,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert forge job", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ForgeJobRepository) ListByProject(ctx context.Context, projectID int64) ([]model.ForgeJob, error) {
	query := `
        SELECT id, project_id, name, machine, material, status, submitted_by, created_at, updated_at
        FROM forge_jobs
        WHERE project_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	jobs := []model.ForgeJob{}
	for rows.Next() {
		var j model.ForgeJob
		err := rows.Scan(
			&j.ID,
			&j.ProjectID,
			&j.Name,
			&j.Machine,
			&j.Material,
			&j.Status,
			&j.SubmittedBy,
			&j.CreatedAt,
			&j.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		jobs = append(jobs, j)
	}
	return jobs, rows.Err()
}

func (r *ForgeJobRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
        UPDATE forge_jobs
        SET status = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update forge job status", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (r *ForgeJobRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM forge_jobs WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete forge job", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
