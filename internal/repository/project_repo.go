package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ProjectRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewProjectRepository(db *pgxpool.Pool, logger *zap.Logger) *ProjectRepository {
	return &ProjectRepository{db: db, logger: logger}
}

// InsertTx inserts a project inside the caller's transaction so the outbox
// event can ride along.
func (r *ProjectRepository) InsertTx(ctx context.Context, tx pgx.Tx, p *model.Project) (int64, error) {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO projects (name, description, status, budget, spent, completion_percentage,
                              start_date, deadline, manager, tags)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING id
    `
	var id int64
	err = tx.QueryRow(ctx, query,
		p.Name,
		p.Description,
		p.Status,
		p.Budget,
		p.Spent,
		p.CompletionPercentage,
		p.StartDate,
		p.Deadline,
		p.Manager,
		tags,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert project", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Project inserted", zap.Int64("id", id), zap.String("name", p.Name))
	return id, nil
}

func (r *ProjectRepository) FindByID(ctx context.Context, id int64) (*model.Project, error) {
	query := `
        SELECT id, name, description, status, budget, spent, completion_percentage,
               start_date, deadline, manager, tags, created_at, updated_at
        FROM projects
        WHERE id = $1
    `
	var p model.Project
	var tags []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&p.ID,
		&p.Name,
		&p.Description,
		&p.Status,
		&p.Budget,
		&p.Spent,
		&p.CompletionPercentage,
		&p.StartDate,
		&p.Deadline,
		&p.Manager,
		&tags,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(tags) > 0 {
		if err := json.Unmarshal(tags, &p.Tags); err != nil {
			return nil, err
		}
	}
	return &p, nil
}

func (r *ProjectRepository) List(ctx context.Context) ([]model.Project, error) {
	query := `
        SELECT id, name, description, status, budget, spent, completion_percentage,
               start_date, deadline, manager, tags, created_at, updated_at
        FROM projects
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	projects := []model.Project{}
	for rows.Next() {
		var p model.Project
		var tags []byte
		err := rows.Scan(
			&p.ID,
			&p.Name,
			&p.Description,
			&p.Status,
			&p.Budget,
			&p.Spent,
			&p.CompletionPercentage,
			&p.StartDate,
			&p.Deadline,
			&p.Manager,
			&tags,
			&p.CreatedAt,
			&p.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(tags) > 0 {
			if err := json.Unmarshal(tags, &p.Tags); err != nil {
				return nil, err
			}
		}
		projects = append(projects, p)
	}
	return projects, rows.Err()
}

// UpdateTx updates a project inside the caller's transaction.
func (r *ProjectRepository) UpdateTx(ctx context.Context, tx pgx.Tx, p *model.Project) error {
	tags, err := json.Marshal(p.Tags)
	if err != nil {
		return err
	}

	query := `
        UPDATE projects
        SET name = $1, description = $2, status = $3, budget = $4, spent = $5,
            completion_percentage = $6, start_date = $7, deadline = $8,
            manager = $9, tags = $10, updated_at = NOW()
        WHERE id = $11
    `
	_, err = tx.Exec(ctx, query,
		p.Name,
		p.Description,
		p.Status,
		p.Budget,
		p.Spent,
		p.CompletionPercentage,
		p.StartDate,
		p.Deadline,
		p.Manager,
		tags,
		p.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update project", zap.Int64("id", p.ID), zap.Error(err))
	}
	return err
}

func (r *ProjectRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM projects WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete project", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
