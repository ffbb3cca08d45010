package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type GanttRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewGanttRepository(db *pgxpool.Pool, logger *zap.Logger) *GanttRepository {
	return &GanttRepository{db: db, logger: logger}
}

func (r *GanttRepository) Insert(ctx context.Context, t *model.GanttTask) (int64, error) {
	deps, err := json.Marshal(t.Dependencies)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO gantt_tasks (project_id, name, start_date, end_date, progress, assignee, dependencies)
        VALUES ($1, $2, $3, $4, $5, $6, $7)
        RETURNING id
    `
	var id int64
	err = r.db.QueryRow(ctx, query,
		t.ProjectID,
		t.Name,
		t.StartDate,
		t.EndDate,
		t.Progress,
		t.Assignee,
		deps,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert gantt task", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *GanttRepository) ListByProject(ctx context.Context, projectID int64) ([]model.GanttTask, error) {
	query := `
        SELECT id, project_id, name, start_date, end_date, progress, assignee, dependencies,
               created_at, updated_at
        FROM gantt_tasks
        WHERE project_id = $1
        ORDER BY start_date ASC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tasks := []model.GanttTask{}
	for rows.Next() {
		var t model.GanttTask
		var deps []byte
		err := rows.Scan(
			&t.ID,
			&t.ProjectID,
			&t.Name,
			&t.StartDate,
			&t.EndDate,
			&t.Progress,
			&t.Assignee,
			&deps,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(deps) > 0 {
			if err := json.Unmarshal(deps, &t.Dependencies); err != nil {
				return nil, err
			}
		}
		tasks = append(tasks, t)
	}
	return tasks, rows.Err()
}

func (r *GanttRepository) Update(ctx context.Context, t *model.GanttTask) error {
	deps, err := json.Marshal(t.Dependencies)
	if err != nil {
		return err
	}

	query := `
        UPDATE gantt_tasks
        SET name = $1, start_date = $2, end_date = $3, progress = $4, assignee = $5,
            dependencies = $6, updated_at = NOW()
        WHERE id = $7
    `
	_, err = r.db.Exec(ctx, query,
		t.Name,
		t.StartDate,
		t.EndDate,
		t.Progress,
		t.Assignee,
		deps,
		t.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update gantt task", zap.Int64("id", t.ID), zap.Error(err))
	}
	return err
}

func (r *GanttRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM gantt_tasks WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete gantt task", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
