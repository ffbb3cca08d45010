package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ResourceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewResourceRepository(db *pgxpool.Pool, logger *zap.Logger) *ResourceRepository {
	return &ResourceRepository{db: db, logger: logger}
}

func (r *ResourceRepository) Insert(ctx context.Context, res *model.Resource) (int64, error) {
	workingDays, exceptions, assignments, err := marshalResourceFields(res)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO resources (name, role, working_days, standard_daily_hours, exceptions, assignments)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int64
	err = r.db.QueryRow(ctx, query,
		res.Name,
		res.Role,
		workingDays,
		res.StandardDailyHours,
		exceptions,
		assignments,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert resource", zap.Error(err))
		return 0, err
	}

	r.logger.Info("Resource inserted", zap.Int64("id", id), zap.String("name", res.Name))
	return id, nil
}

func (r *ResourceRepository) FindByID(ctx context.Context, id int64) (*model.Resource, error) {
	query := `
        SELECT id, name, role, working_days, standard_daily_hours, exceptions, assignments,
               created_at, updated_at
        FROM resources
        WHERE id = $1
    `
	row := r.db.QueryRow(ctx, query, id)
	return scanResource(row)
}

func (r *ResourceRepository) List(ctx context.Context) ([]model.Resource, error) {
	query := `
        SELECT id, name, role, working_days, standard_daily_hours, exceptions, assignments,
               created_at, updated_at
        FROM resources
        ORDER BY id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	resources := []model.Resource{}
	for rows.Next() {
		res, err := scanResource(rows)
		if err != nil {
			return nil, err
		}
		resources = append(resources, *res)
	}
	return resources, rows.Err()
}

func (r *ResourceRepository) Update(ctx context.Context, res *model.Resource) error {
	workingDays, exceptions, assignments, err := marshalResourceFields(res)
	if err != nil {
		return err
	}

	query := `
        UPDATE resources
        SET name = $1, role = $2, working_days = $3, standard_daily_hours = $4,
            exceptions = $5, assignments = $6, updated_at = NOW()
        WHERE id = $7
    `
	_, err = r.db.Exec(ctx, query,
		res.Name,
		res.Role,
		workingDays,
		res.StandardDailyHours,
		exceptions,
		assignments,
		res.ID,
	)
	if err != nil {
		r.logger.Error("Failed to update resource", zap.Int64("id", res.ID), zap.Error(err))
	}
	return err
}

func (r *ResourceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM resources WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete resource", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func marshalResourceFields(res *model.Resource) (workingDays, exceptions, assignments []byte, err error) {
	if workingDays, err = json.Marshal(res.WorkingDays); err != nil {
		return nil, nil, nil, err
	}
	if exceptions, err = json.Marshal(res.Exceptions); err != nil {
		return nil, nil, nil, err
	}
	if assignments, err = json.Marshal(res.Assignments); err != nil {
		return nil, nil, nil, err
	}
	return workingDays, exceptions, assignments, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanResource(row rowScanner) (*model.Resource, error) {
	var res model.Resource
	var workingDays, exceptions, assignments []byte
	err := row.Scan(
		&res.ID,
		&res.Name,
		&res.Role,
		&workingDays,
		&res.StandardDailyHours,
		&exceptions,
		&assignments,
		&res.CreatedAt,
		&res.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if len(workingDays) > 0 {
		if err := json.Unmarshal(workingDays, &res.WorkingDays); err != nil {
			return nil, err
		}
	}
	if len(exceptions) > 0 {
		if err := json.Unmarshal(exceptions, &res.Exceptions); err != nil {
			return nil, err
		}
	}
	if len(assignments) > 0 {
		if err := json.Unmarshal(assignments, &res.Assignments); err != nil {
			return nil, err
		}
	}
	return &res, nil
}
