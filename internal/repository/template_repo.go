package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type TemplateRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTemplateRepository(db *pgxpool.Pool, logger *zap.Logger) *TemplateRepository {
	return &TemplateRepository{db: db, logger: logger}
}

func (r *TemplateRepository) Insert(ctx context.Context, t *model.Template) (int64, error) {
	query := `
        INSERT INTO project_templates (name, description, payload)
        VALUES ($1, $2, $3)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query, t.Name, t.Description, []byte(t.Payload)).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert template", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *TemplateRepository) FindByID(ctx context.Context, id int64) (*model.Template, error) {
	query := `
        SELECT id, name, description, payload, created_at, updated_at
        FROM project_templates
        WHERE id = $1
    `
	var t model.Template
	var payload []byte
	err := r.db.QueryRow(ctx, query, id).Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&payload,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	t.Payload = payload
	return &t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]model.Template, error) {
	query := `
        SELECT id, name, description, payload, created_at, updated_at
        FROM project_templates
        ORDER BY name ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	templates := []model.Template{}
	for rows.Next() {
		var t model.Template
		var payload []byte
		err := rows.Scan(
			&t.ID,
			&t.Name,
			&t.Description,
			&payload,
			&t.CreatedAt,
			&t.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		t.Payload = payload
		templates = append(templates, t)
	}
	return templates, rows.Err()
}

func (r *TemplateRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM project_templates WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete template", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
