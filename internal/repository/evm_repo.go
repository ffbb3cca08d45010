package repository

import (
	"context"
	"encoding/json"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/analytics"
	"forgeboard/internal/model"
)

type EVMRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewEVMRepository(db *pgxpool.Pool, logger *zap.Logger) *EVMRepository {
	return &EVMRepository{db: db, logger: logger}
}

// Insert seeds the one-per-project EVM record.
func (r *EVMRepository) Insert(ctx context.Context, e *model.ProjectEVM) (int64, error) {
	metricsJSON, err := json.Marshal(e.Current)
	if err != nil {
		return 0, err
	}
	historyJSON, err := json.Marshal(e.History)
	if err != nil {
		return 0, err
	}

	query := `
        INSERT INTO project_evm (project_id, budget_at_completion, current_metrics, status,
                                 calculated_at, history)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int64
	err = r.db.QueryRow(ctx, query,
		e.ProjectID,
		e.BudgetAtCompletion,
		metricsJSON,
		string(e.Status),
		e.CalculatedAt,
		historyJSON,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert EVM record",
			zap.Int64("project_id", e.ProjectID),
			zap.Error(err),
		)
		return 0, err
	}

	r.logger.Info("EVM record seeded",
		zap.Int64("id", id),
		zap.Int64("project_id", e.ProjectID),
	)
	return id, nil
}

func (r *EVMRepository) FindByProjectID(ctx context.Context, projectID int64) (*model.ProjectEVM, error) {
	query := `
        SELECT id, project_id, budget_at_completion, current_metrics, status,
               calculated_at, history, created_at, updated_at
        FROM project_evm
        WHERE project_id = $1
    `
	var e model.ProjectEVM
	var metricsJSON, historyJSON []byte
	var status string
	err := r.db.QueryRow(ctx, query, projectID).Scan(
		&e.ID,
		&e.ProjectID,
		&e.BudgetAtCompletion,
		&metricsJSON,
		&status,
		&e.CalculatedAt,
		&historyJSON,
		&e.CreatedAt,
		&e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	e.Status = analytics.HealthStatus(status)
	if err := json.Unmarshal(metricsJSON, &e.Current); err != nil {
		return nil, err
	}
	if len(historyJSON) > 0 {
		if err := json.Unmarshal(historyJSON, &e.History); err != nil {
			return nil, err
		}
	}
	return &e, nil
}

// Save replaces the snapshot, status and history of an existing record.
func (r *EVMRepository) Save(ctx context.Context, e *model.ProjectEVM) error {
	metricsJSON, err := json.Marshal(e.Current)
	if err != nil {
		return err
	}
	historyJSON, err := json.Marshal(e.History)
	if err != nil {
		return err
	}

	query := `
        UPDATE project_evm
        SET budget_at_completion = $1, current_metrics = $2, status = $3,
            calculated_at = $4, history = $5, updated_at = NOW()
        WHERE project_id = $6
    `
	_, err = r.db.Exec(ctx, query,
		e.BudgetAtCompletion,
		metricsJSON,
		string(e.Status),
		e.CalculatedAt,
		historyJSON,
		e.ProjectID,
	)
	if err != nil {
		r.logger.Error("Failed to save EVM snapshot",
			zap.Int64("project_id", e.ProjectID),
			zap.Error(err),
		)
	}
	return err
}
