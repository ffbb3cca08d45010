package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ModuleInstallRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewModuleInstallRepository(db *pgxpool.Pool, logger *zap.Logger) *ModuleInstallRepository {
	return &ModuleInstallRepository{db: db, logger: logger}
}

// Upsert flips the install state for a module, creating the row on first use.
func (r *ModuleInstallRepository) Upsert(ctx context.Context, moduleID string, installed bool, installedBy string) error {
	query := `
        INSERT INTO module_installs (module_id, installed, installed_by, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (module_id)
        DO UPDATE SET installed = $2, installed_by = $3, updated_at = NOW()
    `
	_, err := r.db.Exec(ctx, query, moduleID, installed, installedBy)
	if err != nil {
		r.logger.Error("Failed to upsert module install", zap.String("module_id", moduleID), zap.Error(err))
	}
	return err
}

func (r *ModuleInstallRepository) Get(ctx context.Context, moduleID string) (*model.ModuleInstall, error) {
	query := `
        SELECT id, module_id, installed, installed_by, updated_at
        FROM module_installs
        WHERE module_id = $1
    `
	var m model.ModuleInstall
	err := r.db.QueryRow(ctx, query, moduleID).Scan(
		&m.ID,
		&m.ModuleID,
		&m.Installed,
		&m.InstalledBy,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *ModuleInstallRepository) List(ctx context.Context) ([]model.ModuleInstall, error) {
	query := `
        SELECT id, module_id, installed, installed_by, updated_at
        FROM module_installs
        ORDER BY module_id ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	installs := []model.ModuleInstall{}
	for rows.Next() {
		var m model.ModuleInstall
		err := rows.Scan(&m.ID, &m.ModuleID, &m.Installed, &m.InstalledBy, &m.UpdatedAt)
		if err != nil {
			return nil, err
		}
		installs = append(installs, m)
	}
	return installs, rows.Err()
}
