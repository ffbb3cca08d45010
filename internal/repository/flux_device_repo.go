package repository

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type FluxDeviceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewFluxDeviceRepository(db *pgxpool.Pool, logger *zap.Logger) *FluxDeviceRepository {
	return &FluxDeviceRepository{db: db, logger: logger}
}

func (r *FluxDeviceRepository) Insert(ctx context.Context, d *model.FluxDevice) (int64, error) {
	query := `
        INSERT INTO flux_devices (serial, model, firmware, status, project_id)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		d.Serial,
		d.Model,
		d.Firmware,
		d.Status,
		d.ProjectID,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert flux device", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *FluxDeviceRepository) List(ctx context.Context) ([]model.FluxDevice, error) {
	query := `
        SELECT id, serial, model, firmware, status, project_id, created_at, updated_at
        FROM flux_devices
        ORDER BY serial ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	devices := []model.FluxDevice{}
	for rows.Next() {
		var d model.FluxDevice
		err := rows.Scan(
			&d.ID,
			&d.Serial,
			&d.Model,
			&d.Firmware,
			&d.Status,
			&d.ProjectID,
			&d.CreatedAt,
			&d.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		devices = append(devices, d)
	}
	return devices, rows.Err()
}

// Assign moves a device onto a project; a nil projectID releases it.
func (r *FluxDeviceRepository) Assign(ctx context.Context, id int64, projectID *int64, status string) error {
	query := `
        UPDATE flux_devices
        SET project_id = $1, status = $2, updated_at = NOW()
        WHERE id = $3
    `
	_, err := r.db.Exec(ctx, query, projectID, status, id)
	if err != nil {
		r.logger.Error("Failed to assign flux device", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (r *FluxDeviceRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM flux_devices WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete flux device", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
