package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type TimeEntryRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewTimeEntryRepository(db *pgxpool.Pool, logger *zap.Logger) *TimeEntryRepository {
	return &TimeEntryRepository{db: db, logger: logger}
}

func (r *TimeEntryRepository) Insert(ctx context.Context, e *model.TimeEntry) (int64, error) {
	query := `
        INSERT INTO time_entries (user_id, project_id, date, hours, note, billable)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		e.UserID,
		e.ProjectID,
		e.Date,
		e.Hours,
		e.Note,
		e.Billable,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert time entry", zap.Error(err))
		return 0, err
	}
	return id, nil
}

// List filters by optional project and date range; nil filters are skipped.
func (r *TimeEntryRepository) List(ctx context.Context, projectID *int64, from, to *time.Time) ([]model.TimeEntry, error) {
	query := `
        SELECT id, user_id, project_id, date, hours, note, billable, created_at
        FROM time_entries
        WHERE ($1::bigint IS NULL OR project_id = $1)
        AND ($2::timestamptz IS NULL OR date >= $2)
        AND ($3::timestamptz IS NULL OR date <= $3)
        ORDER BY date DESC
    `
	rows, err := r.db.Query(ctx, query, projectID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	entries := []model.TimeEntry{}
	for rows.Next() {
		var e model.TimeEntry
		err := rows.Scan(
			&e.ID,
			&e.UserID,
			&e.ProjectID,
			&e.Date,
			&e.Hours,
			&e.Note,
			&e.Billable,
			&e.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}
