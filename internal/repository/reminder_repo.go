package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type ReminderRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewReminderRepository(db *pgxpool.Pool, logger *zap.Logger) *ReminderRepository {
	return &ReminderRepository{db: db, logger: logger}
}

func (r *ReminderRepository) Insert(ctx context.Context, rem *model.Reminder) (int64, error) {
	query := `
        INSERT INTO reminders (project_id, title, channel, due_at, sent)
        VALUES ($1, $2, $3, $4, false)
        RETURNING id
    `
	var id int64
	err := r.db.QueryRow(ctx, query,
		rem.ProjectID,
		rem.Title,
		rem.Channel,
		rem.DueAt,
	).Scan(&id)

	if err != nil {
		r.logger.Error("Failed to insert reminder", zap.Error(err))
		return 0, err
	}
	return id, nil
}

func (r *ReminderRepository) List(ctx context.Context) ([]model.Reminder, error) {
	query := `
        SELECT id, project_id, title, channel, due_at, sent, sent_at, created_at
        FROM reminders
        ORDER BY due_at ASC
    `
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []model.Reminder{}
	for rows.Next() {
		var rem model.Reminder
		err := rows.Scan(
			&rem.ID,
			&rem.ProjectID,
			&rem.Title,
			&rem.Channel,
			&rem.DueAt,
			&rem.Sent,
			&rem.SentAt,
			&rem.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

// FindDue returns unsent reminders whose due time has passed.
func (r *ReminderRepository) FindDue(ctx context.Context, now time.Time, limit int) ([]model.Reminder, error) {
	query := `
        SELECT id, project_id, title, channel, due_at, sent, sent_at, created_at
        FROM reminders
        WHERE sent = false AND due_at <= $1
        ORDER BY due_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	reminders := []model.Reminder{}
	for rows.Next() {
		var rem model.Reminder
		err := rows.Scan(
			&rem.ID,
			&rem.ProjectID,
			&rem.Title,
			&rem.Channel,
			&rem.DueAt,
			&rem.Sent,
			&rem.SentAt,
			&rem.CreatedAt,
		)
		if err != nil {
			return nil, err
		}
		reminders = append(reminders, rem)
	}
	return reminders, rows.Err()
}

func (r *ReminderRepository) MarkSent(ctx context.Context, id int64, at time.Time) error {
	query := `
        UPDATE reminders
        SET sent = true, sent_at = $1
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, at, id)
	if err != nil {
		r.logger.Error("Failed to mark reminder sent", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (r *ReminderRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.db.Exec(ctx, `DELETE FROM reminders WHERE id = $1`, id)
	if err != nil {
		r.logger.Error("Failed to delete reminder", zap.Int64("id", id), zap.Error(err))
	}
	return err
}
