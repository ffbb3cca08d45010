package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/event"
	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/pkg/outbox"
)

// ReminderService manages reminders and the worker's due scan. Due reminders
// are published through the outbox; the reminder.due consumer dispatches the
// notification and marks the row sent. The scan can enqueue a reminder twice
// if it runs before the consumer catches up; the consumer's dedup guard
// absorbs that.
type ReminderService struct {
	db         *pgxpool.Pool
	reminders  *repository.ReminderRepository
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewReminderService(
	db *pgxpool.Pool,
	reminders *repository.ReminderRepository,
	outboxRepo *outbox.Repository,
	logger *zap.Logger,
) *ReminderService {
	return &ReminderService{
		db:         db,
		reminders:  reminders,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

func (s *ReminderService) Create(ctx context.Context, r *model.Reminder) (int64, error) {
	if r.Channel == "" {
		r.Channel = "email"
	}
	return s.reminders.Insert(ctx, r)
}

func (s *ReminderService) List(ctx context.Context) ([]model.Reminder, error) {
	return s.reminders.List(ctx)
}

func (s *ReminderService) Delete(ctx context.Context, id int64) error {
	return s.reminders.Delete(ctx, id)
}

// MarkSent is called by the reminder.due consumer after dispatch.
func (s *ReminderService) MarkSent(ctx context.Context, id int64, at time.Time) error {
	return s.reminders.MarkSent(ctx, id, at)
}

// EnqueueDue finds unsent reminders past their due time and writes a
// reminder.due outbox event for each. Returns how many were enqueued.
func (s *ReminderService) EnqueueDue(ctx context.Context, now time.Time, limit int) (int, error) {
	due, err := s.reminders.FindDue(ctx, now, limit)
	if err != nil {
		return 0, err
	}
	if len(due) == 0 {
		return 0, nil
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	for i := range due {
		r := due[i]
		payload := event.ReminderDuePayload{
			ReminderID: r.ID,
			Title:      r.Title,
			Channel:    r.Channel,
			DueAt:      r.DueAt,
		}
		if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "reminder", &r.ID, event.ReminderDue, payload); err != nil {
			return 0, err
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit reminder scan: %w", err)
	}

	s.logger.Info("Due reminders enqueued", zap.Int("count", len(due)))
	return len(due), nil
}
