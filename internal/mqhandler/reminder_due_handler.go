package mqhandler

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/event"
	"forgeboard/internal/service"
	"forgeboard/pkg/metrics"
	"forgeboard/pkg/mq"
	"forgeboard/pkg/util"
)

// ReminderDueHandler dispatches a due reminder and marks it sent. Dedup
// matters here: the scanner can enqueue the same reminder twice before the
// sent flag lands.
type ReminderDueHandler struct {
	reminders    *service.ReminderService
	deduper      *util.Deduper
	retryCounter *util.RetryCounter
	dlq          *mq.Publisher
	maxRetries   int64
	logger       *zap.Logger
}

func NewReminderDueHandler(
	reminders *service.ReminderService,
	deduper *util.Deduper,
	retryCounter *util.RetryCounter,
	dlq *mq.Publisher,
	maxRetries int,
	logger *zap.Logger,
) *ReminderDueHandler {
	return &ReminderDueHandler{
		reminders:    reminders,
		deduper:      deduper,
		retryCounter: retryCounter,
		dlq:          dlq,
		maxRetries:   int64(maxRetries),
		logger:       logger,
	}
}

const reminderDueHandlerName = "reminder_due"

func (h *ReminderDueHandler) Handle(ctx context.Context, data json.RawMessage) error {
	start := time.Now()

	var payload event.ReminderDuePayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Error("Malformed reminder.due payload", zap.Error(err))
		if dlqErr := h.dlq.PublishToDLQ(event.ReminderDue, data, err.Error()); dlqErr != nil {
			h.logger.Error("Failed to dead-letter payload", zap.Error(dlqErr))
		}
		return nil
	}

	logger := h.logger.With(
		zap.Int64("reminder_id", payload.ReminderID),
		zap.String("channel", payload.Channel),
	)

	if !h.deduper.AcquireOnce(ctx, reminderDueHandlerName, payload.ReminderID) {
		return nil
	}

	err := h.dispatch(ctx, logger, payload)
	metrics.RecordMQConsumeLatency(event.ReminderDue, "worker.reminder_due", time.Since(start))
	if err == nil {
		metrics.IncrementRemindersDispatched("ok")
		_ = h.retryCounter.Reset(ctx, util.FormatRetryKey(reminderDueHandlerName, payload.ReminderID))
		return nil
	}

	retryable, errType := util.IsRetryableError(err)
	retryKey := util.FormatRetryKey(reminderDueHandlerName, payload.ReminderID)
	count, countErr := h.retryCounter.IncrementAndGet(ctx, retryKey)
	if countErr != nil {
		logger.Warn("Retry counter unavailable", zap.Error(countErr))
	}

	if util.ShouldRetry(count, h.maxRetries, retryable) {
		logger.Warn("Retryable failure, requeueing",
			zap.String("error_type", errType),
			zap.Int64("attempt", count),
			zap.Error(err),
		)
		h.deduper.Release(ctx, reminderDueHandlerName, payload.ReminderID)
		return fmt.Errorf("dispatch reminder: %w", err)
	}

	metrics.IncrementRemindersDispatched("failed")
	logger.Error("Terminal failure, dead-lettering",
		zap.String("error_type", errType),
		zap.Int64("attempts", count),
		zap.Error(err),
	)
	if dlqErr := h.dlq.PublishToDLQ(event.ReminderDue, data, err.Error()); dlqErr != nil {
		logger.Error("Failed to dead-letter payload", zap.Error(dlqErr))
	}
	_ = h.retryCounter.Reset(ctx, retryKey)
	return nil
}

// dispatch delivers the notification and flips the sent flag. Delivery here
// is a structured log line per channel; swapping in SMTP or a webhook client
// only changes this method.
func (h *ReminderDueHandler) dispatch(ctx context.Context, logger *zap.Logger, payload event.ReminderDuePayload) error {
	logger.Info("Reminder dispatched",
		zap.String("title", payload.Title),
		zap.Time("due_at", payload.DueAt),
	)
	return h.reminders.MarkSent(ctx, payload.ReminderID, time.Now())
}
