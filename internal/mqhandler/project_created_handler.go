// Package mqhandler holds the worker's event consumers. Each handler is
// dedup-guarded through redis, classifies failures into retryable and
// terminal, and dead-letters poison messages after the retry budget runs out.
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
	"forgeboard/pkg/trace"
	"forgeboard/pkg/util"
)

// ProjectCreatedHandler seeds the EVM baseline when a project is created.
type ProjectCreatedHandler struct {
	evm          *service.EVMService
	deduper      *util.Deduper
	retryCounter *util.RetryCounter
	dlq          *mq.Publisher
	maxRetries   int64
	logger       *zap.Logger
}

func NewProjectCreatedHandler(
	evm *service.EVMService,
	deduper *util.Deduper,
	retryCounter *util.RetryCounter,
	dlq *mq.Publisher,
	maxRetries int,
	logger *zap.Logger,
) *ProjectCreatedHandler {
	return &ProjectCreatedHandler{
		evm:          evm,
		deduper:      deduper,
		retryCounter: retryCounter,
		dlq:          dlq,
		maxRetries:   int64(maxRetries),
		logger:       logger,
	}
}

const projectCreatedHandlerName = "project_created"

func (h *ProjectCreatedHandler) Handle(ctx context.Context, data json.RawMessage) error {
	start := time.Now()

	var payload event.ProjectCreatedPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		// Never valid on retry; drop it to the DLQ.
		h.logger.Error("Malformed project.created payload", zap.Error(err))
		if dlqErr := h.dlq.PublishToDLQ(event.ProjectCreated, data, err.Error()); dlqErr != nil {
			h.logger.Error("Failed to dead-letter payload", zap.Error(dlqErr))
		}
		return nil
	}

	if payload.TraceID != "" {
		ctx = trace.WithContext(ctx, payload.TraceID)
	}
	logger := h.logger.With(
		zap.Int64("project_id", payload.ProjectID),
		zap.String("trace_id", payload.TraceID),
	)

	if !h.deduper.AcquireOnce(ctx, projectCreatedHandlerName, payload.ProjectID) {
		return nil
	}

	err := h.evm.SeedBaseline(ctx, payload.ProjectID, payload.Budget)
	metrics.RecordMQConsumeLatency(event.ProjectCreated, "worker.project_created", time.Since(start))
	if err == nil {
		_ = h.retryCounter.Reset(ctx, util.FormatRetryKey(projectCreatedHandlerName, payload.ProjectID))
		logger.Info("EVM baseline seeded")
		return nil
	}

	return h.classify(ctx, logger, payload.ProjectID, data, err)
}

func (h *ProjectCreatedHandler) classify(ctx context.Context, logger *zap.Logger, id int64, data json.RawMessage, err error) error {
	retryable, errType := util.IsRetryableError(err)

	retryKey := util.FormatRetryKey(projectCreatedHandlerName, id)
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
		h.deduper.Release(ctx, projectCreatedHandlerName, id)
		return fmt.Errorf("seed evm baseline: %w", err)
	}

	logger.Error("Terminal failure, dead-lettering",
		zap.String("error_type", errType),
		zap.Int64("attempts", count),
		zap.Error(err),
	)
	if dlqErr := h.dlq.PublishToDLQ(event.ProjectCreated, data, err.Error()); dlqErr != nil {
		logger.Error("Failed to dead-letter payload", zap.Error(dlqErr))
	}
	_ = h.retryCounter.Reset(ctx, retryKey)
	return nil
}
