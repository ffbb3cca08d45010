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

// EVMRefreshHandler recomputes a project's EVM snapshot on request. Refresh
// is idempotent, so no dedup guard: a duplicate refresh just recomputes the
// same numbers.
type EVMRefreshHandler struct {
	evm          *service.EVMService
	retryCounter *util.RetryCounter
	dlq          *mq.Publisher
	maxRetries   int64
	logger       *zap.Logger
}

func NewEVMRefreshHandler(
	evm *service.EVMService,
	retryCounter *util.RetryCounter,
	dlq *mq.Publisher,
	maxRetries int,
	logger *zap.Logger,
) *EVMRefreshHandler {
	return &EVMRefreshHandler{
		evm:          evm,
		retryCounter: retryCounter,
		dlq:          dlq,
		maxRetries:   int64(maxRetries),
		logger:       logger,
	}
}

const evmRefreshHandlerName = "evm_refresh"

func (h *EVMRefreshHandler) Handle(ctx context.Context, data json.RawMessage) error {
	start := time.Now()

	var payload event.EVMRefreshPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		h.logger.Error("Malformed evm.refresh payload", zap.Error(err))
		if dlqErr := h.dlq.PublishToDLQ(event.EVMRefresh, data, err.Error()); dlqErr != nil {
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

	trigger := payload.Trigger
	if trigger == "" {
		trigger = "event"
	}

	_, err := h.evm.Refresh(ctx, payload.ProjectID, trigger)
	metrics.RecordMQConsumeLatency(event.EVMRefresh, "worker.evm_refresh", time.Since(start))
	if err == nil {
		_ = h.retryCounter.Reset(ctx, util.FormatRetryKey(evmRefreshHandlerName, payload.ProjectID))
		return nil
	}

	retryable, errType := util.IsRetryableError(err)
	retryKey := util.FormatRetryKey(evmRefreshHandlerName, payload.ProjectID)
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
		return fmt.Errorf("refresh evm: %w", err)
	}

	logger.Error("Terminal failure, dead-lettering",
		zap.String("error_type", errType),
		zap.Int64("attempts", count),
		zap.Error(err),
	)
	if dlqErr := h.dlq.PublishToDLQ(event.EVMRefresh, data, err.Error()); dlqErr != nil {
		logger.Error("Failed to dead-letter payload", zap.Error(dlqErr))
	}
	_ = h.retryCounter.Reset(ctx, retryKey)
	return nil
}
