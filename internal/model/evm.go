package model

import (
	"time"

	"forgeboard/internal/analytics"
)

// ProjectEVM is the one-per-project earned value record. The snapshot is
// refreshed only on an explicit trigger, never implicitly when the project's
// spent/completion fields change; CalculatedAt exposes the staleness.
type ProjectEVM struct {
	ID                 int64                  `json:"id"`
	ProjectID          int64                  `json:"project_id"`
	BudgetAtCompletion float64                `json:"budget_at_completion"`
	Current            analytics.Metrics      `json:"current_metrics"`
	Status             analytics.HealthStatus `json:"status"`
	CalculatedAt       time.Time              `json:"calculated_at"`
	History            []EVMHistoryPoint      `json:"history"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// EVMHistoryPoint is one planned/earned/actual triple in the time series.
type EVMHistoryPoint struct {
	RecordedAt   time.Time `json:"recorded_at"`
	PlannedValue float64   `json:"planned_value"`
	EarnedValue  float64   `json:"earned_value"`
	ActualCost   float64   `json:"actual_cost"`
}
