package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/analytics"
	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/pkg/metrics"
)

// EVMService owns the one-per-project earned value snapshot. Snapshots are
// seeded when a project is created and recomputed only on an explicit
// refresh; project edits alone never move them.
type EVMService struct {
	projects   *repository.ProjectRepository
	evm        *repository.EVMRepository
	thresholds analytics.Thresholds
	logger     *zap.Logger
}

func NewEVMService(
	projects *repository.ProjectRepository,
	evm *repository.EVMRepository,
	thresholds analytics.Thresholds,
	logger *zap.Logger,
) *EVMService {
	return &EVMService{
		projects:   projects,
		evm:        evm,
		thresholds: thresholds,
		logger:     logger,
	}
}

// SeedBaseline creates the initial EVM record for a new project. Everything
// starts at zero except BAC; the guards make CPI and SPI 1, so a fresh
// project reads as on_track.
func (s *EVMService) SeedBaseline(ctx context.Context, projectID int64, budget float64) error {
	now := time.Now()
	m := analytics.ComputeMetrics(0, 0, 0, budget)

	record := &model.ProjectEVM{
		ProjectID:          projectID,
		BudgetAtCompletion: budget,
		Current:            m,
		Status:             analytics.ClassifyStatus(m.CostPerformanceIndex, m.SchedulePerformanceIndex, s.thresholds),
		CalculatedAt:       now,
		History: []model.EVMHistoryPoint{
			{RecordedAt: now, PlannedValue: 0, EarnedValue: 0, ActualCost: 0},
		},
	}

	_, err := s.evm.Insert(ctx, record)
	if err != nil {
		return err
	}
	metrics.IncrementEVMRecompute("seed")
	return nil
}

// Refresh recomputes the snapshot from the project's current budget, spent
// and completion fields and appends a history point. trigger is "api" or
// "event", for metrics only.
func (s *EVMService) Refresh(ctx context.Context, projectID int64, trigger string) (*model.ProjectEVM, error) {
	project, err := s.projects.FindByID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	record, err := s.evm.FindByProjectID(ctx, projectID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	pv := plannedValue(project, now)
	ev := project.Budget * project.CompletionPercentage / 100
	ac := project.Spent

	record.BudgetAtCompletion = project.Budget
	record.Current = analytics.ComputeMetrics(pv, ev, ac, project.Budget)
	record.Status = analytics.ClassifyStatus(
		record.Current.CostPerformanceIndex,
		record.Current.SchedulePerformanceIndex,
		s.thresholds,
	)
	record.CalculatedAt = now
	record.History = append(record.History, model.EVMHistoryPoint{
		RecordedAt:   now,
		PlannedValue: pv,
		EarnedValue:  ev,
		ActualCost:   ac,
	})

	if err := s.evm.Save(ctx, record); err != nil {
		return nil, err
	}

	metrics.IncrementEVMRecompute(trigger)
	s.logger.Info("EVM snapshot refreshed",
		zap.Int64("project_id", projectID),
		zap.String("trigger", trigger),
		zap.String("status", string(record.Status)),
	)
	return record, nil
}

// Get returns the stored snapshot as-is. CalculatedAt tells the caller how
// stale it is.
func (s *EVMService) Get(ctx context.Context, projectID int64) (*model.ProjectEVM, error) {
	return s.evm.FindByProjectID(ctx, projectID)
}

// plannedValue spreads the budget linearly across the schedule: the fraction
// of the start-to-deadline window elapsed at now, clamped to [0,1], times the
// budget. A degenerate schedule counts as fully elapsed.
func plannedValue(p *model.Project, now time.Time) float64 {
	total := p.Deadline.Sub(p.StartDate)
	if total <= 0 {
		return p.Budget
	}
	elapsed := now.Sub(p.StartDate)
	if elapsed <= 0 {
		return 0
	}
	if elapsed >= total {
		return p.Budget
	}
	return p.Budget * (float64(elapsed) / float64(total))
}
