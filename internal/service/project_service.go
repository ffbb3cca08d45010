// Package service implements the business operations behind the HTTP
// handlers and the worker's consumers. Writes that emit domain events do so
// through the transactional outbox, inside the same transaction as the
// business row.
package service

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/event"
	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/pkg/logger"
	"forgeboard/pkg/outbox"
	"forgeboard/pkg/trace"
)

type ProjectService struct {
	db         *pgxpool.Pool
	projects   *repository.ProjectRepository
	outboxRepo *outbox.Repository
	logger     *zap.Logger
}

func NewProjectService(
	db *pgxpool.Pool,
	projects *repository.ProjectRepository,
	outboxRepo *outbox.Repository,
	logger *zap.Logger,
) *ProjectService {
	return &ProjectService{
		db:         db,
		projects:   projects,
		outboxRepo: outboxRepo,
		logger:     logger,
	}
}

// Create inserts the project and a project.created outbox event in one
// transaction. The worker seeds the EVM baseline when the event arrives.
func (s *ProjectService) Create(ctx context.Context, p *model.Project) (int64, error) {
	if p.Status == "" {
		p.Status = model.ProjectStatusPlanning
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	id, err := s.projects.InsertTx(ctx, tx, p)
	if err != nil {
		return 0, err
	}

	payload := event.ProjectCreatedPayload{
		ProjectID: id,
		Name:      p.Name,
		Budget:    p.Budget,
		TraceID:   trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "project", &id, event.ProjectCreated, payload); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit project create: %w", err)
	}

	logger.WithTrace(ctx, s.logger).Info("Project created",
		zap.Int64("id", id),
		zap.String("name", p.Name),
	)
	return id, nil
}

func (s *ProjectService) Get(ctx context.Context, id int64) (*model.Project, error) {
	return s.projects.FindByID(ctx, id)
}

func (s *ProjectService) List(ctx context.Context) ([]model.Project, error) {
	return s.projects.List(ctx)
}

// Update rewrites the project row and emits project.updated. Spent and
// completion changes do not touch the EVM snapshot; that refresh is explicit.
func (s *ProjectService) Update(ctx context.Context, p *model.Project) error {
	if _, err := s.projects.FindByID(ctx, p.ID); err != nil {
		return err
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := s.projects.UpdateTx(ctx, tx, p); err != nil {
		return err
	}

	payload := event.ProjectUpdatedPayload{
		ProjectID: p.ID,
		TraceID:   trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "project", &p.ID, event.ProjectUpdated, payload); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

func (s *ProjectService) Delete(ctx context.Context, id int64) error {
	return s.projects.Delete(ctx, id)
}
