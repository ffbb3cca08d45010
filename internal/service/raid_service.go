package service

import (
	"context"
	"fmt"

	"forgeboard/internal/analytics"
	"forgeboard/internal/model"
	"forgeboard/internal/repository"
)

// RAIDService persists RAID log entries. For risk-type entries the score and
// band are derived server-side on every write; clients never supply them.
type RAIDService struct {
	raid *repository.RAIDRepository
}

func NewRAIDService(raid *repository.RAIDRepository) *RAIDService {
	return &RAIDService{raid: raid}
}

func (s *RAIDService) Create(ctx context.Context, e *model.RAIDEntry) (int64, error) {
	if err := s.applyScore(e); err != nil {
		return 0, err
	}
	return s.raid.Insert(ctx, e)
}

func (s *RAIDService) Get(ctx context.Context, id int64) (*model.RAIDEntry, error) {
	return s.raid.FindByID(ctx, id)
}

func (s *RAIDService) ListByProject(ctx context.Context, projectID int64) ([]model.RAIDEntry, error) {
	return s.raid.ListByProject(ctx, projectID)
}

func (s *RAIDService) Update(ctx context.Context, e *model.RAIDEntry) error {
	if err := s.applyScore(e); err != nil {
		return err
	}
	return s.raid.Update(ctx, e)
}

func (s *RAIDService) Delete(ctx context.Context, id int64) error {
	return s.raid.Delete(ctx, id)
}

func (s *RAIDService) applyScore(e *model.RAIDEntry) error {
	if e.Type != model.RAIDTypeRisk {
		e.Probability = 0
		e.Impact = 0
		e.Score = 0
		e.Band = ""
		return nil
	}

	if !analytics.ValidRiskInput(e.Probability, e.Impact) {
		return fmt.Errorf("%w: probability and impact must be between 1 and 5", ErrValidation)
	}
	e.Score = analytics.RiskScore(e.Probability, e.Impact)
	e.Band = string(analytics.ClassifyRisk(e.Score))
	return nil
}
