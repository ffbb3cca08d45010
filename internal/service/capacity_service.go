package service

import (
	"context"
	"time"

	"forgeboard/internal/analytics"
	"forgeboard/internal/repository"
)

// CapacityService projects the stored resources into heatmaps, bottleneck
// summaries and staffing suggestions. It holds no state of its own.
type CapacityService struct {
	resources *repository.ResourceRepository
}

func NewCapacityService(resources *repository.ResourceRepository) *CapacityService {
	return &CapacityService{resources: resources}
}

func (s *CapacityService) Heatmap(ctx context.Context, start time.Time, days int) ([]analytics.ResourceHeatmap, error) {
	rows, err := s.resources.List(ctx)
	if err != nil {
		return nil, err
	}

	inputs := make([]analytics.Resource, 0, len(rows))
	for i := range rows {
		inputs = append(inputs, rows[i].ToAnalytics())
	}
	return analytics.BuildHeatmap(start, days, inputs), nil
}

func (s *CapacityService) Bottlenecks(ctx context.Context, start time.Time, days int) ([]analytics.Bottleneck, error) {
	heatmap, err := s.Heatmap(ctx, start, days)
	if err != nil {
		return nil, err
	}
	return analytics.FindBottlenecks(heatmap), nil
}

func (s *CapacityService) Suggestions(ctx context.Context, date time.Time, requiredHours float64) ([]analytics.Suggestion, error) {
	heatmap, err := s.Heatmap(ctx, date, 1)
	if err != nil {
		return nil, err
	}
	return analytics.SuggestResources(heatmap, date, requiredHours), nil
}
