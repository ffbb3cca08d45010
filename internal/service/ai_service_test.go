package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"

	"forgeboard/internal/analytics"
	"forgeboard/internal/config"
	"forgeboard/internal/model"
)

func newLocalOnlyAI() *AIService {
	// No API key: every call answers from the local generator.
	return NewAIService(config.AIConfig{Timeout: config.Duration(time.Second)}, zap.NewNop())
}

func TestSummarizeProjectFallsBackWithoutKey(t *testing.T) {
	ai := newLocalOnlyAI()

	project := &model.Project{Name: "Orion", Budget: 10000, Spent: 4000, CompletionPercentage: 40}
	record := &model.ProjectEVM{
		Status: analytics.StatusAtRisk,
		Current: analytics.Metrics{
			CostPerformanceIndex:     0.9,
			SchedulePerformanceIndex: 0.92,
			EstimateAtCompletion:     11111,
		},
	}

	summary, err := ai.SummarizeProject(context.Background(), project, record)
	if err != nil {
		t.Fatalf("SummarizeProject: %v", err)
	}
	if !strings.Contains(summary, "Orion") {
		t.Errorf("summary %q should name the project", summary)
	}
	if !strings.Contains(summary, "at risk") {
		t.Errorf("summary %q should reflect the at_risk status", summary)
	}
}

func TestSuggestMitigationBands(t *testing.T) {
	ai := newLocalOnlyAI()

	tests := []struct {
		band string
		want string
	}{
		{"high", "dedicated owner"},
		{"medium", "next project checkpoint"},
		{"low", "no immediate action"},
	}
	for _, tt := range tests {
		t.Run(tt.band, func(t *testing.T) {
			entry := &model.RAIDEntry{Title: "Vendor delay", Score: 12, Band: tt.band}
			got, err := ai.SuggestMitigation(context.Background(), entry)
			if err != nil {
				t.Fatalf("SuggestMitigation: %v", err)
			}
			if !strings.Contains(got, tt.want) {
				t.Errorf("suggestion %q should contain %q", got, tt.want)
			}
		})
	}
}
