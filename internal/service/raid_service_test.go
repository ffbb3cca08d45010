package service

import (
	"errors"
	"testing"

	"forgeboard/internal/model"
)

func TestApplyScoreForRisks(t *testing.T) {
	svc := NewRAIDService(nil)

	entry := &model.RAIDEntry{Type: model.RAIDTypeRisk, Probability: 5, Impact: 4}
	if err := svc.applyScore(entry); err != nil {
		t.Fatalf("applyScore: %v", err)
	}
	if entry.Score != 20 {
		t.Errorf("score = %d, want 20", entry.Score)
	}
	if entry.Band != "high" {
		t.Errorf("band = %q, want high", entry.Band)
	}
}

func TestApplyScoreRejectsOutOfRange(t *testing.T) {
	svc := NewRAIDService(nil)

	tests := []struct{ probability, impact int }{
		{0, 3},
		{3, 0},
		{6, 3},
		{3, 6},
		{-1, 2},
	}
	for _, tt := range tests {
		entry := &model.RAIDEntry{Type: model.RAIDTypeRisk, Probability: tt.probability, Impact: tt.impact}
		err := svc.applyScore(entry)
		if err == nil {
			t.Errorf("applyScore(%d, %d) should fail", tt.probability, tt.impact)
			continue
		}
		if !errors.Is(err, ErrValidation) {
			t.Errorf("applyScore(%d, %d) error should match ErrValidation, got %v", tt.probability, tt.impact, err)
		}
	}
}

func TestApplyScoreClearsNonRiskFields(t *testing.T) {
	svc := NewRAIDService(nil)

	entry := &model.RAIDEntry{
		Type:        model.RAIDTypeIssue,
		Probability: 4,
		Impact:      4,
		Score:       16,
		Band:        "high",
	}
	if err := svc.applyScore(entry); err != nil {
		t.Fatalf("applyScore: %v", err)
	}
	if entry.Score != 0 || entry.Band != "" || entry.Probability != 0 || entry.Impact != 0 {
		t.Errorf("non-risk entry should have scoring fields cleared: %+v", entry)
	}
}
