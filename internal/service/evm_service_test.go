package service

import (
	"testing"
	"time"

	"forgeboard/internal/model"
)

func day(s string) time.Time {
	t, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return t
}

func TestPlannedValue(t *testing.T) {
	project := &model.Project{
		Budget:    10000,
		StartDate: day("2026-01-01"),
		Deadline:  day("2026-01-11"), // 10 day schedule
	}

	tests := []struct {
		name string
		now  time.Time
		want float64
	}{
		{"before start", day("2025-12-20"), 0},
		{"at start", day("2026-01-01"), 0},
		{"halfway", day("2026-01-06"), 5000},
		{"at deadline", day("2026-01-11"), 10000},
		{"past deadline", day("2026-03-01"), 10000},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := plannedValue(project, tt.now); got != tt.want {
				t.Errorf("plannedValue = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPlannedValueDegenerateSchedule(t *testing.T) {
	project := &model.Project{
		Budget:    5000,
		StartDate: day("2026-01-10"),
		Deadline:  day("2026-01-10"),
	}
	if got := plannedValue(project, day("2026-01-05")); got != 5000 {
		t.Errorf("zero-length schedule should count as fully elapsed, got %v", got)
	}
}
