package model

import (
	"time"

	"forgeboard/internal/analytics"
)

// Resource is a tracked person with a weekly schedule and bookings.
// Overlapping assignments on the same date simply sum; nothing prevents a
// capacity conflict at write time.
type Resource struct {
	ID                 int64                  `json:"id"`
	Name               string                 `json:"name"`
	Role               string                 `json:"role"`
	WorkingDays        []time.Weekday         `json:"working_days"`
	StandardDailyHours float64                `json:"standard_daily_hours"`
	Exceptions         map[string]float64     `json:"exceptions"` // date (YYYY-MM-DD) -> override hours
	Assignments        []analytics.Assignment `json:"assignments"`
	CreatedAt          time.Time              `json:"created_at"`
	UpdatedAt          time.Time              `json:"updated_at"`
}

// ToAnalytics converts the stored row into the analytics projection input.
func (r *Resource) ToAnalytics() analytics.Resource {
	return analytics.Resource{
		ID:                 r.ID,
		Name:               r.Name,
		WorkingDays:        r.WorkingDays,
		StandardDailyHours: r.StandardDailyHours,
		Exceptions:         r.Exceptions,
		Assignments:        r.Assignments,
	}
}
