package analytics

import "time"

// DateKey is the layout used for exception lookups and day buckets.
const DateKey = "2006-01-02"

// Assignment books a resource onto a project for a date range.
type Assignment struct {
	ProjectID   int64     `json:"project_id"`
	ProjectName string    `json:"project_name"`
	StartDate   time.Time `json:"start_date"`
	EndDate     time.Time `json:"end_date"`
	HoursPerDay float64   `json:"hours_per_day"`
}

// Resource describes one tracked person's availability.
type Resource struct {
	ID                 int64              `json:"id"`
	Name               string             `json:"name"`
	WorkingDays        []time.Weekday     `json:"working_days"`
	StandardDailyHours float64            `json:"standard_daily_hours"`
	Exceptions         map[string]float64 `json:"exceptions"` // keyed by DateKey, override hours
	Assignments        []Assignment       `json:"assignments"`
}

// DayCell is one resource-day in the heatmap.
type DayCell struct {
	Date        time.Time    `json:"date"`
	Capacity    float64      `json:"capacity"`
	Allocated   float64      `json:"allocated"`
	Available   float64      `json:"available"`
	Utilization float64      `json:"utilization"` // percent; 0 when capacity is 0
	Assignments []Assignment `json:"assignments"` // the bookings contributing to Allocated
}

// ResourceHeatmap is a resource's utilization row, ordered by date.
type ResourceHeatmap struct {
	ResourceID   int64     `json:"resource_id"`
	ResourceName string    `json:"resource_name"`
	Days         []DayCell `json:"days"`
}

// BuildHeatmap projects utilization for every resource across a window of
// days starting at start. Capacity per day is the standard daily hours when
// the weekday is a working day (0 otherwise), overridden by a date exception
// if present. Allocation sums hours/day over all assignments whose inclusive
// [start, end] range covers the day; overlaps simply add up, there is no
// conflict prevention. Utilization is 0, not NaN, on zero-capacity days.
// The underlying assignments are never mutated.
func BuildHeatmap(start time.Time, days int, resources []Resource) []ResourceHeatmap {
	start = truncateToDay(start)

	heatmap := make([]ResourceHeatmap, 0, len(resources))
	for _, res := range resources {
		row := ResourceHeatmap{
			ResourceID:   res.ID,
			ResourceName: res.Name,
			Days:         make([]DayCell, 0, days),
		}

		for i := 0; i < days; i++ {
			day := start.AddDate(0, 0, i)
			row.Days = append(row.Days, buildDayCell(res, day))
		}

		heatmap = append(heatmap, row)
	}
	return heatmap
}

func buildDayCell(res Resource, day time.Time) DayCell {
	capacity := 0.0
	if isWorkingDay(res.WorkingDays, day.Weekday()) {
		capacity = res.StandardDailyHours
	}
	if override, ok := res.Exceptions[day.Format(DateKey)]; ok {
		capacity = override
	}

	allocated := 0.0
	var contributing []Assignment
	for _, a := range res.Assignments {
		if coversDay(a, day) {
			allocated += a.HoursPerDay
			contributing = append(contributing, a)
		}
	}

	utilization := 0.0
	if capacity > 0 {
		utilization = allocated / capacity * 100
	}

	available := capacity - allocated
	if available < 0 {
		available = 0
	}

	return DayCell{
		Date:        day,
		Capacity:    capacity,
		Allocated:   allocated,
		Available:   available,
		Utilization: utilization,
		Assignments: contributing,
	}
}

// coversDay reports whether day falls inside the assignment's inclusive range.
func coversDay(a Assignment, day time.Time) bool {
	start := truncateToDay(a.StartDate)
	end := truncateToDay(a.EndDate)
	return !day.Before(start) && !day.After(end)
}

func isWorkingDay(workingDays []time.Weekday, d time.Weekday) bool {
	for _, wd := range workingDays {
		if wd == d {
			return true
		}
	}
	return false
}

func truncateToDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
