package analytics

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func weekdays() []time.Weekday {
	return []time.Weekday{time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday}
}

func TestBuildHeatmapBaseline(t *testing.T) {
	// 2026-03-02 is a Monday.
	start := date(2026, time.March, 2)

	res := Resource{
		ID:                 1,
		Name:               "alice",
		WorkingDays:        weekdays(),
		StandardDailyHours: 8,
		Assignments: []Assignment{
			{ProjectID: 10, ProjectName: "orion", StartDate: start, EndDate: start.AddDate(0, 0, 4), HoursPerDay: 4},
		},
	}

	heatmap := BuildHeatmap(start, 7, []Resource{res})
	if len(heatmap) != 1 {
		t.Fatalf("got %d rows, want 1", len(heatmap))
	}
	row := heatmap[0]
	if len(row.Days) != 7 {
		t.Fatalf("got %d days, want 7", len(row.Days))
	}

	// Monday: working day, half booked.
	mon := row.Days[0]
	if mon.Capacity != 8 || mon.Allocated != 4 || mon.Available != 4 {
		t.Errorf("monday = %+v, want capacity 8, allocated 4, available 4", mon)
	}
	if mon.Utilization != 50 {
		t.Errorf("monday utilization = %v, want 50", mon.Utilization)
	}
	if len(mon.Assignments) != 1 || mon.Assignments[0].ProjectName != "orion" {
		t.Errorf("monday contributors = %+v", mon.Assignments)
	}

	// Saturday: not a working day, assignment ended Friday anyway.
	sat := row.Days[5]
	if sat.Capacity != 0 || sat.Allocated != 0 || sat.Utilization != 0 {
		t.Errorf("saturday = %+v, want all zero", sat)
	}
}

func TestBuildHeatmapOverallocation(t *testing.T) {
	start := date(2026, time.March, 2)

	res := Resource{
		ID:                 2,
		Name:               "bob",
		WorkingDays:        weekdays(),
		StandardDailyHours: 8,
		Assignments: []Assignment{
			{ProjectID: 11, StartDate: start, EndDate: start, HoursPerDay: 10},
		},
	}

	heatmap := BuildHeatmap(start, 1, []Resource{res})
	cell := heatmap[0].Days[0]

	if cell.Utilization != 125 {
		t.Errorf("utilization = %v, want 125", cell.Utilization)
	}
	// Available never goes negative.
	if cell.Available != 0 {
		t.Errorf("available = %v, want 0", cell.Available)
	}

	bottlenecks := FindBottlenecks(heatmap)
	if len(bottlenecks) != 1 {
		t.Fatalf("got %d bottlenecks, want 1", len(bottlenecks))
	}
	if bottlenecks[0].OverloadedDays != 1 || !bottlenecks[0].Dates[0].Equal(start) {
		t.Errorf("bottleneck = %+v", bottlenecks[0])
	}
}

func TestBuildHeatmapOverlappingAssignmentsSum(t *testing.T) {
	start := date(2026, time.March, 3) // Tuesday

	res := Resource{
		ID:                 3,
		Name:               "carol",
		WorkingDays:        weekdays(),
		StandardDailyHours: 8,
		Assignments: []Assignment{
			{ProjectID: 1, StartDate: start.AddDate(0, 0, -2), EndDate: start.AddDate(0, 0, 2), HoursPerDay: 3},
			{ProjectID: 2, StartDate: start, EndDate: start, HoursPerDay: 3},
		},
	}

	heatmap := BuildHeatmap(start, 1, []Resource{res})
	cell := heatmap[0].Days[0]

	if cell.Allocated != 6 {
		t.Errorf("allocated = %v, want 6 (overlaps sum)", cell.Allocated)
	}
	if len(cell.Assignments) != 2 {
		t.Errorf("contributors = %d, want 2", len(cell.Assignments))
	}
	if cell.Utilization != 75 {
		t.Errorf("utilization = %v, want 75", cell.Utilization)
	}
}

func TestBuildHeatmapZeroCapacityGuard(t *testing.T) {
	// Sunday with a booking: utilization must be 0, not NaN or Inf.
	sunday := date(2026, time.March, 8)

	res := Resource{
		ID:                 4,
		Name:               "dave",
		WorkingDays:        weekdays(),
		StandardDailyHours: 8,
		Assignments: []Assignment{
			{ProjectID: 9, StartDate: sunday, EndDate: sunday, HoursPerDay: 5},
		},
	}

	heatmap := BuildHeatmap(sunday, 1, []Resource{res})
	cell := heatmap[0].Days[0]

	if cell.Capacity != 0 {
		t.Fatalf("capacity = %v, want 0", cell.Capacity)
	}
	if cell.Allocated != 5 {
		t.Errorf("allocated = %v, want 5", cell.Allocated)
	}
	if cell.Utilization != 0 {
		t.Errorf("utilization = %v, want 0 on zero-capacity day", cell.Utilization)
	}
}

func TestBuildHeatmapExceptionOverride(t *testing.T) {
	// Wednesday shortened to 4h by an exception; Saturday opened up with 6h.
	wed := date(2026, time.March, 4)
	sat := date(2026, time.March, 7)

	res := Resource{
		ID:                 5,
		Name:               "erin",
		WorkingDays:        weekdays(),
		StandardDailyHours: 8,
		Exceptions: map[string]float64{
			wed.Format(DateKey): 4,
			sat.Format(DateKey): 6,
		},
		Assignments: []Assignment{
			{ProjectID: 7, StartDate: wed, EndDate: sat, HoursPerDay: 4},
		},
	}

	heatmap := BuildHeatmap(wed, 4, []Resource{res})
	days := heatmap[0].Days

	if days[0].Capacity != 4 || days[0].Utilization != 100 {
		t.Errorf("wednesday = %+v, want capacity 4, utilization 100", days[0])
	}
	if days[3].Capacity != 6 {
		t.Errorf("saturday capacity = %v, want 6 from exception", days[3].Capacity)
	}
}

func TestSuggestResources(t *testing.T) {
	start := date(2026, time.March, 2)

	free := Resource{ID: 1, Name: "free", WorkingDays: weekdays(), StandardDailyHours: 8}
	busy := Resource{
		ID: 2, Name: "busy", WorkingDays: weekdays(), StandardDailyHours: 8,
		Assignments: []Assignment{{ProjectID: 1, StartDate: start, EndDate: start, HoursPerDay: 7}},
	}
	alsoFree := Resource{ID: 3, Name: "also-free", WorkingDays: weekdays(), StandardDailyHours: 8}

	heatmap := BuildHeatmap(start, 1, []Resource{free, busy, alsoFree})

	got := SuggestResources(heatmap, start, 4)
	if len(got) != 2 {
		t.Fatalf("got %d suggestions, want 2", len(got))
	}
	// Insertion order of resources is preserved.
	if got[0].ResourceName != "free" || got[1].ResourceName != "also-free" {
		t.Errorf("order = [%s, %s], want [free, also-free]", got[0].ResourceName, got[1].ResourceName)
	}
	if got[0].Available != 8 {
		t.Errorf("available = %v, want 8", got[0].Available)
	}

	if extra := SuggestResources(heatmap, start, 1); len(extra) != 3 {
		t.Errorf("requiring 1h: got %d suggestions, want 3 (busy still has 1h free)", len(extra))
	}
}

func TestBuildHeatmapDoesNotMutateInput(t *testing.T) {
	start := date(2026, time.March, 2)
	assignments := []Assignment{
		{ProjectID: 1, StartDate: start, EndDate: start.AddDate(0, 0, 1), HoursPerDay: 2},
	}
	res := Resource{ID: 1, Name: "x", WorkingDays: weekdays(), StandardDailyHours: 8, Assignments: assignments}

	BuildHeatmap(start, 3, []Resource{res})

	if assignments[0].HoursPerDay != 2 || !assignments[0].StartDate.Equal(start) {
		t.Errorf("input assignment mutated: %+v", assignments[0])
	}
}
