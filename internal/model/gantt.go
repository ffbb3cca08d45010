package model

import "time"

// GanttTask is a scheduled bar on a project's Gantt chart. Dependencies are
// task ids resolved by the client; nothing enforces acyclicity here.
type GanttTask struct {
	ID           int64     `json:"id"`
	ProjectID    int64     `json:"project_id"`
	Name         string    `json:"name"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
	Progress     float64   `json:"progress"` // 0-100
	Assignee     string    `json:"assignee"`
	Dependencies []int64   `json:"dependencies"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}
