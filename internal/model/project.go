package model

import "time"

type Project struct {
	ID                   int64     `json:"id"`
	Name                 string    `json:"name"`
	Description          string    `json:"description"`
	Status               string    `json:"status"` // planning / active / on_hold / completed
	Budget               float64   `json:"budget"`
	Spent                float64   `json:"spent"`
	CompletionPercentage float64   `json:"completion_percentage"`
	StartDate            time.Time `json:"start_date"`
	Deadline             time.Time `json:"deadline"`
	Manager              string    `json:"manager"`
	Tags                 []string  `json:"tags"`
	CreatedAt            time.Time `json:"created_at"`
	UpdatedAt            time.Time `json:"updated_at"`
}

const (
	ProjectStatusPlanning  = "planning"
	ProjectStatusActive    = "active"
	ProjectStatusOnHold    = "on_hold"
	ProjectStatusCompleted = "completed"
)
