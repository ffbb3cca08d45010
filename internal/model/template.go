package model

import (
	"encoding/json"
	"time"
)

// Template seeds a new project with default milestones and tasks. The
// payload stays raw JSON; instantiation decodes it service-side.
type Template struct {
	ID          int64           `json:"id"`
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Payload     json.RawMessage `json:"payload"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

// TemplatePayload is the decoded shape of Template.Payload.
type TemplatePayload struct {
	Status       string         `json:"status"`
	Budget       float64        `json:"budget"`
	DurationDays int            `json:"duration_days"`
	Tags         []string       `json:"tags"`
	GanttTasks   []TemplateTask `json:"gantt_tasks"`
}

// TemplateTask is one pre-defined task inside a template, with offsets
// relative to the project start date.
type TemplateTask struct {
	Name            string  `json:"name"`
	StartOffsetDays int     `json:"start_offset_days"`
	DurationDays    int     `json:"duration_days"`
	Progress        float64 `json:"progress"`
}
