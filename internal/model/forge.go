package model

import "time"

// ForgeJob is a fabrication job queued against a project.
type ForgeJob struct {
	ID          int64     `json:"id"`
	ProjectID   int64     `json:"project_id"`
	Name        string    `json:"name"`
	Machine     string    `json:"machine"`
	Material    string    `json:"material"`
	Status      string    `json:"status"` // queued / running / done / failed
	SubmittedBy string    `json:"submitted_by"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// FluxDevice is a piece of lab hardware tracked in inventory.
type FluxDevice struct {
	ID        int64     `json:"id"`
	Serial    string    `json:"serial"`
	Model     string    `json:"model"`
	Firmware  string    `json:"firmware"`
	Status    string    `json:"status"` // available / assigned / maintenance / retired
	ProjectID *int64    `json:"project_id"` // nil when unassigned
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
