package model

import "time"

type TimeEntry struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	ProjectID int64     `json:"project_id"`
	Date      time.Time `json:"date"`
	Hours     float64   `json:"hours"`
	Note      string    `json:"note"`
	Billable  bool      `json:"billable"`
	CreatedAt time.Time `json:"created_at"`
}
