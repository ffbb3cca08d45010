package model

import "time"

// Reminder is scanned by the worker; once due it is published through the
// outbox and marked sent by the reminder.due consumer.
type Reminder struct {
	ID        int64      `json:"id"`
	ProjectID *int64     `json:"project_id"`
	Title     string     `json:"title"`
	Channel   string     `json:"channel"` // email / webhook
	DueAt     time.Time  `json:"due_at"`
	Sent      bool       `json:"sent"`
	SentAt    *time.Time `json:"sent_at"`
	CreatedAt time.Time  `json:"created_at"`
}
