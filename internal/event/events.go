// Package event defines the routing keys and payloads flowing through the
// events exchange. Producers write them into the outbox; the worker's
// consumers decode them.
package event

import "time"

// Routing keys on the events exchange.
const (
	ProjectCreated = "project.created"
	ProjectUpdated = "project.updated"
	EVMRefresh     = "evm.refresh"
	ReminderDue    = "reminder.due"
	InvoiceCreated = "invoice.created"
)

type ProjectCreatedPayload struct {
	ProjectID int64   `json:"project_id"`
	Name      string  `json:"name"`
	Budget    float64 `json:"budget"`
	TraceID   string  `json:"trace_id,omitempty"`
}

type ProjectUpdatedPayload struct {
	ProjectID int64  `json:"project_id"`
	TraceID   string `json:"trace_id,omitempty"`
}

// EVMRefreshPayload asks the worker to recompute a project's EVM snapshot.
// Trigger distinguishes API-driven refreshes from event-driven ones in
// metrics.
type EVMRefreshPayload struct {
	ProjectID int64  `json:"project_id"`
	Trigger   string `json:"trigger"` // api / event
	TraceID   string `json:"trace_id,omitempty"`
}

type ReminderDuePayload struct {
	ReminderID int64     `json:"reminder_id"`
	Title      string    `json:"title"`
	Channel    string    `json:"channel"`
	DueAt      time.Time `json:"due_at"`
	TraceID    string    `json:"trace_id,omitempty"`
}

type InvoiceCreatedPayload struct {
	InvoiceID int64  `json:"invoice_id"`
	Number    string `json:"number"`
	ProjectID int64  `json:"project_id"`
	TraceID   string `json:"trace_id,omitempty"`
}
