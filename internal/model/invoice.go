package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice money fields use decimal so totals are exact; floats are reserved
// for the analytics ratios where rounding only happens at render time.
type Invoice struct {
	ID        int64           `json:"id"`
	Number    string          `json:"number"` // e.g. INV-2026-0042, assigned by the billing service
	ProjectID int64           `json:"project_id"`
	Client    string          `json:"client"`
	Status    string          `json:"status"` // draft / sent / paid / void
	Currency  string          `json:"currency"`
	Items     []InvoiceItem   `json:"items"`
	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"` // e.g. 0.19
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`
	IssuedAt  *time.Time      `json:"issued_at"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

type InvoiceItem struct {
	ID          int64           `json:"id"`
	InvoiceID   int64           `json:"invoice_id"`
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	LineTotal   decimal.Decimal `json:"line_total"`
}

const (
	InvoiceStatusDraft = "draft"
	InvoiceStatusSent  = "sent"
	InvoiceStatusPaid  = "paid"
	InvoiceStatusVoid  = "void"
)
