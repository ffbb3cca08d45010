package handler

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/internal/service"
)

// IntegrationHandler backs the /api/v1 surface used by external tools with
// API keys: invoices and time entries.
type IntegrationHandler struct {
	billing *service.BillingService
	entries *repository.TimeEntryRepository
}

func NewIntegrationHandler(billing *service.BillingService, entries *repository.TimeEntryRepository) *IntegrationHandler {
	return &IntegrationHandler{billing: billing, entries: entries}
}

type invoiceItemRequest struct {
	Description string `json:"description" binding:"required"`
	Quantity    string `json:"quantity" binding:"required"`
	UnitPrice   string `json:"unit_price" binding:"required"`
}

type invoiceRequest struct {
	ProjectID int64                `json:"project_id" binding:"required"`
	Client    string               `json:"client" binding:"required"`
	Currency  string               `json:"currency"`
	TaxRate   string               `json:"tax_rate"`
	Items     []invoiceItemRequest `json:"items" binding:"required,min=1"`
}

// CreateInvoice answers POST /api/v1/invoices. Amounts arrive as decimal
// strings so nothing passes through float64.
func (h *IntegrationHandler) CreateInvoice(c *gin.Context) {
	var req invoiceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	inv := &model.Invoice{
		ProjectID: req.ProjectID,
		Client:    req.Client,
		Currency:  req.Currency,
	}
	if req.TaxRate != "" {
		rate, err := decimal.NewFromString(req.TaxRate)
		if err != nil {
			respondError(c, 400, "validation_error", "tax_rate must be a decimal string")
			return
		}
		inv.TaxRate = rate
	}
	for _, item := range req.Items {
		qty, err := decimal.NewFromString(item.Quantity)
		if err != nil {
			respondError(c, 400, "validation_error", "quantity must be a decimal string")
			return
		}
		price, err := decimal.NewFromString(item.UnitPrice)
		if err != nil {
			respondError(c, 400, "validation_error", "unit_price must be a decimal string")
			return
		}
		inv.Items = append(inv.Items, model.InvoiceItem{
			Description: item.Description,
			Quantity:    qty,
			UnitPrice:   price,
		})
	}

	id, err := h.billing.CreateInvoice(c.Request.Context(), inv)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	created, err := h.billing.Get(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, created)
}

// ListInvoices answers GET /api/v1/invoices?project_id=N.
func (h *IntegrationHandler) ListInvoices(c *gin.Context) {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, 400, "validation_error", "project_id must be numeric")
			return
		}
		projectID = &id
	}

	invoices, err := h.billing.List(c.Request.Context(), projectID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, invoices, gin.H{"count": len(invoices)})
}

type invoiceStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=draft sent paid void"`
}

// UpdateInvoiceStatus answers PATCH /api/v1/invoices/:id/status.
func (h *IntegrationHandler) UpdateInvoiceStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req invoiceStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	if err := h.billing.UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		respondServiceError(c, err)
		return
	}
	respondOK(c, gin.H{"id": id, "status": req.Status})
}

type timeEntryRequest struct {
	UserID    int64   `json:"user_id" binding:"required"`
	ProjectID int64   `json:"project_id" binding:"required"`
	Date      string  `json:"date" binding:"required"`
	Hours     float64 `json:"hours" binding:"required,gt=0,lte=24"`
	Note      string  `json:"note"`
	Billable  bool    `json:"billable"`
}

// CreateTimeEntry answers POST /api/v1/time-entries.
func (h *IntegrationHandler) CreateTimeEntry(c *gin.Context) {
	var req timeEntryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}
	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(c, 400, "validation_error", "date must be YYYY-MM-DD")
		return
	}

	id, err := h.entries.Insert(c.Request.Context(), &model.TimeEntry{
		UserID:    req.UserID,
		ProjectID: req.ProjectID,
		Date:      date,
		Hours:     req.Hours,
		Note:      req.Note,
		Billable:  req.Billable,
	})
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondCreated(c, gin.H{"id": id})
}

// ListTimeEntries answers GET /api/v1/time-entries?project_id=&from=&to=.
func (h *IntegrationHandler) ListTimeEntries(c *gin.Context) {
	var projectID *int64
	if raw := c.Query("project_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			respondError(c, 400, "validation_error", "project_id must be numeric")
			return
		}
		projectID = &id
	}

	var from, to *time.Time
	if raw := c.Query("from"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, 400, "validation_error", "from must be YYYY-MM-DD")
			return
		}
		from = &t
	}
	if raw := c.Query("to"); raw != "" {
		t, err := time.Parse("2006-01-02", raw)
		if err != nil {
			respondError(c, 400, "validation_error", "to must be YYYY-MM-DD")
			return
		}
		to = &t
	}

	entries, err := h.entries.List(c.Request.Context(), projectID, from, to)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	respondList(c, entries, gin.H{"count": len(entries)})
}
