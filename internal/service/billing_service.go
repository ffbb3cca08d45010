package service

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"forgeboard/internal/config"
	"forgeboard/internal/event"
	"forgeboard/internal/model"
	"forgeboard/internal/repository"
	"forgeboard/pkg/outbox"
	"forgeboard/pkg/trace"
)

// BillingService creates and manages invoices. Totals are computed
// server-side with decimal arithmetic; invoice numbers are sequential per
// year and assigned inside the insert transaction.
type BillingService struct {
	db         *pgxpool.Pool
	invoices   *repository.InvoiceRepository
	outboxRepo *outbox.Repository
	cfg        config.BillingConfig
	logger     *zap.Logger
}

func NewBillingService(
	db *pgxpool.Pool,
	invoices *repository.InvoiceRepository,
	outboxRepo *outbox.Repository,
	cfg config.BillingConfig,
	logger *zap.Logger,
) *BillingService {
	return &BillingService{
		db:         db,
		invoices:   invoices,
		outboxRepo: outboxRepo,
		cfg:        cfg,
		logger:     logger,
	}
}

// ComputeTotals fills in line totals, subtotal, tax amount and total from the
// items and tax rate. Exposed for the handler tests; CreateInvoice calls it.
func ComputeTotals(inv *model.Invoice) {
	subtotal := decimal.Zero
	for i := range inv.Items {
		inv.Items[i].LineTotal = inv.Items[i].Quantity.Mul(inv.Items[i].UnitPrice)
		subtotal = subtotal.Add(inv.Items[i].LineTotal)
	}
	inv.Subtotal = subtotal
	inv.TaxAmount = subtotal.Mul(inv.TaxRate)
	inv.Total = subtotal.Add(inv.TaxAmount)
}

// CreateInvoice assigns the number, computes totals and writes the invoice,
// its items and the invoice.created outbox event in one transaction.
func (s *BillingService) CreateInvoice(ctx context.Context, inv *model.Invoice) (int64, error) {
	if len(inv.Items) == 0 {
		return 0, fmt.Errorf("%w: invoice needs at least one item", ErrValidation)
	}
	if inv.Currency == "" {
		inv.Currency = s.cfg.DefaultCurrency
	}
	if inv.TaxRate.IsZero() {
		rate, err := decimal.NewFromString(s.cfg.DefaultTaxRate)
		if err != nil {
			return 0, fmt.Errorf("invalid default tax rate: %w", err)
		}
		inv.TaxRate = rate
	}
	if inv.Status == "" {
		inv.Status = model.InvoiceStatusDraft
	}

	ComputeTotals(inv)

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	year := time.Now().Year()
	seq, err := s.invoices.NextSequenceTx(ctx, tx, year)
	if err != nil {
		return 0, err
	}
	inv.Number = fmt.Sprintf("INV-%d-%04d", year, seq)

	id, err := s.invoices.InsertTx(ctx, tx, inv, year, seq)
	if err != nil {
		return 0, err
	}

	payload := event.InvoiceCreatedPayload{
		InvoiceID: id,
		Number:    inv.Number,
		ProjectID: inv.ProjectID,
		TraceID:   trace.FromContext(ctx),
	}
	if err := outbox.InsertEventInTx(ctx, tx, s.outboxRepo, "invoice", &id, event.InvoiceCreated, payload); err != nil {
		return 0, err
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit invoice create: %w", err)
	}

	s.logger.Info("Invoice created",
		zap.Int64("id", id),
		zap.String("number", inv.Number),
		zap.String("total", inv.Total.String()),
	)
	return id, nil
}

func (s *BillingService) Get(ctx context.Context, id int64) (*model.Invoice, error) {
	return s.invoices.FindByID(ctx, id)
}

func (s *BillingService) List(ctx context.Context, projectID *int64) ([]model.Invoice, error) {
	return s.invoices.List(ctx, projectID)
}

func (s *BillingService) UpdateStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case model.InvoiceStatusDraft, model.InvoiceStatusSent, model.InvoiceStatusPaid, model.InvoiceStatusVoid:
	default:
		return fmt.Errorf("%w: unknown invoice status %q", ErrValidation, status)
	}
	return s.invoices.UpdateStatus(ctx, id, status)
}
