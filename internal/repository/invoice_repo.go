package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"forgeboard/internal/model"
)

type InvoiceRepository struct {
	db     *pgxpool.Pool
	logger *zap.Logger
}

func NewInvoiceRepository(db *pgxpool.Pool, logger *zap.Logger) *InvoiceRepository {
	return &InvoiceRepository{db: db, logger: logger}
}

// NextSequenceTx returns the next invoice sequence for a year. Must run in
// the same transaction as the insert so concurrent creates cannot collide.
func (r *InvoiceRepository) NextSequenceTx(ctx context.Context, tx pgx.Tx, year int) (int, error) {
	var seq int
	err := tx.QueryRow(ctx, `
        SELECT COALESCE(MAX(seq), 0) + 1
        FROM invoices
        WHERE year = $1
    `, year).Scan(&seq)
	return seq, err
}

// InsertTx inserts the invoice header and its items in one transaction.
func (r *InvoiceRepository) InsertTx(ctx context.Context, tx pgx.Tx, inv *model.Invoice, year, seq int) (int64, error) {
	query := `
        INSERT INTO invoices (number, year, seq, project_id, client, status, currency,
                              subtotal, tax_rate, tax_amount, total, issued_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
        RETURNING id
    `
	var id int64
	err := tx.QueryRow(ctx, query,
		inv.Number,
		year,
		seq,
		inv.ProjectID,
		inv.Client,
		inv.Status,
		inv.Currency,
		inv.Subtotal,
		inv.TaxRate,
		inv.TaxAmount,
		inv.Total,
		inv.IssuedAt,
	).Scan(&id)
	if err != nil {
		r.logger.Error("Failed to insert invoice", zap.Error(err))
		return 0, err
	}

	for i := range inv.Items {
		item := &inv.Items[i]
		err := tx.QueryRow(ctx, `
            INSERT INTO invoice_items (invoice_id, description, quantity, unit_price, line_total)
            VALUES ($1, $2, $3, $4, $5)
            RETURNING id
        `, id, item.Description, item.Quantity, item.UnitPrice, item.LineTotal).Scan(&item.ID)
		if err != nil {
			r.logger.Error("Failed to insert invoice item", zap.Error(err))
			return 0, err
		}
		item.InvoiceID = id
	}

	r.logger.Info("Invoice inserted", zap.Int64("id", id), zap.String("number", inv.Number))
	return id, nil
}

func (r *InvoiceRepository) FindByID(ctx context.Context, id int64) (*model.Invoice, error) {
	query := `
        SELECT id, number, project_id, client, status, currency,
               subtotal, tax_rate, tax_amount, total, issued_at, created_at, updated_at
        FROM invoices
        WHERE id = $1
    `
	var inv model.Invoice
	err := r.db.QueryRow(ctx, query, id).Scan(
		&inv.ID,
		&inv.Number,
		&inv.ProjectID,
		&inv.Client,
		&inv.Status,
		&inv.Currency,
		&inv.Subtotal,
		&inv.TaxRate,
		&inv.TaxAmount,
		&inv.Total,
		&inv.IssuedAt,
		&inv.CreatedAt,
		&inv.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	items, err := r.listItems(ctx, id)
	if err != nil {
		return nil, err
	}
	inv.Items = items
	return &inv, nil
}

func (r *InvoiceRepository) List(ctx context.Context, projectID *int64) ([]model.Invoice, error) {
	query := `
        SELECT id, number, project_id, client, status, currency,
               subtotal, tax_rate, tax_amount, total, issued_at, created_at, updated_at
        FROM invoices
        WHERE ($1::bigint IS NULL OR project_id = $1)
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	invoices := []model.Invoice{}
	for rows.Next() {
		var inv model.Invoice
		err := rows.Scan(
			&inv.ID,
			&inv.Number,
			&inv.ProjectID,
			&inv.Client,
			&inv.Status,
			&inv.Currency,
			&inv.Subtotal,
			&inv.TaxRate,
			&inv.TaxAmount,
			&inv.Total,
			&inv.IssuedAt,
			&inv.CreatedAt,
			&inv.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		invoices = append(invoices, inv)
	}
	return invoices, rows.Err()
}

func (r *InvoiceRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `
        UPDATE invoices
        SET status = $1, updated_at = NOW()
        WHERE id = $2
    `
	_, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		r.logger.Error("Failed to update invoice status", zap.Int64("id", id), zap.Error(err))
	}
	return err
}

func (r *InvoiceRepository) listItems(ctx context.Context, invoiceID int64) ([]model.InvoiceItem, error) {
	rows, err := r.db.Query(ctx, `
        SELECT id, invoice_id, description, quantity, unit_price, line_total
        FROM invoice_items
        WHERE invoice_id = $1
        ORDER BY id ASC
    `, invoiceID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	items := []model.InvoiceItem{}
	for rows.Next() {
		var item model.InvoiceItem
		err := rows.Scan(
			&item.ID,
			&item.InvoiceID,
			&item.Description,
			&item.Quantity,
			&item.UnitPrice,
			&item.LineTotal,
		)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
