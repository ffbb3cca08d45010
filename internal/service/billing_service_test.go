package service

import (
	"testing"

	"github.com/shopspring/decimal"

	"forgeboard/internal/model"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestComputeTotals(t *testing.T) {
	inv := &model.Invoice{
		TaxRate: dec("0.19"),
		Items: []model.InvoiceItem{
			{Description: "Design work", Quantity: dec("10"), UnitPrice: dec("85.50")},
			{Description: "Prototype parts", Quantity: dec("3"), UnitPrice: dec("120.00")},
		},
	}

	ComputeTotals(inv)

	if got, want := inv.Items[0].LineTotal, dec("855.00"); !got.Equal(want) {
		t.Errorf("line 0 total = %s, want %s", got, want)
	}
	if got, want := inv.Items[1].LineTotal, dec("360.00"); !got.Equal(want) {
		t.Errorf("line 1 total = %s, want %s", got, want)
	}
	if got, want := inv.Subtotal, dec("1215.00"); !got.Equal(want) {
		t.Errorf("subtotal = %s, want %s", got, want)
	}
	if got, want := inv.TaxAmount, dec("230.85"); !got.Equal(want) {
		t.Errorf("tax = %s, want %s", got, want)
	}
	if got, want := inv.Total, dec("1445.85"); !got.Equal(want) {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestComputeTotalsExactness(t *testing.T) {
	// 0.1 + 0.2 style inputs that float64 would mangle.
	inv := &model.Invoice{
		TaxRate: dec("0.1"),
		Items: []model.InvoiceItem{
			{Quantity: dec("0.1"), UnitPrice: dec("3")},
			{Quantity: dec("0.2"), UnitPrice: dec("3")},
		},
	}

	ComputeTotals(inv)

	if got, want := inv.Subtotal, dec("0.9"); !got.Equal(want) {
		t.Errorf("subtotal = %s, want %s", got, want)
	}
	if got, want := inv.TaxAmount, dec("0.09"); !got.Equal(want) {
		t.Errorf("tax = %s, want %s", got, want)
	}
	if got, want := inv.Total, dec("0.99"); !got.Equal(want) {
		t.Errorf("total = %s, want %s", got, want)
	}
}

func TestComputeTotalsZeroTaxRate(t *testing.T) {
	inv := &model.Invoice{
		Items: []model.InvoiceItem{
			{Quantity: dec("2"), UnitPrice: dec("50")},
		},
	}

	ComputeTotals(inv)

	if !inv.TaxAmount.IsZero() {
		t.Errorf("tax = %s, want 0", inv.TaxAmount)
	}
	if got, want := inv.Total, dec("100"); !got.Equal(want) {
		t.Errorf("total = %s, want %s", got, want)
	}
}
