package invoices

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/ksuibraheem/arba-sub002/internal/models"
)

// VATRate is the fixed 15% value-added tax applied to every invoice subtotal.
var VATRate = decimal.New(15, -2)

// LineItemParams is one line of a new invoice.
type LineItemParams struct {
	Description string          `json:"description"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
}

// Totals is the computed financial summary of an invoice:
// subtotal = sum of quantity x unit price per line (rounded to 2 places),
// tax = subtotal x 15% (rounded to 2 places),
// total = subtotal + tax - discount.
type Totals struct {
	Subtotal decimal.Decimal
	Tax      decimal.Decimal
	Total    decimal.Decimal
	Lines    []decimal.Decimal // per-line totals, same order as the input
}

// ComputeTotals validates the line items and derives the invoice totals.
func ComputeTotals(items []LineItemParams, discount decimal.Decimal) (Totals, error) {
	if len(items) == 0 {
		return Totals{}, models.ValidationError{Field: "items", Reason: "invoice has no line items"}
	}
	if discount.IsNegative() {
		return Totals{}, models.ValidationError{Field: "discount", Reason: "must not be negative"}
	}

	totals := Totals{Lines: make([]decimal.Decimal, 0, len(items))}
	for i, item := range items {
		if item.Quantity.IsNegative() {
			return Totals{}, models.ValidationError{Field: fmt.Sprintf("items[%d].quantity", i), Reason: "must not be negative"}
		}
		if item.UnitPrice.IsNegative() {
			return Totals{}, models.ValidationError{Field: fmt.Sprintf("items[%d].unit_price", i), Reason: "must not be negative"}
		}
		lineTotal := item.Quantity.Mul(item.UnitPrice).Round(2)
		totals.Lines = append(totals.Lines, lineTotal)
		totals.Subtotal = totals.Subtotal.Add(lineTotal)
	}

	if discount.GreaterThan(totals.Subtotal) {
		return Totals{}, models.ValidationError{Field: "discount", Reason: "must not exceed the subtotal"}
	}

	totals.Tax = totals.Subtotal.Mul(VATRate).Round(2)
	totals.Total = totals.Subtotal.Add(totals.Tax).Sub(discount)
	return totals, nil
}
