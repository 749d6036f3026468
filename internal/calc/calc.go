// Package calc derives the financial summary of an estimate from its line
// items and adjustment parameters. All functions are pure.
package calc

import (
	"fmt"
	"strconv"
	"strings"

	"smeta-backend/internal/models"
)

// Totals is the six-field summary shared by the on-screen API and the PDF
// renderer. The renderer formats these values, it never recomputes them.
type Totals struct {
	MaterialsTotal float64 `json:"materials_total"`
	WorkTotal      float64 `json:"work_total"`
	Subtotal       float64 `json:"subtotal"`
	DiscountAmount float64 `json:"discount_amount"`
	TaxAmount      float64 `json:"tax_amount"`
	GrandTotal     float64 `json:"grand_total"`
}

// TotalsFor computes the estimate summary. A fixed discount larger than the
// subtotal is not clamped: the grand total goes negative. Validation of
// inputs is the caller's job; arithmetic here never fails.
func TotalsFor(items []models.LineItem, discount float64, discountType models.DiscountType, tax float64) Totals {
	var t Totals
	for _, item := range items {
		line := item.Quantity * item.Price
		if item.Type == models.ItemTypeMaterial {
			t.MaterialsTotal += line
		} else {
			t.WorkTotal += line
		}
	}
	t.Subtotal = t.MaterialsTotal + t.WorkTotal

	if discountType == models.DiscountPercent {
		t.DiscountAmount = t.Subtotal * discount / 100
	} else {
		t.DiscountAmount = discount
	}

	afterDiscount := t.Subtotal - t.DiscountAmount
	t.TaxAmount = afterDiscount * tax / 100
	t.GrandTotal = afterDiscount + t.TaxAmount
	return t
}

// NextEstimateNumber returns the next number in the YYYY-NNN sequence for
// the given year. The input order does not matter; numbers from other years
// or with malformed suffixes are ignored.
func NextEstimateNumber(existing []string, year int) string {
	prefix := fmt.Sprintf("%d-", year)
	max := 0
	for _, number := range existing {
		if !strings.HasPrefix(number, prefix) {
			continue
		}
		n, err := strconv.Atoi(strings.TrimPrefix(number, prefix))
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return fmt.Sprintf("%d-%03d", year, max+1)
}

// ShoppingList extracts the material-typed rows of an estimate.
func ShoppingList(items []models.LineItem) ([]models.ShoppingListEntry, float64) {
	var entries []models.ShoppingListEntry
	var total float64
	for _, item := range items {
		if item.Type != models.ItemTypeMaterial {
			continue
		}
		line := item.Quantity * item.Price
		entries = append(entries, models.ShoppingListEntry{
			Name:     item.Name,
			Quantity: item.Quantity,
			Unit:     item.Unit,
			Price:    item.Price,
			Total:    line,
		})
		total += line
	}
	return entries, total
}
