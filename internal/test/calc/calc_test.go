package calc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"smeta-backend/internal/calc"
	"smeta-backend/internal/models"
)

func sampleItems() []models.LineItem {
	return []models.LineItem{
		{Name: "Укладка плитки", Quantity: 10, Price: 100, Unit: "м²", Type: models.ItemTypeWork},
		{Name: "Плитка", Quantity: 3, Price: 100, Unit: "уп.", Type: models.ItemTypeMaterial},
	}
}

func TestTotalsFor_PercentDiscountWithTax(t *testing.T) {
	totals := calc.TotalsFor(sampleItems(), 10, models.DiscountPercent, 20)

	assert.InDelta(t, 1000, totals.WorkTotal, 1e-9)
	assert.InDelta(t, 300, totals.MaterialsTotal, 1e-9)
	assert.InDelta(t, 1300, totals.Subtotal, 1e-9)
	assert.InDelta(t, 130, totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 234, totals.TaxAmount, 1e-9)
	assert.InDelta(t, 1404, totals.GrandTotal, 1e-9)
}

func TestTotalsFor_FixedDiscount(t *testing.T) {
	totals := calc.TotalsFor(sampleItems(), 300, models.DiscountFixed, 0)

	assert.InDelta(t, 300, totals.DiscountAmount, 1e-9)
	assert.InDelta(t, 1000, totals.GrandTotal, 1e-9)
}

func TestTotalsFor_FixedDiscountExceedingSubtotalGoesNegative(t *testing.T) {
	items := []models.LineItem{
		{Name: "Демонтаж", Quantity: 1, Price: 100, Type: models.ItemTypeWork},
	}
	totals := calc.TotalsFor(items, 150, models.DiscountFixed, 10)

	assert.InDelta(t, -50, totals.Subtotal-totals.DiscountAmount, 1e-9)
	assert.InDelta(t, -5, totals.TaxAmount, 1e-9)
	assert.InDelta(t, -55, totals.GrandTotal, 1e-9)
}

func TestTotalsFor_NoItems(t *testing.T) {
	totals := calc.TotalsFor(nil, 10, models.DiscountPercent, 20)

	assert.Zero(t, totals.Subtotal)
	assert.Zero(t, totals.DiscountAmount)
	assert.Zero(t, totals.TaxAmount)
	assert.Zero(t, totals.GrandTotal)
}

func TestTotalsFor_ZeroDiscountAndTax(t *testing.T) {
	totals := calc.TotalsFor(sampleItems(), 0, models.DiscountPercent, 0)

	assert.InDelta(t, totals.Subtotal, totals.GrandTotal, 1e-9)
}

func TestNextEstimateNumber(t *testing.T) {
	tests := []struct {
		name     string
		existing []string
		year     int
		want     string
	}{
		{"empty history", nil, 2024, "2024-001"},
		{"continues after gap", []string{"2024-001", "2024-003"}, 2024, "2024-004"},
		{"ignores other years", []string{"2023-120", "2024-002"}, 2024, "2024-003"},
		{"ignores malformed suffix", []string{"2024-abc", "2024-001"}, 2024, "2024-002"},
		{"grows past padding", []string{"2024-123"}, 2024, "2024-124"},
		{"fresh year restarts", []string{"2023-044"}, 2024, "2024-001"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, calc.NextEstimateNumber(tt.existing, tt.year))
		})
	}
}

func TestShoppingList_KeepsOnlyMaterials(t *testing.T) {
	items := append(sampleItems(), models.LineItem{
		Name: "Грунтовка", Quantity: 2, Price: 250, Unit: "шт.", Type: models.ItemTypeMaterial,
	})

	entries, total := calc.ShoppingList(items)

	assert.Len(t, entries, 2)
	assert.Equal(t, "Плитка", entries[0].Name)
	assert.Equal(t, "Грунтовка", entries[1].Name)
	assert.InDelta(t, 500, entries[1].Total, 1e-9)
	assert.InDelta(t, 800, total, 1e-9)
}

func TestShoppingList_NoMaterials(t *testing.T) {
	items := []models.LineItem{
		{Name: "Монтаж", Quantity: 1, Price: 500, Type: models.ItemTypeWork},
	}

	entries, total := calc.ShoppingList(items)

	assert.Empty(t, entries)
	assert.Zero(t, total)
}
