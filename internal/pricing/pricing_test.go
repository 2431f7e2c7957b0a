package pricing

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leafy_back_end/internal/models"
)

func testRules() Rules {
	rate, _ := decimal.NewFromString("0.07")
	return Rules{
		FreeShippingThresholdCents: 10000,
		ShippingFeeCents:           999,
		TaxRate:                    rate,
	}
}

func item(priceCents int64, qty int) models.CartItem {
	return models.CartItem{Quantity: qty, UnitPriceCents: priceCents}
}

func TestCalculate_EmptyCart(t *testing.T) {
	got := Calculate(nil, testRules())
	assert.Equal(t, Totals{}, got)

	got = Calculate([]models.CartItem{}, testRules())
	assert.Zero(t, got.SubtotalCents)
	assert.Zero(t, got.ShippingCents)
	assert.Zero(t, got.TaxCents)
	assert.Zero(t, got.TotalCents)
}

func TestCalculate_CheckoutScenario(t *testing.T) {
	// Item A: 100.00 x1, Item B: 50.00 x2 → subtotal 200.00,
	// livraison offerte (seuil 100.00), TVA 7% = 14.00, total 214.00
	items := []models.CartItem{
		item(10000, 1),
		item(5000, 2),
	}

	got := Calculate(items, testRules())

	assert.Equal(t, int64(20000), got.SubtotalCents)
	assert.Equal(t, int64(0), got.ShippingCents)
	assert.Equal(t, int64(1400), got.TaxCents)
	assert.Equal(t, int64(21400), got.TotalCents)
}

func TestCalculate_FreeShippingThreshold(t *testing.T) {
	// Exactement le seuil → gratuit
	got := Calculate([]models.CartItem{item(10000, 1)}, testRules())
	assert.Equal(t, int64(0), got.ShippingCents)

	// Un centime sous le seuil → frais fixes
	got = Calculate([]models.CartItem{item(9999, 1)}, testRules())
	assert.Equal(t, int64(999), got.ShippingCents)
}

func TestCalculate_Deterministic(t *testing.T) {
	items := []models.CartItem{
		item(14999, 3),
		item(8999, 1),
		item(129, 17),
	}

	first := Calculate(items, testRules())
	second := Calculate(items, testRules())

	assert.Equal(t, first, second)
	assert.Equal(t, first.SubtotalCents+first.ShippingCents+first.TaxCents, first.TotalCents)
}

func TestCalculate_NoFloatDrift(t *testing.T) {
	// 0.10 x 1000 : l'accumulation flottante dériverait, pas les centimes.
	items := make([]models.CartItem, 0, 1000)
	for i := 0; i < 1000; i++ {
		items = append(items, item(10, 1))
	}

	got := Calculate(items, testRules())
	assert.Equal(t, int64(10*1000), got.SubtotalCents)
	assert.Equal(t, int64(700), got.TaxCents)
}

func TestCalculate_DoesNotMutateItems(t *testing.T) {
	items := []models.CartItem{item(5000, 2)}
	before := items[0]

	_ = Calculate(items, testRules())

	assert.Equal(t, before, items[0])
}

func TestFormatCents(t *testing.T) {
	assert.Equal(t, "214.00", FormatCents(21400))
	assert.Equal(t, "9.99", FormatCents(999))
	assert.Equal(t, "0.00", FormatCents(0))
}

func TestCentsFromDecimalString(t *testing.T) {
	cents, err := CentsFromDecimalString("149.99")
	require.NoError(t, err)
	assert.Equal(t, int64(14999), cents)

	_, err = CentsFromDecimalString("pas-un-nombre")
	assert.Error(t, err)
}
