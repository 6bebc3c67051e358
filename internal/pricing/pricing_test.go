package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testRules = Rules{
	FreeShippingThreshold: 50000,
	FlatRate:              111,
	TaxRate:               0.08,
}

func TestCompute_BelowThreshold(t *testing.T) {
	snapshot := Compute(40000, testRules)

	assert.Equal(t, 40000.0, snapshot.Subtotal)
	assert.Equal(t, 111.0, snapshot.ShippingCost)
	assert.Equal(t, LabelStandardDelivery, snapshot.ShippingLabel)
	assert.Equal(t, 3200.0, snapshot.Tax)
	assert.Equal(t, 43311.0, snapshot.Total)
}

func TestCompute_AboveThreshold(t *testing.T) {
	snapshot := Compute(60000, testRules)

	assert.Equal(t, 0.0, snapshot.ShippingCost)
	assert.Equal(t, LabelFreeShipping, snapshot.ShippingLabel)
	assert.Equal(t, 4800.0, snapshot.Tax)
	assert.Equal(t, 64800.0, snapshot.Total)
}

func TestCompute_ExactlyAtThreshold(t *testing.T) {
	snapshot := Compute(50000, testRules)

	assert.Equal(t, 0.0, snapshot.ShippingCost)
	assert.Equal(t, LabelFreeShipping, snapshot.ShippingLabel)
}

func TestCompute_ZeroSubtotal(t *testing.T) {
	// An empty cart is guarded upstream, but zero must still price cleanly.
	snapshot := Compute(0, testRules)

	assert.Equal(t, 111.0, snapshot.ShippingCost)
	assert.Equal(t, LabelStandardDelivery, snapshot.ShippingLabel)
	assert.Equal(t, 0.0, snapshot.Tax)
	assert.Equal(t, 111.0, snapshot.Total)
}

func TestCompute_Deterministic(t *testing.T) {
	first := Compute(12345.67, testRules)
	second := Compute(12345.67, testRules)

	require.Equal(t, first, second)
}

func TestCompute_TotalIdentity(t *testing.T) {
	subtotals := []float64{0, 1, 110, 111, 9999.99, 40000, 49999.99, 50000, 50000.01, 60000, 250000}

	for _, subtotal := range subtotals {
		snapshot := Compute(subtotal, testRules)

		assert.Equal(t, snapshot.Subtotal+snapshot.ShippingCost+snapshot.Tax, snapshot.Total,
			"total identity broken for subtotal %v", subtotal)
		assert.Equal(t, subtotal >= testRules.FreeShippingThreshold, snapshot.ShippingCost == 0,
			"free shipping rule broken for subtotal %v", subtotal)
	}
}

func TestAmountToFreeShipping(t *testing.T) {
	assert.Equal(t, 10000.0, AmountToFreeShipping(40000, testRules))
	assert.Equal(t, 0.0, AmountToFreeShipping(50000, testRules))
	assert.Equal(t, 0.0, AmountToFreeShipping(60000, testRules))
}
