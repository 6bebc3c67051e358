// Package pricing computes the shipping and tax breakdown for a cart
// subtotal. It is deliberately a pure function of the subtotal and the
// configured rules: the checkout page recomputes it on every render, so any
// nondeterminism here would show up as flickering totals.
package pricing

import (
	"github.com/anitasharma/craftsbyanita/internal/models"
)

const (
	LabelFreeShipping     = "Free Shipping"
	LabelStandardDelivery = "Standard Delivery"
)

// Rules holds the business constants. Amounts are in INR, TaxRate is a
// fraction (0.08 = 8%).
type Rules struct {
	FreeShippingThreshold float64
	FlatRate              float64
	TaxRate               float64
}

// Compute derives the full pricing breakdown for a subtotal. A zero subtotal
// is legal here; the empty-cart guard belongs to the caller.
func Compute(subtotal float64, rules Rules) models.PricingSnapshot {
	shippingCost := rules.FlatRate
	shippingLabel := LabelStandardDelivery
	if subtotal >= rules.FreeShippingThreshold {
		shippingCost = 0
		shippingLabel = LabelFreeShipping
	}

	tax := subtotal * rules.TaxRate

	return models.PricingSnapshot{
		Subtotal:              subtotal,
		ShippingCost:          shippingCost,
		ShippingLabel:         shippingLabel,
		FreeShippingThreshold: rules.FreeShippingThreshold,
		Tax:                   tax,
		Total:                 subtotal + shippingCost + tax,
	}
}

// AmountToFreeShipping returns how much more the shopper needs to add to
// qualify for free shipping, or 0 if they already do.
func AmountToFreeShipping(subtotal float64, rules Rules) float64 {
	if subtotal >= rules.FreeShippingThreshold {
		return 0
	}
	return rules.FreeShippingThreshold - subtotal
}
