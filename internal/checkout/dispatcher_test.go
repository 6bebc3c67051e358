package checkout

import (
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayload() models.OrderPayload {
	composer := &Composer{Now: fixedClock(time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC))}
	form := validForm()
	form.Notes = "Call before delivery"
	return composer.Compose(testItems(), form, testPricing(), nil)
}

func TestDeepLink_Shape(t *testing.T) {
	d := NewDispatcher("919876543210")
	payload := testPayload()

	link := d.DeepLink(payload)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)
	assert.NotContains(t, link, " ", "the link must be fully percent-encoded")
	assert.NotContains(t, link, "+", "spaces must encode as %20, not +")

	parsed, err := url.Parse(link)
	require.NoError(t, err)
	text := parsed.Query().Get("text")
	assert.Contains(t, text, payload.OrderNumber)
	assert.Contains(t, text, "Priya Nair")
	assert.Contains(t, text, "Total: ₹43,311.00")
}

func TestOrderText_IsHumanReadable(t *testing.T) {
	d := NewDispatcher("919876543210")
	payload := testPayload()

	text := d.OrderText(payload)

	assert.Contains(t, text, "New Order — Crafts by Anita")
	assert.Contains(t, text, "2 x Handwoven Silk Saree @ ₹18,000.00")
	assert.Contains(t, text, "1 x Brass Diya Set @ ₹4,000.00")
	assert.Contains(t, text, "Shipping (Standard Delivery): ₹111.00")
	assert.Contains(t, text, "Ship to:\n14 MG Road\nKochi, Kerala 682016\nIndia")
	assert.Contains(t, text, "Notes: Call before delivery")
	assert.NotContains(t, text, "{", "the operator reads this, it must not be JSON")
}

func TestOrderText_FreeShipping(t *testing.T) {
	d := NewDispatcher("919876543210")
	payload := testPayload()
	payload.Pricing.ShippingCost = 0
	payload.Pricing.ShippingLabel = "Free Shipping"

	text := d.OrderText(payload)

	assert.Contains(t, text, "Shipping (Free Shipping): Free")
}

func TestDefaultStages_SequenceAndHolds(t *testing.T) {
	stages := DefaultStages()

	require.Equal(t, []Stage{
		{Status: "Preparing your order…", Hold: 900 * time.Millisecond},
		{Status: "Opening WhatsApp…", Hold: 1200 * time.Millisecond},
		{Status: "Redirecting…", Hold: 600 * time.Millisecond},
	}, stages)

	// The page script reads the holds in milliseconds.
	assert.Equal(t, int64(900), stages[0].HoldMillis())
	assert.Equal(t, int64(1200), stages[1].HoldMillis())
	assert.Equal(t, int64(600), stages[2].HoldMillis())
}
