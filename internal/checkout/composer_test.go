package checkout

import (
	"testing"
	"time"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testItems() []models.CartItem {
	return []models.CartItem{
		{ItemID: 1, Name: "Handwoven Silk Saree", UnitPrice: 18000, Quantity: 2},
		{ItemID: 2, Name: "Brass Diya Set", UnitPrice: 4000, Quantity: 1},
	}
}

func testPricing() models.PricingSnapshot {
	return models.PricingSnapshot{
		Subtotal:              40000,
		ShippingCost:          111,
		ShippingLabel:         "Standard Delivery",
		FreeShippingThreshold: 50000,
		Tax:                   3200,
		Total:                 43311,
	}
}

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestCompose_BuildsPayload(t *testing.T) {
	at := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	composer := &Composer{Now: fixedClock(at)}

	form := validForm()
	form.Notes = "Gift wrap please"
	payload := composer.Compose(testItems(), form, testPricing(), nil)

	assert.Equal(t, "Priya", payload.Customer.FirstName)
	assert.Equal(t, "Nair", payload.Customer.LastName)
	assert.Equal(t, "priya@example.com", payload.Customer.Email)
	assert.Equal(t, "+91 98765 43210", payload.Customer.Phone)
	assert.Equal(t, "14 MG Road", payload.ShippingAddress.Street)
	assert.Equal(t, "Kochi", payload.ShippingAddress.City)
	assert.Equal(t, "682016", payload.ShippingAddress.ZipCode)
	assert.Equal(t, testPricing(), payload.Pricing)
	assert.Equal(t, "Gift wrap please", payload.Notes)
	assert.Len(t, payload.Items, 2)
	assert.Equal(t, "March 14, 2026 at 3:09 PM", payload.OrderDate)
	assert.Regexp(t, `^CBA-[0-9A-Z]+$`, payload.OrderNumber)
}

func TestCompose_NotesPlaceholder(t *testing.T) {
	composer := NewComposer()

	form := validForm()
	form.Notes = "   "
	payload := composer.Compose(testItems(), form, testPricing(), nil)

	assert.Equal(t, NotesPlaceholder, payload.Notes)
}

func TestCompose_EmailFallsBackToShopper(t *testing.T) {
	composer := NewComposer()
	shopper := &models.Shopper{Email: "priya@example.com"}

	form := validForm()
	form.Email = ""
	payload := composer.Compose(testItems(), form, testPricing(), shopper)

	assert.Equal(t, "priya@example.com", payload.Customer.Email)
}

func TestCompose_DoesNotAliasCart(t *testing.T) {
	composer := NewComposer()
	items := testItems()

	payload := composer.Compose(items, validForm(), testPricing(), nil)
	payload.Items[0].Quantity = 99

	assert.Equal(t, 2, items[0].Quantity, "composing must not give the payload a handle on the cart")
}

func TestCompose_DistinctOrderNumbersOverTime(t *testing.T) {
	base := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	first := (&Composer{Now: fixedClock(base)}).Compose(testItems(), validForm(), testPricing(), nil)
	second := (&Composer{Now: fixedClock(base.Add(time.Millisecond))}).Compose(testItems(), validForm(), testPricing(), nil)

	require.NotEqual(t, first.OrderNumber, second.OrderNumber)
}

func TestCompose_SameInstantSameNumber(t *testing.T) {
	// A retry of the same logical order replays the captured payload; the
	// number is a pure function of the clock, nothing else.
	at := time.Date(2026, time.March, 14, 15, 9, 26, 0, time.UTC)
	composer := &Composer{Now: fixedClock(at)}

	first := composer.Compose(testItems(), validForm(), testPricing(), nil)
	second := composer.Compose(testItems(), validForm(), testPricing(), nil)

	assert.Equal(t, first.OrderNumber, second.OrderNumber)
}
