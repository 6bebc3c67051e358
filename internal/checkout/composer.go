package checkout

import (
	"strconv"
	"strings"
	"time"

	"github.com/anitasharma/craftsbyanita/internal/models"
)

// NotesPlaceholder is stored when the shopper leaves the notes box empty.
const NotesPlaceholder = "No special instructions"

const orderRefPrefix = "CBA-"

// Composer builds the immutable order payload from the cart, the form and
// the pricing snapshot. The clock is injected so order numbers are
// reproducible in tests.
type Composer struct {
	Now func() time.Time
}

func NewComposer() *Composer {
	return &Composer{Now: time.Now}
}

// Compose is a read-only projection: neither the cart items nor the form
// are mutated. The caller must capture the returned payload before running
// side effects (address save, cart clear) so a failure there cannot drop it.
func (c *Composer) Compose(items []models.CartItem, form *models.CheckoutForm, pricing models.PricingSnapshot, shopper *models.Shopper) models.OrderPayload {
	now := c.Now()

	email := form.Email
	if email == "" && shopper != nil {
		email = shopper.Email
	}

	notes := strings.TrimSpace(form.Notes)
	if notes == "" {
		notes = NotesPlaceholder
	}

	lines := make([]models.CartItem, len(items))
	copy(lines, items)

	return models.OrderPayload{
		OrderNumber: orderNumber(now),
		OrderDate:   now.Format("January 2, 2006 at 3:04 PM"),
		Customer: models.CustomerInfo{
			FirstName: form.FirstName,
			LastName:  form.LastName,
			Email:     email,
			Phone:     form.Phone,
		},
		ShippingAddress: models.SavedAddress{
			Phone:   form.Phone,
			Street:  form.Street,
			City:    form.City,
			State:   form.State,
			ZipCode: form.ZipCode,
			Country: form.Country,
		},
		Items:   lines,
		Pricing: pricing,
		Notes:   notes,
	}
}

// orderNumber derives a public order reference from the millisecond clock.
// Monotonic enough for a single storefront: two submissions cannot share a
// millisecond once the form round-trip is counted in.
func orderNumber(now time.Time) string {
	return orderRefPrefix + strings.ToUpper(strconv.FormatInt(now.UnixMilli(), 36))
}
