package checkout

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/anitasharma/craftsbyanita/internal/currency"
	"github.com/anitasharma/craftsbyanita/internal/models"
)

// Stage is one step of the handoff status sequence the shopper watches on
// the handoff page. The holds give WhatsApp time to grab focus before the
// page navigates away; they are part of the visible flow, not decoration.
type Stage struct {
	Status string
	Hold   time.Duration
}

// HoldMillis is the stage's hold in milliseconds, for the page script that
// walks the sequence in the browser.
func (s Stage) HoldMillis() int64 { return s.Hold.Milliseconds() }

func DefaultStages() []Stage {
	return []Stage{
		{Status: "Preparing your order…", Hold: 900 * time.Millisecond},
		{Status: "Opening WhatsApp…", Hold: 1200 * time.Millisecond},
		{Status: "Redirecting…", Hold: 600 * time.Millisecond},
	}
}

// Dispatcher turns an order payload into a WhatsApp deep link. The send is
// fire-and-forget: there is no acknowledgment channel, so nothing here can
// tell whether the operator ever saw the message.
type Dispatcher struct {
	Number string // digits only, with country code
	Stages []Stage
}

func NewDispatcher(number string) *Dispatcher {
	return &Dispatcher{
		Number: number,
		Stages: DefaultStages(),
	}
}

// DeepLink builds the https://wa.me/<number>?text=<encoded> URL carrying
// the plain-text order summary.
func (d *Dispatcher) DeepLink(payload models.OrderPayload) string {
	encoded := strings.ReplaceAll(url.QueryEscape(d.OrderText(payload)), "+", "%20")
	return "https://wa.me/" + d.Number + "?text=" + encoded
}

// OrderText renders the payload as the plain-text summary a human operator
// reads in WhatsApp. Deliberately not JSON.
func (d *Dispatcher) OrderText(p models.OrderPayload) string {
	var b strings.Builder

	fmt.Fprintf(&b, "New Order — Crafts by Anita\n")
	fmt.Fprintf(&b, "Order %s\n", p.OrderNumber)
	fmt.Fprintf(&b, "Placed %s\n\n", p.OrderDate)

	fmt.Fprintf(&b, "Customer: %s %s\n", p.Customer.FirstName, p.Customer.LastName)
	fmt.Fprintf(&b, "Phone: %s\n", p.Customer.Phone)
	fmt.Fprintf(&b, "Email: %s\n\n", p.Customer.Email)

	fmt.Fprintf(&b, "Ship to:\n%s\n%s, %s %s\n%s\n\n",
		p.ShippingAddress.Street, p.ShippingAddress.City, p.ShippingAddress.State,
		p.ShippingAddress.ZipCode, p.ShippingAddress.Country)

	b.WriteString("Items:\n")
	for _, item := range p.Items {
		fmt.Fprintf(&b, "  %d x %s @ %s\n", item.Quantity, item.Name, currency.Format(item.UnitPrice))
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Subtotal: %s\n", currency.Format(p.Pricing.Subtotal))
	if p.Pricing.ShippingCost == 0 {
		fmt.Fprintf(&b, "Shipping (%s): Free\n", p.Pricing.ShippingLabel)
	} else {
		fmt.Fprintf(&b, "Shipping (%s): %s\n", p.Pricing.ShippingLabel, currency.Format(p.Pricing.ShippingCost))
	}
	fmt.Fprintf(&b, "Tax: %s\n", currency.Format(p.Pricing.Tax))
	fmt.Fprintf(&b, "Total: %s\n\n", currency.Format(p.Pricing.Total))

	fmt.Fprintf(&b, "Notes: %s\n", p.Notes)

	return b.String()
}
