package models

import (
	"time"
)

type Item struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Price       float64   `json:"price"`
	ImageURL    string    `json:"image_url"`
	Status      string    `json:"status"` // "available", "out_of_stock", "archived"
	CreatedAt   time.Time `json:"created_at"`
}

// CartItem is a line in the shopper's cart. The cart owns these; checkout
// only reads them.
type CartItem struct {
	ItemID    int     `json:"item_id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"` // always >= 1
	ImageRef  string  `json:"image_ref"`
}

type Shopper struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	Password  string    `json:"-"` // bcrypt hash
	CreatedAt time.Time `json:"created_at"`
}

// SavedAddress is the last shipping address a shopper used, kept so the
// checkout form can be pre-filled next time. Last write wins.
type SavedAddress struct {
	Phone   string `json:"phone"`
	Street  string `json:"street"`
	City    string `json:"city"`
	State   string `json:"state"`
	ZipCode string `json:"zip_code"`
	Country string `json:"country"`
}

// CheckoutForm is the mutable draft the shopper fills in. It lives in the
// session until checkout completes or is abandoned.
type CheckoutForm struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Street    string
	City      string
	State     string
	ZipCode   string
	Country   string
	Notes     string
}

// PricingSnapshot is derived from the cart subtotal and the shipping/tax
// rules. It is recomputed on every render and only persisted as part of an
// order payload.
type PricingSnapshot struct {
	Subtotal              float64 `json:"subtotal"`
	ShippingCost          float64 `json:"shipping_cost"`
	ShippingLabel         string  `json:"shipping_label"`
	FreeShippingThreshold float64 `json:"free_shipping_threshold"`
	Tax                   float64 `json:"tax"`
	Total                 float64 `json:"total"`
}

type CustomerInfo struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
}

// OrderPayload is the immutable artifact built at submission time. It is
// what the confirmation page shows and what gets encoded into the WhatsApp
// deep link.
type OrderPayload struct {
	OrderNumber     string          `json:"order_number"`
	OrderDate       string          `json:"order_date"`
	Customer        CustomerInfo    `json:"customer"`
	ShippingAddress SavedAddress    `json:"shipping_address"`
	Items           []CartItem      `json:"items"`
	Pricing         PricingSnapshot `json:"pricing"`
	Notes           string          `json:"notes"`
}

// Order is the persisted record of a submitted order.
type Order struct {
	ID            int        `json:"id"`
	OrderRef      string     `json:"order_ref"` // public "CBA-..." number
	ShopperEmail  string     `json:"shopper_email"`
	CustomerName  string     `json:"customer_name"`
	CustomerPhone string     `json:"customer_phone"`
	Street        string     `json:"street"`
	City          string     `json:"city"`
	State         string     `json:"state"`
	ZipCode       string     `json:"zip_code"`
	Country       string     `json:"country"`
	Subtotal      float64    `json:"subtotal"`
	ShippingCost  float64    `json:"shipping_cost"`
	ShippingLabel string     `json:"shipping_label"`
	Tax           float64    `json:"tax"`
	Total         float64    `json:"total"`
	Notes         string     `json:"notes"`
	Status        string     `json:"status"`
	Lines         []CartItem `json:"lines,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}
