// Package cart keeps the shopper's cart in a cookie session. Checkout treats
// the cart as read-only input plus a Clear call after a successful handoff.
package cart

import (
	"encoding/gob"
	"fmt"
	"net/http"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/gorilla/sessions"
)

// Register types for gob encoding (used by sessions)
func init() {
	gob.Register([]models.CartItem{})
}

const (
	sessionName = "cart-session"
	itemsKey    = "items"
)

type Provider struct {
	SessionStore *sessions.CookieStore
}

// Items returns the cart contents. A missing or undecodable session yields
// an empty cart.
func (p *Provider) Items(r *http.Request) []models.CartItem {
	session, _ := p.SessionStore.Get(r, sessionName)
	items, ok := session.Values[itemsKey].([]models.CartItem)
	if !ok {
		return nil
	}
	return items
}

// TotalPrice sums unit price times quantity over the cart.
func (p *Provider) TotalPrice(r *http.Request) float64 {
	var total float64
	for _, item := range p.Items(r) {
		total += item.UnitPrice * float64(item.Quantity)
	}
	return total
}

// Count returns the number of units in the cart (for the header badge).
func (p *Provider) Count(r *http.Request) int {
	var count int
	for _, item := range p.Items(r) {
		count += item.Quantity
	}
	return count
}

// Add puts an item in the cart, merging quantities if it is already there.
func (p *Provider) Add(w http.ResponseWriter, r *http.Request, item models.CartItem) error {
	if item.Quantity < 1 {
		item.Quantity = 1
	}

	session, _ := p.SessionStore.Get(r, sessionName)
	items, _ := session.Values[itemsKey].([]models.CartItem)

	merged := false
	for i := range items {
		if items[i].ItemID == item.ItemID {
			items[i].Quantity += item.Quantity
			merged = true
			break
		}
	}
	if !merged {
		items = append(items, item)
	}

	session.Values[itemsKey] = items
	session.Options.Path = "/"
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Remove drops an item from the cart entirely.
func (p *Provider) Remove(w http.ResponseWriter, r *http.Request, itemID int) error {
	session, _ := p.SessionStore.Get(r, sessionName)
	items, _ := session.Values[itemsKey].([]models.CartItem)

	kept := items[:0]
	for _, item := range items {
		if item.ItemID != itemID {
			kept = append(kept, item)
		}
	}

	session.Values[itemsKey] = kept
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}

// Clear empties the cart.
func (p *Provider) Clear(w http.ResponseWriter, r *http.Request) error {
	session, _ := p.SessionStore.Get(r, sessionName)
	delete(session.Values, itemsKey)
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}
	return nil
}
