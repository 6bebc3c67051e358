package handlers

import (
	"net/http"
	"strconv"

	"github.com/anitasharma/craftsbyanita/internal/cart"
	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

type HomeHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Cart         *cart.Provider
	Identity     *identity.Service
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	items, err := h.Store.GetAvailableItems()
	if err != nil {
		http.Error(w, "Error fetching items", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("home.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}

	session, _ := h.SessionStore.Get(r, checkoutSession)
	data := map[string]interface{}{
		"Items":     items,
		"CartCount": h.Cart.Count(r),
		"Shopper":   h.Identity.CurrentShopper(r),
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// AddToCart puts a catalog item in the session cart.
func (h *HomeHandler) AddToCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	defer session.Save(r, w)

	itemID, err := strconv.Atoi(r.FormValue("item_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid item."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	quantity := 1
	if q, err := strconv.Atoi(r.FormValue("quantity")); err == nil && q > 0 {
		quantity = q
	}

	item, err := h.Store.GetItemByID(itemID)
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Item not found."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	if err := h.Cart.Add(w, r, models.CartItem{
		ItemID:    item.ID,
		Name:      item.Title,
		UnitPrice: item.Price,
		Quantity:  quantity,
		ImageRef:  item.ImageURL,
	}); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not update your cart."})
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: item.Title + " added to your cart."})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// RemoveFromCart drops an item from the session cart.
func (h *HomeHandler) RemoveFromCart(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	defer session.Save(r, w)

	itemID, err := strconv.Atoi(r.FormValue("item_id"))
	if err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid item."})
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	if err := h.Cart.Remove(w, r, itemID); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not update your cart."})
	}
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}
