package handlers

import (
	"net/http"

	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/gorilla/sessions"
)

// AccountHandler shows a logged-in shopper their order history.
type AccountHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Identity     *identity.Service
}

func (h *AccountHandler) MyAccount(w http.ResponseWriter, r *http.Request) {
	shopper := h.Identity.CurrentShopper(r)
	if shopper == nil {
		session, _ := h.SessionStore.Get(r, checkoutSession)
		session.AddFlash(FlashMessage{Type: "error", Message: "Please log in to see your orders."})
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	orders, err := h.Store.GetOrdersByEmail(shopper.Email)
	if err != nil {
		http.Error(w, "Error fetching orders", http.StatusInternalServerError)
		return
	}

	tmpl := h.Templates.Get("my_account.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, checkoutSession)
	data := map[string]interface{}{
		"Shopper": shopper,
		"Orders":  orders,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}
