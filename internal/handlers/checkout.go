package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anitasharma/craftsbyanita/internal/cart"
	"github.com/anitasharma/craftsbyanita/internal/checkout"
	"github.com/anitasharma/craftsbyanita/internal/currency"
	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/anitasharma/craftsbyanita/internal/pricing"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

const checkoutSession = "checkout-session"

// Session value keys for checkout state carried between requests.
const (
	keyResolver  = "resolver"
	keyFormDraft = "form_draft"
	keyPayload   = "order_payload"
)

type CheckoutHandler struct {
	Store        *store.Store
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Cart         *cart.Provider
	Identity     *identity.Service
	Rules        pricing.Rules
	Composer     *checkout.Composer
	Dispatcher   *checkout.Dispatcher
	AddressCache *checkout.AddressCache
}

// CheckoutForm renders the checkout page: cart summary, live pricing and
// the shipping form, pre-filled from the session draft or, for a returning
// shopper, from their account and saved address.
func (h *CheckoutHandler) CheckoutForm(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)

	items := h.Cart.Items(r)
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty. Add some items before checking out."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	shopper := h.Identity.CurrentShopper(r)
	form, hasDraft := session.Values[keyFormDraft].(models.CheckoutForm)
	if !hasDraft {
		form = h.prefillForm(shopper)
	}

	snapshot := pricing.Compute(h.Cart.TotalPrice(r), h.Rules)

	tmpl := h.Templates.Get("checkout.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Items":          items,
		"Form":           form,
		"Pricing":        snapshot,
		"Shopper":        shopper,
		"ToFreeShipping": pricing.AmountToFreeShipping(snapshot.Subtotal, h.Rules),
		"Flashes":        GetFlash(session),
		"CsrfField":      csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// prefillForm seeds a fresh form draft. An authenticated shopper gets their
// account names plus whatever address they used last time.
func (h *CheckoutHandler) prefillForm(shopper *models.Shopper) models.CheckoutForm {
	form := models.CheckoutForm{Country: "India"}
	if shopper == nil {
		return form
	}

	form.FirstName = shopper.FirstName
	form.LastName = shopper.LastName
	form.Email = shopper.Email

	if addr, ok := h.AddressCache.Load(shopper.Email); ok {
		form.Phone = addr.Phone
		form.Street = addr.Street
		form.City = addr.City
		form.State = addr.State
		form.ZipCode = addr.ZipCode
		form.Country = addr.Country
	}
	return form
}

// SubmitCheckout runs one pass of the checkout state machine: resolve the
// account, then price, compose and hand off. Conflicts and fresh accounts
// detour through their confirmation pages and the shopper re-submits.
func (h *CheckoutHandler) SubmitCheckout(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)

	if err := r.ParseForm(); err != nil {
		session.AddFlash(FlashMessage{Type: "error", Message: "Invalid form data."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	form := models.CheckoutForm{
		FirstName: r.FormValue("first_name"),
		LastName:  r.FormValue("last_name"),
		Email:     r.FormValue("email"),
		Phone:     r.FormValue("phone"),
		Street:    r.FormValue("street"),
		City:      r.FormValue("city"),
		State:     r.FormValue("state"),
		ZipCode:   r.FormValue("zip_code"),
		Country:   r.FormValue("country"),
		Notes:     r.FormValue("notes"),
	}
	// Keep the draft so redirects back to the form stay filled in.
	session.Values[keyFormDraft] = form

	items := h.Cart.Items(r)
	if len(items) == 0 {
		session.AddFlash(FlashMessage{Type: "error", Message: "Your cart is empty."})
		session.Save(r, w)
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	resolver := h.restoreResolver(r, session)
	outcome, err := resolver.Resolve(&form)
	session.Values[keyResolver] = resolver.Snapshot()

	if err != nil {
		if verr, ok := err.(*checkout.ValidationError); ok {
			for _, msg := range verr.Fields {
				session.AddFlash(FlashMessage{Type: "error", Message: msg})
			}
		} else {
			slog.Error("Account resolution failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Could not create your account. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	switch outcome {
	case checkout.OutcomeConflict:
		session.AddFlash(FlashMessage{Type: "info", Message: "An account with this email already exists. Please log in to continue."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout/login", http.StatusSeeOther)
	case checkout.OutcomeAccountCreated:
		session.Save(r, w)
		http.Redirect(w, r, "/checkout/continue", http.StatusSeeOther)
	case checkout.OutcomeAuthenticated:
		h.finalize(w, r, session, resolver.Shopper(), form, items)
	}
}

// finalize is the post-authentication tail of a submission: price, compose,
// persist, then side effects. The payload is captured in the session before
// the fail-open side effects run, so losing either of those cannot lose the
// order itself.
func (h *CheckoutHandler) finalize(w http.ResponseWriter, r *http.Request, session *sessions.Session, shopper *models.Shopper, form models.CheckoutForm, items []models.CartItem) {
	snapshot := pricing.Compute(h.Cart.TotalPrice(r), h.Rules)
	payload := h.Composer.Compose(items, &form, snapshot, shopper)

	order := orderRecord(payload, shopper)
	if err := h.Store.CreateOrder(order); err != nil {
		slog.Error("Failed to persist order", "order_ref", payload.OrderNumber, "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not place your order. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	session.Values[keyPayload] = payload
	delete(session.Values, keyFormDraft)
	delete(session.Values, keyResolver)

	// Fail-open side effects. The order is already captured above.
	h.AddressCache.Save(shopper.Email, payload.ShippingAddress)
	if err := h.Cart.Clear(w, r); err != nil {
		slog.Warn("Failed to clear cart after order", "order_ref", payload.OrderNumber, "error", err)
	}

	slog.Info("Order composed", "order_ref", payload.OrderNumber, "total", currency.Format(payload.Pricing.Total))
	session.Save(r, w)
	http.Redirect(w, r, "/checkout/handoff", http.StatusSeeOther)
}

// AccountCreatedPage shows the explicit "Login & Continue" checkpoint after
// a silent account creation.
func (h *CheckoutHandler) AccountCreatedPage(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	snap, ok := session.Values[keyResolver].(checkout.Snapshot)
	if !ok || snap.PendingEmail == "" {
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	tmpl := h.Templates.Get("account_created.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Email":     snap.PendingEmail,
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// ContinueLogin completes the new-account confirmation, logging the shopper
// in with the generated password and sending them back to place the order.
func (h *CheckoutHandler) ContinueLogin(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)

	resolver := h.restoreResolver(r, session)
	shopper, err := resolver.ConfirmLogin()
	session.Values[keyResolver] = resolver.Snapshot()

	if err != nil {
		slog.Error("Login after account creation failed", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not log you in. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	if err := h.Identity.EstablishSession(w, r, shopper); err != nil {
		slog.Error("Failed to establish session", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not log you in. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome, " + shopper.FirstName + "! Review your order and place it."})
	session.Save(r, w)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// LoginPrompt renders the checkout login page, pre-filled with the email
// that hit the account conflict.
func (h *CheckoutHandler) LoginPrompt(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	snap, _ := session.Values[keyResolver].(checkout.Snapshot)

	tmpl := h.Templates.Get("checkout_login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Email":     snap.ConflictEmail,
		"Flashes":   GetFlash(session),
		"CsrfField": csrf.TemplateField(r),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// LoginSubmit handles credentials from the conflict prompt. Failures keep
// the shopper on the prompt; there is no retry limit.
func (h *CheckoutHandler) LoginSubmit(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)

	resolver := h.restoreResolver(r, session)
	shopper, err := resolver.Login(r.FormValue("email"), r.FormValue("password"))
	session.Values[keyResolver] = resolver.Snapshot()

	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid email or password. Please try again."})
		} else {
			slog.Error("Login lookup failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong on our end. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/checkout/login", http.StatusSeeOther)
		return
	}

	if err := h.Identity.EstablishSession(w, r, shopper); err != nil {
		slog.Error("Failed to establish session", "error", err)
		session.AddFlash(FlashMessage{Type: "error", Message: "Could not log you in. Please try again."})
		session.Save(r, w)
		http.Redirect(w, r, "/checkout/login", http.StatusSeeOther)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + shopper.FirstName + "! Review your order and place it."})
	session.Save(r, w)
	http.Redirect(w, r, "/checkout", http.StatusSeeOther)
}

// Handoff renders the page that walks the dispatch status sequence in the
// browser and opens the WhatsApp deep link. Fire-and-forget: after this
// there is no way to know whether the operator picked up the order.
func (h *CheckoutHandler) Handoff(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	payload, ok := session.Values[keyPayload].(models.OrderPayload)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}

	slog.Info("Order handed off", "order_ref", payload.OrderNumber)

	tmpl := h.Templates.Get("handoff.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Payload":  payload,
		"DeepLink": h.Dispatcher.DeepLink(payload),
		"Stages":   h.Dispatcher.Stages,
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

// Confirmation shows the order snapshot one time. The payload is dropped
// from the session on read; a reload after that goes back to the home page,
// which is fine because the order already went out via WhatsApp.
func (h *CheckoutHandler) Confirmation(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)
	payload, ok := session.Values[keyPayload].(models.OrderPayload)
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
		return
	}
	delete(session.Values, keyPayload)

	tmpl := h.Templates.Get("confirmation.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	data := map[string]interface{}{
		"Payload": payload,
		"Flashes": GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *CheckoutHandler) restoreResolver(r *http.Request, session *sessions.Session) *checkout.Resolver {
	snap, _ := session.Values[keyResolver].(checkout.Snapshot)
	return checkout.RestoreResolver(h.Identity, snap, h.Identity.CurrentShopper(r))
}

// orderRecord flattens a payload into the persisted order row.
func orderRecord(p models.OrderPayload, shopper *models.Shopper) *models.Order {
	return &models.Order{
		OrderRef:      p.OrderNumber,
		ShopperEmail:  shopper.Email,
		CustomerName:  p.Customer.FirstName + " " + p.Customer.LastName,
		CustomerPhone: p.Customer.Phone,
		Street:        p.ShippingAddress.Street,
		City:          p.ShippingAddress.City,
		State:         p.ShippingAddress.State,
		ZipCode:       p.ShippingAddress.ZipCode,
		Country:       p.ShippingAddress.Country,
		Subtotal:      p.Pricing.Subtotal,
		ShippingCost:  p.Pricing.ShippingCost,
		ShippingLabel: p.Pricing.ShippingLabel,
		Tax:           p.Pricing.Tax,
		Total:         p.Pricing.Total,
		Notes:         p.Notes,
		Status:        "Sent to WhatsApp",
		Lines:         p.Items,
	}
}
