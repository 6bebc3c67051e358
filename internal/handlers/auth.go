package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

// AuthHandler serves the standalone login path: a shopper can log in at any
// time, independent of a checkout submission.
type AuthHandler struct {
	Templates    *TemplateCache
	SessionStore *sessions.CookieStore
	Identity     *identity.Service
}

func (h *AuthHandler) LoginGet(w http.ResponseWriter, r *http.Request) {
	tmpl := h.Templates.Get("login.html")
	if tmpl == nil {
		http.Error(w, "Template not found", http.StatusInternalServerError)
		return
	}
	session, _ := h.SessionStore.Get(r, checkoutSession)
	data := map[string]interface{}{
		"CsrfField": csrf.TemplateField(r),
		"Flashes":   GetFlash(session),
	}
	session.Save(r, w)
	tmpl.Execute(w, data)
}

func (h *AuthHandler) LoginPost(w http.ResponseWriter, r *http.Request) {
	session, _ := h.SessionStore.Get(r, checkoutSession)

	shopper, err := h.Identity.Authenticate(r.FormValue("email"), r.FormValue("password"))
	if err != nil {
		if errors.Is(err, identity.ErrInvalidCredentials) {
			session.AddFlash(FlashMessage{Type: "error", Message: "Invalid email or password"})
		} else {
			slog.Error("Login lookup failed", "error", err)
			session.AddFlash(FlashMessage{Type: "error", Message: "Something went wrong on our end. Please try again."})
		}
		session.Save(r, w)
		http.Redirect(w, r, "/login", http.StatusSeeOther)
		return
	}

	if err := h.Identity.EstablishSession(w, r, shopper); err != nil {
		slog.Error("Failed to save session", "error", err)
		http.Error(w, "Failed to save session", http.StatusInternalServerError)
		return
	}

	session.AddFlash(FlashMessage{Type: "success", Message: "Welcome back, " + shopper.FirstName + "!"})
	session.Save(r, w)

	slog.Info("Login successful", "shopper_id", shopper.ID)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	h.Identity.Logout(w, r)

	session, _ := h.SessionStore.Get(r, checkoutSession)
	session.AddFlash(FlashMessage{Type: "success", Message: "Logged out successfully!"})
	session.Save(r, w)
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
