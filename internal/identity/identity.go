// Package identity owns shopper accounts and the login session. Callers see
// typed error kinds (ErrAccountConflict, ErrInvalidCredentials) rather than
// backend messages; the store adapter is the only place that inspects driver
// error strings.
package identity

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/anitasharma/craftsbyanita/internal/models"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/google/uuid"
	"github.com/gorilla/sessions"
	"golang.org/x/crypto/bcrypt"
)

// ErrAccountConflict means the email already owns an account. Checkout reacts
// by offering a login prompt instead of failing.
var ErrAccountConflict = errors.New("an account with this email already exists")

// ErrInvalidCredentials covers both unknown email and wrong password, so a
// login error does not reveal which one it was.
var ErrInvalidCredentials = errors.New("invalid email or password")

const sessionName = "shopper-session"

type Service struct {
	Store        *store.Store
	SessionStore *sessions.CookieStore
}

// Register creates a new shopper account. It does NOT establish a session;
// the checkout flow requires an explicit login step after account creation.
func (s *Service) Register(email, password, firstName, lastName string) (*models.Shopper, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	shopper := &models.Shopper{
		ID:        uuid.New().String(),
		Email:     email,
		Password:  string(hashed),
		FirstName: firstName,
		LastName:  lastName,
	}

	if err := s.Store.CreateShopper(shopper); err != nil {
		if errors.Is(err, store.ErrDuplicateEmail) {
			return nil, ErrAccountConflict
		}
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	slog.Info("Shopper account created", "shopper_id", shopper.ID)
	return shopper, nil
}

// Authenticate checks credentials without touching the session.
func (s *Service) Authenticate(email, password string) (*models.Shopper, error) {
	shopper, err := s.Store.GetShopperByEmail(email)
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	if shopper == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(shopper.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return shopper, nil
}

// CurrentShopper hydrates the logged-in shopper from the session, or returns
// nil for an anonymous visitor. Any session or lookup failure is treated as
// anonymous rather than an error.
func (s *Service) CurrentShopper(r *http.Request) *models.Shopper {
	session, _ := s.SessionStore.Get(r, sessionName)
	id, ok := session.Values["shopper_id"].(string)
	if !ok || id == "" {
		return nil
	}

	shopper, err := s.Store.GetShopperByID(id)
	if err != nil {
		slog.Warn("Failed to hydrate shopper from session", "error", err)
		return nil
	}
	return shopper
}

// EstablishSession records the shopper in the session cookie.
func (s *Service) EstablishSession(w http.ResponseWriter, r *http.Request, shopper *models.Shopper) error {
	session, _ := s.SessionStore.Get(r, sessionName)
	session.Values["shopper_id"] = shopper.ID
	session.Options.Path = "/"
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

// Logout clears both the in-memory session values and the persisted cookie.
func (s *Service) Logout(w http.ResponseWriter, r *http.Request) {
	session, _ := s.SessionStore.Get(r, sessionName)
	delete(session.Values, "shopper_id")
	session.Options.MaxAge = -1 // Expire immediately
	session.Save(r, w)
}
