// Package checkout implements the checkout orchestration: account
// resolution, pricing hand-off, order composition and the WhatsApp
// dispatch. The HTTP layer drives it and keeps its state in the session.
package checkout

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/anitasharma/craftsbyanita/internal/models"
)

// ResolverState tracks where the shopper is in account resolution.
type ResolverState string

const (
	StateAnonymous             ResolverState = "anonymous"
	StateCreatingAccount       ResolverState = "creating_account"
	StateAccountExistsConflict ResolverState = "account_exists_conflict"
	StateLoggingIn             ResolverState = "logging_in"
	StateAuthenticated         ResolverState = "authenticated"
)

// Outcome is what a Resolve call tells the caller to do next.
type Outcome int

const (
	// OutcomeAuthenticated: proceed to pricing and order composition.
	OutcomeAuthenticated Outcome = iota
	// OutcomeAccountCreated: a fresh account exists but the shopper must
	// confirm ("Login & Continue") before the submit flow re-enters.
	OutcomeAccountCreated
	// OutcomeConflict: the email already owns an account; show the login
	// prompt pre-filled with it.
	OutcomeConflict
)

// Accounts is the slice of the identity provider the resolver needs.
type Accounts interface {
	Register(email, password, firstName, lastName string) (*models.Shopper, error)
	Authenticate(email, password string) (*models.Shopper, error)
}

// Attempt is the ephemeral record of a silent account creation. It only
// lives until the shopper confirms the login or abandons checkout.
type Attempt struct {
	Email             string
	GeneratedPassword string
}

// Snapshot is the persistable part of the resolver, stored in the session
// between requests.
type Snapshot struct {
	State           ResolverState
	ConflictEmail   string
	PendingEmail    string
	PendingPassword string
}

type Resolver struct {
	accounts      Accounts
	state         ResolverState
	shopper       *models.Shopper
	conflictEmail string
	attempt       *Attempt

	// overridable for tests
	genPassword func() (string, error)
}

func NewResolver(accounts Accounts) *Resolver {
	return &Resolver{
		accounts:    accounts,
		state:       StateAnonymous,
		genPassword: generatePassword,
	}
}

// RestoreResolver rebuilds a resolver from a session snapshot. A non-nil
// current shopper always wins: a logged-in shopper is Authenticated no
// matter what the snapshot says.
func RestoreResolver(accounts Accounts, snap Snapshot, current *models.Shopper) *Resolver {
	r := NewResolver(accounts)
	if current != nil {
		r.state = StateAuthenticated
		r.shopper = current
		return r
	}

	switch snap.State {
	case StateAccountExistsConflict:
		r.state = StateAccountExistsConflict
		r.conflictEmail = snap.ConflictEmail
	case StateAuthenticated:
		// Account was created but never confirmed; keep the pending attempt
		// so "Login & Continue" still works.
		if snap.PendingEmail != "" {
			r.state = StateAuthenticated
			r.attempt = &Attempt{Email: snap.PendingEmail, GeneratedPassword: snap.PendingPassword}
		}
	}
	return r
}

func (r *Resolver) Snapshot() Snapshot {
	snap := Snapshot{State: r.state, ConflictEmail: r.conflictEmail}
	if r.attempt != nil {
		snap.PendingEmail = r.attempt.Email
		snap.PendingPassword = r.attempt.GeneratedPassword
	}
	return snap
}

func (r *Resolver) State() ResolverState { return r.state }

func (r *Resolver) Shopper() *models.Shopper { return r.shopper }

// ConflictEmail is the address that hit an existing account, used to
// pre-fill the login prompt.
func (r *Resolver) ConflictEmail() string { return r.conflictEmail }

// Resolve gates a checkout submission on a valid form and authentication.
// Validation runs for every submission; after it, already authenticated
// shoppers pass straight through and anonymous shoppers get a silent
// account created for them.
func (r *Resolver) Resolve(form *models.CheckoutForm) (Outcome, error) {
	if verr := ValidateForm(form); verr != nil {
		return 0, verr
	}

	if r.state == StateAuthenticated {
		if r.attempt != nil {
			// Created earlier in this session, still awaiting the explicit
			// "Login & Continue" confirmation.
			return OutcomeAccountCreated, nil
		}
		return OutcomeAuthenticated, nil
	}

	r.state = StateCreatingAccount
	password, err := r.genPassword()
	if err != nil {
		r.state = StateAnonymous
		return 0, fmt.Errorf("failed to generate account password: %w", err)
	}
	r.attempt = &Attempt{Email: form.Email, GeneratedPassword: password}

	shopper, err := r.accounts.Register(form.Email, password, form.FirstName, form.LastName)
	if err != nil {
		r.attempt = nil
		if errors.Is(err, identity.ErrAccountConflict) {
			r.state = StateAccountExistsConflict
			r.conflictEmail = form.Email
			return OutcomeConflict, nil
		}
		r.state = StateAnonymous
		return 0, err
	}

	// Account exists now, but the shopper is not logged in until they
	// confirm. No auto-login here.
	r.state = StateAuthenticated
	r.shopper = shopper
	return OutcomeAccountCreated, nil
}

// ConfirmLogin completes the "Login & Continue" step for a freshly created
// account, logging in with the generated single-use password.
func (r *Resolver) ConfirmLogin() (*models.Shopper, error) {
	if r.attempt == nil {
		return nil, errors.New("no pending account to confirm")
	}

	prev := r.state
	r.state = StateLoggingIn
	shopper, err := r.accounts.Authenticate(r.attempt.Email, r.attempt.GeneratedPassword)
	if err != nil {
		r.state = prev
		return nil, err
	}

	r.state = StateAuthenticated
	r.shopper = shopper
	r.attempt = nil
	return shopper, nil
}

// Login handles explicit credentials, either from the conflict prompt or
// from the standalone login modal. On failure the resolver stays where it
// was; the shopper may retry indefinitely.
func (r *Resolver) Login(email, password string) (*models.Shopper, error) {
	prev := r.state
	r.state = StateLoggingIn
	shopper, err := r.accounts.Authenticate(email, password)
	if err != nil {
		if prev == StateAccountExistsConflict {
			r.state = StateAccountExistsConflict
		} else {
			r.state = StateAnonymous
		}
		return nil, err
	}

	r.state = StateAuthenticated
	r.shopper = shopper
	r.conflictEmail = ""
	r.attempt = nil
	return shopper, nil
}

// generatePassword makes a single-use random password for silent account
// creation. The shopper never sees it; they can reset it later.
func generatePassword() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
