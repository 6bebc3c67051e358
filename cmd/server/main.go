package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/anitasharma/craftsbyanita/internal/cart"
	"github.com/anitasharma/craftsbyanita/internal/checkout"
	"github.com/anitasharma/craftsbyanita/internal/config"
	"github.com/anitasharma/craftsbyanita/internal/currency"
	"github.com/anitasharma/craftsbyanita/internal/handlers"
	"github.com/anitasharma/craftsbyanita/internal/identity"
	"github.com/anitasharma/craftsbyanita/internal/pricing"
	"github.com/anitasharma/craftsbyanita/internal/store"
	"github.com/gorilla/csrf"
	"github.com/gorilla/sessions"
)

func main() {
	// Configure slog to output DEBUG level messages
	// This should be done as early as possible in main
	handlerOpts := &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}
	// Using TextHandler for console readability; for production JSONHandler might be preferred.
	logger := slog.New(slog.NewTextHandler(os.Stdout, handlerOpts))
	slog.SetDefault(logger)

	// 1. Load Configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		os.Exit(1)
	}

	// 2. Init DB
	db, err := store.NewStore(cfg.DBPath)
	if err != nil {
		slog.Error("Failed to initialize store", "error", err)
		os.Exit(1)
	}

	// Run Migrations
	if err := db.Migrate("migrations"); err != nil {
		slog.Error("Failed to run migrations", "error", err)
		os.Exit(1)
	}

	// 3. Session Setup
	sessionStore := sessions.NewCookieStore(cfg.SessionKey)
	sessionStore.Options.HttpOnly = true
	sessionStore.Options.Secure = cfg.CookieSecure // Configurable for production
	sessionStore.Options.SameSite = http.SameSiteLaxMode
	sessionStore.Options.Path = "/"
	if cfg.CookieDomain != "" {
		sessionStore.Options.Domain = cfg.CookieDomain
	}

	// 4. Init Templates
	templates := handlers.NewTemplateCache()
	templates.AddFunc("inr", currency.Format)
	templates.AddFunc("price", currency.FormatPrice)

	if err := templates.Load("templates"); err != nil {
		slog.Error("Failed to load templates", "error", err)
		os.Exit(1)
	}

	// 5. Wire collaborators and handlers
	identityService := &identity.Service{Store: db, SessionStore: sessionStore}
	cartProvider := &cart.Provider{SessionStore: sessionStore}
	rules := pricing.Rules{
		FreeShippingThreshold: cfg.FreeShippingThreshold,
		FlatRate:              cfg.FlatRateShipping,
		TaxRate:               cfg.TaxRate,
	}

	homeHandler := &handlers.HomeHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Cart:         cartProvider,
		Identity:     identityService,
	}
	checkoutHandler := &handlers.CheckoutHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Cart:         cartProvider,
		Identity:     identityService,
		Rules:        rules,
		Composer:     checkout.NewComposer(),
		Dispatcher:   checkout.NewDispatcher(cfg.WhatsAppNumber),
		AddressCache: &checkout.AddressCache{KV: db},
	}
	authHandler := &handlers.AuthHandler{
		Templates:    templates,
		SessionStore: sessionStore,
		Identity:     identityService,
	}
	accountHandler := &handlers.AccountHandler{
		Store:        db,
		Templates:    templates,
		SessionStore: sessionStore,
		Identity:     identityService,
	}

	mux := http.NewServeMux()

	// Static Files
	fileServer := http.FileServer(http.Dir("./static"))
	mux.Handle("/static/", http.StripPrefix("/static", fileServer))

	// Rate limiter for mutating public routes
	rateLimiter := handlers.NewRateLimiter(5 * time.Second)

	// Storefront
	mux.HandleFunc("/", homeHandler.Index)
	mux.HandleFunc("POST /cart/add", homeHandler.AddToCart)
	mux.HandleFunc("POST /cart/remove", homeHandler.RemoveFromCart)

	// Checkout flow
	mux.HandleFunc("/checkout", checkoutHandler.CheckoutForm)
	mux.HandleFunc("POST /checkout", rateLimiter.Middleware(checkoutHandler.SubmitCheckout))
	mux.HandleFunc("/checkout/continue", checkoutHandler.AccountCreatedPage)
	mux.HandleFunc("POST /checkout/continue", checkoutHandler.ContinueLogin)
	mux.HandleFunc("/checkout/login", checkoutHandler.LoginPrompt)
	mux.HandleFunc("POST /checkout/login", checkoutHandler.LoginSubmit)
	mux.HandleFunc("/checkout/handoff", checkoutHandler.Handoff)
	mux.HandleFunc("/checkout/confirmation", checkoutHandler.Confirmation)

	// Shopper account
	mux.HandleFunc("/login", authHandler.LoginGet)
	mux.HandleFunc("POST /login", authHandler.LoginPost)
	mux.HandleFunc("/logout", authHandler.Logout)
	mux.HandleFunc("/my-account", accountHandler.MyAccount)

	// 6. Middleware Setup
	CSRF := csrf.Protect(
		cfg.CSRFKey,
		csrf.Secure(cfg.CookieSecure), // Configurable for production
		// Fix for "Forbidden - origin invalid": Trust local development origins
		csrf.TrustedOrigins([]string{"localhost:" + cfg.Port, "127.0.0.1:" + cfg.Port, "localhost", "127.0.0.1"}),
	)

	// Wrap the router with middleware chain
	// Chain: Logger -> Security Headers -> CSRF -> Mux
	handler := handlers.LoggingMiddleware(
		handlers.SecurityHeadersMiddleware(
			CSRF(mux),
		),
	)

	// 7. Start Server with Graceful Shutdown
	server := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: handler,
	}

	// Create a channel to listen for OS signals
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	// Goroutine to start the server
	go func() {
		slog.Info("Server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Server failed to listen and serve", "error", err)
			os.Exit(1)
		}
	}()

	// Block until a signal is received
	<-stop

	slog.Info("Shutting down server gracefully...")

	// Create a deadline to wait for.
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server shutdown failed", "error", err)
		os.Exit(1)
	}

	slog.Info("Server exited gracefully.")
}
