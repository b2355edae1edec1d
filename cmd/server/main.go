package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aiagenz/donate/internal/config"
	"github.com/aiagenz/donate/internal/handler"
	appMiddleware "github.com/aiagenz/donate/internal/middleware"
	"github.com/aiagenz/donate/internal/repository"
	"github.com/aiagenz/donate/internal/service"
	"github.com/aiagenz/donate/internal/telemetry"
	"github.com/aiagenz/donate/internal/ws"
	"github.com/aiagenz/donate/pkg/crypto"
	"github.com/aiagenz/donate/pkg/payment"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
)

func main() {
	// Load .env file if present (for local development)
	loadDotEnv(".env")

	// Load config
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ Config error: %v", err)
	}

	settings, err := config.LoadDonationSettings(cfg.SettingsPath)
	if err != nil {
		log.Fatalf("❌ Donation settings error: %v", err)
	}
	catalog, initial, err := settings.Catalog()
	if err != nil {
		log.Fatalf("❌ Donation settings error: %v", err)
	}
	log.Printf("✅ Donation catalog loaded (%d durations)", len(catalog.Durations()))

	ctx, stop := context.WithCancel(context.Background())
	defer stop()

	shutdownTracing, err := telemetry.Setup(ctx, "donate", cfg.TraceEndpoint)
	if err != nil {
		log.Fatalf("❌ Tracing error: %v", err)
	}

	// Initialize database
	db, err := repository.NewDB(ctx, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Database error: %v", err)
	}
	defer db.Close()

	// Run migrations
	if err := repository.RunMigrations(ctx, db); err != nil {
		log.Fatalf("❌ Migration error: %v", err)
	}
	log.Println("✅ Database connected & migrated")

	// Donor emails are sealed before they reach the database
	sealer, err := crypto.NewSealer(cfg.EncryptionKey)
	if err != nil {
		log.Fatalf("❌ Encryption error: %v", err)
	}

	// Initialize services
	donationRepo := repository.NewDonationRepository(db)
	forms := service.NewFormStore(catalog, initial, cfg.FormTTL)
	forms.StartSweeper(ctx, time.Minute)

	// Mock providers until real card and PayPal credentials are configured
	gateway := payment.NewMockGateway()
	donationSvc := service.NewDonationService(forms, gateway, gateway, donationRepo, sealer)
	verifier := service.NewTokenVerifier(cfg.JWTSecret)

	// Initialize handlers
	healthHandler := handler.NewHealthHandler(donationRepo, forms)
	settingsHandler := handler.NewSettingsHandler(catalog, initial)
	donationHandler := handler.NewDonationHandler(donationSvc, cfg.ReturnURL)
	pageHandler := handler.NewPageHandler(donationSvc, cfg.ReturnURL)
	eventsHandler := ws.NewEventsHandler(forms, cfg.CORSOrigins)

	// Build router
	r := chi.NewRouter()

	// Global middleware
	r.Use(appMiddleware.Recovery)
	r.Use(telemetry.Middleware("donate"))
	r.Use(appMiddleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Global rate limiter (20 req/sec per IP, burst of 40)
	globalRL := appMiddleware.NewRateLimiter(ctx, 20, 40)
	r.Use(globalRL.Middleware())

	// Signed-in donors are recognised but never required to donate
	r.Use(appMiddleware.OptionalAuth(verifier))

	// Health check and settings
	r.Get("/health", healthHandler.Check)
	r.Get("/api/donate/settings", settingsHandler.Get)

	// Donation form
	r.Post("/api/donate/forms", donationHandler.Open)
	r.Route("/api/donate/forms/{id}", func(r chi.Router) {
		r.Get("/", donationHandler.Get)
		r.Delete("/", donationHandler.Delete)
		r.Post("/duration", donationHandler.SelectDuration)
		r.Post("/amount", donationHandler.SelectAmount)
		r.Post("/processing", donationHandler.Processing)
		r.Post("/outcome", donationHandler.Outcome)
		r.Post("/reset", donationHandler.Reset)
		r.Get("/continue", donationHandler.Continue)
		r.Get("/events", eventsHandler.Handle)

		// Payment routes
		r.Group(func(r chi.Router) {
			r.Use(appMiddleware.PaymentRateLimiter(ctx))
			r.Post("/card", donationHandler.Card)
			r.Post("/paypal", donationHandler.PayPal)
		})
	})

	// Donation history for signed-in donors
	r.Group(func(r chi.Router) {
		r.Use(appMiddleware.RequireAuth)
		r.Get("/api/donations", donationHandler.ListMine)
	})

	// Server-rendered form
	r.Get("/donate", pageHandler.New)
	r.Get("/donate/{id}", pageHandler.Show)

	// Start server
	addr := fmt.Sprintf("0.0.0.0:%d", cfg.Port)
	server := &http.Server{
		Addr:        addr,
		Handler:     r,
		ReadTimeout: 30 * time.Second,
		// WriteTimeout must be 0 for WebSocket connections (they are long-lived)
		IdleTimeout: 120 * time.Second,
	}

	// Graceful shutdown
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		log.Println("🛑 Shutting down...")
		stop()
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(ctx); err != nil {
			log.Printf("⚠️  Shutdown error: %v", err)
		}
		if err := shutdownTracing(ctx); err != nil {
			log.Printf("⚠️  Tracing shutdown error: %v", err)
		}
	}()

	log.Printf("🚀 Donation service listening at http://%s", addr)
	if err := server.ListenAndServe(); err != http.ErrServerClosed {
		log.Fatalf("❌ Server error: %v", err)
	}
}

// loadDotEnv reads path into the environment. Variables already set win over
// the file, and a missing file is not an error.
func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("⚠️  Ignoring %s: %v", path, err)
	}
}
