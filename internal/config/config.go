package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration loaded from environment variables.
type Config struct {
	Port          int
	JWTSecret     string
	DatabaseURL   string
	EncryptionKey string
	CORSOrigins   []string
	// SettingsPath points at the donation settings YAML. Empty means built-in defaults.
	SettingsPath string
	// ReturnURL is where the completion screen sends the donor back to.
	ReturnURL string
	// FormTTL is how long an untouched donation form is kept in memory.
	FormTTL time.Duration
	// TraceEndpoint is the OTLP/HTTP collector URL. Empty disables tracing.
	TraceEndpoint string
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "4001"))
	if err != nil {
		return nil, fmt.Errorf("PORT must be a number: %w", err)
	}

	jwtSecret := getEnv("JWT_SECRET", "")
	if jwtSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	dbURL := getEnv("DATABASE_URL", "")
	if dbURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	encKey := getEnv("ENCRYPTION_KEY", "")
	if encKey == "" {
		return nil, fmt.Errorf("ENCRYPTION_KEY is required (must be exactly 32 bytes)")
	}
	if len(encKey) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be exactly 32 bytes, got %d", len(encKey))
	}

	ttl, err := time.ParseDuration(getEnv("FORM_TTL", "30m"))
	if err != nil || ttl <= 0 {
		return nil, fmt.Errorf("FORM_TTL must be a positive duration, got %q", os.Getenv("FORM_TTL"))
	}

	origins := strings.Split(getEnv("CORS_ORIGINS", "http://localhost:3000,http://localhost:8000"), ",")
	for i := range origins {
		origins[i] = strings.TrimSpace(origins[i])
	}

	return &Config{
		Port:          port,
		JWTSecret:     jwtSecret,
		DatabaseURL:   dbURL,
		EncryptionKey: encKey,
		CORSOrigins:   origins,
		SettingsPath:  getEnv("DONATION_SETTINGS", ""),
		ReturnURL:     getEnv("DONATE_RETURN_URL", "/"),
		FormTTL:       ttl,
		TraceEndpoint: getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", ""),
	}, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
