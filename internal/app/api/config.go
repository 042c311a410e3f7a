package api

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	dashboardmapper "github.com/Apurer/contractor-dashboard/internal/domains/dashboard/adapters/http/mapper"
)

const defaultAggregateTimeout = 5 * time.Second

// Config carries environment-driven settings for the API process.
type Config struct {
	Port               string
	PostgresDSN        string
	JWTSecret          string
	JWTIssuer          string
	AuthDisabled       bool
	CORSAllowedOrigins []string
	AggregateTimeout   time.Duration
	DisplayLocale      string
	Environment        string
	SeedDemoData       bool
}

// LoadConfig reads an optional .env file, then environment variables, applies
// defaults, and validates basic constraints.
func LoadConfig() (Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load .env: %w", err)
	}
	cfg := Config{
		Port:               envDefault("PORT", "8080"),
		PostgresDSN:        strings.TrimSpace(os.Getenv("POSTGRES_DSN")),
		JWTSecret:          strings.TrimSpace(os.Getenv("AUTH_JWT_SECRET")),
		JWTIssuer:          strings.TrimSpace(os.Getenv("AUTH_JWT_ISSUER")),
		AuthDisabled:       isTruthy(os.Getenv("AUTH_DISABLED")),
		CORSAllowedOrigins: splitList(envDefault("CORS_ALLOWED_ORIGINS", "*")),
		AggregateTimeout:   defaultAggregateTimeout,
		DisplayLocale:      envDefault("DISPLAY_LOCALE", dashboardmapper.DefaultLocale),
		Environment:        envDefault("ENVIRONMENT", "local"),
		SeedDemoData:       isTruthy(envDefault("SEED_DEMO_DATA", "1")),
	}
	if raw := strings.TrimSpace(os.Getenv("AGGREGATE_TIMEOUT_MS")); raw != "" {
		ms, err := strconv.Atoi(raw)
		if err != nil || ms <= 0 {
			return Config{}, fmt.Errorf("AGGREGATE_TIMEOUT_MS must be a positive integer")
		}
		cfg.AggregateTimeout = time.Duration(ms) * time.Millisecond
	}
	if cfg.JWTSecret == "" && !cfg.AuthDisabled {
		return Config{}, fmt.Errorf("AUTH_JWT_SECRET is required unless AUTH_DISABLED is set")
	}
	return cfg, nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}

func envDefault(key, fallback string) string {
	if val := strings.TrimSpace(os.Getenv(key)); val != "" {
		return val
	}
	return fallback
}

func isTruthy(value string) bool {
	value = strings.TrimSpace(strings.ToLower(value))
	return value == "1" || value == "true" || value == "yes"
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
