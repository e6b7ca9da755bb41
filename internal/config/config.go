// Package config loads and validates application configuration from environment variables.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Session store backends selectable with STORE.
const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"
	StoreSQLite   = "sqlite"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// Store selects where sessions live: memory, postgres or sqlite.
	// Defaults to "memory".
	Store string

	// DatabaseURL is the Postgres connection string. Required when Store is postgres.
	DatabaseURL string

	// SQLitePath is the database file used when Store is sqlite.
	// Defaults to "tripplanner.db".
	SQLitePath string

	// CatalogPath points at a TOML activity catalog. Empty means the builtin catalog.
	CatalogPath string

	// MaxBodyBytes caps request body size. Defaults to 1 MiB.
	MaxBodyBytes int64

	// SampleDelay is how long sample itinerary generation waits before
	// filling the trip. Defaults to 0.
	SampleDelay time.Duration
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set and any
// values that could not be parsed.
func Load() (Config, error) {
	cfg := Config{
		Port:        getEnv("PORT", "8080"),
		LogLevel:    getEnv("LOG_LEVEL", "info"),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		Store:       strings.ToLower(getEnv("STORE", StoreMemory)),
		SQLitePath:  getEnv("SQLITE_PATH", "tripplanner.db"),
		CatalogPath: os.Getenv("CATALOG_PATH"),
	}

	var missing, invalid []string

	switch cfg.Store {
	case StoreMemory, StoreSQLite:
	case StorePostgres:
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
		if cfg.DatabaseURL == "" {
			missing = append(missing, "DATABASE_URL")
		}
	default:
		invalid = append(invalid, fmt.Sprintf("STORE=%q (want memory, postgres or sqlite)", cfg.Store))
	}

	maxBody, err := strconv.ParseInt(getEnv("MAX_BODY_BYTES", "1048576"), 10, 64)
	if err != nil || maxBody <= 0 {
		invalid = append(invalid, fmt.Sprintf("MAX_BODY_BYTES=%q (want a positive integer)", os.Getenv("MAX_BODY_BYTES")))
	}
	cfg.MaxBodyBytes = maxBody

	delay, err := time.ParseDuration(getEnv("SAMPLE_DELAY", "0s"))
	if err != nil || delay < 0 {
		invalid = append(invalid, fmt.Sprintf("SAMPLE_DELAY=%q (want a non-negative duration)", os.Getenv("SAMPLE_DELAY")))
	}
	cfg.SampleDelay = delay

	var problems []string
	if len(missing) > 0 {
		problems = append(problems, "required environment variables not set: "+strings.Join(missing, ", "))
	}
	if len(invalid) > 0 {
		problems = append(problems, "invalid environment variables: "+strings.Join(invalid, ", "))
	}
	if len(problems) > 0 {
		return Config{}, fmt.Errorf("%s", strings.Join(problems, "; "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
