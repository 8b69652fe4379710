// Package config provides centralized configuration loaded from environment
// variables. Shared by both cmd/api and cmd/ingest.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// --------------------------------------------------------------------------
// Table names, matching the internal/db schema.
// --------------------------------------------------------------------------

const (
	GamesTable      = "nhl_games"
	DraftPicksTable = "nhl_draft_picks"
	SeasonsTable    = "nhl_seasons"
	TeamsTable      = "nhl_teams"
	PlayersTable    = "nhl_players"
	DraftsTable     = "nhl_drafts"
	IngestRunsTable = "nhl_ingest_runs"
)

// --------------------------------------------------------------------------
// Config is populated from environment variables.
// --------------------------------------------------------------------------

type Config struct {
	// NHL stats API
	NHLBaseURL        string
	RequestsPerMinute int
	HTTPTimeout       time.Duration

	// Output defaults
	TimezoneName  string // empty = process local zone
	CatalogSource string // embedded, dir or db
	CatalogDir    string // CSV overrides for CatalogSource=dir

	// Fetch prospect mappings from the API when the catalog has none
	ProspectsFromAPI bool

	// Database (optional; only seeding and --catalog-source=db need it)
	DatabaseURL    string
	DBPoolMinConns int
	DBPoolMaxConns int
	DBPoolMaxLife  time.Duration

	// API server
	APIHost     string
	APIPort     int
	Environment string // development, staging, production
	LogLevel    slog.Level

	// CORS
	CORSAllowOrigins []string

	// Rate limiting
	RateLimitEnabled  bool
	RateLimitRequests int
	RateLimitWindow   time.Duration
}

// Load reads configuration from environment variables with sensible defaults.
func Load() (*Config, error) {
	level, err := parseLevel(envOr("LOG_LEVEL", "info"))
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		NHLBaseURL:        envOr("NHL_API_BASE_URL", "https://statsapi.web.nhl.com/api/v1"),
		RequestsPerMinute: envInt("NHL_REQUESTS_PER_MINUTE", 60),
		HTTPTimeout:       time.Duration(envInt("NHL_HTTP_TIMEOUT_SECONDS", 30)) * time.Second,

		TimezoneName:  envOr("TZ_NAME", ""),
		CatalogSource: envOr("CATALOG_SOURCE", ""),
		CatalogDir:    envOr("CATALOG_DIR", ""),

		ProspectsFromAPI: envBool("PROSPECTS_FROM_API", true),

		DatabaseURL:    envOr("DATABASE_URL", ""),
		DBPoolMinConns: envInt("DB_POOL_MIN_CONNS", 1),
		DBPoolMaxConns: envInt("DB_POOL_MAX_CONNS", 5),
		DBPoolMaxLife:  time.Duration(envInt("DB_POOL_MAX_LIFE_MINUTES", 30)) * time.Minute,

		APIHost:     envOr("API_HOST", "0.0.0.0"),
		APIPort:     envInt("API_PORT", envInt("PORT", 8000)),
		Environment: envOr("ENVIRONMENT", "development"),
		LogLevel:    level,

		CORSAllowOrigins: envList("CORS_ALLOW_ORIGINS", []string{
			"http://localhost:3000",
			"http://localhost:5173",
		}),

		RateLimitEnabled:  envBool("RATE_LIMIT_ENABLED", true),
		RateLimitRequests: envInt("RATE_LIMIT_REQUESTS", 30),
		RateLimitWindow:   time.Duration(envInt("RATE_LIMIT_WINDOW", 60)) * time.Second,
	}

	if cfg.CatalogSource == "" {
		cfg.CatalogSource = "embedded"
		if cfg.CatalogDir != "" {
			cfg.CatalogSource = "dir"
		}
	}
	switch cfg.CatalogSource {
	case "embedded", "dir", "db":
	default:
		return nil, fmt.Errorf("CATALOG_SOURCE %q: must be embedded, dir or db", cfg.CatalogSource)
	}

	if _, err := cfg.Location(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// IsProduction returns true if running in production environment.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// Location resolves TimezoneName. Empty means the process local zone.
func (c *Config) Location() (*time.Location, error) {
	if c.TimezoneName == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.TimezoneName)
	if err != nil {
		return nil, fmt.Errorf("TZ_NAME %q: %w", c.TimezoneName, err)
	}
	return loc, nil
}

// RequireDatabase returns an error when no database URL is configured.
func (c *Config) RequireDatabase() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL must be set")
	}
	return nil
}

// --------------------------------------------------------------------------
// Env helpers
// --------------------------------------------------------------------------

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return fallback
}

func envList(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		if len(result) > 0 {
			return result
		}
	}
	return fallback
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("LOG_LEVEL %q: %w", s, err)
	}
	return level, nil
}
