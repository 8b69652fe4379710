package config_test

import (
	"log/slog"
	"reflect"
	"testing"
	"time"

	"github.com/albapepper/scoracle-nhl/internal/config"
)

func TestLoadDefaults(t *testing.T) {
	for _, k := range []string{"NHL_API_BASE_URL", "NHL_REQUESTS_PER_MINUTE", "TZ_NAME", "CATALOG_SOURCE", "CATALOG_DIR", "DATABASE_URL", "LOG_LEVEL", "API_PORT", "PORT", "PROSPECTS_FROM_API"} {
		t.Setenv(k, "")
	}

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.NHLBaseURL != "https://statsapi.web.nhl.com/api/v1" {
		t.Errorf("NHLBaseURL = %q", cfg.NHLBaseURL)
	}
	if cfg.RequestsPerMinute != 60 {
		t.Errorf("RequestsPerMinute = %d, want 60", cfg.RequestsPerMinute)
	}
	if cfg.CatalogSource != "embedded" {
		t.Errorf("CatalogSource = %q, want embedded", cfg.CatalogSource)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("LogLevel = %v, want info", cfg.LogLevel)
	}
	if cfg.APIPort != 8000 {
		t.Errorf("APIPort = %d, want 8000", cfg.APIPort)
	}
	if !cfg.ProspectsFromAPI {
		t.Error("ProspectsFromAPI = false, want true by default")
	}
	if err := cfg.RequireDatabase(); err == nil {
		t.Error("RequireDatabase() = nil with no DATABASE_URL")
	}
	loc, err := cfg.Location()
	if err != nil || loc != time.Local {
		t.Errorf("Location() = %v, %v; want time.Local", loc, err)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("NHL_REQUESTS_PER_MINUTE", "120")
	t.Setenv("NHL_HTTP_TIMEOUT_SECONDS", "5")
	t.Setenv("TZ_NAME", "UTC")
	t.Setenv("CATALOG_SOURCE", "")
	t.Setenv("CATALOG_DIR", "/srv/catalogs")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("CORS_ALLOW_ORIGINS", "https://a.example, https://b.example,")
	t.Setenv("RATE_LIMIT_ENABLED", "false")
	t.Setenv("PROSPECTS_FROM_API", "false")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RequestsPerMinute != 120 || cfg.HTTPTimeout != 5*time.Second {
		t.Errorf("pacing = %d rpm / %v", cfg.RequestsPerMinute, cfg.HTTPTimeout)
	}
	if cfg.CatalogSource != "dir" {
		t.Errorf("CatalogSource = %q, want dir when CATALOG_DIR is set", cfg.CatalogSource)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("LogLevel = %v, want debug", cfg.LogLevel)
	}
	want := []string{"https://a.example", "https://b.example"}
	if !reflect.DeepEqual(cfg.CORSAllowOrigins, want) {
		t.Errorf("CORSAllowOrigins = %v, want %v", cfg.CORSAllowOrigins, want)
	}
	if cfg.RateLimitEnabled {
		t.Error("RateLimitEnabled = true, want false")
	}
	if cfg.ProspectsFromAPI {
		t.Error("ProspectsFromAPI = true, want false")
	}
	if loc, _ := cfg.Location(); loc.String() != "UTC" {
		t.Errorf("Location() = %v, want UTC", loc)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"log level", "LOG_LEVEL", "loud"},
		{"time zone", "TZ_NAME", "Mars/Olympus"},
		{"catalog source", "CATALOG_SOURCE", "s3"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.val)
			if _, err := config.Load(); err == nil {
				t.Errorf("Load() with %s=%q: expected error", tt.key, tt.val)
			}
		})
	}
}

func TestEnvIntFallsBackOnGarbage(t *testing.T) {
	t.Setenv("NHL_REQUESTS_PER_MINUTE", "lots")
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.RequestsPerMinute != 60 {
		t.Errorf("RequestsPerMinute = %d, want fallback 60", cfg.RequestsPerMinute)
	}
}
