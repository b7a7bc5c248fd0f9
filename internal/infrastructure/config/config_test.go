package config_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/infrastructure/config"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "")
	t.Setenv("JWT_SECRET", "")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL == "" {
		t.Fatalf("expected default database URL to be set")
	}

	if cfg.JWTSecret != "" {
		t.Fatalf("expected JWT secret default to be empty, got %q", cfg.JWTSecret)
	}

	if cfg.HTTPPort != "8080" {
		t.Fatalf("expected default HTTP port 8080, got %s", cfg.HTTPPort)
	}

	if cfg.StorageDriver != config.StoragePostgres {
		t.Fatalf("expected postgres storage by default, got %s", cfg.StorageDriver)
	}

	if cfg.ReportCacheEnabled || cfg.ReportCacheTTL != 5*time.Minute {
		t.Fatalf("expected report cache disabled with 5m TTL, got enabled=%v ttl=%s", cfg.ReportCacheEnabled, cfg.ReportCacheTTL)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("JWT_SECRET", "top-secret")
	t.Setenv("AUTH_ENABLED", "true")
	t.Setenv("STORAGE_DRIVER", "memory")
	t.Setenv("REPORT_CACHE_ENABLED", "true")
	t.Setenv("RATE_LIMIT_RPS", "12.5")

	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("unexpected error loading config: %v", err)
	}

	if cfg.DatabaseURL != "postgres://example" {
		t.Fatalf("expected custom database URL, got %s", cfg.DatabaseURL)
	}

	if cfg.RedisURL != "redis://example" {
		t.Fatalf("expected custom redis URL, got %s", cfg.RedisURL)
	}

	if cfg.HTTPPort != "9090" {
		t.Fatalf("expected HTTP port override, got %s", cfg.HTTPPort)
	}

	if cfg.DatabaseTimeout != 45*time.Second {
		t.Fatalf("expected database timeout override, got %s", cfg.DatabaseTimeout)
	}

	if cfg.JWTSecret != "top-secret" || !cfg.AuthEnabled {
		t.Fatalf("expected auth settings to be set, got secret=%s enabled=%v", cfg.JWTSecret, cfg.AuthEnabled)
	}

	if cfg.StorageDriver != config.StorageMemory || !cfg.ReportCacheEnabled || cfg.RateLimitRPS != 12.5 {
		t.Fatalf("unexpected overrides %+v", cfg)
	}
}

func TestLoadInvalidDuration(t *testing.T) {
	t.Setenv("HTTP_READ_TIMEOUT", "not-a-duration")

	if _, err := config.Load(); err == nil {
		t.Fatalf("expected error for invalid duration")
	}
}

func TestLoadRejectsInconsistentSettings(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown driver", map[string]string{"STORAGE_DRIVER": "sqlite"}},
		{"auth without secret", map[string]string{"AUTH_ENABLED": "true", "JWT_SECRET": ""}},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := config.Load(); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	if err := os.WriteFile(path, []byte("STOREBOOKS_TEST_ONLY=1\n"), 0o600); err != nil {
		t.Fatalf("write env file: %v", err)
	}
	t.Setenv("STOREBOOKS_TEST_ONLY", "")
	os.Unsetenv("STOREBOOKS_TEST_ONLY")

	if _, err := config.Load(path); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if os.Getenv("STOREBOOKS_TEST_ONLY") != "1" {
		t.Fatalf("expected env file to be applied")
	}

	if _, err := config.Load(filepath.Join(t.TempDir(), "missing.env")); err == nil {
		t.Fatalf("expected error for missing env file")
	}
}

func TestLoadChart(t *testing.T) {
	path := writeChart(t, `
accounts:
  - code: "1300"
    name: Prepaid Rent
    type: asset
    opening_balance: "1200.00"
  - code: "5200"
    name: Travel
    type: expense
    description: Staff travel
`)

	accounts, err := config.LoadChart(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(accounts) != 2 {
		t.Fatalf("expected 2 accounts, got %d", len(accounts))
	}
	if accounts[0].Code != "1300" || accounts[0].Type != domain.AccountTypeAsset || accounts[0].OpeningBalance.String() != "1200" {
		t.Fatalf("unexpected first account %+v", accounts[0])
	}
	if accounts[1].Description != "Staff travel" || !accounts[1].OpeningBalance.IsZero() {
		t.Fatalf("unexpected second account %+v", accounts[1])
	}
}

func TestLoadChartRejectsBadEntries(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr error
	}{
		{"well-known code", "accounts:\n  - {code: \"1001\", name: Cash, type: asset}\n", domain.ErrDuplicateAccountCode},
		{"duplicate", "accounts:\n  - {code: \"1300\", name: A, type: asset}\n  - {code: \"1300\", name: B, type: asset}\n", domain.ErrDuplicateAccountCode},
		{"bad type", "accounts:\n  - {code: \"1300\", name: A, type: cash}\n", domain.ErrValidation},
		{"missing name", "accounts:\n  - {code: \"1300\", type: asset}\n", domain.ErrValidation},
		{"negative opening", "accounts:\n  - {code: \"1300\", name: A, type: asset, opening_balance: \"-5\"}\n", domain.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := config.LoadChart(writeChart(t, tt.yaml))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}

func TestLoadChartMissingFile(t *testing.T) {
	if _, err := config.LoadChart(filepath.Join(t.TempDir(), "absent.yaml")); err == nil {
		t.Fatalf("expected error for missing file")
	}
}

func writeChart(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "chart.yaml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write chart: %v", err)
	}
	return path
}
