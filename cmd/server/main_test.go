package main

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/storebooks/internal/infrastructure/config"
)

func memoryConfig() *config.Config {
	return &config.Config{
		StorageDriver:  config.StorageMemory,
		IdempotencyTTL: time.Hour,
		RateLimitBurst: 20,
		ReportCacheTTL: time.Minute,
	}
}

func TestBuildAppMemoryDriver(t *testing.T) {
	a, err := buildApp(context.Background(), memoryConfig(), zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer a.Close()

	if a.rateLimiter != nil {
		t.Fatal("rate limiter should be off when RATE_LIMIT_RPS is zero")
	}

	req := httptest.NewRequest(http.MethodPost, "/api/v1/tenants", strings.NewReader(`{"id":"acme","name":"Acme"}`))
	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, req)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected ready, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "storebooks_source_mutations_total") && !strings.Contains(rec.Body.String(), "go_goroutines") {
		t.Fatalf("expected metrics output, got %q", rec.Body.String())
	}
}

func TestBuildAppWithRedisAndAuth(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := memoryConfig()
	cfg.RedisURL = "redis://" + mr.Addr()
	cfg.ReportCacheEnabled = true
	cfg.AuthEnabled = true
	cfg.JWTSecret = "server-test-secret"
	cfg.JWTExpiration = time.Hour
	cfg.RateLimitRPS = 100

	a, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry())
	if err != nil {
		t.Fatalf("build failed: %v", err)
	}
	defer a.Close()

	if a.rateLimiter == nil {
		t.Fatal("expected rate limiter")
	}

	rec := httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/v1/tenants", nil))
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("expected redis check to pass, got %d: %s", rec.Code, rec.Body.String())
	}

	mr.Close()
	rec = httptest.NewRecorder()
	a.router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ready", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503 once redis is gone, got %d", rec.Code)
	}
}

func TestBuildAppMissingChartSeed(t *testing.T) {
	cfg := memoryConfig()
	cfg.ChartSeedFile = "does-not-exist.yaml"

	if _, err := buildApp(context.Background(), cfg, zerolog.Nop(), prometheus.NewRegistry()); err == nil {
		t.Fatal("expected error for missing chart seed file")
	}
}
