package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/infrastructure/auth"
)

func newTenantRouter(jwt *auth.JWTManager) http.Handler {
	r := chi.NewRouter()
	if jwt != nil {
		r.Use(AuthMiddleware(jwt))
	}
	r.With(RequireAdmin).Post("/tenants", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
	})
	r.Route("/tenants/{tenantID}", func(r chi.Router) {
		r.Use(TenantScope)
		r.Get("/accounts", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
		})
	})
	return r
}

func TestAuthMiddlewareTenantScope(t *testing.T) {
	jwt := auth.NewJWTManager("test-secret", time.Hour)
	acmeToken, err := jwt.Generate("alice", "acme")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}
	adminToken, err := jwt.GenerateAdmin("root")
	if err != nil {
		t.Fatalf("generate admin token: %v", err)
	}

	tests := []struct {
		name   string
		method string
		path   string
		header string
		status int
	}{
		{"missing header", http.MethodGet, "/tenants/acme/accounts", "", http.StatusUnauthorized},
		{"malformed header", http.MethodGet, "/tenants/acme/accounts", "Token abc", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/tenants/acme/accounts", "Bearer not-a-jwt", http.StatusUnauthorized},
		{"own tenant", http.MethodGet, "/tenants/acme/accounts", "Bearer " + acmeToken, http.StatusOK},
		{"other tenant", http.MethodGet, "/tenants/beta/accounts", "Bearer " + acmeToken, http.StatusForbidden},
		{"admin any tenant", http.MethodGet, "/tenants/beta/accounts", "Bearer " + adminToken, http.StatusOK},
		{"provision needs admin", http.MethodPost, "/tenants", "Bearer " + acmeToken, http.StatusForbidden},
		{"admin provisions", http.MethodPost, "/tenants", "Bearer " + adminToken, http.StatusCreated},
	}

	router := newTenantRouter(jwt)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rr := httptest.NewRecorder()

			router.ServeHTTP(rr, req)

			if rr.Code != tt.status {
				t.Fatalf("expected %d, got %d: %s", tt.status, rr.Code, rr.Body.String())
			}
		})
	}
}

func TestAuthMiddlewareExpiredToken(t *testing.T) {
	jwt := auth.NewJWTManager("test-secret", -time.Minute)
	token, err := jwt.Generate("alice", "acme")
	if err != nil {
		t.Fatalf("generate token: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/tenants/acme/accounts", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rr := httptest.NewRecorder()

	newTenantRouter(jwt).ServeHTTP(rr, req)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestScopeWithoutAuthAllowsEveryTenant(t *testing.T) {
	router := newTenantRouter(nil)

	for _, req := range []*http.Request{
		httptest.NewRequest(http.MethodGet, "/tenants/beta/accounts", nil),
		httptest.NewRequest(http.MethodPost, "/tenants", nil),
	} {
		rr := httptest.NewRecorder()
		router.ServeHTTP(rr, req)
		if rr.Code >= 400 {
			t.Fatalf("%s %s: expected success without auth, got %d", req.Method, req.URL.Path, rr.Code)
		}
	}
}
