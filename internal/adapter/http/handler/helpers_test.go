package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestPagination(t *testing.T) {
	tests := []struct {
		query      string
		wantLimit  int
		wantOffset int
	}{
		{"", defaultPageSize, 0},
		{"limit=5&offset=10", 5, 10},
		{"limit=0", defaultPageSize, 0},
		{"limit=1000", maxPageSize, 0},
		{"offset=-3", defaultPageSize, 0},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/invoices?"+tt.query, nil)
			limit, offset := pagination(req)
			if limit != tt.wantLimit || offset != tt.wantOffset {
				t.Fatalf("expected (%d, %d), got (%d, %d)", tt.wantLimit, tt.wantOffset, limit, offset)
			}
		})
	}
}

func TestParseBoolQuery(t *testing.T) {
	tests := []struct {
		query string
		want  bool
	}{
		{"", false},
		{"non_zero", true},
		{"non_zero=true", true},
		{"non_zero=1", true},
		{"non_zero=false", false},
		{"non_zero=maybe", false},
	}

	for _, tt := range tests {
		req := httptest.NewRequest(http.MethodGet, "/reports?"+tt.query, nil)
		if got := parseBoolQuery(req, "non_zero"); got != tt.want {
			t.Fatalf("%q: expected %v, got %v", tt.query, tt.want, got)
		}
	}
}

func TestMapDomainError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{"account not found", domain.ErrAccountNotFound, http.StatusNotFound},
		{"invoice not found", domain.ErrInvoiceNotFound, http.StatusNotFound},
		{"tenant not found", domain.ErrTenantNotFound, http.StatusNotFound},
		{"protected", &domain.ProtectedAccountError{Code: "1001", Operation: "delete"}, http.StatusConflict},
		{"duplicate code", fmt.Errorf("create: %w", domain.ErrDuplicateAccountCode), http.StatusConflict},
		{"tenant exists", domain.ErrTenantExists, http.StatusConflict},
		{"validation", &domain.ValidationError{Fields: []domain.FieldError{{Field: "code", Rule: "required"}}}, http.StatusBadRequest},
		{"tenant mismatch", domain.ErrTenantMismatch, http.StatusForbidden},
		{"expired token", domain.ErrExpiredToken, http.StatusUnauthorized},
		{"missing well-known", &domain.MissingAccountsError{Codes: []string{"1001"}}, http.StatusUnprocessableEntity},
		{"unknown error", errors.New("boom"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := mapDomainError(tt.err); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainErrorProtectedAccount(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, &domain.ProtectedAccountError{Code: "1001", Operation: "delete", Reason: "fixed"}, "failed to delete account")

	if rr.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "cannot delete system account" {
		t.Fatalf("unexpected error label %q", resp.Error)
	}
	if resp.Message != "cannot delete system account 1001: fixed" {
		t.Fatalf("unexpected message %q", resp.Message)
	}
}

func TestWriteDomainErrorValidationFields(t *testing.T) {
	rr := httptest.NewRecorder()

	writeDomainError(rr, &domain.ValidationError{Fields: []domain.FieldError{
		{Field: "code", Rule: "accountcode"},
		{Field: "name", Rule: "max", Param: "255"},
	}}, "failed to create account")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}
	if resp.Error != "validation failed" || len(resp.Fields) != 2 || resp.Fields[1].Param != "255" {
		t.Fatalf("unexpected validation response %+v", resp)
	}
}

func TestWriteJSON(t *testing.T) {
	rr := httptest.NewRecorder()
	payload := map[string]string{"status": "ok"}

	writeJSON(rr, http.StatusCreated, payload)

	if rr.Code != http.StatusCreated {
		t.Fatalf("expected status 201, got %d", rr.Code)
	}

	if ct := rr.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("expected content-type application/json, got %s", ct)
	}

	var decoded map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &decoded); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}

	if decoded["status"] != "ok" {
		t.Fatalf("expected payload to round-trip, got %+v", decoded)
	}
}

func TestWriteError(t *testing.T) {
	rr := httptest.NewRecorder()

	writeError(rr, http.StatusBadRequest, "bad request", "detail")

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rr.Code)
	}

	var resp dto.ErrorResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("failed to decode error response: %v", err)
	}

	if resp.Error != "bad request" {
		t.Fatalf("expected error message to propagate, got %+v", resp)
	}
}
