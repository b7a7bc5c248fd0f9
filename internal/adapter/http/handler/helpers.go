package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	writeJSON(w, status, dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError maps err to a status and writes it. message is used for
// errors that carry no more specific label.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	status := mapDomainError(err)
	resp := dto.ErrorResponse{Error: message, Message: err.Error()}

	var protected *domain.ProtectedAccountError
	if errors.As(err, &protected) {
		resp.Error = "cannot " + protected.Operation + " system account"
	}

	var invalid *domain.ValidationError
	if errors.As(err, &invalid) {
		resp.Error = "validation failed"
		for _, f := range invalid.Fields {
			resp.Fields = append(resp.Fields, dto.FieldErrorResponse{Field: f.Field, Rule: f.Rule, Param: f.Param})
		}
	} else if errors.Is(err, domain.ErrValidation) {
		resp.Error = "validation failed"
	}

	writeJSON(w, status, resp)
}

// mapDomainError maps domain errors to HTTP status codes.
func mapDomainError(err error) int {
	switch {
	case errors.Is(err, domain.ErrAccountNotFound),
		errors.Is(err, domain.ErrInvoiceNotFound),
		errors.Is(err, domain.ErrBondNotFound),
		errors.Is(err, domain.ErrExpenseNotFound),
		errors.Is(err, domain.ErrTenantNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrProtectedAccount),
		errors.Is(err, domain.ErrDuplicateAccountCode),
		errors.Is(err, domain.ErrTenantExists):
		return http.StatusConflict
	case errors.Is(err, domain.ErrValidation),
		errors.Is(err, domain.ErrInvalidAccountType):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrTenantMismatch):
		return http.StatusForbidden
	case errors.Is(err, domain.ErrInvalidToken),
		errors.Is(err, domain.ErrExpiredToken):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrMissingWellKnownAccount):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}

// pagination reads limit and offset, clamped to sane bounds.
func pagination(r *http.Request) (limit, offset int) {
	limit = parseIntQuery(r, "limit", defaultPageSize)
	offset = parseIntQuery(r, "offset", 0)
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// parseBoolQuery treats "1", "true" and a bare key as true.
func parseBoolQuery(r *http.Request, key string) bool {
	q := r.URL.Query()
	if !q.Has(key) {
		return false
	}
	v, err := strconv.ParseBool(q.Get(key))
	if err != nil {
		return q.Get(key) == ""
	}
	return v
}

// wantsHTML reports whether the caller asked for the printable document.
func wantsHTML(r *http.Request) bool {
	return r.URL.Query().Get("format") == "html"
}

func tenantParam(r *http.Request) string {
	return chi.URLParam(r, "tenantID")
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	return dec.Decode(dst)
}
