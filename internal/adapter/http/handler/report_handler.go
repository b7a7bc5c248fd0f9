package handler

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/report"
	"github.com/iho/storebooks/internal/report/render"
)

// ReportService defines the documents served by ReportHandler.
type ReportService interface {
	ChartOfAccounts(ctx context.Context, tenantID string) ([]domain.Account, error)
	FinalAccounts(ctx context.Context, tenantID string, opts report.FinalAccountsOptions) (report.FinalAccounts, error)
	BalanceSheet(ctx context.Context, tenantID string) (report.BalanceSheet, error)
}

// ReportHandler serves the read-only reports of a book.
type ReportHandler struct {
	reportUC ReportService
}

// NewReportHandler creates a new ReportHandler.
func NewReportHandler(reportUC ReportService) *ReportHandler {
	return &ReportHandler{reportUC: reportUC}
}

// Chart returns the chart of accounts.
func (h *ReportHandler) Chart(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantParam(r)

	chart, err := h.reportUC.ChartOfAccounts(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err, "failed to build chart of accounts")
		return
	}

	if wantsHTML(r) {
		writeHTML(w, func(buf *bytes.Buffer) error {
			return render.RenderChart(buf, tenantID, chart)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.ChartFromReport(chart))
}

// TrialBalance returns the trial balance. ?non_zero drops idle accounts and
// ?as_of=YYYY-MM-DD ignores later postings.
func (h *ReportHandler) TrialBalance(w http.ResponseWriter, r *http.Request) {
	opts, ok := finalAccountsOptions(w, r)
	if !ok {
		return
	}

	fa, err := h.reportUC.FinalAccounts(r.Context(), tenantParam(r), opts)
	if err != nil {
		writeDomainError(w, err, "failed to build trial balance")
		return
	}

	writeJSON(w, http.StatusOK, dto.TrialBalanceFromReport(fa))
}

// FinalAccounts returns the trial balance with the income statement.
func (h *ReportHandler) FinalAccounts(w http.ResponseWriter, r *http.Request) {
	opts, ok := finalAccountsOptions(w, r)
	if !ok {
		return
	}
	tenantID := tenantParam(r)

	fa, err := h.reportUC.FinalAccounts(r.Context(), tenantID, opts)
	if err != nil {
		writeDomainError(w, err, "failed to build final accounts")
		return
	}

	if wantsHTML(r) {
		writeHTML(w, func(buf *bytes.Buffer) error {
			return render.RenderFinalAccounts(buf, tenantID, fa)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.FinalAccountsFromReport(fa))
}

// BalanceSheet returns the financial position of the book.
func (h *ReportHandler) BalanceSheet(w http.ResponseWriter, r *http.Request) {
	tenantID := tenantParam(r)

	bs, err := h.reportUC.BalanceSheet(r.Context(), tenantID)
	if err != nil {
		writeDomainError(w, err, "failed to build balance sheet")
		return
	}

	if wantsHTML(r) {
		writeHTML(w, func(buf *bytes.Buffer) error {
			return render.RenderBalanceSheet(buf, tenantID, bs)
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.BalanceSheetFromReport(bs))
}

func finalAccountsOptions(w http.ResponseWriter, r *http.Request) (report.FinalAccountsOptions, bool) {
	opts := report.FinalAccountsOptions{NonZeroOnly: parseBoolQuery(r, "non_zero")}

	if v := r.URL.Query().Get("as_of"); v != "" {
		asOf, err := time.Parse(time.DateOnly, v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid as_of", "expected YYYY-MM-DD")
			return opts, false
		}
		// A calendar date covers the whole day.
		opts.AsOf = asOf.Add(24*time.Hour - time.Nanosecond)
	}

	return opts, true
}
