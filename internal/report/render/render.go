// Package render prints report documents as standalone HTML pages.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/storebooks/internal/domain"
	"github.com/iho/storebooks/internal/report"
)

//go:embed templates/*.html
var templateFS embed.FS

var templates = template.Must(
	template.New("").Funcs(template.FuncMap{
		"money": money,
		"date":  date,
	}).ParseFS(templateFS, "templates/*.html"),
)

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

func date(t time.Time) string {
	if t.Equal(domain.OpeningDate) {
		return "Opening"
	}
	return t.Format("2006-01-02")
}

// Page wraps a document with the tenant and time it was produced for.
type Page[T any] struct {
	Title       string
	TenantID    string
	GeneratedAt time.Time
	Body        T
}

// RenderStatement writes an account statement page.
func RenderStatement(w io.Writer, tenantID string, st report.Statement) error {
	return execute(w, "statement.html", Page[report.Statement]{
		Title:       fmt.Sprintf("Statement of account %s %s", st.Account.Code, st.Account.Name),
		TenantID:    tenantID,
		GeneratedAt: time.Now().UTC(),
		Body:        st,
	})
}

// RenderFinalAccounts writes the trial balance and income statement page.
func RenderFinalAccounts(w io.Writer, tenantID string, fa report.FinalAccounts) error {
	return execute(w, "final_accounts.html", Page[report.FinalAccounts]{
		Title:       "Final accounts",
		TenantID:    tenantID,
		GeneratedAt: time.Now().UTC(),
		Body:        fa,
	})
}

// RenderChart writes the chart of accounts page.
func RenderChart(w io.Writer, tenantID string, chart []domain.Account) error {
	return execute(w, "chart.html", Page[[]domain.Account]{
		Title:       "Chart of accounts",
		TenantID:    tenantID,
		GeneratedAt: time.Now().UTC(),
		Body:        chart,
	})
}

// RenderBalanceSheet writes the balance sheet page.
func RenderBalanceSheet(w io.Writer, tenantID string, bs report.BalanceSheet) error {
	return execute(w, "balance_sheet.html", Page[report.BalanceSheet]{
		Title:       "Balance sheet",
		TenantID:    tenantID,
		GeneratedAt: time.Now().UTC(),
		Body:        bs,
	})
}

func execute(w io.Writer, name string, data any) error {
	if err := templates.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("render %s: %w", name, err)
	}
	return nil
}
