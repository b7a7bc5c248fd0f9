package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/iho/storebooks/internal/adapter/http/dto"
	"github.com/iho/storebooks/internal/infrastructure/auth"
	"github.com/iho/storebooks/internal/infrastructure/config"
	"github.com/iho/storebooks/internal/infrastructure/logger"
	"github.com/iho/storebooks/internal/infrastructure/postgres"
)

type rootOptions struct {
	baseURL string
	token   string
	timeout time.Duration
	tenant  string
	output  string
}

func (o *rootOptions) client() *apiClient {
	return newAPIClient(o.baseURL, o.token, o.timeout)
}

func (o *rootOptions) requireTenant() error {
	if o.tenant == "" {
		return errors.New("--tenant is required")
	}
	return nil
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:           "storebooks-cli",
		Short:         "Storebooks CLI tool",
		Long:          `A command line interface for the storebooks bookkeeping API.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	rootCmd.SetOut(out)

	rootCmd.PersistentFlags().StringVar(&opts.baseURL, "url", "http://localhost:8080", "Base URL of the storebooks API")
	rootCmd.PersistentFlags().StringVar(&opts.token, "token", os.Getenv("STOREBOOKS_TOKEN"), "Bearer token")
	rootCmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "Request timeout")
	rootCmd.PersistentFlags().StringVarP(&opts.tenant, "tenant", "t", "", "Tenant ID")
	rootCmd.PersistentFlags().StringVarP(&opts.output, "output", "o", "table", "Output format: table or json")

	rootCmd.AddCommand(
		tenantCmd(opts),
		accountsCmd(opts),
		ledgerCmd(opts),
		reportCmd(opts),
		tokenCmd(),
		migrateCmd(),
	)

	return rootCmd
}

func tenantCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "tenant", Short: "Tenant operations"}

	provision := &cobra.Command{
		Use:   "provision <id> <name>",
		Short: "Create a tenant with the standard chart of accounts",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.client().do(http.MethodPost, "/api/v1/tenants", nil, dto.ProvisionTenantRequest{ID: args[0], Name: args[1]})
			if err != nil {
				return err
			}

			var tenant dto.TenantResponse
			if err := json.Unmarshal(body, &tenant); err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), tenant)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Provisioned tenant %s (%s)\n", tenant.ID, tenant.Name)
			return nil
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			body, err := opts.client().do(http.MethodGet, "/api/v1/tenants", nil, nil)
			if err != nil {
				return err
			}

			var resp dto.ListResponse[dto.TenantResponse]
			if err := json.Unmarshal(body, &resp); err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), resp)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME")
			for _, t := range resp.Items {
				fmt.Fprintf(tw, "%s\t%s\n", t.ID, t.Name)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(provision, list)
	return cmd
}

func accountsCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "accounts", Short: "Chart of accounts"}

	list := &cobra.Command{
		Use:   "list",
		Short: "List the tenant's accounts",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireTenant(); err != nil {
				return err
			}
			body, err := opts.client().do(http.MethodGet, tenantPath(opts.tenant, "accounts"), nil, nil)
			if err != nil {
				return err
			}

			var accounts []dto.AccountResponse
			if err := json.Unmarshal(body, &accounts); err != nil {
				return err
			}
			if opts.output == "json" {
				return printJSON(cmd.OutOrStdout(), accounts)
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 2, 2, ' ', 0)
			fmt.Fprintln(tw, "CODE\tNAME\tTYPE\tOPENING\tSYSTEM")
			for _, a := range accounts {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%v\n", a.Code, truncate(a.Name, 32), a.Type, a.OpeningBalance.StringFixed(2), a.SystemAccount)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(list)
	return cmd
}

func ledgerCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{Use: "ledger", Short: "Ledger operations"}

	consistency := &cobra.Command{
		Use:   "consistency",
		Short: "Check that the tenant's books balance",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := opts.requireTenant(); err != nil {
				return err
			}

			body, err := opts.client().do(http.MethodGet, tenantPath(opts.tenant, "ledger", "consistency"), nil, nil)
			var apiErr *apiError
			if err != nil && !(errors.As(err, &apiErr) && apiErr.Status == http.StatusConflict) {
				return err
			}

			var result dto.ConsistencyResponse
			if jerr := json.Unmarshal(body, &result); jerr != nil {
				return fmt.Errorf("failed to parse response: %w", jerr)
			}
			if opts.output == "json" {
				if perr := printJSON(cmd.OutOrStdout(), result); perr != nil {
					return perr
				}
			} else {
				w := cmd.OutOrStdout()
				if result.Consistent {
					fmt.Fprintln(w, "Consistency check PASSED")
				} else {
					fmt.Fprintln(w, "Consistency check FAILED")
				}
				fmt.Fprintf(w, "Total debit:  %s\n", result.TotalDebit.StringFixed(2))
				fmt.Fprintf(w, "Total credit: %s\n", result.TotalCredit.StringFixed(2))
				if !result.OpeningDifference.IsZero() {
					fmt.Fprintf(w, "Opening difference: %s\n", result.OpeningDifference.StringFixed(2))
				}
				if len(result.MissingAccounts) > 0 {
					fmt.Fprintf(w, "Missing accounts: %s\n", strings.Join(result.MissingAccounts, ", "))
				}
			}

			if !result.Consistent {
				return errors.New("ledger is inconsistent")
			}
			return nil
		},
	}

	cmd.AddCommand(consistency)
	return cmd
}

func reportCmd(opts *rootOptions) *cobra.Command {
	var (
		nonZero bool
		asOf    string
	)

	cmd := &cobra.Command{Use: "report", Short: "Financial reports"}

	get := func(parts ...string) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			if err := opts.requireTenant(); err != nil {
				return err
			}

			path := parts
			if len(args) > 0 {
				path = append(append([]string{}, parts...), args[0], "statement")
			}

			query := url.Values{}
			if opts.output == "html" {
				query.Set("format", "html")
			}
			if nonZero {
				query.Set("non_zero", "true")
			}
			if asOf != "" {
				query.Set("as_of", asOf)
			}

			body, err := opts.client().do(http.MethodGet, tenantPath(opts.tenant, path...), query, nil)
			if err != nil {
				return err
			}
			if opts.output == "html" {
				_, err = cmd.OutOrStdout().Write(body)
				return err
			}
			return printIndented(cmd.OutOrStdout(), body)
		}
	}

	trialBalance := &cobra.Command{
		Use:   "trial-balance",
		Short: "Trial balance",
		RunE:  get("reports", "trial-balance"),
	}
	trialBalance.Flags().BoolVar(&nonZero, "non-zero", false, "Only accounts with movement")
	trialBalance.Flags().StringVar(&asOf, "as-of", "", "Report date (YYYY-MM-DD)")

	cmd.AddCommand(
		trialBalance,
		&cobra.Command{Use: "final-accounts", Short: "Trial balance with income statement", RunE: get("reports", "final-accounts")},
		&cobra.Command{Use: "balance-sheet", Short: "Balance sheet", RunE: get("reports", "balance-sheet")},
		&cobra.Command{Use: "chart", Short: "Chart of accounts", RunE: get("reports", "chart")},
		&cobra.Command{Use: "statement <code>", Short: "Account statement", Args: cobra.ExactArgs(1), RunE: get("accounts")},
	)
	return cmd
}

func tokenCmd() *cobra.Command {
	var (
		tenantID string
		admin    bool
		envFile  string
	)

	cmd := &cobra.Command{Use: "token", Short: "API tokens"}

	issue := &cobra.Command{
		Use:   "issue <subject>",
		Short: "Sign a token with JWT_SECRET",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			if cfg.JWTSecret == "" {
				return errors.New("JWT_SECRET is not set")
			}
			if !admin && tenantID == "" {
				return errors.New("either --tenant-id or --admin is required")
			}

			jwt := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTExpiration)
			var token string
			if admin {
				token, err = jwt.GenerateAdmin(args[0])
			} else {
				token, err = jwt.Generate(args[0], tenantID)
			}
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	issue.Flags().StringVar(&tenantID, "tenant-id", "", "Tenant the token is scoped to")
	issue.Flags().BoolVar(&admin, "admin", false, "Issue an admin token")
	issue.Flags().StringVar(&envFile, "env-file", "", "Env file to load")

	cmd.AddCommand(issue)
	return cmd
}

func migrateCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{Use: "migrate", Short: "Database migrations"}
	cmd.PersistentFlags().StringVar(&envFile, "env-file", "", "Env file to load")

	run := func(down bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(envFile)
			if err != nil {
				return err
			}
			log := logger.New(logger.Config{Level: cfg.LogLevel, Format: "console", Output: cmd.ErrOrStderr()})
			if down {
				return postgres.RunMigrationsDown(cfg.DatabaseURL, cfg.MigrationsPath, log)
			}
			return postgres.RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath, log)
		}
	}

	cmd.AddCommand(
		&cobra.Command{Use: "up", Short: "Apply all pending migrations", RunE: run(false)},
		&cobra.Command{Use: "down", Short: "Roll back all migrations", RunE: run(true)},
	)
	return cmd
}

func loadConfig(envFile string) (*config.Config, error) {
	if envFile != "" {
		return config.Load(envFile)
	}
	return config.Load()
}

func printJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printIndented(w io.Writer, raw []byte) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		_, werr := w.Write(raw)
		return werr
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(w)
	return err
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}
