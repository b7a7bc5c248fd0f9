package config

import (
	"fmt"
	"os"

	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"

	"github.com/iho/storebooks/internal/domain"
)

// ChartFile is the YAML layout of a chart seed file.
type ChartFile struct {
	Accounts []ChartEntry `yaml:"accounts"`
}

// ChartEntry is one extra account in a chart seed file.
type ChartEntry struct {
	Code           string `yaml:"code"            validate:"required,accountcode"`
	Name           string `yaml:"name"            validate:"required,max=255"`
	Type           string `yaml:"type"            validate:"required,accounttype"`
	OpeningBalance string `yaml:"opening_balance"`
	Description    string `yaml:"description"     validate:"max=1000"`
}

// LoadChart reads extra chart accounts from a YAML file. Well-known codes
// and duplicates are rejected since every tenant is already seeded with them.
func LoadChart(path string) ([]domain.Account, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read chart file: %w", err)
	}

	var file ChartFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse chart YAML: %w", err)
	}

	seen := make(map[string]bool, len(file.Accounts))
	for _, code := range domain.WellKnownCodes {
		seen[code] = true
	}

	accounts := make([]domain.Account, 0, len(file.Accounts))
	for i, e := range file.Accounts {
		if err := domain.Validate(e); err != nil {
			return nil, fmt.Errorf("chart entry %d: %w", i, err)
		}
		if seen[e.Code] {
			return nil, fmt.Errorf("chart entry %d: %w", i, domain.ErrDuplicateAccountCode)
		}
		seen[e.Code] = true

		opening := decimal.Zero
		if e.OpeningBalance != "" {
			opening, err = decimal.NewFromString(e.OpeningBalance)
			if err != nil {
				return nil, fmt.Errorf("chart entry %d: opening balance: %w", i, err)
			}
			if err := domain.ValidateAmount(opening); err != nil {
				return nil, fmt.Errorf("chart entry %d: %w", i, err)
			}
		}

		accounts = append(accounts, domain.Account{
			Code:           e.Code,
			Name:           e.Name,
			Type:           domain.AccountType(e.Type),
			OpeningBalance: opening,
			Description:    e.Description,
		})
	}

	return accounts, nil
}
