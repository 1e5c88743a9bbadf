package toml

import (
	"fmt"

	"github.com/bnema/teller/internal/domain"
	"github.com/shopspring/decimal"
)

const currentSchemaVersion = 1

type fileSchema struct {
	Version  int             `toml:"version"`
	Accounts []accountSchema `toml:"accounts"`
}

func (s *fileSchema) applyDefaults() {
	if s.Version == 0 {
		s.Version = currentSchemaVersion
	}
}

func (s fileSchema) validateVersion() error {
	if s.Version > currentSchemaVersion {
		return fmt.Errorf("unsupported accounts schema version %d (current %d)", s.Version, currentSchemaVersion)
	}

	return nil
}

// Balances are decimal strings so that no float rounding reaches the file.
type accountSchema struct {
	ID             string `toml:"id"`
	DisplayName    string `toml:"display_name"`
	Balance        string `toml:"balance"`
	SavingsBalance string `toml:"savings_balance,omitempty"`
}

func toSchema(account domain.Account) accountSchema {
	return accountSchema{
		ID:             string(account.ID),
		DisplayName:    account.DisplayName,
		Balance:        account.Balance.String(),
		SavingsBalance: account.SavingsBalance.String(),
	}
}

func fromSchema(entry accountSchema) (domain.Account, error) {
	balance, err := parseBalance(entry.Balance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s balance: %w", entry.ID, err)
	}
	savings, err := parseBalance(entry.SavingsBalance)
	if err != nil {
		return domain.Account{}, fmt.Errorf("account %s savings balance: %w", entry.ID, err)
	}

	account := domain.Account{
		ID:             domain.AccountID(entry.ID),
		DisplayName:    entry.DisplayName,
		Balance:        balance,
		SavingsBalance: savings,
	}
	if err := account.Validate(); err != nil {
		return domain.Account{}, fmt.Errorf("account %q: %w", entry.ID, err)
	}
	return account, nil
}

func parseBalance(raw string) (decimal.Decimal, error) {
	if raw == "" {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(raw)
}
