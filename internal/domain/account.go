package domain

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type AccountID string

// Ledger names one of the two balances an account holds.
type Ledger string

const (
	LedgerPrimary Ledger = "primary"
	LedgerSavings Ledger = "savings"
)

// Valid reports whether l is a known ledger.
func (l Ledger) Valid() bool {
	switch l {
	case LedgerPrimary, LedgerSavings:
		return true
	default:
		return false
	}
}

// Label is the user-facing name of the ledger.
func (l Ledger) Label() string {
	switch l {
	case LedgerPrimary:
		return "current account"
	case LedgerSavings:
		return "savings"
	default:
		return string(l)
	}
}

// ParseLedger maps the loose names users type ("current", "saving", ...)
// onto a Ledger.
func ParseLedger(raw string) (Ledger, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "primary", "current", "checking":
		return LedgerPrimary, nil
	case "savings", "saving":
		return LedgerSavings, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidLedger, raw)
	}
}

// Account is a customer account with a primary and a savings balance.
// DisplayName is how other customers address it and is unique ignoring case.
type Account struct {
	ID             AccountID
	DisplayName    string
	Balance        decimal.Decimal
	SavingsBalance decimal.Decimal
}

// BalanceOf returns the balance held on ledger.
func (a Account) BalanceOf(ledger Ledger) (decimal.Decimal, error) {
	switch ledger {
	case LedgerPrimary:
		return a.Balance, nil
	case LedgerSavings:
		return a.SavingsBalance, nil
	default:
		return decimal.Zero, fmt.Errorf("%w: %q", ErrInvalidLedger, ledger)
	}
}

// Credit adds amount to ledger. Callers own the non-negativity check.
func (a *Account) Credit(ledger Ledger, amount decimal.Decimal) error {
	switch ledger {
	case LedgerPrimary:
		a.Balance = a.Balance.Add(amount)
	case LedgerSavings:
		a.SavingsBalance = a.SavingsBalance.Add(amount)
	default:
		return fmt.Errorf("%w: %q", ErrInvalidLedger, ledger)
	}
	return nil
}

// Debit removes amount from ledger, failing with ErrInsufficientFunds
// rather than leaving the ledger negative.
func (a *Account) Debit(ledger Ledger, amount decimal.Decimal) error {
	balance, err := a.BalanceOf(ledger)
	if err != nil {
		return err
	}
	if balance.LessThan(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ErrInsufficientFunds, ledger, balance.StringFixed(2), amount.StringFixed(2))
	}
	return a.Credit(ledger, amount.Neg())
}

// Validate checks the fields every stored account must satisfy.
func (a Account) Validate() error {
	if strings.TrimSpace(string(a.ID)) == "" {
		return fmt.Errorf("id is required")
	}
	if strings.TrimSpace(a.DisplayName) == "" {
		return fmt.Errorf("display name is required")
	}
	if a.Balance.IsNegative() || a.SavingsBalance.IsNegative() {
		return fmt.Errorf("balances must be non-negative")
	}
	for _, balance := range []decimal.Decimal{a.Balance, a.SavingsBalance} {
		if err := checkCents(balance); err != nil {
			return fmt.Errorf("balance: %w", err)
		}
	}
	return nil
}

const (
	// MoneyDecimalPlaces is the finest unit money moves in: cents.
	MoneyDecimalPlaces = 2

	maxExponent = 18
	maxDigits   = 36
)

// MaxAmount caps a single movement of money.
var MaxAmount = decimal.New(1, 9)

// checkCents rejects values that are not a whole number of cents. The
// exponent and digit bounds run first so that absurd inputs like 1e-20000000
// never reach decimal arithmetic.
func checkCents(amount decimal.Decimal) error {
	if exp := amount.Exponent(); exp > maxExponent || exp < -maxExponent || amount.NumDigits() > maxDigits {
		return fmt.Errorf("%w: out of range", ErrInvalidAmount)
	}
	if !amount.Equal(amount.Truncate(MoneyDecimalPlaces)) {
		return fmt.Errorf("%w: %s has more than %d decimal places", ErrInvalidAmount, amount.String(), MoneyDecimalPlaces)
	}
	return nil
}

// ValidateAmount accepts zero; transfers additionally require a positive amount.
// Amounts must be whole cents and at most MaxAmount.
func ValidateAmount(amount decimal.Decimal) error {
	if err := checkCents(amount); err != nil {
		return err
	}
	if amount.IsNegative() {
		return fmt.Errorf("%w: %s is negative", ErrInvalidAmount, amount.String())
	}
	if amount.GreaterThan(MaxAmount) {
		return fmt.Errorf("%w: %s exceeds the %s limit", ErrInvalidAmount, FormatMoney(amount), FormatMoney(MaxAmount))
	}
	return nil
}

// FormatMoney renders amount in dollars with cents.
func FormatMoney(amount decimal.Decimal) string {
	return "$" + amount.StringFixed(2)
}
