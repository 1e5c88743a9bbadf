package domain

import (
	"encoding/json"
	"math"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLedgerParse(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    Ledger
		wantErr bool
	}{
		{name: "primary", raw: "primary", want: LedgerPrimary},
		{name: "current alias", raw: " Current ", want: LedgerPrimary},
		{name: "savings", raw: "savings", want: LedgerSavings},
		{name: "unknown", raw: "brokerage", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseLedger(tt.raw)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidLedger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAccountDebitRefusesOverdraftWithoutMutation(t *testing.T) {
	account := Account{ID: "acc-1", DisplayName: "Alice", Balance: decimal.NewFromInt(10)}

	err := account.Debit(LedgerPrimary, decimal.NewFromInt(11))
	require.ErrorIs(t, err, ErrInsufficientFunds)
	assert.True(t, account.Balance.Equal(decimal.NewFromInt(10)))

	require.NoError(t, account.Debit(LedgerPrimary, decimal.NewFromInt(10)))
	assert.True(t, account.Balance.IsZero())
}

func TestAccountCreditRejectsUnknownLedger(t *testing.T) {
	account := Account{ID: "acc-1"}
	assert.ErrorIs(t, account.Credit(Ledger("brokerage"), decimal.NewFromInt(1)), ErrInvalidLedger)
}

func TestAccountValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		account Account
		wantErr string
	}{
		{name: "valid", account: Account{ID: "acc-1", DisplayName: "Alice"}},
		{name: "missing id", account: Account{DisplayName: "Alice"}, wantErr: "id is required"},
		{name: "missing name", account: Account{ID: "acc-1"}, wantErr: "display name is required"},
		{name: "negative savings", account: Account{ID: "acc-1", DisplayName: "Alice", SavingsBalance: decimal.NewFromInt(-1)}, wantErr: "non-negative"},
		{name: "fraction of a cent", account: Account{ID: "acc-1", DisplayName: "Alice", Balance: decimal.RequireFromString("1.001")}, wantErr: "decimal places"},
		{name: "large balance", account: Account{ID: "acc-1", DisplayName: "Alice", Balance: decimal.New(5, 12)}},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			err := tc.account.Validate()
			if tc.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestValidateAmount(t *testing.T) {
	tests := []struct {
		name    string
		amount  decimal.Decimal
		wantErr string
	}{
		{name: "zero", amount: decimal.Zero},
		{name: "cents", amount: decimal.RequireFromString("12.34")},
		{name: "padded scale", amount: decimal.RequireFromString("12.3400")},
		{name: "limit", amount: MaxAmount},
		{name: "negative", amount: decimal.NewFromInt(-1), wantErr: "negative"},
		{name: "sub cent", amount: decimal.RequireFromString("0.004"), wantErr: "decimal places"},
		{name: "above limit", amount: MaxAmount.Add(decimal.New(1, -2)), wantErr: "limit"},
		{name: "huge exponent", amount: decimal.New(1, 20_000_000), wantErr: "out of range"},
		{name: "tiny exponent", amount: decimal.New(1, -20_000_000), wantErr: "out of range"},
		{name: "too many digits", amount: decimal.RequireFromString(strings.Repeat("9", 40)), wantErr: "out of range"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateAmount(tt.amount)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidAmount)
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFormatMoneyShowsCents(t *testing.T) {
	assert.Equal(t, "$0.01", FormatMoney(decimal.RequireFromString("0.01")))
	assert.Equal(t, "$40.50", FormatMoney(decimal.RequireFromString("40.5")))
}

func TestEntityDecimal(t *testing.T) {
	tests := []struct {
		name    string
		value   any
		want    string
		wantErr bool
	}{
		{name: "json number", value: json.Number("40.5"), want: "40.5"},
		{name: "float", value: float64(12), want: "12"},
		{name: "dollar string", value: "$7.25", want: "7.25"},
		{name: "not numeric", value: "ten", wantErr: true},
		{name: "nested shape", value: map[string]any{"value": 1}, wantErr: true},
		{name: "nan", value: math.NaN(), wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := Entity{Value: tt.value}.Decimal()
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got.String())
		})
	}
}

func TestEntitiesFirstHandlesAbsentAndEmpty(t *testing.T) {
	entities := Entities{
		EntityContact: {{Value: "Bob"}},
		EntityAmount:  {},
	}

	contact, ok := entities.First(EntityContact)
	require.True(t, ok)
	text, ok := contact.Text()
	assert.True(t, ok)
	assert.Equal(t, "Bob", text)

	_, ok = entities.First(EntityAmount)
	assert.False(t, ok)
	_, ok = entities.First(EntityLocation)
	assert.False(t, ok)
}

func TestContextMergeDoesNotAliasReceiver(t *testing.T) {
	base := Context{"contact": "Bob"}
	merged := base.Merge(Context{"cash": "10$"})

	assert.Equal(t, Context{"contact": "Bob", "cash": "10$"}, merged)
	assert.NotContains(t, base, "cash")
}

func TestDispatchResultRefusedWith(t *testing.T) {
	result := RefusedAt("authorizing", ErrInsufficientFunds)

	assert.True(t, result.IsRefused())
	assert.True(t, result.RefusedWith(ErrInsufficientFunds))
	assert.False(t, result.RefusedWith(ErrMalformedRequest))
	assert.Equal(t, "authorizing: insufficient funds", result.Refusal.Error())
	assert.False(t, Sent(TextMessage("hi")).IsRefused())
}
