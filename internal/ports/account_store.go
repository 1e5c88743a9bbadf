package ports

import (
	"context"

	"github.com/bnema/teller/internal/domain"
	"github.com/shopspring/decimal"
)

// Lifecycle is implemented by stores that hold external resources.
type Lifecycle interface {
	Open(ctx context.Context) error
	Close() error
}

// AccountStore maps account identifiers to balance records. Transfer and
// MoveBetweenLedgers apply both legs or neither, re-checking sufficiency
// inside the atomic section.
type AccountStore interface {
	Lifecycle
	Create(ctx context.Context, account domain.Account) error
	Get(ctx context.Context, id domain.AccountID) (domain.Account, error)
	FindByName(ctx context.Context, name string) (domain.Account, error)
	List(ctx context.Context) ([]domain.Account, error)
	GetBalance(ctx context.Context, id domain.AccountID, ledger domain.Ledger) (decimal.Decimal, error)
	HasSufficientFunds(ctx context.Context, id domain.AccountID, amount decimal.Decimal, ledger domain.Ledger) (bool, error)
	Transfer(ctx context.Context, source, target domain.AccountID, amount decimal.Decimal) error
	MoveBetweenLedgers(ctx context.Context, id domain.AccountID, amount decimal.Decimal, from, to domain.Ledger) error
}
