package application

import (
	"context"
	"testing"

	"github.com/bnema/teller/internal/adapters/store/memory"
	"github.com/bnema/teller/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type fixture struct {
	accounts *memory.AccountStore
	sessions *memory.SessionStore
	logs     *observer.ObservedLogs
	deps     Deps
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	core, logs := observer.New(zapcore.DebugLevel)
	accounts := memory.NewAccountStore(
		domain.Account{ID: "acc-alice", DisplayName: "Alice", Balance: decimal.NewFromInt(100), SavingsBalance: decimal.NewFromInt(100)},
		domain.Account{ID: "acc-bob", DisplayName: "Bob", Balance: decimal.NewFromInt(10)},
	)
	sessions := memory.NewSessionStore()
	require.NoError(t, sessions.Bind(context.Background(), "s-alice", "acc-alice"))

	return &fixture{
		accounts: accounts,
		sessions: sessions,
		logs:     logs,
		deps: Deps{
			Accounts: accounts,
			Sessions: sessions,
			Logger:   zap.New(core),
		},
	}
}

func (f *fixture) balances(t *testing.T, id domain.AccountID) (string, string) {
	t.Helper()

	account, err := f.accounts.Get(context.Background(), id)
	require.NoError(t, err)
	return account.Balance.String(), account.SavingsBalance.String()
}

func aliceRequest(intent string, entities domain.Entities) domain.IntentRequest {
	return domain.IntentRequest{
		SessionID:  "s-alice",
		AccountID:  "acc-alice",
		IntentName: intent,
		Entities:   entities,
		Context:    domain.Context{},
	}
}

func entity(value any) []domain.Entity {
	return []domain.Entity{{Value: value}}
}

func sendMoneyEntities(amount any, contact string) domain.Entities {
	return domain.Entities{
		domain.EntityAmount:       []domain.Entity{{Value: amount, Unit: "$"}},
		domain.EntityTransferType: entity("send"),
		domain.EntityContact:      entity(contact),
	}
}
