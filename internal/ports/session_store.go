package ports

import (
	"context"

	"github.com/bnema/teller/internal/domain"
)

// ContextMutator must be a pure function of its input.
type ContextMutator func(domain.Context) domain.Context

// SessionStore binds conversation sessions to accounts. Context updates for
// one session serialize; independent sessions never block each other.
type SessionStore interface {
	Lifecycle
	Bind(ctx context.Context, id domain.SessionID, accountID domain.AccountID) error
	Resolve(ctx context.Context, id domain.SessionID) (domain.Session, error)
	UpdateContext(ctx context.Context, id domain.SessionID, mutate ContextMutator) (domain.Context, error)
}
