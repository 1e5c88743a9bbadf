package ports

import (
	"context"

	"github.com/bnema/teller/internal/domain"
)

// Messenger delivers outbound messages to end users.
type Messenger interface {
	Send(ctx context.Context, envelope domain.Envelope) error
}
