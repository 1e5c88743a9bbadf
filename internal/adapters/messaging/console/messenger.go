// Package console writes outbound envelopes as JSON lines. It backs the
// dispatch command and local development.
package console

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sync"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
)

type Messenger struct {
	mu  sync.Mutex
	enc *json.Encoder
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(w io.Writer) *Messenger {
	return &Messenger{enc: json.NewEncoder(w)}
}

func (m *Messenger) Send(ctx context.Context, envelope domain.Envelope) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.enc.Encode(envelope); err != nil {
		return fmt.Errorf("%w: write envelope: %w", domain.ErrTransport, err)
	}
	return nil
}
