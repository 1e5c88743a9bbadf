// Package retry wraps a Messenger with idempotent, backed-off redelivery.
// Envelopes are keyed by id: concurrent sends of one id collapse into a
// single attempt and an id that was delivered is never sent again.
package retry

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"github.com/cenkalti/backoff/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	DefaultMaxRetries  = 3
	DefaultMaxRemember = 4096
)

type Options struct {
	MaxRetries      uint64
	InitialInterval time.Duration
	MaxInterval     time.Duration
	MaxRemember     int
}

type Messenger struct {
	next   ports.Messenger
	opts   Options
	logger *zap.Logger

	inflight singleflight.Group

	mu        sync.Mutex
	delivered map[string]struct{}
	order     []string
}

var _ ports.Messenger = (*Messenger)(nil)

func NewMessenger(next ports.Messenger, opts Options, logger *zap.Logger) *Messenger {
	if opts.InitialInterval <= 0 {
		opts.InitialInterval = 200 * time.Millisecond
	}
	if opts.MaxInterval <= 0 {
		opts.MaxInterval = 5 * time.Second
	}
	if opts.MaxRemember <= 0 {
		opts.MaxRemember = DefaultMaxRemember
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Messenger{
		next:      next,
		opts:      opts,
		logger:    logger,
		delivered: make(map[string]struct{}, opts.MaxRemember),
	}
}

func (m *Messenger) Send(ctx context.Context, envelope domain.Envelope) error {
	if envelope.ID == "" {
		return fmt.Errorf("%w: envelope id is required for idempotent delivery", domain.ErrTransport)
	}

	_, err, _ := m.inflight.Do(envelope.ID, func() (any, error) {
		if m.wasDelivered(envelope.ID) {
			m.logger.Debug("envelope already delivered", zap.String("envelope_id", envelope.ID))
			return nil, nil
		}
		if err := m.sendWithRetry(ctx, envelope); err != nil {
			return nil, err
		}
		m.remember(envelope.ID)
		return nil, nil
	})
	return err
}

func (m *Messenger) sendWithRetry(ctx context.Context, envelope domain.Envelope) error {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = m.opts.InitialInterval
	policy.MaxInterval = m.opts.MaxInterval
	policy.MaxElapsedTime = 0

	attempt := 0
	operation := func() error {
		attempt++
		err := m.next.Send(ctx, envelope)
		if err == nil {
			return nil
		}
		if ctxErr := ctx.Err(); ctxErr != nil {
			return backoff.Permanent(errors.Join(err, ctxErr))
		}
		return err
	}
	notify := func(err error, wait time.Duration) {
		m.logger.Warn("retrying envelope delivery",
			zap.String("envelope_id", envelope.ID),
			zap.String("session_id", string(envelope.SessionID)),
			zap.Int("attempt", attempt),
			zap.Duration("wait", wait),
			zap.Error(err),
		)
	}

	err := backoff.RetryNotify(operation, backoff.WithContext(backoff.WithMaxRetries(policy, m.opts.MaxRetries), ctx), notify)
	if err != nil && !errors.Is(err, domain.ErrTransport) {
		err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
	}
	return err
}

func (m *Messenger) wasDelivered(id string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	_, ok := m.delivered[id]
	return ok
}

// remember keeps the most recent MaxRemember ids.
func (m *Messenger) remember(id string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.delivered[id]; ok {
		return
	}
	m.delivered[id] = struct{}{}
	m.order = append(m.order, id)
	if len(m.order) > m.opts.MaxRemember {
		oldest := m.order[0]
		m.order = m.order[1:]
		delete(m.delivered, oldest)
	}
}
