package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
)

type sessionEntry struct {
	mu      sync.Mutex
	session domain.Session
}

type SessionStore struct {
	mu       sync.RWMutex
	sessions map[domain.SessionID]*sessionEntry
}

var _ ports.SessionStore = (*SessionStore)(nil)

func NewSessionStore() *SessionStore {
	return &SessionStore{sessions: map[domain.SessionID]*sessionEntry{}}
}

func (s *SessionStore) Open(ctx context.Context) error {
	return ctx.Err()
}

func (s *SessionStore) Close() error {
	return nil
}

// Bind is idempotent for the same account; rebinding to another account fails.
func (s *SessionStore) Bind(ctx context.Context, id domain.SessionID, accountID domain.AccountID) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if id == "" || accountID == "" {
		return fmt.Errorf("bind session: session id and account id are required")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.sessions[id]; ok {
		existing.mu.Lock()
		defer existing.mu.Unlock()
		if existing.session.AccountID != accountID {
			return fmt.Errorf("%w: %s", domain.ErrSessionBound, id)
		}
		return nil
	}

	s.sessions[id] = &sessionEntry{session: domain.Session{ID: id, AccountID: accountID, Context: domain.Context{}}}
	return nil
}

func (s *SessionStore) Resolve(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	entry, err := s.entry(id)
	if err != nil {
		return domain.Session{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	session := entry.session
	session.Context = session.Context.Clone()
	return session, nil
}

func (s *SessionStore) UpdateContext(ctx context.Context, id domain.SessionID, mutate ports.ContextMutator) (domain.Context, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	updated := mutate(entry.session.Context.Clone())
	if updated == nil {
		updated = domain.Context{}
	}
	entry.session.Context = updated
	return updated.Clone(), nil
}

func (s *SessionStore) entry(id domain.SessionID) (*sessionEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.sessions[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSession, id)
	}
	return entry, nil
}
