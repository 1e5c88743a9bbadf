// Package badger persists sessions in BadgerDB. Context updates run in
// optimistic transactions; a conflicting commit is retried with backoff, so
// concurrent updates of one session serialize without a process-wide lock.
package badger

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"github.com/cenkalti/backoff/v4"
	"github.com/dgraph-io/badger/v4"
	"go.uber.org/zap"
)

const (
	sessionKeyPrefix = "session:"

	maxConflictRetries = 64
)

var errNotOpen = errors.New("session store is not open")

type Options struct {
	Path     string
	InMemory bool
}

type SessionStore struct {
	opts   Options
	logger *zap.Logger

	mu sync.RWMutex
	db *badger.DB
}

var _ ports.SessionStore = (*SessionStore)(nil)

type sessionRecord struct {
	AccountID domain.AccountID `json:"account_id"`
	Context   domain.Context   `json:"context"`
}

func NewSessionStore(opts Options, logger *zap.Logger) *SessionStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{opts: opts, logger: logger}
}

func (s *SessionStore) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db != nil {
		return nil
	}

	badgerOpts := badger.DefaultOptions(s.opts.Path).WithLogger(nil)
	if s.opts.InMemory {
		badgerOpts = badger.DefaultOptions("").WithInMemory(true).WithLogger(nil)
	} else if s.opts.Path == "" {
		return errors.New("open session store: path is required unless in-memory")
	}

	db, err := badger.Open(badgerOpts)
	if err != nil {
		return fmt.Errorf("open session store: %w", err)
	}
	s.db = db
	s.logger.Debug("session store opened", zap.String("path", s.opts.Path), zap.Bool("in_memory", s.opts.InMemory))
	return nil
}

func (s *SessionStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("close session store: %w", err)
	}
	return nil
}

func (s *SessionStore) Bind(ctx context.Context, id domain.SessionID, accountID domain.AccountID) error {
	if id == "" || accountID == "" {
		return fmt.Errorf("bind session: session id and account id are required")
	}

	return s.update(ctx, func(txn *badger.Txn) error {
		record, found, err := readRecord(txn, id)
		if err != nil {
			return err
		}
		if found {
			if record.AccountID != accountID {
				return fmt.Errorf("%w: %s", domain.ErrSessionBound, id)
			}
			return nil
		}
		return writeRecord(txn, id, sessionRecord{AccountID: accountID, Context: domain.Context{}})
	})
}

func (s *SessionStore) Resolve(ctx context.Context, id domain.SessionID) (domain.Session, error) {
	if err := ctx.Err(); err != nil {
		return domain.Session{}, err
	}

	db, err := s.handle()
	if err != nil {
		return domain.Session{}, err
	}

	var record sessionRecord
	err = db.View(func(txn *badger.Txn) error {
		var found bool
		record, found, err = readRecord(txn, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", domain.ErrUnknownSession, id)
		}
		return nil
	})
	if err != nil {
		return domain.Session{}, err
	}

	return domain.Session{ID: id, AccountID: record.AccountID, Context: record.Context.Clone()}, nil
}

// UpdateContext may run mutate more than once when commits conflict.
func (s *SessionStore) UpdateContext(ctx context.Context, id domain.SessionID, mutate ports.ContextMutator) (domain.Context, error) {
	var updated domain.Context
	err := s.update(ctx, func(txn *badger.Txn) error {
		record, found, err := readRecord(txn, id)
		if err != nil {
			return err
		}
		if !found {
			return fmt.Errorf("%w: %s", domain.ErrUnknownSession, id)
		}

		record.Context = mutate(record.Context.Clone())
		if record.Context == nil {
			record.Context = domain.Context{}
		}
		updated = record.Context
		return writeRecord(txn, id, record)
	})
	if err != nil {
		return nil, err
	}
	return updated.Clone(), nil
}

// update runs fn in a read-write transaction, retrying on commit conflicts.
func (s *SessionStore) update(ctx context.Context, fn func(txn *badger.Txn) error) error {
	db, err := s.handle()
	if err != nil {
		return err
	}

	policy := backoff.WithContext(
		backoff.WithMaxRetries(conflictBackoff(), maxConflictRetries),
		ctx,
	)

	attempts := 0
	return backoff.Retry(func() error {
		attempts++
		if err := ctx.Err(); err != nil {
			return backoff.Permanent(err)
		}

		err := db.Update(fn)
		if errors.Is(err, badger.ErrConflict) {
			s.logger.Debug("session transaction conflict", zap.Int("attempt", attempts))
			return err
		}
		if err != nil {
			return backoff.Permanent(err)
		}
		return nil
	}, policy)
}

func (s *SessionStore) handle() (*badger.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, errNotOpen
	}
	return s.db, nil
}

func conflictBackoff() *backoff.ExponentialBackOff {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = time.Millisecond
	policy.MaxInterval = 50 * time.Millisecond
	policy.MaxElapsedTime = 0
	return policy
}

func sessionKey(id domain.SessionID) []byte {
	return []byte(sessionKeyPrefix + string(id))
}

func readRecord(txn *badger.Txn, id domain.SessionID) (sessionRecord, bool, error) {
	item, err := txn.Get(sessionKey(id))
	if errors.Is(err, badger.ErrKeyNotFound) {
		return sessionRecord{}, false, nil
	}
	if err != nil {
		return sessionRecord{}, false, fmt.Errorf("read session %s: %w", id, err)
	}

	var record sessionRecord
	err = item.Value(func(val []byte) error {
		decoder := json.NewDecoder(bytes.NewReader(val))
		decoder.UseNumber()
		return decoder.Decode(&record)
	})
	if err != nil {
		return sessionRecord{}, false, fmt.Errorf("decode session %s: %w", id, err)
	}
	if record.Context == nil {
		record.Context = domain.Context{}
	}
	return record, true, nil
}

func writeRecord(txn *badger.Txn, id domain.SessionID, record sessionRecord) error {
	data, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	return txn.Set(sessionKey(id), data)
}
