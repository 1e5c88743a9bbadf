// Package memory holds in-process stores. Each account and each session is
// guarded by its own mutex; the map-level lock is only held for lookups and
// inserts, never across a balance mutation.
package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type accountEntry struct {
	mu      sync.Mutex
	account domain.Account
}

type AccountStore struct {
	mu       sync.RWMutex
	accounts map[domain.AccountID]*accountEntry
}

var _ ports.AccountStore = (*AccountStore)(nil)

func NewAccountStore(accounts ...domain.Account) *AccountStore {
	store := &AccountStore{accounts: make(map[domain.AccountID]*accountEntry, len(accounts))}
	for _, account := range accounts {
		store.accounts[account.ID] = &accountEntry{account: account}
	}
	return store
}

func (s *AccountStore) Open(ctx context.Context) error {
	return ctx.Err()
}

func (s *AccountStore) Close() error {
	return nil
}

func (s *AccountStore) Create(ctx context.Context, account domain.Account) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := account.Validate(); err != nil {
		return fmt.Errorf("validate account: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[account.ID]; ok {
		return fmt.Errorf("%w: %s", domain.ErrAccountExists, account.ID)
	}
	for _, entry := range s.accounts {
		entry.mu.Lock()
		taken := sameName(entry.account.DisplayName, account.DisplayName)
		entry.mu.Unlock()
		if taken {
			return fmt.Errorf("%w: display name %q is taken", domain.ErrAccountExists, account.DisplayName)
		}
	}
	s.accounts[account.ID] = &accountEntry{account: account}
	return nil
}

func (s *AccountStore) Get(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	entry, err := s.entry(id)
	if err != nil {
		return domain.Account{}, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()
	return entry.account, nil
}

func (s *AccountStore) FindByName(ctx context.Context, name string) (domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return domain.Account{}, err
	}

	matches := lo.Filter(s.snapshot(), func(account domain.Account, _ int) bool {
		return sameName(account.DisplayName, name)
	})
	switch len(matches) {
	case 0:
		return domain.Account{}, fmt.Errorf("%w: %q", domain.ErrRecipientNotFound, name)
	case 1:
		return matches[0], nil
	default:
		return domain.Account{}, fmt.Errorf("%w: %q matches %d accounts", domain.ErrRecipientNotFound, name, len(matches))
	}
}

// sameName compares display names the way customers type them.
func sameName(a, b string) bool {
	return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
}

func (s *AccountStore) List(ctx context.Context) ([]domain.Account, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return s.snapshot(), nil
}

func (s *AccountStore) GetBalance(ctx context.Context, id domain.AccountID, ledger domain.Ledger) (decimal.Decimal, error) {
	account, err := s.Get(ctx, id)
	if err != nil {
		return decimal.Zero, err
	}
	return account.BalanceOf(ledger)
}

func (s *AccountStore) HasSufficientFunds(ctx context.Context, id domain.AccountID, amount decimal.Decimal, ledger domain.Ledger) (bool, error) {
	if err := domain.ValidateAmount(amount); err != nil {
		return false, err
	}

	balance, err := s.GetBalance(ctx, id, ledger)
	if err != nil {
		return false, err
	}
	return balance.GreaterThanOrEqual(amount), nil
}

func (s *AccountStore) Transfer(ctx context.Context, source, target domain.AccountID, amount decimal.Decimal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := positiveAmount(amount); err != nil {
		return err
	}
	if source == target {
		return fmt.Errorf("%w: %s", domain.ErrSameAccount, source)
	}

	from, err := s.entry(source)
	if err != nil {
		return err
	}
	to, err := s.entry(target)
	if err != nil {
		return err
	}

	unlock := lockPair(source, from, target, to)
	defer unlock()

	debited := from.account
	if err := debited.Debit(domain.LedgerPrimary, amount); err != nil {
		return err
	}
	credited := to.account
	if err := credited.Credit(domain.LedgerPrimary, amount); err != nil {
		return err
	}

	from.account = debited
	to.account = credited
	return nil
}

func (s *AccountStore) MoveBetweenLedgers(ctx context.Context, id domain.AccountID, amount decimal.Decimal, from, to domain.Ledger) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := positiveAmount(amount); err != nil {
		return err
	}
	if !from.Valid() || !to.Valid() || from == to {
		return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidLedger, from, to)
	}

	entry, err := s.entry(id)
	if err != nil {
		return err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	updated := entry.account
	if err := updated.Debit(from, amount); err != nil {
		return err
	}
	if err := updated.Credit(to, amount); err != nil {
		return err
	}

	entry.account = updated
	return nil
}

func (s *AccountStore) entry(id domain.AccountID) (*accountEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entry, ok := s.accounts[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrAccountNotFound, id)
	}
	return entry, nil
}

func (s *AccountStore) snapshot() []domain.Account {
	s.mu.RLock()
	entries := make([]*accountEntry, 0, len(s.accounts))
	for _, entry := range s.accounts {
		entries = append(entries, entry)
	}
	s.mu.RUnlock()

	accounts := make([]domain.Account, 0, len(entries))
	for _, entry := range entries {
		entry.mu.Lock()
		accounts = append(accounts, entry.account)
		entry.mu.Unlock()
	}

	slices.SortFunc(accounts, func(a, b domain.Account) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return accounts
}

// lockPair acquires both account locks in id order so that opposing
// transfers cannot deadlock.
func lockPair(idA domain.AccountID, a *accountEntry, idB domain.AccountID, b *accountEntry) func() {
	first, second := a, b
	if idB < idA {
		first, second = b, a
	}

	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func positiveAmount(amount decimal.Decimal) error {
	if err := domain.ValidateAmount(amount); err != nil {
		return err
	}
	if amount.IsZero() {
		return fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	return nil
}
