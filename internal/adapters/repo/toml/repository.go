package toml

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"

	"github.com/bnema/teller/internal/adapters/store/memory"
	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	configName         = "config"
	configType         = "toml"
	accountsPathKey    = "accounts.path"
	accountsFileMode   = 0o600
	accountsDirMode    = 0o700
	accountsConfigDir  = ".teller"
	accountsConfigFile = "accounts.toml"
	tempFilePattern    = ".accounts-*.toml.tmp"
)

var errNotOpen = errors.New("accounts repository is not open")

// Repository is an AccountStore persisted to a TOML file. Balances live in
// an in-memory store with per-account locks; every committed mutation is
// followed by a snapshot written atomically to disk.
type Repository struct {
	accountsPath string
	mu           *sync.RWMutex
	logger       *zap.Logger
	inner        atomic.Pointer[memory.AccountStore]
}

var (
	lockRegistryMu sync.Mutex
	pathLockMap    = map[string]*sync.RWMutex{}
)

var _ ports.AccountStore = (*Repository)(nil)

func NewRepository(cfg *viper.Viper, logger *zap.Logger) (*Repository, error) {
	if cfg == nil {
		cfg = viper.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	defaultPath := filepath.Join(homeDir, accountsConfigDir, accountsConfigFile)

	cfg.SetConfigName(configName)
	cfg.SetConfigType(configType)
	cfg.AddConfigPath(filepath.Join(homeDir, accountsConfigDir))
	cfg.SetDefault(accountsPathKey, defaultPath)

	err = cfg.ReadInConfig()
	if err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if !errors.As(err, &configNotFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	accountsPath := cfg.GetString(accountsPathKey)
	if accountsPath == "" {
		return nil, errors.New("accounts path is empty")
	}
	accountsPath, err = normalizeAccountsPath(accountsPath)
	if err != nil {
		return nil, err
	}

	return &Repository{
		accountsPath: accountsPath,
		mu:           lockForPath(accountsPath),
		logger:       logger.With(zap.String("accounts_path", accountsPath)),
	}, nil
}

func (r *Repository) Path() string {
	return r.accountsPath
}

// Open loads the accounts file. A missing file is an empty store.
func (r *Repository) Open(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	r.mu.RLock()
	file, err := r.readSchema()
	r.mu.RUnlock()
	if err != nil {
		return err
	}

	store := memory.NewAccountStore()
	for _, entry := range file.Accounts {
		account, err := fromSchema(entry)
		if err != nil {
			return fmt.Errorf("decode accounts file: %w", err)
		}
		if err := store.Create(ctx, account); err != nil {
			return fmt.Errorf("decode accounts file: %w", err)
		}
	}

	r.inner.Store(store)
	r.logger.Debug("accounts loaded", zap.Int("count", len(file.Accounts)))
	return nil
}

func (r *Repository) Close() error {
	r.inner.Store(nil)
	return nil
}

// Create persists synchronously; a registration that cannot be written is
// reported to the caller.
func (r *Repository) Create(ctx context.Context, account domain.Account) error {
	store, err := r.store()
	if err != nil {
		return err
	}
	if err := store.Create(ctx, account); err != nil {
		return err
	}
	if err := r.persist(ctx, store); err != nil {
		return fmt.Errorf("persist new account: %w", err)
	}
	return nil
}

func (r *Repository) Get(ctx context.Context, id domain.AccountID) (domain.Account, error) {
	store, err := r.store()
	if err != nil {
		return domain.Account{}, err
	}
	return store.Get(ctx, id)
}

func (r *Repository) FindByName(ctx context.Context, name string) (domain.Account, error) {
	store, err := r.store()
	if err != nil {
		return domain.Account{}, err
	}
	return store.FindByName(ctx, name)
}

func (r *Repository) List(ctx context.Context) ([]domain.Account, error) {
	store, err := r.store()
	if err != nil {
		return nil, err
	}
	return store.List(ctx)
}

func (r *Repository) GetBalance(ctx context.Context, id domain.AccountID, ledger domain.Ledger) (decimal.Decimal, error) {
	store, err := r.store()
	if err != nil {
		return decimal.Zero, err
	}
	return store.GetBalance(ctx, id, ledger)
}

func (r *Repository) HasSufficientFunds(ctx context.Context, id domain.AccountID, amount decimal.Decimal, ledger domain.Ledger) (bool, error) {
	store, err := r.store()
	if err != nil {
		return false, err
	}
	return store.HasSufficientFunds(ctx, id, amount, ledger)
}

func (r *Repository) Transfer(ctx context.Context, source, target domain.AccountID, amount decimal.Decimal) error {
	store, err := r.store()
	if err != nil {
		return err
	}
	if err := store.Transfer(ctx, source, target, amount); err != nil {
		return err
	}
	r.persistCommitted(store, "transfer")
	return nil
}

func (r *Repository) MoveBetweenLedgers(ctx context.Context, id domain.AccountID, amount decimal.Decimal, from, to domain.Ledger) error {
	store, err := r.store()
	if err != nil {
		return err
	}
	if err := store.MoveBetweenLedgers(ctx, id, amount, from, to); err != nil {
		return err
	}
	r.persistCommitted(store, "move between ledgers")
	return nil
}

func (r *Repository) store() (*memory.AccountStore, error) {
	store := r.inner.Load()
	if store == nil {
		return nil, errNotOpen
	}
	return store, nil
}

// persistCommitted writes after an in-memory commit. The commit stands even
// when the write fails; the next snapshot carries it.
func (r *Repository) persistCommitted(store *memory.AccountStore, operation string) {
	if err := r.persist(context.Background(), store); err != nil {
		r.logger.Error("persist accounts snapshot", zap.String("operation", operation), zap.Error(err))
	}
}

// persist takes the snapshot under the file lock so that a later write always
// carries a later snapshot.
func (r *Repository) persist(ctx context.Context, store *memory.AccountStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	accounts, err := store.List(ctx)
	if err != nil {
		return err
	}

	file := fileSchema{Accounts: make([]accountSchema, 0, len(accounts))}
	for _, account := range accounts {
		file.Accounts = append(file.Accounts, toSchema(account))
	}
	return r.writeSchema(file)
}

func (r *Repository) readSchema() (fileSchema, error) {
	data, err := os.ReadFile(r.accountsPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return fileSchema{}, nil
		}
		return fileSchema{}, fmt.Errorf("read accounts file: %w", err)
	}

	var file fileSchema
	if err := toml.Unmarshal(data, &file); err != nil {
		return fileSchema{}, fmt.Errorf("decode accounts file: %w", err)
	}
	if err := file.validateVersion(); err != nil {
		return fileSchema{}, err
	}
	file.applyDefaults()

	return file, nil
}

func normalizeAccountsPath(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve accounts path: %w", err)
	}

	return filepath.Clean(absPath), nil
}

func lockForPath(path string) *sync.RWMutex {
	lockRegistryMu.Lock()
	defer lockRegistryMu.Unlock()

	if mu, ok := pathLockMap[path]; ok {
		return mu
	}

	mu := &sync.RWMutex{}
	pathLockMap[path] = mu
	return mu
}

func (r *Repository) writeSchema(file fileSchema) error {
	file.applyDefaults()

	if err := os.MkdirAll(filepath.Dir(r.accountsPath), accountsDirMode); err != nil {
		return fmt.Errorf("create accounts directory: %w", err)
	}

	data, err := toml.Marshal(file)
	if err != nil {
		return fmt.Errorf("encode accounts file: %w", err)
	}

	tempFile, err := os.CreateTemp(filepath.Dir(r.accountsPath), tempFilePattern)
	if err != nil {
		return fmt.Errorf("create temp accounts file: %w", err)
	}

	tempName := tempFile.Name()
	cleanup := true
	defer func() {
		if cleanup {
			_ = os.Remove(tempName)
		}
	}()

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("write temp accounts file: %w", err)
	}

	if err := tempFile.Chmod(accountsFileMode); err != nil {
		_ = tempFile.Close()
		return fmt.Errorf("chmod temp accounts file: %w", err)
	}

	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp accounts file: %w", err)
	}

	if err := os.Rename(tempName, r.accountsPath); err != nil {
		return fmt.Errorf("replace accounts file: %w", err)
	}

	cleanup = false

	if err := os.Chmod(r.accountsPath, accountsFileMode); err != nil {
		return fmt.Errorf("chmod accounts file: %w", err)
	}

	return nil
}
