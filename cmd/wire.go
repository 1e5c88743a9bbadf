package cmd

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/bnema/teller/internal/adapters/messaging/console"
	"github.com/bnema/teller/internal/adapters/messaging/graph"
	"github.com/bnema/teller/internal/adapters/messaging/retry"
	"github.com/bnema/teller/internal/adapters/render/balance"
	tomlrepo "github.com/bnema/teller/internal/adapters/repo/toml"
	filestore "github.com/bnema/teller/internal/adapters/secrets/file"
	badgerstore "github.com/bnema/teller/internal/adapters/store/badger"
	"github.com/bnema/teller/internal/application"
	"github.com/bnema/teller/internal/config"
	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/logging"
	"github.com/bnema/teller/internal/ports"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

const (
	messengerConsole = "console"
	messengerGraph   = "graph"
)

type app struct {
	cfg             config.Config
	viper           *viper.Viper
	logger          *zap.Logger
	secretStore     ports.SecretStore
	balanceRenderer func([]domain.Account, balance.RenderOptions) (string, error)
	httpClient      *http.Client
	clock           ports.Clock
}

func wireApp() (*app, error) {
	v := viper.New()
	cfg, err := config.Load(v)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logger, _, err := logging.New(logging.Config{Level: cfg.Log.Level, Encoding: cfg.Log.Encoding})
	if err != nil {
		return nil, fmt.Errorf("wire logger: %w", err)
	}

	return &app{
		cfg:             cfg,
		viper:           v,
		logger:          logger,
		secretStore:     filestore.NewStore(cfg.Secrets.Root),
		balanceRenderer: balance.Render,
		httpClient:      &http.Client{Timeout: cfg.Messenger.Timeout},
		clock:           ports.SystemClock{},
	}, nil
}

func (a *app) openAccounts(ctx context.Context) (*tomlrepo.Repository, error) {
	repo, err := tomlrepo.NewRepository(a.viper, a.logger)
	if err != nil {
		return nil, fmt.Errorf("wire account repository: %w", err)
	}
	if err := repo.Open(ctx); err != nil {
		return nil, fmt.Errorf("open account repository: %w", err)
	}
	return repo, nil
}

func (a *app) openSessions(ctx context.Context) (*badgerstore.SessionStore, error) {
	store := badgerstore.NewSessionStore(badgerstore.Options{
		Path:     a.cfg.Sessions.Path,
		InMemory: a.cfg.Sessions.InMemory,
	}, a.logger)
	if err := store.Open(ctx); err != nil {
		return nil, fmt.Errorf("open session store: %w", err)
	}
	return store, nil
}

// newMessenger returns the outbound messenger. The graph messenger is wrapped
// so failed notifications are retried under the envelope id.
func (a *app) newMessenger(kind string, out io.Writer) (ports.Messenger, error) {
	switch kind {
	case messengerConsole:
		return console.NewMessenger(out), nil
	case messengerGraph:
		sender, err := graph.NewMessenger(graph.Config{
			Endpoint: a.cfg.Messenger.Endpoint,
			TokenKey: a.cfg.Messenger.TokenKey,
			Rate:     a.cfg.Messenger.Rate,
			Burst:    a.cfg.Messenger.Burst,
			Timeout:  a.cfg.Messenger.Timeout,
		}, a.secretStore, a.httpClient, a.logger)
		if err != nil {
			return nil, fmt.Errorf("wire graph messenger: %w", err)
		}
		return retry.NewMessenger(sender, retry.Options{MaxRetries: a.cfg.Messenger.MaxRetries}, a.logger), nil
	default:
		return nil, fmt.Errorf("unknown messenger %q (want %s|%s)", kind, messengerConsole, messengerGraph)
	}
}

func (a *app) newDispatcher(accounts ports.AccountStore, sessions ports.SessionStore, messenger ports.Messenger) (*application.Dispatcher, error) {
	registry, err := application.DefaultRegistry()
	if err != nil {
		return nil, fmt.Errorf("wire action registry: %w", err)
	}

	deps := application.Deps{
		Accounts: accounts,
		Sessions: sessions,
		Clock:    a.clock,
		Logger:   a.logger,
	}
	return application.NewDispatcher(registry, deps, messenger,
		application.WithSendTimeout(a.cfg.Dispatch.SendTimeout),
	), nil
}

// closeAll closes stores in reverse opening order and logs failures.
func (a *app) closeAll(closers ...ports.Lifecycle) {
	for i := len(closers) - 1; i >= 0; i-- {
		if err := closers[i].Close(); err != nil {
			a.logger.Warn("close store", zap.Error(err))
		}
	}
}
