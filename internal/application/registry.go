package application

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

// Deps are the collaborators a handler may use. They are passed on every
// invocation; handlers keep no state between calls.
type Deps struct {
	Accounts ports.AccountStore
	Sessions ports.SessionStore
	Clock    ports.Clock
	Logger   *zap.Logger
}

func (d Deps) logger() *zap.Logger {
	if d.Logger == nil {
		return zap.NewNop()
	}
	return d.Logger
}

// Handler runs one intent. Refusals are returned, never thrown.
type Handler func(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult

type ActionRegistry struct {
	mu       sync.RWMutex
	handlers map[string]Handler
}

func NewActionRegistry() *ActionRegistry {
	return &ActionRegistry{handlers: map[string]Handler{}}
}

func (r *ActionRegistry) Register(name string, handler Handler) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("register action: name is required")
	}
	if handler == nil {
		return fmt.Errorf("register action %q: handler is nil", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.handlers[name]; ok {
		return fmt.Errorf("%w: %s", domain.ErrDuplicateAction, name)
	}
	r.handlers[name] = handler
	return nil
}

func (r *ActionRegistry) Resolve(name string) (Handler, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	handler, ok := r.handlers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", domain.ErrUnknownAction, name)
	}
	return handler, nil
}

// Invoke resolves name and runs its handler. A panicking handler yields
// Refused(ErrHandler) instead of unwinding into the caller.
func (r *ActionRegistry) Invoke(ctx context.Context, name string, request domain.IntentRequest, deps Deps) (result domain.DispatchResult) {
	handler, err := r.Resolve(name)
	if err != nil {
		return domain.RefusedAt(StageResolveAction, err)
	}

	defer func() {
		if recovered := recover(); recovered != nil {
			deps.logger().Error("action handler panicked",
				zap.String("intent", name),
				zap.String("session_id", string(request.SessionID)),
				zap.Any("panic", recovered),
				zap.StackSkip("stack", 1),
			)
			result = domain.RefusedAt(StageHandler, fmt.Errorf("%w: %s panicked: %v", domain.ErrHandler, name, recovered))
		}
	}()

	return handler(ctx, request, deps)
}

// Names lists registered intents in lexical order.
func (r *ActionRegistry) Names() []string {
	r.mu.RLock()
	names := lo.Keys(r.handlers)
	r.mu.RUnlock()

	slices.Sort(names)
	return names
}
