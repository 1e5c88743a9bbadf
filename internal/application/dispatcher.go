package application

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	ApologyText           = "Sorry, I could not understand your request completely."
	InsufficientFundsText = "Sorry, you don't have enough money for this operation."

	DefaultSendTimeout = 10 * time.Second
)

const (
	StatusSent    = "sent"
	StatusRefused = "refused"
)

// DispatchReport is the outcome of one turn as seen by the operator. It never
// carries the internal error detail that only goes to the log.
type DispatchReport struct {
	EventID     string            `json:"event_id"`
	SessionID   domain.SessionID  `json:"session_id"`
	Intent      string            `json:"intent"`
	Status      string            `json:"status"`
	Reason      string            `json:"reason,omitempty"`
	Stage       string            `json:"stage,omitempty"`
	Delivered   []domain.Envelope `json:"delivered"`
	Undelivered int               `json:"undelivered,omitempty"`

	Result  domain.DispatchResult `json:"-"`
	SendErr error                 `json:"-"`
}

type DispatcherOption func(*Dispatcher)

func WithSendTimeout(timeout time.Duration) DispatcherOption {
	return func(d *Dispatcher) {
		if timeout > 0 {
			d.sendTimeout = timeout
		}
	}
}

func WithIDGenerator(next func() string) DispatcherOption {
	return func(d *Dispatcher) {
		if next != nil {
			d.newID = next
		}
	}
}

type Dispatcher struct {
	registry    *ActionRegistry
	deps        Deps
	messenger   ports.Messenger
	validate    *validator.Validate
	sendTimeout time.Duration
	newID       func() string
}

func NewDispatcher(registry *ActionRegistry, deps Deps, messenger ports.Messenger, opts ...DispatcherOption) *Dispatcher {
	if deps.Clock == nil {
		deps.Clock = ports.SystemClock{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}

	d := &Dispatcher{
		registry:    registry,
		deps:        deps,
		messenger:   messenger,
		validate:    validator.New(validator.WithRequiredStructEnabled()),
		sendTimeout: DefaultSendTimeout,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Intents lists the intent names this dispatcher can route.
func (d *Dispatcher) Intents() []string {
	return d.registry.Names()
}

// Dispatch runs one inbound intent event to completion. Every refusal with an
// addressable recipient is answered with exactly one apology message; a turn
// whose session cannot be resolved is logged and reported without a reply.
func (d *Dispatcher) Dispatch(ctx context.Context, event domain.IntentEvent) DispatchReport {
	started := d.deps.Clock.Now()
	report := DispatchReport{
		EventID:   d.newID(),
		SessionID: event.SessionID,
		Intent:    event.IntentName,
		Delivered: []domain.Envelope{},
	}
	logger := d.deps.Logger.With(
		zap.String("event_id", report.EventID),
		zap.String("session_id", string(event.SessionID)),
		zap.String("intent", event.IntentName),
	)

	session, err := d.deps.Sessions.Resolve(ctx, event.SessionID)
	if err != nil {
		report.Result = domain.RefusedAt(StageResolveSession, fmt.Errorf("resolve session: %w", err))
		d.logRefusal(logger, report.Result.Refusal)
		return d.finish(report, started, logger)
	}

	report.Result = d.run(ctx, event, session)

	messages := report.Result.Messages
	if report.Result.IsRefused() {
		d.logRefusal(logger, report.Result.Refusal)
		messages = nil
		if session.Bound() {
			messages = []domain.OutboundMessage{apologyFor(report.Result.Refusal)}
		}
	}

	report.Delivered, report.Undelivered, report.SendErr = d.deliver(ctx, session, messages)
	if report.SendErr != nil {
		logger.Error("deliver messages",
			zap.Int("delivered", len(report.Delivered)),
			zap.Int("undelivered", report.Undelivered),
			zap.Error(report.SendErr),
		)
	}
	return d.finish(report, started, logger)
}

func (d *Dispatcher) run(ctx context.Context, event domain.IntentEvent, session domain.Session) domain.DispatchResult {
	if err := d.validate.Struct(event); err != nil {
		return domain.RefusedAt(StageValidateEvent, fmt.Errorf("%w: %v", domain.ErrMalformedRequest, err))
	}

	request := domain.IntentRequest{
		SessionID:  session.ID,
		AccountID:  session.AccountID,
		IntentName: event.IntentName,
		Entities:   event.Entities,
		Context:    session.Context.Merge(event.Context),
		Text:       event.Text,
	}
	return d.registry.Invoke(ctx, event.IntentName, request, d.deps)
}

// deliver sends messages in order and stops at the first failure. Committed
// ledger state is never rolled back because of a failed send.
func (d *Dispatcher) deliver(ctx context.Context, session domain.Session, messages []domain.OutboundMessage) ([]domain.Envelope, int, error) {
	delivered := make([]domain.Envelope, 0, len(messages))
	if len(messages) == 0 {
		return delivered, 0, nil
	}

	sendCtx, cancel := context.WithTimeout(ctx, d.sendTimeout)
	defer cancel()

	for i, message := range messages {
		envelope := domain.Envelope{
			ID:        d.newID(),
			SessionID: session.ID,
			Recipient: session.AccountID,
			Message:   message,
		}
		if err := d.messenger.Send(sendCtx, envelope); err != nil {
			if !errors.Is(err, domain.ErrTransport) {
				err = fmt.Errorf("%w: %w", domain.ErrTransport, err)
			}
			return delivered, len(messages) - i, fmt.Errorf("send envelope %s: %w", envelope.ID, err)
		}
		delivered = append(delivered, envelope)
	}
	return delivered, 0, nil
}

func (d *Dispatcher) finish(report DispatchReport, started time.Time, logger *zap.Logger) DispatchReport {
	report.Status = StatusSent
	if refusal := report.Result.Refusal; refusal != nil {
		report.Status = StatusRefused
		report.Reason = refusalClass(refusal.Reason).Error()
		report.Stage = refusal.Stage
	}

	logger.Debug("dispatch finished",
		zap.String("status", report.Status),
		zap.Int("delivered", len(report.Delivered)),
		zap.Duration("elapsed", d.deps.Clock.Now().Sub(started)),
	)
	return report
}

func (d *Dispatcher) logRefusal(logger *zap.Logger, refusal *domain.Refusal) {
	level := zapcore.WarnLevel
	if isOperationalFailure(refusal.Reason) {
		level = zapcore.ErrorLevel
	}
	logger.Log(level, "intent refused",
		zap.String("stage", refusal.Stage),
		zap.String("reason", refusalClass(refusal.Reason).Error()),
		zap.Error(refusal.Reason),
	)
}

var operationalFailures = []error{
	domain.ErrUnknownSession,
	domain.ErrUnknownAction,
	domain.ErrHandler,
	domain.ErrTransport,
}

var businessRefusals = []error{
	domain.ErrMalformedRequest,
	domain.ErrInsufficientFunds,
	domain.ErrInvalidAmount,
	domain.ErrInvalidLedger,
	domain.ErrRecipientNotFound,
	domain.ErrSameAccount,
	domain.ErrAccountNotFound,
}

func isOperationalFailure(err error) bool {
	for _, target := range operationalFailures {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// refusalClass maps a refusal reason to the sentinel it belongs to.
func refusalClass(err error) error {
	for _, target := range operationalFailures {
		if errors.Is(err, target) {
			return target
		}
	}
	for _, target := range businessRefusals {
		if errors.Is(err, target) {
			return target
		}
	}
	return domain.ErrHandler
}

func apologyFor(refusal *domain.Refusal) domain.OutboundMessage {
	if errors.Is(refusal.Reason, domain.ErrInsufficientFunds) {
		return domain.TextMessage(InsufficientFundsText)
	}
	return domain.TextMessage(ApologyText)
}
