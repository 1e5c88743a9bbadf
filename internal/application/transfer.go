package application

import (
	"context"
	"errors"
	"fmt"

	"github.com/bnema/teller/internal/domain"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Refusal stages reported in logs and dispatch reports.
const (
	StageValidateEvent  = "validate_event"
	StageResolveSession = "resolve_session"
	StageResolveAction  = "resolve_action"
	StageHandler        = "handler"
	StageParsing        = "parsing"
	StageValidating     = "validating"
	StageAuthorizing    = "authorizing"
	StageCommitting     = "committing"
	StageConfirming     = "confirming"
)

// ParsedTransfer is the well-formed subset of an untrusted entities map.
type ParsedTransfer struct {
	Amount       domain.Entity
	TransferType string
	Target       string
}

// ParseResult is Ok(ParsedTransfer) when Err is nil.
type ParseResult struct {
	Transfer ParsedTransfer
	Err      error
}

func (r ParseResult) Ok() bool {
	return r.Err == nil
}

// ParseTransfer extracts amount, transfer type and target. A contact entity
// takes precedence over a location entity. Every missing field is reported
// as ErrMalformedRequest.
func ParseTransfer(entities domain.Entities) ParseResult {
	var missing []error

	amount, ok := entities.First(domain.EntityAmount)
	if !ok || amount.Value == nil {
		missing = append(missing, fmt.Errorf("%s is missing", domain.EntityAmount))
	}

	transferType, ok := textEntity(entities, domain.EntityTransferType)
	if !ok {
		missing = append(missing, fmt.Errorf("%s is missing", domain.EntityTransferType))
	}

	target, ok := textEntity(entities, domain.EntityContact)
	if !ok {
		target, ok = textEntity(entities, domain.EntityLocation)
	}
	if !ok {
		missing = append(missing, fmt.Errorf("%s or %s is missing", domain.EntityContact, domain.EntityLocation))
	}

	if len(missing) > 0 {
		return ParseResult{Err: fmt.Errorf("%w: %w", domain.ErrMalformedRequest, errors.Join(missing...))}
	}

	return ParseResult{Transfer: ParsedTransfer{
		Amount:       amount,
		TransferType: transferType,
		Target:       target,
	}}
}

func textEntity(entities domain.Entities, key string) (string, bool) {
	entity, ok := entities.First(key)
	if !ok {
		return "", false
	}
	return entity.Text()
}

// PositiveAmount converts an amount entity into a strictly positive decimal.
func PositiveAmount(entity domain.Entity) (decimal.Decimal, error) {
	amount, err := entity.Decimal()
	if err != nil {
		if errors.Is(err, domain.ErrInvalidAmount) {
			return decimal.Zero, err
		}
		return decimal.Zero, fmt.Errorf("%w: %v", domain.ErrInvalidAmount, err)
	}
	if err := domain.ValidateAmount(amount); err != nil {
		return decimal.Zero, err
	}
	if amount.IsZero() {
		return decimal.Zero, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	return amount, nil
}

// transferWorkflow moves money from the session's account to a named
// recipient: Parsing, Validating, Authorizing, Committing, Confirming.
type transferWorkflow struct {
	deps    Deps
	request domain.IntentRequest

	parsed    ParsedTransfer
	amount    decimal.Decimal
	sender    domain.Account
	recipient domain.Account
}

func runTransfer(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	w := &transferWorkflow{deps: deps, request: request}

	steps := []struct {
		stage string
		run   func(context.Context) error
	}{
		{StageParsing, w.parse},
		{StageValidating, w.validate},
		{StageAuthorizing, w.authorize},
		{StageCommitting, w.commit},
	}
	for _, step := range steps {
		if err := step.run(ctx); err != nil {
			return domain.RefusedAt(step.stage, err)
		}
	}

	return w.confirm(ctx)
}

func (w *transferWorkflow) parse(context.Context) error {
	result := ParseTransfer(w.request.Entities)
	if !result.Ok() {
		return result.Err
	}
	w.parsed = result.Transfer
	return nil
}

func (w *transferWorkflow) validate(ctx context.Context) error {
	amount, err := PositiveAmount(w.parsed.Amount)
	if err != nil {
		return err
	}
	w.amount = amount

	sender, err := w.deps.Accounts.Get(ctx, w.request.AccountID)
	if err != nil {
		return fmt.Errorf("get sender account: %w", err)
	}
	recipient, err := w.deps.Accounts.FindByName(ctx, w.parsed.Target)
	if err != nil {
		return fmt.Errorf("find recipient: %w", err)
	}
	if recipient.ID == sender.ID {
		return fmt.Errorf("%w: %s", domain.ErrSameAccount, sender.ID)
	}

	w.sender = sender
	w.recipient = recipient
	return nil
}

func (w *transferWorkflow) authorize(ctx context.Context) error {
	ok, err := w.deps.Accounts.HasSufficientFunds(ctx, w.sender.ID, w.amount, domain.LedgerPrimary)
	if err != nil {
		return fmt.Errorf("check funds: %w", err)
	}
	if !ok {
		return fmt.Errorf("%w: %s on %s", domain.ErrInsufficientFunds, domain.FormatMoney(w.amount), w.sender.ID)
	}
	return nil
}

func (w *transferWorkflow) commit(ctx context.Context) error {
	if err := w.deps.Accounts.Transfer(ctx, w.sender.ID, w.recipient.ID, w.amount); err != nil {
		return fmt.Errorf("transfer: %w", err)
	}

	w.deps.logger().Info("transfer committed",
		zap.String("session_id", string(w.request.SessionID)),
		zap.String("source", string(w.sender.ID)),
		zap.String("target", string(w.recipient.ID)),
		zap.String("amount", w.amount.String()),
		zap.String("transfer_type", w.parsed.TransferType),
	)
	return nil
}

// confirm runs after the ledger commit. Its failures are logged and never
// turn the committed transfer into a refusal.
func (w *transferWorkflow) confirm(ctx context.Context) domain.DispatchResult {
	logger := w.deps.logger().With(zap.String("session_id", string(w.request.SessionID)), zap.String("stage", StageConfirming))

	cash := w.amount.String() + w.parsed.Amount.Unit
	_, err := w.deps.Sessions.UpdateContext(ctx, w.request.SessionID, func(c domain.Context) domain.Context {
		c[domain.ContextContact] = w.parsed.Target
		c[domain.ContextCash] = cash
		c[domain.ContextTransferType] = w.parsed.TransferType
		return c
	})
	if err != nil {
		logger.Warn("update session context after transfer", zap.Error(err))
	}

	text := fmt.Sprintf("Sending %s to %s.", domain.FormatMoney(w.amount), w.recipient.DisplayName)
	balance, err := w.deps.Accounts.GetBalance(ctx, w.sender.ID, domain.LedgerPrimary)
	if err != nil {
		logger.Warn("read balance after transfer", zap.Error(err))
	} else {
		text += fmt.Sprintf(" Your %s balance is now %s.", domain.LedgerPrimary.Label(), domain.FormatMoney(balance))
	}

	return domain.Sent(domain.TextMessage(text))
}
