package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/bnema/teller/internal/domain"
	"go.uber.org/zap"
)

const (
	IntentSend                    = "send"
	IntentPendingSend             = "pendingSend"
	IntentSendMoney               = "sendMoney"
	IntentTransferBetweenAccounts = "transferBetweenAccounts"
	IntentGetBalance              = "getBalance"
	IntentSayHello                = "sayHello"
	IntentFindATM                 = "findATM"
	IntentDone                    = "done"
)

const (
	currentBalanceImageURL = "http://i.imgur.com/RPZqMaL.png"
	savingsBalanceImageURL = "http://i.imgur.com/GgmPMcA.png"
)

// DefaultRegistry returns a registry holding every built-in action.
func DefaultRegistry() (*ActionRegistry, error) {
	registry := NewActionRegistry()
	actions := map[string]Handler{
		IntentSend:                    sendAction,
		IntentPendingSend:             runTransfer,
		IntentSendMoney:               runTransfer,
		IntentTransferBetweenAccounts: transferBetweenAccountsAction,
		IntentGetBalance:              getBalanceAction,
		IntentSayHello:                sayHelloAction,
		IntentFindATM:                 findATMAction,
		IntentDone:                    doneAction,
	}
	for name, handler := range actions {
		if err := registry.Register(name, handler); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// sendAction forwards the bot's text response to the session's recipient.
func sendAction(_ context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	if strings.TrimSpace(string(request.AccountID)) == "" {
		deps.logger().Error("no recipient bound to session", zap.String("session_id", string(request.SessionID)))
		return domain.RefusedAt(StageResolveSession, fmt.Errorf("%w: %s has no recipient", domain.ErrUnknownSession, request.SessionID))
	}
	if strings.TrimSpace(request.Text) == "" {
		return domain.RefusedAt(StageParsing, fmt.Errorf("%w: text is empty", domain.ErrMalformedRequest))
	}
	return domain.Sent(domain.TextMessage(request.Text))
}

func getBalanceAction(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	account, err := deps.Accounts.Get(ctx, request.AccountID)
	if err != nil {
		return domain.RefusedAt(StageValidating, fmt.Errorf("get account: %w", err))
	}
	return domain.Sent(balanceSummary(account))
}

func sayHelloAction(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	account, err := deps.Accounts.Get(ctx, request.AccountID)
	if err != nil {
		return domain.RefusedAt(StageValidating, fmt.Errorf("get account: %w", err))
	}
	return domain.Sent(domain.TextMessage(fmt.Sprintf("Hello there %s. What can I help you with?", account.DisplayName)))
}

func findATMAction(context.Context, domain.IntentRequest, Deps) domain.DispatchResult {
	return domain.Sent(domain.OutboundMessage{
		Text:         "Please share your location:",
		QuickReplies: []domain.QuickReply{{ContentType: domain.QuickReplyLocation}},
	})
}

func doneAction(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	_, err := deps.Sessions.UpdateContext(ctx, request.SessionID, func(c domain.Context) domain.Context {
		c[domain.ContextDone] = true
		return c
	})
	if err != nil {
		return domain.RefusedAt(StageConfirming, fmt.Errorf("mark session done: %w", err))
	}
	return domain.Sent()
}

// transferBetweenAccountsAction moves money between the ledgers of the
// session's own account, savings to primary unless the entities say otherwise.
func transferBetweenAccountsAction(ctx context.Context, request domain.IntentRequest, deps Deps) domain.DispatchResult {
	entity, ok := request.Entities.First(domain.EntityAmount)
	if !ok || entity.Value == nil {
		return domain.RefusedAt(StageParsing, fmt.Errorf("%w: %s is missing", domain.ErrMalformedRequest, domain.EntityAmount))
	}
	from, err := ledgerEntity(request.Entities, domain.EntityFromLedger, domain.LedgerSavings)
	if err != nil {
		return domain.RefusedAt(StageParsing, err)
	}
	to, err := ledgerEntity(request.Entities, domain.EntityToLedger, domain.LedgerPrimary)
	if err != nil {
		return domain.RefusedAt(StageParsing, err)
	}

	amount, err := PositiveAmount(entity)
	if err != nil {
		return domain.RefusedAt(StageValidating, err)
	}
	if from == to {
		return domain.RefusedAt(StageValidating, fmt.Errorf("%w: %s to itself", domain.ErrInvalidLedger, from))
	}

	sufficient, err := deps.Accounts.HasSufficientFunds(ctx, request.AccountID, amount, from)
	if err != nil {
		return domain.RefusedAt(StageAuthorizing, fmt.Errorf("check funds: %w", err))
	}
	if !sufficient {
		return domain.RefusedAt(StageAuthorizing, fmt.Errorf("%w: %s on %s", domain.ErrInsufficientFunds, domain.FormatMoney(amount), from))
	}

	if err := deps.Accounts.MoveBetweenLedgers(ctx, request.AccountID, amount, from, to); err != nil {
		return domain.RefusedAt(StageCommitting, fmt.Errorf("move between ledgers: %w", err))
	}
	deps.logger().Info("ledger move committed",
		zap.String("session_id", string(request.SessionID)),
		zap.String("account_id", string(request.AccountID)),
		zap.String("amount", amount.String()),
		zap.String("from", string(from)),
		zap.String("to", string(to)),
	)

	confirmation := domain.TextMessage(fmt.Sprintf(
		"Transferring %s from your %s to your %s. Here's your updated balance:",
		domain.FormatMoney(amount), from.Label(), to.Label(),
	))

	account, err := deps.Accounts.Get(ctx, request.AccountID)
	if err != nil {
		deps.logger().Warn("read account after ledger move",
			zap.String("session_id", string(request.SessionID)),
			zap.String("stage", StageConfirming),
			zap.Error(err),
		)
		return domain.Sent(confirmation)
	}
	return domain.Sent(confirmation, balanceSummary(account))
}

func ledgerEntity(entities domain.Entities, key string, fallback domain.Ledger) (domain.Ledger, error) {
	entity, ok := entities.First(key)
	if !ok {
		return fallback, nil
	}
	raw, ok := entity.Text()
	if !ok {
		return "", fmt.Errorf("%w: %s is not text", domain.ErrMalformedRequest, key)
	}
	ledger, err := domain.ParseLedger(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrMalformedRequest, err)
	}
	return ledger, nil
}

func balanceSummary(account domain.Account) domain.OutboundMessage {
	return domain.GenericTemplate(
		domain.TemplateElement{
			Title:    "Current account balance",
			ImageURL: currentBalanceImageURL,
			Subtitle: domain.FormatMoney(account.Balance),
		},
		domain.TemplateElement{
			Title:    "Savings account balance",
			ImageURL: savingsBalanceImageURL,
			Subtitle: domain.FormatMoney(account.SavingsBalance),
		},
	)
}
