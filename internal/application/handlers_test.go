package application

import (
	"context"
	"testing"

	"github.com/bnema/teller/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransferBetweenAccountsMovesSavingsToPrimary(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	entities := domain.Entities{domain.EntityAmount: entity(40)}

	result := transferBetweenAccountsAction(context.Background(), aliceRequest(IntentTransferBetweenAccounts, entities), f.deps)

	require.False(t, result.IsRefused(), "refusal: %v", result.Refusal)
	primary, savings := f.balances(t, "acc-alice")
	assert.Equal(t, "140", primary)
	assert.Equal(t, "60", savings)

	require.Len(t, result.Messages, 2)
	assert.Equal(t, "Transferring $40.00 from your savings to your current account. Here's your updated balance:", result.Messages[0].Text)
	require.NotNil(t, result.Messages[1].Attachment)
	elements := result.Messages[1].Attachment.Payload.Elements
	require.Len(t, elements, 2)
	assert.Equal(t, "$140.00", elements[0].Subtitle)
	assert.Equal(t, "$60.00", elements[1].Subtitle)
}

func TestTransferBetweenAccountsHonoursLedgerEntities(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	entities := domain.Entities{
		domain.EntityAmount:     entity("25"),
		domain.EntityFromLedger: entity("current"),
		domain.EntityToLedger:   entity("savings"),
	}

	result := transferBetweenAccountsAction(context.Background(), aliceRequest(IntentTransferBetweenAccounts, entities), f.deps)

	require.False(t, result.IsRefused(), "refusal: %v", result.Refusal)
	primary, savings := f.balances(t, "acc-alice")
	assert.Equal(t, "75", primary)
	assert.Equal(t, "125", savings)
	assert.Equal(t, "Transferring $25.00 from your current account to your savings. Here's your updated balance:", result.Messages[0].Text)
}

func TestTransferBetweenAccountsRefusals(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		entities domain.Entities
		wantErr  error
	}{
		{name: "amount missing", entities: domain.Entities{}, wantErr: domain.ErrMalformedRequest},
		{name: "savings too low", entities: domain.Entities{domain.EntityAmount: entity(100.5)}, wantErr: domain.ErrInsufficientFunds},
		{name: "unknown ledger", entities: domain.Entities{domain.EntityAmount: entity(1), domain.EntityToLedger: entity("brokerage")}, wantErr: domain.ErrMalformedRequest},
		{name: "same ledger", entities: domain.Entities{domain.EntityAmount: entity(1), domain.EntityFromLedger: entity("primary")}, wantErr: domain.ErrInvalidLedger},
		{name: "zero amount", entities: domain.Entities{domain.EntityAmount: entity(0)}, wantErr: domain.ErrInvalidAmount},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			f := newFixture(t)
			result := transferBetweenAccountsAction(context.Background(), aliceRequest(IntentTransferBetweenAccounts, tt.entities), f.deps)

			require.True(t, result.RefusedWith(tt.wantErr), "refusal: %v", result.Refusal)
			primary, savings := f.balances(t, "acc-alice")
			assert.Equal(t, "100", primary)
			assert.Equal(t, "100", savings)
		})
	}
}

func TestGetBalanceSendsTemplate(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	result := getBalanceAction(context.Background(), aliceRequest(IntentGetBalance, nil), f.deps)

	require.False(t, result.IsRefused())
	require.Len(t, result.Messages, 1)
	attachment := result.Messages[0].Attachment
	require.NotNil(t, attachment)
	assert.Equal(t, domain.AttachmentTypeTemplate, attachment.Type)
	assert.Equal(t, domain.TemplateTypeGeneric, attachment.Payload.TemplateType)
	assert.Equal(t, []domain.TemplateElement{
		{Title: "Current account balance", ImageURL: "http://i.imgur.com/RPZqMaL.png", Subtitle: "$100.00"},
		{Title: "Savings account balance", ImageURL: "http://i.imgur.com/GgmPMcA.png", Subtitle: "$100.00"},
	}, attachment.Payload.Elements)
}

func TestSayHelloUsesDisplayName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)

	result := sayHelloAction(context.Background(), aliceRequest(IntentSayHello, nil), f.deps)

	require.False(t, result.IsRefused())
	assert.Equal(t, []domain.OutboundMessage{domain.TextMessage("Hello there Alice. What can I help you with?")}, result.Messages)
}

func TestReadOnlyHandlersRefuseUnknownAccount(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	request := aliceRequest(IntentGetBalance, nil)
	request.AccountID = "acc-ghost"

	assert.True(t, getBalanceAction(context.Background(), request, f.deps).RefusedWith(domain.ErrAccountNotFound))
	assert.True(t, sayHelloAction(context.Background(), request, f.deps).RefusedWith(domain.ErrAccountNotFound))
}

func TestFindATMAsksForLocation(t *testing.T) {
	t.Parallel()

	result := findATMAction(context.Background(), aliceRequest(IntentFindATM, nil), Deps{})

	require.Len(t, result.Messages, 1)
	assert.Equal(t, "Please share your location:", result.Messages[0].Text)
	assert.Equal(t, []domain.QuickReply{{ContentType: "location"}}, result.Messages[0].QuickReplies)
}

func TestDoneMarksContextWithoutMessages(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()

	result := doneAction(ctx, aliceRequest(IntentDone, nil), f.deps)

	require.False(t, result.IsRefused())
	assert.Empty(t, result.Messages)
	session, err := f.sessions.Resolve(ctx, "s-alice")
	require.NoError(t, err)
	assert.Equal(t, true, session.Context[domain.ContextDone])
}

func TestSendForwardsText(t *testing.T) {
	t.Parallel()

	request := aliceRequest(IntentSend, nil)
	request.Text = "Here you go"

	result := sendAction(context.Background(), request, Deps{})

	assert.Equal(t, []domain.OutboundMessage{domain.TextMessage("Here you go")}, result.Messages)
}

func TestSendWithoutRecipientRefuses(t *testing.T) {
	t.Parallel()

	request := aliceRequest(IntentSend, nil)
	request.AccountID = ""
	request.Text = "Here you go"

	result := sendAction(context.Background(), request, Deps{})

	assert.True(t, result.RefusedWith(domain.ErrUnknownSession))
	assert.Empty(t, result.Messages)
}
