package application

import (
	"context"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func mockAnyContext() any {
	return mock.MatchedBy(func(context.Context) bool { return true })
}

func sequentialIDs() func() string {
	var next atomic.Int64
	return func() string {
		return fmt.Sprintf("id-%d", next.Add(1))
	}
}

func newTestDispatcher(t *testing.T, f *fixture, messenger *mocks.MockMessenger) *Dispatcher {
	t.Helper()

	registry, err := DefaultRegistry()
	require.NoError(t, err)
	return NewDispatcher(registry, f.deps, messenger, WithIDGenerator(sequentialIDs()), WithSendTimeout(time.Second))
}

func textEnvelope(text string) any {
	return mock.MatchedBy(func(envelope domain.Envelope) bool {
		return envelope.Recipient == "acc-alice" && envelope.Message.Text == text
	})
}

func TestDispatcherForwardsHandlerMessagesInOrder(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	var sent []domain.Envelope
	messenger.EXPECT().Send(mockAnyContext(), mock.Anything).
		Run(func(_ context.Context, envelope domain.Envelope) { sent = append(sent, envelope) }).
		Return(nil).Times(2)
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: IntentTransferBetweenAccounts,
		Entities:   domain.Entities{domain.EntityAmount: entity(40)},
	})

	assert.Equal(t, StatusSent, report.Status)
	require.Len(t, sent, 2)
	assert.Equal(t, sent, report.Delivered)
	assert.Contains(t, sent[0].Message.Text, "Transferring $40.00")
	assert.NotNil(t, sent[1].Message.Attachment)
	assert.NotEqual(t, sent[0].ID, sent[1].ID)
	assert.Equal(t, domain.SessionID("s-alice"), sent[0].SessionID)
}

func TestDispatcherUnknownIntentSendsApologyAndLogs(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	messenger.EXPECT().Send(mockAnyContext(), textEnvelope(ApologyText)).Return(nil).Once()
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{SessionID: "s-alice", IntentName: "orderPizza"})

	assert.Equal(t, StatusRefused, report.Status)
	assert.Equal(t, domain.ErrUnknownAction.Error(), report.Reason)
	assert.True(t, report.Result.RefusedWith(domain.ErrUnknownAction))

	entries := f.logs.FilterMessage("intent refused").All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
	assert.Equal(t, "orderPizza", entries[0].ContextMap()["intent"])
	assert.Equal(t, domain.ErrUnknownAction.Error(), entries[0].ContextMap()["reason"])
}

func TestDispatcherInsufficientFundsHasDistinctWording(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	messenger.EXPECT().Send(mockAnyContext(), textEnvelope(InsufficientFundsText)).Return(nil).Once()
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: IntentPendingSend,
		Entities:   sendMoneyEntities(500, "Bob"),
	})

	assert.Equal(t, StatusRefused, report.Status)
	assert.Equal(t, StageAuthorizing, report.Stage)
	require.Len(t, report.Delivered, 1)
	assert.Equal(t, zapcore.WarnLevel, f.logs.FilterMessage("intent refused").All()[0].Level)
}

func TestDispatcherMalformedTransferSendsSingleApology(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	messenger.EXPECT().Send(mockAnyContext(), textEnvelope(ApologyText)).Return(nil).Once()
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: IntentSendMoney,
		Entities:   domain.Entities{domain.EntityContact: entity("Bob")},
	})

	assert.True(t, report.Result.RefusedWith(domain.ErrMalformedRequest))
	assert.Len(t, report.Delivered, 1)
	alice, _ := f.balances(t, "acc-alice")
	assert.Equal(t, "100", alice)
}

func TestDispatcherRejectsEventWithoutIntentName(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	messenger.EXPECT().Send(mockAnyContext(), textEnvelope(ApologyText)).Return(nil).Once()
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{SessionID: "s-alice"})

	assert.Equal(t, StageValidateEvent, report.Stage)
	assert.True(t, report.Result.RefusedWith(domain.ErrMalformedRequest))
}

func TestDispatcherUnknownSessionLogsAndSendsNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	dispatcher := newTestDispatcher(t, f, messenger)

	for _, intent := range []string{IntentGetBalance, IntentSayHello, IntentPendingSend} {
		report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{SessionID: "s-ghost", IntentName: intent})

		assert.Equal(t, StatusRefused, report.Status)
		assert.Equal(t, StageResolveSession, report.Stage)
		assert.True(t, report.Result.RefusedWith(domain.ErrUnknownSession))
		assert.Empty(t, report.Delivered)
	}

	entries := f.logs.FilterMessage("intent refused").All()
	require.Len(t, entries, 3)
	for _, entry := range entries {
		assert.Equal(t, zapcore.ErrorLevel, entry.Level)
	}
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcherSendWithoutRecipientSendsNothing(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	sessions := mocks.NewMockSessionStore(t)
	sessions.EXPECT().Resolve(mockAnyContext(), domain.SessionID("s-orphan")).
		Return(domain.Session{ID: "s-orphan", Context: domain.Context{}}, nil)
	f.deps.Sessions = sessions
	messenger := mocks.NewMockMessenger(t)
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{SessionID: "s-orphan", IntentName: IntentSend, Text: "hi"})

	assert.True(t, report.Result.RefusedWith(domain.ErrUnknownSession))
	assert.Empty(t, report.Delivered)
	messenger.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestDispatcherTransportFailureKeepsCommittedTransfer(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	messenger := mocks.NewMockMessenger(t)
	messenger.EXPECT().Send(mockAnyContext(), mock.Anything).Return(errors.New("connection reset")).Once()
	dispatcher := newTestDispatcher(t, f, messenger)

	report := dispatcher.Dispatch(context.Background(), domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: IntentTransferBetweenAccounts,
		Entities:   domain.Entities{domain.EntityAmount: entity(40)},
	})

	assert.Equal(t, StatusSent, report.Status)
	require.ErrorIs(t, report.SendErr, domain.ErrTransport)
	assert.Empty(t, report.Delivered)
	assert.Equal(t, 2, report.Undelivered)

	primary, savings := f.balances(t, "acc-alice")
	assert.Equal(t, "140", primary)
	assert.Equal(t, "60", savings)
	assert.Equal(t, 1, f.logs.FilterMessage("deliver messages").Len())
}

func TestDispatcherMergesEventContextOverSessionContext(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	ctx := context.Background()
	_, err := f.sessions.UpdateContext(ctx, "s-alice", func(c domain.Context) domain.Context {
		c["contact"] = "Bob"
		c["cash"] = "5$"
		return c
	})
	require.NoError(t, err)

	registry := NewActionRegistry()
	var seen domain.Context
	require.NoError(t, registry.Register("peek", func(_ context.Context, request domain.IntentRequest, _ Deps) domain.DispatchResult {
		seen = request.Context
		return domain.Sent()
	}))
	dispatcher := NewDispatcher(registry, f.deps, mocks.NewMockMessenger(t))

	report := dispatcher.Dispatch(ctx, domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: "peek",
		Context:    domain.Context{"cash": "7$"},
	})

	assert.Equal(t, StatusSent, report.Status)
	assert.Equal(t, domain.Context{"contact": "Bob", "cash": "7$"}, seen)
}

func TestDispatcherReportsElapsedFromClock(t *testing.T) {
	t.Parallel()

	f := newFixture(t)
	started := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)
	clock := mocks.NewMockClock(t)
	clock.EXPECT().Now().Return(started).Once()
	clock.EXPECT().Now().Return(started.Add(250 * time.Millisecond)).Once()
	f.deps.Clock = clock

	report := newTestDispatcher(t, f, mocks.NewMockMessenger(t)).Dispatch(context.Background(), domain.IntentEvent{
		SessionID:  "s-alice",
		IntentName: IntentDone,
	})

	assert.Equal(t, StatusSent, report.Status)
	assert.Empty(t, report.Delivered)

	finished := f.logs.FilterMessage("dispatch finished").All()
	require.Len(t, finished, 1)
	assert.Equal(t, zapcore.DebugLevel, finished[0].Level)
	assert.Equal(t, 250*time.Millisecond, finished[0].ContextMap()["elapsed"])
}

func TestDispatcherIntentsMatchRegistry(t *testing.T) {
	t.Parallel()

	dispatcher := newTestDispatcher(t, newFixture(t), mocks.NewMockMessenger(t))

	intents := dispatcher.Intents()
	assert.Len(t, intents, 8)
	assert.IsIncreasing(t, intents)
	assert.Contains(t, intents, IntentSendMoney)
}
