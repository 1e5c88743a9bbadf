package graph

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const tokenKey = "teller://messenger/page_token"

func TestMessengerPostsEnvelope(t *testing.T) {
	t.Parallel()

	var received sendRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "page-token", r.URL.Query().Get("access_token"))
		assert.Equal(t, "env-1", r.Header.Get("X-Idempotency-Key"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		_, _ = w.Write([]byte(`{"recipient_id":"acc-alice","message_id":"mid.1"}`))
	}))
	t.Cleanup(server.Close)

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("page-token", nil)

	messenger, err := NewMessenger(Config{Endpoint: server.URL, TokenKey: tokenKey}, secrets, server.Client(), nil)
	require.NoError(t, err)

	err = messenger.Send(context.Background(), domain.Envelope{
		ID:        "env-1",
		Recipient: "acc-alice",
		Message: domain.GenericTemplate(domain.TemplateElement{
			Title: "Current account balance", ImageURL: "http://i.imgur.com/RPZqMaL.png", Subtitle: "$1.00",
		}),
	})
	require.NoError(t, err)

	assert.Equal(t, "acc-alice", received.Recipient.ID)
	require.NotNil(t, received.Message.Attachment)
	assert.Equal(t, "template", received.Message.Attachment.Type)
	assert.Equal(t, "generic", received.Message.Attachment.Payload.TemplateType)
	assert.Equal(t, "$1.00", received.Message.Attachment.Payload.Elements[0].Subtitle)
}

func TestMessengerReportsAPIErrorsAsTransportErrors(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":{"message":"Invalid OAuth access token.","type":"OAuthException","code":190}}`))
	}))
	t.Cleanup(server.Close)

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("stale", nil)

	messenger, err := NewMessenger(Config{Endpoint: server.URL, TokenKey: tokenKey}, secrets, server.Client(), nil)
	require.NoError(t, err)

	err = messenger.Send(context.Background(), domain.Envelope{ID: "env-1", Recipient: "acc-alice", Message: domain.TextMessage("hi")})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorContains(t, err, "Invalid OAuth access token.")
	assert.NotContains(t, err.Error(), "stale")
}

func TestMessengerMissingTokenIsTransportError(t *testing.T) {
	t.Parallel()

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("", domain.ErrSecretNotFound)

	messenger, err := NewMessenger(Config{Endpoint: "http://127.0.0.1:0", TokenKey: tokenKey}, secrets, nil, nil)
	require.NoError(t, err)

	err = messenger.Send(context.Background(), domain.Envelope{ID: "env-1", Recipient: "acc-alice", Message: domain.TextMessage("hi")})
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.ErrorIs(t, err, domain.ErrSecretNotFound)
}

func TestMessengerRateLimitHonoursContext(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))
	t.Cleanup(server.Close)

	secrets := mocks.NewMockSecretStore(t)
	secrets.EXPECT().Get(mock.Anything, tokenKey).Return("page-token", nil).Once()

	messenger, err := NewMessenger(Config{Endpoint: server.URL, TokenKey: tokenKey, Rate: 0.01, Burst: 1}, secrets, server.Client(), nil)
	require.NoError(t, err)

	envelope := domain.Envelope{ID: "env-1", Recipient: "acc-alice", Message: domain.TextMessage("hi")}
	require.NoError(t, messenger.Send(context.Background(), envelope))

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err = messenger.Send(ctx, envelope)
	require.ErrorIs(t, err, domain.ErrTransport)
	assert.Equal(t, int32(1), calls.Load())
}

func TestNewMessengerValidatesConfig(t *testing.T) {
	t.Parallel()

	_, err := NewMessenger(Config{TokenKey: tokenKey}, nil, nil, nil)
	require.Error(t, err)

	_, err = NewMessenger(Config{}, mocks.NewMockSecretStore(t), nil, nil)
	require.Error(t, err)
}
