// Package graph delivers outbound messages through an HTTP Send API in the
// shape of the Messenger Platform: a JSON body holding the recipient and the
// message, authenticated with a page access token.
package graph

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/bnema/teller/internal/domain"
	"github.com/bnema/teller/internal/ports"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	DefaultEndpoint = "https://graph.facebook.com/v2.6/me/messages"
	DefaultTimeout  = 10 * time.Second

	idempotencyHeader = "X-Idempotency-Key"
	maxErrorBody      = 4 << 10
)

type Config struct {
	Endpoint string
	TokenKey string
	Rate     float64
	Burst    int
	Timeout  time.Duration
}

type Messenger struct {
	endpoint string
	tokenKey string
	secrets  ports.SecretStore
	client   *http.Client
	limiter  *rate.Limiter
	logger   *zap.Logger
}

var _ ports.Messenger = (*Messenger)(nil)

type sendRequest struct {
	Recipient recipient              `json:"recipient"`
	Message   domain.OutboundMessage `json:"message"`
}

type recipient struct {
	ID string `json:"id"`
}

type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    int    `json:"code"`
	} `json:"error"`
}

func NewMessenger(cfg Config, secrets ports.SecretStore, client *http.Client, logger *zap.Logger) (*Messenger, error) {
	if secrets == nil {
		return nil, fmt.Errorf("graph messenger: secret store is required")
	}
	if cfg.TokenKey == "" {
		return nil, fmt.Errorf("graph messenger: token key is required")
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultEndpoint
	}
	if _, err := url.Parse(cfg.Endpoint); err != nil {
		return nil, fmt.Errorf("graph messenger: parse endpoint: %w", err)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = DefaultTimeout
	}
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	limit := rate.Inf
	if cfg.Rate > 0 {
		limit = rate.Limit(cfg.Rate)
	}
	burst := cfg.Burst
	if burst <= 0 {
		burst = 1
	}

	return &Messenger{
		endpoint: cfg.Endpoint,
		tokenKey: cfg.TokenKey,
		secrets:  secrets,
		client:   client,
		limiter:  rate.NewLimiter(limit, burst),
		logger:   logger,
	}, nil
}

func (m *Messenger) Send(ctx context.Context, envelope domain.Envelope) error {
	if err := m.limiter.Wait(ctx); err != nil {
		return fmt.Errorf("%w: wait for send slot: %w", domain.ErrTransport, err)
	}

	token, err := m.secrets.Get(ctx, m.tokenKey)
	if err != nil {
		return fmt.Errorf("%w: load page token: %w", domain.ErrTransport, err)
	}

	body, err := json.Marshal(sendRequest{
		Recipient: recipient{ID: string(envelope.Recipient)},
		Message:   envelope.Message,
	})
	if err != nil {
		return fmt.Errorf("encode send request: %w", err)
	}

	endpoint, err := url.Parse(m.endpoint)
	if err != nil {
		return fmt.Errorf("parse endpoint: %w", err)
	}
	query := endpoint.Query()
	query.Set("access_token", token)
	endpoint.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("build send request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(idempotencyHeader, envelope.ID)

	resp, err := m.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: post message: %w", domain.ErrTransport, redact(err, token))
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("%w: %s", domain.ErrTransport, describeFailure(resp))
	}
	_, _ = io.Copy(io.Discard, resp.Body)

	m.logger.Debug("message delivered",
		zap.String("envelope_id", envelope.ID),
		zap.String("recipient", string(envelope.Recipient)),
	)
	return nil
}

func describeFailure(resp *http.Response) string {
	data, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))

	var decoded apiError
	if err := json.Unmarshal(data, &decoded); err == nil && decoded.Error.Message != "" {
		return fmt.Sprintf("status %d: %s (code %d)", resp.StatusCode, decoded.Error.Message, decoded.Error.Code)
	}
	return fmt.Sprintf("status %d", resp.StatusCode)
}

// redact keeps the access token out of url errors.
func redact(err error, token string) error {
	var urlErr *url.Error
	if token == "" || !errors.As(err, &urlErr) {
		return err
	}
	return fmt.Errorf("%s: %w", urlErr.Op, urlErr.Err)
}
