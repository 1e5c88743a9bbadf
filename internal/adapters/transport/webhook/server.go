// Package webhook exposes the dispatcher over HTTP for the NLU collaborator.
package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/bnema/teller/internal/application"
	"github.com/bnema/teller/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/semaphore"
)

const (
	DefaultMaxInFlight = 64
	maxEventBytes      = 1 << 20

	readHeaderTimeout = 5 * time.Second
	shutdownTimeout   = 15 * time.Second
)

// Dispatcher is the subset of application.Dispatcher the server needs.
type Dispatcher interface {
	Dispatch(ctx context.Context, event domain.IntentEvent) application.DispatchReport
}

type Server struct {
	dispatcher Dispatcher
	inFlight   *semaphore.Weighted
	logger     *zap.Logger
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(dispatcher Dispatcher, maxInFlight int64, logger *zap.Logger) *Server {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{
		dispatcher: dispatcher,
		inFlight:   semaphore.NewWeighted(maxInFlight),
		logger:     logger,
	}
}

func (s *Server) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("POST /intents", s.handleIntent)
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK"))
	})
}

func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	s.RegisterRoutes(mux)
	return mux
}

// handleIntent answers 200 for every dispatched event, refusals included;
// 4xx and 5xx mean the event never reached the dispatcher.
func (s *Server) handleIntent(w http.ResponseWriter, r *http.Request) {
	if !s.inFlight.TryAcquire(1) {
		writeJSON(w, http.StatusServiceUnavailable, errorResponse{Error: "too many requests in flight"})
		return
	}
	defer s.inFlight.Release(1)

	event, err := decodeEvent(w, r)
	if err != nil {
		s.logger.Warn("reject intent event", zap.String("remote", r.RemoteAddr), zap.Error(err))
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: domain.ErrMalformedRequest.Error()})
		return
	}

	// A dropped webhook connection must not abort delivery of a committed turn.
	report := s.dispatcher.Dispatch(context.WithoutCancel(r.Context()), event)
	writeJSON(w, http.StatusOK, report)
}

func decodeEvent(w http.ResponseWriter, r *http.Request) (domain.IntentEvent, error) {
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventBytes))
	decoder.UseNumber()

	var event domain.IntentEvent
	if err := decoder.Decode(&event); err != nil {
		return domain.IntentEvent{}, fmt.Errorf("decode intent event: %w", err)
	}
	if decoder.More() {
		return domain.IntentEvent{}, errors.New("decode intent event: trailing data")
	}
	return event, nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

// ListenAndServe serves handler on addr until ctx is done, then drains
// in-flight requests.
func ListenAndServe(ctx context.Context, addr string, handler http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}

	listener, err := net.Listen("tcp", addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", addr, err)
	}

	server := &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("webhook listening", zap.String("addr", listener.Addr().String()))
		errCh <- server.Serve(listener)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("serve webhook: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown webhook: %w", err)
	}
	logger.Info("webhook stopped")
	return nil
}
