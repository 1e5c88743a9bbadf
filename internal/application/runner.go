package application

import (
	"context"

	"github.com/bnema/teller/internal/domain"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

const DefaultMaxInFlight = 32

// Runner dispatches events concurrently, one goroutine per event, with at
// most maxInFlight turns running at once.
type Runner struct {
	dispatcher  *Dispatcher
	maxInFlight int
	logger      *zap.Logger
	onReport    func(DispatchReport)
}

func NewRunner(dispatcher *Dispatcher, maxInFlight int, logger *zap.Logger, onReport func(DispatchReport)) *Runner {
	if maxInFlight <= 0 {
		maxInFlight = DefaultMaxInFlight
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	if onReport == nil {
		onReport = func(DispatchReport) {}
	}
	return &Runner{
		dispatcher:  dispatcher,
		maxInFlight: maxInFlight,
		logger:      logger,
		onReport:    onReport,
	}
}

// Run consumes events until the channel closes or ctx is done, then waits for
// in-flight turns to finish.
func (r *Runner) Run(ctx context.Context, events <-chan domain.IntentEvent) error {
	var g errgroup.Group
	g.SetLimit(r.maxInFlight)

	dispatched := 0
	defer func() {
		r.logger.Debug("runner stopped", zap.Int("dispatched", dispatched))
	}()

	for {
		select {
		case <-ctx.Done():
			_ = g.Wait()
			return ctx.Err()
		case event, ok := <-events:
			if !ok {
				return g.Wait()
			}
			dispatched++
			g.Go(func() error {
				r.onReport(r.dispatcher.Dispatch(ctx, event))
				return nil
			})
		}
	}
}
