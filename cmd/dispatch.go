package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/bnema/teller/internal/application"
	"github.com/bnema/teller/internal/domain"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

func newDispatchCmd(app *app) *cobra.Command {
	var eventsPath string
	var messengerKind string

	cmd := &cobra.Command{
		Use:   "dispatch",
		Short: "Dispatch intent events read as JSON from a file or stdin",
		Long:  "dispatch reads a stream of intent event JSON objects, runs each through the action registry concurrently, writes outbound envelopes to stdout and one dispatch report per event to stderr.",
		RunE: func(cmd *cobra.Command, _ []string) error {
			input := cmd.InOrStdin()
			if eventsPath != "" && eventsPath != "-" {
				file, err := os.Open(eventsPath)
				if err != nil {
					return fmt.Errorf("open events file: %w", err)
				}
				defer file.Close()
				input = file
			}

			accounts, err := app.openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			sessions, err := app.openSessions(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(sessions)

			messenger, err := app.newMessenger(messengerKind, cmd.OutOrStdout())
			if err != nil {
				return err
			}
			dispatcher, err := app.newDispatcher(accounts, sessions, messenger)
			if err != nil {
				return err
			}

			reports := newReportWriter(cmd.ErrOrStderr())
			runner := application.NewRunner(dispatcher, app.cfg.Dispatch.MaxInFlight, app.logger, reports.write)

			events := make(chan domain.IntentEvent)
			g, ctx := errgroup.WithContext(cmd.Context())
			g.Go(func() error {
				defer close(events)
				return decodeEvents(ctx, input, events)
			})
			g.Go(func() error {
				return runner.Run(ctx, events)
			})
			if err := g.Wait(); err != nil {
				return err
			}
			return reports.err()
		},
	}

	cmd.Flags().StringVar(&eventsPath, "file", "", "Path to a file of intent events (default stdin)")
	cmd.Flags().StringVar(&messengerKind, "messenger", messengerConsole, "Outbound messenger (console|graph)")

	return cmd
}

func decodeEvents(ctx context.Context, input io.Reader, events chan<- domain.IntentEvent) error {
	decoder := json.NewDecoder(input)
	decoder.UseNumber()

	for {
		var event domain.IntentEvent
		if err := decoder.Decode(&event); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("decode intent event: %w", err)
		}

		select {
		case events <- event:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

type reportWriter struct {
	mu       sync.Mutex
	enc      *json.Encoder
	writeErr error
}

func newReportWriter(w io.Writer) *reportWriter {
	return &reportWriter{enc: json.NewEncoder(w)}
}

func (r *reportWriter) write(report application.DispatchReport) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.enc.Encode(report); err != nil && r.writeErr == nil {
		r.writeErr = fmt.Errorf("write dispatch report: %w", err)
	}
}

func (r *reportWriter) err() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.writeErr
}
