package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/bnema/teller/internal/adapters/transport/webhook"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func newServeCmd(app *app) *cobra.Command {
	var listen string
	var messengerKind string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Accept intent events over HTTP and reply through the messenger",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			accounts, err := app.openAccounts(ctx)
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			sessions, err := app.openSessions(ctx)
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

			server := webhook.NewServer(dispatcher, int64(app.cfg.Dispatch.MaxInFlight), app.logger)
			app.logger.Info("serving intents",
				zap.String("accounts_path", accounts.Path()),
				zap.String("messenger", messengerKind),
				zap.Strings("intents", dispatcher.Intents()),
			)
			return webhook.ListenAndServe(ctx, listen, server.Handler(), app.logger)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", app.cfg.Server.Listen, "Listen address for the intent webhook")
	cmd.Flags().StringVar(&messengerKind, "messenger", messengerGraph, "Outbound messenger (console|graph)")

	return cmd
}
