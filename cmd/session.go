package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/bnema/teller/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage conversation sessions",
	}

	cmd.AddCommand(newSessionBindCmd(app), newSessionShowCmd(app))

	return cmd
}

func newSessionBindCmd(app *app) *cobra.Command {
	var sessionID string
	var accountID string

	cmd := &cobra.Command{
		Use:   "bind",
		Short: "Bind a conversation session to an account",
		RunE: func(cmd *cobra.Command, _ []string) error {
			accounts, err := app.openAccounts(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(accounts)

			if _, err := accounts.Get(cmd.Context(), domain.AccountID(accountID)); err != nil {
				return fmt.Errorf("bind session %s: %w", sessionID, err)
			}

			sessions, err := app.openSessions(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(sessions)

			return sessions.Bind(cmd.Context(), domain.SessionID(sessionID), domain.AccountID(accountID))
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Conversation session ID")
	cmd.Flags().StringVar(&accountID, "account", "", "Account ID")
	_ = cmd.MarkFlagRequired("session")
	_ = cmd.MarkFlagRequired("account")

	return cmd
}

type sessionView struct {
	SessionID domain.SessionID `json:"session_id"`
	AccountID domain.AccountID `json:"account_id"`
	Context   domain.Context   `json:"context"`
}

func newSessionShowCmd(app *app) *cobra.Command {
	var sessionID string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Show a session binding and its conversation context",
		RunE: func(cmd *cobra.Command, _ []string) error {
			sessions, err := app.openSessions(cmd.Context())
			if err != nil {
				return err
			}
			defer app.closeAll(sessions)

			session, err := sessions.Resolve(cmd.Context(), domain.SessionID(sessionID))
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(sessionView{
				SessionID: session.ID,
				AccountID: session.AccountID,
				Context:   session.Context,
			})
		},
	}

	cmd.Flags().StringVar(&sessionID, "session", "", "Conversation session ID")
	_ = cmd.MarkFlagRequired("session")

	return cmd
}
