package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

func newSecretCmd(app *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "secret",
		Short: "Manage messenger credentials",
	}

	cmd.AddCommand(newSecretSetTokenCmd(app), newSecretClearTokenCmd(app))

	return cmd
}

func newSecretSetTokenCmd(app *app) *cobra.Command {
	var value string

	cmd := &cobra.Command{
		Use:   "set-token",
		Short: "Store the messenger page access token (reads stdin when --value is empty)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			token := strings.TrimSpace(value)
			if token == "" {
				raw, err := io.ReadAll(cmd.InOrStdin())
				if err != nil {
					return fmt.Errorf("read token from stdin: %w", err)
				}
				token = strings.TrimSpace(string(raw))
			}
			if token == "" {
				return fmt.Errorf("token is empty")
			}

			return app.secretStore.Put(cmd.Context(), app.cfg.Messenger.TokenKey, token)
		},
	}

	cmd.Flags().StringVar(&value, "value", "", "Page access token")

	return cmd
}

func newSecretClearTokenCmd(app *app) *cobra.Command {
	return &cobra.Command{
		Use:   "clear-token",
		Short: "Remove the stored messenger page access token",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return app.secretStore.Delete(cmd.Context(), app.cfg.Messenger.TokenKey)
		},
	}
}
