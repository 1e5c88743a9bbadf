package cmd

import (
	"fmt"
	"strings"

	"github.com/bnema/teller/internal/application"
	"github.com/spf13/cobra"
)

func newIntentsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "intents",
		Short: "List the intent names the dispatcher routes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			registry, err := application.DefaultRegistry()
			if err != nil {
				return fmt.Errorf("wire action registry: %w", err)
			}
			names := registry.Names()
			if len(names) == 0 {
				return nil
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), strings.Join(names, "\n"))
			return err
		},
	}
}
