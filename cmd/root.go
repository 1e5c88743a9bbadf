package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "teller",
		Short:         "Teller: conversational banking assistant",
		Long:          "teller dispatches intent events from a natural-language front end to banking actions, keeps account balances and conversation sessions, and replies through the messenger.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	app, err := wireApp()
	if err != nil {
		rootCmd.RunE = func(_ *cobra.Command, _ []string) error {
			return err
		}
		return rootCmd
	}
	rootCmd.PersistentPostRun = func(_ *cobra.Command, _ []string) {
		_ = app.logger.Sync()
	}

	rootCmd.AddCommand(
		newVersionCmd(),
		newAccountCmd(app),
		newSessionCmd(app),
		newSecretCmd(app),
		newDispatchCmd(app),
		newIntentsCmd(),
		newServeCmd(app),
	)

	return rootCmd
}
