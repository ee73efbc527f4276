package cmd

import "github.com/spf13/cobra"

func Execute() error {
	return newRootCmd().Execute()
}

func newRootCmd() *cobra.Command {
	var debug bool

	rootCmd := &cobra.Command{
		Use:           "fchat",
		Short:         "fchat: terminal chat with a hosted Azure AI Foundry agent",
		Long:          "fchat relays your text to a hosted Foundry agent (thread → message → run) and renders the reply, either as an interactive chat screen or a one-shot question.",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug logging on stderr")

	rootCmd.AddCommand(
		newVersionCmd(),
		newConfigCmd(),
		newChatCmd(&debug),
		newAskCmd(&debug),
	)

	return rootCmd
}
