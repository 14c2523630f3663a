package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the banksync CLI with all subcommands registered.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "banksync",
		Short: "Bank account and transaction synchronization server",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
	}

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(newSyncCommand())
	rootCmd.AddCommand(newMigrateCommand())

	return rootCmd
}
