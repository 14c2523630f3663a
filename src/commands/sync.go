package commands

import (
	"banksync-server/src/syncer"
	"context"
	"encoding/json"
	"time"

	"github.com/spf13/cobra"
)

func newSyncCommand() *cobra.Command {
	var accountID string

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Run one synchronization and print the summary as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, logger, err := loadConfig()
			if err != nil {
				return err
			}

			a, err := newApp(cmd.Context(), cfg, logger)
			if err != nil {
				return err
			}
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
				defer cancel()
				a.Close(ctx)
			}()

			scope := syncer.AllAccounts()
			if accountID != "" {
				scope = syncer.SingleAccount(accountID)
			}

			summary, err := a.syncer.Run(cmd.Context(), scope)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(summary)
		},
	}

	cmd.Flags().StringVar(&accountID, "account", "", "synchronize only this account id")
	return cmd
}
