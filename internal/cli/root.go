// Package cli holds the ledgerctl command tree.
package cli

import (
	"github.com/spf13/cobra"
)

func RootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "ledgerctl",
		Short: "Administer the fund ledger",
		Long: `ledgerctl applies database migrations, mints API tokens and prints
the state of charity projects and donations.`,
		SilenceUsage: true,
	}

	rootCmd.AddCommand(MigrateCmd())
	rootCmd.AddCommand(TokenCmd())
	rootCmd.AddCommand(ProjectsCmd())
	rootCmd.AddCommand(DonationsCmd())

	return rootCmd
}
