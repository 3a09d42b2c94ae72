package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"fundledger/internal/adapter/repo"
	"fundledger/internal/domain"
	"fundledger/internal/infra"
	"fundledger/internal/ledger"
)

func ProjectsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "projects",
		Short: "Inspect charity projects",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List charity projects in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			return withLedger(cmd.Context(), func(svc *ledger.Service) error {
				projects, err := svc.ListProjects(cmd.Context())
				if err != nil {
					return fmt.Errorf("failed to list projects: %w", err)
				}
				printProjects(cmd.OutOrStdout(), projects)
				return nil
			})
		},
	})
	return cmd
}

func DonationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "donations",
		Short: "Inspect donations",
	}
	list := &cobra.Command{
		Use:   "list",
		Short: "List donations in creation order",
		RunE: func(cmd *cobra.Command, args []string) error {
			user, _ := cmd.Flags().GetString("user")
			return withLedger(cmd.Context(), func(svc *ledger.Service) error {
				var (
					donations []*domain.Donation
					err       error
				)
				if user != "" {
					donations, err = svc.ListUserDonations(cmd.Context(), user)
				} else {
					donations, err = svc.ListDonations(cmd.Context())
				}
				if err != nil {
					return fmt.Errorf("failed to list donations: %w", err)
				}
				printDonations(cmd.OutOrStdout(), donations)
				return nil
			})
		},
	}
	list.Flags().String("user", "", "Only donations of this user id")
	cmd.AddCommand(list)
	return cmd
}

// withLedger connects to Postgres for the duration of fn.
func withLedger(ctx context.Context, fn func(svc *ledger.Service) error) error {
	cfg, err := infra.LoadConfig()
	if err != nil {
		return err
	}
	if cfg.StorageDriver != infra.StorageDriverPostgres {
		return fmt.Errorf("ledgerctl needs STORAGE_DRIVER=postgres, got %q", cfg.StorageDriver)
	}
	logger := infra.NewLoggerTo(os.Stderr, cfg.AppEnv)

	pool, err := infra.NewDBPool(ctx, cfg)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}
	defer pool.Close()

	store := repo.NewStore(infra.NewSQLRunner(pool, logger))
	return fn(ledger.NewService(store, logger))
}
