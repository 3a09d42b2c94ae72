package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/spf13/cobra"

	"fundledger/internal/middleware"
)

type tokenConfig struct {
	Secret string `env:"JWT_SECRET"`
	Issuer string `env:"JWT_ISSUER" envDefault:"fundledger"`
}

func TokenCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Mint a bearer token for the API",
		Long: `Mint an HS256 bearer token signed with JWT_SECRET.

Examples:
  ledgerctl token --sub 42
  ledgerctl token --sub admin --superuser --ttl 1h`,
		RunE: func(cmd *cobra.Command, args []string) error {
			sub, _ := cmd.Flags().GetString("sub")
			superuser, _ := cmd.Flags().GetBool("superuser")
			ttl, _ := cmd.Flags().GetDuration("ttl")

			var cfg tokenConfig
			if err := env.Parse(&cfg); err != nil {
				return fmt.Errorf("parse env: %w", err)
			}
			if strings.TrimSpace(cfg.Secret) == "" {
				return fmt.Errorf("JWT_SECRET is required")
			}
			if ttl <= 0 {
				return fmt.Errorf("--ttl must be positive")
			}

			token, err := middleware.SignJWT(cfg.Secret, cfg.Issuer, strings.TrimSpace(sub), superuser, ttl)
			if err != nil {
				return fmt.Errorf("failed to sign token: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}
	cmd.Flags().String("sub", "", "User id placed in the token subject (required)")
	cmd.Flags().Bool("superuser", false, "Grant superuser rights")
	cmd.Flags().Duration("ttl", 24*time.Hour, "Token lifetime")
	_ = cmd.MarkFlagRequired("sub")
	return cmd
}
