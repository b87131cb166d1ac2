package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jonathan/ats-scorer/internal/server"
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Issue an API token for a tenant",
	Long: `Issue an HS256 bearer token signed with the configured JWT secret.
Without --tenant the token selects the default scoring weights.`,
	RunE: runToken,
}

var tokenTenant string

func init() {
	tokenCmd.Flags().StringVar(&tokenTenant, "tenant", "", "Tenant name (must be configured under tenants)")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd, nil)
	if err != nil {
		return err
	}
	if !cfg.JWT.Enabled() {
		return fmt.Errorf("JWT secret is not configured (set JWT_SECRET or jwt.secret)")
	}

	tenant := strings.ToLower(strings.TrimSpace(tokenTenant))
	if tenant != "" {
		if _, ok := cfg.TenantWeights(tenant); !ok {
			return fmt.Errorf("unknown tenant: %s", tenant)
		}
	}

	service, err := server.NewJWTService(cfg.JWT)
	if err != nil {
		return err
	}
	token, err := service.GenerateToken(tenant)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(cmd.OutOrStdout(), token)
	return err
}
