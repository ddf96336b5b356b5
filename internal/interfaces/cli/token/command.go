// Package token issues bearer tokens for partner integrations and staff.
package token

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hhgcare/hhg/internal/infrastructure/auth"
	"github.com/hhgcare/hhg/internal/interfaces/cli/bootstrap"
	"github.com/hhgcare/hhg/internal/shared/authorization"
)

var (
	opts    bootstrap.Options
	subject string
	role    string
	partner string
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "API token tools",
	}

	cmd.PersistentFlags().StringVarP(&opts.Env, "env", "e", "development", "Environment (development, test, production)")
	cmd.PersistentFlags().StringVarP(&opts.ConfigPath, "config", "c", "", "Path to config file (default: ./configs/config.yaml)")

	issue := &cobra.Command{
		Use:   "issue",
		Short: "Issue a signed access token",
		RunE:  runIssue,
	}
	issue.Flags().StringVar(&subject, "subject", "", "Actor identifier (required)")
	issue.Flags().StringVar(&role, "role", string(authorization.RolePartner), "Role: admin, staff or partner")
	issue.Flags().StringVar(&partner, "partner", "", "Partner name, required for partner tokens")
	_ = issue.MarkFlagRequired("subject")

	cmd.AddCommand(issue)
	return cmd
}

func runIssue(cmd *cobra.Command, args []string) error {
	cfg, log, err := bootstrap.Load(opts)
	if err != nil {
		return err
	}

	svc := auth.NewJWTService(cfg.Auth.JWT.Secret, cfg.Auth.JWT.Issuer, cfg.Auth.JWT.AccessExpMinutes)
	result, err := svc.Generate(subject, authorization.UserRole(role), partner)
	if err != nil {
		return fmt.Errorf("failed to issue token: %w", err)
	}

	log.Infow("token issued", "subject", subject, "role", role, "expires_at", result.ExpiresAt)
	fmt.Fprintln(cmd.OutOrStdout(), result.AccessToken)
	return nil
}
