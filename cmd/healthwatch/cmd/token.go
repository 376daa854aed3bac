package cmd

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/donaldgifford/healthwatch/internal/api/middleware"
	domain "github.com/donaldgifford/healthwatch/pkg/types"
)

var (
	tokenEmail string
	tokenID    string
	tokenTTL   time.Duration
)

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Mint an admin bearer token",
	Long:  "Signs an admin token with server.admin_token_secret. Pass it to hwctl with --token or HWCTL_TOKEN.",
	RunE:  runToken,
}

func init() {
	tokenCmd.Flags().StringVar(&tokenEmail, "email", "", "admin email carried by the token (required)")
	tokenCmd.Flags().StringVar(&tokenID, "id", "", "admin user ID carried by the token")
	tokenCmd.Flags().DurationVar(&tokenTTL, "ttl", 24*time.Hour, "token lifetime")
	rootCmd.AddCommand(tokenCmd)
}

func runToken(cmd *cobra.Command, _ []string) error {
	if tokenEmail == "" {
		return errors.New("--email is required")
	}

	cfg, _, err := loadConfig()
	if err != nil {
		return err
	}
	if cfg.Server.AdminTokenSecret == "" {
		return errors.New("server.admin_token_secret is not set")
	}

	tok, err := middleware.IssueAdminToken(cfg.Server.AdminTokenSecret,
		domain.Actor{ID: tokenID, Email: tokenEmail}, tokenTTL)
	if err != nil {
		return fmt.Errorf("issuing token: %w", err)
	}

	fmt.Fprintln(cmd.OutOrStdout(), tok)
	return nil
}
