package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var cleanupDays int

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete events past the retention window",
	RunE:  runCleanup,
}

func init() {
	cleanupCmd.Flags().IntVar(&cleanupDays, "days", 0, "retention in days (default: monitoring.retention_days)")
	rootCmd.AddCommand(cleanupCmd)
}

func runCleanup(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, time.Minute)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	days := cleanupDays
	if days <= 0 {
		days = a.cfg.Monitoring.RetentionDays
	}

	n, err := a.events.DeleteOlderThan(ctx, days)
	if err != nil {
		return fmt.Errorf("deleting old events: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %d events older than %d days\n", n, days)
	return nil
}
