package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the default alert rules that are missing",
	RunE:  runSeed,
}

func init() {
	rootCmd.AddCommand(seedCmd)
}

func runSeed(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, 30*time.Second)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	if err := a.events.SeedAlertRules(ctx); err != nil {
		return fmt.Errorf("seeding alert rules: %w", err)
	}

	rules, err := a.events.AlertRules(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%d alert rules present\n", len(rules))
	return nil
}
