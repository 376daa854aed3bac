package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var checkTimeout time.Duration

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Run one evaluation pass and exit",
	Long:  "Samples the host, checks every user against their quota and records an event for each threshold crossed, exactly like one scheduled pass.",
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().DurationVar(&checkTimeout, "timeout", 5*time.Minute, "abort the pass after this long")
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, _ []string) error {
	ctx, cancel := contextWithTimeout(cmd, checkTimeout)
	defer cancel()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()

	start := time.Now()
	if err := a.evaluator.RunChecks(ctx); err != nil {
		return fmt.Errorf("running checks: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Monitoring checks completed in %s\n", time.Since(start).Round(time.Millisecond))
	return nil
}
