package cmd

import (
	"github.com/spf13/cobra"
)

func monitoringCmd() *cobra.Command {
	monRoot := &cobra.Command{
		Use:     "monitoring",
		Aliases: []string{"mon"},
		Short:   "Control the monitor",
	}

	monRoot.AddCommand(
		&cobra.Command{
			Use:   "status",
			Short: "Show the scheduler state",
			RunE: func(cmd *cobra.Command, _ []string) error {
				st, err := newClient().MonitoringStatus(cmd.Context())
				if err != nil {
					return err
				}
				if jsonOutput() {
					return outputJSON(cmd.OutOrStdout(), st)
				}
				return printStatus(cmd.OutOrStdout(), st)
			},
		},
		&cobra.Command{
			Use:   "check",
			Short: "Run one evaluation pass now",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := newClient().TriggerChecks(cmd.Context())
				if err != nil {
					return err
				}
				return printAdminResult(cmd, res)
			},
		},
		&cobra.Command{
			Use:   "cleanup",
			Short: "Delete events past the retention window now",
			RunE: func(cmd *cobra.Command, _ []string) error {
				res, err := newClient().CleanupOldEvents(cmd.Context())
				if err != nil {
					return err
				}
				return printAdminResult(cmd, res)
			},
		},
	)

	return monRoot
}
