package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func rulesCmd() *cobra.Command {
	rulesRoot := &cobra.Command{
		Use:   "rules",
		Short: "Inspect alert rules",
	}

	rulesRoot.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List alert rules",
		RunE: func(cmd *cobra.Command, _ []string) error {
			rules, err := newClient().ListAlertRules(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if jsonOutput() {
				return outputJSON(out, rules)
			}
			if len(rules) == 0 {
				fmt.Fprintln(out, "No alert rules found. Run `healthwatch seed`.")
				return nil
			}
			return printRulesTable(out, rules)
		},
	})

	return rulesRoot
}
