// Package cmd implements the CLI commands for healthwatch.
package cmd

import (
	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:           "healthwatch",
	Short:         "Monitor host and per-user resource usage",
	Long:          "A health monitor that samples host CPU, memory and disk, checks per-user storage quotas, records alert events in PostgreSQL and routes them to Discord.",
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "config.yaml", "config file path")
	rootCmd.AddCommand(versionCommand())
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
