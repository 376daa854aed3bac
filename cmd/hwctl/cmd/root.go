// Package cmd implements the hwctl CLI commands.
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	apiclient "github.com/donaldgifford/healthwatch/internal/api/client"
)

var (
	cfgFile string
	rootCmd = &cobra.Command{
		Use:   "hwctl",
		Short: "CLI client for Healthwatch",
		Long: "hwctl is a command-line client for the Healthwatch API.\n" +
			"It lets you browse and clear events, trigger monitoring passes,\n" +
			"and inspect the scheduler from the terminal.",
		SilenceUsage: true,
	}
)

// Root returns the root cobra command for documentation generation.
func Root() *cobra.Command {
	return rootCmd
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().
		StringVar(&cfgFile, "config", "", "config file (default $HOME/.hwctl.yaml)")
	rootCmd.PersistentFlags().
		String("server", "http://localhost:8080", "API server URL")
	rootCmd.PersistentFlags().
		String("output", "table", "output format (table, json)")
	rootCmd.PersistentFlags().
		String("token", "", "admin bearer token (see `healthwatch token`)")
	rootCmd.PersistentFlags().
		String("admin-email", "", "admin email sent to servers without a token secret")

	cobra.CheckErr(viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server")))
	cobra.CheckErr(viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output")))
	cobra.CheckErr(viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token")))
	cobra.CheckErr(viper.BindPFlag("admin_email", rootCmd.PersistentFlags().Lookup("admin-email")))

	rootCmd.AddCommand(eventsCmd())
	rootCmd.AddCommand(monitoringCmd())
	rootCmd.AddCommand(rulesCmd())
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		cobra.CheckErr(err)

		viper.AddConfigPath(home)
		viper.SetConfigType("yaml")
		viper.SetConfigName(".hwctl")
	}

	viper.SetEnvPrefix("HWCTL")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

func newClient() *apiclient.Client {
	var opts []apiclient.Option
	if tok := viper.GetString("token"); tok != "" {
		opts = append(opts, apiclient.WithToken(tok))
	}
	if email := viper.GetString("admin_email"); email != "" {
		opts = append(opts, apiclient.WithAdminEmail(email))
	}
	return apiclient.New(viper.GetString("server"), opts...)
}

func jsonOutput() bool {
	return viper.GetString("output") == "json"
}
