package app

import (
	"github.com/spf13/cobra"
)

var (
	version    = "dev"
	configPath string
)

var rootCmd = &cobra.Command{
	Use:     "event-registration-api",
	Short:   "HTTP API for event registrations",
	Long:    `Accepts solo and team registrations for events and serves the admin dashboard statistics.`,
	Version: version,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Start(configPath)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (default)",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Start(configPath)
	},
}

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Migrate(configPath)
	},
}

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Insert the sample events, skipping existing ones",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return Seed(cmd.Context(), configPath)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", defaultConfigPath,
		"path to the YAML config file")

	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(v string) {
	version = v
	rootCmd.Version = v
}
