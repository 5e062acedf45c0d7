// Zedbee-setup is the configuration utility for ZedBee IoT gateways.
//
// It provides gateway discovery, an interactive setup wizard, and direct
// status commands for ZedBee Modbus-to-MQTT gateways. The tool talks to
// the gateway's setup backend over HTTP on the local network.
//
// Usage:
//
//	zedbee-setup [command] [flags]
//
// Running without arguments launches the interactive wizard.
// See 'zedbee-setup --help' for available commands.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zedbee/gateway-wizard/internal/logging"
	"github.com/zedbee/gateway-wizard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zedbee-setup",
	Short: "ZedBee Gateway Setup Utility",
	Long: `A standalone utility for configuring ZedBee IoT gateways.

Provides gateway discovery, an interactive setup wizard, and direct
status commands for ZedBee Modbus-to-MQTT gateways.

If no command is specified, the interactive wizard will launch automatically.`,
	Version: version.Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Honor ZEDBEE_LOG_LEVEL for all subcommands
		return logging.InitializeFromEnv()
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		// Default behavior: run wizard when no subcommand provided
		return runWizard(cmd, args)
	},
}

func init() {
	// Disable automatic completion command generation
	rootCmd.CompletionOptions.DisableDefaultCmd = true

	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zedbee-setup %s (commit: %s)\n", version.Version, version.Commit)
	},
}
