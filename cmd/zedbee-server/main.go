// Zedbee-server is the setup backend that runs on a ZedBee IoT gateway.
//
// It serves the REST API used by the zedbee-setup wizard: account and
// session management, per-user configuration storage, and live system
// telemetry. The server announces itself over mDNS so the wizard can find
// the gateway without manual addressing.
//
// Usage:
//
//	zedbee-server serve [flags]
//
// See 'zedbee-server serve --help' for available options.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/zedbee/gateway-wizard/internal/server"
	"github.com/zedbee/gateway-wizard/internal/version"
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zedbee-server",
	Short: "ZedBee Gateway Setup Backend",
	Long: `The setup backend that runs on a ZedBee IoT gateway.

Serves the REST API used by the zedbee-setup wizard: accounts, sessions,
per-user configuration storage and live system telemetry. Announces
itself over mDNS so the wizard can discover the gateway automatically.`,
	Version: version.Version,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// Serve command and flags
var (
	configPath string
	host       string
	port       int
	dbPath     string
	logLevel   string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the setup backend",
	Long: `Start the ZedBee setup backend and block until interrupted.

Configuration is read from a YAML file when --config is given; flags
override file values. Without a config file the built-in defaults are
used (listen on 0.0.0.0:8090, SQLite database zedbee.db).`,
	Example: `  # Start with defaults
  zedbee-server serve

  # Start with a config file
  zedbee-server serve --config /etc/zedbee/server.yaml

  # Override the port and log level
  zedbee-server serve --port 9090 --log-level debug`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&configPath, "config", "", "Path to YAML config file")
	serveCmd.Flags().StringVar(&host, "host", "", "Listen address (overrides config)")
	serveCmd.Flags().IntVar(&port, "port", 0, "Listen port (overrides config)")
	serveCmd.Flags().StringVar(&dbPath, "db", "", "SQLite database path (overrides config)")
	serveCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := server.LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if host != "" {
		cfg.Host = host
	}
	if port != 0 {
		cfg.Port = port
	}
	if dbPath != "" {
		cfg.DBPath = dbPath
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}

	srv, err := server.New(cfg)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- srv.Start()
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return err
	case sig := <-sigCh:
		fmt.Printf("Received %s, shutting down...\n", sig)
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Stop(ctx)
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("zedbee-server %s (commit: %s)\n", version.Version, version.Commit)
	},
}
