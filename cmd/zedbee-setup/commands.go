package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/zedbee/gateway-wizard/internal/api"
	"github.com/zedbee/gateway-wizard/internal/auth"
	"github.com/zedbee/gateway-wizard/internal/discovery"
	"github.com/zedbee/gateway-wizard/internal/router"
	"github.com/zedbee/gateway-wizard/internal/server"
	"github.com/zedbee/gateway-wizard/internal/session"
	"github.com/zedbee/gateway-wizard/internal/store"
	"github.com/zedbee/gateway-wizard/internal/summary"
	"github.com/zedbee/gateway-wizard/internal/telemetry"
	"github.com/zedbee/gateway-wizard/internal/tui"
)

// Command flags
var (
	gatewayURL  string
	gatewayName string
	stateDir    string
	offline     bool
	scanTimeout int
)

func init() {
	rootCmd.PersistentFlags().StringVar(&gatewayURL, "gateway", "", "Gateway base URL, e.g. http://192.168.1.50:8090 (skips discovery)")
	rootCmd.PersistentFlags().StringVar(&gatewayName, "gateway-name", "", "mDNS instance name of a specific gateway to wait for")
	rootCmd.PersistentFlags().StringVar(&stateDir, "state-dir", "", "Directory for local wizard state (defaults to the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&offline, "offline", false, "Run without a gateway: in-memory demo account, local telemetry")

	rootCmd.AddCommand(discoverCmd)
	rootCmd.AddCommand(loginCmd)
	rootCmd.AddCommand(logoutCmd)
	rootCmd.AddCommand(statusCmd)
	rootCmd.AddCommand(monitorCmd)
	rootCmd.AddCommand(wizardCmd)
}

// resolveStateDir picks the local state directory for the wizard document
// and session token.
func resolveStateDir() (string, error) {
	if stateDir != "" {
		return stateDir, nil
	}
	return store.DefaultDir()
}

// resolveGateway returns the backend base URL, discovering a gateway over
// mDNS when none was given explicitly.
func resolveGateway(ctx context.Context) (string, error) {
	if gatewayURL != "" {
		return strings.TrimRight(gatewayURL, "/"), nil
	}

	if gatewayName != "" {
		fmt.Printf("Waiting for gateway %q on the local network...\n", gatewayName)
		gw, err := discovery.NewScanner().WaitForGateway(ctx, gatewayName)
		if err != nil {
			return "", err
		}
		return gw.BaseURL(), nil
	}

	fmt.Println("Looking for a ZedBee gateway on the local network...")
	gateways, err := discovery.QuickScan(ctx)
	if err != nil {
		return "", fmt.Errorf("discovery failed: %w", err)
	}
	if len(gateways) == 0 {
		return "", fmt.Errorf("no gateway found; use --gateway to specify the address manually")
	}
	if len(gateways) > 1 {
		fmt.Printf("Found %d gateways, using %s\n", len(gateways), gateways[0].Name)
	}
	return gateways[0].BaseURL(), nil
}

// buildEnv wires the client-side stack: local store, API client, session
// manager and router. In offline mode there is no gateway: authentication
// runs against a seeded in-memory backend and telemetry is collected from
// the local machine.
func buildEnv(ctx context.Context) (*session.Manager, *router.Router, *store.Store, error) {
	dir, err := resolveStateDir()
	if err != nil {
		return nil, nil, nil, err
	}

	if offline {
		st, err := store.Open(dir, nil)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("opening local state: %w", err)
		}
		backend := auth.NewMemory()
		backend.Seed("demo", "demo@123")
		sess := session.NewManager(st, backend)
		poller := telemetry.NewPoller(localFetcher{})
		rt := router.New(sess, st, poller)
		return sess, rt, st, nil
	}

	baseURL, err := resolveGateway(ctx)
	if err != nil {
		return nil, nil, nil, err
	}

	client := api.NewClient(baseURL)
	st, err := store.Open(dir, client)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("opening local state: %w", err)
	}

	sess := session.NewManager(st, client)
	poller := telemetry.NewPoller(client)
	rt := router.New(sess, st, poller)
	return sess, rt, st, nil
}

// localFetcher feeds the telemetry poller from the local machine when no
// gateway is involved.
type localFetcher struct{}

func (localFetcher) FetchSystemInfo(ctx context.Context) (*telemetry.SystemInfo, error) {
	return server.CollectSystemInfo(), nil
}

var wizardCmd = &cobra.Command{
	Use:   "wizard",
	Short: "Launch the interactive setup wizard",
	Long: `Launch the full-screen interactive setup wizard.

The wizard walks through device selection, Modbus protocol setup and
uplink (network/MQTT) configuration, and shows live gateway telemetry.
Progress is saved locally after every step and mirrored to the gateway
whenever it is reachable.`,
	RunE: runWizard,
}

func runWizard(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, rt, st, err := buildEnv(ctx)
	if err != nil {
		return err
	}
	return tui.Run(ctx, rt, sess, st)
}

var discoverCmd = &cobra.Command{
	Use:   "discover",
	Short: "Scan for ZedBee gateways on the network",
	Long: `Scan for ZedBee gateways using mDNS/DNS-SD discovery.

This command listens for mDNS broadcasts from ZedBee gateways and displays
all discovered gateways with their addresses and metadata.`,
	Example: `  # Scan for 10 seconds (default)
  zedbee-setup discover

  # Quick 3-second scan
  zedbee-setup discover --timeout 3`,
	RunE: runDiscover,
}

func init() {
	discoverCmd.Flags().IntVar(&scanTimeout, "timeout", 10, "Scan timeout in seconds")
}

func runDiscover(cmd *cobra.Command, args []string) error {
	fmt.Printf("Scanning for ZedBee gateways (timeout: %ds)...\n\n", scanTimeout)

	ctx, cancel := context.WithTimeout(cmd.Context(), time.Duration(scanTimeout)*time.Second)
	defer cancel()

	scanner := discovery.NewScanner()
	scanner.Timeout = time.Duration(scanTimeout) * time.Second
	gateways, err := scanner.Scan(ctx)
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}

	if len(gateways) == 0 {
		fmt.Println("No gateways found.")
		fmt.Println("\nTroubleshooting:")
		fmt.Println("  - Ensure the gateway is powered on and connected to the network")
		fmt.Println("  - Verify your computer is on the same network segment")
		fmt.Println("  - Try increasing --timeout for slower networks")
		fmt.Println("  - Use --gateway to specify the address manually if discovery fails")
		return nil
	}

	fmt.Printf("Found %d gateway(s):\n\n", len(gateways))
	for i, gw := range gateways {
		fmt.Printf("%d. %s\n", i+1, gw.Name)
		fmt.Printf("   Address: %s:%d\n", gw.IP, gw.Port)
		if len(gw.Metadata) > 0 {
			fmt.Printf("   Metadata: %v\n", gw.Metadata)
		}
		fmt.Println()
	}

	fmt.Println("Use 'zedbee-setup --gateway <url>' to configure a specific gateway")
	return nil
}

var loginCmd = &cobra.Command{
	Use:   "login",
	Short: "Sign in to a gateway",
	Long: `Sign in to the gateway's setup backend and store the session locally.

The username is read from the terminal and the password is read without
echo. On success the session token is saved so subsequent commands and
the wizard skip the login screen.`,
	RunE: runLogin,
}

func runLogin(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	sess, _, _, err := buildEnv(ctx)
	if err != nil {
		return err
	}

	reader := bufio.NewReader(os.Stdin)
	fmt.Print("Username: ")
	username, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("reading username: %w", err)
	}

	fmt.Print("Password: ")
	password, err := term.ReadPassword(int(os.Stdin.Fd()))
	fmt.Println()
	if err != nil {
		return fmt.Errorf("reading password: %w", err)
	}

	if err := sess.Login(ctx, strings.TrimSpace(username), string(password)); err != nil {
		return err
	}
	fmt.Printf("Signed in as %s\n", sess.Username())
	return nil
}

var logoutCmd = &cobra.Command{
	Use:   "logout",
	Short: "Sign out and clear local state",
	Long: `Clear the stored session token and reset the local wizard document
to defaults. The configuration saved on the gateway is untouched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		dir, err := resolveStateDir()
		if err != nil {
			return err
		}
		// Logout is purely local, no gateway connection needed.
		st, err := store.Open(dir, nil)
		if err != nil {
			return fmt.Errorf("opening local state: %w", err)
		}
		sess := session.NewManager(st, nil)
		if err := sess.Logout(); err != nil {
			return err
		}
		fmt.Println("Signed out.")
		return nil
	},
}

var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Stream live gateway telemetry",
	Long: `Stream system telemetry from the gateway and print one line per
update. The websocket stream is preferred; when the dial fails the
command falls back to HTTP polling every 3 seconds. Press Ctrl+C to
stop.`,
	RunE: runMonitor,
}

func runMonitor(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	baseURL, err := resolveGateway(ctx)
	if err != nil {
		return err
	}

	watcher := &telemetry.Watcher{
		URL: "ws" + strings.TrimPrefix(baseURL, "http") + "/ws/system-info",
	}
	updates, err := watcher.Watch(ctx)
	if err != nil {
		fmt.Printf("Websocket unavailable (%v), falling back to polling\n", err)
		poller := telemetry.NewPoller(api.NewClient(baseURL))
		updates = poller.Start(ctx)
		defer poller.Stop()
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case u, ok := <-updates:
			if !ok {
				return nil
			}
			if u.Err != nil {
				fmt.Printf("%s  error: %v\n", time.Now().Format("15:04:05"), u.Err)
				continue
			}
			info := u.Info
			fmt.Printf("%s  cpu %5.1f%%  ram %5.1f%%  disk %5.1f%%  up %s  tx %s  rx %s\n",
				time.Now().Format("15:04:05"), info.CPUPercent, info.RAMPercent,
				info.DiskPercent, telemetry.FormatUptime(info.UptimeMinutes),
				telemetry.FormatBytes(info.NetSent), telemetry.FormatBytes(info.NetRecv))
		}
	}
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show setup progress and the current configuration",
	Long: `Print the setup completion status and a summary of each configured
section without launching the wizard.`,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
	dir, err := resolveStateDir()
	if err != nil {
		return err
	}
	// Status reads the local document only; the gateway mirror is
	// refreshed by the wizard and login.
	st, err := store.Open(dir, nil)
	if err != nil {
		return fmt.Errorf("opening local state: %w", err)
	}

	cfg := st.Config()
	completion := summary.Status(cfg)
	fmt.Printf("Setup progress: %s (%s)\n\n", completion.String(), completion.Label)

	fmt.Println("Device")
	fmt.Println(summary.Device(cfg))
	fmt.Println("Protocol")
	fmt.Println(summary.Protocol(cfg))
	fmt.Println("Connections")
	fmt.Println(summary.Connections(cfg))
	return nil
}
