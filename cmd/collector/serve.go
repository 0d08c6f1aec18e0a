package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-collector/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the collector SSH server",
	Long: `Start an SSH server that allows users to connect and play levels.

Each SSH connection gets its own session with the level picker.
Runs are stored per-server and tagged with the SSH user name.

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise, auto-generates a key at ~/.collector/host_key

Examples:
  collector serve                           # Listen on the configured address
  collector serve --ssh :2222               # Listen on port 2222
  collector serve --host-key ./my_host_key  # Use specific host key

Users can connect with:
  ssh localhost -p 23235`,
	Run: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (default from config)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout in minutes (default from config)")
}

func runServe(_ *cobra.Command, _ []string) {
	a, err := loadApp(os.Stderr)
	exitOnError(err)

	cfg := tui.DefaultSSHServerConfig()
	cfg.Address = a.cfg.SSH.Address
	cfg.HostKeyPath = a.cfg.SSH.HostKeyPath
	cfg.IdleTimeout = time.Duration(a.cfg.SSH.IdleTimeoutMinutes) * time.Minute
	cfg.Runtime = a.runtime(80, 24)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	if flagIdleTimeout > 0 {
		cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute
	}

	store := a.openStore()
	if store != nil {
		defer store.Close()
	}

	svc, err := a.services(store)
	exitOnError(err)

	server, err := tui.NewSSHServer(cfg, svc)
	exitOnError(err)

	fmt.Printf("Starting collector SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
