package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gamebuilder/internal/platform/tui"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout int
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the game builder SSH server",
	Long: `Start an SSH server that allows users to connect and build games.

Each SSH connection gets its own session with a template picker.
Runs are stored per-server (all users share the same best runs table).

Host key handling:
  - If --host-key is provided, uses that key file
  - Otherwise uses server.host_key_path from the settings

Examples:
  gamebuilder serve                           # Listen on the settings address
  gamebuilder serve --ssh :2222               # Listen on port 2222
  gamebuilder serve --host-key ./my_host_key  # Use specific host key
  gamebuilder serve --db ./scores.db          # Use specific database

Users can connect with:
  ssh localhost -p 2222`,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port, default from settings)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if missing)")
	serveCmd.Flags().IntVar(&flagIdleTimeout, "idle-timeout", 30, "Idle timeout in minutes before disconnecting")
}

func runServe(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	cfg := tui.SSHServerConfigFrom(settings)
	if flagSSHAddr != "" {
		cfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		cfg.HostKeyPath = flagHostKey
	}
	cfg.IdleTimeout = time.Duration(flagIdleTimeout) * time.Minute

	server, err := tui.NewSSHServer(cfg)
	if err != nil {
		return fmt.Errorf("error creating server: %w", err)
	}

	fmt.Printf("Starting game builder SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := server.ListenAndServe(ctx); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}
