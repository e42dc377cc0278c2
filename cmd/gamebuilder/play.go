package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-gamebuilder/internal/platform/tui"
	"github.com/vovakirdan/tui-gamebuilder/internal/platform/web"
	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
)

var (
	flagSpectate     bool
	flagSpectateAddr string
)

var playCmd = &cobra.Command{
	Use:   "play <template>",
	Short: "Edit and play a template",
	Long: `Open the specified template in the editor.

Editor:
  Enter/P        - Play
  Tab/Shift+Tab  - Select object
  Arrows/hjkl    - Move selected object
  [ ]            - Choose palette entry
  A / C / X      - Add, duplicate, remove object
  R              - Reset template
  Esc/B          - Back
  Q/Ctrl+C       - Quit

Play:
  Arrows/WASD    - Move
  Space          - Jump/Flap/Shoot
  Enter/P/Esc    - Stop and return to the editor

Spectating:
  --spectate streams every frame as JSON over a websocket at /ws.

Examples:
  gamebuilder play platformer
  gamebuilder play breakout --seed 42
  gamebuilder play racing --spectate --spectate-addr :9000`,
	Args: cobra.ExactArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().BoolVar(&flagSpectate, "spectate", false, "Serve the frame feed over a websocket")
	playCmd.Flags().StringVar(&flagSpectateAddr, "spectate-addr", "", "Spectator address (default from settings)")
}

func runPlay(cmd *cobra.Command, args []string) error {
	templateID := args[0]

	// Check if template exists
	if !registry.Exists(templateID) {
		return fmt.Errorf("unknown template %q (run 'gamebuilder list' to see available templates)", templateID)
	}
	return runApp(cmd, templateID)
}

// runApp runs the TUI, starting at templateID or at the picker when it is
// empty. The spectator feed runs alongside it when enabled.
func runApp(cmd *cobra.Command, templateID string) error {
	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if flagSpectate {
		settings.Spectator.Enabled = true
	}
	if flagSpectateAddr != "" {
		settings.Spectator.Addr = flagSpectateAddr
	}

	logger, closeLog, err := newLogger(settings)
	if err != nil {
		return err
	}
	defer closeLog()

	store := openStore(settings)
	if store != nil {
		defer store.Close()
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := gameOptions(settings, store, logger)
	opts.Context = ctx

	if !settings.Spectator.Enabled {
		return tui.Run(opts, templateID, width, height)
	}

	hub := web.NewHub(templateID, logger)
	opts.Observer = hub.Publish
	fmt.Fprintf(os.Stderr, "Spectator feed on ws://%s/ws\n", settings.Spectator.Addr)

	g, gctx := errgroup.WithContext(ctx)
	opts.Context = gctx

	g.Go(func() error {
		return web.Serve(gctx, settings.Spectator.Addr, hub)
	})
	g.Go(func() error {
		defer stop()
		return tui.Run(opts, templateID, width, height)
	})
	return g.Wait()
}
