package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the builder with a template picker",
	Long: `Start the builder in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to open a template in the editor.
Leaving the editor returns to the picker. Tab shows the best runs.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Open template
  Tab          - Best runs
  Q            - Quit

Examples:
  gamebuilder menu
  gamebuilder menu --fps 30
  gamebuilder menu --db ./scores.db`,
	RunE: runMenu,
}

func init() {
	// Uses global flags from main.go (--fps, --seed, --db, --config, --log-file)
	menuCmd.Flags().BoolVar(&flagSpectate, "spectate", false, "Serve the frame feed over a websocket")
	menuCmd.Flags().StringVar(&flagSpectateAddr, "spectate-addr", "", "Spectator address (default from settings)")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	return runApp(cmd, "")
}
