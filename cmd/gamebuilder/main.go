// gamebuilder is a terminal game builder: pick an arcade archetype, edit its
// entities and play the result in the terminal.
//
// Usage:
//
//	gamebuilder list                - List available templates
//	gamebuilder play <template>     - Edit and play a template
//	gamebuilder menu                - Start with the template picker
//	gamebuilder serve               - Start SSH server for remote play
//	gamebuilder scores <template>   - Show best runs for a template
//
// Global flags:
//
//	--fps <rate>       - Set tick rate (default: 60)
//	--seed <value>     - Set RNG seed for reproducible runs
//	--db <path>        - Set database path (default: ~/.gamebuilder/scores.db)
//	--config <path>    - Use a specific settings file
//	--log-file <path>  - Write logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gamebuilder/internal/config"
	"github.com/vovakirdan/tui-gamebuilder/internal/platform/tui"
	"github.com/vovakirdan/tui-gamebuilder/internal/storage"

	// Import the catalog to register the templates
	_ "github.com/vovakirdan/tui-gamebuilder/internal/catalog"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogFile string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "gamebuilder",
	Short: "TUI Game Builder - Build and play arcade games in your terminal",
	Long: `TUI Game Builder lets you pick an arcade archetype, rearrange its
objects and play the result directly in your terminal.

Available commands:
  list     - Show all available templates
  play     - Edit and play a specific template
  menu     - Interactive template picker
  serve    - Start SSH server for remote play
  scores   - View best runs

Examples:
  gamebuilder list
  gamebuilder play platformer
  gamebuilder menu
  gamebuilder serve --ssh :2222
  gamebuilder scores breakout`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.gamebuilder/scores.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to settings YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
}

// loadSettings reads the settings file and applies the flags the user set.
func loadSettings(cmd *cobra.Command) (config.Settings, error) {
	settings, _, err := config.LoadSettings(flagConfig)
	if err != nil {
		return settings, err
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		settings.Simulation.TickRate = flagFPS
	}
	if flags.Changed("seed") {
		settings.Simulation.Seed = flagSeed
	}
	if flags.Changed("db") {
		settings.Storage.Path = flagDBPath
	}
	if flags.Changed("log-file") {
		settings.Log.File = flagLogFile
	}
	settings.Validate()
	return settings, nil
}

// newLogger builds the logger for a TUI run. Output goes to the log file
// only, since the terminal belongs to the UI. The returned func closes it.
func newLogger(settings config.Settings) (*log.Logger, func(), error) {
	var w io.Writer = io.Discard
	closer := func() {}
	if settings.Log.File != "" {
		f, err := os.OpenFile(settings.Log.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("cannot open log file: %w", err)
		}
		w = f
		closer = func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "gamebuilder",
	})
	if lvl, err := log.ParseLevel(settings.Log.Level); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, closer, nil
}

// openStore opens the runs database. A failure is reported and the
// builder keeps working without persistence.
func openStore(settings config.Settings) *storage.Store {
	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open runs database: %v\n", err)
		return nil
	}
	return store
}

// gameOptions maps settings onto the options of the game screens.
func gameOptions(settings config.Settings, store *storage.Store, logger *log.Logger) tui.Options {
	return tui.Options{
		Store:        store,
		Logger:       logger,
		TickRate:     settings.Simulation.TickRate,
		SamplePeriod: settings.HUD.SamplePeriod,
		HoldWindow:   settings.Input.HoldWindow,
		Seed:         settings.Simulation.Seed,
		Player:       os.Getenv("USER"),
	}
}
