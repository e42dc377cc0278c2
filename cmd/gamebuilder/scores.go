package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-gamebuilder/internal/registry"
	"github.com/vovakirdan/tui-gamebuilder/internal/storage"
)

var flagClear bool

var scoresCmd = &cobra.Command{
	Use:   "scores <template>",
	Short: "Show best runs for a template",
	Long: `Display the top 10 runs for the specified template.

Examples:
  gamebuilder scores platformer
  gamebuilder scores breakout --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().BoolVar(&flagClear, "clear", false, "Delete all runs of the template")
}

func runScores(cmd *cobra.Command, args []string) error {
	templateID := args[0]

	// Check if template exists
	if !registry.Exists(templateID) {
		return fmt.Errorf("unknown template %q (run 'gamebuilder list' to see available templates)", templateID)
	}
	game, err := registry.Create(templateID)
	if err != nil {
		return fmt.Errorf("error creating template: %w", err)
	}

	settings, err := loadSettings(cmd)
	if err != nil {
		return err
	}

	store, err := storage.Open(settings.Storage.Path)
	if err != nil {
		return fmt.Errorf("error opening runs database: %w", err)
	}
	defer store.Close()

	if flagClear {
		if err := store.ClearRuns(templateID); err != nil {
			return fmt.Errorf("error clearing runs: %w", err)
		}
		fmt.Printf("Cleared runs for %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopRuns(templateID, 10)
	if err != nil {
		return fmt.Errorf("error retrieving runs: %w", err)
	}

	fmt.Printf("Best Runs - %s\n", game.Title())
	fmt.Println()

	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		fmt.Println()
		fmt.Printf("Play 'gamebuilder play %s' to set the first score!\n", templateID)
		return nil
	}

	// Print header
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-12s  %s\n", "Rank", "Score", "Lives", "Frames", "Player", "Date")
	fmt.Printf("  %-4s  %-8s  %-5s  %-8s  %-12s  %s\n", "----", "-----", "-----", "------", "------", "----")

	for i, r := range runs {
		player := r.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-8d  %-5d  %-8d  %-12s  %s\n",
			i+1, r.Score, r.Lives, r.Frames, player, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	fmt.Println()
	stats, err := store.Stats(templateID)
	if err != nil {
		return fmt.Errorf("error retrieving stats: %w", err)
	}
	fmt.Printf("Best: %d  Runs: %d  Average: %.1f\n", stats.BestScore, stats.Runs, stats.AvgScore)
	return nil
}
