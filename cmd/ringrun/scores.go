package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringrun/internal/registry"
	"github.com/vovakirdan/ringrun/internal/storage"
)

var (
	flagScoresLimit int
	flagScoresClear bool
)

var scoresCmd = &cobra.Command{
	Use:   "scores <mode>",
	Short: "Show top runs for a mode",
	Long: `Display the top runs for the specified mode.

Examples:
  ringrun scores classic
  ringrun scores hardcore --limit 25
  ringrun scores relaxed --clear`,
	Args: cobra.ExactArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().IntVar(&flagScoresLimit, "limit", 10, "Number of runs to show")
	scoresCmd.Flags().BoolVar(&flagScoresClear, "clear", false, "Delete all runs of the mode")
}

func runScores(cmd *cobra.Command, args []string) error {
	modeID := args[0]
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (run 'ringrun list' to see available modes)", modeID)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("cannot create mode: %w", err)
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if flagScoresClear {
		if err := store.ClearRuns(modeID); err != nil {
			return err
		}
		fmt.Fprintf(out, "Cleared all runs of %s.\n", game.Title())
		return nil
	}

	runs, err := store.TopRuns(modeID, flagScoresLimit)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "High Scores - %s\n", game.Title())
	fmt.Fprintln(out)

	if len(runs) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Play 'ringrun play %s' to set the first high score!\n", modeID)
		return nil
	}

	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-4s  %-6s  %s\n", "Rank", "Score", "Streak", "Mult", "Acc", "Date")
	fmt.Fprintf(out, "  %-4s  %-8s  %-6s  %-4s  %-6s  %s\n", "----", "-----", "------", "----", "---", "----")
	for i, r := range runs {
		fmt.Fprintf(out, "  %-4d  %-8d  %-6d  ×%-3d  %5.1f%%  %s\n",
			i+1, r.Score, r.BestStreak, r.PeakMultiplier, r.Accuracy,
			r.CreatedAt.Format("2006-01-02 15:04"))
	}

	high, best, err := store.Records(modeID)
	if err == nil {
		fmt.Fprintln(out)
		fmt.Fprintf(out, "Best: %d  Longest streak: %d\n", high, best)
	}
	return nil
}
