package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringrun/internal/registry"
	"github.com/vovakirdan/ringrun/internal/storage"
)

var statsCmd = &cobra.Command{
	Use:   "stats [mode]",
	Short: "Show lifetime statistics",
	Long: `Display lifetime statistics for one mode, or for every mode played.

Examples:
  ringrun stats
  ringrun stats classic`,
	Args: cobra.MaximumNArgs(1),
	RunE: runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open runs database: %w", err)
	}
	defer store.Close()

	out := cmd.OutOrStdout()

	if first, ok, err := store.Load(storage.KeyFirstPlayDate); err == nil && ok {
		fmt.Fprintf(out, "Playing since %s\n\n", first)
	}

	if len(args) == 1 {
		if !registry.Exists(args[0]) {
			return fmt.Errorf("unknown mode %q (run 'ringrun list' to see available modes)", args[0])
		}
		stats, err := store.GetModeStats(args[0])
		if err != nil {
			return err
		}
		printModeStats(out, stats)
		return nil
	}

	all, err := store.GetAllModeStats()
	if err != nil {
		return err
	}
	if len(all) == 0 {
		fmt.Fprintln(out, "No runs recorded yet.")
		return nil
	}

	modes := make([]string, 0, len(all))
	for mode := range all {
		modes = append(modes, mode)
	}
	sort.Strings(modes)
	for i, mode := range modes {
		if i > 0 {
			fmt.Fprintln(out)
		}
		printModeStats(out, all[mode])
	}
	return nil
}

func printModeStats(out io.Writer, s *storage.ModeStats) {
	fmt.Fprintf(out, "%s\n", s.Mode)
	if s.GamesCount == 0 {
		fmt.Fprintln(out, "  no runs yet")
		return
	}
	fmt.Fprintf(out, "  runs            %d\n", s.GamesCount)
	fmt.Fprintf(out, "  high score      %d\n", s.HighScore)
	fmt.Fprintf(out, "  average score   %.0f\n", s.AvgScore)
	fmt.Fprintf(out, "  total score     %d\n", s.TotalScore)
	fmt.Fprintf(out, "  longest streak  %d\n", s.LongestStreak)
	fmt.Fprintf(out, "  peak multiplier ×%d\n", s.PeakMultiplier)
	fmt.Fprintf(out, "  rings           %d (core %d, inner %d, middle %d, outer %d, miss %d)\n",
		s.TotalRings, s.Hits.Core, s.Hits.Inner, s.Hits.Middle, s.Hits.Outer, s.Hits.Miss)
	fmt.Fprintf(out, "  accuracy        %.1f%% (core %.1f%%)\n", s.Accuracy(), s.CoreAccuracy())
	fmt.Fprintf(out, "  distance        %.0f\n", s.Distance)
	fmt.Fprintf(out, "  play time       %.0fs\n", s.PlayTime)
	if !s.LastPlayed.IsZero() {
		fmt.Fprintf(out, "  last played     %s\n", s.LastPlayed.Format("2006-01-02 15:04"))
	}
}
