package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringrun/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start ringrun with a mode picker menu",
	Long: `Start ringrun in interactive menu mode. This is the same session
SSH players get.

Use arrow keys or j/k to navigate, Enter to select a mode and Tab to see
the scoreboard. After a run, or while paused, press B to return to the menu.

Examples:
  ringrun menu
  ringrun menu --fps 30
  ringrun menu --db ./ringrun.db`,
	RunE: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) error {
	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}
	return tui.RunSession(store, runtimeConfig(), tuiLogger())
}
