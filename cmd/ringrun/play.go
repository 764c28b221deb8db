package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/ringrun/internal/core"
	"github.com/vovakirdan/ringrun/internal/platform/tui"
	"github.com/vovakirdan/ringrun/internal/registry"
	"github.com/vovakirdan/ringrun/internal/storage"
)

const defaultMode = "classic"

var playCmd = &cobra.Command{
	Use:   "play [mode]",
	Short: "Play a mode",
	Long: `Start playing the specified mode. Without an argument the last
mode played is started, or classic on first launch.

Controls:
  Space/Up   - Hold to slow the next ring's rotation
  P          - Pause
  R          - Restart (after game over)
  B/Esc      - Back (when paused or after game over)
  Ctrl+S     - Save a text screenshot
  Q/Ctrl+C   - Quit

Difficulty options:
  easy   - Wider zones, gentle misses, progression from zero
  normal - Start at 30% difficulty, progresses to max
  hard   - Narrow zones, Outer breaks the streak, starts at 70%
  fixed  - No progression, stays at the config's initial level

Examples:
  ringrun play
  ringrun play relaxed
  ringrun play hardcore --seed 42
  ringrun play --config ./my-ringrun.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

// runtimeConfig builds the runtime config from the terminal size and flags.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStoreOptional opens the database, or returns nil with a warning so
// play can continue without persistence.
func openStoreOptional() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open runs database, runs will not be saved", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// resolveMode returns the mode to play: the argument, the last mode played,
// or the default.
func resolveMode(args []string, store *storage.Store) string {
	if len(args) > 0 {
		return args[0]
	}
	if store != nil {
		if last, ok, err := store.Load(storage.KeyLastMode); err == nil && ok && registry.Exists(last) {
			return last
		}
	}
	return defaultMode
}

func runPlay(_ *cobra.Command, args []string) error {
	store := openStoreOptional()
	if store != nil {
		defer store.Close()
	}

	modeID := resolveMode(args, store)
	if !registry.Exists(modeID) {
		return fmt.Errorf("unknown mode %q (run 'ringrun list' to see available modes)", modeID)
	}

	game, err := registry.Create(modeID)
	if err != nil {
		return fmt.Errorf("cannot create mode: %w", err)
	}

	if _, err := tui.Run(game, store, runtimeConfig(), tuiLogger()); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}
