// ringrun is a terminal game: thread a needle through rotating rings.
//
// Usage:
//
//	ringrun list                  - List available modes
//	ringrun play [mode]           - Play a mode (default: last played)
//	ringrun menu                  - Pick modes interactively
//	ringrun scores <mode>         - Show top runs for a mode
//	ringrun stats [mode]          - Show lifetime statistics
//	ringrun sim [mode]            - Run a headless simulation
//	ringrun serve                 - Start SSH server for remote play
//	ringrun config dump|check     - Inspect configuration
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible runs
//	--db <path>           - Set database path (default: ~/.ringrun/ringrun.db)
//	--config <path>       - Use a custom YAML or TOML config
//	--difficulty <preset> - Override the mode preset: easy, normal, hard, fixed
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/games/needle"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogLevel   string
	flagLogFile    string

	logger  *log.Logger
	logFile *os.File
)

func main() {
	err := rootCmd.Execute()
	// PersistentPostRunE is skipped when a command fails.
	//nolint:errcheck // Exiting anyway
	closeLogFile()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "ringrun",
	Short: "Ringrun - thread the needle through rotating rings",
	Long: `Ringrun is a terminal game. A needle flies forward through rotating
rings; pass close to a ring's centre to build a streak, raise the score
multiplier and gain speed. Misses slow you down, and the run ends when the
speed reaches zero.

Available commands:
  list     - Show all modes
  play     - Play a mode directly
  menu     - Interactive mode picker
  scores   - View top runs
  stats    - View lifetime statistics
  sim      - Headless simulation, optionally driven by a Lua pilot
  serve    - Start SSH server for remote play
  config   - Dump or check configuration

Examples:
  ringrun play
  ringrun play hardcore
  ringrun play --difficulty easy --config ./ringrun.toml
  ringrun sim --seed 42 --script scripts/pilot.lua
  ringrun serve --ssh :2222`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		if _, err := config.ParsePreset(flagDifficulty); err != nil {
			return err
		}
		needle.SetConfigPath(flagConfig)
		needle.SetDifficultyPreset(flagDifficulty)
		if err := needle.CheckConfig(); err != nil {
			return err
		}

		l, err := newLogger(cmd.ErrOrStderr())
		if err != nil {
			return err
		}
		logger = l
		return nil
	},
	PersistentPostRunE: func(_ *cobra.Command, _ []string) error {
		return closeLogFile()
	},
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.ringrun/ringrun.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config (YAML or TOML)")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to a file instead of stderr")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(simCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(configCmd)
}

// newLogger builds the process logger from the log flags.
func newLogger(stderr io.Writer) (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level %q: %w", flagLogLevel, err)
	}

	w := stderr
	if flagLogFile != "" {
		if err := os.MkdirAll(filepath.Dir(flagLogFile), 0o755); err != nil {
			return nil, fmt.Errorf("cannot create log directory: %w", err)
		}
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, fmt.Errorf("cannot open log file: %w", err)
		}
		logFile = f
		w = f
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "ringrun",
	}), nil
}

// closeLogFile closes the --log-file handle, if one is open.
func closeLogFile() error {
	if logFile == nil {
		return nil
	}
	err := logFile.Close()
	logFile = nil
	if err != nil {
		return fmt.Errorf("cannot close log file: %w", err)
	}
	return nil
}

// tuiLogger is the logger used while the terminal UI owns the screen.
// Without --log-file, logs would corrupt the display and are dropped.
func tuiLogger() *log.Logger {
	if flagLogFile != "" {
		return logger
	}
	return log.New(io.Discard)
}
