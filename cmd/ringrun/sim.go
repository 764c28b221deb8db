package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/ringrun/internal/games/needle"
	"github.com/vovakirdan/ringrun/internal/games/needle/sim"
	"github.com/vovakirdan/ringrun/internal/script"
	"github.com/vovakirdan/ringrun/internal/storage"
)

var (
	flagSimScript string
	flagSimTicks  int
	flagSimRecord bool
)

var simCmd = &cobra.Command{
	Use:   "sim [mode]",
	Short: "Run a headless simulation",
	Long: `Run a mode without a terminal at a fixed tick rate and print the
final statistics as YAML.

A Lua script may drive the hold input by defining decide(state), which is
called before every tick and returns true to hold. The state table has:
tick, speed, score, streak, multiplier, holding, has_next, next_gap,
next_offset, next_dx and next_dy.

Examples:
  ringrun sim --seed 42
  ringrun sim hardcore --seed 7 --ticks 3600
  ringrun sim --script scripts/pilot.lua --record
  ringrun sim --log-level debug   # log every simulation event`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSim,
}

func init() {
	simCmd.Flags().StringVar(&flagSimScript, "script", "", "Lua pilot script defining decide(state)")
	simCmd.Flags().IntVar(&flagSimTicks, "ticks", 36000, "Maximum ticks to simulate (0 = until the run ends)")
	simCmd.Flags().BoolVar(&flagSimRecord, "record", false, "Save the finished run to the database")
}

func runSim(cmd *cobra.Command, args []string) error {
	modeID := defaultMode
	if len(args) == 1 {
		modeID = args[0]
	}

	cfg, err := needle.ModeConfig(modeID)
	if err != nil {
		return err
	}

	run, err := sim.NewRun(&cfg)
	if err != nil {
		return err
	}

	run.Subscribe(func(e sim.Event) {
		logger.Debug("event", "tick", e.Tick, "kind", e.Kind, "value", e.Value, "speed", e.Speed)
	})

	if flagSimRecord {
		store, err := storage.Open(flagDBPath)
		if err != nil {
			return fmt.Errorf("cannot open runs database: %w", err)
		}
		defer store.Close()

		high, best, err := store.Records(modeID)
		if err != nil {
			return err
		}
		run.SetRecords(high, best)
		storage.NewRecorder(store, modeID, logger).Attach(run)
	}

	var pilot script.Pilot = script.IdlePilot{}
	if flagSimScript != "" {
		lp, err := script.LoadLuaPilot(flagSimScript)
		if err != nil {
			return err
		}
		defer lp.Close()
		pilot = lp
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	fps := flagFPS
	if fps <= 0 {
		fps = 60
	}

	run.StartRun(seed)
	started := time.Now()
	snap, err := script.Drive(run, pilot, 1/float64(fps), flagSimTicks)
	if err != nil {
		return err
	}
	logger.Info("simulation finished",
		"mode", modeID,
		"phase", run.Phase(),
		"ticks", snap.Ticks,
		"wall", time.Since(started).Round(time.Millisecond))

	out, err := yaml.Marshal(struct {
		Mode     string       `yaml:"mode"`
		Finished bool         `yaml:"finished"`
		Snapshot sim.Snapshot `yaml:"snapshot"`
	}{modeID, run.Phase() == sim.PhaseEnded, snap})
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(out)
	return err
}
