package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/games/needle"
)

var (
	flagDumpFormat string
	flagDumpMode   string
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect ringrun configuration",
	Long: `Print the effective configuration or validate a config file.

Config files are searched in this order:
  --config <path>
  ~/.ringrun/config.yaml, ~/.ringrun/config.toml
  ./configs/ringrun.yaml, ./configs/ringrun.toml
  built-in defaults`,
}

var configDumpCmd = &cobra.Command{
	Use:   "dump",
	Short: "Print the effective configuration of a mode",
	Long: `Print the configuration a mode runs with, after the difficulty preset
is applied. The output is a valid config file.

Examples:
  ringrun config dump
  ringrun config dump --mode hardcore --format toml > ringrun.toml`,
	Args: cobra.NoArgs,
	RunE: runConfigDump,
}

var configCheckCmd = &cobra.Command{
	Use:   "check <path>",
	Short: "Validate a config file",
	Args:  cobra.ExactArgs(1),
	RunE:  runConfigCheck,
}

func init() {
	configDumpCmd.Flags().StringVar(&flagDumpFormat, "format", config.FormatYAML, "Output format: yaml or toml")
	configDumpCmd.Flags().StringVar(&flagDumpMode, "mode", defaultMode, "Mode whose preset is applied")

	configCmd.AddCommand(configDumpCmd)
	configCmd.AddCommand(configCheckCmd)
}

func runConfigDump(cmd *cobra.Command, _ []string) error {
	cfg, err := needle.ModeConfig(flagDumpMode)
	if err != nil {
		return err
	}
	data, err := config.Encode(cfg, flagDumpFormat)
	if err != nil {
		return err
	}
	_, err = cmd.OutOrStdout().Write(data)
	return err
}

func runConfigCheck(cmd *cobra.Command, args []string) error {
	if _, err := config.LoadFile(args[0]); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s: ok\n", args[0])
	return nil
}
