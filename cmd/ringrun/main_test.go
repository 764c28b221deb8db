package main

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/ringrun/internal/config"
	"github.com/vovakirdan/ringrun/internal/games/needle"
)

func TestBadConfigFailsFast(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("hit_zones:\n  core: 2.0\n  inner: 0.7\n"), 0o600); err != nil {
		t.Fatalf("WriteFile() failed: %v", err)
	}
	t.Cleanup(func() {
		flagConfig = ""
		needle.SetConfigPath("")
		rootCmd.SetArgs(nil)
	})

	rootCmd.SetOut(io.Discard)
	rootCmd.SetErr(io.Discard)
	rootCmd.SetArgs([]string{"list", "--config", path})
	if err := rootCmd.Execute(); !errors.Is(err, config.ErrInvalid) {
		t.Errorf("Execute() error = %v, expected ErrInvalid", err)
	}
}

func TestLogFileIsClosed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "ringrun.log")
	flagLogFile = path
	flagLogLevel = "info"
	t.Cleanup(func() {
		flagLogFile = ""
		closeLogFile()
	})

	l, err := newLogger(io.Discard)
	if err != nil {
		t.Fatalf("newLogger() failed: %v", err)
	}
	l.Info("run recorded")

	if err := closeLogFile(); err != nil {
		t.Errorf("closeLogFile() = %v, expected nil", err)
	}
	if logFile != nil {
		t.Error("closeLogFile() left the handle set")
	}
	if err := closeLogFile(); err != nil {
		t.Errorf("second closeLogFile() = %v, expected nil", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() failed: %v", err)
	}
	if !strings.Contains(string(data), "run recorded") {
		t.Errorf("log file = %q, expected the logged message", data)
	}
}
