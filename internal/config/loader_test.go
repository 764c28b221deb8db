package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	cfg, err := Decode(DefaultYAML(), FormatYAML)
	if err != nil {
		t.Fatalf("Decode(embedded) error = %v", err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("embedded defaults = %+v, expected %+v", cfg, DefaultConfig())
	}
}

func TestLoadFilePartialYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringrun.yaml")
	data := []byte("speed:\n  start: 12\nscore:\n  outer_breaks_streak: true\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	if cfg.Speed.Start != 12 {
		t.Errorf("Speed.Start = %v, expected 12", cfg.Speed.Start)
	}
	if !cfg.Score.OuterBreaksStreak {
		t.Error("Score.OuterBreaksStreak = false, expected true")
	}
	if cfg.HitZones != DefaultConfig().HitZones {
		t.Errorf("HitZones = %+v, expected defaults", cfg.HitZones)
	}
}

func TestLoadFileTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ringrun.toml")
	data := []byte(`
[hit_zones]
core = 0.2
inner = 0.5
middle = 1.0
outer = 1.5

[speed.deltas]
miss = -5.0
`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() error = %v", err)
	}
	expected := HitZoneConfig{Core: 0.2, Inner: 0.5, Middle: 1.0, Outer: 1.5}
	if cfg.HitZones != expected {
		t.Errorf("HitZones = %+v, expected %+v", cfg.HitZones, expected)
	}
	if cfg.Speed.Deltas.Miss != -5 {
		t.Errorf("Speed.Deltas.Miss = %v, expected -5", cfg.Speed.Deltas.Miss)
	}
	if cfg.Speed.Deltas.Core != 2 {
		t.Errorf("Speed.Deltas.Core = %v, expected default 2", cfg.Speed.Deltas.Core)
	}
}

func TestLoadFileRejectsMisorderedRadii(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("hit_zones:\n  core: 0.8\n  inner: 0.7\n")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatal(err)
	}

	_, err := LoadFile(path)
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("LoadFile() error = %v, expected ErrInvalid", err)
	}
}

func TestLoadFileMissing(t *testing.T) {
	if _, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml")); err == nil {
		t.Error("LoadFile() on a missing file should fail")
	}
}

func TestEncodeRoundTrip(t *testing.T) {
	for _, format := range []string{FormatYAML, FormatTOML} {
		t.Run(format, func(t *testing.T) {
			out, err := Encode(DefaultConfig(), format)
			if err != nil {
				t.Fatalf("Encode() error = %v", err)
			}
			cfg, err := Decode(out, format)
			if err != nil {
				t.Fatalf("Decode() error = %v", err)
			}
			if cfg != DefaultConfig() {
				t.Errorf("Decode(Encode()) = %+v, expected defaults", cfg)
			}
		})
	}
}

func TestFormatForPath(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"a.toml", FormatTOML},
		{"A.TOML", FormatTOML},
		{"a.yaml", FormatYAML},
		{"a.yml", FormatYAML},
		{"noext", FormatYAML},
	}
	for _, tc := range tests {
		if got := FormatForPath(tc.path); got != tc.expected {
			t.Errorf("FormatForPath(%q) = %q, expected %q", tc.path, got, tc.expected)
		}
	}
}
