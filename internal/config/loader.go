package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Supported file formats.
const (
	FormatYAML = "yaml"
	FormatTOML = "toml"
)

// Load loads the ringrun configuration.
// Search order: customPath -> ~/.ringrun/config.{yaml,toml} ->
// ./configs/ringrun.{yaml,toml} -> embedded default.
// Every file overlays the defaults, so partial files are fine. A file that
// is found but does not parse or validate is an error.
func Load(customPath string) (Config, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		return LoadFile(path)
	}

	cfg, err := Decode(defaultYAML, FormatYAML)
	if err != nil {
		return DefaultConfig(), nil
	}
	return cfg, nil
}

// LoadFile reads and validates a single configuration file.
// The format follows the file extension; anything but .toml is YAML.
func LoadFile(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	cfg, err := Decode(data, FormatForPath(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %s: %w", path, err)
	}
	return cfg, nil
}

// Decode parses data over the defaults and validates the result.
func Decode(data []byte, format string) (Config, error) {
	cfg := DefaultConfig()
	switch format {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse toml: %w", err)
		}
	case FormatYAML, "":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("failed to parse yaml: %w", err)
		}
	default:
		return Config{}, fmt.Errorf("unsupported config format %q", format)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Encode renders the configuration in the given format.
func Encode(cfg Config, format string) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, fmt.Errorf("config: failed to encode toml: %w", err)
		}
		return buf.Bytes(), nil
	case FormatYAML, "":
		out, err := yaml.Marshal(cfg)
		if err != nil {
			return nil, fmt.Errorf("config: failed to encode yaml: %w", err)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("config: unsupported format %q", format)
	}
}

// FormatForPath picks the decoder for a file name.
func FormatForPath(path string) string {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// searchPaths lists the implicit config locations in priority order.
func searchPaths() []string {
	var paths []string
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths,
			filepath.Join(home, ".ringrun", "config.yaml"),
			filepath.Join(home, ".ringrun", "config.toml"),
		)
	}
	return append(paths,
		filepath.Join("configs", "ringrun.yaml"),
		filepath.Join("configs", "ringrun.toml"),
	)
}
