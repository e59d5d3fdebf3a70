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

// Format is a configuration file encoding.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatOf picks the encoding from a file extension; anything but .toml is YAML.
func FormatOf(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Decode parses data over the hardcoded defaults, so partial files only
// override the keys they name.
func Decode(data []byte, f Format) (RunnerConfig, error) {
	cfg := DefaultRunnerConfig()
	switch f {
	case FormatTOML:
		if _, err := toml.Decode(string(data), &cfg); err != nil {
			return cfg, err
		}
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, err
		}
	}
	return cfg, nil
}

// Encode writes cfg in the given format.
func Encode(cfg RunnerConfig, f Format) ([]byte, error) {
	switch f {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	default:
		return yaml.Marshal(cfg)
	}
}

// LoadFile reads, decodes and validates one file.
func LoadFile(path string) (RunnerConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to read config %s: %w", path, err)
	}
	cfg, err := Decode(data, FormatOf(path))
	if err != nil {
		return RunnerConfig{}, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return RunnerConfig{}, fmt.Errorf("invalid config %s: %w", path, err)
	}
	return cfg, nil
}

// Load loads the runner configuration.
// Search order: customPath -> ~/.blockrun/configs/runner.{yaml,toml} ->
// ./configs/runner.{yaml,toml} -> embedded default.
// A custom path must load; broken files further down the list are skipped.
func Load(customPath string) (RunnerConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, path := range searchPaths() {
		if cfg, err := LoadFile(path); err == nil {
			return cfg, nil
		}
	}

	cfg, err := Decode(defaultRunnerYAML, FormatYAML)
	if err != nil || cfg.Validate() != nil {
		return DefaultRunnerConfig(), nil
	}
	return cfg, nil
}

// Resolve returns the file Load would read, or "" for the embedded default.
func Resolve(customPath string) string {
	if customPath != "" {
		return customPath
	}
	for _, path := range searchPaths() {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}
	return ""
}

func searchPaths() []string {
	var paths []string
	for _, name := range []string{"runner.yaml", "runner.toml"} {
		if p := userConfigPath(name); p != "" {
			paths = append(paths, p)
		}
	}
	return append(paths,
		filepath.Join("configs", "runner.yaml"),
		filepath.Join("configs", "runner.toml"),
	)
}

// userConfigPath returns the path to a user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".blockrun", "configs", filename)
}
