package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Defaults file location under the user config directory
const (
	AppConfigDir     = "yt-converter"
	DefaultsFileName = "config.yaml"
)

// FileDefaults are the headless defaults read from config.yaml. Empty
// fields mean "not set" and leave the built-in default in place.
type FileDefaults struct {
	Destination string   `yaml:"destination,omitempty"`
	Mode        string   `yaml:"mode,omitempty"`
	Quality     string   `yaml:"quality,omitempty"`
	Tool        string   `yaml:"tool,omitempty"`
	ToolArgs    []string `yaml:"tool_args,omitempty"`
	ExtraArgs   []string `yaml:"extra_args,omitempty"`
}

// DefaultsPath returns ~/.config/yt-converter/config.yaml (or the OS equivalent)
func DefaultsPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to get user config directory: %w", err)
	}
	return filepath.Join(dir, AppConfigDir, DefaultsFileName), nil
}

// LoadDefaults reads a defaults file. A missing file yields zero defaults.
func LoadDefaults(path string) (FileDefaults, error) {
	var defaults FileDefaults

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return defaults, nil
	}
	if err != nil {
		return defaults, fmt.Errorf("error reading config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &defaults); err != nil {
		return defaults, fmt.Errorf("error parsing config file %s: %w", path, err)
	}
	return defaults, nil
}

// SaveDefaults writes defaults to path, creating the parent directory
func SaveDefaults(path string, defaults FileDefaults) error {
	data, err := yaml.Marshal(defaults)
	if err != nil {
		return fmt.Errorf("error encoding config: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("error creating config directory: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
