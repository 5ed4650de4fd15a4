package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the name of the tuning file in every search directory.
const FileName = "tapcolour.yaml"

// localConfigDir is searched relative to the working directory.
const localConfigDir = "configs"

// Load loads the game tuning.
// Search order: customPath -> ~/.tapcolour/configs/tapcolour.yaml -> ./configs/tapcolour.yaml -> embedded default
//
// A custom path that cannot be read, parsed or validated is an error.
// Broken files in the search directories are skipped.
func Load(customPath string) (TapConfig, error) {
	if customPath != "" {
		return LoadFile(customPath)
	}

	for _, dir := range SearchDirs() {
		if cfg, err := LoadFile(filepath.Join(dir, FileName)); err == nil {
			return cfg, nil
		}
	}

	var cfg TapConfig
	if err := yaml.Unmarshal(defaultTapYAML, &cfg); err != nil {
		return DefaultTapConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// LoadFile reads, parses and validates a single tuning file.
// Keys missing from the file keep their default values.
func LoadFile(path string) (TapConfig, error) {
	cfg := DefaultTapConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("config: failed to read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("config: failed to parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}

// SearchDirs returns the directories searched for FileName, in priority order.
func SearchDirs() []string {
	var dirs []string
	if dir := userConfigDir(); dir != "" {
		dirs = append(dirs, dir)
	}
	return append(dirs, localConfigDir)
}

// userConfigDir returns ~/.tapcolour/configs, or empty if home is unavailable.
func userConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tapcolour", "configs")
}
