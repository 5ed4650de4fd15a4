package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"gopkg.in/yaml.v3"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultTapConfig().Validate(); err != nil {
		t.Fatalf("default config should be valid: %v", err)
	}
}

func TestEmbeddedYAMLMatchesDefaults(t *testing.T) {
	var cfg TapConfig
	if err := yaml.Unmarshal(DefaultYAML(), &cfg); err != nil {
		t.Fatalf("embedded YAML does not parse: %v", err)
	}
	if cfg != DefaultTapConfig() {
		t.Errorf("embedded YAML and DefaultTapConfig disagree:\nyaml: %+v\ncode: %+v", cfg, DefaultTapConfig())
	}
}

func TestPresetsGetHarder(t *testing.T) {
	cfg := DefaultTapConfig()
	easy := cfg.Preset(DifficultyEasy)
	medium := cfg.Preset(DifficultyMedium)
	expert := cfg.Preset(DifficultyExpert)

	if !(easy.Tiles < medium.Tiles && medium.Tiles < expert.Tiles) {
		t.Errorf("tile counts should grow with difficulty: %d, %d, %d", easy.Tiles, medium.Tiles, expert.Tiles)
	}
	if !(easy.WindowMs > medium.WindowMs && medium.WindowMs > expert.WindowMs) {
		t.Errorf("windows should shrink with difficulty: %d, %d, %d", easy.WindowMs, medium.WindowMs, expert.WindowMs)
	}
}

func TestPresetUnknownFallsBackToEasy(t *testing.T) {
	cfg := DefaultTapConfig()
	if cfg.Preset(DifficultyIndex(7)) != cfg.Presets.Easy {
		t.Error("unknown difficulty should use the easy preset")
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*TapConfig)
		match  string
	}{
		{"one tile", func(c *TapConfig) { c.Presets.Easy.Tiles = 1 }, "tiles"},
		{"too many tiles", func(c *TapConfig) { c.Presets.Expert.Tiles = PaletteSize + 1 }, "tiles"},
		{"zero window", func(c *TapConfig) { c.Presets.Medium.WindowMs = 0 }, "window_ms"},
		{"min above start", func(c *TapConfig) { c.Presets.Easy.MinWindowMs = 5000 }, "min_window_ms"},
		{"negative shrink", func(c *TapConfig) { c.Presets.Easy.ShrinkMs = -1 }, "shrink_ms"},
		{"no timed session", func(c *TapConfig) { c.Timed.SessionMs = 0 }, "session_ms"},
		{"negative flash", func(c *TapConfig) { c.Feedback.FlashMs = -5 }, "flash_ms"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultTapConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.match) {
				t.Errorf("error %q should mention %q", err, tc.match)
			}
		})
	}
}

func TestLoadFilePartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	content := "presets:\n  easy:\n    tiles: 5\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile() failed: %v", err)
	}
	if cfg.Presets.Easy.Tiles != 5 {
		t.Errorf("easy tiles = %d, expected 5", cfg.Presets.Easy.Tiles)
	}
	// Untouched keys keep their defaults
	def := DefaultTapConfig()
	if cfg.Presets.Easy.WindowMs != def.Presets.Easy.WindowMs {
		t.Errorf("easy window_ms = %d, expected default %d", cfg.Presets.Easy.WindowMs, def.Presets.Easy.WindowMs)
	}
	if cfg.Presets.Expert != def.Presets.Expert {
		t.Error("expert preset should be untouched")
	}
}

func TestLoadCustomPathErrors(t *testing.T) {
	dir := t.TempDir()

	if _, err := Load(filepath.Join(dir, "missing.yaml")); err == nil {
		t.Error("missing custom path should be an error")
	}

	bad := filepath.Join(dir, "bad.yaml")
	if err := os.WriteFile(bad, []byte("presets: [not, a, map"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(bad); err == nil {
		t.Error("unparseable custom path should be an error")
	}

	invalid := filepath.Join(dir, "invalid.yaml")
	if err := os.WriteFile(invalid, []byte("presets:\n  easy:\n    tiles: 1\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(invalid); err == nil {
		t.Error("invalid custom path should be an error")
	}
}

func TestLoadDefaultIsValid(t *testing.T) {
	// Without a custom path Load never fails: it falls back to the embedded default.
	t.Setenv("HOME", t.TempDir())
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg != DefaultTapConfig() {
		t.Errorf("expected defaults, got %+v", cfg)
	}
}

func TestLoadPrefersLocalConfigDir(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	work := t.TempDir()
	t.Chdir(work)

	if err := os.MkdirAll(filepath.Join(work, "configs"), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "presets:\n  medium:\n    tiles: 7\n"
	if err := os.WriteFile(filepath.Join(work, "configs", FileName), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") failed: %v", err)
	}
	if cfg.Presets.Medium.Tiles != 7 {
		t.Errorf("medium tiles = %d, expected 7 from ./configs", cfg.Presets.Medium.Tiles)
	}
}

func TestWatcherDeliversReload(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  easy:\n    tiles: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("presets:\n  easy:\n    tiles: 4\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg, ok := <-w.Reloads():
			if !ok {
				t.Fatal("reload channel closed early")
			}
			if cfg.Presets.Easy.Tiles == 4 {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for config reload")
		}
	}
}

func TestWatcherSkipsInvalidFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "custom.yaml")
	if err := os.WriteFile(path, []byte("presets:\n  easy:\n    tiles: 3\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	w, err := NewWatcher(path, nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	if err := os.WriteFile(path, []byte("presets:\n  easy:\n    tiles: 0\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Reloads():
		t.Errorf("invalid file should not be delivered, got %+v", cfg.Presets.Easy)
	case <-time.After(500 * time.Millisecond):
	}
}

func TestWatcherPicksUpDirectoryCreatedLater(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	w, err := NewWatcher("", nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	dir := filepath.Join(home, ".tapcolour", "configs")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("presets:\n  medium:\n    tiles: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	timeout := time.After(5 * time.Second)
	for {
		select {
		case cfg, ok := <-w.Reloads():
			if !ok {
				t.Fatal("reload channel closed early")
			}
			if cfg.Presets.Medium.Tiles == 7 {
				return
			}
		case <-timeout:
			t.Fatal("timed out waiting for the new config directory")
		}
	}
}

func TestWatcherIgnoresFilesInParentDirectories(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Chdir(t.TempDir())

	w, err := NewWatcher("", nil)
	if err != nil {
		t.Fatalf("NewWatcher() failed: %v", err)
	}
	defer w.Close()

	// Home is watched only while ~/.tapcolour/configs is missing.
	if err := os.WriteFile(filepath.Join(home, FileName), []byte("presets:\n  medium:\n    tiles: 7\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	select {
	case cfg := <-w.Reloads():
		t.Errorf("a file outside the config directories was loaded: %+v", cfg.Presets.Medium)
	case <-time.After(500 * time.Millisecond):
	}
}
