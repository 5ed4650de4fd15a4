package main

import (
	"testing"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

func TestNormalizeSetting(t *testing.T) {
	tests := []struct {
		key     string
		value   string
		want    string
		wantErr bool
	}{
		{storage.KeyDifficulty, "Expert", "expert", false},
		{storage.KeyDifficulty, "1", "medium", false},
		{storage.KeyDifficulty, "impossible", "", true},
		{storage.KeyAutoStart, "on", "true", false},
		{storage.KeySound, "no", "false", false},
		{storage.KeySound, "0", "false", false},
		{storage.KeySound, "loud", "", true},
		{storage.KeyPlayer, "  alice ", "alice", false},
	}

	for _, tc := range tests {
		got, err := normalizeSetting(tc.key, tc.value)
		if (err != nil) != tc.wantErr {
			t.Errorf("normalizeSetting(%q, %q) error = %v, wantErr %v", tc.key, tc.value, err, tc.wantErr)
			continue
		}
		if got != tc.want {
			t.Errorf("normalizeSetting(%q, %q) = %q, expected %q", tc.key, tc.value, got, tc.want)
		}
	}
}

func TestSettingValues(t *testing.T) {
	values := settingValues(storage.Preferences{Difficulty: config.DifficultyMedium, Sound: true})
	if values[storage.KeyDifficulty] != "medium" || values[storage.KeySound] != "true" {
		t.Errorf("settingValues() = %v", values)
	}
	if values[storage.KeyPlayer] != "(none)" {
		t.Errorf("empty player shown as %q", values[storage.KeyPlayer])
	}
	for _, k := range settingKeys {
		if !isSettingKey(k) {
			t.Errorf("%q should be a known key", k)
		}
	}
	if isSettingKey("volume") {
		t.Error("volume is not a setting")
	}
}
