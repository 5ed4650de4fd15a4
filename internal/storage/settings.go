package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/tapcolour/internal/config"
)

// Setting keys used by the CLI and the settings screen.
const (
	KeyDifficulty = "difficulty"
	KeyAutoStart  = "auto_start"
	KeySound      = "sound"
	KeyPlayer     = "player"
)

// ErrNoSetting is returned when a setting has never been stored.
var ErrNoSetting = errors.New("storage: setting not found")

// Setting returns the stored value for key, or ErrNoSetting.
func (s *Store) Setting(key string) (string, error) {
	var value string
	err := s.db.QueryRow("SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", ErrNoSetting
	}
	if err != nil {
		return "", fmt.Errorf("storage: cannot read setting %q: %w", key, err)
	}
	return value, nil
}

// SetSetting stores value under key, replacing any previous value.
func (s *Store) SetSetting(key, value string) error {
	_, err := s.db.Exec(
		`INSERT INTO settings (key, value) VALUES (?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = CURRENT_TIMESTAMP`,
		key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write setting %q: %w", key, err)
	}
	return nil
}

// DeleteSetting removes key. Deleting a missing key is not an error.
func (s *Store) DeleteSetting(key string) error {
	if _, err := s.db.Exec("DELETE FROM settings WHERE key = ?", key); err != nil {
		return fmt.Errorf("storage: cannot delete setting %q: %w", key, err)
	}
	return nil
}

// Settings returns every stored setting.
func (s *Store) Settings() (map[string]string, error) {
	rows, err := s.db.Query("SELECT key, value FROM settings ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query settings: %w", err)
	}
	defer rows.Close()

	out := make(map[string]string)
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("storage: cannot scan setting: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return out, nil
}

// BoolSetting returns the stored boolean for key, or def when it is
// missing or unparseable.
func (s *Store) BoolSetting(key string, def bool) bool {
	v, err := s.Setting(key)
	if err != nil {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// SetBoolSetting stores a boolean under key.
func (s *Store) SetBoolSetting(key string, v bool) error {
	return s.SetSetting(key, strconv.FormatBool(v))
}

// Preferences are the persisted player choices from the settings screen.
type Preferences struct {
	Difficulty config.DifficultyIndex
	AutoStart  bool
	Sound      bool
	Player     string
}

// Preferences loads the stored preferences. Missing or broken values fall
// back to Easy, no auto-start, no sound and no player name.
func (s *Store) Preferences() Preferences {
	var p Preferences
	if v, err := s.Setting(KeyDifficulty); err == nil {
		if d, err := config.ParseDifficulty(v); err == nil {
			p.Difficulty = d
		}
	}
	p.AutoStart = s.BoolSetting(KeyAutoStart, false)
	p.Sound = s.BoolSetting(KeySound, false)
	if v, err := s.Setting(KeyPlayer); err == nil {
		p.Player = v
	}
	return p
}

// SavePreferences stores all preferences.
func (s *Store) SavePreferences(p Preferences) error {
	if err := s.SetSetting(KeyDifficulty, p.Difficulty.String()); err != nil {
		return err
	}
	if err := s.SetBoolSetting(KeyAutoStart, p.AutoStart); err != nil {
		return err
	}
	if err := s.SetBoolSetting(KeySound, p.Sound); err != nil {
		return err
	}
	return s.SetSetting(KeyPlayer, p.Player)
}
