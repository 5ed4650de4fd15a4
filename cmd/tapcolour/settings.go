package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

var flagSettingsReset bool

// settingKeys lists the keys the settings command accepts, in display order.
var settingKeys = []string{
	storage.KeyDifficulty,
	storage.KeyAutoStart,
	storage.KeySound,
	storage.KeyPlayer,
}

var settingsCmd = &cobra.Command{
	Use:   "settings [key] [value]",
	Short: "Show or change stored settings",
	Long: `Show or change the settings used by 'play' and 'menu'.

Keys:
  difficulty  - easy, medium or expert
  auto_start  - start the first session without waiting (true/false)
  sound       - play sound cues (true/false)
  player      - name stored with your scores

Examples:
  tapcolour settings
  tapcolour settings difficulty
  tapcolour settings difficulty expert
  tapcolour settings sound on
  tapcolour settings player --reset`,
	Args: cobra.MaximumNArgs(2),
	RunE: runSettings,
}

func init() {
	settingsCmd.Flags().BoolVar(&flagSettingsReset, "reset", false, "Restore the key to its default")
}

func runSettings(_ *cobra.Command, args []string) error {
	if len(args) > 0 && !isSettingKey(args[0]) {
		return fmt.Errorf("unknown setting %q, expected one of: %s", args[0], strings.Join(settingKeys, ", "))
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening settings database: %w", err)
	}
	defer store.Close()

	switch {
	case len(args) == 0:
		values := settingValues(store.Preferences())
		for _, k := range settingKeys {
			fmt.Printf("%-10s  %s\n", k, values[k])
		}
		return nil

	case flagSettingsReset:
		if err := store.DeleteSetting(args[0]); err != nil {
			return err
		}

	case len(args) == 2:
		value, err := normalizeSetting(args[0], args[1])
		if err != nil {
			return err
		}
		if err := store.SetSetting(args[0], value); err != nil {
			return err
		}
	}

	fmt.Printf("%s = %s\n", args[0], settingValues(store.Preferences())[args[0]])
	return nil
}

func isSettingKey(k string) bool {
	for _, key := range settingKeys {
		if key == k {
			return true
		}
	}
	return false
}

// normalizeSetting validates a value and returns its stored form.
func normalizeSetting(key, value string) (string, error) {
	switch key {
	case storage.KeyDifficulty:
		d, err := config.ParseDifficulty(value)
		if err != nil {
			return "", err
		}
		return d.String(), nil

	case storage.KeyAutoStart, storage.KeySound:
		b, err := parseBool(value)
		if err != nil {
			return "", fmt.Errorf("%s: %w", key, err)
		}
		return strconv.FormatBool(b), nil

	default:
		return strings.TrimSpace(value), nil
	}
}

// parseBool accepts strconv's forms plus on/off and yes/no.
func parseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "on", "yes", "y":
		return true, nil
	case "off", "no", "n":
		return false, nil
	}
	return strconv.ParseBool(s)
}

// settingValues renders the effective value of every key.
func settingValues(p storage.Preferences) map[string]string {
	player := p.Player
	if player == "" {
		player = "(none)"
	}
	return map[string]string{
		storage.KeyDifficulty: p.Difficulty.String(),
		storage.KeyAutoStart:  strconv.FormatBool(p.AutoStart),
		storage.KeySound:      strconv.FormatBool(p.Sound),
		storage.KeyPlayer:     player,
	}
}
