package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcolour/internal/audio"
	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/platform/tui"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/scene"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// defaultVolume is the linear volume used for the sound cues.
const defaultVolume = 0.5

var (
	flagDifficulty string
	flagAutoStart  bool
	flagSound      bool
	flagWatch      bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game mode",
	Long: `Start playing the specified mode (default: tapcolour).

Controls:
  1-9 / a-l    - Tap a tile
  Mouse        - Click a tile
  Enter/Space  - Start a session
  P/Esc        - Pause
  R            - Restart
  Ctrl+S       - Save a screenshot
  Q/Ctrl+C     - Quit

Difficulty options (built-in tuning):
` + difficultyHelp(config.DefaultTapConfig()) + `

Flags that are not given fall back to the stored settings
(see 'tapcolour settings').

Examples:
  tapcolour play
  tapcolour play tapcolour_timed --difficulty medium
  tapcolour play --auto-start --sound
  tapcolour play --config ./my-tuning.yaml --watch`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty: easy, medium, expert")
	playCmd.Flags().BoolVar(&flagAutoStart, "auto-start", false, "Start the first session without waiting")
	playCmd.Flags().BoolVar(&flagSound, "sound", false, "Play sound cues")
	playCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the tuning YAML when it changes")
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := scene.ClassicID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tapcolour list' to see available modes", gameID)
	}

	logger, closeLog := newLogger()
	defer closeLog()

	rules, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	var prefs storage.Preferences
	store := openStore(logger)
	if store != nil {
		defer store.Close()
		prefs = store.Preferences()
	}

	play := tui.Play{
		GameID:     gameID,
		Difficulty: prefs.Difficulty,
		AutoStart:  prefs.AutoStart,
		Rules:      &rules,
	}
	if cmd.Flags().Changed("difficulty") {
		d, parseErr := config.ParseDifficulty(flagDifficulty)
		if parseErr != nil {
			return parseErr
		}
		play.Difficulty = d
	}
	if cmd.Flags().Changed("auto-start") {
		play.AutoStart = flagAutoStart
	}
	sound := prefs.Sound
	if cmd.Flags().Changed("sound") {
		sound = flagSound
	}

	env := tui.Env{
		Store:  store,
		Player: prefs.Player,
		Logger: logger,
	}
	if sound {
		env.Audio = startAudio(logger)
		defer env.Audio.Close()
	}
	if flagWatch {
		env.Watcher = startWatcher(logger)
		if env.Watcher != nil {
			defer env.Watcher.Close()
		}
	}

	return tui.Run(play, runtimeConfig(), env)
}

// difficultyHelp describes each preset, one line per difficulty.
func difficultyHelp(cfg config.TapConfig) string {
	lines := make([]string, 0, len(config.AllDifficulties()))
	for _, d := range config.AllDifficulties() {
		p := cfg.Preset(d)
		line := fmt.Sprintf("  %-7s - %d tiles, %.1fs window shrinking to %.1fs",
			d, p.Tiles, float64(p.WindowMs)/1000, float64(p.MinWindowMs)/1000)
		if p.Interference {
			line += ", misleading ink"
		}
		if p.StreakBonus > 0 {
			line += fmt.Sprintf(", bonus point every %d hits in a row", p.StreakBonus)
		}
		lines = append(lines, line)
	}
	return strings.Join(lines, "\n")
}

// startAudio opens the speaker. Without one the game stays silent.
func startAudio(logger *log.Logger) *audio.Player {
	player := audio.NewPlayer(defaultVolume)
	if err := player.Start(); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
		logger.Warn("sound disabled", "error", err)
		return nil
	}
	return player
}

// startWatcher watches the tuning file. Reload is skipped if it cannot start.
func startWatcher(logger *log.Logger) *config.Watcher {
	w, err := config.NewWatcher(flagConfig, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot watch config: %v\n", err)
		logger.Warn("config watch disabled", "error", err)
		return nil
	}
	return w
}
