package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcolour/internal/audio"
	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/platform/tui"
)

var flagMenuWatch bool

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the interactive menu",
	Long: `Start in interactive menu mode.

Pick a mode, choose the difficulty, change settings or browse the
scoreboard. After a game you return to the menu to play again.
Changes made on the settings screen are stored for next time.

Controls:
  Up/Down/j/k     - Pick a mode
  Left/Right/h/l  - Change difficulty
  Enter/Space     - Play
  Tab             - Scoreboard
  S               - Settings
  Q               - Quit

Examples:
  tapcolour menu
  tapcolour menu --fps 30
  tapcolour menu --db ./scores.db --watch`,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().BoolVar(&flagMenuWatch, "watch", false, "Reload the tuning YAML when it changes")
}

func runMenu(_ *cobra.Command, _ []string) error {
	logger, closeLog := newLogger()
	defer closeLog()

	rules, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	store := openStore(logger)
	if store != nil {
		defer store.Close()
	}

	// The speaker opens on the first game with sound turned on.
	player := audio.NewPlayer(defaultVolume)
	defer player.Close()

	env := tui.Env{
		Store:  store,
		Audio:  player,
		Logger: logger,
	}
	if flagMenuWatch {
		env.Watcher = startWatcher(logger)
		if env.Watcher != nil {
			defer env.Watcher.Close()
		}
	}

	return tui.RunSession(runtimeConfig(), &rules, env)
}
