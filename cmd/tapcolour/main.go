// tapcolour is a reaction game for the terminal: tap the tile whose colour
// is named before the window closes.
//
// Usage:
//
//	tapcolour list                 - List available modes
//	tapcolour play [game]          - Play a mode directly
//	tapcolour menu                 - Menu with settings and scores
//	tapcolour scores [game]        - Show high scores per difficulty
//	tapcolour settings [key] [val] - Show or change stored settings
//	tapcolour serve                - Start SSH server for remote play
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible rounds
//	--db <path>     - Set database path (default: ~/.tapcolour/scores.db)
//	--config <path> - Tuning YAML (default: search ~/.tapcolour/configs, ./configs)
//	--log <path>    - Write debug logs to a file
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tapcolour/internal/core"
	"github.com/vovakirdan/tapcolour/internal/storage"

	// Register the game modes
	_ "github.com/vovakirdan/tapcolour/internal/scene"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "tapcolour",
	Short: "Tap That Colour - a colour reaction game for your terminal",
	Long: `Tap That Colour shows a row of coloured tiles and names one colour.
Tap the matching tile with its number key, its home-row key or the mouse
before the window closes.

Available commands:
  list     - Show all game modes
  play     - Play a mode directly
  menu     - Interactive menu with settings and scores
  scores   - View high scores
  settings - Show or change stored settings
  serve    - Start SSH server for remote play

Examples:
  tapcolour play
  tapcolour play tapcolour_timed --difficulty expert
  tapcolour menu
  tapcolour serve --ssh :2222`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", storage.DefaultPath, "Path to scores database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to a tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "", "Write debug logs to this file")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(settingsCmd)
	rootCmd.AddCommand(serveCmd)
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 24
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width = w
		height = h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// openStore opens the scores database. The game still runs without one.
func openStore(logger *log.Logger) *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open scores database: %v\n", err)
		logger.Warn("no scores database", "path", flagDBPath, "error", err)
		return nil
	}
	return store
}

// newLogger returns a logger for a terminal session. The screen belongs to
// the game, so logs go to --log or nowhere. The returned func closes the file.
func newLogger() (*log.Logger, func()) {
	if flagLogPath == "" {
		return log.New(io.Discard), func() {}
	}
	f, err := os.OpenFile(flagLogPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: cannot open log file: %v\n", err)
		return log.New(io.Discard), func() {}
	}
	logger := log.NewWithOptions(f, log.Options{
		ReportTimestamp: true,
		Level:           log.DebugLevel,
		Prefix:          "tapcolour",
	})
	return logger, func() { _ = f.Close() }
}
