package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tapcolour/internal/config"
	"github.com/vovakirdan/tapcolour/internal/registry"
	"github.com/vovakirdan/tapcolour/internal/scene"
	"github.com/vovakirdan/tapcolour/internal/storage"
)

// scoresShown is how many entries the scores command prints.
const scoresShown = 10

var flagScoresDifficulty string

var scoresCmd = &cobra.Command{
	Use:   "scores [game]",
	Short: "Show high scores",
	Long: `Display the top 10 scores for a mode (default: tapcolour).
Every difficulty has its own board; without --difficulty all three are shown.

Examples:
  tapcolour scores
  tapcolour scores tapcolour_timed
  tapcolour scores --difficulty expert`,
	Args: cobra.MaximumNArgs(1),
	RunE: runScores,
}

func init() {
	scoresCmd.Flags().StringVar(&flagScoresDifficulty, "difficulty", "", "Only show one difficulty: easy, medium, expert")
}

func runScores(_ *cobra.Command, args []string) error {
	gameID := scene.ClassicID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'tapcolour list' to see available modes", gameID)
	}

	levels := config.AllDifficulties()
	if flagScoresDifficulty != "" {
		d, err := config.ParseDifficulty(flagScoresDifficulty)
		if err != nil {
			return err
		}
		levels = []config.DifficultyIndex{d}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening scores database: %w", err)
	}
	defer store.Close()

	fmt.Printf("High Scores - %s\n", registry.Title(gameID))
	for _, d := range levels {
		if err := printScores(store, gameID, d); err != nil {
			return err
		}
	}
	return nil
}

func printScores(store *storage.Store, gameID string, d config.DifficultyIndex) error {
	scores, err := store.TopScores(gameID, d, scoresShown)
	if err != nil {
		return fmt.Errorf("retrieving scores: %w", err)
	}

	fmt.Println()
	fmt.Printf("[%s]\n", d.Label())
	if len(scores) == 0 {
		fmt.Println("  No scores recorded yet.")
		return nil
	}

	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "Rank", "Player", "Score", "Streak", "Date")
	fmt.Printf("  %-4s  %-16s  %-6s  %-6s  %s\n", "----", "------", "-----", "------", "----")
	for i, entry := range scores {
		player := entry.Player
		if player == "" {
			player = "-"
		}
		fmt.Printf("  %-4d  %-16s  %-6d  %-6d  %s\n",
			i+1, player, entry.Score, entry.BestStreak, entry.CreatedAt.Format("2006-01-02 15:04"))
	}

	if stats, err := store.GetGameStats(gameID, d); err == nil {
		fmt.Printf("  Games: %d  Best: %d  Average: %.1f\n", stats.GamesCount, stats.HighScore, stats.AvgScore)
	}
	return nil
}
