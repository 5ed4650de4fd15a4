package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/vovakirdan/tapcolour/internal/config"
)

// ScoreEntry represents a single finished session.
type ScoreEntry struct {
	ID         int64
	GameID     string
	Difficulty config.DifficultyIndex
	Player     string // Empty for local play
	Score      int
	Rounds     int
	BestStreak int
	EndReason  string
	CreatedAt  time.Time
}

const scoreColumns = `id, game_id, difficulty, player, score, rounds, best_streak, end_reason, created_at`

// SaveScore records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveScore(e ScoreEntry) (int64, error) {
	result, err := s.db.Exec(
		`INSERT INTO scores (game_id, difficulty, player, score, rounds, best_streak, end_reason)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		e.GameID, e.Difficulty.Index(), e.Player, e.Score, e.Rounds, e.BestStreak, e.EndReason,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save score: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// TopScores retrieves the top N scores for a game at one difficulty.
// Results are ordered by score descending; ties keep the earlier entry first.
func (s *Store) TopScores(gameID string, d config.DifficultyIndex, limit int) ([]ScoreEntry, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE game_id = ? AND difficulty = ?
		 ORDER BY score DESC, id ASC
		 LIMIT ?`,
		gameID, d.Index(), limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// AllScores retrieves every score for a game at one difficulty.
func (s *Store) AllScores(gameID string, d config.DifficultyIndex) ([]ScoreEntry, error) {
	rows, err := s.db.Query(
		`SELECT `+scoreColumns+`
		 FROM scores
		 WHERE game_id = ? AND difficulty = ?
		 ORDER BY score DESC, id ASC`,
		gameID, d.Index(),
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query scores: %w", err)
	}
	return scanScores(rows)
}

// scanScores reads score rows and closes them.
func scanScores(rows *sql.Rows) ([]ScoreEntry, error) {
	defer rows.Close()

	var entries []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		var difficulty int
		var createdAt any
		if err := rows.Scan(&e.ID, &e.GameID, &difficulty, &e.Player, &e.Score,
			&e.Rounds, &e.BestStreak, &e.EndReason, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		e.Difficulty = config.DifficultyIndex(difficulty)
		e.CreatedAt = parseTime(createdAt)
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return entries, nil
}

// HighScore returns the highest score for a game at one difficulty.
// Returns 0 if no scores exist.
func (s *Store) HighScore(gameID string, d config.DifficultyIndex) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND difficulty = ?",
		gameID, d.Index(),
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query high score: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// PersonalBest returns a player's highest score for a game at one difficulty.
// Returns 0 if the player has no scores.
func (s *Store) PersonalBest(gameID string, d config.DifficultyIndex, player string) (int, error) {
	var score sql.NullInt64
	err := s.db.QueryRow(
		"SELECT MAX(score) FROM scores WHERE game_id = ? AND difficulty = ? AND player = ?",
		gameID, d.Index(), player,
	).Scan(&score)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot query personal best: %w", err)
	}

	if !score.Valid {
		return 0, nil
	}
	return int(score.Int64), nil
}

// ClearScores deletes all scores for the given game.
func (s *Store) ClearScores(gameID string) error {
	_, err := s.db.Exec("DELETE FROM scores WHERE game_id = ?", gameID)
	if err != nil {
		return fmt.Errorf("storage: cannot clear scores: %w", err)
	}
	return nil
}

// GameStats contains aggregated statistics for a game.
type GameStats struct {
	GameID     string
	GamesCount int
	HighScore  int
	AvgScore   float64
	TotalScore int64
	BestStreak int
	LastPlayed time.Time
}

// GetGameStats retrieves aggregated statistics for a game at one difficulty.
func (s *Store) GetGameStats(gameID string, d config.DifficultyIndex) (*GameStats, error) {
	stats := &GameStats{GameID: gameID}

	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(MAX(score), 0), COALESCE(AVG(score), 0),
		        COALESCE(SUM(score), 0), COALESCE(MAX(best_streak), 0)
		 FROM scores WHERE game_id = ? AND difficulty = ?`,
		gameID, d.Index(),
	).Scan(&stats.GamesCount, &stats.HighScore, &stats.AvgScore, &stats.TotalScore, &stats.BestStreak)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get game stats: %w", err)
	}

	var lastPlayed any
	err = s.db.QueryRow(
		`SELECT created_at FROM scores WHERE game_id = ? AND difficulty = ?
		 ORDER BY created_at DESC, id DESC LIMIT 1`,
		gameID, d.Index(),
	).Scan(&lastPlayed)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("storage: cannot get last played: %w", err)
	}
	if err == nil {
		stats.LastPlayed = parseTime(lastPlayed)
	}

	return stats, nil
}

// GetAllGamesStats retrieves statistics for every game that has been
// played, across all difficulties.
func (s *Store) GetAllGamesStats() (map[string]*GameStats, error) {
	rows, err := s.db.Query(
		`SELECT game_id, COUNT(*), MAX(score), AVG(score), SUM(score), MAX(best_streak), MAX(created_at)
		 FROM scores
		 GROUP BY game_id`,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get all games stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*GameStats)
	for rows.Next() {
		var gs GameStats
		var lastPlayed any
		if err := rows.Scan(&gs.GameID, &gs.GamesCount, &gs.HighScore, &gs.AvgScore,
			&gs.TotalScore, &gs.BestStreak, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		gs.LastPlayed = parseTime(lastPlayed)
		stats[gs.GameID] = &gs
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return stats, nil
}
