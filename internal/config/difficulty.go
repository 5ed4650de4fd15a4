package config

import (
	"errors"
	"fmt"
	"strings"
)

// DifficultyIndex is the position of the three-way difficulty selector on
// the settings screen. The numeric values are stable: they are persisted in
// the settings table and stored alongside every score.
type DifficultyIndex int

const (
	DifficultyEasy   DifficultyIndex = 0
	DifficultyMedium DifficultyIndex = 1
	DifficultyExpert DifficultyIndex = 2
)

// ErrUnknownDifficulty is returned when a name or index does not map to a
// selector position.
var ErrUnknownDifficulty = errors.New("config: unknown difficulty")

// AllDifficulties returns the difficulties in selector order.
func AllDifficulties() []DifficultyIndex {
	return []DifficultyIndex{DifficultyEasy, DifficultyMedium, DifficultyExpert}
}

// Index returns the selector position of the difficulty.
func (d DifficultyIndex) Index() int {
	return int(d)
}

// Valid reports whether d is one of the three selector positions.
func (d DifficultyIndex) Valid() bool {
	return d >= DifficultyEasy && d <= DifficultyExpert
}

// String returns the lowercase name used in flags, YAML keys and storage.
func (d DifficultyIndex) String() string {
	switch d {
	case DifficultyEasy:
		return "easy"
	case DifficultyMedium:
		return "medium"
	case DifficultyExpert:
		return "expert"
	default:
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
}

// Label returns the capitalized name shown on the selector.
func (d DifficultyIndex) Label() string {
	switch d {
	case DifficultyEasy:
		return "Easy"
	case DifficultyMedium:
		return "Medium"
	case DifficultyExpert:
		return "Expert"
	default:
		return "?"
	}
}

// Next returns the selector position to the right, wrapping around.
func (d DifficultyIndex) Next() DifficultyIndex {
	return DifficultyIndex((int(d) + 1) % len(AllDifficulties()))
}

// Prev returns the selector position to the left, wrapping around.
func (d DifficultyIndex) Prev() DifficultyIndex {
	n := len(AllDifficulties())
	return DifficultyIndex((int(d) + n - 1) % n)
}

// DifficultyFromIndex converts a selector position to a DifficultyIndex.
func DifficultyFromIndex(i int) (DifficultyIndex, error) {
	d := DifficultyIndex(i)
	if !d.Valid() {
		return DifficultyEasy, fmt.Errorf("%w: index %d", ErrUnknownDifficulty, i)
	}
	return d, nil
}

// ParseDifficulty parses a difficulty name. Matching is case-insensitive and
// accepts the selector index ("0", "1", "2") as well.
func ParseDifficulty(s string) (DifficultyIndex, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "easy", "0":
		return DifficultyEasy, nil
	case "medium", "normal", "1":
		return DifficultyMedium, nil
	case "expert", "hard", "2":
		return DifficultyExpert, nil
	}
	return DifficultyEasy, fmt.Errorf("%w: %q", ErrUnknownDifficulty, s)
}
