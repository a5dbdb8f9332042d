package config

import (
	"fmt"
	"strings"
)

// DifficultyPreset represents a named puzzle size.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
)

// Presets returns all presets from easiest to hardest.
func Presets() []DifficultyPreset {
	return []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard}
}

// PuzzleForPreset returns the puzzle shape of a preset.
func PuzzleForPreset(preset DifficultyPreset) (PuzzleConfig, bool) {
	switch preset {
	case DifficultyEasy:
		return PuzzleConfig{Colors: 3, Capacity: 4, Spare: 2}, true
	case DifficultyNormal:
		return PuzzleConfig{Colors: 5, Capacity: 8, Spare: 2}, true
	case DifficultyHard:
		return PuzzleConfig{Colors: 6, Capacity: 15, Spare: 2}, true
	default:
		return PuzzleConfig{}, false
	}
}

// ParsePreset converts a name to a preset. Matching ignores case.
func ParsePreset(s string) (DifficultyPreset, error) {
	preset := DifficultyPreset(strings.ToLower(strings.TrimSpace(s)))
	if _, ok := PuzzleForPreset(preset); !ok {
		return "", fmt.Errorf("config: unknown difficulty %q (want easy, normal or hard)", s)
	}
	return preset, nil
}

// ApplyPreset replaces the puzzle shape with the preset's.
// The hard preset also turns on the whole-run pour rule.
func ApplyPreset(cfg *Config, preset DifficultyPreset) error {
	puzzle, ok := PuzzleForPreset(preset)
	if !ok {
		return fmt.Errorf("config: unknown difficulty %q", preset)
	}
	cfg.Puzzle = puzzle
	cfg.Pour.WholeRun = preset == DifficultyHard
	return nil
}
