// Package config provides YAML-based configuration loading and difficulty
// presets for MixMate.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/mixmate/internal/bottles"
)

// Config contains all settings for generating and playing puzzles.
type Config struct {
	Puzzle  PuzzleConfig `yaml:"puzzle"`
	Mix     MixConfig    `yaml:"mix"`
	Pour    PourConfig   `yaml:"pour"`
	Play    PlayConfig   `yaml:"play"`
	Palette []string     `yaml:"palette"` // Hex display code per color index
}

// PuzzleConfig defines the shape of a generated puzzle.
type PuzzleConfig struct {
	Colors   int `yaml:"colors"`
	Capacity int `yaml:"capacity"` // Units per color and bottle height
	Spare    int `yaml:"spare"`    // Empty bottles
}

// MixConfig defines the scramble pass.
type MixConfig struct {
	Rounds         int  `yaml:"rounds"`
	Target         int  `yaml:"target"` // Mixed bottles that end the scramble early, 0 = rounds
	ReversibleOnly bool `yaml:"reversible_only"`
}

// PourConfig selects the pour rule.
type PourConfig struct {
	WholeRun bool `yaml:"whole_run"` // Refuse pours whose top run does not fit entirely
}

// PlayConfig defines session behavior.
type PlayConfig struct {
	WinRule         WinRule `yaml:"win_rule"`
	RestartAttempts int     `yaml:"restart_attempts"` // Regenerations when a new puzzle is already won
}

// WinRule names the check that ends a session.
type WinRule string

const (
	// WinSorted wins when every bottle is empty or full of one color.
	WinSorted WinRule = "sorted"
	// WinStrict wins only when every bottle, spares included, is full of one color.
	WinStrict WinRule = "strict"
)

// Check returns the win predicate for the rule.
func (r WinRule) Check() func(bottles.BottleSet, int) bool {
	if r == WinStrict {
		return bottles.IsSolved
	}
	return bottles.IsSorted
}

// fallbackHex is used for colors the palette does not cover.
const fallbackHex = "#808080"

// ToPuzzle converts the puzzle section to the engine type.
func (c Config) ToPuzzle() bottles.PuzzleConfig {
	return bottles.PuzzleConfig{
		Colors:   c.Puzzle.Colors,
		Capacity: c.Puzzle.Capacity,
		Spare:    c.Puzzle.Spare,
	}
}

// Rules returns the pour rules selected by the config.
func (c Config) Rules() bottles.Rules {
	return bottles.Rules{WholeRun: c.Pour.WholeRun}
}

// GenParams returns generator parameters for the config.
func (c Config) GenParams() bottles.GenParams {
	return bottles.GenParams{
		MixRounds:      c.Mix.Rounds,
		MixTarget:      c.Mix.Target,
		ReversibleOnly: c.Mix.ReversibleOnly,
		Rules:          c.Rules(),
	}
}

// ColorHex maps a color to its display code, falling back to gray.
func (c Config) ColorHex(color bottles.Color) string {
	if int(color) < len(c.Palette) && c.Palette[color] != "" {
		return c.Palette[color]
	}
	return fallbackHex
}

// Validate reports every invalid value in the config.
func (c Config) Validate() error {
	var errs []error
	if err := c.ToPuzzle().Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Mix.Rounds < 0 {
		errs = append(errs, fmt.Errorf("mix.rounds must not be negative, got %d", c.Mix.Rounds))
	}
	if c.Mix.Target < 0 {
		errs = append(errs, fmt.Errorf("mix.target must not be negative, got %d", c.Mix.Target))
	}
	switch c.Play.WinRule {
	case WinSorted, WinStrict:
	default:
		errs = append(errs, fmt.Errorf("play.win_rule must be %q or %q, got %q", WinSorted, WinStrict, c.Play.WinRule))
	}
	if c.Play.RestartAttempts < 1 {
		errs = append(errs, fmt.Errorf("play.restart_attempts must be at least 1, got %d", c.Play.RestartAttempts))
	}
	for i, hex := range c.Palette {
		if !isHexColor(hex) {
			errs = append(errs, fmt.Errorf("palette[%d]: %q is not a #RRGGBB color", i, hex))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// isHexColor checks for the #RRGGBB form.
func isHexColor(s string) bool {
	if len(s) != 7 || s[0] != '#' {
		return false
	}
	return strings.Trim(strings.ToLower(s[1:]), "0123456789abcdef") == ""
}
