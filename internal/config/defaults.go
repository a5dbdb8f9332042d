package config

import (
	"bytes"
	_ "embed"

	"gopkg.in/yaml.v3"
)

//go:embed defaults/mixmate.yaml
var defaultYAML []byte

// DefaultYAML returns a copy of the embedded default configuration file.
func DefaultYAML() []byte {
	return bytes.Clone(defaultYAML)
}

// Default returns the embedded default configuration.
func Default() Config {
	var cfg Config
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return builtinConfig() // Fallback to hardcoded if embed fails
	}
	return cfg
}

// builtinConfig mirrors defaults/mixmate.yaml.
func builtinConfig() Config {
	return Config{
		Puzzle: PuzzleConfig{
			Colors:   6,
			Capacity: 15,
			Spare:    2,
		},
		Mix: MixConfig{
			Rounds: 1000,
		},
		Play: PlayConfig{
			WinRule:         WinSorted,
			RestartAttempts: 10,
		},
		Palette: []string{
			"#EEAC00",
			"#B34C00",
			"#340900",
			"#FF004C",
			"#C97400",
			"#D9D629",
		},
	}
}
