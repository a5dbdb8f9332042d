// mixmate is a liquid sort puzzle for the terminal.
//
// Usage:
//
//	mixmate generate         - Print a freshly scrambled puzzle
//	mixmate play             - Solve a puzzle interactively
//	mixmate results          - Show best and recent results
//	mixmate presets          - List difficulty presets
//	mixmate sample -n <N>    - Generate N puzzles and report statistics
//
// Global flags:
//
//	--seed <value>        - Set RNG seed for reproducible puzzles (0 = crypto randomness)
//	--db <path>           - Set database path (default: ~/.mixmate/results.db)
//	--config <path>       - Use a custom config YAML
//	--difficulty <name>   - Apply a preset: easy, normal, hard
//	--verbose             - Enable debug logging
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mixmate/internal/bottles"
	"github.com/vovakirdan/mixmate/internal/config"
	platterm "github.com/vovakirdan/mixmate/internal/platform/term"
)

var (
	// Global flags
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagVerbose    bool
	flagNoColor    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mixmate",
	Short: "MixMate - sort the mixed drinks back into their bottles",
	Long: `MixMate is a liquid sort puzzle. Bottles hold stacked units of colored
liquid; pour from one bottle into another until every bottle holds a
single flavor.

Available commands:
  generate - Print a freshly scrambled puzzle
  play     - Solve a puzzle interactively
  results  - Show best and recent results
  presets  - List difficulty presets
  sample   - Generate many puzzles and report statistics

Examples:
  mixmate play
  mixmate play --difficulty easy
  mixmate generate --seed 42
  mixmate results --recent
  mixmate sample -n 1000 --config ./my-mixmate.yaml`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = crypto randomness)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mixmate/results.db", "Path to results database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().BoolVar(&flagNoColor, "no-color", false, "Disable colored output")

	// Add subcommands
	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(resultsCmd)
	rootCmd.AddCommand(presetsCmd)
	rootCmd.AddCommand(sampleCmd)
}

// newLogger returns the stderr logger shared by all commands.
func newLogger() *log.Logger {
	return newLoggerTo(os.Stderr, flagVerbose)
}

func newLoggerTo(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}
	return log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "mixmate",
		Level:           level,
	})
}

// loadConfig reads the config file and applies the difficulty preset.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return cfg, err
	}

	if flagDifficulty != "" {
		preset, err := config.ParsePreset(flagDifficulty)
		if err != nil {
			return cfg, err
		}
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			return cfg, err
		}
	}
	return cfg, cfg.Validate()
}

// newSource returns a seeded source when --seed is set, crypto randomness otherwise.
func newSource() bottles.Source {
	if flagSeed != 0 {
		return bottles.NewSeededSource(flagSeed)
	}
	return bottles.NewCryptoSource()
}

// renderOptions colors output only when stdout is a terminal.
func renderOptions(cfg config.Config, source int) platterm.Options {
	opts := platterm.DefaultOptions()
	opts.Source = source
	opts.Color = !flagNoColor && term.IsTerminal(int(os.Stdout.Fd()))
	opts.Hex = cfg.ColorHex
	return opts
}

// exitf prints an error message and exits.
func exitf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "Error: "+format+"\n", args...)
	os.Exit(1)
}
