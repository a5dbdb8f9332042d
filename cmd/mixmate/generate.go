package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mixmate/internal/bottles"
	platterm "github.com/vovakirdan/mixmate/internal/platform/term"
)

var (
	flagGenCount int
	flagGenStats bool
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Print a freshly scrambled puzzle",
	Long: `Generate one or more puzzles and print them as text.

Examples:
  mixmate generate
  mixmate generate --seed 7 --count 3
  mixmate generate --difficulty hard --stats`,
	Args: cobra.NoArgs,
	Run:  runGenerate,
}

func init() {
	generateCmd.Flags().IntVarP(&flagGenCount, "count", "c", 1, "Number of puzzles to print")
	generateCmd.Flags().BoolVar(&flagGenStats, "stats", false, "Print generation statistics")
}

func runGenerate(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		exitf("loading config: %v", err)
	}

	gen := bottles.NewGenerator(newSource(), cfg.GenParams())
	puzzle := cfg.ToPuzzle()
	opts := renderOptions(cfg, -1)

	fmt.Println(platterm.Legend(puzzle.Colors, opts))
	for i := range max(flagGenCount, 1) {
		set, stats, err := gen.Generate(puzzle)
		if err != nil {
			exitf("generating puzzle: %v", err)
		}
		logger.Debug("generated", "index", i, "mixed", stats.Mixed, "rounds", stats.Rounds)

		fmt.Println()
		fmt.Println(platterm.Render(set, puzzle.Capacity, opts))
		if flagGenStats {
			fmt.Printf("rounds: %d/%d  moved: %d  reverted: %d  consolidated: %d  mixed: %d/%d\n",
				stats.Rounds, gen.Params().MixRounds, stats.UnitsMoved, stats.Reverted,
				stats.Consolidated, stats.Mixed, puzzle.Bottles())
		}
		if cfg.Play.WinRule.Check()(set, puzzle.Capacity) {
			fmt.Println("(already sorted)")
		}
	}
}
