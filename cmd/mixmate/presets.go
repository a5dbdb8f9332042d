package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mixmate/internal/config"
)

var presetsCmd = &cobra.Command{
	Use:   "presets",
	Short: "List difficulty presets",
	Long: `Shows the puzzle size and pour rule of every difficulty preset.

Examples:
  mixmate presets
  mixmate presets --defaults > ~/.mixmate/config.yaml`,
	Args: cobra.NoArgs,
	Run:  runPresets,
}

var flagPresetsDefaults bool

func init() {
	presetsCmd.Flags().BoolVar(&flagPresetsDefaults, "defaults", false, "Print the built-in default config YAML")
}

func runPresets(cmd *cobra.Command, args []string) {
	if flagPresetsDefaults {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	fmt.Println("Difficulty presets:")
	fmt.Println()

	fmt.Printf("  %-6s  %-6s  %-8s  %-5s  %s\n", "Name", "Colors", "Capacity", "Spare", "Pour")
	fmt.Printf("  %-6s  %-6s  %-8s  %-5s  %s\n", "----", "------", "--------", "-----", "----")

	for _, preset := range config.Presets() {
		cfg := config.Default()
		if err := config.ApplyPreset(&cfg, preset); err != nil {
			exitf("%v", err)
		}
		pour := "partial"
		if cfg.Pour.WholeRun {
			pour = "whole run"
		}
		fmt.Printf("  %-6s  %-6d  %-8d  %-5d  %s\n",
			preset, cfg.Puzzle.Colors, cfg.Puzzle.Capacity, cfg.Puzzle.Spare, pour)
	}

	fmt.Println()
	fmt.Println("Run 'mixmate play --difficulty <name>' to use a preset.")
}
