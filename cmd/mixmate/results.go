package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/mixmate/internal/storage"
)

var (
	flagResultsLimit  int
	flagResultsRecent bool
	flagResultsAll    bool
	flagResultsClear  bool
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "Show best and recent results",
	Long: `Display the best solved sessions for the configured puzzle size.

Examples:
  mixmate results
  mixmate results --difficulty easy
  mixmate results --recent --limit 5
  mixmate results --all
  mixmate results --clear --difficulty hard`,
	Args: cobra.NoArgs,
	Run:  runResults,
}

func init() {
	resultsCmd.Flags().IntVarP(&flagResultsLimit, "limit", "l", 10, "Number of results to show")
	resultsCmd.Flags().BoolVar(&flagResultsRecent, "recent", false, "Show latest sessions of any size")
	resultsCmd.Flags().BoolVar(&flagResultsAll, "all", false, "Show statistics for every puzzle size")
	resultsCmd.Flags().BoolVar(&flagResultsClear, "clear", false, "Delete results for the configured puzzle size")
}

func runResults(cmd *cobra.Command, args []string) {
	cfg, err := loadConfig()
	if err != nil {
		exitf("loading config: %v", err)
	}
	shape := storage.Shape{
		Colors:   cfg.Puzzle.Colors,
		Capacity: cfg.Puzzle.Capacity,
		Spare:    cfg.Puzzle.Spare,
	}

	// Open result storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		exitf("opening results database: %v", err)
	}
	defer store.Close()

	switch {
	case flagResultsClear:
		if err := store.ClearResults(shape); err != nil {
			exitf("clearing results: %v", err)
		}
		fmt.Printf("Cleared results for %s.\n", shape)
	case flagResultsAll:
		printAllStats(store)
	case flagResultsRecent:
		printRecent(store)
	default:
		printTop(store, shape)
	}
}

func printTop(store *storage.Store, shape storage.Shape) {
	results, err := store.TopResults(shape, flagResultsLimit)
	if err != nil {
		exitf("retrieving results: %v", err)
	}

	fmt.Printf("Best Results - %s\n", shape)
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No solved puzzles recorded yet.")
		fmt.Println()
		fmt.Println("Play 'mixmate play' to set the first record!")
		return
	}

	// Print header
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "Rank", "Moves", "Time", "Date")
	fmt.Printf("  %-4s  %-6s  %-8s  %s\n", "----", "-----", "----", "----")

	for i, r := range results {
		fmt.Printf("  %-4d  %-6d  %-8s  %s\n", i+1, r.Moves, formatDuration(r.Duration), formatDate(r.CreatedAt))
	}

	stats, err := store.GetStats(shape)
	if err == nil {
		fmt.Println()
		fmt.Printf("Played: %d  Solved: %d (%.0f%%)  Average: %.1f moves\n",
			stats.Played, stats.Solved, stats.SolveRate()*100, stats.AvgMoves)
	}
}

func printRecent(store *storage.Store) {
	results, err := store.RecentResults(flagResultsLimit)
	if err != nil {
		exitf("retrieving results: %v", err)
	}

	fmt.Println("Recent Sessions")
	fmt.Println()

	if len(results) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-8s  %-7s  %s\n", "Size", "Moves", "Time", "Solved", "Date")
	fmt.Printf("  %-8s  %-6s  %-8s  %-7s  %s\n", "----", "-----", "----", "------", "----")

	for _, r := range results {
		solved := "no"
		if r.Solved {
			solved = "yes"
		}
		fmt.Printf("  %-8s  %-6d  %-8s  %-7s  %s\n",
			r.Shape(), r.Moves, formatDuration(r.Duration), solved, formatDate(r.CreatedAt))
	}
}

func printAllStats(store *storage.Store) {
	all, err := store.AllStats()
	if err != nil {
		exitf("retrieving statistics: %v", err)
	}

	fmt.Println("Statistics")
	fmt.Println()

	if len(all) == 0 {
		fmt.Println("No sessions recorded yet.")
		return
	}

	fmt.Printf("  %-8s  %-6s  %-6s  %-5s  %-7s  %s\n", "Size", "Played", "Solved", "Best", "Average", "Last")
	fmt.Printf("  %-8s  %-6s  %-6s  %-5s  %-7s  %s\n", "----", "------", "------", "----", "-------", "----")

	for _, st := range all {
		fmt.Printf("  %-8s  %-6d  %-6d  %-5d  %-7.1f  %s\n",
			st.Shape, st.Played, st.Solved, st.BestMoves, st.AvgMoves, formatDate(st.LastPlayed))
	}
}

func formatDuration(d time.Duration) string {
	return d.Round(time.Second).String()
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	return t.Format("2006-01-02 15:04")
}
