package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/mixmate/internal/bottles"
	"github.com/vovakirdan/mixmate/internal/config"
	platterm "github.com/vovakirdan/mixmate/internal/platform/term"
	"github.com/vovakirdan/mixmate/internal/session"
	"github.com/vovakirdan/mixmate/internal/storage"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Solve a puzzle interactively",
	Long: `Start a puzzle and read moves from standard input.

Controls:
  3 5      - Pour bottle 3 into bottle 5
  3        - Pick bottle 3, then enter the target
  f mate   - Find bottles with mate on top
  r        - Restart with a new puzzle
  h        - Show help
  q        - Quit

Examples:
  mixmate play
  mixmate play --difficulty easy
  mixmate play --seed 42 --config ./my-mixmate.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func runPlay(cmd *cobra.Command, args []string) {
	logger := newLogger()

	cfg, err := loadConfig()
	if err != nil {
		exitf("loading config: %v", err)
	}

	sess, err := session.New(cfg, newSource(), session.WithLogger(logger))
	if err != nil {
		exitf("starting session: %v", err)
	}

	g := &game{
		sess:   sess,
		cfg:    cfg,
		out:    os.Stdout,
		prompt: term.IsTerminal(int(os.Stdin.Fd())),
		logger: logger,
	}

	// Results are optional: play continues without a database.
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("results will not be saved", "error", err)
	} else {
		defer store.Close()
		g.saver = store
		g.loadBest()
	}

	if err := g.run(os.Stdin); err != nil {
		exitf("%v", err)
	}
}

// resultSaver records finished sessions and reports the record to beat.
type resultSaver interface {
	SaveResult(r storage.Result) (int64, error)
	BestMoves(shape storage.Shape) (int, error)
}

// game is the line-based play loop around a session.
type game struct {
	sess   *session.Session
	cfg    config.Config
	out    io.Writer
	prompt bool
	saver  resultSaver
	logger *log.Logger
	saved  bool // Result of the current puzzle already recorded
	best   int  // Fewest moves of a solved puzzle of this shape, 0 if none
}

// run reads commands until quit or end of input. The current puzzle is
// recorded once it is won or abandoned.
func (g *game) run(in io.Reader) error {
	g.draw()

	scanner := bufio.NewScanner(in)
	for {
		if g.prompt {
			fmt.Fprint(g.out, "> ")
		}
		if !scanner.Scan() {
			break
		}
		if quit := g.handle(scanner.Text()); quit {
			g.save()
			return nil
		}
	}

	g.save()
	return scanner.Err()
}

// handle executes one input line and reports whether to quit.
func (g *game) handle(line string) bool {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return false
	}

	switch fields[0] {
	case "q", "quit", "exit":
		return true
	case "h", "help", "?":
		g.help()
		return false
	case "f", "find":
		g.find(fields[1:])
		return false
	case "r", "restart":
		g.save()
		if err := g.sess.Restart(); err != nil {
			fmt.Fprintf(g.out, "cannot restart: %v\n", err)
			return false
		}
		g.saved = false
		g.draw()
		return false
	}

	nums, err := parseBottles(fields)
	if err != nil {
		fmt.Fprintf(g.out, "%v (type h for help)\n", err)
		return false
	}

	switch len(nums) {
	case 1:
		g.click(nums[0])
	case 2:
		res, err := g.sess.Pour(nums[0], nums[1])
		g.report(bottles.Move{Source: nums[0], Target: nums[1]}, res, err)
	default:
		fmt.Fprintln(g.out, "enter one bottle to pick or two to pour")
	}
	return false
}

// click mirrors picking bottles one at a time.
func (g *game) click(i int) {
	stage, err := g.sess.Select(i)
	if err != nil {
		g.printErr(err)
		return
	}
	if stage != session.StageStaged {
		g.draw()
		return
	}

	src, dst := g.sess.Selection()
	res, err := g.sess.Commit()
	g.sess.Release()
	g.report(bottles.Move{Source: src, Target: dst}, res, err)
}

// report prints the outcome of a pour and the new board.
func (g *game) report(m bottles.Move, res bottles.PourResult, err error) {
	if err != nil {
		g.printErr(err)
		return
	}
	if !res.Moved() {
		fmt.Fprintf(g.out, "cannot pour %s: %s\n", m, res.Blocked)
		return
	}

	g.draw()
	if g.sess.Won() {
		fmt.Fprintf(g.out, "Solved in %d moves (%s)! Type r for a new puzzle or q to quit.\n",
			g.sess.Moves(), g.sess.Elapsed().Round(time.Second))
		g.save()
	}
}

func (g *game) printErr(err error) {
	switch {
	case errors.Is(err, session.ErrSolved):
		fmt.Fprintln(g.out, "already solved, type r for a new puzzle")
	case errors.Is(err, bottles.ErrInvalidMove):
		fmt.Fprintf(g.out, "invalid move: bottles are numbered 1 to %d\n", len(g.sess.Bottles()))
	default:
		fmt.Fprintf(g.out, "error: %v\n", err)
	}
}

// draw prints the bottles, the pick marker and the status line.
func (g *game) draw() {
	set := g.sess.Bottles()
	src, _ := g.sess.Selection()
	capacity := g.sess.Capacity()

	fmt.Fprintln(g.out)
	fmt.Fprintln(g.out, platterm.Render(set, capacity, renderOptions(g.cfg, src)))
	status := platterm.Status(g.sess.Moves(), bottles.SolvedCount(set, capacity), len(set))
	if g.best > 0 {
		status += fmt.Sprintf("  best: %d", g.best)
	}
	fmt.Fprintln(g.out, status)
}

// find lists the bottles whose top unit has the named color.
func (g *game) find(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(g.out, "usage: f <color>")
		return
	}
	color, ok := bottles.ParseColor(args[0])
	if !ok || int(color) >= g.cfg.Puzzle.Colors {
		fmt.Fprintf(g.out, "unknown color %q\n", args[0])
		return
	}

	var found []string
	for i, b := range g.sess.Bottles() {
		if top, ok := b.Top(); ok && top == color {
			found = append(found, strconv.Itoa(i+1))
		}
	}
	if len(found) == 0 {
		fmt.Fprintf(g.out, "no bottle has %s on top\n", color)
		return
	}
	fmt.Fprintf(g.out, "%s on top: %s\n", color, strings.Join(found, " "))
}

func (g *game) help() {
	fmt.Fprintln(g.out, "pour: <from> <to>   pick: <bottle>   find: f <color>   r: restart   q: quit")
	fmt.Fprintln(g.out, platterm.Legend(g.cfg.Puzzle.Colors, renderOptions(g.cfg, -1)))
}

// save records the current puzzle once. Puzzles without moves are skipped,
// including ones generated already sorted.
func (g *game) save() {
	if g.saved || g.saver == nil {
		return
	}
	if g.sess.Moves() == 0 {
		return
	}

	r := g.sess.Result()
	id, err := g.saver.SaveResult(r)
	if err != nil {
		g.logger.Warn("cannot save result", "error", err)
		return
	}
	g.saved = true
	g.logger.Debug("saved result", "id", id, "moves", r.Moves, "solved", r.Solved)
	if r.Solved {
		g.loadBest()
	}
}

// loadBest refreshes the record for the current puzzle shape.
func (g *game) loadBest() {
	best, err := g.saver.BestMoves(g.sess.Result().Shape())
	if err != nil {
		g.logger.Warn("cannot load best result", "error", err)
		return
	}
	g.best = best
}

// parseBottles converts 1-based bottle numbers to indices.
func parseBottles(fields []string) ([]int, error) {
	nums := make([]int, 0, len(fields))
	for _, f := range fields {
		n, err := strconv.Atoi(f)
		if err != nil {
			return nil, fmt.Errorf("unknown command %q", f)
		}
		nums = append(nums, n-1)
	}
	return nums, nil
}
