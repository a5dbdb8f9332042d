// Package session holds the interaction state of one player working on a
// puzzle: the current bottles, the pending source/target selection and the
// busy flag that locks input while a pour is being presented.
//
// A pour goes through three commit points so a presentation layer can add
// its own delays between them:
//
//	Select(src), Select(dst)  stage the pour and lock input
//	Commit()                  apply the pour and evaluate the win rule
//	Release()                 clear the selection and unlock input
package session

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/vovakirdan/mixmate/internal/bottles"
	"github.com/vovakirdan/mixmate/internal/config"
	"github.com/vovakirdan/mixmate/internal/storage"
)

var (
	// ErrBusy is returned while a staged pour has not been released.
	ErrBusy = errors.New("session: pour in progress")
	// ErrNotStaged is returned by Commit when no pour is staged.
	ErrNotStaged = errors.New("session: no pour staged")
	// ErrSolved is returned when selecting bottles after the puzzle is won.
	ErrSolved = errors.New("session: puzzle already solved")
)

// Stage is the selection state after a click.
type Stage int

const (
	StageIdle   Stage = iota // Nothing selected
	StageSource              // Source picked, waiting for target
	StageStaged              // Pour staged, input locked until Release
)

// String returns the stage name.
func (s Stage) String() string {
	switch s {
	case StageIdle:
		return "idle"
	case StageSource:
		return "source"
	case StageStaged:
		return "staged"
	default:
		return "unknown"
	}
}

const none = -1

// Session is a single play-through. It is not safe for concurrent use;
// the busy flag only serializes one caller's pour sequence.
type Session struct {
	cfg    config.Config
	gen    *bottles.Generator
	rules  bottles.Rules
	won    func(bottles.BottleSet, int) bool
	clock  quartz.Clock
	logger *log.Logger

	set      bottles.BottleSet
	stats    bottles.GenStats
	source   int
	target   int
	busy     bool
	moves    int
	solved   bool
	started  time.Time
	finished time.Time
}

// Option configures a Session.
type Option func(*Session)

// WithClock sets the clock used to time the session.
func WithClock(c quartz.Clock) Option {
	return func(s *Session) {
		s.clock = c
	}
}

// WithLogger sets the logger for session events.
func WithLogger(l *log.Logger) Option {
	return func(s *Session) {
		s.logger = l
	}
}

// New validates cfg and starts a session on a freshly generated puzzle.
func New(cfg config.Config, src bottles.Source, opts ...Option) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	s := &Session{
		cfg:    cfg,
		gen:    bottles.NewGenerator(src, cfg.GenParams()),
		rules:  cfg.Rules(),
		won:    cfg.Play.WinRule.Check(),
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		source: none,
		target: none,
	}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.Restart(); err != nil {
		return nil, err
	}
	return s, nil
}

// Restart discards the current puzzle and generates a new one.
// A puzzle that already satisfies the win rule is regenerated, up to
// play.restart_attempts times.
func (s *Session) Restart() error {
	puzzle := s.cfg.ToPuzzle()

	var (
		set   bottles.BottleSet
		stats bottles.GenStats
		err   error
	)
	for attempt := 1; ; attempt++ {
		set, stats, err = s.gen.Generate(puzzle)
		if err != nil {
			return fmt.Errorf("session: generate puzzle: %w", err)
		}
		if !s.won(set, puzzle.Capacity) || attempt >= s.cfg.Play.RestartAttempts {
			break
		}
		s.logger.Debug("regenerating already solved puzzle", "attempt", attempt)
	}

	s.set = set
	s.stats = stats
	s.source, s.target = none, none
	s.busy = false
	s.moves = 0
	s.solved = s.won(set, puzzle.Capacity)
	s.started = s.clock.Now()
	s.finished = time.Time{}

	s.logger.Debug("generated puzzle",
		"colors", puzzle.Colors,
		"capacity", puzzle.Capacity,
		"spare", puzzle.Spare,
		"rounds", stats.Rounds,
		"moved", stats.UnitsMoved,
		"reverted", stats.Reverted,
		"consolidated", stats.Consolidated,
		"mixed", stats.Mixed,
	)
	return nil
}

// Select handles a click on bottle i and returns the resulting stage.
// Clicking the selected source again clears it.
func (s *Session) Select(i int) (Stage, error) {
	if s.busy {
		return StageStaged, ErrBusy
	}
	if s.solved {
		return StageIdle, ErrSolved
	}
	if i < 0 || i >= len(s.set) {
		return s.stage(), fmt.Errorf("%w: bottle %d out of range [0, %d)", bottles.ErrInvalidMove, i, len(s.set))
	}

	switch {
	case s.source == none:
		s.source = i
		return StageSource, nil
	case s.source == i:
		s.source = none
		return StageIdle, nil
	default:
		s.target = i
		s.busy = true
		return StageStaged, nil
	}
}

// Commit applies the staged pour. Input stays locked until Release.
func (s *Session) Commit() (bottles.PourResult, error) {
	if !s.busy {
		return bottles.PourResult{}, ErrNotStaged
	}

	capacity := s.cfg.Puzzle.Capacity
	next, res, err := s.rules.Pour(s.set, s.source, s.target, capacity)
	if err != nil {
		return res, err
	}
	s.set = next

	move := bottles.Move{Source: s.source, Target: s.target}
	if !res.Moved() {
		s.logger.Debug("pour blocked", "move", move, "reason", res.Blocked)
		return res, nil
	}

	s.moves++
	s.logger.Debug("poured", "move", move, "units", res.Poured, "color", res.Color)

	if s.won(s.set, capacity) {
		s.solved = true
		s.finished = s.clock.Now()
		s.logger.Info("puzzle solved", "moves", s.moves, "elapsed", s.Elapsed().Round(time.Millisecond))
	}
	return res, nil
}

// Release clears the selection and unlocks input.
func (s *Session) Release() {
	s.source, s.target = none, none
	s.busy = false
}

// Pour runs a complete select, select, commit, release sequence.
// Any partial selection is discarded first.
func (s *Session) Pour(source, target int) (bottles.PourResult, error) {
	if s.busy {
		return bottles.PourResult{}, ErrBusy
	}
	if err := s.set.CheckMove(bottles.Move{Source: source, Target: target}); err != nil {
		return bottles.PourResult{}, err
	}

	s.Release()
	if _, err := s.Select(source); err != nil {
		return bottles.PourResult{}, err
	}
	if _, err := s.Select(target); err != nil {
		s.Release()
		return bottles.PourResult{}, err
	}
	defer s.Release()
	return s.Commit()
}

// stage derives the current stage from the selection.
func (s *Session) stage() Stage {
	switch {
	case s.busy:
		return StageStaged
	case s.source != none:
		return StageSource
	default:
		return StageIdle
	}
}

// Selection returns the selected source and target, -1 when unset.
func (s *Session) Selection() (source, target int) {
	return s.source, s.target
}

// Stage returns the current selection stage.
func (s *Session) Stage() Stage {
	return s.stage()
}

// Bottles returns a copy of the current bottles.
func (s *Session) Bottles() bottles.BottleSet {
	return s.set.Clone()
}

// Capacity returns the bottle capacity of the puzzle.
func (s *Session) Capacity() int {
	return s.cfg.Puzzle.Capacity
}

// GenStats returns the statistics of the current puzzle's generation.
func (s *Session) GenStats() bottles.GenStats {
	return s.stats
}

// Moves returns the number of pours that moved liquid.
func (s *Session) Moves() int {
	return s.moves
}

// Busy reports whether input is locked by a staged pour.
func (s *Session) Busy() bool {
	return s.busy
}

// Won reports whether the puzzle satisfies the win rule.
func (s *Session) Won() bool {
	return s.solved
}

// Elapsed returns the play time, frozen once the puzzle is won.
func (s *Session) Elapsed() time.Duration {
	if s.solved && !s.finished.IsZero() {
		return s.finished.Sub(s.started)
	}
	return s.clock.Since(s.started)
}

// Result summarizes the session for the result history.
func (s *Session) Result() storage.Result {
	return storage.Result{
		Colors:   s.cfg.Puzzle.Colors,
		Capacity: s.cfg.Puzzle.Capacity,
		Spare:    s.cfg.Puzzle.Spare,
		Moves:    s.moves,
		Duration: s.Elapsed(),
		Solved:   s.solved,
	}
}
