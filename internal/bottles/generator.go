package bottles

import (
	"fmt"
	"slices"
	"sort"
)

// PuzzleConfig describes the shape of a puzzle.
type PuzzleConfig struct {
	Colors   int // Distinct colors, one full bottle each
	Capacity int // Units per bottle and per color
	Spare    int // Empty bottles added to the set
}

// Validate returns an error wrapping ErrInvalidConfig if c cannot be generated.
func (c PuzzleConfig) Validate() error {
	switch {
	case c.Colors < 2:
		return fmt.Errorf("%w: colors %d < 2", ErrInvalidConfig, c.Colors)
	case c.Colors > MaxColors:
		return fmt.Errorf("%w: colors %d > %d", ErrInvalidConfig, c.Colors, MaxColors)
	case c.Capacity < 2:
		return fmt.Errorf("%w: capacity %d < 2", ErrInvalidConfig, c.Capacity)
	case c.Spare < 1:
		return fmt.Errorf("%w: spare %d < 1", ErrInvalidConfig, c.Spare)
	}
	return nil
}

// Bottles returns the total number of bottles in the puzzle.
func (c PuzzleConfig) Bottles() int {
	return c.Colors + c.Spare
}

// Units returns the total number of liquid units in the puzzle.
func (c PuzzleConfig) Units() int {
	return c.Colors * c.Capacity
}

// GenParams configures the scramble and consolidation passes.
type GenParams struct {
	MixRounds int // Upper bound on scramble rounds
	MixTarget int // Stop once this many bottles are mixed (0 = MixRounds)

	// ReversibleOnly also reverts scramble units that could not be poured
	// back under Rules, keeping every scramble step undoable.
	ReversibleOnly bool

	// Rules used to decide whether a scramble step can be poured back.
	Rules Rules
}

// DefaultGenParams returns the parameters the game ships with.
func DefaultGenParams() GenParams {
	return GenParams{
		MixRounds: 1000,
	}
}

// GenStats reports what a generation run did.
type GenStats struct {
	Rounds       int // Scramble rounds executed
	UnitsMoved   int // Units left moved by the scramble
	Reverted     int // Scramble units put back by the no-undo rule
	Consolidated int // Units moved by the consolidation pass
	Mixed        int // Mixed bottles in the final set
}

// Generator builds scrambled puzzles.
type Generator struct {
	src    Source
	params GenParams
}

// NewGenerator creates a generator drawing randomness from src.
func NewGenerator(src Source, p GenParams) *Generator {
	if p.MixRounds < 0 {
		p.MixRounds = 0
	}
	return &Generator{src: src, params: p}
}

// Params returns the generator's parameters.
func (g *Generator) Params() GenParams {
	return g.params
}

// Generate returns a new puzzle using crypto randomness and default parameters.
func Generate(cfg PuzzleConfig) (BottleSet, error) {
	set, _, err := NewGenerator(NewCryptoSource(), DefaultGenParams()).Generate(cfg)
	return set, err
}

// Generate builds a puzzle for cfg:
//  1. one full bottle per color plus cfg.Spare empty bottles
//  2. shuffle bottle order
//  3. scramble with random pour-like moves
//  4. break up bottles that are still a single color
func (g *Generator) Generate(cfg PuzzleConfig) (BottleSet, GenStats, error) {
	var stats GenStats
	if err := cfg.Validate(); err != nil {
		return nil, stats, err
	}

	set := make(BottleSet, 0, cfg.Bottles())
	for _, c := range Palette(cfg.Colors) {
		b := make(Bottle, cfg.Capacity)
		for i := range b {
			b[i] = c
		}
		set = append(set, b)
	}
	for range cfg.Spare {
		set = append(set, make(Bottle, 0, cfg.Capacity))
	}

	if err := Shuffle(g.src, set); err != nil {
		return nil, stats, err
	}
	if err := g.scramble(set, cfg.Capacity, &stats); err != nil {
		return nil, stats, err
	}
	if err := g.consolidate(set, cfg.Capacity, &stats); err != nil {
		return nil, stats, err
	}

	stats.Mixed = set.MixedCount()
	return set, stats, nil
}

// scramble performs up to MixRounds random partial pours in place.
func (g *Generator) scramble(set BottleSet, capacity int, stats *GenStats) error {
	target := g.params.MixTarget
	if target <= 0 {
		target = g.params.MixRounds
	}

	prev := Move{Source: -1, Target: -1}
	for range g.params.MixRounds {
		targets := set.withFree(capacity)
		if len(targets) == 0 {
			break
		}
		stats.Rounds++

		dst, err := pick(g.src, targets)
		if err != nil {
			return err
		}
		sources := slices.DeleteFunc(set.nonEmpty(), func(i int) bool { return i == dst })
		if len(sources) == 0 {
			continue
		}
		src, err := pick(g.src, sources)
		if err != nil {
			return err
		}

		limit := min(set[src].TopRun(), set[dst].Free(capacity))
		n, err := g.src.Intn(limit)
		if err != nil {
			return err
		}

		for range n + 1 {
			moveUnits(set, src, dst, 1)
			stats.UnitsMoved++
			if g.revert(set, src, dst, capacity, prev) {
				moveUnits(set, dst, src, 1)
				stats.UnitsMoved--
				stats.Reverted++
				break
			}
		}

		prev = Move{Source: src, Target: dst}
		if set.MixedCount() >= target {
			break
		}
	}
	return nil
}

// revert reports whether the unit just moved src->dst must be put back.
func (g *Generator) revert(set BottleSet, src, dst, capacity int, prev Move) bool {
	undoable := g.params.Rules.CanPour(set, dst, src, capacity)
	tickTock := prev.Source == dst && prev.Target == src
	if tickTock && undoable {
		return true
	}
	return g.params.ReversibleOnly && !undoable
}

// consolidate empties single-color bottles into random bottles with room.
func (g *Generator) consolidate(set BottleSet, capacity int, stats *GenStats) error {
	var uniform []int
	for i, b := range set {
		if !b.IsEmpty() && b.IsUniform() {
			uniform = append(uniform, i)
		}
	}
	sort.SliceStable(uniform, func(a, b int) bool {
		return set[uniform[a]].Len() > set[uniform[b]].Len()
	})

	targets := set.withFree(capacity)
	if len(uniform) > len(targets) {
		uniform = uniform[:len(targets)]
	}

	for len(uniform) > 0 && len(targets) > 0 {
		u := uniform[0]
		uniform = uniform[1:]

		n, err := g.src.Intn(len(targets))
		if err != nil {
			return err
		}
		t := targets[n]
		targets = slices.Delete(targets, n, n+1)

		// A bottle that receives liquid is no longer a candidate.
		uniform = slices.DeleteFunc(uniform, func(i int) bool { return i == t })
		if t == u {
			continue
		}

		for !set[t].IsFull(capacity) && !set[u].IsEmpty() {
			moveUnits(set, u, t, 1)
			stats.Consolidated++
		}
	}
	return nil
}
