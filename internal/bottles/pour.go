package bottles

import "fmt"

// BlockReason explains why a legal pour moved nothing.
type BlockReason uint8

const (
	BlockNone BlockReason = iota
	BlockEmptySource
	BlockTargetFull
	BlockColorMismatch
	BlockRunTooLong // only under Rules.WholeRun
)

// String returns a short description of the reason.
func (r BlockReason) String() string {
	switch r {
	case BlockNone:
		return "none"
	case BlockEmptySource:
		return "source is empty"
	case BlockTargetFull:
		return "target is full"
	case BlockColorMismatch:
		return "colors do not match"
	case BlockRunTooLong:
		return "run does not fit in target"
	default:
		return "unknown"
	}
}

// PourResult describes the outcome of a pour.
type PourResult struct {
	Poured  int         // Units moved from source to target
	Color   Color       // Color of the moved run; valid when Poured > 0
	Blocked BlockReason // Why nothing moved; BlockNone when Poured > 0
}

// Moved returns true if any liquid changed bottles.
func (r PourResult) Moved() bool {
	return r.Poured > 0
}

// Rules selects between pour rule variants.
type Rules struct {
	// WholeRun refuses a pour unless the entire top run fits in the target.
	// When false, the run is truncated by the target's free space.
	WholeRun bool
}

// DefaultRules allow partial transfer of a run.
var DefaultRules = Rules{}

// Pour moves the top run of source onto target under DefaultRules.
func Pour(set BottleSet, source, target, capacity int) (BottleSet, PourResult, error) {
	return DefaultRules.Pour(set, source, target, capacity)
}

// Pour moves the top run of source onto target and returns the new set.
// The input set is never modified. Out-of-range or equal indices return an
// error wrapping ErrInvalidMove; a legal pour that cannot move anything
// returns an unchanged copy with PourResult.Blocked set.
func (r Rules) Pour(set BottleSet, source, target, capacity int) (BottleSet, PourResult, error) {
	if capacity < 1 {
		return nil, PourResult{}, fmt.Errorf("%w: capacity %d < 1", ErrInvalidConfig, capacity)
	}
	if err := set.CheckMove(Move{Source: source, Target: target}); err != nil {
		return nil, PourResult{}, err
	}

	out := set.Clone()
	return out, r.apply(out, source, target, capacity), nil
}

// CanPour reports whether pouring source onto target would move anything.
// Invalid indices report false.
func (r Rules) CanPour(set BottleSet, source, target, capacity int) bool {
	if set.CheckMove(Move{Source: source, Target: target}) != nil {
		return false
	}
	_, reason := r.check(set, source, target, capacity)
	return reason == BlockNone
}

// check returns how many units a pour would move, or why it is blocked.
func (r Rules) check(set BottleSet, source, target, capacity int) (int, BlockReason) {
	src, dst := set[source], set[target]

	color, ok := src.Top()
	if !ok {
		return 0, BlockEmptySource
	}
	if dst.IsFull(capacity) {
		return 0, BlockTargetFull
	}
	if top, ok := dst.Top(); ok && top != color {
		return 0, BlockColorMismatch
	}

	run := src.TopRun()
	if r.WholeRun && dst.Len()+run > capacity {
		return 0, BlockRunTooLong
	}
	return min(run, dst.Free(capacity)), BlockNone
}

// apply performs the pour on set in place.
func (r Rules) apply(set BottleSet, source, target, capacity int) PourResult {
	n, reason := r.check(set, source, target, capacity)
	if reason != BlockNone {
		return PourResult{Blocked: reason}
	}

	color, _ := set[source].Top()
	moveUnits(set, source, target, n)
	return PourResult{Poured: n, Color: color}
}

// moveUnits transfers the top n units of source onto target without checks.
func moveUnits(set BottleSet, source, target, n int) {
	src := set[source]
	cut := len(src) - n
	set[target] = append(set[target], src[cut:]...)
	set[source] = src[:cut]
}
