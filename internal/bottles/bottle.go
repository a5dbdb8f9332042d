package bottles

import (
	"fmt"
	"strings"
)

// Bottle is a stack of color units, bottom first.
type Bottle []Color

// Len returns the number of units in the bottle.
func (b Bottle) Len() int {
	return len(b)
}

// IsEmpty returns true if the bottle holds no liquid.
func (b Bottle) IsEmpty() bool {
	return len(b) == 0
}

// Top returns the top unit. ok is false for an empty bottle.
func (b Bottle) Top() (c Color, ok bool) {
	if len(b) == 0 {
		return 0, false
	}
	return b[len(b)-1], true
}

// TopRun returns the length of the same-colored run at the top.
func (b Bottle) TopRun() int {
	if len(b) == 0 {
		return 0
	}
	top := b[len(b)-1]
	run := 0
	for i := len(b) - 1; i >= 0 && b[i] == top; i-- {
		run++
	}
	return run
}

// Free returns how many units still fit under the given capacity.
func (b Bottle) Free(capacity int) int {
	return max(0, capacity-len(b))
}

// IsFull reports whether the bottle is at capacity.
func (b Bottle) IsFull(capacity int) bool {
	return len(b) >= capacity
}

// IsUniform returns true if every unit has the same color.
// An empty bottle is uniform.
func (b Bottle) IsUniform() bool {
	for i := 1; i < len(b); i++ {
		if b[i] != b[0] {
			return false
		}
	}
	return true
}

// IsSolved returns true if the bottle is uniform and filled to capacity.
func (b Bottle) IsSolved(capacity int) bool {
	return len(b) == capacity && b.IsUniform()
}

// Clone returns a copy that shares no memory with b.
func (b Bottle) Clone() Bottle {
	out := make(Bottle, len(b))
	copy(out, b)
	return out
}

// Equal compares two bottles unit by unit.
func (b Bottle) Equal(o Bottle) bool {
	if len(b) != len(o) {
		return false
	}
	for i := range b {
		if b[i] != o[i] {
			return false
		}
	}
	return true
}

// String renders the bottle as color chars, bottom first, e.g. "[MMW]".
func (b Bottle) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for _, c := range b {
		sb.WriteRune(c.Char())
	}
	sb.WriteByte(']')
	return sb.String()
}

// BottleSet is an ordered collection of bottles. Order is display identity only.
type BottleSet []Bottle

// Move is a pour request between two bottle indices.
type Move struct {
	Source int
	Target int
}

// String returns the move as 1-based indices, the way players type them.
func (m Move) String() string {
	return fmt.Sprintf("%d->%d", m.Source+1, m.Target+1)
}

// Clone creates a deep copy of the set.
func (s BottleSet) Clone() BottleSet {
	out := make(BottleSet, len(s))
	for i, b := range s {
		out[i] = b.Clone()
	}
	return out
}

// Equal compares two sets bottle by bottle.
func (s BottleSet) Equal(o BottleSet) bool {
	if len(s) != len(o) {
		return false
	}
	for i := range s {
		if !s[i].Equal(o[i]) {
			return false
		}
	}
	return true
}

// Units returns the total unit count across all bottles.
func (s BottleSet) Units() int {
	total := 0
	for _, b := range s {
		total += len(b)
	}
	return total
}

// CountByColor returns the number of units of each color.
func (s BottleSet) CountByColor() map[Color]int {
	counts := make(map[Color]int)
	for _, b := range s {
		for _, c := range b {
			counts[c]++
		}
	}
	return counts
}

// MixedCount returns the number of bottles holding more than one color.
func (s BottleSet) MixedCount() int {
	n := 0
	for _, b := range s {
		if !b.IsUniform() {
			n++
		}
	}
	return n
}

// CheckMove returns an error wrapping ErrInvalidMove if m cannot be applied to s.
func (s BottleSet) CheckMove(m Move) error {
	if m.Source < 0 || m.Source >= len(s) {
		return fmt.Errorf("%w: source %d out of range [0, %d)", ErrInvalidMove, m.Source, len(s))
	}
	if m.Target < 0 || m.Target >= len(s) {
		return fmt.Errorf("%w: target %d out of range [0, %d)", ErrInvalidMove, m.Target, len(s))
	}
	if m.Source == m.Target {
		return fmt.Errorf("%w: source and target are both %d", ErrInvalidMove, m.Source)
	}
	return nil
}

// withFree returns indices of bottles that have room under capacity.
func (s BottleSet) withFree(capacity int) []int {
	idx := make([]int, 0, len(s))
	for i, b := range s {
		if len(b) < capacity {
			idx = append(idx, i)
		}
	}
	return idx
}

// nonEmpty returns indices of bottles that hold liquid.
func (s BottleSet) nonEmpty() []int {
	idx := make([]int, 0, len(s))
	for i, b := range s {
		if len(b) > 0 {
			idx = append(idx, i)
		}
	}
	return idx
}

// String renders the set on one line, e.g. "[MMW] [] [WWM]".
func (s BottleSet) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = b.String()
	}
	return strings.Join(parts, " ")
}
