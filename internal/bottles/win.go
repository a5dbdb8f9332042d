package bottles

// IsSolved returns true if every bottle is filled to capacity with one color.
// Empty bottles do not count as solved, so a set with spare bottles and
// exactly capacity units per color can never satisfy this check.
func IsSolved(set BottleSet, capacity int) bool {
	for _, b := range set {
		if !b.IsSolved(capacity) {
			return false
		}
	}
	return true
}

// IsSorted returns true if every bottle is either empty or solved.
func IsSorted(set BottleSet, capacity int) bool {
	for _, b := range set {
		if !b.IsEmpty() && !b.IsSolved(capacity) {
			return false
		}
	}
	return true
}

// SolvedCount returns the number of bottles that are full and uniform.
func SolvedCount(set BottleSet, capacity int) int {
	n := 0
	for _, b := range set {
		if b.IsSolved(capacity) {
			n++
		}
	}
	return n
}
