package human

import "sudoku-api/internal/sudoku/engine"

// Candidates represents a bitmask of possible digits (1-9) for a Sudoku cell.
// Bit positions 1-9 correspond to digits 1-9. Bit 0 is unused. The bit
// layout and core operations are the box-scoped engine's own
// engine.Candidates; this type wraps it instead of re-deriving the same
// bitmask arithmetic, and adds the set-combinators (Union, Subtract, String,
// map conversions) the whole-grid technique library needs that the engine
// itself has no use for.
type Candidates engine.Candidates

// NewCandidates creates a Candidates bitmask from a slice of digits
func NewCandidates(digits []int) Candidates {
	return Candidates(engine.NewCandidates(digits))
}

// AllCandidates returns a Candidates with all digits 1-9 set
func AllCandidates() Candidates {
	return Candidates(engine.AllCandidates())
}

// Has returns true if the digit is a candidate
func (c Candidates) Has(digit int) bool {
	return engine.Candidates(c).Has(digit)
}

// Set adds a digit as a candidate and returns the new bitmask
func (c Candidates) Set(digit int) Candidates {
	return Candidates(engine.Candidates(c).Set(digit))
}

// Clear removes a digit from candidates and returns the new bitmask
func (c Candidates) Clear(digit int) Candidates {
	return Candidates(engine.Candidates(c).Clear(digit))
}

// Count returns the number of candidate digits
func (c Candidates) Count() int {
	return engine.Candidates(c).Count()
}

// Only returns the single digit if there's exactly one candidate,
// otherwise returns (0, false)
func (c Candidates) Only() (int, bool) {
	return engine.Candidates(c).Only()
}

// ToSlice returns the candidate digits as a sorted slice
func (c Candidates) ToSlice() []int {
	return engine.Candidates(c).ToSlice()
}

// IsEmpty returns true if there are no candidates
func (c Candidates) IsEmpty() bool {
	return engine.Candidates(c).IsEmpty()
}

// Intersect returns candidates that are present in both bitmasks
func (c Candidates) Intersect(other Candidates) Candidates {
	return Candidates(engine.Candidates(c).Intersect(engine.Candidates(other)))
}

// Union returns candidates that are present in either bitmask. Not needed by
// the box-scoped engine (it only ever narrows candidate sets), so it lives
// here rather than on engine.Candidates.
func (c Candidates) Union(other Candidates) Candidates {
	return c | other
}

// Subtract returns candidates that are in c but not in other. Same rationale
// as Union: a whole-grid technique library operation the engine never needs.
func (c Candidates) Subtract(other Candidates) Candidates {
	return c &^ other
}

// Equals returns true if the two candidate sets are identical
func (c Candidates) Equals(other Candidates) bool {
	return engine.Candidates(c).Equals(engine.Candidates(other))
}

// String returns a string representation for debugging
func (c Candidates) String() string {
	if c == 0 {
		return "{}"
	}

	digits := c.ToSlice()
	result := "{"
	for i, d := range digits {
		if i > 0 {
			result += ","
		}
		result += string('0' + rune(d))
	}
	result += "}"
	return result
}

// candidatesFromMap converts the old map[int]bool format to Candidates bitmask
func candidatesFromMap(m map[int]bool) Candidates {
	var c Candidates
	for digit, present := range m {
		if present && digit >= 1 && digit <= 9 {
			c = c.Set(digit)
		}
	}
	return c
}

// candidatesToMap converts Candidates bitmask to the old map[int]bool format
func candidatesToMap(c Candidates) map[int]bool {
	m := make(map[int]bool)
	for i := 1; i <= 9; i++ {
		if c.Has(i) {
			m[i] = true
		}
	}
	return m
}
