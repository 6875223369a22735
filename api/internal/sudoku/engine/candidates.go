package engine

// Candidates is a bitmask of possible digits (1-9) for a cell. Bit position d
// holds digit d; bit 0 is unused. Mirrors the bitmask used by the human
// technique package, but kept local so the engine has no dependency on it.
type Candidates uint16

// NewCandidates builds a bitmask from a slice of digits.
func NewCandidates(digits []int) Candidates {
	var c Candidates
	for _, d := range digits {
		c = c.Set(d)
	}
	return c
}

// AllCandidates returns a bitmask with every digit 1-9 set.
func AllCandidates() Candidates {
	return Candidates(0b1111111110)
}

func (c Candidates) Has(digit int) bool {
	if digit < 1 || digit > Size {
		return false
	}
	return c&(1<<digit) != 0
}

func (c Candidates) Set(digit int) Candidates {
	if digit < 1 || digit > Size {
		return c
	}
	return c | (1 << digit)
}

func (c Candidates) Clear(digit int) Candidates {
	if digit < 1 || digit > Size {
		return c
	}
	return c &^ (1 << digit)
}

func (c Candidates) Count() int {
	count := 0
	for i := 1; i <= Size; i++ {
		if c&(1<<i) != 0 {
			count++
		}
	}
	return count
}

// Only returns the single candidate digit, or (0, false) if count != 1.
func (c Candidates) Only() (int, bool) {
	if c.Count() != 1 {
		return 0, false
	}
	for i := 1; i <= Size; i++ {
		if c&(1<<i) != 0 {
			return i, true
		}
	}
	return 0, false
}

func (c Candidates) ToSlice() []int {
	var result []int
	for i := 1; i <= Size; i++ {
		if c&(1<<i) != 0 {
			result = append(result, i)
		}
	}
	return result
}

func (c Candidates) IsEmpty() bool {
	return c == 0
}

func (c Candidates) Intersect(other Candidates) Candidates {
	return c & other
}

func (c Candidates) Equals(other Candidates) bool {
	return c == other
}
