package engine

// Init applies a 9x9 grid of givens (row-major, 0 for unknown) to a fresh
// State. Each given is checked against the still-open candidate set before
// being applied, so two givens that collide on a row, column, or box are
// caught here rather than surfacing as a deduction-time contradiction.
func Init(givens [Total]int) (*State, Outcome) {
	s := NewState()
	for cell, v := range givens {
		if v == 0 {
			continue
		}
		if v < 1 || v > Size {
			return nil, GivensConflict("given digit out of range")
		}
		if !s.cand[cell].Has(v) {
			return nil, GivensConflict("conflicting givens")
		}
		setValue(s, cell, v)
	}
	s.MarkAllDirty()
	return s, Ok()
}
