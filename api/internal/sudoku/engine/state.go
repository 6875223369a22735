// Package engine implements the box-scoped logical deduction engine: a
// dirty-box work queue driving naked/hidden singles, naked/hidden pairs,
// box-line reduction, and pointing pairs, wrapped in a recursive
// guess-and-check fallback, in sequential, independent-parallel, and
// coordinated-parallel variants.
//
// For the move-by-move, whole-grid technique library used by the hint UI,
// see the sibling human package; this package is the hard-engineering core.
package engine

// Grid geometry. The engine is specified for 9x9 / 3x3-box Sudoku only.
const (
	Size    = 9 // cells per row/column
	BoxSize = 3 // cells per box edge
	Boxes   = 3 // boxes per axis (Boxes*BoxSize == Size)
	Total   = Size * Size
)

// idx converts a (row, col) pair into a flat cell index.
func idx(row, col int) int { return row*Size + col }

func rowOf(i int) int { return i / Size }
func colOf(i int) int { return i % Size }

// boxOfRow/boxOfCol give the box coordinate (0..Boxes) owning a row or column.
func boxOfRow(row int) int { return row / BoxSize }
func boxOfCol(col int) int { return col / BoxSize }

// DirtyKind distinguishes a box's row-band dirty flag from its column-stack
// dirty flag.
type DirtyKind int

const (
	DirtyRow DirtyKind = iota
	DirtyCol
)

// DirtyMark names one box's row-band or column-stack as needing
// re-examination. Strategies that eliminate candidates in a foreign box
// (pointing, and the Rows/Cols variants of naked and hidden pairs) return these instead of mutating the foreign box's
// flags directly, per the "explicit messages" design note: the scheduler is
// the only thing that writes dirty flags.
type DirtyMark struct {
	By, Bx int
	Kind   DirtyKind
}

// State is the mutable pair (values, candidates) for one solve attempt,
// plus the per-box dirty flags that drive the Box Scheduler and, in the
// parallel variants, the per-box/line lock counters.
//
// A State is exclusively owned by one logical solve attempt; the Guess
// Driver deep-copies it before branching. Parallel workers within a single
// solve attempt share one State and coordinate via the counters below.
type State struct {
	value [Total]int
	cand  [Total]Candidates

	rowDirty [Boxes][Boxes]bool // rowDirty[by][bx]: box's row band needs a pass
	colDirty [Boxes][Boxes]bool // colDirty[by][bx]: box's column stack needs a pass

	// Parallel-only. Zero value is safe for sequential use: the counters are
	// simply never touched.
	boxWriters [Boxes][Boxes]int32
	rowReaders [Boxes]int32
	colReaders [Boxes]int32
}

// NewState returns an empty grid state (all cells unknown, all candidates
// open, nothing dirtied). Used directly only by tests; real solves go
// through Init.
func NewState() *State {
	s := &State{}
	for i := range s.cand {
		s.cand[i] = AllCandidates()
	}
	return s
}

// Clone deep-copies values and candidates for the Guess Driver. Dirty flags
// and lock counters are NOT copied: the child starts fully dirtied, as
// spec'd, and parallel lock state is meaningless outside the parent's
// in-flight workers.
func (s *State) Clone() *State {
	c := &State{}
	c.value = s.value
	c.cand = s.cand
	return c
}

// MarkAllDirty sets every box's row and column dirty flags. Used by Init and
// by the Guess Driver when it hands a freshly-copied child to a scheduler.
func (s *State) MarkAllDirty() {
	for by := 0; by < Boxes; by++ {
		for bx := 0; bx < Boxes; bx++ {
			s.rowDirty[by][bx] = true
			s.colDirty[by][bx] = true
		}
	}
}

// Value returns the known digit at (row, col), or 0 if unknown.
func (s *State) Value(row, col int) int { return s.value[idx(row, col)] }

// CandidateCount returns how many digits are still possible at (row, col).
func (s *State) CandidateCount(row, col int) int { return s.cand[idx(row, col)].Count() }

// HasCandidate reports whether digit is still possible at (row, col).
func (s *State) HasCandidate(row, col, digit int) bool { return s.cand[idx(row, col)].Has(digit) }

// IsSolved reports whether every cell holds a known digit. Does not
// re-validate Sudoku rules: a State can only reach an invalid fully-filled
// configuration through a bug elsewhere, since setValue maintains I1-I4.
func (s *State) IsSolved() bool {
	for _, v := range s.value {
		if v == 0 {
			return false
		}
	}
	return true
}

// Grid returns the current values as a row-major 81-length slice, known and
// unknown cells alike (0 for unknown). Safe to call on a partially solved or
// contradictory state for diagnostics.
func (s *State) Grid() []int {
	out := make([]int, Total)
	copy(out, s.value[:])
	return out
}

// setValue is the single place that writes a known digit and retracts every
// candidate it invalidates, across the full row, column, and box — not just
// the local box. Centralising the elimination here (rather than relying on
// a box-local updateCandidatesBox pass, as the source's sequential solver
// does but its parallel variants don't) is what keeps the three Orchestrator
// variants consistent: see the Open Question in DESIGN.md.
//
// Per the ordering guarantee in §5, candidates are retracted before the
// value is published so a concurrent reader never observes a known value
// whose peer candidates haven't been cleared yet.
func setValue(s *State, cell, digit int) Outcome {
	row, col := rowOf(cell), colOf(cell)
	boxR, boxC := boxOfRow(row)*BoxSize, boxOfCol(col)*BoxSize

	for c := 0; c < Size; c++ {
		if c == col {
			continue
		}
		peer := idx(row, c)
		s.cand[peer] = s.cand[peer].Clear(digit)
	}
	for r := 0; r < Size; r++ {
		if r == row {
			continue
		}
		peer := idx(r, col)
		s.cand[peer] = s.cand[peer].Clear(digit)
	}
	for r := boxR; r < boxR+BoxSize; r++ {
		for c := boxC; c < boxC+BoxSize; c++ {
			peer := idx(r, c)
			if peer == cell {
				continue
			}
			s.cand[peer] = s.cand[peer].Clear(digit)
		}
	}

	s.cand[cell] = NewCandidates([]int{digit})
	s.value[cell] = digit
	return Ok()
}
