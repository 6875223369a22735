package engine

// This file holds the box-scoped deduction procedures. Every strategy here
// is a pure function of one State plus the (by, bx) coordinate of the box
// it is scoped to: it may set values or eliminate candidates inside that
// box freely, and may eliminate candidates in a foreign box only through
// the Rows/Cols region variants, in which case it reports the foreign box
// coordinates it touched instead of mutating that box's dirty flags
// directly — the scheduler is the only thing that writes dirty flags.

// strategyResult is what every strategy procedure returns: whether it
// changed anything, which foreign boxes it reached into (Rows/Cols variants
// only), and whether it detected a contradiction.
type strategyResult struct {
	changed bool
	foreign []DirtyMark
	outcome Outcome
}

func ok(changed bool, foreign ...DirtyMark) strategyResult {
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

func bad(o Outcome) strategyResult {
	return strategyResult{outcome: o}
}

// cellsInRow returns the 9 cell indices of a full row.
func cellsInRow(row int) []int {
	out := make([]int, 0, Size)
	for c := 0; c < Size; c++ {
		out = append(out, idx(row, c))
	}
	return out
}

// cellsInCol returns the 9 cell indices of a full column.
func cellsInCol(col int) []int {
	out := make([]int, 0, Size)
	for r := 0; r < Size; r++ {
		out = append(out, idx(r, col))
	}
	return out
}

// cellsInBox returns the 9 cell indices of box (by, bx).
func cellsInBox(by, bx int) []int {
	out := make([]int, 0, Size)
	r0, c0 := by*BoxSize, bx*BoxSize
	for r := r0; r < r0+BoxSize; r++ {
		for c := c0; c < c0+BoxSize; c++ {
			out = append(out, idx(r, c))
		}
	}
	return out
}

// rowsOfBox returns the three absolute row indices spanned by box (by, bx).
func rowsOfBox(by int) [BoxSize]int {
	var rows [BoxSize]int
	for i := 0; i < BoxSize; i++ {
		rows[i] = by*BoxSize + i
	}
	return rows
}

// colsOfBox returns the three absolute column indices spanned by box (by, bx).
func colsOfBox(bx int) [BoxSize]int {
	var cols [BoxSize]int
	for i := 0; i < BoxSize; i++ {
		cols[i] = bx*BoxSize + i
	}
	return cols
}

// foreignMark reports the dirty mark a foreign-box elimination at cell
// should produce, given the scanning region's kind. Returns ok=false if
// cell actually belongs to (by, bx) itself (not foreign).
func foreignMark(by, bx, cell int, kind DirtyKind) (DirtyMark, bool) {
	row, col := rowOf(cell), colOf(cell)
	switch kind {
	case DirtyRow:
		fbx := boxOfCol(col)
		if boxOfRow(row) == by && fbx == bx {
			return DirtyMark{}, false
		}
		return DirtyMark{By: by, Bx: fbx, Kind: DirtyRow}, true
	default: // DirtyCol
		fby := boxOfRow(row)
		if fby == by && boxOfCol(col) == bx {
			return DirtyMark{}, false
		}
		return DirtyMark{By: fby, Bx: bx, Kind: DirtyCol}, true
	}
}

// nakedSingles sets the value of any unknown cell in the box whose
// candidate set has collapsed to exactly one digit. A cell with zero
// candidates is a contradiction.
func nakedSingles(s *State, by, bx int) strategyResult {
	changed := false
	for _, cell := range cellsInBox(by, bx) {
		if s.value[cell] != 0 {
			continue
		}
		if s.cand[cell].IsEmpty() {
			return bad(Contradiction("empty candidate set"))
		}
		if v, only := s.cand[cell].Only(); only {
			setValue(s, cell, v)
			changed = true
		}
	}
	return ok(changed)
}

// regionCellsBox returns the cell indices of the scanning region used by a
// Rows/Cols/Box-variant strategy invoked for box (by, bx): the row band's
// three rows combined into per-row regions is not what's wanted here —
// each Rows-variant call below operates one full row at a time, one
// Cols-variant call one full column at a time, so this helper is only used
// for the Box variant, which has a single region.
func regionCellsBox(by, bx int) []int { return cellsInBox(by, bx) }

// hiddenSinglesBox, hiddenSinglesRows, hiddenSinglesCols: for each unknown
// cell in the box and each candidate digit present there, if no other cell
// in the region (the box itself / the cell's full row / the cell's full
// column) also carries that candidate, the digit must go there.
func hiddenSinglesBox(s *State, by, bx int) strategyResult {
	return hiddenSinglesRegion(s, by, bx, regionCellsBox(by, bx), DirtyRow /* unused, box has no foreign reach */, false)
}

func hiddenSinglesRows(s *State, by, bx int) strategyResult {
	var foreign []DirtyMark
	changed := false
	for _, row := range rowsOfBox(by) {
		region := cellsInRow(row)
		res := hiddenSinglesRegion(s, by, bx, region, DirtyRow, true)
		if !res.outcome.IsOk() {
			return res
		}
		changed = changed || res.changed
		foreign = append(foreign, res.foreign...)
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

func hiddenSinglesCols(s *State, by, bx int) strategyResult {
	var foreign []DirtyMark
	changed := false
	for _, col := range colsOfBox(bx) {
		region := cellsInCol(col)
		res := hiddenSinglesRegion(s, by, bx, region, DirtyCol, true)
		if !res.outcome.IsOk() {
			return res
		}
		changed = changed || res.changed
		foreign = append(foreign, res.foreign...)
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

// hiddenSinglesRegion does the actual work for one region (a box, or one
// row, or one column). It only *sets* cells that lie within (by, bx), per
// the strategy contract, but scans the whole region for exclusivity.
func hiddenSinglesRegion(s *State, by, bx int, region []int, kind DirtyKind, reachesForeign bool) strategyResult {
	boxCells := cellsInBox(by, bx)
	inBox := func(c int) bool {
		for _, b := range boxCells {
			if b == c {
				return true
			}
		}
		return false
	}
	changed := false
	for _, cell := range region {
		if !inBox(cell) || s.value[cell] != 0 {
			continue
		}
		for _, d := range s.cand[cell].ToSlice() {
			exclusive := true
			for _, other := range region {
				if other == cell || s.value[other] != 0 {
					continue
				}
				if s.cand[other].Has(d) {
					exclusive = false
					break
				}
			}
			if exclusive {
				setValue(s, cell, d)
				changed = true
				break
			}
		}
	}
	_ = reachesForeign // hidden singles only sets inside the box; nothing foreign to report
	return ok(changed)
}

// nakedPairsBox, nakedPairsRows, nakedPairsCols: an unknown cell in the box
// with <=2 candidates that exactly matches another cell's candidate set in
// the region eliminates that set from every other cell in the region.
func nakedPairsBox(s *State, by, bx int) strategyResult {
	return nakedPairsRegion(s, by, bx, regionCellsBox(by, bx), DirtyRow, false)
}

func nakedPairsRows(s *State, by, bx int) strategyResult {
	return scanRowsOrCols(s, by, bx, true, nakedPairsRegion)
}

func nakedPairsCols(s *State, by, bx int) strategyResult {
	return scanRowsOrCols(s, by, bx, false, nakedPairsRegion)
}

func nakedPairsRegion(s *State, by, bx int, region []int, kind DirtyKind, reachesForeign bool) strategyResult {
	boxCells := cellsInBox(by, bx)
	inBox := func(c int) bool {
		for _, b := range boxCells {
			if b == c {
				return true
			}
		}
		return false
	}
	changed := false
	var foreign []DirtyMark
	for _, cell := range region {
		if !inBox(cell) || s.value[cell] != 0 {
			continue
		}
		cs := s.cand[cell]
		n := cs.Count()
		if n == 0 || n > 2 {
			continue
		}
		partner := -1
		for _, other := range region {
			if other == cell || s.value[other] != 0 {
				continue
			}
			if s.cand[other].Equals(cs) {
				partner = other
				break
			}
		}
		if partner == -1 {
			continue
		}
		for _, other := range region {
			if other == cell || other == partner || s.value[other] != 0 {
				continue
			}
			before := s.cand[other]
			for _, d := range cs.ToSlice() {
				s.cand[other] = s.cand[other].Clear(d)
			}
			if s.cand[other] != before {
				changed = true
				if reachesForeign {
					if m, f := foreignMark(by, bx, other, kind); f {
						foreign = append(foreign, m)
					}
				}
			}
		}
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

// hiddenPairsBox, hiddenPairsRows, hiddenPairsCols: if a pair of candidate
// digits appears, between them, in exactly two cells of the region, both
// cells can be restricted to just that pair.
func hiddenPairsBox(s *State, by, bx int) strategyResult {
	return hiddenPairsRegion(s, by, bx, regionCellsBox(by, bx), DirtyRow, false)
}

func hiddenPairsRows(s *State, by, bx int) strategyResult {
	return scanRowsOrCols(s, by, bx, true, hiddenPairsRegion)
}

func hiddenPairsCols(s *State, by, bx int) strategyResult {
	return scanRowsOrCols(s, by, bx, false, hiddenPairsRegion)
}

func hiddenPairsRegion(s *State, by, bx int, region []int, kind DirtyKind, reachesForeign bool) strategyResult {
	boxCells := cellsInBox(by, bx)
	inBox := func(c int) bool {
		for _, b := range boxCells {
			if b == c {
				return true
			}
		}
		return false
	}
	changed := false
	var foreign []DirtyMark
	for _, cell := range region {
		if !inBox(cell) || s.value[cell] != 0 {
			continue
		}
		digits := s.cand[cell].ToSlice()
		for i := 0; i < len(digits); i++ {
			for j := i + 1; j < len(digits); j++ {
				c1, c2 := digits[i], digits[j]
				holders := []int{}
				for _, other := range region {
					if other == cell || s.value[other] != 0 {
						continue
					}
					if s.cand[other].Has(c1) || s.cand[other].Has(c2) {
						holders = append(holders, other)
					}
				}
				if len(holders) != 1 {
					continue
				}
				partner := holders[0]
				pair := NewCandidates([]int{c1, c2})
				if s.cand[cell].Equals(pair) && s.cand[partner].Equals(pair) {
					continue // already reduced
				}
				before1, before2 := s.cand[cell], s.cand[partner]
				s.cand[cell] = pair
				s.cand[partner] = s.cand[partner].Intersect(pair)
				if s.cand[cell] != before1 {
					changed = true
				}
				if s.cand[partner] != before2 {
					changed = true
					if reachesForeign {
						if m, f := foreignMark(by, bx, partner, kind); f {
							foreign = append(foreign, m)
						}
					}
				}
			}
		}
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

// scanRowsOrCols runs a region-scoped strategy once per row (isRows=true)
// or once per column (isRows=false) of the box's row band / column stack,
// aggregating the combined result.
func scanRowsOrCols(s *State, by, bx int, isRows bool, fn func(*State, int, int, []int, DirtyKind, bool) strategyResult) strategyResult {
	var lines [][]int
	var kind DirtyKind
	if isRows {
		for _, row := range rowsOfBox(by) {
			lines = append(lines, cellsInRow(row))
		}
		kind = DirtyRow
	} else {
		for _, col := range colsOfBox(bx) {
			lines = append(lines, cellsInCol(col))
		}
		kind = DirtyCol
	}
	changed := false
	var foreign []DirtyMark
	for _, line := range lines {
		res := fn(s, by, bx, line, kind, true)
		if !res.outcome.IsOk() {
			return res
		}
		changed = changed || res.changed
		foreign = append(foreign, res.foreign...)
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

// boxLineRows, boxLineCols ("claiming"): if every remaining candidate for a
// digit within one of the box's rows (resp. columns) lies inside this box,
// the digit can be eliminated from the box's other rows (resp. columns) —
// the rest of the grid already can't place it there, so the box's
// allocation for that digit is confined to this row/column. A digit not
// yet placed in the line but with zero candidates anywhere in the line is
// a contradiction.
func boxLineRows(s *State, by, bx int) strategyResult {
	return boxLineRegion(s, by, bx, true)
}

func boxLineCols(s *State, by, bx int) strategyResult {
	return boxLineRegion(s, by, bx, false)
}

func boxLineRegion(s *State, by, bx int, isRows bool) strategyResult {
	changed := false
	boxCells := cellsInBox(by, bx)
	inBox := func(c int) bool {
		for _, b := range boxCells {
			if b == c {
				return true
			}
		}
		return false
	}
	var lines [][]int
	if isRows {
		for _, row := range rowsOfBox(by) {
			lines = append(lines, cellsInRow(row))
		}
	} else {
		for _, col := range colsOfBox(bx) {
			lines = append(lines, cellsInCol(col))
		}
	}
	for _, line := range lines {
		for d := 1; d <= Size; d++ {
			placed := false
			var holders []int
			for _, cell := range line {
				if s.value[cell] == d {
					placed = true
					break
				}
				if s.value[cell] == 0 && s.cand[cell].Has(d) {
					holders = append(holders, cell)
				}
			}
			if placed {
				continue
			}
			if len(holders) == 0 {
				return bad(Contradiction("no candidate for digit in line"))
			}
			allInBox := true
			for _, h := range holders {
				if !inBox(h) {
					allInBox = false
					break
				}
			}
			if !allInBox {
				continue
			}
			for _, cell := range boxCells {
				if s.value[cell] != 0 || cellInLine(cell, line) {
					continue
				}
				before := s.cand[cell]
				s.cand[cell] = s.cand[cell].Clear(d)
				if s.cand[cell] != before {
					changed = true
				}
			}
		}
	}
	return ok(changed)
}

func cellInLine(cell int, line []int) bool {
	for _, c := range line {
		if c == cell {
			return true
		}
	}
	return false
}

// pointingBox ("pointing pairs/triples"): if every remaining candidate for
// a digit within this box lies in a single row (resp. column) of the box,
// the digit can be eliminated from that row/column outside the box.
func pointingBox(s *State, by, bx int) strategyResult {
	changed := false
	var foreign []DirtyMark
	boxCells := cellsInBox(by, bx)

	for d := 1; d <= Size; d++ {
		placed := false
		var holders []int
		for _, cell := range boxCells {
			if s.value[cell] == d {
				placed = true
				break
			}
			if s.value[cell] == 0 && s.cand[cell].Has(d) {
				holders = append(holders, cell)
			}
		}
		if placed || len(holders) == 0 {
			continue
		}

		if sameRow, row := allSameRow(holders); sameRow {
			for _, cell := range cellsInRow(row) {
				if cellInLine(cell, boxCells) || s.value[cell] != 0 {
					continue
				}
				before := s.cand[cell]
				s.cand[cell] = s.cand[cell].Clear(d)
				if s.cand[cell] != before {
					changed = true
					if m, f := foreignMark(by, bx, cell, DirtyRow); f {
						foreign = append(foreign, m)
					}
				}
			}
		}
		if sameCol, col := allSameCol(holders); sameCol {
			for _, cell := range cellsInCol(col) {
				if cellInLine(cell, boxCells) || s.value[cell] != 0 {
					continue
				}
				before := s.cand[cell]
				s.cand[cell] = s.cand[cell].Clear(d)
				if s.cand[cell] != before {
					changed = true
					if m, f := foreignMark(by, bx, cell, DirtyCol); f {
						foreign = append(foreign, m)
					}
				}
			}
		}
	}
	return strategyResult{changed: changed, foreign: foreign, outcome: Ok()}
}

func allSameRow(cells []int) (bool, int) {
	row := rowOf(cells[0])
	for _, c := range cells[1:] {
		if rowOf(c) != row {
			return false, 0
		}
	}
	return true, row
}

func allSameCol(cells []int) (bool, int) {
	col := colOf(cells[0])
	for _, c := range cells[1:] {
		if colOf(c) != col {
			return false, 0
		}
	}
	return true, col
}
