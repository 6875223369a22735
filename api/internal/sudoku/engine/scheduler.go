package engine

// doSolveStep runs the full strategy chain for one dirtied box in one
// orientation. Box-scoped variants (naked/hidden singles, naked/hidden
// pairs) always run against the box itself; the Rows-or-Cols variant
// selected by isRow additionally scans the box's row band or column stack.
// Box-line and pointing close out the chain, in the order singles, pairs,
// box-line, pointing, matching the source's pass ordering.
//
// Any strategy reporting a change re-dirties the whole row band and column
// stack of (by, bx), since further deductions may now be available there.
// Strategies also report the individual foreign boxes a Rows/Cols-scoped
// elimination touched, applied via applyForeign; for this scheduler those
// marks land inside the same band/stack the blanket rule already dirties,
// so they're redundant here but keep the strategies themselves honest
// about exactly what they touched, independent of whatever re-dirty policy
// a particular scheduler chooses to layer on top.
func doSolveStep(s *State, by, bx int, isRow bool) (bool, []DirtyMark, Outcome) {
	var foreign []DirtyMark
	changed := false

	run := func(res strategyResult) bool {
		if !res.outcome.IsOk() {
			return false
		}
		if res.changed {
			changed = true
		}
		foreign = append(foreign, res.foreign...)
		return true
	}

	steps := []func(*State, int, int) strategyResult{nakedSingles, hiddenSinglesBox}
	if isRow {
		steps = append(steps, hiddenSinglesRows, nakedPairsBox, nakedPairsRows,
			hiddenPairsBox, hiddenPairsRows, boxLineRows)
	} else {
		steps = append(steps, hiddenSinglesCols, nakedPairsBox, nakedPairsCols,
			hiddenPairsBox, hiddenPairsCols, boxLineCols)
	}
	steps = append(steps, pointingBox)

	for _, step := range steps {
		res := step(s, by, bx)
		if !run(res) {
			return changed, foreign, res.outcome
		}
	}

	if changed {
		for b := 0; b < Boxes; b++ {
			s.rowDirty[by][b] = true
			s.colDirty[b][bx] = true
		}
	}

	return changed, foreign, Ok()
}

// applyForeign writes the dirty marks a strategy reported into the shared
// State. Centralised here, not inside the strategies, per the "explicit
// messages instead of cyclic mutation" design note.
func applyForeign(s *State, marks []DirtyMark) {
	for _, m := range marks {
		switch m.Kind {
		case DirtyRow:
			s.rowDirty[m.By][m.Bx] = true
		case DirtyCol:
			s.colDirty[m.By][m.Bx] = true
		}
	}
}

// runSequential drives the single-threaded Box Scheduler to quiescence:
// alternating row-major and column-major sweeps over dirtied boxes, per
// (by, bx), until a full pair of sweeps processes nothing.
func runSequential(s *State) Outcome {
	for {
		processed := false

		for by := 0; by < Boxes; by++ {
			for bx := 0; bx < Boxes; bx++ {
				if !s.rowDirty[by][bx] {
					continue
				}
				s.rowDirty[by][bx] = false
				_, foreign, out := doSolveStep(s, by, bx, true)
				if !out.IsOk() {
					return out
				}
				applyForeign(s, foreign)
				processed = true
			}
		}

		for bx := 0; bx < Boxes; bx++ {
			for by := 0; by < Boxes; by++ {
				if !s.colDirty[by][bx] {
					continue
				}
				s.colDirty[by][bx] = false
				_, foreign, out := doSolveStep(s, by, bx, false)
				if !out.IsOk() {
					return out
				}
				applyForeign(s, foreign)
				processed = true
			}
		}

		if !processed {
			return Ok()
		}
	}
}
