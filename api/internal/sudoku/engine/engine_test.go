package engine

import (
	"testing"

	"sudoku-api/internal/gridio"
)

func parseGrid(t *testing.T, text string) [Total]int {
	t.Helper()
	g, err := gridio.Parse(text)
	if err != nil {
		t.Fatalf("parseGrid: %v", err)
	}
	return g
}

func TestSolve_NakedSinglesOnly(t *testing.T) {
	input := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	want := "534678912\n" +
		"672195348\n" +
		"198342567\n" +
		"859761423\n" +
		"426853791\n" +
		"713924856\n" +
		"961537284\n" +
		"287419635\n" +
		"345286179"

	givens := parseGrid(t, input)
	s, out := Solve(givens, Sequential)
	if !out.IsOk() {
		t.Fatalf("Solve returned %v, want Ok", out)
	}
	var grid [Total]int
	copy(grid[:], s.Grid())
	got := gridio.Render(grid)
	if got != want {
		t.Errorf("solved grid mismatch:\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestSolve_GivensConflict(t *testing.T) {
	var givens [Total]int
	givens[idx(0, 0)] = 5
	givens[idx(0, 4)] = 5
	_, out := Solve(givens, Sequential)
	if out.Kind != OutcomeGivensConflict {
		t.Fatalf("expected GivensConflict, got %v", out)
	}
}

func TestSolve_BlankGridSolvesByGuessing(t *testing.T) {
	var givens [Total]int
	s, out := Solve(givens, Sequential)
	if !out.IsOk() {
		t.Fatalf("Solve returned %v, want Ok", out)
	}
	if !s.IsSolved() {
		t.Fatal("expected a fully solved grid from a blank input")
	}
	assertValidCompletion(t, s)
}

func TestSolve_SolvedGridIsNoOp(t *testing.T) {
	input := "534678912\n" +
		"672195348\n" +
		"198342567\n" +
		"859761423\n" +
		"426853791\n" +
		"713924856\n" +
		"961537284\n" +
		"287419635\n" +
		"345286179"
	givens := parseGrid(t, input)
	s, out := Solve(givens, Sequential)
	if !out.IsOk() || !s.IsSolved() {
		t.Fatalf("already-solved grid should solve trivially, got %v", out)
	}
}

func TestSolve_AllVariantsAgreeOnUniqueSolution(t *testing.T) {
	input := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	givens := parseGrid(t, input)

	modes := []Mode{Sequential, IndependentParallel, CoordinatedParallel}
	var results [][Total]int
	for _, m := range modes {
		s, out := Solve(givens, m)
		if !out.IsOk() {
			t.Fatalf("mode %v: Solve returned %v", m, out)
		}
		var grid [Total]int
		copy(grid[:], s.Grid())
		results = append(results, grid)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Errorf("mode %v disagreed with sequential:\n%s\nvs\n%s",
				modes[i], gridio.Render(results[i]), gridio.Render(results[0]))
		}
	}
}

func TestScheduler_QuiescentStateIsIdempotent(t *testing.T) {
	input := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	givens := parseGrid(t, input)
	s, out := Init(givens)
	if !out.IsOk() {
		t.Fatalf("Init: %v", out)
	}
	if out := runSequential(s); !out.IsOk() {
		t.Fatalf("runSequential: %v", out)
	}
	before := s.Grid()
	s.MarkAllDirty()
	if out := runSequential(s); !out.IsOk() {
		t.Fatalf("second runSequential: %v", out)
	}
	after := s.Grid()
	for i := range before {
		if before[i] != after[i] {
			t.Fatalf("re-running the scheduler on a quiescent state changed cell %d: %d -> %d", i, before[i], after[i])
		}
	}
}

// TestSolve_ContradictionFromPropagation covers the case the givens-only
// check in Init can't see: every given is individually consistent with its
// row/col/box peers, but propagating them all leaves an unassigned cell
// with zero remaining candidates. Row 0 uses digits 2-9 at columns 1-8, and
// (1,1)=1 — no two givens share a row, column, or box position for the same
// digit, so Init raises no GivensConflict. But (0,0) sees 2-9 eliminated by
// its row peers and then 1 eliminated by its box peer, leaving it with no
// candidates at all once the Box Scheduler reaches box (0,0).
func TestSolve_ContradictionFromPropagation(t *testing.T) {
	var givens [Total]int
	for col := 1; col <= 8; col++ {
		givens[idx(0, col)] = col + 1 // columns 1-8 get digits 2-9
	}
	givens[idx(1, 1)] = 1

	_, out := Solve(givens, Sequential)
	if out.Kind != OutcomeContradiction {
		t.Fatalf("expected OutcomeContradiction from mid-solve propagation, got %v", out)
	}
}

// TestSolveDiagnostic_PureDeductionNeedsNoGuessing exercises the
// neededGuessing flag that the difficulty-analysis endpoint relies on to
// tell a logically-solvable puzzle apart from one that required the Guess
// Driver: a puzzle solvable by naked singles alone must report false.
func TestSolveDiagnostic_PureDeductionNeedsNoGuessing(t *testing.T) {
	input := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	givens := parseGrid(t, input)

	s, out, neededGuessing := SolveDiagnostic(givens, Sequential)
	if !out.IsOk() {
		t.Fatalf("SolveDiagnostic returned %v, want Ok", out)
	}
	if !s.IsSolved() {
		t.Fatal("expected a fully solved grid")
	}
	if neededGuessing {
		t.Error("puzzle solvable by naked singles alone should not report neededGuessing")
	}
}

// TestSolveDiagnostic_BlankGridNeedsGuessing is the complementary case: a
// blank grid has no deduction path at all, so the Guess Driver must branch
// and neededGuessing must flip true.
func TestSolveDiagnostic_BlankGridNeedsGuessing(t *testing.T) {
	var givens [Total]int
	s, out, neededGuessing := SolveDiagnostic(givens, Sequential)
	if !out.IsOk() || !s.IsSolved() {
		t.Fatalf("SolveDiagnostic returned %v, want a solved grid", out)
	}
	if !neededGuessing {
		t.Error("a blank grid can't be solved by deduction alone; expected neededGuessing")
	}
}

// assertValidCompletion checks I3/I4 (no duplicate digit in any row,
// column, or box) on a fully solved grid.
func assertValidCompletion(t *testing.T, s *State) {
	t.Helper()
	for row := 0; row < Size; row++ {
		seen := map[int]bool{}
		for col := 0; col < Size; col++ {
			v := s.Value(row, col)
			if v == 0 || seen[v] {
				t.Fatalf("row %d has a duplicate or missing digit", row)
			}
			seen[v] = true
		}
	}
	for col := 0; col < Size; col++ {
		seen := map[int]bool{}
		for row := 0; row < Size; row++ {
			v := s.Value(row, col)
			if v == 0 || seen[v] {
				t.Fatalf("col %d has a duplicate or missing digit", col)
			}
			seen[v] = true
		}
	}
	for by := 0; by < Boxes; by++ {
		for bx := 0; bx < Boxes; bx++ {
			seen := map[int]bool{}
			for _, cell := range cellsInBox(by, bx) {
				v := s.Value(rowOf(cell), colOf(cell))
				if v == 0 || seen[v] {
					t.Fatalf("box (%d,%d) has a duplicate or missing digit", by, bx)
				}
				seen[v] = true
			}
		}
	}
}
