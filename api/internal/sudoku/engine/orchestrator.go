package engine

// Mode selects one of the three Box Scheduler variants the Orchestrator
// runs between the Initialiser and the Guess Driver.
type Mode int

const (
	Sequential Mode = iota
	IndependentParallel
	CoordinatedParallel
)

func (m Mode) quiesce() QuiesceFunc {
	switch m {
	case IndependentParallel:
		return runIndependentParallel
	case CoordinatedParallel:
		return runCoordinatedParallel
	default:
		return runSequential
	}
}

// Solve wires Initialiser -> Box Scheduler -> Guess Driver for the given
// mode: it applies givens, runs deduction to quiescence, and falls back to
// guess-and-check if deduction alone didn't finish the grid. Returns the
// solved State and Ok(), or nil and a Contradiction/GivensConflict Outcome.
func Solve(givens [Total]int, mode Mode) (*State, Outcome) {
	s, out, _ := SolveDiagnostic(givens, mode)
	return s, out
}

// SolveDiagnostic is Solve plus a report of whether pure deduction sufficed
// or the Guess Driver had to branch — used by the difficulty-analysis
// endpoint to tell a logically-solvable puzzle apart from one that needed
// guessing.
func SolveDiagnostic(givens [Total]int, mode Mode) (*State, Outcome, bool) {
	s, out := Init(givens)
	if !out.IsOk() {
		return nil, out, false
	}

	quiesce := mode.quiesce()
	if out := quiesce(s); !out.IsOk() {
		return nil, out, false
	}

	if s.IsSolved() {
		return s, Ok(), false
	}

	result, out := guessAndCheck(s, quiesce)
	return result, out, true
}
