// Command sudokusolve reads a nine-line grid file and solves it with one of
// the box-scoped logical engine's three variants, or with the plain
// recursive backtracker, matching the CLI surface of the source project
// this engine was modelled on.
//
// Usage: sudokusolve <filename> <algorithm>
//
//	algorithm one of: logical, parallelLogical, coordinatedLogical, backtracking
package main

import (
	"fmt"
	"os"

	"sudoku-api/internal/gridio"
	"sudoku-api/internal/sudoku/dp"
	"sudoku-api/internal/sudoku/engine"
)

func main() {
	if len(os.Args) < 3 {
		fmt.Println("Usage: sudokusolve <filename> <algorithm>")
		fmt.Println("  algorithm: logical | parallelLogical | coordinatedLogical | backtracking")
		os.Exit(1)
	}

	filename := os.Args[1]
	algorithm := os.Args[2]

	data, err := os.ReadFile(filename)
	if err != nil {
		fmt.Printf("Could not read %s: %v\n", filename, err)
		os.Exit(1)
	}

	givens, err := gridio.Parse(string(data))
	if err != nil {
		fmt.Printf("Could not parse %s: %v\n", filename, err)
		os.Exit(1)
	}

	if algorithm == "backtracking" {
		runBacktracking(givens)
		return
	}

	mode, ok := modeFor(algorithm)
	if !ok {
		fmt.Printf("Unknown algorithm %q\n", algorithm)
		os.Exit(1)
	}

	solved, out := engine.Solve(givens, mode)
	if !out.IsOk() {
		fmt.Printf("Sudoku cannot be solved: %s\n", out.Error())
		return
	}

	var grid [81]int
	copy(grid[:], solved.Grid())
	fmt.Println(gridio.Render(grid))
}

func modeFor(algorithm string) (engine.Mode, bool) {
	switch algorithm {
	case "logical":
		return engine.Sequential, true
	case "parallelLogical":
		return engine.IndependentParallel, true
	case "coordinatedLogical":
		return engine.CoordinatedParallel, true
	default:
		return 0, false
	}
}

func runBacktracking(givens [81]int) {
	result := dp.Solve(givens[:])
	if result == nil {
		fmt.Println("Sudoku cannot be solved")
		return
	}
	var grid [81]int
	copy(grid[:], result)
	fmt.Println(gridio.Render(grid))
}
