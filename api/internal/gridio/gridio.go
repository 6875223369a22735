// Package gridio parses and renders the nine-line dot/digit Sudoku grid
// format: nine lines of nine characters each, where '1'-'9' is a given and
// '0' or '.' is unknown. This is the one file format the engine itself
// never needs to know about; the CLI and tests use it to get an [81]int in
// and a solved grid back out.
package gridio

import (
	"fmt"
	"strings"
)

const (
	size  = 9
	total = size * size
)

// Parse reads a nine-line grid string into a row-major [81]int, 0 meaning
// unknown. Returns an error if the input isn't exactly nine lines of nine
// recognised characters.
func Parse(text string) ([total]int, error) {
	var grid [total]int
	lines := splitLines(text)
	if len(lines) != size {
		return grid, fmt.Errorf("gridio: expected %d lines, got %d", size, len(lines))
	}
	for r, line := range lines {
		if len(line) != size {
			return grid, fmt.Errorf("gridio: line %d has %d characters, want %d", r, len(line), size)
		}
		for c, ch := range line {
			switch {
			case ch == '.' || ch == '0':
				grid[r*size+c] = 0
			case ch >= '1' && ch <= '9':
				grid[r*size+c] = int(ch - '0')
			default:
				return grid, fmt.Errorf("gridio: unrecognised character %q at row %d col %d", ch, r, c)
			}
		}
	}
	return grid, nil
}

// splitLines trims trailing newline noise and drops blank lines, so both
// "\n"-joined literals and copy-pasted puzzle blocks with a trailing
// newline parse the same way.
func splitLines(text string) []string {
	raw := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		if l == "" {
			continue
		}
		lines = append(lines, l)
	}
	return lines
}

// Render writes a row-major [81]int grid back to the nine-line digit
// format. Unknown cells (0) render as '.'.
func Render(grid [total]int) string {
	var b strings.Builder
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			v := grid[r*size+c]
			if v == 0 {
				b.WriteByte('.')
			} else {
				b.WriteByte(byte('0' + v))
			}
		}
		if r < size-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// Compact writes the grid as a single 81-character string, matching the
// teacher's CompactPuzzle.S representation used for puzzle corpus storage.
func Compact(grid [total]int) string {
	var b strings.Builder
	b.Grow(total)
	for _, v := range grid {
		if v == 0 {
			b.WriteByte('0')
		} else {
			b.WriteByte(byte('0' + v))
		}
	}
	return b.String()
}

// ParseCompact is the inverse of Compact: an 81-character string, '0' for
// unknown, straight to a row-major grid.
func ParseCompact(s string) ([total]int, error) {
	var grid [total]int
	if len(s) != total {
		return grid, fmt.Errorf("gridio: compact puzzle must be %d characters, got %d", total, len(s))
	}
	for i, ch := range s {
		if ch < '0' || ch > '9' {
			return grid, fmt.Errorf("gridio: unrecognised character %q at position %d", ch, i)
		}
		grid[i] = int(ch - '0')
	}
	return grid, nil
}
