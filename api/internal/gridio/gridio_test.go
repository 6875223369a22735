package gridio

import "testing"

func TestParse_DotsAndZeros(t *testing.T) {
	text := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	grid, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if grid[0] != 5 || grid[1] != 3 || grid[2] != 0 {
		t.Errorf("unexpected first row decode: %v", grid[:9])
	}
}

func TestParse_WrongLineCount(t *testing.T) {
	if _, err := Parse("123456789\n123456789"); err == nil {
		t.Error("expected an error for a grid with too few lines")
	}
}

func TestParse_WrongLineLength(t *testing.T) {
	lines := ""
	for i := 0; i < 9; i++ {
		lines += "12345678\n" // only 8 chars
	}
	if _, err := Parse(lines); err == nil {
		t.Error("expected an error for a line of the wrong length")
	}
}

func TestParse_BadCharacter(t *testing.T) {
	lines := ""
	for i := 0; i < 9; i++ {
		lines += "12345678x\n"
	}
	if _, err := Parse(lines); err == nil {
		t.Error("expected an error for an unrecognised character")
	}
}

func TestRender_RoundTrip(t *testing.T) {
	text := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	grid, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if got := Render(grid); got != text {
		t.Errorf("Render did not round-trip:\ngot:\n%s\nwant:\n%s", got, text)
	}
}

func TestCompact_RoundTrip(t *testing.T) {
	text := "53..7....\n" +
		"6..195...\n" +
		".98....6.\n" +
		"8...6...3\n" +
		"4..8.3..1\n" +
		"7...2...6\n" +
		".6....28.\n" +
		"...419..5\n" +
		"....8..79"
	grid, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	compact := Compact(grid)
	if len(compact) != 81 {
		t.Fatalf("expected 81-char compact string, got %d", len(compact))
	}
	back, err := ParseCompact(compact)
	if err != nil {
		t.Fatalf("ParseCompact: %v", err)
	}
	if back != grid {
		t.Error("ParseCompact(Compact(grid)) != grid")
	}
}
