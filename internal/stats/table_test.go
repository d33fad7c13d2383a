package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Category", "Count"}
	rows := [][]string{
		{"Key presses", "128"},
		{"Touch taps", "3"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Category    Count" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "Key presses   128" {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "Touch taps      3" {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatTableNoHeaders(t *testing.T) {
	rows := [][]string{
		{"Duration", "42s"},
		{"Total actions", "7"},
	}
	lines := formatTable(nil, rows, nil)
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Duration      42s" {
		t.Fatalf("unexpected row line: %q", lines[0])
	}
	if lines[1] != "Total actions 7  " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
}
