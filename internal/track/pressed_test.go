package track

import "testing"

func TestPressCountsOncePerHold(t *testing.T) {
	p := NewPressedSet()

	if !p.Press(42) {
		t.Fatalf("first press should be new")
	}
	if p.Press(42) {
		t.Fatalf("repeat press while held should not be new")
	}
	if p.Press(42) {
		t.Fatalf("second repeat press should not be new")
	}
	p.Release(42)
	if !p.Press(42) {
		t.Fatalf("press after release should be new")
	}
}

func TestPressRunLengthCounting(t *testing.T) {
	// Three maximal held runs for the same code, with repeats inside each,
	// must yield exactly three counted presses.
	p := NewPressedSet()
	presses := 0
	events := []struct {
		press bool
	}{
		{true}, {true}, {false},
		{true}, {false},
		{true}, {true}, {true}, {false},
	}
	for _, ev := range events {
		if ev.press {
			if p.Press(7) {
				presses++
			}
		} else {
			p.Release(7)
		}
	}
	if presses != 3 {
		t.Fatalf("expected 3 counted presses, got %d", presses)
	}
}

func TestReleaseWithoutPressIsNoop(t *testing.T) {
	p := NewPressedSet()
	p.Release(99)
	if p.Held(99) {
		t.Fatalf("code should not be held")
	}
	if !p.Press(99) {
		t.Fatalf("press after spurious release should be new")
	}
}

func TestIndependentCodes(t *testing.T) {
	p := NewPressedSet()
	if !p.Press(1) || !p.Press(2) {
		t.Fatalf("distinct codes should both be new")
	}
	p.Release(1)
	if p.Held(1) {
		t.Fatalf("code 1 should be released")
	}
	if !p.Held(2) {
		t.Fatalf("code 2 should remain held")
	}
}
