package track

import (
	"testing"
	"time"

	"github.com/verte-zerg/wlactions/internal/counter"
	"github.com/verte-zerg/wlactions/internal/wayland"
)

func TestSeatKeyDedupAcrossHandlers(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)

	// Two live keyboard objects for the same physical keyboard, as after a
	// rebind: the same press delivered through both counts once.
	kb1 := seat.Keyboard()
	kb2 := seat.Keyboard()

	kb1.HandleKey(30, wayland.KeyPressed)
	kb2.HandleKey(30, wayland.KeyPressed)
	if got := c.Snapshot().KeyPresses; got != 1 {
		t.Fatalf("expected 1 key press, got %d", got)
	}

	kb1.HandleKey(30, wayland.KeyReleased)
	kb2.HandleKey(30, wayland.KeyReleased)
	kb2.HandleKey(30, wayland.KeyPressed)
	if got := c.Snapshot().KeyPresses; got != 2 {
		t.Fatalf("expected 2 key presses, got %d", got)
	}
}

func TestSeatKeyRepeatDoesNotCount(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	kb := seat.Keyboard()

	kb.HandleKey(16, wayland.KeyPressed)
	kb.HandleKey(16, wayland.KeyRepeated)
	kb.HandleKey(16, wayland.KeyRepeated)
	kb.HandleKey(16, wayland.KeyPressed) // hardware auto-repeat as pressed
	if got := c.Snapshot().KeyPresses; got != 1 {
		t.Fatalf("expected 1 key press during hold, got %d", got)
	}
}

func TestSeatButtonDedup(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	pt1 := seat.Pointer()
	pt2 := seat.Pointer()

	const btnLeft = 0x110
	pt1.HandleButton(btnLeft, wayland.ButtonPressed)
	pt2.HandleButton(btnLeft, wayland.ButtonPressed)
	if got := c.Snapshot().ButtonClicks; got != 1 {
		t.Fatalf("expected 1 click, got %d", got)
	}
	pt1.HandleButton(btnLeft, wayland.ButtonReleased)
	pt1.HandleButton(btnLeft, wayland.ButtonPressed)
	if got := c.Snapshot().ButtonClicks; got != 2 {
		t.Fatalf("expected 2 clicks, got %d", got)
	}
}

func TestSeatDiscreteScrollDiscardsSign(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	pt := seat.Pointer()

	pt.HandleAxisDiscrete(wayland.AxisVertical, -3)
	pt.HandleAxisDiscrete(wayland.AxisVertical, 3)
	if got := c.Snapshot().ScrollSteps; got != 6 {
		t.Fatalf("expected 6 scroll steps, got %d", got)
	}
}

func TestSeatValue120PerAxisAccumulation(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	pt := seat.Pointer()

	// Axes accumulate independently: 60 on each axis is no step on either.
	pt.HandleAxisValue120(wayland.AxisVertical, 60)
	pt.HandleAxisValue120(wayland.AxisHorizontal, 60)
	if got := c.Snapshot().ScrollSteps; got != 0 {
		t.Fatalf("expected 0 scroll steps, got %d", got)
	}
	pt.HandleAxisValue120(wayland.AxisVertical, 60)
	if got := c.Snapshot().ScrollSteps; got != 1 {
		t.Fatalf("expected 1 scroll step, got %d", got)
	}
	pt.HandleAxisValue120(wayland.AxisHorizontal, 60)
	if got := c.Snapshot().ScrollSteps; got != 2 {
		t.Fatalf("expected 2 scroll steps, got %d", got)
	}
}

func TestSeatContinuousScrollSharedDebounce(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	now := time.Unix(0, 0)
	seat.scrollDebounce.now = func() time.Time { return now }

	pt1 := seat.Pointer()
	pt2 := seat.Pointer()

	pt1.HandleAxis(wayland.AxisVertical, wayland.Fixed(256))
	// Duplicate delivery through a second handler within the window.
	pt2.HandleAxis(wayland.AxisVertical, wayland.Fixed(256))
	if got := c.Snapshot().ScrollSteps; got != 1 {
		t.Fatalf("expected 1 scroll step, got %d", got)
	}

	now = now.Add(150 * time.Millisecond)
	pt2.HandleAxis(wayland.AxisHorizontal, wayland.Fixed(-512))
	if got := c.Snapshot().ScrollSteps; got != 2 {
		t.Fatalf("expected 2 scroll steps, got %d", got)
	}
}

func TestSeatTouchDown(t *testing.T) {
	c := counter.New()
	seat := NewSeat(c, DefaultDebounce)
	touch := seat.Touch()

	touch.HandleDown(0)
	touch.HandleDown(1)
	if got := c.Snapshot().TouchTaps; got != 2 {
		t.Fatalf("expected 2 taps, got %d", got)
	}
}
