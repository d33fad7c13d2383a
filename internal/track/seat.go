package track

import (
	"time"

	"github.com/verte-zerg/wlactions/internal/counter"
	"github.com/verte-zerg/wlactions/internal/wayland"
)

// Seat wires the counting state into the proxy. One Seat exists per run; the
// proxy calls the factory methods once per device object a client creates, so
// every minted handler shares the pressed sets, the scroll debouncer, and the
// counters, while owning its per-instance axis accumulators.
type Seat struct {
	counters       *counter.Counters
	pressedKeys    *PressedSet
	pressedButtons *PressedSet
	scrollDebounce *Debouncer
}

// NewSeat builds the shared tracking state for a run.
func NewSeat(counters *counter.Counters, debounce time.Duration) *Seat {
	return &Seat{
		counters:       counters,
		pressedKeys:    NewPressedSet(),
		pressedButtons: NewPressedSet(),
		scrollDebounce: NewDebouncer(debounce),
	}
}

// Keyboard mints a handler for a newly created keyboard object.
func (s *Seat) Keyboard() wayland.KeyboardHandler {
	return &keyboardCounter{counters: s.counters, pressed: s.pressedKeys}
}

// Pointer mints a handler for a newly created pointer object.
func (s *Seat) Pointer() wayland.PointerHandler {
	return &pointerCounter{
		counters: s.counters,
		pressed:  s.pressedButtons,
		debounce: s.scrollDebounce,
	}
}

// Touch mints a handler for a newly created touch object.
func (s *Seat) Touch() wayland.TouchHandler {
	return &touchCounter{counters: s.counters}
}

type keyboardCounter struct {
	counters *counter.Counters
	pressed  *PressedSet
}

func (k *keyboardCounter) HandleKey(key uint32, state wayland.KeyState) {
	switch state {
	case wayland.KeyPressed:
		if k.pressed.Press(key) {
			k.counters.AddKeyPress()
		}
	case wayland.KeyReleased:
		k.pressed.Release(key)
	}
	// KeyRepeated never counts; the key is already held.
}

type pointerCounter struct {
	counters *counter.Counters
	pressed  *PressedSet
	debounce *Debouncer

	vertical   AxisAccumulator
	horizontal AxisAccumulator
}

func (p *pointerCounter) HandleButton(button uint32, state wayland.ButtonState) {
	switch state {
	case wayland.ButtonPressed:
		if p.pressed.Press(button) {
			p.counters.AddButtonClick()
		}
	case wayland.ButtonReleased:
		p.pressed.Release(button)
	}
}

// HandleAxis covers continuous and legacy scroll motion, which carries no
// step unit. The debounce window turns a burst of motion into one step.
func (p *pointerCounter) HandleAxis(axis wayland.Axis, value wayland.Fixed) {
	if axis != wayland.AxisVertical && axis != wayland.AxisHorizontal {
		return
	}
	if p.debounce.Allow() {
		p.counters.AddScrollSteps(1)
	}
}

// HandleAxisDiscrete counts whole wheel steps directly.
func (p *pointerCounter) HandleAxisDiscrete(axis wayland.Axis, steps int32) {
	if steps < 0 {
		steps = -steps
	}
	p.counters.AddScrollSteps(uint64(steps))
}

// HandleAxisValue120 folds high-resolution units into steps per axis.
func (p *pointerCounter) HandleAxisValue120(axis wayland.Axis, value int32) {
	acc := &p.vertical
	if axis == wayland.AxisHorizontal {
		acc = &p.horizontal
	}
	p.counters.AddScrollSteps(acc.Add(value))
}

type touchCounter struct {
	counters *counter.Counters
}

func (t *touchCounter) HandleDown(touch int32) {
	t.counters.AddTouchTap()
}
