package track

import (
	"sync"
	"time"
)

// Scroll events arrive in three shapes depending on the backend: discrete
// wheel steps, high-resolution value120 units, and continuous motion with no
// step unit at all. All three normalize to whole "scroll steps"; direction is
// discarded because only the amount of motion matters.

// StepUnit is the number of high-resolution units in one wheel step.
const StepUnit = 120

// DefaultDebounce is the window applied to continuous-axis events.
const DefaultDebounce = 100 * time.Millisecond

// AxisAccumulator folds high-resolution deliveries on a single axis into
// whole steps, carrying the sub-step remainder forward. Each pointer handler
// owns two, one per axis; events for one pointer object arrive on a single
// dispatch stream, so no lock is needed.
type AxisAccumulator struct {
	remainder int32
}

// Add accumulates a value120 delivery and returns the number of whole steps
// it completed, as a magnitude. The remainder stays strictly below StepUnit.
func (a *AxisAccumulator) Add(value int32) uint64 {
	a.remainder += value
	steps := a.remainder / StepUnit // truncates toward zero
	if steps == 0 {
		return 0
	}
	a.remainder -= steps * StepUnit
	if steps < 0 {
		steps = -steps
	}
	return uint64(steps)
}

// Remainder returns the carried sub-step units.
func (a *AxisAccumulator) Remainder() int32 {
	return a.remainder
}

// Debouncer admits at most one event per window. It is shared across pointer
// handler instances so duplicate delivery through rebound objects cannot be
// admitted twice, mirroring the PressedSet policy.
type Debouncer struct {
	mu     sync.Mutex
	window time.Duration
	last   time.Time
	now    func() time.Time
}

// NewDebouncer creates a debouncer that admits the first event immediately.
func NewDebouncer(window time.Duration) *Debouncer {
	return newDebouncer(window, time.Now)
}

func newDebouncer(window time.Duration, now func() time.Time) *Debouncer {
	if window <= 0 {
		window = DefaultDebounce
	}
	return &Debouncer{window: window, now: now}
}

// Allow reports whether enough time has passed since the last admitted
// event, updating the reference timestamp when it has. The elapsed check and
// the timestamp update form one critical section.
func (d *Debouncer) Allow() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	now := d.now()
	if !d.last.IsZero() && now.Sub(d.last) < d.window {
		return false
	}
	d.last = now
	return true
}
