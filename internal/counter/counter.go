// Package counter holds the process-wide action counters.
package counter

import (
	"sync/atomic"

	"github.com/verte-zerg/wlactions/internal/model"
)

// Counters aggregates input actions across every handler and the display
// refresher. Each field is an independent atomic; there is no cross-field
// consistency, so a live Snapshot may be torn. The authoritative read is the
// one taken after the running flag has been cleared.
type Counters struct {
	keyPresses   atomic.Uint64
	buttonClicks atomic.Uint64
	scrollSteps  atomic.Uint64
	touchTaps    atomic.Uint64
}

// New returns zeroed counters.
func New() *Counters {
	return &Counters{}
}

// AddKeyPress records one key press.
func (c *Counters) AddKeyPress() {
	c.keyPresses.Add(1)
}

// AddButtonClick records one pointer button click.
func (c *Counters) AddButtonClick() {
	c.buttonClicks.Add(1)
}

// AddScrollSteps records n whole scroll steps.
func (c *Counters) AddScrollSteps(n uint64) {
	if n == 0 {
		return
	}
	c.scrollSteps.Add(n)
}

// AddTouchTap records one touch-down.
func (c *Counters) AddTouchTap() {
	c.touchTaps.Add(1)
}

// Snapshot reads all four counters. Reads are independent, not transactional.
func (c *Counters) Snapshot() model.Snapshot {
	return model.Snapshot{
		KeyPresses:   c.keyPresses.Load(),
		ButtonClicks: c.buttonClicks.Load(),
		ScrollSteps:  c.scrollSteps.Load(),
		TouchTaps:    c.touchTaps.Load(),
	}
}

// Total returns keys + clicks + taps. Scroll steps are excluded; see
// model.Snapshot.Total.
func (c *Counters) Total() uint64 {
	return c.Snapshot().Total()
}
