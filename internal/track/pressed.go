// Package track converts raw input-device events into counted actions.
package track

import "sync"

// PressedSet records which key or button codes are currently held. One set
// is shared by every handler instance of a device class, so a press that the
// compositor delivers through two live objects, or repeats while a key is
// held, is counted once per physical hold.
type PressedSet struct {
	mu   sync.Mutex
	held map[uint32]struct{}
}

// NewPressedSet returns an empty set.
func NewPressedSet() *PressedSet {
	return &PressedSet{held: make(map[uint32]struct{})}
}

// Press marks code as held and reports whether it was newly pressed. Only a
// true result should be counted; false means an auto-repeat or a duplicate
// delivery.
func (p *PressedSet) Press(code uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.held[code]; ok {
		return false
	}
	p.held[code] = struct{}{}
	return true
}

// Release clears code. Releasing a code that was never pressed is a no-op:
// spurious releases are expected from real hardware and rebound objects.
func (p *PressedSet) Release(code uint32) {
	p.mu.Lock()
	delete(p.held, code)
	p.mu.Unlock()
}

// Held reports whether code is currently considered held.
func (p *PressedSet) Held(code uint32) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	_, ok := p.held[code]
	return ok
}
