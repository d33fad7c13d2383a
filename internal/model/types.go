// Package model defines shared data structures.
package model

import "time"

// Config defines run settings for a counting session.
type Config struct {
	Quiet    bool
	Refresh  time.Duration
	Debounce time.Duration
}

// Snapshot is a point-in-time read of the action counters. The four fields
// are read independently; a snapshot taken while events are still flowing
// may be torn across fields and is advisory only.
type Snapshot struct {
	KeyPresses   uint64
	ButtonClicks uint64
	ScrollSteps  uint64
	TouchTaps    uint64
}

// Total returns the number of primary actions. Scroll steps are tracked
// separately and never contribute to the total: a single wheel flick
// produces many steps and would drown out keys and clicks.
func (s Snapshot) Total() uint64 {
	return s.KeyPresses + s.ButtonClicks + s.TouchTaps
}

// Summary captures everything the end-of-run report needs.
type Summary struct {
	Counts  Snapshot
	Elapsed time.Duration
}
