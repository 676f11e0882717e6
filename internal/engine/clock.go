package engine

import "sync/atomic"

// Clock is the monotonic tick counter. Every outcome is stamped with a
// strictly increasing tick number so recorded command traces have a total
// order that replays identically.
//
// Thread-safety: Clock is safe for concurrent use (atomic operations),
// although the engine's single-loop design means only one goroutine
// typically calls Next().
type Clock struct {
	seq atomic.Int64
}

// NewClock creates a new clock starting at 0.
func NewClock() *Clock {
	return &Clock{}
}

// Next returns the next tick number and increments the clock.
func (c *Clock) Next() int64 {
	return c.seq.Add(1)
}

// Current returns the current tick number without incrementing.
func (c *Clock) Current() int64 {
	return c.seq.Load()
}
