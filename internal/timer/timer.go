// Package timer defines the command sink the engine drives.
//
// The actual timer (LiveSplit or compatible) lives outside this process.
// The engine holds no global timer state - only this interface - which is
// what lets tests substitute a recording sink and compare command traces.
package timer

import "time"

// State is the externally-owned timer state. The engine reads it to gate
// decisions (start only when NotRunning; loading/reset/split only when
// Running or Paused) but never stores it.
type State int

const (
	NotRunning State = iota
	Running
	Paused
	Ended
)

// String returns the state name for logs and traces.
func (s State) String() string {
	switch s {
	case NotRunning:
		return "not_running"
	case Running:
		return "running"
	case Paused:
		return "paused"
	case Ended:
		return "ended"
	default:
		return "unknown"
	}
}

// Sink receives timer commands. Each command is issued at most once per
// tick, in the engine's fixed priority order. Implementations must treat
// repeated SetLoadingPaused with the same value as idempotent.
type Sink interface {
	// State reports the timer's current state.
	State() State

	// Start begins a run.
	Start()

	// Split records a segment boundary.
	Split()

	// Reset abandons the run. Reset suppresses Split in the same tick.
	Reset()

	// SetLoadingPaused pauses (true) or resumes (false) elapsed-time
	// accrual while wall-clock keeps running.
	SetLoadingPaused(paused bool)

	// SetElapsedTime overrides the accrued elapsed time with an
	// authoritative value read from the game.
	SetElapsedTime(d time.Duration)
}
