package engine

import "time"

// Outcome is the transient result of one tick: which commands were issued.
// Not stored by the engine; the simulator and tests use it to build traces.
type Outcome struct {
	// Tick is the logical tick number from the engine clock.
	Tick int64

	// Started, Split and Reset record the structural action, at most one of
	// which is set per tick.
	Started bool
	Split   bool
	Reset   bool

	// Loading is non-nil when a pause (true) or resume (false) command was
	// issued this tick.
	Loading *bool

	// Elapsed is non-nil when the elapsed-time override was issued.
	Elapsed *time.Duration
}

// Empty reports whether the tick issued no commands at all.
func (o Outcome) Empty() bool {
	return !o.Started && !o.Split && !o.Reset && o.Loading == nil && o.Elapsed == nil
}
