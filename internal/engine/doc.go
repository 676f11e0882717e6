// Package engine converts raw, asynchronously-changing game-process state
// into discrete timing commands for an external speedrun timer.
//
// ARCHITECTURE:
//
// One cooperative loop, one logical thread of control. Each tick runs three
// phases strictly in sequence:
//
//  1. Sampling pass: every tracked quantity is read from process memory
//     through the resolved layout and pushed into its watched value. Read
//     failures are absorbed here - a quantity that cannot be read this tick
//     repeats its last known value instead of propagating an error.
//  2. Decision: pure functions of the watched-value snapshot plus the user's
//     toggle settings decide whether to pause/resume elapsed-time accrual,
//     override elapsed time, reset, split, or start.
//  3. Commands: at most one structural action (reset, split, or start) is
//     issued per tick; loading and elapsed-time adjustments are independent
//     and may co-occur with it.
//
// Priority order within a tick, while the timer is running or paused:
// loading, elapsed override, reset, then split - reset suppresses split.
// Start is evaluated last and only while the timer is not running; right
// after starting, the loading signal is consulted once more so accrual
// begins in the correct paused/running state.
//
// The tick boundary is the only suspension point. No quantity is touched by
// more than one tick at a time, so the watched state needs no locking. The
// observed process is strictly read-only.
//
// Everything game-shaped (level tables, trigger predicates, scene and boss
// class names) comes from a profile.Profile; the engine itself is
// game-agnostic.
package engine
