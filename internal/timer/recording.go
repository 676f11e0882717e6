package timer

import "time"

// Command names as they appear in recorded traces.
const (
	CmdStart   = "start"
	CmdSplit   = "split"
	CmdReset   = "reset"
	CmdPause   = "pause_game_time"
	CmdResume  = "resume_game_time"
	CmdElapsed = "set_elapsed_time"
)

// Record is one received command.
type Record struct {
	Command string
	Elapsed time.Duration // set only for CmdElapsed
}

// Recording is an in-memory Sink for tests and the simulator. It mimics a
// real timer's state machine: Start moves NotRunning->Running, Reset moves
// back to NotRunning, SetLoadingPaused(true) shows as Paused.
type Recording struct {
	state    State
	commands []Record
}

// NewRecording creates a recording sink in the NotRunning state.
func NewRecording() *Recording {
	return &Recording{state: NotRunning}
}

// State implements Sink.
func (r *Recording) State() State { return r.state }

// Start implements Sink.
func (r *Recording) Start() {
	r.state = Running
	r.commands = append(r.commands, Record{Command: CmdStart})
}

// Split implements Sink.
func (r *Recording) Split() {
	r.commands = append(r.commands, Record{Command: CmdSplit})
}

// Reset implements Sink.
func (r *Recording) Reset() {
	r.state = NotRunning
	r.commands = append(r.commands, Record{Command: CmdReset})
}

// SetLoadingPaused implements Sink.
func (r *Recording) SetLoadingPaused(paused bool) {
	if paused {
		if r.state == Running {
			r.state = Paused
		}
		r.commands = append(r.commands, Record{Command: CmdPause})
		return
	}
	if r.state == Paused {
		r.state = Running
	}
	r.commands = append(r.commands, Record{Command: CmdResume})
}

// SetElapsedTime implements Sink.
func (r *Recording) SetElapsedTime(d time.Duration) {
	r.commands = append(r.commands, Record{Command: CmdElapsed, Elapsed: d})
}

// Commands returns every received command in order.
func (r *Recording) Commands() []Record {
	return r.commands
}

// Names returns just the command names, in order.
func (r *Recording) Names() []string {
	out := make([]string, len(r.commands))
	for i, c := range r.commands {
		out[i] = c.Command
	}
	return out
}

// TakeNames returns the command names received since the last call and
// clears the buffer. Handy for per-tick assertions.
func (r *Recording) TakeNames() []string {
	names := r.Names()
	r.commands = nil
	return names
}

// SetState forces the timer state, for tests that need a running timer
// without replaying a start trigger.
func (r *Recording) SetState(s State) { r.state = s }
