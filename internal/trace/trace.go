package trace

import (
	"fmt"
	"strings"
)

// Event is one timer command, stamped with the tick that produced it and
// its position in the session's total order.
type Event struct {
	// Seq is the event's position in the trace, starting at 1.
	Seq int64 `json:"seq"`

	// Tick is the engine tick that issued the command.
	Tick int64 `json:"tick"`

	// Command is the timer command name (timer.Cmd* constants).
	Command string `json:"command"`

	// ElapsedMS carries the millisecond payload of a set_elapsed_time
	// command; zero otherwise.
	ElapsedMS int64 `json:"elapsed_ms,omitempty"`
}

// Trace is the complete command log of one session.
type Trace struct {
	Session string
	Profile string
	Events  []Event
}

// New creates an empty trace for a session.
func New(session, profile string) *Trace {
	return &Trace{Session: session, Profile: profile}
}

// Append adds a command at the given tick, assigning the next sequence
// number.
func (t *Trace) Append(tick int64, command string) {
	t.Events = append(t.Events, Event{
		Seq:     int64(len(t.Events)) + 1,
		Tick:    tick,
		Command: command,
	})
}

// AppendElapsed adds a set_elapsed_time command with its payload.
func (t *Trace) AppendElapsed(tick int64, command string, ms int64) {
	t.Events = append(t.Events, Event{
		Seq:       int64(len(t.Events)) + 1,
		Tick:      tick,
		Command:   command,
		ElapsedMS: ms,
	})
}

// Render formats the trace as stable, line-oriented text for golden files
// and the simulator's output.
func (t *Trace) Render() string {
	var b strings.Builder
	fmt.Fprintf(&b, "profile: %s\n", t.Profile)
	fmt.Fprintf(&b, "session: %s\n", t.Session)
	fmt.Fprintf(&b, "events: %d\n", len(t.Events))
	for _, e := range t.Events {
		if e.ElapsedMS != 0 {
			fmt.Fprintf(&b, "%04d tick=%d %s ms=%d\n", e.Seq, e.Tick, e.Command, e.ElapsedMS)
			continue
		}
		fmt.Fprintf(&b, "%04d tick=%d %s\n", e.Seq, e.Tick, e.Command)
	}
	return b.String()
}

// canonical returns the trace as plain values for canonical serialization.
// ElapsedMS is included only when set, so traces without elapsed payloads
// hash identically across encoder versions.
func (t *Trace) canonical() map[string]any {
	events := make([]any, len(t.Events))
	for i, e := range t.Events {
		ev := map[string]any{
			"seq":     e.Seq,
			"tick":    e.Tick,
			"command": e.Command,
		}
		if e.ElapsedMS != 0 {
			ev["elapsed_ms"] = e.ElapsedMS
		}
		events[i] = ev
	}
	return map[string]any{
		"session": t.Session,
		"profile": t.Profile,
		"events":  events,
	}
}

// MarshalCanonical serializes the trace as RFC 8785 canonical JSON.
func (t *Trace) MarshalCanonical() ([]byte, error) {
	return MarshalCanonical(t.canonical())
}

// ID returns the trace's content-addressed identity.
func (t *Trace) ID() (string, error) {
	data, err := t.MarshalCanonical()
	if err != nil {
		return "", fmt.Errorf("trace id: %w", err)
	}
	return hashWithDomain(DomainTrace, data), nil
}
