// Package config exposes the user's toggle settings to the decision engine.
//
// Settings are owned by the host (a timer front-end with a settings UI);
// the engine only ever sees this read-only view and consults it fresh on
// every tick, so toggles flipped mid-run take effect on the next tick
// without any change-detection machinery.
package config

// View is a flat, read-only mapping of toggle name to enabled state.
// Unknown toggles report false.
type View interface {
	Toggle(name string) bool
}

// Defaults builds the all-enabled view for the given toggle names. Hosts
// without a settings UI run every declared toggle switched on.
func Defaults(toggles []string) Static {
	out := make(Static, len(toggles))
	for _, name := range toggles {
		out[name] = true
	}
	return out
}

// Static is a fixed in-memory View, used by tests and the simulator.
type Static map[string]bool

// Toggle implements View.
func (s Static) Toggle(name string) bool {
	return s[name]
}

// Enable returns a copy of s with the named toggles enabled.
func (s Static) Enable(names ...string) Static {
	out := make(Static, len(s)+len(names))
	for k, v := range s {
		out[k] = v
	}
	for _, n := range names {
		out[n] = true
	}
	return out
}

// Disable returns a copy of s with the named toggles disabled.
func (s Static) Disable(names ...string) Static {
	out := make(Static, len(s))
	for k, v := range s {
		out[k] = v
	}
	for _, n := range names {
		out[n] = false
	}
	return out
}
