package engine

import (
	"github.com/dvrnko/autosplit/internal/profile"
	"github.com/dvrnko/autosplit/internal/watch"
)

// Snapshot is the complete set of watched values for one attach session.
// Created empty when a session begins, updated exactly once per tick by the
// sampling pass, and discarded when the target process closes.
//
// Fields that only exist inside gameplay scenes (LevelID, Goal,
// BossDefeated) hold their previous samples while a menu or cutscene
// controller is active; see Sampler for the gating rule.
type Snapshot struct {
	// NewGame holds, per mode branch, the slot-scoped new-game trigger: it
	// flips true on the tick the branch's first play actually begins.
	NewGame map[string]*watch.Value[bool]

	// GameMode is the active story-branch identifier.
	GameMode watch.Value[uint32]

	// LevelID is the numeric identifier of the current stage.
	LevelID watch.Value[uint32]

	// Loading is the explicit transition flag (profiles with a "flag"
	// loading binding; other bindings derive loading from Scene or LevelID).
	Loading watch.Value[bool]

	// Goal reports the goal/result sequence. Raised on entering the goal
	// state, cleared on leaving it; the falling edge is the split trigger.
	Goal watch.Value[bool]

	// BossDefeated reports whether the active boss has reached its defeated
	// state.
	BossDefeated watch.Value[bool]

	// Scene and NextScene are the currently loaded scene name and the scene
	// queued to load next, for profiles with scene-based signals.
	Scene     watch.Value[string]
	NextScene watch.Value[string]

	// Elapsed is the game's own elapsed-time counter in milliseconds, for
	// games that expose an authoritative value.
	Elapsed watch.Value[uint64]
}

// NewSnapshot creates an empty snapshot with one new-game watcher per mode
// branch referenced by the profile's first-play start triggers.
func NewSnapshot(p *profile.Profile) *Snapshot {
	s := &Snapshot{NewGame: make(map[string]*watch.Value[bool])}
	for _, t := range p.Start {
		if t.Kind == profile.StartFirstPlay && t.Mode != "" {
			s.NewGame[t.Mode] = &watch.Value[bool]{}
		}
	}
	return s
}
