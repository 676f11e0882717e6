package engine

import (
	"time"

	"github.com/dvrnko/autosplit/internal/config"
	"github.com/dvrnko/autosplit/internal/profile"
	"github.com/dvrnko/autosplit/internal/watch"
)

// The decision layer: pure functions of the latest snapshot, the profile,
// and the user's toggles. Absent samples are "no signal", never false/zero,
// so a session in which a quantity has not yet been read cannot trigger
// anything. An unchanged snapshot produces no new edge and therefore no
// action.

// loadingSignal derives the boolean loading pair from whichever concrete
// signal the profile binds. The second return is false while the underlying
// quantity has never been sampled.
func loadingSignal(snap *Snapshot, p *profile.Profile) (watch.Pair[bool], bool) {
	switch p.Loading.Kind {
	case profile.LoadingFlag:
		return snap.Loading.Pair()

	case profile.LoadingScene:
		pair, ok := snap.Scene.Pair()
		if !ok {
			return watch.Pair[bool]{}, false
		}
		return watch.Pair[bool]{
			Previous: containsString(p.Loading.Scenes, pair.Previous),
			Current:  containsString(p.Loading.Scenes, pair.Current),
		}, true

	case profile.LoadingMenuLevel:
		pair, ok := snap.LevelID.Pair()
		if !ok {
			return watch.Pair[bool]{}, false
		}
		return watch.Pair[bool]{
			Previous: pair.Previous == p.Loading.MenuLevel,
			Current:  pair.Current == p.Loading.MenuLevel,
		}, true

	default:
		return watch.Pair[bool]{}, false
	}
}

// elapsedTime returns the game's authoritative elapsed time, when the game
// exposes one. None of the observed games do; the contract exists for
// profiles whose layout resolves an elapsed counter.
func elapsedTime(snap *Snapshot) (time.Duration, bool) {
	ms, ok := snap.Elapsed.Current()
	if !ok {
		return 0, false
	}
	return time.Duration(ms) * time.Millisecond, true
}

// shouldReset reports whether the run should be abandoned this tick.
// Evaluated before split; a reset suppresses a split in the same tick.
func shouldReset(snap *Snapshot, p *profile.Profile, cfg config.View) bool {
	switch p.Reset.Kind {
	case profile.ResetSceneEnter:
		if p.Reset.Toggle != "" && !cfg.Toggle(p.Reset.Toggle) {
			return false
		}
		return snap.Scene.ChangedTo(p.Reset.Scene)
	default:
		return false
	}
}

// shouldSplit reports whether a segment boundary was crossed this tick.
//
// The terminal/boss condition is checked first: a boss-defeated edge or a
// rising goal edge while the previous level id is the final stage wins
// outright for branches that declare a final toggle. Otherwise an ordinary
// level completion is the *falling* edge of the goal flag - the goal screen
// must fully resolve first - keyed by the level id captured when the edge
// was observed (the previous sample) into the branch's level table.
// Time-attack branches are never split-tracked.
func shouldSplit(snap *Snapshot, p *profile.Profile, cfg config.View) bool {
	mode, okMode := snap.GameMode.Current()
	level, okLevel := snap.LevelID.Pair()
	goal, okGoal := snap.Goal.Pair()
	if !okMode || !okLevel || !okGoal {
		return false
	}

	branch, okBranch := p.ModeByID(mode)

	// Final boss first.
	if p.FinalStage != 0 && level.Previous == p.FinalStage &&
		(snap.BossDefeated.ChangedTo(true) || goal.ChangedTo(true)) {
		if okBranch && branch.Final != "" {
			return cfg.Toggle(branch.Final)
		}
	}

	if !okBranch || branch.TimeAttack {
		return false
	}

	// Boss-only branches (the final story) split on the defeated edge.
	if branch.Boss != "" {
		return snap.BossDefeated.ChangedTo(true) && cfg.Toggle(branch.Boss)
	}

	if !goal.ChangedTo(false) {
		return false
	}
	toggle, known := branch.Splits[level.Previous]
	return known && cfg.Toggle(toggle)
}

// shouldStart reports whether a run should begin this tick. The caller only
// invokes it while the timer is not running. Triggers are OR'ed; each is
// gated by its own toggle.
func shouldStart(snap *Snapshot, p *profile.Profile, cfg config.View) bool {
	for _, t := range p.Start {
		if !cfg.Toggle(t.Toggle) {
			continue
		}
		switch t.Kind {
		case profile.StartFirstPlay:
			if w := snap.NewGame[t.Mode]; w != nil && w.ChangedTo(true) {
				return true
			}
		case profile.StartModeEnter:
			if snap.GameMode.ChangedTo(t.Value) {
				return true
			}
		case profile.StartSceneAdvance:
			if snap.Scene.CurrentOr("") == t.MenuScene &&
				snap.NextScene.ChangedTo(t.NextScene) {
				return true
			}
		}
	}
	return false
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
