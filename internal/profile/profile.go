package profile

import "fmt"

// LoadingKind selects which concrete signal a profile binds its boolean
// loading signal to. The observed games disagree on how "loading" is
// encoded, so the binding is per-profile data rather than engine code.
type LoadingKind string

const (
	// LoadingFlag reads an explicit transition flag.
	LoadingFlag LoadingKind = "flag"

	// LoadingScene treats membership of the current scene name in a fixed
	// set as loading.
	LoadingScene LoadingKind = "scene"

	// LoadingMenuLevel treats "level id equals the menu sentinel" as
	// loading.
	LoadingMenuLevel LoadingKind = "menu_level"
)

// StartKind names the run-start triggers a profile may enable. Triggers are
// OR'ed: any one firing starts the timer.
type StartKind string

const (
	// StartFirstPlay fires when a mode branch's first-play flag flips on in
	// slot-scoped save data.
	StartFirstPlay StartKind = "first_play"

	// StartModeEnter fires when the game-mode identifier transitions into a
	// specific value.
	StartModeEnter StartKind = "mode_enter"

	// StartSceneAdvance fires when the game proceeds past a known menu
	// scene into the scene queued to load next.
	StartSceneAdvance StartKind = "scene_advance"
)

// ResetKind names the reset triggers.
type ResetKind string

const (
	// ResetNone disables automatic resets.
	ResetNone ResetKind = "none"

	// ResetSceneEnter fires when the current scene name transitions into a
	// specific scene (typically the title menu).
	ResetSceneEnter ResetKind = "scene_enter"
)

// Profile is one game's complete configuration. Lookup-only at runtime,
// never mutated.
type Profile struct {
	// Name identifies the profile in logs, traces, and the CLI.
	Name string

	// Process lists the executable names the host watches for.
	Process []string

	// GameScenes lists the scene-controller class names whose instances
	// carry level-scoped fields. Reads of those fields are gated on the
	// current controller being one of these.
	GameScenes []string

	// Bosses lists the boss class names whose state byte is consulted for
	// the boss-defeated flag.
	Bosses []string

	// Loading binds the boolean loading signal to a concrete source.
	Loading LoadingSignal

	// Start lists the run-start triggers, OR'ed together.
	Start []StartTrigger

	// Reset configures the automatic reset trigger.
	Reset ResetTrigger

	// FinalStage is the level id of the terminal stage. A boss-defeated or
	// goal edge observed in this stage splits via the mode's Final toggle.
	FinalStage uint32

	// Modes lists the story branches keyed by the game-mode identifier.
	Modes []Mode
}

// LoadingSignal is the per-profile binding of the loading signal.
type LoadingSignal struct {
	Kind LoadingKind

	// Scenes is the loading-scene set for LoadingScene.
	Scenes []string

	// MenuLevel is the sentinel level id for LoadingMenuLevel.
	MenuLevel uint32
}

// StartTrigger is one way a run may begin. Every trigger is gated by its
// own enable toggle.
type StartTrigger struct {
	Kind StartKind

	// Mode is the branch whose first-play flag is watched (StartFirstPlay).
	Mode string

	// Value is the game-mode identifier entered (StartModeEnter).
	Value uint32

	// MenuScene and NextScene describe the menu-to-cutscene transition
	// (StartSceneAdvance): the run starts when the current scene is still
	// MenuScene and NextScene is queued to load.
	MenuScene string
	NextScene string

	// Toggle enables or disables this trigger.
	Toggle string
}

// ResetTrigger configures the automatic reset.
type ResetTrigger struct {
	Kind ResetKind

	// Scene is the scene whose entry resets the run (ResetSceneEnter).
	Scene string

	// Toggle enables or disables the trigger.
	Toggle string
}

// Mode is one story branch: its numeric game-mode identifier, the level
// table for ordinary splits, and the toggles for its terminal conditions.
type Mode struct {
	Name string

	// ID is the game-mode identifier value for this branch.
	ID uint32

	// Splits maps a level id to the toggle controlling its split. Keys are
	// unique per branch.
	Splits map[uint32]string

	// Final is the toggle for the terminal-stage split (boss defeated or
	// goal edge while in FinalStage). Empty when the branch has no terminal
	// stage of its own.
	Final string

	// Boss is the toggle for a pure boss-defeated split anywhere in the
	// branch (used by boss-rush style branches). Empty when unused.
	Boss string

	// TimeAttack marks the branch as a time-attack variant whose runs are
	// not split-tracked.
	TimeAttack bool
}

// ModeByID returns the branch with the given game-mode identifier.
func (p *Profile) ModeByID(id uint32) (*Mode, bool) {
	for i := range p.Modes {
		if p.Modes[i].ID == id {
			return &p.Modes[i], true
		}
	}
	return nil, false
}

// IsGameScene reports whether name is one of the profile's gameplay
// scene-controller classes.
func (p *Profile) IsGameScene(name string) bool {
	for _, s := range p.GameScenes {
		if s == name {
			return true
		}
	}
	return false
}

// IsBoss reports whether name is one of the profile's boss classes.
func (p *Profile) IsBoss(name string) bool {
	for _, b := range p.Bosses {
		if b == name {
			return true
		}
	}
	return false
}

// Toggles returns every toggle name the profile references, in a stable
// order: start triggers, reset, then each mode's splits and terminals.
// Used to build the default all-enabled settings view.
func (p *Profile) Toggles() []string {
	var out []string
	seen := make(map[string]bool)
	add := func(name string) {
		if name == "" || seen[name] {
			return
		}
		seen[name] = true
		out = append(out, name)
	}

	for _, t := range p.Start {
		add(t.Toggle)
	}
	add(p.Reset.Toggle)
	for _, m := range p.Modes {
		// Level ids in ascending order keep the listing stable.
		for _, id := range sortedKeys(m.Splits) {
			add(m.Splits[id])
		}
		add(m.Final)
		add(m.Boss)
	}
	return out
}

func sortedKeys(m map[uint32]string) []uint32 {
	keys := make([]uint32, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0 && keys[j-1] > keys[j]; j-- {
			keys[j-1], keys[j] = keys[j], keys[j-1]
		}
	}
	return keys
}

// Validate checks cross-field consistency that the CUE schema cannot
// express. Returns all problems found, not just the first.
func (p *Profile) Validate() []error {
	var errs []error

	if p.Name == "" {
		errs = append(errs, fmt.Errorf("profile name is required"))
	}
	if len(p.Process) == 0 {
		errs = append(errs, fmt.Errorf("profile %q: at least one process name is required", p.Name))
	}

	switch p.Loading.Kind {
	case LoadingFlag:
	case LoadingScene:
		if len(p.Loading.Scenes) == 0 {
			errs = append(errs, fmt.Errorf("profile %q: loading signal %q needs at least one scene", p.Name, p.Loading.Kind))
		}
	case LoadingMenuLevel:
	default:
		errs = append(errs, fmt.Errorf("profile %q: unknown loading signal %q", p.Name, p.Loading.Kind))
	}

	for i, t := range p.Start {
		switch t.Kind {
		case StartFirstPlay:
			if t.Mode == "" {
				errs = append(errs, fmt.Errorf("profile %q: start trigger %d: first_play needs a mode", p.Name, i))
			}
		case StartModeEnter:
		case StartSceneAdvance:
			if t.MenuScene == "" || t.NextScene == "" {
				errs = append(errs, fmt.Errorf("profile %q: start trigger %d: scene_advance needs menu and next scenes", p.Name, i))
			}
		default:
			errs = append(errs, fmt.Errorf("profile %q: start trigger %d: unknown kind %q", p.Name, i, t.Kind))
		}
		if t.Toggle == "" {
			errs = append(errs, fmt.Errorf("profile %q: start trigger %d: toggle is required", p.Name, i))
		}
	}

	switch p.Reset.Kind {
	case ResetNone, "":
	case ResetSceneEnter:
		if p.Reset.Scene == "" {
			errs = append(errs, fmt.Errorf("profile %q: scene_enter reset needs a scene", p.Name))
		}
	default:
		errs = append(errs, fmt.Errorf("profile %q: unknown reset kind %q", p.Name, p.Reset.Kind))
	}

	seenIDs := make(map[uint32]string)
	seenNames := make(map[string]bool)
	for _, m := range p.Modes {
		if m.Name == "" {
			errs = append(errs, fmt.Errorf("profile %q: mode name is required", p.Name))
			continue
		}
		if seenNames[m.Name] {
			errs = append(errs, fmt.Errorf("profile %q: duplicate mode name %q", p.Name, m.Name))
		}
		seenNames[m.Name] = true
		if prev, dup := seenIDs[m.ID]; dup {
			errs = append(errs, fmt.Errorf("profile %q: modes %q and %q share game-mode id %d", p.Name, prev, m.Name, m.ID))
		}
		seenIDs[m.ID] = m.Name
	}

	// first_play triggers must reference a declared mode
	for i, t := range p.Start {
		if t.Kind != StartFirstPlay || t.Mode == "" {
			continue
		}
		if !seenNames[t.Mode] {
			errs = append(errs, fmt.Errorf("profile %q: start trigger %d references undeclared mode %q", p.Name, i, t.Mode))
		}
	}

	return errs
}
