package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario is one scripted playthrough: the profile under test, the user's
// toggle settings, the per-tick game-state changes, and the assertions on
// the resulting trace.
type Scenario struct {
	// Name uniquely identifies the scenario; it is also the golden file name.
	Name string `yaml:"name"`

	// Description explains what the scenario validates.
	Description string `yaml:"description"`

	// Profile names the builtin profile to run against. Empty means the
	// default profile.
	Profile string `yaml:"profile,omitempty"`

	// Session is the fixed session token. Empty defaults to
	// "test-session-default" for deterministic golden comparison.
	Session string `yaml:"session,omitempty"`

	// Settings builds the toggle view the engine consults.
	Settings Settings `yaml:"settings"`

	// Ticks scripts the playthrough: each entry mutates the simulated game
	// and runs one engine tick.
	Ticks []TickStep `yaml:"ticks"`

	// Assertions validate the trace and the final timer state.
	Assertions []Assertion `yaml:"assertions"`
}

// Settings describes the toggle view. EnableAll switches every toggle the
// profile declares on before applying the explicit lists.
type Settings struct {
	EnableAll bool     `yaml:"enable_all,omitempty"`
	Enable    []string `yaml:"enable,omitempty"`
	Disable   []string `yaml:"disable,omitempty"`
}

// TickStep is one tick's worth of game-state mutation. Nil pointer fields
// leave the corresponding state untouched; an all-zero step is an idle tick.
type TickStep struct {
	// Repeat runs this step's tick (after applying the mutations once) this
	// many times in total. Zero means once.
	Repeat int `yaml:"repeat,omitempty"`

	GameMode *uint32 `yaml:"game_mode,omitempty"`
	Loading  *bool   `yaml:"loading,omitempty"`

	// SceneClass loads a scene controller of this class; UnloadScene drops
	// the controller entirely.
	SceneClass  string `yaml:"scene_class,omitempty"`
	UnloadScene bool   `yaml:"unload_scene,omitempty"`

	Stage      *uint32 `yaml:"stage,omitempty"`
	Goal       *bool   `yaml:"goal,omitempty"`
	Result     *bool   `yaml:"result,omitempty"`
	TimeAttack *bool   `yaml:"time_attack,omitempty"`

	// Boss links an active boss object; BossDefeated moves it to its
	// defeated state; ClearBoss unlinks it.
	Boss         *BossStep `yaml:"boss,omitempty"`
	BossDefeated bool      `yaml:"boss_defeated,omitempty"`
	ClearBoss    bool      `yaml:"clear_boss,omitempty"`

	// FirstPlay flips per-mode first-play-pending flags in the save slot.
	FirstPlay []FirstPlayStep `yaml:"first_play,omitempty"`

	Scene     string `yaml:"scene,omitempty"`
	NextScene string `yaml:"next_scene,omitempty"`

	ElapsedMS *uint64 `yaml:"elapsed_ms,omitempty"`

	// BreakSave and FixSave script a save-manager read failure.
	BreakSave bool `yaml:"break_save,omitempty"`
	FixSave   bool `yaml:"fix_save,omitempty"`
}

// BossStep describes the boss object a tick links in.
type BossStep struct {
	Class string `yaml:"class"`
	State uint8  `yaml:"state"`
}

// FirstPlayStep flips one mode branch's first-play-pending flag.
type FirstPlayStep struct {
	Mode    string `yaml:"mode"`
	Pending bool   `yaml:"pending"`
}

// Assertion validates the trace or the final timer state.
type Assertion struct {
	// Type is one of the Assert* constants.
	Type string `yaml:"type"`

	// Command is the command name (trace_contains, trace_count).
	Command string `yaml:"command,omitempty"`

	// Tick pins trace_contains to a specific tick; zero means any tick.
	Tick int64 `yaml:"tick,omitempty"`

	// Count is the expected number of occurrences (trace_count).
	Count int `yaml:"count"`

	// Commands is the expected relative order (trace_order).
	Commands []string `yaml:"commands,omitempty"`

	// State is the expected final timer state (final_state).
	State string `yaml:"state,omitempty"`
}

// Assertion type constants.
const (
	AssertTraceContains = "trace_contains"
	AssertTraceOrder    = "trace_order"
	AssertTraceCount    = "trace_count"
	AssertFinalState    = "final_state"
)

// LoadScenario reads and parses a scenario YAML file. Unknown fields are
// rejected so a typo fails loudly instead of silently skipping a mutation.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read scenario: %w", err)
	}
	return ParseScenario(data)
}

// ParseScenario parses scenario YAML from memory.
func ParseScenario(data []byte) (*Scenario, error) {
	var s Scenario
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil {
		return nil, fmt.Errorf("parse scenario: %w", err)
	}
	if err := validateScenario(&s); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}
	return &s, nil
}

func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Ticks) == 0 {
		return fmt.Errorf("ticks list is required and must be non-empty")
	}

	for i, step := range s.Ticks {
		if step.Repeat < 0 {
			return fmt.Errorf("ticks[%d]: repeat must be non-negative", i)
		}
		if step.Boss != nil && step.Boss.Class == "" {
			return fmt.Errorf("ticks[%d]: boss needs a class", i)
		}
		for j, fp := range step.FirstPlay {
			if fp.Mode == "" {
				return fmt.Errorf("ticks[%d].first_play[%d]: mode is required", i, j)
			}
		}
	}

	for i, a := range s.Assertions {
		if err := validateAssertion(i, &a); err != nil {
			return err
		}
	}
	return nil
}

func validateAssertion(index int, a *Assertion) error {
	switch a.Type {
	case AssertTraceContains:
		if a.Command == "" {
			return fmt.Errorf("assertions[%d]: command is required for trace_contains", index)
		}
	case AssertTraceOrder:
		if len(a.Commands) == 0 {
			return fmt.Errorf("assertions[%d]: commands list is required for trace_order", index)
		}
	case AssertTraceCount:
		if a.Command == "" {
			return fmt.Errorf("assertions[%d]: command is required for trace_count", index)
		}
		if a.Count < 0 {
			return fmt.Errorf("assertions[%d]: count must be non-negative", index)
		}
	case AssertFinalState:
		if a.State == "" {
			return fmt.Errorf("assertions[%d]: state is required for final_state", index)
		}
	case "":
		return fmt.Errorf("assertions[%d]: type is required", index)
	default:
		return fmt.Errorf("assertions[%d]: unknown assertion type %q", index, a.Type)
	}
	return nil
}
