// Package harness provides conformance testing for the split engine.
//
// The harness loads a scenario, replays its scripted game-state changes
// against the real engine tick by tick, and validates the resulting command
// trace and final timer state.
//
// # Scenario Format
//
// Scenarios are defined in YAML files:
//
//	name: story_opening
//	description: "What this scenario validates"
//	profile: superstars
//	session: story-opening-001
//	settings:
//	  enable_all: true
//	  disable: [start_trip]
//	ticks:
//	  - game_mode: 0
//	  - first_play: [{mode: story, pending: false}]
//	  - loading: true
//	  - {}
//	  - loading: false
//	    scene_class: GameSceneController
//	    stage: 10100
//	  - goal: true
//	  - goal: false
//	assertions:
//	  - type: trace_order
//	    commands: [start, resume_game_time, pause_game_time]
//	  - type: trace_count
//	    command: split
//	    count: 1
//	  - type: final_state
//	    state: running
//
// Each tick entry mutates the simulated game state and then runs exactly one
// engine tick; an empty entry runs a tick with nothing changed. The same
// scenario always produces a byte-identical trace, which is what makes
// golden comparison possible.
//
// # Assertion Types
//
//   - trace_contains: a command appears in the trace (optionally at a tick)
//   - trace_order: commands appear in this relative order
//   - trace_count: a command appears exactly N times
//   - final_state: the timer ends in the given state
package harness
