package mem

// Layout is the complete set of resolved chains and offsets one attach
// session needs. A Resolver produces it once, after the managed runtime's
// class metadata becomes readable; the sampling pass reuses it every tick.
//
// Chains point at static roots and survive for the whole session. Offsets
// are relative to objects whose addresses move between ticks (the current
// scene controller, the active save slot, the active boss) and are combined
// with freshly read pointers on every pass.
type Layout struct {
	// Loading is the chain to the scene-transition flag.
	Loading Chain

	// GameMode is the chain to the active game-mode identifier
	// (story branch selector).
	GameMode Chain

	// SceneController is the chain to the current scene-controller object.
	// The object is an instance of one of several concrete classes; its
	// class name gates every level-scoped read.
	SceneController Chain

	// TypeName holds the offsets from a managed object to its class-name
	// C string (object -> klass -> name).
	TypeName []uint64

	// Scenes locates the currently loaded scene name and the scene queued
	// to load next. Optional: zero chains mean the game exposes no
	// scene-name signal and scene-based triggers stay silent.
	Scenes SceneLayout

	// Elapsed is the chain to the game's own elapsed-time counter in
	// milliseconds. Optional: a zero chain means wall-clock polling only.
	Elapsed Chain

	Save  SaveLayout
	Stage StageLayout
	Boss  BossLayout
}

// SceneLayout locates the scene-name strings.
type SceneLayout struct {
	Current Chain
	Next    Chain
}

// SaveLayout locates the slot-scoped save data used by the start triggers.
// The active slot index is itself read from memory, so the slot entry
// address must be recomputed every tick.
type SaveLayout struct {
	// Root is the chain to the save-manager instance.
	Root Chain

	// CurrentSlot is the offset of the active slot index in the manager.
	CurrentSlot uint64

	// SaveData and Slots walk from the manager to the slot pointer array.
	SaveData uint64
	Slots    uint64

	// SlotsHeader is the offset of the first element in the slot array
	// (managed array header size).
	SlotsHeader uint64

	// FirstPlay maps a mode-branch name to the offset of its
	// first-play flag within a slot entry.
	FirstPlay map[string]uint64
}

// StageLayout holds offsets relative to the current scene controller.
// These fields only exist while a game scene is live; the sampling pass
// gates every read through the scene-controller type-name check.
type StageLayout struct {
	// StageInfo is the offset of the stage-info object, StageID the offset
	// of the numeric level identifier within it.
	StageInfo uint64
	StageID   uint64

	// GoalSequence and ResultSequence are the goal-screen flags. Either one
	// being set means the goal sequence is active.
	GoalSequence   uint64
	ResultSequence uint64

	// TimeAttack is the time-attack mode flag. Time-attack runs are not
	// split-tracked.
	TimeAttack uint64
}

// BossLayout locates the active boss object and its state byte.
type BossLayout struct {
	// Object is the offset of the active-boss pointer in the scene
	// controller.
	Object uint64

	// State is the offset of the state byte within the boss object.
	State uint64

	// DefeatedState is the state value that marks the boss as defeated.
	DefeatedState uint8
}
