package engine

import (
	"log/slog"

	"github.com/dvrnko/autosplit/internal/mem"
	"github.com/dvrnko/autosplit/internal/profile"
)

// typeNameMax bounds class-name reads; managed class names are short.
const typeNameMax = 128

// sceneNameMax bounds scene-name reads.
const sceneNameMax = 128

// Sampler performs the once-per-tick sampling pass: it reads every tracked
// quantity through the resolved layout and pushes the result (or failure)
// into the matching watched value. Pass never fails - every read error is
// absorbed by the watched values' fallback policy.
//
// CONTEXT GATING: level-scoped fields (level id, goal flag, boss state) only
// exist while a gameplay scene controller is live. Blindly failing open on
// those reads would corrupt the edge-detection history with out-of-context
// values, so the pass derives "is a game scene live" from the controller's
// class name first and holds the previous samples whenever it is not - or
// whenever the class name itself cannot be read.
type Sampler struct {
	prof   *profile.Profile
	layout *mem.Layout
	logger *slog.Logger
}

// NewSampler creates a sampling pass over a resolved layout.
func NewSampler(p *profile.Profile, layout *mem.Layout, logger *slog.Logger) *Sampler {
	if logger == nil {
		logger = slog.Default()
	}
	return &Sampler{prof: p, layout: layout, logger: logger}
}

// Pass samples every tracked quantity into snap. Read order is
// significant only where one quantity gates another: the scene-controller
// class name is computed first because it scopes the level reads, and the
// save-slot pointer is recomputed before the per-mode new-game flags.
func (s *Sampler) Pass(r mem.Reader, snap *Snapshot) {
	ctrl, ctrlOK := s.controller(r)
	inGame := false
	if ctrlOK {
		name, err := mem.ReadCString(r, mem.Chain{Base: ctrl, Offsets: s.layout.TypeName}, typeNameMax)
		inGame = err == nil && s.prof.IsGameScene(name)
	}

	s.passScenes(r, snap)
	s.passSave(r, snap)
	s.passStage(r, snap, ctrl, inGame)
	s.passBoss(r, snap, ctrl, ctrlOK)

	mode, err := mem.ReadU32(r, s.layout.GameMode)
	snap.GameMode.Update(mode, err == nil)

	s.passLoading(r, snap)

	if !s.layout.Elapsed.IsZero() {
		ms, err := mem.ReadU64(r, s.layout.Elapsed)
		snap.Elapsed.Update(ms, err == nil)
	}
}

// controller reads the current scene-controller object address.
func (s *Sampler) controller(r mem.Reader) (mem.Address, bool) {
	ptr, err := mem.ReadU64(r, s.layout.SceneController)
	if err != nil || ptr == 0 {
		return 0, false
	}
	return mem.Address(ptr), true
}

func (s *Sampler) passScenes(r mem.Reader, snap *Snapshot) {
	if !s.layout.Scenes.Current.IsZero() {
		name, err := mem.ReadCString(r, s.layout.Scenes.Current, sceneNameMax)
		snap.Scene.Update(name, err == nil)
	}
	if !s.layout.Scenes.Next.IsZero() {
		name, err := mem.ReadCString(r, s.layout.Scenes.Next, sceneNameMax)
		snap.NextScene.Update(name, err == nil)
	}
}

// passSave recomputes the active save-slot entry and samples the per-mode
// new-game triggers out of it. The trigger value is the negation of the
// slot's first-play-pending flag, so it flips true on the tick a fresh
// playthrough actually begins. An unreadable slot reads as "pending absent"
// (trigger true): the first sample seeds the watcher, so a stale read at
// attach time can never fabricate an edge.
func (s *Sampler) passSave(r mem.Reader, snap *Snapshot) {
	save := &s.layout.Save

	var slot mem.Address
	slotOK := false
	if mgr, err := mem.ReadU64(r, save.Root); err == nil {
		idx, err := r.U32(mem.Address(mgr) + mem.Address(save.CurrentSlot))
		if err != nil {
			idx = 0
		}
		slot, slotOK = s.slotEntry(r, mem.Address(mgr), idx)
	}

	for mode, w := range snap.NewGame {
		off, known := save.FirstPlay[mode]
		if !known {
			w.Hold()
			continue
		}
		pending := false
		if slotOK {
			if v, err := r.Bool(slot + mem.Address(off)); err == nil {
				pending = v
			}
		}
		w.Set(!pending)
	}
}

func (s *Sampler) slotEntry(r mem.Reader, mgr mem.Address, idx uint32) (mem.Address, bool) {
	save := &s.layout.Save
	data, err := r.U64(mgr + mem.Address(save.SaveData))
	if err != nil {
		return 0, false
	}
	slots, err := r.U64(mem.Address(data) + mem.Address(save.Slots))
	if err != nil {
		return 0, false
	}
	entry, err := r.U64(mem.Address(slots) + mem.Address(save.SlotsHeader) + mem.Address(idx)*8)
	if err != nil || entry == 0 {
		return 0, false
	}
	return mem.Address(entry), true
}

// passStage samples the level id and goal flag, gated on a live game scene.
func (s *Sampler) passStage(r mem.Reader, snap *Snapshot, ctrl mem.Address, inGame bool) {
	stage := &s.layout.Stage

	if !inGame {
		snap.LevelID.Hold()
		snap.Goal.Hold()
		return
	}

	level, err := mem.ReadU32(r, mem.Chain{Base: ctrl + mem.Address(stage.StageInfo), Offsets: []uint64{stage.StageID}})
	snap.LevelID.Update(level, err == nil)
	if err != nil {
		s.logger.Debug("stage id unreadable, holding", "ctrl", uint64(ctrl))
	}

	// Time-attack runs are not split-tracked: the goal flag reads as false
	// for the whole run so no goal edge can ever fire.
	if ta, err := r.Bool(ctrl + mem.Address(stage.TimeAttack)); err == nil && ta {
		snap.Goal.Set(false)
		return
	}

	goal := readFlag(r, ctrl, stage.GoalSequence) || readFlag(r, ctrl, stage.ResultSequence)
	snap.Goal.Set(goal)
}

// passBoss samples the boss-defeated flag. The active-boss pointer links to
// an object of varying class; only profiles' known boss classes are
// consulted, everything else holds.
func (s *Sampler) passBoss(r mem.Reader, snap *Snapshot, ctrl mem.Address, ctrlOK bool) {
	boss := &s.layout.Boss

	if !ctrlOK {
		snap.BossDefeated.Hold()
		return
	}
	obj, err := r.U64(ctrl + mem.Address(boss.Object))
	if err != nil || obj == 0 {
		snap.BossDefeated.Hold()
		return
	}
	name, err := mem.ReadCString(r, mem.Chain{Base: mem.Address(obj), Offsets: s.layout.TypeName}, typeNameMax)
	if err != nil || !s.prof.IsBoss(name) {
		snap.BossDefeated.Hold()
		return
	}
	state, err := r.U8(mem.Address(obj) + mem.Address(boss.State))
	snap.BossDefeated.Update(state == boss.DefeatedState, err == nil)
}

// passLoading samples the explicit transition flag when the profile binds
// loading to one. Scene and menu-level bindings derive loading from the
// Scene and LevelID watchers instead; see loadingSignal.
func (s *Sampler) passLoading(r mem.Reader, snap *Snapshot) {
	if s.prof.Loading.Kind != profile.LoadingFlag {
		return
	}
	v, err := mem.ReadBool(r, s.layout.Loading)
	snap.Loading.Update(v, err == nil)
}

// readFlag reads a bool field off an object, treating failure as false.
// Used only for the goal-sequence flags, whose containing object is already
// known to be live.
func readFlag(r mem.Reader, base mem.Address, off uint64) bool {
	v, err := r.Bool(base + mem.Address(off))
	return err == nil && v
}
