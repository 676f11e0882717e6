package testutil

import (
	"github.com/dvrnko/autosplit/internal/mem"
	"github.com/dvrnko/autosplit/internal/profile"
)

// Fixed address plan for the simulated process. Values are arbitrary but
// stable so that failure injection can target individual cells.
const (
	addrLoading   mem.Address = 0x1000
	addrGameMode  mem.Address = 0x1008
	addrCtrlPtr   mem.Address = 0x1010
	addrScene     mem.Address = 0x1020
	addrNextScene mem.Address = 0x1120
	addrSaveRoot  mem.Address = 0x1220
	addrElapsed   mem.Address = 0x1300

	objCtrl      mem.Address = 0x2000
	objStageInfo mem.Address = 0x2800
	objBoss      mem.Address = 0x3000
	objSaveMgr   mem.Address = 0x4000
	objSaveData  mem.Address = 0x4100
	objSlots     mem.Address = 0x4200
	objSlot      mem.Address = 0x4300

	strCtrlClass mem.Address = 0x5000
	strBossClass mem.Address = 0x5100
)

// Field offsets mirrored into the fixture's Layout.
const (
	offStageInfo   uint64 = 0x60
	offStageID     uint64 = 0x20
	offGoal        uint64 = 0x70
	offResult      uint64 = 0x74
	offTimeAttack  uint64 = 0x78
	offBossObject  uint64 = 0x80
	offBossState   uint64 = 0x30
	offCurrentSlot uint64 = 0x10
	offSaveData    uint64 = 0x18
	offSlots       uint64 = 0x10
	offSlotsHeader uint64 = 0x20
	offFirstPlay0  uint64 = 0x40

	bossDefeated uint8 = 5
)

// Game is a simulated observed process: a scriptable memory plus the layout
// that maps the engine's tracked quantities onto it. Tests mutate game
// state through the high-level setters between ticks, the same way the real
// game mutates its heap between polls.
//
// The save chain is installed up front with every first-play flag pending,
// so a fresh Game never fires a start trigger by accident.
type Game struct {
	mem    *Mem
	layout *mem.Layout
}

// NewGame creates a simulated process for the given profile. The save-data
// chain is live, no scene controller is loaded, and the loading flag is
// false.
func NewGame(p *profile.Profile) *Game {
	g := &Game{mem: NewMem()}

	firstPlay := make(map[string]uint64)
	i := uint64(0)
	for _, t := range p.Start {
		if t.Kind != profile.StartFirstPlay || t.Mode == "" {
			continue
		}
		firstPlay[t.Mode] = offFirstPlay0 + i*4
		i++
	}

	g.layout = &mem.Layout{
		Loading:         mem.Chain{Base: addrLoading},
		GameMode:        mem.Chain{Base: addrGameMode},
		SceneController: mem.Chain{Base: addrCtrlPtr},
		TypeName:        []uint64{0},
		Scenes: mem.SceneLayout{
			Current: mem.Chain{Base: addrScene},
			Next:    mem.Chain{Base: addrNextScene},
		},
		Save: mem.SaveLayout{
			Root:        mem.Chain{Base: addrSaveRoot},
			CurrentSlot: offCurrentSlot,
			SaveData:    offSaveData,
			Slots:       offSlots,
			SlotsHeader: offSlotsHeader,
			FirstPlay:   firstPlay,
		},
		Stage: mem.StageLayout{
			StageInfo:      offStageInfo,
			StageID:        offStageID,
			GoalSequence:   offGoal,
			ResultSequence: offResult,
			TimeAttack:     offTimeAttack,
		},
		Boss: mem.BossLayout{
			Object:        offBossObject,
			State:         offBossState,
			DefeatedState: bossDefeated,
		},
	}

	// Save chain: root -> manager -> data -> slots -> slot 0.
	g.mem.SetU64(addrSaveRoot, uint64(objSaveMgr))
	g.mem.SetU32(objSaveMgr+mem.Address(offCurrentSlot), 0)
	g.mem.SetU64(objSaveMgr+mem.Address(offSaveData), uint64(objSaveData))
	g.mem.SetU64(objSaveData+mem.Address(offSlots), uint64(objSlots))
	g.mem.SetU64(objSlots+mem.Address(offSlotsHeader), uint64(objSlot))
	for _, off := range firstPlay {
		g.mem.SetBool(objSlot+mem.Address(off), true)
	}

	g.mem.SetBool(addrLoading, false)
	g.mem.SetU64(addrCtrlPtr, 0)
	return g
}

// Reader returns the simulated memory as a mem.Reader.
func (g *Game) Reader() mem.Reader { return g.mem }

// Mem returns the raw scriptable memory for low-level failure injection.
func (g *Game) Mem() *Mem { return g.mem }

// Layout returns the resolved layout over the simulated memory.
func (g *Game) Layout() *mem.Layout { return g.layout }

// SetLoading flips the scene-transition flag.
func (g *Game) SetLoading(v bool) { g.mem.SetBool(addrLoading, v) }

// SetGameMode installs the game-mode identifier.
func (g *Game) SetGameMode(id uint32) { g.mem.SetU32(addrGameMode, id) }

// SetScene installs the current scene name.
func (g *Game) SetScene(name string) { g.mem.SetString(addrScene, name) }

// SetNextScene installs the queued scene name.
func (g *Game) SetNextScene(name string) { g.mem.SetString(addrNextScene, name) }

// EnterScene loads a scene controller of the given class. Level-scoped
// fields default to false until the matching setters run.
func (g *Game) EnterScene(class string) {
	g.mem.SetU64(addrCtrlPtr, uint64(objCtrl))
	g.mem.SetU64(objCtrl, uint64(strCtrlClass))
	g.mem.SetString(strCtrlClass, class)
	g.mem.SetBool(objCtrl+mem.Address(offGoal), false)
	g.mem.SetBool(objCtrl+mem.Address(offResult), false)
	g.mem.SetBool(objCtrl+mem.Address(offTimeAttack), false)
}

// UnloadScene drops the scene controller, as during a hard transition.
func (g *Game) UnloadScene() { g.mem.SetU64(addrCtrlPtr, 0) }

// SetStage installs the stage-info object with the given level id.
func (g *Game) SetStage(level uint32) {
	g.mem.SetU64(objCtrl+mem.Address(offStageInfo), uint64(objStageInfo))
	g.mem.SetU32(objStageInfo+mem.Address(offStageID), level)
}

// SetGoal flips the goal-sequence flag.
func (g *Game) SetGoal(v bool) { g.mem.SetBool(objCtrl+mem.Address(offGoal), v) }

// SetResult flips the result-sequence flag.
func (g *Game) SetResult(v bool) { g.mem.SetBool(objCtrl+mem.Address(offResult), v) }

// SetTimeAttack flips the time-attack marker.
func (g *Game) SetTimeAttack(v bool) { g.mem.SetBool(objCtrl+mem.Address(offTimeAttack), v) }

// SpawnBoss links an active boss object of the given class and state.
func (g *Game) SpawnBoss(class string, state uint8) {
	g.mem.SetU64(objCtrl+mem.Address(offBossObject), uint64(objBoss))
	g.mem.SetU64(objBoss, uint64(strBossClass))
	g.mem.SetString(strBossClass, class)
	g.mem.SetU8(objBoss+mem.Address(offBossState), state)
}

// SetBossState updates the active boss's state byte.
func (g *Game) SetBossState(state uint8) {
	g.mem.SetU8(objBoss+mem.Address(offBossState), state)
}

// DefeatBoss moves the active boss into its defeated state.
func (g *Game) DefeatBoss() { g.SetBossState(bossDefeated) }

// ClearBoss unlinks the active boss.
func (g *Game) ClearBoss() { g.mem.SetU64(objCtrl+mem.Address(offBossObject), 0) }

// SetFirstPlayPending flips a mode branch's first-play-pending flag in the
// active save slot. Flipping it to false is what starts a fresh playthrough.
func (g *Game) SetFirstPlayPending(mode string, pending bool) {
	off, ok := g.layout.Save.FirstPlay[mode]
	if !ok {
		return
	}
	g.mem.SetBool(objSlot+mem.Address(off), pending)
}

// BreakLoading makes the loading-flag read fail until FixLoading.
func (g *Game) BreakLoading() { g.mem.Fail(addrLoading) }

// FixLoading restores the loading-flag read.
func (g *Game) FixLoading() { g.mem.Recover(addrLoading) }

// BreakSave makes the save-root read fail until FixSave.
func (g *Game) BreakSave() { g.mem.Fail(addrSaveRoot) }

// FixSave restores the save-root read.
func (g *Game) FixSave() { g.mem.Recover(addrSaveRoot) }

// EnableElapsed wires the optional elapsed-time counter into the layout.
func (g *Game) EnableElapsed() {
	g.layout.Elapsed = mem.Chain{Base: addrElapsed}
	g.mem.SetU64(addrElapsed, 0)
}

// SetElapsed updates the elapsed-time counter, in milliseconds.
func (g *Game) SetElapsed(ms uint64) { g.mem.SetU64(addrElapsed, ms) }
