package engine

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dvrnko/autosplit/internal/config"
	"github.com/dvrnko/autosplit/internal/mem"
	"github.com/dvrnko/autosplit/internal/profile"
	"github.com/dvrnko/autosplit/internal/testutil"
	"github.com/dvrnko/autosplit/internal/timer"
)

func newTestEngine(t *testing.T, p *profile.Profile, cfg config.View) (*Engine, *testutil.Game, *timer.Recording) {
	t.Helper()
	g := testutil.NewGame(p)
	sink := timer.NewRecording()
	e := New(p, g.Layout(), g.Reader(), cfg, sink,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTokenGenerator(testutil.NewFixedTokens("")),
	)
	return e, g, sink
}

// TestEngine_StoryRun plays the opening of a fresh story run against the
// real builtin profile: menus, start trigger, a load screen, and the first
// stage's goal sequence.
func TestEngine_StoryRun(t *testing.T) {
	p, err := profile.Default()
	require.NoError(t, err)

	e, g, sink := newTestEngine(t, p, config.Static{}.Enable(p.Toggles()...))
	g.SetGameMode(0)

	// Tick 1: seeding pass on the title menu. Nothing may fire.
	out := e.Tick()
	assert.True(t, out.Empty())
	assert.Empty(t, sink.TakeNames())
	assert.Equal(t, timer.NotRunning, sink.State())

	// Tick 2: the game clears the story first-play flag. The run starts, and
	// the loading signal (currently false) is forwarded once.
	g.SetFirstPlayPending("story", false)
	out = e.Tick()
	assert.True(t, out.Started)
	assert.Equal(t, []string{timer.CmdStart, timer.CmdResume}, sink.TakeNames())
	assert.Equal(t, timer.Running, sink.State())

	// Tick 3: a load screen begins. Exactly one pause.
	g.SetLoading(true)
	out = e.Tick()
	require.NotNil(t, out.Loading)
	assert.True(t, *out.Loading)
	assert.Equal(t, []string{timer.CmdPause}, sink.TakeNames())
	assert.Equal(t, timer.Paused, sink.State())

	// Tick 4: still loading. Steady state issues nothing.
	out = e.Tick()
	assert.True(t, out.Empty())
	assert.Empty(t, sink.TakeNames())

	// Tick 5: the load finishes and the first stage comes up.
	g.SetLoading(false)
	g.EnterScene("GameSceneController")
	g.SetStage(10100)
	out = e.Tick()
	assert.Equal(t, []string{timer.CmdResume}, sink.TakeNames())
	assert.Equal(t, timer.Running, sink.State())

	// Tick 6: the goal sequence starts. Not a split yet.
	g.SetGoal(true)
	out = e.Tick()
	assert.True(t, out.Empty())
	assert.Empty(t, sink.TakeNames())

	// Tick 7: the goal sequence resolves. Split for bridge island 1.
	g.SetGoal(false)
	out = e.Tick()
	assert.True(t, out.Split)
	assert.Equal(t, []string{timer.CmdSplit}, sink.TakeNames())

	// Tick 8: quiet.
	out = e.Tick()
	assert.True(t, out.Empty())
	assert.Empty(t, sink.TakeNames())
}

// TestEngine_LastStoryBossRun drives the mode-enter start and the
// boss-defeated split of the last story branch.
func TestEngine_LastStoryBossRun(t *testing.T) {
	p, err := profile.Default()
	require.NoError(t, err)

	e, g, sink := newTestEngine(t, p, config.Static{}.Enable(p.Toggles()...))
	g.SetGameMode(0)
	e.Tick() // seed on the menu

	// Entering game mode 2 starts the run.
	g.SetGameMode(2)
	sink.TakeNames()
	out := e.Tick()
	assert.True(t, out.Started)
	assert.Equal(t, timer.Running, sink.State())
	sink.TakeNames()

	// The battle scene loads with the boss alive.
	g.EnterScene("BlackDragonBattleGameSceneController")
	g.SetStage(120100)
	g.SpawnBoss("Bos112", 0)
	out = e.Tick()
	assert.True(t, out.Empty())

	// Defeating the boss splits.
	g.DefeatBoss()
	out = e.Tick()
	assert.True(t, out.Split)
	assert.Equal(t, []string{timer.CmdSplit}, sink.TakeNames())
}

// TestEngine_StartWithoutLoadingSignal verifies the engine pauses the fresh
// run when the loading signal has never been readable: accrual must not
// begin until the signal proves the game is out of its load screens.
func TestEngine_StartWithoutLoadingSignal(t *testing.T) {
	p, err := profile.Default()
	require.NoError(t, err)

	e, g, sink := newTestEngine(t, p, config.Static{}.Enable(p.Toggles()...))
	g.BreakLoading()
	g.SetGameMode(0)

	e.Tick()
	g.SetFirstPlayPending("story", false)
	out := e.Tick()

	assert.True(t, out.Started)
	require.NotNil(t, out.Loading)
	assert.True(t, *out.Loading)
	assert.Equal(t, []string{timer.CmdStart, timer.CmdPause}, sink.TakeNames())
}

// TestEngine_ResetSuppressesSplit forces a tick where both the reset and the
// split condition hold and verifies only the reset goes out.
func TestEngine_ResetSuppressesSplit(t *testing.T) {
	p := testProfile()
	p.Reset = profile.ResetTrigger{
		Kind:   profile.ResetSceneEnter,
		Scene:  "TitleScene",
		Toggle: "reset",
	}

	e, g, sink := newTestEngine(t, p, config.Static{}.Enable(p.Toggles()...))
	sink.SetState(timer.Running)

	g.SetGameMode(0)
	g.SetScene("WorldMap")
	g.EnterScene("GameSceneController")
	g.SetStage(100)
	g.SetGoal(true)
	e.Tick()
	sink.TakeNames()

	// Same tick: the goal falls (split condition) and the title scene comes
	// back (reset condition).
	g.SetGoal(false)
	g.SetScene("TitleScene")
	out := e.Tick()

	assert.True(t, out.Reset)
	assert.False(t, out.Split)
	assert.Equal(t, []string{timer.CmdReset}, sink.TakeNames())
	assert.Equal(t, timer.NotRunning, sink.State())
}

// TestEngine_NoCommandsWhileNotRunning verifies the running-state gate:
// loading transitions and goal edges mean nothing before the run starts.
func TestEngine_NoCommandsWhileNotRunning(t *testing.T) {
	p := testProfile()
	cfg := config.Static{}.Enable(p.Toggles()...).Disable("start_story", "start_last")

	e, g, sink := newTestEngine(t, p, cfg)
	g.SetGameMode(0)
	g.EnterScene("GameSceneController")
	g.SetStage(100)
	e.Tick()

	g.SetLoading(true)
	g.SetGoal(true)
	e.Tick()
	g.SetGoal(false)
	e.Tick()

	assert.Empty(t, sink.Names())
	assert.Equal(t, timer.NotRunning, sink.State())
}

func TestEngine_ElapsedForwardedWhileRunning(t *testing.T) {
	p := testProfile()
	e, g, sink := newTestEngine(t, p, config.Static{}.Enable(p.Toggles()...))
	g.EnableElapsed()
	sink.SetState(timer.Running)

	g.SetElapsed(1500)
	out := e.Tick()

	require.NotNil(t, out.Elapsed)
	assert.Equal(t, 1500*time.Millisecond, *out.Elapsed)
	cmds := sink.Commands()
	require.Len(t, cmds, 1)
	assert.Equal(t, timer.CmdElapsed, cmds[0].Command)
	assert.Equal(t, 1500*time.Millisecond, cmds[0].Elapsed)
}

func TestEngine_TickNumbersIncrease(t *testing.T) {
	p := testProfile()
	e, _, _ := newTestEngine(t, p, config.Static{})

	assert.Equal(t, int64(1), e.Tick().Tick)
	assert.Equal(t, int64(2), e.Tick().Tick)
	assert.Equal(t, int64(3), e.Tick().Tick)
}

type staticResolver struct {
	layout *mem.Layout
	err    error
}

func (r staticResolver) Resolve(ctx context.Context, _ mem.Reader) (*mem.Layout, error) {
	return r.layout, r.err
}

func TestAttach(t *testing.T) {
	p := testProfile()
	g := testutil.NewGame(p)
	sink := timer.NewRecording()

	e, err := Attach(context.Background(), p, staticResolver{layout: g.Layout()},
		g.Reader(), config.Static{}, sink,
		WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
		WithTokenGenerator(testutil.NewFixedTokens("attach-001")),
	)
	require.NoError(t, err)
	assert.Equal(t, "attach-001", e.Session())
	assert.NotNil(t, e.Snapshot())

	_, err = Attach(context.Background(), p, staticResolver{err: mem.ErrRead},
		g.Reader(), config.Static{}, sink)
	assert.ErrorIs(t, err, mem.ErrRead)
}

func TestEngine_RunStopsWhenProcessCloses(t *testing.T) {
	p := testProfile()
	e, _, _ := newTestEngine(t, p, config.Static{})

	err := e.Run(context.Background(), time.Millisecond, PresenceFunc(func() bool { return false }))
	assert.NoError(t, err)
}

func TestEngine_RunStopsOnCancel(t *testing.T) {
	p := testProfile()
	e, _, _ := newTestEngine(t, p, config.Static{})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- e.Run(ctx, time.Millisecond, PresenceFunc(func() bool { return true }))
	}()

	cancel()
	select {
	case err := <-done:
		assert.ErrorIs(t, err, context.Canceled)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not stop after cancellation")
	}
}
