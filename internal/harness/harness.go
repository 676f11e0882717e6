package harness

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/dvrnko/autosplit/internal/config"
	"github.com/dvrnko/autosplit/internal/engine"
	"github.com/dvrnko/autosplit/internal/profile"
	"github.com/dvrnko/autosplit/internal/testutil"
	"github.com/dvrnko/autosplit/internal/timer"
	"github.com/dvrnko/autosplit/internal/trace"
)

// Result is the outcome of one scenario run: the full command trace, the
// final timer state, and any assertion failures.
type Result struct {
	Scenario *Scenario
	Trace    *trace.Trace
	Final    timer.State
	Pass     bool
	Errors   []error
}

// Run executes a scenario against the real engine and evaluates its
// assertions. A run error means the scenario itself is broken (unknown
// profile, unparseable step); assertion failures land in Result.Errors with
// Pass false.
func Run(s *Scenario) (*Result, error) {
	return RunWithLogger(s, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

// RunWithLogger is Run with the engine's logs routed to the given logger,
// for the simulator's verbose mode.
func RunWithLogger(s *Scenario, logger *slog.Logger) (*Result, error) {
	p, err := loadProfile(s.Profile)
	if err != nil {
		return nil, err
	}

	cfg := buildSettings(p, s.Settings)
	game := testutil.NewGame(p)
	if usesElapsed(s) {
		game.EnableElapsed()
	}

	session := s.Session
	if session == "" {
		session = "test-session-default"
	}

	sink := timer.NewRecording()
	eng := engine.New(p, game.Layout(), game.Reader(), cfg, sink,
		engine.WithLogger(logger),
		engine.WithTokenGenerator(testutil.NewFixedTokens(session)),
	)

	tr := trace.New(session, p.Name)
	taken := 0

	for _, step := range s.Ticks {
		applyStep(game, &step)

		repeat := step.Repeat
		if repeat < 1 {
			repeat = 1
		}
		for i := 0; i < repeat; i++ {
			out := eng.Tick()
			for _, rec := range sink.Commands()[taken:] {
				if rec.Command == timer.CmdElapsed {
					tr.AppendElapsed(out.Tick, rec.Command, rec.Elapsed.Milliseconds())
					continue
				}
				tr.Append(out.Tick, rec.Command)
			}
			taken = len(sink.Commands())
		}
	}

	res := &Result{
		Scenario: s,
		Trace:    tr,
		Final:    sink.State(),
	}
	res.Errors = evaluate(s, res)
	res.Pass = len(res.Errors) == 0
	return res, nil
}

func loadProfile(name string) (*profile.Profile, error) {
	if name == "" {
		return profile.Default()
	}
	p, err := profile.Builtin(name)
	if err != nil {
		return nil, fmt.Errorf("scenario profile: %w", err)
	}
	return p, nil
}

func buildSettings(p *profile.Profile, s Settings) config.View {
	cfg := config.Static{}
	if s.EnableAll {
		cfg = config.Defaults(p.Toggles())
	}
	cfg = cfg.Enable(s.Enable...)
	cfg = cfg.Disable(s.Disable...)
	return cfg
}

func usesElapsed(s *Scenario) bool {
	for _, step := range s.Ticks {
		if step.ElapsedMS != nil {
			return true
		}
	}
	return false
}

// applyStep pushes one tick's mutations into the simulated game. Order
// matters for compound steps: the scene controller loads before the stage
// fields that live on it.
func applyStep(g *testutil.Game, step *TickStep) {
	if step.GameMode != nil {
		g.SetGameMode(*step.GameMode)
	}
	if step.Loading != nil {
		g.SetLoading(*step.Loading)
	}
	if step.SceneClass != "" {
		g.EnterScene(step.SceneClass)
	}
	if step.UnloadScene {
		g.UnloadScene()
	}
	if step.Stage != nil {
		g.SetStage(*step.Stage)
	}
	if step.Goal != nil {
		g.SetGoal(*step.Goal)
	}
	if step.Result != nil {
		g.SetResult(*step.Result)
	}
	if step.TimeAttack != nil {
		g.SetTimeAttack(*step.TimeAttack)
	}
	if step.Boss != nil {
		g.SpawnBoss(step.Boss.Class, step.Boss.State)
	}
	if step.BossDefeated {
		g.DefeatBoss()
	}
	if step.ClearBoss {
		g.ClearBoss()
	}
	for _, fp := range step.FirstPlay {
		g.SetFirstPlayPending(fp.Mode, fp.Pending)
	}
	if step.Scene != "" {
		g.SetScene(step.Scene)
	}
	if step.NextScene != "" {
		g.SetNextScene(step.NextScene)
	}
	if step.ElapsedMS != nil {
		g.SetElapsed(*step.ElapsedMS)
	}
	if step.BreakSave {
		g.BreakSave()
	}
	if step.FixSave {
		g.FixSave()
	}
}
