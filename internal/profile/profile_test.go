package profile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltin_Superstars(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	assert.Equal(t, "superstars", p.Name)
	assert.Equal(t, []string{"SonicSuperstars.exe"}, p.Process)
	assert.Equal(t, LoadingFlag, p.Loading.Kind)
	assert.Equal(t, uint32(110200), p.FinalStage)
	assert.Len(t, p.Start, 3)
	assert.Equal(t, ResetNone, p.Reset.Kind)

	assert.True(t, p.IsGameScene("GameSceneController"))
	assert.True(t, p.IsGameScene("WorldMapGameSceneController"))
	assert.False(t, p.IsGameScene("TitleSceneController"))

	assert.True(t, p.IsBoss("Bos111"))
	assert.True(t, p.IsBoss("Bos112"))
	assert.False(t, p.IsBoss("Bos110"))
}

func TestBuiltin_SuperstarsModes(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	require.Len(t, p.Modes, 3)

	story, ok := p.ModeByID(0)
	require.True(t, ok)
	assert.Equal(t, "story", story.Name)
	assert.Len(t, story.Splits, 26)
	assert.Equal(t, "bridge_island_1", story.Splits[10100])
	assert.Equal(t, "speed_jungle_sonic", story.Splits[20200])
	assert.Equal(t, "press_factory_fruit", story.Splits[600702])
	assert.Equal(t, "egg_fortress_2", story.Splits[110200])
	assert.Equal(t, "egg_fortress_2", story.Final)

	trip, ok := p.ModeByID(1)
	require.True(t, ok)
	assert.Equal(t, "trip", trip.Name)
	assert.Len(t, trip.Splits, 26)
	assert.Equal(t, "trip_speed_jungle_3", trip.Splits[20300])
	assert.Equal(t, "trip_egg_fortress_2", trip.Final)

	last, ok := p.ModeByID(2)
	require.True(t, ok)
	assert.Equal(t, "last", last.Name)
	assert.Empty(t, last.Splits)
	assert.Equal(t, "black_dragon", last.Boss)

	_, ok = p.ModeByID(7)
	assert.False(t, ok)
}

func TestToggles_StableAndComplete(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)

	toggles := p.Toggles()

	// 3 start toggles + 26 story + 26 trip + black_dragon; egg_fortress_2
	// and trip_egg_fortress_2 double as Final toggles and must not repeat.
	assert.Len(t, toggles, 3+26+26+1)
	assert.Equal(t, "start_story", toggles[0])
	assert.Contains(t, toggles, "black_dragon")

	again := p.Toggles()
	assert.Equal(t, toggles, again, "toggle order must be stable")
}

func TestValidate_CatchesInconsistencies(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Profile)
		message string
	}{
		{
			name:    "no process",
			mutate:  func(p *Profile) { p.Process = nil },
			message: "process name",
		},
		{
			name:    "unknown loading kind",
			mutate:  func(p *Profile) { p.Loading.Kind = "psychic" },
			message: "unknown loading signal",
		},
		{
			name:    "scene loading without scenes",
			mutate:  func(p *Profile) { p.Loading = LoadingSignal{Kind: LoadingScene} },
			message: "needs at least one scene",
		},
		{
			name:    "first_play without mode",
			mutate:  func(p *Profile) { p.Start[0].Mode = "" },
			message: "needs a mode",
		},
		{
			name:    "first_play undeclared mode",
			mutate:  func(p *Profile) { p.Start[0].Mode = "arcade" },
			message: "undeclared mode",
		},
		{
			name:    "trigger without toggle",
			mutate:  func(p *Profile) { p.Start[0].Toggle = "" },
			message: "toggle is required",
		},
		{
			name:    "duplicate mode id",
			mutate:  func(p *Profile) { p.Modes[1].ID = 0 },
			message: "share game-mode id",
		},
		{
			name:    "scene_enter reset without scene",
			mutate:  func(p *Profile) { p.Reset = ResetTrigger{Kind: ResetSceneEnter} },
			message: "needs a scene",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := Default()
			require.NoError(t, err)
			tt.mutate(p)

			errs := p.Validate()
			require.NotEmpty(t, errs)
			assert.Contains(t, errs[0].Error(), tt.message)
		})
	}
}

func TestValidate_DefaultProfileClean(t *testing.T) {
	p, err := Default()
	require.NoError(t, err)
	assert.Empty(t, p.Validate())
}

func TestBuiltin_Unknown(t *testing.T) {
	_, err := Builtin("chaos-emeralds")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown builtin profile")
}

func TestBuiltins_ListsEmbedded(t *testing.T) {
	names := Builtins()
	assert.Contains(t, names, "superstars")
}
