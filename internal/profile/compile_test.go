package profile

import (
	"os"
	"testing"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func compileString(t *testing.T, src string) (*Profile, error) {
	t.Helper()
	ctx := cuecontext.New()
	v := ctx.CompileString(src, cue.Filename("test.cue"))
	require.NoError(t, v.Err())
	return Compile(v.LookupPath(cue.ParsePath("profile")))
}

const minimalProfile = `
profile: {
	name: "minimal"
	process: ["Game.exe"]
	gameScenes: ["GameSceneController"]
	loading: signal: "flag"
	modes: [{name: "story", id: 0, splits: {"10100": "act_1"}}]
}
`

func TestCompile_Minimal(t *testing.T) {
	p, err := compileString(t, minimalProfile)
	require.NoError(t, err)

	assert.Equal(t, "minimal", p.Name)
	assert.Equal(t, LoadingFlag, p.Loading.Kind)
	assert.Empty(t, p.Start)
	assert.Equal(t, ResetNone, p.Reset.Kind)
	assert.Equal(t, uint32(0), p.FinalStage)

	m, ok := p.ModeByID(0)
	require.True(t, ok)
	assert.Equal(t, map[uint32]string{10100: "act_1"}, m.Splits)
}

func TestCompile_SceneLoadingSignal(t *testing.T) {
	p, err := compileString(t, `
profile: {
	name: "scenes"
	process: ["Game.exe"]
	loading: {signal: "scene", scenes: ["LoadingScene", "NowLoading"]}
	modes: [{name: "any", id: 0}]
}
`)
	require.NoError(t, err)
	assert.Equal(t, LoadingScene, p.Loading.Kind)
	assert.Equal(t, []string{"LoadingScene", "NowLoading"}, p.Loading.Scenes)
}

func TestCompile_MenuLevelLoadingSignal(t *testing.T) {
	p, err := compileString(t, `
profile: {
	name: "menus"
	process: ["Game.exe"]
	loading: {signal: "menu_level", menuLevel: 9999}
	modes: [{name: "any", id: 0}]
}
`)
	require.NoError(t, err)
	assert.Equal(t, LoadingMenuLevel, p.Loading.Kind)
	assert.Equal(t, uint32(9999), p.Loading.MenuLevel)
}

func TestCompile_SceneAdvanceStartAndReset(t *testing.T) {
	p, err := compileString(t, `
profile: {
	name: "scenic"
	process: ["Game.exe"]
	loading: signal: "flag"
	start: [{trigger: "scene_advance", menu: "TitleScene", next: "OP_Cutscene", toggle: "start_newgame"}]
	reset: {trigger: "scene_enter", scene: "TitleScene", toggle: "reset_on_title"}
	modes: [{name: "any", id: 0}]
}
`)
	require.NoError(t, err)

	require.Len(t, p.Start, 1)
	assert.Equal(t, StartSceneAdvance, p.Start[0].Kind)
	assert.Equal(t, "TitleScene", p.Start[0].MenuScene)
	assert.Equal(t, "OP_Cutscene", p.Start[0].NextScene)

	assert.Equal(t, ResetSceneEnter, p.Reset.Kind)
	assert.Equal(t, "TitleScene", p.Reset.Scene)
	assert.Equal(t, "reset_on_title", p.Reset.Toggle)
}

func TestCompile_TimeAttackMode(t *testing.T) {
	p, err := compileString(t, `
profile: {
	name: "ta"
	process: ["Game.exe"]
	loading: signal: "flag"
	modes: [{name: "time_attack", id: 3, timeAttack: true}]
}
`)
	require.NoError(t, err)
	m, ok := p.ModeByID(3)
	require.True(t, ok)
	assert.True(t, m.TimeAttack)
}

func TestCompile_Errors(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		message string
	}{
		{
			name:    "missing name",
			src:     `profile: {process: ["Game.exe"], loading: signal: "flag", modes: [{name: "m", id: 0}]}`,
			message: "name is required",
		},
		{
			name:    "missing loading",
			src:     `profile: {name: "x", process: ["Game.exe"], modes: [{name: "m", id: 0}]}`,
			message: "loading signal binding is required",
		},
		{
			name:    "missing modes",
			src:     `profile: {name: "x", process: ["Game.exe"], loading: signal: "flag"}`,
			message: "at least one mode branch is required",
		},
		{
			name:    "non-numeric level id",
			src:     `profile: {name: "x", process: ["Game.exe"], loading: signal: "flag", modes: [{name: "m", id: 0, splits: {"act one": "a1"}}]}`,
			message: "not a decimal integer",
		},
		{
			name:    "trigger without toggle",
			src:     `profile: {name: "x", process: ["Game.exe"], loading: signal: "flag", start: [{trigger: "mode_enter", value: 2}], modes: [{name: "m", id: 0}]}`,
			message: "toggle is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := compileString(t, tt.src)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.message)
		})
	}
}

func TestCompile_MissingProfileStruct(t *testing.T) {
	ctx := cuecontext.New()
	v := ctx.CompileString(`settings: {name: "oops"}`, cue.Filename("test.cue"))
	require.NoError(t, v.Err())

	_, err := Compile(v.LookupPath(cue.ParsePath("profile")))
	require.Error(t, err)
}

func TestLoadDir_MissingDirectory(t *testing.T) {
	_, errs := LoadDir(t.TempDir() + "/nope")
	require.NotEmpty(t, errs)
}

func TestLoadDir_CompilesAllDocuments(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir+"/a.cue", minimalProfile)
	writeFile(t, dir+"/b.cue", `profile: {name: "broken"}`)

	profiles, errs := LoadDir(dir)
	require.Len(t, profiles, 1)
	assert.Equal(t, "minimal", profiles[0].Name)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), "b.cue")
}
