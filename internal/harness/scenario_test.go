package harness

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalScenario = `
name: minimal
description: "smallest valid scenario"
settings:
  enable_all: true
ticks:
  - game_mode: 0
assertions:
  - type: trace_count
    command: split
    count: 0
`

func TestParseScenario_Valid(t *testing.T) {
	s, err := ParseScenario([]byte(minimalScenario))
	require.NoError(t, err)

	assert.Equal(t, "minimal", s.Name)
	require.Len(t, s.Ticks, 1)
	require.NotNil(t, s.Ticks[0].GameMode)
	assert.Equal(t, uint32(0), *s.Ticks[0].GameMode)
}

func TestParseScenario_RejectsUnknownFields(t *testing.T) {
	_, err := ParseScenario([]byte(`
name: typo
description: "assertion is misspelled"
ticks:
  - {}
assertion:
  - type: trace_count
    command: split
    count: 0
`))
	require.Error(t, err)
}

func TestParseScenario_RequiredFields(t *testing.T) {
	tests := []struct {
		name string
		yaml string
		want string
	}{
		{
			name: "missing name",
			yaml: "description: d\nticks:\n  - {}\n",
			want: "name is required",
		},
		{
			name: "missing description",
			yaml: "name: n\nticks:\n  - {}\n",
			want: "description is required",
		},
		{
			name: "missing ticks",
			yaml: "name: n\ndescription: d\n",
			want: "ticks list is required",
		},
		{
			name: "boss without class",
			yaml: "name: n\ndescription: d\nticks:\n  - boss: {state: 3}\n",
			want: "boss needs a class",
		},
		{
			name: "first_play without mode",
			yaml: "name: n\ndescription: d\nticks:\n  - first_play: [{pending: false}]\n",
			want: "mode is required",
		},
		{
			name: "unknown assertion type",
			yaml: "name: n\ndescription: d\nticks:\n  - {}\nassertions:\n  - type: bogus\n",
			want: "unknown assertion type",
		},
		{
			name: "trace_order without commands",
			yaml: "name: n\ndescription: d\nticks:\n  - {}\nassertions:\n  - type: trace_order\n",
			want: "commands list is required",
		},
		{
			name: "final_state without state",
			yaml: "name: n\ndescription: d\nticks:\n  - {}\nassertions:\n  - type: final_state\n",
			want: "state is required",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseScenario([]byte(tt.yaml))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestLoadScenario_FromDisk(t *testing.T) {
	s, err := LoadScenario("testdata/scenarios/story_opening.yaml")
	require.NoError(t, err)

	assert.Equal(t, "story_opening", s.Name)
	assert.Equal(t, "superstars", s.Profile)
	assert.True(t, s.Settings.EnableAll)
	assert.Len(t, s.Ticks, 8)
}

func TestLoadScenario_MissingFile(t *testing.T) {
	_, err := LoadScenario("testdata/scenarios/does_not_exist.yaml")
	assert.Error(t, err)
}
