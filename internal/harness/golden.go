package harness

import (
	"fmt"
	"testing"

	"github.com/sebdah/goldie/v2"
)

// RunWithGolden executes a scenario and compares its rendered trace against
// the golden file testdata/golden/{scenario.Name}.golden. The golden file is
// the source of truth for the scenario's exact command trace, including the
// ticks at which commands fire.
//
// To regenerate golden files:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, s *Scenario) (*Result, error) {
	t.Helper()

	res, err := Run(s)
	if err != nil {
		return nil, err
	}
	if !res.Pass {
		return res, fmt.Errorf("scenario %s failed assertions: %v", s.Name, res.Errors)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, s.Name, []byte(res.Trace.Render()))
	return res, nil
}
