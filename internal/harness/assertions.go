package harness

import (
	"fmt"

	"github.com/dvrnko/autosplit/internal/trace"
)

// evaluate runs every assertion against the result and returns all failures,
// not just the first.
func evaluate(s *Scenario, res *Result) []error {
	var errs []error
	for i, a := range s.Assertions {
		if err := evaluateOne(&a, res); err != nil {
			errs = append(errs, fmt.Errorf("assertions[%d] (%s): %w", i, a.Type, err))
		}
	}
	return errs
}

func evaluateOne(a *Assertion, res *Result) error {
	switch a.Type {
	case AssertTraceContains:
		return assertContains(a, res.Trace)
	case AssertTraceOrder:
		return assertOrder(a, res.Trace)
	case AssertTraceCount:
		return assertCount(a, res.Trace)
	case AssertFinalState:
		if got := res.Final.String(); got != a.State {
			return fmt.Errorf("final timer state is %s, want %s", got, a.State)
		}
		return nil
	default:
		return fmt.Errorf("unknown assertion type %q", a.Type)
	}
}

func assertContains(a *Assertion, tr *trace.Trace) error {
	for _, e := range tr.Events {
		if e.Command != a.Command {
			continue
		}
		if a.Tick == 0 || e.Tick == a.Tick {
			return nil
		}
	}
	if a.Tick != 0 {
		return fmt.Errorf("command %q not found at tick %d", a.Command, a.Tick)
	}
	return fmt.Errorf("command %q not found in trace", a.Command)
}

// assertOrder checks the commands appear in the given relative order; other
// commands may be interleaved.
func assertOrder(a *Assertion, tr *trace.Trace) error {
	next := 0
	for _, e := range tr.Events {
		if next < len(a.Commands) && e.Command == a.Commands[next] {
			next++
		}
	}
	if next < len(a.Commands) {
		return fmt.Errorf("command %q (position %d) missing or out of order", a.Commands[next], next)
	}
	return nil
}

func assertCount(a *Assertion, tr *trace.Trace) error {
	count := 0
	for _, e := range tr.Events {
		if e.Command == a.Command {
			count++
		}
	}
	if count != a.Count {
		return fmt.Errorf("command %q appears %d times, want %d", a.Command, count, a.Count)
	}
	return nil
}
