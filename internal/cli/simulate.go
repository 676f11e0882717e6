package cli

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/dvrnko/autosplit/internal/harness"
	"github.com/dvrnko/autosplit/internal/trace"
)

// SimulateResult is the JSON payload of a simulate run.
type SimulateResult struct {
	Scenario string        `json:"scenario"`
	Profile  string        `json:"profile"`
	Session  string        `json:"session"`
	TraceID  string        `json:"trace_id"`
	Final    string        `json:"final_state"`
	Pass     bool          `json:"pass"`
	Events   []trace.Event `json:"events"`
	Failures []string      `json:"failures,omitempty"`
}

// NewSimulateCommand creates the simulate command.
func NewSimulateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "simulate <scenario.yaml>",
		Short: "Replay a scenario against the real engine",
		Long: `Replay a scripted playthrough against the real decision engine and
print the resulting timer-command trace.

The run is fully deterministic: the same scenario always produces the same
trace and the same content-addressed trace id, which makes simulate output
diffable across engine changes.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSimulate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runSimulate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	s, err := harness.LoadScenario(path)
	if err != nil {
		formatter.Error("cannot load scenario", err.Error())
		return WrapExitError(ExitCommandError, "load scenario", err)
	}

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	if opts.Verbose {
		logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), nil))
	}

	res, err := harness.RunWithLogger(s, logger)
	if err != nil {
		formatter.Error("scenario run failed", err.Error())
		return WrapExitError(ExitCommandError, "run scenario", err)
	}

	id, err := res.Trace.ID()
	if err != nil {
		formatter.Error("trace identity", err.Error())
		return WrapExitError(ExitCommandError, "trace identity", err)
	}

	result := SimulateResult{
		Scenario: s.Name,
		Profile:  res.Trace.Profile,
		Session:  res.Trace.Session,
		TraceID:  id,
		Final:    res.Final.String(),
		Pass:     res.Pass,
		Events:   res.Trace.Events,
	}
	for _, e := range res.Errors {
		result.Failures = append(result.Failures, e.Error())
	}

	if formatter.JSON() {
		if err := formatter.Success(result); err != nil {
			return err
		}
	} else {
		fmt.Fprint(formatter.Writer, res.Trace.Render())
		fmt.Fprintf(formatter.Writer, "trace: %s\n", id)
		fmt.Fprintf(formatter.Writer, "final: %s\n", result.Final)
		for _, f := range result.Failures {
			fmt.Fprintf(formatter.Writer, "failed: %s\n", f)
		}
	}

	if !res.Pass {
		return NewExitError(ExitFailure, "scenario assertions failed")
	}
	return nil
}
