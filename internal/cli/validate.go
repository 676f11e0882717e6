package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dvrnko/autosplit/internal/profile"
)

// ValidationResult holds the outcome of validating a profile source.
type ValidationResult struct {
	Valid    bool     `json:"valid"`
	Profiles []string `json:"profiles,omitempty"`
	Errors   []string `json:"errors,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <profile.cue | profiles-dir>",
		Short: "Validate profile documents",
		Long: `Validate CUE profile documents without attaching to a game.

Checks schema conformance (required fields, trigger kinds, level tables)
and cross-field consistency (duplicate mode ids, undeclared mode
references). Errors carry source positions where the CUE evaluator can
supply them.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runValidate(opts *RootOptions, path string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	info, err := os.Stat(path)
	if err != nil {
		formatter.Error(fmt.Sprintf("cannot read %s", path), err.Error())
		return WrapExitError(ExitCommandError, "cannot read "+path, err)
	}

	var (
		profiles []*profile.Profile
		errs     []error
	)
	if info.IsDir() {
		formatter.VerboseLog("validating profile directory %s", path)
		profiles, errs = profile.LoadDir(path)
	} else {
		formatter.VerboseLog("validating profile file %s", path)
		p, err := profile.LoadFile(path)
		if err != nil {
			errs = append(errs, err)
		} else {
			profiles = append(profiles, p)
		}
	}

	result := ValidationResult{Valid: len(errs) == 0}
	for _, p := range profiles {
		result.Profiles = append(result.Profiles, p.Name)
	}
	for _, e := range errs {
		result.Errors = append(result.Errors, e.Error())
	}

	if !result.Valid {
		if formatter.JSON() {
			formatter.Success(result)
		} else {
			for _, msg := range result.Errors {
				fmt.Fprintln(formatter.Writer, msg)
			}
			fmt.Fprintf(formatter.Writer, "%d profile(s) valid, %d error(s)\n",
				len(result.Profiles), len(result.Errors))
		}
		return NewExitError(ExitFailure, "validation failed")
	}

	if formatter.JSON() {
		return formatter.Success(result)
	}
	for _, name := range result.Profiles {
		fmt.Fprintf(formatter.Writer, "profile %s: ok\n", name)
	}
	return nil
}
