package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dvrnko/autosplit/internal/profile"
)

// ProfileSummary is one builtin profile in the listing.
type ProfileSummary struct {
	Name    string   `json:"name"`
	Process []string `json:"process"`
	Modes   []string `json:"modes"`
	Toggles []string `json:"toggles,omitempty"`
}

// NewProfilesCommand creates the profiles command.
func NewProfilesCommand(rootOpts *RootOptions) *cobra.Command {
	var showToggles bool

	cmd := &cobra.Command{
		Use:   "profiles",
		Short: "List builtin game profiles",
		Long: `List the profiles compiled into the binary, with the processes they
watch and the mode branches they know. With --toggles, also print every
setting toggle a profile declares, in its stable order.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runProfiles(rootOpts, showToggles, cmd)
		},
	}
	cmd.Flags().BoolVar(&showToggles, "toggles", false, "include each profile's setting toggles")
	return cmd
}

func runProfiles(opts *RootOptions, showToggles bool, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	var summaries []ProfileSummary
	for _, name := range profile.Builtins() {
		p, err := profile.Builtin(name)
		if err != nil {
			formatter.Error(fmt.Sprintf("builtin profile %s is broken", name), err.Error())
			return WrapExitError(ExitCommandError, "builtin profile "+name, err)
		}
		s := ProfileSummary{Name: p.Name, Process: p.Process}
		for _, m := range p.Modes {
			s.Modes = append(s.Modes, m.Name)
		}
		if showToggles {
			s.Toggles = p.Toggles()
		}
		summaries = append(summaries, s)
	}

	if formatter.JSON() {
		return formatter.Success(summaries)
	}
	for _, s := range summaries {
		fmt.Fprintf(formatter.Writer, "%s\tprocess=%v\tmodes=%v\n", s.Name, s.Process, s.Modes)
		if showToggles {
			for _, tog := range s.Toggles {
				fmt.Fprintf(formatter.Writer, "  %s\n", tog)
			}
		}
	}
	return nil
}
