package dotfiler

import (
	"github.com/arthur-debert/dotfiler/pkg/filter"
	"github.com/arthur-debert/dotfiler/pkg/linker"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

func newLinkCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "link",
		Short:   MsgLinkShort,
		Long:    MsgLinkLong,
		Example: MsgLinkExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			defer logging.LogOperationStart(logging.GetLogger("cmd.link"), "link")()

			log.Info().
				Str("source", a.paths.Source).
				Str("home", a.paths.Home).
				Bool("dry_run", a.dryRun).
				Msg("Linking dotfiles")

			results, linkErr := a.linker.Link(cmd.Context())

			counts := map[linker.Status]int{}
			for _, r := range results {
				counts[r.Status]++
			}
			if a.dryRun {
				a.out.Info(MsgDryRunSummary,
					counts[linker.StatusWouldLink],
					counts[linker.StatusAlreadyLinked],
					counts[linker.StatusFiltered],
					counts[linker.StatusFailed])
				a.out.Header(MsgDryRunNotice)
			} else {
				a.out.Info(MsgLinkSummary,
					counts[linker.StatusLinked],
					counts[linker.StatusBackedUp],
					counts[linker.StatusAlreadyLinked],
					counts[linker.StatusFiltered],
					counts[linker.StatusFailed])
			}

			return linkErr
		},
	}
}

func newStatusCmd(flags *globalFlags) *cobra.Command {
	var explain bool

	cmd := &cobra.Command{
		Use:     "status",
		Short:   MsgStatusShort,
		Long:    MsgStatusLong,
		Example: MsgStatusExample,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			entries, err := a.linker.Status()
			if err != nil {
				return err
			}

			a.out.Header(MsgStatusHeader, a.paths.Source)
			for _, e := range entries {
				switch e.State {
				case linker.StateLinked:
					a.out.Success(MsgStatusLinked, e.Target, e.Source)
				case linker.StateNotLinked:
					a.out.Info(MsgStatusNotLinked, e.Target)
				case linker.StateConflict:
					a.out.Warning(MsgStatusConflict, e.Target, e.Detail)
				case linker.StateFiltered:
					if explain {
						printFiltered(a, e)
					}
					continue
				}
				if explain {
					printAccepted(a, e.Decision)
				}
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&explain, "explain", false, MsgFlagExplain)
	return cmd
}

func printFiltered(a *app, e linker.StatusEntry) {
	if e.Decision.Pattern == "" {
		a.out.Info(MsgStatusFiltered, e.Name, e.Decision.Stage)
		return
	}
	a.out.Info(MsgStatusFilteredBy, e.Name, e.Decision.Stage, e.Decision.Pattern)
}

func printAccepted(a *app, d filter.Decision) {
	if d.Rescued {
		a.out.Info(MsgStatusRescued, d.Pattern)
		return
	}
	a.out.Info(MsgStatusAccepted)
}

func newRestoreCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "restore [session]",
		Short:   MsgRestoreShort,
		Long:    MsgRestoreLong,
		Example: MsgRestoreExample,
		GroupID: "core",
		Args:    cobra.MaximumNArgs(1),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) > 0 {
				return nil, cobra.ShellCompDirectiveNoFileComp
			}
			return sessionCompletion(cmd, flags)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			defer logging.LogOperationStart(logging.GetLogger("cmd.restore"), "restore")()

			session := ""
			if len(args) == 1 {
				session = args[0]
			}

			if _, _, err := a.linker.Restore(cmd.Context(), session); err != nil {
				return err
			}
			if a.dryRun {
				a.out.Header(MsgDryRunNotice)
			}
			return nil
		},
	}
}

func newBackupsCmd(flags *globalFlags) *cobra.Command {
	return &cobra.Command{
		Use:     "backups",
		Short:   MsgBackupsShort,
		GroupID: "core",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, flags)
			if err != nil {
				return err
			}

			sessions, err := a.store.Sessions()
			if err != nil {
				return err
			}
			if len(sessions) == 0 {
				a.out.Info(MsgBackupsNone)
				return nil
			}

			a.out.Header(MsgBackupsHeader, a.store.LogPath())
			for i := len(sessions) - 1; i >= 0; i-- {
				s := sessions[i]
				a.out.Info(MsgBackupsItem, s.ID, len(s.Entries), s.Source)
			}
			return nil
		},
	}
}

// sessionCompletion offers recorded session ids, newest first
func sessionCompletion(cmd *cobra.Command, flags *globalFlags) ([]string, cobra.ShellCompDirective) {
	a, err := newApp(cmd, flags)
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	sessions, err := a.store.Sessions()
	if err != nil {
		return nil, cobra.ShellCompDirectiveError
	}
	ids := make([]string, 0, len(sessions))
	for i := len(sessions) - 1; i >= 0; i-- {
		ids = append(ids, sessions[i].ID)
	}
	return ids, cobra.ShellCompDirectiveNoFileComp
}
