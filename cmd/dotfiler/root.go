package dotfiler

import (
	"errors"

	"github.com/arthur-debert/dotfiler/internal/version"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
)

// globalFlags holds the persistent flags shared by every command
type globalFlags struct {
	verbosity  int
	dryRun     bool
	configFile string
	source     string
	home       string
	noColor    bool
	format     string
	logFile    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	initTemplateFormatting()

	flags := &globalFlags{}

	rootCmd := &cobra.Command{
		Use:     "dotfiler",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(logging.Options{
				Verbosity: flags.verbosity,
				NoColor:   flags.noColor,
				Console:   cmd.ErrOrStderr(),
				LogFile:   flags.logFile,
			})
			log.Debug().Str("command", cmd.Name()).Msg("Command started")
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(MsgErrNoCommand)
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	pf := rootCmd.PersistentFlags()
	pf.CountVarP(&flags.verbosity, "verbose", "v", MsgFlagVerbose)
	pf.BoolVar(&flags.dryRun, "dry-run", false, MsgFlagDryRun)
	pf.StringVar(&flags.configFile, "config", "", MsgFlagConfig)
	pf.StringVar(&flags.source, "source", "", MsgFlagSource)
	pf.StringVar(&flags.home, "home", "", MsgFlagHome)
	pf.BoolVar(&flags.noColor, "no-color", false, MsgFlagNoColor)
	pf.StringVar(&flags.format, "format", "auto", MsgFlagFormat)
	pf.StringVar(&flags.logFile, "log-file", "", MsgFlagLogFile)
	_ = rootCmd.MarkPersistentFlagDirname("source")
	_ = rootCmd.MarkPersistentFlagDirname("home")
	_ = rootCmd.MarkPersistentFlagFilename("config", "toml", "yaml", "yml")
	_ = rootCmd.MarkPersistentFlagFilename("log-file")

	rootCmd.AddGroup(&cobra.Group{
		ID:    "core",
		Title: "COMMANDS:",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "misc",
		Title: "MISC:",
	})

	rootCmd.SetUsageTemplate(MsgUsageTemplate)
	rootCmd.SetHelpCommandGroupID("misc")

	rootCmd.AddCommand(newLinkCmd(flags))
	rootCmd.AddCommand(newStatusCmd(flags))
	rootCmd.AddCommand(newRestoreCmd(flags))
	rootCmd.AddCommand(newBackupsCmd(flags))
	rootCmd.AddCommand(newConfigCmd(flags))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())

	initTopics(rootCmd)

	return rootCmd
}
