package dotfiler

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort       = "Link dotfiles into your home directory"
	MsgLinkShort       = "Link dotfiles into the home directory"
	MsgStatusShort     = "Show the link state of every dotfile"
	MsgRestoreShort    = "Undo a link session"
	MsgBackupsShort    = "List recorded backup sessions"
	MsgConfigShort     = "Inspect or create configuration"
	MsgConfigShowShort = "Print the effective configuration"
	MsgConfigInitShort = "Write a commented config file"
	MsgVersionShort    = "Print version information"
	MsgCompletionShort = "Generate shell completion script"
	MsgManShort        = "Generate man pages"

	// Status messages
	MsgDryRunNotice      = "DRY RUN MODE - No changes were made"
	MsgLinkSummary       = "%d linked, %d backed up, %d already linked, %d filtered, %d failed"
	MsgDryRunSummary     = "%d would be linked, %d already linked, %d filtered, %d failed"
	MsgStatusHeader      = "Dotfiles in %s"
	MsgStatusLinked      = "%s -> %s"
	MsgStatusNotLinked   = "%s not linked"
	MsgStatusConflict    = "%s blocked by %s"
	MsgStatusFiltered    = "%s filtered (%s)"
	MsgStatusFilteredBy  = "%s filtered (%s by %s)"
	MsgStatusAccepted    = "  accepted, no rule excluded it"
	MsgStatusRescued     = "  accepted, rescued by %s"
	MsgBackupsHeader     = "Backup sessions in %s"
	MsgBackupsNone       = "No backup sessions recorded."
	MsgBackupsItem       = "%s  %d entries  %s"
	MsgConfigWritten     = "Wrote %s"
	MsgConfigWouldWrite  = "would write %s"
	MsgConfigLoadedFrom  = "# loaded from %s\n"
	MsgConfigDefaultOnly = "# no config files found, showing defaults\n"

	// Error messages
	MsgErrLoadConfig  = "failed to load configuration: %w"
	MsgErrResolve     = "failed to resolve paths: %w"
	MsgErrConfigExist = "%s already exists (use --force to overwrite)"
	MsgErrNoCommand   = "no command specified"

	// Flag descriptions
	MsgFlagVerbose = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagDryRun  = "Preview changes without executing them"
	MsgFlagConfig  = "Read this config file after the others"
	MsgFlagSource  = "Source directory holding the dotfiles (default: current directory)"
	MsgFlagHome    = "Directory to link into (default: $DOTFILER_HOME or $HOME)"
	MsgFlagNoColor = "Disable colored output"
	MsgFlagFormat  = "Output format: auto, term or text"
	MsgFlagLogFile = "Append logs to this file (default: $XDG_STATE_HOME/dotfiler/dotfiler.log)"
	MsgFlagExplain = "Also list filtered entries and the rule that decided each entry"
	MsgFlagForce   = "Overwrite an existing config file"
	MsgFlagManDir  = "Write one man page per command into this directory instead of stdout"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/link-long.txt
	msgLinkLongRaw string
	MsgLinkLong    = strings.TrimSpace(msgLinkLongRaw)

	//go:embed msgs/link-example.txt
	msgLinkExampleRaw string
	MsgLinkExample    = strings.TrimRight(msgLinkExampleRaw, "\n")

	//go:embed msgs/status-long.txt
	msgStatusLongRaw string
	MsgStatusLong    = strings.TrimSpace(msgStatusLongRaw)

	//go:embed msgs/status-example.txt
	msgStatusExampleRaw string
	MsgStatusExample    = strings.TrimRight(msgStatusExampleRaw, "\n")

	//go:embed msgs/restore-long.txt
	msgRestoreLongRaw string
	MsgRestoreLong    = strings.TrimSpace(msgRestoreLongRaw)

	//go:embed msgs/restore-example.txt
	msgRestoreExampleRaw string
	MsgRestoreExample    = strings.TrimRight(msgRestoreExampleRaw, "\n")

	//go:embed msgs/config-long.txt
	msgConfigLongRaw string
	MsgConfigLong    = strings.TrimSpace(msgConfigLongRaw)

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/usage-template.txt
	msgUsageTemplateRaw string
	MsgUsageTemplate    = strings.TrimSpace(msgUsageTemplateRaw)
)
