package dotfiler

import (
	"fmt"
	"os"

	"github.com/arthur-debert/dotfiler/pkg/backup"
	"github.com/arthur-debert/dotfiler/pkg/config"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/filter"
	"github.com/arthur-debert/dotfiler/pkg/linker"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/arthur-debert/dotfiler/pkg/paths"
	"github.com/arthur-debert/dotfiler/pkg/printer"
	"github.com/spf13/cobra"
)

// app is everything a command needs, built from flags and configuration
type app struct {
	cfg    *config.Config
	paths  paths.Paths
	fs     filesystem.FS
	out    printer.Printer
	filter *filter.Filter
	store  *backup.Store
	linker *linker.Linker
	dryRun bool
}

// newPrinter builds the printer for cmd's output according to the flags
func newPrinter(cmd *cobra.Command, flags *globalFlags) (printer.Printer, error) {
	format, err := printer.ParseFormat(flags.format)
	if err != nil {
		return nil, err
	}
	if flags.noColor {
		format = printer.FormatText
	}
	return printer.New(cmd.OutOrStdout(), format), nil
}

// loadConfig layers configuration with flags and DOTFILER_HOME/DOTFILER_SOURCE
// applied as the highest precedence overrides.
func loadConfig(flags *globalFlags) (*config.Config, error) {
	overrides := map[string]interface{}{}

	source := flags.source
	if source == "" {
		source = os.Getenv(paths.EnvSource)
	}
	if source != "" {
		overrides["linking.source_dir"] = source
	}

	home := flags.home
	if home == "" {
		home = os.Getenv(paths.EnvHome)
	}
	if home != "" {
		overrides["linking.home_dir"] = home
	}

	cfg, err := config.Load(config.LoadOptions{
		SourceDir:  source,
		ConfigFile: flags.configFile,
		Overrides:  overrides,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrLoadConfig, err)
	}
	return cfg, nil
}

// newApp wires configuration, paths, filter, backup store and linker
func newApp(cmd *cobra.Command, flags *globalFlags) (*app, error) {
	logger := logging.GetLogger("cmd")

	out, err := newPrinter(cmd, flags)
	if err != nil {
		return nil, err
	}

	cfg, err := loadConfig(flags)
	if err != nil {
		return nil, err
	}

	p, err := paths.Resolve(paths.Options{
		Home:      cfg.Linking.HomeDir,
		Source:    cfg.Linking.SourceDir,
		BackupDir: cfg.Backup.Dir,
	})
	if err != nil {
		return nil, fmt.Errorf(MsgErrResolve, err)
	}

	logger.Debug().
		Str("home", p.Home).
		Str("source", p.Source).
		Str("backupDir", p.BackupDir).
		Strs("configFiles", cfg.Files).
		Bool("dryRun", flags.dryRun).
		Msg("Resolved paths")

	fsys := filesystem.NewOS()
	if flags.dryRun {
		fsys = filesystem.NewReadOnly()
	}
	f := filter.New(cfg.FilterOptions(), p.Source, fsys, out)
	store := backup.NewStore(fsys, p.BackupDir, cfg.Backup.LogFile)

	l := linker.New(fsys, f, store, out, linker.Options{
		Home:         p.Home,
		Source:       p.Source,
		DryRun:       flags.dryRun,
		AddDotPrefix: cfg.Linking.AddDotPrefix,
		Backup:       cfg.Backup.Enabled,
		Overwrite:    cfg.Linking.OverwriteLinks,
	})

	return &app{
		cfg:    cfg,
		paths:  p,
		fs:     fsys,
		out:    out,
		filter: f,
		store:  store,
		linker: l,
		dryRun: flags.dryRun,
	}, nil
}
