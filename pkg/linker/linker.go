package linker

import (
	stderrors "errors"
	"path/filepath"
	"sort"

	"github.com/arthur-debert/dotfiler/pkg/backup"
	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/filter"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/arthur-debert/dotfiler/pkg/paths"
	"github.com/arthur-debert/dotfiler/pkg/printer"
	"github.com/rs/zerolog"
)

// Options controls a Linker
type Options struct {
	Home   string
	Source string
	DryRun bool
	// AddDotPrefix links bashrc as ~/.bashrc
	AddDotPrefix bool
	// Backup moves existing files aside instead of failing
	Backup bool
	// Overwrite replaces symlinks that point elsewhere
	Overwrite bool
}

// Linker ties the filter, filesystem and backup store together.
type Linker struct {
	fs     filesystem.FS
	filter *filter.Filter
	store  *backup.Store
	out    printer.Printer
	opts   Options
	logger zerolog.Logger
}

// New creates a Linker. A nil store disables backups and session
// recording; a nil printer discards output.
func New(fsys filesystem.FS, f *filter.Filter, store *backup.Store, out printer.Printer, opts Options) *Linker {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	if out == nil {
		out = printer.Discard
	}
	if store == nil {
		opts.Backup = false
	}
	return &Linker{
		fs:     fsys,
		filter: f,
		store:  store,
		out:    out,
		opts:   opts,
		logger: logging.GetLogger("linker"),
	}
}

// target returns the home path for a source entry name
func (l *Linker) target(name string) string {
	return paths.Paths{Home: l.opts.Home}.Target(name, l.opts.AddDotPrefix)
}

// entries lists the source directory, sorted by name
func (l *Linker) entries() ([]string, error) {
	dirEntries, err := l.fs.ReadDir(l.opts.Source)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrSourceNotFound, "cannot list source directory %s", l.opts.Source).
			WithDetail("source", l.opts.Source)
	}
	names := make([]string, 0, len(dirEntries))
	for _, e := range dirEntries {
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// pointsTo reports whether the symlink at linkPath resolves to dest
func (l *Linker) pointsTo(linkPath, dest string) (string, bool) {
	current, err := l.fs.Readlink(linkPath)
	if err != nil {
		return "", false
	}
	resolved := current
	if !filepath.IsAbs(resolved) {
		resolved = filepath.Join(filepath.Dir(linkPath), resolved)
	}
	return current, filepath.Clean(resolved) == filepath.Clean(dest)
}

// aggregate folds per-entry errors into one coded error, nil when none
func aggregate(code errors.ErrorCode, total int, errs []error) error {
	if len(errs) == 0 {
		return nil
	}
	return errors.Wrapf(stderrors.Join(errs...), code, "%d of %d entries failed", len(errs), total).
		WithDetail("failed", len(errs))
}
