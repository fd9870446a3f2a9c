package linker

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filter"
)

// State describes a target as found on disk
type State string

const (
	StateLinked    State = "linked"
	StateNotLinked State = "not-linked"
	// StateConflict means something other than our link occupies the target
	StateConflict State = "conflict"
	StateFiltered State = "filtered"
)

// StatusEntry is the state of one source entry
type StatusEntry struct {
	Name     string
	Source   string
	Target   string
	State    State
	Decision filter.Decision
	// Detail describes a conflict, e.g. the current link destination
	Detail string
}

// Status reports the state of every source entry without changing
// anything. Filtered entries are included so callers can explain them.
func (l *Linker) Status() ([]StatusEntry, error) {
	names, err := l.entries()
	if err != nil {
		return nil, err
	}

	out := make([]StatusEntry, 0, len(names))
	for _, name := range names {
		e := StatusEntry{
			Name:     name,
			Source:   filepath.Join(l.opts.Source, name),
			Target:   l.target(name),
			Decision: l.filter.Explain(name),
		}
		if !e.Decision.Process {
			e.State = StateFiltered
			out = append(out, e)
			continue
		}

		info, err := l.fs.Lstat(e.Target)
		switch {
		case err != nil && os.IsNotExist(err):
			e.State = StateNotLinked
		case err != nil:
			return nil, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", e.Target)
		case info.Mode()&fs.ModeSymlink != 0:
			if current, ok := l.pointsTo(e.Target, e.Source); ok {
				e.State = StateLinked
			} else {
				e.State = StateConflict
				e.Detail = "link to " + current
			}
		case info.IsDir():
			e.State = StateConflict
			e.Detail = "directory"
		default:
			e.State = StateConflict
			e.Detail = "file"
		}
		out = append(out, e)
	}
	return out, nil
}
