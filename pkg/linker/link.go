package linker

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filter"
)

// Status is the outcome of linking one entry
type Status string

const (
	StatusLinked        Status = "linked"
	StatusWouldLink     Status = "would-link"
	StatusAlreadyLinked Status = "already-linked"
	StatusFiltered      Status = "filtered"
	StatusBackedUp      Status = "backed-up"
	StatusFailed        Status = "failed"
)

// LinkResult reports what happened to one source entry
type LinkResult struct {
	Name       string
	Source     string
	Target     string
	Status     Status
	BackupPath string
	// Decision is the filter outcome for Name
	Decision filter.Decision
	Err      error
}

// Link links every accepted source entry into the home directory. It
// returns one result per source entry, and an aggregated error when any
// entry failed. Cancellation is checked between entries.
func (l *Linker) Link(ctx context.Context) ([]LinkResult, error) {
	names, err := l.entries()
	if err != nil {
		return nil, err
	}

	l.logger.Info().
		Str("source", l.opts.Source).
		Str("home", l.opts.Home).
		Bool("dryRun", l.opts.DryRun).
		Int("entries", len(names)).
		Msg("Linking")

	run := &linkRun{Linker: l}
	results := make([]LinkResult, 0, len(names))
	var failures []error

	for _, name := range names {
		if err := ctx.Err(); err != nil {
			saveErr := run.finish()
			if saveErr != nil {
				l.logger.Error().Err(saveErr).Msg("Failed to save backup log after cancellation")
			}
			return results, errors.Wrap(err, errors.ErrCanceled, "link canceled")
		}

		res := run.linkOne(name)
		if res.Err != nil {
			failures = append(failures, res.Err)
			l.out.Error("%s: %v", res.Target, res.Err)
		}
		results = append(results, res)
	}

	if err := run.finish(); err != nil {
		return results, err
	}
	return results, aggregate(errors.ErrLinkFailed, len(names), failures)
}

// linkRun carries the backup session of one Link call. The session is
// opened on the first change so runs that change nothing leave no trace.
type linkRun struct {
	*Linker
	session string
}

func (r *linkRun) sessionID() (string, error) {
	if r.session != "" || r.store == nil {
		return r.session, nil
	}
	id, err := r.store.BeginSession(r.opts.Source)
	if err != nil {
		return "", err
	}
	r.session = id
	return id, nil
}

func (r *linkRun) finish() error {
	if r.session == "" || r.store == nil {
		return nil
	}
	return r.store.Save()
}

func (r *linkRun) linkOne(name string) LinkResult {
	res := LinkResult{
		Name:   name,
		Source: filepath.Join(r.opts.Source, name),
		Target: r.target(name),
	}

	res.Decision = r.filter.Explain(name)
	if !res.Decision.Process {
		res.Status = StatusFiltered
		return res
	}

	info, err := r.fs.Lstat(res.Target)
	switch {
	case err != nil && os.IsNotExist(err):
		return r.newLink(res)
	case err != nil:
		return failed(res, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", res.Target))
	case info.Mode()&fs.ModeSymlink != 0:
		return r.replaceLink(res)
	default:
		return r.backupAndLink(res)
	}
}

// newLink links a target where nothing existed
func (r *linkRun) newLink(res LinkResult) LinkResult {
	if r.opts.DryRun {
		r.out.DryRun("would link %s -> %s", res.Target, res.Source)
		res.Status = StatusWouldLink
		return res
	}

	if err := r.symlink(res); err != nil {
		return failed(res, err)
	}
	if r.store != nil {
		if err := r.recordLink(res); err != nil {
			if rmErr := r.fs.Remove(res.Target); rmErr != nil {
				r.logger.Error().Err(rmErr).Str("target", res.Target).Msg("Failed to remove unrecorded link")
			}
			return failed(res, err)
		}
	}
	return r.linked(res, StatusLinked)
}

// recordLink adds a link-only entry for a symlink that now exists
func (r *linkRun) recordLink(res LinkResult) error {
	session, err := r.sessionID()
	if err != nil {
		return err
	}
	_, err = r.store.RecordLink(session, res.Target, res.Source)
	return err
}

// finishLink creates the symlink once the target path is free
func (r *linkRun) finishLink(res LinkResult, status Status) LinkResult {
	if err := r.symlink(res); err != nil {
		return failed(res, err)
	}
	return r.linked(res, status)
}

func (r *linkRun) linked(res LinkResult, status Status) LinkResult {
	res.Status = status
	if res.BackupPath != "" {
		r.out.Success("%s -> %s (backup: %s)", res.Target, res.Source, res.BackupPath)
	} else {
		r.out.Success("%s -> %s", res.Target, res.Source)
	}
	return res
}

func (r *linkRun) symlink(res LinkResult) error {
	if err := r.fs.Symlink(res.Source, res.Target); err != nil {
		return errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to link %s", res.Target).
			WithDetail("source", res.Source).
			WithDetail("target", res.Target)
	}
	r.logger.Debug().Str("source", res.Source).Str("target", res.Target).Msg("Symlink created")
	return nil
}

func (r *linkRun) replaceLink(res LinkResult) LinkResult {
	current, ok := r.pointsTo(res.Target, res.Source)
	if ok {
		res.Status = StatusAlreadyLinked
		r.out.Info("%s already linked", res.Target)
		return res
	}

	if !r.opts.Overwrite {
		return failed(res, errors.Newf(errors.ErrSymlinkExists, "%s is a link to %s", res.Target, current).
			WithDetail("target", res.Target).
			WithDetail("current", current))
	}

	if r.opts.DryRun {
		r.out.DryRun("would replace link %s (was -> %s)", res.Target, current)
		res.Status = StatusWouldLink
		return res
	}

	if r.store != nil {
		session, err := r.sessionID()
		if err != nil {
			return failed(res, err)
		}
		if _, err := r.store.RecordReplacedLink(session, res.Target, current, res.Source); err != nil {
			return failed(res, err)
		}
	}
	if err := r.fs.Remove(res.Target); err != nil {
		return failed(res, errors.Wrapf(err, errors.ErrFileWrite, "failed to remove link %s", res.Target))
	}
	return r.finishLink(res, StatusLinked)
}

func (r *linkRun) backupAndLink(res LinkResult) LinkResult {
	if !r.opts.Backup {
		return failed(res, errors.Newf(errors.ErrSymlinkExists, "%s already exists", res.Target).
			WithDetail("target", res.Target))
	}

	if r.opts.DryRun {
		r.out.DryRun("would back up %s", res.Target)
		r.out.DryRun("would link %s -> %s", res.Target, res.Source)
		res.Status = StatusWouldLink
		return res
	}

	session, err := r.sessionID()
	if err != nil {
		return failed(res, err)
	}
	entry, err := r.store.Backup(session, res.Target, res.Source)
	if err != nil {
		return failed(res, err)
	}
	res.BackupPath = entry.Backup
	return r.finishLink(res, StatusBackedUp)
}

func failed(res LinkResult, err error) LinkResult {
	res.Status = StatusFailed
	res.Err = err
	return res
}
