package linker

import (
	"context"

	"github.com/arthur-debert/dotfiler/pkg/backup"
	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
)

// RestoreStatus is the outcome of restoring one entry
type RestoreStatus string

const (
	RestoreRestored     RestoreStatus = "restored"
	RestoreUnlinked     RestoreStatus = "unlinked"
	RestoreWouldRestore RestoreStatus = "would-restore"
	// RestoreSkipped means the target no longer holds the link we made
	RestoreSkipped RestoreStatus = "skipped"
	RestoreFailed  RestoreStatus = "failed"
)

// RestoreResult reports what happened to one backup entry
type RestoreResult struct {
	Entry  backup.Entry
	Status RestoreStatus
	Err    error
}

// Restore undoes a link session. An empty session selects the latest.
// Entries are processed newest first: links we created are removed when
// they still point where we left them, then moved files and replaced links
// are put back. The session is dropped from the log when every entry was
// restored. Otherwise the entries that were handled are dropped and the
// failed ones stay, so a later Restore retries only those.
func (l *Linker) Restore(ctx context.Context, session string) (string, []RestoreResult, error) {
	if l.store == nil {
		return "", nil, errors.New(errors.ErrNoBackups, "backups are not enabled")
	}

	var (
		sess backup.Session
		err  error
	)
	if session == "" {
		sess, err = l.store.LatestSession()
	} else {
		sess, err = l.store.Session(session)
	}
	if err != nil {
		return session, nil, err
	}

	l.logger.Info().
		Str("session", sess.ID).
		Int("entries", len(sess.Entries)).
		Bool("dryRun", l.opts.DryRun).
		Msg("Restoring backup session")

	results := make([]RestoreResult, 0, len(sess.Entries))
	var failures []error
	for i := len(sess.Entries) - 1; i >= 0; i-- {
		if err := ctx.Err(); err != nil {
			l.keepUnfinished(sess.ID, results)
			return sess.ID, results, errors.Wrap(err, errors.ErrCanceled, "restore canceled")
		}

		res := l.restoreOne(sess.Entries[i])
		if res.Err != nil {
			failures = append(failures, res.Err)
			l.out.Error("%s: %v", res.Entry.Original, res.Err)
		}
		results = append(results, res)
	}

	if err := aggregate(errors.ErrRestoreFailed, len(sess.Entries), failures); err != nil {
		l.keepUnfinished(sess.ID, results)
		return sess.ID, results, err
	}
	if l.opts.DryRun {
		return sess.ID, results, nil
	}

	if err := l.store.RemoveSession(sess.ID); err != nil {
		return sess.ID, results, err
	}
	if err := l.store.Save(); err != nil {
		return sess.ID, results, err
	}
	l.out.Success("Restored session %s", sess.ID)
	return sess.ID, results, nil
}

// keepUnfinished drops the entries in results that did not fail from the
// session and saves the log. Errors are logged; the caller is already
// returning one.
func (l *Linker) keepUnfinished(session string, results []RestoreResult) {
	if l.opts.DryRun || len(results) == 0 {
		return
	}
	done := make(map[backup.Entry]bool, len(results))
	for _, r := range results {
		if r.Status != RestoreFailed {
			done[r.Entry] = true
		}
	}
	if len(done) == 0 {
		return
	}

	err := l.store.RetainEntries(session, func(e backup.Entry) bool { return !done[e] })
	if err == nil {
		err = l.store.Save()
	}
	if err != nil {
		l.logger.Error().Err(err).Str("session", session).Msg("Failed to record partial restore")
		return
	}
	l.logger.Info().
		Str("session", session).
		Int("restored", len(done)).
		Msg("Partial restore recorded")
}

func (l *Linker) restoreOne(e backup.Entry) RestoreResult {
	res := RestoreResult{Entry: e}

	ours := false
	if filesystem.IsSymlink(l.fs, e.Original) {
		_, ours = l.pointsTo(e.Original, e.Link)
	}
	occupied := filesystem.Exists(l.fs, e.Original)

	if occupied && !ours {
		if e.HasBackup() || e.PreviousLink != "" {
			res.Status = RestoreFailed
			res.Err = errors.Newf(errors.ErrRestoreFailed, "%s changed since it was linked", e.Original).
				WithDetail("path", e.Original)
			return res
		}
		l.out.Warning("Skipping %s: no longer linked to %s", e.Original, e.Link)
		res.Status = RestoreSkipped
		return res
	}

	if l.opts.DryRun {
		if ours {
			l.out.DryRun("would remove link %s", e.Original)
		}
		switch {
		case e.HasBackup():
			l.out.DryRun("would restore %s from %s", e.Original, e.Backup)
		case e.PreviousLink != "":
			l.out.DryRun("would relink %s -> %s", e.Original, e.PreviousLink)
		}
		res.Status = RestoreWouldRestore
		return res
	}

	if ours {
		if err := l.fs.Remove(e.Original); err != nil {
			res.Status = RestoreFailed
			res.Err = errors.Wrapf(err, errors.ErrFileWrite, "failed to remove link %s", e.Original)
			return res
		}
	}

	switch {
	case e.HasBackup():
		if err := l.fs.Rename(e.Backup, e.Original); err != nil {
			res.Status = RestoreFailed
			res.Err = errors.Wrapf(err, errors.ErrRestoreFailed, "failed to move %s back to %s", e.Backup, e.Original).
				WithDetail("backup", e.Backup)
			return res
		}
		l.out.Success("Restored %s", e.Original)
		res.Status = RestoreRestored
	case e.PreviousLink != "":
		if err := l.fs.Symlink(e.PreviousLink, e.Original); err != nil {
			res.Status = RestoreFailed
			res.Err = errors.Wrapf(err, errors.ErrSymlinkCreate, "failed to relink %s", e.Original)
			return res
		}
		l.out.Success("Relinked %s -> %s", e.Original, e.PreviousLink)
		res.Status = RestoreRestored
	default:
		l.out.Success("Removed link %s", e.Original)
		res.Status = RestoreUnlinked
	}
	return res
}
