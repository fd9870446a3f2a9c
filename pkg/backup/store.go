package backup

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/logging"
	"github.com/gofrs/flock"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"
)

// Store owns the backup directory and its log. A Store is not safe for
// concurrent use; concurrent processes are serialized by the lock file.
type Store struct {
	fs      filesystem.FS
	dir     string
	logPath string
	log     Log
	loaded  bool
	now     func() time.Time
	logger  zerolog.Logger
}

// NewStore creates a Store rooted at dir. A relative logFile is placed
// inside dir.
func NewStore(fsys filesystem.FS, dir, logFile string) *Store {
	if fsys == nil {
		fsys = filesystem.NewOS()
	}
	logPath := logFile
	if !filepath.IsAbs(logPath) {
		logPath = filepath.Join(dir, logFile)
	}
	return &Store{
		fs:      fsys,
		dir:     dir,
		logPath: logPath,
		log:     Log{Version: LogVersion},
		now:     time.Now,
		logger:  logging.GetLogger("backup"),
	}
}

// Dir returns the backup directory
func (s *Store) Dir() string { return s.dir }

// LogPath returns the path of the YAML log
func (s *Store) LogPath() string { return s.logPath }

// Load reads the log from disk. A missing log is an empty log.
func (s *Store) Load() error {
	data, err := s.fs.ReadFile(s.logPath)
	if err != nil {
		if os.IsNotExist(err) {
			s.log = Log{Version: LogVersion}
			s.loaded = true
			return nil
		}
		return errors.Wrapf(err, errors.ErrBackupLog, "failed to read backup log %s", s.logPath)
	}

	var log Log
	if err := yaml.Unmarshal(data, &log); err != nil {
		return errors.Wrapf(err, errors.ErrBackupLog, "failed to parse backup log %s", s.logPath).
			WithDetail("path", s.logPath)
	}
	if log.Version == 0 {
		log.Version = LogVersion
	}

	s.log = log
	s.loaded = true
	s.logger.Debug().
		Str("path", s.logPath).
		Int("sessions", len(log.Sessions)).
		Msg("Backup log loaded")
	return nil
}

func (s *Store) ensureLoaded() error {
	if s.loaded {
		return nil
	}
	return s.Load()
}

// BeginSession starts a session for links into the home directory from
// source and returns its id. Ids are timestamps, suffixed when two
// sessions start within the same second.
func (s *Store) BeginSession(source string) (string, error) {
	if err := s.ensureLoaded(); err != nil {
		return "", err
	}

	now := s.now()
	base := now.Format(SessionIDFormat)
	id := base
	for n := 2; s.find(id) >= 0; n++ {
		id = fmt.Sprintf("%s-%d", base, n)
	}

	s.log.Sessions = append(s.log.Sessions, Session{
		ID:        id,
		Source:    source,
		CreatedAt: now,
	})
	s.logger.Debug().Str("session", id).Msg("Backup session started")
	return id, nil
}

// Backup moves whatever sits at original into the session directory and
// records the entry. When nothing exists at original only the link is
// recorded. Symlinks are not moved; use RecordReplacedLink for them.
func (s *Store) Backup(session, original, link string) (Entry, error) {
	idx := s.find(session)
	if idx < 0 {
		return Entry{}, errors.Newf(errors.ErrNotFound, "backup session %s not found", session)
	}

	entry := Entry{Original: original, Link: link, CreatedAt: s.now()}

	info, err := s.fs.Lstat(original)
	switch {
	case err != nil && os.IsNotExist(err):
		// nothing to move
	case err != nil:
		return Entry{}, errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", original)
	case info.Mode()&fs.ModeSymlink != 0:
		return Entry{}, errors.Newf(errors.ErrBackupCreate, "%s is a symlink", original).
			WithDetail("path", original)
	default:
		dest, err := s.moveAside(session, original)
		if err != nil {
			return Entry{}, err
		}
		entry.Backup = dest
	}

	s.log.Sessions[idx].Entries = append(s.log.Sessions[idx].Entries, entry)
	s.logger.Debug().
		Str("session", session).
		Str("original", original).
		Str("backup", entry.Backup).
		Msg("Backup entry recorded")
	return entry, nil
}

// RecordReplacedLink records that a symlink at original pointing to
// previous was replaced by link. The caller removes the old symlink.
func (s *Store) RecordReplacedLink(session, original, previous, link string) (Entry, error) {
	return s.record(session, Entry{Original: original, PreviousLink: previous, Link: link})
}

// RecordLink records a link created where nothing existed. The filesystem
// is not touched, so callers record only links that were actually made.
func (s *Store) RecordLink(session, original, link string) (Entry, error) {
	return s.record(session, Entry{Original: original, Link: link})
}

func (s *Store) record(session string, entry Entry) (Entry, error) {
	idx := s.find(session)
	if idx < 0 {
		return Entry{}, errors.Newf(errors.ErrNotFound, "backup session %s not found", session)
	}
	entry.CreatedAt = s.now()
	s.log.Sessions[idx].Entries = append(s.log.Sessions[idx].Entries, entry)
	return entry, nil
}

// RetainEntries keeps only the entries of a session for which keep returns
// true. A session left empty is dropped on the next Save; its directory is
// not removed.
func (s *Store) RetainEntries(session string, keep func(Entry) bool) error {
	idx := s.find(session)
	if idx < 0 {
		return errors.Newf(errors.ErrNoBackups, "backup session %s not found", session)
	}
	entries := s.log.Sessions[idx].Entries
	kept := make([]Entry, 0, len(entries))
	for _, e := range entries {
		if keep(e) {
			kept = append(kept, e)
		}
	}
	s.log.Sessions[idx].Entries = kept
	return nil
}

// moveAside renames original into BackupDir/<session>/, keeping its base
// name unless that is taken.
func (s *Store) moveAside(session, original string) (string, error) {
	sessionDir := filepath.Join(s.dir, session)
	if err := s.fs.MkdirAll(sessionDir, 0755); err != nil {
		return "", errors.Wrapf(err, errors.ErrDirCreate, "failed to create backup directory %s", sessionDir)
	}

	base := filepath.Base(original)
	dest := filepath.Join(sessionDir, base)
	for n := 1; filesystem.Exists(s.fs, dest); n++ {
		dest = filepath.Join(sessionDir, fmt.Sprintf("%s.%d", base, n))
	}

	if err := s.fs.Rename(original, dest); err != nil {
		return "", errors.Wrapf(err, errors.ErrBackupCreate, "failed to move %s to %s", original, dest).
			WithDetail("original", original).
			WithDetail("backup", dest)
	}
	return dest, nil
}

// Save writes the log atomically while holding the lock file. Sessions
// without entries are dropped.
func (s *Store) Save() error {
	if err := s.fs.MkdirAll(filepath.Dir(s.logPath), 0755); err != nil {
		return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", filepath.Dir(s.logPath))
	}

	lock := flock.New(s.logPath + ".lock")
	if err := lock.Lock(); err != nil {
		return errors.Wrap(err, errors.ErrBackupLock, "failed to lock backup log").
			WithDetail("lock", lock.Path())
	}
	defer func() {
		if err := lock.Unlock(); err != nil {
			s.logger.Warn().Err(err).Str("lock", lock.Path()).Msg("Failed to release backup log lock")
		}
	}()

	kept := s.log.Sessions[:0]
	for _, sess := range s.log.Sessions {
		if len(sess.Entries) > 0 {
			kept = append(kept, sess)
		}
	}
	s.log.Sessions = kept
	s.log.Version = LogVersion

	data, err := yaml.Marshal(&s.log)
	if err != nil {
		return errors.Wrap(err, errors.ErrBackupLog, "failed to encode backup log")
	}

	tmpPath := s.logPath + ".tmp"
	if err := s.fs.WriteFile(tmpPath, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to write %s", tmpPath)
	}
	if err := s.fs.Rename(tmpPath, s.logPath); err != nil {
		_ = s.fs.Remove(tmpPath)
		return errors.Wrapf(err, errors.ErrBackupLog, "failed to save backup log %s", s.logPath)
	}

	s.logger.Debug().
		Str("path", s.logPath).
		Int("sessions", len(s.log.Sessions)).
		Msg("Backup log saved")
	return nil
}

// Sessions returns the recorded sessions, oldest first
func (s *Store) Sessions() ([]Session, error) {
	if err := s.ensureLoaded(); err != nil {
		return nil, err
	}
	out := make([]Session, 0, len(s.log.Sessions))
	for _, sess := range s.log.Sessions {
		if len(sess.Entries) > 0 {
			out = append(out, sess)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

// Session returns the session with the given id
func (s *Store) Session(id string) (Session, error) {
	if err := s.ensureLoaded(); err != nil {
		return Session{}, err
	}
	idx := s.find(id)
	if idx < 0 || len(s.log.Sessions[idx].Entries) == 0 {
		return Session{}, errors.Newf(errors.ErrNoBackups, "backup session %s not found", id).
			WithDetail("session", id)
	}
	return s.log.Sessions[idx], nil
}

// LatestSession returns the most recent session with entries
func (s *Store) LatestSession() (Session, error) {
	sessions, err := s.Sessions()
	if err != nil {
		return Session{}, err
	}
	if len(sessions) == 0 {
		return Session{}, errors.New(errors.ErrNoBackups, "no backup sessions recorded")
	}
	return sessions[len(sessions)-1], nil
}

// RemoveSession drops a session from the log and deletes its backup
// directory. The log is not saved.
func (s *Store) RemoveSession(id string) error {
	idx := s.find(id)
	if idx < 0 {
		return errors.Newf(errors.ErrNoBackups, "backup session %s not found", id)
	}
	s.log.Sessions = append(s.log.Sessions[:idx], s.log.Sessions[idx+1:]...)

	sessionDir := filepath.Join(s.dir, id)
	if err := s.fs.RemoveAll(sessionDir); err != nil {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", sessionDir)
	}
	return nil
}

func (s *Store) find(id string) int {
	for i, sess := range s.log.Sessions {
		if sess.ID == id {
			return i
		}
	}
	return -1
}
