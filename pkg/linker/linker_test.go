package linker_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/dotfiler/pkg/backup"
	"github.com/arthur-debert/dotfiler/pkg/errors"
	"github.com/arthur-debert/dotfiler/pkg/filesystem"
	"github.com/arthur-debert/dotfiler/pkg/filter"
	"github.com/arthur-debert/dotfiler/pkg/linker"
	"github.com/arthur-debert/dotfiler/pkg/printer"
	"github.com/arthur-debert/dotfiler/pkg/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type env struct {
	home   string
	source string
	store  *backup.Store
	out    *printer.Recorder
}

func setup(t *testing.T, files map[string]string) env {
	t.Helper()
	root := t.TempDir()
	e := env{
		home:   filepath.Join(root, "home"),
		source: filepath.Join(root, "dots"),
		out:    printer.NewRecorder(),
	}
	testutil.CreateDir(t, root, "home")
	testutil.CreateDir(t, root, "dots")
	testutil.CreateFiles(t, e.source, files)
	e.store = backup.NewStore(filesystem.NewOS(), filepath.Join(root, "state", "backups"), "backup-log.yaml")
	return e
}

func (e env) linker(t *testing.T, mutate func(*linker.Options)) *linker.Linker {
	t.Helper()
	fsys := filesystem.NewOS()
	f := filter.New(filter.DefaultOptions(), e.source, fsys, e.out)
	opts := linker.Options{
		Home:         e.home,
		Source:       e.source,
		AddDotPrefix: true,
		Backup:       true,
	}
	if mutate != nil {
		mutate(&opts)
	}
	return linker.New(fsys, f, e.store, e.out, opts)
}

func byName(results []linker.LinkResult) map[string]linker.LinkResult {
	m := make(map[string]linker.LinkResult, len(results))
	for _, r := range results {
		m[r.Name] = r
	}
	return m
}

func TestLinkCreatesDotPrefixedLinks(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b", "vimrc": "v", "README": "r", ".git": "g"})

	results, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 4)

	got := byName(results)
	assert.Equal(t, linker.StatusLinked, got["bashrc"].Status)
	assert.Equal(t, linker.StatusLinked, got["vimrc"].Status)
	assert.Equal(t, linker.StatusFiltered, got["README"].Status)
	assert.Equal(t, filter.StageExcluded, got["README"].Decision.Stage)
	assert.Equal(t, linker.StatusFiltered, got[".git"].Status)

	testutil.AssertSymlink(t, filepath.Join(e.home, ".bashrc"), filepath.Join(e.source, "bashrc"))
	testutil.AssertNotExists(t, filepath.Join(e.home, ".README"))

	session, err := e.store.LatestSession()
	require.NoError(t, err)
	assert.Len(t, session.Entries, 2)
}

func TestLinkWithoutDotPrefix(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})

	_, err := e.linker(t, func(o *linker.Options) { o.AddDotPrefix = false }).Link(context.Background())
	require.NoError(t, err)

	assert.FileExists(t, filepath.Join(e.home, "bashrc"))
}

func TestLinkDryRunTouchesNothing(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b", "zshrc": "z"})
	require.NoError(t, os.WriteFile(filepath.Join(e.home, ".zshrc"), []byte("mine"), 0644))

	results, err := e.linker(t, func(o *linker.Options) { o.DryRun = true }).Link(context.Background())
	require.NoError(t, err)

	for _, r := range results {
		assert.Equal(t, linker.StatusWouldLink, r.Status, r.Name)
	}
	testutil.AssertNotExists(t, filepath.Join(e.home, ".bashrc"))
	testutil.AssertRegularFile(t, filepath.Join(e.home, ".zshrc"), "mine")
	assert.NoFileExists(t, e.store.LogPath())

	dry := e.out.ByLevel(printer.LevelDryRun)
	assert.Contains(t, dry, "would back up "+filepath.Join(e.home, ".zshrc"))
}

func TestLinkBacksUpExistingFile(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "new"})
	target := filepath.Join(e.home, ".bashrc")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	results, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)
	require.Len(t, results, 1)

	res := results[0]
	assert.Equal(t, linker.StatusBackedUp, res.Status)
	require.NotEmpty(t, res.BackupPath)

	backed, err := os.ReadFile(res.BackupPath)
	require.NoError(t, err)
	assert.Equal(t, "old", string(backed))

	linked, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Equal(t, "new", string(linked))

	reloaded := backup.NewStore(filesystem.NewOS(), e.store.Dir(), "backup-log.yaml")
	session, err := reloaded.LatestSession()
	require.NoError(t, err)
	require.Len(t, session.Entries, 1)
	assert.Equal(t, res.BackupPath, session.Entries[0].Backup)
}

func TestLinkExistingFileWithoutBackup(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "new", "vimrc": "v"})
	require.NoError(t, os.WriteFile(filepath.Join(e.home, ".bashrc"), []byte("old"), 0644))

	results, err := e.linker(t, func(o *linker.Options) { o.Backup = false }).Link(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))

	got := byName(results)
	assert.Equal(t, linker.StatusFailed, got["bashrc"].Status)
	assert.True(t, errors.IsErrorCode(got["bashrc"].Err, errors.ErrSymlinkExists))
	assert.Equal(t, linker.StatusLinked, got["vimrc"].Status, "other entries still linked")
}

func TestLinkIsIdempotent(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})
	l := e.linker(t, nil)

	_, err := l.Link(context.Background())
	require.NoError(t, err)
	results, err := l.Link(context.Background())
	require.NoError(t, err)

	assert.Equal(t, linker.StatusAlreadyLinked, results[0].Status)
	sessions, err := e.store.Sessions()
	require.NoError(t, err)
	assert.Len(t, sessions, 1, "a run without changes records no session")
}

func TestLinkForeignSymlink(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})
	target := filepath.Join(e.home, ".bashrc")
	require.NoError(t, os.Symlink("/etc/bash.bashrc", target))

	t.Run("refused_without_overwrite", func(t *testing.T) {
		results, err := e.linker(t, nil).Link(context.Background())
		require.Error(t, err)
		assert.True(t, errors.IsErrorCode(results[0].Err, errors.ErrSymlinkExists))
	})

	t.Run("replaced_with_overwrite", func(t *testing.T) {
		results, err := e.linker(t, func(o *linker.Options) { o.Overwrite = true }).Link(context.Background())
		require.NoError(t, err)
		assert.Equal(t, linker.StatusLinked, results[0].Status)

		testutil.AssertSymlink(t, target, filepath.Join(e.source, "bashrc"))

		session, err := e.store.LatestSession()
		require.NoError(t, err)
		require.Len(t, session.Entries, 1)
		assert.Equal(t, "/etc/bash.bashrc", session.Entries[0].PreviousLink)
	})
}

func TestLinkHonorsCancellation(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	results, err := e.linker(t, nil).Link(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrCanceled))
	assert.Empty(t, results)
	assert.NoFileExists(t, filepath.Join(e.home, ".bashrc"))
}

func TestLinkMissingSource(t *testing.T) {
	e := setup(t, nil)
	l := linker.New(filesystem.NewOS(), filter.NewWithPatterns(filter.DefaultOptions(), "", nil), nil, nil,
		linker.Options{Home: e.home, Source: filepath.Join(e.source, "missing")})

	_, err := l.Link(context.Background())
	assert.True(t, errors.IsErrorCode(err, errors.ErrSourceNotFound))
}

func TestLinkRespectsIgnoreFile(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b", "secret.key": "s", "keep.key": "k"})
	require.NoError(t, os.WriteFile(filepath.Join(e.source, ".dotfilerignore"), []byte("*.key\n!keep.key\n"), 0644))

	results, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)

	got := byName(results)
	assert.Equal(t, linker.StatusFiltered, got["secret.key"].Status)
	assert.Equal(t, filter.StageIgnored, got["secret.key"].Decision.Stage)
	assert.Equal(t, linker.StatusLinked, got["keep.key"].Status)
	assert.True(t, got["keep.key"].Decision.Rescued)
	assert.Equal(t, linker.StatusFiltered, got[".dotfilerignore"].Status)
}

func TestStatus(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b", "vimrc": "v", "zshrc": "z", "Makefile": "m"})
	require.NoError(t, os.Symlink(filepath.Join(e.source, "bashrc"), filepath.Join(e.home, ".bashrc")))
	require.NoError(t, os.WriteFile(filepath.Join(e.home, ".zshrc"), []byte("mine"), 0644))

	entries, err := e.linker(t, nil).Status()
	require.NoError(t, err)
	require.Len(t, entries, 4)

	states := map[string]linker.State{}
	for _, s := range entries {
		states[s.Name] = s.State
	}
	assert.Equal(t, linker.StateLinked, states["bashrc"])
	assert.Equal(t, linker.StateNotLinked, states["vimrc"])
	assert.Equal(t, linker.StateConflict, states["zshrc"])
	assert.Equal(t, linker.StateFiltered, states["Makefile"])
	assert.NoFileExists(t, e.store.LogPath())
}

func TestRestore(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "new", "vimrc": "v"})
	target := filepath.Join(e.home, ".bashrc")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	_, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)

	t.Run("dry_run_previews", func(t *testing.T) {
		_, results, err := e.linker(t, func(o *linker.Options) { o.DryRun = true }).Restore(context.Background(), "")
		require.NoError(t, err)
		require.Len(t, results, 2)
		for _, r := range results {
			assert.Equal(t, linker.RestoreWouldRestore, r.Status)
		}
		assert.True(t, filesystem.IsSymlink(filesystem.NewOS(), target))
	})

	t.Run("restores_latest_session", func(t *testing.T) {
		id, results, err := e.linker(t, nil).Restore(context.Background(), "")
		require.NoError(t, err)
		assert.NotEmpty(t, id)
		require.Len(t, results, 2)

		testutil.AssertRegularFile(t, target, "old")
		testutil.AssertNotExists(t, filepath.Join(e.home, ".vimrc"))

		_, err = e.store.LatestSession()
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoBackups))
	})

	t.Run("nothing_left", func(t *testing.T) {
		_, _, err := e.linker(t, nil).Restore(context.Background(), "")
		assert.True(t, errors.IsErrorCode(err, errors.ErrNoBackups))
	})
}

func TestRestoreRelinksReplacedSymlink(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})
	target := filepath.Join(e.home, ".bashrc")
	require.NoError(t, os.Symlink("/etc/bash.bashrc", target))

	_, err := e.linker(t, func(o *linker.Options) { o.Overwrite = true }).Link(context.Background())
	require.NoError(t, err)

	_, results, err := e.linker(t, nil).Restore(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, linker.RestoreRestored, results[0].Status)

	testutil.AssertSymlink(t, target, "/etc/bash.bashrc")
}

func TestRestoreRefusesChangedTarget(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "new"})
	target := filepath.Join(e.home, ".bashrc")
	require.NoError(t, os.WriteFile(target, []byte("old"), 0644))

	_, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.Remove(target))
	require.NoError(t, os.WriteFile(target, []byte("edited by hand"), 0644))

	id, results, err := e.linker(t, nil).Restore(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRestoreFailed))
	assert.Equal(t, linker.RestoreFailed, results[0].Status)

	_, err = e.store.Session(id)
	assert.NoError(t, err, "a failed restore keeps the session")
}

func TestRestoreRetryAfterPartialFailure(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "new b", "vimrc": "new v"})
	bashrc := filepath.Join(e.home, ".bashrc")
	vimrc := filepath.Join(e.home, ".vimrc")
	require.NoError(t, os.WriteFile(bashrc, []byte("old b"), 0644))
	require.NoError(t, os.WriteFile(vimrc, []byte("old v"), 0644))

	results, err := e.linker(t, nil).Link(context.Background())
	require.NoError(t, err)
	vimBackup := byName(results)["vimrc"].BackupPath
	require.NotEmpty(t, vimBackup)

	parked := filepath.Join(filepath.Dir(e.home), "parked")
	require.NoError(t, os.Rename(vimBackup, parked))

	id, _, err := e.linker(t, nil).Restore(context.Background(), "")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrRestoreFailed))
	testutil.AssertRegularFile(t, bashrc, "old b")

	sess, err := e.store.Session(id)
	require.NoError(t, err)
	require.Len(t, sess.Entries, 1, "restored entries leave the session")
	assert.Equal(t, vimrc, sess.Entries[0].Original)

	reloaded := backup.NewStore(filesystem.NewOS(), e.store.Dir(), "backup-log.yaml")
	sess, err = reloaded.Session(id)
	require.NoError(t, err)
	assert.Len(t, sess.Entries, 1, "partial progress is saved")

	require.NoError(t, os.Rename(parked, vimBackup))

	retryID, retried, err := e.linker(t, nil).Restore(context.Background(), id)
	require.NoError(t, err)
	assert.Equal(t, id, retryID)
	require.Len(t, retried, 1)
	assert.Equal(t, linker.RestoreRestored, retried[0].Status)

	testutil.AssertRegularFile(t, bashrc, "old b")
	testutil.AssertRegularFile(t, vimrc, "old v")
	_, err = e.store.LatestSession()
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoBackups))
}

func TestLinkRecordsOnlyCreatedLinks(t *testing.T) {
	e := setup(t, map[string]string{"bashrc": "b"})
	l := e.linker(t, func(o *linker.Options) { o.Home = filepath.Join(e.home, "missing") })

	results, err := l.Link(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrLinkFailed))
	assert.Equal(t, linker.StatusFailed, byName(results)["bashrc"].Status)

	sessions, err := e.store.Sessions()
	require.NoError(t, err)
	assert.Empty(t, sessions)
	assert.NoFileExists(t, e.store.LogPath())

	_, _, err = e.linker(t, nil).Restore(context.Background(), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoBackups))
}

func TestRestoreWithoutStore(t *testing.T) {
	e := setup(t, nil)
	l := linker.New(nil, filter.NewWithPatterns(filter.DefaultOptions(), e.source, nil), nil, nil,
		linker.Options{Home: e.home, Source: e.source})

	_, _, err := l.Restore(context.Background(), "")
	assert.True(t, errors.IsErrorCode(err, errors.ErrNoBackups))
}
