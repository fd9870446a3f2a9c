package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEnvironment(t *testing.T) {
	t.Setenv("DOTFILER_HOME", "/leaked")
	env := NewEnvironment(t)

	for _, dir := range []string{env.Home, env.Source, env.ConfigDir, env.StateDir} {
		assert.DirExists(t, dir)
	}
	assert.Equal(t, env.ConfigDir, os.Getenv("XDG_CONFIG_HOME"))
	assert.Equal(t, env.StateDir, os.Getenv("XDG_STATE_HOME"))
	assert.Empty(t, os.Getenv("DOTFILER_HOME"))
	assert.Equal(t, filepath.Join(env.StateDir, "dotfiler", "backups"), env.BackupDir())
}

func TestFileHelpers(t *testing.T) {
	env := NewEnvironment(t).WithSource(t, map[string]string{
		"bashrc":        "b",
		"nvim/init.lua": "lua",
	})

	AssertRegularFile(t, env.SourcePath("bashrc"), "b")
	assert.Equal(t, "lua", ReadFile(t, env.SourcePath("nvim/init.lua")))

	link := env.HomePath(".bashrc")
	AssertNotExists(t, link)
	CreateSymlink(t, env.SourcePath("bashrc"), link)
	AssertSymlink(t, link, env.SourcePath("bashrc"))
	assert.Equal(t, "b", ReadFile(t, link))

	dangling := env.HomePath(".gone")
	CreateSymlink(t, env.SourcePath("missing"), dangling)
	_, err := os.Lstat(dangling)
	require.NoError(t, err)
}
