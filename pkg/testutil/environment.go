package testutil

import (
	"path/filepath"
	"testing"
)

// Environment is an isolated directory layout for one test. XDG variables
// point inside it and DOTFILER_HOME/DOTFILER_SOURCE are cleared, so nothing
// outside Root is read or written.
type Environment struct {
	Root      string
	Home      string
	Source    string
	ConfigDir string
	StateDir  string
}

// NewEnvironment creates the layout and isolates the process environment
// for the duration of the test. Tests using it cannot run in parallel.
func NewEnvironment(t *testing.T) *Environment {
	t.Helper()

	root := t.TempDir()
	env := &Environment{
		Root:      root,
		Home:      CreateDir(t, root, "home"),
		Source:    CreateDir(t, root, "dotfiles"),
		ConfigDir: CreateDir(t, root, "config"),
		StateDir:  CreateDir(t, root, "state"),
	}

	t.Setenv("XDG_CONFIG_HOME", env.ConfigDir)
	t.Setenv("XDG_STATE_HOME", env.StateDir)
	t.Setenv("DOTFILER_HOME", "")
	t.Setenv("DOTFILER_SOURCE", "")
	t.Setenv("NO_COLOR", "1")

	return env
}

// WithSource creates files in the source directory and returns env
func (e *Environment) WithSource(t *testing.T, files map[string]string) *Environment {
	t.Helper()
	CreateFiles(t, e.Source, files)
	return e
}

// SourcePath returns the absolute path of a source entry
func (e *Environment) SourcePath(name string) string {
	return filepath.Join(e.Source, name)
}

// HomePath returns the absolute path of an entry in the home directory
func (e *Environment) HomePath(name string) string {
	return filepath.Join(e.Home, name)
}

// BackupDir is the default backup directory under StateDir
func (e *Environment) BackupDir() string {
	return filepath.Join(e.StateDir, "dotfiler", "backups")
}

// UserConfigPath is the default user config file under ConfigDir
func (e *Environment) UserConfigPath() string {
	return filepath.Join(e.ConfigDir, "dotfiler", "config.toml")
}
