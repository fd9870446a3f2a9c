package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/arthur-debert/dotfiler/pkg/errors"
)

// Environment variable names
const (
	// EnvHome overrides the link destination, read by the CLI only
	EnvHome = "DOTFILER_HOME"

	// EnvSource overrides the source directory, read by the CLI only
	EnvSource = "DOTFILER_SOURCE"
)

// Directory and file names under the XDG directories
const (
	AppDirName     = "dotfiler"
	BackupsDirName = "backups"
	ConfigFileName = "config.toml"
	// SourceConfigFile is an optional config file inside the source directory
	SourceConfigFile = ".dotfiler.toml"
)

// Options holds explicit overrides; empty fields use defaults
type Options struct {
	Home      string
	Source    string
	BackupDir string
}

// Paths holds resolved absolute directories
type Paths struct {
	Home      string
	Source    string
	StateDir  string
	ConfigDir string
	BackupDir string
}

// Resolve turns Options into absolute paths. The source directory must
// exist; the home directory and state directories need not.
func Resolve(opts Options) (Paths, error) {
	home := opts.Home
	if home == "" {
		h, err := HomeDirectory()
		if err != nil {
			return Paths{}, err
		}
		home = h
	}
	home, err := normalize(home, home)
	if err != nil {
		return Paths{}, err
	}

	source := opts.Source
	if source == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return Paths{}, errors.Wrap(err, errors.ErrFileAccess, "failed to get current directory")
		}
		source = cwd
	}
	source, err = normalize(source, home)
	if err != nil {
		return Paths{}, err
	}
	info, err := os.Stat(source)
	if err != nil {
		return Paths{}, errors.Wrapf(err, errors.ErrSourceNotFound, "source directory %s not found", source).
			WithDetail("source", source)
	}
	if !info.IsDir() {
		return Paths{}, errors.Newf(errors.ErrSourceNotFound, "source %s is not a directory", source).
			WithDetail("source", source)
	}

	p := Paths{
		Home:      home,
		Source:    source,
		StateDir:  StateDir(),
		ConfigDir: ConfigDir(),
	}

	p.BackupDir = filepath.Join(p.StateDir, BackupsDirName)
	if opts.BackupDir != "" {
		if p.BackupDir, err = normalize(opts.BackupDir, home); err != nil {
			return Paths{}, err
		}
	}

	return p, nil
}

// Target returns where the link for a source entry named name goes
func (p Paths) Target(name string, addDotPrefix bool) string {
	if addDotPrefix && !strings.HasPrefix(name, ".") {
		name = "." + name
	}
	return filepath.Join(p.Home, name)
}

// SourcePath returns the absolute path of a source entry
func (p Paths) SourcePath(name string) string {
	return filepath.Join(p.Source, name)
}

// UserConfigPath returns the user config file location
func (p Paths) UserConfigPath() string {
	return filepath.Join(p.ConfigDir, ConfigFileName)
}

// SourceConfigPath returns the config file inside the source directory
func (p Paths) SourceConfigPath() string {
	return filepath.Join(p.Source, SourceConfigFile)
}

// HomeDirectory returns the user's home directory.
// It first tries os.UserHomeDir(), then falls back to the HOME environment variable.
// If both fail, it returns an error rather than using dangerous defaults.
func HomeDirectory() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err == nil && homeDir != "" {
		return homeDir, nil
	}

	if homeDir = os.Getenv("HOME"); homeDir != "" {
		return homeDir, nil
	}

	return "", errors.New(errors.ErrHomeNotFound, "unable to determine home directory: neither os.UserHomeDir() nor HOME environment variable are available")
}

// StateDir returns $XDG_STATE_HOME/dotfiler
func StateDir() string {
	if dir := os.Getenv("XDG_STATE_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.StateHome, AppDirName)
}

// ConfigDir returns $XDG_CONFIG_HOME/dotfiler
func ConfigDir() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, AppDirName)
	}
	return filepath.Join(xdg.ConfigHome, AppDirName)
}

// ExpandHome expands a leading ~ using home. Other paths are returned as-is,
// including ~user forms.
func ExpandHome(path, home string) string {
	if path == "" || path[0] != '~' {
		return path
	}
	if len(path) == 1 {
		return home
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(home, path[2:])
	}
	return path
}

// normalize expands ~, makes the path absolute, and cleans it
func normalize(path, home string) (string, error) {
	abs, err := filepath.Abs(ExpandHome(path, home))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for %s", path)
	}
	return filepath.Clean(abs), nil
}
