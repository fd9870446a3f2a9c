package config

import (
	"github.com/arthur-debert/dotfiler/pkg/filter"
)

// Filtering selects which source entries are linked
type Filtering struct {
	Include      []string `koanf:"include" toml:"include"`
	Exclude      []string `koanf:"exclude" toml:"exclude"`
	IgnoreFile   string   `koanf:"ignore_file" toml:"ignore_file"`
	UseGitignore bool     `koanf:"use_gitignore" toml:"use_gitignore"`
}

// Linking controls where and how links are created
type Linking struct {
	HomeDir        string `koanf:"home_dir" toml:"home_dir"`
	SourceDir      string `koanf:"source_dir" toml:"source_dir"`
	AddDotPrefix   bool   `koanf:"add_dot_prefix" toml:"add_dot_prefix"`
	OverwriteLinks bool   `koanf:"overwrite_links" toml:"overwrite_links"`
}

// Backup controls backups of files replaced by links
type Backup struct {
	Enabled bool   `koanf:"enabled" toml:"enabled"`
	Dir     string `koanf:"dir" toml:"dir"`
	LogFile string `koanf:"log_file" toml:"log_file"`
}

// Config is the main configuration structure
type Config struct {
	Filtering Filtering `koanf:"filtering" toml:"filtering"`
	Linking   Linking   `koanf:"linking" toml:"linking"`
	Backup    Backup    `koanf:"backup" toml:"backup"`

	// Files lists the config files that were loaded, in order
	Files []string `koanf:"-" toml:"-"`
}

// DefaultLogFile is used when backup.log_file is empty
const DefaultLogFile = "backup-log.yaml"

// Normalize fills in defaults for values the filter and linker rely on.
// A nil list means "not configured"; an empty list is kept as given.
func (c *Config) Normalize() {
	defaults := filter.DefaultOptions()
	if c.Filtering.Include == nil {
		c.Filtering.Include = defaults.Include
	}
	if c.Filtering.Exclude == nil {
		c.Filtering.Exclude = defaults.Exclude
	}
	if c.Backup.LogFile == "" {
		c.Backup.LogFile = DefaultLogFile
	}
}

// FilterOptions converts the filtering section for filter.New
func (c *Config) FilterOptions() filter.Options {
	return filter.Options{
		Include:      c.Filtering.Include,
		Exclude:      c.Filtering.Exclude,
		IgnoreFile:   c.Filtering.IgnoreFile,
		UseGitignore: c.Filtering.UseGitignore,
	}
}
