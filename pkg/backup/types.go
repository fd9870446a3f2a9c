package backup

import "time"

// SessionIDFormat is the time layout used for session ids
const SessionIDFormat = "20060102-150405"

// LogVersion is written into every saved log
const LogVersion = 1

// Entry records one target replaced by a link
type Entry struct {
	// Original is the path in the home directory
	Original string `yaml:"original"`
	// Backup is where the previous file was moved; empty when nothing was moved
	Backup string `yaml:"backup,omitempty"`
	// PreviousLink is the destination of a symlink that was replaced
	PreviousLink string `yaml:"previous_link,omitempty"`
	// Link is what Original points to after linking
	Link      string    `yaml:"link"`
	CreatedAt time.Time `yaml:"created_at"`
}

// HasBackup reports whether a file was moved aside for this entry
func (e Entry) HasBackup() bool {
	return e.Backup != ""
}

// Session is one link run
type Session struct {
	ID        string    `yaml:"id"`
	Source    string    `yaml:"source,omitempty"`
	CreatedAt time.Time `yaml:"created_at"`
	Entries   []Entry   `yaml:"entries"`
}

// Log is the persisted list of sessions, oldest first
type Log struct {
	Version  int       `yaml:"version"`
	Sessions []Session `yaml:"sessions"`
}
