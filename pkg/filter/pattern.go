package filter

import "strings"

// Pattern is one classified ignore-file rule. The set of implementations is
// closed: Simple, Glob, Directory, RootRelative and Negate.
type Pattern interface {
	// String returns the pattern in ignore-file syntax
	String() string
	isPattern()
}

// Simple is a literal rule matched as a substring
type Simple struct{ Text string }

// Glob is a rule containing `*` or `?`
type Glob struct{ Text string }

// Directory is a rule written with a trailing slash, stored without it
type Directory struct{ Text string }

// RootRelative is a rule written with a leading slash, stored without it
type RootRelative struct{ Text string }

// Negate rescues names matched by other rules
type Negate struct{ Inner Pattern }

func (Simple) isPattern()       {}
func (Glob) isPattern()         {}
func (Directory) isPattern()    {}
func (RootRelative) isPattern() {}
func (Negate) isPattern()       {}

func (p Simple) String() string       { return p.Text }
func (p Glob) String() string         { return p.Text }
func (p Directory) String() string    { return p.Text + "/" }
func (p RootRelative) String() string { return "/" + p.Text }
func (p Negate) String() string       { return "!" + p.Inner.String() }

// Classify parses one trimmed, non-empty, non-comment ignore line.
// The checks run in a fixed order so that "/build*" is root-relative and
// "!cache/" is a negated directory.
func Classify(raw string) Pattern {
	switch {
	case strings.HasPrefix(raw, "!"):
		return Negate{Inner: Classify(raw[1:])}
	case strings.HasPrefix(raw, "/"):
		return RootRelative{Text: raw[1:]}
	case strings.HasSuffix(raw, "/"):
		return Directory{Text: raw[:len(raw)-1]}
	case hasWildcard(raw):
		return Glob{Text: raw}
	default:
		return Simple{Text: raw}
	}
}
