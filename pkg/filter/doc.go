// Package filter decides which entries of a dotfiles source directory get
// linked into the home directory.
//
// A Filter combines three rule sources, consulted in this order:
//
//   - ignore files (.dotfilerignore, and .gitignore when enabled), parsed
//     into typed patterns with gitignore-like syntax
//   - include patterns; the single pattern "*" means "everything"
//   - exclude patterns
//
// # Pattern Syntax
//
// Include and exclude patterns are raw strings evaluated by Matches:
//
//   - `.*` - sentinel: name starts with a dot
//   - `[A-Z]*` - sentinel: name starts with an ASCII uppercase letter
//   - `vim` - no wildcard: substring match, so "vim" matches "gvimrc"
//   - `*.conf` - suffix match
//   - `n?inx.*` - anchored glob, `*` any run, `?` one character
//
// Ignore file lines are classified into Simple, Glob, Directory (`cache/`),
// RootRelative (`/build`, prefix match) and Negate (`!keep.tmp`).
//
// # Negation
//
// Negations do not follow gitignore's last-match-wins ordering. A name is
// ignored when any non-negated pattern matches it and no negated pattern
// does, wherever the negation appears in the files.
package filter
