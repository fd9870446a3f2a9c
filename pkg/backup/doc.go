// Package backup keeps files displaced by links and a YAML log of every
// link session so that sessions can be undone.
//
// A session groups the entries created by one link run. Each entry records
// the target path in the home directory, the link it now holds, and where
// the previous occupant went: a moved copy under BackupDir/<session>/, the
// destination of a replaced symlink, or nothing.
//
// The log is rewritten atomically under a lock file next to it.
package backup
