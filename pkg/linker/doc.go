// Package linker links accepted source entries into the home directory.
//
// Link walks the top level of the source directory, asks the filter about
// each name and creates home/.name -> source/name symlinks, moving aside
// anything in the way through the backup store. Status reports the current
// state without changing anything and Restore undoes one link session.
//
// Per-entry failures never abort a run. They are reported in the results
// and summarized in a single LINK_FAILED or RESTORE_FAILED error.
package linker
