// Package filesystem provides the filesystem abstraction used by dotfiler.
//
// FS is the narrow set of operations the filter loader, the backup store
// and the linker need. NewOS wraps the real filesystem; NewAfero wraps any
// afero.Fs, which is what the tests use for in-memory fixtures.
package filesystem
