// Package testutil provides fixtures for tests that touch the real
// filesystem: an isolated home/source/state layout and symlink assertions.
//
// Pure filter and loader tests use afero's MemMapFs instead; anything that
// creates symlinks runs against t.TempDir() through this package.
package testutil
