package testutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// CreateFile creates a file with the given content in the specified directory.
// Parent directories are created as needed.
func CreateFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755), "create parent of %s", path)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644), "create %s", path)
	return path
}

// CreateFiles creates every name -> content pair under dir
func CreateFiles(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		CreateFile(t, dir, name, content)
	}
}

// CreateDir creates a directory in the specified parent directory.
func CreateDir(t *testing.T, parent, name string) string {
	t.Helper()

	path := filepath.Join(parent, name)
	require.NoError(t, os.MkdirAll(path, 0755), "create directory %s", path)
	return path
}

// CreateSymlink creates a symbolic link at link pointing to target.
func CreateSymlink(t *testing.T, target, link string) {
	t.Helper()

	require.NoError(t, os.MkdirAll(filepath.Dir(link), 0755), "create parent of %s", link)
	require.NoError(t, os.Symlink(target, link), "symlink %s -> %s", link, target)
}

// ReadFile returns the content of path, following symlinks
func ReadFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err, "read %s", path)
	return string(data)
}

// AssertSymlink checks that link is a symlink pointing exactly at target
func AssertSymlink(t *testing.T, link, target string) bool {
	t.Helper()

	info, err := os.Lstat(link)
	if !assert.NoError(t, err, "%s should exist", link) {
		return false
	}
	if !assert.True(t, info.Mode()&os.ModeSymlink != 0, "%s should be a symlink", link) {
		return false
	}
	dest, err := os.Readlink(link)
	if !assert.NoError(t, err) {
		return false
	}
	return assert.Equal(t, target, dest, "%s points to the wrong place", link)
}

// AssertNotExists checks that nothing, not even a dangling symlink, is at path
func AssertNotExists(t *testing.T, path string) bool {
	t.Helper()

	_, err := os.Lstat(path)
	return assert.True(t, os.IsNotExist(err), "%s should not exist", path)
}

// AssertRegularFile checks that path is a regular file with content
func AssertRegularFile(t *testing.T, path, content string) bool {
	t.Helper()

	info, err := os.Lstat(path)
	if !assert.NoError(t, err, "%s should exist", path) {
		return false
	}
	if !assert.True(t, info.Mode().IsRegular(), "%s should be a regular file", path) {
		return false
	}
	return assert.Equal(t, content, ReadFile(t, path))
}
