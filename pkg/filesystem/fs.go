package filesystem

import "io/fs"

// FS is the filesystem interface used throughout dotfiler
type FS interface {
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	MkdirAll(path string, perm fs.FileMode) error
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)
	Remove(name string) error
	RemoveAll(path string) error
	Rename(oldpath, newpath string) error
	ReadDir(name string) ([]fs.DirEntry, error)
}

// Exists reports whether name exists without following a final symlink.
func Exists(fsys FS, name string) bool {
	_, err := fsys.Lstat(name)
	return err == nil
}

// IsSymlink reports whether name is a symbolic link.
func IsSymlink(fsys FS, name string) bool {
	info, err := fsys.Lstat(name)
	if err != nil {
		return false
	}
	return info.Mode()&fs.ModeSymlink != 0
}
