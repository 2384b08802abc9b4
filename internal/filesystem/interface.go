package filesystem

import (
	"io/fs"
)

// FileSystem is the set of file operations the project view, the manifest
// adapter and the scaffold emitter need. Tests swap in MockFileSystem.
type FileSystem interface {
	// File operations
	ReadFile(path string) ([]byte, error)
	// WriteFile replaces the whole file. Implementations must not leave a
	// partially written file behind on failure.
	WriteFile(path string, data []byte, perm fs.FileMode) error
	Remove(path string) error
	Rename(oldPath, newPath string) error

	// Directory operations
	ReadDir(path string) ([]fs.DirEntry, error)
	MkdirAll(path string, perm fs.FileMode) error

	// Path operations
	Stat(path string) (fs.FileInfo, error)
	Exists(path string) bool
	Getwd() (string, error)
}
