package platform

import (
	"io/fs"
	"os"
)

// Rename renames oldPath to newPath, replacing newPath if it exists.
func Rename(oldPath, newPath string) error {
	return os.Rename(oldPath, newPath)
}

func renameChecked(oldPath, newPath string) error {
	if Exists(newPath) {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	}
	return os.Rename(oldPath, newPath)
}

// OS is the real filesystem. It satisfies rename.FileSystem.
type OS struct{}

// ListFiles implements rename.FileSystem.
func (OS) ListFiles(dir string) ([]string, error) { return ListFiles(dir) }

// Exists implements rename.FileSystem.
func (OS) Exists(path string) bool { return Exists(path) }

// SameFile implements rename.FileSystem.
func (OS) SameFile(a, b string) bool { return SameFile(a, b) }

// Rename implements rename.FileSystem.
func (OS) Rename(oldPath, newPath string) error { return Rename(oldPath, newPath) }

// RenameNoReplace implements rename.FileSystem.
func (OS) RenameNoReplace(oldPath, newPath string) error { return RenameNoReplace(oldPath, newPath) }
