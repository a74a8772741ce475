package platform

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNotDirectory is returned when a listing is requested for a path that
// exists but is not a directory.
var ErrNotDirectory = errors.New("not a directory")

// ListFiles returns the names of the immediate regular files of dir, sorted
// by name. Subdirectories are skipped; symlinks are followed and kept only
// when they resolve to a regular file.
func ListFiles(dir string) ([]string, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s: %w", dir, ErrNotDirectory)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		switch {
		case e.Type().IsRegular():
			names = append(names, e.Name())
		case e.Type()&os.ModeSymlink != 0:
			target, err := os.Stat(filepath.Join(dir, e.Name()))
			if err == nil && target.Mode().IsRegular() {
				names = append(names, e.Name())
			}
		}
	}
	// os.ReadDir already sorts by name.
	return names, nil
}

// Exists reports whether path names an existing directory entry. Dangling
// symlinks count as existing.
func Exists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

// SameFile reports whether a and b are the same directory entry, e.g. two
// spellings of one name on a case-insensitive filesystem.
func SameFile(a, b string) bool {
	ai, err := os.Lstat(a)
	if err != nil {
		return false
	}
	bi, err := os.Lstat(b)
	if err != nil {
		return false
	}
	return os.SameFile(ai, bi)
}
