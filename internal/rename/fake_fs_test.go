package rename

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// fakeFS is an in-memory FileSystem that counts mutations and can inject
// per-path failures.
type fakeFS struct {
	files      map[string]bool
	listErr    error
	renameErrs map[string]error // keyed by old path
	renames    int
}

func newFakeFS(dir string, names ...string) *fakeFS {
	f := &fakeFS{files: map[string]bool{}, renameErrs: map[string]error{}}
	for _, n := range names {
		f.files[filepath.Join(dir, n)] = true
	}
	return f
}

func (f *fakeFS) ListFiles(dir string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	var names []string
	for p := range f.files {
		if filepath.Dir(p) == dir {
			names = append(names, filepath.Base(p))
		}
	}
	sort.Strings(names)
	return names, nil
}

func (f *fakeFS) Exists(path string) bool { return f.files[path] }

func (f *fakeFS) SameFile(a, b string) bool { return a == b && f.files[a] }

func (f *fakeFS) Rename(oldPath, newPath string) error {
	if err := f.renameErrs[oldPath]; err != nil {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: err}
	}
	if !f.files[oldPath] {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrNotExist}
	}
	f.renames++
	delete(f.files, oldPath)
	f.files[newPath] = true
	return nil
}

func (f *fakeFS) RenameNoReplace(oldPath, newPath string) error {
	if f.files[newPath] {
		return &os.LinkError{Op: "rename", Old: oldPath, New: newPath, Err: fs.ErrExist}
	}
	return f.Rename(oldPath, newPath)
}
