package rename

import (
	"path/filepath"
	"strings"

	"github.com/ytget/deskutils/internal/model"
)

// FileSystem is the filesystem boundary the planner needs.
type FileSystem interface {
	// ListFiles returns the immediate regular files of dir in a stable order.
	ListFiles(dir string) ([]string, error)
	Exists(path string) bool
	SameFile(a, b string) bool
	// Rename may replace newPath.
	Rename(oldPath, newPath string) error
	// RenameNoReplace must fail with fs.ErrExist when newPath exists.
	RenameNoReplace(oldPath, newPath string) error
}

// SplitName splits name at its last '.'. The extension keeps the dot and is
// empty when name has no dot.
func SplitName(name string) (stem, ext string) {
	i := strings.LastIndexByte(name, '.')
	if i < 0 {
		return name, ""
	}
	return name[:i], name[i:]
}

// ComputeNewName applies rules to the stem of original: find/replace first,
// then prefix and suffix. The extension is reattached unchanged.
func ComputeNewName(original string, rules model.RenameRules) string {
	stem, ext := SplitName(original)
	if rules.Find != "" {
		stem = strings.ReplaceAll(stem, rules.Find, rules.Replace)
	}
	return rules.Prefix + stem + rules.Suffix + ext
}

// BuildPreview computes the new name of every entry, keeping entry order.
func BuildPreview(entries []model.FileEntry, rules model.RenameRules) model.PreviewMapping {
	mapping := make(model.PreviewMapping, 0, len(entries))
	for _, e := range entries {
		mapping = append(mapping, model.PreviewEntry{
			Original: e.Name,
			New:      ComputeNewName(e.Name, rules),
		})
	}
	return mapping
}

// ValidName reports whether name can be used as a single path element.
func ValidName(name string) bool {
	if name == "" || name == "." || name == ".." {
		return false
	}
	return !strings.ContainsRune(name, '/') &&
		!strings.ContainsRune(name, filepath.Separator) &&
		!strings.ContainsRune(name, 0)
}

// Planner performs the filesystem side of a rename: enumeration, conflict
// detection and applying a mapping.
type Planner struct {
	fs FileSystem
}

// NewPlanner creates a planner over fsys
func NewPlanner(fsys FileSystem) *Planner {
	return &Planner{fs: fsys}
}

// Enumerate lists dir. Any failure is returned as a single error matching
// ErrInvalidDirectory; no partial listing is returned.
func (p *Planner) Enumerate(dir string) ([]model.FileEntry, error) {
	if strings.TrimSpace(dir) == "" {
		return nil, listError(dir, ErrNoDirectory)
	}
	names, err := p.fs.ListFiles(dir)
	if err != nil {
		return nil, listError(dir, err)
	}
	entries := make([]model.FileEntry, len(names))
	for i, n := range names {
		entries[i] = model.FileEntry{Name: n}
	}
	return entries, nil
}
