package rename

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"

	"github.com/ytget/deskutils/internal/model"
)

// ConflictReason explains why a preview entry is expected to fail.
type ConflictReason string

const (
	ConflictDuplicateTarget ConflictReason = "duplicate target"
	ConflictTargetExists    ConflictReason = "target exists"
	ConflictInvalidName     ConflictReason = "invalid name"
)

// Conflict is an advisory annotation on a changed preview entry.
type Conflict struct {
	Original string
	Target   string
	Reason   ConflictReason
}

// collisionKey folds canonically equivalent spellings together; filesystems
// such as APFS treat NFC and NFD forms of a name as the same entry.
func collisionKey(name string) string {
	return norm.NFC.String(name)
}

// DetectConflicts predicts which changed entries of mapping would fail when
// applied in order to dir. It does not modify mapping and never touches the
// filesystem beyond existence checks.
func (p *Planner) DetectConflicts(dir string, mapping model.PreviewMapping) []Conflict {
	targets := make(map[string]int, len(mapping))
	originals := make(map[string]bool, len(mapping))
	for _, e := range mapping {
		targets[collisionKey(e.New)]++
		originals[collisionKey(e.Original)] = true
	}

	// occupied tracks names held while walking the mapping in apply order.
	occupied := make(map[string]bool, len(originals))
	for k := range originals {
		occupied[k] = true
	}

	var conflicts []Conflict
	for _, e := range mapping {
		if !e.Changed() {
			continue
		}
		src, dst := collisionKey(e.Original), collisionKey(e.New)

		reason := ConflictReason("")
		switch {
		case !ValidName(e.New):
			reason = ConflictInvalidName
		case targets[dst] > 1:
			reason = ConflictDuplicateTarget
		case dst != src && occupied[dst]:
			reason = ConflictTargetExists
		case !originals[dst]:
			oldPath, newPath := filepath.Join(dir, e.Original), filepath.Join(dir, e.New)
			if p.fs.Exists(newPath) && !p.fs.SameFile(oldPath, newPath) {
				reason = ConflictTargetExists
			}
		}

		if reason != "" {
			conflicts = append(conflicts, Conflict{Original: e.Original, Target: e.New, Reason: reason})
			continue
		}
		delete(occupied, src)
		occupied[dst] = true
	}
	return conflicts
}

// ConflictIndex maps original names to their conflict for quick lookup by
// presentation code.
func ConflictIndex(conflicts []Conflict) map[string]Conflict {
	idx := make(map[string]Conflict, len(conflicts))
	for _, c := range conflicts {
		idx[c.Original] = c
	}
	return idx
}
