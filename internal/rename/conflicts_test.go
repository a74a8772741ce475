package rename

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ytget/deskutils/internal/model"
)

func TestDetectConflicts(t *testing.T) {
	tests := []struct {
		desc     string
		files    []string
		extra    []string // entries on disk that are not part of the mapping
		mapping  model.PreviewMapping
		expected []Conflict
	}{
		{
			desc:  "target held by an unchanged file",
			files: []string{"a.txt", "b.txt"},
			mapping: model.PreviewMapping{
				{Original: "a.txt", New: "b.txt"},
				{Original: "b.txt", New: "b.txt"},
			},
			expected: []Conflict{{Original: "a.txt", Target: "b.txt", Reason: ConflictDuplicateTarget}},
		},
		{
			desc:  "two computed targets collide",
			files: []string{"x1.txt", "x2.txt"},
			mapping: model.PreviewMapping{
				{Original: "x1.txt", New: "x.txt"},
				{Original: "x2.txt", New: "x.txt"},
			},
			expected: []Conflict{
				{Original: "x1.txt", Target: "x.txt", Reason: ConflictDuplicateTarget},
				{Original: "x2.txt", Target: "x.txt", Reason: ConflictDuplicateTarget},
			},
		},
		{
			desc:  "chain where the target is vacated first",
			files: []string{"a", "b"},
			mapping: model.PreviewMapping{
				{Original: "b", New: "c"},
				{Original: "a", New: "b"},
			},
		},
		{
			desc:  "chain where the target is still occupied",
			files: []string{"a", "b"},
			mapping: model.PreviewMapping{
				{Original: "a", New: "b"},
				{Original: "b", New: "c"},
			},
			expected: []Conflict{{Original: "a", Target: "b", Reason: ConflictTargetExists}},
		},
		{
			desc:  "target exists on disk outside the listing",
			files: []string{"a.txt"},
			extra: []string{"b.txt"},
			mapping: model.PreviewMapping{
				{Original: "a.txt", New: "b.txt"},
			},
			expected: []Conflict{{Original: "a.txt", Target: "b.txt", Reason: ConflictTargetExists}},
		},
		{
			desc:  "invalid name",
			files: []string{"a.txt"},
			mapping: model.PreviewMapping{
				{Original: "a.txt", New: "dir/a.txt"},
			},
			expected: []Conflict{{Original: "a.txt", Target: "dir/a.txt", Reason: ConflictInvalidName}},
		},
		{
			desc:  "canonically equivalent targets collide",
			files: []string{"1", "2"},
			mapping: model.PreviewMapping{
				{Original: "1", New: "caf\u00e9"},
				{Original: "2", New: "cafe\u0301"},
			},
			expected: []Conflict{
				{Original: "1", Target: "caf\u00e9", Reason: ConflictDuplicateTarget},
				{Original: "2", Target: "cafe\u0301", Reason: ConflictDuplicateTarget},
			},
		},
		{
			desc:  "clean mapping",
			files: []string{"a.txt", "b.txt"},
			mapping: model.PreviewMapping{
				{Original: "a.txt", New: "p_a.txt"},
				{Original: "b.txt", New: "p_b.txt"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.desc, func(t *testing.T) {
			fsys := newFakeFS("/data", append(tt.files, tt.extra...)...)
			got := NewPlanner(fsys).DetectConflicts("/data", tt.mapping)
			if diff := cmp.Diff(tt.expected, got); diff != "" {
				t.Errorf("DetectConflicts() mismatch (-want +got):\n%s", diff)
			}
			if fsys.renames != 0 {
				t.Errorf("DetectConflicts renamed %d files", fsys.renames)
			}
		})
	}
}

func TestConflictIndex(t *testing.T) {
	idx := ConflictIndex([]Conflict{{Original: "a", Target: "b", Reason: ConflictTargetExists}})
	if c, ok := idx["a"]; !ok || c.Reason != ConflictTargetExists {
		t.Errorf("unexpected index: %v", idx)
	}
	if _, ok := idx["b"]; ok {
		t.Error("index should be keyed by original name")
	}
}
