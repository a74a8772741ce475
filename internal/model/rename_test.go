package model

import (
	"errors"
	"testing"
)

func TestRenameRules_IsIdentity(t *testing.T) {
	tests := []struct {
		name     string
		rules    RenameRules
		expected bool
	}{
		{"zero value", RenameRules{}, true},
		{"replace without find", RenameRules{Replace: "x"}, true},
		{"find equals replace", RenameRules{Find: "a", Replace: "a"}, true},
		{"prefix", RenameRules{Prefix: "p_"}, false},
		{"suffix", RenameRules{Suffix: "_s"}, false},
		{"find and replace", RenameRules{Find: "a", Replace: "b"}, false},
		{"find removes", RenameRules{Find: "a"}, false},
	}

	for _, tt := range tests {
		if got := tt.rules.IsIdentity(); got != tt.expected {
			t.Errorf("%s: IsIdentity() = %v, expected %v", tt.name, got, tt.expected)
		}
	}
}

func TestPreviewMapping_ChangedCount(t *testing.T) {
	m := PreviewMapping{
		{Original: "a.txt", New: "a.txt"},
		{Original: "b.txt", New: "x_b.txt"},
		{Original: "c", New: "x_c"},
	}
	if got := m.ChangedCount(); got != 2 {
		t.Errorf("ChangedCount() = %d, expected 2", got)
	}
}

func TestRenameReport_OK(t *testing.T) {
	if !(RenameReport{Succeeded: 3, Skipped: 1}).OK() {
		t.Error("report without failures should be OK")
	}

	failed := RenameReport{Failed: []RenameFailure{{Original: "a", Target: "b", Err: errors.New("boom")}}}
	if failed.OK() {
		t.Error("report with failures should not be OK")
	}
	if msg := failed.Failed[0].Message(); msg != "boom" {
		t.Errorf("Message() = %q, expected %q", msg, "boom")
	}

	if (RenameReport{NotAttempted: []string{"c"}}).OK() {
		t.Error("report with skipped work should not be OK")
	}
}
