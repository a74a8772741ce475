package model

// RenameRules holds the user's textual transformation. The zero value is the
// identity transformation.
type RenameRules struct {
	Prefix  string
	Suffix  string
	Find    string
	Replace string
}

// IsIdentity reports whether applying the rules can never change a name.
func (r RenameRules) IsIdentity() bool {
	return r.Prefix == "" && r.Suffix == "" && (r.Find == "" || r.Find == r.Replace)
}

// FileEntry is one immediate regular file of the working directory.
type FileEntry struct {
	Name string
}

// PreviewEntry pairs an original file name with its computed new name.
type PreviewEntry struct {
	Original string
	New      string
}

// Changed reports whether the entry requires a rename.
func (p PreviewEntry) Changed() bool {
	return p.Original != p.New
}

// PreviewMapping is the ordered original → new mapping shown before a
// rename pass. It is derived state and is rebuilt on every change.
type PreviewMapping []PreviewEntry

// ChangedCount returns the number of entries that require a rename.
func (m PreviewMapping) ChangedCount() int {
	n := 0
	for _, e := range m {
		if e.Changed() {
			n++
		}
	}
	return n
}

// RenameFailure records one entry that could not be renamed.
type RenameFailure struct {
	Original string
	Target   string
	Err      error
}

// Message returns the human readable failure reason.
func (f RenameFailure) Message() string {
	if f.Err == nil {
		return ""
	}
	return f.Err.Error()
}

// RenameReport summarises one rename pass.
type RenameReport struct {
	Succeeded int
	// Skipped counts entries whose name did not change.
	Skipped int
	Failed  []RenameFailure
	// NotAttempted lists changed entries left untouched after an early stop.
	NotAttempted []string
}

// OK reports whether every attempted rename succeeded and none were left out.
func (r RenameReport) OK() bool {
	return len(r.Failed) == 0 && len(r.NotAttempted) == 0
}
