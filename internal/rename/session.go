package rename

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/model"
)

// State is the lifecycle position of a Session.
type State int

const (
	StateIdle State = iota
	StateReady
	StateRenaming
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "Idle"
	case StateReady:
		return "Ready"
	case StateRenaming:
		return "Renaming"
	default:
		return "Unknown"
	}
}

// Session holds the current directory, rules and preview for an interactive
// front end. The preview is rebuilt from scratch whenever the directory or
// the rules change. Methods are safe for concurrent use; Apply refuses to
// run twice at once.
type Session struct {
	mu      sync.Mutex
	planner *Planner
	policy  FailurePolicy

	state   State
	dir     string
	entries []model.FileEntry
	rules   model.RenameRules
	preview model.PreviewMapping
}

// NewSession creates an idle session over fsys
func NewSession(fsys FileSystem) *Session {
	return &Session{planner: NewPlanner(fsys)}
}

// SetPolicy sets the failure policy used by Apply
func (s *Session) SetPolicy(policy FailurePolicy) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.policy = policy
}

// Policy returns the failure policy used by Apply
func (s *Session) Policy() FailurePolicy {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.policy
}

// Open enumerates dir and makes it the working directory. On failure the
// session keeps its previous directory and state.
func (s *Session) Open(dir string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRenaming {
		return ErrBusy
	}

	entries, err := s.planner.Enumerate(dir)
	if err != nil {
		return err
	}

	s.dir = dir
	s.entries = entries
	s.preview = BuildPreview(entries, s.rules)
	s.state = StateReady

	log.Info().Str("dir", dir).Int("files", len(entries)).Msg("directory loaded")
	return nil
}

// Refresh re-enumerates the working directory.
func (s *Session) Refresh() error {
	s.mu.Lock()
	dir, state := s.dir, s.state
	s.mu.Unlock()

	if state == StateIdle {
		return ErrNoDirectory
	}
	return s.Open(dir)
}

// SetRules replaces the rules and rebuilds the preview.
func (s *Session) SetRules(rules model.RenameRules) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state == StateRenaming {
		return ErrBusy
	}
	s.rules = rules
	s.preview = BuildPreview(s.entries, rules)
	return nil
}

// State returns the lifecycle state
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Directory returns the working directory, empty when idle
func (s *Session) Directory() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.dir
}

// Rules returns the current rules
func (s *Session) Rules() model.RenameRules {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.rules
}

// Entries returns a copy of the current listing
func (s *Session) Entries() []model.FileEntry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.FileEntry(nil), s.entries...)
}

// Preview returns a copy of the current preview mapping
func (s *Session) Preview() model.PreviewMapping {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append(model.PreviewMapping(nil), s.preview...)
}

// Conflicts returns the advisory conflicts of the current preview
func (s *Session) Conflicts() []Conflict {
	s.mu.Lock()
	dir, preview := s.dir, s.preview
	s.mu.Unlock()
	return s.planner.DetectConflicts(dir, preview)
}

// Apply runs a rename pass over the current preview, then re-enumerates the
// directory so the listing reflects the filesystem. The session is back in
// StateReady when Apply returns, whatever the outcome of individual entries.
// The returned error is non-nil only when the pass could not start or the
// directory could not be listed afterwards.
func (s *Session) Apply() (model.RenameReport, error) {
	s.mu.Lock()
	switch s.state {
	case StateIdle:
		s.mu.Unlock()
		return model.RenameReport{}, ErrNoDirectory
	case StateRenaming:
		s.mu.Unlock()
		return model.RenameReport{}, ErrBusy
	}
	s.state = StateRenaming
	dir, preview, policy := s.dir, s.preview, s.policy
	s.mu.Unlock()

	log.Info().Str("dir", dir).Int("changes", preview.ChangedCount()).Str("policy", policy.String()).Msg("rename pass started")
	report := s.planner.ApplyRenames(dir, preview, policy)
	log.Info().
		Str("dir", dir).
		Int("succeeded", report.Succeeded).
		Int("failed", len(report.Failed)).
		Int("not_attempted", len(report.NotAttempted)).
		Msg("rename pass finished")

	s.mu.Lock()
	defer s.mu.Unlock()
	s.state = StateReady

	entries, err := s.planner.Enumerate(dir)
	if err != nil {
		s.entries = nil
		s.preview = nil
		return report, fmt.Errorf("refresh after rename: %w", err)
	}
	s.entries = entries
	s.preview = BuildPreview(entries, s.rules)
	return report, nil
}
