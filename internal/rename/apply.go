package rename

import (
	"fmt"
	"path/filepath"

	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/model"
)

// FailurePolicy decides what a rename pass does after a failed entry.
type FailurePolicy int

const (
	// ContinueOnError records the failure and moves on to the next entry.
	ContinueOnError FailurePolicy = iota
	// StopOnError ends the pass at the first failure. Renames already
	// performed stay applied and the rest are reported as not attempted.
	StopOnError
)

// String returns the policy name used in logs and settings
func (fp FailurePolicy) String() string {
	switch fp {
	case ContinueOnError:
		return "continue"
	case StopOnError:
		return "stop"
	default:
		return "unknown"
	}
}

// ApplyRenames renames every changed entry of mapping inside dir, in mapping
// order. Unchanged entries are skipped without touching the filesystem. An
// existing target is never overwritten unless it is the source file itself
// under another spelling.
func (p *Planner) ApplyRenames(dir string, mapping model.PreviewMapping, policy FailurePolicy) model.RenameReport {
	var report model.RenameReport

	for i, e := range mapping {
		if !e.Changed() {
			report.Skipped++
			continue
		}

		if err := p.renameOne(dir, e); err != nil {
			report.Failed = append(report.Failed, model.RenameFailure{
				Original: e.Original,
				Target:   e.New,
				Err:      err,
			})
			log.Warn().Err(err).Str("from", e.Original).Str("to", e.New).Msg("rename failed")

			if policy == StopOnError {
				report.NotAttempted = pendingOriginals(mapping[i+1:])
				break
			}
			continue
		}

		report.Succeeded++
		log.Debug().Str("from", e.Original).Str("to", e.New).Msg("renamed")
	}

	return report
}

func (p *Planner) renameOne(dir string, e model.PreviewEntry) error {
	if !ValidName(e.New) {
		return renameError(e.Original, e.New, fmt.Errorf("%w: %q", ErrInvalidName, e.New))
	}

	oldPath := filepath.Join(dir, e.Original)
	newPath := filepath.Join(dir, e.New)

	if p.fs.Exists(newPath) {
		if !p.fs.SameFile(oldPath, newPath) {
			return renameError(e.Original, e.New, fmt.Errorf("%w: %q already exists", ErrRenameConflict, e.New))
		}
		// Same entry under another spelling, e.g. a case-only change on a
		// case-insensitive filesystem.
		if err := p.fs.Rename(oldPath, newPath); err != nil {
			return renameError(e.Original, e.New, err)
		}
		return nil
	}

	if err := p.fs.RenameNoReplace(oldPath, newPath); err != nil {
		return renameError(e.Original, e.New, err)
	}
	return nil
}

func pendingOriginals(rest model.PreviewMapping) []string {
	var names []string
	for _, e := range rest {
		if e.Changed() {
			names = append(names, e.Original)
		}
	}
	return names
}
