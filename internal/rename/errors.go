package rename

import (
	"errors"
	"fmt"
	"io/fs"
)

// Error kinds. Every error produced by this package matches exactly one of
// the first five with errors.Is.
var (
	ErrInvalidDirectory = errors.New("invalid directory")
	ErrRenameConflict   = errors.New("rename conflict")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIO               = errors.New("i/o error")
	ErrInvalidName      = errors.New("invalid file name")

	ErrBusy        = errors.New("rename already in progress")
	ErrNoDirectory = errors.New("no directory loaded")
)

// Error is a failed filesystem operation together with its kind.
type Error struct {
	Kind error
	Op   string
	Path string
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Kind)
	}
	return fmt.Sprintf("%s %s: %v: %v", e.Op, e.Path, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the underlying cause to errors.Is/As.
func (e *Error) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func listError(dir string, err error) error {
	return &Error{Kind: ErrInvalidDirectory, Op: "list", Path: dir, Err: err}
}

func renameError(original, target string, err error) error {
	return &Error{Kind: classify(err), Op: "rename", Path: original + " -> " + target, Err: err}
}

func classify(err error) error {
	switch {
	case errors.Is(err, ErrRenameConflict), errors.Is(err, fs.ErrExist):
		return ErrRenameConflict
	case errors.Is(err, ErrInvalidName):
		return ErrInvalidName
	case errors.Is(err, fs.ErrPermission):
		return ErrPermissionDenied
	default:
		return ErrIO
	}
}
