package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"time"

	"github.com/atotto/clipboard"

	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/platform"
	"github.com/ytget/deskutils/internal/rename"
)

// Exit codes
const (
	ExitOK      = 0
	ExitFailure = 1
	ExitUsage   = 2
)

// App wires the commands to their collaborators. The zero value is not
// usable; call New.
type App struct {
	Stdout io.Writer
	Stderr io.Writer

	// FS backs the rename command.
	FS rename.FileSystem
	// Engine backs the download command.
	Engine download.Engine
	// ReadClipboard supplies a URL when none is given on the command line.
	ReadClipboard func() (string, error)
	// RetryDelay is the backoff before the download is retried.
	RetryDelay time.Duration
}

// New returns an App using the real filesystem, downloader and clipboard
func New() *App {
	return &App{
		Stdout:        os.Stdout,
		Stderr:        os.Stderr,
		FS:            platform.OS{},
		Engine:        download.NewYTDLPEngine(),
		ReadClipboard: clipboard.ReadAll,
		RetryDelay:    download.DefaultRetryDelay,
	}
}

// Run executes the command named by args[0] and returns the process exit code
func (a *App) Run(ctx context.Context, args []string) int {
	if len(args) < 1 {
		a.printUsage()
		return ExitUsage
	}
	command := args[0]

	if slices.Contains([]string{"help", "--help", "-h"}, command) {
		a.printUsage()
		return ExitOK
	}

	switch command {
	case "rename":
		return a.runRename(args[1:])
	case "download":
		return a.runDownload(ctx, args[1:])
	default:
		fmt.Fprintf(a.Stderr, "Unknown command: %s\n\n", command)
		a.printUsage()
		return ExitUsage
	}
}

func (a *App) printUsage() {
	fmt.Fprintf(a.Stderr, "deskutils - batch renamer and video downloader\n\n")
	fmt.Fprintf(a.Stderr, "Usage:\n")
	fmt.Fprintf(a.Stderr, "  deskutils rename -dir DIR [-prefix P] [-suffix S] [-find F -replace R] [-apply] [-stop-on-error]\n")
	fmt.Fprintf(a.Stderr, "  deskutils download [-o DIR] [-template T] [-quality best|medium|audio] [URL]\n")
	fmt.Fprintf(a.Stderr, "  deskutils help\n\n")
	fmt.Fprintf(a.Stderr, "Without -apply, rename only prints the preview.\n")
	fmt.Fprintf(a.Stderr, "Without URL, download reads it from the clipboard.\n")
}
