package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/platform"
)

type fakeEngine struct {
	err   error
	calls int
	req   download.Request
}

func (f *fakeEngine) Download(ctx context.Context, req download.Request, onProgress func(download.Progress)) (download.Result, error) {
	f.calls++
	f.req = req
	onProgress(download.Progress{Downloaded: 50, Total: 100})
	onProgress(download.Progress{Downloaded: 100, Total: 100})
	if f.err != nil {
		return download.Result{}, f.err
	}
	return download.Result{Title: "Clip", Path: filepath.Join(req.OutputDir, "Clip.mp4")}, nil
}

func newTestApp(engine download.Engine, clip string) (*App, *bytes.Buffer, *bytes.Buffer) {
	var stdout, stderr bytes.Buffer
	app := &App{
		Stdout:     &stdout,
		Stderr:     &stderr,
		FS:         platform.OS{},
		Engine:     engine,
		RetryDelay: time.Millisecond,
		ReadClipboard: func() (string, error) {
			if clip == "" {
				return "", errors.New("clipboard empty")
			}
			return clip, nil
		},
	}
	return app, &stdout, &stderr
}

func seed(t *testing.T, names ...string) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range names {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(name), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return dir
}

func listDir(t *testing.T, dir string) []string {
	t.Helper()
	names, err := platform.ListFiles(dir)
	if err != nil {
		t.Fatal(err)
	}
	return names
}

func TestRun_Usage(t *testing.T) {
	app, _, stderr := newTestApp(&fakeEngine{}, "")

	if code := app.Run(context.Background(), nil); code != ExitUsage {
		t.Errorf("Expected exit %d with no args, got %d", ExitUsage, code)
	}
	if !strings.Contains(stderr.String(), "Usage:") {
		t.Errorf("Expected usage text, got %q", stderr.String())
	}

	if code := app.Run(context.Background(), []string{"help"}); code != ExitOK {
		t.Errorf("Expected exit 0 for help, got %d", code)
	}
	if code := app.Run(context.Background(), []string{"frobnicate"}); code != ExitUsage {
		t.Errorf("Expected exit %d for unknown command, got %d", ExitUsage, code)
	}
}

func TestRename_PreviewOnly(t *testing.T) {
	dir := seed(t, "report.v1.txt", "notes")
	app, stdout, _ := newTestApp(&fakeEngine{}, "")

	code := app.Run(context.Background(), []string{"rename", "-dir", dir, "-prefix", "A_", "-suffix", "_B", "-find", "v1", "-replace", "v2"})
	if code != ExitOK {
		t.Fatalf("Expected exit 0, got %d", code)
	}

	out := stdout.String()
	for _, want := range []string{"ORIGINAL", "A_report.v2_B.txt", "A_notes_B", "2 files, 2 to rename, 0 conflicts", "-apply"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}

	if diff := cmp.Diff([]string{"notes", "report.v1.txt"}, listDir(t, dir)); diff != "" {
		t.Errorf("Preview must not touch the directory (-want +got):\n%s", diff)
	}
}

func TestRename_Apply(t *testing.T) {
	dir := seed(t, "img1.png", "img2.png", "readme")
	app, stdout, _ := newTestApp(&fakeEngine{}, "")

	code := app.Run(context.Background(), []string{"rename", "-dir", dir, "-find", "img", "-replace", "photo", "-apply"})
	if code != ExitOK {
		t.Fatalf("Expected exit 0, got %d\n%s", code, stdout.String())
	}

	if diff := cmp.Diff([]string{"photo1.png", "photo2.png", "readme"}, listDir(t, dir)); diff != "" {
		t.Errorf("Unexpected directory contents (-want +got):\n%s", diff)
	}
	out := stdout.String()
	for _, want := range []string{"Renamed 2, skipped 1, failed 0", MsgRenamingDone, "Files now:", "photo2.png"} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
}

func TestRename_ConflictExitsNonZero(t *testing.T) {
	dir := seed(t, "a.txt", "b.txt")
	app, stdout, _ := newTestApp(&fakeEngine{}, "")

	code := app.Run(context.Background(), []string{"rename", "-dir", dir, "-find", "a", "-replace", "b", "-apply"})
	if code != ExitFailure {
		t.Fatalf("Expected exit %d, got %d", ExitFailure, code)
	}

	out := stdout.String()
	for _, want := range []string{"! target exists", "failed 1", MsgRenamingFailed} {
		if !strings.Contains(out, want) {
			t.Errorf("Expected output to contain %q:\n%s", want, out)
		}
	}
	data, err := os.ReadFile(filepath.Join(dir, "b.txt"))
	if err != nil || string(data) != "b.txt" {
		t.Errorf("Expected b.txt untouched, got %q (%v)", data, err)
	}
}

func TestRename_EmptyDirectory(t *testing.T) {
	app, stdout, _ := newTestApp(&fakeEngine{}, "")

	if code := app.Run(context.Background(), []string{"rename", "-dir", t.TempDir(), "-apply"}); code != ExitOK {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if !strings.Contains(stdout.String(), MsgNoFiles) {
		t.Errorf("Expected %q, got %q", MsgNoFiles, stdout.String())
	}
}

func TestRename_InvalidDirectory(t *testing.T) {
	app, _, stderr := newTestApp(&fakeEngine{}, "")

	code := app.Run(context.Background(), []string{"rename", "-dir", filepath.Join(t.TempDir(), "missing")})
	if code != ExitFailure {
		t.Fatalf("Expected exit %d, got %d", ExitFailure, code)
	}
	if !strings.Contains(stderr.String(), "Error:") {
		t.Errorf("Expected an error message, got %q", stderr.String())
	}
}

func TestRename_BadFlags(t *testing.T) {
	app, _, _ := newTestApp(&fakeEngine{}, "")

	if code := app.Run(context.Background(), []string{"rename", "-nope"}); code != ExitUsage {
		t.Errorf("Expected exit %d for unknown flag, got %d", ExitUsage, code)
	}
	if code := app.Run(context.Background(), []string{"rename", "-dir", t.TempDir(), "extra"}); code != ExitUsage {
		t.Errorf("Expected exit %d for stray argument, got %d", ExitUsage, code)
	}
}

func TestDownload_FromArgument(t *testing.T) {
	out := filepath.Join(t.TempDir(), "videos")
	engine := &fakeEngine{}
	app, stdout, _ := newTestApp(engine, "")

	code := app.Run(context.Background(), []string{"download", "-o", out, "-quality", "audio", "https://youtu.be/abc"})
	if code != ExitOK {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if engine.req.URL != "https://youtu.be/abc" || engine.req.Quality != "audio" {
		t.Errorf("Unexpected request: %+v", engine.req)
	}
	for _, want := range []string{"Finished downloading: " + filepath.Join(out, "Clip.mp4"), MsgDownloadFinished} {
		if !strings.Contains(stdout.String(), want) {
			t.Errorf("Expected output to contain %q:\n%s", want, stdout.String())
		}
	}
}

func TestDownload_FromClipboard(t *testing.T) {
	engine := &fakeEngine{}
	app, stdout, _ := newTestApp(engine, "  https://youtu.be/clip\n")

	code := app.Run(context.Background(), []string{"download", "-o", t.TempDir()})
	if code != ExitOK {
		t.Fatalf("Expected exit 0, got %d", code)
	}
	if engine.req.URL != "https://youtu.be/clip" {
		t.Errorf("Expected clipboard URL, got %q", engine.req.URL)
	}
	if !strings.Contains(stdout.String(), "Using URL from clipboard") {
		t.Errorf("Expected clipboard notice, got %q", stdout.String())
	}
}

func TestDownload_NoURL(t *testing.T) {
	engine := &fakeEngine{}
	app, _, stderr := newTestApp(engine, "not a link")

	code := app.Run(context.Background(), []string{"download", "-o", t.TempDir()})
	if code != ExitUsage {
		t.Fatalf("Expected exit %d, got %d", ExitUsage, code)
	}
	if engine.calls != 0 {
		t.Errorf("Expected engine not to be called, got %d calls", engine.calls)
	}
	if !strings.Contains(stderr.String(), download.ErrEmptyURL.Error()) {
		t.Errorf("Expected empty URL error, got %q", stderr.String())
	}
}

func TestDownload_BadQuality(t *testing.T) {
	app, _, _ := newTestApp(&fakeEngine{}, "")

	if code := app.Run(context.Background(), []string{"download", "-quality", "8k", "https://youtu.be/abc"}); code != ExitUsage {
		t.Errorf("Expected exit %d, got %d", ExitUsage, code)
	}
}

func TestDownload_EngineFailure(t *testing.T) {
	engine := &fakeEngine{err: errors.New("video unavailable")}
	app, stdout, stderr := newTestApp(engine, "")

	code := app.Run(context.Background(), []string{"download", "-o", t.TempDir(), "https://youtu.be/gone"})
	if code != ExitFailure {
		t.Fatalf("Expected exit %d, got %d", ExitFailure, code)
	}
	if engine.calls != 2 {
		t.Errorf("Expected one retry, got %d calls", engine.calls)
	}
	if !strings.Contains(stderr.String(), "video unavailable") {
		t.Errorf("Expected engine error, got %q", stderr.String())
	}
	if !strings.Contains(stdout.String(), MsgDownloadFinished) {
		t.Errorf("Expected %q, got %q", MsgDownloadFinished, stdout.String())
	}
}
