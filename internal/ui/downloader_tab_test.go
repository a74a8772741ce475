package ui

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"fyne.io/fyne/v2/test"

	"github.com/ytget/deskutils/internal/config"
	"github.com/ytget/deskutils/internal/download"
	"github.com/ytget/deskutils/internal/model"
)

type stubEngine struct {
	mu      sync.Mutex
	calls   int
	block   bool
	started chan struct{}
}

func (s *stubEngine) Download(ctx context.Context, req download.Request, onProgress func(download.Progress)) (download.Result, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()

	onProgress(download.Progress{Downloaded: 25, Total: 100})
	if s.block {
		close(s.started)
		<-ctx.Done()
		return download.Result{}, ctx.Err()
	}
	onProgress(download.Progress{Downloaded: 100, Total: 100})
	return download.Result{Title: "Clip", Path: filepath.Join(req.OutputDir, "Clip.mp4")}, nil
}

func (s *stubEngine) Calls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func newTestDownloader(t *testing.T, engine download.Engine) (*DownloaderTab, *config.Settings, chan model.DownloadTask) {
	t.Helper()
	app := test.NewTempApp(t)
	window := app.NewWindow("downloader")
	t.Cleanup(window.Close)

	settings := config.NewSettings(app)
	settings.SetDownloadDirectory(filepath.Join(t.TempDir(), "videos"))

	tab := NewDownloaderTab(window, download.NewService(engine), settings, NewLocalization())
	window.SetContent(tab.Content())

	finished := make(chan model.DownloadTask, 1)
	tab.onFinished = func(task model.DownloadTask) { finished <- task }
	return tab, settings, finished
}

func waitFinished(t *testing.T, finished chan model.DownloadTask) model.DownloadTask {
	t.Helper()
	select {
	case task := <-finished:
		return task
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for the download to finish")
		return model.DownloadTask{}
	}
}

func hasLine(lines []string, prefix string) bool {
	for _, l := range lines {
		if strings.HasPrefix(l, prefix) {
			return true
		}
	}
	return false
}

func TestDownloaderTab_RejectsBadInput(t *testing.T) {
	engine := &stubEngine{}
	tab, _, _ := newTestDownloader(t, engine)

	tab.onDownloadClick()
	if !hasLine(tab.logLines, "Please enter a URL") {
		t.Errorf("Expected empty URL message, got %v", tab.logLines)
	}

	tab.urlEntry.SetText("ftp://example.com/video")
	if tab.urlEntry.Validate() == nil {
		t.Error("Expected validator to reject ftp URL")
	}
	tab.onDownloadClick()
	if !hasLine(tab.logLines, "Invalid URL") {
		t.Errorf("Expected invalid URL message, got %v", tab.logLines)
	}
	if engine.Calls() != 0 {
		t.Errorf("Expected engine not to be called, got %d", engine.Calls())
	}
}

func TestDownloaderTab_Completes(t *testing.T) {
	engine := &stubEngine{}
	tab, settings, finished := newTestDownloader(t, engine)
	settings.SetAutoRevealOnComplete(true)

	var revealed string
	tab.reveal = func(path string) error {
		revealed = path
		return nil
	}

	tab.urlEntry.SetText("https://youtube.com/watch?v=abc")
	tab.onDownloadClick()

	task := waitFinished(t, finished)
	if task.Status != model.TaskStatusCompleted {
		t.Fatalf("Expected completed, got %s (%s)", task.Status, task.LastError)
	}

	wantPath := filepath.Join(settings.GetDownloadDirectory(), "Clip.mp4")
	if revealed != wantPath {
		t.Errorf("Expected reveal of %q, got %q", wantPath, revealed)
	}
	if !hasLine(tab.logLines, "Finished downloading: "+wantPath) {
		t.Errorf("Expected finished line, got %v", tab.logLines)
	}
	if last := tab.logLines[len(tab.logLines)-1]; last != "Download process finished." {
		t.Errorf("Expected final line, got %q", last)
	}
	if tab.progressBar.Value != 1 {
		t.Errorf("Expected full progress bar, got %v", tab.progressBar.Value)
	}
	if tab.downloadBtn.Disabled() || !tab.stopBtn.Disabled() {
		t.Error("Expected Download enabled and Stop disabled after completion")
	}
	if tab.urlEntry.Text != "" {
		t.Errorf("Expected URL entry to be cleared, got %q", tab.urlEntry.Text)
	}
}

func TestDownloaderTab_Stop(t *testing.T) {
	engine := &stubEngine{block: true, started: make(chan struct{})}
	tab, _, finished := newTestDownloader(t, engine)

	tab.urlEntry.SetText("https://youtube.com/watch?v=long")
	tab.onDownloadClick()
	if !tab.downloadBtn.Disabled() {
		t.Error("Expected Download button to be disabled while running")
	}

	<-engine.started
	tab.onStopClick()

	task := waitFinished(t, finished)
	if task.Status != model.TaskStatusStopped {
		t.Fatalf("Expected stopped, got %s", task.Status)
	}
	if !hasLine(tab.logLines, "Download stopped") {
		t.Errorf("Expected stopped line, got %v", tab.logLines)
	}
	if tab.downloadBtn.Disabled() {
		t.Error("Expected Download button to be enabled again")
	}
}

func TestDownloaderTab_LogIsBounded(t *testing.T) {
	tab, _, _ := newTestDownloader(t, &stubEngine{})

	for i := 0; i < StatusLogMaxLines+10; i++ {
		tab.appendLog("line")
	}
	if len(tab.logLines) != StatusLogMaxLines {
		t.Errorf("Expected %d lines, got %d", StatusLogMaxLines, len(tab.logLines))
	}
}

func TestDownloaderTab_ProgressLineIsReplaced(t *testing.T) {
	tab, _, _ := newTestDownloader(t, &stubEngine{})

	tab.appendLog("Download started")
	tab.replaceProgressLine("Downloading: 10%")
	tab.replaceProgressLine("Downloading: 20%")

	want := []string{"Download started", "Downloading: 20%"}
	if strings.Join(tab.logLines, "|") != strings.Join(want, "|") {
		t.Errorf("Expected %v, got %v", want, tab.logLines)
	}
}
