package download

import (
	"testing"
	"time"

	"github.com/ytget/deskutils/internal/model"
)

func TestJob_BeginAttemptRestartsClock(t *testing.T) {
	job := newJob(model.DownloadTask{ID: "task-1", Status: model.TaskStatusPending}, func() {})
	job.setStatus(model.TaskStatusStarting)

	job.beginAttempt()
	job.updateProgress(Progress{Downloaded: 1 << 20, Total: 4 << 20})
	if snap := job.Snapshot(); snap.Status != model.TaskStatusDownloading {
		t.Fatalf("Expected downloading after first progress, got %v", snap.Status)
	}

	// first attempt stalled for an hour before failing
	job.mu.Lock()
	job.downloadStarted = time.Now().Add(-time.Hour)
	job.mu.Unlock()
	job.updateProgress(Progress{Downloaded: 1 << 20, Total: 4 << 20})
	if eta := job.Snapshot().ETASec; eta < 3600 {
		t.Fatalf("Expected stalled attempt to report an ETA of hours, got %ds", eta)
	}

	job.beginAttempt()
	snap := job.Snapshot()
	if snap.Speed != "" || snap.ETASec != -1 {
		t.Errorf("Expected speed and ETA cleared, got %q / %ds", snap.Speed, snap.ETASec)
	}

	time.Sleep(time.Millisecond)
	job.updateProgress(Progress{Downloaded: 2 << 20, Total: 4 << 20})
	snap = job.Snapshot()
	if snap.ETASec >= 60 {
		t.Errorf("Expected ETA measured from the new attempt, got %ds", snap.ETASec)
	}
	if snap.Speed == "" {
		t.Error("Expected speed to be recomputed")
	}
	if snap.Status != model.TaskStatusDownloading {
		t.Errorf("Expected status to stay downloading, got %v", snap.Status)
	}
}

func TestJob_BeginAttemptIgnoredWhenStopping(t *testing.T) {
	job := newJob(model.DownloadTask{ID: "task-2", Status: model.TaskStatusPending}, func() {})
	job.setStatus(model.TaskStatusStarting)
	job.updateProgress(Progress{Downloaded: 1 << 20, Total: 4 << 20})
	job.Cancel()

	job.mu.Lock()
	started := job.downloadStarted
	job.mu.Unlock()

	job.beginAttempt()

	job.mu.Lock()
	defer job.mu.Unlock()
	if !job.downloadStarted.Equal(started) {
		t.Error("Expected a stopping job to keep its clock")
	}
}
