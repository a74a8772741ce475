package download

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/ytget/deskutils/internal/model"
)

// EventKind tells consumers what changed
type EventKind int

const (
	// EventStatus is published on every status transition
	EventStatus EventKind = iota
	// EventProgress carries byte-level progress
	EventProgress
	// EventFinished is the terminal event; the channel closes right after it
	EventFinished
)

// String returns a short name of the kind
func (k EventKind) String() string {
	switch k {
	case EventStatus:
		return "status"
	case EventProgress:
		return "progress"
	case EventFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// Event is a snapshot of the task at the time it was published
type Event struct {
	Kind EventKind
	Task model.DownloadTask
}

// eventBuffer bounds how far a slow consumer may lag behind
const eventBuffer = 64

// Job is a handle to one running download
type Job struct {
	mu     sync.Mutex
	task   model.DownloadTask
	events chan Event
	closed bool
	cancel context.CancelFunc
	done   chan struct{}
	err    error

	downloadStarted time.Time
}

func newJob(task model.DownloadTask, cancel context.CancelFunc) *Job {
	return &Job{
		task:   task,
		events: make(chan Event, eventBuffer),
		cancel: cancel,
		done:   make(chan struct{}),
	}
}

// ID returns the task id
func (j *Job) ID() string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.task.ID
}

// Events returns the progress-event channel. It is closed after EventFinished.
func (j *Job) Events() <-chan Event {
	return j.events
}

// Done is closed once the job reached a terminal status
func (j *Job) Done() <-chan struct{} {
	return j.done
}

// Wait blocks until the job finishes and returns its error, if any.
// A cancelled job returns context.Canceled.
func (j *Job) Wait() error {
	<-j.done
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.err
}

// Snapshot returns a copy of the current task state
func (j *Job) Snapshot() model.DownloadTask {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.task
}

// Cancel requests the download to stop. Calling it on a finished job is a no-op.
func (j *Job) Cancel() {
	j.mu.Lock()
	if j.task.Status.IsFinished() || j.task.Status == model.TaskStatusStopping {
		j.mu.Unlock()
		return
	}
	j.task.Status = model.TaskStatusStopping
	j.publishLocked(EventStatus, false)
	j.mu.Unlock()

	j.cancel()
}

// setStatus moves the job to a non-terminal status unless it is stopping
func (j *Job) setStatus(status model.TaskStatus) {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.task.Status == model.TaskStatusStopping || j.task.Status.IsFinished() {
		return
	}
	j.task.Status = status
	j.publishLocked(EventStatus, false)
}

// beginAttempt restarts the speed and ETA clock for a fresh engine attempt
func (j *Job) beginAttempt() {
	j.mu.Lock()
	defer j.mu.Unlock()
	if j.task.Status == model.TaskStatusStopping || j.task.Status.IsFinished() {
		return
	}
	j.downloadStarted = time.Time{}
	j.task.Speed = ""
	j.task.ETASec = -1
}

// updateProgress folds an engine report into the task
func (j *Job) updateProgress(p Progress) {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.task.Status.IsFinished() {
		return
	}
	if j.task.Status == model.TaskStatusStarting {
		j.task.Status = model.TaskStatusDownloading
		j.publishLocked(EventStatus, false)
	}
	if j.downloadStarted.IsZero() {
		j.downloadStarted = time.Now()
	}

	percent := p.Percent
	if p.Total > 0 {
		percent = float64(p.Downloaded) / float64(p.Total) * 100
		j.task.FileSize = p.Total
	}
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}
	j.task.Percent = int(percent)
	j.task.Progress = percent / 100.0

	if !j.downloadStarted.IsZero() {
		elapsed := time.Since(j.downloadStarted).Seconds()
		if elapsed > 0 && p.Downloaded > 0 {
			bytesPerSecond := float64(p.Downloaded) / elapsed
			j.task.Speed = fmt.Sprintf("%.1fMB/s", bytesPerSecond/1024/1024)
			if p.Total > p.Downloaded {
				j.task.ETASec = int(float64(p.Total-p.Downloaded) / bytesPerSecond)
			}
		}
	}

	j.publishLocked(EventProgress, false)
}

// finish records the terminal state, delivers EventFinished and closes the channel
func (j *Job) finish(res Result, err error, cancelled bool) {
	j.mu.Lock()
	switch {
	case cancelled:
		j.task.Status = model.TaskStatusStopped
		j.err = context.Canceled
	case err != nil:
		j.task.Status = model.TaskStatusError
		j.task.LastError = err.Error()
		j.err = err
	default:
		j.task.Status = model.TaskStatusCompleted
		j.task.Progress = 1.0
		j.task.Percent = 100
		j.task.ETASec = -1
		j.task.OutputPath = res.Path
		if j.task.Title == "" {
			j.task.Title = res.Title
		}
	}
	j.task.FinishedAt = time.Now()

	j.publishLocked(EventFinished, true)
	j.closed = true
	close(j.events)
	j.mu.Unlock()

	close(j.done)
}

// publishLocked sends a snapshot without blocking. Non-terminal events are
// dropped when the buffer is full; a terminal event evicts the oldest one.
// Caller must hold j.mu.
func (j *Job) publishLocked(kind EventKind, mustDeliver bool) {
	if j.closed {
		return
	}
	ev := Event{Kind: kind, Task: j.task}
	for {
		select {
		case j.events <- ev:
			return
		default:
		}
		if !mustDeliver {
			return
		}
		select {
		case <-j.events:
		default:
		}
	}
}
