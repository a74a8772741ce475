package download

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ytget/deskutils/internal/model"
	"github.com/ytget/deskutils/internal/platform"
)

// ErrBusy is returned by Start while another download is running
var ErrBusy = errors.New("a download is already in progress")

// Retry defaults
const (
	DefaultMaxRetries = 1
	DefaultRetryDelay = 2 * time.Second
)

// TaskIDPrefix prefixes every download task id
const TaskIDPrefix = "task-"

// Service runs downloads one at a time
type Service struct {
	engine Engine

	mu         sync.Mutex
	active     *Job
	maxRetries int
	retryDelay time.Duration
}

// NewService creates a download service on top of engine
func NewService(engine Engine) *Service {
	return &Service{
		engine:     engine,
		maxRetries: DefaultMaxRetries,
		retryDelay: DefaultRetryDelay,
	}
}

// SetRetryPolicy overrides the number of retries and the backoff between them
func (s *Service) SetRetryPolicy(maxRetries int, delay time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if maxRetries < 0 {
		maxRetries = 0
	}
	s.maxRetries = maxRetries
	s.retryDelay = delay
}

// Active returns the running job, or nil when idle
func (s *Service) Active() *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.active == nil {
		return nil
	}
	select {
	case <-s.active.Done():
		return nil
	default:
		return s.active
	}
}

// Start validates req, prepares the output directory and launches the
// download in the background. Cancelling ctx cancels the job.
func (s *Service) Start(ctx context.Context, req Request) (*Job, error) {
	req.URL = CleanURL(req.URL)
	if err := req.Validate(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.active != nil {
		select {
		case <-s.active.Done():
		default:
			return nil, ErrBusy
		}
	}

	if err := platform.CreateDirectoryIfNotExists(req.OutputDir); err != nil {
		return nil, fmt.Errorf("create output directory: %w", err)
	}

	task := model.DownloadTask{
		ID:        generateTaskID(),
		URL:       req.URL,
		Status:    model.TaskStatusPending,
		ETASec:    -1,
		StartedAt: time.Now(),
	}

	jobCtx, cancel := context.WithCancel(ctx)
	job := newJob(task, cancel)
	s.active = job

	log.Info().Str("task", task.ID).Str("url", req.URL).Str("dir", req.OutputDir).
		Str("quality", string(req.Quality)).Msg("download started")

	go s.run(jobCtx, cancel, job, req, s.maxRetries, s.retryDelay)

	return job, nil
}

func (s *Service) run(ctx context.Context, cancel context.CancelFunc, job *Job, req Request, maxRetries int, delay time.Duration) {
	defer cancel()

	job.setStatus(model.TaskStatusStarting)

	res, err := s.downloadWithRetry(ctx, job, req, maxRetries, delay)
	cancelled := err != nil && ctx.Err() != nil

	switch {
	case cancelled:
		log.Info().Str("task", job.ID()).Msg("download stopped")
	case err != nil:
		log.Error().Err(err).Str("task", job.ID()).Msg("download failed")
	default:
		log.Info().Str("task", job.ID()).Str("path", res.Path).Msg("Finished downloading")
	}

	job.finish(res, err, cancelled)
	log.Debug().Str("task", job.ID()).Msg("Download process finished.")
}

// downloadWithRetry attempts the download, retrying after a backoff
func (s *Service) downloadWithRetry(ctx context.Context, job *Job, req Request, maxRetries int, delay time.Duration) (Result, error) {
	var lastErr error
	lastPercent := -1

	onProgress := func(p Progress) {
		job.updateProgress(p)
		if snap := job.Snapshot(); snap.Percent != lastPercent {
			lastPercent = snap.Percent
			log.Debug().Str("task", snap.ID).Int("percent", snap.Percent).Msg("Downloading")
		}
	}

	for attempt := 0; attempt <= maxRetries; attempt++ {
		if attempt > 0 {
			select {
			case <-time.After(delay):
			case <-ctx.Done():
				return Result{}, ctx.Err()
			}
			log.Info().Str("task", job.ID()).Int("attempt", attempt+1).Msg("retrying download")
		}
		job.beginAttempt()

		res, err := s.engine.Download(ctx, req, onProgress)
		if err == nil {
			return res, nil
		}

		lastErr = err
		log.Warn().Err(err).Str("task", job.ID()).Int("attempt", attempt+1).Msg("download attempt failed")

		if ctx.Err() != nil {
			return Result{}, ctx.Err()
		}
	}

	return Result{}, lastErr
}

// generateTaskID uses UUID v7 so ids sort chronologically
func generateTaskID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return fmt.Sprintf(TaskIDPrefix+"%d", time.Now().UnixNano())
	}
	return TaskIDPrefix + id.String()
}
