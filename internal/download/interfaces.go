package download

import (
	"context"
)

// Downloader defines the interface of the download service used by front ends.
type Downloader interface {
	// Start begins downloading req and returns immediately.
	Start(ctx context.Context, req Request) (*Job, error)
	// Active returns the running job, or nil.
	Active() *Job
}

// Progress is a byte-level progress report from an Engine.
type Progress struct {
	Downloaded int64
	Total      int64 // 0 when unknown
	Percent    float64
}

// Result describes a finished download.
type Result struct {
	Title string
	Path  string
}

// Engine performs one download. Implementations must return promptly with
// ctx.Err() once ctx is cancelled.
type Engine interface {
	Download(ctx context.Context, req Request, onProgress func(Progress)) (Result, error)
}
