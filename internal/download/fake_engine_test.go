package download

import (
	"context"
	"errors"
	"sync"
)

// fakeEngine replays a scripted progress sequence, failing the first
// failures attempts with err.
type fakeEngine struct {
	mu       sync.Mutex
	steps    []Progress
	failures int
	err      error
	result   Result
	calls    int
	block    bool // wait for ctx cancellation instead of returning
	started  chan struct{}
}

func (f *fakeEngine) Download(ctx context.Context, req Request, onProgress func(Progress)) (Result, error) {
	f.mu.Lock()
	f.calls++
	call := f.calls
	f.mu.Unlock()

	for _, p := range f.steps {
		onProgress(p)
	}

	if f.block {
		if f.started != nil {
			close(f.started)
		}
		<-ctx.Done()
		return Result{}, ctx.Err()
	}

	if call <= f.failures {
		if f.err == nil {
			return Result{}, errors.New("network unreachable")
		}
		return Result{}, f.err
	}
	return f.result, nil
}

func (f *fakeEngine) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
