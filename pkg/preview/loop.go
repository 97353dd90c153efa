package preview

import (
	"context"
	"log/slog"
	"sync"
	"sync/atomic"
)

// Loop runs functions one at a time on a single goroutine. Everything that
// touches the mounted app (state writes, serialization) goes through it, so
// reactive re-renders never race.
type Loop struct {
	dispatchCh chan func()
	done       chan struct{}
	closed     atomic.Bool
	closeOnce  sync.Once
	logger     *slog.Logger
}

// NewLoop creates a loop with room for queue pending functions.
func NewLoop(queue int, logger *slog.Logger) *Loop {
	if queue <= 0 {
		queue = 256
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Loop{
		dispatchCh: make(chan func(), queue),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

// Run processes queued functions until ctx is done or Close is called.
func (l *Loop) Run(ctx context.Context) {
	for {
		select {
		case fn := <-l.dispatchCh:
			l.safeCall(fn)
		case <-ctx.Done():
			l.Close()
			return
		case <-l.done:
			return
		}
	}
}

func (l *Loop) safeCall(fn func()) {
	defer func() {
		if r := recover(); r != nil {
			l.logger.Error("panic in dispatched function", "panic", r)
		}
	}()
	fn()
}

// Dispatch queues fn without waiting. It reports false when the loop is
// closed or the queue is full.
func (l *Loop) Dispatch(fn func()) bool {
	if l.closed.Load() {
		return false
	}
	select {
	case l.dispatchCh <- fn:
		return true
	case <-l.done:
		return false
	default:
		l.logger.Warn("dispatch queue full, discarding callback")
		return false
	}
}

// Do runs fn on the loop and waits for its result.
func (l *Loop) Do(ctx context.Context, fn func() error) error {
	result := make(chan error, 1)
	queued := func() { result <- fn() }
	if l.closed.Load() {
		return ErrLoopClosed
	}

	select {
	case l.dispatchCh <- queued:
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}

	select {
	case err := <-result:
		return err
	case <-l.done:
		return ErrLoopClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops the loop. Pending functions are dropped.
func (l *Loop) Close() {
	l.closeOnce.Do(func() {
		l.closed.Store(true)
		close(l.done)
	})
}
