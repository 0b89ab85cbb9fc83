package scheduler

import (
	"sync"
	"time"

	"golang.org/x/sync/semaphore"
)

// Debouncer implements leading-edge debouncing at a fixed window: the first
// Fire within a window runs immediately, and any further Fire calls before
// the window elapses are suppressed. This matches the resize debounce
// contract (80ms leading edge) and is reused by any other coalesced signal.
type Debouncer struct {
	window time.Duration
	gate   *semaphore.Weighted

	mu    sync.Mutex
	timer *time.Timer
}

// NewDebouncer returns a Debouncer with the given window.
func NewDebouncer(window time.Duration) *Debouncer {
	return &Debouncer{window: window, gate: semaphore.NewWeighted(1)}
}

// Fire runs fn immediately if no window is currently open; otherwise it is
// a no-op. A fresh window opens on every leading-edge fire.
func (d *Debouncer) Fire(fn func()) {
	if !d.gate.TryAcquire(1) {
		return
	}

	fn()

	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.timer = time.AfterFunc(d.window, func() {
		d.gate.Release(1)
	})
	d.mu.Unlock()
}

// Stop cancels any pending window-close timer, leaving the gate closed.
// Used during shutdown to avoid a stray timer firing after teardown.
func (d *Debouncer) Stop() {
	d.mu.Lock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.mu.Unlock()
}
