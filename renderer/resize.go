package renderer

import (
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"termstage/config"
	"termstage/scheduler"
)

// ResizeWatcher owns the dedicated resize-detection worker: a SIGWINCH
// signal handler and a size-polling fallback, both funnelled through a
// single leading-edge debounced callback. Initially both strategies run;
// if the signal path delivers at least one resize within the first
// observation window, polling stops and the watcher relies on the signal
// alone. The debounce window, poll period, and observation window are all
// driven by the engine's config.Config.
type ResizeWatcher struct {
	tty      *TTY
	onResize func(cols, rows int)

	pollPeriod   time.Duration
	observeAfter time.Duration

	sigCh     chan os.Signal
	debouncer *scheduler.Debouncer
	stop      chan struct{}
	stopOnce  sync.Once

	mu             sync.Mutex
	lastCols       int
	lastRows       int
	signalObserved bool
}

// NewResizeWatcher creates a watcher over tty, driven by cfg's resize
// debounce/poll/signal-test windows. onResize is invoked (already debounced
// and deduplicated against the last known size) whenever a real dimension
// change is detected.
func NewResizeWatcher(tty *TTY, cfg config.Config, onResize func(cols, rows int)) *ResizeWatcher {
	cols, rows, _ := tty.Size()
	return &ResizeWatcher{
		tty:          tty,
		onResize:     onResize,
		pollPeriod:   cfg.ResizePollPeriod(),
		observeAfter: cfg.SignalTestWindow(),
		sigCh:        make(chan os.Signal, 1),
		debouncer:    scheduler.NewDebouncer(cfg.ResizeDebounce()),
		stop:         make(chan struct{}),
		lastCols:     cols,
		lastRows:     rows,
	}
}

// Start launches the resize worker goroutine.
func (w *ResizeWatcher) Start() {
	signal.Notify(w.sigCh, syscall.SIGWINCH)
	go w.run()
}

// Stop terminates the resize worker and stops listening for SIGWINCH.
func (w *ResizeWatcher) Stop() {
	w.stopOnce.Do(func() {
		signal.Stop(w.sigCh)
		close(w.stop)
		w.debouncer.Stop()
	})
}

func (w *ResizeWatcher) run() {
	observeDeadline := time.NewTimer(w.observeAfter)
	defer observeDeadline.Stop()

	poll := time.NewTicker(w.pollPeriod)
	defer poll.Stop()
	pollActive := true

	for {
		select {
		case <-w.stop:
			return
		case <-w.sigCh:
			w.mu.Lock()
			w.signalObserved = true
			w.mu.Unlock()
			w.debouncer.Fire(w.checkSize)
		case <-observeDeadline.C:
			w.mu.Lock()
			observed := w.signalObserved
			w.mu.Unlock()
			if observed && pollActive {
				poll.Stop()
				pollActive = false
			}
		case <-poll.C:
			if pollActive {
				w.debouncer.Fire(w.checkSize)
			}
		}
	}
}

// checkSize re-reads the terminal size and invokes onResize only if it
// actually changed, so a debounced fire that finds no real change is a
// no-op (matches the "a real change invokes resize(w,h)" contract).
func (w *ResizeWatcher) checkSize() {
	cols, rows, err := w.tty.Size()
	if err != nil {
		return
	}
	w.mu.Lock()
	changed := cols != w.lastCols || rows != w.lastRows
	if changed {
		w.lastCols, w.lastRows = cols, rows
	}
	w.mu.Unlock()
	if changed && w.onResize != nil {
		w.onResize(cols, rows)
	}
}
