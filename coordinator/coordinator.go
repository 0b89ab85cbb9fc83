// Package coordinator implements the RenderCoordinator: a single worker
// running a fixed-interval tick loop that drains lifecycle requests across
// every registered container (in creation order, by precedence), grants or
// denies each per the focus/visibility rules, and drives render attempts
// for the focused container, at most one in flight at a time, through a
// pluggable Renderer.
package coordinator

import (
	"log/slog"
	"sync"
	"time"

	"termstage/config"
	"termstage/container"
)

// Renderer is the subset of the renderer.TTY surface the coordinator
// drives. Defined here (not imported from package renderer) so the
// coordinator can be tested against a fake without a real TTY.
type Renderer interface {
	Render(state container.RenderableState) error
}

// entry tracks one registered container plus the order it was registered
// in (creation order, used by focus reconciliation).
type entry struct {
	c     *container.Container
	order int
}

// Coordinator owns the container registry, the focus pointer, and the
// generation counter. One Coordinator drives exactly one Renderer.
type Coordinator struct {
	mu         sync.Mutex
	containers []*entry
	nextOrder  int

	focused    *container.Container
	generation uint64
	dirtyGen   uint64
	isDirty    bool

	renderInFlight bool
	stopped        bool

	framePeriod      time.Duration
	failureThreshold int
	failureWindow    time.Duration

	renderer Renderer
	log      *slog.Logger

	renderWG sync.WaitGroup
	stop     chan struct{}
	stopOnce sync.Once
}

// New creates a Coordinator driving r, with its tick period and render
// failure escalation policy taken from cfg. log defaults to slog.Default().
func New(r Renderer, cfg config.Config, log *slog.Logger) *Coordinator {
	if log == nil {
		log = slog.Default()
	}
	return &Coordinator{
		renderer:         r,
		log:              log,
		stop:             make(chan struct{}),
		framePeriod:      cfg.FramePeriod(),
		failureThreshold: cfg.RenderFailureThreshold,
		failureWindow:    cfg.RenderFailureReset(),
	}
}

// Register adds c to the coordinator's managed set in creation order.
// Idempotent: registering the same container twice is a no-op. A
// Container's onRequestMade callback should call Register so newly created
// containers are picked up on the very next tick.
func (co *Coordinator) Register(c *container.Container) {
	co.mu.Lock()
	defer co.mu.Unlock()
	for _, e := range co.containers {
		if e.c == c {
			return
		}
	}
	co.containers = append(co.containers, &entry{c: c, order: co.nextOrder})
	co.nextOrder++
}

// Focused returns the currently focused container, or nil if none.
func (co *Coordinator) Focused() *container.Container {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.focused
}

// Generation returns the current generation counter.
func (co *Coordinator) Generation() uint64 {
	co.mu.Lock()
	defer co.mu.Unlock()
	return co.generation
}

// Run blocks, ticking every configured frame period until Stop is called.
func (co *Coordinator) Run() {
	ticker := time.NewTicker(co.framePeriod)
	defer ticker.Stop()
	for {
		select {
		case <-co.stop:
			return
		case <-ticker.C:
			co.tick()
		}
	}
}

// Stop ends the tick loop after the current tick finishes and waits for any
// render attempt already in flight (or racing to start) to complete, so the
// caller can safely tear down the Renderer (e.g. renderer.TTY.Shutdown)
// immediately after Stop returns without racing an in-progress Render call.
// stopped is set under co.mu, the same lock renderIfDirty checks before
// spawning a render goroutine, so no new attempt can start once Stop has
// begun: either renderIfDirty wins the race and renderWG.Add happens before
// Stop observes stopped, or Stop wins and renderIfDirty sees stopped first.
func (co *Coordinator) Stop() {
	co.stopOnce.Do(func() {
		co.mu.Lock()
		co.stopped = true
		co.mu.Unlock()
		close(co.stop)
	})
	co.renderWG.Wait()
}

func (co *Coordinator) tick() {
	co.drainRequests()
	co.renderIfDirty()
}

// OnResize is invoked by the renderer's resize watcher on a real dimension
// change: every registered container is resized and the generation is
// incremented, forcing a full repaint.
func (co *Coordinator) OnResize(cols, rows int) {
	co.mu.Lock()
	entries := append([]*entry(nil), co.containers...)
	co.generation++
	gen := co.generation
	co.mu.Unlock()

	for _, e := range entries {
		e.c.Resize(cols, rows)
	}

	co.mu.Lock()
	co.isDirty = true
	co.dirtyGen = gen
	co.mu.Unlock()
}
