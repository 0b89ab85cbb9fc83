package container

import (
	"log/slog"
	"sync"
	"time"

	"termstage/cell"
	"termstage/scheduler"
	"termstage/state"
)

// defaultFailureWindow bounds how recent a prior failure must be to count
// toward the same consecutive-failure streak; the threshold for escalating
// that streak into RenderError/ErrorFlag is a coordinator policy decision
// (coordinator.Coordinator's failureThreshold, driven by config.Config), not
// a container concern — the container only tracks raw counters (see
// RecordRenderFailure / RecordRenderSuccess).
const defaultFailureWindow = 5 * time.Second

// Container is a full-terminal logical display surface: its own front/back
// cell buffers, cursor, draw command set, and lifecycle state machine.
type Container struct {
	id         ID
	title      string
	ownerPath  string
	rendererID string

	state *state.Machine

	mu      sync.Mutex // guards buffers/cursor; held by executor-run jobs and by Width/Height
	front   *buffer     // cells: latest logical state
	back    *buffer     // prevCells: what was last successfully rendered
	cursorX int
	cursorY int
	cursorVisible bool

	exec *scheduler.Executor

	onRequestMade func(*Container)

	consumer   func(Event)
	consumerMu sync.Mutex

	failMu        sync.Mutex
	consecutiveFailures int
	lastFailure   time.Time

	log *slog.Logger
}

// New creates a container sized width x height. prev_cells is seeded with
// the sentinel cell so the very first render is a full paint. onRequestMade
// is invoked (off the executor) whenever a lifecycle request flag is set,
// letting the owner register the container with the coordinator (see
// coordinator.Register) without the container holding a reference back to
// the coordinator.
func New(title, ownerPath, rendererID string, width, height int, onRequestMade func(*Container)) *Container {
	c := &Container{
		id:            NewID(),
		title:         title,
		ownerPath:     ownerPath,
		rendererID:    rendererID,
		state:         state.New(),
		front:         newBuffer(width, height, cell.Empty),
		back:          newBuffer(width, height, cell.Sentinel),
		cursorVisible: true,
		exec:          scheduler.NewExecutor(),
		onRequestMade: onRequestMade,
		log:           slog.Default(),
	}
	return c
}

// SetLogger overrides the logger used for ignored/malformed draw commands
// (see applyCommand). Defaults to slog.Default().
func (c *Container) SetLogger(l *slog.Logger) { c.log = l }

func (c *Container) ID() ID             { return c.id }
func (c *Container) Title() string      { return c.title }
func (c *Container) OwnerPath() string  { return c.ownerPath }
func (c *Container) RendererID() string { return c.rendererID }
func (c *Container) State() *state.Machine { return c.state }

func (c *Container) Width() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front.width
}

func (c *Container) Height() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.front.height
}

// OnEvent registers the application's event consumer, setting
// EventStreamReady. Only one consumer may be registered at a time.
func (c *Container) OnEvent(fn func(Event)) {
	c.consumerMu.Lock()
	c.consumer = fn
	c.consumerMu.Unlock()
	c.state.Add(EventStreamReady)
}

// EventStreamReady reports whether the application has registered a
// consumer.
func (c *Container) EventStreamReady() bool { return c.state.Has(EventStreamReady) }

// EmitEvent delivers ev to the registered consumer, if any. It is the
// dispatch point both for decoder-produced keyboard events (routed to the
// focused container only) and for lifecycle notifications.
func (c *Container) EmitEvent(ev Event) {
	c.consumerMu.Lock()
	fn := c.consumer
	c.consumerMu.Unlock()
	if fn != nil {
		fn(ev)
	}
}

// ShouldRender reports VISIBLE && !HIDDEN && !ERROR && !DESTROYED.
func (c *Container) ShouldRender() bool {
	return c.state.HasAll(Visible) &&
		c.state.HasNone(Hidden) &&
		c.state.HasNone(ErrorFlag) &&
		c.state.HasNone(Destroyed)
}

// SnapshotRenderableState submits to the container's executor and returns a
// stable snapshot of cells/prevCells plus cursor info. Calling it from the
// coordinator's goroutine never blocks a concurrent writer beyond the
// in-flight command, because it is itself just another serialized job.
func (c *Container) SnapshotRenderableState(generation uint64) RenderableState {
	var snap RenderableState
	c.exec.Submit(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		snap = RenderableState{
			Width:         c.front.width,
			Height:        c.front.height,
			CursorX:       c.cursorX,
			CursorY:       c.cursorY,
			CursorVisible: c.cursorVisible,
			Cells:         c.front.clone(),
			PrevCells:     c.back.clone(),
			Generation:    generation,
		}
	})
	return snap
}

// CommitRender copies every cell from the front buffer to the back buffer.
// Applying it twice with no intervening mutation is a no-op the second time
// (front already equals back), satisfying the commit-idempotence invariant.
func (c *Container) CommitRender() {
	c.exec.Submit(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		copy(c.back.cells, c.front.cells)
	})
}

// RecordRenderFailure increments the consecutive-failure counter used by
// the coordinator's backoff invariant. A failure more than
// defaultFailureWindow after the previous one starts a new streak at 1.
// Whether a streak is long enough to escalate is decided by the coordinator
// from FailureStatus.
func (c *Container) RecordRenderFailure(now time.Time) {
	c.failMu.Lock()
	defer c.failMu.Unlock()
	if c.lastFailure.IsZero() || now.Sub(c.lastFailure) > defaultFailureWindow {
		c.consecutiveFailures = 0
	}
	c.consecutiveFailures++
	c.lastFailure = now
}

// RecordRenderSuccess resets the failure tracker.
func (c *Container) RecordRenderSuccess() {
	c.failMu.Lock()
	defer c.failMu.Unlock()
	c.consecutiveFailures = 0
	c.lastFailure = time.Time{}
}

// FailureStatus returns the current consecutive failure count and the time
// of the last failure (zero if none).
func (c *Container) FailureStatus() (count int, last time.Time) {
	c.failMu.Lock()
	defer c.failMu.Unlock()
	return c.consecutiveFailures, c.lastFailure
}

// Stop shuts down the container's serialized executor. Call after the
// container has been fully destroyed and removed from the coordinator's
// registry.
func (c *Container) Stop() { c.exec.Stop() }

func (c *Container) requestMade() {
	if c.onRequestMade != nil {
		c.onRequestMade(c)
	}
}
