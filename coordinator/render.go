package coordinator

import (
	"time"

	"termstage/container"
)

// renderIfDirty attempts at most one render per tick. A render runs on its
// own goroutine so a slow TTY write never stalls the tick loop; while it is
// in flight, ticks that find the same generation still dirty simply leave
// it dirty for the next free tick (backpressure — the queue drainer above
// is independent of this).
func (co *Coordinator) renderIfDirty() {
	co.mu.Lock()
	if co.stopped || co.renderInFlight || !co.isDirty || co.dirtyGen != co.generation {
		co.mu.Unlock()
		return
	}
	f := co.focused
	if f == nil || !f.ShouldRender() {
		co.isDirty = false
		co.mu.Unlock()
		return
	}
	if count, last := f.FailureStatus(); count >= co.failureThreshold && time.Since(last) < co.failureWindow {
		f.State().Add(container.RenderError)
		co.isDirty = false
		co.mu.Unlock()
		return
	}
	co.renderInFlight = true
	gen := co.generation
	co.renderWG.Add(1)
	co.mu.Unlock()

	go co.attemptRender(f, gen)
}

func (co *Coordinator) attemptRender(f *container.Container, gen uint64) {
	defer co.renderWG.Done()
	defer func() {
		co.mu.Lock()
		co.renderInFlight = false
		co.mu.Unlock()
	}()

	snap := f.SnapshotRenderableState(gen)
	err := co.renderer.Render(snap)

	co.mu.Lock()
	stillCurrent := co.dirtyGen == gen
	co.mu.Unlock()

	if err != nil {
		f.RecordRenderFailure(time.Now())
		f.State().Add(container.RenderError)
		if count, _ := f.FailureStatus(); count >= co.failureThreshold {
			f.State().Add(container.ErrorFlag)
		}
		co.log.Warn("render attempt failed", "error", err)
		co.mu.Lock()
		if stillCurrent {
			co.isDirty = false
		}
		co.mu.Unlock()
		return
	}

	f.CommitRender()
	f.State().Remove(container.RenderError)
	f.RecordRenderSuccess()

	co.mu.Lock()
	if stillCurrent {
		co.isDirty = false
	}
	co.mu.Unlock()
}
