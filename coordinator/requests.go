package coordinator

import "termstage/container"

// drainRequests processes every registered container's pending lifecycle
// request flags in the fixed precedence order DESTROY > RENDER > UPDATE >
// FOCUS > SHOW > HIDE > MAXIMIZE > RESTORE. A flag that remains set after
// its processing step stays set (the state machine itself is the request
// queue) and is reconsidered on the next tick.
func (co *Coordinator) drainRequests() {
	co.mu.Lock()
	entries := append([]*entry(nil), co.containers...)
	co.mu.Unlock()

	for _, e := range entries {
		co.processContainer(e.c)
	}
}

func (co *Coordinator) processContainer(c *container.Container) {
	st := c.State()

	if st.Has(container.DestroyRequested) {
		co.grantDestroy(c)
		st.Remove(container.DestroyRequested)
	}
	if st.Has(container.Destroyed) {
		// A destroyed container accepts no further requests.
		return
	}

	if st.Has(container.RenderRequested) {
		co.markDirtyIfFocused(c)
		st.Remove(container.RenderRequested)
	}
	if st.Has(container.UpdateRequested) {
		co.markDirtyIfFocused(c)
		st.Remove(container.UpdateRequested)
	}
	if st.Has(container.FocusRequested) {
		if st.HasAll(container.Visible) && st.HasNone(container.Hidden) {
			co.grantFocus(c)
		} else {
			co.log.Debug("focus request denied", "container", c.ID().String())
		}
		st.Remove(container.FocusRequested)
	}
	if st.Has(container.ShowRequested) {
		co.grantShow(c)
		st.Remove(container.ShowRequested)
	}
	if st.Has(container.HideRequested) {
		co.grantHide(c)
		st.Remove(container.HideRequested)
	}
	if st.Has(container.MaximizeRequested) {
		if st.Has(container.Focused) {
			st.Add(container.Maximized)
			c.EmitEvent(container.ContainerMaximized{})
		} else {
			co.log.Debug("maximize request denied", "container", c.ID().String())
		}
		st.Remove(container.MaximizeRequested)
	}
	if st.Has(container.RestoreRequested) {
		if st.Has(container.Maximized) {
			st.Remove(container.Maximized)
			c.EmitEvent(container.ContainerRestored{})
		} else {
			co.log.Debug("restore request denied", "container", c.ID().String())
		}
		st.Remove(container.RestoreRequested)
	}
}

func (co *Coordinator) grantShow(c *container.Container) {
	st := c.State()
	st.Add(container.Visible)
	st.Remove(container.Hidden)
	c.EmitEvent(container.ContainerShown{})

	co.mu.Lock()
	noFocus := co.focused == nil
	co.mu.Unlock()
	if noFocus {
		c.RequestFocus()
	}
}

func (co *Coordinator) grantHide(c *container.Container) {
	st := c.State()
	st.Add(container.Hidden)
	c.EmitEvent(container.ContainerHidden{})

	co.mu.Lock()
	wasFocused := co.focused == c
	co.mu.Unlock()
	if wasFocused {
		co.revokeFocus(c)
		co.reconcileFocus()
	}
}

func (co *Coordinator) grantFocus(c *container.Container) {
	co.mu.Lock()
	prev := co.focused
	if prev == c {
		co.mu.Unlock()
		return
	}
	co.focused = c
	co.generation++
	gen := co.generation
	co.mu.Unlock()

	if prev != nil {
		prev.State().Remove(container.Focused)
		prev.EmitEvent(container.ContainerFocusLost{})
	}
	c.State().Add(container.Focused)
	c.EmitEvent(container.ContainerFocusGained{})

	co.mu.Lock()
	co.isDirty = true
	co.dirtyGen = gen
	co.mu.Unlock()
}

// revokeFocus clears focus from c without selecting a replacement; the
// caller is responsible for running focus reconciliation afterward.
func (co *Coordinator) revokeFocus(c *container.Container) {
	co.mu.Lock()
	if co.focused != c {
		co.mu.Unlock()
		return
	}
	co.focused = nil
	co.mu.Unlock()

	c.State().Remove(container.Focused)
	c.EmitEvent(container.ContainerFocusLost{})
}

func (co *Coordinator) grantDestroy(c *container.Container) {
	st := c.State()
	wasFocused := false
	co.mu.Lock()
	if co.focused == c {
		wasFocused = true
	}
	co.mu.Unlock()

	if wasFocused {
		co.revokeFocus(c)
	}
	st.Add(container.Destroyed)
	c.RecordRenderSuccess() // clears the failure tracker
	c.EmitEvent(container.ContainerClosed{})
	co.unregister(c)
	c.Stop()

	if wasFocused {
		co.reconcileFocus()
	}
}

// unregister drops c's entry from the managed set: a destroyed container is
// a dropped strong handle (its buffers and executor are released, not kept
// around for every future tick's scan).
func (co *Coordinator) unregister(c *container.Container) {
	co.mu.Lock()
	defer co.mu.Unlock()
	for i, e := range co.containers {
		if e.c == c {
			co.containers = append(co.containers[:i:i], co.containers[i+1:]...)
			return
		}
	}
}

// reconcileFocus scans containers in creation order for the first that is
// VISIBLE && !HIDDEN && !DESTROYED and issues a FOCUS request against it.
// If none qualifies, no container is focused.
func (co *Coordinator) reconcileFocus() {
	co.mu.Lock()
	entries := append([]*entry(nil), co.containers...)
	co.mu.Unlock()

	for _, e := range entries {
		st := e.c.State()
		if st.HasAll(container.Visible) && st.HasNone(container.Hidden) && st.HasNone(container.Destroyed) {
			e.c.RequestFocus()
			return
		}
	}
}

func (co *Coordinator) markDirtyIfFocused(c *container.Container) {
	co.mu.Lock()
	defer co.mu.Unlock()
	if co.focused == c {
		co.isDirty = true
		co.dirtyGen = co.generation
	}
}
