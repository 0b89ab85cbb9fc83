package container

// RequestShow sets SHOW_REQUESTED and notifies the owner (coordinator) that
// this container has pending work.
func (c *Container) RequestShow() {
	c.state.Add(ShowRequested)
	c.requestMade()
}

// RequestHide sets HIDE_REQUESTED.
func (c *Container) RequestHide() {
	c.state.Add(HideRequested)
	c.requestMade()
}

// RequestFocus sets FOCUS_REQUESTED. Granting is gated by the coordinator on
// VISIBLE && !HIDDEN.
func (c *Container) RequestFocus() {
	c.state.Add(FocusRequested)
	c.requestMade()
}

// RequestMaximize sets MAXIMIZE_REQUESTED. Granting is gated on FOCUSED.
func (c *Container) RequestMaximize() {
	c.state.Add(MaximizeRequested)
	c.requestMade()
}

// RequestRestore sets RESTORE_REQUESTED. Granting is gated on MAXIMIZED.
func (c *Container) RequestRestore() {
	c.state.Add(RestoreRequested)
	c.requestMade()
}

// RequestDestroy sets DESTROY_REQUESTED. Always granted by the coordinator.
func (c *Container) RequestDestroy() {
	c.state.Add(DestroyRequested)
	c.requestMade()
}

// RequestRender sets RENDER_REQUESTED.
func (c *Container) RequestRender() {
	c.state.Add(RenderRequested)
	c.requestMade()
}

// RequestUpdate sets UPDATE_REQUESTED.
func (c *Container) RequestUpdate() {
	c.state.Add(UpdateRequested)
	c.requestMade()
}
