package container

import "termstage/cell"

// submit runs fn on the container's serialized executor with c.mu held,
// blocking until it completes. Every public draw/lifecycle operation goes
// through this so commands execute in submission order and a batch can run
// atomically without any render observing a partial batch.
func (c *Container) submit(fn func()) {
	c.exec.Submit(func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		fn()
	})
}

func (c *Container) Clear() { c.submit(c.doClear) }

func (c *Container) Print(text string, style cell.Style, newline bool) {
	c.submit(func() { c.doPrint(text, style, newline) })
}

func (c *Container) Println(text string, style cell.Style) {
	c.Print(text, style, true)
}

func (c *Container) PrintAt(x, y int, text string, style cell.Style) {
	c.submit(func() { c.doPrintAt(x, y, text, style) })
}

func (c *Container) MoveCursor(x, y int) {
	c.submit(func() { c.doMoveCursor(x, y) })
}

func (c *Container) ShowCursor() { c.submit(c.doShowCursor) }
func (c *Container) HideCursor() { c.submit(c.doHideCursor) }

func (c *Container) ClearLine() { c.submit(c.doClearLine) }

func (c *Container) ClearLineAt(y int) {
	c.submit(func() { c.doClearLineAt(y) })
}

func (c *Container) ClearRegion(r Rect) {
	c.submit(func() { c.doClearRegion(r) })
}

func (c *Container) DrawBox(rect Rect, renderRect *Rect, title string, titlePos TitlePos, style BoxStyle) {
	c.submit(func() { c.doDrawBox(rect, renderRect, title, titlePos, style) })
}

func (c *Container) DrawHLine(x, y, length int) {
	c.submit(func() { c.doDrawHLine(x, y, length) })
}

func (c *Container) DrawVLine(x, y, length int) {
	c.submit(func() { c.doDrawVLine(x, y, length) })
}

func (c *Container) FillRegion(r Rect, glyph rune, style cell.Style) {
	c.submit(func() { c.doFillRegion(r, glyph, style) })
}

func (c *Container) ShadeRegion(r Rect, glyph rune, style cell.Style) {
	c.submit(func() { c.doShadeRegion(r, glyph, style) })
}

func (c *Container) DrawPanel(rect Rect, title string, style cell.Style, border BoxStyle) {
	c.submit(func() { c.doDrawPanel(rect, title, style, border) })
}

func (c *Container) DrawBorderedText(rect Rect, text string, border BoxStyle, textStyle cell.Style) {
	c.submit(func() { c.doDrawBorderedText(rect, text, border, textStyle) })
}

func (c *Container) DrawButton(x, y int, label string, style cell.Style, selected bool) {
	c.submit(func() { c.doDrawButton(x, y, label, style, selected) })
}

func (c *Container) DrawProgressBar(x, y, width int, progress float64, style cell.Style) {
	c.submit(func() { c.doDrawProgressBar(x, y, width, progress, style) })
}

func (c *Container) DrawTextBlock(rect Rect, text string, align TextAlign, style cell.Style) {
	c.submit(func() { c.doDrawTextBlock(rect, text, align, style) })
}

// Batch executes every command in cmds serially on the executor, then
// requests a single render. Because all of it runs inside one submit, no
// render snapshot can observe a mid-batch state.
func (c *Container) Batch(cmds []Command) {
	c.submit(func() {
		for _, cmd := range cmds {
			c.applyCommand(cmd)
		}
	})
	c.RequestRender()
}

// Resize reallocates both buffers to the new dimensions, preserving the
// overlapping region, clamps the cursor, emits ContainerResized, and
// requests a render. prev_cells keeps its overlapping region and fills the
// newly exposed area with the sentinel cell, so that area is always
// repainted rather than diffed against stale content.
func (c *Container) Resize(width, height int) {
	c.submit(func() {
		c.front.resize(width, height, cell.Empty)
		c.back.resize(width, height, cell.Sentinel)
		c.cursorX, c.cursorY = clampCursor(c.cursorX, c.cursorY, width, height)
	})
	c.EmitEvent(ContainerResized{W: width, H: height})
	c.RequestRender()
}
