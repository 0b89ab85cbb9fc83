package container

import (
	"termstage/cell"

	runewidth "github.com/mattn/go-runewidth"
)

// All do* methods assume c.mu is already held by the caller (see
// container_api.go and applyCommand in commands.go, which call them only
// from inside an executor-submitted job).

func (c *Container) doClear() {
	c.front.fill(Rect{W: c.front.width, H: c.front.height}, cell.Empty)
	c.cursorX, c.cursorY = 0, 0
}

func (c *Container) doPrint(text string, style cell.Style, newline bool) {
	x, y := c.cursorX, c.cursorY
	for _, r := range text {
		if y >= c.front.height {
			break
		}
		if r == '\n' {
			x = 0
			y++
			continue
		}
		c.front.set(x, y, cell.Cell{Glyph: r, Style: style})
		x++
		if x >= c.front.width {
			x = 0
			y++
		}
	}
	if newline {
		x = 0
		y++
	}
	c.cursorX, c.cursorY = clampCursor(x, y, c.front.width, c.front.height)
}

func (c *Container) doPrintAt(x, y int, text string, style cell.Style) {
	if y < 0 || y >= c.front.height {
		return
	}
	col := x
	for _, r := range text {
		if col < 0 {
			col++
			continue
		}
		if col >= c.front.width {
			break
		}
		c.front.set(col, y, cell.Cell{Glyph: r, Style: style})
		col++
	}
}

func (c *Container) doMoveCursor(x, y int) {
	c.cursorX, c.cursorY = clampCursor(x, y, c.front.width, c.front.height)
}

func clampCursor(x, y, width, height int) (int, int) {
	if width <= 0 || height <= 0 {
		return 0, 0
	}
	if x < 0 {
		x = 0
	}
	if x >= width {
		x = width - 1
	}
	if y < 0 {
		y = 0
	}
	if y >= height {
		y = height - 1
	}
	return x, y
}

func (c *Container) doShowCursor() { c.cursorVisible = true }
func (c *Container) doHideCursor() { c.cursorVisible = false }

func (c *Container) doClearLine() { c.doClearLineAt(c.cursorY) }

func (c *Container) doClearLineAt(y int) {
	if y < 0 || y >= c.front.height {
		return
	}
	c.front.fill(Rect{X: 0, Y: y, W: c.front.width, H: 1}, cell.Empty)
}

func (c *Container) doClearRegion(r Rect) {
	c.front.fill(r, cell.Empty)
}

func (c *Container) doFillRegion(r Rect, glyph rune, style cell.Style) {
	c.front.fill(r, cell.Cell{Glyph: glyph, Style: style})
}

func (c *Container) doShadeRegion(r Rect, glyph rune, style cell.Style) {
	// Unlike fill_region, shade_region overlays style onto whatever glyph is
	// already present (a "wash" over existing content) unless the existing
	// cell is empty, in which case it paints glyph so an empty area still
	// reads as shaded.
	clipped := r.Intersect(Rect{W: c.front.width, H: c.front.height})
	if clipped.Empty() {
		return
	}
	for y := clipped.Y; y < clipped.Y+clipped.H; y++ {
		for x := clipped.X; x < clipped.X+clipped.W; x++ {
			existing := c.front.at(x, y)
			g := existing.Glyph
			if g == 0 {
				g = glyph
			}
			c.front.set(x, y, cell.Cell{Glyph: g, Style: style})
		}
	}
}

func (c *Container) doDrawHLine(x, y, length int) {
	if y < 0 || y >= c.front.height {
		return
	}
	for i := 0; i < length; i++ {
		c.front.set(x+i, y, cell.Cell{Glyph: '─'})
	}
}

func (c *Container) doDrawVLine(x, y, length int) {
	if x < 0 || x >= c.front.width {
		return
	}
	for i := 0; i < length; i++ {
		c.front.set(x, y+i, cell.Cell{Glyph: '│'})
	}
}

// doDrawBox draws the border of rect with the six BoxStyle glyphs, centers
// or aligns an optional title into the row/alignment named by titlePos, and
// clips every write to the intersection of rect and renderRect (when
// renderRect is non-nil). A renderRect disjoint from rect makes every write
// fail the clip test, i.e. a silent no-op render (resolves spec Open
// Question (c)).
func (c *Container) doDrawBox(rect Rect, renderRect *Rect, title string, titlePos TitlePos, style BoxStyle) {
	clip := rect
	if renderRect != nil {
		clip = rect.Intersect(*renderRect)
	}
	put := func(x, y int, glyph rune) {
		if !clip.Contains(x, y) {
			return
		}
		c.front.set(x, y, cell.Cell{Glyph: glyph})
	}

	left, top := rect.X, rect.Y
	right, bottom := rect.X+rect.W-1, rect.Y+rect.H-1
	if rect.W <= 0 || rect.H <= 0 {
		return
	}

	for x := left + 1; x < right; x++ {
		put(x, top, style.H)
		put(x, bottom, style.H)
	}
	for y := top + 1; y < bottom; y++ {
		put(left, y, style.V)
		put(right, y, style.V)
	}
	put(left, top, style.TL)
	put(right, top, style.TR)
	put(left, bottom, style.BL)
	put(right, bottom, style.BR)

	if title == "" {
		return
	}
	row, interior := titleRowAndWidth(rect, titlePos)
	startX := titleStartX(rect, interior, title, titlePos)
	col := startX
	for _, r := range title {
		if col >= rect.X+rect.W-1 {
			break
		}
		put(col, row, r)
		col++
	}
}

func titleRowAndWidth(rect Rect, pos TitlePos) (row, interiorWidth int) {
	interiorWidth = rect.W - 2
	switch pos {
	case TopLeft, TopCenter, TopRight:
		return rect.Y, interiorWidth
	case BottomLeft, BottomCenter, BottomRight:
		return rect.Y + rect.H - 1, interiorWidth
	default: // Center*
		return rect.Y + rect.H/2, interiorWidth
	}
}

func titleStartX(rect Rect, interiorWidth int, title string, pos TitlePos) int {
	titleW := runewidth.StringWidth(title)
	inner := rect.X + 1
	switch pos {
	case TopLeft, CenterLeft, BottomLeft:
		return inner
	case TopRight, CenterRight, BottomRight:
		x := inner + interiorWidth - titleW
		if x < inner {
			x = inner
		}
		return x
	default: // *Center
		x := inner + (interiorWidth-titleW)/2
		if x < inner {
			x = inner
		}
		return x
	}
}

// doDrawPanel draws a bordered box and fills its interior with style.
func (c *Container) doDrawPanel(rect Rect, title string, style cell.Style, border BoxStyle) {
	c.front.fill(Rect{X: rect.X + 1, Y: rect.Y + 1, W: rect.W - 2, H: rect.H - 2}, cell.Cell{Glyph: ' ', Style: style})
	c.doDrawBox(rect, nil, title, TopLeft, border)
}

// doDrawBorderedText draws a bordered box and word-wraps text into its
// interior.
func (c *Container) doDrawBorderedText(rect Rect, text string, border BoxStyle, textStyle cell.Style) {
	c.doDrawBox(rect, nil, "", TopLeft, border)
	interior := Rect{X: rect.X + 1, Y: rect.Y + 1, W: rect.W - 2, H: rect.H - 2}
	c.doDrawTextBlock(interior, text, AlignLeft, textStyle)
}

// doDrawButton draws a bracketed label, reversed when selected.
func (c *Container) doDrawButton(x, y int, label string, style cell.Style, selected bool) {
	if selected {
		style = style.WithAttr(cell.AttrInverse)
	}
	text := "[ " + label + " ]"
	c.doPrintAt(x, y, text, style)
}

// doDrawProgressBar renders progress (clamped to [0,1]) across width cells
// starting at (x,y) using eighth-resolution block glyphs.
func (c *Container) doDrawProgressBar(x, y, width int, progress float64, style cell.Style) {
	if y < 0 || y >= c.front.height {
		return
	}
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	exact := progress * float64(width)
	fullBlocks := int(exact)
	partialIndex := int(roundHalfAwayFromZero((exact - float64(fullBlocks)) * 8))
	if partialIndex >= 8 && fullBlocks < width {
		fullBlocks++
		partialIndex = 0
	}

	for i := 0; i < width; i++ {
		var glyph rune
		switch {
		case i < fullBlocks:
			glyph = progressGlyphs[8]
		case i == fullBlocks && partialIndex > 0:
			glyph = progressGlyphs[partialIndex]
		default:
			glyph = ' '
		}
		st := style
		if glyph == ' ' {
			st = cell.Style{}
		}
		c.front.set(x+i, y, cell.Cell{Glyph: glyph, Style: st})
	}
}

func roundHalfAwayFromZero(f float64) float64 {
	if f >= 0 {
		return float64(int(f + 0.5))
	}
	return float64(int(f - 0.5))
}

// doDrawTextBlock word-wraps text into rect, aligning each wrapped line per
// align, clipping to rect.H lines.
func (c *Container) doDrawTextBlock(rect Rect, text string, align TextAlign, style cell.Style) {
	if rect.W <= 0 || rect.H <= 0 {
		return
	}
	lines := wordWrap(text, rect.W)
	for i, line := range lines {
		if i >= rect.H {
			break
		}
		lineW := runewidth.StringWidth(line)
		x := rect.X
		switch align {
		case AlignCenter:
			x = rect.X + (rect.W-lineW)/2
		case AlignRight:
			x = rect.X + rect.W - lineW
		}
		if x < rect.X {
			x = rect.X
		}
		c.doPrintAt(x, rect.Y+i, line, style)
	}
}

// wordWrap breaks text into lines no wider than width, breaking on spaces
// where possible and hard-breaking words longer than width.
func wordWrap(text string, width int) []string {
	if width <= 0 {
		return nil
	}
	var lines []string
	for _, paragraph := range splitLines(text) {
		words := splitWords(paragraph)
		if len(words) == 0 {
			lines = append(lines, "")
			continue
		}
		var cur string
		for _, w := range words {
			candidate := w
			if cur != "" {
				candidate = cur + " " + w
			}
			if runewidth.StringWidth(candidate) <= width {
				cur = candidate
				continue
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
			}
			for runewidth.StringWidth(w) > width {
				cut := hardBreak(w, width)
				lines = append(lines, cut)
				w = w[len(cut):]
			}
			cur = w
		}
		if cur != "" {
			lines = append(lines, cur)
		}
	}
	return lines
}

func splitLines(s string) []string {
	var out []string
	start := 0
	for i, r := range s {
		if r == '\n' {
			out = append(out, s[start:i])
			start = i + 1
		}
	}
	out = append(out, s[start:])
	return out
}

func splitWords(s string) []string {
	var out []string
	var cur []rune
	for _, r := range s {
		if r == ' ' {
			if len(cur) > 0 {
				out = append(out, string(cur))
				cur = nil
			}
			continue
		}
		cur = append(cur, r)
	}
	if len(cur) > 0 {
		out = append(out, string(cur))
	}
	return out
}

func hardBreak(w string, width int) string {
	runes := []rune(w)
	n := 0
	for i := range runes {
		if runewidth.StringWidth(string(runes[:i+1])) > width {
			break
		}
		n = i + 1
	}
	if n == 0 {
		n = 1
	}
	return string(runes[:n])
}
