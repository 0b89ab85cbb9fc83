// Package container implements the cell-buffer container: a full-terminal
// logical display surface with its own front/back buffers, cursor, draw
// command set, and lifecycle state machine.
package container

import (
	"github.com/google/uuid"

	"termstage/cell"
	"termstage/state"
)

// ID is the opaque, globally unique container identifier. container.New
// generates one with NewID for every container it creates; the renderer
// does not generate or track IDs.
type ID struct{ uuid uuid.UUID }

// NewID generates a fresh, globally unique container ID.
func NewID() ID { return ID{uuid: uuid.New()} }

func (id ID) String() string { return id.uuid.String() }

// IsZero reports whether id is the zero ID (never assigned).
func (id ID) IsZero() bool { return id.uuid == uuid.Nil }

// Rect is an axis-aligned rectangle in local (top-left origin) coordinates.
type Rect struct {
	X, Y, W, H int
}

// Intersect returns the overlap of r and other. The result has W<=0 or H<=0
// if the rectangles are disjoint.
func (r Rect) Intersect(other Rect) Rect {
	x0 := maxInt(r.X, other.X)
	y0 := maxInt(r.Y, other.Y)
	x1 := minInt(r.X+r.W, other.X+other.W)
	y1 := minInt(r.Y+r.H, other.Y+other.H)
	if x1 <= x0 || y1 <= y0 {
		return Rect{}
	}
	return Rect{X: x0, Y: y0, W: x1 - x0, H: y1 - y0}
}

// Empty reports whether r has no area.
func (r Rect) Empty() bool { return r.W <= 0 || r.H <= 0 }

// Contains reports whether (x,y) falls within r.
func (r Rect) Contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

// TitlePos selects where a draw_box title is rendered: which row (the top
// border, the vertical middle of the box, or the bottom border) and
// horizontal alignment within it.
type TitlePos int

const (
	TopLeft TitlePos = iota
	TopCenter
	TopRight
	CenterLeft
	CenterCenter
	CenterRight
	BottomLeft
	BottomCenter
	BottomRight
)

// BoxStyle names the six glyphs a box border is drawn with.
type BoxStyle struct {
	H, V, TL, TR, BL, BR rune
}

// SingleLine is the default box-drawing glyph set.
var SingleLine = BoxStyle{H: '─', V: '│', TL: '┌', TR: '┐', BL: '└', BR: '┘'}

// DoubleLine is a heavier box-drawing glyph set.
var DoubleLine = BoxStyle{H: '═', V: '║', TL: '╔', TR: '╗', BL: '╚', BR: '╝'}

// TextAlign selects horizontal alignment for draw_text_block.
type TextAlign int

const (
	AlignLeft TextAlign = iota
	AlignCenter
	AlignRight
)

// progressGlyphs are the 9 block glyphs used for eighth-resolution progress
// bars, from empty to full.
var progressGlyphs = []rune(" ▏▎▍▌▋▊▉█")

// Event is the application-facing surface: keyboard events dispatched to
// the focused container, and lifecycle notifications for any container.
type Event interface{ isEvent() }

type KeyDownEvent struct {
	HID int
	Mod int
}
type KeyUpEvent struct {
	HID int
	Mod int
}
type KeyCharEvent struct {
	Codepoint rune
	Mod       int
}

type ContainerShown struct{}
type ContainerHidden struct{}
type ContainerFocusGained struct{}
type ContainerFocusLost struct{}
type ContainerMaximized struct{}
type ContainerRestored struct{}
type ContainerResized struct{ W, H int }
type ContainerClosed struct{}

func (KeyDownEvent) isEvent()          {}
func (KeyUpEvent) isEvent()            {}
func (KeyCharEvent) isEvent()          {}
func (ContainerShown) isEvent()        {}
func (ContainerHidden) isEvent()       {}
func (ContainerFocusGained) isEvent()  {}
func (ContainerFocusLost) isEvent()    {}
func (ContainerMaximized) isEvent()    {}
func (ContainerRestored) isEvent()     {}
func (ContainerResized) isEvent()      {}
func (ContainerClosed) isEvent()       {}

// RenderableState is the stable snapshot handed from a Container to the
// Renderer for a single render attempt. Its cells/prevCells slices are
// owned by the container and must not be mutated by the renderer.
type RenderableState struct {
	Width, Height int
	CursorX       int
	CursorY       int
	CursorVisible bool
	Cells         []cell.Cell
	PrevCells     []cell.Cell
	Generation    uint64
}

// stateFlags re-exports the shared flag constants under container-friendly
// names so call sites read "container.Visible" rather than "state.Visible".
const (
	Visible           = state.Visible
	Hidden            = state.Hidden
	Focused           = state.Focused
	Maximized         = state.Maximized
	Destroyed         = state.Destroyed
	ErrorFlag         = state.Error
	RenderError       = state.RenderError
	RenderRequested   = state.RenderRequested
	UpdateRequested   = state.UpdateRequested
	FocusRequested    = state.FocusRequested
	ShowRequested     = state.ShowRequested
	HideRequested     = state.HideRequested
	MaximizeRequested = state.MaximizeRequested
	RestoreRequested  = state.RestoreRequested
	DestroyRequested  = state.DestroyRequested
	EventStreamReady  = state.EventStreamReady
)
