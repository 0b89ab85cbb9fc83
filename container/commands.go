package container

import "termstage/cell"

// CommandKind enumerates the recognized draw command kinds (see §6 command
// surface). Command is the structured record an application builds to
// describe a draw operation generically — used by Batch and by any
// transport that carries commands across a boundary (e.g. from an external
// messaging fabric) rather than calling typed Container methods directly.
type CommandKind int

const (
	CmdClear CommandKind = iota
	CmdPrint
	CmdPrintln
	CmdPrintAt
	CmdMoveCursor
	CmdShowCursor
	CmdHideCursor
	CmdClearLine
	CmdClearLineAt
	CmdClearRegion
	CmdDrawBox
	CmdDrawHLine
	CmdDrawVLine
	CmdFillRegion
	CmdDrawBorderedText
	CmdDrawPanel
	CmdDrawButton
	CmdDrawProgressBar
	CmdDrawTextBlock
	CmdShadeRegion
)

// Command is a generic draw command record. Only the fields relevant to
// Kind are consulted; any others present are ignored. If a field required
// by Kind is left at its zero value in a way that makes the command
// unexecutable (e.g. CmdPrintAt with empty Text), the
// command is silently skipped with a log entry — drawing commands never
// fail observably.
type Command struct {
	Kind CommandKind

	Text      string
	Style     cell.Style
	TextStyle cell.Style
	Newline   bool

	X, Y, Length, Width int
	Rect                Rect
	RenderRect          *Rect

	Glyph rune

	Title    string
	TitlePos TitlePos
	Border   BoxStyle

	Progress float64
	Align    TextAlign
	Selected bool
}

// applyCommand dispatches a single Command onto the container's buffer. It
// must run inside a submitted job (c.mu held) — see Batch.
func (c *Container) applyCommand(cmd Command) {
	switch cmd.Kind {
	case CmdClear:
		c.doClear()
	case CmdPrint:
		if cmd.Text == "" && !cmd.Newline {
			c.log.Debug("print command missing text, skipped")
			return
		}
		c.doPrint(cmd.Text, cmd.Style, cmd.Newline)
	case CmdPrintln:
		c.doPrint(cmd.Text, cmd.Style, true)
	case CmdPrintAt:
		if cmd.Text == "" {
			c.log.Debug("print_at command missing text, skipped")
			return
		}
		c.doPrintAt(cmd.X, cmd.Y, cmd.Text, cmd.Style)
	case CmdMoveCursor:
		c.doMoveCursor(cmd.X, cmd.Y)
	case CmdShowCursor:
		c.doShowCursor()
	case CmdHideCursor:
		c.doHideCursor()
	case CmdClearLine:
		c.doClearLine()
	case CmdClearLineAt:
		c.doClearLineAt(cmd.Y)
	case CmdClearRegion:
		if cmd.Rect.Empty() {
			c.log.Debug("clear_region command missing rect, skipped")
			return
		}
		c.doClearRegion(cmd.Rect)
	case CmdDrawBox:
		if cmd.Rect.Empty() {
			c.log.Debug("draw_box command missing rect, skipped")
			return
		}
		border := cmd.Border
		if border == (BoxStyle{}) {
			border = SingleLine
		}
		c.doDrawBox(cmd.Rect, cmd.RenderRect, cmd.Title, cmd.TitlePos, border)
	case CmdDrawHLine:
		if cmd.Length <= 0 {
			c.log.Debug("draw_hline command missing length, skipped")
			return
		}
		c.doDrawHLine(cmd.X, cmd.Y, cmd.Length)
	case CmdDrawVLine:
		if cmd.Length <= 0 {
			c.log.Debug("draw_vline command missing length, skipped")
			return
		}
		c.doDrawVLine(cmd.X, cmd.Y, cmd.Length)
	case CmdFillRegion:
		if cmd.Rect.Empty() {
			c.log.Debug("fill_region command missing rect, skipped")
			return
		}
		c.doFillRegion(cmd.Rect, cmd.Glyph, cmd.Style)
	case CmdDrawBorderedText:
		if cmd.Rect.Empty() {
			c.log.Debug("draw_bordered_text command missing rect, skipped")
			return
		}
		border := cmd.Border
		if border == (BoxStyle{}) {
			border = SingleLine
		}
		c.doDrawBorderedText(cmd.Rect, cmd.Text, border, cmd.TextStyle)
	case CmdDrawPanel:
		if cmd.Rect.Empty() {
			c.log.Debug("draw_panel command missing rect, skipped")
			return
		}
		border := cmd.Border
		if border == (BoxStyle{}) {
			border = SingleLine
		}
		c.doDrawPanel(cmd.Rect, cmd.Title, cmd.Style, border)
	case CmdDrawButton:
		if cmd.Text == "" {
			c.log.Debug("draw_button command missing label, skipped")
			return
		}
		c.doDrawButton(cmd.X, cmd.Y, cmd.Text, cmd.Style, cmd.Selected)
	case CmdDrawProgressBar:
		if cmd.Width <= 0 {
			c.log.Debug("draw_progress_bar command missing width, skipped")
			return
		}
		c.doDrawProgressBar(cmd.X, cmd.Y, cmd.Width, cmd.Progress, cmd.Style)
	case CmdDrawTextBlock:
		if cmd.Rect.Empty() {
			c.log.Debug("draw_text_block command missing rect, skipped")
			return
		}
		c.doDrawTextBlock(cmd.Rect, cmd.Text, cmd.Align, cmd.Style)
	case CmdShadeRegion:
		if cmd.Rect.Empty() {
			c.log.Debug("shade_region command missing rect, skipped")
			return
		}
		c.doShadeRegion(cmd.Rect, cmd.Glyph, cmd.Style)
	default:
		c.log.Debug("unrecognized command kind, skipped", "kind", cmd.Kind)
	}
}
