// Package renderer implements the TTY driver: the sole owner of the
// terminal's raw mode, alternate screen buffer, and the differential ANSI
// render algorithm that turns a container's cell snapshot into the minimal
// byte sequence that reproduces it on screen.
package renderer

import (
	"bufio"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"unicode/utf8"

	"golang.org/x/sys/unix"

	"termstage/cell"
	"termstage/container"
)

// TTY owns the terminal file descriptor and writer. Only TTY emits bytes to
// the terminal outside of diagnostic logging.
type TTY struct {
	in    *os.File
	outFd *os.File
	out   *bufio.Writer

	mu          sync.Mutex
	origTermios *unix.Termios

	truecolor bool

	curStyle    cell.Style
	styleActive bool

	haveRendered   bool
	lastGeneration uint64

	log *slog.Logger
}

// New wraps the given input/output files (normally os.Stdin/os.Stdout) as a
// TTY driver. log defaults to slog.Default() when nil.
func New(in, out *os.File, log *slog.Logger) *TTY {
	if log == nil {
		log = slog.Default()
	}
	return &TTY{
		in:        in,
		outFd:     out,
		out:       bufio.NewWriterSize(out, 64*1024),
		truecolor: detectTruecolor(),
		log:       log,
	}
}

func detectTruecolor() bool {
	if strings.Contains(os.Getenv("COLORTERM"), "truecolor") {
		return true
	}
	term := os.Getenv("TERM")
	return strings.Contains(term, "256color") || strings.Contains(term, "direct")
}

// Initialize switches to the alternate screen buffer, puts the terminal
// into the fixed raw-attribute set (ICANON, ECHO, ISIG, IEXTEN off; VMIN=0,
// VTIME=1), hides the cursor, and clears the screen.
func (t *TTY) Initialize() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	fd := int(t.in.Fd())
	orig, err := unix.IoctlGetTermios(fd, unix.TCGETS)
	if err != nil {
		return fmt.Errorf("renderer: get termios: %w", err)
	}
	t.origTermios = orig

	raw := *orig
	raw.Lflag &^= unix.ICANON | unix.ECHO | unix.ISIG | unix.IEXTEN
	raw.Cc[unix.VMIN] = 0
	raw.Cc[unix.VTIME] = 1
	if err := unix.IoctlSetTermios(fd, unix.TCSETS, &raw); err != nil {
		return fmt.Errorf("renderer: set raw mode: %w", err)
	}

	t.out.WriteString("\x1b[?1049h")
	t.out.WriteString("\x1b[?25l")
	t.out.WriteString("\x1b[2J\x1b[H")
	return t.out.Flush()
}

// Shutdown resets SGR, shows the cursor, exits the alternate screen buffer,
// flushes the writer, and restores the saved terminal attributes. It does
// not close the input or output file. The caller must
// ensure no Render call is still in flight (coordinator.Coordinator.Stop
// waits out any in-progress render attempt before returning) since Shutdown
// shares TTY's output lock with Render.
func (t *TTY) Shutdown() error {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.out.WriteString("\x1b[0m")
	t.out.WriteString("\x1b[?25h")
	t.out.WriteString("\x1b[?1049l")
	if err := t.out.Flush(); err != nil {
		t.log.Debug("renderer shutdown flush failed", "error", err)
	}
	if t.origTermios != nil {
		if err := unix.IoctlSetTermios(int(t.in.Fd()), unix.TCSETS, t.origTermios); err != nil {
			return fmt.Errorf("renderer: restore termios: %w", err)
		}
	}
	return nil
}

// Reader exposes the raw input file for the InputDecoder's read loop. The
// TTY owns terminal mode, not stdin reads themselves, so input.Decoder can
// wrap this directly.
func (t *TTY) Reader() io.Reader { return t.in }

// Render writes the minimal ANSI byte sequence that transforms the
// terminal's visible contents from state.PrevCells to state.Cells, per the
// differential render algorithm. It never mutates state.PrevCells — commit
// is the container's responsibility.
//
// A generation change since the last render (a focus change or a resize)
// forces every cell to be treated as changed: the terminal's actual
// visible contents no longer correspond to whatever this snapshot's
// PrevCells happens to hold, so a cell-by-cell match against PrevCells
// would under-paint.
func (t *TTY) Render(state container.RenderableState) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	forceFull := t.haveRendered && state.Generation != t.lastGeneration

	buf := make([]byte, 0, 1024)
	buf = append(buf, "\x1b[?25l"...)

	t.styleActive = false
	lastX, lastY := -1, -1

	for y := 0; y < state.Height; y++ {
		rowOff := y * state.Width
		for x := 0; x < state.Width; x++ {
			idx := rowOff + x
			cur := state.Cells[idx]
			if !forceFull && cur == state.PrevCells[idx] {
				continue
			}
			if lastX != x || lastY != y {
				buf = appendCursorPos(buf, y+1, x+1)
				lastX, lastY = x, y
			}
			if !t.styleActive || cur.Style != t.curStyle {
				buf = append(buf, "\x1b[0m"...)
				st := cur.Style
				if !t.truecolor {
					st = cell.Downgrade(st)
				}
				buf = cell.AppendSGR(buf, st)
				t.curStyle = cur.Style
				t.styleActive = true
			}
			glyph := cur.Glyph
			if glyph == 0 {
				glyph = ' '
			}
			buf = utf8.AppendRune(buf, glyph)
			lastX++
		}
	}

	buf = append(buf, "\x1b[0m"...)
	if state.CursorVisible {
		buf = appendCursorPos(buf, state.CursorY+1, state.CursorX+1)
		buf = append(buf, "\x1b[?25h"...)
	}

	if _, err := t.out.Write(buf); err != nil {
		return fmt.Errorf("renderer: write: %w", err)
	}
	if err := t.out.Flush(); err != nil {
		return err
	}
	t.haveRendered = true
	t.lastGeneration = state.Generation
	return nil
}

func appendCursorPos(buf []byte, row, col int) []byte {
	buf = append(buf, '\x1b', '[')
	buf = appendInt(buf, row)
	buf = append(buf, ';')
	buf = appendInt(buf, col)
	buf = append(buf, 'H')
	return buf
}

func appendInt(buf []byte, n int) []byte {
	if n == 0 {
		return append(buf, '0')
	}
	start := len(buf)
	for n > 0 {
		buf = append(buf, byte('0'+n%10))
		n /= 10
	}
	// reverse the digits just appended
	for i, j := start, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return buf
}

// Size returns the current terminal dimensions in columns and rows.
func (t *TTY) Size() (cols, rows int, err error) {
	ws, err := unix.IoctlGetWinsize(int(t.outFd.Fd()), unix.TIOCGWINSZ)
	if err != nil {
		return 0, 0, err
	}
	return int(ws.Col), int(ws.Row), nil
}
