package renderer

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"termstage/cell"
	"termstage/container"
)

func TestAppendCursorPosIsOneBased(t *testing.T) {
	buf := appendCursorPos(nil, 1, 1)
	require.Equal(t, "\x1b[1;1H", string(buf))

	buf = appendCursorPos(nil, 24, 80)
	require.Equal(t, "\x1b[24;80H", string(buf))
}

func TestRenderOnlyEmitsChangedCells(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	tty := New(r, w, nil)

	prev := []cell.Cell{cell.Sentinel, cell.Sentinel, cell.Sentinel}
	cur := []cell.Cell{
		{Glyph: 'a', Style: cell.Style{}},
		cell.Sentinel,
		{Glyph: 'b', Style: cell.Style{}},
	}
	state := container.RenderableState{
		Width: 3, Height: 1,
		Cells: cur, PrevCells: prev,
		CursorVisible: false,
	}

	require.NoError(t, tty.Render(state))

	w.Close()
	var out bytes.Buffer
	out.ReadFrom(r)
	output := out.String()

	require.True(t, strings.Contains(output, "a"))
	require.True(t, strings.Contains(output, "b"))
	require.True(t, strings.Contains(output, "\x1b[1;1H"))
	require.True(t, strings.Contains(output, "\x1b[1;3H"))
}

func TestGenerationChangeForcesFullRepaint(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	tty := New(r, w, nil)

	same := []cell.Cell{{Glyph: 'x'}, {Glyph: 'y'}}
	require.NoError(t, tty.Render(container.RenderableState{
		Width: 2, Height: 1,
		Cells: same, PrevCells: same, Generation: 1,
	}))

	// Same cells, same PrevCells — but the generation advanced (a focus
	// change or resize happened in between), so every cell must still be
	// repainted rather than skipped.
	require.NoError(t, tty.Render(container.RenderableState{
		Width: 2, Height: 1,
		Cells: same, PrevCells: same, Generation: 2,
	}))

	w.Close()
	var out bytes.Buffer
	out.ReadFrom(r)
	require.True(t, strings.Contains(out.String(), "\x1b[1;1H"))
}

func TestRenderSkipsCellsThatMatchPrev(t *testing.T) {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	defer r.Close()
	defer w.Close()

	tty := New(r, w, nil)

	same := []cell.Cell{{Glyph: 'x'}, {Glyph: 'y'}}
	state := container.RenderableState{
		Width: 2, Height: 1,
		Cells: same, PrevCells: same,
	}
	require.NoError(t, tty.Render(state))

	w.Close()
	var out bytes.Buffer
	out.ReadFrom(r)
	// No cell differs, so only the leading hide-cursor and trailing reset
	// sequences should appear — no cursor-addressing escape.
	require.False(t, strings.Contains(out.String(), "H"))
}
