package container

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"termstage/cell"
)

func newTestContainer(w, h int) *Container {
	return New("test", "", "renderer-1", w, h, nil)
}

func fixedTime() time.Time {
	return time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
}

func TestInitialBackBufferIsSentinelSeeded(t *testing.T) {
	c := newTestContainer(4, 2)
	snap := c.SnapshotRenderableState(0)
	for _, pc := range snap.PrevCells {
		require.Equal(t, cell.Sentinel, pc)
	}
	for _, fc := range snap.Cells {
		require.Equal(t, cell.Empty, fc)
	}
}

func TestPrintAtClipsOutsideBounds(t *testing.T) {
	c := newTestContainer(5, 3)
	c.PrintAt(3, 0, "hello", cell.Style{})

	snap := c.SnapshotRenderableState(0)
	// "hello" at x=3 in a width-5 buffer: only 'h','e' fit (cols 3,4).
	require.Equal(t, 'h', snap.Cells[0*5+3].Glyph)
	require.Equal(t, 'e', snap.Cells[0*5+4].Glyph)

	// Nothing should have been written at row 1 or 2 (outside the print).
	for y := 1; y < 3; y++ {
		for x := 0; x < 5; x++ {
			require.Equal(t, cell.Empty, snap.Cells[y*5+x])
		}
	}
}

func TestPrintAtNegativeYIsNoop(t *testing.T) {
	c := newTestContainer(5, 3)
	c.PrintAt(0, -1, "x", cell.Style{})
	c.PrintAt(0, 3, "x", cell.Style{})

	snap := c.SnapshotRenderableState(0)
	for _, fc := range snap.Cells {
		require.Equal(t, cell.Empty, fc)
	}
}

func TestCommitRenderCopiesFrontToBack(t *testing.T) {
	c := newTestContainer(3, 1)
	c.PrintAt(0, 0, "x", cell.Style{})
	c.CommitRender()

	snap := c.SnapshotRenderableState(0)
	require.Equal(t, snap.Cells, snap.PrevCells)
}

func TestCommitRenderIsIdempotent(t *testing.T) {
	c := newTestContainer(3, 1)
	c.PrintAt(0, 0, "x", cell.Style{})
	c.CommitRender()
	first := c.SnapshotRenderableState(0)

	c.CommitRender() // no intervening mutation
	second := c.SnapshotRenderableState(0)

	require.Equal(t, first.Cells, second.Cells)
	require.Equal(t, first.PrevCells, second.PrevCells)
	require.Equal(t, second.Cells, second.PrevCells)
}

func TestBatchIsAtomicWithRespectToIntermediateState(t *testing.T) {
	c := newTestContainer(10, 1)
	c.Batch([]Command{
		{Kind: CmdPrintAt, X: 0, Y: 0, Text: "A"},
		{Kind: CmdPrintAt, X: 1, Y: 0, Text: "B"},
		{Kind: CmdPrintAt, X: 2, Y: 0, Text: "C"},
	})

	snap := c.SnapshotRenderableState(0)
	require.Equal(t, "ABC", string([]rune{snap.Cells[0].Glyph, snap.Cells[1].Glyph, snap.Cells[2].Glyph}))
}

func TestResizePreservesOverlapAndClampsCursor(t *testing.T) {
	c := newTestContainer(10, 10)
	c.PrintAt(0, 0, "x", cell.Style{})
	c.MoveCursor(9, 9)

	c.Resize(5, 5)

	snap := c.SnapshotRenderableState(0)
	require.Equal(t, 'x', snap.Cells[0].Glyph)
	require.Equal(t, 4, snap.CursorX)
	require.Equal(t, 4, snap.CursorY)
	require.Equal(t, 5, snap.Width)
	require.Equal(t, 5, snap.Height)
}

func TestDrawBoxSubRegionClipping(t *testing.T) {
	c := newTestContainer(20, 5)
	rr := Rect{X: 5, Y: 0, W: 10, H: 5}
	c.DrawBox(Rect{X: 0, Y: 0, W: 20, H: 5}, &rr, "", TopLeft, SingleLine)

	snap := c.SnapshotRenderableState(0)
	at := func(x, y int) cell.Cell { return snap.Cells[y*20+x] }

	for x := 5; x < 15; x++ {
		require.Equal(t, SingleLine.H, at(x, 0).Glyph, "x=%d row0", x)
		require.Equal(t, SingleLine.H, at(x, 4).Glyph, "x=%d row4", x)
	}
	require.Equal(t, cell.Empty, at(0, 0))
	require.Equal(t, cell.Empty, at(19, 0))
	require.Equal(t, cell.Empty, at(0, 4))
	require.Equal(t, cell.Empty, at(19, 4))
	require.Equal(t, cell.Empty, at(2, 0))
	require.Equal(t, cell.Empty, at(16, 4))
}

func TestDrawBoxDisjointRenderRectIsNoop(t *testing.T) {
	c := newTestContainer(20, 5)
	rr := Rect{X: 100, Y: 100, W: 5, H: 5}
	c.DrawBox(Rect{X: 0, Y: 0, W: 20, H: 5}, &rr, "title", TopCenter, SingleLine)

	snap := c.SnapshotRenderableState(0)
	for _, fc := range snap.Cells {
		require.Equal(t, cell.Empty, fc)
	}
}

func TestDrawProgressBarEighthResolution(t *testing.T) {
	c := newTestContainer(8, 1)
	c.DrawProgressBar(0, 0, 8, 0.4375, cell.Style{})

	snap := c.SnapshotRenderableState(0)
	full := []rune(" ▏▎▍▌▋▊▉█")
	for i := 0; i < 3; i++ {
		require.Equal(t, full[8], snap.Cells[i].Glyph)
	}
	require.Equal(t, full[4], snap.Cells[3].Glyph)
	for i := 4; i < 8; i++ {
		require.Equal(t, ' ', snap.Cells[i].Glyph)
		require.Equal(t, cell.Style{}, snap.Cells[i].Style)
	}
}

func TestShouldRenderRequiresVisibleNotHiddenNotErrorNotDestroyed(t *testing.T) {
	c := newTestContainer(1, 1)
	require.False(t, c.ShouldRender())

	c.State().Add(Visible)
	require.True(t, c.ShouldRender())

	c.State().Add(Hidden)
	require.False(t, c.ShouldRender())
	c.State().Remove(Hidden)

	c.State().Add(ErrorFlag)
	require.False(t, c.ShouldRender())
	c.State().Remove(ErrorFlag)

	c.State().Add(Destroyed)
	require.False(t, c.ShouldRender())
}

func TestRequestMadeCallbackFires(t *testing.T) {
	var notified *Container
	c := New("t", "", "r", 1, 1, func(cc *Container) { notified = cc })

	c.RequestShow()

	require.Same(t, c, notified)
	require.True(t, c.State().Has(ShowRequested))
}

func TestFailureTrackerEscalatesWithinWindow(t *testing.T) {
	c := newTestContainer(1, 1)
	now := fixedTime()

	c.RecordRenderFailure(now)
	c.RecordRenderFailure(now.Add(time.Millisecond))
	c.RecordRenderFailure(now.Add(2 * time.Millisecond))

	count, _ := c.FailureStatus()
	require.Equal(t, 3, count)

	c.RecordRenderSuccess()
	count, _ = c.FailureStatus()
	require.Equal(t, 0, count)
}
