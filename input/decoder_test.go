package input

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

func collect(src []byte) []Event {
	var events []Event
	d := NewDecoder(bytes.NewReader(src), slog.Default(), nil)
	d.Run(func(e Event) { events = append(events, e) })
	return events
}

func TestS1SingleKeystroke(t *testing.T) {
	events := collect([]byte{0x61})
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDA, Mods: 0},
		{Kind: KeyChar, Codepoint: 'a', Mods: 0},
		{Kind: KeyUp, HID: HIDA, Mods: 0},
	}, events)
}

func TestS2ShiftedSymbol(t *testing.T) {
	events := collect([]byte{0x21}) // '!'
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDDigit1, Mods: ModShift},
		{Kind: KeyChar, Codepoint: '!', Mods: ModShift},
		{Kind: KeyUp, HID: HIDDigit1, Mods: ModShift},
	}, events)
}

func TestS3ArrowWithCtrlShift(t *testing.T) {
	events := collect([]byte("\x1b[1;6A"))
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDArrowUp, Mods: ModShift | ModControl},
		{Kind: KeyUp, HID: HIDArrowUp, Mods: ModShift | ModControl},
	}, events)
}

func TestS4UTF8Multibyte(t *testing.T) {
	events := collect([]byte{0xE2, 0x9C, 0x93}) // U+2713 checkmark
	require.Equal(t, []Event{
		{Kind: KeyChar, Codepoint: 0x2713, Mods: 0},
	}, events)
}

func TestControlCharEmitsDownUp(t *testing.T) {
	events := collect([]byte{1}) // Ctrl+A
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDA, Mods: ModControl},
		{Kind: KeyUp, HID: HIDA, Mods: ModControl},
	}, events)
}

func TestCtrlCInvokesShutdownCallback(t *testing.T) {
	var fired bool
	d := NewDecoder(bytes.NewReader([]byte{3}), slog.Default(), func() { fired = true })
	var events []Event
	d.Run(func(e Event) { events = append(events, e) })

	require.True(t, fired)
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDC, Mods: ModControl},
		{Kind: KeyUp, HID: HIDC, Mods: ModControl},
	}, events)
}

func TestEnterBackspaceTab(t *testing.T) {
	events := collect([]byte{13, 8, 9})
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDEnter, Mods: 0},
		{Kind: KeyUp, HID: HIDEnter, Mods: 0},
		{Kind: KeyDown, HID: HIDBackspace, Mods: 0},
		{Kind: KeyUp, HID: HIDBackspace, Mods: 0},
		{Kind: KeyDown, HID: HIDTab, Mods: 0},
		{Kind: KeyUp, HID: HIDTab, Mods: 0},
	}, events)
}

func TestTildeSequenceDelete(t *testing.T) {
	events := collect([]byte("\x1b[3~"))
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDDelete, Mods: 0},
		{Kind: KeyUp, HID: HIDDelete, Mods: 0},
	}, events)
}

func TestSS3FunctionKeys(t *testing.T) {
	events := collect([]byte("\x1bOP"))
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDF1, Mods: 0},
		{Kind: KeyUp, HID: HIDF1, Mods: 0},
	}, events)
}

func TestInvalidUTF8ContinuationAbortsSilently(t *testing.T) {
	events := collect([]byte{0xC2, 0x41}) // lead claims 2-byte seq, bad continuation
	require.Empty(t, events)
}

func TestUTF8RoundTripAcrossBMPAndAstral(t *testing.T) {
	codepoints := []rune{'A', 0x00E9, 0x4E2D, 0x1F600}
	for _, cp := range codepoints {
		var buf bytes.Buffer
		buf.WriteRune(cp)
		events := collect(buf.Bytes())
		want := []Event{{Kind: KeyChar, Codepoint: cp, Mods: 0}}
		if cp == 'A' {
			// A one-byte encoding takes the printable-ASCII path: KeyDown,
			// KeyChar, KeyUp, with SHIFT for an uppercase letter.
			want = []Event{
				{Kind: KeyDown, HID: HIDA, Mods: ModShift},
				{Kind: KeyChar, Codepoint: 'A', Mods: ModShift},
				{Kind: KeyUp, HID: HIDA, Mods: ModShift},
			}
		}
		require.Equal(t, want, events, "codepoint %U", cp)
	}
}

func TestOrderingPreservedAcrossMixedInput(t *testing.T) {
	// "a" then Enter then an arrow key: events must come out in the exact
	// order the bytes were produced, never interleaved or reordered.
	events := collect(append([]byte{0x61, 13}, []byte("\x1b[A")...))
	require.Equal(t, []Event{
		{Kind: KeyDown, HID: HIDA, Mods: 0},
		{Kind: KeyChar, Codepoint: 'a', Mods: 0},
		{Kind: KeyUp, HID: HIDA, Mods: 0},
		{Kind: KeyDown, HID: HIDEnter, Mods: 0},
		{Kind: KeyUp, HID: HIDEnter, Mods: 0},
		{Kind: KeyDown, HID: HIDArrowUp, Mods: 0},
		{Kind: KeyUp, HID: HIDArrowUp, Mods: 0},
	}, events)
}
