package input

import (
	"fmt"
	"io"
	"log/slog"
	"time"
)

// escTimeout is how long the decoder waits after a bare ESC (27) byte
// before deciding it was a standalone Escape key press rather than the
// start of a CSI/SS3/Alt+key sequence.
const escTimeout = 10 * time.Millisecond

// EventKind distinguishes the three routed event shapes the decoder
// produces.
type EventKind int

const (
	KeyDown EventKind = iota
	KeyUp
	KeyChar
)

// Event is one decoded input event: a HID keycode transition or a decoded
// character. Codepoint is only meaningful for KeyChar.
type Event struct {
	Kind      EventKind
	HID       HID
	Codepoint rune
	Mods      Modifier
}

func keyDownUp(hid HID, mods Modifier) []Event {
	return []Event{{Kind: KeyDown, HID: hid, Mods: mods}, {Kind: KeyUp, HID: hid, Mods: mods}}
}

// Decoder turns a raw byte stream (the raw-mode TTY's stdin) into routed
// input events for the focused container. One Decoder owns one dedicated
// read-loop goroutine, reading a byte at a time and applying the
// UTF-8 / control / CSI / SS3 decoding rules in order.
type Decoder struct {
	raw     <-chan byte
	closed  <-chan struct{}
	log     *slog.Logger
	onCtrlC func()
}

// NewDecoder starts a background goroutine that reads single bytes from r
// into an internal channel, so the decoder can apply the short ESC-vs-CSI
// timeout without blocking forever on a read that this stream will never
// satisfy. onCtrlC, if non-nil, is invoked in addition to the normal
// Ctrl+C key events whenever byte 3 is decoded.
func NewDecoder(r io.Reader, log *slog.Logger, onCtrlC func()) *Decoder {
	if log == nil {
		log = slog.Default()
	}
	raw := make(chan byte, 256)
	closed := make(chan struct{})
	go func() {
		defer close(raw)
		defer close(closed)
		buf := make([]byte, 1)
		for {
			n, err := r.Read(buf)
			if n > 0 {
				raw <- buf[0]
			}
			if err != nil {
				return
			}
		}
	}()
	return &Decoder{raw: raw, closed: closed, log: log, onCtrlC: onCtrlC}
}

// Run decodes events until the underlying reader reaches end of stream,
// invoking emit for every produced Event in generation order (the decoder
// never reorders or buffers more than one pending sequence, preserving
// input ordering).
func (d *Decoder) Run(emit func(Event)) {
	for {
		b, ok := d.next()
		if !ok {
			return
		}
		d.decodeByte(b, emit)
	}
}

func (d *Decoder) next() (byte, bool) {
	b, ok := <-d.raw
	return b, ok
}

// nextTimeout waits up to escTimeout for the next byte, used only to
// disambiguate a bare ESC from the start of an escape sequence.
func (d *Decoder) nextTimeout() (byte, bool) {
	select {
	case b, ok := <-d.raw:
		return b, ok
	case <-time.After(escTimeout):
		return 0, false
	}
}

func (d *Decoder) decodeByte(b byte, emit func(Event)) {
	switch {
	case b&0x80 != 0:
		d.decodeUTF8(b, emit)
	case b == 27:
		d.decodeEscape(emit)
	case b == 10 || b == 13:
		for _, e := range keyDownUp(HIDEnter, 0) {
			emit(e)
		}
	case b == 8 || b == 127:
		for _, e := range keyDownUp(HIDBackspace, 0) {
			emit(e)
		}
	case b == 9:
		for _, e := range keyDownUp(HIDTab, 0) {
			emit(e)
		}
	case b >= 1 && b <= 26:
		emit(Event{Kind: KeyDown, HID: ctrlHID(b), Mods: ModControl})
		emit(Event{Kind: KeyUp, HID: ctrlHID(b), Mods: ModControl})
		if b == 3 && d.onCtrlC != nil {
			d.onCtrlC()
		}
	case b >= 32 && b <= 126:
		hid, mods, ok := ASCIIToHID(b)
		if !ok {
			d.log.Debug("unmapped ascii byte", "byte", b)
			return
		}
		emit(Event{Kind: KeyDown, HID: hid, Mods: mods})
		emit(Event{Kind: KeyChar, Codepoint: rune(b), Mods: mods})
		emit(Event{Kind: KeyUp, HID: hid, Mods: mods})
	default:
		d.log.Debug("unrecognized control byte", "byte", b)
	}
}

// decodeUTF8 assembles a multi-byte UTF-8 sequence starting at lead per the
// three lengths the engine supports (2/3/4 bytes). A malformed continuation
// byte aborts the sequence silently (logged, nothing emitted).
func (d *Decoder) decodeUTF8(lead byte, emit func(Event)) {
	var need int
	var cp rune
	switch {
	case lead&0xE0 == 0xC0:
		need = 1
		cp = rune(lead & 0x1F)
	case lead&0xF0 == 0xE0:
		need = 2
		cp = rune(lead & 0x0F)
	case lead&0xF8 == 0xF0:
		need = 3
		cp = rune(lead & 0x07)
	default:
		d.log.Debug("invalid utf8 lead byte", "byte", lead)
		return
	}

	for i := 0; i < need; i++ {
		b, ok := d.next()
		if !ok {
			d.log.Debug("utf8 sequence truncated at end of stream")
			return
		}
		if b&0xC0 != 0x80 {
			d.log.Debug("invalid utf8 continuation byte", "byte", b)
			return
		}
		cp = (cp << 6) | rune(b&0x3F)
	}

	emit(Event{Kind: KeyChar, Codepoint: cp, Mods: 0})
}

func (d *Decoder) decodeEscape(emit func(Event)) {
	next, ok := d.nextTimeout()
	if !ok {
		for _, e := range keyDownUp(HIDEsc, 0) {
			emit(e)
		}
		return
	}
	switch next {
	case '[':
		d.decodeCSI(emit)
	case 'O':
		d.decodeSS3(emit)
	default:
		if next >= 32 && next <= 126 {
			hid, mods, ok := ASCIIToHID(next)
			if !ok {
				d.log.Debug("unmapped alt byte", "byte", next)
				return
			}
			mods |= ModAlt
			emit(Event{Kind: KeyDown, HID: hid, Mods: mods})
			emit(Event{Kind: KeyChar, Codepoint: rune(next), Mods: mods})
			emit(Event{Kind: KeyUp, HID: hid, Mods: mods})
			return
		}
		d.log.Debug("unrecognized byte after escape", "byte", next)
	}
}

func (d *Decoder) decodeCSI(emit func(Event)) {
	c, ok := d.next()
	if !ok {
		return
	}

	if c >= '0' && c <= '9' {
		n := int(c - '0')
		t, ok := d.next()
		for ok && t >= '0' && t <= '9' {
			n = n*10 + int(t-'0')
			t, ok = d.next()
		}
		if !ok {
			return
		}
		switch t {
		case ';':
			m, ok := d.next()
			if !ok || m < '0' || m > '9' {
				return
			}
			k, ok := d.next()
			if !ok {
				return
			}
			mods := modifierFromParam(int(m - '0'))
			hid, known := csiLetterToHID[k]
			if !known {
				d.log.Debug("unrecognized csi letter", "letter", k)
				return
			}
			emit(Event{Kind: KeyDown, HID: hid, Mods: mods})
			emit(Event{Kind: KeyUp, HID: hid, Mods: mods})
		case '~':
			hid, known := tildeSeqToHID[n]
			if !known {
				d.log.Debug("unrecognized tilde sequence", "n", n)
				return
			}
			emit(Event{Kind: KeyDown, HID: hid, Mods: 0})
			emit(Event{Kind: KeyUp, HID: hid, Mods: 0})
		default:
			d.log.Debug("unrecognized csi terminator", "byte", t)
		}
		return
	}

	hid, known := csiLetterToHID[c]
	if !known {
		d.log.Debug("unrecognized csi letter", "letter", c)
		return
	}
	emit(Event{Kind: KeyDown, HID: hid, Mods: 0})
	emit(Event{Kind: KeyUp, HID: hid, Mods: 0})
}

func (d *Decoder) decodeSS3(emit func(Event)) {
	c, ok := d.next()
	if !ok {
		return
	}
	hid, known := ss3LetterToHID[c]
	if !known {
		d.log.Debug("unrecognized ss3 letter", "letter", c)
		return
	}
	emit(Event{Kind: KeyDown, HID: hid, Mods: 0})
	emit(Event{Kind: KeyUp, HID: hid, Mods: 0})
}

// modifierFromParam converts a 1-based CSI modifier digit to the
// SHIFT/ALT/CONTROL bitset: modifiers = ((m-1)&1 ? SHIFT:0) |
// ((m-1)&2 ? ALT:0) | ((m-1)&4 ? CONTROL:0).
func modifierFromParam(m int) Modifier {
	v := m - 1
	var mods Modifier
	if v&1 != 0 {
		mods |= ModShift
	}
	if v&2 != 0 {
		mods |= ModAlt
	}
	if v&4 != 0 {
		mods |= ModControl
	}
	return mods
}

func (e Event) String() string {
	switch e.Kind {
	case KeyDown:
		return fmt.Sprintf("KeyDown(%d, mods=%d)", e.HID, e.Mods)
	case KeyUp:
		return fmt.Sprintf("KeyUp(%d, mods=%d)", e.HID, e.Mods)
	default:
		return fmt.Sprintf("KeyChar(%q, mods=%d)", e.Codepoint, e.Mods)
	}
}
