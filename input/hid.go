// Package input decodes a raw terminal byte stream into HID-style keyboard
// events for the focused container, per the UTF-8 / ASCII control / CSI /
// SS3 decoding rules.
package input

// HID is a USB HID keyboard usage id, used as a language-neutral key
// identifier. Only the subset this engine needs is named; values follow the
// real USB HID usage table numbering so they compose with any future
// hardware-facing code that expects the standard numbering.
type HID int

const (
	HIDNone HID = iota
	HIDA    HID = iota + 3 // 0x04
	HIDB
	HIDC
	HIDD
	HIDE
	HIDF
	HIDG
	HIDH
	HIDI
	HIDJ
	HIDK
	HIDL
	HIDM
	HIDN
	HIDO
	HIDP
	HIDQ
	HIDR
	HIDS
	HIDT
	HIDU
	HIDV
	HIDW
	HIDX
	HIDY
	HIDZ

	HIDDigit1
	HIDDigit2
	HIDDigit3
	HIDDigit4
	HIDDigit5
	HIDDigit6
	HIDDigit7
	HIDDigit8
	HIDDigit9
	HIDDigit0

	HIDEnter
	HIDEsc
	HIDBackspace
	HIDTab
	HIDSpace

	HIDMinus
	HIDEquals
	HIDLeftBracket
	HIDRightBracket
	HIDBackslash
	HIDSemicolon HID = iota + 4 // 0x33; 0x32 is the non-US '#' key
	HIDQuote
	HIDGrave
	HIDComma
	HIDPeriod
	HIDSlash

	HIDArrowUp    HID = 0x52
	HIDArrowDown  HID = 0x51
	HIDArrowRight HID = 0x4F
	HIDArrowLeft  HID = 0x50
	HIDHome       HID = 0x4A
	HIDEnd        HID = 0x4D
	HIDPageUp     HID = 0x4B
	HIDPageDown   HID = 0x4E
	HIDDelete     HID = 0x4C
	HIDInsert     HID = 0x49

	HIDF1 HID = iota - 5 // 0x3A
	HIDF2
	HIDF3
	HIDF4
	HIDF5
	HIDF6
	HIDF7
	HIDF8
	HIDF9
	HIDF10
	HIDF11
	HIDF12
)

// Modifier is a bitset: SHIFT=1, CONTROL=2, ALT=4.
type Modifier int

const (
	ModShift   Modifier = 1 << 0
	ModControl Modifier = 1 << 1
	ModAlt     Modifier = 1 << 2
)

// asciiEntry is one row of the positional ASCII-to-HID table: the HID code
// for the unshifted key, and whether the byte represents the shifted form.
type asciiEntry struct {
	hid     HID
	shifted bool
}

// asciiToHID is the fixed, deterministic mapping from a printable ASCII
// byte (32-126) to (HID code, modifiers). Letters and digits are positional
// USB-HID usage codes; punctuation and its shifted form share a HID slot
// the way a physical keyboard does.
var asciiToHID = buildASCIITable()

func buildASCIITable() map[byte]asciiEntry {
	m := make(map[byte]asciiEntry, 96)

	for i := 0; i < 26; i++ {
		lower := byte('a' + i)
		upper := byte('A' + i)
		hid := HIDA + HID(i)
		m[lower] = asciiEntry{hid: hid}
		m[upper] = asciiEntry{hid: hid, shifted: true}
	}

	digitHID := []HID{HIDDigit1, HIDDigit2, HIDDigit3, HIDDigit4, HIDDigit5, HIDDigit6, HIDDigit7, HIDDigit8, HIDDigit9, HIDDigit0}
	digitShifted := "!@#$%^&*()"
	for i := 0; i < 9; i++ {
		m[byte('1'+i)] = asciiEntry{hid: digitHID[i]}
	}
	m['0'] = asciiEntry{hid: HIDDigit0}
	for i := 0; i < 10; i++ {
		m[digitShifted[i]] = asciiEntry{hid: digitHID[i], shifted: true}
	}

	m[' '] = asciiEntry{hid: HIDSpace}

	punct := []struct {
		plain, shift byte
		hid          HID
	}{
		{'-', '_', HIDMinus},
		{'=', '+', HIDEquals},
		{'[', '{', HIDLeftBracket},
		{']', '}', HIDRightBracket},
		{'\\', '|', HIDBackslash},
		{';', ':', HIDSemicolon},
		{'\'', '"', HIDQuote},
		{'`', '~', HIDGrave},
		{',', '<', HIDComma},
		{'.', '>', HIDPeriod},
		{'/', '?', HIDSlash},
	}
	for _, p := range punct {
		m[p.plain] = asciiEntry{hid: p.hid}
		m[p.shift] = asciiEntry{hid: p.hid, shifted: true}
	}

	return m
}

// ASCIIToHID maps a printable ASCII byte (32-126) to its HID code and
// modifier set. ok is false for bytes outside the fixed table (should not
// happen for any byte in [32,126] given the table above).
func ASCIIToHID(b byte) (hid HID, mods Modifier, ok bool) {
	e, found := asciiToHID[b]
	if !found {
		return HIDNone, 0, false
	}
	if e.shifted {
		return e.hid, ModShift, true
	}
	return e.hid, 0, true
}

// csiLetterToHID maps the normative CSI final letters to HID codes.
var csiLetterToHID = map[byte]HID{
	'A': HIDArrowUp,
	'B': HIDArrowDown,
	'C': HIDArrowRight,
	'D': HIDArrowLeft,
	'H': HIDHome,
	'F': HIDEnd,
}

// tildeSeqToHID maps CSI `n~` sequence numbers to HID codes.
var tildeSeqToHID = map[int]HID{
	2:  HIDInsert,
	3:  HIDDelete,
	5:  HIDPageUp,
	6:  HIDPageDown,
	11: HIDF1,
	12: HIDF2,
	13: HIDF3,
	14: HIDF4,
	15: HIDF5,
	17: HIDF6,
	18: HIDF7,
	19: HIDF8,
	20: HIDF9,
	21: HIDF10,
	23: HIDF11,
	24: HIDF12,
}

// ss3LetterToHID maps SS3 (ESC O <letter>) final letters to HID codes.
var ss3LetterToHID = map[byte]HID{
	'P': HIDF1,
	'Q': HIDF2,
	'R': HIDF3,
	'S': HIDF4,
	'H': HIDHome,
	'F': HIDEnd,
	'A': HIDArrowUp,
	'B': HIDArrowDown,
	'C': HIDArrowRight,
	'D': HIDArrowLeft,
}

// ctrlHID maps a Ctrl+letter control byte (1-26, excluding 9/10/13) to the
// HID code for the underlying letter.
func ctrlHID(b byte) HID {
	return HIDA + HID(b-1)
}
