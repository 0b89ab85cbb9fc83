package cell

import "strconv"

// AppendSGR appends the SGR (Select Graphic Rendition) escape sequence for
// st to buf and returns the extended slice. It never emits a leading
// ESC[0m reset; callers reset separately when the previous style must be
// cleared first (see the renderer's differential algorithm).
//
// Attribute order and codes, and the 30/90 + index / 38;5;n / 38;2;r;g;b
// foreground (40/100 + index / 48;5;n / 48;2;r;g;b background) encodings,
// follow the normative table.
func AppendSGR(buf []byte, st Style) []byte {
	buf = append(buf, '\x1b', '[')
	first := true
	writeCode := func(code int) {
		if !first {
			buf = append(buf, ';')
		}
		buf = strconv.AppendInt(buf, int64(code), 10)
		first = false
	}

	if st.Attrs.Has(AttrBold) {
		writeCode(1)
	}
	if st.Attrs.Has(AttrFaint) {
		writeCode(2)
	}
	if st.Attrs.Has(AttrItalic) {
		writeCode(3)
	}
	if st.Attrs.Has(AttrUnderline) {
		writeCode(4)
	}
	if st.Attrs.Has(AttrBlink) {
		writeCode(5)
	}
	if st.Attrs.Has(AttrInverse) {
		writeCode(7)
	}
	if st.Attrs.Has(AttrHidden) {
		writeCode(8)
	}
	if st.Attrs.Has(AttrStrikethrough) {
		writeCode(9)
	}

	buf = appendColor(buf, &first, st.Fg, 30, 90, 38)
	buf = appendColor(buf, &first, st.Bg, 40, 100, 48)

	if first {
		// No codes at all: SGR with no parameters resets to default, which
		// is the desired effect for a Normal style.
	}
	buf = append(buf, 'm')
	return buf
}

func appendColor(buf []byte, first *bool, c Color, base, brightBase, extBase int) []byte {
	sep := func() {
		if !*first {
			buf = append(buf, ';')
		}
		*first = false
	}
	switch c.Mode {
	case ModeNamed:
		if c.Named == ColorDefault {
			return buf
		}
		n := int(c.Named) - int(ColorBlack)
		sep()
		if n >= 8 {
			buf = strconv.AppendInt(buf, int64(brightBase+(n-8)), 10)
		} else {
			buf = strconv.AppendInt(buf, int64(base+n), 10)
		}
		return buf
	case ModeIndexed:
		sep()
		buf = strconv.AppendInt(buf, int64(extBase), 10)
		buf = append(buf, ';', '5', ';')
		buf = strconv.AppendInt(buf, int64(c.Indexed), 10)
		return buf
	case ModeRGB:
		r, g, b := c.RGBBytes()
		sep()
		buf = strconv.AppendInt(buf, int64(extBase), 10)
		buf = append(buf, ';', '2', ';')
		buf = strconv.AppendInt(buf, int64(r), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(g), 10)
		buf = append(buf, ';')
		buf = strconv.AppendInt(buf, int64(b), 10)
		return buf
	}
	return buf
}

// Downgrade returns a copy of st with any RGB/Indexed color replaced by its
// nearest 16-color ANSI approximation. Used on terminals without truecolor
// support (see renderer capability detection).
func Downgrade(st Style) Style {
	if st.Fg.Mode != ModeNamed {
		st.Fg = NewNamed(st.Fg.NearestNamed())
	}
	if st.Bg.Mode != ModeNamed {
		st.Bg = NewNamed(st.Bg.NearestNamed())
	}
	return st
}
