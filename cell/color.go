// Package cell defines the glyph and style primitives that every container
// buffer is made of.
package cell

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// ColorMode selects how a foreground or background color is encoded.
type ColorMode uint8

const (
	ModeNamed ColorMode = iota
	ModeIndexed
	ModeRGB
)

// NamedColor is one of the 16 portable ANSI color names, plus Default.
type NamedColor uint8

const (
	ColorDefault NamedColor = iota
	ColorBlack
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightBlack
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
)

// Color is a structural value: two colors are equal iff mode and the
// corresponding payload field are equal. The zero value is ModeNamed /
// ColorDefault, i.e. "use the terminal's default color".
type Color struct {
	Mode    ColorMode
	Named   NamedColor
	Indexed uint8
	RGB     uint32 // packed 0xRRGGBB, only meaningful when Mode == ModeRGB
}

// Default is the zero Color: named, Default.
var Default = Color{}

// NewNamed constructs a named color.
func NewNamed(n NamedColor) Color { return Color{Mode: ModeNamed, Named: n} }

// NewIndexed constructs an indexed (0-255) color.
func NewIndexed(idx uint8) Color { return Color{Mode: ModeIndexed, Indexed: idx} }

// NewRGB constructs a 24-bit truecolor value.
func NewRGB(r, g, b uint8) Color {
	return Color{Mode: ModeRGB, RGB: uint32(r)<<16 | uint32(g)<<8 | uint32(b)}
}

// RGBBytes splits a packed RGB color into its components.
func (c Color) RGBBytes() (r, g, b uint8) {
	return uint8(c.RGB >> 16), uint8(c.RGB >> 8), uint8(c.RGB)
}

// ansiPalette16 is the approximate RGB value of each NamedColor, used only
// for color-distance fallback on terminals that cannot render truecolor.
var ansiPalette16 = [...][3]uint8{
	ColorDefault:        {0, 0, 0},
	ColorBlack:          {0, 0, 0},
	ColorRed:            {205, 0, 0},
	ColorGreen:          {0, 205, 0},
	ColorYellow:         {205, 205, 0},
	ColorBlue:           {0, 0, 238},
	ColorMagenta:        {205, 0, 205},
	ColorCyan:           {0, 205, 205},
	ColorWhite:          {229, 229, 229},
	ColorBrightBlack:    {127, 127, 127},
	ColorBrightRed:      {255, 0, 0},
	ColorBrightGreen:    {0, 255, 0},
	ColorBrightYellow:   {255, 255, 0},
	ColorBrightBlue:     {92, 92, 255},
	ColorBrightMagenta:  {255, 0, 255},
	ColorBrightCyan:     {0, 255, 255},
	ColorBrightWhite:    {255, 255, 255},
}

// NearestNamed returns the ANSI 16-color name whose approximate RGB value is
// closest (by perceptual Lab distance) to c. Used by the renderer to
// downgrade truecolor/indexed styles on terminals without truecolor support.
func (c Color) NearestNamed() NamedColor {
	var target colorful.Color
	switch c.Mode {
	case ModeRGB:
		r, g, b := c.RGBBytes()
		target = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	case ModeIndexed:
		r, g, b := indexedToRGB(c.Indexed)
		target = colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
	case ModeNamed:
		return c.Named
	}

	best := ColorDefault
	bestDist := math.Inf(1)
	for name, rgb := range ansiPalette16 {
		if name == int(ColorDefault) {
			continue
		}
		candidate := colorful.Color{R: float64(rgb[0]) / 255, G: float64(rgb[1]) / 255, B: float64(rgb[2]) / 255}
		if d := target.DistanceLab(candidate); d < bestDist {
			bestDist = d
			best = NamedColor(name)
		}
	}
	return best
}

// indexedToRGB approximates the xterm 256-color palette: 0-15 are the ANSI
// colors, 16-231 are a 6x6x6 color cube, 232-255 are a grayscale ramp.
func indexedToRGB(idx uint8) (r, g, b uint8) {
	switch {
	case idx < 16:
		rgb := ansiPalette16[idx+1] // palette index n is NamedColor n+1 (ColorBlack == 1)
		return rgb[0], rgb[1], rgb[2]
	case idx < 232:
		n := int(idx) - 16
		levels := [6]uint8{0, 95, 135, 175, 215, 255}
		return levels[n/36], levels[(n/6)%6], levels[n%6]
	default:
		v := uint8(8 + (int(idx)-232)*10)
		return v, v, v
	}
}
