package cell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCellEquality(t *testing.T) {
	a := Cell{Glyph: 'x', Style: Style{Fg: NewNamed(ColorRed)}}
	b := Cell{Glyph: 'x', Style: Style{Fg: NewNamed(ColorRed)}}
	c := Cell{Glyph: 'x', Style: Style{Fg: NewNamed(ColorBlue)}}

	require.Equal(t, a, b)
	require.NotEqual(t, a, c)
}

func TestSentinelNeverEqualsRealGlyph(t *testing.T) {
	for _, r := range []rune{0, 'a', '█', '✓'} {
		require.NotEqual(t, Sentinel, Cell{Glyph: r})
	}
}

func TestStyleNormalIsZeroValue(t *testing.T) {
	require.True(t, Style{}.IsNormal())
	require.False(t, Style{Attrs: AttrBold}.IsNormal())
	require.False(t, Style{Fg: NewNamed(ColorRed)}.IsNormal())
}

func TestMergeInheritsUnsetFields(t *testing.T) {
	parent := Style{Fg: NewNamed(ColorRed), Attrs: AttrBold}
	child := Style{Attrs: AttrUnderline}

	merged := Merge(parent, child)
	require.Equal(t, NewNamed(ColorRed), merged.Fg)
	require.True(t, merged.Attrs.Has(AttrBold))
	require.True(t, merged.Attrs.Has(AttrUnderline))
}

func TestMergeChildOverridesColor(t *testing.T) {
	parent := Style{Fg: NewNamed(ColorRed)}
	child := Style{Fg: NewNamed(ColorBlue)}

	merged := Merge(parent, child)
	require.Equal(t, NewNamed(ColorBlue), merged.Fg)
}

func TestNearestNamedForPrimaryColors(t *testing.T) {
	require.Equal(t, ColorBrightRed, NewRGB(255, 10, 10).NearestNamed())
	require.Equal(t, ColorBrightGreen, NewRGB(10, 255, 10).NearestNamed())
}

func TestAppendSGREmptyForNormalStyle(t *testing.T) {
	out := AppendSGR(nil, Style{})
	require.Equal(t, "\x1b[m", string(out))
}

func TestAppendSGRNamedForeground(t *testing.T) {
	out := AppendSGR(nil, Style{Fg: NewNamed(ColorRed), Attrs: AttrBold})
	require.Equal(t, "\x1b[1;31m", string(out))
}

func TestAppendSGRRGBBackground(t *testing.T) {
	out := AppendSGR(nil, Style{Bg: NewRGB(1, 2, 3)})
	require.Equal(t, "\x1b[48;2;1;2;3m", string(out))
}

func TestAppendSGRIndexed(t *testing.T) {
	out := AppendSGR(nil, Style{Fg: NewIndexed(200)})
	require.Equal(t, "\x1b[38;5;200m", string(out))
}

func TestDowngradeReplacesTruecolor(t *testing.T) {
	st := Downgrade(Style{Fg: NewRGB(255, 0, 0)})
	require.Equal(t, ModeNamed, st.Fg.Mode)
}
