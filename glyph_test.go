package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGlyphSource_Cell(t *testing.T) {
	src := newGlyphSource(1, "xyz")
	require.Equal(t, Glyph{}, src.cell(4, false))

	for fade := 0; fade < 20; fade++ {
		g := src.cell(fade, true)
		require.True(t, g.Trail)
		require.Equal(t, fade, g.Fade)
		require.True(t, strings.ContainsRune("xyz", g.Rune))
	}
}

func TestGlyph_String(t *testing.T) {
	require.Equal(t, " ", Glyph{Rune: 'a'}.String())
	require.Equal(t, "a", Glyph{Rune: 'a', Trail: true}.String())
	require.Equal(t, "ｱ", Glyph{Rune: 'ｱ', Trail: true}.String())
}

func TestShimmer_FactorRange(t *testing.T) {
	s := newShimmer(3)
	for x := 0; x < 30; x++ {
		for y := 0; y < 30; y += 3 {
			f := s.factor(x, y, x*y)
			require.GreaterOrEqual(t, f, 1-shimmerDepth)
			require.LessOrEqual(t, f, 1.0)
		}
	}
}
