package main

import (
	"math"
	"math/rand"

	"github.com/aquilax/go-perlin"
)

// Glyph is the cell type the rain is rasterized into.
type Glyph struct {
	Rune  rune
	Fade  int
	Trail bool
}

func (g Glyph) String() string {
	if !g.Trail {
		return " "
	}
	return string(g.Rune)
}

// glyphSource picks a random character for every trail cell. It uses its own
// random stream so cosmetic choices never disturb the simulation.
type glyphSource struct {
	rng     *rand.Rand
	charset []rune
}

func newGlyphSource(seed int64, charset string) *glyphSource {
	return &glyphSource{
		rng:     rand.New(rand.NewSource(seed)),
		charset: []rune(charset),
	}
}

// cell is the matrix cell constructor.
func (s *glyphSource) cell(fade int, trail bool) Glyph {
	if !trail {
		return Glyph{}
	}
	return Glyph{
		Rune:  s.charset[s.rng.Intn(len(s.charset))],
		Fade:  fade,
		Trail: true,
	}
}

// Shimmer noise parameters
const (
	shimmerAlpha  = 2.0
	shimmerBeta   = 2.0
	shimmerOctave = 3
	shimmerScale  = 0.15 // Spatial frequency
	shimmerSpeed  = 0.05 // Temporal frequency
	shimmerDepth  = 0.25 // Max brightness loss
)

// shimmer slowly modulates trail brightness with Perlin noise so the rain
// does not look flat.
type shimmer struct {
	noise *perlin.Perlin
}

func newShimmer(seed int64) *shimmer {
	return &shimmer{noise: perlin.NewPerlin(shimmerAlpha, shimmerBeta, shimmerOctave, seed)}
}

// factor returns a brightness multiplier in [1-shimmerDepth, 1] for cell
// (x, y) at the given frame.
func (s *shimmer) factor(x, y, frame int) float64 {
	n := s.noise.Noise3D(float64(x)*shimmerScale, float64(y)*shimmerScale, float64(frame)*shimmerSpeed)
	// Noise is roughly in [-1,1]
	n = math.Max(-1, math.Min(1, n))
	return 1 - shimmerDepth*(1-n)/2
}
