package main

import (
	"image/color"
	"log"
	"math"
	"math/rand"
	"time"

	"github.com/olivierh59500/digital-rain-go/cascade"
)

const spawnStep = 0.005

// rain is the frontend independent state: the matrix, the glyph and color
// mapping and the interactive toggles.
type rain struct {
	cfg     Config
	seed    int64
	matrix  *cascade.Matrix[Glyph]
	glyphs  *glyphSource
	shimmer *shimmer
	theme   int
	frame   int
	paused  bool
	hint    bool
}

// newRain creates the rain for an area of width x height cells.
// cfg must be valid.
func newRain(cfg Config, width, height int) *rain {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	r := &rain{
		cfg:     cfg,
		seed:    seed,
		glyphs:  newGlyphSource(seed+1, cfg.Charset),
		shimmer: newShimmer(seed),
		theme:   themeIndex(cfg.Theme),
		hint:    true,
	}
	r.matrix = cascade.New[Glyph](height, width, cfg.Params(), rand.New(rand.NewSource(seed)))
	return r
}

// reconfigure swaps in a new config, keeping the current size.
func (r *rain) reconfigure(cfg Config) {
	next := newRain(cfg, r.matrix.Width(), r.matrix.Height())
	next.paused, next.hint = r.paused, r.hint
	*r = *next
}

// step resizes the matrix to the drawing area and advances it one tick.
// While paused a resize only redraws the frozen strains.
func (r *rain) step(width, height int) {
	resized := width != r.matrix.Width() || height != r.matrix.Height()
	if resized {
		log.Printf("resize %dx%d -> %dx%d", r.matrix.Width(), r.matrix.Height(), width, height)
		r.matrix.Resize(width, height)
	}
	if r.paused {
		if resized {
			r.matrix.Render(r.glyphs.cell)
		}
		return
	}
	r.matrix.Tick(r.glyphs.cell)
	r.frame++
}

func (r *rain) currentTheme() Theme { return themes[r.theme] }

// colorAt returns the foreground color of a trail glyph in column x, row y.
func (r *rain) colorAt(g Glyph, x, y int) color.RGBA {
	c := r.currentTheme().Color(g.Fade, x, r.matrix.Width())
	if g.Fade == 0 {
		return c
	}
	return scale(c, r.shimmer.factor(x, y, r.frame))
}

func (r *rain) togglePause() { r.paused = !r.paused }

func (r *rain) toggleHint() { r.hint = !r.hint }

func (r *rain) cycleTheme() {
	r.theme = (r.theme + 1) % len(themes)
	r.cfg.Theme = themes[r.theme].Name
	log.Printf("theme %s", r.cfg.Theme)
}

// adjustSpawn moves the spawn chance by delta steps, clamped to [0,1].
func (r *rain) adjustSpawn(delta int) {
	chance := r.cfg.SpawnChance + float64(delta)*spawnStep
	chance = math.Max(0, math.Min(1, math.Round(chance*1000)/1000))
	r.cfg.SpawnChance = chance
	r.matrix.SetSpawnChance(chance)
	log.Printf("spawn chance %.3f", chance)
}

func (r *rain) clear() { r.matrix.Clear() }
