package main

import (
	"image/color"
	"math"
)

// fadeSteps is the fade index at which a trail reaches its dimmest color.
const fadeSteps = 12

// Theme colors the rain. Fade 0 (the head) uses Head; the body fades from
// Body towards a darker shade as the fade index grows.
type Theme struct {
	Name       string
	Head       color.RGBA
	Body       color.RGBA
	Background color.RGBA
	Rainbow    bool // Body hue follows the column
}

var black = color.RGBA{0, 0, 0, 255}

var themes = []Theme{
	{Name: "green", Head: rgb(30, 255, 48), Body: rgb(18, 166, 31), Background: black},
	{Name: "amber", Head: rgb(255, 220, 120), Body: rgb(255, 170, 0), Background: black},
	{Name: "red", Head: rgb(255, 120, 120), Body: rgb(200, 0, 0), Background: black},
	{Name: "blue", Head: rgb(160, 210, 255), Body: rgb(0, 120, 255), Background: black},
	{Name: "cyan", Head: rgb(200, 255, 255), Body: rgb(0, 200, 200), Background: black},
	{Name: "purple", Head: rgb(220, 170, 255), Body: rgb(128, 0, 255), Background: black},
	{Name: "white", Head: rgb(255, 255, 255), Body: rgb(170, 170, 170), Background: black},
	{Name: "rainbow", Head: rgb(255, 255, 255), Body: rgb(255, 255, 255), Background: black, Rainbow: true},
}

func rgb(r, g, b uint8) color.RGBA { return color.RGBA{r, g, b, 255} }

// themeByName finds a theme by name.
func themeByName(name string) (Theme, bool) {
	for _, t := range themes {
		if t.Name == name {
			return t, true
		}
	}
	return Theme{}, false
}

func themeIndex(name string) int {
	for i, t := range themes {
		if t.Name == name {
			return i
		}
	}
	return 0
}

// Color returns the color of a trail cell with the given fade index in
// column col of a width column area.
func (t Theme) Color(fade, col, width int) color.RGBA {
	if fade <= 0 {
		return t.Head
	}
	body := t.Body
	if t.Rainbow && width > 0 {
		// Hue-based colors, one hue per column
		h := float64(col) / float64(width) * 360
		r, g, b := hsvToRGB(h, 1, 1)
		body = rgb(uint8(r*255), uint8(g*255), uint8(b*255))
	}
	f := math.Min(float64(fade), fadeSteps) / fadeSteps
	return scale(body, 1-0.7*f)
}

// scale multiplies the color channels by f, clamped to [0,1].
func scale(c color.RGBA, f float64) color.RGBA {
	f = math.Max(0, math.Min(1, f))
	return color.RGBA{
		R: uint8(float64(c.R) * f),
		G: uint8(float64(c.G) * f),
		B: uint8(float64(c.B) * f),
		A: c.A,
	}
}

// hsvToRGB helper
func hsvToRGB(h, s, v float64) (float64, float64, float64) {
	h = math.Mod(h, 360)
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c
	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}
	return r + m, g + m, b + m
}
