package engine

import "math"

// RGBA is a straight-alpha color. The alpha channel carries the color's
// own opacity; the indicator's animated opacity multiplies on top of it
// at render time.
type RGBA struct {
	R, G, B, A uint8
}

func lerpColor(from, to RGBA, t float64) RGBA {
	return RGBA{
		R: lerpChannel(from.R, to.R, t),
		G: lerpChannel(from.G, to.G, t),
		B: lerpChannel(from.B, to.B, t),
		A: lerpChannel(from.A, to.A, t),
	}
}

func lerpChannel(a, b uint8, t float64) uint8 {
	v := math.Round(float64(a) + (float64(b)-float64(a))*t)
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}
