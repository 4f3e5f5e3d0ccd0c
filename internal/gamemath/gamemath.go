// Package gamemath provides the small pure helpers shared by the simulation
// and the renderer: linear interpolation, clamping, and color blending.
package gamemath

import "image/color"

// Lerp linearly interpolates between a and b by t.
// t is expected to be in [0, 1] but is not clamped here.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}

// Clamp constrains v to the range [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Clamp01 constrains v to the range [0, 1].
func Clamp01(v float64) float64 {
	return Clamp(v, 0, 1)
}

// LerpColor blends two colors component-wise by t.
func LerpColor(a, b color.NRGBA, t float64) color.NRGBA {
	return color.NRGBA{
		R: lerpByte(a.R, b.R, t),
		G: lerpByte(a.G, b.G, t),
		B: lerpByte(a.B, b.B, t),
		A: lerpByte(a.A, b.A, t),
	}
}

// Scale multiplies the RGB channels of c by f, leaving alpha untouched.
// Useful for brightening (f > 1) or dimming (f < 1) a base color.
func Scale(c color.NRGBA, f float64) color.NRGBA {
	return color.NRGBA{
		R: clampByte(float64(c.R) * f),
		G: clampByte(float64(c.G) * f),
		B: clampByte(float64(c.B) * f),
		A: c.A,
	}
}

func lerpByte(a, b uint8, t float64) uint8 {
	return clampByte(Lerp(float64(a), float64(b), t))
}

func clampByte(v float64) uint8 {
	return uint8(Clamp(v, 0, 255))
}
