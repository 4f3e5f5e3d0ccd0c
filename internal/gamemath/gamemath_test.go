package gamemath

import (
	"image/color"
	"testing"
)

func TestLerp(t *testing.T) {
	if got := Lerp(0, 10, 0); got != 0 {
		t.Errorf("Lerp(0, 10, 0) = %v, want 0", got)
	}
	if got := Lerp(0, 10, 1); got != 10 {
		t.Errorf("Lerp(0, 10, 1) = %v, want 10", got)
	}
	if got := Lerp(2, 4, 0.5); got != 3 {
		t.Errorf("Lerp(2, 4, 0.5) = %v, want 3", got)
	}
	// Interpolation also works backwards
	if got := Lerp(10, 0, 0.25); got != 7.5 {
		t.Errorf("Lerp(10, 0, 0.25) = %v, want 7.5", got)
	}
}

func TestClamp(t *testing.T) {
	if got := Clamp(-1, 0, 1); got != 0 {
		t.Errorf("Clamp(-1, 0, 1) = %v, want 0", got)
	}
	if got := Clamp(2, 0, 1); got != 1 {
		t.Errorf("Clamp(2, 0, 1) = %v, want 1", got)
	}
	if got := Clamp(0.5, 0, 1); got != 0.5 {
		t.Errorf("Clamp(0.5, 0, 1) = %v, want 0.5", got)
	}
}

func TestLerpColor(t *testing.T) {
	a := color.NRGBA{R: 0, G: 100, B: 200, A: 255}
	b := color.NRGBA{R: 100, G: 200, B: 0, A: 255}

	mid := LerpColor(a, b, 0.5)
	if mid.R != 50 || mid.G != 150 || mid.B != 100 || mid.A != 255 {
		t.Errorf("LerpColor midpoint = %+v", mid)
	}

	if got := LerpColor(a, b, 0); got != a {
		t.Errorf("LerpColor(a, b, 0) = %+v, want %+v", got, a)
	}
	if got := LerpColor(a, b, 1); got != b {
		t.Errorf("LerpColor(a, b, 1) = %+v, want %+v", got, b)
	}
}

func TestScaleClamps(t *testing.T) {
	c := color.NRGBA{R: 200, G: 10, B: 0, A: 128}
	bright := Scale(c, 2.0)
	if bright.R != 255 {
		t.Errorf("Scale should clamp R to 255, got %d", bright.R)
	}
	if bright.G != 20 {
		t.Errorf("Scale G = %d, want 20", bright.G)
	}
	if bright.A != 128 {
		t.Errorf("Scale must not touch alpha, got %d", bright.A)
	}
}
