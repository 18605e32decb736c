package physics

import (
	"math"
	"testing"

	"pgregory.net/rapid"
)

const eps = 1e-9

func TestSmoothstep(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{0.5, 0.5},
		{1, 1},
		{0.25, 0.15625},
	}

	for _, tt := range tests {
		if got := Smoothstep(tt.t); math.Abs(got-tt.want) > eps {
			t.Errorf("Smoothstep(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestQuadBezier_Endpoints(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		coord := rapid.Float64Range(-5000, 5000)
		p0 := Point{coord.Draw(t, "p0x"), coord.Draw(t, "p0y")}
		c := Point{coord.Draw(t, "cx"), coord.Draw(t, "cy")}
		p1 := Point{coord.Draw(t, "p1x"), coord.Draw(t, "p1y")}

		if got := QuadBezier(p0, c, p1, 0); got != p0 {
			t.Fatalf("QuadBezier(e=0) = %v, want %v", got, p0)
		}
		if got := QuadBezier(p0, c, p1, 1); got != p1 {
			t.Fatalf("QuadBezier(e=1) = %v, want %v", got, p1)
		}
	})
}

func TestQuadBezier_Midpoint(t *testing.T) {
	p0 := Point{0, 300}
	p1 := Point{800, 300}
	c := Point{400, 200}

	got := QuadBezier(p0, c, p1, Smoothstep(0.5))
	if math.Abs(got.X-400) > eps || math.Abs(got.Y-250) > eps {
		t.Errorf("QuadBezier midpoint = %v, want (400, 250)", got)
	}
}

func TestWrap(t *testing.T) {
	tests := []struct {
		v, size, want float64
	}{
		{750, 400, 350},
		{550, 300, 250},
		{-5, 300, 295},
		{0, 300, 0},
		{300, 300, 0},
		{42, 0, 42},             // zero extent leaves value alone
		{42, math.NaN(), 42},    // NaN extent leaves value alone
		{42, math.Inf(1), 42},   // infinite extent leaves value alone
		{-1e-300, 300, 0},       // rounding at the upper bound folds to zero
	}

	for _, tt := range tests {
		got := Wrap(tt.v, tt.size)
		if math.Abs(got-tt.want) > eps {
			t.Errorf("Wrap(%v, %v) = %v, want %v", tt.v, tt.size, got, tt.want)
		}
	}
}

func TestWrap_StaysInBounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		v := rapid.Float64Range(-1e6, 1e6).Draw(t, "v")
		size := rapid.Float64Range(1, 1e4).Draw(t, "size")

		got := Wrap(v, size)
		if got < 0 || got >= size {
			t.Fatalf("Wrap(%v, %v) = %v, outside [0, %v)", v, size, got, size)
		}
	})
}

func TestClamp(t *testing.T) {
	if got := Clamp(0.9, 0.05, 0.75); got != 0.75 {
		t.Errorf("Clamp high = %v", got)
	}
	if got := Clamp(-1, 0.05, 0.75); got != 0.05 {
		t.Errorf("Clamp low = %v", got)
	}
	if got := Clamp(0.3, 0.05, 0.75); got != 0.3 {
		t.Errorf("Clamp mid = %v", got)
	}
}

func TestPointInCircle(t *testing.T) {
	if !PointInCircle(1, 1, 0, 0, 1.5) {
		t.Error("(1,1) should be inside r=1.5")
	}
	if PointInCircle(2, 0, 0, 0, 1.5) {
		t.Error("(2,0) should be outside r=1.5")
	}
}
