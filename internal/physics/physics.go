// Package physics provides the motion math shared by the simulation:
// easing, curve evaluation and wrapping.
package physics

import "math"

// Point represents a 2D coordinate.
type Point struct {
	X, Y float64
}

// Midpoint returns the point halfway between a and b.
func Midpoint(a, b Point) Point {
	return Point{X: (a.X + b.X) / 2, Y: (a.Y + b.Y) / 2}
}

// Smoothstep remaps t in [0,1] to t²(3-2t): zero slope at both ends.
func Smoothstep(t float64) float64 {
	return t * t * (3 - 2*t)
}

// QuadBezier evaluates (1-t)²p0 + 2(1-t)t·c + t²p1.
func QuadBezier(p0, c, p1 Point, t float64) Point {
	inv := 1 - t
	a := inv * inv
	b := 2 * inv * t
	d := t * t
	return Point{
		X: a*p0.X + b*c.X + d*p1.X,
		Y: a*p0.Y + b*c.Y + d*p1.Y,
	}
}

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Wrap maps v into [0, size). Returns v unchanged when size is not a
// usable bound, so a zero-sized viewport can never produce NaN.
func Wrap(v, size float64) float64 {
	if !ValidExtent(size) || !Finite(v) {
		return v
	}
	v = math.Mod(v, size)
	if v < 0 {
		v += size
	}
	// -tiny + size rounds to size
	if v >= size {
		v = 0
	}
	return v
}

// Finite reports whether v is neither NaN nor infinite.
func Finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ValidExtent reports whether size is a positive finite dimension.
func ValidExtent(size float64) bool {
	return size > 0 && !math.IsInf(size, 0)
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// PointInCircle checks if a point is within radius of a target position.
func PointInCircle(px, py, cx, cy, radius float64) bool {
	return DistanceSquared(px, py, cx, cy) <= radius*radius
}
