package object

import (
	"math/rand/v2"
	"time"

	"github.com/tomz197/starfield/internal/physics"
)

// TrailCapacity is the number of recent positions a comet remembers.
const TrailCapacity = 24

// Comet tuning.
const (
	minSpawnInterval   = 8 * time.Second
	spawnIntervalRange = 4 * time.Second

	edgeOffset    = 50.0 // Comets start this far outside the viewport
	minCoverage   = 0.6  // Fraction of the viewport span the arc crosses
	coverageRange = 0.2
	controlJitter = 200.0 // Control point moves up to ±half this from the midpoint

	minDuration   = 1.6 // Seconds
	durationRange = 0.8
)

// Edge identifies the viewport side a comet enters from.
type Edge int

const (
	EdgeTop Edge = iota
	EdgeRight
	EdgeBottom
	EdgeLeft
)

// Comet is a single pooled comet. It is reused for every flight; spawning
// resets its fields in place and never allocates.
type Comet struct {
	active   bool
	t        float64 // Linear progress in [0,1]
	duration float64 // Seconds

	p0, p1, c physics.Point // Start, end and bezier control point

	trail  [TrailCapacity]physics.Point
	cursor uint64 // Total points written; slot is cursor % TrailCapacity

	lastSpawn time.Duration
	threshold time.Duration // Idle time required before the next spawn

	rng *rand.Rand
}

// NewComet returns an idle comet. The first spawn happens 8-12s after
// the driver's clock starts.
func NewComet(rng *rand.Rand) *Comet {
	c := &Comet{rng: rng}
	c.threshold = c.rollThreshold()
	return c
}

// Update spawns the comet when it is due and advances an active flight.
func (c *Comet) Update(ctx UpdateContext) {
	c.MaybeSpawn(ctx.Now, ctx.Viewport)
	c.Step(ctx.Delta.Seconds())
}

// MaybeSpawn launches a new flight if the comet is idle and the randomized
// interval since the last spawn has elapsed. Reports whether it spawned.
func (c *Comet) MaybeSpawn(now time.Duration, vp Viewport) bool {
	if c.active || now-c.lastSpawn <= c.threshold {
		return false
	}
	if !c.Spawn(vp) {
		return false
	}
	c.lastSpawn = now
	c.threshold = c.rollThreshold()
	return true
}

// Spawn starts a flight from a random edge across 60-80% of the viewport.
// Does nothing and returns false for an empty viewport.
func (c *Comet) Spawn(vp Viewport) bool {
	if !vp.Valid() {
		return false
	}

	w, h := vp.Width, vp.Height
	coverage := minCoverage + c.rng.Float64()*coverageRange

	var p0, p1 physics.Point
	switch Edge(c.rng.IntN(4)) {
	case EdgeTop:
		p0 = physics.Point{X: c.rng.Float64() * w, Y: -edgeOffset}
		p1 = physics.Point{X: c.rng.Float64() * w, Y: h * coverage}
	case EdgeRight:
		p0 = physics.Point{X: w + edgeOffset, Y: c.rng.Float64() * h}
		p1 = physics.Point{X: w * (1 - coverage), Y: c.rng.Float64() * h}
	case EdgeBottom:
		p0 = physics.Point{X: c.rng.Float64() * w, Y: h + edgeOffset}
		p1 = physics.Point{X: c.rng.Float64() * w, Y: h * (1 - coverage)}
	case EdgeLeft:
		p0 = physics.Point{X: -edgeOffset, Y: c.rng.Float64() * h}
		p1 = physics.Point{X: w * coverage, Y: c.rng.Float64() * h}
	}

	ctrl := physics.Midpoint(p0, p1)
	ctrl.X += (c.rng.Float64() - 0.5) * controlJitter
	ctrl.Y += (c.rng.Float64() - 0.5) * controlJitter

	c.Launch(p0, p1, ctrl, minDuration+c.rng.Float64()*durationRange)
	return true
}

// Launch starts a flight along the given curve. Progress and the trail
// are reset.
func (c *Comet) Launch(p0, p1, ctrl physics.Point, duration float64) {
	c.p0 = p0
	c.p1 = p1
	c.c = ctrl
	c.duration = duration
	c.t = 0
	c.cursor = 0
	c.trail = [TrailCapacity]physics.Point{}
	c.active = true
}

// Step advances an active flight by dt seconds and appends the new
// position to the trail. The comet retires once progress reaches 1;
// that step writes no trail point.
func (c *Comet) Step(dt float64) {
	if !c.active || !physics.Finite(dt) || dt < 0 {
		return
	}
	if c.duration > 0 {
		c.t += dt / c.duration
	} else {
		c.t = 1
	}
	if c.t >= 1 {
		c.active = false
		return
	}

	pos := physics.QuadBezier(c.p0, c.c, c.p1, physics.Smoothstep(c.t))
	c.trail[c.cursor%TrailCapacity] = pos
	c.cursor++
}

// Active reports whether the comet is in flight.
func (c *Comet) Active() bool {
	return c.active
}

// Progress returns the linear flight progress t.
func (c *Comet) Progress() float64 {
	return c.t
}

// Duration returns the flight duration in seconds.
func (c *Comet) Duration() float64 {
	return c.duration
}

// Curve returns the start, end and control points of the current flight.
func (c *Comet) Curve() (p0, p1, ctrl physics.Point) {
	return c.p0, c.p1, c.c
}

// Cursor returns the number of trail points written this flight.
func (c *Comet) Cursor() uint64 {
	return c.cursor
}

// TrailLen returns how many trail slots hold points from this flight.
func (c *Comet) TrailLen() int {
	if c.cursor < TrailCapacity {
		return int(c.cursor)
	}
	return TrailCapacity
}

// TrailPoint returns a trail position by age: 0 is the newest point,
// TrailLen()-1 the oldest. Panics if age is out of range.
func (c *Comet) TrailPoint(age int) physics.Point {
	if age < 0 || age >= c.TrailLen() {
		panic("object: trail index out of range")
	}
	return c.trail[(c.cursor-1-uint64(age))%TrailCapacity]
}

// Head returns the newest trail point.
func (c *Comet) Head() (physics.Point, bool) {
	if c.cursor == 0 {
		return physics.Point{}, false
	}
	return c.TrailPoint(0), true
}

// LastSpawn returns the driver time of the most recent spawn.
func (c *Comet) LastSpawn() time.Duration {
	return c.lastSpawn
}

// rollThreshold draws the idle interval uniformly in [8s, 12s).
func (c *Comet) rollThreshold() time.Duration {
	return minSpawnInterval + time.Duration(c.rng.Float64()*float64(spawnIntervalRange))
}
