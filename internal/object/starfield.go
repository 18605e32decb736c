package object

import (
	"math"
	"math/rand/v2"

	"github.com/tomz197/starfield/internal/physics"
)

// Layer is a parallax depth band.
type Layer int

const (
	LayerBackground Layer = iota // Slower drift and twinkle
	LayerForeground
)

// Star field tuning.
const (
	clusterProbability = 0.3 // Chance a star is placed in the top-left cluster
	clusterFraction    = 0.4 // Cluster spans this fraction of width and height

	minSpeed        = 0.05 // Pixels per frame at 60fps
	speedRange      = 0.3
	backgroundSpeed = 0.6 // Speed multiplier for the background layer

	minSize   = 0.3
	sizeRange = 1.5

	minBaseAlpha   = 0.2
	baseAlphaRange = 0.4

	twinkleAmplitude  = 0.15
	backgroundTwinkle = 0.6 // Radians per second
	foregroundTwinkle = 1.0
	minAlpha          = 0.05
	maxAlpha          = 0.75

	wrapMargin = 5.0 // Stars leave this far below the bottom and re-enter this far above the top
	frameRate  = 60.0
)

// Star is a read-only view of one star, for rendering.
type Star struct {
	X, Y  float64
	Size  float64
	Alpha float64 // Displayed alpha after twinkle
	Layer Layer
}

// StarField is a fixed population of stars stored as parallel slices.
// Stars are never added or removed after construction.
type StarField struct {
	background int // Indices below this are LayerBackground

	x, y      []float64
	vx, vy    []float64
	size      []float64
	baseAlpha []float64 // Immutable after Init
	alpha     []float64 // Recomputed from baseAlpha every update
	phase     []float64

	width, height float64
	initialized   bool
	rng           *rand.Rand
}

// NewStarField allocates a field with the given layer populations.
// Stars have no position until Init is called.
func NewStarField(background, foreground int, rng *rand.Rand) *StarField {
	background = max(background, 0)
	foreground = max(foreground, 0)
	n := background + foreground

	return &StarField{
		background: background,
		x:          make([]float64, n),
		y:          make([]float64, n),
		vx:         make([]float64, n),
		vy:         make([]float64, n),
		size:       make([]float64, n),
		baseAlpha:  make([]float64, n),
		alpha:      make([]float64, n),
		phase:      make([]float64, n),
		rng:        rng,
	}
}

// Init scatters every star over a width×height area. A zero or
// non-finite area is ignored; the next OnResize initializes instead.
func (f *StarField) Init(width, height float64) {
	if !physics.ValidExtent(width) || !physics.ValidExtent(height) {
		return
	}
	f.width = width
	f.height = height

	for i := range f.x {
		f.x[i], f.y[i] = f.randomPosition()

		speed := f.layerScale(i)
		f.vx[i] = (f.rng.Float64()*speedRange + minSpeed) * speed
		f.vy[i] = (f.rng.Float64()*speedRange + minSpeed) * speed

		f.size[i] = f.rng.Float64()*sizeRange + minSize
		f.baseAlpha[i] = f.rng.Float64()*baseAlphaRange + minBaseAlpha
		f.alpha[i] = f.baseAlpha[i]
		f.phase[i] = f.rng.Float64() * 2 * math.Pi
	}
	f.initialized = true
}

// Update drifts stars downward and advances their twinkle.
func (f *StarField) Update(ctx UpdateContext) {
	f.Step(ctx.Delta.Seconds())
}

// Step advances the field by dt seconds.
func (f *StarField) Step(dt float64) {
	if !f.initialized || !physics.Finite(dt) || dt < 0 {
		return
	}

	for i := range f.y {
		f.y[i] += f.vy[i] * dt * frameRate
		if f.y[i] > f.height+wrapMargin {
			f.y[i] = -wrapMargin
			f.x[i] = f.randomX()
		}

		twinkle := foregroundTwinkle
		if f.LayerOf(i) == LayerBackground {
			twinkle = backgroundTwinkle
		}
		f.phase[i] += dt * twinkle
		f.alpha[i] = physics.Clamp(f.baseAlpha[i]+math.Sin(f.phase[i])*twinkleAmplitude, minAlpha, maxAlpha)
	}
}

// OnResize folds every star into the new bounds without reshuffling.
func (f *StarField) OnResize(width, height float64) {
	if !physics.ValidExtent(width) || !physics.ValidExtent(height) {
		return
	}
	if !f.initialized {
		f.Init(width, height)
		return
	}

	f.width = width
	f.height = height
	vp := Viewport{Width: width, Height: height}
	for i := range f.x {
		vp.WrapPosition(&f.x[i], &f.y[i])
	}
}

// Len returns the number of stars.
func (f *StarField) Len() int {
	return len(f.x)
}

// Bounds returns the area the field was last initialized or resized to.
func (f *StarField) Bounds() (width, height float64) {
	return f.width, f.height
}

// Initialized reports whether Init has placed the stars.
func (f *StarField) Initialized() bool {
	return f.initialized
}

// LayerOf returns the depth band of star i.
func (f *StarField) LayerOf(i int) Layer {
	if i < f.background {
		return LayerBackground
	}
	return LayerForeground
}

// Star returns a snapshot of star i.
func (f *StarField) Star(i int) Star {
	return Star{
		X:     f.x[i],
		Y:     f.y[i],
		Size:  f.size[i],
		Alpha: f.alpha[i],
		Layer: f.LayerOf(i),
	}
}

// BaseAlpha returns the un-twinkled alpha of star i.
func (f *StarField) BaseAlpha(i int) float64 {
	return f.baseAlpha[i]
}

// Velocity returns the drift velocity of star i in pixels per frame at 60fps.
func (f *StarField) Velocity(i int) (vx, vy float64) {
	return f.vx[i], f.vy[i]
}

// SetPosition moves star i. Used when restoring or arranging a field.
func (f *StarField) SetPosition(i int, x, y float64) {
	f.x[i] = x
	f.y[i] = y
}

func (f *StarField) layerScale(i int) float64 {
	if f.LayerOf(i) == LayerBackground {
		return backgroundSpeed
	}
	return 1
}

// randomPosition places a star in the top-left cluster or anywhere.
func (f *StarField) randomPosition() (x, y float64) {
	if f.rng.Float64() < clusterProbability {
		return f.rng.Float64() * f.width * clusterFraction, f.rng.Float64() * f.height * clusterFraction
	}
	return f.rng.Float64() * f.width, f.rng.Float64() * f.height
}

// randomX redraws a column with the same cluster bias as randomPosition.
func (f *StarField) randomX() float64 {
	if f.rng.Float64() < clusterProbability {
		return f.rng.Float64() * f.width * clusterFraction
	}
	return f.rng.Float64() * f.width
}
