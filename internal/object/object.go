// Package object holds the simulated scene: the star field and the comet.
package object

import (
	"time"

	"github.com/tomz197/starfield/internal/physics"
)

// UpdateContext provides all the information a simulation needs during update.
type UpdateContext struct {
	Delta    time.Duration // Time since the last accepted frame
	Now      time.Duration // Time since the driver started
	Viewport Viewport
}

// Simulation is advanced once per accepted frame.
type Simulation interface {
	Update(ctx UpdateContext)
}

// Viewport is the logical drawing area. One logical pixel covers
// PixelRatio surface sub-pixels.
type Viewport struct {
	Width      float64
	Height     float64
	PixelRatio float64
}

// ViewportFor returns the logical viewport of a terminal with the given
// number of columns and rows (two sub-pixels per row).
func ViewportFor(cols, rows int, pixelRatio float64) Viewport {
	if cols <= 0 || rows <= 0 || !(pixelRatio > 0) {
		return Viewport{PixelRatio: pixelRatio}
	}
	return Viewport{
		Width:      float64(cols) / pixelRatio,
		Height:     float64(rows*2) / pixelRatio,
		PixelRatio: pixelRatio,
	}
}

// Valid reports whether the viewport has a usable, non-empty area.
func (v Viewport) Valid() bool {
	return physics.ValidExtent(v.Width) && physics.ValidExtent(v.Height)
}

// WrapPosition wraps x and y coordinates into the viewport bounds.
func (v Viewport) WrapPosition(x, y *float64) {
	*x = physics.Wrap(*x, v.Width)
	*y = physics.Wrap(*y, v.Height)
}
