package loop

import (
	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/render"
)

//go:generate go tool mockgen -destination=./mocks/display_mock.go -package=mocks . Display

// Display is the surface a Driver draws on and pushes to the viewer.
type Display interface {
	render.Surface

	// Resize adapts the surface to a terminal of cols×rows cells.
	Resize(cols, rows int)

	// Present writes the finished frame out.
	Present() error
}

// Compile-time check that a terminal screen can be driven.
var _ Display = (*draw.Screen)(nil)

// Size is a terminal size in character cells.
type Size struct {
	Cols, Rows int
}
