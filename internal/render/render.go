// Package render draws the star field and the comet onto a Surface.
package render

import (
	"github.com/lucasb-eyer/go-colorful"

	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/object"
)

// Surface is an immediate-mode 2D drawing target in logical pixels.
type Surface interface {
	ClearRegion(width, height float64)
	FillDisc(x, y, r float64)
	StrokeSegment(x1, y1, x2, y2, width float64)
	SetFillColor(c colorful.Color)
	SetStrokeColor(c colorful.Color)
	SetGlobalOpacity(alpha float64)
}

// Palette holds the colours of the scene.
type Palette struct {
	Star  colorful.Color
	Trail colorful.Color
	Head  colorful.Color
}

// DefaultPalette is a pale star white with a blue comet.
var DefaultPalette = Palette{
	Star:  draw.MustHex("#e8e8e8"),
	Trail: draw.MustHex("#a8c8ff"),
	Head:  draw.MustHex("#ddeeff"),
}

// Drawing tuning.
const (
	maxStarRadius = 2.0
	staticOpacity = 0.5 // Flat star alpha in reduced-motion mode

	trailOpacity = 0.6
	trailWidth   = 1.5
	headRadius   = 2.0

	fadeIn  = 0.2 // Comet reaches full opacity at this progress
	fadeOut = 0.7 // and starts fading again here
)

// Renderer reads simulation state and issues draw calls. It owns no
// state besides its palette.
type Renderer struct {
	palette Palette
}

// New creates a renderer with the given palette.
func New(palette Palette) *Renderer {
	return &Renderer{palette: palette}
}

// Draw renders one animated frame: clear, stars, then the comet.
// Global opacity is 1 again when Draw returns.
func (r *Renderer) Draw(s Surface, vp object.Viewport, stars *object.StarField, comet *object.Comet) {
	if s == nil {
		return
	}
	defer s.SetGlobalOpacity(1)

	s.ClearRegion(vp.Width, vp.Height)
	r.DrawStars(s, stars)
	if comet != nil && comet.Active() {
		r.DrawComet(s, comet)
	}
}

// DrawStars fills one disc per star at its displayed alpha.
func (r *Renderer) DrawStars(s Surface, stars *object.StarField) {
	if stars == nil || !stars.Initialized() {
		return
	}
	s.SetFillColor(r.palette.Star)
	for i := 0; i < stars.Len(); i++ {
		star := stars.Star(i)
		s.SetGlobalOpacity(star.Alpha)
		s.FillDisc(star.X, star.Y, min(star.Size, maxStarRadius))
	}
}

// DrawComet draws the trail oldest to newest as tapering segments, then
// the head. Needs at least two trail points.
func (r *Renderer) DrawComet(s Surface, comet *object.Comet) {
	n := comet.TrailLen()
	if n < 2 {
		return
	}
	env := Envelope(comet.Progress())

	s.SetStrokeColor(r.palette.Trail)
	for k := 1; k < n; k++ {
		from := comet.TrailPoint(n - k)
		to := comet.TrailPoint(n - k - 1)
		rank := float64(k) / float64(n)

		s.SetGlobalOpacity(env * rank * trailOpacity)
		s.StrokeSegment(from.X, from.Y, to.X, to.Y, trailWidth*rank)
	}

	head := comet.TrailPoint(0)
	s.SetGlobalOpacity(env)
	s.SetFillColor(r.palette.Head)
	s.FillDisc(head.X, head.Y, headRadius)
}

// DrawStaticFrame draws every star once at a flat opacity, with no comet.
// Used when motion is reduced.
func (r *Renderer) DrawStaticFrame(s Surface, vp object.Viewport, stars *object.StarField) {
	if s == nil {
		return
	}
	defer s.SetGlobalOpacity(1)

	s.ClearRegion(vp.Width, vp.Height)
	if stars == nil || !stars.Initialized() {
		return
	}
	s.SetFillColor(r.palette.Star)
	s.SetGlobalOpacity(staticOpacity)
	for i := 0; i < stars.Len(); i++ {
		star := stars.Star(i)
		s.FillDisc(star.X, star.Y, min(star.Size, maxStarRadius))
	}
}

// Envelope is the comet's opacity over its flight: a linear fade in over
// the first 20%, full until 70%, then a linear fade out.
func Envelope(t float64) float64 {
	switch {
	case t < fadeIn:
		return max(t, 0) / fadeIn
	case t > fadeOut:
		return max(1-t, 0) / (1 - fadeOut)
	default:
		return 1
	}
}
