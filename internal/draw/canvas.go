package draw

import (
	"math"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/tomz197/starfield/internal/physics"
)

// Canvas is a drawing buffer with 2x vertical resolution using half-block characters.
// Drawing calls take logical coordinates, scaled by the pixel ratio to sub-pixels.
// Paint is alpha-composited over the background colour.
type Canvas struct {
	termWidth      int              // Actual terminal columns
	termHeight     int              // Actual terminal rows
	subPixelHeight int              // termHeight * 2
	pixels         []colorful.Color // Flat slice: [y * termWidth + x]
	painted        []bool           // false means the pixel shows the terminal background

	scale float64 // Sub-pixels per logical pixel

	// Drawing state, as in an immediate-mode 2D context
	fill    colorful.Color
	stroke  colorful.Color
	opacity float64

	background colorful.Color // Colour painted pixels are blended over
	profile    termenv.Profile
	sequences  *sequenceCache

	// Cells as last written to the terminal, for diff rendering
	shown       []cell
	forceRedraw bool
}

// cell is what one terminal character shows: a top and a bottom sub-pixel.
type cell struct {
	top, bottom       rgb
	topSet, bottomSet bool
}

// NewCanvas creates a canvas for the given terminal dimensions.
// pixelRatio is the number of sub-pixels per logical pixel.
func NewCanvas(termWidth, termHeight int, pixelRatio float64, profile termenv.Profile) *Canvas {
	c := &Canvas{
		scale:      pixelRatio,
		fill:       colorful.Color{R: 1, G: 1, B: 1},
		stroke:     colorful.Color{R: 1, G: 1, B: 1},
		opacity:    1,
		background: colorful.Color{},
		profile:    profile,
		sequences:  newSequenceCache(profile),
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions. The next Render
// repaints every cell.
func (c *Canvas) Resize(termWidth, termHeight int) {
	termWidth = max(termWidth, 0)
	termHeight = max(termHeight, 0)
	subPixelHeight := termHeight * 2

	// Reallocate if size changed
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.pixels = make([]colorful.Color, subPixelHeight*termWidth)
		c.painted = make([]bool, subPixelHeight*termWidth)
		c.shown = make([]cell, termWidth*termHeight)
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = subPixelHeight
		c.sequences.reset()
	}
	c.forceRedraw = true
}

// ForceRedraw makes the next Render clear the terminal and repaint every cell.
func (c *Canvas) ForceRedraw() {
	c.forceRedraw = true
}

// Clear resets all pixels in the canvas.
func (c *Canvas) Clear() {
	clear(c.painted)
}

// ClearRegion resets the pixels covered by the logical rectangle (0,0)-(width,height).
func (c *Canvas) ClearRegion(width, height float64) {
	if !physics.Finite(width) || !physics.Finite(height) {
		return
	}
	cols := min(int(math.Ceil(width*c.scale)), c.termWidth)
	rows := min(int(math.Ceil(height*c.scale)), c.subPixelHeight)
	if cols == c.termWidth && rows == c.subPixelHeight {
		c.Clear()
		return
	}
	for y := 0; y < rows; y++ {
		clear(c.painted[y*c.termWidth : y*c.termWidth+max(cols, 0)])
	}
}

// SetFillColor sets the colour used by FillDisc.
func (c *Canvas) SetFillColor(col colorful.Color) {
	c.fill = col
}

// SetStrokeColor sets the colour used by StrokeSegment.
func (c *Canvas) SetStrokeColor(col colorful.Color) {
	c.stroke = col
}

// SetGlobalOpacity sets the alpha applied to subsequent drawing, clamped to [0,1].
func (c *Canvas) SetGlobalOpacity(alpha float64) {
	if !physics.Finite(alpha) {
		alpha = 0
	}
	c.opacity = physics.Clamp(alpha, 0, 1)
}

// GlobalOpacity returns the current drawing alpha.
func (c *Canvas) GlobalOpacity() float64 {
	return c.opacity
}

// FillDisc fills a disc of radius r centred at logical (x, y). Discs
// smaller than a sub-pixel still light the sub-pixel under their centre.
func (c *Canvas) FillDisc(x, y, r float64) {
	if !physics.Finite(x) || !physics.Finite(y) || !physics.Finite(r) || r < 0 {
		return
	}
	cx := x * c.scale
	cy := y * c.scale
	pr := r * c.scale

	hit := false
	for py := int(math.Floor(cy - pr)); py <= int(math.Ceil(cy+pr)); py++ {
		for px := int(math.Floor(cx - pr)); px <= int(math.Ceil(cx+pr)); px++ {
			if physics.PointInCircle(float64(px)+0.5, float64(py)+0.5, cx, cy, pr) {
				c.blend(px, py, c.fill, c.opacity)
				hit = true
			}
		}
	}
	if !hit {
		c.blend(int(math.Floor(cx)), int(math.Floor(cy)), c.fill, c.opacity)
	}
}

// StrokeSegment draws a line between two logical points using Bresenham's
// algorithm. Lines are one sub-pixel wide; narrower strokes are drawn
// proportionally fainter.
func (c *Canvas) StrokeSegment(x1, y1, x2, y2, width float64) {
	if !physics.Finite(x1) || !physics.Finite(y1) || !physics.Finite(x2) || !physics.Finite(y2) || !physics.Finite(width) {
		return
	}
	alpha := c.opacity * physics.Clamp(width*c.scale, 0, 1)
	if alpha <= 0 {
		return
	}

	// Scale to pixel coordinates for drawing
	px1 := int(math.Floor(x1 * c.scale))
	py1 := int(math.Floor(y1 * c.scale))
	px2 := int(math.Floor(x2 * c.scale))
	py2 := int(math.Floor(y2 * c.scale))

	dx := abs(px2 - px1)
	dy := abs(py2 - py1)

	sx := 1
	if px1 > px2 {
		sx = -1
	}
	sy := 1
	if py1 > py2 {
		sy = -1
	}

	err := dx - dy

	for {
		c.blend(px1, py1, c.stroke, alpha)

		if px1 == px2 && py1 == py2 {
			break
		}

		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			px1 += sx
		}
		if e2 < dx {
			err += dx
			py1 += sy
		}
	}
}

// blend composites col at alpha over the sub-pixel at (x, y).
func (c *Canvas) blend(x, y int, col colorful.Color, alpha float64) {
	if alpha <= 0 || x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return
	}
	i := y*c.termWidth + x
	base := c.background
	if c.painted[i] {
		base = c.pixels[i]
	}
	c.pixels[i] = base.BlendRgb(col, min(alpha, 1))
	c.painted[i] = true
}

// Pixel returns the colour of the sub-pixel at (x, y) and whether anything
// was painted there since the last clear.
func (c *Canvas) Pixel(x, y int) (colorful.Color, bool) {
	if x < 0 || x >= c.termWidth || y < 0 || y >= c.subPixelHeight {
		return colorful.Color{}, false
	}
	i := y*c.termWidth + x
	return c.pixels[i], c.painted[i]
}

// Render writes the cells that changed since the previous Render.
func (c *Canvas) Render(w *ChunkWriter) {
	if c.forceRedraw {
		w.WriteString(resetStyle + clearScreen)
	}

	wrote := false
	for row := 0; row < c.termHeight; row++ {
		topOffset := row * 2 * c.termWidth
		bottomOffset := topOffset + c.termWidth

		for col := 0; col < c.termWidth; col++ {
			next := cell{
				topSet:    c.painted[topOffset+col],
				bottomSet: c.painted[bottomOffset+col],
			}
			if next.topSet {
				next.top = quantize(c.pixels[topOffset+col])
			}
			if next.bottomSet {
				next.bottom = quantize(c.pixels[bottomOffset+col])
			}

			i := row*c.termWidth + col
			if !c.forceRedraw && c.shown[i] == next {
				continue
			}
			// After a full clear, empty cells are already blank.
			if c.forceRedraw && !next.topSet && !next.bottomSet {
				c.shown[i] = next
				continue
			}
			c.shown[i] = next

			w.MoveCursor(col+1, row+1)
			c.writeCell(w, next)
			wrote = true
		}
	}

	if wrote {
		w.WriteString(resetStyle)
	}
	c.forceRedraw = false
}

// writeCell emits one character with the colours for its two sub-pixels.
func (c *Canvas) writeCell(w *ChunkWriter, cl cell) {
	if !cl.topSet && !cl.bottomSet {
		w.WriteString(resetStyle)
		w.WriteRune(BlockEmpty)
		return
	}

	if c.profile == termenv.Ascii {
		level := 0.0
		if cl.topSet {
			level = cl.top.luminance()
		}
		if cl.bottomSet {
			level = max(level, cl.bottom.luminance())
		}
		w.WriteRune(ShadeLevel(level))
		return
	}

	fg, bg := cl.top, cl.bottom
	useBg := false
	ch := BlockUpperHalf
	switch {
	case cl.topSet && cl.bottomSet:
		if cl.top == cl.bottom {
			ch = BlockFull
		} else {
			useBg = true
		}
	case cl.topSet:
	default:
		fg, ch = cl.bottom, BlockLowerHalf
	}

	w.WriteString(termenv.CSI)
	c.sequences.writeSGR(w, fg, false)
	w.WriteByte(';')
	if useBg {
		c.sequences.writeSGR(w, bg, true)
	} else {
		w.WriteString(defaultBackground)
	}
	w.WriteByte('m')
	w.WriteRune(ch)
}

// TerminalWidth returns the actual terminal column count.
func (c *Canvas) TerminalWidth() int {
	return c.termWidth
}

// TerminalHeight returns the actual terminal row count.
func (c *Canvas) TerminalHeight() int {
	return c.termHeight
}
