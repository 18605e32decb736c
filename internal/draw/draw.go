// Package draw implements a terminal drawing surface: a colour canvas with
// two vertical sub-pixels per character cell, rendered with half blocks.
package draw

// Shade characters from lightest to darkest.
// Used to render intensity when the terminal has no colour support.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	if idx == 0 {
		// Anything painted stays visible.
		idx = 1
	}
	return Shades[idx]
}

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
