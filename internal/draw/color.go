package draw

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"
)

// MustHex parses a #rrggbb colour and panics on malformed input.
// Intended for package-level palettes.
func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(fmt.Sprintf("draw: bad colour %q: %v", s, err))
	}
	return c
}

// ParseProfile maps a configured profile name to a termenv profile.
// The empty name is not a profile; callers detect one instead.
func ParseProfile(name string) (termenv.Profile, bool) {
	switch strings.ToLower(name) {
	case "truecolor", "24bit":
		return termenv.TrueColor, true
	case "256":
		return termenv.ANSI256, true
	case "16", "ansi":
		return termenv.ANSI, true
	case "ascii", "none":
		return termenv.Ascii, true
	}
	return termenv.Ascii, false
}

// ProfileFor guesses the colour profile of a remote terminal from its
// TERM and COLORTERM values, as reported by an SSH client.
func ProfileFor(term, colorTerm string) termenv.Profile {
	switch strings.ToLower(colorTerm) {
	case "truecolor", "24bit":
		return termenv.TrueColor
	}
	term = strings.ToLower(term)
	switch {
	case term == "" || term == "dumb":
		return termenv.Ascii
	case strings.Contains(term, "256color"), strings.Contains(term, "kitty"),
		strings.Contains(term, "alacritty"), strings.Contains(term, "wezterm"):
		return termenv.ANSI256
	}
	return termenv.ANSI
}

// rgb is a colour quantized to what the terminal can show.
type rgb [3]uint8

func quantize(c colorful.Color) rgb {
	r, g, b := c.Clamped().RGB255()
	return rgb{r, g, b}
}

func (c rgb) color() colorful.Color {
	return colorful.Color{R: float64(c[0]) / 255, G: float64(c[1]) / 255, B: float64(c[2]) / 255}
}

// luminance is the perceived brightness in [0,1], used for shade fallback.
func (c rgb) luminance() float64 {
	return (0.2126*float64(c[0]) + 0.7152*float64(c[1]) + 0.0722*float64(c[2])) / 255
}

// maxCachedSequences bounds each colour map of a sequenceCache.
const maxCachedSequences = 1024

// sequenceCache memoizes SGR parameters per colour so steady-state frames
// do not rebuild the same escape strings. Each map is emptied once it
// holds maxCachedSequences entries.
type sequenceCache struct {
	profile termenv.Profile
	fg      map[rgb]string
	bg      map[rgb]string
}

func newSequenceCache(profile termenv.Profile) *sequenceCache {
	return &sequenceCache{
		profile: profile,
		fg:      make(map[rgb]string),
		bg:      make(map[rgb]string),
	}
}

// foreground returns SGR parameters such as "38;5;254".
func (s *sequenceCache) foreground(c rgb) string {
	return s.lookup(s.fg, c, false)
}

func (s *sequenceCache) background(c rgb) string {
	return s.lookup(s.bg, c, true)
}

func (s *sequenceCache) lookup(m map[rgb]string, c rgb, bg bool) string {
	if seq, ok := m[c]; ok {
		return seq
	}
	if len(m) >= maxCachedSequences {
		clear(m)
	}
	seq := s.profile.FromColor(c.color()).Sequence(bg)
	m[c] = seq
	return seq
}

// reset drops every cached sequence.
func (s *sequenceCache) reset() {
	clear(s.fg)
	clear(s.bg)
}

// writeSGR appends the SGR parameters for c. True colour is formatted in
// place; other profiles go through the cache.
func (s *sequenceCache) writeSGR(w *ChunkWriter, c rgb, bg bool) {
	if s.profile != termenv.TrueColor {
		if bg {
			w.WriteString(s.background(c))
		} else {
			w.WriteString(s.foreground(c))
		}
		return
	}
	if bg {
		w.WriteString("48;2;")
	} else {
		w.WriteString("38;2;")
	}
	w.WriteInt(int(c[0]))
	w.WriteByte(';')
	w.WriteInt(int(c[1]))
	w.WriteByte(';')
	w.WriteInt(int(c[2]))
}
