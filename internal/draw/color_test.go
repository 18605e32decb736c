package draw

import (
	"testing"

	"github.com/muesli/termenv"
)

func TestParseProfile(t *testing.T) {
	tests := []struct {
		name   string
		want   termenv.Profile
		wantOK bool
	}{
		{"truecolor", termenv.TrueColor, true},
		{"256", termenv.ANSI256, true},
		{"16", termenv.ANSI, true},
		{"ASCII", termenv.Ascii, true},
		{"", termenv.Ascii, false},
		{"sepia", termenv.Ascii, false},
	}

	for _, tt := range tests {
		got, ok := ParseProfile(tt.name)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("ParseProfile(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestProfileFor(t *testing.T) {
	tests := []struct {
		term, colorTerm string
		want            termenv.Profile
	}{
		{"xterm-256color", "truecolor", termenv.TrueColor},
		{"xterm-256color", "", termenv.ANSI256},
		{"xterm", "", termenv.ANSI},
		{"dumb", "", termenv.Ascii},
		{"", "", termenv.Ascii},
	}

	for _, tt := range tests {
		if got := ProfileFor(tt.term, tt.colorTerm); got != tt.want {
			t.Errorf("ProfileFor(%q, %q) = %v, want %v", tt.term, tt.colorTerm, got, tt.want)
		}
	}
}

func TestShadeLevel(t *testing.T) {
	tests := []struct {
		in   float64
		want rune
	}{
		{0, ' '},
		{0.1, '░'},
		{0.6, '▒'},
		{0.8, '▓'},
		{1, '█'},
	}

	for _, tt := range tests {
		if got := ShadeLevel(tt.in); got != tt.want {
			t.Errorf("ShadeLevel(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestMustHexPanicsOnBadInput(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustHex(\"nope\") did not panic")
		}
	}()
	MustHex("nope")
}
