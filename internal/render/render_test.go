package render

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/muesli/termenv"

	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/object"
	"github.com/tomz197/starfield/internal/physics"
)

var _ Surface = (*draw.Canvas)(nil)

type op struct {
	kind    string
	args    []float64
	opacity float64
	color   colorful.Color
}

// recorder is a Surface that remembers every call.
type recorder struct {
	ops     []op
	fill    colorful.Color
	stroke  colorful.Color
	opacity float64
}

func newRecorder() *recorder {
	return &recorder{opacity: 1}
}

func (r *recorder) ClearRegion(w, h float64) {
	r.ops = append(r.ops, op{kind: "clear", args: []float64{w, h}, opacity: r.opacity})
}

func (r *recorder) FillDisc(x, y, rad float64) {
	r.ops = append(r.ops, op{kind: "disc", args: []float64{x, y, rad}, opacity: r.opacity, color: r.fill})
}

func (r *recorder) StrokeSegment(x1, y1, x2, y2, width float64) {
	r.ops = append(r.ops, op{kind: "stroke", args: []float64{x1, y1, x2, y2, width}, opacity: r.opacity, color: r.stroke})
}

func (r *recorder) SetFillColor(c colorful.Color)   { r.fill = c }
func (r *recorder) SetStrokeColor(c colorful.Color) { r.stroke = c }

func (r *recorder) SetGlobalOpacity(a float64) {
	r.opacity = a
	r.ops = append(r.ops, op{kind: "opacity", args: []float64{a}, opacity: a})
}

func (r *recorder) only(kind string) []op {
	var out []op
	for _, o := range r.ops {
		if o.kind == kind {
			out = append(out, o)
		}
	}
	return out
}

func newTestRand(seed uint64) *rand.Rand {
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

func testScene(t *testing.T) (object.Viewport, *object.StarField, *object.Comet) {
	t.Helper()
	vp := object.Viewport{Width: 800, Height: 600, PixelRatio: 1}
	stars := object.NewStarField(80, 110, newTestRand(1))
	stars.Init(vp.Width, vp.Height)
	return vp, stars, object.NewComet(newTestRand(2))
}

func TestEnvelope(t *testing.T) {
	tests := []struct {
		t    float64
		want float64
	}{
		{0, 0},
		{0.1, 0.5},
		{0.2, 1},
		{0.5, 1},
		{0.7, 1},
		{0.85, 0.5},
		{1, 0},
		{-0.5, 0},
		{1.5, 0},
	}
	for _, tt := range tests {
		if got := Envelope(tt.t); math.Abs(got-tt.want) > 1e-9 {
			t.Errorf("Envelope(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}

func TestRenderer_DrawStarsOnly(t *testing.T) {
	vp, stars, comet := testScene(t)
	rec := newRecorder()

	New(DefaultPalette).Draw(rec, vp, stars, comet)

	if len(rec.ops) == 0 || rec.ops[0].kind != "clear" {
		t.Fatalf("first op = %+v, want clear", rec.ops)
	}
	if got := rec.ops[0].args; got[0] != 800 || got[1] != 600 {
		t.Errorf("clear region = %v, want [800 600]", got)
	}

	discs := rec.only("disc")
	if len(discs) != stars.Len() {
		t.Fatalf("drew %d discs, want %d", len(discs), stars.Len())
	}
	for i, d := range discs {
		star := stars.Star(i)
		if d.args[0] != star.X || d.args[1] != star.Y {
			t.Errorf("disc %d at (%v, %v), want (%v, %v)", i, d.args[0], d.args[1], star.X, star.Y)
		}
		if d.args[2] > maxStarRadius {
			t.Errorf("disc %d radius %v exceeds %v", i, d.args[2], maxStarRadius)
		}
		if d.opacity != star.Alpha {
			t.Errorf("disc %d opacity %v, want star alpha %v", i, d.opacity, star.Alpha)
		}
		if d.color != DefaultPalette.Star {
			t.Errorf("disc %d colour %v, want star colour", i, d.color)
		}
	}
	if n := len(rec.only("stroke")); n != 0 {
		t.Errorf("idle comet drew %d strokes", n)
	}
	if rec.opacity != 1 {
		t.Errorf("opacity after Draw = %v, want 1", rec.opacity)
	}
}

func TestRenderer_DrawCometTrail(t *testing.T) {
	vp, _, comet := testScene(t)
	comet.Launch(
		physics.Point{X: 0, Y: 300},
		physics.Point{X: 800, Y: 300},
		physics.Point{X: 400, Y: 200},
		2,
	)
	for range 5 {
		comet.Step(0.1)
	}
	rec := newRecorder()

	New(DefaultPalette).Draw(rec, vp, nil, comet)

	strokes := rec.only("stroke")
	if len(strokes) != comet.TrailLen()-1 {
		t.Fatalf("drew %d segments, want %d", len(strokes), comet.TrailLen()-1)
	}
	n := float64(comet.TrailLen())
	env := Envelope(comet.Progress())
	for i, s := range strokes {
		rank := float64(i+1) / n
		if math.Abs(s.opacity-env*rank*trailOpacity) > 1e-9 {
			t.Errorf("segment %d opacity %v, want %v", i, s.opacity, env*rank*trailOpacity)
		}
		if math.Abs(s.args[4]-trailWidth*rank) > 1e-9 {
			t.Errorf("segment %d width %v, want %v", i, s.args[4], trailWidth*rank)
		}
		if i > 0 {
			prev := strokes[i-1]
			if s.args[0] != prev.args[2] || s.args[1] != prev.args[3] {
				t.Errorf("segment %d does not continue segment %d", i, i-1)
			}
		}
	}

	head, _ := comet.Head()
	last := strokes[len(strokes)-1]
	if last.args[2] != head.X || last.args[3] != head.Y {
		t.Errorf("newest segment ends at (%v, %v), want head %v", last.args[2], last.args[3], head)
	}

	discs := rec.only("disc")
	if len(discs) != 1 {
		t.Fatalf("drew %d discs, want only the head", len(discs))
	}
	if d := discs[0]; d.args[0] != head.X || d.args[1] != head.Y || d.args[2] != headRadius || d.opacity != env {
		t.Errorf("head disc = %+v, want at %v r=%v opacity %v", d, head, headRadius, env)
	}
	if discs[0].color != DefaultPalette.Head {
		t.Errorf("head colour = %v, want head colour", discs[0].color)
	}
	if rec.opacity != 1 {
		t.Errorf("opacity after Draw = %v, want 1", rec.opacity)
	}
}

func TestRenderer_DrawCometNeedsTwoPoints(t *testing.T) {
	_, _, comet := testScene(t)
	comet.Launch(physics.Point{}, physics.Point{X: 100}, physics.Point{X: 50, Y: 50}, 2)
	comet.Step(0.1)
	rec := newRecorder()

	New(DefaultPalette).DrawComet(rec, comet)

	if len(rec.ops) != 0 {
		t.Errorf("single-point trail issued %d ops, want 0", len(rec.ops))
	}
}

func TestRenderer_DrawStaticFrame(t *testing.T) {
	vp, stars, _ := testScene(t)
	rec := newRecorder()

	New(DefaultPalette).DrawStaticFrame(rec, vp, stars)

	discs := rec.only("disc")
	if len(discs) != stars.Len() {
		t.Fatalf("drew %d discs, want %d", len(discs), stars.Len())
	}
	for i, d := range discs {
		if d.opacity != staticOpacity {
			t.Fatalf("disc %d opacity %v, want %v", i, d.opacity, staticOpacity)
		}
	}
	if rec.opacity != 1 {
		t.Errorf("opacity after DrawStaticFrame = %v, want 1", rec.opacity)
	}
}

func TestRenderer_NilSurface(t *testing.T) {
	vp, stars, comet := testScene(t)
	r := New(DefaultPalette)

	r.Draw(nil, vp, stars, comet)
	r.DrawStaticFrame(nil, vp, stars)
}

func TestRenderer_DrawsOntoCanvas(t *testing.T) {
	vp, stars, _ := testScene(t)
	canvas := draw.NewCanvas(40, 15, 0.05, termenv.TrueColor)

	New(DefaultPalette).Draw(canvas, vp, stars, nil)

	lit := 0
	for y := 0; y < 30; y++ {
		for x := 0; x < 40; x++ {
			if _, ok := canvas.Pixel(x, y); ok {
				lit++
			}
		}
	}
	if lit == 0 {
		t.Error("no stars reached the canvas")
	}
	if canvas.GlobalOpacity() != 1 {
		t.Errorf("canvas opacity = %v, want 1", canvas.GlobalOpacity())
	}
}
