// Package loop drives the star field: it paces frames, advances the
// simulation, renders it and handles terminal resizes.
package loop

import (
	"context"
	"fmt"
	"io"
	"math/rand/v2"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/starfield/internal/config"
	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/object"
	"github.com/tomz197/starfield/internal/render"
)

// Driver owns the scene and the display. All of its state is touched only
// by the goroutine running Run; other goroutines talk to it through
// NotifyResize.
type Driver struct {
	cfg      config.Starfield
	display  Display
	termSize draw.TermSizeFunc
	logger   *log.Logger
	renderer *render.Renderer

	stars *object.StarField
	comet *object.Comet
	sims  [2]object.Simulation // Update order: stars, then comet
	size  Size
	vp    object.Viewport

	start  time.Time
	last   time.Time // Last accepted frame
	frames uint64

	failing bool // Inside a streak of failed presents

	resizeCh   chan Size
	debounce   *time.Timer
	pending    Size
	hasPending bool
}

// New creates a driver for display, sized from termSize. A nil termSize
// reads the local terminal; a nil logger discards.
func New(cfg config.Starfield, display Display, termSize draw.TermSizeFunc, logger *log.Logger) (*Driver, error) {
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	cols, rows, err := termSize()
	if err != nil {
		return nil, fmt.Errorf("terminal size: %w", err)
	}

	rng := newRand(cfg.Seed)
	d := &Driver{
		cfg:      cfg,
		display:  display,
		termSize: termSize,
		logger:   logger,
		renderer: render.New(render.DefaultPalette),
		stars:    object.NewStarField(cfg.BackgroundStars, cfg.ForegroundStars, rng),
		comet:    object.NewComet(rng),
		resizeCh: make(chan Size, 1),
	}
	d.sims = [2]object.Simulation{d.stars, d.comet}
	d.applyResize(Size{Cols: cols, Rows: rows})
	return d, nil
}

// newRand returns a PCG source for seed, or a randomly seeded one for 0.
func newRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = rand.Uint64()
	}
	return rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))
}

// Run animates until ctx is cancelled. With reduced motion it draws one
// static frame and then waits. Run always returns nil on cancellation.
func (d *Driver) Run(ctx context.Context) error {
	d.begin(time.Now())
	defer d.stopDebounce()

	if d.cfg.ReducedMotion {
		d.logger.Debug("reduced motion, drawing static frame")
		d.DrawStatic()
		<-ctx.Done()
		return nil
	}

	ticker := time.NewTicker(d.cfg.RefreshInterval())
	defer ticker.Stop()

	for {
		var debounceC <-chan time.Time
		if d.hasPending {
			debounceC = d.debounce.C
		}

		select {
		case <-ctx.Done():
			return nil
		case now := <-ticker.C:
			d.Tick(now)
		case sz := <-d.resizeCh:
			d.observe(sz)
		case <-debounceC:
			d.applyPending()
		}
	}
}

// begin sets the clock baseline; the first frame measures from here.
func (d *Driver) begin(now time.Time) {
	d.start = now
	d.last = now
	d.frames = 0
}

// Tick runs one frame at now unless it comes sooner than the frame floor
// after the previous accepted frame. Reports whether the frame ran.
func (d *Driver) Tick(now time.Time) bool {
	elapsed := now.Sub(d.last)
	if d.frames > 0 && elapsed < d.cfg.FrameFloor {
		return false
	}
	d.last = now
	d.frames++

	d.pollSize()

	ctx := object.UpdateContext{
		Delta:    min(max(elapsed, 0), config.MaxFrameDelta),
		Now:      now.Sub(d.start),
		Viewport: d.vp,
	}
	for _, sim := range d.sims {
		sim.Update(ctx)
	}

	d.renderer.Draw(d.display, d.vp, d.stars, d.comet)
	d.present()
	return true
}

// DrawStatic draws the stars once without motion or comet.
func (d *Driver) DrawStatic() {
	d.renderer.DrawStaticFrame(d.display, d.vp, d.stars)
	d.present()
}

// present pushes the frame out. Failures are logged once per streak and
// only cost the current frame.
func (d *Driver) present() {
	if err := d.display.Present(); err != nil {
		if !d.failing {
			d.logger.Warn("frame write failed", "err", err)
			d.failing = true
		}
		return
	}
	if d.failing {
		d.logger.Info("frame writes recovered")
		d.failing = false
	}
}

// NotifyResize reports a new terminal size. Safe to call from any
// goroutine; only the latest size is kept.
func (d *Driver) NotifyResize(cols, rows int) {
	sz := Size{Cols: cols, Rows: rows}
	for {
		select {
		case d.resizeCh <- sz:
			return
		default:
		}
		select {
		case <-d.resizeCh:
		default:
		}
	}
}

func (d *Driver) pollSize() {
	cols, rows, err := d.termSize()
	if err != nil {
		d.logger.Debug("terminal size unavailable", "err", err)
		return
	}
	d.observe(Size{Cols: cols, Rows: rows})
}

// observe records a candidate size and (re)starts the debounce timer when
// it differs from what is pending.
func (d *Driver) observe(sz Size) {
	if d.hasPending && sz == d.pending {
		return
	}
	if sz == d.size {
		// Back to the current size before the debounce fired
		d.stopDebounce()
		return
	}

	d.pending = sz
	d.hasPending = true
	if d.debounce == nil {
		d.debounce = time.NewTimer(d.cfg.ResizeDebounce)
	} else {
		d.debounce.Reset(d.cfg.ResizeDebounce)
	}
}

func (d *Driver) stopDebounce() {
	if d.debounce != nil {
		d.debounce.Stop()
	}
	d.hasPending = false
}

// applyPending applies the size that survived the debounce window.
func (d *Driver) applyPending() {
	if !d.hasPending {
		return
	}
	d.hasPending = false
	d.applyResize(d.pending)
}

func (d *Driver) applyResize(sz Size) {
	d.logger.Debug("resize", "cols", sz.Cols, "rows", sz.Rows)
	d.size = sz
	d.display.Resize(sz.Cols, sz.Rows)
	d.vp = object.ViewportFor(sz.Cols, sz.Rows, d.cfg.PixelRatio)
	d.stars.OnResize(d.vp.Width, d.vp.Height)
}

// Viewport returns the current logical viewport.
func (d *Driver) Viewport() object.Viewport {
	return d.vp
}

// Size returns the terminal size the display was last resized to.
func (d *Driver) Size() Size {
	return d.size
}

// Stars returns the simulated star field.
func (d *Driver) Stars() *object.StarField {
	return d.stars
}

// Comet returns the simulated comet.
func (d *Driver) Comet() *object.Comet {
	return d.comet
}

// Frames returns the number of accepted frames since Run started.
func (d *Driver) Frames() uint64 {
	return d.frames
}
