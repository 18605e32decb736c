package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Star population, matching a ~190 star background.
const (
	DefaultBackgroundStars = 80
	DefaultForegroundStars = 110
)

// Surface scaling. One logical pixel maps to PixelRatio sub-pixels
// (half terminal cells); ratios above MaxPixelRatio are capped.
const (
	DefaultPixelRatio = 0.5
	MaxPixelRatio     = 1.5
)

// Frame timing
const (
	DefaultRefreshRate    = 120                    // Scheduler ticks per second
	DefaultFrameFloor     = 14 * time.Millisecond  // Ticks closer than this to the last frame are skipped
	DefaultResizeDebounce = 150 * time.Millisecond // Quiet period before a resize is applied
	MaxFrameDelta         = 250 * time.Millisecond // Upper bound on simulated time per frame
)

// Environment variable names.
const (
	EnvBackgroundStars = "STARFIELD_BACKGROUND_STARS"
	EnvForegroundStars = "STARFIELD_FOREGROUND_STARS"
	EnvPixelRatio      = "STARFIELD_PIXEL_RATIO"
	EnvRefreshRate     = "STARFIELD_REFRESH_HZ"
	EnvFrameFloor      = "STARFIELD_FRAME_FLOOR"
	EnvResizeDebounce  = "STARFIELD_RESIZE_DEBOUNCE"
	EnvReducedMotion   = "STARFIELD_REDUCED_MOTION"
	EnvSeed            = "STARFIELD_SEED"
	EnvColorProfile    = "STARFIELD_COLOR_PROFILE"
	EnvLogLevel        = "STARFIELD_LOG_LEVEL"
	EnvLogFile         = "STARFIELD_LOG_FILE"
)

// Starfield holds the tunables for one running starfield.
type Starfield struct {
	BackgroundStars int
	ForegroundStars int
	PixelRatio      float64
	RefreshRate     int
	FrameFloor      time.Duration
	ResizeDebounce  time.Duration
	ReducedMotion   bool
	Seed            uint64 // 0 picks a time-based seed
	ColorProfile    string // truecolor, 256, 16, ascii or empty to detect
	LogLevel        string
	LogFile         string
}

// Default returns the built-in configuration.
func Default() Starfield {
	return Starfield{
		BackgroundStars: DefaultBackgroundStars,
		ForegroundStars: DefaultForegroundStars,
		PixelRatio:      DefaultPixelRatio,
		RefreshRate:     DefaultRefreshRate,
		FrameFloor:      DefaultFrameFloor,
		ResizeDebounce:  DefaultResizeDebounce,
		LogLevel:        "info",
	}
}

// Load reads the configuration from the environment on top of Default.
// Malformed values are reported together; valid ones are still applied.
func Load() (Starfield, error) {
	cfg := Default()
	var errs []error

	collect := func(err error) {
		if err != nil {
			errs = append(errs, err)
		}
	}

	var err error
	cfg.BackgroundStars, err = GetEnvInt(EnvBackgroundStars, cfg.BackgroundStars)
	collect(err)
	cfg.ForegroundStars, err = GetEnvInt(EnvForegroundStars, cfg.ForegroundStars)
	collect(err)
	cfg.PixelRatio, err = GetEnvFloat(EnvPixelRatio, cfg.PixelRatio)
	collect(err)
	cfg.RefreshRate, err = GetEnvInt(EnvRefreshRate, cfg.RefreshRate)
	collect(err)
	cfg.FrameFloor, err = GetEnvDuration(EnvFrameFloor, cfg.FrameFloor)
	collect(err)
	cfg.ResizeDebounce, err = GetEnvDuration(EnvResizeDebounce, cfg.ResizeDebounce)
	collect(err)
	cfg.ReducedMotion, err = GetEnvBool(EnvReducedMotion, cfg.ReducedMotion)
	collect(err)
	cfg.Seed, err = GetEnvUint64(EnvSeed, cfg.Seed)
	collect(err)

	for key, dst := range map[string]*string{
		EnvColorProfile: &cfg.ColorProfile,
		EnvLogLevel:     &cfg.LogLevel,
		EnvLogFile:      &cfg.LogFile,
	} {
		if value, ok := lookup(key); ok {
			*dst = value
		}
	}

	collect(cfg.Validate())
	cfg.PixelRatio = ClampPixelRatio(cfg.PixelRatio)

	return cfg, errors.Join(errs...)
}

// Validate reports values the starfield cannot run with.
func (c Starfield) Validate() error {
	var errs []error
	if c.BackgroundStars < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvBackgroundStars, c.BackgroundStars))
	}
	if c.ForegroundStars < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %d", EnvForegroundStars, c.ForegroundStars))
	}
	if !(c.PixelRatio > 0) {
		errs = append(errs, fmt.Errorf("%s must be positive, got %v", EnvPixelRatio, c.PixelRatio))
	}
	if c.RefreshRate <= 0 {
		errs = append(errs, fmt.Errorf("%s must be positive, got %d", EnvRefreshRate, c.RefreshRate))
	}
	if c.FrameFloor < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %v", EnvFrameFloor, c.FrameFloor))
	}
	if c.ResizeDebounce < 0 {
		errs = append(errs, fmt.Errorf("%s must not be negative, got %v", EnvResizeDebounce, c.ResizeDebounce))
	}
	switch strings.ToLower(c.ColorProfile) {
	case "", "truecolor", "24bit", "256", "16", "ansi", "ascii", "none":
	default:
		errs = append(errs, fmt.Errorf("%s: unknown profile %q", EnvColorProfile, c.ColorProfile))
	}
	return errors.Join(errs...)
}

// WithSessionEnv applies the per-viewer settings an SSH client sent
// (reduced motion and colour profile) on top of c.
func (c Starfield) WithSessionEnv(environ []string) (Starfield, error) {
	if v, ok := LookupIn(environ, EnvReducedMotion); ok {
		b, err := ParseBool(v)
		if err != nil {
			return c, fmt.Errorf("%s: %w", EnvReducedMotion, err)
		}
		c.ReducedMotion = b
	}
	if v, ok := LookupIn(environ, EnvColorProfile); ok {
		c.ColorProfile = v
	}
	return c, c.Validate()
}

// ClampPixelRatio caps the ratio at MaxPixelRatio and replaces
// non-positive values with the default.
func ClampPixelRatio(ratio float64) float64 {
	if !(ratio > 0) {
		return DefaultPixelRatio
	}
	if ratio > MaxPixelRatio {
		return MaxPixelRatio
	}
	return ratio
}

// RefreshInterval is the scheduler tick period.
func (c Starfield) RefreshInterval() time.Duration {
	if c.RefreshRate <= 0 {
		return time.Second / DefaultRefreshRate
	}
	return time.Second / time.Duration(c.RefreshRate)
}

// TotalStars is the size of the star buffer.
func (c Starfield) TotalStars() int {
	return c.BackgroundStars + c.ForegroundStars
}
