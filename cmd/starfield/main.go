// Command starfield animates the star field in the local terminal.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/muesli/termenv"
	"golang.org/x/term"

	"github.com/tomz197/starfield/internal/config"
	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/input"
	"github.com/tomz197/starfield/internal/loop"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "starfield: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}

	// The terminal is the display, so logs only go to a file.
	logOut := io.Discard
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		defer f.Close()
		logOut = f
	}
	logger := newLogger(logOut, cfg.LogLevel)

	fd := int(os.Stdin.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("stdin is not a terminal")
	}
	oldState, err := term.MakeRaw(fd)
	if err != nil {
		return fmt.Errorf("failed to enable raw mode: %w", err)
	}
	defer func() {
		_ = term.Restore(fd, oldState)
	}()

	cols, rows, err := draw.DefaultTermSizeFunc()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}
	profile, ok := draw.ParseProfile(cfg.ColorProfile)
	if !ok {
		profile = termenv.EnvColorProfile()
	}
	logger.Info("starting", "cols", cols, "rows", rows, "profile", profile, "reducedMotion", cfg.ReducedMotion)

	screen := draw.NewScreen(os.Stdout, cols, rows, cfg.PixelRatio, profile)
	driver, err := loop.New(cfg, screen, draw.DefaultTermSizeFunc, logger)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	stream := input.StartStream(bufio.NewReader(os.Stdin))
	go func() {
		defer cancel()
		if in := input.Watch(ctx, stream, input.PollInterval); in.Leave() {
			logger.Debug("viewer left", "closed", in.Closed)
		}
	}()

	if err := screen.Open(); err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	defer func() {
		if err := screen.Close(); err != nil {
			logger.Warn("restore screen", "err", err)
		}
	}()

	err = driver.Run(ctx)
	logger.Info("stopped", "frames", driver.Frames())
	return err
}

func newLogger(w io.Writer, level string) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfield",
	})
	lvl, err := log.ParseLevel(level)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", level)
		lvl = log.InfoLevel
	}
	logger.SetLevel(lvl)
	return logger
}
