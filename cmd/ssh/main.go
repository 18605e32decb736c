// Command ssh serves the star field to SSH clients. Every session gets its
// own independent starfield.
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/logging"
	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/tomz197/starfield/internal/config"
	"github.com/tomz197/starfield/internal/draw"
	"github.com/tomz197/starfield/internal/input"
	"github.com/tomz197/starfield/internal/loop"
)

const (
	defaultHost        = "::"
	defaultPort        = "2222"
	defaultHostKeyPath = ".ssh/starfield_ed25519"

	shutdownTimeout = 5 * time.Second
)

func main() {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "starfield-ssh",
	})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal("invalid configuration", "err", err)
	}
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	} else {
		logger.Warn("unknown log level, using info", "level", cfg.LogLevel)
	}

	host := config.GetEnv("SSH_HOST", defaultHost)
	port := config.GetEnv("SSH_PORT", defaultPort)
	hostKeyPath := config.GetEnv("SSH_HOST_KEY", defaultHostKeyPath)
	logger.Info("SSH config", "host", host, "port", port, "hostKeyPath", hostKeyPath)

	opts := []ssh.Option{
		wish.WithAddress(net.JoinHostPort(host, port)),
		wish.WithMiddleware(
			starfieldMiddleware(cfg, logger),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(logger),
		),
		// Frames are latency sensitive
		ssh.WrapConn(func(ctx ssh.Context, conn net.Conn) net.Conn {
			if tcpConn, ok := conn.(*net.TCPConn); ok {
				_ = tcpConn.SetNoDelay(true)
			}
			return conn
		}),
	}
	if hostKeyPath != "" {
		opts = append(opts, wish.WithHostKeyPath(hostKeyPath))
	}

	s, err := wish.NewServer(opts...)
	if err != nil {
		logger.Fatal("failed to create server", "err", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting SSH server", "addr", s.Addr)
		if err := s.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		logger.Info("Shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := s.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	})

	if err := g.Wait(); err != nil {
		logger.Fatal("server stopped", "err", err)
	}
	logger.Info("Server stopped")
}

// starfieldMiddleware runs one starfield for the lifetime of each session.
func starfieldMiddleware(base config.Starfield, logger *log.Logger) wish.Middleware {
	return func(next ssh.Handler) ssh.Handler {
		return func(sess ssh.Session) {
			pty, winCh, ok := sess.Pty()
			if !ok {
				fmt.Fprintln(sess, "Error: PTY required. Please connect with: ssh -t user@host")
				return
			}

			sessLog := logger.With("session", uuid.NewString(), "user", sess.User())
			sessLog.Info("session started", "term", pty.Term, "cols", pty.Window.Width, "rows", pty.Window.Height)

			if err := serveSession(sess, pty, winCh, base, sessLog); err != nil {
				sessLog.Error("session failed", "err", err)
				fmt.Fprintf(sess, "starfield: %v\r\n", err)
			}

			sessLog.Info("session ended")
			next(sess)
		}
	}
}

func serveSession(sess ssh.Session, pty ssh.Pty, winCh <-chan ssh.Window, base config.Starfield, logger *log.Logger) error {
	environ := sess.Environ()
	cfg, err := base.WithSessionEnv(environ)
	if err != nil {
		return err
	}

	profile, ok := draw.ParseProfile(cfg.ColorProfile)
	if !ok {
		colorTerm, _ := config.LookupIn(environ, "COLORTERM")
		profile = draw.ProfileFor(pty.Term, colorTerm)
	}

	sizes := newSizeTracker(pty.Window.Width, pty.Window.Height)
	screen := draw.NewScreen(sess, pty.Window.Width, pty.Window.Height, cfg.PixelRatio, profile)
	driver, err := loop.New(cfg, screen, sizes.getSize, logger)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(sess.Context())
	defer cancel()

	// Listen for window size changes
	go func() {
		for {
			select {
			case <-ctx.Done():
				return
			case win, ok := <-winCh:
				if !ok {
					return
				}
				sizes.update(win.Width, win.Height)
				driver.NotifyResize(win.Width, win.Height)
			}
		}
	}()

	stream := input.StartStream(bufio.NewReader(sess))
	go func() {
		defer cancel()
		if in := input.Watch(ctx, stream, input.PollInterval); in.Leave() {
			logger.Debug("viewer left", "closed", in.Closed)
		}
	}()

	if err := screen.Open(); err != nil {
		return fmt.Errorf("open screen: %w", err)
	}
	runErr := driver.Run(ctx)
	if err := screen.Close(); err != nil {
		logger.Debug("restore screen", "err", err)
	}
	logger.Debug("driver stopped", "frames", driver.Frames())
	return runErr
}

// sizeTracker tracks terminal size from SSH window change events.
type sizeTracker struct {
	mu     sync.RWMutex
	width  int
	height int
}

func newSizeTracker(width, height int) *sizeTracker {
	return &sizeTracker{width: width, height: height}
}

func (s *sizeTracker) update(width, height int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.width = width
	s.height = height
}

func (s *sizeTracker) getSize() (int, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.width, s.height, nil
}

// Ensure sizeTracker.getSize satisfies draw.TermSizeFunc
var _ draw.TermSizeFunc = (*sizeTracker)(nil).getSize
