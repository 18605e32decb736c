// Package input reads viewer keystrokes from a raw terminal stream.
package input

import (
	"context"
	"io"
	"time"
)

// PollInterval is how often Watch drains the stream.
const PollInterval = 30 * time.Millisecond

// Key bytes the viewer can send.
const (
	keyInterrupt = '\x03' // Ctrl-C in raw mode
	keyEscape    = '\x1b'
)

// Input is the result of one drain of the stream.
type Input struct {
	Quit      bool // q or Q
	Escape    bool // Esc on its own, not the start of an escape sequence
	Interrupt bool // Ctrl-C
	Closed    bool // The reader returned an error or EOF
	Pressed   []byte
}

// Leave reports whether the viewer asked to leave or went away.
func (in Input) Leave() bool {
	return in.Quit || in.Escape || in.Interrupt || in.Closed
}

// Stream delivers input bytes via a channel.
type Stream struct {
	ch   chan byte
	buf  []byte
	held int // Trailing bytes of buf carried into the next drain
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
// The channel is closed when r returns an error.
func StartStream(r io.ByteReader) *Stream {
	s := &Stream{
		ch:  make(chan byte, 128),
		buf: make([]byte, 0, 128),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// ReadInput drains all available bytes from the stream (non-blocking).
// Escape sequences such as arrow keys are skipped so their leading ESC is
// not mistaken for the Esc key. A sequence cut off at the end of a drain is
// carried into the next one; an ESC that is still alone then counts as Esc.
// The returned Pressed slice is reused by the next call.
func ReadInput(s *Stream) Input {
	var in Input
	buf := s.buf[:copy(s.buf, s.buf[len(s.buf)-s.held:])]
	carried := len(buf)
	s.held = 0

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				in.Closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}
	s.buf = buf
	canWait := len(buf) > carried && !in.Closed

	for i := 0; i < len(buf); i++ {
		b := buf[i]

		if b == keyEscape {
			n, complete := escapeSequence(buf[i:])
			if !complete && canWait {
				s.held = len(buf) - i
				buf = buf[:i]
				break
			}
			if n == 1 {
				in.Escape = true
			}
			i += n - 1
			continue
		}

		switch b {
		case 'q', 'Q':
			in.Quit = true
		case keyInterrupt:
			in.Interrupt = true
		}
	}

	in.Pressed = buf
	return in
}

// escapeSequence measures the sequence starting with the ESC at buf[0].
// CSI (ESC [) and SS3 (ESC O) run to their final byte; any other ESC is
// one byte long. complete is false when buf ends before that is known.
func escapeSequence(buf []byte) (n int, complete bool) {
	if len(buf) == 1 {
		return 1, false
	}
	if buf[1] != '[' && buf[1] != 'O' {
		return 1, true
	}
	for n = 2; n < len(buf); n++ {
		if buf[n] >= 0x40 && buf[n] <= 0x7e {
			return n + 1, true
		}
	}
	return n, false
}

// Watch polls s until the viewer leaves or ctx is done. It returns the
// input that ended the watch; on cancellation the zero Input is returned.
func Watch(ctx context.Context, s *Stream, interval time.Duration) Input {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return Input{}
		case <-ticker.C:
			if in := ReadInput(s); in.Leave() {
				return in
			}
		}
	}
}
