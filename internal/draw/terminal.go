package draw

import (
	"bufio"
	"bytes"
	"io"
	"os"
	"strconv"

	"github.com/muesli/termenv"
	"golang.org/x/term"
)

// Escape sequences used around rendering.
const (
	clearScreen       = "\033[H\033[2J"
	resetStyle        = "\033[0m"
	defaultBackground = "49"
	hideCursor        = "\033[?25l"
	showCursor        = "\033[?25h"
	enterAltScreen    = "\033[?1049h"
	exitAltScreen     = "\033[?1049l"
)

// maxChunkSize is the maximum bytes to write at once for optimal network flow.
// 1400 bytes leaves room for SSH and TCP/IP headers within a typical 1500 byte MTU.
const maxChunkSize = 1400

// ChunkWriter accumulates text for terminal output and writes in chunks for optimal
// network flow (e.g. over SSH). Use MoveCursor, WriteString, WriteRune to accumulate,
// then Flush to write to the underlying writer.
type ChunkWriter struct {
	buf    bytes.Buffer // Reset keeps the capacity grown by earlier frames
	bufw   *bufio.Writer // Buffers writes to underlying writer for fewer syscalls
	numBuf [20]byte      // Scratch buffer for allocation-free integer formatting
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer) *ChunkWriter {
	return &ChunkWriter{
		bufw: bufio.NewWriterSize(w, 8192),
	}
}

// MoveCursor appends an ANSI cursor position sequence. col and row are 1-based.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.WriteInt(row)
	cw.buf.WriteByte(';')
	cw.WriteInt(col)
	cw.buf.WriteByte('H')
}

// WriteInt appends n in decimal.
func (cw *ChunkWriter) WriteInt(n int) {
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(n), 10))
}

// Write implements io.Writer.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// WriteByte appends a byte to the buffer.
func (cw *ChunkWriter) WriteByte(c byte) error {
	return cw.buf.WriteByte(c)
}

// WriteRune appends a rune to the buffer.
func (cw *ChunkWriter) WriteRune(r rune) {
	cw.buf.WriteRune(r)
}

// Len returns the number of buffered bytes not yet flushed.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len()
}

// Ensure ChunkWriter satisfies io.Writer.
var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.Bytes()
	defer cw.buf.Reset()
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.Write(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// TermSizeFunc is a function that returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// Screen is a Canvas bound to a terminal writer.
type Screen struct {
	*Canvas
	out *ChunkWriter
}

// NewScreen creates a screen of cols×rows cells writing to w.
func NewScreen(w io.Writer, cols, rows int, pixelRatio float64, profile termenv.Profile) *Screen {
	return &Screen{
		Canvas: NewCanvas(cols, rows, pixelRatio, profile),
		out:    NewChunkWriter(w),
	}
}

// Open switches to the alternate screen and hides the cursor.
func (s *Screen) Open() error {
	s.out.WriteString(enterAltScreen + hideCursor + clearScreen)
	s.ForceRedraw()
	return s.out.Flush()
}

// Present writes the changed cells to the terminal.
func (s *Screen) Present() error {
	s.Render(s.out)
	return s.out.Flush()
}

// Close restores the cursor and the primary screen.
func (s *Screen) Close() error {
	s.out.WriteString(resetStyle + clearScreen + showCursor + exitAltScreen)
	return s.out.Flush()
}
