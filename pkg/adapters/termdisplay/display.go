// Package termdisplay previews composites in a raw-mode terminal and reads
// single-key commands.
package termdisplay

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/ideamans/go-l10n"
	"github.com/mattn/go-isatty"
	"golang.org/x/term"

	"github.com/user/framestrip/pkg/ports"
)

// ErrNotTerminal is returned when stdin or stdout is not a terminal.
var ErrNotTerminal = errors.New("interactive mode requires a terminal")

// statusLines is the number of terminal rows kept for the status text.
const statusLines = 3

// Options configures the preview.
type Options struct {
	// Background fills the area around the fitted preview.
	Background color.Color
	// MaxColumns caps the preview width in terminal cells (0 = terminal width).
	MaxColumns int
	// MaxRows caps the preview height in terminal cells (0 = terminal height).
	MaxRows int
	// OnRawMode is called with true after the terminal enters raw mode and
	// with false after it is restored.
	OnRawMode func(raw bool)
}

// Display implements ports.Display on a terminal.
type Display struct {
	out      io.Writer
	size     func() (int, int, error)
	renderer ports.Renderer
	opts     Options

	keys chan []byte
	errs chan error

	mu      sync.Mutex
	restore func() error
	closed  bool
}

// New puts the terminal into raw mode and starts reading keys from stdin.
func New(renderer ports.Renderer, opts Options) (*Display, error) {
	inFd, outFd := os.Stdin.Fd(), os.Stdout.Fd()
	if !isatty.IsTerminal(inFd) || !isatty.IsTerminal(outFd) {
		return nil, ErrNotTerminal
	}

	state, err := term.MakeRaw(int(inFd))
	if err != nil {
		return nil, fmt.Errorf("enter raw mode: %w", err)
	}

	d := newDisplay(os.Stdin, os.Stdout, func() (int, int, error) {
		return term.GetSize(int(outFd))
	}, renderer, opts)
	d.restore = func() error {
		return term.Restore(int(inFd), state)
	}

	if opts.OnRawMode != nil {
		opts.OnRawMode(true)
	}
	fmt.Fprint(d.out, ansiHideCursor+ansiClear)
	return d, nil
}

func newDisplay(in io.Reader, out io.Writer, size func() (int, int, error), renderer ports.Renderer, opts Options) *Display {
	if opts.Background == nil {
		opts.Background = color.Black
	}
	d := &Display{
		out:      out,
		size:     size,
		renderer: renderer,
		opts:     opts,
		keys:     make(chan []byte, 16),
		errs:     make(chan error, 1),
	}
	go d.readKeys(in)
	return d
}

func (d *Display) readKeys(in io.Reader) {
	buf := make([]byte, 64)
	for {
		n, err := in.Read(buf)
		if n > 0 {
			chunk := make([]byte, n)
			copy(chunk, buf[:n])
			d.keys <- chunk
		}
		if err != nil {
			d.errs <- err
			return
		}
	}
}

// Show clears the screen and draws img fitted to the terminal with the status below.
func (d *Display) Show(img image.Image, status ports.Status) error {
	cols, rows, err := d.size()
	if err != nil || cols <= 0 || rows <= 0 {
		cols, rows = 80, 24
	}
	if d.opts.MaxColumns > 0 && cols > d.opts.MaxColumns {
		cols = d.opts.MaxColumns
	}
	rows -= statusLines
	if d.opts.MaxRows > 0 && rows > d.opts.MaxRows {
		rows = d.opts.MaxRows
	}

	var sb strings.Builder
	sb.WriteString(ansiClear)

	if img != nil {
		if preview := d.preview(img, cols, rows*2); preview != nil {
			sb.WriteString(EncodeHalfBlocks(preview, d.opts.Background))
		}
	}

	sb.WriteString(StatusLine(status))
	sb.WriteString("\r\n")
	if status.Message != "" {
		sb.WriteString(status.Message)
		sb.WriteString("\r\n")
	}

	_, err = io.WriteString(d.out, sb.String())
	return err
}

// preview scales img into maxW x maxH pixels and places it on a background canvas.
func (d *Display) preview(img image.Image, maxW, maxH int) image.Image {
	b := img.Bounds()
	w, h := fit(b.Dx(), b.Dy(), maxW, maxH)
	if w == 0 || h == 0 {
		return nil
	}

	scaled := d.renderer.ResizeImage(img, w, h)
	canvas := d.renderer.CreateCanvas(w, h+h%2, d.opts.Background)
	canvas.DrawImage(scaled, 0, 0)
	return canvas.ToImage()
}

// StatusLine formats the session parameters and the key help.
func StatusLine(s ports.Status) string {
	line := l10n.F("width %.3f  step %.3f  increment %g  columns %d", s.Width, s.Step, s.Increment, s.Columns)
	if s.FullScale {
		line += "  " + l10n.T("full-scale")
	}
	return line + "\r\n" + l10n.T("a/d width  w/s step  [/] increment  q query  Enter export  Esc quit")
}

// Poll blocks until keys arrive and returns every command typed so far.
func (d *Display) Poll(ctx context.Context) ([]ports.Command, error) {
	var data []byte
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case chunk := <-d.keys:
		data = chunk
	case err := <-d.errs:
		if errors.Is(err, io.EOF) {
			return []ports.Command{ports.CommandQuit}, nil
		}
		return nil, fmt.Errorf("read keys: %w", err)
	}

	for {
		select {
		case chunk := <-d.keys:
			data = append(data, chunk...)
		default:
			return ParseKeys(data), nil
		}
	}
}

// Close restores the terminal. It is safe to call more than once.
func (d *Display) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.closed {
		return nil
	}
	d.closed = true

	fmt.Fprint(d.out, ansiReset+ansiShowCursor+"\r\n")

	var err error
	if d.restore != nil {
		err = d.restore()
	}
	if d.opts.OnRawMode != nil {
		d.opts.OnRawMode(false)
	}
	return err
}

var _ ports.Display = (*Display)(nil)
