// Package progress reports decoding progress on the terminal.
package progress

import (
	"io"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"

	"github.com/user/framestrip/pkg/ports"
)

// Bar implements ports.Progress with a terminal progress bar.
type Bar struct {
	w   io.Writer
	bar *progressbar.ProgressBar
}

// NewBar creates a progress bar that renders to w.
func NewBar(w io.Writer) *Bar {
	return &Bar{w: w}
}

// NewStderr returns a bar on stderr when it is a terminal and a no-op
// otherwise.
func NewStderr() ports.Progress {
	if isatty.IsTerminal(os.Stderr.Fd()) || isatty.IsCygwinTerminal(os.Stderr.Fd()) {
		return NewBar(os.Stderr)
	}
	return Noop{}
}

// Start begins a new bar. An unknown total renders a spinner.
func (b *Bar) Start(total int, description string) {
	if b.bar != nil {
		_ = b.bar.Finish()
	}
	max := int64(total)
	if total <= 0 {
		max = -1
	}
	b.bar = progressbar.NewOptions64(max,
		progressbar.OptionSetWriter(b.w),
		progressbar.OptionSetDescription(description),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "█",
			SaucerHead:    "█",
			SaucerPadding: "░",
			BarStart:      "▐",
			BarEnd:        "▌",
		}),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionThrottle(65*time.Millisecond),
		progressbar.OptionSetRenderBlankState(true),
		progressbar.OptionClearOnFinish(),
	)
}

// Add advances the bar.
func (b *Bar) Add(n int) {
	if b.bar == nil {
		return
	}
	_ = b.bar.Add(n)
}

// Finish completes and clears the bar.
func (b *Bar) Finish() {
	if b.bar == nil {
		return
	}
	_ = b.bar.Finish()
	b.bar = nil
}

// Noop discards progress.
type Noop struct{}

func (Noop) Start(total int, description string) {}
func (Noop) Add(n int)                           {}
func (Noop) Finish()                             {}

var (
	_ ports.Progress = (*Bar)(nil)
	_ ports.Progress = Noop{}
)
