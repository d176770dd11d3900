// Package interactive holds the parameter loop: it maps commands to width and
// step changes, re-renders the composite and exports it on request.
package interactive

import (
	"context"
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/ideamans/go-l10n"

	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

const (
	minIncrement = 0.001
	maxIncrement = 10000
)

// Renderer renders a sequence with the given parameters.
type Renderer interface {
	Render(seq pipeline.ColumnSequence, params pipeline.Params) (*image.RGBA, error)
}

// RenderFunc adapts a function to Renderer.
type RenderFunc func(seq pipeline.ColumnSequence, params pipeline.Params) (*image.RGBA, error)

// Render implements Renderer.
func (f RenderFunc) Render(seq pipeline.ColumnSequence, params pipeline.Params) (*image.RGBA, error) {
	return f(seq, params)
}

// Exporter writes a composite and returns where it went.
type Exporter interface {
	Export(img image.Image) (string, error)
}

// ExportFunc adapts a function to Exporter.
type ExportFunc func(img image.Image) (string, error)

// Export implements Exporter.
func (f ExportFunc) Export(img image.Image) (string, error) {
	return f(img)
}

// Options tunes how far one key press moves the parameters.
type Options struct {
	WidthIncrement float64 // default 1
	StepIncrement  float64 // default 0.25
	MinStep        float64 // default 0.25
}

// DefaultOptions returns the default increments.
func DefaultOptions() Options {
	return Options{WidthIncrement: 1, StepIncrement: 0.25, MinStep: 0.25}
}

// Result describes what one Apply call did.
type Result struct {
	Rendered bool   // the composite was re-rendered
	Quit     bool   // a quit command was seen; later commands were ignored
	Message  string // the last user-facing message, if any
}

// Controller owns the session parameters and the current composite.
// It is not safe for concurrent use.
type Controller struct {
	seq       pipeline.ColumnSequence
	params    pipeline.Params
	lastGood  pipeline.Params
	hasGood   bool
	img       *image.RGBA
	increment float64
	dirty     bool

	opts     Options
	renderer Renderer
	exporter Exporter
	logger   ports.Logger
}

// New creates a controller. Zero option fields take their defaults.
func New(seq pipeline.ColumnSequence, params pipeline.Params, renderer Renderer, exporter Exporter, logger ports.Logger, opts Options) *Controller {
	def := DefaultOptions()
	if opts.WidthIncrement <= 0 {
		opts.WidthIncrement = def.WidthIncrement
	}
	if opts.StepIncrement <= 0 {
		opts.StepIncrement = def.StepIncrement
	}
	if opts.MinStep <= 0 {
		opts.MinStep = def.MinStep
	}
	params.FullScale = params.FullScale || seq.FullScale

	return &Controller{
		seq:       seq,
		params:    params,
		increment: clampIncrement(opts.WidthIncrement),
		dirty:     true,
		opts:      opts,
		renderer:  renderer,
		exporter:  exporter,
		logger:    logger.WithComponent("interactive"),
	}
}

// Params returns the current parameters.
func (c *Controller) Params() pipeline.Params {
	return c.params
}

// Increment returns the current width increment.
func (c *Controller) Increment() float64 {
	return c.increment
}

// Image returns the last rendered composite, or nil before the first render.
func (c *Controller) Image() *image.RGBA {
	return c.img
}

// Status describes the session for a display.
func (c *Controller) Status(message string) ports.Status {
	return ports.Status{
		Width:     c.params.Width,
		Step:      c.params.Step,
		Increment: c.widthIncrement(),
		Columns:   c.seq.Len(),
		FullScale: c.params.FullScale,
		Message:   message,
	}
}

// Render renders the current parameters. When rendering fails after an
// earlier success, the parameters revert to the last rendered ones.
func (c *Controller) Render() error {
	img, err := c.renderer.Render(c.seq, c.params)
	if err != nil {
		if c.hasGood {
			c.logger.Warn("Cannot render width %.3f, step %.3f: %v", c.params.Width, c.params.Step, err)
			c.params = c.lastGood
		}
		c.dirty = false
		return err
	}
	c.img = img
	c.lastGood = c.params
	c.hasGood = true
	c.dirty = false
	return nil
}

// Apply runs one polling cycle's commands in order and renders at most once,
// after the last mutation, unless an export needs the pending state earlier.
// The returned error is the first export failure; later commands still run.
func (c *Controller) Apply(cmds []ports.Command) (Result, error) {
	var res Result
	var exportErr error

	for _, cmd := range cmds {
		switch cmd {
		case ports.CommandWidthUp:
			c.setWidth(c.params.Width + c.widthIncrement())
		case ports.CommandWidthDown:
			c.setWidth(c.params.Width - c.widthIncrement())
		case ports.CommandStepUp:
			c.setStep(c.params.Step + c.opts.StepIncrement)
		case ports.CommandStepDown:
			c.setStep(c.params.Step - c.opts.StepIncrement)
		case ports.CommandIncrementUp:
			c.increment = clampIncrement(c.increment * 10)
			res.Message = l10n.F("Width increment %g", c.widthIncrement())
		case ports.CommandIncrementDown:
			c.increment = clampIncrement(c.increment / 10)
			res.Message = l10n.F("Width increment %g", c.widthIncrement())
		case ports.CommandQuery:
			res.Message = l10n.F("Width %.3f, step %.3f, increment %g", c.params.Width, c.params.Step, c.widthIncrement())
			c.logger.Info("Width %.3f, step %.3f, increment %g", c.params.Width, c.params.Step, c.widthIncrement())
		case ports.CommandExport:
			msg, err := c.export(&res)
			res.Message = msg
			if err != nil && exportErr == nil {
				exportErr = err
			}
		case ports.CommandQuit:
			res.Quit = true
			return res, exportErr
		}
	}

	if c.dirty {
		if err := c.Render(); err != nil {
			res.Message = l10n.F("Cannot render: %v", err)
		} else {
			res.Rendered = true
		}
	}
	return res, exportErr
}

func (c *Controller) export(res *Result) (string, error) {
	if c.dirty || c.img == nil {
		if err := c.Render(); err != nil {
			if c.img == nil {
				return l10n.F("Export failed: %v", err), fmt.Errorf("export: %w", err)
			}
		} else {
			res.Rendered = true
		}
	}

	path, err := c.exporter.Export(c.img)
	if err != nil {
		c.logger.Error("Export failed: %v", err)
		return l10n.F("Export failed: %v", err), fmt.Errorf("export: %w", err)
	}
	c.logger.Info("Exported %s (width %.3f, step %.3f)", path, c.params.Width, c.params.Step)
	return l10n.F("Exported %s", path), nil
}

// Run shows the composite and processes commands until quit, context
// cancellation or a display failure. Export failures are reported and the
// loop continues.
func (c *Controller) Run(ctx context.Context, display ports.Display) error {
	if c.img == nil || c.dirty {
		if err := c.Render(); err != nil {
			return err
		}
	}
	if err := display.Show(c.img, c.Status("")); err != nil {
		return fmt.Errorf("show preview: %w", err)
	}

	for {
		cmds, err := display.Poll(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return err
			}
			return fmt.Errorf("read commands: %w", err)
		}
		if len(cmds) == 0 {
			continue
		}

		res, err := c.Apply(cmds)
		if res.Quit {
			return nil
		}
		msg := res.Message
		if err != nil {
			msg = err.Error()
		}
		if err := display.Show(c.img, c.Status(msg)); err != nil {
			return fmt.Errorf("show preview: %w", err)
		}
	}
}

func (c *Controller) setWidth(w float64) {
	w = round3(w)
	if c.params.FullScale {
		w = math.Round(w)
		if w < 1 {
			w = 1
		}
		if n := float64(c.seq.Len()); w > n {
			w = n
		}
	} else if w < 0 {
		w = 0
	}
	if w != c.params.Width {
		c.params.Width = w
		c.dirty = true
	}
}

func (c *Controller) setStep(s float64) {
	s = round3(s)
	if s < c.opts.MinStep {
		s = math.Min(c.params.Step, c.opts.MinStep)
	}
	if s != c.params.Step {
		c.params.Step = s
		c.dirty = true
	}
}

// widthIncrement is the increment in effect; full-scale widths move by whole frames.
func (c *Controller) widthIncrement() float64 {
	if c.params.FullScale {
		return math.Max(1, math.Floor(c.increment))
	}
	return c.increment
}

func clampIncrement(v float64) float64 {
	return math.Min(maxIncrement, math.Max(minIncrement, round3(v)))
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
