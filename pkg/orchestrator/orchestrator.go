// Package orchestrator wires decoding, reduction, resampling and export into
// one framestrip session.
package orchestrator

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"image"
	"image/color"
	"math"
	"path/filepath"
	"strings"

	"github.com/user/framestrip/pkg/interactive"
	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

// DefaultOutputPath is used when no output is given.
const DefaultOutputPath = "out.png"

// maxOutputCandidates bounds the search for a free output name.
const maxOutputCandidates = 10000

// Config contains everything one session needs.
type Config struct {
	// Input/Output
	InputPath      string
	OutputPath     string
	OutputExplicit bool // overwrite OutputPath instead of picking a free name

	// Reduction
	FullScale bool
	Reduction pipeline.Reduction
	Range     pipeline.RangeFilter

	// Composite
	Width    float64
	WidthSet bool
	Step     float64

	// Session
	Headless bool
	Controls interactive.Options
}

// DefaultConfig returns a Config with default values.
func DefaultConfig() Config {
	return Config{
		OutputPath: DefaultOutputPath,
		Reduction:  pipeline.ReductionRow,
		Range:      pipeline.FullRange(),
		Step:       1,
		Controls:   interactive.DefaultOptions(),
	}
}

// Orchestrator coordinates the stages of one session.
type Orchestrator struct {
	decoder      ports.VideoDecoder
	reduceStage  pipeline.Stage[pipeline.ReduceInput, pipeline.ColumnSequence]
	reshapeStage pipeline.Stage[pipeline.ReshapeInput, pipeline.ColumnSequence]
	resampler    interactive.Renderer
	codec        ports.ImageCodec
	fs           ports.FileSystem
	renderer     ports.Renderer
	sink         ports.DebugSink
	logger       ports.Logger
}

// New creates a new Orchestrator.
func New(
	decoder ports.VideoDecoder,
	reduceStage pipeline.Stage[pipeline.ReduceInput, pipeline.ColumnSequence],
	reshapeStage pipeline.Stage[pipeline.ReshapeInput, pipeline.ColumnSequence],
	resampler interactive.Renderer,
	codec ports.ImageCodec,
	fs ports.FileSystem,
	renderer ports.Renderer,
	sink ports.DebugSink,
	logger ports.Logger,
) *Orchestrator {
	return &Orchestrator{
		decoder:      decoder,
		reduceStage:  reduceStage,
		reshapeStage: reshapeStage,
		resampler:    resampler,
		codec:        codec,
		fs:           fs,
		renderer:     renderer,
		sink:         sink,
		logger:       logger,
	}
}

// RunResult describes a finished session for summary generation.
type RunResult struct {
	InputPath string
	Source    pipeline.SourceKind
	Video     ports.VideoInfo // zero in reshape mode

	Columns     int
	ColumnWidth int
	Height      int
	FullScale   bool
	Range       pipeline.RangeFilter
	Reduction   pipeline.Reduction

	Initial pipeline.Params
	Final   pipeline.Params
	Exports []string

	Headless bool
}

// DisplayOpener opens the interactive display once the input is loaded.
type DisplayOpener func() (ports.Display, error)

// Run loads the input, then either exports once (headless) or opens a display
// and hands control to the user until they quit. openDisplay may be nil in
// headless mode.
func (o *Orchestrator) Run(ctx context.Context, config Config, openDisplay DisplayOpener) (RunResult, error) {
	result := RunResult{
		InputPath: config.InputPath,
		Range:     config.Range,
		Reduction: config.Reduction,
		Headless:  config.Headless,
	}

	if _, err := o.codec.FormatFromPath(config.OutputPath); err != nil {
		return result, fmt.Errorf("%w: output %s: %w", pipeline.ErrInvalidParameter, config.OutputPath, err)
	}
	if !config.Headless && openDisplay == nil {
		return result, fmt.Errorf("%w: interactive mode needs a display", pipeline.ErrInvalidParameter)
	}

	// 1. Canonical sequence
	seq, info, err := o.Load(ctx, config)
	if err != nil {
		o.logger.Error("Failed to load %s: %v", config.InputPath, err)
		return result, err
	}
	result.Source = seq.Source
	result.Video = info
	result.Columns = seq.Len()
	result.ColumnWidth = seq.ColumnWidth
	result.Height = seq.Height
	result.FullScale = seq.FullScale
	o.logger.Info("Loaded %d columns of %dx%d", seq.Len(), seq.ColumnWidth, seq.Height)

	if o.sink.Enabled() {
		o.saveSequence(seq)
	}

	// 2. Initial parameters
	params, err := o.InitialParams(seq, config)
	if err != nil {
		o.logger.Error("Invalid parameters: %v", err)
		return result, err
	}
	result.Initial = params
	result.Final = params

	// 3. Session
	exporter := interactive.ExportFunc(func(img image.Image) (string, error) {
		path, err := o.export(img, config, len(result.Exports))
		if err != nil {
			return "", err
		}
		result.Exports = append(result.Exports, path)
		return path, nil
	})
	ctrl := interactive.New(seq, params, o.resampler, exporter, o.logger, config.Controls)

	if config.Headless {
		o.logger.Info("Rendering width %.3f, step %.3f", params.Width, params.Step)
		_, err = ctrl.Apply([]ports.Command{ports.CommandExport})
	} else {
		err = o.runInteractive(ctx, ctrl, openDisplay)
	}
	result.Final = ctrl.Params()

	if o.sink.Enabled() {
		o.saveParams(result)
	}
	return result, err
}

func (o *Orchestrator) runInteractive(ctx context.Context, ctrl *interactive.Controller, openDisplay DisplayOpener) error {
	display, err := openDisplay()
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer display.Close()

	return ctrl.Run(ctx, display)
}

// Load builds the canonical column sequence from a video or, for image
// inputs, from an existing composite.
func (o *Orchestrator) Load(ctx context.Context, config Config) (pipeline.ColumnSequence, ports.VideoInfo, error) {
	if config.InputPath == "" {
		return pipeline.ColumnSequence{}, ports.VideoInfo{}, fmt.Errorf("%w: no input file", pipeline.ErrInvalidParameter)
	}
	exists, err := o.fs.Exists(config.InputPath)
	if err != nil {
		return pipeline.ColumnSequence{}, ports.VideoInfo{}, fmt.Errorf("%w: %s: %w", pipeline.ErrDecode, config.InputPath, err)
	}
	if !exists {
		return pipeline.ColumnSequence{}, ports.VideoInfo{}, fmt.Errorf("%w: input %s does not exist", pipeline.ErrInvalidParameter, config.InputPath)
	}

	if IsImagePath(o.codec, config.InputPath) {
		seq, err := o.loadImage(ctx, config)
		return seq, ports.VideoInfo{}, err
	}
	return o.loadVideo(ctx, config)
}

func (o *Orchestrator) loadImage(ctx context.Context, config Config) (pipeline.ColumnSequence, error) {
	o.logger.Info("Reshaping %s", config.InputPath)

	data, err := o.fs.ReadFile(config.InputPath)
	if err != nil {
		return pipeline.ColumnSequence{}, fmt.Errorf("%w: read %s: %w", pipeline.ErrDecode, config.InputPath, err)
	}
	img, err := o.codec.Decode(data)
	if err != nil {
		return pipeline.ColumnSequence{}, fmt.Errorf("%w: %s: %w", pipeline.ErrInvalidImage, config.InputPath, err)
	}

	seq, err := o.reshapeStage.Execute(ctx, pipeline.ReshapeInput{
		Image:            img,
		Range:            config.Range,
		AssumedFullScale: config.FullScale,
	})
	if err != nil {
		return pipeline.ColumnSequence{}, fmt.Errorf("reshape stage: %w", err)
	}
	return seq, nil
}

func (o *Orchestrator) loadVideo(ctx context.Context, config Config) (pipeline.ColumnSequence, ports.VideoInfo, error) {
	o.logger.Info("Reducing %s", config.InputPath)

	src, err := o.decoder.Open(ctx, config.InputPath)
	if err != nil {
		return pipeline.ColumnSequence{}, ports.VideoInfo{}, fmt.Errorf("%w: open %s: %w", pipeline.ErrDecode, config.InputPath, err)
	}
	defer src.Close()

	info := src.Info()
	o.logger.Debug("Video %dx%d, %d frames, %.2f fps, codec %s", info.Width, info.Height, info.FrameCount, info.FPS, info.Codec)

	seq, err := o.reduceStage.Execute(ctx, pipeline.ReduceInput{
		Source:    src,
		Range:     config.Range,
		FullScale: config.FullScale,
		Reduction: config.Reduction,
	})
	if err != nil {
		return pipeline.ColumnSequence{}, info, fmt.Errorf("reduce stage: %w", err)
	}
	return seq, info, nil
}

// InitialParams derives the starting parameters. Without an explicit width the
// composite covers the whole sequence at the configured step.
func (o *Orchestrator) InitialParams(seq pipeline.ColumnSequence, config Config) (pipeline.Params, error) {
	p := pipeline.Params{
		Width:     config.Width,
		Step:      config.Step,
		FullScale: config.FullScale || seq.FullScale,
	}
	if config.WidthSet && !(p.Width > 0) {
		return pipeline.Params{}, fmt.Errorf("%w: width must be greater than 0, got %v", pipeline.ErrInvalidParameter, p.Width)
	}
	if !config.WidthSet && !math.IsNaN(p.Step) && p.Step > 0 {
		p.Width = math.Ceil(float64(seq.Len()) / p.Stride())
		if config.Headless {
			o.logger.Warn("No width given, using %g to cover the whole sequence", p.Width)
		}
	}
	if err := p.ValidateFor(seq); err != nil {
		return pipeline.Params{}, err
	}
	return p, nil
}

// export encodes img and writes it to the session's output path.
func (o *Orchestrator) export(img image.Image, config Config, index int) (string, error) {
	path := config.OutputPath
	if !config.OutputExplicit {
		free, err := o.freeOutputPath(path)
		if err != nil {
			return "", err
		}
		path = free
	}

	format, err := o.codec.FormatFromPath(path)
	if err != nil {
		return "", fmt.Errorf("%w: output %s: %w", pipeline.ErrInvalidParameter, path, err)
	}
	data, err := o.codec.Encode(img, format)
	if err != nil {
		return "", fmt.Errorf("encode %s: %w", path, err)
	}
	if err := o.fs.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("write %s: %w", path, err)
	}

	if o.sink.Enabled() {
		if err := o.sink.SaveRender(index, img); err != nil {
			o.logger.Warn("Failed to save debug render: %v", err)
		}
	}
	return path, nil
}

// freeOutputPath returns base, or the first of base1, base2, ... that does not exist yet.
func (o *Orchestrator) freeOutputPath(base string) (string, error) {
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	for i := 0; i < maxOutputCandidates; i++ {
		candidate := base
		if i > 0 {
			candidate = fmt.Sprintf("%s%d%s", stem, i, ext)
		}
		exists, err := o.fs.Exists(candidate)
		if err != nil {
			return "", fmt.Errorf("check %s: %w", candidate, err)
		}
		if !exists {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("%w: no free output name for %s", pipeline.ErrInvalidParameter, base)
}

// saveSequence lays the canonical columns side by side for inspection.
func (o *Orchestrator) saveSequence(seq pipeline.ColumnSequence) {
	if seq.Len() == 0 {
		return
	}
	canvas := o.renderer.CreateCanvas(seq.Len()*seq.ColumnWidth, seq.Height, color.Transparent)
	for i, col := range seq.Columns {
		canvas.DrawImage(col, i*seq.ColumnWidth, 0)
	}
	if err := o.sink.SaveSequence(canvas.ToImage()); err != nil {
		o.logger.Warn("Failed to save debug sequence: %v", err)
	}
}

type sessionJSON struct {
	Input       string          `json:"input"`
	Source      string          `json:"source"`
	Columns     int             `json:"columns"`
	ColumnWidth int             `json:"columnWidth"`
	Height      int             `json:"height"`
	Range       string          `json:"range"`
	Reduction   string          `json:"reduction"`
	Initial     pipeline.Params `json:"initial"`
	Final       pipeline.Params `json:"final"`
	Exports     []string        `json:"exports"`
}

func (o *Orchestrator) saveParams(result RunResult) {
	data, err := json.MarshalIndent(sessionJSON{
		Input:       result.InputPath,
		Source:      result.Source.String(),
		Columns:     result.Columns,
		ColumnWidth: result.ColumnWidth,
		Height:      result.Height,
		Range:       result.Range.String(),
		Reduction:   result.Reduction.String(),
		Initial:     result.Initial,
		Final:       result.Final,
		Exports:     result.Exports,
	}, "", "  ")
	if err != nil {
		return
	}
	if err := o.sink.SaveParamsJSON(data); err != nil {
		o.logger.Warn("Failed to save debug parameters: %v", err)
	}
}

// IsImagePath reports whether path names an image the codec can read,
// which selects reshape mode.
func IsImagePath(codec ports.ImageCodec, path string) bool {
	_, err := codec.FormatFromPath(path)
	return err == nil
}

// IsInterrupted reports whether err comes from a cancelled session.
func IsInterrupted(err error) bool {
	return errors.Is(err, context.Canceled)
}
