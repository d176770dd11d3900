// Package main provides the CLI entry point for framestrip.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	"github.com/ideamans/go-l10n"
	"github.com/urfave/cli/v2"

	"github.com/user/framestrip/pkg/adapters/filesink"
	"github.com/user/framestrip/pkg/adapters/ggrenderer"
	"github.com/user/framestrip/pkg/adapters/imagecodec"
	"github.com/user/framestrip/pkg/adapters/logger"
	"github.com/user/framestrip/pkg/adapters/nullsink"
	"github.com/user/framestrip/pkg/adapters/osfilesystem"
	"github.com/user/framestrip/pkg/adapters/progress"
	"github.com/user/framestrip/pkg/adapters/smartdecoder"
	"github.com/user/framestrip/pkg/adapters/termdisplay"
	"github.com/user/framestrip/pkg/config"
	"github.com/user/framestrip/pkg/orchestrator"
	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
	"github.com/user/framestrip/pkg/stages/reduce"
	"github.com/user/framestrip/pkg/stages/resample"
	"github.com/user/framestrip/pkg/stages/reshape"
	"github.com/user/framestrip/pkg/summarizer"
)

var version = "dev"

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, l10n.F("Error: %v", err))
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:            "framestrip",
		Usage:           l10n.T("Reduce a video's frames into one composite strip image"),
		UsageText:       "framestrip [options] <input_file>",
		Description:     l10n.T("Each frame becomes one column (the mean of each row), or stays whole with -f. An image input is reshaped instead: each of its columns is one entry. Without -a an interactive preview lets you tune width and step before exporting."),
		Version:         version,
		HideHelpCommand: true,
		Flags:           flags(),
		Action:          run,
	}
}

func flags() []cli.Flag {
	output := l10n.T("Output")
	composite := l10n.T("Composite")
	session := l10n.T("Session")
	debug := l10n.T("Debug")
	logging := l10n.T("Logging")

	return []cli.Flag{
		&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Value: orchestrator.DefaultOutputPath, Usage: l10n.T("Output image path (png, jpg, gif, tif, bmp); without -o the first free out<N>.png is used"), Category: output},

		&cli.BoolFlag{Name: "full-scale", Aliases: []string{"f"}, Usage: l10n.T("Keep whole frames instead of reducing them to columns"), Category: composite},
		&cli.Float64Flag{Name: "width", Aliases: []string{"w"}, Usage: l10n.T("Initial width in frames, fractional allowed (default: whole sequence)"), Category: composite},
		&cli.Float64Flag{Name: "step", Usage: l10n.T("Initial step through the sequence (default: 1)"), Category: composite},
		&cli.StringFlag{Name: "range", Aliases: []string{"r"}, Usage: l10n.T("Frames or columns to use as <start>:<end>; start inclusive, negative end counts from the end"), Category: composite},
		&cli.StringFlag{Name: "reduce", Usage: l10n.T("Frame reduction: row (one pixel per row) or pixel (one pixel per frame)"), Category: composite},

		&cli.BoolFlag{Name: "headless", Aliases: []string{"a"}, Usage: l10n.T("Render and export once without the interactive preview"), Category: session},
		&cli.StringFlag{Name: "config", Aliases: []string{"c"}, Usage: l10n.T("YAML configuration file"), Category: session},
		&cli.StringFlag{Name: "ffmpeg", Usage: l10n.T("Path to the ffmpeg executable"), Category: session},
		&cli.IntFlag{Name: "workers", Usage: l10n.T("Render workers (default: number of CPUs)"), Category: session},
		&cli.StringFlag{Name: "summary", Usage: l10n.T("Write a Markdown session summary to this path"), Category: session},

		&cli.BoolFlag{Name: "debug", Usage: l10n.T("Save intermediate results"), Category: debug},
		&cli.StringFlag{Name: "debug-dir", Usage: l10n.T("Directory for debug output (default: ./debug)"), Category: debug},

		&cli.StringFlag{Name: "log-level", Aliases: []string{"l"}, Usage: l10n.T("Log level (debug, info, warn, error)"), Category: logging},
		&cli.BoolFlag{Name: "quiet", Aliases: []string{"q"}, Usage: l10n.T("Suppress all log output"), Category: logging},
	}
}

// buildConfig layers CLI flags over the configuration file or the defaults.
func buildConfig(c *cli.Context) (config.Config, error) {
	cfg := config.Defaults()
	if path := c.String("config"); path != "" {
		loaded, err := config.LoadFromFile(path)
		if err != nil {
			return cfg, fmt.Errorf("%w: config: %w", pipeline.ErrInvalidParameter, err)
		}
		cfg = loaded
	}

	if c.IsSet("output") {
		cfg.OutputPath = c.String("output")
	}
	if c.IsSet("full-scale") {
		cfg.FullScale = c.Bool("full-scale")
	}
	if c.IsSet("width") {
		w := c.Float64("width")
		cfg.Width = &w
	}
	if c.IsSet("step") {
		cfg.Step = c.Float64("step")
	}
	if c.IsSet("range") {
		cfg.Range = c.String("range")
	}
	if c.IsSet("reduce") {
		cfg.Reduction = c.String("reduce")
	}
	if c.IsSet("ffmpeg") {
		cfg.FFmpegPath = c.String("ffmpeg")
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if c.IsSet("debug") {
		cfg.Debug = c.Bool("debug")
	}
	if c.IsSet("debug-dir") {
		cfg.DebugDir = c.String("debug-dir")
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	return cfg, nil
}

func run(c *cli.Context) error {
	if c.NArg() == 0 {
		cli.ShowAppHelp(c)
		return cli.Exit("", 1)
	}
	if c.NArg() > 1 {
		return fmt.Errorf("%w: expected one input file, got %d", pipeline.ErrInvalidParameter, c.NArg())
	}

	cfg, err := buildConfig(c)
	if err != nil {
		return err
	}
	orchConfig, err := cfg.ToOrchestratorConfig(c.Args().First())
	if err != nil {
		return err
	}
	orchConfig.Headless = c.Bool("headless")
	if c.IsSet("output") {
		orchConfig.OutputExplicit = true
	}

	// Create logger
	var log ports.Logger
	var console *logger.ConsoleLogger
	var prog ports.Progress = progress.Noop{}
	if c.Bool("quiet") {
		log = logger.NewNoop()
	} else {
		console = logger.NewConsole(ports.ParseLogLevel(cfg.LogLevel))
		log = console
		prog = progress.NewStderr()
	}

	// Setup context with cancellation
	ctx, cancel := context.WithCancel(c.Context)
	defer cancel()

	// Handle signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(sigCh)
	go func() {
		select {
		case <-sigCh:
			log.Warn("Interrupted, shutting down...")
			cancel()
		case <-ctx.Done():
		}
	}()

	// Create adapters
	fs := osfilesystem.New()
	codec := imagecodec.New(0)
	renderer := ggrenderer.New()
	decoder := smartdecoder.New(smartdecoder.Options{FFmpegPath: cfg.FFmpegPath}, log)

	// Create debug sink
	var sink ports.DebugSink
	if cfg.Debug {
		if err := fs.MkdirAll(cfg.DebugDir); err != nil {
			return fmt.Errorf("create debug directory: %w", err)
		}
		sink = filesink.New(cfg.DebugDir, fs, codec)
	} else {
		sink = nullsink.New()
	}

	// Create stages
	reduceStage := reduce.NewStage(prog, log)
	reshapeStage := reshape.NewStage(log)
	resampleStage := resample.NewStage(log, cfg.Workers)

	orch := orchestrator.New(
		decoder,
		reduceStage,
		reshapeStage,
		resampleStage,
		codec,
		fs,
		renderer,
		sink,
		log,
	)

	openDisplay := func() (ports.Display, error) {
		opts := termdisplay.Options{
			Background: config.ParseColor(cfg.Preview.BackgroundColor),
			MaxColumns: cfg.Preview.MaxColumns,
			MaxRows:    cfg.Preview.MaxRows,
		}
		if console != nil {
			opts.OnRawMode = console.SetRawTerminal
		}
		d, err := termdisplay.New(renderer, opts)
		if err != nil {
			return nil, fmt.Errorf("%w (use -a for headless mode)", err)
		}
		return d, nil
	}

	result, err := orch.Run(ctx, orchConfig, openDisplay)
	if err != nil {
		if orchestrator.IsInterrupted(err) {
			return cli.Exit(l10n.T("Interrupted"), 1)
		}
		return err
	}

	if path := c.String("summary"); path != "" {
		if err := writeSummary(fs, path, result); err != nil {
			return err
		}
		log.Info("Summary saved to %s", path)
	}
	return nil
}

func writeSummary(fs ports.FileSystem, path string, result orchestrator.RunResult) error {
	summary := summarizer.NewBuilder().
		WithInput(summarizer.InputInfo{
			Path:       result.InputPath,
			Kind:       result.Source.String(),
			Headless:   result.Headless,
			Codec:      result.Video.Codec,
			Width:      result.Video.Width,
			Height:     result.Video.Height,
			FrameCount: result.Video.FrameCount,
			FPS:        result.Video.FPS,
		}).
		WithSequence(summarizer.SequenceInfo{
			Columns:     result.Columns,
			ColumnWidth: result.ColumnWidth,
			Height:      result.Height,
			FullScale:   result.FullScale,
			Range:       result.Range.String(),
			Reduction:   result.Reduction.String(),
		}).
		WithParams(result.Initial.Width, result.Initial.Step, result.Final.Width, result.Final.Step).
		WithExports(result.Exports).
		Build()

	return summarizer.NewWriter(summarizer.NewMarkdownFormatter(), fs).Write(path, summary)
}
