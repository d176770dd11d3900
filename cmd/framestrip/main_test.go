package main

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/urfave/cli/v2"

	"github.com/user/framestrip/pkg/config"
	"github.com/user/framestrip/pkg/pipeline"
)

// parse runs the CLI with args and returns the merged configuration.
func parse(t *testing.T, args ...string) (config.Config, *cli.Context, error) {
	t.Helper()
	var (
		cfg    config.Config
		ctx    *cli.Context
		cfgErr error
	)
	app := newApp()
	app.Action = func(c *cli.Context) error {
		ctx = c
		cfg, cfgErr = buildConfig(c)
		return nil
	}
	if err := app.Run(append([]string{"framestrip"}, args...)); err != nil {
		t.Fatalf("unexpected CLI error: %v", err)
	}
	return cfg, ctx, cfgErr
}

func TestBuildConfig_Defaults(t *testing.T) {
	cfg, c, err := parse(t, "clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Args().First() != "clip.mp4" {
		t.Errorf("expected input clip.mp4, got %q", c.Args().First())
	}
	if cfg.OutputPath != "out.png" || cfg.FullScale || cfg.Width != nil || cfg.Step != 1 {
		t.Errorf("unexpected defaults %+v", cfg)
	}
	if cfg.Workers <= 0 {
		t.Errorf("expected positive worker count, got %d", cfg.Workers)
	}
}

func TestBuildConfig_ShortFlags(t *testing.T) {
	cfg, c, err := parse(t, "-o", "strip.jpg", "-f", "-w", "12.5", "-a", "-r", "3:-2", "clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.OutputPath != "strip.jpg" || !cfg.FullScale || cfg.Range != "3:-2" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.Width == nil || *cfg.Width != 12.5 {
		t.Errorf("expected width 12.5, got %v", cfg.Width)
	}
	if !c.Bool("headless") {
		t.Error("expected -a to select headless mode")
	}
}

func TestBuildConfig_FlagsOverrideFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "framestrip.yaml")
	if err := os.WriteFile(path, []byte("step: 3\nreduction: pixel\nworkers: 2\n"), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, _, err := parse(t, "-c", path, "--step", "0.5", "clip.mp4")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Step != 0.5 {
		t.Errorf("expected flag step 0.5, got %v", cfg.Step)
	}
	if cfg.Reduction != "pixel" || cfg.Workers != 2 {
		t.Errorf("expected file values to survive, got %+v", cfg)
	}
}

func TestBuildConfig_MissingConfigFile(t *testing.T) {
	_, _, err := parse(t, "-c", filepath.Join(t.TempDir(), "missing.yaml"), "clip.mp4")
	if !errors.Is(err, pipeline.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRun_TooManyInputs(t *testing.T) {
	err := newApp().Run([]string{"framestrip", "-a", "a.mp4", "b.mp4"})
	if !errors.Is(err, pipeline.ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}

func TestRun_Headless(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "strip.png")
	output := filepath.Join(dir, "reshaped.png")
	summary := filepath.Join(dir, "summary.md")

	writeTestPNG(t, input)

	err := newApp().Run([]string{"framestrip", "-q", "-a", "-w", "2", "--step", "2", "-o", output, "--summary", summary, input})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := os.Stat(output); err != nil {
		t.Errorf("expected output image: %v", err)
	}
	data, err := os.ReadFile(summary)
	if err != nil || len(data) == 0 {
		t.Errorf("expected summary file: %v", err)
	}
}

// writeTestPNG writes a 4x2 gradient composite.
func writeTestPNG(t *testing.T, path string) {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 4, 2))
	for x := 0; x < 4; x++ {
		for y := 0; y < 2; y++ {
			img.SetRGBA(x, y, color.RGBA{R: uint8(x * 60), G: 10, B: 20, A: 255})
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := png.Encode(f, img); err != nil {
		t.Fatal(err)
	}
}
