// Package config provides configuration loading and management.
package config

import (
	"fmt"
	"image/color"
	"os"
	"runtime"

	"gopkg.in/yaml.v3"

	"github.com/user/framestrip/pkg/interactive"
	"github.com/user/framestrip/pkg/orchestrator"
	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

// Config represents the full configuration for framestrip.
type Config struct {
	// Output
	OutputPath string `yaml:"output"`

	// Reduction
	FullScale bool   `yaml:"full_scale"`
	Reduction string `yaml:"reduction"`
	Range     string `yaml:"range"`

	// Composite; a nil Width covers the whole sequence
	Width   *float64 `yaml:"width"`
	Step    float64  `yaml:"step"`
	Workers int      `yaml:"workers"`

	// Decoding
	FFmpegPath string `yaml:"ffmpeg_path"`

	// Interactive session
	Controls ControlsConfig `yaml:"controls"`
	Preview  PreviewConfig  `yaml:"preview"`

	// Logging
	LogLevel string `yaml:"log_level"`

	// Debug
	Debug    bool   `yaml:"debug"`
	DebugDir string `yaml:"debug_dir"`
}

// ControlsConfig sets how far one key press moves the parameters.
type ControlsConfig struct {
	WidthIncrement float64 `yaml:"width_increment"`
	StepIncrement  float64 `yaml:"step_increment"`
	MinStep        float64 `yaml:"min_step"`
}

// PreviewConfig sets up the terminal preview.
type PreviewConfig struct {
	BackgroundColor string `yaml:"background_color"`
	MaxColumns      int    `yaml:"max_columns"` // 0 uses the terminal width
	MaxRows         int    `yaml:"max_rows"`    // 0 uses the terminal height
}

// Defaults returns a Config with default values.
func Defaults() Config {
	controls := interactive.DefaultOptions()
	return Config{
		OutputPath: orchestrator.DefaultOutputPath,

		Reduction: pipeline.ReductionRow.String(),
		Range:     ":",

		Step:    1,
		Workers: runtime.NumCPU(),

		Controls: ControlsConfig{
			WidthIncrement: controls.WidthIncrement,
			StepIncrement:  controls.StepIncrement,
			MinStep:        controls.MinStep,
		},
		Preview: PreviewConfig{
			BackgroundColor: "#202020",
		},

		LogLevel: ports.LevelInfo.String(),

		DebugDir: "./debug",
	}
}

// LoadFromFile loads configuration from a YAML file on top of the defaults.
func LoadFromFile(path string) (Config, error) {
	cfg := Defaults()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}

	return cfg, nil
}

// ParseColor parses a hex color string to color.Color.
func ParseColor(hex string) color.Color {
	if len(hex) == 0 {
		return color.Black
	}

	if hex[0] == '#' {
		hex = hex[1:]
	}

	if len(hex) != 6 {
		return color.Black
	}

	r := hexValue(hex[0])<<4 | hexValue(hex[1])
	g := hexValue(hex[2])<<4 | hexValue(hex[3])
	b := hexValue(hex[4])<<4 | hexValue(hex[5])

	return color.RGBA{R: r, G: g, B: b, A: 255}
}

func hexValue(c byte) uint8 {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	default:
		return 0
	}
}

// ToOrchestratorConfig converts Config to orchestrator.Config for one input.
func (c Config) ToOrchestratorConfig(input string) (orchestrator.Config, error) {
	reduction, err := pipeline.ParseReduction(c.Reduction)
	if err != nil {
		return orchestrator.Config{}, err
	}
	rng := pipeline.FullRange()
	if c.Range != "" {
		if rng, err = pipeline.ParseRange(c.Range); err != nil {
			return orchestrator.Config{}, err
		}
	}

	out := orchestrator.DefaultConfig()
	out.InputPath = input
	if c.OutputPath != "" {
		out.OutputPath = c.OutputPath
		out.OutputExplicit = c.OutputPath != orchestrator.DefaultOutputPath
	}

	out.FullScale = c.FullScale
	out.Reduction = reduction
	out.Range = rng

	if c.Width != nil {
		out.Width = *c.Width
		out.WidthSet = true
	}
	out.Step = c.Step

	out.Controls = interactive.Options{
		WidthIncrement: c.Controls.WidthIncrement,
		StepIncrement:  c.Controls.StepIncrement,
		MinStep:        c.Controls.MinStep,
	}
	return out, nil
}
