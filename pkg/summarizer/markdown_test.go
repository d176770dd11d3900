package summarizer

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/user/framestrip/pkg/mocks"
)

func videoSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC),
		Input: InputInfo{
			Path:       "clips/sunset.mp4",
			Kind:       "video",
			Codec:      "H.264",
			Width:      1920,
			Height:     1080,
			FrameCount: 300,
			FPS:        29.97,
		},
		Sequence: SequenceInfo{
			Columns:     280,
			ColumnWidth: 1,
			Height:      1080,
			Range:       "20:",
			Reduction:   "row",
		},
		Params:  ParamsInfo{InitialWidth: 280, InitialStep: 1, FinalWidth: 140.5, FinalStep: 2},
		Exports: []string{"out.png", "out1.png"},
	}
}

func TestMarkdownFormatter_Format_Video(t *testing.T) {
	result := NewMarkdownFormatter().Format(videoSummary())

	checks := []string{
		"2024-01-15 10:30:00 UTC",
		"clips/sunset.mp4",
		"H.264",
		"1920x1080",
		"| 300 |",
		"29.97 fps",
		"| 280 |",
		"1x1080",
		"20:",
		"| 280.000 | 1.000 |",
		"| 140.500 | 2.000 |",
		"1. `out.png`",
		"2. `out1.png`",
	}
	for _, check := range checks {
		if !strings.Contains(result, check) {
			t.Errorf("expected output to contain %q\n%s", check, result)
		}
	}
	if !strings.HasPrefix(result, "# ") {
		t.Error("expected a top-level heading")
	}
}

func TestMarkdownFormatter_Format_UnknownVideoFacts(t *testing.T) {
	s := videoSummary()
	s.Input.Codec = ""
	s.Input.FrameCount = 0
	s.Input.FPS = 0

	result := NewMarkdownFormatter().Format(s)
	if n := strings.Count(result, "N/A"); n != 3 {
		t.Errorf("expected 3 N/A cells, got %d\n%s", n, result)
	}
}

func TestMarkdownFormatter_Format_Image(t *testing.T) {
	s := &Summary{
		Input:    InputInfo{Path: "strip.png", Kind: "image", Headless: true},
		Sequence: SequenceInfo{Columns: 64, ColumnWidth: 1, Height: 32, Range: "0:", Reduction: "row"},
		Params:   ParamsInfo{InitialWidth: 64, InitialStep: 1, FinalWidth: 64, FinalStep: 1},
	}

	result := NewMarkdownFormatter().Format(s)
	if strings.Contains(result, "fps") || strings.Contains(result, "| row |") {
		t.Errorf("image summaries must not list video facts\n%s", result)
	}
	if !strings.Contains(result, "strip.png") || !strings.Contains(result, "1x32") {
		t.Errorf("missing input details\n%s", result)
	}
	if strings.Contains(result, "1. `") {
		t.Errorf("expected no export list\n%s", result)
	}
}

func TestWriter_Write(t *testing.T) {
	fs := mocks.NewFileSystem()
	w := NewWriter(FormatFunc(func(s *Summary) string { return "summary of " + s.Input.Path }), fs)

	if err := w.Write("reports/run.md", &Summary{Input: InputInfo{Path: "clip.mp4"}}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	data, ok := fs.GetFile("reports/run.md")
	if !ok || string(data) != "summary of clip.mp4" {
		t.Errorf("unexpected file contents %q", data)
	}
}

func TestWriter_WriteError(t *testing.T) {
	fs := mocks.NewFileSystem()
	fs.WriteFileFunc = func(string, []byte) error { return errors.New("denied") }
	w := NewWriter(NewMarkdownFormatter(), fs)

	if err := w.Write("run.md", NewSummary()); err == nil || !strings.Contains(err.Error(), "denied") {
		t.Errorf("expected write error, got %v", err)
	}
}
