package summarizer

import (
	"testing"
	"time"
)

func TestNewSummary(t *testing.T) {
	before := time.Now()
	summary := NewSummary()
	after := time.Now()

	if summary.GeneratedAt.Before(before) || summary.GeneratedAt.After(after) {
		t.Errorf("GeneratedAt should be between %v and %v, got %v",
			before, after, summary.GeneratedAt)
	}
}

func TestBuilder(t *testing.T) {
	exports := []string{"out.png", "out1.png"}
	summary := NewBuilder().
		WithInput(InputInfo{Path: "clip.mp4", Kind: "video", FrameCount: 120}).
		WithSequence(SequenceInfo{Columns: 100, ColumnWidth: 1, Height: 240, Range: "10:110"}).
		WithParams(100, 1, 50.5, 2).
		WithExports(exports).
		Build()

	if summary.Input.Path != "clip.mp4" || summary.Input.FrameCount != 120 {
		t.Errorf("unexpected input %+v", summary.Input)
	}
	if summary.Sequence.Columns != 100 || summary.Sequence.Range != "10:110" {
		t.Errorf("unexpected sequence %+v", summary.Sequence)
	}
	if summary.Params.FinalWidth != 50.5 || summary.Params.FinalStep != 2 || summary.Params.InitialWidth != 100 {
		t.Errorf("unexpected params %+v", summary.Params)
	}

	exports[0] = "changed.png"
	if summary.Exports[0] != "out.png" || len(summary.Exports) != 2 {
		t.Errorf("exports must be copied, got %v", summary.Exports)
	}
}
