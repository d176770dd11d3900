package termdisplay

import (
	"image"
	"image/color"
	"strings"
	"testing"
)

func TestEncodeHalfBlocks(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	red := color.RGBA{255, 0, 0, 255}
	blue := color.RGBA{0, 0, 255, 255}
	for x := 0; x < 2; x++ {
		img.SetRGBA(x, 0, red)
		img.SetRGBA(x, 1, blue)
		img.SetRGBA(x, 2, red)
	}

	out := EncodeHalfBlocks(img, color.Black)
	lines := strings.Split(strings.TrimSuffix(out, "\r\n"), "\r\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 terminal lines for 3 pixel rows, got %d", len(lines))
	}

	if !strings.HasPrefix(lines[0], "\x1b[38;2;255;0;0m\x1b[48;2;0;0;255m") {
		t.Errorf("unexpected first line prefix %q", lines[0])
	}
	if strings.Count(lines[0], upperHalfBlock) != 2 {
		t.Errorf("expected 2 blocks per line, got %q", lines[0])
	}
	if strings.Count(lines[0], "\x1b[38;2;") != 1 {
		t.Errorf("expected colours emitted once for a uniform run, got %q", lines[0])
	}
	if !strings.Contains(lines[1], "\x1b[48;2;0;0;0m") {
		t.Errorf("expected odd last row against the background, got %q", lines[1])
	}
	if !strings.HasSuffix(lines[1], ansiReset) {
		t.Errorf("expected line to end with a reset, got %q", lines[1])
	}
}

func TestEncodeHalfBlocks_Empty(t *testing.T) {
	if out := EncodeHalfBlocks(image.NewRGBA(image.Rect(0, 0, 0, 4)), color.Black); out != "" {
		t.Errorf("expected empty output, got %q", out)
	}
}

func TestFit(t *testing.T) {
	tests := []struct {
		w, h, maxW, maxH int
		wantW, wantH     int
	}{
		{w: 1000, h: 100, maxW: 100, maxH: 40, wantW: 100, wantH: 10},
		{w: 10, h: 100, maxW: 100, maxH: 40, wantW: 4, wantH: 40},
		{w: 10, h: 10, maxW: 100, maxH: 40, wantW: 40, wantH: 40},
		{w: 5000, h: 1, maxW: 80, maxH: 40, wantW: 80, wantH: 1},
		{w: 0, h: 10, maxW: 80, maxH: 40, wantW: 0, wantH: 0},
	}
	for _, tt := range tests {
		w, h := fit(tt.w, tt.h, tt.maxW, tt.maxH)
		if w != tt.wantW || h != tt.wantH {
			t.Errorf("fit(%d,%d,%d,%d) = %dx%d, want %dx%d", tt.w, tt.h, tt.maxW, tt.maxH, w, h, tt.wantW, tt.wantH)
		}
	}
}
