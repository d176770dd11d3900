package mpegdecoder

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
)

func TestSupports(t *testing.T) {
	for path, want := range map[string]bool{
		"a.mpg":  true,
		"A.MPEG": true,
		"b.m1v":  true,
		"c.mp4":  false,
	} {
		if got := Supports(path); got != want {
			t.Errorf("Supports(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestDecoder_OpenMissingFile(t *testing.T) {
	_, err := New().Open(context.Background(), filepath.Join(t.TempDir(), "missing.mpg"))
	if err == nil {
		t.Error("expected error for missing file")
	}
}

func TestDecoder_OpenCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := New().Open(ctx, "clip.mpg"); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

// TestDecoder_Sample decodes FRAMESTRIP_MPEG_SAMPLE when it is set.
func TestDecoder_Sample(t *testing.T) {
	path := os.Getenv("FRAMESTRIP_MPEG_SAMPLE")
	if path == "" {
		t.Skip("FRAMESTRIP_MPEG_SAMPLE not set")
	}

	src, err := New().Open(context.Background(), path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer src.Close()

	info := src.Info()
	if info.Width <= 0 || info.Height <= 0 {
		t.Fatalf("expected frame size, got %dx%d", info.Width, info.Height)
	}

	count := 0
	for {
		img, err := src.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next failed after %d frames: %v", count, err)
		}
		if b := img.Bounds(); b.Dx() != info.Width || b.Dy() != info.Height {
			t.Errorf("frame %d has size %v", count, b)
		}
		count++
	}
	if count == 0 {
		t.Error("expected at least one frame")
	}
}
