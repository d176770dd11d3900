package resample

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"math"
	"testing"

	"github.com/user/framestrip/pkg/adapters/logger"
	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/stages/reshape"
)

// sequence builds n one-pixel columns of height h; column i is grey 10*i
// with row y offset by y.
func sequence(n, h int) pipeline.ColumnSequence {
	cols := make([]*image.RGBA, n)
	for i := range cols {
		col := image.NewRGBA(image.Rect(0, 0, 1, h))
		for y := 0; y < h; y++ {
			v := uint8(10*i + y)
			col.SetRGBA(0, y, color.RGBA{v, v, v, 255})
		}
		cols[i] = col
	}
	return pipeline.ColumnSequence{Columns: cols, ColumnWidth: 1, Height: h}
}

func newStage(workers int) *Stage {
	return NewStage(logger.NewNoop(), workers)
}

func column(img *image.RGBA, x int) []color.RGBA {
	out := make([]color.RGBA, img.Rect.Dy())
	for y := range out {
		out[y] = img.RGBAAt(x, y)
	}
	return out
}

func sameColumn(t *testing.T, img *image.RGBA, x int, want *image.RGBA) {
	t.Helper()
	got := column(img, x)
	for y, c := range got {
		if c != want.RGBAAt(0, y) {
			t.Fatalf("output column %d row %d: expected %v, got %v", x, y, want.RGBAAt(0, y), c)
		}
	}
}

func TestRender_WidthEqualsLength(t *testing.T) {
	seq := sequence(10, 4)

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 10, Step: 1})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if b := img.Bounds(); b.Dx() != 10 || b.Dy() != 4 {
		t.Fatalf("expected 10x4, got %v", b)
	}
	for i := 0; i < 10; i++ {
		sameColumn(t, img, i, seq.Columns[i])
	}
}

func TestRender_IntegerStep(t *testing.T) {
	seq := sequence(10, 2)

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 5, Step: 2})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if img.Rect.Dx() != 5 {
		t.Fatalf("expected 5 columns, got %d", img.Rect.Dx())
	}
	for i, src := range []int{0, 2, 4, 6, 8} {
		sameColumn(t, img, i, seq.Columns[src])
	}
}

func TestRender_HalfSteps(t *testing.T) {
	seq := sequence(10, 1)

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 4, Step: 0.5})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Positions 0, 0.5, 1.0, 1.5 over greys 0, 10, 20.
	want := []uint8{0, 5, 10, 15}
	for i, v := range want {
		if got := img.RGBAAt(i, 0); got != (color.RGBA{v, v, v, 255}) {
			t.Errorf("column %d: expected grey %d, got %v", i, v, got)
		}
	}
}

func TestRender_BlendRoundsToNearest(t *testing.T) {
	seq := sequence(2, 1)
	seq.Columns[1].SetRGBA(0, 0, color.RGBA{1, 1, 1, 255})

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 2, Step: 0.5})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	// 0.5*0 + 0.5*1 = 0.5 rounds to 1.
	if got := img.RGBAAt(1, 0).R; got != 1 {
		t.Errorf("expected 1, got %d", got)
	}
}

func TestRender_ClampsToLastColumn(t *testing.T) {
	seq := sequence(4, 3)

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 6, Step: 1.5})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	// Positions 3.0, 4.5, 6.0, 7.5 are all >= len-1.
	for i := 2; i < 6; i++ {
		sameColumn(t, img, i, seq.Columns[3])
	}
}

func TestRender_FractionalWidthRoundsUp(t *testing.T) {
	img, err := newStage(1).Render(sequence(10, 1), pipeline.Params{Width: 2.1, Step: 1})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Rect.Dx() != 3 {
		t.Errorf("expected 3 columns, got %d", img.Rect.Dx())
	}
}

func TestRender_ZeroWidth(t *testing.T) {
	img, err := newStage(1).Render(sequence(3, 2), pipeline.Params{Width: 0, Step: 1})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if img.Rect.Dx() != 0 || img.Rect.Dy() != 2 {
		t.Errorf("expected 0x2 image, got %v", img.Rect)
	}
}

func TestRender_InvalidParams(t *testing.T) {
	stage := newStage(1)
	seq := sequence(5, 1)

	for _, p := range []pipeline.Params{
		{Width: 3, Step: 0},
		{Width: 3, Step: -1},
		{Width: -1, Step: 1},
		{Width: math.NaN(), Step: 1},
		{Width: 3, Step: math.Inf(1)},
		{Width: 2.5, Step: 1, FullScale: true},
		{Width: 6, Step: 1, FullScale: true},
		{Width: 1e300, Step: 1},
		{Width: pipeline.MaxOutputPixels, Step: 1},
	} {
		if _, err := stage.Render(seq, p); !errors.Is(err, pipeline.ErrInvalidParameter) {
			t.Errorf("%+v: expected ErrInvalidParameter, got %v", p, err)
		}
	}
}

func TestRender_EmptySequence(t *testing.T) {
	if _, err := newStage(1).Render(pipeline.ColumnSequence{}, pipeline.Params{Width: 1, Step: 1}); !errors.Is(err, pipeline.ErrEmptyInput) {
		t.Errorf("expected ErrEmptyInput, got %v", err)
	}
}

func TestRender_FullScale(t *testing.T) {
	frames := make([]*image.RGBA, 5)
	for i := range frames {
		f := image.NewRGBA(image.Rect(0, 0, 3, 2))
		for p := 0; p < len(f.Pix); p++ {
			f.Pix[p] = uint8(i*40 + p)
		}
		frames[i] = f
	}
	seq := pipeline.ColumnSequence{Columns: frames, ColumnWidth: 3, Height: 2, FullScale: true}

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 3, Step: 2.7})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 9 || b.Dy() != 2 {
		t.Fatalf("expected 9x2, got %v", b)
	}

	// Stride floor(2.7) = 2 → frames 0, 2, 4.
	for out, idx := range []int{0, 2, 4} {
		for y := 0; y < 2; y++ {
			for x := 0; x < 3; x++ {
				if img.RGBAAt(out*3+x, y) != frames[idx].RGBAAt(x, y) {
					t.Fatalf("tile %d differs from frame %d at (%d,%d)", out, idx, x, y)
				}
			}
		}
	}
}

func TestRender_Idempotent(t *testing.T) {
	stage := newStage(4)
	seq := sequence(50, 3)
	p := pipeline.Params{Width: 37.3, Step: 0.77}

	a, err := stage.Render(seq, p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	b, _ := stage.Render(seq, p)

	if !bytes.Equal(a.Pix, b.Pix) {
		t.Error("expected identical renders")
	}
}

func TestRender_ParallelMatchesSerial(t *testing.T) {
	seq := sequence(400, 2)
	p := pipeline.Params{Width: 700, Step: 0.37}

	serial, err := newStage(1).Render(seq, p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	parallel, err := newStage(8).Render(seq, p)
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !bytes.Equal(serial.Pix, parallel.Pix) {
		t.Error("parallel render differs from serial render")
	}
}

func TestRender_WidthMonotonic(t *testing.T) {
	stage := newStage(1)
	seq := sequence(20, 1)

	prev := -1
	for w := 0.0; w <= 25; w += 0.3 {
		img, err := stage.Render(seq, pipeline.Params{Width: w, Step: 0.8})
		if err != nil {
			t.Fatalf("Render(width %v) failed: %v", w, err)
		}
		if img.Rect.Dx() < prev {
			t.Fatalf("width %v produced %d columns, fewer than %d", w, img.Rect.Dx(), prev)
		}
		prev = img.Rect.Dx()
	}
}

func TestRender_ReshapeRoundTrip(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 12, 5))
	for i := range src.Pix {
		src.Pix[i] = uint8(i * 7)
	}
	for i := 3; i < len(src.Pix); i += 4 {
		src.Pix[i] = 255
	}

	for _, fullScale := range []bool{true, false} {
		seq, err := reshape.NewStage(logger.NewNoop()).Execute(context.Background(), pipeline.ReshapeInput{
			Image:            src,
			Range:            pipeline.FullRange(),
			AssumedFullScale: fullScale,
		})
		if err != nil {
			t.Fatalf("reshape failed: %v", err)
		}

		img, err := newStage(2).Render(seq, pipeline.Params{Width: 12, Step: 1})
		if err != nil {
			t.Fatalf("Render failed: %v", err)
		}
		if !bytes.Equal(img.Pix, src.Pix) {
			t.Errorf("full-scale=%v: round trip is not exact", fullScale)
		}
	}
}

func TestRender_ReshapeHalfStepBounded(t *testing.T) {
	src := image.NewRGBA(image.Rect(0, 0, 8, 1))
	for x := 0; x < 8; x++ {
		src.SetRGBA(x, 0, color.RGBA{uint8(x * 30), 0, 0, 255})
	}
	seq, err := reshape.NewStage(logger.NewNoop()).Execute(context.Background(), pipeline.ReshapeInput{Image: src, Range: pipeline.FullRange()})
	if err != nil {
		t.Fatalf("reshape failed: %v", err)
	}

	img, err := newStage(1).Render(seq, pipeline.Params{Width: 14, Step: 0.5})
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	for i := 0; i < 14; i++ {
		lo := src.RGBAAt(i/2, 0).R
		hi := src.RGBAAt(min(i/2+1, 7), 0).R
		if got := img.RGBAAt(i, 0).R; got < lo || got > hi {
			t.Errorf("column %d: %d outside [%d, %d]", i, got, lo, hi)
		}
	}
}

func TestStage_Execute(t *testing.T) {
	seq := sequence(6, 2)
	res, err := newStage(1).Execute(context.Background(), pipeline.RenderInput{Sequence: seq, Params: pipeline.Params{Width: 3, Step: 2}})
	if err != nil {
		t.Fatalf("Execute failed: %v", err)
	}
	if res.Columns != 3 || res.Image.Rect.Dx() != 3 {
		t.Errorf("unexpected result %d columns, %v", res.Columns, res.Image.Rect)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newStage(1).Execute(ctx, pipeline.RenderInput{Sequence: seq, Params: pipeline.Params{Width: 1, Step: 1}}); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
