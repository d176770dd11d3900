// Package reduce implements the frame reduction stage: every decoded frame
// collapses into one column of the canonical sequence.
package reduce

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/ideamans/go-l10n"
	xdraw "golang.org/x/image/draw"

	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

// Stage reduces the frames of a ports.FrameSource to a column sequence.
type Stage struct {
	progress ports.Progress
	logger   ports.Logger
}

// NewStage creates a new reduce stage.
func NewStage(progress ports.Progress, logger ports.Logger) *Stage {
	return &Stage{
		progress: progress,
		logger:   logger.WithComponent("reduce"),
	}
}

// Execute reads the selected frames in order and reduces each one.
// Frames before the range start are skipped without conversion and decoding
// stops at the range end. The source is not closed.
func (s *Stage) Execute(ctx context.Context, input pipeline.ReduceInput) (pipeline.ColumnSequence, error) {
	src := input.Source
	info := src.Info()

	// Container frame counts are estimates: only a negative end is resolved
	// against them. Every other range reads until its end or EOF.
	count := info.FrameCount
	if !input.Range.HasEnd || input.Range.End >= 0 {
		count = 0
	}
	start, end, err := input.Range.Bounds(count)
	if err != nil {
		return pipeline.ColumnSequence{}, err
	}

	total := 0
	switch {
	case end >= 0:
		total = end - start
		if info.FrameCount > start && info.FrameCount-start < total {
			total = info.FrameCount - start
		}
	case info.FrameCount > start:
		total = info.FrameCount - start
	}

	s.logger.Debug("Reducing frames %s of %d (%s reduction, full-scale %v)",
		input.Range, info.FrameCount, input.Reduction, input.FullScale)

	if start > 0 {
		if err := src.Skip(start); err != nil {
			if errors.Is(err, io.EOF) {
				return pipeline.ColumnSequence{}, fmt.Errorf("%w: video ends before frame %d", pipeline.ErrEmptyInput, start)
			}
			return pipeline.ColumnSequence{}, fmt.Errorf("%w: skip to frame %d: %v", pipeline.ErrDecode, start, err)
		}
	}

	s.progress.Start(total, l10n.T("Reducing frames"))
	defer s.progress.Finish()

	seq := pipeline.ColumnSequence{Source: pipeline.SourceVideo, FullScale: input.FullScale}
	var refW, refH, resized int

	for idx := start; end < 0 || idx < end; idx++ {
		if err := ctx.Err(); err != nil {
			return pipeline.ColumnSequence{}, err
		}

		img, err := src.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return pipeline.ColumnSequence{}, fmt.Errorf("%w: frame %d: %v", pipeline.ErrDecode, idx, err)
		}

		b := img.Bounds()
		if len(seq.Columns) == 0 {
			refW, refH = b.Dx(), b.Dy()
			if refW <= 0 || refH <= 0 {
				return pipeline.ColumnSequence{}, fmt.Errorf("%w: frame %d has no pixels", pipeline.ErrDecode, idx)
			}
		}

		var frame *image.RGBA
		if b.Dx() != refW || b.Dy() != refH {
			frame = scaleTo(img, refW, refH)
			resized++
		} else {
			frame = toRGBA(img)
		}

		seq.Columns = append(seq.Columns, reduceFrame(frame, input.FullScale, input.Reduction))
		s.progress.Add(1)
	}

	if len(seq.Columns) == 0 {
		return pipeline.ColumnSequence{}, fmt.Errorf("%w: no frames in range %s", pipeline.ErrEmptyInput, input.Range)
	}
	if resized > 0 {
		s.logger.Warn("%d frames differed in size and were scaled to %dx%d", resized, refW, refH)
	}

	first := seq.Columns[0].Bounds()
	seq.ColumnWidth, seq.Height = first.Dx(), first.Dy()

	s.logger.Debug("Reduced %d frames to %d columns of %dx%d", len(seq.Columns), len(seq.Columns), seq.ColumnWidth, seq.Height)
	return seq, nil
}

func reduceFrame(frame *image.RGBA, fullScale bool, reduction pipeline.Reduction) *image.RGBA {
	switch {
	case fullScale:
		return frame
	case reduction == pipeline.ReductionPixel:
		return MeanPixel(frame)
	default:
		return RowMeans(frame)
	}
}

// RowMeans returns a one pixel wide column whose y-th pixel is the rounded
// mean of row y of img.
func RowMeans(img *image.RGBA) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	col := image.NewRGBA(image.Rect(0, 0, 1, h))
	if w == 0 {
		return col
	}
	half := uint32(w / 2)
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		var r, g, b, a uint32
		for i := 0; i < len(row); i += 4 {
			r += uint32(row[i])
			g += uint32(row[i+1])
			b += uint32(row[i+2])
			a += uint32(row[i+3])
		}
		o := y * col.Stride
		col.Pix[o] = uint8((r + half) / uint32(w))
		col.Pix[o+1] = uint8((g + half) / uint32(w))
		col.Pix[o+2] = uint8((b + half) / uint32(w))
		col.Pix[o+3] = uint8((a + half) / uint32(w))
	}
	return col
}

// MeanPixel returns a 1x1 image holding the rounded mean colour of img.
func MeanPixel(img *image.RGBA) *image.RGBA {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	px := image.NewRGBA(image.Rect(0, 0, 1, 1))
	n := uint64(w) * uint64(h)
	if n == 0 {
		return px
	}
	var r, g, b, a uint64
	for y := 0; y < h; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+w*4]
		for i := 0; i < len(row); i += 4 {
			r += uint64(row[i])
			g += uint64(row[i+1])
			b += uint64(row[i+2])
			a += uint64(row[i+3])
		}
	}
	half := n / 2
	px.Pix[0] = uint8((r + half) / n)
	px.Pix[1] = uint8((g + half) / n)
	px.Pix[2] = uint8((b + half) / n)
	px.Pix[3] = uint8((a + half) / n)
	return px
}

// toRGBA returns img as an *image.RGBA with origin (0,0), converting when needed.
func toRGBA(img image.Image) *image.RGBA {
	if rgba, ok := img.(*image.RGBA); ok && rgba.Rect.Min == (image.Point{}) {
		return rgba
	}
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	xdraw.Draw(dst, dst.Bounds(), img, b.Min, xdraw.Src)
	return dst
}

func scaleTo(img image.Image, w, h int) *image.RGBA {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	return dst
}

var _ pipeline.Stage[pipeline.ReduceInput, pipeline.ColumnSequence] = (*Stage)(nil)
