// Package reshape rebuilds a column sequence from an existing composite image.
package reshape

import (
	"context"
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"

	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

// Stage turns every pixel column of an image into one sequence entry.
// Resampling the result works on the image, not on the video it came from,
// so reshaping a composite is an approximation.
type Stage struct {
	logger ports.Logger
}

// NewStage creates a new reshape stage.
func NewStage(logger ports.Logger) *Stage {
	return &Stage{logger: logger.WithComponent("reshape")}
}

// Execute splits the image into one-pixel columns within the range.
func (s *Stage) Execute(ctx context.Context, input pipeline.ReshapeInput) (pipeline.ColumnSequence, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.ColumnSequence{}, err
	}
	if input.Image == nil {
		return pipeline.ColumnSequence{}, fmt.Errorf("%w: no image", pipeline.ErrInvalidImage)
	}
	b := input.Image.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return pipeline.ColumnSequence{}, fmt.Errorf("%w: image has no pixels (%dx%d)", pipeline.ErrInvalidImage, b.Dx(), b.Dy())
	}

	start, end, err := input.Range.Resolve(b.Dx())
	if err != nil {
		return pipeline.ColumnSequence{}, err
	}

	h := b.Dy()
	cols := make([]*image.RGBA, 0, end-start)
	for x := start; x < end; x++ {
		col := image.NewRGBA(image.Rect(0, 0, 1, h))
		xdraw.Draw(col, col.Bounds(), input.Image, image.Pt(b.Min.X+x, b.Min.Y), xdraw.Src)
		cols = append(cols, col)
	}

	s.logger.Debug("Reshaped %dx%d image into %d columns (full-scale %v)", b.Dx(), h, len(cols), input.AssumedFullScale)

	return pipeline.ColumnSequence{
		Columns:     cols,
		ColumnWidth: 1,
		Height:      h,
		FullScale:   input.AssumedFullScale,
		Source:      pipeline.SourceImage,
	}, nil
}

var _ pipeline.Stage[pipeline.ReshapeInput, pipeline.ColumnSequence] = (*Stage)(nil)
