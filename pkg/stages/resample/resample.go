// Package resample renders a column sequence into a composite image for a
// given width and step.
package resample

import (
	"context"
	"fmt"
	"image"
	"math"
	"runtime"
	"sync"

	"github.com/user/framestrip/pkg/pipeline"
	"github.com/user/framestrip/pkg/ports"
)

const (
	// fracEpsilon absorbs float noise in i*step so whole positions copy exactly.
	fracEpsilon = 1e-9
	// columnsPerJob is the unit of work handed to a worker.
	columnsPerJob = 64
)

// Stage renders composites. It is safe for concurrent use.
type Stage struct {
	logger     ports.Logger
	numWorkers int
}

// NewStage creates a new resample stage.
func NewStage(logger ports.Logger, numWorkers int) *Stage {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &Stage{
		logger:     logger.WithComponent("resample"),
		numWorkers: numWorkers,
	}
}

// Execute renders input.Sequence with input.Params.
func (s *Stage) Execute(ctx context.Context, input pipeline.RenderInput) (pipeline.RenderResult, error) {
	if err := ctx.Err(); err != nil {
		return pipeline.RenderResult{}, err
	}
	img, err := s.Render(input.Sequence, input.Params)
	if err != nil {
		return pipeline.RenderResult{}, err
	}
	return pipeline.RenderResult{Image: img, Columns: img.Rect.Dx() / max(1, input.Sequence.ColumnWidth)}, nil
}

// Render produces ceil(width) output columns; output column i samples the
// sequence at position i*step. A full-scale sequence or params switch to
// whole-column strides without interpolation. The sequence is never modified.
func (s *Stage) Render(seq pipeline.ColumnSequence, params pipeline.Params) (*image.RGBA, error) {
	n := seq.Len()
	if n == 0 {
		return nil, fmt.Errorf("%w: no columns to render", pipeline.ErrEmptyInput)
	}

	params.FullScale = params.FullScale || seq.FullScale
	if err := params.ValidateFor(seq); err != nil {
		return nil, err
	}

	outCols := params.OutputColumns()
	cw, h := seq.ColumnWidth, seq.Height
	dst := image.NewRGBA(image.Rect(0, 0, outCols*cw, h))
	if outCols == 0 {
		return dst, nil
	}

	r := renderer{seq: seq, dst: dst, stride: params.Stride(), fullScale: params.FullScale}

	if outCols <= columnsPerJob || s.numWorkers == 1 {
		r.fill(0, outCols)
	} else {
		s.renderParallel(&r, outCols)
	}

	s.logger.Debug("Rendered %d columns (width %.3f, step %.3f) into %dx%d", outCols, params.Width, params.Step, dst.Rect.Dx(), h)
	return dst, nil
}

// renderParallel fills disjoint column ranges with a worker pool.
func (s *Stage) renderParallel(r *renderer, outCols int) {
	jobs := make(chan [2]int, (outCols+columnsPerJob-1)/columnsPerJob)
	for from := 0; from < outCols; from += columnsPerJob {
		jobs <- [2]int{from, min(from+columnsPerJob, outCols)}
	}
	close(jobs)

	var wg sync.WaitGroup
	for w := 0; w < s.numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for job := range jobs {
				r.fill(job[0], job[1])
			}
		}()
	}
	wg.Wait()
}

type renderer struct {
	seq       pipeline.ColumnSequence
	dst       *image.RGBA
	stride    float64
	fullScale bool
}

// fill renders output columns [from, to).
func (r *renderer) fill(from, to int) {
	last := r.seq.Len() - 1
	for i := from; i < to; i++ {
		pos := float64(i) * r.stride

		if r.fullScale {
			idx := int(pos)
			if idx > last {
				idx = last
			}
			r.copyColumn(i, idx)
			continue
		}

		if pos >= float64(last) {
			r.copyColumn(i, last)
			continue
		}

		lo := math.Floor(pos)
		frac := pos - lo
		switch {
		case frac < fracEpsilon:
			r.copyColumn(i, int(lo))
		case frac > 1-fracEpsilon:
			r.copyColumn(i, int(lo)+1)
		default:
			r.blendColumns(i, int(lo), frac)
		}
	}
}

func (r *renderer) copyColumn(out, idx int) {
	src := r.seq.Columns[idx]
	span := r.seq.ColumnWidth * 4
	x0 := out * span
	for y := 0; y < r.seq.Height; y++ {
		d := y*r.dst.Stride + x0
		s := y * src.Stride
		copy(r.dst.Pix[d:d+span], src.Pix[s:s+span])
	}
}

// blendColumns writes (1-frac)*col[lo] + frac*col[lo+1], rounded to nearest.
func (r *renderer) blendColumns(out, lo int, frac float64) {
	a, b := r.seq.Columns[lo], r.seq.Columns[lo+1]
	span := r.seq.ColumnWidth * 4
	x0 := out * span
	inv := 1 - frac
	for y := 0; y < r.seq.Height; y++ {
		d := r.dst.Pix[y*r.dst.Stride+x0 : y*r.dst.Stride+x0+span]
		pa := a.Pix[y*a.Stride : y*a.Stride+span]
		pb := b.Pix[y*b.Stride : y*b.Stride+span]
		for k := range d {
			d[k] = uint8(float64(pa[k])*inv + float64(pb[k])*frac + 0.5)
		}
	}
}

var _ pipeline.Stage[pipeline.RenderInput, pipeline.RenderResult] = (*Stage)(nil)
