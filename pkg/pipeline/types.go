package pipeline

import (
	"fmt"
	"image"
	"math"

	"github.com/user/framestrip/pkg/ports"
)

// =============================================================================
// Common Types
// =============================================================================

// Reduction selects how a frame collapses into a column.
type Reduction int

const (
	// ReductionRow averages every row of the frame, keeping the frame height.
	ReductionRow Reduction = iota
	// ReductionPixel averages the whole frame into a single pixel.
	ReductionPixel
)

// String returns the string representation of the reduction.
func (r Reduction) String() string {
	switch r {
	case ReductionRow:
		return "row"
	case ReductionPixel:
		return "pixel"
	default:
		return "unknown"
	}
}

// ParseReduction parses "row" or "pixel".
func ParseReduction(s string) (Reduction, error) {
	switch s {
	case "", "row":
		return ReductionRow, nil
	case "pixel":
		return ReductionPixel, nil
	default:
		return ReductionRow, fmt.Errorf("%w: unknown reduction %q", ErrInvalidParameter, s)
	}
}

// SourceKind tells where a column sequence came from.
type SourceKind int

const (
	SourceVideo SourceKind = iota
	SourceImage
)

// String returns the string representation of the source kind.
func (k SourceKind) String() string {
	if k == SourceImage {
		return "image"
	}
	return "video"
}

// ColumnSequence is the canonical, read-only representation of one input.
// Index i is the i-th frame (video) or the i-th image column (reshape).
// Every column is an *image.RGBA with origin (0,0) and the same size.
type ColumnSequence struct {
	Columns     []*image.RGBA
	ColumnWidth int  // 1, or the frame width in full-scale mode
	Height      int  // frame height, or 1 for pixel reduction
	FullScale   bool // columns are whole frames and must not be interpolated
	Source      SourceKind
}

// Len returns the number of columns.
func (s ColumnSequence) Len() int {
	return len(s.Columns)
}

// =============================================================================
// Composite Parameters
// =============================================================================

// Params holds the user-tunable composite state.
type Params struct {
	Width     float64 `json:"width"` // frames represented across the output, fractional allowed
	Step      float64 `json:"step"`  // stride through the column sequence
	FullScale bool    `json:"fullScale"`
}

// Validate checks the parameters against a sequence of n columns.
func (p Params) Validate(n int) error {
	if math.IsNaN(p.Width) || math.IsInf(p.Width, 0) || p.Width < 0 {
		return fmt.Errorf("%w: width must be a finite number >= 0, got %v", ErrInvalidParameter, p.Width)
	}
	if math.IsNaN(p.Step) || math.IsInf(p.Step, 0) || p.Step <= 0 {
		return fmt.Errorf("%w: step must be a finite number > 0, got %v", ErrInvalidParameter, p.Step)
	}
	if p.FullScale {
		if p.Width != math.Floor(p.Width) {
			return fmt.Errorf("%w: full-scale width must be whole, got %v", ErrInvalidParameter, p.Width)
		}
		if p.Width < 1 || int(p.Width) > n {
			return fmt.Errorf("%w: full-scale width must be in [1, %d], got %v", ErrInvalidParameter, n, p.Width)
		}
	}
	return nil
}

// MaxOutputPixels bounds the composite size. Larger requests fail with
// ErrInvalidParameter instead of attempting the allocation.
const MaxOutputPixels = 1 << 28

// ValidateFor checks the parameters against seq, including the size of the
// composite they would produce.
func (p Params) ValidateFor(seq ColumnSequence) error {
	if err := p.Validate(seq.Len()); err != nil {
		return err
	}
	cols := math.Ceil(p.Width)
	pixels := cols * float64(max(1, seq.ColumnWidth)) * float64(max(1, seq.Height))
	if pixels > MaxOutputPixels {
		return fmt.Errorf("%w: width %v gives a %.0f-pixel composite, limit is %d", ErrInvalidParameter, p.Width, pixels, MaxOutputPixels)
	}
	return nil
}

// OutputColumns returns how many output columns the parameters produce.
func (p Params) OutputColumns() int {
	if p.FullScale {
		return int(p.Width)
	}
	return int(math.Ceil(p.Width))
}

// Stride returns the effective step. Full-scale mode strides by whole columns.
func (p Params) Stride() float64 {
	if p.FullScale {
		return math.Max(1, math.Floor(p.Step))
	}
	return p.Step
}

// =============================================================================
// Reduce Stage Types
// =============================================================================

// ReduceInput contains parameters for frame reduction.
type ReduceInput struct {
	Source    ports.FrameSource
	Range     RangeFilter
	FullScale bool
	Reduction Reduction
}

// =============================================================================
// Reshape Stage Types
// =============================================================================

// ReshapeInput contains an existing composite to re-derive columns from.
type ReshapeInput struct {
	Image            image.Image
	Range            RangeFilter
	AssumedFullScale bool
}

// =============================================================================
// Render Stage Types
// =============================================================================

// RenderInput contains the sequence and parameters for one render.
type RenderInput struct {
	Sequence ColumnSequence
	Params   Params
}

// RenderResult contains the rendered composite.
type RenderResult struct {
	Image   *image.RGBA
	Columns int // output columns, in frames
}
