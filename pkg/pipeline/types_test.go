package pipeline

import (
	"errors"
	"image"
	"math"
	"testing"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		n       int
		wantErr bool
	}{
		{name: "plain", params: Params{Width: 10, Step: 1}, n: 10},
		{name: "fractional", params: Params{Width: 2.5, Step: 0.5}, n: 10},
		{name: "zero width", params: Params{Width: 0, Step: 1}, n: 10},
		{name: "wider than data", params: Params{Width: 40, Step: 1}, n: 10},
		{name: "negative width", params: Params{Width: -1, Step: 1}, n: 10, wantErr: true},
		{name: "zero step", params: Params{Width: 4, Step: 0}, n: 10, wantErr: true},
		{name: "negative step", params: Params{Width: 4, Step: -2}, n: 10, wantErr: true},
		{name: "nan width", params: Params{Width: math.NaN(), Step: 1}, n: 10, wantErr: true},
		{name: "inf step", params: Params{Width: 1, Step: math.Inf(1)}, n: 10, wantErr: true},
		{name: "full scale whole", params: Params{Width: 5, Step: 1, FullScale: true}, n: 10},
		{name: "full scale fractional", params: Params{Width: 2.5, Step: 1, FullScale: true}, n: 10, wantErr: true},
		{name: "full scale zero", params: Params{Width: 0, Step: 1, FullScale: true}, n: 10, wantErr: true},
		{name: "full scale too wide", params: Params{Width: 11, Step: 1, FullScale: true}, n: 10, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate(tt.n)
			if tt.wantErr && !errors.Is(err, ErrInvalidParameter) {
				t.Errorf("expected ErrInvalidParameter, got %v", err)
			}
			if !tt.wantErr && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestParams_ValidateForOutputSize(t *testing.T) {
	seq := ColumnSequence{Columns: make([]*image.RGBA, 10), ColumnWidth: 1, Height: 1080}

	if err := (Params{Width: 1000, Step: 1}).ValidateFor(seq); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	for _, w := range []float64{1e7, 1e300, math.MaxInt64} {
		if err := (Params{Width: w, Step: 1}).ValidateFor(seq); !errors.Is(err, ErrInvalidParameter) {
			t.Errorf("width %v: expected ErrInvalidParameter, got %v", w, err)
		}
	}
	if err := (Params{Width: -1, Step: 1}).ValidateFor(seq); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected Validate errors to pass through, got %v", err)
	}
}

func TestParams_OutputColumnsAndStride(t *testing.T) {
	if n := (Params{Width: 2.1, Step: 1}).OutputColumns(); n != 3 {
		t.Errorf("expected 3 columns for width 2.1, got %d", n)
	}
	if n := (Params{Width: 4, Step: 1, FullScale: true}).OutputColumns(); n != 4 {
		t.Errorf("expected 4 columns, got %d", n)
	}
	if s := (Params{Step: 2.7, FullScale: true}).Stride(); s != 2 {
		t.Errorf("expected full-scale stride 2, got %v", s)
	}
	if s := (Params{Step: 0.4, FullScale: true}).Stride(); s != 1 {
		t.Errorf("expected full-scale stride 1, got %v", s)
	}
	if s := (Params{Step: 0.4}).Stride(); s != 0.4 {
		t.Errorf("expected stride 0.4, got %v", s)
	}
}

func TestParseReduction(t *testing.T) {
	if r, err := ParseReduction("pixel"); err != nil || r != ReductionPixel {
		t.Errorf("expected pixel, got %v (%v)", r, err)
	}
	if r, err := ParseReduction(""); err != nil || r != ReductionRow {
		t.Errorf("expected row default, got %v (%v)", r, err)
	}
	if _, err := ParseReduction("median"); !errors.Is(err, ErrInvalidParameter) {
		t.Errorf("expected ErrInvalidParameter, got %v", err)
	}
}
