package pipeline

import (
	"fmt"
	"strconv"
	"strings"
)

// RangeFilter restricts which positions of a sequence participate.
// Start is inclusive, End exclusive. A negative End counts back from the
// end of the sequence. The zero value selects everything.
type RangeFilter struct {
	Start  int
	End    int
	HasEnd bool
}

// FullRange returns a filter that selects the whole sequence.
func FullRange() RangeFilter {
	return RangeFilter{}
}

// ParseRange parses "<start>:<end>". Either side may be empty.
func ParseRange(s string) (RangeFilter, error) {
	startStr, endStr, ok := strings.Cut(s, ":")
	if !ok {
		return RangeFilter{}, fmt.Errorf("%w: range must use format <start>:<end>, got %q", ErrInvalidParameter, s)
	}

	var r RangeFilter
	if startStr = strings.TrimSpace(startStr); startStr != "" {
		v, err := strconv.Atoi(startStr)
		if err != nil {
			return RangeFilter{}, fmt.Errorf("%w: range start %q is not an integer", ErrInvalidParameter, startStr)
		}
		if v < 0 {
			return RangeFilter{}, fmt.Errorf("%w: range start must not be negative, got %d", ErrInvalidParameter, v)
		}
		r.Start = v
	}
	if endStr = strings.TrimSpace(endStr); endStr != "" {
		v, err := strconv.Atoi(endStr)
		if err != nil {
			return RangeFilter{}, fmt.Errorf("%w: range end %q is not an integer", ErrInvalidParameter, endStr)
		}
		r.End = v
		r.HasEnd = true
	}
	if r.HasEnd && r.End >= 0 && r.End < r.Start {
		return RangeFilter{}, fmt.Errorf("%w: range end %d is before start %d", ErrInvalidParameter, r.End, r.Start)
	}
	return r, nil
}

// Resolve returns concrete bounds for a sequence of total entries.
// It fails with ErrEmptyInput when nothing is selected.
func (r RangeFilter) Resolve(total int) (start, end int, err error) {
	end = total
	if r.HasEnd {
		end = r.End
		if end < 0 {
			end += total
		}
		if end > total {
			end = total
		}
		if end < 0 {
			end = 0
		}
	}
	start = r.Start
	if start >= end {
		return 0, 0, fmt.Errorf("%w: range %s selects nothing out of %d", ErrEmptyInput, r, total)
	}
	return start, end, nil
}

// Bounds is Resolve for streams whose length may be unknown (total <= 0).
// With an unknown length, end is -1 when the range is open-ended.
func (r RangeFilter) Bounds(total int) (start, end int, err error) {
	if total > 0 {
		return r.Resolve(total)
	}
	if r.HasEnd && r.End < 0 {
		return 0, 0, fmt.Errorf("%w: range %s needs a known frame count", ErrInvalidParameter, r)
	}
	if !r.HasEnd {
		return r.Start, -1, nil
	}
	if r.Start >= r.End {
		return 0, 0, fmt.Errorf("%w: range %s selects nothing", ErrEmptyInput, r)
	}
	return r.Start, r.End, nil
}

// String formats the filter the way ParseRange reads it.
func (r RangeFilter) String() string {
	if !r.HasEnd {
		return fmt.Sprintf("%d:", r.Start)
	}
	return fmt.Sprintf("%d:%d", r.Start, r.End)
}
