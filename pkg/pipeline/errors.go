package pipeline

import "errors"

var (
	// ErrEmptyInput is returned when a range filter leaves no frames or columns.
	ErrEmptyInput = errors.New("empty input")

	// ErrDecode is returned when a frame or image file cannot be read.
	ErrDecode = errors.New("decode failed")

	// ErrInvalidImage is returned when a reshape input is malformed or has no pixels.
	ErrInvalidImage = errors.New("invalid image")

	// ErrInvalidParameter is returned for out-of-range widths, steps, ranges or paths.
	ErrInvalidParameter = errors.New("invalid parameter")
)
