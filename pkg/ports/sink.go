package ports

import (
	"image"
)

// DebugSink abstracts debug output for intermediate results.
// It allows saving intermediate processing results for debugging purposes.
type DebugSink interface {
	// Enabled returns true if debug output is enabled.
	Enabled() bool

	// SaveSequence saves the canonical column sequence laid out as one strip.
	SaveSequence(img image.Image) error

	// SaveParamsJSON saves the session parameters as JSON.
	SaveParamsJSON(data []byte) error

	// SaveRender saves a rendered composite.
	SaveRender(index int, img image.Image) error
}
