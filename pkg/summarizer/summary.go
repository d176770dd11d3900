// Package summarizer provides summary generation for framestrip sessions.
package summarizer

import "time"

// Summary contains all data collected during one session.
type Summary struct {
	// Metadata
	GeneratedAt time.Time

	// What was read
	Input InputInfo

	// The canonical column sequence
	Sequence SequenceInfo

	// Composite parameters at start and end
	Params ParamsInfo

	// Written composites, in order
	Exports []string
}

// InputInfo describes the input file.
type InputInfo struct {
	Path     string
	Kind     string // "video" or "image"
	Headless bool

	// Video only
	Codec      string
	Width      int
	Height     int
	FrameCount int // as reported by the container, 0 if unknown
	FPS        float64
}

// SequenceInfo describes the column sequence built from the input.
type SequenceInfo struct {
	Columns     int
	ColumnWidth int
	Height      int
	FullScale   bool
	Range       string
	Reduction   string
}

// ParamsInfo holds width and step at the start and end of the session.
type ParamsInfo struct {
	InitialWidth float64
	InitialStep  float64
	FinalWidth   float64
	FinalStep    float64
}

// NewSummary creates a new Summary with the current timestamp.
func NewSummary() *Summary {
	return &Summary{
		GeneratedAt: time.Now(),
	}
}

// Builder provides a fluent interface for building a Summary.
type Builder struct {
	summary *Summary
}

// NewBuilder creates a new Builder.
func NewBuilder() *Builder {
	return &Builder{
		summary: NewSummary(),
	}
}

// WithInput sets input information.
func (b *Builder) WithInput(input InputInfo) *Builder {
	b.summary.Input = input
	return b
}

// WithSequence sets sequence information.
func (b *Builder) WithSequence(seq SequenceInfo) *Builder {
	b.summary.Sequence = seq
	return b
}

// WithParams sets the initial and final parameters.
func (b *Builder) WithParams(initialWidth, initialStep, finalWidth, finalStep float64) *Builder {
	b.summary.Params = ParamsInfo{
		InitialWidth: initialWidth,
		InitialStep:  initialStep,
		FinalWidth:   finalWidth,
		FinalStep:    finalStep,
	}
	return b
}

// WithExports sets the exported paths.
func (b *Builder) WithExports(paths []string) *Builder {
	b.summary.Exports = append([]string(nil), paths...)
	return b
}

// Build returns the constructed Summary.
func (b *Builder) Build() *Summary {
	return b.summary
}
