// Package ports defines interfaces for external dependencies.
package ports

import (
	"context"
	"image"
)

// VideoInfo describes an opened video stream.
type VideoInfo struct {
	Width      int
	Height     int
	FrameCount int     // 0 when the container does not tell
	FPS        float64 // 0 when unknown
	Codec      string
}

// FrameSource yields the frames of one video in order.
// It is consumed once, front to back.
type FrameSource interface {
	// Info returns what is known about the stream before decoding.
	Info() VideoInfo

	// Next decodes the next frame. It returns io.EOF at the end of the stream
	// and any other error when a frame cannot be retrieved.
	// The returned image is owned by the caller.
	Next() (image.Image, error)

	// Skip advances past n frames without converting them.
	// It returns io.EOF if the stream ends first.
	Skip(n int) error

	// Close releases decoder resources.
	Close() error
}

// VideoDecoder abstracts video decoding operations.
type VideoDecoder interface {
	// Open starts decoding the video at path.
	Open(ctx context.Context, path string) (FrameSource, error)
}
