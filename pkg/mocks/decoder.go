package mocks

import (
	"context"
	"image"
	"io"

	"github.com/user/framestrip/pkg/ports"
)

// FrameSource is a mock implementation of ports.FrameSource backed by a
// slice of frames.
type FrameSource struct {
	InfoValue ports.VideoInfo
	Frames    []image.Image

	// FailAt makes Next return Err when the frame with that index is reached.
	// A negative value disables it.
	FailAt int
	Err    error

	pos    int
	Closed bool
}

// NewFrameSource creates a mock source that reports its frame count.
func NewFrameSource(frames ...image.Image) *FrameSource {
	info := ports.VideoInfo{FrameCount: len(frames)}
	if len(frames) > 0 {
		b := frames[0].Bounds()
		info.Width, info.Height = b.Dx(), b.Dy()
	}
	return &FrameSource{InfoValue: info, Frames: frames, FailAt: -1}
}

func (m *FrameSource) Info() ports.VideoInfo {
	return m.InfoValue
}

func (m *FrameSource) Next() (image.Image, error) {
	if m.FailAt >= 0 && m.pos == m.FailAt {
		return nil, m.Err
	}
	if m.pos >= len(m.Frames) {
		return nil, io.EOF
	}
	img := m.Frames[m.pos]
	m.pos++
	return img, nil
}

func (m *FrameSource) Skip(n int) error {
	if m.pos+n > len(m.Frames) {
		m.pos = len(m.Frames)
		return io.EOF
	}
	m.pos += n
	return nil
}

func (m *FrameSource) Close() error {
	m.Closed = true
	return nil
}

// Position returns the index of the next frame Next would return.
func (m *FrameSource) Position() int {
	return m.pos
}

var _ ports.FrameSource = (*FrameSource)(nil)

// VideoDecoder is a mock implementation of ports.VideoDecoder.
type VideoDecoder struct {
	OpenFunc func(ctx context.Context, path string) (ports.FrameSource, error)

	Opened []string
}

func (m *VideoDecoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	m.Opened = append(m.Opened, path)
	if m.OpenFunc != nil {
		return m.OpenFunc(ctx, path)
	}
	return NewFrameSource(), nil
}

var _ ports.VideoDecoder = (*VideoDecoder)(nil)
