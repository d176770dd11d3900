package ffmpegdecoder

import (
	"errors"
	"fmt"
	"image"
	"io"

	"github.com/user/framestrip/pkg/ports"
)

// rawSource reads packed RGBA frames of a fixed size from a stream.
type rawSource struct {
	r         io.Reader
	info      ports.VideoInfo
	frameSize int

	// finish waits for the producer after the stream ended and reports its failure.
	finish func() error
	// abort stops the producer early.
	abort func() error

	done   bool
	closed bool
}

func newRawSource(r io.Reader, info ports.VideoInfo, finish, abort func() error) *rawSource {
	return &rawSource{
		r:         r,
		info:      info,
		frameSize: info.Width * info.Height * 4,
		finish:    finish,
		abort:     abort,
	}
}

func (s *rawSource) Info() ports.VideoInfo {
	return s.info
}

func (s *rawSource) Next() (image.Image, error) {
	if s.done {
		return nil, io.EOF
	}

	img := image.NewRGBA(image.Rect(0, 0, s.info.Width, s.info.Height))
	n, err := io.ReadFull(s.r, img.Pix)
	if err == nil {
		return img, nil
	}

	s.done = true
	if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
		if ferr := s.end(); ferr != nil {
			return nil, ferr
		}
		if n > 0 {
			return nil, fmt.Errorf("%w: %d of %d bytes", ErrTruncatedFrame, n, s.frameSize)
		}
		return nil, io.EOF
	}
	return nil, err
}

func (s *rawSource) Skip(n int) error {
	if n <= 0 {
		return nil
	}
	if s.done {
		return io.EOF
	}

	want := int64(n) * int64(s.frameSize)
	copied, err := io.CopyN(io.Discard, s.r, want)
	if copied == want {
		return nil
	}

	s.done = true
	if err == nil || errors.Is(err, io.EOF) {
		if ferr := s.end(); ferr != nil {
			return ferr
		}
		return io.EOF
	}
	return err
}

func (s *rawSource) end() error {
	if s.finish == nil {
		return nil
	}
	f := s.finish
	s.finish = nil
	return f()
}

func (s *rawSource) Close() error {
	if s.closed {
		return nil
	}
	s.closed = true
	if s.finish == nil {
		return nil
	}
	s.finish = nil
	if s.abort != nil {
		return s.abort()
	}
	return nil
}

var _ ports.FrameSource = (*rawSource)(nil)
