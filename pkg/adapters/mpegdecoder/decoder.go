// Package mpegdecoder decodes MPEG-1 program streams in pure Go using
// gen2brain/mpeg. It needs no external tools.
package mpegdecoder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/gen2brain/mpeg"

	"github.com/user/framestrip/pkg/ports"
)

// maxIdlePolls bounds consecutive decode calls that yield no picture
// before the stream is considered stalled.
const maxIdlePolls = 4096

// ErrStalled is returned when the demuxer stops producing pictures without
// reaching the end of the stream.
var ErrStalled = errors.New("mpegdecoder: stream stalled")

// Supports reports whether path has an MPEG-1 extension.
func Supports(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".mpg", ".mpeg", ".m1v":
		return true
	}
	return false
}

// Decoder implements ports.VideoDecoder for MPEG-1 files.
type Decoder struct{}

// New creates a new Decoder.
func New() *Decoder {
	return &Decoder{}
}

// Open opens path and decodes its first picture to learn the frame size.
func (d *Decoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open file: %w", err)
	}

	src, err := NewSource(f)
	if err != nil {
		f.Close()
		return nil, err
	}
	return src, nil
}

// Source is a ports.FrameSource over an MPEG-1 stream.
type Source struct {
	rc   io.ReadCloser
	mpg  *mpeg.MPEG
	info ports.VideoInfo

	pending image.Image
	ended   bool
}

// NewSource starts decoding rc. The source takes ownership of rc.
func NewSource(rc io.ReadCloser) (*Source, error) {
	mpg, err := mpeg.New(rc)
	if err != nil {
		return nil, fmt.Errorf("mpeg: %w", err)
	}

	s := &Source{rc: rc, mpg: mpg, info: ports.VideoInfo{Codec: "mpeg1video"}}

	first, err := s.decode()
	if err != nil && err != io.EOF {
		return nil, err
	}
	if first != nil {
		b := first.Bounds()
		s.info.Width, s.info.Height = b.Dx(), b.Dy()
		s.pending = first
	}
	return s, nil
}

// decode returns the next picture converted to RGBA.
func (s *Source) decode() (image.Image, error) {
	if s.ended {
		return nil, io.EOF
	}
	for idle := 0; idle < maxIdlePolls; idle++ {
		frame := s.mpg.DecodeVideo()
		if frame != nil {
			ycc := frame.YCbCr()
			b := ycc.Bounds()
			rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
			draw.Draw(rgba, rgba.Bounds(), ycc, b.Min, draw.Src)
			return rgba, nil
		}
		if s.mpg.HasEnded() {
			s.ended = true
			return nil, io.EOF
		}
	}
	return nil, ErrStalled
}

func (s *Source) Info() ports.VideoInfo {
	return s.info
}

func (s *Source) Next() (image.Image, error) {
	if s.pending != nil {
		img := s.pending
		s.pending = nil
		return img, nil
	}
	return s.decode()
}

func (s *Source) Skip(n int) error {
	for i := 0; i < n; i++ {
		if _, err := s.Next(); err != nil {
			return err
		}
	}
	return nil
}

func (s *Source) Close() error {
	return s.rc.Close()
}

var (
	_ ports.VideoDecoder = (*Decoder)(nil)
	_ ports.FrameSource  = (*Source)(nil)
)
