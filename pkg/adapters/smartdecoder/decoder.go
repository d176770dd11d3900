// Package smartdecoder picks a video decoder from the input file and what is
// installed on the system.
package smartdecoder

import (
	"context"
	"errors"
	"fmt"

	"github.com/user/framestrip/pkg/adapters/ffmpegdecoder"
	"github.com/user/framestrip/pkg/adapters/mpegdecoder"
	"github.com/user/framestrip/pkg/ports"
)

// Backend represents the decoding backend used.
type Backend string

const (
	// BackendMPEG represents the built-in pure Go MPEG-1 decoder.
	BackendMPEG Backend = "mpeg"
	// BackendFFmpeg represents FFmpeg-based decoding.
	BackendFFmpeg Backend = "ffmpeg"
)

// Options configures the smart decoder behavior.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
}

// ErrNoDecoderAvailable is returned when no backend can decode the input.
var ErrNoDecoderAvailable = errors.New("smartdecoder: no decoder available")

// Decoder implements ports.VideoDecoder by delegating to a backend per file.
//
// The selection flow:
//   - .mpg/.mpeg/.m1v: built-in MPEG-1 decoder, then FFmpeg
//   - anything else: FFmpeg
type Decoder struct {
	opts   Options
	logger ports.Logger

	mpeg   ports.VideoDecoder
	ffmpeg func() (ports.VideoDecoder, error)
}

// New creates a smart decoder. FFmpeg is only located when first needed.
func New(opts Options, logger ports.Logger) *Decoder {
	d := &Decoder{
		opts:   opts,
		logger: logger.WithComponent("decoder"),
		mpeg:   mpegdecoder.New(),
	}
	d.ffmpeg = func() (ports.VideoDecoder, error) {
		dec, err := ffmpegdecoder.New(ffmpegdecoder.Options{FFmpegPath: opts.FFmpegPath}, logger)
		if err != nil {
			return nil, err
		}
		return dec, nil
	}
	return d
}

// Open opens path with the first backend that accepts it.
func (d *Decoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	if mpegdecoder.Supports(path) {
		src, err := d.mpeg.Open(ctx, path)
		if err == nil {
			d.logger.Debug("Decoding %s with %s backend", path, BackendMPEG)
			return src, nil
		}
		d.logger.Debug("Built-in MPEG decoder rejected %s: %v", path, err)
	}

	ff, err := d.ffmpeg()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrNoDecoderAvailable, err)
	}
	d.logger.Debug("Decoding %s with %s backend", path, BackendFFmpeg)
	return ff.Open(ctx, path)
}

var _ ports.VideoDecoder = (*Decoder)(nil)
