// Package ffmpegdecoder decodes videos by streaming raw RGBA frames out of
// an ffmpeg child process.
package ffmpegdecoder

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"

	"github.com/user/framestrip/pkg/adapters/mp4probe"
	"github.com/user/framestrip/pkg/ports"
)

var (
	// ErrFFprobeNotFound is returned when a non-MP4 input needs ffprobe and none is installed.
	ErrFFprobeNotFound = errors.New("ffprobe not found")
	// ErrNoVideoStream is returned when the input has no decodable video stream.
	ErrNoVideoStream = errors.New("no video stream")
	// ErrTruncatedFrame is returned when the stream ends inside a frame.
	ErrTruncatedFrame = errors.New("truncated frame")
)

// Options configures the decoder.
type Options struct {
	// FFmpegPath is an optional custom path to the ffmpeg binary.
	FFmpegPath string
	// FFprobePath is an optional custom path to the ffprobe binary.
	// When empty, ffprobe next to ffmpeg or on PATH is used.
	FFprobePath string
}

// Decoder implements ports.VideoDecoder with ffmpeg.
type Decoder struct {
	ffmpegPath  string
	ffprobePath string
	logger      ports.Logger
}

// New locates ffmpeg and ffprobe and creates a decoder.
func New(opts Options, logger ports.Logger) (*Decoder, error) {
	ffmpegPath, err := findTool("ffmpeg", opts.FFmpegPath)
	if err != nil {
		return nil, err
	}

	ffprobePath := opts.FFprobePath
	if ffprobePath == "" {
		ffprobePath = siblingProbe(ffmpegPath)
	}
	if ffprobePath == "" {
		if p, err := findTool("ffprobe", ""); err == nil {
			ffprobePath = p
		}
	}

	return &Decoder{
		ffmpegPath:  ffmpegPath,
		ffprobePath: ffprobePath,
		logger:      logger.WithComponent("ffmpeg"),
	}, nil
}

// IsAvailable reports whether ffmpeg can be found.
func IsAvailable(customPath string) bool {
	_, err := findTool("ffmpeg", customPath)
	return err == nil
}

// Open probes the video and starts streaming its frames.
func (d *Decoder) Open(ctx context.Context, path string) (ports.FrameSource, error) {
	info, err := d.probe(ctx, path)
	if err != nil {
		return nil, err
	}
	d.logger.Debug("Probed %s: %dx%d, %d frames, codec %s", path, info.Width, info.Height, info.FrameCount, info.Codec)

	cmd := exec.CommandContext(ctx, d.ffmpegPath,
		"-v", "error",
		"-nostdin",
		"-noautorotate",
		"-i", path,
		"-an", "-sn",
		"-vf", fmt.Sprintf("scale=%d:%d", info.Width, info.Height),
		"-f", "rawvideo",
		"-pix_fmt", "rgba",
		"pipe:1",
	)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	stdout, err := cmd.StdoutPipe()
	if err != nil {
		return nil, fmt.Errorf("ffmpeg stdout: %w", err)
	}
	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start ffmpeg: %w", err)
	}

	finish := func() error {
		if err := cmd.Wait(); err != nil {
			if ctxErr := ctx.Err(); ctxErr != nil {
				return ctxErr
			}
			return fmt.Errorf("ffmpeg decode failed: %w: %s", err, strings.TrimSpace(stderr.String()))
		}
		return nil
	}
	abort := func() error {
		if cmd.Process != nil {
			_ = cmd.Process.Kill()
		}
		_ = cmd.Wait()
		return nil
	}

	return newRawSource(stdout, info, finish, abort), nil
}

func (d *Decoder) probe(ctx context.Context, path string) (ports.VideoInfo, error) {
	if mp4probe.Supports(path) {
		info, err := mp4probe.ProbeFile(path)
		if err == nil && info.Width > 0 && info.Height > 0 {
			return info, nil
		}
		d.logger.Debug("MP4 probe failed, falling back to ffprobe: %v", err)
	}

	if d.ffprobePath == "" {
		return ports.VideoInfo{}, ErrFFprobeNotFound
	}
	return runProbe(ctx, d.ffprobePath, path)
}

var _ ports.VideoDecoder = (*Decoder)(nil)
