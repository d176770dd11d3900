package smartdecoder

import (
	"context"
	"errors"
	"testing"

	"github.com/user/framestrip/pkg/adapters/logger"
	"github.com/user/framestrip/pkg/mocks"
	"github.com/user/framestrip/pkg/ports"
)

func newTestDecoder(mpeg, ff *mocks.VideoDecoder, ffErr error) *Decoder {
	d := New(Options{}, logger.NewNoop())
	d.mpeg = mpeg
	d.ffmpeg = func() (ports.VideoDecoder, error) {
		if ffErr != nil {
			return nil, ffErr
		}
		return ff, nil
	}
	return d
}

func TestDecoder_MPEGExtensionUsesBuiltin(t *testing.T) {
	mpeg, ff := &mocks.VideoDecoder{}, &mocks.VideoDecoder{}
	d := newTestDecoder(mpeg, ff, nil)

	if _, err := d.Open(context.Background(), "clip.mpg"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(mpeg.Opened) != 1 || len(ff.Opened) != 0 {
		t.Errorf("expected builtin backend only, got mpeg=%v ffmpeg=%v", mpeg.Opened, ff.Opened)
	}
}

func TestDecoder_FallsBackToFFmpeg(t *testing.T) {
	mpeg := &mocks.VideoDecoder{
		OpenFunc: func(ctx context.Context, path string) (ports.FrameSource, error) {
			return nil, errors.New("not an MPEG-1 stream")
		},
	}
	ff := &mocks.VideoDecoder{}
	d := newTestDecoder(mpeg, ff, nil)

	if _, err := d.Open(context.Background(), "clip.mpeg"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(ff.Opened) != 1 {
		t.Errorf("expected ffmpeg fallback, got %v", ff.Opened)
	}
}

func TestDecoder_OtherExtensionUsesFFmpeg(t *testing.T) {
	mpeg, ff := &mocks.VideoDecoder{}, &mocks.VideoDecoder{}
	d := newTestDecoder(mpeg, ff, nil)

	if _, err := d.Open(context.Background(), "clip.mp4"); err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	if len(mpeg.Opened) != 0 || len(ff.Opened) != 1 {
		t.Errorf("expected ffmpeg only, got mpeg=%v ffmpeg=%v", mpeg.Opened, ff.Opened)
	}
}

func TestDecoder_NoBackend(t *testing.T) {
	d := newTestDecoder(&mocks.VideoDecoder{}, nil, errors.New("ffmpeg not found"))

	if _, err := d.Open(context.Background(), "clip.webm"); !errors.Is(err, ErrNoDecoderAvailable) {
		t.Errorf("expected ErrNoDecoderAvailable, got %v", err)
	}
}
