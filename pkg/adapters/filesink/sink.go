// Package filesink provides a file-based debug sink implementation.
package filesink

import (
	"fmt"
	"image"
	"path/filepath"

	"github.com/user/framestrip/pkg/ports"
)

// Sink saves debug output to files under a base directory.
type Sink struct {
	baseDir string
	fs      ports.FileSystem
	codec   ports.ImageCodec
}

// New creates a new FileSink.
func New(baseDir string, fs ports.FileSystem, codec ports.ImageCodec) *Sink {
	return &Sink{
		baseDir: baseDir,
		fs:      fs,
		codec:   codec,
	}
}

// Enabled returns true as this sink saves output.
func (s *Sink) Enabled() bool {
	return true
}

// SaveSequence saves the canonical column sequence as sequence.png.
func (s *Sink) SaveSequence(img image.Image) error {
	data, err := s.codec.Encode(img, ports.FormatPNG)
	if err != nil {
		return fmt.Errorf("encode sequence: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(s.baseDir, "sequence.png"), data)
}

// SaveParamsJSON saves the session parameters as params.json.
func (s *Sink) SaveParamsJSON(data []byte) error {
	return s.fs.WriteFile(filepath.Join(s.baseDir, "params.json"), data)
}

// SaveRender saves a rendered composite as renders/render-NNNN.png.
func (s *Sink) SaveRender(index int, img image.Image) error {
	dir := filepath.Join(s.baseDir, "renders")
	if err := s.fs.MkdirAll(dir); err != nil {
		return err
	}
	data, err := s.codec.Encode(img, ports.FormatPNG)
	if err != nil {
		return fmt.Errorf("encode render: %w", err)
	}
	return s.fs.WriteFile(filepath.Join(dir, fmt.Sprintf("render-%04d.png", index)), data)
}

var _ ports.DebugSink = (*Sink)(nil)
