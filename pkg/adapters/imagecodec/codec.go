// Package imagecodec reads and writes raster files using disintegration/imaging.
package imagecodec

import (
	"bytes"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"

	"github.com/user/framestrip/pkg/ports"
)

// ErrUnsupportedFormat is returned for file extensions that cannot be written.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// DefaultJPEGQuality is used when no quality is configured.
const DefaultJPEGQuality = 95

// Codec implements ports.ImageCodec.
type Codec struct {
	jpegQuality int
}

// New creates a codec. A quality outside 1..100 selects DefaultJPEGQuality.
func New(jpegQuality int) *Codec {
	if jpegQuality < 1 || jpegQuality > 100 {
		jpegQuality = DefaultJPEGQuality
	}
	return &Codec{jpegQuality: jpegQuality}
}

// Decode decodes image file data, applying EXIF orientation.
func (c *Codec) Decode(data []byte) (image.Image, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode image: %w", err)
	}
	return img, nil
}

// Encode encodes an image to the specified format.
func (c *Codec) Encode(img image.Image, format ports.ImageFormat) ([]byte, error) {
	f, err := toImaging(format)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f, imaging.JPEGQuality(c.jpegQuality)); err != nil {
		return nil, fmt.Errorf("encode %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

// FormatFromPath picks the format from a file name's extension.
func (c *Codec) FormatFromPath(path string) (ports.ImageFormat, error) {
	f, err := imaging.FormatFromFilename(path)
	if err != nil {
		return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	switch f {
	case imaging.JPEG:
		return ports.FormatJPEG, nil
	case imaging.PNG:
		return ports.FormatPNG, nil
	case imaging.GIF:
		return ports.FormatGIF, nil
	case imaging.TIFF:
		return ports.FormatTIFF, nil
	case imaging.BMP:
		return ports.FormatBMP, nil
	}
	return 0, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
}

func toImaging(format ports.ImageFormat) (imaging.Format, error) {
	switch format {
	case ports.FormatJPEG:
		return imaging.JPEG, nil
	case ports.FormatPNG:
		return imaging.PNG, nil
	case ports.FormatGIF:
		return imaging.GIF, nil
	case ports.FormatTIFF:
		return imaging.TIFF, nil
	case ports.FormatBMP:
		return imaging.BMP, nil
	}
	return 0, fmt.Errorf("%w: %d", ErrUnsupportedFormat, format)
}

var _ ports.ImageCodec = (*Codec)(nil)
