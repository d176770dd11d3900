package mocks

import (
	"fmt"
	"image"
	"path/filepath"
	"strings"

	"github.com/user/framestrip/pkg/ports"
)

// ImageCodec is a mock implementation of ports.ImageCodec.
// Without overrides Encode returns a short tag naming the format and
// FormatFromPath understands the usual extensions.
type ImageCodec struct {
	DecodeFunc         func(data []byte) (image.Image, error)
	EncodeFunc         func(img image.Image, format ports.ImageFormat) ([]byte, error)
	FormatFromPathFunc func(path string) (ports.ImageFormat, error)

	Encoded []image.Image
}

func (m *ImageCodec) Decode(data []byte) (image.Image, error) {
	if m.DecodeFunc != nil {
		return m.DecodeFunc(data)
	}
	return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
}

func (m *ImageCodec) Encode(img image.Image, format ports.ImageFormat) ([]byte, error) {
	m.Encoded = append(m.Encoded, img)
	if m.EncodeFunc != nil {
		return m.EncodeFunc(img, format)
	}
	return []byte(format.String()), nil
}

func (m *ImageCodec) FormatFromPath(path string) (ports.ImageFormat, error) {
	if m.FormatFromPathFunc != nil {
		return m.FormatFromPathFunc(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".png":
		return ports.FormatPNG, nil
	case ".jpg", ".jpeg":
		return ports.FormatJPEG, nil
	case ".gif":
		return ports.FormatGIF, nil
	case ".tif", ".tiff":
		return ports.FormatTIFF, nil
	case ".bmp":
		return ports.FormatBMP, nil
	}
	return 0, fmt.Errorf("unsupported image format: %s", path)
}

var _ ports.ImageCodec = (*ImageCodec)(nil)
