package ports

import (
	"image"
)

// ImageFormat specifies image encoding format.
type ImageFormat int

const (
	FormatJPEG ImageFormat = iota
	FormatPNG
	FormatGIF
	FormatTIFF
	FormatBMP
)

// String returns the usual file extension for the format, without the dot.
func (f ImageFormat) String() string {
	switch f {
	case FormatJPEG:
		return "jpg"
	case FormatPNG:
		return "png"
	case FormatGIF:
		return "gif"
	case FormatTIFF:
		return "tif"
	case FormatBMP:
		return "bmp"
	default:
		return "unknown"
	}
}

// ImageCodec converts between raster files and images.
type ImageCodec interface {
	// Decode decodes image file data.
	Decode(data []byte) (image.Image, error)

	// Encode encodes an image to the specified format.
	Encode(img image.Image, format ImageFormat) ([]byte, error)

	// FormatFromPath picks the format from a file name's extension.
	FormatFromPath(path string) (ImageFormat, error)
}
