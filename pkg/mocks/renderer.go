package mocks

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/user/framestrip/pkg/ports"
)

// Renderer is a mock implementation of ports.Renderer.
// Without overrides it draws onto a plain RGBA image.
type Renderer struct {
	CreateCanvasFunc func(width, height int, bg color.Color) ports.Canvas
	ResizeImageFunc  func(img image.Image, width, height int) image.Image
}

func (m *Renderer) CreateCanvas(width, height int, bg color.Color) ports.Canvas {
	if m.CreateCanvasFunc != nil {
		return m.CreateCanvasFunc(width, height, bg)
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	return &Canvas{img: img}
}

func (m *Renderer) ResizeImage(img image.Image, width, height int) image.Image {
	if m.ResizeImageFunc != nil {
		return m.ResizeImageFunc(img, width, height)
	}
	return image.NewRGBA(image.Rect(0, 0, width, height))
}

var _ ports.Renderer = (*Renderer)(nil)

// Canvas is a mock implementation of ports.Canvas that records draw calls.
type Canvas struct {
	img *image.RGBA

	Draws  []image.Point
	Scaled []image.Rectangle
}

func (m *Canvas) DrawImage(img image.Image, x, y int) {
	m.Draws = append(m.Draws, image.Pt(x, y))
	b := img.Bounds()
	draw.Draw(m.img, image.Rect(x, y, x+b.Dx(), y+b.Dy()), img, b.Min, draw.Src)
}

func (m *Canvas) DrawImageScaled(img image.Image, x, y, width, height int) {
	m.Scaled = append(m.Scaled, image.Rect(x, y, x+width, y+height))
}

func (m *Canvas) DrawRect(x, y, w, h int, c color.Color) {
	draw.Draw(m.img, image.Rect(x, y, x+w, y+h), image.NewUniform(c), image.Point{}, draw.Src)
}

func (m *Canvas) ToImage() image.Image {
	return m.img
}

var _ ports.Canvas = (*Canvas)(nil)
