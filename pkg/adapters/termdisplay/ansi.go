package termdisplay

import (
	"image"
	"image/color"
	"strconv"
	"strings"
)

const (
	ansiReset      = "\x1b[0m"
	ansiClear      = "\x1b[H\x1b[2J"
	ansiHideCursor = "\x1b[?25l"
	ansiShowCursor = "\x1b[?25h"
	upperHalfBlock = "▀"
)

// EncodeHalfBlocks renders img as rows of upper half blocks: the foreground
// colour paints the even pixel row and the background the odd one below it.
// An odd last row is painted against bg. Each line ends with a reset and CRLF.
func EncodeHalfBlocks(img image.Image, bg color.Color) string {
	b := img.Bounds()
	if b.Empty() {
		return ""
	}

	var sb strings.Builder
	sb.Grow(b.Dx() * ((b.Dy() + 1) / 2) * 24)

	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		var lastFg, lastBg color.RGBA
		first := true
		for x := b.Min.X; x < b.Max.X; x++ {
			fg := rgba(img.At(x, y))
			lo := rgba(bg)
			if y+1 < b.Max.Y {
				lo = rgba(img.At(x, y+1))
			}
			if first || fg != lastFg {
				writeColor(&sb, 38, fg)
				lastFg = fg
			}
			if first || lo != lastBg {
				writeColor(&sb, 48, lo)
				lastBg = lo
			}
			first = false
			sb.WriteString(upperHalfBlock)
		}
		sb.WriteString(ansiReset)
		sb.WriteString("\r\n")
	}
	return sb.String()
}

func rgba(c color.Color) color.RGBA {
	return color.RGBAModel.Convert(c).(color.RGBA)
}

// writeColor emits an SGR 24-bit colour; layer is 38 (foreground) or 48 (background).
func writeColor(sb *strings.Builder, layer int, c color.RGBA) {
	sb.WriteString("\x1b[")
	sb.WriteString(strconv.Itoa(layer))
	sb.WriteString(";2;")
	sb.WriteString(strconv.Itoa(int(c.R)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.G)))
	sb.WriteByte(';')
	sb.WriteString(strconv.Itoa(int(c.B)))
	sb.WriteByte('m')
}

// fit returns the largest size with the aspect ratio of w x h that fits in
// maxW x maxH. A non-empty source never shrinks below one pixel per side.
func fit(w, h, maxW, maxH int) (int, int) {
	if w <= 0 || h <= 0 || maxW <= 0 || maxH <= 0 {
		return 0, 0
	}
	sx := float64(maxW) / float64(w)
	sy := float64(maxH) / float64(h)
	s := sx
	if sy < s {
		s = sy
	}
	fw := int(float64(w)*s + 0.5)
	fh := int(float64(h)*s + 0.5)
	if fw < 1 {
		fw = 1
	}
	if fh < 1 {
		fh = 1
	}
	if fw > maxW {
		fw = maxW
	}
	if fh > maxH {
		fh = maxH
	}
	return fw, fh
}
