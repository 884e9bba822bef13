package colour

import (
	"image"

	"golang.org/x/image/draw"
)

// Pixels is a flat, non-premultiplied RGBA buffer in scan order, four bytes per pixel.
// A trailing partial quadruplet is ignored.
type Pixels []byte

// Len returns the number of whole pixels in the buffer.
func (p Pixels) Len() int {
	return len(p) / 4
}

// At returns the i-th pixel.
func (p Pixels) At(i int) RGBA {
	o := i * 4
	return RGBA{R: p[o], G: p[o+1], B: p[o+2], A: p[o+3]}
}

// Key returns the colour key of the i-th pixel.
func (p Pixels) Key(i int) Key {
	o := i * 4
	return KeyOf(p[o], p[o+1], p[o+2])
}

// PixelsFromImage flattens img into a Pixels buffer.
// Images that are already tightly packed NRGBA are copied without conversion.
func PixelsFromImage(img image.Image) Pixels {
	if img == nil {
		return Pixels{}
	}

	bounds := img.Bounds()
	if bounds.Empty() {
		return Pixels{}
	}

	if n, ok := img.(*image.NRGBA); ok && n.Stride == 4*bounds.Dx() {
		start := n.PixOffset(bounds.Min.X, bounds.Min.Y)
		end := start + 4*bounds.Dx()*bounds.Dy()
		out := make(Pixels, end-start)
		copy(out, n.Pix[start:end])
		return out
	}

	dst := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), img, bounds.Min, draw.Src)
	return Pixels(dst.Pix)
}
