package render

import (
	"image"
	"image/draw"
	"image/png"
	"io"

	"github.com/disintegration/imaging"
)

// Surface is an offscreen RGBA canvas with text and image primitives.
type Surface struct {
	canvas *image.RGBA
	fonts  *Fonts
}

var _ Drawer = (*Surface)(nil)

func NewSurface(width, height int, fonts *Fonts) *Surface {
	if fonts == nil {
		fonts = NewFonts(FontOptions{})
	}
	return &Surface{canvas: image.NewRGBA(image.Rect(0, 0, width, height)), fonts: fonts}
}

func (s *Surface) Size() (int, int) {
	bounds := s.canvas.Bounds()
	return bounds.Dx(), bounds.Dy()
}

func (s *Surface) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	s.canvas = image.NewRGBA(image.Rect(0, 0, width, height))
}

func (s *Surface) Clear() { clear(s.canvas.Pix) }

// Image returns the live canvas. Callers must not hold on to it across redraws.
func (s *Surface) Image() image.Image { return s.canvas }

// Snapshot returns a copy of the canvas.
func (s *Surface) Snapshot() *image.RGBA {
	out := image.NewRGBA(s.canvas.Bounds())
	copy(out.Pix, s.canvas.Pix)
	return out
}

func (s *Surface) EncodePNG(w io.Writer) error {
	return png.Encode(w, s.canvas)
}

func (s *Surface) DrawImageStretched(img image.Image) {
	if img == nil {
		return
	}
	width, height := s.Size()
	if width == 0 || height == 0 {
		return
	}
	src := img
	if b := img.Bounds(); b.Dx() != width || b.Dy() != height {
		src = imaging.Resize(img, width, height, imaging.Linear)
	}
	draw.Draw(s.canvas, s.canvas.Bounds(), src, src.Bounds().Min, draw.Over)
}

func (s *Surface) DrawImage(img image.Image, at image.Point) {
	if img == nil {
		return
	}
	bounds := img.Bounds()
	dst := image.Rectangle{Min: at, Max: at.Add(bounds.Size())}
	draw.Draw(s.canvas, dst, img, bounds.Min, draw.Over)
}
