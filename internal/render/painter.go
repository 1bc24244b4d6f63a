package render

import (
	"image"
	"image/color"
	"image/draw"

	"github.com/gogpu/gg"
)

// Painter exposes the vector primitives of a scratch gg context that is
// composited over the surface once the paint callback returns.
type Painter struct {
	dc *gg.Context
}

func (s *Surface) Paint(fn func(p *Painter) error) error {
	width, height := s.Size()
	if width == 0 || height == 0 {
		return nil
	}
	dc := gg.NewContext(width, height)
	defer func() { _ = dc.Close() }()

	if err := fn(&Painter{dc: dc}); err != nil {
		return err
	}
	layer := dc.Image()
	draw.Draw(s.canvas, s.canvas.Bounds(), layer, layer.Bounds().Min, draw.Over)
	return nil
}

// FillVerticalGradient fills rect with a top-to-bottom linear gradient.
func (p *Painter) FillVerticalGradient(rect image.Rectangle, top, bottom color.Color) error {
	gradient := gg.NewLinearGradientBrush(0, float64(rect.Min.Y), 0, float64(rect.Max.Y)).
		AddColorStop(0, gg.FromColor(top)).
		AddColorStop(1, gg.FromColor(bottom))
	p.dc.SetFillBrush(gradient)
	p.dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	return p.dc.Fill()
}

// StrokeRect strokes the outline of rect; the line is centered on the edge.
func (p *Painter) StrokeRect(rect image.Rectangle, lineWidth float64, c color.Color) error {
	p.dc.SetColor(c)
	p.dc.SetLineWidth(lineWidth)
	p.dc.DrawRectangle(float64(rect.Min.X), float64(rect.Min.Y), float64(rect.Dx()), float64(rect.Dy()))
	return p.dc.Stroke()
}

func (p *Painter) FillCircle(cx, cy, radius float64, c color.Color) error {
	p.dc.SetColor(c)
	p.dc.DrawCircle(cx, cy, radius)
	return p.dc.Fill()
}
