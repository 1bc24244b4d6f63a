package render

import (
	"image"
	"image/draw"
	"math"

	"github.com/disintegration/imaging"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

func (s *Surface) MeasureText(text string, style TextStyle) TextMetrics {
	return measure(s.fonts.Face(style.Weight, style.size()), text)
}

// DrawText draws a single line of text anchored at (x, y) and returns its metrics.
func (s *Surface) DrawText(text string, x, y float64, style TextStyle) TextMetrics {
	face := s.fonts.Face(style.Weight, style.size())
	metrics := measure(face, text)
	dot := origin(x, y, metrics, style)

	if style.Shadow != nil {
		s.drawShadow(text, face, dot, *style.Shadow)
	}

	drawer := &font.Drawer{
		Dst:  s.canvas,
		Src:  image.NewUniform(style.color()),
		Face: face,
		Dot:  dot,
	}
	drawer.DrawString(text)
	return metrics
}

func (s *Surface) drawShadow(text string, face font.Face, dot fixed.Point26_6, shadow Shadow) {
	if shadow.Color == nil {
		return
	}
	sigma := shadow.Blur / 2
	pad := int(math.Ceil(sigma*3)) + 1
	dot = dot.Add(fixed.Point26_6{X: toFixed(shadow.OffsetX), Y: toFixed(shadow.OffsetY)})

	bounds, _ := font.BoundString(face, text)
	rect := image.Rect(
		(dot.X+bounds.Min.X).Floor()-pad,
		(dot.Y+bounds.Min.Y).Floor()-pad,
		(dot.X+bounds.Max.X).Ceil()+pad,
		(dot.Y+bounds.Max.Y).Ceil()+pad,
	).Intersect(s.canvas.Bounds())
	if rect.Empty() {
		return
	}

	layer := image.NewRGBA(rect)
	drawer := &font.Drawer{Dst: layer, Src: image.NewUniform(shadow.Color), Face: face, Dot: dot}
	drawer.DrawString(text)

	var src image.Image = layer
	if sigma > 0 {
		src = imaging.Blur(layer, sigma)
	}
	draw.Draw(s.canvas, rect, src, src.Bounds().Min, draw.Over)
}

func measure(face font.Face, text string) TextMetrics {
	advance := font.MeasureString(face, text)
	m := face.Metrics()
	return TextMetrics{
		Width:      fromFixed(advance),
		Ascent:     fromFixed(m.Ascent),
		Descent:    fromFixed(m.Descent),
		LineHeight: fromFixed(m.Height),
	}
}

// origin converts an anchor point into the pen position of the first glyph.
func origin(x, y float64, metrics TextMetrics, style TextStyle) fixed.Point26_6 {
	switch style.Align {
	case TextAlignCenter:
		x -= metrics.Width / 2
	case TextAlignRight:
		x -= metrics.Width
	}
	if style.Baseline == BaselineMiddle {
		y += (metrics.Ascent - metrics.Descent) / 2
	}
	return fixed.Point26_6{X: toFixed(x), Y: toFixed(y)}
}

func toFixed(v float64) fixed.Int26_6 { return fixed.Int26_6(math.Round(v * 64)) }

func fromFixed(v fixed.Int26_6) float64 { return float64(v) / 64 }
