package card

import (
	"image"
	"image/color"

	"github.com/rook-computer/cardmaker/internal/render"
	"github.com/rook-computer/cardmaker/internal/render/layout"
)

// Fallback card palette.
var (
	fallbackTop    = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
	fallbackBottom = color.NRGBA{R: 0xf0, G: 0xf4, B: 0xf8, A: 0xff}
	Gold           = color.NRGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xff}
	Navy           = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x65, A: 0xff}
	footerGrey     = color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}
)

const (
	FallbackTitle  = "Ramadhan"
	FallbackYear   = "1448 H"
	FallbackNotice = "Template Image Not Found"
	FallbackHint   = `Please place "template_card.png" in assets folder`
)

// Fallback geometry in surface pixels.
const (
	outerBorderInset = 20
	outerBorderWidth = 40
	innerBorderInset = 50
	innerBorderWidth = 5
	emblemRadius     = 150
	emblemYPercent   = 0.3
)

// drawFallbackFrame blits the cached fallback card, painting it first when
// the surface size changed. The surface must be clear.
func (r *Renderer) drawFallbackFrame() {
	width, height := r.surface.Size()
	if f := r.fallbackFrame; f != nil && f.Bounds().Dx() == width && f.Bounds().Dy() == height {
		r.surface.DrawImage(f, image.Point{})
		return
	}
	r.drawFallback()
	r.fallbackFrame = r.surface.Snapshot()
}

// drawFallback paints the placeholder card used whenever no template is loaded.
func (r *Renderer) drawFallback() {
	width, height := r.surface.Size()
	bounds := image.Rect(0, 0, width, height)
	cx := float64(width) / 2
	cy := float64(height) * emblemYPercent

	err := r.surface.Paint(func(p *render.Painter) error {
		if err := p.FillVerticalGradient(bounds, fallbackTop, fallbackBottom); err != nil {
			return err
		}
		if err := p.StrokeRect(layout.Inset(bounds, outerBorderInset), outerBorderWidth, Gold); err != nil {
			return err
		}
		if err := p.StrokeRect(layout.Inset(bounds, innerBorderInset), innerBorderWidth, Gold); err != nil {
			return err
		}
		return p.FillCircle(cx, cy, emblemRadius, Navy)
	})
	if err != nil {
		r.logger.Errorf("card", "fallback background: %v", err)
	}

	centered := func(c color.Color, size float64, weight render.Weight) render.TextStyle {
		return render.TextStyle{Color: c, Size: size, Weight: weight, Align: render.TextAlignCenter}
	}
	r.surface.DrawText(FallbackTitle, cx, cy, centered(Gold, 120, render.WeightBold))
	r.surface.DrawText(FallbackYear, cx, cy+80, centered(fallbackTop, 60, render.WeightBold))

	h := float64(height)
	r.surface.DrawText(FallbackNotice, cx, h-100, centered(footerGrey, 40, render.WeightRegular))
	r.surface.DrawText(FallbackHint, cx, h-60, centered(footerGrey, 30, render.WeightRegular))
}
