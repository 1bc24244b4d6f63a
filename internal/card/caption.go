package card

import (
	"image/color"
	"math"

	"github.com/rook-computer/cardmaker/internal/render"
)

const (
	// ReferenceWidth is the card width that font sizes are expressed in.
	ReferenceWidth = 1080.0
	// MaxWidthRatio bounds the caption to this share of the surface width.
	MaxWidthRatio = 0.8
	// MinFontSize is the caption floor in reference units.
	MinFontSize = 30.0
	// FontSizeStep is the shrink applied per fitting step, in pixels.
	FontSizeStep = 2.0
)

var (
	shadowColor = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xcc}
	shadowBlur  = 15.0
)

// Caption describes the caption as drawn.
type Caption struct {
	Size    float64
	Metrics render.TextMetrics
}

// FitFontSize starts at baseFontSize scaled to surfaceWidth and shrinks in
// FontSizeStep decrements while the measured width exceeds MaxWidthRatio of
// the surface. It never goes below the scaled MinFontSize, and never grows a
// base that already starts under it. The last step is clamped to the floor,
// so a 540px surface ends at 15px where an unclamped 2px step would
// overshoot to 14px.
func FitFontSize(measure func(size float64) float64, surfaceWidth, baseFontSize float64) (size, width float64) {
	scale := surfaceWidth / ReferenceWidth
	size = baseFontSize * scale
	floor := MinFontSize * scale
	maxWidth := surfaceWidth * MaxWidthRatio

	width = measure(size)
	for width > maxWidth && size > floor {
		size = math.Max(size-FontSizeStep, floor)
		width = measure(size)
	}
	return size, width
}

// DrawCaption draws text centered horizontally, middle-anchored at
// TextYPercent of the surface height.
func (r *Renderer) DrawCaption(text string) Caption {
	width, height := r.surface.Size()
	style := render.TextStyle{
		Color:    r.textColor,
		Weight:   render.WeightBold,
		Align:    render.TextAlignCenter,
		Baseline: render.BaselineMiddle,
		Shadow:   r.shadow,
	}

	size, _ := FitFontSize(func(size float64) float64 {
		style.Size = size
		return r.surface.MeasureText(text, style).Width
	}, float64(width), r.cfg.BaseFontSize)

	style.Size = size
	metrics := r.surface.DrawText(text, float64(width)/2, float64(height)*r.cfg.TextYPercent, style)
	return Caption{Size: size, Metrics: metrics}
}
