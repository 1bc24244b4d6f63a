package render

import (
	"image"
	"image/color"
	"io"
)

// Drawer is the drawing surface the card renderer composes into.
// Coordinates are in surface pixels with the origin at the top-left.
type Drawer interface {
	// Size returns the current surface size in pixels.
	Size() (width int, height int)
	// Resize reallocates the surface. The new surface is transparent.
	Resize(width, height int)
	Clear()

	// Paint runs vector primitives (gradients, strokes, arcs) against the surface.
	Paint(fn func(p *Painter) error) error

	MeasureText(text string, style TextStyle) TextMetrics
	DrawText(text string, x, y float64, style TextStyle) TextMetrics

	// DrawImageStretched scales img to cover the whole surface.
	DrawImageStretched(img image.Image)
	DrawImage(img image.Image, at image.Point)

	Image() image.Image
	// Snapshot returns a copy of the current pixels.
	Snapshot() *image.RGBA
	EncodePNG(w io.Writer) error
}

// Logger matches the component-tagged logging used across the app.
type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

type TextAlign int

const (
	TextAlignLeft TextAlign = iota
	TextAlignCenter
	TextAlignRight
)

// TextBaseline selects which horizontal line of the text y refers to.
type TextBaseline int

const (
	// BaselineAlphabetic places the glyph baseline at y.
	BaselineAlphabetic TextBaseline = iota
	// BaselineMiddle places the middle of the em box at y.
	BaselineMiddle
)

type Weight int

const (
	WeightRegular Weight = iota
	WeightBold
)

// DefaultTextSize is used when a TextStyle leaves Size at zero.
const DefaultTextSize = 10

// Shadow is a blurred copy of the text drawn beneath it.
// Blur follows canvas semantics: the gaussian sigma is Blur/2.
type Shadow struct {
	Color   color.Color
	Blur    float64
	OffsetX float64
	OffsetY float64
}

// TextStyle describes how to render text.
// For X, Align controls how x is interpreted; for Y, Baseline does.
type TextStyle struct {
	Color    color.Color
	Size     float64 // pixels; 0 means DefaultTextSize
	Weight   Weight
	Align    TextAlign
	Baseline TextBaseline
	Shadow   *Shadow
}

func (s TextStyle) size() float64 {
	if s.Size <= 0 {
		return DefaultTextSize
	}
	return s.Size
}

func (s TextStyle) color() color.Color {
	if s.Color == nil {
		return color.Black
	}
	return s.Color
}

type TextMetrics struct {
	Width      float64
	Ascent     float64
	Descent    float64
	LineHeight float64
}
