// Package preview shows rendered frames while the user edits the caption.
package preview

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"path/filepath"

	xdraw "golang.org/x/image/draw"
)

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// Noop discards every frame.
type Noop struct{}

func (Noop) Present(image.Image) error { return nil }

// PNGFileSink rewrites Path with the latest frame. Viewers watching the
// file never observe a partial write.
type PNGFileSink struct {
	Path string
	// MaxWidth downsizes frames wider than this; zero keeps full size.
	MaxWidth int
}

func (s PNGFileSink) Present(img image.Image) error {
	if s.Path == "" {
		return nil
	}
	frame := img
	if b := img.Bounds(); s.MaxWidth > 0 && b.Dx() > s.MaxWidth {
		h := b.Dy() * s.MaxWidth / b.Dx()
		frame = scaleInto(image.NewRGBA(image.Rect(0, 0, s.MaxWidth, max(h, 1))), img)
	}

	dir := filepath.Dir(s.Path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create %s: %w", dir, err)
	}
	tmp, err := os.CreateTemp(dir, ".preview-*.png")
	if err != nil {
		return fmt.Errorf("create preview: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if err := png.Encode(tmp, frame); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("encode preview: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close preview: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.Path); err != nil {
		return fmt.Errorf("publish preview: %w", err)
	}
	return nil
}

// Multi presents each frame to every sink and returns the first error.
type Multi []interface{ Present(image.Image) error }

func (m Multi) Present(img image.Image) error {
	var first error
	for _, sink := range m {
		if err := sink.Present(img); err != nil && first == nil {
			first = err
		}
	}
	return first
}

// Fit returns the largest rectangle with src's aspect ratio centered in dst.
func Fit(dst image.Rectangle, src image.Rectangle) image.Rectangle {
	if src.Dx() <= 0 || src.Dy() <= 0 || dst.Empty() {
		return image.Rectangle{}
	}
	w := dst.Dx()
	h := src.Dy() * w / src.Dx()
	if h > dst.Dy() {
		h = dst.Dy()
		w = src.Dx() * h / src.Dy()
	}
	x := dst.Min.X + (dst.Dx()-w)/2
	y := dst.Min.Y + (dst.Dy()-h)/2
	return image.Rect(x, y, x+w, y+h)
}

func scaleInto(dst *image.RGBA, src image.Image) *image.RGBA {
	xdraw.ApproxBiLinear.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}
