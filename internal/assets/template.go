package assets

import (
	"context"
	"errors"
	"fmt"
	"image"

	"github.com/disintegration/imaging"
)

// ErrNoTemplate is returned when no template path is configured.
var ErrNoTemplate = errors.New("no template path configured")

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// TemplateLoader decodes the background image off the caller's goroutine and
// reports the outcome through a completion callback.
type TemplateLoader struct {
	Logger Logger
}

// Load starts decoding path and returns immediately. done is called exactly
// once, from the loader goroutine, with either the image or the error.
func (l TemplateLoader) Load(ctx context.Context, path string, done func(image.Image, error)) {
	go func() {
		img, err := DecodeTemplate(ctx, path)
		if err != nil {
			if l.Logger != nil {
				l.Logger.Errorf("assets", "template %q: %v", path, err)
			}
		} else if l.Logger != nil {
			b := img.Bounds()
			l.Logger.Infof("assets", "template %q decoded, %dx%d", path, b.Dx(), b.Dy())
		}
		done(img, err)
	}()
}

// DecodeTemplate reads an image file, honoring EXIF orientation.
func DecodeTemplate(ctx context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, ErrNoTemplate
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if b := img.Bounds(); b.Empty() {
		return nil, fmt.Errorf("decode template: empty image %dx%d", b.Dx(), b.Dy())
	}
	return img, nil
}
