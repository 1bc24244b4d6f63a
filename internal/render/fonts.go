package render

import (
	"fmt"

	"github.com/golang/freetype/truetype"
	"github.com/rook-computer/cardmaker/internal/assets"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

const (
	EngineOpenType = "opentype"
	EngineTrueType = "truetype"
)

// Faces are rasterized at 72 DPI so that a face of size N is N pixels tall.
const faceDPI = 72

type FontOptions struct {
	// Engine is EngineOpenType (default) or EngineTrueType.
	Engine  string
	Regular []byte
	Bold    []byte
	Logger  Logger
}

type faceSource interface {
	newFace(size float64) (font.Face, error)
}

type opentypeSource struct{ font *opentype.Font }

func (s opentypeSource) newFace(size float64) (font.Face, error) {
	return opentype.NewFace(s.font, &opentype.FaceOptions{Size: size, DPI: faceDPI, Hinting: font.HintingNone})
}

type truetypeSource struct{ font *truetype.Font }

func (s truetypeSource) newFace(size float64) (font.Face, error) {
	return truetype.NewFace(s.font, &truetype.Options{Size: size, DPI: faceDPI, Hinting: font.HintingNone}), nil
}

type faceKey struct {
	weight Weight
	size   float64
}

// Fonts caches sized faces for the regular and bold weights.
// It is not safe for concurrent use.
type Fonts struct {
	regular faceSource
	bold    faceSource
	cache   map[faceKey]font.Face
	logger  Logger
}

func NewFonts(opts FontOptions) *Fonts {
	f := &Fonts{cache: map[faceKey]font.Face{}, logger: opts.Logger}
	regular := opts.Regular
	if len(regular) == 0 {
		regular = assets.RegularTTF
	}
	bold := opts.Bold
	if len(bold) == 0 {
		bold = assets.BoldTTF
	}
	f.regular = f.parse(opts.Engine, "regular", regular)
	f.bold = f.parse(opts.Engine, "bold", bold)
	return f
}

func (f *Fonts) parse(engine, name string, data []byte) faceSource {
	switch engine {
	case EngineTrueType:
		tt, err := truetype.Parse(data)
		if err != nil {
			f.errorf("truetype parse of %s font failed, using basicfont: %v", name, err)
			return nil
		}
		return truetypeSource{font: tt}
	default:
		otf, err := opentype.Parse(data)
		if err != nil {
			f.errorf("opentype parse of %s font failed, using basicfont: %v", name, err)
			return nil
		}
		return opentypeSource{font: otf}
	}
}

// Face returns the face for weight at size pixels. When the font could not
// be parsed or sized, basicfont.Face7x13 is returned instead.
func (f *Fonts) Face(weight Weight, size float64) font.Face {
	key := faceKey{weight: weight, size: size}
	if face, ok := f.cache[key]; ok {
		return face
	}

	source := f.regular
	if weight == WeightBold {
		source = f.bold
	}
	var face font.Face = basicfont.Face7x13
	if source != nil {
		sized, err := source.newFace(size)
		if err != nil {
			f.errorf("font face at %.1fpx failed, using basicfont: %v", size, err)
		} else {
			face = sized
		}
	}
	f.cache[key] = face
	return face
}

func (f *Fonts) Close() error {
	var firstErr error
	for key, face := range f.cache {
		if face == basicfont.Face7x13 {
			continue
		}
		if err := face.Close(); err != nil && firstErr == nil {
			firstErr = fmt.Errorf("close face %.1fpx: %w", key.size, err)
		}
	}
	clear(f.cache)
	return firstErr
}

func (f *Fonts) errorf(format string, args ...interface{}) {
	if f.logger != nil {
		f.logger.Errorf("font", format, args...)
	}
}
