package render

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/image/font/basicfont"
)

var (
	gold  = color.NRGBA{R: 0xD4, G: 0xAF, B: 0x37, A: 0xFF}
	navy  = color.NRGBA{R: 0x1e, G: 0x3a, B: 0x65, A: 0xFF}
	white = color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

func requireNear(t *testing.T, want color.Color, got color.Color, tolerance int) {
	t.Helper()
	w := color.NRGBAModel.Convert(want).(color.NRGBA)
	g := color.NRGBAModel.Convert(got).(color.NRGBA)
	for i, pair := range [][2]uint8{{w.R, g.R}, {w.G, g.G}, {w.B, g.B}, {w.A, g.A}} {
		diff := int(pair[0]) - int(pair[1])
		if diff < 0 {
			diff = -diff
		}
		require.LessOrEqualf(t, diff, tolerance, "channel %d: want %v got %v", i, want, got)
	}
}

func TestParseHexColor(t *testing.T) {
	require.Equal(t, color.NRGBA{R: 0xdb, G: 0xc2, B: 0x6f, A: 0xec}, ParseHexColor("#dbc26fec"))
	require.Equal(t, gold, ParseHexColor("#D4AF37"))
	require.Equal(t, color.NRGBA{R: 0x88, G: 0x88, B: 0x88, A: 0xff}, ParseHexColor("#888"))
	require.Equal(t, color.NRGBA{A: 0xff}, ParseHexColor("not-a-color"))
}

func TestSurfaceResizeAndClear(t *testing.T) {
	s := NewSurface(1080, 1920, nil)
	w, h := s.Size()
	require.Equal(t, 1080, w)
	require.Equal(t, 1920, h)

	s.Resize(64, 32)
	w, h = s.Size()
	require.Equal(t, 64, w)
	require.Equal(t, 32, h)

	require.NoError(t, s.Paint(func(p *Painter) error {
		return p.FillCircle(32, 16, 10, navy)
	}))
	require.NotZero(t, s.Snapshot().RGBAAt(32, 16).A)
	s.Clear()
	require.Zero(t, s.Snapshot().RGBAAt(32, 16).A)
}

func TestPaintPrimitives(t *testing.T) {
	s := NewSurface(200, 400, nil)
	bounds := image.Rect(0, 0, 200, 400)
	require.NoError(t, s.Paint(func(p *Painter) error {
		if err := p.FillVerticalGradient(bounds, white, color.NRGBA{R: 0xf0, G: 0xf4, B: 0xf8, A: 0xff}); err != nil {
			return err
		}
		if err := p.StrokeRect(image.Rect(20, 20, 180, 380), 40, gold); err != nil {
			return err
		}
		return p.FillCircle(100, 200, 30, navy)
	}))

	img := s.Snapshot()
	requireNear(t, gold, img.At(10, 200), 2)
	requireNear(t, navy, img.At(100, 200), 2)
	requireNear(t, white, img.At(100, 60), 4)
	requireNear(t, color.NRGBA{R: 0xf0, G: 0xf4, B: 0xf8, A: 0xff}, img.At(100, 345), 4)
}

func TestMeasureTextGrowsWithSizeAndLength(t *testing.T) {
	s := NewSurface(100, 100, nil)
	small := s.MeasureText("Siti Aminah", TextStyle{Size: 30, Weight: WeightBold})
	large := s.MeasureText("Siti Aminah", TextStyle{Size: 80, Weight: WeightBold})
	longer := s.MeasureText("Siti Aminah binti Abdullah", TextStyle{Size: 80, Weight: WeightBold})
	require.Greater(t, small.Width, 0.0)
	require.Greater(t, large.Width, small.Width)
	require.Greater(t, longer.Width, large.Width)
	require.Greater(t, large.Ascent, 0.0)
	require.Zero(t, s.MeasureText("", TextStyle{Size: 80}).Width)
}

func TestDrawTextCentered(t *testing.T) {
	s := NewSurface(400, 200, nil)
	style := TextStyle{Color: navy, Size: 60, Weight: WeightBold, Align: TextAlignCenter, Baseline: BaselineMiddle}
	m := s.DrawText("HHHH", 200, 100, style)

	img := s.Snapshot()
	left, right := img.Bounds().Max.X, 0
	for y := 0; y < 200; y++ {
		for x := 0; x < 400; x++ {
			if img.RGBAAt(x, y).A > 0 {
				if x < left {
					left = x
				}
				if x > right {
					right = x
				}
			}
		}
	}
	require.Less(t, left, right)
	center := float64(left+right) / 2
	require.InDelta(t, 200, center, m.Width*0.1)
	inked := false
	for x := left; x <= right; x++ {
		if img.RGBAAt(x, 100).A > 0 {
			inked = true
			break
		}
	}
	require.True(t, inked, "middle baseline should put ink on row y")
}

func TestDrawTextShadowSpreadsBeyondGlyphs(t *testing.T) {
	plain := NewSurface(400, 200, nil)
	shadowed := NewSurface(400, 200, nil)
	style := TextStyle{Color: gold, Size: 60, Weight: WeightBold, Align: TextAlignCenter, Baseline: BaselineMiddle}
	plain.DrawText("Eid", 200, 100, style)
	style.Shadow = &Shadow{Color: color.NRGBA{R: 255, G: 255, B: 255, A: 204}, Blur: 15}
	shadowed.DrawText("Eid", 200, 100, style)

	count := func(img *image.RGBA) int {
		n := 0
		for i := 3; i < len(img.Pix); i += 4 {
			if img.Pix[i] > 0 {
				n++
			}
		}
		return n
	}
	require.Greater(t, count(shadowed.Snapshot()), count(plain.Snapshot()))
}

func TestDrawImageStretched(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 10, 20))
	for i := 0; i < len(src.Pix); i += 4 {
		src.Pix[i], src.Pix[i+3] = 0xff, 0xff
	}
	s := NewSurface(30, 60, nil)
	s.DrawImageStretched(src)
	requireNear(t, color.NRGBA{R: 0xff, A: 0xff}, s.Snapshot().At(29, 59), 1)
	requireNear(t, color.NRGBA{R: 0xff, A: 0xff}, s.Snapshot().At(0, 0), 1)
}

func TestDrawImageAt(t *testing.T) {
	src := image.NewUniform(navy)
	tile := image.NewNRGBA(image.Rect(5, 5, 9, 9))
	for y := 5; y < 9; y++ {
		for x := 5; x < 9; x++ {
			tile.Set(x, y, src.C)
		}
	}
	s := NewSurface(20, 20, nil)
	s.DrawImage(tile, image.Pt(10, 10))
	require.Zero(t, s.Snapshot().RGBAAt(9, 9).A)
	requireNear(t, navy, s.Snapshot().At(10, 10), 0)
	requireNear(t, navy, s.Snapshot().At(13, 13), 0)
	require.Zero(t, s.Snapshot().RGBAAt(14, 14).A)
}

func TestEncodePNGRoundTripsSize(t *testing.T) {
	s := NewSurface(12, 34, nil)
	var buf bytes.Buffer
	require.NoError(t, s.EncodePNG(&buf))
	cfg, err := png.DecodeConfig(&buf)
	require.NoError(t, err)
	require.Equal(t, 12, cfg.Width)
	require.Equal(t, 34, cfg.Height)
}

func TestFontsEnginesAndFallback(t *testing.T) {
	otf := NewFonts(FontOptions{Engine: EngineOpenType})
	ttf := NewFonts(FontOptions{Engine: EngineTrueType})
	defer func() { require.NoError(t, otf.Close()) }()
	defer func() { require.NoError(t, ttf.Close()) }()

	a := measure(otf.Face(WeightBold, 80), "Ramadhan")
	b := measure(ttf.Face(WeightBold, 80), "Ramadhan")
	require.InDelta(t, a.Width, b.Width, a.Width*0.05)
	require.True(t, otf.Face(WeightBold, 80) == otf.Face(WeightBold, 80), "faces are cached")

	broken := NewFonts(FontOptions{Regular: []byte("not a font"), Bold: []byte("nope")})
	require.Equal(t, basicfont.Face7x13, broken.Face(WeightRegular, 40))
	require.NoError(t, broken.Close())
}

func TestGenerateQRCodeImage(t *testing.T) {
	img, err := GenerateQRCodeImage("", 100, nil, nil)
	require.NoError(t, err)
	require.Nil(t, img)

	img, err = GenerateQRCodeImage("https://example.org/card", 0, navy, white)
	require.NoError(t, err)
	require.Equal(t, defaultQRCodeSizePx, img.Bounds().Dx())
}
