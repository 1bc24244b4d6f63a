package preview

import (
	"errors"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func filled(width, height int, c color.Color) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for i := 0; i < len(img.Pix); i += 4 {
		r, g, b, a := c.RGBA()
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = uint8(r>>8), uint8(g>>8), uint8(b>>8), uint8(a>>8)
	}
	return img
}

func TestFit(t *testing.T) {
	require.Equal(t, image.Rect(0, 0, 1080, 1920), Fit(image.Rect(0, 0, 1080, 1920), image.Rect(0, 0, 1080, 1920)))
	// Portrait card on a landscape screen is pillarboxed.
	require.Equal(t, image.Rect(505, 0, 775, 480), Fit(image.Rect(0, 0, 1280, 480), image.Rect(0, 0, 1080, 1920)))
	// Landscape source on a portrait screen is letterboxed.
	require.Equal(t, image.Rect(0, 150, 100, 250), Fit(image.Rect(0, 0, 100, 400), image.Rect(0, 0, 200, 200)))
	require.True(t, Fit(image.Rect(0, 0, 10, 10), image.Rectangle{}).Empty())
}

func TestPNGFileSinkWritesFrame(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "preview.png")
	sink := PNGFileSink{Path: path}
	require.NoError(t, sink.Present(filled(40, 80, color.White)))
	require.NoError(t, sink.Present(filled(30, 60, color.Black)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 30, 60), img.Bounds())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	require.Len(t, entries, 1)
}

func TestPNGFileSinkDownsizes(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	require.NoError(t, PNGFileSink{Path: path, MaxWidth: 270}.Present(filled(1080, 1920, color.White)))

	f, err := os.Open(path)
	require.NoError(t, err)
	defer f.Close()
	cfg, err := png.DecodeConfig(f)
	require.NoError(t, err)
	require.Equal(t, 270, cfg.Width)
	require.Equal(t, 480, cfg.Height)
}

type fakeDevice struct {
	*image.RGBA
	closed bool
}

func (d *fakeDevice) Close() error {
	d.closed = true
	return nil
}

type fakeConsole struct{ entered, left int }

func (c *fakeConsole) Enter() error { c.entered++; return nil }
func (c *fakeConsole) Leave() error { c.left++; return nil }

func TestFramebufferSinkLetterboxes(t *testing.T) {
	dev := &fakeDevice{RGBA: image.NewRGBA(image.Rect(0, 0, 200, 100))}
	console := &fakeConsole{}
	sink := NewFramebufferSink("", nil)
	sink.Console = console
	sink.open = func(path string) (Device, error) {
		require.Equal(t, "/dev/fb0", path)
		return dev, nil
	}

	require.NoError(t, sink.Present(filled(10, 10, color.White)))
	require.NoError(t, sink.Start())
	require.Equal(t, 1, console.entered)

	require.NoError(t, sink.Present(filled(50, 100, color.White)))
	require.Equal(t, color.RGBA{A: 0xff}, dev.RGBAAt(10, 50))
	require.Equal(t, color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}, dev.RGBAAt(100, 50))

	require.NoError(t, sink.Close())
	require.True(t, dev.closed)
	require.Equal(t, 1, console.left)
	require.NoError(t, sink.Close())
}

func TestFramebufferSinkOpenError(t *testing.T) {
	sink := NewFramebufferSink("/dev/fb9", nil)
	sink.open = func(string) (Device, error) { return nil, errors.New("no device") }
	require.Error(t, sink.Start())
	require.NoError(t, sink.Present(filled(1, 1, color.White)))
}

type failingSink struct{ err error }

func (f failingSink) Present(image.Image) error { return f.err }

func TestMultiPresentsToAll(t *testing.T) {
	path := filepath.Join(t.TempDir(), "preview.png")
	boom := errors.New("boom")
	err := Multi{failingSink{boom}, PNGFileSink{Path: path}, Noop{}}.Present(filled(4, 4, color.White))
	require.ErrorIs(t, err, boom)
	require.FileExists(t, path)
}
