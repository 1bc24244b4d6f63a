package card

import (
	"context"
	"image"
)

// AssetLoader starts loading the template and reports back through done.
// done may run on any goroutine; the renderer re-dispatches it.
type AssetLoader interface {
	Load(ctx context.Context, path string, done func(image.Image, error))
}

// DownloadSink receives an exported card and returns where it ended up.
type DownloadSink interface {
	Deliver(ctx context.Context, filename string, data []byte) (string, error)
}

// PreviewSink shows the latest frame. img is only valid during the call.
type PreviewSink interface {
	Present(img image.Image) error
}

// TextSource is the caption input field.
type TextSource interface {
	Text() string
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// debugLogger is implemented by loggers that keep verbose per-redraw output.
type debugLogger interface {
	Debugf(component string, format string, args ...interface{})
}

// Host bundles everything the renderer needs from its runtime.
type Host struct {
	Loader  AssetLoader
	Sink    DownloadSink
	Preview PreviewSink
	Text    TextSource

	// Dispatch runs fn on the event goroutine. Nil runs fn inline.
	Dispatch func(fn func())
}

type staticText string

func (s staticText) Text() string { return string(s) }

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
