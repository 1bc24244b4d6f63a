package card

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	FilenamePrefix = "Kartu-Ucapan-"
	DefaultLabel   = "Ramadhan-Card"
)

var ErrNoSink = errors.New("no download sink configured")

// ExportFilename builds the suggested download name: whitespace runs in the
// trimmed text become single hyphens, empty text uses DefaultLabel.
func ExportFilename(text string) string {
	label := strings.Join(strings.Fields(text), "-")
	if label == "" {
		label = DefaultLabel
	}
	return FilenamePrefix + label + ".png"
}

// Export encodes the current surface as PNG and hands it to the download
// sink. It does not redraw; the surface already reflects the last input.
func (r *Renderer) Export(ctx context.Context) (string, error) {
	if r.host.Sink == nil {
		return "", ErrNoSink
	}
	filename := ExportFilename(r.host.Text.Text())

	var buf bytes.Buffer
	if err := r.surface.EncodePNG(&buf); err != nil {
		return "", fmt.Errorf("encode %s: %w", filename, err)
	}
	location, err := r.host.Sink.Deliver(ctx, filename, buf.Bytes())
	if err != nil {
		return "", fmt.Errorf("deliver %s: %w", filename, err)
	}
	r.logger.Infof("card", "exported %s (%d bytes)", location, buf.Len())
	return location, nil
}
