package assets

import (
	"fmt"
	"os"

	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/goregular"
)

// Embedded font set. The Go fonts ship with x/image, so the card renders the
// same on every host without system font lookup.
var (
	RegularTTF = goregular.TTF
	BoldTTF    = gobold.TTF
)

// ReadFontFile returns the contents of a custom font file. An empty path
// yields (nil, nil) so callers keep the embedded defaults.
func ReadFontFile(path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read font %s: %w", path, err)
	}
	return data, nil
}
