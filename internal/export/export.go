// Package export delivers exported cards to their destination.
package export

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

var ErrInvalidFilename = errors.New("invalid export filename")

// DirSink writes each delivery into Dir, creating it on demand. An existing
// file with the same name is replaced.
type DirSink struct {
	Dir string
}

func (s DirSink) Deliver(ctx context.Context, filename string, data []byte) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create %s: %w", dir, err)
	}

	target := filepath.Join(dir, name)
	tmp := filepath.Join(dir, ".export-"+strconv.FormatInt(time.Now().UnixNano(), 10)+"-"+name)
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, target); err != nil {
		_ = os.Remove(tmp)
		return "", fmt.Errorf("rename %s: %w", target, err)
	}
	return target, nil
}

// Discard accepts every delivery and keeps nothing.
type Discard struct{}

func (Discard) Deliver(_ context.Context, filename string, _ []byte) (string, error) {
	return filename, nil
}

// sanitizeFilename keeps the name inside the target directory.
func sanitizeFilename(name string) (string, error) {
	name = strings.TrimSpace(name)
	name = strings.ReplaceAll(name, "/", "_")
	name = strings.ReplaceAll(name, "\\", "_")
	name = strings.ReplaceAll(name, "..", "_")
	name = strings.Map(func(r rune) rune {
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, name)
	if name == "" || name == "." {
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, name)
	}
	return name, nil
}
