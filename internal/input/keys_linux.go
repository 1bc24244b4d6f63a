//go:build linux

package input

import (
	"context"
	"encoding/binary"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sys/unix"
)

// KeySource watches evdev keyboards: F2 exports, F4 quits.
type KeySource struct {
	Glob   string
	logger Logger
	ch     chan Event

	once   sync.Once
	cancel context.CancelFunc
	wg     sync.WaitGroup
}

func NewKeySource(logger Logger) *KeySource {
	if logger == nil {
		logger = noopLogger{}
	}
	return &KeySource{Glob: "/dev/input/event*", logger: logger, ch: make(chan Event)}
}

func (s *KeySource) Events() <-chan Event { return s.ch }

// Start is best-effort: with no readable devices the source just closes.
func (s *KeySource) Start(ctx context.Context) error {
	s.once.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		paths, err := filepath.Glob(s.Glob)
		if err != nil || len(paths) == 0 {
			s.logger.Infof("input", "no evdev devices found for function keys")
		}
		for _, path := range paths {
			s.wg.Add(1)
			go s.watch(ctx, path)
		}
		go func() {
			s.wg.Wait()
			close(s.ch)
		}()
	})
	return nil
}

func (s *KeySource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *KeySource) watch(ctx context.Context, path string) {
	defer s.wg.Done()

	// input_event = timeval + u16 type + u16 code + s32 value.
	tvSize := binary.Size(unix.Timeval{})

	fd, err := unix.Open(path, unix.O_RDONLY|unix.O_NONBLOCK, 0)
	if err != nil {
		return
	}
	f := os.NewFile(uintptr(fd), path)
	defer func() { _ = f.Close() }()

	buf := make([]byte, 4096)
	for {
		if ctx.Err() != nil {
			return
		}
		pollFds := []unix.PollFd{{Fd: int32(fd), Events: unix.POLLIN}}
		if _, err := unix.Poll(pollFds, 250); err != nil {
			if err == unix.EINTR {
				continue
			}
			// Device might have gone away.
			return
		}
		if pollFds[0].Revents&unix.POLLIN == 0 {
			continue
		}
		n, err := unix.Read(fd, buf)
		if err != nil {
			if err == unix.EAGAIN || err == unix.EINTR {
				continue
			}
			return
		}
		for _, ev := range decodeKeyPresses(buf[:n], tvSize) {
			s.logger.Infof("input", "%s key pressed on %s", ev.Kind, filepath.Base(path))
			select {
			case s.ch <- ev:
			case <-ctx.Done():
				return
			}
		}
	}
}
