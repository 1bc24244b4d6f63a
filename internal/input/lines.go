package input

import (
	"bufio"
	"context"
	"errors"
	"io"
	"sync"
)

// LineSource reads commands and captions from a reader, one per line.
type LineSource struct {
	r      io.Reader
	logger Logger
	ch     chan Event

	once   sync.Once
	cancel context.CancelFunc
}

func NewLineSource(r io.Reader, logger Logger) *LineSource {
	if logger == nil {
		logger = noopLogger{}
	}
	return &LineSource{r: r, logger: logger, ch: make(chan Event)}
}

func (s *LineSource) Events() <-chan Event { return s.ch }

// Start begins reading in the background. A blocked read is abandoned, not
// interrupted, when ctx ends.
func (s *LineSource) Start(ctx context.Context) error {
	s.once.Do(func() {
		ctx, s.cancel = context.WithCancel(ctx)
		go s.run(ctx)
	})
	return nil
}

func (s *LineSource) Stop() error {
	if s.cancel != nil {
		s.cancel()
	}
	return nil
}

func (s *LineSource) run(ctx context.Context) {
	defer close(s.ch)

	reader := bufio.NewReader(s.r)
	for {
		line, err := reader.ReadString('\n')
		if line != "" {
			ev, perr := ParseLine(line)
			if perr != nil {
				s.logger.Errorf("input", "%v", perr)
			} else if !s.send(ctx, ev) {
				return
			}
		}
		if err != nil {
			if !errors.Is(err, io.EOF) {
				s.logger.Errorf("input", "read failed: %v", err)
			}
			break
		}
	}
	s.send(ctx, Event{Kind: EOF})
}

func (s *LineSource) send(ctx context.Context, ev Event) bool {
	select {
	case s.ch <- ev:
		return true
	case <-ctx.Done():
		return false
	}
}
