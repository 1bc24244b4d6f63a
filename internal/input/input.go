// Package input turns user activity into caption edits and button presses.
package input

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
)

type Kind string

const (
	// Text replaces the caption field with Event.Text.
	Text Kind = "text"
	// Export is the download button.
	Export Kind = "export"
	// Clear empties the caption field.
	Clear Kind = "clear"
	// Quit ends the session.
	Quit Kind = "quit"
	// EOF reports that the line source ran dry.
	EOF Kind = "eof"
)

type Event struct {
	Kind Kind
	Text string
}

// Source produces events until it is stopped or runs out of input.
// Events is closed when the source is done.
type Source interface {
	Start(ctx context.Context) error
	Stop() error
	Events() <-chan Event
}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

var ErrUnknownCommand = errors.New("unknown command")

// ParseLine maps one input line to an event. Lines starting with ':' are
// commands; a leading "::" escapes a caption that starts with a colon.
func ParseLine(line string) (Event, error) {
	line = strings.TrimRight(line, "\r\n")
	if strings.HasPrefix(line, "::") {
		return Event{Kind: Text, Text: line[1:]}, nil
	}
	if !strings.HasPrefix(line, ":") {
		return Event{Kind: Text, Text: line}, nil
	}
	switch cmd := strings.ToLower(strings.TrimSpace(line[1:])); cmd {
	case "export", "download", "e":
		return Event{Kind: Export}, nil
	case "clear", "c":
		return Event{Kind: Clear}, nil
	case "quit", "exit", "q":
		return Event{Kind: Quit}, nil
	default:
		return Event{}, fmt.Errorf("%w: %q", ErrUnknownCommand, cmd)
	}
}

// Field holds the live caption text.
type Field struct {
	mu   sync.RWMutex
	text string
}

func (f *Field) Set(text string) {
	f.mu.Lock()
	f.text = text
	f.mu.Unlock()
}

func (f *Field) Text() string {
	f.mu.RLock()
	defer f.mu.RUnlock()
	return f.text
}

// Merge fans the event streams of several sources into one channel. The
// result closes once every input is closed or ctx is done.
func Merge(ctx context.Context, streams ...<-chan Event) <-chan Event {
	out := make(chan Event)
	var wg sync.WaitGroup
	for _, stream := range streams {
		if stream == nil {
			continue
		}
		wg.Add(1)
		go func(stream <-chan Event) {
			defer wg.Done()
			for {
				select {
				case <-ctx.Done():
					return
				case ev, ok := <-stream:
					if !ok {
						return
					}
					select {
					case out <- ev:
					case <-ctx.Done():
						return
					}
				}
			}
		}(stream)
	}
	go func() {
		wg.Wait()
		close(out)
	}()
	return out
}

type noopLogger struct{}

func (noopLogger) Infof(string, string, ...interface{})  {}
func (noopLogger) Errorf(string, string, ...interface{}) {}
