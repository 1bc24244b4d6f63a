//go:build !linux

package input

import (
	"context"
	"sync"
)

// KeySource needs evdev; elsewhere it closes immediately.
type KeySource struct {
	ch   chan Event
	once sync.Once
}

func NewKeySource(Logger) *KeySource { return &KeySource{ch: make(chan Event)} }

func (s *KeySource) Events() <-chan Event { return s.ch }

func (s *KeySource) Start(context.Context) error {
	s.once.Do(func() { close(s.ch) })
	return nil
}

func (s *KeySource) Stop() error { return nil }
