//go:build !linux

package system

import "errors"

var errUnsupported = errors.New("console mode switching requires linux")

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

func SetGraphicsMode() error { return errUnsupported }
func RestoreTextMode() error { return errUnsupported }
func HideCursor() error      { return errUnsupported }
func ShowCursor() error      { return errUnsupported }

func EnterGraphics(Logger) error { return errUnsupported }
func LeaveGraphics(Logger) error { return errUnsupported }
