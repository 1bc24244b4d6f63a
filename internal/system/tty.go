//go:build linux

// Package system switches the active virtual terminal between text and
// graphics mode so a framebuffer preview is not overdrawn by the console.
package system

import (
	"errors"
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// KD console modes from linux/kd.h
const (
	kdText     = 0x00
	kdGraphics = 0x01
	kdSetMode  = 0x4B3A // KDSETMODE ioctl
)

// Active VT first, then the current console.
var ttyPaths = []string{"/dev/tty", "/dev/tty0"}

type Logger interface {
	Infof(component string, format string, args ...interface{})
	Errorf(component string, format string, args ...interface{})
}

// SetGraphicsMode switches the active console to graphics mode to suppress
// the text console and its cursor.
func SetGraphicsMode() error { return setKDMode(kdGraphics, "KD_GRAPHICS") }

// RestoreTextMode restores the console to text mode.
func RestoreTextMode() error { return setKDMode(kdText, "KD_TEXT") }

func HideCursor() error { return writeVT("\x1b[?25l") }

func ShowCursor() error { return writeVT("\x1b[?25h") }

// EnterGraphics hides the console for a framebuffer session. Failures are
// logged and returned; callers usually carry on without them.
func EnterGraphics(l Logger) error {
	return errors.Join(
		logged(l, "KD_GRAPHICS set", SetGraphicsMode()),
		logged(l, "cursor hidden", HideCursor()),
	)
}

// LeaveGraphics undoes EnterGraphics.
func LeaveGraphics(l Logger) error {
	return errors.Join(
		logged(l, "KD_TEXT set", RestoreTextMode()),
		logged(l, "cursor shown", ShowCursor()),
	)
}

func logged(l Logger, okMsg string, err error) error {
	if l == nil {
		return err
	}
	if err != nil {
		l.Errorf("tty", "%v", err)
	} else {
		l.Infof("tty", "%s", okMsg)
	}
	return err
}

func setKDMode(mode int, name string) error {
	var lastErr error
	for _, p := range ttyPaths {
		fd, err := unix.Open(p, unix.O_RDONLY, 0)
		if err != nil {
			lastErr = fmt.Errorf("open %s: %w", p, err)
			continue
		}
		err = unix.IoctlSetInt(fd, kdSetMode, mode)
		_ = unix.Close(fd)
		if err != nil {
			lastErr = fmt.Errorf("%s on %s: %w", name, p, err)
			continue
		}
		return nil
	}
	return lastErr
}

func writeVT(s string) error {
	var lastErr error
	for _, p := range ttyPaths {
		f, err := os.OpenFile(p, os.O_WRONLY, 0)
		if err != nil {
			lastErr = err
			continue
		}
		_, err = f.WriteString(s)
		_ = f.Close()
		if err == nil {
			return nil
		}
		lastErr = err
	}
	return fmt.Errorf("write VT failed: %w", lastErr)
}
