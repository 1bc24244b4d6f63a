package preview

import (
	"image"
	"image/color"
	"image/draw"
	"sync"

	xdraw "golang.org/x/image/draw"

	"github.com/rook-computer/cardmaker/internal/system"
)

// Device is the writable framebuffer surface.
type Device interface {
	draw.Image
	Close() error
}

// FramebufferSink letterboxes each frame onto a framebuffer device.
type FramebufferSink struct {
	Path   string
	Logger Logger
	// Console toggles the VT between graphics and text mode. Optional.
	Console Console

	mu      sync.Mutex
	dev     Device
	scratch *image.RGBA
	open    func(path string) (Device, error)
}

// Console hides the text console while the framebuffer is in use.
type Console interface {
	Enter() error
	Leave() error
}

// VTConsole switches the active virtual terminal into graphics mode.
type VTConsole struct{ Logger system.Logger }

func (c VTConsole) Enter() error { return system.EnterGraphics(c.Logger) }
func (c VTConsole) Leave() error { return system.LeaveGraphics(c.Logger) }

func NewFramebufferSink(path string, logger Logger) *FramebufferSink {
	if path == "" {
		path = "/dev/fb0"
	}
	return &FramebufferSink{Path: path, Logger: logger, open: openFramebuffer}
}

// Start opens the device and clears it to black.
func (s *FramebufferSink) Start() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev != nil {
		return nil
	}
	dev, err := s.open(s.Path)
	if err != nil {
		return err
	}
	s.dev = dev
	bounds := dev.Bounds()
	s.scratch = image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	if s.Logger != nil {
		s.Logger.Infof("fb", "framebuffer open, bounds=%dx%d", bounds.Dx(), bounds.Dy())
	}
	if s.Console != nil {
		_ = s.Console.Enter()
	}
	draw.Draw(dev, bounds, image.NewUniform(color.Black), image.Point{}, draw.Src)
	return nil
}

func (s *FramebufferSink) Present(img image.Image) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	draw.Draw(s.scratch, s.scratch.Bounds(), image.NewUniform(color.Black), image.Point{}, draw.Src)
	target := Fit(s.scratch.Bounds(), img.Bounds())
	if target.Empty() {
		return nil
	}
	xdraw.ApproxBiLinear.Scale(s.scratch, target, img, img.Bounds(), xdraw.Over, nil)
	draw.Draw(s.dev, s.dev.Bounds(), s.scratch, image.Point{}, draw.Src)
	return nil
}

func (s *FramebufferSink) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.dev == nil {
		return nil
	}
	if s.Console != nil {
		_ = s.Console.Leave()
	}
	err := s.dev.Close()
	s.dev = nil
	return err
}
