//go:build linux

package preview

import fb "github.com/gonutz/framebuffer"

// fbDevice gives the framebuffer the error-returning Close of Device.
type fbDevice struct{ *fb.Device }

var _ Device = fbDevice{}

func (d fbDevice) Close() error {
	d.Device.Close()
	return nil
}

func openFramebuffer(path string) (Device, error) {
	dev, err := fb.Open(path)
	if err != nil {
		return nil, err
	}
	return fbDevice{dev}, nil
}
