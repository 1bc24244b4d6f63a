//go:build !linux

package preview

import "errors"

func openFramebuffer(string) (Device, error) {
	return nil, errors.New("framebuffer preview requires linux")
}
