package card

import (
	"image"

	"github.com/rook-computer/cardmaker/internal/render"
	"github.com/rook-computer/cardmaker/internal/render/layout"
)

// QR stamp geometry in reference units.
const (
	qrStampSize   = 160
	qrStampMargin = 70
)

// drawQRStamp puts the configured QR code in the top-right corner.
func (r *Renderer) drawQRStamp() {
	if r.qrPayload == "" {
		return
	}
	width, height := r.surface.Size()
	scale := r.scale()
	size := layout.Scaled(qrStampSize, scale)
	if size <= 0 {
		return
	}
	if r.qr == nil || r.qrSize != size {
		img, err := render.GenerateQRCodeImage(r.qrPayload, size, Navy, fallbackTop)
		if err != nil {
			r.logger.Errorf("card", "qr stamp disabled: %v", err)
			r.qrPayload = ""
			return
		}
		r.qr, r.qrSize = img, size
	}

	area := layout.Inset(image.Rect(0, 0, width, height), layout.Scaled(qrStampMargin, scale))
	qrBounds := r.qr.Bounds()
	r.surface.DrawImage(r.qr, layout.AnchorTopRight(area, qrBounds.Dx(), qrBounds.Dy()).Min)
}
