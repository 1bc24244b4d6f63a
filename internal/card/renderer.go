// Package card composes a caption onto a template image and exports the
// result as PNG.
package card

import (
	"context"
	"errors"
	"image"
	"image/color"
	"strings"

	"github.com/rook-computer/cardmaker/internal/config"
	"github.com/rook-computer/cardmaker/internal/render"
	"github.com/rook-computer/cardmaker/internal/state"
)

var errNilTemplate = errors.New("loader returned no image")

// Renderer owns the drawing surface and the template asset. All methods
// must be called from a single goroutine.
type Renderer struct {
	cfg     config.Config
	surface render.Drawer
	host    Host
	logger  Logger

	textColor color.Color
	shadow    *render.Shadow

	phase    state.AssetPhase
	template image.Image
	resized  bool
	started  bool
	redraws  int

	// fallbackFrame caches the painted fallback card for the current size.
	fallbackFrame *image.RGBA

	qrPayload string
	qr        image.Image
	qrSize    int
}

func New(cfg config.Config, surface render.Drawer, host Host, logger Logger) *Renderer {
	if logger == nil {
		logger = noopLogger{}
	}
	if host.Text == nil {
		host.Text = staticText("")
	}
	r := &Renderer{
		cfg:       cfg,
		surface:   surface,
		host:      host,
		logger:    logger,
		textColor: render.ParseHexColor(cfg.TextColor),
		phase:     state.AssetPending,
		qrPayload: cfg.QRPayload,
	}
	if cfg.TextShadow {
		r.shadow = &render.Shadow{Color: shadowColor, Blur: shadowBlur}
	}
	return r
}

// Initialize sizes the surface to the configured defaults, starts the
// template load and draws the first frame. Calling it again is a no-op.
func (r *Renderer) Initialize(ctx context.Context) {
	if r.started {
		return
	}
	r.started = true
	r.surface.Resize(r.cfg.CanvasWidth, r.cfg.CanvasHeight)

	if r.host.Loader == nil {
		r.OnAssetLoadFailed(errors.New("no asset loader configured"))
	} else {
		r.host.Loader.Load(ctx, r.cfg.TemplatePath, func(img image.Image, err error) {
			r.dispatch(func() {
				if err == nil && img == nil {
					err = errNilTemplate
				}
				if err != nil {
					r.OnAssetLoadFailed(err)
					return
				}
				r.OnAssetLoaded(img)
			})
		})
	}
	r.Redraw()
}

// OnAssetLoaded adopts img as the template and resizes the surface to its
// natural size. Only the first completion is honored.
func (r *Renderer) OnAssetLoaded(img image.Image) {
	if r.phase != state.AssetPending {
		r.logger.Infof("card", "ignoring template completion in phase %s", r.phase)
		return
	}
	if img == nil {
		r.OnAssetLoadFailed(errNilTemplate)
		return
	}
	r.phase = state.AssetLoaded
	r.template = img
	if !r.resized {
		bounds := img.Bounds()
		r.surface.Resize(bounds.Dx(), bounds.Dy())
		r.resized = true
		r.logger.Infof("card", "surface resized to template %dx%d", bounds.Dx(), bounds.Dy())
	}
	r.Redraw()
}

// OnAssetLoadFailed switches to the generated background for the rest of
// the session. The failure is logged, never retried.
func (r *Renderer) OnAssetLoadFailed(err error) {
	if r.phase != state.AssetPending {
		r.logger.Infof("card", "ignoring template failure in phase %s: %v", r.phase, err)
		return
	}
	r.phase = state.AssetFailed
	r.logger.Errorf("card", "template image not found, using fallback generator: %v", err)
	r.Redraw()
}

// Redraw recomposes the whole card from the current input.
func (r *Renderer) Redraw() {
	r.surface.Clear()

	if r.phase == state.AssetLoaded {
		r.surface.DrawImageStretched(r.template)
	} else {
		r.drawFallbackFrame()
	}

	r.drawQRStamp()

	if text := strings.TrimSpace(r.host.Text.Text()); text != "" {
		r.DrawCaption(text)
	}

	r.redraws++
	if d, ok := r.logger.(debugLogger); ok {
		width, height := r.surface.Size()
		d.Debugf("card", "redraw #%d %dx%d phase=%s", r.redraws, width, height, r.phase)
	}
	r.present()
}

func (r *Renderer) Phase() state.AssetPhase { return r.phase }

func (r *Renderer) Redraws() int { return r.redraws }

func (r *Renderer) Size() (int, int) { return r.surface.Size() }

func (r *Renderer) present() {
	if r.host.Preview == nil {
		return
	}
	if err := r.host.Preview.Present(r.surface.Image()); err != nil {
		r.logger.Errorf("preview", "present failed: %v", err)
	}
}

func (r *Renderer) dispatch(fn func()) {
	if r.host.Dispatch == nil {
		fn()
		return
	}
	r.host.Dispatch(fn)
}

// scale maps reference units (a 1080-wide card) onto the current surface.
func (r *Renderer) scale() float64 {
	width, _ := r.surface.Size()
	return float64(width) / ReferenceWidth
}
