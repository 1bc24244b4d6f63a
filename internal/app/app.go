// Package app runs the card editing session: it feeds input events to the
// card renderer on a single goroutine and mirrors the result into the store.
package app

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/rook-computer/cardmaker/internal/card"
	"github.com/rook-computer/cardmaker/internal/config"
	"github.com/rook-computer/cardmaker/internal/input"
	"github.com/rook-computer/cardmaker/internal/render"
	"github.com/rook-computer/cardmaker/internal/state"
)

// Deps are the collaborators the session is wired from.
type Deps struct {
	Store   *state.Store
	Surface render.Drawer
	Loader  card.AssetLoader
	Sink    card.DownloadSink
	Preview card.PreviewSink
	Inputs  []input.Source
}

type App struct {
	Store  *state.Store
	Logger Logger
	// ExportOnExit exports once more when the line input reaches EOF.
	ExportOnExit bool
	// StatusInterval logs a state snapshot periodically. Zero disables it.
	StatusInterval time.Duration

	card   *card.Renderer
	field  *input.Field
	inputs []input.Source

	calls    chan func()
	done     chan struct{}
	exitOnce atomic.Bool
	exitCh   chan error
}

var errQuit = errors.New("quit requested")

func New(cfg config.Config, deps Deps, logger Logger) *App {
	if logger == nil {
		logger = NoopLogger{}
	}
	store := deps.Store
	if store == nil {
		store = state.NewStore()
	}
	surface := deps.Surface
	if surface == nil {
		surface = render.NewSurface(cfg.CanvasWidth, cfg.CanvasHeight, nil)
	}

	app := &App{
		Store:  store,
		Logger: logger,
		field:  &input.Field{},
		inputs: deps.Inputs,
		calls:  make(chan func(), 4),
		done:   make(chan struct{}),
		exitCh: make(chan error, 1),
	}
	app.card = card.New(cfg, surface, card.Host{
		Loader:   deps.Loader,
		Sink:     deps.Sink,
		Preview:  deps.Preview,
		Text:     app.field,
		Dispatch: app.Dispatch,
	}, logger)
	return app
}

// Card exposes the renderer for inspection.
func (app *App) Card() *card.Renderer { return app.card }

// Dispatch queues fn to run on the event goroutine. It is safe to call from
// any goroutine; after Run returns the call is dropped.
func (app *App) Dispatch(fn func()) {
	select {
	case app.calls <- fn:
	case <-app.done:
	}
}

// Exit requests the app to stop running.
func (app *App) Exit(err error) {
	if !app.exitOnce.CompareAndSwap(false, true) {
		return
	}
	select {
	case app.exitCh <- err:
	default:
	}
}

// Run draws the first frame and handles events until quit, EOF on the line
// input, Exit or ctx cancellation. A requested quit returns nil.
func (app *App) Run(ctx context.Context) error {
	defer close(app.done)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	streams := make([]<-chan input.Event, 0, len(app.inputs))
	for _, src := range app.inputs {
		if err := src.Start(ctx); err != nil {
			app.Logger.Errorf("app", "input start error: %v", err)
			continue
		}
		defer func(src input.Source) { _ = src.Stop() }(src)
		streams = append(streams, src.Events())
	}
	events := input.Merge(ctx, streams...)

	if app.StatusInterval > 0 {
		go app.reportStatus(ctx)
	}

	app.card.Initialize(ctx)
	app.sync()

	for {
		var err error
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err = <-app.exitCh:
			return err
		case fn := <-app.calls:
			fn()
		case ev, ok := <-events:
			if !ok {
				// Every source is closed; wait for Exit or cancellation.
				events = nil
				continue
			}
			err = app.handle(ctx, ev)
		}
		app.sync()
		if errors.Is(err, errQuit) {
			app.Logger.Infof("app", "session finished")
			return nil
		}
	}
}

func (app *App) handle(ctx context.Context, ev input.Event) error {
	switch ev.Kind {
	case input.Text:
		app.field.Set(ev.Text)
		app.card.Redraw()
	case input.Clear:
		app.field.Set("")
		app.card.Redraw()
	case input.Export:
		app.awaitAsset(ctx)
		app.export(ctx)
	case input.Quit:
		return errQuit
	case input.EOF:
		if app.ExportOnExit {
			app.awaitAsset(ctx)
			app.export(ctx)
		}
		return errQuit
	default:
		app.Logger.Errorf("app", "unhandled event %q", ev.Kind)
	}
	return nil
}

// awaitAsset runs queued calls until the template load settles, so an
// export never captures the provisional frame.
func (app *App) awaitAsset(ctx context.Context) {
	for app.card.Phase() == state.AssetPending {
		select {
		case <-ctx.Done():
			return
		case fn := <-app.calls:
			fn()
		}
	}
}

// export failures are reported and the session continues.
func (app *App) export(ctx context.Context) {
	location, err := app.card.Export(ctx)
	if err != nil {
		app.Logger.Errorf("export", "export failed: %v", err)
		app.Store.UpdateExport(state.ExportInfo{Err: err.Error()})
		return
	}
	app.Store.UpdateExport(state.ExportInfo{Path: location})
}

func (app *App) sync() {
	width, height := app.card.Size()
	app.Store.SetAsset(app.card.Phase())
	app.Store.SetText(app.field.Text())
	app.Store.UpdateSurface(state.SurfaceInfo{Width: width, Height: height})
	app.Store.SetRedraws(app.card.Redraws())
}

func (app *App) reportStatus(ctx context.Context) {
	ticker := time.NewTicker(app.StatusInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			snap := app.Store.Snapshot()
			app.Logger.Infof("status", "asset=%s surface=%dx%d redraws=%d text=%q last_export=%q",
				snap.Asset, snap.Surface.Width, snap.Surface.Height, snap.Redraws, snap.Text, snap.Export.Path)
		}
	}
}
