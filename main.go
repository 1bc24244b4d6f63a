package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rook-computer/cardmaker/internal/app"
	"github.com/rook-computer/cardmaker/internal/assets"
	"github.com/rook-computer/cardmaker/internal/card"
	"github.com/rook-computer/cardmaker/internal/config"
	"github.com/rook-computer/cardmaker/internal/export"
	"github.com/rook-computer/cardmaker/internal/input"
	"github.com/rook-computer/cardmaker/internal/preview"
	"github.com/rook-computer/cardmaker/internal/render"
	"github.com/rook-computer/cardmaker/internal/state"
)

const statusInterval = 30 * time.Second

func main() {
	os.Exit(run())
}

func run() int {
	if err := config.LoadDotEnv(); err != nil {
		fmt.Fprintln(os.Stderr, "env:", err)
		return 2
	}
	cfg, err := config.FromEnv(config.Default())
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	// Flags
	flag.StringVar(&cfg.TemplatePath, "template", cfg.TemplatePath, "template image drawn behind the caption")
	flag.StringVar(&cfg.OutputDir, "out", cfg.OutputDir, "directory exported cards are written to")
	flag.IntVar(&cfg.CanvasWidth, "width", cfg.CanvasWidth, "canvas width used until the template is loaded")
	flag.IntVar(&cfg.CanvasHeight, "height", cfg.CanvasHeight, "canvas height used until the template is loaded")
	flag.Float64Var(&cfg.BaseFontSize, "font-size", cfg.BaseFontSize, "caption size on a 1080px wide card")
	flag.StringVar(&cfg.TextColor, "color", cfg.TextColor, "caption color (#RRGGBB or #RRGGBBAA)")
	flag.Float64Var(&cfg.TextYPercent, "text-y", cfg.TextYPercent, "caption center as a fraction of the card height")
	flag.BoolVar(&cfg.TextShadow, "shadow", cfg.TextShadow, "draw a soft white glow behind the caption")
	flag.StringVar(&cfg.FontPath, "font", cfg.FontPath, "TTF/OTF font file for captions (default: embedded Go font)")
	flag.StringVar(&cfg.FontEngine, "font-engine", cfg.FontEngine, "font rasterizer: opentype or truetype")
	flag.StringVar(&cfg.QRPayload, "qr", cfg.QRPayload, "stamp a QR code with this payload in the top-right corner")
	flag.StringVar(&cfg.PreviewFramebuffer, "preview-fb", cfg.PreviewFramebuffer, "show a live preview on this framebuffer device, e.g. /dev/fb0")
	flag.StringVar(&cfg.PreviewPNG, "preview-png", cfg.PreviewPNG, "rewrite this PNG file after every redraw")
	flag.StringVar(&cfg.LogFormat, "log-format", cfg.LogFormat, "log format: text or json")
	flag.BoolVar(&cfg.Debug, "debug", cfg.Debug, "enable debug logging and periodic status lines")
	inputPath := flag.String("input", "-", "read captions and commands from this file (- for stdin)")
	exportOnExit := flag.Bool("export-on-exit", false, "export once more when the input ends")
	dryRun := flag.Bool("dry-run", false, "render and log exports without writing files")
	keys := flag.Bool("keys", false, "also listen for F2 (export) and F4 (quit) on evdev keyboards")
	stdioLog := flag.String("stdio-log", "", "redirect stdout+stderr (including panics) to this file; also configurable via CARDMAKER_STDIO_LOG")
	flag.Parse()

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		return 2
	}

	// Best-effort: keep crash output when the console is in graphics mode.
	logPath := *stdioLog
	if logPath == "" {
		logPath = os.Getenv("CARDMAKER_STDIO_LOG")
	}
	if logPath != "" {
		if err := redirectStdIO(logPath); err != nil {
			fmt.Fprintln(os.Stderr, "stdio log redirect error:", err)
		}
	}

	logger, err := app.NewLogrusLogger(os.Stderr, cfg.LogFormat, cfg.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, "log:", err)
		return 2
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	fontData, err := assets.ReadFontFile(cfg.FontPath)
	if err != nil {
		logger.Errorf("main", "font %q unavailable, using embedded font: %v", cfg.FontPath, err)
	}
	fonts := render.NewFonts(render.FontOptions{Engine: cfg.FontEngine, Regular: fontData, Bold: fontData, Logger: logger})
	defer fonts.Close()

	previewSink, closePreview := buildPreview(cfg, logger)
	defer closePreview()

	var sink card.DownloadSink = export.DirSink{Dir: cfg.OutputDir}
	if *dryRun {
		sink = export.Discard{}
	}

	in, closeInput, err := openInput(*inputPath)
	if err != nil {
		logger.Errorf("main", "input: %v", err)
		return 1
	}
	defer closeInput()
	sources := []input.Source{input.NewLineSource(in, logger)}
	if *keys {
		sources = append(sources, input.NewKeySource(logger))
	}

	a := app.New(cfg, app.Deps{
		Store:   state.NewStore(),
		Surface: render.NewSurface(cfg.CanvasWidth, cfg.CanvasHeight, fonts),
		Loader:  assets.TemplateLoader{Logger: logger},
		Sink:    sink,
		Preview: previewSink,
		Inputs:  sources,
	}, logger)
	a.ExportOnExit = *exportOnExit
	if cfg.Debug {
		a.StatusInterval = statusInterval
	}

	logger.Infof("main", "cardmaker starting, template=%q out=%q", cfg.TemplatePath, cfg.OutputDir)
	if err := a.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Errorf("main", "app error: %v", err)
		return 1
	}
	if last := a.Store.Snapshot().Export; last.Path != "" {
		fmt.Println(last.Path)
	}
	return 0
}

func buildPreview(cfg config.Config, logger app.Logger) (card.PreviewSink, func()) {
	var sinks preview.Multi
	closeAll := func() {}
	if cfg.PreviewFramebuffer != "" {
		fb := preview.NewFramebufferSink(cfg.PreviewFramebuffer, logger)
		fb.Console = preview.VTConsole{Logger: logger}
		if err := fb.Start(); err != nil {
			logger.Errorf("fb", "framebuffer preview disabled: %v", err)
		} else {
			sinks = append(sinks, fb)
			closeAll = func() { _ = fb.Close() }
		}
	}
	if cfg.PreviewPNG != "" {
		sinks = append(sinks, preview.PNGFileSink{Path: cfg.PreviewPNG, MaxWidth: 540})
	}
	if len(sinks) == 0 {
		return preview.Noop{}, closeAll
	}
	return sinks, closeAll
}

func openInput(path string) (io.Reader, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { _ = f.Close() }, nil
}
