package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

const (
	EnvTemplatePath = "CARDMAKER_TEMPLATE"
	EnvCanvasWidth  = "CARDMAKER_CANVAS_WIDTH"
	EnvCanvasHeight = "CARDMAKER_CANVAS_HEIGHT"
	EnvBaseFontSize = "CARDMAKER_FONT_SIZE"
	EnvTextColor    = "CARDMAKER_TEXT_COLOR"
	EnvTextY        = "CARDMAKER_TEXT_Y"
	EnvTextShadow   = "CARDMAKER_TEXT_SHADOW"
	EnvFontPath     = "CARDMAKER_FONT"
	EnvFontEngine   = "CARDMAKER_FONT_ENGINE"
	EnvOutputDir    = "CARDMAKER_OUT"
	EnvPreviewFB    = "CARDMAKER_PREVIEW_FB"
	EnvPreviewPNG   = "CARDMAKER_PREVIEW_PNG"
	EnvQRPayload    = "CARDMAKER_QR"
	EnvLogFormat    = "CARDMAKER_LOG_FORMAT"
	EnvDebug        = "CARDMAKER_DEBUG"
)

const (
	FontEngineOpenType = "opentype"
	FontEngineTrueType = "truetype"
)

// Config holds the rendering parameters of a card session.
//
// It is built once at startup and passed by value; nothing mutates it after
// Validate succeeds.
type Config struct {
	TemplatePath string
	CanvasWidth  int
	CanvasHeight int
	FontFamily   string
	BaseFontSize float64
	TextColor    string
	TextYPercent float64
	TextShadow   bool

	// Host settings.
	FontPath           string
	FontEngine         string
	OutputDir          string
	PreviewFramebuffer string
	PreviewPNG         string
	QRPayload          string
	LogFormat          string
	Debug              bool
}

// Default returns the stock card layout: a vertical story-sized canvas with a
// gold caption near the bottom.
func Default() Config {
	return Config{
		TemplatePath: "assets/twibbon.png",
		CanvasWidth:  1080,
		CanvasHeight: 1920,
		FontFamily:   "'Outfit', 'Madani', 'Tajawal', 'Cairo', sans-serif",
		BaseFontSize: 80,
		TextColor:    "#dbc26fec",
		TextYPercent: 0.82,
		TextShadow:   false,
		FontEngine:   FontEngineOpenType,
		OutputDir:    ".",
		LogFormat:    "text",
	}
}

// LoadDotEnv loads KEY=VALUE pairs from the given files into the process
// environment. Missing files are skipped; variables already set win.
func LoadDotEnv(paths ...string) error {
	if len(paths) == 0 {
		paths = []string{".env"}
	}
	for _, path := range paths {
		if err := godotenv.Load(path); err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				continue
			}
			return fmt.Errorf("load %s: %w", path, err)
		}
	}
	return nil
}

// FromEnv overlays CARDMAKER_* environment variables on base.
func FromEnv(base Config) (Config, error) {
	cfg := base

	if raw := os.Getenv(EnvTemplatePath); raw != "" {
		cfg.TemplatePath = raw
	}
	if raw := os.Getenv(EnvTextColor); raw != "" {
		cfg.TextColor = raw
	}
	if raw := os.Getenv(EnvFontPath); raw != "" {
		cfg.FontPath = raw
	}
	if raw := os.Getenv(EnvFontEngine); raw != "" {
		cfg.FontEngine = strings.ToLower(strings.TrimSpace(raw))
	}
	if raw := os.Getenv(EnvOutputDir); raw != "" {
		cfg.OutputDir = raw
	}
	if raw := os.Getenv(EnvPreviewFB); raw != "" {
		cfg.PreviewFramebuffer = raw
	}
	if raw := os.Getenv(EnvPreviewPNG); raw != "" {
		cfg.PreviewPNG = raw
	}
	if raw := os.Getenv(EnvQRPayload); raw != "" {
		cfg.QRPayload = raw
	}
	if raw := os.Getenv(EnvLogFormat); raw != "" {
		cfg.LogFormat = strings.ToLower(strings.TrimSpace(raw))
	}

	var err error
	if cfg.CanvasWidth, err = envInt(EnvCanvasWidth, cfg.CanvasWidth); err != nil {
		return Config{}, err
	}
	if cfg.CanvasHeight, err = envInt(EnvCanvasHeight, cfg.CanvasHeight); err != nil {
		return Config{}, err
	}
	if cfg.BaseFontSize, err = envFloat(EnvBaseFontSize, cfg.BaseFontSize); err != nil {
		return Config{}, err
	}
	if cfg.TextYPercent, err = envFloat(EnvTextY, cfg.TextYPercent); err != nil {
		return Config{}, err
	}
	if cfg.TextShadow, err = envBool(EnvTextShadow, cfg.TextShadow); err != nil {
		return Config{}, err
	}
	if cfg.Debug, err = envBool(EnvDebug, cfg.Debug); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports the first setting that cannot produce a card.
func (c Config) Validate() error {
	if c.CanvasWidth <= 0 || c.CanvasHeight <= 0 {
		return fmt.Errorf("canvas size must be positive (got %dx%d)", c.CanvasWidth, c.CanvasHeight)
	}
	if c.BaseFontSize <= 0 {
		return fmt.Errorf("base font size must be positive (got %g)", c.BaseFontSize)
	}
	if c.TextYPercent < 0 || c.TextYPercent > 1 {
		return fmt.Errorf("text y position must be within [0,1] (got %g)", c.TextYPercent)
	}
	if !IsHexColor(c.TextColor) {
		return fmt.Errorf("text color must be #RGB, #RGBA, #RRGGBB or #RRGGBBAA (got %q)", c.TextColor)
	}
	switch c.FontEngine {
	case "", FontEngineOpenType, FontEngineTrueType:
	default:
		return fmt.Errorf("unknown font engine %q", c.FontEngine)
	}
	switch c.LogFormat {
	case "", "text", "json":
	default:
		return fmt.Errorf("unknown log format %q", c.LogFormat)
	}
	return nil
}

// IsHexColor reports whether s is a CSS-style hex color.
func IsHexColor(s string) bool {
	s = strings.TrimPrefix(s, "#")
	switch len(s) {
	case 3, 4, 6, 8:
	default:
		return false
	}
	_, err := strconv.ParseUint(s, 16, 32)
	return err == nil
}

func envInt(key string, fallback int) (int, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer (got %q): %w", key, raw, err)
	}
	return parsed, nil
}

func envFloat(key string, fallback float64) (float64, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number (got %q): %w", key, raw, err)
	}
	return parsed, nil
}

func envBool(key string, fallback bool) (bool, error) {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback, nil
	}
	parsed, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean (got %q): %w", key, raw, err)
	}
	return parsed, nil
}
