package export

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/png" // register PNG for DecodeConfig
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/chromedp/cdproto/cdp"
	"github.com/chromedp/cdproto/emulation"
	"github.com/chromedp/chromedp"
	"github.com/jonathan/cv-builder/internal/logger"
)

// DefaultScale is the capture upscaling factor.
const DefaultScale = 2.0

// DefaultCaptureTimeout bounds one headless browser capture.
const DefaultCaptureTimeout = 60 * time.Second

// The viewport only needs to be wider than 210mm at 96dpi; element screenshots cover overflow.
const (
	viewportWidth  = 1024
	viewportHeight = 1400
)

// Snapshot is an immutable PNG capture of the rendered preview.
type Snapshot struct {
	png    []byte
	Width  int
	Height int
}

// NewSnapshot copies data and reads its pixel size. data must be a PNG.
func NewSnapshot(data []byte) (*Snapshot, error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode snapshot: %w", err)
	}
	if format != "png" {
		return nil, fmt.Errorf("snapshot must be png, got %s", format)
	}
	return &Snapshot{
		png:    bytes.Clone(data),
		Width:  cfg.Width,
		Height: cfg.Height,
	}, nil
}

// Reader returns a fresh reader over the PNG bytes.
func (s *Snapshot) Reader() io.Reader {
	return bytes.NewReader(s.png)
}

// Size returns the PNG length in bytes.
func (s *Snapshot) Size() int {
	return len(s.png)
}

// Capturer rasterizes the element matching selector in an HTML page.
type Capturer interface {
	Capture(ctx context.Context, html, selector string) (*Snapshot, error)
}

// ChromeCapturer captures with a headless Chrome driven over the DevTools protocol.
type ChromeCapturer struct {
	// ExecPath overrides the Chrome binary; empty lets chromedp find one.
	ExecPath string
	Scale    float64
	Timeout  time.Duration
}

// NewChromeCapturer returns a capturer with DefaultScale and DefaultCaptureTimeout
// for zero arguments.
func NewChromeCapturer(execPath string, scale float64, timeout time.Duration) *ChromeCapturer {
	if scale <= 0 {
		scale = DefaultScale
	}
	if timeout <= 0 {
		timeout = DefaultCaptureTimeout
	}
	return &ChromeCapturer{ExecPath: execPath, Scale: scale, Timeout: timeout}
}

// Capture loads html from a temporary file, forces an opaque white background and screenshots
// the element matching selector at c.Scale.
func (c *ChromeCapturer) Capture(ctx context.Context, html, selector string) (*Snapshot, error) {
	if err := checkTarget(html, selector); err != nil {
		return nil, err
	}

	tmpDir, err := os.MkdirTemp("", "cv-capture-")
	if err != nil {
		return nil, &CaptureError{Message: "failed to create temp dir", Cause: err}
	}
	defer func() { _ = os.RemoveAll(tmpDir) }()

	htmlPath := filepath.Join(tmpDir, "index.html")
	if err := os.WriteFile(htmlPath, []byte(html), 0o600); err != nil {
		return nil, &CaptureError{Message: "failed to write page", Cause: err}
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.Flag("hide-scrollbars", true),
		chromedp.WindowSize(viewportWidth, viewportHeight),
	)
	if c.ExecPath != "" {
		opts = append(opts, chromedp.ExecPath(c.ExecPath))
	}

	allocCtx, cancel := chromedp.NewExecAllocator(ctx, opts...)
	defer cancel()

	browserCtx, cancel := chromedp.NewContext(allocCtx)
	defer cancel()

	browserCtx, cancel = context.WithTimeout(browserCtx, c.timeout())
	defer cancel()

	start := time.Now()
	var nodes []*cdp.Node
	var buf []byte
	err = chromedp.Run(browserCtx,
		emulation.SetDefaultBackgroundColorOverride().WithColor(&cdp.RGBA{R: 255, G: 255, B: 255, A: 1}),
		chromedp.Navigate("file://"+htmlPath),
		chromedp.WaitReady("body", chromedp.ByQuery),
		chromedp.Nodes(selector, &nodes, chromedp.ByQuery, chromedp.AtLeast(0)),
		chromedp.ActionFunc(func(context.Context) error {
			if len(nodes) == 0 {
				return fmt.Errorf("%w: %s", ErrTargetNotFound, selector)
			}
			return nil
		}),
		chromedp.ScreenshotScale(selector, c.scale(), &buf, chromedp.ByQuery),
	)
	if err != nil {
		if errors.Is(err, ErrTargetNotFound) {
			return nil, err
		}
		return nil, &CaptureError{Message: "browser capture failed", Cause: err}
	}

	snap, err := NewSnapshot(buf)
	if err != nil {
		return nil, &CaptureError{Message: "browser returned an unreadable image", Cause: err}
	}

	logger.Debug().
		Int("width", snap.Width).
		Int("height", snap.Height).
		Dur("elapsed", time.Since(start)).
		Msg("captured preview")
	return snap, nil
}

func (c *ChromeCapturer) scale() float64 {
	if c.Scale <= 0 {
		return DefaultScale
	}
	return c.Scale
}

func (c *ChromeCapturer) timeout() time.Duration {
	if c.Timeout <= 0 {
		return DefaultCaptureTimeout
	}
	return c.Timeout
}

// checkTarget fails fast with ErrTargetNotFound when selector matches nothing in html.
func checkTarget(html, selector string) error {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return &CaptureError{Message: "failed to parse page", Cause: err}
	}
	if doc.Find(selector).Length() == 0 {
		return fmt.Errorf("%w: %s", ErrTargetNotFound, selector)
	}
	return nil
}
