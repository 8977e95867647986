package fetch

import (
	"context"
	"fmt"
	"time"
	"unicode/utf8"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/logger"
)

// MinContentLength is the extracted text length, in runes, below which a
// page is assumed to be rendered client-side.
const MinContentLength = 500

// ShouldRender reports whether extracted text is too short to be a full posting.
func ShouldRender(text string) bool {
	return utf8.RuneCountInString(text) < MinContentLength
}

// Renderer returns the HTML of a page after client-side rendering.
type Renderer interface {
	Render(ctx context.Context, url string) (string, error)
}

// ChromeRenderer renders pages in headless Chrome. Chrome or Chromium must be installed.
type ChromeRenderer struct {
	timeout time.Duration
	settle  time.Duration
	log     *zap.Logger
}

// NewChromeRenderer creates a renderer that gives up after timeout.
func NewChromeRenderer(timeout time.Duration, log *zap.Logger) *ChromeRenderer {
	if timeout <= 0 {
		timeout = 45 * time.Second
	}
	return &ChromeRenderer{timeout: timeout, settle: 3 * time.Second, log: logger.WithFields(log)}
}

// Render implements Renderer.
func (r *ChromeRenderer) Render(ctx context.Context, url string) (string, error) {
	r.log.Debug("rendering page in headless browser", zap.String("url", url))

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx,
		append(chromedp.DefaultExecAllocatorOptions[:],
			chromedp.Flag("headless", true),
			chromedp.Flag("disable-gpu", true),
			chromedp.Flag("no-sandbox", true),
			chromedp.Flag("disable-dev-shm-usage", true),
		)...,
	)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancel := context.WithTimeout(browserCtx, r.timeout)
	defer cancel()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(url),
		chromedp.WaitReady("body"),
		chromedp.Sleep(r.settle),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return "", fmt.Errorf("browser rendering failed: %w", err)
	}

	r.log.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
	return html, nil
}
