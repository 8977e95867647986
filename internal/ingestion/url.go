package ingestion

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/jonathan/ats-scorer/internal/fetch"
	"github.com/jonathan/ats-scorer/internal/logger"
)

var (
	// ErrHTTPRequestFailed is returned when the page cannot be downloaded
	ErrHTTPRequestFailed = errors.New("HTTP request failed")
	// ErrContentExtractionFailed is returned when the HTML cannot be parsed
	ErrContentExtractionFailed = errors.New("content extraction failed")
	// ErrEmptyContent is returned when a page yields no text
	ErrEmptyContent = errors.New("no job description text found")
)

// URLIngester fetches job postings and extracts their description text.
type URLIngester struct {
	fetcher  *fetch.Fetcher
	renderer fetch.Renderer
	log      *zap.Logger
}

// NewURLIngester creates an ingester. A nil renderer disables the headless
// browser fallback for client-rendered pages.
func NewURLIngester(fetcher *fetch.Fetcher, renderer fetch.Renderer, log *zap.Logger) *URLIngester {
	return &URLIngester{fetcher: fetcher, renderer: renderer, log: logger.WithFields(log)}
}

// FromURL fetches rawURL, extracts the posting body using platform-specific
// selectors and returns the cleaned text. When the HTTP response yields too
// little text and a renderer is configured, the page is rendered and
// extracted again; render failures keep the HTTP text.
func (i *URLIngester) FromURL(ctx context.Context, rawURL string) (string, error) {
	platform := fetch.DetectPlatform(rawURL)
	log := i.log.With(zap.String("url", rawURL), zap.String("platform", string(platform)))

	page, err := i.fetcher.Get(ctx, rawURL)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrHTTPRequestFailed, err)
	}
	log.Debug("fetched page", zap.Int("bytes", len(page.HTML)))

	text, err := fetch.ExtractMainText(page.HTML, platform)
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrContentExtractionFailed, err)
	}

	if i.renderer != nil && fetch.ShouldRender(text) {
		log.Debug("content too short, rendering in browser", zap.Int("chars", len(text)))
		if text, err = i.rendered(ctx, rawURL, platform, text); err != nil {
			log.Warn("browser fallback failed, using HTTP content", zap.Error(err))
		}
	}

	cleaned := CleanText(text)
	if cleaned == "" {
		return "", fmt.Errorf("%w at %s", ErrEmptyContent, rawURL)
	}
	log.Debug("ingested job description",
		zap.Int("chars", len(cleaned)),
		zap.String("preview", logger.TruncateForLog(cleaned, 120)))
	return cleaned, nil
}

// rendered returns the browser-extracted text, or fallback with the error.
func (i *URLIngester) rendered(ctx context.Context, rawURL string, platform fetch.Platform, fallback string) (string, error) {
	html, err := i.renderer.Render(ctx, rawURL)
	if err != nil {
		return fallback, err
	}
	text, err := fetch.ExtractMainText(html, platform)
	if err != nil {
		return fallback, err
	}
	return text, nil
}
