package fetch

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/chromedp/chromedp"
	"go.uber.org/zap"
)

const (
	// MinContentLength is the extracted text length below which a page is
	// assumed to be rendered client-side.
	MinContentLength = 500
	// DefaultBrowserTimeout bounds one headless render.
	DefaultBrowserTimeout = 30 * time.Second
)

// RenderFunc returns the fully rendered HTML of a page.
type RenderFunc func(ctx context.Context, url string) (string, error)

// ShouldUseBrowser reports whether text is too short to be the real page content.
func ShouldUseBrowser(text string) bool {
	return len([]rune(strings.TrimSpace(text))) < MinContentLength
}

// ChromeRenderer renders pages in headless Chrome. Chrome or Chromium must be installed.
func ChromeRenderer(timeout time.Duration, logger *zap.Logger) RenderFunc {
	if logger == nil {
		logger = zap.NewNop()
	}
	return func(ctx context.Context, url string) (string, error) {
		logger.Debug("starting headless browser", zap.String("url", url))

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

		browserCtx, cancelTimeout := context.WithTimeout(browserCtx, timeout)
		defer cancelTimeout()

		var html string
		err := chromedp.Run(browserCtx,
			chromedp.Navigate(url),
			chromedp.WaitReady("body"),
			chromedp.Sleep(2*time.Second),
			chromedp.OuterHTML("html", &html),
		)
		if err != nil {
			return "", fmt.Errorf("browser rendering failed: %w", err)
		}

		logger.Debug("rendered page", zap.String("url", url), zap.Int("bytes", len(html)))
		return html, nil
	}
}
