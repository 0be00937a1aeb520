// Package fetch retrieves web pages and reduces them to readable text.
package fetch

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

const (
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 30 * time.Second
	// DefaultUserAgent is sent with every request.
	DefaultUserAgent = "Mozilla/5.0 (compatible; ResumeMatcher/1.0)"
	// DefaultRequestsPerSecond caps outbound request rate across all workers.
	DefaultRequestsPerSecond = 4.0

	maxBodyBytes = 10 << 20
)

// Result holds the raw response of a fetch.
type Result struct {
	URL         string
	Body        string
	ContentType string
	StatusCode  int
}

// IsHTML reports whether the response declared an HTML media type.
// A missing content type is treated as HTML.
func (r *Result) IsHTML() bool {
	if r.ContentType == "" {
		return true
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return strings.Contains(strings.ToLower(r.ContentType), "html")
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Error represents an error during URL fetching.
type Error struct {
	URL     string
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("fetch error for %s: %s: %v", e.URL, e.Message, e.Cause)
	}
	return fmt.Sprintf("fetch error for %s: %s", e.URL, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Cause
}

// Options configures a Fetcher.
type Options struct {
	Timeout           time.Duration
	UserAgent         string
	Headers           map[string]string
	RequestsPerSecond float64
	// UseBrowser enables headless rendering when static extraction yields too little text.
	UseBrowser     bool
	BrowserTimeout time.Duration
}

// DefaultOptions returns static fetching with a 30s timeout and no browser.
func DefaultOptions() Options {
	return Options{
		Timeout:           DefaultTimeout,
		UserAgent:         DefaultUserAgent,
		RequestsPerSecond: DefaultRequestsPerSecond,
		BrowserTimeout:    DefaultBrowserTimeout,
	}
}

// Fetcher performs rate-limited GETs and text extraction. Safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	opts    Options
	limiter *rate.Limiter
	render  RenderFunc
	logger  *zap.Logger
}

// Option customises a Fetcher.
type Option func(*Fetcher)

// WithLogger sets the logger.
func WithLogger(logger *zap.Logger) Option {
	return func(f *Fetcher) {
		if logger != nil {
			f.logger = logger
		}
	}
}

// WithRenderer overrides the headless renderer used for the browser fallback.
func WithRenderer(render RenderFunc) Option {
	return func(f *Fetcher) {
		f.render = render
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		if client != nil {
			f.client = client
		}
	}
}

// New creates a Fetcher. Zero-valued options fall back to defaults.
func New(opts Options, options ...Option) *Fetcher {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = DefaultBrowserTimeout
	}

	limit := rate.Inf
	burst := 1
	if opts.RequestsPerSecond > 0 {
		limit = rate.Limit(opts.RequestsPerSecond)
		burst = max(1, int(opts.RequestsPerSecond))
	}

	f := &Fetcher{
		client:  &http.Client{Timeout: opts.Timeout},
		opts:    opts,
		limiter: rate.NewLimiter(limit, burst),
		logger:  zap.NewNop(),
	}
	for _, option := range options {
		option(f)
	}
	if opts.UseBrowser && f.render == nil {
		f.render = ChromeRenderer(opts.BrowserTimeout, f.logger)
	}
	return f
}

// Get retrieves rawURL. On a non-200 status the result is returned together with an *Error.
func (f *Fetcher) Get(ctx context.Context, rawURL string) (*Result, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Host == "" || (parsed.Scheme != "http" && parsed.Scheme != "https") {
		return nil, &Error{URL: rawURL, Message: "invalid URL", Cause: err}
	}

	if err := f.limiter.Wait(ctx); err != nil {
		return nil, &Error{URL: rawURL, Message: "rate limiter wait aborted", Cause: err}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to create request", Cause: err}
	}
	req.Header.Set("User-Agent", f.opts.UserAgent)
	for key, value := range f.opts.Headers {
		req.Header.Set(key, value)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "HTTP request failed", Cause: err}
	}
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, &Error{URL: rawURL, Message: "failed to read response body", Cause: err}
	}

	result := &Result{
		URL:         rawURL,
		Body:        string(body),
		ContentType: resp.Header.Get("Content-Type"),
		StatusCode:  resp.StatusCode,
	}
	f.logger.Debug("fetched page",
		zap.String("url", rawURL),
		zap.Int("status", resp.StatusCode),
		zap.Int("bytes", len(body)),
	)

	if resp.StatusCode != http.StatusOK {
		return result, &Error{URL: rawURL, Message: fmt.Sprintf("HTTP status %d", resp.StatusCode)}
	}
	return result, nil
}

// Text fetches rawURL and returns its main readable text. Non-HTML bodies are
// returned as-is. When a renderer is configured and the static page yields
// fewer than MinContentLength characters, the page is rendered and re-extracted.
func (f *Fetcher) Text(ctx context.Context, rawURL string) (string, error) {
	res, err := f.Get(ctx, rawURL)
	if err != nil {
		return "", err
	}
	if !res.IsHTML() {
		return res.Body, nil
	}

	content, noise := SelectorsFor(rawURL)
	text, err := ExtractMainText(res.Body, content, noise...)
	if err != nil {
		return "", &Error{URL: rawURL, Message: "failed to extract text", Cause: err}
	}
	if f.render == nil || !ShouldUseBrowser(text) {
		return text, nil
	}

	f.logger.Info("static extraction too short, rendering in browser",
		zap.String("url", rawURL),
		zap.Int("chars", len([]rune(text))),
	)
	html, err := f.render(ctx, rawURL)
	if err != nil {
		f.logger.Warn("browser rendering failed, keeping static text",
			zap.String("url", rawURL),
			zap.Error(err),
		)
		return text, nil
	}
	rendered, err := ExtractMainText(html, content, noise...)
	if err != nil {
		return text, nil
	}
	return rendered, nil
}

// baseNoise is stripped from every page before content selection.
var baseNoise = []string{
	"nav", "footer", "header", "script", "style", "noscript", "svg",
	".ad", ".advertisement", ".ads", ".sidebar", ".cookie-banner", ".popup",
}

// ExtractMainText parses html, removes noise, and returns the text of the first
// element matching contentSelectors, falling back to <body>.
func ExtractMainText(html string, contentSelectors []string, noiseSelectors ...string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("failed to parse HTML: %w", err)
	}

	doc.Find(strings.Join(baseNoise, ", ")).Remove()
	if len(noiseSelectors) > 0 {
		doc.Find(strings.Join(noiseSelectors, ", ")).Remove()
	}

	root := doc.Find("body")
	for _, selector := range contentSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			root = sel.First()
			break
		}
	}

	// Block elements otherwise run together once tags are dropped.
	root.Find("p, li, h1, h2, h3, h4, h5, h6, br, div, tr").AfterHtml("\n")
	return cleanWhitespace(root.Text()), nil
}

// cleanWhitespace trims each line and drops empty ones.
func cleanWhitespace(text string) string {
	var kept []string
	for line := range strings.Lines(text) {
		if line = strings.Join(strings.Fields(line), " "); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
