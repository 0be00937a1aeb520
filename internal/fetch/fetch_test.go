package fetch

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func serve(t *testing.T, contentType string, status int, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", contentType)
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestGet_Success(t *testing.T) {
	server := serve(t, "text/html", http.StatusOK, "<html><body><h1>Test</h1></body></html>")

	result, err := New(DefaultOptions()).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, result.URL)
	assert.Contains(t, result.Body, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, result.StatusCode)
	assert.True(t, result.IsHTML())
}

func TestGet_SendsUserAgent(t *testing.T) {
	agents := make(chan string, 1)
	server := httptest.NewServer(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		agents <- r.Header.Get("User-Agent")
	}))
	defer server.Close()

	_, err := New(Options{}).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, DefaultUserAgent, <-agents)
}

func TestGet_InvalidURL(t *testing.T) {
	f := New(DefaultOptions())
	for _, raw := range []string{"not-a-valid-url", "ftp://example.com/cv.txt", "http://"} {
		_, err := f.Get(context.Background(), raw)
		var fetchErr *Error
		require.ErrorAs(t, err, &fetchErr, raw)
		assert.Contains(t, err.Error(), "invalid URL")
	}
}

func TestGet_HTTPError(t *testing.T) {
	server := serve(t, "text/html", http.StatusNotFound, "")

	result, err := New(DefaultOptions()).Get(context.Background(), server.URL)
	require.Error(t, err)
	require.NotNil(t, result)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_CancelledContext(t *testing.T) {
	server := serve(t, "text/plain", http.StatusOK, "ok")
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := New(DefaultOptions()).Get(ctx, server.URL)
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestText_PlainBodyReturnedAsIs(t *testing.T) {
	server := serve(t, "text/plain; charset=utf-8", http.StatusOK, "Go developer\n\nKubernetes")

	text, err := New(DefaultOptions()).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Go developer\n\nKubernetes", text)
}

func TestText_ExtractsMainContent(t *testing.T) {
	server := serve(t, "text/html", http.StatusOK, `<html><body>
		<nav>Menu</nav>
		<main><h1>Jane Doe</h1><p>Senior engineer.</p><ul><li>Python</li><li>Docker</li></ul></main>
		<footer>Copyright</footer>
	</body></html>`)

	text, err := New(DefaultOptions()).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "Jane Doe\nSenior engineer.\nPython\nDocker", text)
}

func TestText_BrowserFallbackForShortPages(t *testing.T) {
	server := serve(t, "text/html", http.StatusOK, `<html><body><div id="root"></div></body></html>`)

	var calls atomic.Int32
	rendered := "<html><body><main><p>" + strings.Repeat("python engineer ", 50) + "</p></main></body></html>"
	render := func(_ context.Context, _ string) (string, error) {
		calls.Add(1)
		return rendered, nil
	}

	text, err := New(DefaultOptions(), WithRenderer(render)).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, int32(1), calls.Load())
	assert.Contains(t, text, "python engineer")
}

func TestText_BrowserNotUsedForLongPages(t *testing.T) {
	server := serve(t, "text/html", http.StatusOK,
		"<html><body><main><p>"+strings.Repeat("kubernetes ", 60)+"</p></main></body></html>")

	render := func(_ context.Context, _ string) (string, error) {
		t.Fatal("renderer should not be called")
		return "", nil
	}
	_, err := New(DefaultOptions(), WithRenderer(render)).Text(context.Background(), server.URL)
	require.NoError(t, err)
}

func TestText_BrowserFailureKeepsStaticText(t *testing.T) {
	server := serve(t, "text/html", http.StatusOK, "<html><body><main>short</main></body></html>")

	render := func(_ context.Context, _ string) (string, error) {
		return "", errors.New("chrome not installed")
	}
	text, err := New(DefaultOptions(), WithRenderer(render)).Text(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "short", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	text, err := ExtractMainText(`<html><body><div>Some content here.</div></body></html>`, DefaultTextSelectors())
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_NoiseSelectors(t *testing.T) {
	html := `<html><body>
		<div class="sidebar">Sidebar junk</div>
		<div class="job-description"><h2>Requirements</h2><p>5 years experience in Go</p>
		<form>Apply now</form></div>
	</body></html>`

	text, err := ExtractMainText(html, DefaultTextSelectors(), "form")
	require.NoError(t, err)
	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "5 years experience")
	assert.NotContains(t, text, "Sidebar junk")
	assert.NotContains(t, text, "Apply now")
}

func TestResult_IsHTML(t *testing.T) {
	tests := []struct {
		contentType string
		want        bool
	}{
		{"", true},
		{"text/html; charset=utf-8", true},
		{"application/xhtml+xml", true},
		{"text/plain", false},
		{"application/json", false},
	}
	for _, tt := range tests {
		t.Run(tt.contentType, func(t *testing.T) {
			assert.Equal(t, tt.want, (&Result{ContentType: tt.contentType}).IsHTML())
		})
	}
}

func TestShouldUseBrowser(t *testing.T) {
	assert.True(t, ShouldUseBrowser("   "))
	assert.True(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength-1)))
	assert.False(t, ShouldUseBrowser(strings.Repeat("a", MinContentLength)))
}
