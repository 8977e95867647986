package fetch

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_Success(t *testing.T) {
	var gotUA, gotHeader string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		gotHeader = r.Header.Get("Accept-Language")
		w.Header().Set("Content-Type", "text/html")
		_, _ = w.Write([]byte("<html><body><h1>Test</h1></body></html>"))
	}))
	defer server.Close()

	f := New(Options{Headers: map[string]string{"Accept-Language": "en"}})
	page, err := f.Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, server.URL, page.URL)
	assert.Contains(t, page.HTML, "<h1>Test</h1>")
	assert.Equal(t, http.StatusOK, page.StatusCode)
	assert.Equal(t, "text/html", page.ContentType)
	assert.Equal(t, DefaultUserAgent, gotUA)
	assert.Equal(t, "en", gotHeader)
}

func TestGet_InvalidURL(t *testing.T) {
	f := New(Options{})
	for _, raw := range []string{"", "not-a-valid-url", "ftp://example.com/jd", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := f.Get(context.Background(), raw)
			var fetchErr *Error
			require.ErrorAs(t, err, &fetchErr)
			assert.Contains(t, err.Error(), "invalid URL")
		})
	}
}

func TestGet_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	page, err := New(Options{}).Get(context.Background(), server.URL)
	require.Error(t, err)
	require.NotNil(t, page)
	assert.Equal(t, http.StatusNotFound, page.StatusCode)
	assert.Contains(t, err.Error(), "404")
}

func TestGet_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	page, err := New(Options{MaxBytes: 10}).Get(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Len(t, page.HTML, 10)
}

func TestGet_Cancelled(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {}))
	defer server.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(Options{}).Get(ctx, server.URL)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestExtractMainText_WithMainElement(t *testing.T) {
	html := `
	<html>
		<body>
			<nav>Navigation</nav>
			<main>
				<h1>Main Content</h1>
				<p>This is the important text.</p>
			</main>
			<footer>Footer</footer>
		</body>
	</html>`

	text, err := ExtractMainText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Main Content\nThis is the important text.", text)
}

func TestExtractMainText_FallbackToBody(t *testing.T) {
	html := `<html><body><div>Some content here.</div><script>var x = 1;</script></body></html>`

	text, err := ExtractMainText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Equal(t, "Some content here.", text)
}

func TestExtractMainText_JobPostingRemovesNoise(t *testing.T) {
	html := `
	<html>
		<body>
			<div class="sidebar">Sidebar junk</div>
			<div class="job-description">
				<h2>Requirements</h2>
				<p>5 years experience in Go</p>
				<form>Apply now</form>
				<div class="eeo-statement">Equal opportunity</div>
			</div>
		</body>
	</html>`

	text, err := ExtractMainText(html, PlatformUnknown)
	require.NoError(t, err)
	assert.Contains(t, text, "Requirements")
	assert.Contains(t, text, "5 years experience")
	assert.NotContains(t, text, "Sidebar junk")
	assert.NotContains(t, text, "Apply now")
	assert.NotContains(t, text, "Equal opportunity")
}

func TestExtractMainText_Greenhouse(t *testing.T) {
	html := `
	<html><body>
		<div id="content">
			<div class="job__description body"><p>Build data pipelines.</p></div>
			<div class="application--wrapper">Upload resume</div>
		</div>
	</body></html>`

	text, err := ExtractMainText(html, PlatformGreenhouse)
	require.NoError(t, err)
	assert.Equal(t, "Build data pipelines.", text)
}

func TestShouldRender(t *testing.T) {
	assert.True(t, ShouldRender("Loading..."))
	assert.False(t, ShouldRender(strings.Repeat("a", MinContentLength)))
}
