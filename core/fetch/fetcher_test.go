package fetch_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/notemark/core/fetch"
)

func TestFor(t *testing.T) {
	assert.IsType(t, &fetch.HTTPFetcher{}, fetch.For("https://example.com/n", fetch.Options{}))
	assert.IsType(t, &fetch.HTTPFetcher{}, fetch.For("HTTP://example.com", fetch.Options{}))
	assert.IsType(t, &fetch.FileFetcher{}, fetch.For("notes/today.html", fetch.Options{}))
	assert.IsType(t, &fetch.FileFetcher{}, fetch.For(fetch.Stdin, fetch.Options{}))
}

func TestHTTPFetcher_Fetch(t *testing.T) {
	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte(`<p>hello</p>`))
	}))
	defer srv.Close()

	f := fetch.NewHTTP(fetch.Options{UserAgent: "test-agent", Log: zaptest.NewLogger(t)})
	res, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)

	assert.Equal(t, "test-agent", gotUA)
	assert.Equal(t, http.StatusOK, res.StatusCode)
	assert.Equal(t, srv.URL, res.Source)
	assert.Equal(t, `<p>hello</p>`, res.HTML)
	assert.Contains(t, res.ContentType, "text/html")
}

func TestHTTPFetcher_DecodesCharset(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<p>caf\xe9</p>"))
	}))
	defer srv.Close()

	res, err := fetch.NewHTTP(fetch.Options{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Equal(t, "<p>café</p>", res.HTML)
}

func TestHTTPFetcher_RejectsNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	_, err := fetch.NewHTTP(fetch.Options{}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPFetcher_HonoursContext(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte("late"))
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := fetch.NewHTTP(fetch.Options{}).Fetch(ctx, srv.URL)
	require.ErrorIs(t, err, context.Canceled)
}

func TestFileFetcher_Fetch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "note.html")
	require.NoError(t, os.WriteFile(path, []byte(`<p>saved</p>`), 0o644))

	res, err := fetch.NewFile(fetch.Options{Log: zaptest.NewLogger(t)}).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Source)
	assert.Equal(t, `<p>saved</p>`, res.HTML)
}

func TestFileFetcher_SniffsMetaCharset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "legacy.html")
	page := "<html><head><meta charset=\"windows-1252\"></head><body><p>na\xefve</p></body></html>"
	require.NoError(t, os.WriteFile(path, []byte(page), 0o644))

	res, err := fetch.NewFile(fetch.Options{}).Fetch(context.Background(), path)
	require.NoError(t, err)
	assert.Contains(t, res.HTML, "naïve")
}

func TestFileFetcher_Stdin(t *testing.T) {
	f := fetch.NewFile(fetch.Options{Stdin: strings.NewReader(`<em>piped</em>`)})

	res, err := f.Fetch(context.Background(), fetch.Stdin)
	require.NoError(t, err)
	assert.Equal(t, `<em>piped</em>`, res.HTML)
}

func TestFileFetcher_Missing(t *testing.T) {
	_, err := fetch.NewFile(fetch.Options{}).Fetch(context.Background(), filepath.Join(t.TempDir(), "nope.html"))
	require.ErrorIs(t, err, os.ErrNotExist)
}
