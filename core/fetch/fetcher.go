// Package fetch implements the Fetcher interface.
// Notes come either from a web page (HTTP GET) or from a saved HTML file;
// both are decoded to UTF-8 using the declared or sniffed charset.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"github.com/gaurav-prasanna/notemark/core"
)

const (
	DefaultTimeout   = 30 * time.Second
	DefaultUserAgent = "notemark/1.0 (https://github.com/gaurav-prasanna/notemark)"
)

// Options configure the fetchers created by For.
type Options struct {
	Timeout   time.Duration
	UserAgent string
	Stdin     io.Reader
	Log       *zap.Logger
}

// For picks the fetcher for a source: http(s) URLs go over the network,
// anything else is a local path, "-" being standard input.
func For(source string, opts Options) core.Fetcher {
	if IsURL(source) {
		return NewHTTP(opts)
	}
	return NewFile(opts)
}

// IsURL reports whether the source names an http or https resource.
func IsURL(source string) bool {
	s := strings.ToLower(source)
	return strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://")
}

// HTTPFetcher fetches web pages via HTTP.
type HTTPFetcher struct {
	client    *http.Client
	userAgent string
	log       *zap.Logger
}

// NewHTTP creates an HTTPFetcher; zero options fall back to defaults.
func NewHTTP(opts Options) *HTTPFetcher {
	timeout := opts.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ua := opts.UserAgent
	if ua == "" {
		ua = DefaultUserAgent
	}
	return &HTTPFetcher{
		client:    &http.Client{Timeout: timeout},
		userAgent: ua,
		log:       logger(opts.Log),
	}
}

// Fetch retrieves the HTML content of the given URL.
func (f *HTTPFetcher) Fetch(ctx context.Context, url string) (*core.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	start := time.Now()
	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("unexpected status %d for %s", resp.StatusCode, url)
	}

	contentType := resp.Header.Get("Content-Type")
	body, err := decode(resp.Body, contentType)
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	f.log.Debug("Fetched",
		zap.String("url", url),
		zap.Int("status", resp.StatusCode),
		zap.String("content_type", contentType),
		zap.Int("bytes", len(body)),
		zap.Duration("elapsed", time.Since(start)))

	return &core.FetchResult{
		Source:      url,
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		HTML:        body,
	}, nil
}

// decode converts the body to UTF-8. The content type may be empty, in which
// case the encoding is sniffed from a BOM or meta tag.
func decode(r io.Reader, contentType string) (string, error) {
	utf8, err := charset.NewReader(r, contentType)
	if err != nil {
		return "", fmt.Errorf("detecting charset: %w", err)
	}
	body, err := io.ReadAll(utf8)
	if err != nil {
		return "", err
	}
	return string(body), nil
}

func logger(log *zap.Logger) *zap.Logger {
	if log == nil {
		return zap.NewNop()
	}
	return log.Named("fetch")
}
