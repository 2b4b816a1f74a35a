// Package http provides an HTTP-based implementation of kitchensage.Fetcher
// for importing recipe exports published on the web.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/kitchensage"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 10 * time.Second

// DefaultMaxBytes caps the size of a fetched document. Single-recipe exports
// embed photos as separate files, so real documents are far smaller.
const DefaultMaxBytes = 10 << 20

// UserAgent identifies the importer to remote servers.
const UserAgent = "kitchensage/1.0"

// Ensure Fetcher implements kitchensage.Fetcher at compile time.
var _ kitchensage.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves HTML documents over HTTP and decodes them to UTF-8.
type Fetcher struct {
	client   *http.Client
	timeout  time.Duration
	maxBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (10s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithMaxBytes sets the largest accepted response body.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:  DefaultFetchTimeout,
		maxBytes: DefaultMaxBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the document at url.
// Returns ENOTFOUND for 404 responses and EINVALID for oversized bodies.
func (f *Fetcher) Fetch(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", kitchensage.Errorf(kitchensage.EINVALID, "invalid URL %q: %v", url, err)
	}
	req.Header.Set("User-Agent", UserAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return "", kitchensage.Errorf(kitchensage.ENOTFOUND, "no document at %s", url)
	case resp.StatusCode != http.StatusOK:
		return "", fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}

	// The limit applies to the bytes on the wire, before charset decoding.
	raw, err := io.ReadAll(io.LimitReader(resp.Body, f.maxBytes+1))
	if err != nil {
		return "", err
	}
	if int64(len(raw)) > f.maxBytes {
		return "", kitchensage.Errorf(kitchensage.EINVALID, "document at %s exceeds %d bytes", url, f.maxBytes)
	}

	body, err := charset.NewReader(bytes.NewReader(raw), resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}
	data, err := io.ReadAll(body)
	if err != nil {
		return "", fmt.Errorf("decode %s: %w", url, err)
	}

	return string(data), nil
}
