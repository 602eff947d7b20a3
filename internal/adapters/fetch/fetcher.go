// Package fetch implements the archive Fetcher over HTTP with an on-disk
// cache keyed by destination path.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"go.trai.ch/mkroot/internal/core/domain"
	"go.trai.ch/mkroot/internal/core/ports"
	"go.trai.ch/zerr"
)

const (
	httpClientTimeout = 10 * time.Minute
	dirPerm           = 0o750
)

var _ ports.Fetcher = (*Fetcher)(nil)

// Fetcher downloads archives once and reuses the cached file afterwards.
type Fetcher struct {
	httpClient *http.Client
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(f *Fetcher) {
		f.httpClient = client
	}
}

// New creates a new Fetcher.
func New(opts ...Option) *Fetcher {
	f := &Fetcher{
		httpClient: &http.Client{
			Timeout: httpClientTimeout,
		},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Fetch stores the content at rawURL in dest unless dest already exists.
// The download lands in a temporary sibling of dest and is renamed into
// place, so an interrupted fetch never leaves a partial cache entry.
// http(s) and file URLs are supported.
func (f *Fetcher) Fetch(ctx context.Context, rawURL, dest string) error {
	if _, err := os.Stat(dest); err == nil {
		return nil
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
	}

	var body io.ReadCloser
	switch u.Scheme {
	case "file":
		body, err = os.Open(u.Path)
		if err != nil {
			return zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
		}
	case "http", "https":
		body, err = f.get(ctx, rawURL)
		if err != nil {
			return err
		}
	default:
		unsupported := zerr.With(domain.ErrFetchFailed, "url", rawURL)
		return zerr.With(unsupported, "reason", fmt.Sprintf("unsupported scheme %q", u.Scheme))
	}
	defer func() {
		_ = body.Close()
	}()

	if err := atomicWrite(dest, body); err != nil {
		return zerr.With(zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL), "path", dest)
	}
	return nil
}

func (f *Fetcher) get(ctx context.Context, rawURL string) (io.ReadCloser, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, http.NoBody)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return nil, zerr.With(zerr.Wrap(err, domain.ErrFetchFailed.Error()), "url", rawURL)
	}

	if resp.StatusCode != http.StatusOK {
		_ = resp.Body.Close()
		statusErr := zerr.With(domain.ErrFetchFailed, "url", rawURL)
		return nil, zerr.With(statusErr, "status_code", resp.StatusCode)
	}
	return resp.Body, nil
}

// atomicWrite copies r into a temp file next to path and renames it.
func atomicWrite(path string, r io.Reader) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(dir, filepath.Base(path)+".part-*")
	if err != nil {
		return err
	}
	tmpName := tmpFile.Name()

	// Clean up temp file on error
	defer func() {
		if _, statErr := os.Stat(tmpName); statErr == nil {
			_ = os.Remove(tmpName)
		}
	}()

	if _, err := io.Copy(tmpFile, r); err != nil {
		_ = tmpFile.Close()
		return err
	}
	if err := tmpFile.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
