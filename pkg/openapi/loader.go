package openapi

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// LoaderOption configures a Loader.
type LoaderOption func(*Loader)

// WithFileSystem resolves relative locations inside files instead of the OS
// filesystem.
func WithFileSystem(files fs.FS) LoaderOption {
	return func(l *Loader) {
		l.fs = files
	}
}

// WithHTTPClient enables http(s) locations using client.
func WithHTTPClient(client *http.Client) LoaderOption {
	return func(l *Loader) {
		l.http = client
	}
}

// WithHTTPFallback enables http(s) locations with a default client and an
// optional timeout.
func WithHTTPFallback(timeout time.Duration) LoaderOption {
	return func(l *Loader) {
		if l.http == nil {
			l.http = &http.Client{}
		}
		l.timeout = timeout
	}
}

// Loader reads raw OpenAPI documents. It is offline unless an HTTP client is
// configured.
type Loader struct {
	fs      fs.FS
	http    *http.Client
	timeout time.Duration
}

// NewLoader constructs a Loader.
func NewLoader(options ...LoaderOption) *Loader {
	l := &Loader{}
	for _, opt := range options {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

// Load returns the raw bytes at location, which may be a URL, a path inside
// the configured fs.FS or a file path.
func (l *Loader) Load(ctx context.Context, location string) ([]byte, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, errors.New("openapi loader: location is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	switch {
	case strings.HasPrefix(location, "http://"), strings.HasPrefix(location, "https://"):
		if l.http == nil {
			return nil, ErrHTTPDisabled
		}
		return l.loadHTTP(ctx, location)
	case l.fs != nil:
		return fs.ReadFile(l.fs, location)
	default:
		abs, err := filepath.Abs(location)
		if err != nil {
			return nil, err
		}
		return os.ReadFile(abs)
	}
}

func (l *Loader) loadHTTP(ctx context.Context, url string) ([]byte, error) {
	reqCtx := ctx
	if l.timeout > 0 {
		var cancel context.CancelFunc
		reqCtx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := l.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("openapi loader: unexpected status %s", resp.Status)
	}
	return io.ReadAll(resp.Body)
}
