// Package fetch provides the sources the chrome loaders and the awards
// service read from: a directory, any fs.FS, or a same-origin HTTP base.
package fetch

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"net/url"
	"os"
	"path"
	"strings"
)

// Source returns the contents of a named resource.
// Names are slash separated and relative to the source base.
type Source interface {
	Fetch(ctx context.Context, name string) ([]byte, error)
}

// StatusError reports a non-2xx HTTP response
type StatusError struct {
	URL        string
	StatusCode int
	Status     string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetching %s: %s", e.URL, e.Status)
}

// FSSource reads resources from a file system
type FSSource struct {
	FS fs.FS
}

// NewDirSource creates a source rooted at dir
func NewDirSource(dir string) *FSSource {
	return &FSSource{FS: os.DirFS(dir)}
}

// Fetch reads name from the file system
func (s *FSSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	clean := path.Clean(strings.TrimPrefix(name, "/"))
	if !fs.ValidPath(clean) {
		return nil, fmt.Errorf("fetching %s: %w", name, fs.ErrInvalid)
	}
	data, err := fs.ReadFile(s.FS, clean)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", name, err)
	}
	return data, nil
}

// HTTPSource fetches resources relative to a base URL
type HTTPSource struct {
	base   *url.URL
	client *http.Client
}

// NewHTTPSource parses base and returns a source using client.
// A nil client means http.DefaultClient. The base always gets a trailing
// slash so names resolve beneath it.
func NewHTTPSource(base string, client *http.Client) (*HTTPSource, error) {
	if !strings.HasSuffix(base, "/") {
		base += "/"
	}
	u, err := url.Parse(base)
	if err != nil {
		return nil, fmt.Errorf("parsing base url %q: %w", base, err)
	}
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPSource{base: u, client: client}, nil
}

// Fetch issues a GET for name resolved against the base URL
func (s *HTTPSource) Fetch(ctx context.Context, name string) ([]byte, error) {
	ref, err := url.Parse(strings.TrimPrefix(name, "/"))
	if err != nil {
		return nil, fmt.Errorf("parsing resource name %q: %w", name, err)
	}
	target := s.base.ResolveReference(ref).String()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("building request for %s: %w", target, err)
	}
	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching %s: %w", target, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{URL: target, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", target, err)
	}
	return data, nil
}

// Sub returns a source whose names resolve beneath prefix
func Sub(src Source, prefix string) Source {
	return &prefixed{src: src, prefix: strings.Trim(prefix, "/")}
}

type prefixed struct {
	src    Source
	prefix string
}

func (p *prefixed) Fetch(ctx context.Context, name string) ([]byte, error) {
	if p.prefix == "" {
		return p.src.Fetch(ctx, name)
	}
	return p.src.Fetch(ctx, p.prefix+"/"+strings.TrimPrefix(name, "/"))
}
