package chrome

import (
	"bytes"
	"context"
	"fmt"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"

	"lechatnoir.dev/internal/fetch"
)

// Loader loads one kind of chrome. A successful load is cached until
// Invalidate; a failed load yields the inline fallback and is retried on
// the next call. Concurrent callers share one in-flight load.
type Loader struct {
	kind     Kind
	source   fetch.Source
	fallback FallbackFunc
	site     Site
	logger   *zap.Logger

	group  singleflight.Group
	mu     sync.RWMutex
	loaded *Fragments
}

// NewLoader creates a loader. A nil source always yields the fallback.
func NewLoader(kind Kind, source fetch.Source, fallback FallbackFunc, site Site, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{
		kind:     kind,
		source:   source,
		fallback: fallback,
		site:     site,
		logger:   logger.With(zap.String("component", string(kind))),
	}
}

// Load returns the fragments. It never fails: any fetch error is logged
// and the inline fallback returned instead.
func (l *Loader) Load(ctx context.Context) *Fragments {
	l.mu.RLock()
	loaded := l.loaded
	l.mu.RUnlock()
	if loaded != nil {
		return loaded
	}

	v, _, _ := l.group.Do(string(l.kind), func() (interface{}, error) {
		l.mu.RLock()
		loaded := l.loaded
		l.mu.RUnlock()
		if loaded != nil {
			return loaded, nil
		}
		return l.load(ctx), nil
	})
	return v.(*Fragments)
}

// Invalidate drops the cached fragments so the next Load fetches again
func (l *Loader) Invalidate() {
	l.mu.Lock()
	l.loaded = nil
	l.mu.Unlock()
}

func (l *Loader) load(ctx context.Context) *Fragments {
	if l.source == nil {
		return l.fallbackFragments()
	}

	frag, err := l.fetchAll(ctx)
	if err != nil {
		l.logger.Warn("loading chrome fragments failed, using inline fallback", zap.Error(err))
		return l.fallbackFragments()
	}

	l.mu.Lock()
	l.loaded = frag
	l.mu.Unlock()
	l.logger.Debug("chrome fragments loaded")
	return frag
}

func (l *Loader) fetchAll(ctx context.Context) (*Fragments, error) {
	htmlFile, cssFile, jsFile := l.kind.Files()
	var markup, css, js []byte

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() (err error) {
		markup, err = fetchNonEmpty(gctx, l.source, htmlFile)
		return err
	})
	g.Go(func() (err error) {
		css, err = fetchNonEmpty(gctx, l.source, cssFile)
		return err
	})
	g.Go(func() (err error) {
		js, err = fetchNonEmpty(gctx, l.source, jsFile)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &Fragments{Kind: l.kind, HTML: string(markup), CSS: string(css), JS: string(js)}, nil
}

func fetchNonEmpty(ctx context.Context, src fetch.Source, name string) ([]byte, error) {
	data, err := src.Fetch(ctx, name)
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("fetching %s: empty body", name)
	}
	return data, nil
}

func (l *Loader) fallbackFragments() *Fragments {
	if l.fallback != nil {
		frag, err := l.fallback()
		if err == nil && frag != nil {
			frag.Fallback = true
			return frag
		}
		l.logger.Error("inline chrome fallback failed, using minimal markup", zap.Error(err))
	}
	return minimal(l.kind, l.site)
}
