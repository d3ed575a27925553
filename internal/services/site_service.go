package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/net/html"

	"lechatnoir.dev/internal/awards"
	"lechatnoir.dev/internal/chrome"
	"lechatnoir.dev/internal/dom"
	"lechatnoir.dev/internal/models"
	"lechatnoir.dev/internal/pages"
)

// ErrPageNotFound is returned for slugs that are not registered pages
var ErrPageNotFound = errors.New("page not found")

// SiteService assembles pages: source document, navbar, footer, awards
// and active link state
type SiteService struct {
	registry *pages.Registry
	source   *pages.Source
	navbar   *chrome.Loader
	footer   *chrome.Loader
	awards   *AwardService
	resolver chrome.Resolver
	logger   *zap.Logger

	mu    sync.RWMutex
	pages map[string][]byte // rendered pages, unfiltered only
}

// SiteOptions collects the parts a SiteService is built from
type SiteOptions struct {
	Registry *pages.Registry
	Source   *pages.Source
	Navbar   *chrome.Loader
	Footer   *chrome.Loader
	Awards   *AwardService
	Resolver chrome.Resolver
	Logger   *zap.Logger
}

// NewSiteService creates a new SiteService
func NewSiteService(opts SiteOptions) *SiteService {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SiteService{
		registry: opts.Registry,
		source:   opts.Source,
		navbar:   opts.Navbar,
		footer:   opts.Footer,
		awards:   opts.Awards,
		resolver: opts.Resolver,
		logger:   logger,
		pages:    make(map[string][]byte),
	}
}

// Pages returns every registered page
func (s *SiteService) Pages() []models.Page {
	return s.registry.Pages()
}

// Page returns the registered page for slug
func (s *SiteService) Page(slug string) (models.Page, error) {
	p, ok := s.registry.Lookup(strings.Trim(slug, "/"))
	if !ok {
		return models.Page{}, fmt.Errorf("%w: %s", ErrPageNotFound, slug)
	}
	return p, nil
}

// Render returns the assembled document for slug using the server
// resolver. category filters the awards grid when the page has one.
func (s *SiteService) Render(ctx context.Context, slug, category string) ([]byte, error) {
	page, err := s.Page(slug)
	if err != nil {
		return nil, err
	}

	if category == "" {
		s.mu.RLock()
		cached, ok := s.pages[page.Slug]
		s.mu.RUnlock()
		if ok {
			return cached, nil
		}
	}

	out, fallback, err := s.assemble(ctx, page, s.resolver, category)
	if err != nil {
		return nil, err
	}

	if category == "" && !fallback {
		s.mu.Lock()
		s.pages[page.Slug] = out
		s.mu.Unlock()
	}
	return out, nil
}

// RenderWith assembles page with the given resolver, bypassing the cache
func (s *SiteService) RenderWith(ctx context.Context, page models.Page, resolver chrome.Resolver) ([]byte, error) {
	out, _, err := s.assemble(ctx, page, resolver, "")
	return out, err
}

// Chrome returns the loaded fragments of kind
func (s *SiteService) Chrome(ctx context.Context, kind chrome.Kind) *chrome.Fragments {
	if kind == chrome.KindFooter {
		return s.footer.Load(ctx)
	}
	return s.navbar.Load(ctx)
}

// Invalidate drops rendered pages, chrome and awards data
func (s *SiteService) Invalidate() {
	s.navbar.Invalidate()
	s.footer.Invalidate()
	if s.awards != nil {
		s.awards.Invalidate()
	}
	s.mu.Lock()
	s.pages = make(map[string][]byte)
	s.mu.Unlock()
	s.logger.Debug("site caches invalidated")
}

// assemble runs the page pipeline. fallback reports whether any part was
// served from a fallback, in which case the result must not be cached.
func (s *SiteService) assemble(ctx context.Context, page models.Page, resolver chrome.Resolver, category string) ([]byte, bool, error) {
	raw, err := s.source.Read(page)
	if err != nil {
		return nil, false, err
	}

	doc, err := dom.ParseString(string(raw))
	if err != nil {
		return nil, false, fmt.Errorf("parsing %s: %w", page.Path(), err)
	}

	pagePath := page.Path()
	injector := &chrome.Injector{Resolver: resolver, Logger: s.logger}

	navbar := s.navbar.Load(ctx)
	if err := injector.Navbar(doc, navbar, pagePath); err != nil {
		return nil, false, err
	}
	footer := s.footer.Load(ctx)
	if err := injector.Footer(doc, footer, pagePath); err != nil {
		return nil, false, err
	}
	fallback := navbar.Fallback || footer.Fallback

	if s.awards != nil && hasAwardsTargets(doc) {
		view := s.awards.View(ctx, category)
		if _, err := awards.Fill(doc, view); err != nil {
			return nil, false, err
		}
		fallback = fallback || view.Fallback
	}

	active := chrome.MarkActive(doc, pagePath)
	s.logger.Debug("page assembled",
		zap.String("page", pagePath),
		zap.Int("active_links", active),
		zap.Bool("fallback", fallback))

	out, err := dom.Render(doc)
	if err != nil {
		return nil, false, fmt.Errorf("rendering %s: %w", pagePath, err)
	}
	return []byte(out), fallback, nil
}

func hasAwardsTargets(doc *html.Node) bool {
	return dom.FindFirst(doc, dom.ByID(awards.GridID)) != nil ||
		dom.FindFirst(doc, dom.ByID(awards.CategoryButtonsID)) != nil
}
