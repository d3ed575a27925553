package main

import (
	"fmt"
	"net/http"
	"os"
	"path"
	"strings"
	"time"

	"go.uber.org/zap"

	"lechatnoir.dev/internal/awards"
	"lechatnoir.dev/internal/chrome"
	"lechatnoir.dev/internal/config"
	"lechatnoir.dev/internal/fetch"
	"lechatnoir.dev/internal/pages"
	"lechatnoir.dev/internal/services"
)

const fetchTimeout = 10 * time.Second

// app is the wired set of services shared by serve and build
type app struct {
	site   *services.SiteService
	awards *services.AwardService
}

func newApp(cfg *config.Config, logger *zap.Logger) (*app, error) {
	info, err := os.Stat(cfg.ContentDir)
	if err != nil {
		return nil, fmt.Errorf("content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("content dir %s is not a directory", cfg.ContentDir)
	}

	client := &http.Client{Timeout: fetchTimeout}

	components, err := componentSource(cfg, client)
	if err != nil {
		return nil, err
	}
	awardSource, awardFile, err := awardsSource(cfg, client)
	if err != nil {
		return nil, err
	}

	site := chrome.Site{
		Title:     cfg.Site.Title,
		Tagline:   cfg.Site.Tagline,
		Logo:      cfg.Site.Logo,
		Copyright: cfg.Site.Copyright,
	}
	awardService := services.NewAwardService(awards.NewLoader(awardSource, awardFile, logger))

	siteService := services.NewSiteService(services.SiteOptions{
		Registry: pages.NewRegistry(cfg.Nav, cfg.Site.Title),
		Source:   pages.NewSource(os.DirFS(cfg.ContentDir), pages.Site{Title: cfg.Site.Title, Tagline: cfg.Site.Tagline}),
		Navbar:   chrome.NewLoader(chrome.KindNavbar, components, chrome.NavbarFallback(site, cfg.Nav), site, logger),
		Footer:   chrome.NewLoader(chrome.KindFooter, components, chrome.FooterFallback(site, cfg.Nav), site, logger),
		Awards:   awardService,
		Resolver: chrome.Resolver{Root: cfg.Site.Root},
		Logger:   logger,
	})

	return &app{site: siteService, awards: awardService}, nil
}

func componentSource(cfg *config.Config, client *http.Client) (fetch.Source, error) {
	if cfg.Components.URL == "" {
		return fetch.NewDirSource(cfg.Components.Dir), nil
	}
	src, err := fetch.NewHTTPSource(cfg.Components.URL, client)
	if err != nil {
		return nil, fmt.Errorf("components.url: %w", err)
	}
	return src, nil
}

// awardsSource splits awards.url into a base and a file name, or reads
// awards.path from the content dir
func awardsSource(cfg *config.Config, client *http.Client) (fetch.Source, string, error) {
	if cfg.Awards.URL == "" {
		return fetch.NewDirSource(cfg.ContentDir), cfg.AwardsFile(), nil
	}
	i := strings.LastIndex(cfg.Awards.URL, "/")
	if i < 0 {
		return nil, "", fmt.Errorf("awards.url %q has no file name", cfg.Awards.URL)
	}
	src, err := fetch.NewHTTPSource(cfg.Awards.URL[:i+1], client)
	if err != nil {
		return nil, "", fmt.Errorf("awards.url: %w", err)
	}
	return src, path.Base(cfg.Awards.URL[i:]), nil
}
