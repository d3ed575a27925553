// Package build exports the site as static files with every page
// assembled once.
package build

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"path/filepath"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"

	"lechatnoir.dev/internal/chrome"
	"lechatnoir.dev/internal/models"
	"lechatnoir.dev/internal/services"
)

// Builder writes the static export
type Builder struct {
	Site       *services.SiteService
	ContentDir string
	OutputDir  string
	Include    []string
	Exclude    []string
	// Root is the configured site root; empty means relative links
	Root   string
	Logger *zap.Logger
}

// Report summarises one build
type Report struct {
	Pages      []string
	Components []string
	Assets     int
}

// Build renders every page, writes the chrome fragments and copies the
// matching assets. Pages without a source file are skipped with a warning.
func (b *Builder) Build(ctx context.Context) (*Report, error) {
	logger := b.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	if err := os.MkdirAll(b.OutputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output dir: %w", err)
	}

	report := &Report{}
	resolver := chrome.Resolver{Root: b.Root, Relative: true}

	for _, page := range b.Site.Pages() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		out, err := b.Site.RenderWith(ctx, page, resolver)
		if err != nil {
			logger.Warn("skipping page", zap.String("page", page.Path()), zap.Error(err))
			continue
		}
		rel := outputPath(page)
		if err := writeFile(filepath.Join(b.OutputDir, filepath.FromSlash(rel)), out); err != nil {
			return nil, err
		}
		report.Pages = append(report.Pages, rel)
	}

	for _, kind := range []chrome.Kind{chrome.KindNavbar, chrome.KindFooter} {
		frag := b.Site.Chrome(ctx, kind)
		htmlFile, cssFile, jsFile := kind.Files()
		for _, name := range []string{htmlFile, cssFile, jsFile} {
			content, _, _ := frag.File(name)
			rel := path.Join("components", name)
			if err := writeFile(filepath.Join(b.OutputDir, filepath.FromSlash(rel)), []byte(content)); err != nil {
				return nil, err
			}
			report.Components = append(report.Components, rel)
		}
	}

	n, err := b.copyAssets(ctx)
	if err != nil {
		return nil, err
	}
	report.Assets = n

	logger.Info("site built",
		zap.String("output", b.OutputDir),
		zap.Int("pages", len(report.Pages)),
		zap.Int("assets", report.Assets))
	return report, nil
}

func outputPath(p models.Page) string {
	if p.Slug == "" {
		return "index.html"
	}
	return path.Join(p.Slug, "index.html")
}

// copyAssets copies every content file matched by Include and not by
// Exclude
func (b *Builder) copyAssets(ctx context.Context) (int, error) {
	fsys := os.DirFS(b.ContentDir)
	absOut, _ := filepath.Abs(b.OutputDir)
	count := 0

	err := fs.WalkDir(fsys, ".", func(rel string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		if d.IsDir() {
			// never copy the export into itself
			if abs, _ := filepath.Abs(filepath.Join(b.ContentDir, rel)); absOut != "" && abs == absOut {
				return fs.SkipDir
			}
			return nil
		}
		if !Matches(rel, b.Include, b.Exclude) {
			return nil
		}
		if err := copyFile(fsys, rel, filepath.Join(b.OutputDir, filepath.FromSlash(rel))); err != nil {
			return err
		}
		count++
		return nil
	})
	if err != nil {
		return count, fmt.Errorf("copying assets: %w", err)
	}
	return count, nil
}

// Matches reports whether rel is selected by include and not excluded.
// Patterns use doublestar syntax; a pattern without a slash also matches
// the base name.
func Matches(rel string, include, exclude []string) bool {
	return matchesAny(rel, include) && !matchesAny(rel, exclude)
}

func matchesAny(rel string, patterns []string) bool {
	normalized := filepath.ToSlash(rel)
	base := path.Base(normalized)
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, normalized); err == nil && matched {
			return true
		}
		if matched, err := doublestar.Match(pattern, base); err == nil && matched {
			return true
		}
	}
	return false
}

func writeFile(dst string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(dst, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", dst, err)
	}
	return nil
}

func copyFile(fsys fs.FS, rel, dst string) error {
	src, err := fsys.Open(rel)
	if err != nil {
		return err
	}
	defer src.Close()

	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return err
	}
	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, src); err != nil {
		out.Close()
		return fmt.Errorf("copying %s: %w", rel, err)
	}
	return out.Close()
}
