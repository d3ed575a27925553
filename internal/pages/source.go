package pages

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"path"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	gmhtml "github.com/yuin/goldmark/renderer/html"

	"lechatnoir.dev/internal/models"
)

// ErrNoSource is returned when a page has neither index.html nor index.md
var ErrNoSource = errors.New("page source not found")

// Site is the branding the Markdown layout shows
type Site struct {
	Title   string
	Tagline string
}

// Source reads page documents from the content tree
type Source struct {
	fsys   fs.FS
	site   Site
	md     goldmark.Markdown
	layout *template.Template
}

type layoutData struct {
	Title   string
	Site    Site
	Page    models.Page
	Content template.HTML
}

// NewSource reads pages from fsys
func NewSource(fsys fs.FS, site Site) *Source {
	md := goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
		goldmark.WithRendererOptions(gmhtml.WithUnsafe()),
	)
	return &Source{
		fsys:   fsys,
		site:   site,
		md:     md,
		layout: template.Must(template.New("layout").Parse(layoutTemplate)),
	}
}

// Files returns the candidate source files of p in lookup order
func Files(p models.Page) (htmlFile, mdFile string) {
	dir := p.Slug
	if dir == "" {
		return "index.html", "index.md"
	}
	return path.Join(dir, "index.html"), path.Join(dir, "index.md")
}

// Read returns the full HTML document of p. An index.html is used as is;
// an index.md is rendered into the layout.
func (s *Source) Read(p models.Page) ([]byte, error) {
	htmlFile, mdFile := Files(p)

	data, err := fs.ReadFile(s.fsys, htmlFile)
	if err == nil {
		return data, nil
	}
	if !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("reading %s: %w", htmlFile, err)
	}

	data, err = fs.ReadFile(s.fsys, mdFile)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoSource, p.Path())
	}
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", mdFile, err)
	}
	return s.RenderMarkdown(p, data)
}

// RenderMarkdown converts a Markdown body and wraps it in the layout
func (s *Source) RenderMarkdown(p models.Page, markdown []byte) ([]byte, error) {
	var body bytes.Buffer
	if err := s.md.Convert(markdown, &body); err != nil {
		return nil, fmt.Errorf("converting markdown for %s: %w", p.Path(), err)
	}

	title := extractTitle(string(markdown), p.Title)
	if title != s.site.Title && s.site.Title != "" {
		title += " | " + s.site.Title
	}

	var out bytes.Buffer
	err := s.layout.Execute(&out, layoutData{
		Title:   title,
		Site:    s.site,
		Page:    p,
		Content: template.HTML(body.String()),
	})
	if err != nil {
		return nil, fmt.Errorf("rendering layout for %s: %w", p.Path(), err)
	}
	return out.Bytes(), nil
}

// extractTitle returns the first level-one heading, or fallback
func extractTitle(markdown, fallback string) string {
	for _, line := range strings.Split(markdown, "\n") {
		line = strings.TrimSpace(line)
		if strings.HasPrefix(line, "# ") {
			return strings.TrimSpace(strings.TrimPrefix(line, "# "))
		}
	}
	return fallback
}
