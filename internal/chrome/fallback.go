package chrome

import (
	"bytes"
	"embed"
	"fmt"
	"html"
	"html/template"

	"lechatnoir.dev/internal/models"
)

//go:embed assets/*.css assets/*.js
var assetFS embed.FS

// Site carries the branding the inline fragments are generated from
type Site struct {
	Title     string
	Tagline   string
	Logo      string
	Copyright string
}

// FallbackFunc produces the inline fragments used when loading fails
type FallbackFunc func() (*Fragments, error)

type templateData struct {
	Site  Site
	Menus []models.NavMenu
	Links []models.NavLink
}

var (
	navbarTmpl = template.Must(template.New("navbar").Parse(navbarTemplate))
	footerTmpl = template.Must(template.New("footer").Parse(footerTemplate))
)

// NavbarFallback generates the navbar from the configured links
func NavbarFallback(site Site, links []models.NavLink) FallbackFunc {
	return func() (*Fragments, error) {
		return generate(KindNavbar, navbarTmpl, templateData{Site: site, Menus: models.GroupLinks(links), Links: links})
	}
}

// FooterFallback generates the footer from the configured links
func FooterFallback(site Site, links []models.NavLink) FallbackFunc {
	return func() (*Fragments, error) {
		return generate(KindFooter, footerTmpl, templateData{Site: site, Menus: models.GroupLinks(links), Links: links})
	}
}

func generate(kind Kind, tmpl *template.Template, data templateData) (*Fragments, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("rendering inline %s: %w", kind, err)
	}

	_, cssFile, jsFile := kind.Files()
	css, err := assetFS.ReadFile("assets/" + cssFile)
	if err != nil {
		return nil, fmt.Errorf("reading inline %s: %w", cssFile, err)
	}
	js, err := assetFS.ReadFile("assets/" + jsFile)
	if err != nil {
		return nil, fmt.Errorf("reading inline %s: %w", jsFile, err)
	}

	return &Fragments{Kind: kind, HTML: buf.String(), CSS: string(css), JS: string(js), Fallback: true}, nil
}

// minimal is the last resort when even the inline fragments fail
func minimal(kind Kind, site Site) *Fragments {
	f := &Fragments{Kind: kind, Fallback: true}
	switch kind {
	case KindNavbar:
		f.HTML = `<nav class="navbar" id="navbar"><a href="/" class="logo-link">` + html.EscapeString(site.Title) + `</a></nav>`
	case KindFooter:
		f.HTML = `<footer class="footer footer-minimal"><p>` + html.EscapeString(site.Copyright) + `</p></footer>`
	}
	return f
}
