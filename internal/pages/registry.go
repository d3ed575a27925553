// Package pages knows which pages the site has and where their content
// comes from.
package pages

import (
	"sort"

	"lechatnoir.dev/internal/models"
)

// Registry holds the site pages: home plus one per nav link
type Registry struct {
	pages  []models.Page
	bySlug map[string]models.Page
}

// NewRegistry builds the registry from the shared nav links
func NewRegistry(links []models.NavLink, homeTitle string) *Registry {
	r := &Registry{bySlug: make(map[string]models.Page)}
	r.add(models.Page{Slug: "", Title: homeTitle, Section: models.SectionHome})
	for _, link := range links {
		slug := models.SlugFromHref(link.Href)
		if slug == "" {
			continue
		}
		r.add(models.Page{Slug: slug, Title: link.Label, Section: link.Group.Section()})
	}
	return r
}

func (r *Registry) add(p models.Page) {
	if _, ok := r.bySlug[p.Slug]; ok {
		return
	}
	r.bySlug[p.Slug] = p
	r.pages = append(r.pages, p)
}

// Pages returns every page, home first then nav order
func (r *Registry) Pages() []models.Page {
	out := make([]models.Page, len(r.pages))
	copy(out, r.pages)
	return out
}

// Lookup finds a page by slug
func (r *Registry) Lookup(slug string) (models.Page, bool) {
	p, ok := r.bySlug[slug]
	return p, ok
}

// Slugs returns the sorted non-home slugs
func (r *Registry) Slugs() []string {
	var out []string
	for _, p := range r.pages {
		if p.Slug != "" {
			out = append(out, p.Slug)
		}
	}
	sort.Strings(out)
	return out
}
