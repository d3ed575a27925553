package models

import "strings"

// Page is a registered site page. The home page has an empty slug.
type Page struct {
	Slug    string `json:"slug"`
	Title   string `json:"title"`
	Section string `json:"section"`
}

// Path returns the canonical URL path of the page
func (p Page) Path() string {
	if p.Slug == "" {
		return "/"
	}
	return "/" + p.Slug + "/index.html"
}

// SlugFromHref extracts the page slug from a nav href such as
// "/career-objective/index.html"
func SlugFromHref(href string) string {
	href = strings.Trim(href, "/")
	href = strings.TrimSuffix(href, "index.html")
	return strings.Trim(href, "/")
}
