package pages

import (
	"errors"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lechatnoir.dev/internal/config"
	"lechatnoir.dev/internal/models"
)

func TestRegistryFromNav(t *testing.T) {
	r := NewRegistry(config.DefaultNav, "Home")

	pages := r.Pages()
	require.Len(t, pages, len(config.DefaultNav)+1)
	assert.Equal(t, "", pages[0].Slug)
	assert.Equal(t, models.SectionHome, pages[0].Section)

	p, ok := r.Lookup("work-history")
	require.True(t, ok)
	assert.Equal(t, "Work History", p.Title)
	assert.Equal(t, "experience", p.Section)
	assert.Equal(t, "/work-history/index.html", p.Path())

	_, ok = r.Lookup("skills-wheel")
	assert.False(t, ok)
	assert.Contains(t, r.Slugs(), "awards-achievements")
}

func TestRegistrySkipsDuplicatesAndRoot(t *testing.T) {
	r := NewRegistry([]models.NavLink{
		{Href: "/", Label: "Home again", Group: models.GroupProfile},
		{Href: "/a/index.html", Label: "A", Group: models.GroupProfile},
		{Href: "/a/", Label: "A again", Group: models.GroupProfile},
	}, "Home")

	assert.Len(t, r.Pages(), 2)
	p, _ := r.Lookup("a")
	assert.Equal(t, "A", p.Title)
}

func TestSourceReadHTML(t *testing.T) {
	fsys := fstest.MapFS{
		"references/index.html": {Data: []byte(`<html><body><div id="navbar-placeholder"></div></body></html>`)},
		"references/index.md":   {Data: []byte(`# ignored`)},
	}
	src := NewSource(fsys, Site{Title: "Le Chat Noir"})

	data, err := src.Read(models.Page{Slug: "references", Title: "References"})
	require.NoError(t, err)
	assert.Contains(t, string(data), "navbar-placeholder")
	assert.NotContains(t, string(data), "ignored")
}

func TestSourceReadMarkdown(t *testing.T) {
	fsys := fstest.MapFS{
		"index.md": {Data: []byte("# Welcome\n\nHello **world**.\n")},
	}
	src := NewSource(fsys, Site{Title: "Le Chat Noir"})

	data, err := src.Read(models.Page{Title: "Home", Section: models.SectionHome})
	require.NoError(t, err)

	out := string(data)
	assert.Contains(t, out, "<title>Welcome | Le Chat Noir</title>")
	assert.Contains(t, out, "<strong>world</strong>")
	assert.Contains(t, out, `id="navbar-placeholder"`)
	assert.Contains(t, out, `id="footer-placeholder"`)
	assert.Contains(t, out, "page-home")
}

func TestSourceMissing(t *testing.T) {
	src := NewSource(fstest.MapFS{}, Site{})

	_, err := src.Read(models.Page{Slug: "portfolio"})
	assert.True(t, errors.Is(err, ErrNoSource))
}

func TestExtractTitle(t *testing.T) {
	assert.Equal(t, "Career Objective", extractTitle("intro\n# Career Objective\n## sub", "x"))
	assert.Equal(t, "fallback", extractTitle("## only h2", "fallback"))
}
