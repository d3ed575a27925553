package services

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lechatnoir.dev/internal/awards"
	"lechatnoir.dev/internal/chrome"
	"lechatnoir.dev/internal/config"
	"lechatnoir.dev/internal/fetch"
	"lechatnoir.dev/internal/pages"
)

const awardsJSON = `{
  "awards": [
    {"id": 1, "title": "Dean's List", "date": "2022-05-01", "category": "Academic", "badge": "🎓"},
    {"id": 2, "title": "Hackathon", "date": "2024-01-15", "category": "Technical", "badge": "💻"}
  ],
  "categories": ["Academic", "Technical"]
}`

const awardsPage = `<!DOCTYPE html><html><head><title>Awards</title></head><body>
<div id="navbar-placeholder"></div>
<span id="totalAwards"></span><span id="totalCategories"></span><span id="latestAward"></span>
<div id="categoryButtons"></div><div id="awardsGrid"></div>
<div id="footer-placeholder"></div>
</body></html>`

func contentFS() fstest.MapFS {
	return fstest.MapFS{
		"index.md":                             {Data: []byte("# Le Chat Noir\n\nWelcome.\n")},
		"career-objective/index.md":            {Data: []byte("# Career Objective\n\nGoals.\n")},
		"awards-achievements/index.html":       {Data: []byte(awardsPage)},
		"awards-achievements/awards-data.json": {Data: []byte(awardsJSON)},
		"components/navbar.html":               {Data: []byte(`<nav class="navbar"><a href="/">Home</a><a href="/career-objective/index.html">Career</a><a href="/awards-achievements/index.html">Awards</a></nav>`)},
		"components/navbar.css":                {Data: []byte(`.navbar{}`)},
		"components/navbar.js":                 {Data: []byte(`void 0`)},
		"components/footer.html":               {Data: []byte(`<footer class="footer"><a href="/">Home</a></footer>`)},
		"components/footer.css":                {Data: []byte(`.footer{}`)},
		"components/footer.js":                 {Data: []byte(`void 0`)},
	}
}

type counting struct {
	fetch.Source
	calls atomic.Int32
}

func (c *counting) Fetch(ctx context.Context, name string) ([]byte, error) {
	c.calls.Add(1)
	return c.Source.Fetch(ctx, name)
}

func newSiteService(t *testing.T, fsys fstest.MapFS, components fetch.Source) *SiteService {
	t.Helper()
	site := chrome.Site{Title: "Le Chat Noir", Logo: "logo-test.png"}
	content := &fetch.FSSource{FS: fsys}
	return NewSiteService(SiteOptions{
		Registry: pages.NewRegistry(config.DefaultNav, "Home"),
		Source:   pages.NewSource(fsys, pages.Site{Title: "Le Chat Noir"}),
		Navbar:   chrome.NewLoader(chrome.KindNavbar, components, chrome.NavbarFallback(site, config.DefaultNav), site, nil),
		Footer:   chrome.NewLoader(chrome.KindFooter, components, chrome.FooterFallback(site, config.DefaultNav), site, nil),
		Awards:   NewAwardService(awards.NewLoader(content, "awards-achievements/awards-data.json", nil)),
	})
}

func TestRenderSubpage(t *testing.T) {
	fsys := contentFS()
	svc := newSiteService(t, fsys, fetch.Sub(&fetch.FSSource{FS: fsys}, "components"))

	out, err := svc.Render(context.Background(), "career-objective", "")
	require.NoError(t, err)

	html := string(out)
	assert.Contains(t, html, `<nav class="navbar" data-chrome="navbar">`)
	assert.Contains(t, html, `href="../career-objective/index.html" class="active"`)
	assert.Contains(t, html, `href="../awards-achievements/index.html">`)
	assert.Contains(t, html, `href="../components/footer.css"`)
	assert.Equal(t, 1, strings.Count(html, "<footer"))
	assert.NotContains(t, html, "navbar-placeholder")
}

func TestRenderAwardsPage(t *testing.T) {
	fsys := contentFS()
	svc := newSiteService(t, fsys, fetch.Sub(&fetch.FSSource{FS: fsys}, "components"))

	out, err := svc.Render(context.Background(), "awards-achievements", "")
	require.NoError(t, err)
	html := string(out)
	assert.Equal(t, 2, strings.Count(html, `class="award-card"`))
	assert.Contains(t, html, `<span id="latestAward">2024-01-15</span>`)
	assert.Contains(t, html, `<span id="totalCategories">2</span>`)
	assert.NotContains(t, html, "notification-info")

	out, err = svc.Render(context.Background(), "awards-achievements", "Technical")
	require.NoError(t, err)
	html = string(out)
	assert.Equal(t, 1, strings.Count(html, `class="award-card"`))
	assert.Contains(t, html, "Showing awards from Technical")
}

func TestRenderCaches(t *testing.T) {
	fsys := contentFS()
	components := &counting{Source: fetch.Sub(&fetch.FSSource{FS: fsys}, "components")}
	svc := newSiteService(t, fsys, components)

	first, err := svc.Render(context.Background(), "", "")
	require.NoError(t, err)
	calls := components.calls.Load()

	fsys["index.md"] = &fstest.MapFile{Data: []byte("# Changed\n")}
	second, err := svc.Render(context.Background(), "", "")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, calls, components.calls.Load())

	svc.Invalidate()
	third, err := svc.Render(context.Background(), "", "")
	require.NoError(t, err)
	assert.Contains(t, string(third), "Changed")
}

func TestRenderFallbackChrome(t *testing.T) {
	fsys := contentFS()
	svc := newSiteService(t, fsys, nil)

	out, err := svc.Render(context.Background(), "", "")
	require.NoError(t, err)
	html := string(out)
	assert.Contains(t, html, `id="mobile-bottom-nav"`)
	assert.Contains(t, html, "Quick Links")
	assert.Contains(t, html, `class="mobile-nav-item active" data-section="home"`)
}

func TestRenderUnknownPage(t *testing.T) {
	svc := newSiteService(t, contentFS(), nil)

	_, err := svc.Render(context.Background(), "skills-wheel", "")
	assert.True(t, errors.Is(err, ErrPageNotFound))

	_, err = svc.Render(context.Background(), "references", "")
	assert.True(t, errors.Is(err, pages.ErrNoSource))
}

func TestRenderWithRelativeResolver(t *testing.T) {
	fsys := contentFS()
	svc := newSiteService(t, fsys, fetch.Sub(&fetch.FSSource{FS: fsys}, "components"))
	home, err := svc.Page("")
	require.NoError(t, err)

	out, err := svc.RenderWith(context.Background(), home, chrome.Resolver{Relative: true})
	require.NoError(t, err)
	assert.Contains(t, string(out), `href="career-objective/index.html"`)
	assert.Contains(t, string(out), `href="components/footer.css"`)
}

func TestAwardService(t *testing.T) {
	fsys := contentFS()
	svc := NewAwardService(awards.NewLoader(&fetch.FSSource{FS: fsys}, "awards-achievements/awards-data.json", nil))
	ctx := context.Background()

	assert.Len(t, svc.GetAll(ctx), 2)

	a, err := svc.GetByID(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, "Hackathon", a.Title)

	_, err = svc.GetByID(ctx, 99)
	assert.True(t, errors.Is(err, ErrAwardNotFound))

	assert.Equal(t, awards.Summary{Total: 2, Categories: 2, Latest: "2024-01-15"}, svc.Summary(ctx))

	v := svc.View(ctx, "all")
	assert.Len(t, v.Awards, 2)
	require.Len(t, v.Notifications, 1)
	assert.Equal(t, "Showing awards from all categories", v.Notifications[0].Message)
}

func TestAwardServiceRetriesAfterFallback(t *testing.T) {
	fsys := fstest.MapFS{}
	svc := NewAwardService(awards.NewLoader(&fetch.FSSource{FS: fsys}, "awards-data.json", nil))
	ctx := context.Background()

	assert.True(t, svc.Result(ctx).Fallback)

	fsys["awards-data.json"] = &fstest.MapFile{Data: []byte(awardsJSON)}
	assert.False(t, svc.Result(ctx).Fallback)
}

type failFirst struct {
	fetch.Source
	calls atomic.Int32
}

func (f *failFirst) Fetch(ctx context.Context, name string) ([]byte, error) {
	if f.calls.Add(1) == 1 {
		return nil, errors.New("connection reset")
	}
	return f.Source.Fetch(ctx, name)
}

func TestRenderDoesNotCacheAwardsFallback(t *testing.T) {
	fsys := contentFS()
	components := fetch.Sub(&fetch.FSSource{FS: fsys}, "components")
	svc := newSiteService(t, fsys, components)
	data := &failFirst{Source: &fetch.FSSource{FS: fsys}}
	svc.awards = NewAwardService(awards.NewLoader(data, "awards-achievements/awards-data.json", nil))
	ctx := context.Background()

	out, err := svc.Render(ctx, "awards-achievements", "")
	require.NoError(t, err)
	assert.Contains(t, string(out), "Sample Award")
	assert.EqualValues(t, 1, data.calls.Load(), "one fetch per render")

	out, err = svc.Render(ctx, "awards-achievements", "")
	require.NoError(t, err)
	assert.NotContains(t, string(out), "Sample Award")
	assert.Contains(t, string(out), "Hackathon")
	assert.EqualValues(t, 2, data.calls.Load())

	_, err = svc.Render(ctx, "awards-achievements", "")
	require.NoError(t, err)
	assert.EqualValues(t, 2, data.calls.Load())
}
