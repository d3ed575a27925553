package chrome

import (
	"regexp"
	"strings"
)

// NormalizePath gives a request path a leading slash and turns directory
// paths into their index.html page.
func NormalizePath(p string) string {
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if p != "/" && strings.HasSuffix(p, "/") {
		p += "index.html"
	}
	return p
}

// Depth returns how many directories below the site root a page sits.
// "/" and "/index.html" are depth 0, "/career-objective/index.html" is 1.
func Depth(pagePath string) int {
	var n int
	for _, seg := range strings.Split(NormalizePath(pagePath), "/") {
		if seg != "" {
			n++
		}
	}
	if n <= 1 {
		return 0
	}
	return n - 1
}

// Resolver turns site-root relative URLs found in chrome fragments into
// URLs that work from a given page.
type Resolver struct {
	// Root, when set, is used as the prefix for every page and depth
	// detection is skipped.
	Root string
	// Relative makes root-level pages use relative links too, so an
	// exported tree can be opened from any location.
	Relative bool
}

// Prefix returns what is put in front of a root-relative URL on pagePath
func (r Resolver) Prefix(pagePath string) string {
	if r.Root != "" {
		if strings.HasSuffix(r.Root, "/") {
			return r.Root
		}
		return r.Root + "/"
	}
	return strings.Repeat("../", Depth(pagePath))
}

// URL rewrites ref for pagePath. Anchors, external and data URLs, and refs
// that already climb with ../ are returned unchanged.
func (r Resolver) URL(ref, pagePath string) string {
	if skipURL(ref) {
		return ref
	}
	trimmed := strings.TrimPrefix(strings.TrimPrefix(ref, "./"), "/")
	prefix := r.Prefix(pagePath)

	if prefix == "" {
		if !r.Relative {
			return ref
		}
		if trimmed == "" {
			return "./"
		}
		return trimmed
	}
	return prefix + trimmed
}

var cssURL = regexp.MustCompile(`url\(\s*['"]?([^'")\s]+)['"]?\s*\)`)

// CSS rewrites url(...) references in a stylesheet for pagePath
func (r Resolver) CSS(css, pagePath string) string {
	return cssURL.ReplaceAllStringFunc(css, func(match string) string {
		ref := cssURL.FindStringSubmatch(match)[1]
		rewritten := r.URL(ref, pagePath)
		if rewritten == ref {
			return match
		}
		return `url("` + rewritten + `")`
	})
}

func skipURL(ref string) bool {
	if ref == "" {
		return true
	}
	for _, p := range []string{"#", "http:", "https:", "//", "mailto:", "tel:", "data:", "javascript:", "../"} {
		if strings.HasPrefix(ref, p) {
			return true
		}
	}
	return false
}
