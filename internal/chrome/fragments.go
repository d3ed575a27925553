// Package chrome assembles the shared navbar and footer into pages:
// loading the fragments (or generating a fallback), injecting them,
// rewriting their URLs for the page depth and marking the active link.
package chrome

import "mime"

// Kind names a chrome component
type Kind string

const (
	KindNavbar Kind = "navbar"
	KindFooter Kind = "footer"
)

// Files returns the fragment file names of the kind
func (k Kind) Files() (htmlFile, cssFile, jsFile string) {
	return string(k) + ".html", string(k) + ".css", string(k) + ".js"
}

// Fragments is one loaded set of chrome markup, styles and behaviour.
// Values returned by a Loader are shared and must not be modified.
type Fragments struct {
	Kind     Kind
	HTML     string
	CSS      string
	JS       string
	Fallback bool
}

// File returns the fragment stored under name (e.g. "navbar.css") and its
// content type.
func (f *Fragments) File(name string) (content, contentType string, ok bool) {
	htmlFile, cssFile, jsFile := f.Kind.Files()
	switch name {
	case htmlFile:
		return f.HTML, mime.TypeByExtension(".html"), true
	case cssFile:
		return f.CSS, mime.TypeByExtension(".css"), true
	case jsFile:
		return f.JS, mime.TypeByExtension(".js"), true
	}
	return "", "", false
}
