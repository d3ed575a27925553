package chrome

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lechatnoir.dev/internal/dom"
)

// Element ids and attributes the injector looks for
const (
	NavbarPlaceholderID = "navbar-placeholder"
	FooterPlaceholderID = "footer-placeholder"
	NavbarStylesID      = "navbar-styles"
	NavbarScriptID      = "navbar-script"
	ChromeAttr          = "data-chrome"
)

// Injector places loaded fragments into parsed documents
type Injector struct {
	Resolver Resolver
	Logger   *zap.Logger
}

func (in *Injector) logger() *zap.Logger {
	if in.Logger == nil {
		return zap.NewNop()
	}
	return in.Logger
}

// Navbar injects the navbar styles into <head>, replaces the navbar
// placeholder (or prepends to <body>) and appends the navbar script.
// Each part is skipped when it is already present.
func (in *Injector) Navbar(doc *html.Node, frag *Fragments, pagePath string) error {
	head, body := dom.Head(doc), dom.Body(doc)

	if head == nil {
		in.logger().Debug("document has no head, skipping navbar styles", zap.String("page", pagePath))
	} else if dom.FindFirst(doc, dom.ByID(NavbarStylesID)) == nil && frag.CSS != "" {
		style := dom.Element(atom.Style, "id", NavbarStylesID)
		style.AppendChild(dom.Text(in.Resolver.CSS(frag.CSS, pagePath)))
		head.AppendChild(style)
	}

	if dom.FindFirst(doc, dom.ByAttrValue(ChromeAttr, string(KindNavbar))) == nil {
		nodes, err := in.parse(frag, pagePath)
		if err != nil {
			return err
		}
		if placeholder := dom.FindFirst(doc, dom.ByID(NavbarPlaceholderID)); placeholder != nil {
			dom.ReplaceWith(placeholder, nodes...)
		} else if body != nil {
			in.logger().Debug("no navbar placeholder, inserting at start of body", zap.String("page", pagePath))
			dom.Prepend(body, nodes...)
		} else {
			in.logger().Debug("document has no body, skipping navbar", zap.String("page", pagePath))
		}
	}

	if body != nil && dom.FindFirst(doc, dom.ByID(NavbarScriptID)) == nil && frag.JS != "" {
		script := dom.Element(atom.Script, "id", NavbarScriptID)
		script.AppendChild(dom.Text(frag.JS))
		body.AppendChild(script)
	}

	return nil
}

// Footer injects the footer into the footer placeholder (or appends it to
// <body>) and links footer.css and footer.js. It is a no-op when the page
// already links footer.css.
func (in *Injector) Footer(doc *html.Node, frag *Fragments, pagePath string) error {
	head, body := dom.Head(doc), dom.Body(doc)

	if hasFooterCSS(doc) || dom.FindFirst(doc, dom.ByAttrValue(ChromeAttr, string(KindFooter))) != nil {
		in.logger().Debug("footer already injected", zap.String("page", pagePath))
		return nil
	}

	nodes, err := in.parse(frag, pagePath)
	if err != nil {
		return err
	}
	if placeholder := dom.FindFirst(doc, dom.ByID(FooterPlaceholderID)); placeholder != nil {
		dom.ReplaceChildren(placeholder, nodes...)
	} else if body != nil {
		in.logger().Debug("no footer placeholder, appending to body", zap.String("page", pagePath))
		for _, n := range nodes {
			body.AppendChild(n)
		}
	} else {
		in.logger().Debug("document has no body, skipping footer", zap.String("page", pagePath))
		return nil
	}

	_, cssFile, jsFile := KindFooter.Files()
	if head != nil {
		head.AppendChild(dom.Element(atom.Link,
			"rel", "stylesheet",
			"type", "text/css",
			"href", in.Resolver.URL("/components/"+cssFile, pagePath),
		))
	}
	if body != nil && !hasScript(doc, jsFile) {
		body.AppendChild(dom.Element(atom.Script,
			"type", "text/javascript",
			"src", in.Resolver.URL("/components/"+jsFile, pagePath),
		))
	}

	return nil
}

// parse turns the fragment markup into detached nodes with rewritten URLs,
// tagging top-level elements with the chrome kind.
func (in *Injector) parse(frag *Fragments, pagePath string) ([]*html.Node, error) {
	nodes, err := dom.ParseFragment(frag.HTML)
	if err != nil {
		return nil, fmt.Errorf("parsing %s fragment: %w", frag.Kind, err)
	}
	for _, n := range nodes {
		if n.Type == html.ElementNode {
			dom.SetAttr(n, ChromeAttr, string(frag.Kind))
		}
		in.rewrite(n, pagePath)
	}
	return nodes, nil
}

func (in *Injector) rewrite(n *html.Node, pagePath string) {
	for _, el := range dom.FindAll(n, func(n *html.Node) bool { return n.Type == html.ElementNode }) {
		for i := range el.Attr {
			switch el.Attr[i].Key {
			case "href", "src":
				el.Attr[i].Val = in.Resolver.URL(el.Attr[i].Val, pagePath)
			}
		}
		if el.DataAtom == atom.Style {
			for c := el.FirstChild; c != nil; c = c.NextSibling {
				if c.Type == html.TextNode {
					c.Data = in.Resolver.CSS(c.Data, pagePath)
				}
			}
		}
	}
}

func hasFooterCSS(doc *html.Node) bool {
	_, cssFile, _ := KindFooter.Files()
	return dom.FindFirst(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Link {
			return false
		}
		href, _ := dom.Attr(n, "href")
		return strings.Contains(href, cssFile)
	}) != nil
}

func hasScript(doc *html.Node, file string) bool {
	return dom.FindFirst(doc, func(n *html.Node) bool {
		if n.Type != html.ElementNode || n.DataAtom != atom.Script {
			return false
		}
		src, _ := dom.Attr(n, "src")
		return strings.Contains(src, file)
	}) != nil
}
