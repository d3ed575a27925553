package chrome

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"lechatnoir.dev/internal/dom"
	"lechatnoir.dev/internal/models"
)

// ActiveClass marks the link of the current page
const ActiveClass = "active"

// MarkActive clears the active class from every anchor, then sets it on
// each anchor whose href contains the current page path. The root page
// activates no anchor. Mobile bottom-nav sections holding an active link
// are activated too, and the home section on the root page. It returns
// the number of active anchors.
func MarkActive(doc *html.Node, pagePath string) int {
	current := strings.TrimPrefix(NormalizePath(pagePath), "/")
	isRoot := current == "" || current == "index.html"

	count := 0
	for _, a := range dom.FindAll(doc, dom.ByTag(atom.A)) {
		dom.RemoveClass(a, ActiveClass)
		if isRoot {
			continue
		}
		if href, ok := dom.Attr(a, "href"); ok && strings.Contains(href, current) {
			dom.AddClass(a, ActiveClass)
			count++
		}
	}

	for _, item := range dom.FindAll(doc, dom.ByAttr("data-section")) {
		section, _ := dom.Attr(item, "data-section")
		active := false
		if isRoot {
			active = section == models.SectionHome
		} else {
			active = containsActive(item)
			if bubble := dom.FindFirst(doc, dom.ByID(section+"-submenu")); !active && bubble != nil {
				active = containsActive(bubble)
			}
		}
		if active {
			dom.AddClass(item, ActiveClass)
		} else {
			dom.RemoveClass(item, ActiveClass)
		}
	}

	return count
}

func containsActive(n *html.Node) bool {
	return dom.FindFirst(n, func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == atom.A && dom.HasClass(n, ActiveClass)
	}) != nil
}
