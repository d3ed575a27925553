// Package dom holds small helpers over golang.org/x/net/html trees:
// lookups by id/tag/class, class list edits and fragment parsing.
package dom

import (
	"bytes"
	"io"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Matcher selects nodes during a walk
type Matcher func(*html.Node) bool

// Parse parses a full HTML document. The result always has head and body.
func Parse(r io.Reader) (*html.Node, error) {
	return html.Parse(r)
}

// ParseString parses a full HTML document from s
func ParseString(s string) (*html.Node, error) {
	return html.Parse(strings.NewReader(s))
}

// ParseFragment parses markup as if it were the content of a <body>
func ParseFragment(markup string) ([]*html.Node, error) {
	context := &html.Node{Type: html.ElementNode, Data: "body", DataAtom: atom.Body}
	return html.ParseFragment(strings.NewReader(markup), context)
}

// Render serializes n
func Render(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}

// FindFirst returns the first node in document order matching m
func FindFirst(n *html.Node, m Matcher) *html.Node {
	if m(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := FindFirst(c, m); found != nil {
			return found
		}
	}
	return nil
}

// FindAll returns every node matching m, in document order
func FindAll(n *html.Node, m Matcher) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if m(n) {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return out
}

// ByID matches the element with the given id attribute
func ByID(id string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, "id")
		return n.Type == html.ElementNode && ok && v == id
	}
}

// ByTag matches elements of the given tag
func ByTag(a atom.Atom) Matcher {
	return func(n *html.Node) bool {
		return n.Type == html.ElementNode && n.DataAtom == a
	}
}

// ByAttr matches elements carrying key, whatever its value
func ByAttr(key string) Matcher {
	return func(n *html.Node) bool {
		_, ok := Attr(n, key)
		return n.Type == html.ElementNode && ok
	}
}

// ByAttrValue matches elements where key equals value
func ByAttrValue(key, value string) Matcher {
	return func(n *html.Node) bool {
		v, ok := Attr(n, key)
		return n.Type == html.ElementNode && ok && v == value
	}
}

// Head returns the document head, or nil
func Head(doc *html.Node) *html.Node {
	return FindFirst(doc, ByTag(atom.Head))
}

// Body returns the document body, or nil
func Body(doc *html.Node) *html.Node {
	return FindFirst(doc, ByTag(atom.Body))
}

// Attr returns the value of key on n
func Attr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

// SetAttr sets key to val, adding the attribute if needed
func SetAttr(n *html.Node, key, val string) {
	for i := range n.Attr {
		if n.Attr[i].Namespace == "" && n.Attr[i].Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

// Classes returns the class list of n
func Classes(n *html.Node) []string {
	v, _ := Attr(n, "class")
	return strings.Fields(v)
}

// HasClass reports whether n carries class c
func HasClass(n *html.Node, c string) bool {
	for _, have := range Classes(n) {
		if have == c {
			return true
		}
	}
	return false
}

// AddClass adds c to the class list of n
func AddClass(n *html.Node, c string) {
	if HasClass(n, c) {
		return
	}
	SetAttr(n, "class", strings.TrimSpace(strings.Join(append(Classes(n), c), " ")))
}

// RemoveClass removes c from the class list of n. The class attribute is
// kept (possibly empty) only if it was there before.
func RemoveClass(n *html.Node, c string) {
	if !HasClass(n, c) {
		return
	}
	var keep []string
	for _, have := range Classes(n) {
		if have != c {
			keep = append(keep, have)
		}
	}
	SetAttr(n, "class", strings.Join(keep, " "))
}

// Element builds a detached element with the given attributes (key, value pairs)
func Element(a atom.Atom, attrs ...string) *html.Node {
	n := &html.Node{Type: html.ElementNode, Data: a.String(), DataAtom: a}
	for i := 0; i+1 < len(attrs); i += 2 {
		n.Attr = append(n.Attr, html.Attribute{Key: attrs[i], Val: attrs[i+1]})
	}
	return n
}

// Text builds a detached text node
func Text(s string) *html.Node {
	return &html.Node{Type: html.TextNode, Data: s}
}

// ReplaceChildren drops the children of n and appends nodes
func ReplaceChildren(n *html.Node, nodes ...*html.Node) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	for _, child := range nodes {
		n.AppendChild(child)
	}
}

// ReplaceWith puts nodes where n is and detaches n
func ReplaceWith(n *html.Node, nodes ...*html.Node) {
	parent := n.Parent
	if parent == nil {
		return
	}
	for _, child := range nodes {
		parent.InsertBefore(child, n)
	}
	parent.RemoveChild(n)
}

// Prepend inserts nodes, in order, before the first child of n
func Prepend(n *html.Node, nodes ...*html.Node) {
	first := n.FirstChild
	for _, child := range nodes {
		n.InsertBefore(child, first)
	}
}

// TextContent concatenates all text beneath n
func TextContent(n *html.Node) string {
	var sb strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)
	return sb.String()
}
