package dom

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html/atom"
)

func TestFindAndClasses(t *testing.T) {
	doc, err := ParseString(`<html><body><div id="x" class="a b"><a href="/one">1</a><a href="/two" class="active">2</a></div></body></html>`)
	require.NoError(t, err)

	div := FindFirst(doc, ByID("x"))
	require.NotNil(t, div)
	assert.True(t, HasClass(div, "b"))

	AddClass(div, "c")
	RemoveClass(div, "a")
	assert.Equal(t, []string{"b", "c"}, Classes(div))

	anchors := FindAll(doc, ByTag(atom.A))
	require.Len(t, anchors, 2)
	RemoveClass(anchors[1], "active")
	v, ok := Attr(anchors[1], "class")
	assert.True(t, ok)
	assert.Equal(t, "", v)
}

func TestReplaceWith(t *testing.T) {
	doc, err := ParseString(`<html><body><p>before</p><div id="placeholder"></div><p>after</p></body></html>`)
	require.NoError(t, err)

	nodes, err := ParseFragment(`<nav>one</nav><aside>two</aside>`)
	require.NoError(t, err)
	ReplaceWith(FindFirst(doc, ByID("placeholder")), nodes...)

	out, err := Render(Body(doc))
	require.NoError(t, err)
	assert.Equal(t, `<body><p>before</p><nav>one</nav><aside>two</aside><p>after</p></body>`, out)
}

func TestReplaceChildrenAndPrepend(t *testing.T) {
	doc, err := ParseString(`<html><body><div id="box"><span>old</span></div></body></html>`)
	require.NoError(t, err)

	box := FindFirst(doc, ByID("box"))
	ReplaceChildren(box, Text("new"))
	Prepend(Body(doc), Element(atom.Header, "class", "top"))

	out, err := Render(Body(doc))
	require.NoError(t, err)
	assert.Equal(t, `<body><header class="top"></header><div id="box">new</div></body>`, out)
	assert.Equal(t, "new", TextContent(box))
}
