package dom_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/notemark/core/dom"
)

// find returns the first element with the given tag in document order.
func find(n dom.Node, tag string) dom.Node {
	if n.Kind() == dom.ElementNode && n.Tag() == tag {
		return n
	}
	for _, c := range n.Children() {
		if found := find(c, tag); found.Valid() {
			return found
		}
	}
	return dom.Node{}
}

func TestParse_WrapsFragment(t *testing.T) {
	tree, err := dom.ParseString(`<p>hello</p>`)
	require.NoError(t, err)

	root := tree.Root()
	assert.Equal(t, dom.DocumentNode, root.Kind())
	assert.False(t, root.Parent().Valid())

	body := find(root, "body")
	require.True(t, body.Valid())
	assert.Equal(t, "html", body.ParentTag())

	p := find(root, "p")
	require.True(t, p.Valid())
	assert.Equal(t, "body", p.ParentTag())
	assert.Equal(t, "hello", p.FirstChild().Text())
	assert.Equal(t, dom.TextNode, p.FirstChild().Kind())
}

func TestParse_DropsDoctype(t *testing.T) {
	tree, err := dom.ParseString(`<!DOCTYPE html><html><body><p>x</p></body></html>`)
	require.NoError(t, err)

	for _, c := range tree.Root().Children() {
		assert.Equal(t, dom.ElementNode, c.Kind(), "unexpected root child %s", c.Kind())
	}
}

func TestParse_KeepsComments(t *testing.T) {
	tree, err := dom.ParseString(`<div><!-- note -->text</div>`)
	require.NoError(t, err)

	div := find(tree.Root(), "div")
	children := div.Children()
	require.Len(t, children, 2)
	assert.Equal(t, dom.OtherNode, children[0].Kind())
	assert.Equal(t, dom.TextNode, children[1].Kind())
}

func TestNode_Attributes(t *testing.T) {
	tree, err := dom.ParseString(`<a HREF="https://e.com" title="t">x</a>`)
	require.NoError(t, err)

	a := find(tree.Root(), "a")
	require.True(t, a.Valid())

	href, ok := a.Attr("href")
	assert.True(t, ok)
	assert.Equal(t, "https://e.com", href)

	_, ok = a.Attr("rel")
	assert.False(t, ok)

	assert.Equal(t, []dom.Attr{{Name: "href", Value: "https://e.com"}, {Name: "title", Value: "t"}}, a.Attrs())
}

func TestNode_SiblingQueries(t *testing.T) {
	tree, err := dom.ParseString("<ol>\n<li>a</li>\n<li>b</li>\n<!-- x -->\n<li>c</li></ol>")
	require.NoError(t, err)

	ol := find(tree.Root(), "ol")
	var items []dom.Node
	for _, c := range ol.Children() {
		if c.Tag() == "li" {
			items = append(items, c)
		}
	}
	require.Len(t, items, 3)

	assert.Equal(t, 0, items[0].PrecedingSiblings("li"))
	assert.Equal(t, 1, items[1].PrecedingSiblings("li"))
	assert.Equal(t, 2, items[2].PrecedingSiblings("li"))

	// whitespace text nodes sit between the items
	assert.Equal(t, 1, items[0].Index())
	assert.Equal(t, ol.ID(), items[2].Parent().ID())
}

func TestNode_ZeroValue(t *testing.T) {
	var n dom.Node
	assert.False(t, n.Valid())
	assert.Equal(t, dom.NoNode, n.ID())
	assert.Empty(t, n.Tag())
	assert.Nil(t, n.Children())
	assert.False(t, n.FirstChild().Valid())
	assert.Equal(t, -1, n.Index())
	assert.Equal(t, 0, n.PrecedingSiblings("li"))
}

func TestTree_NodeLookup(t *testing.T) {
	tree, err := dom.ParseString(`<em>x</em>`)
	require.NoError(t, err)

	assert.True(t, tree.Node(0).Valid())
	assert.False(t, tree.Node(dom.NodeID(tree.Len())).Valid())
	assert.False(t, tree.Node(dom.NoNode).Valid())
}
