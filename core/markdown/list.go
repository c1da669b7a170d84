package markdown

import (
	"strconv"
	"strings"

	"github.com/gaurav-prasanna/notemark/core/dom"
)

// ListBaselineDepth is the list depth of an item in a top-level list:
// document(0) > html(1) > body(2) > ul(3) > li(4). Each enclosing item adds
// two levels (li > ul), so items deeper than this are indented. Wrappers and
// quotes around a list do not count.
const ListBaselineDepth = 4

// listIndent is emitted once per list depth level past ListBaselineDepth.
// One nesting level adds two levels, i.e. four spaces, which keeps nested
// items inside both "- " and "N. " parents.
const listIndent = "  "

// list frames ul and ol alike; the item handler picks the marker.
type list struct{}

func (list) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	out.WriteByte('\n')
	c.WalkChildren(n, out, depth)
	out.WriteByte('\n')
}

type listItem struct{}

func (listItem) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	if indent := listDepth(n) - ListBaselineDepth; indent > 0 {
		out.WriteString(strings.Repeat(listIndent, indent))
	}
	out.WriteString(itemMarker(n))
	c.WalkChildren(n, out, depth)
	out.WriteByte('\n')
}

// listDepth places n relative to the outermost list item above it.
func listDepth(n dom.Node) int {
	depth := ListBaselineDepth
	for p := n.Parent(); p.Valid(); p = p.Parent() {
		if p.Kind() == dom.ElementNode && p.Tag() == "li" {
			depth += 2
		}
	}
	return depth
}

// itemMarker numbers ordered items by their position among the li siblings;
// a start attribute on the list is ignored.
func itemMarker(n dom.Node) string {
	if n.ParentTag() != "ol" {
		return "- "
	}
	return strconv.Itoa(n.PrecedingSiblings("li")+1) + ". "
}
