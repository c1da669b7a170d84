package markdown

import (
	"strings"

	"github.com/gaurav-prasanna/notemark/core/dom"
)

// wrap surrounds the content with a fixed marker pair. Underline uses literal
// <u></u> since Markdown has no underline syntax.
type wrap struct {
	prefix, suffix string
}

func (w wrap) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	out.WriteString(w.prefix)
	c.WalkChildren(n, out, depth)
	out.WriteString(w.suffix)
}

type link struct{}

func (link) Handle(c *Converter, n dom.Node, attrs []dom.Attr, out *strings.Builder, depth int) {
	out.WriteByte('[')
	c.WalkChildren(n, out, depth)
	out.WriteString("](")
	if href, ok := dom.Lookup(attrs, "href"); ok {
		out.WriteString(href)
	}
	out.WriteByte(')')
}

// span applies at most one emphasis derived from its inline style.
type span struct{}

func (span) Handle(c *Converter, n dom.Node, attrs []dom.Attr, out *strings.Builder, depth int) {
	if style, ok := dom.Lookup(attrs, "style"); ok {
		if prefix, suffix, ok := ParseStyle(style).Markers(); ok {
			out.WriteString(prefix)
			c.WalkChildren(n, out, depth)
			out.WriteString(suffix)
			return
		}
	}
	c.WalkChildren(n, out, depth)
}
