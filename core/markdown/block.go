package markdown

import (
	"strings"

	"github.com/gaurav-prasanna/notemark/core/dom"
)

const (
	fence          = "```"
	languagePrefix = "language-"
)

// paragraph frames its content with newlines, except directly inside a list
// item where the text has to stay on the marker's line.
type paragraph struct{}

func (paragraph) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	if n.ParentTag() == "li" {
		c.WalkChildren(n, out, depth)
		return
	}
	out.WriteByte('\n')
	c.WalkChildren(n, out, depth)
	out.WriteByte('\n')
}

// heading leaves block separation after the title to the following element.
type heading struct {
	level int
}

func (h heading) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	out.WriteByte('\n')
	out.WriteString(strings.Repeat("#", h.level))
	out.WriteByte(' ')
	c.WalkChildren(n, out, depth)
}

// blockquote renders its content into a scratch buffer so nested blocks are
// complete before every line gets its "> " prefix.
type blockquote struct{}

func (blockquote) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	if out.Len() > 0 && !strings.HasSuffix(out.String(), "\n") {
		out.WriteByte('\n')
	}

	var quote strings.Builder
	c.WalkChildren(n, &quote, depth)

	content := strings.TrimSpace(quote.String())
	if content == "" {
		return
	}
	for _, line := range strings.Split(content, "\n") {
		out.WriteString("> ")
		out.WriteString(strings.TrimSuffix(line, "\r"))
		out.WriteByte('\n')
	}
}

// codeBlock turns pre/code into a fenced block. The code text is copied raw:
// highlighter markup inside it is flattened to its text. A pre without a code
// element adds no markup of its own.
type codeBlock struct{}

func (codeBlock) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	code := firstContentChild(n)
	if !code.Valid() {
		return
	}
	if code.Kind() != dom.ElementNode || code.Tag() != "code" {
		c.WalkChildren(n, out, depth)
		return
	}

	var text strings.Builder
	rawText(code, &text)

	out.WriteByte('\n')
	out.WriteString(fence)
	out.WriteString(codeLanguage(code.Attrs()))
	out.WriteByte('\n')
	out.WriteString(text.String())
	if !strings.HasSuffix(text.String(), "\n") {
		out.WriteByte('\n')
	}
	out.WriteString(fence)
	out.WriteByte('\n')
}

// firstContentChild skips the whitespace that source formatting leaves
// between pre and code.
func firstContentChild(n dom.Node) dom.Node {
	for _, child := range n.Children() {
		if child.Kind() == dom.TextNode && strings.TrimSpace(child.Text()) == "" {
			continue
		}
		return child
	}
	return dom.Node{}
}

// codeLanguage returns XXX from the first "language-XXX" class.
func codeLanguage(attrs []dom.Attr) string {
	for _, a := range attrs {
		if a.Name != "class" {
			continue
		}
		for _, class := range strings.Fields(a.Value) {
			if lang, ok := strings.CutPrefix(class, languagePrefix); ok && lang != "" {
				return lang
			}
		}
	}
	return ""
}

func rawText(n dom.Node, out *strings.Builder) {
	for _, c := range n.Children() {
		switch c.Kind() {
		case dom.TextNode:
			out.WriteString(c.Text())
		case dom.ElementNode:
			if c.Tag() == "br" {
				out.WriteByte('\n')
				continue
			}
			rawText(c, out)
		}
	}
}

type rule struct{}

func (rule) Handle(c *Converter, n dom.Node, _ []dom.Attr, out *strings.Builder, depth int) {
	out.WriteString("\n---")
	c.WalkChildren(n, out, depth)
	out.WriteByte('\n')
}
