// Package markdown converts an HTML document tree into canonical Markdown.
//
// A Converter owns a read-only table of element handlers keyed by tag name.
// Conversion walks the tree depth first: text is copied verbatim, elements
// are handed to their handler (or rendered transparently when no handler is
// registered) and every handler renders its content by calling back into
// WalkChildren. Text is not escaped, so Markdown metacharacters present in the
// source pass through unchanged.
package markdown

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/gaurav-prasanna/notemark/core/dom"
)

// Handler renders one kind of element. Implementations emit their markers
// into out and call c.WalkChildren to render the element's content.
type Handler interface {
	Handle(c *Converter, n dom.Node, attrs []dom.Attr, out *strings.Builder, depth int)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc func(c *Converter, n dom.Node, attrs []dom.Attr, out *strings.Builder, depth int)

// Handle calls f.
func (f HandlerFunc) Handle(c *Converter, n dom.Node, attrs []dom.Attr, out *strings.Builder, depth int) {
	f(c, n, attrs, out, depth)
}

// Converter turns HTML into Markdown. It holds no per-call state and is safe
// for concurrent use once constructed.
type Converter struct {
	handlers map[string]Handler
	log      *zap.Logger
}

// Option configures a Converter at construction time.
type Option func(*Converter)

// WithLogger sets the logger used for debug tracing of unhandled elements.
func WithLogger(log *zap.Logger) Option {
	return func(c *Converter) {
		if log != nil {
			c.log = log.Named("markdown")
		}
	}
}

// WithHandler registers h for tag, replacing any default handler.
func WithHandler(tag string, h Handler) Option {
	return func(c *Converter) {
		c.handlers[strings.ToLower(tag)] = h
	}
}

// New creates a Converter with the default handler registry.
func New(opts ...Option) *Converter {
	c := &Converter{
		handlers: defaultHandlers(),
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert parses html and returns its Markdown rendering with surrounding
// whitespace trimmed. It fails only when the document cannot be parsed.
func Convert(html string) (string, error) {
	return New().Convert(html)
}

// Convert parses html and returns its Markdown rendering.
func (c *Converter) Convert(html string) (string, error) {
	tree, err := dom.ParseString(html)
	if err != nil {
		return "", fmt.Errorf("converting to markdown: %w", err)
	}
	return c.Render(tree), nil
}

// Render walks an already parsed tree.
func (c *Converter) Render(tree *dom.Tree) string {
	var out strings.Builder
	out.Grow(tree.Len() * 8)
	c.walk(tree.Root(), &out, 0)
	return strings.TrimSpace(out.String())
}

// Handles reports whether tag has a registered handler.
func (c *Converter) Handles(tag string) bool {
	_, ok := c.handlers[strings.ToLower(tag)]
	return ok
}

// WalkChildren renders the children of n, in document order, one level deeper.
func (c *Converter) WalkChildren(n dom.Node, out *strings.Builder, depth int) {
	for _, child := range n.Children() {
		c.walk(child, out, depth+1)
	}
}

func (c *Converter) walk(n dom.Node, out *strings.Builder, depth int) {
	switch n.Kind() {
	case dom.TextNode:
		if text := n.Text(); strings.TrimSpace(text) != "" {
			out.WriteString(text)
		}
	case dom.ElementNode:
		if h, ok := c.handlers[n.Tag()]; ok {
			h.Handle(c, n, n.Attrs(), out, depth)
			return
		}
		if ce := c.log.Check(zap.DebugLevel, "No handler for element, rendering children"); ce != nil {
			ce.Write(zap.String("tag", n.Tag()), zap.Int("depth", depth))
		}
		c.WalkChildren(n, out, depth)
	default:
		c.WalkChildren(n, out, depth)
	}
}
