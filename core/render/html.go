package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"
	xhtml "golang.org/x/net/html"

	"github.com/gaurav-prasanna/notemark/core"
)

// Options tune the renderers that go through goldmark.
type Options struct {
	// Typographer turns straight quotes and dashes into typographic ones.
	Typographer bool
	// UnsafeHTML passes raw HTML such as <u> through to the output.
	UnsafeHTML bool
	// Standalone wraps rendered HTML in a complete document.
	Standalone bool
	// FrontMatter prefixes Markdown output with a YAML metadata block.
	FrontMatter bool
}

// newGoldmark builds a parser and renderer for note Markdown: GFM, footnotes
// and ==highlights==.
func newGoldmark(opts Options) goldmark.Markdown {
	exts := []goldmark.Extender{extension.GFM, extension.Footnote, Highlight}
	if opts.Typographer {
		exts = append(exts, extension.Typographer)
	}

	var rendererOpts []goldmark.Option
	if opts.UnsafeHTML {
		rendererOpts = append(rendererOpts, goldmark.WithRendererOptions(html.WithUnsafe()))
	}

	return goldmark.New(append(rendererOpts,
		goldmark.WithExtensions(exts...),
		goldmark.WithParserOptions(parser.WithAutoHeadingID()),
	)...)
}

// HTMLRenderer converts note Markdown into HTML.
type HTMLRenderer struct {
	md         goldmark.Markdown
	standalone bool
}

// NewHTMLRenderer creates an HTMLRenderer.
func NewHTMLRenderer(opts Options) *HTMLRenderer {
	return &HTMLRenderer{md: newGoldmark(opts), standalone: opts.Standalone}
}

// Render converts Markdown into an HTML fragment, or a full page when standalone.
func (r *HTMLRenderer) Render(markdown string, meta core.NoteMetadata) ([]byte, error) {
	var body bytes.Buffer
	if err := r.md.Convert([]byte(markdown), &body); err != nil {
		return nil, fmt.Errorf("rendering HTML: %w", err)
	}
	if !r.standalone {
		return body.Bytes(), nil
	}

	var page bytes.Buffer
	page.WriteString("<!DOCTYPE html>\n<html>\n<head>\n<meta charset=\"utf-8\">\n")
	if meta.Title != "" {
		page.WriteString("<title>" + xhtml.EscapeString(meta.Title) + "</title>\n")
	}
	if meta.Source != "" {
		page.WriteString("<meta name=\"source\" content=\"" + xhtml.EscapeString(meta.Source) + "\">\n")
	}
	page.WriteString("</head>\n<body>\n")
	page.Write(body.Bytes())
	page.WriteString("</body>\n</html>\n")
	return page.Bytes(), nil
}

// Extension returns the file extension for HTML output.
func (r *HTMLRenderer) Extension() string {
	return ".html"
}
