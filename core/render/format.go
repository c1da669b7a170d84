package render

import (
	"fmt"

	"github.com/gaurav-prasanna/notemark/core"
)

// Format names an output renderer.
type Format string

const (
	FormatMarkdown Format = "markdown"
	FormatHTML     Format = "html"
	FormatJSON     Format = "json"
	FormatPDF      Format = "pdf"
)

// For creates the Renderer for the format.
func For(format Format, opts Options) (core.Renderer, error) {
	switch format {
	case FormatMarkdown, "":
		return NewMarkdownRenderer(opts), nil
	case FormatHTML:
		return NewHTMLRenderer(opts), nil
	case FormatJSON:
		return NewJSONRenderer(opts), nil
	case FormatPDF:
		return NewPDFRenderer(), nil
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
}
