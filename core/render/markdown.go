// Package render provides output renderers for the notemark pipeline.
// This file implements the Markdown renderer, a passthrough with optional
// YAML front matter.
package render

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/notemark/core"
)

// MarkdownRenderer writes Markdown as-is. It's the simplest renderer
// since Markdown is already the canonical pipeline format.
type MarkdownRenderer struct {
	frontMatter bool
}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer(opts Options) *MarkdownRenderer {
	return &MarkdownRenderer{frontMatter: opts.FrontMatter}
}

type frontMatter struct {
	Title       string `yaml:"title,omitempty"`
	Source      string `yaml:"source,omitempty"`
	Engine      string `yaml:"engine,omitempty"`
	ConvertedAt string `yaml:"converted_at,omitempty"`
}

// Render returns the Markdown as bytes, ending in a newline.
func (r *MarkdownRenderer) Render(markdown string, meta core.NoteMetadata) ([]byte, error) {
	var buf bytes.Buffer
	if r.frontMatter {
		data, err := yaml.Marshal(frontMatter{
			Title:       meta.Title,
			Source:      meta.Source,
			Engine:      meta.Engine,
			ConvertedAt: meta.ConvertedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(data)
		buf.WriteString("---\n\n")
	}
	buf.WriteString(markdown)
	if markdown != "" {
		buf.WriteByte('\n')
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}
