// JSON renderer.
// Builds the structured JSON output from Markdown and note metadata.
// The outline comes from the goldmark AST, so it sees exactly what the HTML
// renderer sees: headings, links, code blocks, tasks, quotes and tables.
package render

import (
	"encoding/json"
	"fmt"
	"strings"

	gast "github.com/yuin/goldmark/ast"
	extast "github.com/yuin/goldmark/extension/ast"
	"github.com/yuin/goldmark/text"

	"github.com/gaurav-prasanna/notemark/core"
)

// JSONRenderer produces structured JSON output from Markdown.
type JSONRenderer struct {
	opts Options
}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer(opts Options) *JSONRenderer {
	return &JSONRenderer{opts: opts}
}

// Render converts Markdown and metadata into the note JSON document.
func (r *JSONRenderer) Render(markdown string, meta core.NoteMetadata) ([]byte, error) {
	outline, plain, err := Outline(markdown, r.opts)
	if err != nil {
		return nil, err
	}

	note := core.NoteJSON{
		Metadata: meta,
		Markdown: markdown,
		Text:     plain,
		Outline:  outline,
	}

	data, err := json.MarshalIndent(note, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return data, nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}

// Outline parses the Markdown and collects its structure along with a plain
// text rendition, one block per line.
func Outline(markdown string, opts Options) (core.NoteOutline, string, error) {
	source := []byte(markdown)
	doc := newGoldmark(opts).Parser().Parse(text.NewReader(source))

	outline := core.NoteOutline{
		Headings:   []core.Heading{},
		Links:      []core.Link{},
		CodeBlocks: []core.CodeBlock{},
		Tasks:      []core.Task{},
	}
	var blocks []string

	err := gast.Walk(doc, func(n gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}

		switch node := n.(type) {
		case *gast.Heading:
			t := plainText(node, source)
			outline.Headings = append(outline.Headings, core.Heading{Level: node.Level, Text: t})
			blocks = append(blocks, t)
			collectLinks(node, source, &outline)
			return gast.WalkSkipChildren, nil

		case *gast.Paragraph, *gast.TextBlock, *extast.TableCell:
			if t := plainText(node, source); t != "" {
				blocks = append(blocks, t)
			}
			collectLinks(node, source, &outline)
			return gast.WalkSkipChildren, nil

		case *gast.FencedCodeBlock:
			outline.CodeBlocks = append(outline.CodeBlocks, core.CodeBlock{
				Language: string(node.Language(source)),
				Lines:    node.Lines().Len(),
			})
			blocks = append(blocks, codeText(node, source))
			return gast.WalkSkipChildren, nil

		case *gast.CodeBlock:
			outline.CodeBlocks = append(outline.CodeBlocks, core.CodeBlock{Lines: node.Lines().Len()})
			blocks = append(blocks, codeText(node, source))
			return gast.WalkSkipChildren, nil

		case *gast.ListItem:
			outline.ListItems++
			if box := taskCheckBox(node); box != nil {
				outline.Tasks = append(outline.Tasks, core.Task{
					Text:    plainText(node.FirstChild(), source),
					Checked: box.IsChecked,
				})
			}

		case *gast.Blockquote:
			outline.Quotes++

		case *extast.Table:
			outline.Tables++
		}
		return gast.WalkContinue, nil
	})
	if err != nil {
		return core.NoteOutline{}, "", fmt.Errorf("walking markdown: %w", err)
	}
	return outline, strings.Join(blocks, "\n"), nil
}

func collectLinks(n gast.Node, source []byte, outline *core.NoteOutline) {
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch link := c.(type) {
		case *gast.Link:
			outline.Links = append(outline.Links, core.Link{Text: plainText(link, source), Href: string(link.Destination)})
			return gast.WalkSkipChildren, nil
		case *gast.AutoLink:
			url := string(link.URL(source))
			outline.Links = append(outline.Links, core.Link{Text: url, Href: url})
		}
		return gast.WalkContinue, nil
	})
}

// plainText concatenates the text under n, turning line breaks into spaces.
func plainText(n gast.Node, source []byte) string {
	if n == nil {
		return ""
	}
	var b strings.Builder
	_ = gast.Walk(n, func(c gast.Node, entering bool) (gast.WalkStatus, error) {
		if !entering {
			return gast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *gast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *gast.String:
			b.Write(t.Value)
		case *gast.AutoLink:
			b.Write(t.URL(source))
		}
		return gast.WalkContinue, nil
	})
	return strings.TrimSpace(b.String())
}

func codeText(n gast.Node, source []byte) string {
	var b strings.Builder
	lines := n.Lines()
	for i := 0; i < lines.Len(); i++ {
		seg := lines.At(i)
		b.Write(seg.Value(source))
	}
	return strings.TrimRight(b.String(), "\n")
}

func taskCheckBox(item *gast.ListItem) *extast.TaskCheckBox {
	first := item.FirstChild()
	if first == nil {
		return nil
	}
	box, _ := first.FirstChild().(*extast.TaskCheckBox)
	return box
}
