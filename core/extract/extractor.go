// Package extract implements the Extractor interface.
// It isolates the note body from a saved editor page by:
//  1. Removing noise elements (scripts, toolbars, form controls)
//  2. Rewriting the editor's line divs into paragraphs
//  3. Finding the best content container (the editor root, <main>, <article>, or <body>)
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"go.uber.org/zap"
)

// noiseSelectors are HTML elements removed before extraction.
// These contribute no meaningful content to the note text.
var noiseSelectors = []string{
	"script", "style", "noscript", "template",
	"iframe", "object", "embed",
	"form", "button", "input", "select", "textarea",
	"[role=toolbar]", "[aria-hidden=true]",
	".toolbar", ".menubar", ".editor-toolbar", ".bubble-menu", ".floating-menu",
}

// editorRoots match the contenteditable surface of common rich text editors,
// most specific first.
var editorRoots = []string{
	".ProseMirror",
	".tiptap",
	".ql-editor",
	"[contenteditable]:not([contenteditable=false])",
}

var editorRootMatchers = compileAll(editorRoots)

var editorLine = cascadia.MustCompile("div.editor-line, div.ql-line")

// HTMLExtractor strips editor chrome from HTML and returns the note fragment.
type HTMLExtractor struct {
	log *zap.Logger
}

// New creates an HTMLExtractor.
func New(log *zap.Logger) *HTMLExtractor {
	if log == nil {
		log = zap.NewNop()
	}
	return &HTMLExtractor{log: log.Named("extract")}
}

// Extract takes raw HTML and returns the inner HTML of the content root.
func (e *HTMLExtractor) Extract(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}

	// Remove noise elements first (operates on the whole document).
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	doc.FindMatcher(editorLine).Each(func(_ int, s *goquery.Selection) {
		s.Nodes[0].Data = "p"
		s.RemoveAttr("class")
	})

	content := e.root(doc)
	if content == nil {
		return "", fmt.Errorf("no content container found in HTML")
	}

	result, err := content.Html()
	if err != nil {
		return "", fmt.Errorf("serializing content: %w", err)
	}
	return strings.TrimSpace(result), nil
}

// Title returns the document title, falling back to the first h1.
func Title(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	if t := strings.TrimSpace(doc.Find("head > title").First().Text()); t != "" {
		return t
	}
	return strings.TrimSpace(doc.Find("h1").First().Text())
}

func (e *HTMLExtractor) root(doc *goquery.Document) *goquery.Selection {
	for i, m := range editorRootMatchers {
		if sel := doc.FindMatcher(m); sel.Length() > 0 {
			e.log.Debug("Using editor root", zap.String("selector", editorRoots[i]))
			return sel.First()
		}
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	for _, tag := range []string{"main", "article", "body"} {
		if sel := doc.Find(tag); sel.Length() > 0 {
			e.log.Debug("Using content container", zap.String("tag", tag))
			return sel.First()
		}
	}
	return nil
}

func compileAll(selectors []string) []cascadia.Selector {
	out := make([]cascadia.Selector, len(selectors))
	for i, sel := range selectors {
		out[i] = cascadia.MustCompile(sel)
	}
	return out
}
