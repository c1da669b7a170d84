// PDF renderer.
// Converts note Markdown into a styled PDF using gofpdf.
// Handles headings (variable font sizes), paragraphs, code blocks, quotes,
// rules and nested lists. Text is mapped to cp1252 for the core fonts.
package render

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/jung-kurt/gofpdf"

	"github.com/gaurav-prasanna/notemark/core"
)

const (
	pdfMargin      = 15.0
	pdfIndentWidth = 6.0
)

var (
	orderedItemRegex = regexp.MustCompile(`^(\d+)\.\s+(.*)$`)
	italicRegex      = regexp.MustCompile(`(^|[^*\w])\*([^*\s][^*]*)\*`)
	inlineCodeRegex  = regexp.MustCompile("`([^`]+)`")
	linkRegex        = regexp.MustCompile(`\[([^\]]*)\]\(([^)]*)\)`)
	underlineRegex   = regexp.MustCompile(`</?u>`)
)

// PDFRenderer renders Markdown content as a PDF document.
type PDFRenderer struct{}

// NewPDFRenderer creates a PDFRenderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{}
}

// Render converts Markdown into PDF bytes.
func (r *PDFRenderer) Render(markdown string, meta core.NoteMetadata) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	pdf.SetTitle(meta.Title, true)
	pdf.SetCreator("notemark", true)
	pdf.AddPage()

	tr := pdf.UnicodeTranslatorFromDescriptor("")
	w := &pdfWriter{pdf: pdf, tr: tr}

	// Title from metadata.
	if meta.Title != "" {
		pdf.SetFont("Helvetica", "B", 18)
		w.cell(0, 8, meta.Title)
		pdf.Ln(4)
	}

	if meta.Source != "" {
		pdf.SetFont("Helvetica", "I", 9)
		pdf.SetTextColor(100, 100, 100)
		w.cell(0, 5, "Source: "+meta.Source)
		pdf.SetTextColor(0, 0, 0)
		pdf.Ln(6)
	}

	lines := strings.Split(markdown, "\n")
	inCodeBlock := false

	for _, line := range lines {
		// Toggle code block state.
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inCodeBlock = !inCodeBlock
			pdf.Ln(2)
			continue
		}

		if inCodeBlock {
			pdf.SetFont("Courier", "", 9)
			pdf.SetFillColor(245, 245, 245)
			w.block(0, 4.5, line, true)
			continue
		}

		// Skip empty lines (add spacing instead).
		if strings.TrimSpace(line) == "" {
			pdf.Ln(3)
			continue
		}

		quotes := 0
		for strings.HasPrefix(line, ">") {
			quotes++
			line = strings.TrimPrefix(strings.TrimPrefix(line, ">"), " ")
		}
		if quotes > 0 {
			w.quote(quotes, line)
			continue
		}

		w.line(line)
	}

	if inCodeBlock {
		pdf.Ln(2)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("writing PDF: %w", err)
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for PDF output.
func (r *PDFRenderer) Extension() string {
	return ".pdf"
}

type pdfWriter struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string
}

func (w *pdfWriter) cell(width, height float64, text string) {
	w.block(width, height, text, false)
}

func (w *pdfWriter) block(width, height float64, text string, fill bool) {
	w.pdf.MultiCell(width, height, w.tr(text), "", "L", fill)
}

// indented writes text with the left margin moved right by level steps.
func (w *pdfWriter) indented(level int, height float64, text string) {
	if level <= 0 {
		w.cell(0, height, text)
		return
	}
	left := pdfMargin + float64(level)*pdfIndentWidth
	w.pdf.SetLeftMargin(left)
	w.pdf.SetX(left)
	w.cell(0, height, text)
	w.pdf.SetLeftMargin(pdfMargin)
	w.pdf.SetX(pdfMargin)
}

func (w *pdfWriter) quote(level int, text string) {
	w.pdf.SetFont("Helvetica", "I", 10)
	w.pdf.SetTextColor(90, 90, 90)
	w.indented(level, 5, cleanInlineMarkdown(text))
	w.pdf.SetTextColor(0, 0, 0)
}

func (w *pdfWriter) line(line string) {
	trimmed := strings.TrimLeft(line, " ")
	// Nested list items are indented two spaces per level, four per nesting.
	level := (len(line) - len(trimmed)) / 4

	// Headings.
	if strings.HasPrefix(trimmed, "#") {
		n := len(trimmed) - len(strings.TrimLeft(trimmed, "#"))
		if n <= 6 && strings.HasPrefix(trimmed[n:], " ") {
			renderHeading(w, strings.TrimSpace(trimmed[n:]), n)
			return
		}
	}

	if trimmed == "---" || trimmed == "***" {
		y := w.pdf.GetY() + 2
		w.pdf.SetDrawColor(180, 180, 180)
		w.pdf.Line(pdfMargin, y, 210-pdfMargin, y)
		w.pdf.Ln(5)
		return
	}

	w.pdf.SetFont("Helvetica", "", 10)

	// List items.
	if strings.HasPrefix(trimmed, "- ") || strings.HasPrefix(trimmed, "* ") {
		w.indented(level, 5, "• "+cleanInlineMarkdown(trimmed[2:]))
		return
	}

	// Numbered list items.
	if m := orderedItemRegex.FindStringSubmatch(trimmed); m != nil {
		w.indented(level, 5, m[1]+". "+cleanInlineMarkdown(m[2]))
		return
	}

	// Regular paragraph text.
	w.cell(0, 5, cleanInlineMarkdown(line))
}

// renderHeading sets the font size based on heading level and writes text.
func renderHeading(w *pdfWriter, text string, level int) {
	sizes := map[int]float64{1: 18, 2: 15, 3: 13, 4: 12, 5: 11, 6: 10}
	size, ok := sizes[level]
	if !ok {
		size = 10
	}
	w.pdf.Ln(4)
	w.pdf.SetFont("Helvetica", "B", size)
	w.cell(0, size*0.6, cleanInlineMarkdown(text))
	w.pdf.Ln(2)
}

// cleanInlineMarkdown strips inline Markdown formatting for PDF rendering.
func cleanInlineMarkdown(text string) string {
	// Remove link syntax, keep text.
	text = linkRegex.ReplaceAllString(text, "$1")
	// Remove inline code markers.
	text = inlineCodeRegex.ReplaceAllString(text, "$1")
	// Remove bold, highlight, strike and underline markers.
	for _, marker := range []string{"**", "__", "==", "~~"} {
		text = strings.ReplaceAll(text, marker, "")
	}
	text = underlineRegex.ReplaceAllString(text, "")
	// Remove italic markers (but not list bullets or stray asterisks).
	text = italicRegex.ReplaceAllString(text, "$1$2")
	return strings.TrimSpace(text)
}
