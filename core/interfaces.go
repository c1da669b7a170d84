// Package core defines the pipeline interfaces for notemark.
// Each stage of the pipeline is a clean, testable interface.
package core

import "context"

// FetchResult holds the raw HTML and response metadata from a fetch.
type FetchResult struct {
	Source      string
	StatusCode  int
	ContentType string
	HTML        string
}

// NoteMetadata describes where a note came from and how it was produced.
type NoteMetadata struct {
	Source      string `json:"source"`
	Title       string `json:"title"`
	Engine      string `json:"engine,omitempty"`
	ConvertedAt string `json:"converted_at"` // RFC3339
}

// Heading represents a single heading found in the note.
type Heading struct {
	Level int    `json:"level"`
	Text  string `json:"text"`
}

// Link represents a hyperlink found in the note.
type Link struct {
	Text string `json:"text"`
	Href string `json:"href"`
}

// CodeBlock is a fenced code block with its info-string language.
type CodeBlock struct {
	Language string `json:"language,omitempty"`
	Lines    int    `json:"lines"`
}

// Task is a GFM task list item.
type Task struct {
	Text    string `json:"text"`
	Checked bool   `json:"checked"`
}

// NoteOutline holds structural metadata parsed from the Markdown.
type NoteOutline struct {
	Headings   []Heading   `json:"headings"`
	Links      []Link      `json:"links"`
	CodeBlocks []CodeBlock `json:"code_blocks"`
	Tasks      []Task      `json:"tasks"`
	ListItems  int         `json:"list_items"`
	Quotes     int         `json:"quotes"`
	Tables     int         `json:"tables"`
}

// NoteJSON is the complete JSON output for a single note.
type NoteJSON struct {
	Metadata NoteMetadata `json:"metadata"`
	Markdown string       `json:"markdown"`
	Text     string       `json:"text"`
	Outline  NoteOutline  `json:"outline"`
}

// Fetcher retrieves raw HTML from a URL, a file or stdin.
type Fetcher interface {
	Fetch(ctx context.Context, source string) (*FetchResult, error)
}

// Extractor pulls the note body from raw HTML, stripping editor chrome.
type Extractor interface {
	Extract(html string) (string, error)
}

// Normalizer converts cleaned HTML into Markdown (the canonical format).
type Normalizer interface {
	Normalize(html string) (string, error)
}

// Renderer converts Markdown (and metadata) into a final output format.
type Renderer interface {
	Render(markdown string, meta NoteMetadata) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}
