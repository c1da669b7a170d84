// Package output handles file naming and writing for converted notes.
// URLs are named after their host and path (example-com-notes-today.md),
// files after their base name, and standard input after the note title.
package output

import (
	"bytes"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"text/template"
	"time"

	sprig "github.com/go-task/slim-sprig/v3"
	"github.com/gosimple/slug"
)

// Writer writes rendered output to disk, or to a stream when one is set.
type Writer struct {
	OutputDir string
	Stream    io.Writer

	nameTmpl *template.Template

	mu    sync.Mutex
	taken map[string]bool
}

// NameValues are available to the output name template.
type NameValues struct {
	Name   string
	Title  string
	Source string
	Host   string
	Format string
	Date   string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("getting working directory: %w", err)
		}
		outputDir = wd
	}

	// Ensure the output directory exists.
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// NewStream creates a Writer that sends everything to w.
func NewStream(w io.Writer) *Writer {
	return &Writer{Stream: w}
}

// Write stores data for the source and returns where it went.
func (w *Writer) Write(source, title string, data []byte, ext string) (string, error) {
	if w.Stream != nil {
		if _, err := w.Stream.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "-", nil
	}

	name, err := w.name(source, title, ext)
	if err != nil {
		return "", err
	}
	path := filepath.Join(w.OutputDir, w.claim(name, ext)+ext)
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}

// claim reserves name for this writer, numbering repeats (index, index-2,
// index-3) so sources that map to the same name do not overwrite each other.
func (w *Writer) claim(name, ext string) string {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.taken == nil {
		w.taken = make(map[string]bool)
	}
	candidate := name
	for i := 2; w.taken[candidate+ext]; i++ {
		candidate = fmt.Sprintf("%s-%d", name, i)
	}
	w.taken[candidate+ext] = true
	return candidate
}

// SetNameTemplate installs a text/template, with slim-sprig functions, that
// computes file names. An empty template restores the default naming.
func (w *Writer) SetNameTemplate(text string) error {
	if strings.TrimSpace(text) == "" {
		w.nameTmpl = nil
		return nil
	}
	tmpl, err := template.New("output_name_template").Funcs(sprig.FuncMap()).Parse(text)
	if err != nil {
		return fmt.Errorf("unable to parse output name template: %w", err)
	}
	w.nameTmpl = tmpl
	return nil
}

func (w *Writer) name(source, title, ext string) (string, error) {
	def := Name(source, title)
	if w.nameTmpl == nil {
		return def, nil
	}

	values := NameValues{
		Name:   def,
		Title:  title,
		Source: source,
		Format: strings.TrimPrefix(ext, "."),
		Date:   time.Now().Format("2006-01-02"),
	}
	if u, err := url.Parse(source); err == nil {
		values.Host = u.Host
	}

	buf := new(bytes.Buffer)
	if err := w.nameTmpl.Execute(buf, values); err != nil {
		return "", fmt.Errorf("expanding output name template: %w", err)
	}
	if name := slug.Make(buf.String()); name != "" {
		return name, nil
	}
	return def, nil
}

// Name converts a source into a flat file name without extension.
// Example: https://example.com/docs/intro → example-com-docs-intro
func Name(source, title string) string {
	var name string
	switch {
	case source == "-" || source == "":
		name = slug.Make(title)
	case strings.Contains(source, "://"):
		name = nameFromURL(source)
	default:
		base := filepath.Base(source)
		name = slug.Make(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if name == "" {
		name = "note"
	}
	return name
}

func nameFromURL(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		// Fallback: sanitize the raw string.
		return slug.Make(rawURL)
	}

	parts := []string{parsed.Host}
	if path := strings.Trim(parsed.Path, "/"); path != "" {
		path = strings.TrimSuffix(path, filepath.Ext(path))
		parts = append(parts, strings.Split(path, "/")...)
	}
	return slug.Make(strings.Join(parts, " "))
}
