// Package trove keeps notes as Markdown files in a single directory together
// with a YAML index mapping note ids to titles and file names.
package trove

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"github.com/maruel/natural"
	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

const (
	// IndexFile is the index file name inside the trove directory.
	IndexFile = "trove.yaml"
	// Untitled replaces an empty note title.
	Untitled = "Untitled"

	indexVersion = 1
)

var (
	// ErrNotFound is returned when no note matches the reference.
	ErrNotFound = errors.New("note not found")
	// ErrInvalidID is returned for note ids that cannot be part of a file name.
	ErrInvalidID = errors.New("invalid note id")
)

// Entry describes one stored note.
type Entry struct {
	ID      string    `yaml:"id"`
	Title   string    `yaml:"title"`
	File    string    `yaml:"file"`
	Created time.Time `yaml:"created"`
	Updated time.Time `yaml:"updated"`
}

type index struct {
	Version int     `yaml:"version"`
	Notes   []Entry `yaml:"notes"`
}

// Trove is a directory of notes. It is safe for concurrent use within one
// process.
type Trove struct {
	dir string
	log *zap.Logger
	now func() time.Time

	mu      sync.Mutex
	entries map[string]*Entry
}

// Open loads the trove rooted at dir, creating the directory when needed.
func Open(dir string, log *zap.Logger) (*Trove, error) {
	if log == nil {
		log = zap.NewNop()
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating trove directory: %w", err)
	}

	t := &Trove{
		dir:     dir,
		log:     log.Named("trove"),
		now:     func() time.Time { return time.Now().UTC().Truncate(time.Second) },
		entries: make(map[string]*Entry),
	}

	data, err := os.ReadFile(t.indexPath())
	if errors.Is(err, os.ErrNotExist) {
		t.log.Debug("Starting empty trove", zap.String("dir", dir))
		return t, nil
	}
	if err != nil {
		return nil, fmt.Errorf("reading trove index: %w", err)
	}

	var idx index
	if err := yaml.Unmarshal(data, &idx); err != nil {
		return nil, fmt.Errorf("parsing trove index %s: %w", t.indexPath(), err)
	}
	for i := range idx.Notes {
		e := idx.Notes[i]
		if !validFile(e.File) {
			return nil, fmt.Errorf("trove index %s: note %q points outside the trove: %q", t.indexPath(), e.ID, e.File)
		}
		t.entries[e.ID] = &e
	}
	t.log.Debug("Opened trove", zap.String("dir", dir), zap.Int("notes", len(t.entries)))
	return t, nil
}

// Dir returns the trove directory.
func (t *Trove) Dir() string {
	return t.dir
}

// Path returns the absolute location of the entry's file.
func (t *Trove) Path(e Entry) string {
	return filepath.Join(t.dir, e.File)
}

// Save stores the Markdown under the note id, generating an id when empty.
// A note whose title changed is moved to its new file name.
func (t *Trove) Save(id, title, markdown string) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	title = strings.TrimSpace(title)
	if title == "" {
		title = Untitled
	}

	if id != "" && !validID(id) {
		return Entry{}, fmt.Errorf("%q: %w", id, ErrInvalidID)
	}

	now := t.now()
	prev, exists := t.entries[id]
	if id == "" {
		u, err := uuid.NewV7()
		if err != nil {
			return Entry{}, fmt.Errorf("generating note id: %w", err)
		}
		id = u.String()
	}

	e := Entry{ID: id, Created: now}
	if exists {
		e = *prev
	}
	oldFile := e.File
	e.Title = title
	e.File = t.fileName(id, title)
	e.Updated = now

	if err := writeAtomic(t.Path(e), []byte(markdown)); err != nil {
		return Entry{}, err
	}

	t.entries[id] = &e
	if err := t.flush(); err != nil {
		if exists {
			t.entries[id] = prev
		} else {
			delete(t.entries, id)
		}
		if e.File != oldFile {
			os.Remove(t.Path(e))
		}
		return Entry{}, err
	}

	if oldFile != "" && oldFile != e.File {
		if err := os.Remove(filepath.Join(t.dir, oldFile)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return Entry{}, fmt.Errorf("removing renamed note file: %w", err)
		}
		t.log.Debug("Renamed note", zap.String("id", id), zap.String("from", oldFile), zap.String("to", e.File))
	}
	t.log.Debug("Saved note", zap.String("id", id), zap.String("file", e.File), zap.Int("bytes", len(markdown)))
	return e, nil
}

// Load returns the note matching ref, either an id or a title (case-insensitive).
func (t *Trove) Load(ref string) (Entry, string, error) {
	t.mu.Lock()
	e, err := t.find(ref)
	t.mu.Unlock()
	if err != nil {
		return Entry{}, "", err
	}

	data, err := os.ReadFile(t.Path(e))
	if errors.Is(err, os.ErrNotExist) {
		return e, "", fmt.Errorf("%s: file %s is missing: %w", ref, e.File, ErrNotFound)
	}
	if err != nil {
		return e, "", fmt.Errorf("reading note: %w", err)
	}
	return e, string(data), nil
}

// Delete removes the note and its file.
func (t *Trove) Delete(ref string) (Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	e, err := t.find(ref)
	if err != nil {
		return Entry{}, err
	}
	if err := os.Remove(t.Path(e)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Entry{}, fmt.Errorf("removing note file: %w", err)
	}
	delete(t.entries, e.ID)

	if err := t.flush(); err != nil {
		return Entry{}, err
	}
	t.log.Debug("Deleted note", zap.String("id", e.ID), zap.String("file", e.File))
	return e, nil
}

// List returns all notes in natural title order.
func (t *Trove) List() []Entry {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.sorted()
}

// Prune drops index entries whose files no longer exist and returns them.
func (t *Trove) Prune() ([]Entry, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	var stale []Entry
	for _, e := range t.sorted() {
		if _, err := os.Stat(t.Path(e)); errors.Is(err, os.ErrNotExist) {
			stale = append(stale, e)
			delete(t.entries, e.ID)
		}
	}
	if len(stale) == 0 {
		return nil, nil
	}
	if err := t.flush(); err != nil {
		return nil, err
	}
	t.log.Debug("Pruned trove", zap.Int("removed", len(stale)))
	return stale, nil
}

func (t *Trove) find(ref string) (Entry, error) {
	if e, ok := t.entries[ref]; ok {
		return *e, nil
	}
	for _, e := range t.sorted() {
		if strings.EqualFold(e.Title, ref) {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", ref, ErrNotFound)
}

func (t *Trove) sorted() []Entry {
	out := make([]Entry, 0, len(t.entries))
	for _, e := range t.entries {
		out = append(out, *e)
	}
	slices.SortFunc(out, func(a, b Entry) int {
		switch {
		case natural.Less(a.Title, b.Title):
			return -1
		case natural.Less(b.Title, a.Title):
			return 1
		default:
			return strings.Compare(a.ID, b.ID)
		}
	})
	return out
}

// fileName derives the Markdown file name from the title. A name held by
// another note, or by a file the index does not know, gets the id appended.
func (t *Trove) fileName(id, title string) string {
	base := slug.Make(title)
	if base == "" {
		base = "note"
	}
	name := base + ".md"

	for _, e := range t.entries {
		if e.ID != id && e.File == name {
			return base + "-" + shortID(id) + ".md"
		}
	}
	if cur, ok := t.entries[id]; !ok || cur.File != name {
		if _, err := os.Stat(filepath.Join(t.dir, name)); err == nil {
			return base + "-" + shortID(id) + ".md"
		}
	}
	return name
}

// validID accepts ids made of letters, digits, '-' and '_', which covers
// generated UUIDs and keeps the id safe to use in a file name.
func validID(id string) bool {
	for _, r := range id {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return false
		}
	}
	return id != ""
}

// validFile reports whether an index entry names a file directly inside the
// trove directory.
func validFile(name string) bool {
	return name != "" && name == filepath.Base(name) && filepath.IsLocal(name)
}

func shortID(id string) string {
	id = strings.ReplaceAll(id, "-", "")
	if len(id) > 8 {
		return id[len(id)-8:]
	}
	return id
}

func (t *Trove) indexPath() string {
	return filepath.Join(t.dir, IndexFile)
}

func (t *Trove) flush() error {
	data, err := yaml.Marshal(index{Version: indexVersion, Notes: t.sorted()})
	if err != nil {
		return fmt.Errorf("marshaling trove index: %w", err)
	}
	return writeAtomic(t.indexPath(), data)
}

// writeAtomic replaces path via a temporary file in the same directory.
func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if err := tmp.Chmod(0644); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
