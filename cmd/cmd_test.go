package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type harness struct {
	t      *testing.T
	dir    string
	config string
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	dir := t.TempDir()
	cfg := "version: 1\n" +
		"trove:\n  dir: " + filepath.Join(dir, "trove") + "\n" +
		"logging:\n  console:\n    level: none\n"
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(cfg), 0644))
	return &harness{t: t, dir: dir, config: path}
}

func (h *harness) run(stdin string, args ...string) (string, error) {
	h.t.Helper()
	root := NewRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetIn(strings.NewReader(stdin))
	root.SetArgs(append([]string{"--config", h.config}, args...))
	err := root.Execute()
	return out.String(), err
}

func (h *harness) write(name, content string) string {
	h.t.Helper()
	path := filepath.Join(h.dir, name)
	require.NoError(h.t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestConvert_Stdin(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(`<div class="toolbar">B I U</div><div class="ProseMirror"><h1>Hi</h1><p><mark>x</mark></p></div>`,
		"convert", "-", "--stdout")
	require.NoError(t, err)
	assert.Equal(t, "# Hi\n==x==\n", out)
}

func TestConvert_Engines(t *testing.T) {
	h := newHarness(t)
	const page = `<ul><li>a</li><li>b</li></ul>`

	native, err := h.run(page, "convert", "-", "--stdout", "--engine", "native")
	require.NoError(t, err)
	cm, err := h.run(page, "convert", "-", "--stdout", "--engine", "commonmark")
	require.NoError(t, err)

	assert.Equal(t, "- a\n- b\n", native)
	assert.Contains(t, cm, "- a")

	_, err = h.run(page, "convert", "-", "--stdout", "--engine", "pandoc")
	assert.Error(t, err)
}

func TestConvert_FilesAndFailures(t *testing.T) {
	h := newHarness(t)
	src := h.write("plan.html", `<html><head><title>Plan</title></head><body><p>ship it</p></body></html>`)
	outDir := filepath.Join(h.dir, "out")

	_, err := h.run("", "convert", src, filepath.Join(h.dir, "missing.html"), "--output_dir", outDir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1/2 sources failed")

	data, err := os.ReadFile(filepath.Join(outDir, "plan.md"))
	require.NoError(t, err)
	assert.Equal(t, "ship it\n", string(data))
}

func TestConvert_FormatFlags(t *testing.T) {
	h := newHarness(t)

	_, err := h.run("<p>x</p>", "convert", "-", "--stdout", "--html", "--json")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "only one output format")

	out, err := h.run("<p><strong>x</strong></p>", "convert", "-", "--stdout", "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<strong>x</strong>")

	out, err = h.run("<h2>Outline</h2>", "convert", "-", "--stdout", "--json")
	require.NoError(t, err)
	assert.Contains(t, out, `"text": "Outline"`)
}

func TestRender_Stdin(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("# T\n\nsome ==marked== text\n", "render", "-", "--stdout")
	require.NoError(t, err)
	assert.Contains(t, out, "<mark>marked</mark>")
	assert.Contains(t, out, `<h1 id="t">T</h1>`)
}

func TestNote_Lifecycle(t *testing.T) {
	h := newHarness(t)

	out, err := h.run(`<h1>Groceries</h1><ul><li>milk</li></ul>`, "note", "save", "-", "--title", "Shopping")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NotEmpty(t, id)
	assert.FileExists(t, filepath.Join(h.dir, "trove", "shopping.md"))

	out, err = h.run("", "note", "list")
	require.NoError(t, err)
	assert.Contains(t, out, id)
	assert.Contains(t, out, "Shopping")

	out, err = h.run("", "note", "open", "shopping")
	require.NoError(t, err)
	assert.Equal(t, "# Groceries\n- milk\n", out)

	out, err = h.run("", "note", "open", id, "--html")
	require.NoError(t, err)
	assert.Contains(t, out, "<li>milk</li>")

	_, err = h.run("", "note", "open", id, "--pdf")
	assert.Error(t, err)

	_, err = h.run("", "note", "delete", id)
	require.NoError(t, err)
	assert.NoFileExists(t, filepath.Join(h.dir, "trove", "shopping.md"))

	_, err = h.run("", "note", "open", id)
	assert.Error(t, err)
}

func TestNote_Prune(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("<p>x</p>", "note", "save", "-", "--title", "Ephemeral")
	require.NoError(t, err)
	id := strings.TrimSpace(out)
	require.NoError(t, os.Remove(filepath.Join(h.dir, "trove", "ephemeral.md")))

	out, err = h.run("", "note", "prune")
	require.NoError(t, err)
	assert.Equal(t, id+"\n", out)
}

func TestConfig_Dump(t *testing.T) {
	h := newHarness(t)

	out, err := h.run("", "config", "dump")
	require.NoError(t, err)
	assert.Contains(t, out, "engine: native")
	assert.Contains(t, out, filepath.Join(h.dir, "trove"))

	out, err = h.run("", "config", "dump", "--defaults")
	require.NoError(t, err)
	assert.Contains(t, out, "Untitled_Trove")
}
