package extract_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/notemark/core/extract"
)

func TestExtract_EditorRoot(t *testing.T) {
	page := `<html><head><title>Notes</title><script>var x = 1;</script></head>
<body>
<div class="toolbar"><button>B</button></div>
<nav>menu</nav>
<div class="ProseMirror" contenteditable="true"><p>hello <strong>world</strong></p></div>
</body></html>`

	got, err := extract.New(zaptest.NewLogger(t)).Extract(page)
	require.NoError(t, err)
	assert.Equal(t, `<p>hello <strong>world</strong></p>`, got)
}

func TestExtract_ContentEditableFallback(t *testing.T) {
	page := `<body><div contenteditable="false">chrome</div><div contenteditable=""><p>body</p></div></body>`

	got, err := extract.New(nil).Extract(page)
	require.NoError(t, err)
	assert.Equal(t, `<p>body</p>`, got)
}

func TestExtract_ContainerPriority(t *testing.T) {
	cases := []struct {
		name string
		page string
		want string
	}{
		{"main", `<body><p>outside</p><main><p>in main</p></main></body>`, `<p>in main</p>`},
		{"article", `<body><p>outside</p><article><p>in article</p></article></body>`, `<p>in article</p>`},
		{"body", `<body><p>only body</p></body>`, `<p>only body</p>`},
		{"fragment", `<p>fragment</p>`, `<p>fragment</p>`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := extract.New(zaptest.NewLogger(t)).Extract(tc.page)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestExtract_RemovesNoise(t *testing.T) {
	page := `<body><p>keep</p><style>p{}</style><form><input name="q"></form><textarea>draft</textarea><div aria-hidden="true">x</div></body>`

	got, err := extract.New(zaptest.NewLogger(t)).Extract(page)
	require.NoError(t, err)
	assert.Equal(t, `<p>keep</p>`, got)
}

func TestExtract_EditorLinesBecomeParagraphs(t *testing.T) {
	page := `<div class="tiptap"><div class="editor-line">one</div><div class="editor-line">two</div><div class="other">three</div></div>`

	got, err := extract.New(zaptest.NewLogger(t)).Extract(page)
	require.NoError(t, err)
	assert.Equal(t, `<p>one</p><p>two</p><div class="other">three</div>`, got)
}

func TestTitle(t *testing.T) {
	assert.Equal(t, "Head title", extract.Title(`<title> Head title </title><h1>Heading</h1>`))
	assert.Equal(t, "Heading", extract.Title(`<body><h1>Heading</h1></body>`))
	assert.Equal(t, "", extract.Title(`<p>nothing</p>`))
}
