package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/gaurav-prasanna/notemark/core/normalize"
)

func TestParseEngine(t *testing.T) {
	cases := []struct {
		in      string
		want    normalize.Engine
		wantErr bool
	}{
		{"", normalize.EngineNative, false},
		{"native", normalize.EngineNative, false},
		{" CommonMark ", normalize.EngineCommonMark, false},
		{"pandoc", "", true},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := normalize.ParseEngine(tc.in)
			if tc.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "pandoc")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
		})
	}
}

func TestNew_UnknownEngine(t *testing.T) {
	_, err := normalize.New("pandoc", nil)
	require.Error(t, err)
}

func TestNative_Normalize(t *testing.T) {
	n, err := normalize.New(normalize.EngineNative, zaptest.NewLogger(t))
	require.NoError(t, err)

	md, err := n.Normalize(`<h2>Plan</h2><ol><li>fetch</li><li><mark>render</mark></li></ol>`)
	require.NoError(t, err)
	assert.Equal(t, "## Plan\n1. fetch\n2. ==render==", md)
}

func TestCommonMark_Normalize(t *testing.T) {
	n, err := normalize.New(normalize.EngineCommonMark, zaptest.NewLogger(t))
	require.NoError(t, err)

	cases := []struct {
		name string
		html string
		want string
	}{
		{"heading", `<h2>Plan</h2>`, "## Plan"},
		{"strong", `<p><strong>x</strong></p>`, "**x**"},
		{"mark", `<p><mark>x</mark></p>`, "==x=="},
		{"underline", `<p><u>x</u></p>`, "<u>x</u>"},
		{"strike", `<p><s>x</s></p>`, "~~x~~"},
		{"bold span", `<p><span style="font-weight: 700">x</span></p>`, "**x**"},
		{"underline span", `<p><span style="text-decoration: underline">x</span></p>`, "__x__"},
		{"plain span", `<p><span style="color: red">x</span></p>`, "x"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			md, err := n.Normalize(tc.html)
			require.NoError(t, err)
			assert.Equal(t, tc.want, md)
		})
	}
}

func TestCommonMark_Tables(t *testing.T) {
	n := normalize.NewCommonMark(zaptest.NewLogger(t))

	md, err := n.Normalize(`<table><tr><th>k</th><th>v</th></tr><tr><td>a</td><td>1</td></tr></table>`)
	require.NoError(t, err)
	assert.Contains(t, md, "| k")
	assert.Contains(t, md, "| a")
}

func TestEngines_AgreeOnBasics(t *testing.T) {
	const html = `<p>Some <em>soft</em> and <strong>bold</strong> text.</p>`

	native, err := normalize.NewNative(zaptest.NewLogger(t)).Normalize(html)
	require.NoError(t, err)
	cm, err := normalize.NewCommonMark(zaptest.NewLogger(t)).Normalize(html)
	require.NoError(t, err)

	assert.Equal(t, "Some *soft* and **bold** text.", native)
	assert.Equal(t, native, cm)
}
