package svgicon

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const simpleRect = `<svg width="20" height="10" viewBox="0 0 20 10"><rect x="1" y="2" width="3" height="4" fill="#ff0000"/></svg>`

func TestWriteDefault(t *testing.T) {
	icon := parseString(t, simpleRect)
	expected := `<svg width="20" height="10" viewBox="0 0 20 10" xmlns="http://www.w3.org/2000/svg" xmlns:xlink="http://www.w3.org/1999/xlink">
    <path fill="#ff0000" d="M 1 2 L 4 2 L 4 6 L 1 6 Z"/>
</svg>
`
	assert.Equal(t, expected, icon.ToString(DefaultWriteOptions()))

	var buf bytes.Buffer
	require.NoError(t, icon.WriteXML(&buf, DefaultWriteOptions()))
	assert.Equal(t, expected, buf.String())
}

func TestWriteOptions(t *testing.T) {
	icon := parseString(t, simpleRect)

	out := icon.ToString(WriteOptions{UseSingleQuote: true})
	assert.NotContains(t, out, "\n")
	assert.True(t, strings.HasPrefix(out, `<svg width='20' height='10'`))
	assert.True(t, strings.HasSuffix(out, `<path fill='#ff0000' d='M 1 2 L 4 2 L 4 6 L 1 6 Z'/></svg>`))

	out = icon.ToString(WriteOptions{Indent: IndentTabs})
	assert.Contains(t, out, "\n\t<path")

	out = icon.ToString(WriteOptions{Indent: IndentSpaces(4), AttributesIndent: IndentSpaces(2)})
	assert.True(t, strings.HasPrefix(out, "<svg\n  width=\"20\"\n  height=\"10\""))
	assert.Contains(t, out, "\n    <path\n      fill=\"#ff0000\"")
}

func TestWritePrecision(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10"><path d="M 0.5 0.3125 L 1.015625 1" transform="rotate(30)"/></svg>`)

	out := icon.ToString(WriteOptions{CoordinatesPrecision: 1, TransformsPrecision: 2})
	assert.Contains(t, out, `d="M 0.5 0.3 L 1 1"`)
	assert.Contains(t, out, `transform="matrix(0.87 0.5 -0.5 0.87 0 0)"`)

	out = icon.ToString(DefaultWriteOptions())
	assert.Contains(t, out, `d="M 0.5 0.3125 L 1.015625 1"`)
}

func TestWriteGradientsAndPrefix(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
	<defs>
		<linearGradient id="b"><stop offset="0" stop-color="red"/></linearGradient>
		<radialGradient id="a" r="0.25"><stop offset="1" stop-color="blue" stop-opacity="0.5"/></radialGradient>
	</defs>
	<rect id="box" width="10" height="10" fill="url(#b)" stroke="url(#a)"/>
	</svg>`)

	out := icon.ToString(WriteOptions{IDPrefix: "p-", CoordinatesPrecision: 3, TransformsPrecision: 3})
	ia, ib := strings.Index(out, `<radialGradient id="p-a"`), strings.Index(out, `<linearGradient id="p-b"`)
	require.NotEqual(t, -1, ia)
	require.NotEqual(t, -1, ib)
	assert.Less(t, ia, ib) // sorted by id
	assert.Contains(t, out, `<stop offset="1" stop-color="#0000ff" stop-opacity="0.5"/>`)
	assert.Contains(t, out, `<path id="p-box" fill="url(#p-b)" stroke="url(#p-a)"`)
}

func TestWriteEscaping(t *testing.T) {
	icon := &SvgIcon{
		ViewBox:   Bounds{W: 1, H: 1},
		Titles:    []string{`a<b & "c"`},
		Transform: Identity,
	}
	out := icon.ToString(WriteOptions{})
	assert.Contains(t, out, `<title>a&lt;b &amp; "c"</title>`)

	icon.Titles = []string{"nul\x00inside"}
	out = icon.ToString(WriteOptions{IDPrefix: `x"y`})
	assert.Contains(t, out, "nul\x00inside")

	icon.SVGPaths = []SvgPath{{ID: "q", Path: Path{MoveTo{}, LineTo{X: 64}}, Style: DefaultStyle}}
	assert.Contains(t, icon.ToString(WriteOptions{IDPrefix: `x"y`}), `id="x&quot;yq"`)
	assert.Contains(t, icon.ToString(WriteOptions{IDPrefix: `x'y`, UseSingleQuote: true}), `id='x&apos;yq'`)
}

func TestWriteIsStable(t *testing.T) {
	files, err := filepath.Glob("testdata/*.svg")
	require.NoError(t, err)
	for _, file := range files {
		icon, err := ReadIcon(file, StrictErrorMode)
		require.NoError(t, err)

		out := icon.ToString(DefaultWriteOptions())
		assert.Equal(t, out, icon.ToString(DefaultWriteOptions()), file)

		// the normalized output is a fixed point
		again, err := ReadIconStream(strings.NewReader(out), StrictErrorMode)
		require.NoError(t, err, file)
		assert.Equal(t, out, again.ToString(DefaultWriteOptions()), file)
	}
}

func TestWriteStrokeRoundTrip(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10"><rect width="4" height="4" fill="none" stroke="blue" stroke-width="2" stroke-dasharray="1,2" stroke-linejoin="round" stroke-opacity="0.5"/></svg>`)
	opts := WriteOptions{CoordinatesPrecision: 8, TransformsPrecision: 8}
	out := icon.ToString(opts)
	assert.Contains(t, out, `fill="none" stroke="#0000ff" stroke-width="2" stroke-linecap="butt" stroke-linejoin="round" stroke-miterlimit="4" stroke-dasharray="1 2" stroke-opacity="0.5"`)

	f, err := os.CreateTemp(t.TempDir(), "*.svg")
	require.NoError(t, err)
	require.NoError(t, icon.WriteXML(f, opts))
	require.NoError(t, f.Close())

	again, err := ReadIcon(f.Name(), StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, icon.SVGPaths[0].Style, again.SVGPaths[0].Style)
}
