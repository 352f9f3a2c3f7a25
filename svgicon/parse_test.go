package svgicon

import (
	"bytes"
	"image/color"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseString(t *testing.T, svg string) *SvgIcon {
	t.Helper()
	icon, err := ReadIconStream(strings.NewReader(svg), StrictErrorMode)
	require.NoError(t, err)
	return icon
}

func TestEmptyInput(t *testing.T) {
	_, err := ReadIconStream(strings.NewReader(""), IgnoreErrorMode)
	assert.ErrorIs(t, err, ErrInvalidIcon)
	assert.EqualError(t, err, "invalid svg xml icon")
}

func TestTestdataIcons(t *testing.T) {
	files, err := filepath.Glob("testdata/*.svg")
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for _, file := range files {
		icon, err := ReadIcon(file, StrictErrorMode)
		require.NoError(t, err, file)
		assert.NotEmpty(t, icon.SVGPaths, file)
	}
}

func TestRect(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 100 50" width="200" height="100">
		<title>A rect</title>
		<desc>red</desc>
		<rect id="r1" x="10" y="10" width="20" height="30" fill="red"/>
	</svg>`)

	assert.Equal(t, Bounds{W: 100, H: 50}, icon.ViewBox)
	assert.Equal(t, "200", icon.Width)
	assert.Equal(t, "100", icon.Height)
	assert.Equal(t, []string{"A rect"}, icon.Titles)
	assert.Equal(t, []string{"red"}, icon.Descriptions)
	require.Len(t, icon.SVGPaths, 1)

	p := icon.SVGPaths[0]
	assert.Equal(t, "r1", p.ID)
	assert.Equal(t, NewPlainColor(0xff, 0, 0, 0xff), p.Style.FillerColor)
	assert.Nil(t, p.Style.LinerColor)
	assert.Equal(t, "M 10 10 L 30 10 L 30 40 L 10 40 Z", pathData(p.Path, 8))
	assert.False(t, icon.IsEmpty())
}

func TestViewBoxFromSize(t *testing.T) {
	icon := parseString(t, `<svg width="30px" height="1in"><rect width="1" height="1"/></svg>`)
	assert.Equal(t, Bounds{W: 30, H: 96}, icon.ViewBox)

	icon = parseString(t, `<svg viewBox="0 0 200 100" width="20" height="10"/>`)
	w, h := icon.Size()
	assert.Equal(t, [2]float64{20, 10}, [2]float64{w, h})

	icon = parseString(t, `<svg viewBox="0 0 200 100"/>`)
	w, h = icon.Size()
	assert.Equal(t, [2]float64{200, 100}, [2]float64{w, h})
}

func TestPathCommands(t *testing.T) {
	for _, test := range []struct {
		d, expected string
	}{
		{"M10 10 h10 v10 H10 z", "M 10 10 L 20 10 L 20 20 L 10 20 Z"},
		{"m5 5 l5 0", "M 5 5 L 10 5"},
		{"M0,0 L1-1", "M 0 0 L 1 -1"},
		{"M0 0 Q 1 1 2 0 T 4 0", "M 0 0 Q 1 1 2 0 Q 3 -1 4 0"},
		{"M0 0 C 0 1 1 1 1 0 S 2 -1 2 0", "M 0 0 C 0 1 1 1 1 0 C 1 -1 2 -1 2 0"},
		{"M0 0 A 0 5 0 0 1 10 0", "M 0 0 L 10 0"},
	} {
		icon := parseString(t, `<svg viewBox="0 0 10 10"><path d="`+test.d+`"/></svg>`)
		require.Len(t, icon.SVGPaths, 1, test.d)
		assert.Equal(t, test.expected, pathData(icon.SVGPaths[0].Path, 8), test.d)
	}
}

func TestInvalidPath(t *testing.T) {
	_, err := ReadIconStream(strings.NewReader(`<svg viewBox="0 0 10 10"><path d="M 1"/></svg>`), IgnoreErrorMode)
	assert.ErrorIs(t, err, errParamMismatch)
}

func TestCircle(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 20 20"><circle cx="10" cy="10" r="5"/></svg>`)
	require.Len(t, icon.SVGPaths, 1)
	path := icon.SVGPaths[0].Path
	require.NotEmpty(t, path)
	assert.Equal(t, MoveTo(toFixedP(15, 10)), path[0])
	assert.Equal(t, Close{}, path[len(path)-1])

	ext, ok := path.Extent(Identity)
	require.True(t, ok)
	assert.InDelta(t, 5, ext.X, 0.05)
	assert.InDelta(t, 5, ext.Y, 0.05)
	assert.InDelta(t, 10, ext.W, 0.05)
	assert.InDelta(t, 10, ext.H, 0.05)
}

func TestTransforms(t *testing.T) {
	for _, test := range []struct {
		transform string
		expected  Matrix2D
	}{
		{"scale(2)", Matrix2D{2, 0, 0, 2, 0, 0}},
		{"scale(2, 3)", Matrix2D{2, 0, 0, 3, 0, 0}},
		{"translate(10 20)", Matrix2D{1, 0, 0, 1, 10, 20}},
		{"translate(10)", Matrix2D{1, 0, 0, 1, 10, 0}},
		{"matrix(1 2 3 4 5 6)", Matrix2D{1, 2, 3, 4, 5, 6}},
		{"translate(10,0) scale(2)", Matrix2D{2, 0, 0, 2, 10, 0}},
	} {
		icon := parseString(t, `<svg viewBox="0 0 10 10"><g transform="`+test.transform+`"><rect width="1" height="1"/></g></svg>`)
		require.Len(t, icon.SVGPaths, 1)
		assert.Equal(t, test.expected, icon.SVGPaths[0].Style.Transform(), test.transform)
	}

	_, err := ReadIconStream(strings.NewReader(`<svg viewBox="0 0 10 10"><rect transform="scale(1,2,3)" width="1" height="1"/></svg>`), IgnoreErrorMode)
	assert.ErrorIs(t, err, errParamMismatch)
}

func TestStyleAttribute(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
	<rect fill="blue" style="fill:#00ff00; stroke: rgb(0, 0, 255); stroke-width: 3; fill-rule: evenodd; opacity: 50%"
	 stroke-dasharray="1 2" stroke-linecap="round" width="1" height="1"/>
	</svg>`)
	require.Len(t, icon.SVGPaths, 1)
	st := icon.SVGPaths[0].Style
	assert.Equal(t, NewPlainColor(0, 0xff, 0, 0xff), st.FillerColor)
	assert.Equal(t, NewPlainColor(0, 0, 0xff, 0xff), st.LinerColor)
	assert.Equal(t, 3., st.LineWidth)
	assert.False(t, st.UseNonZeroWinding)
	assert.Equal(t, 0.5, st.FillOpacity)
	assert.Equal(t, 0.5, st.LineOpacity)
	assert.Equal(t, []float64{1, 2}, st.Dash.Dash)
	assert.Equal(t, RoundCap, st.Join.TrailLineCap)
}

func TestColors(t *testing.T) {
	for _, test := range []struct {
		value    string
		expected Pattern
	}{
		{"none", nil},
		{"#fff", NewPlainColor(0xff, 0xff, 0xff, 0xff)},
		{"#102030", NewPlainColor(0x10, 0x20, 0x30, 0xff)},
		{"#10203040", NewPlainColor(0x10, 0x20, 0x30, 0x40)},
		{"rgb(100%, 0%, 0%)", NewPlainColor(0xff, 0, 0, 0xff)},
		{"rgba(1, 2, 3, 0)", NewPlainColor(1, 2, 3, 0)},
		{"hsl(0, 100%, 50%)", NewPlainColor(0xff, 0, 0, 0xff)},
		{"hsl(120, 100%, 50%)", NewPlainColor(0, 0xff, 0, 0xff)},
		{"Navy", NewPlainColor(0, 0, 0x80, 0xff)},
	} {
		col, err := parseSVGColor(test.value)
		require.NoError(t, err, test.value)
		assert.Equal(t, test.expected, col.asPattern(), test.value)
	}

	_, err := parseSVGColor("notacolor")
	assert.ErrorIs(t, err, errColorFormat)
}

func TestGradients(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
	<rect width="10" height="10" fill="url(#forward)"/>
	<defs>
		<linearGradient id="g1" x1="0" x2="1">
			<stop offset="0" stop-color="red"/>
			<stop offset="100%" style="stop-color:blue;stop-opacity:0.5"/>
		</linearGradient>
		<radialGradient id="forward" href="#g1" gradientUnits="userSpaceOnUse" spreadMethod="reflect" r="4"/>
	</defs>
	<rect width="10" height="10" fill="url(#g1)" stroke="url(#missing)"/>
	</svg>`)
	require.Len(t, icon.SVGPaths, 2)

	grads := icon.Gradients()
	require.Len(t, grads, 2)
	assert.Equal(t, "forward", grads[0].ID)
	assert.Equal(t, "g1", grads[1].ID)

	fwd, ok := icon.SVGPaths[0].Style.FillerColor.(Gradient)
	require.True(t, ok)
	assert.True(t, fwd.IsRadial())
	assert.Equal(t, UserSpaceOnUse, fwd.Units)
	assert.Equal(t, ReflectSpread, fwd.Spread)
	assert.Equal(t, Radial{0.5, 0.5, 0.5, 0.5, 4, 0}, fwd.Direction)
	assert.Len(t, fwd.Stops, 2)

	g1, ok := icon.SVGPaths[1].Style.FillerColor.(Gradient)
	require.True(t, ok)
	assert.False(t, g1.IsRadial())
	assert.Equal(t, Linear{0, 0, 1, 0}, g1.Direction)
	require.Len(t, g1.Stops, 2)
	assert.Equal(t, color.RGBA{0xff, 0, 0, 0xff}, g1.Stops[0].StopColor)
	assert.Equal(t, color.RGBA{0, 0, 0xff, 0xff}, g1.Stops[1].StopColor)
	assert.Equal(t, 1., g1.Stops[1].Offset)
	assert.Equal(t, 0.5, g1.Stops[1].Opacity)

	// invalid references are not painted
	assert.Nil(t, icon.SVGPaths[1].Style.LinerColor)
}

func TestDefsUse(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
	<defs>
		<rect id="r" width="2" height="2" fill="green"/>
	</defs>
	<use href="#r" x="3" y="4"/>
	</svg>`)
	require.Len(t, icon.SVGPaths, 1)
	p := icon.SVGPaths[0]
	assert.Equal(t, "r", p.ID)
	assert.Equal(t, "M 3 4 L 5 4 L 5 6 L 3 6 Z", pathData(p.Path, 8))

	_, err := ReadIconStream(strings.NewReader(`<svg viewBox="0 0 10 10"><use href="#nope"/></svg>`), IgnoreErrorMode)
	assert.ErrorIs(t, err, errMissingID)
}

func TestErrorModes(t *testing.T) {
	const input = `<svg viewBox="0 0 10 10"><text><tspan>hello</tspan></text><rect width="1" height="1"/></svg>`

	_, err := ReadIconStream(strings.NewReader(input), StrictErrorMode)
	assert.ErrorIs(t, err, ErrUnsupportedElement)
	var elErr *ElementError
	require.ErrorAs(t, err, &elErr)
	assert.Equal(t, "text", elErr.Element)

	icon, err := ReadIconStream(strings.NewReader(input), IgnoreErrorMode)
	require.NoError(t, err)
	assert.Len(t, icon.SVGPaths, 1)

	var logs bytes.Buffer
	icon, err = ReadIconStreamOptions(strings.NewReader(input), Options{
		ErrorMode: WarnErrorMode,
		Logger:    slog.New(slog.NewTextHandler(&logs, nil)),
	})
	require.NoError(t, err)
	assert.Len(t, icon.SVGPaths, 1)
	assert.Contains(t, logs.String(), "cannot process svg element")
	assert.Contains(t, logs.String(), "element=text")
	assert.NotContains(t, logs.String(), "tspan") // skipped with its parent
}

func TestIsEmpty(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10"><rect width="1" height="1" fill="none"/></svg>`)
	assert.True(t, icon.IsEmpty())

	icon = parseString(t, `<svg viewBox="0 0 10 10"></svg>`)
	assert.True(t, icon.IsEmpty())
	_, ok := icon.PathExtent()
	assert.False(t, ok)
}

func TestCharset(t *testing.T) {
	// "é" in latin1
	input := "<?xml version=\"1.0\" encoding=\"ISO-8859-1\"?><svg viewBox=\"0 0 1 1\"><title>caf\xe9</title></svg>"
	icon, err := ReadIconStream(strings.NewReader(input), StrictErrorMode)
	require.NoError(t, err)
	assert.Equal(t, []string{"café"}, icon.Titles)
}

func TestBasicShapes(t *testing.T) {
	for _, test := range []struct {
		element, expected string
	}{
		{`<polyline points="0 0 5 0"/>`, "M 0 0 L 5 0"},
		{`<polygon points="0,0 5,0 5,5"/>`, "M 0 0 L 5 0 L 5 5 Z"},
		{`<line x1="1" y1="2" x2="50%" y2="100%"/>`, "M 1 2 L 5 10"},
		{`<rect width="50%" height="2"/>`, "M 0 0 L 5 0 L 5 2 L 0 2 Z"},
	} {
		icon := parseString(t, `<svg viewBox="0 0 10 10">`+test.element+`</svg>`)
		require.Len(t, icon.SVGPaths, 1, test.element)
		assert.Equal(t, test.expected, pathData(icon.SVGPaths[0].Path, 8), test.element)
	}

	// not drawn
	for _, element := range []string{
		`<rect width="0" height="2"/>`,
		`<circle r="0"/>`,
		`<ellipse rx="2"/>`,
		`<polygon points="1 1"/>`,
	} {
		icon := parseString(t, `<svg viewBox="0 0 10 10">`+element+`</svg>`)
		assert.Empty(t, icon.SVGPaths, element)
	}

	_, err := ReadIconStream(strings.NewReader(`<svg viewBox="0 0 10 10"><polygon points="0 0 1"/></svg>`), IgnoreErrorMode)
	assert.ErrorIs(t, err, errOddPoints)
}

func TestRoundRect(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10"><rect width="10" height="4" rx="2"/></svg>`)
	require.Len(t, icon.SVGPaths, 1)
	path := icon.SVGPaths[0].Path
	assert.Equal(t, MoveTo(toFixedP(2, 0)), path[0])
	ext, ok := path.Extent(Identity)
	require.True(t, ok)
	assert.InDelta(t, 10, ext.W, 0.05)
	assert.InDelta(t, 4, ext.H, 0.05)
}

func TestNestedUse(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
	<defs>
		<rect id="r" width="2" height="2"/>
		<g id="pair"><use href="#r" x="1"/></g>
	</defs>
	<use href="#pair" x="2"/>
	<use href="#r"/>
	</svg>`)
	require.Len(t, icon.SVGPaths, 2)
	assert.Equal(t, "M 3 0 L 5 0 L 5 2 L 3 2 Z", pathData(icon.SVGPaths[0].Path, 8))
	assert.Equal(t, "M 0 0 L 2 0 L 2 2 L 0 2 Z", pathData(icon.SVGPaths[1].Path, 8))

	// ids stay unique
	assert.Equal(t, "r", icon.SVGPaths[0].ID)
	assert.Equal(t, "", icon.SVGPaths[1].ID)
	assert.Equal(t, 1, strings.Count(icon.ToString(DefaultWriteOptions()), `id="r"`))
}

func TestUseCycle(t *testing.T) {
	for _, input := range []string{
		`<svg viewBox="0 0 10 10"><defs><g id="a"><use href="#a"/></g></defs><use href="#a"/></svg>`,
		`<svg viewBox="0 0 10 10"><defs>
			<g id="a"><use href="#b"/></g>
			<g id="b"><use xlink:href="#a"/></g>
		</defs><use href="#a"/></svg>`,
	} {
		_, err := ReadIconStream(strings.NewReader(input), IgnoreErrorMode)
		assert.ErrorIs(t, err, ErrUseCycle)
	}
}

func TestElementsLimit(t *testing.T) {
	input := `<svg viewBox="0 0 10 10"><rect width="1" height="1"/><rect width="1" height="1"/><rect width="1" height="1"/></svg>`
	_, err := ReadIconStreamOptions(strings.NewReader(input), Options{MaxElements: 2})
	assert.ErrorIs(t, err, ErrElementsLimit)

	icon, err := ReadIconStreamOptions(strings.NewReader(input), Options{MaxElements: 3})
	require.NoError(t, err)
	assert.Len(t, icon.SVGPaths, 3)
}

func TestNonFiniteLength(t *testing.T) {
	for _, input := range []string{
		`<svg viewBox="0 0 10 10"><rect width="NaN" height="1"/></svg>`,
		`<svg viewBox="0 0 10 10"><rect width="1" height="-Inf"/></svg>`,
		`<svg width="Inf" height="1"/>`,
	} {
		_, err := ReadIconStream(strings.NewReader(input), IgnoreErrorMode)
		assert.ErrorIs(t, err, errParamMismatch, input)
	}
}
