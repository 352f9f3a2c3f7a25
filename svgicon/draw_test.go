package svgicon

import (
	"math"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/math/fixed"
)

// recorder stores the points and options it receives
type recorder struct {
	starts  []fixed.Point26_6
	colors  []Pattern
	options []StrokeOptions
	draws   int
}

func (r *recorder) SetupDrawers(willFill, willStroke bool) (Filler, Stroker) {
	var (
		f Filler
		s Stroker
	)
	if willFill {
		f = r
	}
	if willStroke {
		s = r
	}
	return f, s
}

func (r *recorder) Clear() {}
func (r *recorder) Start(a fixed.Point26_6) { r.starts = append(r.starts, a) }
func (r *recorder) Line(fixed.Point26_6) {}
func (r *recorder) QuadBezier(_, _ fixed.Point26_6) {}
func (r *recorder) CubeBezier(_, _, _ fixed.Point26_6) {}
func (r *recorder) Stop(bool) {}
func (r *recorder) SetColor(color Pattern, _ float64) { r.colors = append(r.colors, color) }
func (r *recorder) Draw() { r.draws++ }
func (r *recorder) SetWinding(bool) {}
func (r *recorder) SetStrokeOptions(options StrokeOptions) { r.options = append(r.options, options) }

func TestDrawTransformed(t *testing.T) {
	icon := parseString(t, `<svg viewBox="0 0 10 10">
		<rect x="1" y="1" width="2" height="2" stroke="red" stroke-width="1.5" stroke-dasharray="1 1"/>
		<rect x="1" y="1" width="2" height="2" fill="none"/>
	</svg>`)
	before := icon.ToString(DefaultWriteOptions())

	var rec recorder
	icon.DrawTransformed(&rec, 1, Identity.Scale(2, 2))
	assert.Equal(t, []fixed.Point26_6{toFixedP(2, 2), toFixedP(2, 2)}, rec.starts) // filled then stroked
	assert.Equal(t, 2, rec.draws)
	require.Len(t, rec.options, 1)
	assert.Equal(t, fToFixed(3), rec.options[0].LineWidth)
	assert.Equal(t, []float64{2, 2}, rec.options[0].Dash.Dash)
	assert.Equal(t, ButtCap, rec.options[0].Join.LeadLineCap)

	// the tree is not modified
	assert.Equal(t, before, icon.ToString(DefaultWriteOptions()))
	assert.Equal(t, []float64{1, 1}, icon.SVGPaths[0].Style.Dash.Dash)
	assert.Equal(t, Identity, icon.SVGPaths[0].Style.Transform())
}

func TestConcurrentDraw(t *testing.T) {
	icon, err := ReadIcon("testdata/gradients.svg", StrictErrorMode)
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([][]fixed.Point26_6, 8)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			var rec recorder
			icon.DrawTransformed(&rec, 1, icon.TargetTransform(0, 0, 128, 128))
			results[i] = rec.starts
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
}

func TestTargetTransform(t *testing.T) {
	icon := &SvgIcon{ViewBox: Bounds{X: 10, Y: 20, W: 100, H: 50}}
	m := icon.TargetTransform(0, 0, 200, 200)
	x, y := m.Transform(10, 20)
	assert.Equal(t, [2]float64{0, 0}, [2]float64{x, y})
	x, y = m.Transform(110, 70)
	assert.Equal(t, [2]float64{200, 200}, [2]float64{x, y})

	icon.SetTarget(0, 0, 200, 200)
	assert.Equal(t, m, icon.Transform)
}

func TestMatrix(t *testing.T) {
	m := Identity.Translate(3, 4).Rotate(math.Pi / 3).Scale(2, 0.5).SkewX(0.2)
	inv := m.Invert()
	x, y := inv.Transform(m.Transform(7, -2))
	assert.InDelta(t, 7, x, 1e-9)
	assert.InDelta(t, -2, y, 1e-9)
	assert.InDelta(t, 1, m.Det(), 1e-9)
	assert.True(t, Identity.IsIdentity())
	assert.False(t, m.IsIdentity())

	vx, vy := Identity.Translate(5, 5).TransformVector(1, 2)
	assert.Equal(t, [2]float64{1, 2}, [2]float64{vx, vy})
}

func TestExtent(t *testing.T) {
	var p Path
	p.Start(toFixedP(0, 0))
	p.CubeBezier(toFixedP(0, 10), toFixedP(10, 10), toFixedP(10, 0))
	ext, ok := p.Extent(Identity)
	require.True(t, ok)
	assert.InDelta(t, 0, ext.X, 1e-9)
	assert.InDelta(t, 10, ext.W, 1e-9)
	assert.InDelta(t, 7.5, ext.H, 1e-9) // below the control points

	ext, _ = p.Extent(Identity.Translate(1, 2))
	assert.InDelta(t, 1, ext.X, 1e-9)
	assert.InDelta(t, 2, ext.Y, 1e-9)
}
