package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Drawing an icon streams its paths, already transformed,
// to a backend implementing Driver: a rasterizer for images,
// a PDF writer, or a geometry accumulator like BoundingBox.

// Drawer receives the segments of one path, in the
// driver space.
type Drawer interface {
	// Clear resets the drawer before a new path.
	Clear()

	Start(a fixed.Point26_6)
	Line(b fixed.Point26_6)
	QuadBezier(b, c fixed.Point26_6)
	CubeBezier(b, c, d fixed.Point26_6)

	// Stop ends the current sub path, closing
	// it if `closeLoop` is true.
	Stop(closeLoop bool)

	// SetColor is called once the path is complete, before Draw.
	// `color` is never nil.
	SetColor(color Pattern, opacity float64)

	// Draw paints the accumulated path.
	Draw()
}

type Filler interface {
	Drawer

	SetWinding(useNonZeroWinding bool)
}

type Stroker interface {
	Drawer

	SetStrokeOptions(options StrokeOptions)
}

// Driver provides the painters for each path.
type Driver interface {
	// SetupDrawers is called for every path. A drawer must be
	// returned for each true argument, and may be nil otherwise.
	// When both are requested, the same segments are sent to the
	// Filler then to the Stroker.
	SetupDrawers(willFill, willStroke bool) (Filler, Stroker)
}

// DefaultStyle is the style of the root element: black fill
// with the non zero rule, no stroke, full opacities.
var DefaultStyle = PathStyle{
	FillOpacity:       1.0,
	LineOpacity:       1.0,
	LineWidth:         2.0,
	UseNonZeroWinding: true,
	Join: JoinOptions{
		MiterLimit:   fToFixed(4.),
		LineJoin:     Bevel,
		TrailLineCap: ButtCap,
	},
	FillerColor: NewPlainColor(0x00, 0x00, 0x00, 0xff),
	transform:   Identity,
}

// TargetTransform returns the matrix mapping the view box
// to the rectangle (x, y, w, h).
func (s *SvgIcon) TargetTransform(x, y, w, h float64) Matrix2D {
	vb := s.ViewBox
	return Identity.Translate(x, y).Scale(w/vb.W, h/vb.H).Translate(-vb.X, -vb.Y)
}

// SetTarget sets the icon Transform so that Draw fills
// the given rectangle.
func (s *SvgIcon) SetTarget(x, y, w, h float64) {
	s.Transform = s.TargetTransform(x, y, w, h)
}

// Draw sends every path to `d`, mapped with the icon Transform.
func (s *SvgIcon) Draw(d Driver, opacity float64) {
	s.DrawTransformed(d, opacity, s.Transform)
}

// DrawTransformed is the same as Draw, but uses `t` instead of the
// icon Transform. The icon is not modified, so that concurrent
// calls are safe.
func (s *SvgIcon) DrawTransformed(d Driver, opacity float64, t Matrix2D) {
	for i := range s.SVGPaths {
		s.SVGPaths[i].draw(d, opacity, t)
	}
}

func (svgp *SvgPath) draw(d Driver, opacity float64, t Matrix2D) {
	st := svgp.Style
	m := t.Mult(st.transform)

	filler, stroker := d.SetupDrawers(st.FillerColor != nil, st.LinerColor != nil)
	if filler != nil {
		filler.SetWinding(st.UseNonZeroWinding)
		drawPath(filler, svgp.Path, m, inUserSpace(st.FillerColor, m), st.FillOpacity*opacity)
		filler.SetWinding(true)
	}
	if stroker != nil {
		stroker.SetStrokeOptions(st.strokeOptions(m))
		drawPath(stroker, svgp.Path, m, inUserSpace(st.LinerColor, m), st.LineOpacity*opacity)
	}
}

// drawPath sends `p` mapped by `m` to `d`, then draws it.
func drawPath(d Drawer, p Path, m Matrix2D, color Pattern, opacity float64) {
	d.Clear()
	for _, op := range p {
		op.drawTo(d, m)
	}
	d.Stop(false)
	d.SetColor(color, opacity)
	d.Draw()
}

// inUserSpace returns the pattern to use with points transformed by m:
// userSpaceOnUse gradients are expressed in the path coordinates.
// Object bounding box gradients are resolved by the drivers.
func inUserSpace(p Pattern, m Matrix2D) Pattern {
	g, ok := p.(Gradient)
	if !ok || g.Units != UserSpaceOnUse {
		return p
	}
	g.Matrix = m.Mult(g.Matrix)
	return g
}

// strokeOptions resolves the default caps and gaps, and scales
// the lengths by the mean scaling factor of m.
func (s PathStyle) strokeOptions(m Matrix2D) StrokeOptions {
	join := s.Join
	if join.LineGap == NilGap {
		join.LineGap = FlatGap
	}
	if join.TrailLineCap == NilCap {
		join.TrailLineCap = ButtCap
	}
	if join.LeadLineCap == NilCap {
		join.LeadLineCap = join.TrailLineCap
	}

	scale := math.Sqrt(math.Abs(m.Det()))
	dash := DashOptions{DashOffset: s.Dash.DashOffset * scale}
	if len(s.Dash.Dash) != 0 {
		dash.Dash = make([]float64, len(s.Dash.Dash))
		for i, v := range s.Dash.Dash {
			dash.Dash[i] = v * scale
		}
	}
	return StrokeOptions{LineWidth: fToFixed(s.LineWidth * scale), Join: join, Dash: dash}
}
