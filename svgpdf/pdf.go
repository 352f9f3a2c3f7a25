// Implements a PDF backend to render SVG images,
// by wrapping codeberg.org/go-pdf/fpdf.
package svgpdf

import (
	"errors"
	"image/color"
	"io"

	"codeberg.org/go-pdf/fpdf"
	"github.com/benoitkugler/okresvg/svgicon"
	"golang.org/x/image/math/fixed"
)

// assert interface conformance
var (
	_ svgicon.Driver  = Renderer{}
	_ svgicon.Filler  = (*filler)(nil)
	_ svgicon.Stroker = (*stroker)(nil)
)

// ErrEmptyPage is returned for an icon without size nor geometry.
var ErrEmptyPage = errors.New("empty page size")

// Renderer writes the paths on the current page
// of a PDF document.
type Renderer struct {
	pdf *fpdf.Fpdf
}

// implements the common path commands,
// shared by the filler and the stroker
type pather struct {
	pdf *fpdf.Fpdf
}

// implements the filling operation
type filler struct {
	pather
	useNonZeroWinding bool
}

// implements the stroking operation
type stroker struct {
	pather
}

// NewRenderer return a renderer which will
// write to the given `pdf`.
func NewRenderer(pdf *fpdf.Fpdf) Renderer {
	return Renderer{pdf: pdf}
}

// SetupDrawers implements svgicon.Driver. Since painting
// consumes the PDF path, the filler and the stroker both write it.
func (r Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = &filler{pather: pather{pdf: r.pdf}, useNonZeroWinding: true}
	}
	if willStroke {
		s = &stroker{pather: pather{pdf: r.pdf}}
	}
	return f, s
}

// RenderSVGIconToPDF reads the given icon and renders it
// as a one page document, written to `out`.
func RenderSVGIconToPDF(icon io.Reader, out io.Writer) error {
	parsedIcon, err := svgicon.ReadIconStream(icon, svgicon.WarnErrorMode)
	if err != nil {
		return err
	}
	return WriteIcon(parsedIcon, out)
}

// WriteIcon renders `icon` as a one page document.
// The page has the size of the icon view box, or of its
// geometry if the view box is empty.
func WriteIcon(icon *svgicon.SvgIcon, out io.Writer) error {
	page := icon.ViewBox
	m := icon.TargetTransform(0, 0, page.W, page.H)
	if page.W <= 0 || page.H <= 0 {
		var ok bool
		page, ok = icon.PathExtent()
		if !ok || page.W <= 0 || page.H <= 0 {
			return ErrEmptyPage
		}
		m = svgicon.Identity.Translate(-page.X, -page.Y)
	}
	pdf := fpdf.NewCustom(&fpdf.InitType{
		UnitStr: "pt",
		Size:    fpdf.SizeType{Wd: page.W, Ht: page.H},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()
	icon.DrawTransformed(NewRenderer(pdf), 1.0, m)
	return pdf.Output(out)
}

func fixedTof(a fixed.Point26_6) (float64, float64) {
	return float64(a.X) / 64, float64(a.Y) / 64
}

func (p *pather) Clear() {}

func (p *pather) Start(a fixed.Point26_6) {
	p.pdf.MoveTo(fixedTof(a))
}

func (p *pather) Line(b fixed.Point26_6) {
	p.pdf.LineTo(fixedTof(b))
}

func (p *pather) QuadBezier(b fixed.Point26_6, c fixed.Point26_6) {
	cx, cy := fixedTof(b)
	x, y := fixedTof(c)
	p.pdf.CurveTo(cx, cy, x, y)
}

func (p *pather) CubeBezier(b fixed.Point26_6, c fixed.Point26_6, d fixed.Point26_6) {
	cx0, cy0 := fixedTof(b)
	cx1, cy1 := fixedTof(c)
	x, y := fixedTof(d)
	p.pdf.CurveBezierCubicTo(cx0, cy0, cx1, cy1, x, y)
}

func (p *pather) Stop(closeLoop bool) {
	if closeLoop {
		p.pdf.ClosePath()
	}
}

// patternColor returns the uniform color used for `pattern`, and the
// opacity it carries.
// Gradients are approximated by their first stop.
func patternColor(pattern svgicon.Pattern) (r, g, b int, opacity float64, ok bool) {
	var c color.RGBA
	opacity = 1
	switch pattern := pattern.(type) {
	case svgicon.PlainColor:
		c = pattern.RGBA
	case svgicon.Gradient:
		if len(pattern.Stops) == 0 {
			return 0, 0, 0, 0, false
		}
		stop := pattern.Stops[0]
		if sc, isRGBA := stop.StopColor.(color.RGBA); isRGBA {
			c = sc
		} else {
			c = color.RGBA(color.NRGBAModel.Convert(stop.StopColor).(color.NRGBA))
		}
		opacity = stop.Opacity
	default:
		return 0, 0, 0, 0, false
	}
	return int(c.R), int(c.G), int(c.B), opacity * float64(c.A) / 255., true
}

// the path is always written: the color may be set after
func (f *filler) SetColor(pattern svgicon.Pattern, opacity float64) {
	r, g, b, op, ok := patternColor(pattern)
	if !ok {
		op = 0
	}
	f.pdf.SetFillColor(r, g, b)
	f.pdf.SetAlpha(opacity*op, "")
}

func (f *filler) Draw() {
	styleStr := "F*"
	if f.useNonZeroWinding {
		styleStr = "F"
	}
	f.pdf.DrawPath(styleStr)
}

func (f *filler) SetWinding(useNonZeroWinding bool) {
	f.useNonZeroWinding = useNonZeroWinding
}

func (s *stroker) SetColor(pattern svgicon.Pattern, opacity float64) {
	r, g, b, op, ok := patternColor(pattern)
	if !ok {
		op = 0
	}
	s.pdf.SetDrawColor(r, g, b)
	s.pdf.SetAlpha(opacity*op, "")
}

func (s *stroker) SetStrokeOptions(options svgicon.StrokeOptions) {
	capStyle := "butt"
	switch options.Join.TrailLineCap {
	case svgicon.RoundCap, svgicon.CubicCap, svgicon.QuadraticCap:
		capStyle = "round"
	case svgicon.SquareCap:
		capStyle = "square"
	}
	joinStyle := "miter"
	switch options.Join.LineJoin {
	case svgicon.Bevel:
		joinStyle = "bevel"
	case svgicon.Round, svgicon.Arc, svgicon.ArcClip:
		joinStyle = "round"
	}
	s.pdf.SetLineWidth(float64(options.LineWidth) / 64)
	s.pdf.SetLineCapStyle(capStyle)
	s.pdf.SetLineJoinStyle(joinStyle)
	s.pdf.SetDashPattern(options.Dash.Dash, options.Dash.DashOffset)
}

func (s *stroker) Draw() {
	s.pdf.DrawPath("D")
}
