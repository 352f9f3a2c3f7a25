package svgicon

import (
	"image/color"
	"io"
	"strings"
)

// WriteOptions controls the XML output of an icon.
type WriteOptions struct {
	// IDPrefix is added to every id attribute and reference.
	IDPrefix string
	// CoordinatesPrecision is the number of decimals used for
	// path data and lengths.
	CoordinatesPrecision uint8
	// TransformsPrecision is the number of decimals used for
	// transform matrices.
	TransformsPrecision uint8
	// UseSingleQuote delimits attributes with ' instead of ".
	UseSingleQuote   bool
	Indent           Indent
	AttributesIndent Indent
}

// DefaultWriteOptions returns the options used by ToString
// when nothing else is needed.
func DefaultWriteOptions() WriteOptions {
	return WriteOptions{
		CoordinatesPrecision: 8,
		TransformsPrecision:  8,
		Indent:               IndentSpaces(4),
		AttributesIndent:     IndentNone,
	}
}

// ToString returns the normalized SVG document describing the icon.
// The output only depends on the icon and the options.
func (s *SvgIcon) ToString(opt WriteOptions) string {
	w := xmlWriter{opt: opt}
	s.write(&w)
	return w.buf.String()
}

// WriteXML is the same as ToString, but writes the document to `out`.
func (s *SvgIcon) WriteXML(out io.Writer, opt WriteOptions) error {
	w := xmlWriter{opt: opt}
	s.write(&w)
	_, err := w.buf.WriteTo(out)
	return err
}

func (s *SvgIcon) write(w *xmlWriter) {
	cp := w.opt.CoordinatesPrecision
	w.start("svg")
	if s.Width != "" {
		w.attr("width", s.Width)
	} else {
		w.attrNum("width", s.ViewBox.W, cp)
	}
	if s.Height != "" {
		w.attr("height", s.Height)
	} else {
		w.attrNum("height", s.ViewBox.H, cp)
	}
	w.attr("viewBox", strings.Join([]string{
		formatNumber(s.ViewBox.X, cp), formatNumber(s.ViewBox.Y, cp),
		formatNumber(s.ViewBox.W, cp), formatNumber(s.ViewBox.H, cp),
	}, " "))
	w.attr("xmlns", "http://www.w3.org/2000/svg")
	w.attr("xmlns:xlink", "http://www.w3.org/1999/xlink")

	for _, t := range s.Titles {
		w.start("title")
		w.text(t)
		w.end()
	}
	for _, d := range s.Descriptions {
		w.start("desc")
		w.text(d)
		w.end()
	}

	if grads := s.Gradients(); len(grads) != 0 {
		w.start("defs")
		for _, g := range grads {
			writeGradient(w, g)
		}
		w.end()
	}

	root := !s.Transform.IsIdentity()
	if root {
		w.start("g")
		w.attr("transform", formatMatrix(s.Transform, w.opt.TransformsPrecision))
	}
	for _, p := range s.SVGPaths {
		if len(p.Path) == 0 {
			continue
		}
		writePath(w, p)
	}
	if root {
		w.end()
	}
	w.end()
	if w.opt.Indent != IndentNone {
		w.buf.WriteByte('\n')
	}
}

func formatMatrix(m Matrix2D, precision uint8) string {
	var sb strings.Builder
	sb.WriteString("matrix(")
	for i, v := range [6]float64{m.A, m.B, m.C, m.D, m.E, m.F} {
		if i != 0 {
			sb.WriteByte(' ')
		}
		sb.WriteString(formatNumber(v, precision))
	}
	sb.WriteByte(')')
	return sb.String()
}

// nrgba returns the color components, as stored by the parser
// (that is, not premultiplied).
func nrgba(c color.Color) color.RGBA {
	switch c := c.(type) {
	case color.RGBA:
		return c
	case nil:
		return color.RGBA{A: 0xff}
	default:
		n := color.NRGBAModel.Convert(c).(color.NRGBA)
		return color.RGBA(n)
	}
}

func writeGradient(w *xmlWriter, g Gradient) {
	cp := w.opt.CoordinatesPrecision
	switch dir := g.Direction.(type) {
	case Radial:
		w.start("radialGradient")
		w.attr("id", w.opt.IDPrefix+g.ID)
		w.attrNum("cx", dir[0], cp)
		w.attrNum("cy", dir[1], cp)
		w.attrNum("r", dir[4], cp)
		w.attrNum("fx", dir[2], cp)
		w.attrNum("fy", dir[3], cp)
		if dir[5] != 0 {
			w.attrNum("fr", dir[5], cp)
		}
	default:
		var lin Linear
		if l, ok := dir.(Linear); ok {
			lin = l
		}
		w.start("linearGradient")
		w.attr("id", w.opt.IDPrefix+g.ID)
		w.attrNum("x1", lin[0], cp)
		w.attrNum("y1", lin[1], cp)
		w.attrNum("x2", lin[2], cp)
		w.attrNum("y2", lin[3], cp)
	}
	w.attr("gradientUnits", g.Units.String())
	if g.Spread != PadSpread {
		w.attr("spreadMethod", g.Spread.String())
	}
	if !g.Matrix.IsIdentity() && g.Matrix != (Matrix2D{}) {
		w.attr("gradientTransform", formatMatrix(g.Matrix, w.opt.TransformsPrecision))
	}
	for _, stop := range g.Stops {
		c := nrgba(stop.StopColor)
		w.start("stop")
		w.attrNum("offset", stop.Offset, cp)
		w.attr("stop-color", PlainColor{c}.Hex())
		if op := stop.Opacity * float64(c.A) / 0xff; op != 1 {
			w.attrNum("stop-opacity", op, cp)
		}
		w.end()
	}
	w.end()
}

// paint returns the attribute value for p, and the opacity
// factor carried by its alpha channel.
func paint(w *xmlWriter, p Pattern) (string, float64) {
	switch p := p.(type) {
	case PlainColor:
		return p.Hex(), float64(p.A) / 0xff
	case Gradient:
		return "url(#" + w.opt.IDPrefix + p.ID + ")", 1
	default:
		return "none", 1
	}
}

// capName returns the SVG value of c, with NilCap written as butt.
func capName(c CapMode) string {
	if c == NilCap {
		return capKeywords[ButtCap]
	}
	return c.String()
}

func writePath(w *xmlWriter, p SvgPath) {
	cp := w.opt.CoordinatesPrecision
	st := p.Style
	w.start("path")
	if p.ID != "" {
		w.attr("id", w.opt.IDPrefix+p.ID)
	}

	fill, alpha := paint(w, st.FillerColor)
	w.attr("fill", fill)
	if op := st.FillOpacity * alpha; st.FillerColor != nil && op != 1 {
		w.attrNum("fill-opacity", op, cp)
	}
	if st.FillerColor != nil && !st.UseNonZeroWinding {
		w.attr("fill-rule", "evenodd")
	}

	if st.LinerColor != nil {
		stroke, alpha := paint(w, st.LinerColor)
		w.attr("stroke", stroke)
		w.attrNum("stroke-width", st.LineWidth, cp)
		w.attr("stroke-linecap", capName(st.Join.TrailLineCap))
		w.attr("stroke-linejoin", st.Join.LineJoin.String())
		w.attrNum("stroke-miterlimit", float64(st.Join.MiterLimit)/64, cp)
		if len(st.Dash.Dash) != 0 {
			dashes := make([]string, len(st.Dash.Dash))
			for i, d := range st.Dash.Dash {
				dashes[i] = formatNumber(d, cp)
			}
			w.attr("stroke-dasharray", strings.Join(dashes, " "))
		}
		if st.Dash.DashOffset != 0 {
			w.attrNum("stroke-dashoffset", st.Dash.DashOffset, cp)
		}
		if op := st.LineOpacity * alpha; op != 1 {
			w.attrNum("stroke-opacity", op, cp)
		}
	}

	if !st.transform.IsIdentity() {
		w.attr("transform", formatMatrix(st.transform, w.opt.TransformsPrecision))
	}
	w.attr("d", pathData(p.Path, cp))
	w.end()
}
