package svgicon

import (
	"strings"

	"golang.org/x/image/math/fixed"
)

// Operation is one absolute command of a Path.
type Operation interface {
	// drawTo sends the operation to `d`, with its points mapped by `m`
	drawTo(d Drawer, m Matrix2D)
	// command returns the SVG command letter and the points
	command() (byte, []fixed.Point26_6)
}

type MoveTo fixed.Point26_6

type LineTo fixed.Point26_6

type QuadTo [2]fixed.Point26_6

type CubicTo [3]fixed.Point26_6

type Close struct{}

func (op MoveTo) drawTo(d Drawer, m Matrix2D) {
	d.Stop(false) // ends the previous sub path, if any
	d.Start(m.TFixed(fixed.Point26_6(op)))
}

func (op LineTo) drawTo(d Drawer, m Matrix2D) { d.Line(m.TFixed(fixed.Point26_6(op))) }

func (op QuadTo) drawTo(d Drawer, m Matrix2D) { d.QuadBezier(m.TFixed(op[0]), m.TFixed(op[1])) }

func (op CubicTo) drawTo(d Drawer, m Matrix2D) {
	d.CubeBezier(m.TFixed(op[0]), m.TFixed(op[1]), m.TFixed(op[2]))
}

func (Close) drawTo(d Drawer, _ Matrix2D) { d.Stop(true) }

func (op MoveTo) command() (byte, []fixed.Point26_6) { return 'M', []fixed.Point26_6{fixed.Point26_6(op)} }
func (op LineTo) command() (byte, []fixed.Point26_6) { return 'L', []fixed.Point26_6{fixed.Point26_6(op)} }
func (op QuadTo) command() (byte, []fixed.Point26_6) { return 'Q', op[:] }
func (op CubicTo) command() (byte, []fixed.Point26_6) { return 'C', op[:] }
func (Close) command() (byte, []fixed.Point26_6) { return 'Z', nil }

// Path is a sequence of absolute operations, in 26.6 fixed point.
// Every shape is reduced to a Path when parsing.
type Path []Operation

// pathData returns the SVG path data of p, with numbers
// rounded to `precision` decimals.
func pathData(p Path, precision uint8) string {
	var sb strings.Builder
	for i, op := range p {
		if i != 0 {
			sb.WriteByte(' ')
		}
		letter, points := op.command()
		sb.WriteByte(letter)
		for _, pt := range points {
			x, y := fixedTof(pt)
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(x, precision))
			sb.WriteByte(' ')
			sb.WriteString(formatNumber(y, precision))
		}
	}
	return sb.String()
}

// ToSVGPath returns the path data of p, as found
// in the `d` attribute of a path element.
func (p Path) ToSVGPath() string { return pathData(p, 3) }

func (p Path) String() string { return p.ToSVGPath() }

// Clear empties the path, keeping its storage.
func (p *Path) Clear() { *p = (*p)[:0] }

// Start starts a new sub path at `a`.
func (p *Path) Start(a fixed.Point26_6) { *p = append(*p, MoveTo(a)) }

func (p *Path) Line(b fixed.Point26_6) { *p = append(*p, LineTo(b)) }

func (p *Path) QuadBezier(b, c fixed.Point26_6) { *p = append(*p, QuadTo{b, c}) }

func (p *Path) CubeBezier(b, c, d fixed.Point26_6) { *p = append(*p, CubicTo{b, c, d}) }

// Stop appends a Close operation if `closeLoop` is true.
func (p *Path) Stop(closeLoop bool) {
	if closeLoop {
		*p = append(*p, Close{})
	}
}
