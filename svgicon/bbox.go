package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

func fixedTof(p fixed.Point26_6) (float64, float64) {
	return float64(p.X) / 64, float64(p.Y) / 64
}

// poly is the polynomial c[0] + c[1]t + c[2]t^2 + c[3]t^3, giving
// one coordinate of a Bézier curve for t in [0, 1].
type poly [4]float64

func quadPoly(p0, p1, p2 float64) poly {
	return poly{p0, 2 * (p1 - p0), p0 - 2*p1 + p2}
}

func cubicPoly(p0, p1, p2, p3 float64) poly {
	return poly{p0, 3 * (p1 - p0), 3 * (p0 - 2*p1 + p2), p3 - 3*p2 + 3*p1 - p0}
}

func (c poly) at(t float64) float64 {
	return c[0] + t*(c[1]+t*(c[2]+t*c[3]))
}

// extrema appends to `ts` the roots of the derivative
// lying in ]0, 1[.
func (c poly) extrema(ts []float64) []float64 {
	// derivative: a t^2 + b t + k
	a, b, k := 3*c[3], 2*c[2], c[1]
	add := func(t float64) {
		if 0 < t && t < 1 {
			ts = append(ts, t)
		}
	}
	switch d := b*b - 4*a*k; {
	case a == 0 && b != 0:
		add(-k / b)
	case a == 0:
	case d == 0:
		add(-b / (2 * a))
	case d > 0:
		sq := math.Sqrt(d)
		add((-b + sq) / (2 * a))
		add((-b - sq) / (2 * a))
	}
	return ts
}

// BoundingBox accumulates the exact extent of the
// segments it receives. It implements Drawer.
// The zero value is an empty box.
type BoundingBox struct {
	minX, minY, maxX, maxY float64
	nonEmpty               bool
	current                fixed.Point26_6
	ts                     []float64
}

func (b *BoundingBox) addPoint(x, y float64) {
	if !b.nonEmpty {
		b.minX, b.maxX, b.minY, b.maxY = x, x, y, y
		b.nonEmpty = true
		return
	}
	b.minX = math.Min(b.minX, x)
	b.minY = math.Min(b.minY, y)
	b.maxX = math.Max(b.maxX, x)
	b.maxY = math.Max(b.maxY, y)
}

// addCurve adds the extrema and the end of the curve,
// whose start is the current point.
func (b *BoundingBox) addCurve(x, y poly, end fixed.Point26_6) {
	b.ts = y.extrema(x.extrema(b.ts[:0]))
	for _, t := range b.ts {
		b.addPoint(x.at(t), y.at(t))
	}
	b.addPoint(fixedTof(end))
	b.current = end
}

// Bounds returns the accumulated box, and false if nothing
// was added.
func (b *BoundingBox) Bounds() (Bounds, bool) {
	return Bounds{X: b.minX, Y: b.minY, W: b.maxX - b.minX, H: b.maxY - b.minY}, b.nonEmpty
}

func (b *BoundingBox) Clear() { *b = BoundingBox{ts: b.ts[:0]} }

func (b *BoundingBox) Start(a fixed.Point26_6) {
	b.current = a
	b.addPoint(fixedTof(a))
}

func (b *BoundingBox) Line(p fixed.Point26_6) {
	b.current = p
	b.addPoint(fixedTof(p))
}

func (b *BoundingBox) QuadBezier(p1, p2 fixed.Point26_6) {
	x0, y0 := fixedTof(b.current)
	x1, y1 := fixedTof(p1)
	x2, y2 := fixedTof(p2)
	b.addCurve(quadPoly(x0, x1, x2), quadPoly(y0, y1, y2), p2)
}

func (b *BoundingBox) CubeBezier(p1, p2, p3 fixed.Point26_6) {
	x0, y0 := fixedTof(b.current)
	x1, y1 := fixedTof(p1)
	x2, y2 := fixedTof(p2)
	x3, y3 := fixedTof(p3)
	b.addCurve(cubicPoly(x0, x1, x2, x3), cubicPoly(y0, y1, y2, y3), p3)
}

func (b *BoundingBox) Stop(bool) {}

func (b *BoundingBox) SetColor(Pattern, float64) {}

func (b *BoundingBox) Draw() {}

// Extent returns the exact bounding box of the path, after
// applying m.
func (p Path) Extent(m Matrix2D) (Bounds, bool) {
	var bb BoundingBox
	for _, op := range p {
		op.drawTo(&bb, m)
	}
	return bb.Bounds()
}

// PathExtent returns the union of the extents of every path,
// in the user space of the icon (the root Transform is ignored).
// It returns false for an icon without geometry.
func (s *SvgIcon) PathExtent() (Bounds, bool) {
	var bb BoundingBox
	for _, svgp := range s.SVGPaths {
		for _, op := range svgp.Path {
			op.drawTo(&bb, svgp.Style.transform)
		}
	}
	return bb.Bounds()
}
