package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// This file reduces the basic shapes and the elliptical
// arcs to lines and cubic Béziers.

// maxArcSpan is the largest parameter range, in radians,
// approximated by one cubic
const maxArcSpan = math.Pi / 8

// kappa is the control point distance, relative to the radius,
// of the cubic approximating a quarter circle.
const kappa = 0.5522847498

// toFixedP converts two floats to a fixed point.
func toFixedP(x, y float64) (p fixed.Point26_6) {
	p.X = fixed.Int26_6(x * 64)
	p.Y = fixed.Int26_6(y * 64)
	return
}

// addRect adds the closed rectangle with corners (x0, y0) and (x1, y1).
func (p *Path) addRect(x0, y0, x1, y1 float64) {
	p.Start(toFixedP(x0, y0))
	p.Line(toFixedP(x1, y0))
	p.Line(toFixedP(x1, y1))
	p.Line(toFixedP(x0, y1))
	p.Stop(true)
}

// addRoundRect adds a rectangle whose corners are quarters of
// ellipse with radii rx and ry. A zero radius takes the value
// of the other one; both are clamped to half the sides.
func (p *Path) addRoundRect(x0, y0, x1, y1, rx, ry float64) {
	if rx <= 0 && ry <= 0 {
		p.addRect(x0, y0, x1, y1)
		return
	}
	if rx <= 0 {
		rx = ry
	} else if ry <= 0 {
		ry = rx
	}
	rx = math.Min(rx, (x1-x0)/2)
	ry = math.Min(ry, (y1-y0)/2)
	kx, ky := kappa*rx, kappa*ry

	p.Start(toFixedP(x0+rx, y0))
	p.Line(toFixedP(x1-rx, y0))
	p.CubeBezier(toFixedP(x1-rx+kx, y0), toFixedP(x1, y0+ry-ky), toFixedP(x1, y0+ry))
	p.Line(toFixedP(x1, y1-ry))
	p.CubeBezier(toFixedP(x1, y1-ry+ky), toFixedP(x1-rx+kx, y1), toFixedP(x1-rx, y1))
	p.Line(toFixedP(x0+rx, y1))
	p.CubeBezier(toFixedP(x0+rx-kx, y1), toFixedP(x0, y1-ry+ky), toFixedP(x0, y1-ry))
	p.Line(toFixedP(x0, y0+ry))
	p.CubeBezier(toFixedP(x0, y0+ry-ky), toFixedP(x0+rx-kx, y0), toFixedP(x0+rx, y0))
	p.Stop(true)
}

// ellipse has radii rx and ry along its axis, which are rotated
// by an angle with the given sine and cosine.
type ellipse struct {
	cx, cy   float64
	rx, ry   float64
	sin, cos float64
}

// point returns the point of parameter eta.
func (e ellipse) point(eta float64) (x, y float64) {
	a, b := e.rx*math.Cos(eta), e.ry*math.Sin(eta)
	return e.cx + a*e.cos - b*e.sin, e.cy + a*e.sin + b*e.cos
}

// tangent returns the derivative of point at eta.
func (e ellipse) tangent(eta float64) (dx, dy float64) {
	a, b := -e.rx*math.Sin(eta), e.ry*math.Cos(eta)
	return a*e.cos - b*e.sin, a*e.sin + b*e.cos
}

// addEllipticArc adds the arc of `e` from parameter eta to eta+dEta,
// ending exactly at (endX, endY). The current point must be e.point(eta).
// See L. Maisonobe, "Drawing an elliptical arc using polylines,
// quadratic or cubic Bezier curves", 2003.
func (p *Path) addEllipticArc(e ellipse, eta, dEta, endX, endY float64) {
	segs := int(math.Ceil(math.Abs(dEta) / maxArcSpan))
	if segs == 0 {
		return
	}
	step := dEta / float64(segs)
	t := math.Tan(step / 2)
	alpha := math.Sin(step) * (math.Sqrt(4+3*t*t) - 1) / 3

	x1, y1 := e.point(eta)
	dx1, dy1 := e.tangent(eta)
	for i := 1; i <= segs; i++ {
		x2, y2 := endX, endY
		if i < segs {
			x2, y2 = e.point(eta + step*float64(i))
		}
		dx2, dy2 := e.tangent(eta + step*float64(i))
		p.CubeBezier(toFixedP(x1+alpha*dx1, y1+alpha*dy1), toFixedP(x2-alpha*dx2, y2-alpha*dy2), toFixedP(x2, y2))
		x1, y1, dx1, dy1 = x2, y2, dx2, dy2
	}
}

// arcCenter converts the SVG arc from (x1, y1) to (x2, y2) to its center
// parameterization, returning the ellipse, the start parameter and the
// signed parameter span. Radii too small to join the end points are
// scaled up. The radii must be positive and the end points distinct.
func arcCenter(x1, y1, rx, ry, phi float64, largeArc, sweep bool, x2, y2 float64) (e ellipse, eta, dEta float64) {
	sin, cos := math.Sincos(phi)
	// end points in the frame of the ellipse axis, centered at their middle
	hx, hy := (x1-x2)/2, (y1-y2)/2
	px, py := cos*hx+sin*hy, -sin*hx+cos*hy

	if lambda := px*px/(rx*rx) + py*py/(ry*ry); lambda > 1 {
		s := math.Sqrt(lambda)
		rx, ry = rx*s, ry*s
	}

	num := rx*rx*ry*ry - rx*rx*py*py - ry*ry*px*px
	den := rx*rx*py*py + ry*ry*px*px
	var coef float64
	if num > 0 && den > 0 {
		coef = math.Sqrt(num / den)
	}
	if largeArc == sweep {
		coef = -coef
	}
	qx, qy := coef*rx*py/ry, -coef*ry*px/rx

	e = ellipse{
		cx: cos*qx - sin*qy + (x1+x2)/2,
		cy: sin*qx + cos*qy + (y1+y2)/2,
		rx: rx, ry: ry,
		sin: sin, cos: cos,
	}
	eta = math.Atan2((py-qy)/ry, (px-qx)/rx)
	dEta = math.Atan2((-py-qy)/ry, (-px-qx)/rx) - eta
	if sweep && dEta < 0 {
		dEta += 2 * math.Pi
	} else if !sweep && dEta > 0 {
		dEta -= 2 * math.Pi
	}
	return e, eta, dEta
}
