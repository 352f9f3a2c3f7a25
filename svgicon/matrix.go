package svgicon

import (
	"math"

	"golang.org/x/image/math/fixed"
)

// Matrix2D represents the affine transform
//
//	| A C E |
//	| B D F |
//	| 0 0 1 |
type Matrix2D struct {
	A, B, C, D, E, F float64
}

// Identity is the identity transform.
var Identity = Matrix2D{1, 0, 0, 1, 0, 0}

// IsIdentity returns true if m is exactly the identity.
func (m Matrix2D) IsIdentity() bool { return m == Identity }

// Transform multiplies the point (x, y) by m.
func (m Matrix2D) Transform(x, y float64) (x1, y1 float64) {
	x1 = x*m.A + y*m.C + m.E
	y1 = x*m.B + y*m.D + m.F
	return
}

// TransformVector applies m to (x, y), ignoring the translation.
func (m Matrix2D) TransformVector(x, y float64) (x1, y1 float64) {
	x1 = x*m.A + y*m.C
	y1 = x*m.B + y*m.D
	return
}

// TFixed transforms a fixed point.
func (m Matrix2D) TFixed(p fixed.Point26_6) fixed.Point26_6 {
	x, y := m.Transform(float64(p.X)/64, float64(p.Y)/64)
	return fixed.Point26_6{X: fixed.Int26_6(x * 64), Y: fixed.Int26_6(y * 64)}
}

// Mult returns m * b.
func (m Matrix2D) Mult(b Matrix2D) Matrix2D {
	return Matrix2D{
		A: m.A*b.A + m.C*b.B,
		B: m.B*b.A + m.D*b.B,
		C: m.A*b.C + m.C*b.D,
		D: m.B*b.C + m.D*b.D,
		E: m.A*b.E + m.C*b.F + m.E,
		F: m.B*b.E + m.D*b.F + m.F,
	}
}

// Det returns the determinant of the linear part.
func (m Matrix2D) Det() float64 {
	return m.A*m.D - m.B*m.C
}

// Invert returns the inverse of m. The result is undefined when
// Det is zero.
func (m Matrix2D) Invert() Matrix2D {
	det := m.Det()
	return Matrix2D{
		A: m.D / det,
		B: -m.B / det,
		C: -m.C / det,
		D: m.A / det,
		E: (m.C*m.F - m.D*m.E) / det,
		F: (m.B*m.E - m.A*m.F) / det,
	}
}

// Translate composes m with a translation.
func (m Matrix2D) Translate(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, 0, 1, x, y})
}

// Scale composes m with a scaling.
func (m Matrix2D) Scale(x, y float64) Matrix2D {
	return m.Mult(Matrix2D{x, 0, 0, y, 0, 0})
}

// Rotate composes m with a rotation of theta radians.
func (m Matrix2D) Rotate(theta float64) Matrix2D {
	sin, cos := math.Sincos(theta)
	return m.Mult(Matrix2D{cos, sin, -sin, cos, 0, 0})
}

// SkewX composes m with a horizontal skew of theta radians.
func (m Matrix2D) SkewX(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, 0, math.Tan(theta), 1, 0, 0})
}

// SkewY composes m with a vertical skew of theta radians.
func (m Matrix2D) SkewY(theta float64) Matrix2D {
	return m.Mult(Matrix2D{1, math.Tan(theta), 0, 1, 0, 0})
}
