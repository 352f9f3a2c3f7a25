package svgicon

import "image/color"

// GradientUnits is the coordinate system of a gradient.
type GradientUnits uint8

const (
	ObjectBoundingBox GradientUnits = iota
	UserSpaceOnUse
)

// SpreadMethod is the painting outside of the gradient bounds.
type SpreadMethod uint8

const (
	PadSpread SpreadMethod = iota
	ReflectSpread
	RepeatSpread
)

var (
	unitsKeywords  = [...]string{ObjectBoundingBox: "objectBoundingBox", UserSpaceOnUse: "userSpaceOnUse"}
	spreadKeywords = [...]string{PadSpread: "pad", ReflectSpread: "reflect", RepeatSpread: "repeat"}
)

// String returns the gradientUnits value.
func (u GradientUnits) String() string {
	return keywordString(unitsKeywords[:], int(u), "<unknown GradientUnits>")
}

// String returns the spreadMethod value.
func (s SpreadMethod) String() string {
	return keywordString(spreadKeywords[:], int(s), "<unknown SpreadMethod>")
}

// GradStop is a stop element. StopColor is not premultiplied;
// Opacity multiplies its alpha.
type GradStop struct {
	StopColor color.Color
	Offset    float64 // in [0, 1]
	Opacity   float64
}

// Gradient is a linear or radial gradient, with its
// stops resolved.
type Gradient struct {
	ID        string
	Direction gradientDirecter // Linear or Radial
	Stops     []GradStop
	Bounds    Bounds   // box of the objectBoundingBox units
	Matrix    Matrix2D // gradientTransform
	Spread    SpreadMethod
	Units     GradientUnits
}

func (Gradient) isPattern() {}

type gradientDirecter interface {
	isRadial() bool
}

// Linear is the vector (x1, y1) to (x2, y2).
type Linear [4]float64

func (Linear) isRadial() bool { return false }

// Radial stores cx, cy, fx, fy, r, fr.
type Radial [6]float64

func (Radial) isRadial() bool { return true }

// IsRadial returns true for radial gradients.
func (g Gradient) IsRadial() bool {
	return g.Direction != nil && g.Direction.isRadial()
}
