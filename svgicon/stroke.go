package svgicon

import (
	"slices"

	"golang.org/x/image/math/fixed"
)

// JoinMode specifies how stroke segments bridge the gap at a join.
type JoinMode uint8

const (
	Arc JoinMode = iota // SVG2
	Round
	Bevel
	Miter
	MiterClip // SVG2
	ArcClip   // MiterClip applied to arcs, not in SVG2
)

// CapMode defines how to draw caps on the ends of lines.
type CapMode uint8

const (
	NilCap CapMode = iota // unset, resolved to ButtCap when drawing
	ButtCap
	SquareCap
	RoundCap
	CubicCap     // not in SVG2
	QuadraticCap // not in SVG2
)

// GapMode defines how to bridge the gap on the convex side of a
// join when the miter limit is exceeded. It is not in SVG2.
type GapMode uint8

const (
	NilGap GapMode = iota // unset, resolved to FlatGap when drawing
	FlatGap
	RoundGap
	CubicGap
	QuadraticGap
)

// attribute values, indexed by mode
var (
	joinKeywords = [...]string{
		Arc:       "arc",
		Round:     "round",
		Bevel:     "bevel",
		Miter:     "miter",
		MiterClip: "miter-clip",
		ArcClip:   "arc-clip",
	}
	capKeywords = [...]string{
		NilCap:       "",
		ButtCap:      "butt",
		SquareCap:    "square",
		RoundCap:     "round",
		CubicCap:     "cubic",
		QuadraticCap: "quadratic",
	}
	gapKeywords = [...]string{
		NilGap:       "",
		FlatGap:      "flat",
		RoundGap:     "round",
		CubicGap:     "cubic",
		QuadraticGap: "quadratic",
	}
)

// parseKeyword returns the mode whose keyword is `v`.
// The empty keyword never matches.
func parseKeyword[T ~uint8](keywords []string, v string) (T, bool) {
	if v == "" {
		return 0, false
	}
	i := slices.Index(keywords, v)
	if i < 0 {
		return 0, false
	}
	return T(i), true
}

func keywordString(keywords []string, i int, unknown string) string {
	if i >= len(keywords) {
		return unknown
	}
	if keywords[i] == "" {
		return "nil"
	}
	return keywords[i]
}

// String returns the stroke-linejoin value.
func (j JoinMode) String() string {
	return keywordString(joinKeywords[:], int(j), "<unknown JoinMode>")
}

// String returns the stroke-linecap value, or "nil".
func (c CapMode) String() string {
	return keywordString(capKeywords[:], int(c), "<unknown CapMode>")
}

func (g GapMode) String() string {
	return keywordString(gapKeywords[:], int(g), "<unknown GapMode>")
}

type DashOptions struct {
	Dash       []float64 // dash pattern, empty for a solid line
	DashOffset float64   // starting offset into the dash pattern
}

type JoinOptions struct {
	MiterLimit   fixed.Int26_6 // cutoff for the miter, arc, miter-clip and arc-clip joins
	LineJoin     JoinMode
	TrailLineCap CapMode // also used at the start when LeadLineCap is nil

	LeadLineCap CapMode // not in SVG2
	LineGap     GapMode // not in SVG2
}

// StrokeOptions are the stroking parameters sent to a Stroker,
// with lengths in the driver space.
type StrokeOptions struct {
	LineWidth fixed.Int26_6
	Join      JoinOptions
	Dash      DashOptions
}
