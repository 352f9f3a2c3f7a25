package svgicon

import (
	"encoding/xml"
	"fmt"
	"log/slog"
	"math"
	"strings"

	"golang.org/x/image/math/fixed"
)

type (
	// iconCursor is used while parsing SVG files
	iconCursor struct {
		pathCursor
		icon                                    *SvgIcon
		styleStack                              []PathStyle
		grad                                    *Gradient
		inTitleText, inDescText, inGrad, inDefs bool
		currentDef                              []definition
		skipDepth                               int // > 0 inside an element which is not rendered
		seenIDs                                 map[string]bool
		replaying                               []string // ids of the use elements being expanded
		elements, maxElements                   int
		log                                     *slog.Logger
	}

	// definition is used to store what's given in a def tag
	definition struct {
		ID, Tag string
		Attrs   []xml.Attr
	}
)

func fToFixed(f float64) fixed.Int26_6 {
	return fixed.Int26_6(f * 64)
}

// transformFuncs apply a transform function to a matrix,
// indexed by lower case name and number of arguments
var transformFuncs = map[string]map[int]func(m Matrix2D, a []float64) Matrix2D{
	"matrix": {6: func(m Matrix2D, a []float64) Matrix2D {
		return m.Mult(Matrix2D{A: a[0], B: a[1], C: a[2], D: a[3], E: a[4], F: a[5]})
	}},
	"translate": {
		1: func(m Matrix2D, a []float64) Matrix2D { return m.Translate(a[0], 0) },
		2: func(m Matrix2D, a []float64) Matrix2D { return m.Translate(a[0], a[1]) },
	},
	"scale": {
		1: func(m Matrix2D, a []float64) Matrix2D { return m.Scale(a[0], a[0]) },
		2: func(m Matrix2D, a []float64) Matrix2D { return m.Scale(a[0], a[1]) },
	},
	"rotate": {
		1: func(m Matrix2D, a []float64) Matrix2D { return m.Rotate(radians(a[0])) },
		3: func(m Matrix2D, a []float64) Matrix2D {
			return m.Translate(a[1], a[2]).Rotate(radians(a[0])).Translate(-a[1], -a[2])
		},
	},
	"skewx": {1: func(m Matrix2D, a []float64) Matrix2D { return m.SkewX(radians(a[0])) }},
	"skewy": {1: func(m Matrix2D, a []float64) Matrix2D { return m.SkewY(radians(a[0])) }},
}

func radians(deg float64) float64 { return deg * math.Pi / 180 }

// parseTransform composes the transform list v on the right of m
func (c *iconCursor) parseTransform(m Matrix2D, v string) (Matrix2D, error) {
	for _, t := range strings.Split(v, ")") {
		t = strings.TrimLeft(strings.TrimSpace(t), ", ")
		if t == "" {
			continue
		}
		name, args, ok := strings.Cut(t, "(")
		if !ok || args == "" {
			return m, errParamMismatch
		}
		if err := c.getPoints(args); err != nil {
			return m, err
		}
		name = strings.ToLower(strings.TrimSpace(name))
		apply := transformFuncs[name][len(c.points)]
		if apply == nil {
			return m, fmt.Errorf("%w: %s with %d arguments", errParamMismatch, name, len(c.points))
		}
		m = apply(m, c.points)
	}
	return m, nil
}

// readPaint parses a fill or stroke value, which is either
// a color or a gradient reference.
func (c *iconCursor) readPaint(v string, current Pattern) (Pattern, error) {
	if gradient, ok := c.readGradURL(v, current); ok {
		return gradient, nil
	}
	col, err := parseSVGColor(v)
	if err != nil {
		return nil, err
	}
	return col.asPattern(), nil
}

func (c *iconCursor) readDashArray(v string) ([]float64, error) {
	if v == "none" {
		return nil, nil
	}
	fields := splitOnCommaOrSpace(v)
	out := make([]float64, len(fields))
	for i, f := range fields {
		d, err := c.parseUnit(f, diagPercentage)
		if err != nil {
			return nil, err
		}
		out[i] = d
	}
	return out, nil
}

func (c *iconCursor) readStyleAttr(st *PathStyle, k, v string) (err error) {
	switch k {
	case "fill":
		st.FillerColor, err = c.readPaint(v, st.FillerColor)
	case "stroke":
		st.LinerColor, err = c.readPaint(v, st.LinerColor)
	case "fill-rule":
		if v == "evenodd" || v == "nonzero" {
			st.UseNonZeroWinding = v == "nonzero"
		}
	case "stroke-linegap":
		if gap, ok := parseKeyword[GapMode](gapKeywords[:], v); ok {
			st.Join.LineGap = gap
		}
	case "stroke-leadlinecap":
		if lineCap, ok := parseKeyword[CapMode](capKeywords[:], v); ok {
			st.Join.LeadLineCap = lineCap
		}
	case "stroke-linecap":
		if lineCap, ok := parseKeyword[CapMode](capKeywords[:], v); ok {
			st.Join.TrailLineCap = lineCap
		}
	case "stroke-linejoin":
		if join, ok := parseKeyword[JoinMode](joinKeywords[:], v); ok {
			st.Join.LineJoin = join
		}
	case "stroke-miterlimit":
		var limit float64
		limit, err = parseBasicFloat(v)
		st.Join.MiterLimit = fToFixed(limit)
	case "stroke-width":
		st.LineWidth, err = c.parseUnit(v, diagPercentage)
	case "stroke-dashoffset":
		st.Dash.DashOffset, err = c.parseUnit(v, diagPercentage)
	case "stroke-dasharray":
		st.Dash.Dash, err = c.readDashArray(v)
	case "opacity", "stroke-opacity", "fill-opacity":
		var op float64
		if op, err = readFraction(v); err != nil {
			return err
		}
		if k != "stroke-opacity" {
			st.FillOpacity *= op
		}
		if k != "fill-opacity" {
			st.LineOpacity *= op
		}
	case "transform":
		st.transform, err = c.parseTransform(st.transform, v)
	}
	return err
}

// styleAttrs flattens the presentation attributes and the
// content of the style attribute into lower case key/value pairs.
// Declarations in style come after the attributes, so that they take precedence.
func styleAttrs(attrs []xml.Attr) [][2]string {
	var pairs, styles []string
	for _, attr := range attrs {
		switch strings.ToLower(attr.Name.Local) {
		case "style":
			styles = append(styles, strings.Split(attr.Value, ";")...)
		default:
			pairs = append(pairs, attr.Name.Local+":"+attr.Value)
		}
	}
	pairs = append(pairs, styles...)
	out := make([][2]string, 0, len(pairs))
	for _, pair := range pairs {
		k, v, ok := strings.Cut(pair, ":")
		if !ok {
			continue
		}
		out = append(out, [2]string{strings.TrimSpace(strings.ToLower(k)), strings.TrimSpace(v)})
	}
	return out
}

// pushStyle parses the style element, and push it on the style stack. Only color and opacity are supported
// for fill. Note that this parses both the contents of a style attribute plus
// direct fill and opacity attributes.
func (c *iconCursor) pushStyle(attrs []xml.Attr) error {
	// Make a copy of the top style
	curStyle := c.styleStack[len(c.styleStack)-1]
	for _, kv := range styleAttrs(attrs) {
		err := c.readStyleAttr(&curStyle, kv[0], kv[1])
		if err != nil {
			return err
		}
	}
	c.styleStack = append(c.styleStack, curStyle) // Push style onto stack
	return nil
}

// splitOnCommaOrSpace returns a list of strings after splitting the input on comma and space delimiters
func splitOnCommaOrSpace(s string) []string {
	return strings.FieldsFunc(s,
		func(r rune) bool {
			return r == ',' || r == ' '
		})
}

func elementID(attrs []xml.Attr) string {
	for _, attr := range attrs {
		if attr.Name.Local == "id" {
			return attr.Value
		}
	}
	return ""
}

// isHandled returns false for the elements which are neither drawn
// nor stored for later use.
func (c *iconCursor) isHandled(tag string) bool {
	if c.inDefs {
		return true
	}
	_, ok := drawFuncs[tag]
	return ok
}

// storeDef registers the pending definition under its id.
func (c *iconCursor) storeDef() {
	if len(c.currentDef) == 0 {
		return
	}
	c.icon.defs[c.currentDef[0].ID] = c.currentDef
	c.currentDef = nil
}

func (c *iconCursor) readStartElement(se xml.StartElement) error {
	tag, id := se.Name.Local, elementID(se.Attr)
	isGradient := tag == "radialGradient" || tag == "linearGradient" || c.inGrad
	if c.inDefs && !isGradient {
		// an element with an id starts a new definition
		if id != "" {
			c.storeDef()
		}
		c.currentDef = append(c.currentDef, definition{ID: id, Tag: tag, Attrs: se.Attr})
		return nil
	}
	df, ok := drawFuncs[tag]
	if !ok {
		return c.handleError(tag)
	}
	if err := df(c, se.Attr); err != nil {
		return err
	}
	return c.flushPath(id)
}

// flushPath stores the path parsed from the current element, if any.
// An id already used by a previous path is dropped.
func (c *iconCursor) flushPath(id string) error {
	if len(c.path) == 0 {
		return nil
	}
	if err := c.countElement(); err != nil {
		return err
	}
	if id != "" {
		if c.seenIDs[id] {
			id = ""
		} else {
			c.seenIDs[id] = true
		}
	}
	pathCopy := append(Path{}, c.path...)
	c.icon.SVGPaths = append(c.icon.SVGPaths,
		SvgPath{ID: id, Path: pathCopy, Style: c.styleStack[len(c.styleStack)-1]})
	c.path = c.path[:0]
	return nil
}

// countElement fails once more than maxElements elements
// have been drawn or replayed.
func (c *iconCursor) countElement() error {
	c.elements++
	if c.maxElements > 0 && c.elements > c.maxElements {
		return fmt.Errorf("%w: more than %d", ErrElementsLimit, c.maxElements)
	}
	return nil
}

func readFraction(v string) (f float64, err error) {
	v = strings.TrimSpace(v)
	d := 1.0
	if strings.HasSuffix(v, "%") {
		d = 100
		v = strings.TrimSuffix(v, "%")
	}
	f, err = parseBasicFloat(v)
	f /= d
	return
}

// readGradURL looks for a gradient reference, such as "url(#grad) red".
// It returns false if v is not an url.
func (c *iconCursor) readGradURL(v string, defaultColor Pattern) (Pattern, bool) {
	if !strings.HasPrefix(v, "url(") {
		return nil, false
	}
	end := strings.IndexByte(v, ')')
	if end == -1 {
		return defaultColor, true
	}
	id := strings.Trim(strings.TrimSpace(v[4:end]), `"'`)
	id = strings.TrimPrefix(id, "#")
	if grad, ok := c.icon.grads[id]; ok {
		return *grad, true
	}
	if fallback := strings.TrimSpace(v[end+1:]); fallback != "" {
		col, err := parseSVGColor(fallback)
		if err != nil {
			return defaultColor, true
		}
		return col.asPattern(), true
	}
	// forward reference, resolved at the end of the document
	return Gradient{ID: id}, true
}

// readGradAttr reads the attributes common to linear and radial gradients
func (c *iconCursor) readGradAttr(attr xml.Attr) (err error) {
	switch attr.Name.Local {
	case "gradientTransform":
		c.grad.Matrix, err = c.parseTransform(Identity, attr.Value)
	case "gradientUnits":
		if u, ok := parseKeyword[GradientUnits](unitsKeywords[:], strings.TrimSpace(attr.Value)); ok {
			c.grad.Units = u
		}
	case "spreadMethod":
		if sp, ok := parseKeyword[SpreadMethod](spreadKeywords[:], strings.TrimSpace(attr.Value)); ok {
			c.grad.Spread = sp
		}
	case "href":
		id := strings.TrimPrefix(strings.TrimSpace(attr.Value), "#")
		ref, ok := c.icon.grads[id]
		if !ok {
			return c.handleError("href #" + id)
		}
		c.grad.Stops = append(c.grad.Stops, ref.Stops...)
	}
	return err
}

type percentageReference uint8

const (
	widthPercentage percentageReference = iota
	heightPercentage
	diagPercentage
)

// parseUnit converts a length to user units. Percentages are relative
// to the current viewbox.
func (c *iconCursor) parseUnit(s string, asPerc percentageReference) (float64, error) {
	s = strings.TrimSpace(s)
	factor := 1.
	switch {
	case strings.HasSuffix(s, "%"):
		var ref float64
		vb := c.icon.ViewBox
		switch asPerc {
		case widthPercentage:
			ref = vb.W
		case heightPercentage:
			ref = vb.H
		case diagPercentage:
			ref = math.Sqrt(vb.W*vb.W+vb.H*vb.H) / math.Sqrt2
		}
		factor, s = ref/100, strings.TrimSuffix(s, "%")
	case strings.HasSuffix(s, "px"):
		s = strings.TrimSuffix(s, "px")
	case strings.HasSuffix(s, "pt"):
		factor, s = 4./3, strings.TrimSuffix(s, "pt")
	case strings.HasSuffix(s, "pc"):
		factor, s = 16, strings.TrimSuffix(s, "pc")
	case strings.HasSuffix(s, "mm"):
		factor, s = 96/25.4, strings.TrimSuffix(s, "mm")
	case strings.HasSuffix(s, "cm"):
		factor, s = 96/2.54, strings.TrimSuffix(s, "cm")
	case strings.HasSuffix(s, "in"):
		factor, s = 96, strings.TrimSuffix(s, "in")
	case strings.HasSuffix(s, "em"):
		factor, s = 16, strings.TrimSuffix(s, "em")
	case strings.HasSuffix(s, "ex"):
		factor, s = 8, strings.TrimSuffix(s, "ex")
	}
	f, err := parseBasicFloat(s)
	return f * factor, err
}
