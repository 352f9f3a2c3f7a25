package svgicon

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/math/fixed"
)

// pathCursor is used to parse SVG format path strings into a Path
type pathCursor struct {
	path                   Path
	placeX, placeY         float64
	curX, curY             float64 // offset applied by use elements
	cntlPtX, cntlPtY       float64
	pathStartX, pathStartY float64
	points                 []float64
	lastKey                byte
	errorMode              ErrorMode
	inPath                 bool
}

func (c *pathCursor) init() {
	c.placeX = 0.0
	c.placeY = 0.0
	c.points = c.points[0:0]
	c.lastKey = ' '
	c.path.Clear()
	c.inPath = false
}

// scanNumber returns the end of the number starting at s[i],
// or i if there is none.
func scanNumber(s string, i int) int {
	j := i
	if j < len(s) && (s[j] == '+' || s[j] == '-') {
		j++
	}
	digits, dot := false, false
	for ; j < len(s); j++ {
		ch := s[j]
		if '0' <= ch && ch <= '9' {
			digits = true
			continue
		}
		if ch == '.' && !dot {
			dot = true
			continue
		}
		break
	}
	if !digits {
		return i
	}
	if j < len(s) && (s[j] == 'e' || s[j] == 'E') {
		k := j + 1
		if k < len(s) && (s[k] == '+' || s[k] == '-') {
			k++
		}
		if k < len(s) && '0' <= s[k] && s[k] <= '9' {
			for k < len(s) && '0' <= s[k] && s[k] <= '9' {
				k++
			}
			j = k
		}
	}
	return j
}

func isSeparator(ch byte) bool {
	return ch == ' ' || ch == ',' || ch == '\t' || ch == '\n' || ch == '\r'
}

// getPoints reads a set of floating point values from the SVG format number string,
// and add them to the cursor's points slice.
func (c *pathCursor) getPoints(dataPoints string) error {
	c.points = c.points[0:0]
	for i := 0; i < len(dataPoints); {
		if isSeparator(dataPoints[i]) {
			i++
			continue
		}
		j := scanNumber(dataPoints, i)
		if j == i {
			return fmt.Errorf("%w: unexpected %q", errParamMismatch, dataPoints[i:])
		}
		f, err := strconv.ParseFloat(dataPoints[i:j], 64)
		if err != nil {
			return err
		}
		c.points = append(c.points, f)
		i = j
	}
	return nil
}

// parseBasicFloat parses a finite number.
func parseBasicFloat(s string) (float64, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%w: %q is not finite", errParamMismatch, s)
	}
	return f, nil
}

func isPathCommand(ch byte) bool {
	switch ch {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's',
		'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

// compilePath translates the svgPath description string into a path.
// The resulting path element is stored in the pathCursor.
func (c *pathCursor) compilePath(svgPath string) error {
	c.init()
	lastIndex := -1
	for i := 0; i < len(svgPath); i++ {
		if isPathCommand(svgPath[i]) {
			if lastIndex != -1 {
				if err := c.addSeg(svgPath[lastIndex:i]); err != nil {
					return err
				}
			}
			lastIndex = i
		}
	}
	if lastIndex != -1 {
		if err := c.addSeg(svgPath[lastIndex:]); err != nil {
			return err
		}
	}
	if c.curX != 0 || c.curY != 0 {
		c.path = translatePath(c.path, c.curX, c.curY)
	}
	return nil
}

// translatePath returns p moved by (dx, dy)
func translatePath(p Path, dx, dy float64) Path {
	d := toFixedP(dx, dy)
	for i, op := range p {
		switch op := op.(type) {
		case MoveTo:
			p[i] = MoveTo{op.X + d.X, op.Y + d.Y}
		case LineTo:
			p[i] = LineTo{op.X + d.X, op.Y + d.Y}
		case QuadTo:
			p[i] = QuadTo{op[0].Add(d), op[1].Add(d)}
		case CubicTo:
			p[i] = CubicTo{op[0].Add(d), op[1].Add(d), op[2].Add(d)}
		}
	}
	return p
}

func (c *pathCursor) valsToAbs(last float64) {
	for i := 0; i < len(c.points); i++ {
		last += c.points[i]
		c.points[i] = last
	}
}

func (c *pathCursor) pointsToAbs(sz int) {
	lastX := c.placeX
	lastY := c.placeY
	for j := 0; j < len(c.points); j += sz {
		for i := 0; i < sz; i += 2 {
			c.points[i+j] += lastX
			c.points[i+1+j] += lastY
		}
		lastX = c.points[(j+sz)-2]
		lastY = c.points[(j+sz)-1]
	}
}

func (c *pathCursor) hasSetsOrMore(sz int, rel bool) bool {
	if !(len(c.points) >= sz && len(c.points)%sz == 0) {
		return false
	}
	if rel {
		c.pointsToAbs(sz)
	}
	return true
}

// reflectControlQuad updates the control point of the cursor
// as the reflection of the previous quadratic control point.
func (c *pathCursor) reflectControlQuad() fixed.Point26_6 {
	switch c.lastKey {
	case 'q', 'Q', 't', 'T':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
	return toFixedP(c.cntlPtX, c.cntlPtY)
}

// reflectControlCube does the same for cubic curves.
func (c *pathCursor) reflectControlCube() fixed.Point26_6 {
	switch c.lastKey {
	case 'c', 'C', 's', 'S':
		c.cntlPtX, c.cntlPtY = 2*c.placeX-c.cntlPtX, 2*c.placeY-c.cntlPtY
	default:
		c.cntlPtX, c.cntlPtY = c.placeX, c.placeY
	}
	return toFixedP(c.cntlPtX, c.cntlPtY)
}

func (c *pathCursor) lineTo(x, y float64) {
	c.placeX, c.placeY = x, y
	c.path.Line(toFixedP(x, y))
}

// addSeg decodes an SVG seqment string into equivalent raster path commands saved
// in the cursor's path
func (c *pathCursor) addSeg(segString string) error {
	// Parse the string describing the numeric points in SVG format
	if err := c.getPoints(segString[1:]); err != nil {
		return err
	}
	l := len(c.points)
	k := segString[0]
	rel := false
	switch k {
	case 'z', 'Z':
		if l != 0 {
			return errParamMismatch
		}
		if c.inPath {
			c.path.Stop(true)
			c.placeX = c.pathStartX
			c.placeY = c.pathStartY
			c.inPath = false
		}
	case 'm':
		rel = true
		fallthrough
	case 'M':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		c.pathStartX, c.pathStartY = c.points[0], c.points[1]
		c.inPath = true
		c.placeX, c.placeY = c.pathStartX, c.pathStartY
		c.path.Start(toFixedP(c.placeX, c.placeY))
		for i := 2; i < l-1; i += 2 {
			c.lineTo(c.points[i], c.points[i+1])
		}
	case 'l':
		rel = true
		fallthrough
	case 'L':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			c.lineTo(c.points[i], c.points[i+1])
		}
	case 'v':
		c.valsToAbs(c.placeY)
		fallthrough
	case 'V':
		if l == 0 {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.lineTo(c.placeX, p)
		}
	case 'h':
		c.valsToAbs(c.placeX)
		fallthrough
	case 'H':
		if l == 0 {
			return errParamMismatch
		}
		for _, p := range c.points {
			c.lineTo(p, c.placeY)
		}
	case 'q':
		rel = true
		fallthrough
	case 'Q':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
			c.path.QuadBezier(toFixedP(c.cntlPtX, c.cntlPtY), toFixedP(c.placeX, c.placeY))
		}
	case 't':
		rel = true
		fallthrough
	case 'T':
		if !c.hasSetsOrMore(2, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-1; i += 2 {
			b := c.reflectControlQuad()
			c.placeX, c.placeY = c.points[i], c.points[i+1]
			c.path.QuadBezier(b, toFixedP(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'c':
		rel = true
		fallthrough
	case 'C':
		if !c.hasSetsOrMore(6, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-5; i += 6 {
			c.cntlPtX, c.cntlPtY = c.points[i+2], c.points[i+3]
			c.placeX, c.placeY = c.points[i+4], c.points[i+5]
			c.path.CubeBezier(toFixedP(c.points[i], c.points[i+1]),
				toFixedP(c.cntlPtX, c.cntlPtY), toFixedP(c.placeX, c.placeY))
		}
	case 's':
		rel = true
		fallthrough
	case 'S':
		if !c.hasSetsOrMore(4, rel) {
			return errParamMismatch
		}
		for i := 0; i < l-3; i += 4 {
			b := c.reflectControlCube()
			c.cntlPtX, c.cntlPtY = c.points[i], c.points[i+1]
			c.placeX, c.placeY = c.points[i+2], c.points[i+3]
			c.path.CubeBezier(b, toFixedP(c.cntlPtX, c.cntlPtY), toFixedP(c.placeX, c.placeY))
			c.lastKey = k
		}
	case 'a', 'A':
		if !(l >= 7 && l%7 == 0) {
			return errParamMismatch
		}
		for i := 0; i < l-6; i += 7 {
			if k == 'a' {
				c.points[i+5] += c.placeX
				c.points[i+6] += c.placeY
			}
			c.addArcFromA(c.points[i : i+7])
		}
	default:
		if c.errorMode == StrictErrorMode {
			return fmt.Errorf("%w: %q", errCommandUnknown, k)
		}
	}
	c.lastKey = k
	return nil
}

// addArcFromA adds the arc of an A command, whose 7 parameters
// are given with an absolute end point.
func (c *pathCursor) addArcFromA(points []float64) {
	rx, ry := math.Abs(points[0]), math.Abs(points[1])
	endX, endY := points[5], points[6]
	if endX == c.placeX && endY == c.placeY { // same end points: nothing drawn
		return
	}
	if rx == 0 || ry == 0 { // degenerated arc: straight line
		c.lineTo(endX, endY)
		return
	}
	e, eta, dEta := arcCenter(c.placeX, c.placeY, rx, ry, points[2]*math.Pi/180,
		points[3] != 0, points[4] != 0, endX, endY)
	c.path.addEllipticArc(e, eta, dEta, endX, endY)
	c.placeX, c.placeY = endX, endY
}

// ellipseAt adds the closed axis aligned ellipse centered
// at (cx, cy), starting at its rightmost point.
func (c *pathCursor) ellipseAt(cx, cy, rx, ry float64) {
	c.placeX, c.placeY = cx+rx, cy
	c.path.Start(toFixedP(c.placeX, c.placeY))
	c.path.addEllipticArc(ellipse{cx: cx, cy: cy, rx: rx, ry: ry, cos: 1}, 0, 2*math.Pi, c.placeX, c.placeY)
	c.path.Stop(true)
}
