package svgicon

import (
	"encoding/xml"
	"errors"
	"fmt"
	"image/color"
	"math"
	"slices"
	"strings"

	"golang.org/x/image/math/fixed"
)

func init() {
	// useF replays definitions through drawFuncs
	drawFuncs["use"] = useF
}

type svgFunc func(c *iconCursor, attrs []xml.Attr) error

var drawFuncs = map[string]svgFunc{
	"svg":            svgF,
	"g":              gF,
	"line":           lineF,
	"stop":           stopF,
	"rect":           rectF,
	"circle":         circleF,
	"ellipse":        ellipseF,
	"polyline":       polylineF,
	"polygon":        polygonF,
	"path":           pathF,
	"desc":           descF,
	"defs":           defsF,
	"title":          titleF,
	"linearGradient": linearGradientF,
	"radialGradient": radialGradientF,
}

var errOddPoints = errors.New("odd number of coordinates in points")

// length is a length attribute, resolved against the view box
type length struct {
	name string
	ref  percentageReference
	dst  *float64
}

// readLengths stores the lengths found in `attrs`.
// Absent attributes leave their destination untouched.
func (c *iconCursor) readLengths(attrs []xml.Attr, lengths ...length) error {
	for _, attr := range attrs {
		for _, l := range lengths {
			if attr.Name.Local != l.name {
				continue
			}
			v, err := c.parseUnit(attr.Value, l.ref)
			if err != nil {
				return fmt.Errorf("attribute %s: %w", l.name, err)
			}
			*l.dst = v
		}
	}
	return nil
}

// at returns (x, y) shifted by the current use offset.
func (c *iconCursor) at(x, y float64) fixed.Point26_6 {
	return toFixedP(x+c.curX, y+c.curY)
}

func attrValue(attrs []xml.Attr, name string) (string, bool) {
	for _, attr := range attrs {
		if attr.Name.Local == name {
			return attr.Value, true
		}
	}
	return "", false
}

func svgF(c *iconCursor, attrs []xml.Attr) error {
	// the view box comes first, so that percentages resolve
	c.icon.ViewBox = Bounds{}
	if vb, ok := attrValue(attrs, "viewBox"); ok {
		if err := c.getPoints(vb); err != nil {
			return err
		}
		if len(c.points) != 4 {
			return errParamMismatch
		}
		c.icon.ViewBox = Bounds{X: c.points[0], Y: c.points[1], W: c.points[2], H: c.points[3]}
	}
	c.icon.Width, _ = attrValue(attrs, "width")
	c.icon.Height, _ = attrValue(attrs, "height")

	var width, height float64
	err := c.readLengths(attrs,
		length{"width", widthPercentage, &width},
		length{"height", heightPercentage, &height})
	if err != nil {
		return err
	}
	c.icon.width, c.icon.height = width, height
	if c.icon.ViewBox.W == 0 {
		c.icon.ViewBox.W = width
	}
	if c.icon.ViewBox.H == 0 {
		c.icon.ViewBox.H = height
	}
	return nil
}

func gF(*iconCursor, []xml.Attr) error { return nil } // only pushes the style

func rectF(c *iconCursor, attrs []xml.Attr) error {
	var x, y, w, h, rx, ry float64
	err := c.readLengths(attrs,
		length{"x", widthPercentage, &x},
		length{"y", heightPercentage, &y},
		length{"width", widthPercentage, &w},
		length{"height", heightPercentage, &h},
		length{"rx", widthPercentage, &rx},
		length{"ry", heightPercentage, &ry})
	if err != nil || w <= 0 || h <= 0 { // empty rectangles are not drawn
		return err
	}
	x, y = x+c.curX, y+c.curY
	c.path.addRoundRect(x, y, x+w, y+h, rx, ry)
	return nil
}

func circleF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, r float64
	err := c.readLengths(attrs,
		length{"cx", widthPercentage, &cx},
		length{"cy", heightPercentage, &cy},
		length{"r", diagPercentage, &r})
	if err != nil || r <= 0 {
		return err
	}
	c.ellipseAt(cx+c.curX, cy+c.curY, r, r)
	return nil
}

func ellipseF(c *iconCursor, attrs []xml.Attr) error {
	var cx, cy, rx, ry float64
	err := c.readLengths(attrs,
		length{"cx", widthPercentage, &cx},
		length{"cy", heightPercentage, &cy},
		length{"rx", widthPercentage, &rx},
		length{"ry", heightPercentage, &ry})
	if err != nil || rx <= 0 || ry <= 0 {
		return err
	}
	c.ellipseAt(cx+c.curX, cy+c.curY, rx, ry)
	return nil
}

func lineF(c *iconCursor, attrs []xml.Attr) error {
	var x1, x2, y1, y2 float64
	err := c.readLengths(attrs,
		length{"x1", widthPercentage, &x1},
		length{"y1", heightPercentage, &y1},
		length{"x2", widthPercentage, &x2},
		length{"y2", heightPercentage, &y2})
	if err != nil {
		return err
	}
	c.path.Start(c.at(x1, y1))
	c.path.Line(c.at(x2, y2))
	return nil
}

// polyline adds the points of the element, returning false
// if there are less than two of them.
func (c *iconCursor) polyline(attrs []xml.Attr) (bool, error) {
	c.points = c.points[:0]
	if v, ok := attrValue(attrs, "points"); ok {
		if err := c.getPoints(v); err != nil {
			return false, err
		}
	}
	if len(c.points)%2 != 0 {
		return false, errOddPoints
	}
	if len(c.points) < 4 {
		return false, nil
	}
	c.path.Start(c.at(c.points[0], c.points[1]))
	for i := 2; i+1 < len(c.points); i += 2 {
		c.path.Line(c.at(c.points[i], c.points[i+1]))
	}
	return true, nil
}

func polylineF(c *iconCursor, attrs []xml.Attr) error {
	_, err := c.polyline(attrs)
	return err
}

func polygonF(c *iconCursor, attrs []xml.Attr) error {
	drawn, err := c.polyline(attrs)
	if drawn {
		c.path.Stop(true)
	}
	return err
}

func pathF(c *iconCursor, attrs []xml.Attr) error {
	if d, ok := attrValue(attrs, "d"); ok {
		return c.compilePath(d)
	}
	return nil
}

func descF(c *iconCursor, _ []xml.Attr) error {
	c.inDescText = true
	c.icon.Descriptions = append(c.icon.Descriptions, "")
	return nil
}

func titleF(c *iconCursor, _ []xml.Attr) error {
	c.inTitleText = true
	c.icon.Titles = append(c.icon.Titles, "")
	return nil
}

func defsF(c *iconCursor, _ []xml.Attr) error {
	c.inDefs = true
	return nil
}

// startGradient registers a new gradient, reading its coordinates
// into `coords` and its other attributes into c.grad.
func (c *iconCursor) startGradient(attrs []xml.Attr, coords map[string]*float64) error {
	c.inGrad = true
	c.grad = &Gradient{Bounds: c.icon.ViewBox, Matrix: Identity}
	for _, attr := range attrs {
		if dst, ok := coords[attr.Name.Local]; ok {
			v, err := readFraction(attr.Value)
			if err != nil {
				return fmt.Errorf("attribute %s: %w", attr.Name.Local, err)
			}
			*dst = v
			continue
		}
		if attr.Name.Local == "id" {
			if attr.Value == "" {
				return errZeroLengthID
			}
			c.grad.ID = attr.Value
			c.icon.grads[attr.Value] = c.grad
			continue
		}
		if err := c.readGradAttr(attr); err != nil {
			return err
		}
	}
	return nil
}

func linearGradientF(c *iconCursor, attrs []xml.Attr) error {
	dir := Linear{0, 0, 1, 0}
	err := c.startGradient(attrs, map[string]*float64{
		"x1": &dir[0], "y1": &dir[1],
		"x2": &dir[2], "y2": &dir[3],
	})
	if err != nil {
		return err
	}
	c.grad.Direction = dir
	return nil
}

func radialGradientF(c *iconCursor, attrs []xml.Attr) error {
	dir := Radial{0.5, 0.5, math.NaN(), math.NaN(), 0.5, 0}
	err := c.startGradient(attrs, map[string]*float64{
		"cx": &dir[0], "cy": &dir[1],
		"fx": &dir[2], "fy": &dir[3],
		"r": &dir[4], "fr": &dir[5],
	})
	if err != nil {
		return err
	}
	// the focus defaults to the center
	if math.IsNaN(dir[2]) {
		dir[2] = dir[0]
	}
	if math.IsNaN(dir[3]) {
		dir[3] = dir[1]
	}
	c.grad.Direction = dir
	return nil
}

func stopF(c *iconCursor, attrs []xml.Attr) error {
	if !c.inGrad {
		return nil
	}
	stop := GradStop{StopColor: color.RGBA{A: 0xff}, Opacity: 1.0}
	for _, kv := range styleAttrs(attrs) {
		var err error
		switch kv[0] {
		case "offset":
			stop.Offset, err = readFraction(kv[1])
			stop.Offset = math.Max(0, math.Min(1, stop.Offset))
		case "stop-color":
			var optColor optionnalColor
			optColor, err = parseSVGColor(kv[1])
			stop.StopColor = optColor.asColor()
		case "stop-opacity":
			stop.Opacity, err = readFraction(kv[1])
		}
		if err != nil {
			return err
		}
	}
	c.grad.Stops = append(c.grad.Stops, stop)
	return nil
}

// maxUseDepth bounds the nesting of use elements.
const maxUseDepth = 32

func useF(c *iconCursor, attrs []xml.Attr) error {
	var x, y float64
	err := c.readLengths(attrs,
		length{"x", widthPercentage, &x},
		length{"y", heightPercentage, &y})
	if err != nil {
		return err
	}
	href, _ := attrValue(attrs, "href")
	switch {
	case href == "":
		return errors.New("use element without href")
	case !strings.HasPrefix(href, "#"):
		return fmt.Errorf("unsupported use reference %q: only ids are supported", href)
	}
	id := href[1:]
	defs, ok := c.icon.defs[id]
	if !ok {
		return fmt.Errorf("%w: %s in use element", errMissingID, href)
	}
	if slices.Contains(c.replaying, id) {
		return fmt.Errorf("%w: %s", ErrUseCycle, href)
	}
	if len(c.replaying) >= maxUseDepth {
		return fmt.Errorf("%w: more than %d nested use elements", ErrUseCycle, maxUseDepth)
	}

	// nested use elements add their offsets
	prevX, prevY := c.curX, c.curY
	c.curX, c.curY = prevX+x, prevY+y
	c.replaying = append(c.replaying, id)
	defer func() {
		c.curX, c.curY = prevX, prevY
		c.replaying = c.replaying[:len(c.replaying)-1]
	}()

	popStyle := func() { c.styleStack = c.styleStack[:len(c.styleStack)-1] }
	for _, def := range defs {
		if err = c.countElement(); err != nil {
			return err
		}
		if def.Tag == "endg" {
			popStyle()
			continue
		}
		if err = c.pushStyle(def.Attrs); err != nil {
			return err
		}
		df, ok := drawFuncs[def.Tag]
		if !ok {
			if err = c.handleError(def.Tag); err != nil {
				return err
			}
			popStyle()
			continue
		}
		if err = df(c, def.Attrs); err != nil {
			return err
		}
		if err = c.flushPath(def.ID); err != nil {
			return err
		}
		if def.Tag != "g" {
			popStyle()
		}
	}
	return nil
}
