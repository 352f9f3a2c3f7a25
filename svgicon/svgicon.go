// Package svgicon parses SVG images into a list of paths,
// which are then painted by drivers (see okresvg/svgraster
// and okresvg/svgpdf) or written back as normalized SVG.
package svgicon

import (
	"encoding/xml"
	"errors"
	"io"
	"log/slog"
	"os"
	"sort"

	"golang.org/x/net/html/charset"
)

// PathStyle is the resolved presentation of a path, after
// inheritance from its ancestors.
type PathStyle struct {
	FillOpacity, LineOpacity float64
	LineWidth                float64
	UseNonZeroWinding        bool

	Join                    JoinOptions
	Dash                    DashOptions
	FillerColor, LinerColor Pattern // either PlainColor or Gradient

	transform Matrix2D // current transform
}

// Transform returns the transform applied to the path.
func (s PathStyle) Transform() Matrix2D { return s.transform }

// SvgPath binds a style to a path
type SvgPath struct {
	ID    string // id attribute of the source element, if any
	Path  Path
	Style PathStyle
}

// Bounds defines a bounding box, such as a viewport
// or a path extent.
type Bounds struct{ X, Y, W, H float64 }

// SvgIcon is a parsed SVG document, reduced to a list of styled paths.
// It is not modified after parsing, and may be drawn or written
// from several goroutines.
type SvgIcon struct {
	ViewBox      Bounds
	Titles       []string // Title elements collect here
	Descriptions []string // Description elements collect here
	SVGPaths     []SvgPath
	Transform    Matrix2D

	Width, Height string // top level width and height attributes

	width, height float64 // resolved Width and Height, 0 if absent

	grads map[string]*Gradient
	defs  map[string][]definition
}

// Gradients returns the gradients defined by the icon,
// sorted by id.
func (s *SvgIcon) Gradients() []Gradient {
	out := make([]Gradient, 0, len(s.grads))
	for _, g := range s.grads {
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

// Size returns the size of the image, given by the width
// and height attributes, defaulting to the view box.
func (s *SvgIcon) Size() (w, h float64) {
	w, h = s.width, s.height
	if w <= 0 {
		w = s.ViewBox.W
	}
	if h <= 0 {
		h = s.ViewBox.H
	}
	return w, h
}

// IsEmpty returns true if the icon has nothing to paint.
func (s *SvgIcon) IsEmpty() bool {
	for _, p := range s.SVGPaths {
		if len(p.Path) != 0 && (p.Style.FillerColor != nil || p.Style.LinerColor != nil) {
			return false
		}
	}
	return true
}

// Options configures the parser.
type Options struct {
	ErrorMode ErrorMode
	// Logger receives the warnings of WarnErrorMode.
	// If nil, slog.Default() is used.
	Logger *slog.Logger
	// MaxElements bounds the number of paths and replayed
	// definitions; 0 means no limit.
	MaxElements int
}

// ReadIconStream parses an SVG document. Only the static subset
// made of shapes, paths and gradients is supported: `errMode`
// selects what happens for the other elements.
func ReadIconStream(stream io.Reader, errMode ErrorMode) (*SvgIcon, error) {
	return ReadIconStreamOptions(stream, Options{ErrorMode: errMode})
}

// ReadIconStreamOptions is the same as ReadIconStream, with
// full control over the parser.
func ReadIconStreamOptions(stream io.Reader, opts Options) (*SvgIcon, error) {
	icon := &SvgIcon{defs: make(map[string][]definition), grads: make(map[string]*Gradient), Transform: Identity}
	c := &iconCursor{
		styleStack:  []PathStyle{DefaultStyle},
		icon:        icon,
		log:         opts.Logger,
		seenIDs:     make(map[string]bool),
		maxElements: opts.MaxElements,
	}
	c.errorMode = opts.ErrorMode

	decoder := xml.NewDecoder(stream)
	decoder.CharsetReader = charset.NewReaderLabel
	seenTag := false
	for {
		t, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		} else if err != nil {
			return icon, err
		}
		switch t := t.(type) {
		case xml.StartElement:
			seenTag = true
			err = c.startElement(t)
		case xml.EndElement:
			c.endElement(t.Name.Local)
		case xml.CharData:
			c.charData(string(t))
		}
		if err != nil {
			return icon, err
		}
	}
	if !seenTag {
		return nil, ErrInvalidIcon
	}
	icon.resolveGradients()
	return icon, nil
}

func (c *iconCursor) startElement(se xml.StartElement) error {
	tag := se.Name.Local
	if c.skipDepth > 0 {
		c.skipDepth++
		return nil
	}
	if !c.isHandled(tag) {
		// the whole subtree is skipped
		c.skipDepth = 1
		return c.handleError(tag)
	}
	if err := c.pushStyle(se.Attr); err != nil {
		return err
	}
	return c.readStartElement(se)
}

func (c *iconCursor) endElement(tag string) {
	if c.skipDepth > 0 {
		c.skipDepth--
		return
	}
	c.styleStack = c.styleStack[:len(c.styleStack)-1]
	switch tag {
	case "g":
		if c.inDefs {
			c.currentDef = append(c.currentDef, definition{Tag: "endg"})
		}
	case "title":
		c.inTitleText = false
	case "desc":
		c.inDescText = false
	case "defs":
		c.storeDef()
		c.inDefs = false
	case "radialGradient", "linearGradient":
		c.inGrad = false
	}
}

func (c *iconCursor) charData(text string) {
	switch {
	case c.skipDepth > 0:
	case c.inTitleText:
		c.icon.Titles[len(c.icon.Titles)-1] += text
	case c.inDescText:
		c.icon.Descriptions[len(c.icon.Descriptions)-1] += text
	}
}

// ReadIcon is like ReadIconStream, reading the named file.
func ReadIcon(file string, errMode ErrorMode) (*SvgIcon, error) {
	f, err := os.Open(file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return ReadIconStream(f, errMode)
}

// resolveGradients replaces the gradients referenced by the paths
// by their final definition, since stops and forward references
// are only known at the end of the document.
func (s *SvgIcon) resolveGradients() {
	resolve := func(p Pattern) Pattern {
		g, ok := p.(Gradient)
		if !ok {
			return p
		}
		def, ok := s.grads[g.ID]
		if !ok || len(def.Stops) == 0 {
			return nil // invalid reference: not painted
		}
		return *def
	}
	for i := range s.SVGPaths {
		st := &s.SVGPaths[i].Style
		st.FillerColor = resolve(st.FillerColor)
		st.LinerColor = resolve(st.LinerColor)
	}
}
