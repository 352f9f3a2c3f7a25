package svgicon

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"golang.org/x/image/colornames"
)

// Pattern is either a PlainColor or a Gradient.
// A nil Pattern disables painting.
type Pattern interface {
	isPattern()
}

// PlainColor is an uniform, non premultiplied color.
type PlainColor struct {
	color.RGBA
}

func (PlainColor) isPattern() {}

// NewPlainColor returns the color r, g, b, a.
func NewPlainColor(r, g, b, a uint8) PlainColor {
	return PlainColor{color.RGBA{R: r, G: g, B: b, A: a}}
}

// Hex returns the #rrggbb form of the color, ignoring alpha.
func (c PlainColor) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

var errColorFormat = errors.New("invalid color format")

// optionnalColor is the result of parsing a color,
// where "none" is valid.
type optionnalColor struct {
	valid bool
	color PlainColor
}

func (o optionnalColor) asPattern() Pattern {
	if !o.valid {
		return nil
	}
	return o.color
}

func (o optionnalColor) asColor() color.Color {
	if !o.valid {
		return color.RGBA{}
	}
	return o.color.RGBA
}

func parseColorComponent(v string) (uint8, error) {
	v = strings.TrimSpace(v)
	if strings.HasSuffix(v, "%") {
		f, err := strconv.ParseFloat(strings.TrimSuffix(v, "%"), 64)
		if err != nil {
			return 0, err
		}
		return clampByte(f * 255 / 100), nil
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, err
	}
	return clampByte(f), nil
}

func clampByte(f float64) uint8 {
	if f < 0 {
		return 0
	}
	if f > 255 {
		return 255
	}
	return uint8(f + 0.5)
}

func parsePercent(v string) (float64, error) {
	v = strings.TrimSpace(v)
	d := 1.
	if strings.HasSuffix(v, "%") {
		v, d = strings.TrimSuffix(v, "%"), 100
	}
	f, err := strconv.ParseFloat(v, 64)
	return f / d, err
}

// parseFunctionalColor handles rgb(), rgba(), hsl() and hsla()
func parseFunctionalColor(name, args string) (PlainColor, error) {
	parts := splitOnCommaOrSpace(strings.ReplaceAll(args, "/", " "))
	if len(parts) != 3 && len(parts) != 4 {
		return PlainColor{}, errColorFormat
	}
	alpha := uint8(0xff)
	if len(parts) == 4 {
		a, err := parsePercent(parts[3])
		if err != nil {
			return PlainColor{}, err
		}
		alpha = clampByte(a * 255)
	}
	switch name {
	case "rgb", "rgba":
		var rgb [3]uint8
		for i := range rgb {
			c, err := parseColorComponent(parts[i])
			if err != nil {
				return PlainColor{}, err
			}
			rgb[i] = c
		}
		return NewPlainColor(rgb[0], rgb[1], rgb[2], alpha), nil
	case "hsl", "hsla":
		h, err := strconv.ParseFloat(strings.TrimSuffix(strings.TrimSpace(parts[0]), "deg"), 64)
		if err != nil {
			return PlainColor{}, err
		}
		s, err := parsePercent(parts[1])
		if err != nil {
			return PlainColor{}, err
		}
		l, err := parsePercent(parts[2])
		if err != nil {
			return PlainColor{}, err
		}
		r, g, b := colorful.Hsl(h, s, l).Clamped().RGB255()
		return NewPlainColor(r, g, b, alpha), nil
	}
	return PlainColor{}, errColorFormat
}

func parseHexColor(v string) (PlainColor, error) {
	n, err := strconv.ParseUint(v, 16, 32)
	if err != nil {
		return PlainColor{}, err
	}
	switch len(v) {
	case 3:
		r, g, b := uint8(n>>8&0xf), uint8(n>>4&0xf), uint8(n&0xf)
		return NewPlainColor(r*17, g*17, b*17, 0xff), nil
	case 6:
		return NewPlainColor(uint8(n>>16), uint8(n>>8), uint8(n), 0xff), nil
	case 8:
		return NewPlainColor(uint8(n>>24), uint8(n>>16), uint8(n>>8), uint8(n)), nil
	}
	return PlainColor{}, errColorFormat
}

// parseSVGColor parses an SVG color value.
// "none" returns a non valid color and a nil error.
func parseSVGColor(colorStr string) (optionnalColor, error) {
	v := strings.ToLower(strings.TrimSpace(colorStr))
	switch v {
	case "none", "":
		return optionnalColor{}, nil
	case "currentcolor":
		// color inheritance is not tracked, black is the initial value
		return optionnalColor{valid: true, color: NewPlainColor(0, 0, 0, 0xff)}, nil
	case "transparent":
		return optionnalColor{valid: true, color: NewPlainColor(0, 0, 0, 0)}, nil
	}
	if strings.HasPrefix(v, "#") {
		c, err := parseHexColor(v[1:])
		if err != nil {
			return optionnalColor{}, fmt.Errorf("color %q: %w", colorStr, errColorFormat)
		}
		return optionnalColor{valid: true, color: c}, nil
	}
	if i := strings.IndexByte(v, '('); i > 0 && strings.HasSuffix(v, ")") {
		c, err := parseFunctionalColor(strings.TrimSpace(v[:i]), v[i+1:len(v)-1])
		if err != nil {
			return optionnalColor{}, fmt.Errorf("color %q: %w", colorStr, errColorFormat)
		}
		return optionnalColor{valid: true, color: c}, nil
	}
	if c, ok := colornames.Map[v]; ok {
		return optionnalColor{valid: true, color: PlainColor{c}}, nil
	}
	return optionnalColor{}, fmt.Errorf("color %q: %w", colorStr, errColorFormat)
}
