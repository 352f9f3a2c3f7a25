// Package svgraster paints parsed SVG images on an image.RGBA,
// using the rasterx scanline rasterizer.
package svgraster

import (
	"errors"
	"image"
	"image/color"
	"io"

	"github.com/benoitkugler/okresvg/svgicon"
	"github.com/srwiley/rasterx"
)

var _ svgicon.Driver = (*Renderer)(nil)

// ErrEmptyImage is returned when the output would have no pixel.
var ErrEmptyImage = errors.New("empty image size")

// Renderer paints on a rasterx.Scanner. The filler and the
// dasher share the scanner, and are reused for every path.
type Renderer struct {
	filler filler
	dasher stroker
}

// NewRenderer returns a renderer for an output of the given size.
func NewRenderer(width, height int, scanner rasterx.Scanner) *Renderer {
	return &Renderer{
		filler: filler{rasterx.NewFiller(width, height, scanner)},
		dasher: stroker{rasterx.NewDasher(width, height, scanner)},
	}
}

// SetupDrawers implements svgicon.Driver.
func (rd *Renderer) SetupDrawers(willFill, willStroke bool) (f svgicon.Filler, s svgicon.Stroker) {
	if willFill {
		f = rd.filler
	}
	if willStroke {
		s = rd.dasher
	}
	return f, s
}

// Options controls the rasterization of an SVG document.
type Options struct {
	ErrorMode svgicon.ErrorMode
	// Width and Height are the size of the output, in pixels.
	// A zero value is replaced by the size of the image.
	Width, Height int
}

// RasterSVGIconToImage parses `icon` and paints it on a new image,
// scaled to fill it. `opts` may be nil.
func RasterSVGIconToImage(icon io.Reader, opts *Options) (*image.RGBA, error) {
	if opts == nil {
		opts = &Options{}
	}
	parsed, err := svgicon.ReadIconStream(icon, opts.ErrorMode)
	if err != nil {
		return nil, err
	}
	return Raster(parsed, opts.Width, opts.Height)
}

// Raster paints `icon` on a new image of the given size, in pixels.
// A zero size is replaced by the size of the icon, rounded.
func Raster(icon *svgicon.SvgIcon, width, height int) (*image.RGBA, error) {
	iw, ih := icon.Size()
	if width == 0 {
		width = int(iw + 0.5)
	}
	if height == 0 {
		height = int(ih + 0.5)
	}
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	RenderTo(icon, img, icon.TargetTransform(0, 0, float64(width), float64(height)))
	return img, nil
}

// RenderTo draws `icon` on `img`, mapping the icon user space with `m`.
// The icon is not modified.
func RenderTo(icon *svgicon.SvgIcon, img *image.RGBA, m svgicon.Matrix2D) {
	bounds := img.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	scanner := rasterx.NewScannerGV(w, h, img, bounds)
	icon.DrawTransformed(NewRenderer(w, h, scanner), 1.0, m)
}

// rasterxGradient converts `grad`, whose box is `bounds`.
func rasterxGradient(grad svgicon.Gradient, bounds svgicon.Bounds) rasterx.Gradient {
	out := rasterx.Gradient{
		Matrix: rasterx.Matrix2D(grad.Matrix),
		Spread: rasterx.SpreadMethod(grad.Spread),
		Units:  rasterx.GradientUnits(grad.Units),
		Stops:  make([]rasterx.GradStop, len(grad.Stops)),
	}
	switch dir := grad.Direction.(type) {
	case svgicon.Linear:
		copy(out.Points[:], dir[:])
	case svgicon.Radial:
		copy(out.Points[:], dir[:5]) // the focal radius is not supported
		out.IsRadial = true
	}
	for i, stop := range grad.Stops {
		c := stop.StopColor
		if rgba, ok := c.(color.RGBA); ok { // parsed colors are not premultiplied
			c = color.NRGBA(rgba)
		}
		out.Stops[i] = rasterx.GradStop{StopColor: c, Offset: stop.Offset, Opacity: stop.Opacity}
	}
	out.Bounds.X, out.Bounds.Y = bounds.X, bounds.Y
	out.Bounds.W, out.Bounds.H = bounds.W, bounds.H
	return out
}

// setPattern selects the color of the next Draw.
func setPattern(scanner rasterx.Scanner, pattern svgicon.Pattern, opacity float64) {
	switch p := pattern.(type) {
	case svgicon.PlainColor:
		scanner.SetColor(rasterx.ApplyOpacity(color.NRGBA(p.RGBA), opacity))
	case svgicon.Gradient:
		if len(p.Stops) == 0 {
			return
		}
		bounds := p.Bounds
		if p.Units == svgicon.ObjectBoundingBox {
			// the box of the path, in pixels
			ext := scanner.GetPathExtent()
			bounds = svgicon.Bounds{
				X: float64(ext.Min.X) / 64, Y: float64(ext.Min.Y) / 64,
				W: float64(ext.Max.X-ext.Min.X) / 64, H: float64(ext.Max.Y-ext.Min.Y) / 64,
			}
		}
		g := rasterxGradient(p, bounds)
		scanner.SetColor(g.GetColorFunction(opacity))
	}
}

type filler struct{ *rasterx.Filler }

func (f filler) SetColor(pattern svgicon.Pattern, opacity float64) {
	setPattern(f.Scanner, pattern, opacity)
}

type stroker struct{ *rasterx.Dasher }

func (s stroker) SetColor(pattern svgicon.Pattern, opacity float64) {
	setPattern(s.Scanner, pattern, opacity)
}

var (
	joins = [...]rasterx.JoinMode{
		svgicon.Arc:       rasterx.Arc,
		svgicon.Round:     rasterx.Round,
		svgicon.Bevel:     rasterx.Bevel,
		svgicon.Miter:     rasterx.Miter,
		svgicon.MiterClip: rasterx.MiterClip,
		svgicon.ArcClip:   rasterx.ArcClip,
	}
	caps = [...]rasterx.CapFunc{
		svgicon.NilCap:       rasterx.ButtCap,
		svgicon.ButtCap:      rasterx.ButtCap,
		svgicon.SquareCap:    rasterx.SquareCap,
		svgicon.RoundCap:     rasterx.RoundCap,
		svgicon.CubicCap:     rasterx.CubicCap,
		svgicon.QuadraticCap: rasterx.QuadraticCap,
	}
	gaps = [...]rasterx.GapFunc{
		svgicon.NilGap:       rasterx.FlatGap,
		svgicon.FlatGap:      rasterx.FlatGap,
		svgicon.RoundGap:     rasterx.RoundGap,
		svgicon.CubicGap:     rasterx.CubicGap,
		svgicon.QuadraticGap: rasterx.QuadraticGap,
	}
)

func (s stroker) SetStrokeOptions(opts svgicon.StrokeOptions) {
	j := opts.Join
	s.SetStroke(opts.LineWidth, j.MiterLimit,
		caps[j.LeadLineCap], caps[j.TrailLineCap], gaps[j.LineGap], joins[j.LineJoin],
		opts.Dash.Dash, opts.Dash.DashOffset)
}
