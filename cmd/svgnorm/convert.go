package main

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/benoitkugler/okresvg/shim"
	"github.com/benoitkugler/okresvg/svgicon"
	"github.com/benoitkugler/okresvg/svgpdf"
	"github.com/benoitkugler/okresvg/svgraster"
	"golang.org/x/sync/errgroup"
)

var (
	errUnknownFormat  = errors.New("unknown output format")
	errOverwriteInput = errors.New("output would overwrite the input")
)

type converter struct {
	cfg    config
	opts   shim.Options
	write  svgicon.WriteOptions
	logger *slog.Logger
}

func newConverter(cfg config, logger *slog.Logger) (*converter, error) {
	switch cfg.Format {
	case "svg", "png", "pdf":
	default:
		return nil, fmt.Errorf("%w: %q", errUnknownFormat, cfg.Format)
	}
	return &converter{
		cfg:    cfg,
		opts:   shim.Options{Strict: cfg.Strict, Logger: logger},
		write:  cfg.Write.options(),
		logger: logger,
	}, nil
}

// outputPath returns the file written for `input`.
func (c *converter) outputPath(input string) string {
	name := strings.TrimSuffix(filepath.Base(input), filepath.Ext(input))
	return filepath.Join(c.cfg.Out, name+"."+c.cfg.Format)
}

// convertAll converts the inputs concurrently, stopping
// at the first error.
func (c *converter) convertAll(ctx context.Context, inputs []string) error {
	if err := os.MkdirAll(c.cfg.Out, 0o755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}
	jobs := c.cfg.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(jobs)
	for _, input := range inputs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return c.convertFile(input)
		})
	}
	return g.Wait()
}

func (c *converter) convertFile(input string) error {
	output := c.outputPath(input)
	if sameFile(input, output) {
		return fmt.Errorf("%w: %s", errOverwriteInput, input)
	}
	// the whole output is built before the file is created
	var buf bytes.Buffer
	if err := c.convert(input, &buf); err != nil {
		return err
	}
	if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
		os.Remove(output)
		return err
	}
	c.logger.Debug("converted", slog.String("input", input), slog.String("output", output))
	return nil
}

// sameFile returns true if `a` and `b` name the same file.
func sameFile(a, b string) bool {
	absA, errA := filepath.Abs(a)
	absB, errB := filepath.Abs(b)
	if errA == nil && errB == nil && absA == absB {
		return true
	}
	infoA, errA := os.Stat(a)
	infoB, errB := os.Stat(b)
	return errA == nil && errB == nil && os.SameFile(infoA, infoB)
}

// convert parses `input` and writes it to `out` in the configured format.
func (c *converter) convert(input string, out io.Writer) error {
	data, err := os.ReadFile(input)
	if err != nil {
		return err
	}
	icon, err := shim.Parse(data, c.opts)
	if err != nil {
		return fmt.Errorf("%s: %w", input, err)
	}
	switch c.cfg.Format {
	case "png":
		img, err := svgraster.Raster(icon, c.cfg.Raster.Width, c.cfg.Raster.Height)
		if err != nil {
			return fmt.Errorf("%s: %w", input, err)
		}
		return png.Encode(out, img)
	case "pdf":
		return svgpdf.WriteIcon(icon, out)
	default:
		return icon.WriteXML(out, c.write)
	}
}
