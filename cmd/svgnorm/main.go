// Command svgnorm converts SVG files into normalized SVG, PNG or PDF,
// using the same parser and writer as the C library.
//
//	svgnorm [flags] file.svg...
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"

	"github.com/benoitkugler/okresvg/shim"
)

func main() {
	if err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "svgnorm:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("svgnorm", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configPath := fs.String("config", "", "TOML configuration file")
	format := fs.String("format", "svg", "output format: svg, png or pdf")
	out := fs.String("out", ".", "output directory, '-' for stdout (single input only)")
	jobs := fs.Int("j", runtime.NumCPU(), "number of files converted concurrently")
	strict := fs.Bool("strict", false, "fail on unsupported elements")
	width := fs.Int("width", 0, "PNG width in pixels (default: image width)")
	height := fs.Int("height", 0, "PNG height in pixels (default: image height)")
	verbose := fs.Bool("v", false, "verbose logging")
	version := fs.Bool("version", false, "print the version and exit")
	fs.Usage = func() {
		fmt.Fprintln(fs.Output(), "usage: svgnorm [flags] file.svg...")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Fprintln(stdout, "resvg", shim.SemVer())
		return nil
	}

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))

	cfg, err := loadConfig(*configPath)
	if err != nil {
		return err
	}
	if *configPath == "" {
		cfg.Jobs = *jobs
	}
	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "format":
			cfg.Format = *format
		case "out":
			cfg.Out = *out
		case "j":
			cfg.Jobs = *jobs
		case "strict":
			cfg.Strict = *strict
		case "width":
			cfg.Raster.Width = *width
		case "height":
			cfg.Raster.Height = *height
		}
	})

	if fs.NArg() == 0 {
		fs.Usage()
		return errors.New("no input file")
	}
	conv, err := newConverter(cfg, logger)
	if err != nil {
		return err
	}
	if cfg.Out == "-" {
		if fs.NArg() != 1 {
			return errors.New("writing to stdout requires a single input")
		}
		return conv.convert(fs.Arg(0), stdout)
	}
	return conv.convertAll(ctx, fs.Args())
}
