package shim

import (
	"bytes"
	"compress/gzip"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/benoitkugler/okresvg/svgicon"
)

// MaxElements is the maximum number of paths, and of
// elements replayed by use, accepted in one document.
const MaxElements = 1_000_000

// Options controls parsing.
type Options struct {
	// Strict rejects the elements the parser does not support,
	// instead of skipping them.
	Strict bool
	// Logger receives the parser warnings; nil means slog.Default().
	Logger *slog.Logger
}

func (opt Options) logger() *slog.Logger {
	if opt.Logger != nil {
		return opt.Logger
	}
	return slog.Default()
}

var gzipMagic = []byte{0x1f, 0x8b}

// Parse builds a tree from an SVG document, possibly gzip compressed.
func Parse(data []byte, opt Options) (*svgicon.SvgIcon, error) {
	if bytes.HasPrefix(data, gzipMagic) {
		zr, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedGzip, err)
		}
		data, err = io.ReadAll(zr)
		if err != nil {
			return nil, fmt.Errorf("%w: %s", ErrMalformedGzip, err)
		}
	}

	parseOpts := svgicon.Options{ErrorMode: svgicon.WarnErrorMode, Logger: opt.Logger, MaxElements: MaxElements}
	if opt.Strict {
		parseOpts.ErrorMode = svgicon.StrictErrorMode
	}
	tree, err := svgicon.ReadIconStreamOptions(bytes.NewReader(data), parseOpts)
	if err != nil {
		if syntaxErr, ok := err.(*xml.SyntaxError); ok && syntaxErr.Msg == "invalid UTF-8" {
			return nil, fmt.Errorf("%w: line %d", ErrNotAnUTF8String, syntaxErr.Line)
		}
		if errors.Is(err, svgicon.ErrElementsLimit) {
			return nil, fmt.Errorf("%w: %w", ErrElementsLimit, err)
		}
		return nil, fmt.Errorf("parsing svg: %w", err)
	}

	if w, h := tree.Size(); w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: %gx%g", ErrInvalidSize, w, h)
	}
	return tree, nil
}

// ParseTree is the same as Parse, but reports a status code.
// The failure is logged at debug level.
func ParseTree(data []byte, opt Options) (*svgicon.SvgIcon, Status) {
	tree, err := Parse(data, opt)
	if err != nil {
		opt.logger().Debug("parse tree", slog.String("error", err.Error()))
		return nil, StatusOf(err)
	}
	return tree, OK
}

// ParseFile is the same as Parse, reading the file at `path`.
func ParseFile(path string, opt Options) (*svgicon.SvgIcon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrFileOpenFailed, err)
	}
	return Parse(data, opt)
}

// ParseTreeFromFile reads and parses the file at `path`.
func ParseTreeFromFile(path string, opt Options) (*svgicon.SvgIcon, Status) {
	tree, err := ParseFile(path, opt)
	if err != nil {
		opt.logger().Debug("parse tree", slog.String("path", path), slog.String("error", err.Error()))
		return nil, StatusOf(err)
	}
	return tree, OK
}
