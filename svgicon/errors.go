package svgicon

import (
	"errors"
	"log/slog"
)

// ErrorMode is the for setting how the parser reacts to unparsed elements
type ErrorMode uint8

const (
	// IgnoreErrorMode skips unparsed SVG elements.
	IgnoreErrorMode ErrorMode = iota

	// WarnErrorMode outputs a warning on the logger when an
	// unparsed SVG element is found.
	WarnErrorMode

	// StrictErrorMode causes an error when an unparsed SVG element is found.
	StrictErrorMode
)

func (m ErrorMode) String() string {
	switch m {
	case IgnoreErrorMode:
		return "ignore"
	case WarnErrorMode:
		return "warn"
	case StrictErrorMode:
		return "strict"
	default:
		return "<unknown ErrorMode>"
	}
}

var (
	// ErrInvalidIcon is returned when the input holds no XML element.
	ErrInvalidIcon = errors.New("invalid svg xml icon")
	// ErrUnsupportedElement is returned in StrictErrorMode.
	ErrUnsupportedElement = errors.New("unsupported svg element")
	// ErrElementsLimit is returned when Options.MaxElements is exceeded.
	ErrElementsLimit = errors.New("too many elements")
	// ErrUseCycle is returned for a use element referencing itself,
	// directly or not.
	ErrUseCycle = errors.New("use element cycle")

	errParamMismatch  = errors.New("param mismatch")
	errCommandUnknown = errors.New("unknown command")
	errZeroLengthID   = errors.New("zero length id")
	errMissingID      = errors.New("cannot find id")
)

// handleError reports an unsupported construct according to
// the error mode of the cursor.
func (c *iconCursor) handleError(element string) error {
	switch c.errorMode {
	case StrictErrorMode:
		return &ElementError{Element: element}
	case WarnErrorMode:
		c.logger().Warn("cannot process svg element", slog.String("element", element))
	}
	return nil
}

func (c *iconCursor) logger() *slog.Logger {
	if c.log != nil {
		return c.log
	}
	return slog.Default()
}

// ElementError is returned in StrictErrorMode for an element
// the parser does not handle.
type ElementError struct {
	Element string
}

func (e *ElementError) Error() string {
	return "cannot process svg element " + e.Element
}

func (e *ElementError) Unwrap() error { return ErrUnsupportedElement }
