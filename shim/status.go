// Package shim implements, in pure Go, the logic behind the resvg
// compatible C API exposed by the capi package: status codes, tree
// parsing, and the export of a tree to normalized XML.
//
// The capi package only converts between C and Go values.
package shim

import (
	"errors"
	"strconv"
)

// Status is the code returned across the C boundary.
// The numbering is the one of resvg.h.
type Status int32

const (
	OK Status = iota
	NotAnUTF8String
	FileOpenFailed
	MalformedGzip
	ElementsLimitReached
	InvalidSize
	ParsingFailed
)

func (s Status) String() string {
	switch s {
	case OK:
		return "ok"
	case NotAnUTF8String:
		return "not an utf8 string"
	case FileOpenFailed:
		return "file open failed"
	case MalformedGzip:
		return "malformed gzip"
	case ElementsLimitReached:
		return "elements limit reached"
	case InvalidSize:
		return "invalid size"
	case ParsingFailed:
		return "parsing failed"
	default:
		return "<unknown Status " + strconv.Itoa(int(s)) + ">"
	}
}

var (
	// ErrNullInput is returned for a missing tree or output.
	ErrNullInput          = errors.New("null input")
	ErrNotAnUTF8String    = errors.New("not an utf8 string")
	ErrFileOpenFailed     = errors.New("file open failed")
	ErrMalformedGzip      = errors.New("malformed gzip")
	ErrElementsLimit      = errors.New("elements limit reached")
	ErrInvalidSize        = errors.New("invalid size")
	ErrUnrepresentableXML = errors.New("serialized tree is not a valid C string")
)

// StatusOf maps an error to its status code.
// Errors without a dedicated code are reported as ParsingFailed.
func StatusOf(err error) Status {
	switch {
	case err == nil:
		return OK
	case errors.Is(err, ErrNotAnUTF8String), errors.Is(err, ErrUnrepresentableXML):
		return NotAnUTF8String
	case errors.Is(err, ErrFileOpenFailed):
		return FileOpenFailed
	case errors.Is(err, ErrMalformedGzip):
		return MalformedGzip
	case errors.Is(err, ErrElementsLimit):
		return ElementsLimitReached
	case errors.Is(err, ErrInvalidSize):
		return InvalidSize
	default:
		return ParsingFailed
	}
}
