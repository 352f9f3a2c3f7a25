package shim

import (
	"strings"
	"unicode/utf8"

	"github.com/benoitkugler/okresvg/svgicon"
)

// EncodeCString returns `s` followed by a NUL byte.
// It fails if `s` is not valid UTF-8 or contains a NUL byte,
// which would truncate the string on the C side.
func EncodeCString(s string) ([]byte, error) {
	if strings.IndexByte(s, 0) >= 0 || !utf8.ValidString(s) {
		return nil, ErrUnrepresentableXML
	}
	out := make([]byte, len(s)+1)
	copy(out, s)
	return out, nil
}

// TreeToXML serializes `tree` with the default write options.
// The returned buffer is NUL terminated and freshly allocated.
// A nil tree is reported as ParsingFailed.
func TreeToXML(tree *svgicon.SvgIcon) ([]byte, Status) {
	if tree == nil {
		return nil, StatusOf(ErrNullInput)
	}
	out, err := EncodeCString(tree.ToString(svgicon.DefaultWriteOptions()))
	if err != nil {
		return nil, StatusOf(err)
	}
	return out, OK
}
