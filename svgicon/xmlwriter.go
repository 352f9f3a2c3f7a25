package svgicon

import (
	"bytes"
	"strconv"
	"strings"
)

// Indent controls the line layout of the XML output.
// The zero value writes everything on a single line.
type Indent int

const (
	// IndentNone writes the document on a single line.
	IndentNone Indent = 0
	// IndentTabs uses one tab per level.
	IndentTabs Indent = -1
)

// IndentSpaces uses n spaces per level. Zero spaces
// still breaks lines.
func IndentSpaces(n int) Indent {
	if n < 0 {
		return IndentNone
	}
	return Indent(n + 1)
}

func (ind Indent) write(buf *bytes.Buffer, depth int) {
	switch {
	case ind == IndentTabs:
		for i := 0; i < depth; i++ {
			buf.WriteByte('\t')
		}
	case ind > 1:
		for i := 0; i < depth*int(ind-1); i++ {
			buf.WriteByte(' ')
		}
	}
}

type xmlElement struct {
	name              string
	hasChild, hasText bool
}

// xmlWriter is a minimal streaming writer. Unlike encoding/xml, it honors
// the quote and indentation choices of WriteOptions, and only escapes
// the markup characters: the other characters are copied verbatim.
type xmlWriter struct {
	buf   bytes.Buffer
	opt   WriteOptions
	stack []xmlElement
	open  bool // the last start tag is not closed yet
}

func (w *xmlWriter) quote() byte {
	if w.opt.UseSingleQuote {
		return '\''
	}
	return '"'
}

func (w *xmlWriter) closeStartTag() {
	if w.open {
		w.buf.WriteByte('>')
		w.open = false
	}
}

func (w *xmlWriter) newLine(depth int) {
	if w.opt.Indent == IndentNone {
		return
	}
	w.buf.WriteByte('\n')
	w.opt.Indent.write(&w.buf, depth)
}

func (w *xmlWriter) start(name string) {
	w.closeStartTag()
	if n := len(w.stack); n > 0 {
		w.stack[n-1].hasChild = true
		w.newLine(n)
	}
	w.buf.WriteByte('<')
	w.buf.WriteString(name)
	w.stack = append(w.stack, xmlElement{name: name})
	w.open = true
}

func (w *xmlWriter) attr(name, value string) {
	if w.opt.AttributesIndent != IndentNone && w.opt.Indent != IndentNone {
		w.newLine(len(w.stack) - 1)
		w.opt.AttributesIndent.write(&w.buf, 1)
	} else {
		w.buf.WriteByte(' ')
	}
	q := w.quote()
	w.buf.WriteString(name)
	w.buf.WriteByte('=')
	w.buf.WriteByte(q)
	w.escape(value, q)
	w.buf.WriteByte(q)
}

func (w *xmlWriter) attrNum(name string, v float64, precision uint8) {
	w.attr(name, formatNumber(v, precision))
}

func (w *xmlWriter) text(s string) {
	w.closeStartTag()
	w.stack[len(w.stack)-1].hasText = true
	w.escape(s, 0)
}

func (w *xmlWriter) end() {
	n := len(w.stack)
	el := w.stack[n-1]
	w.stack = w.stack[:n-1]
	if w.open {
		w.buf.WriteString("/>")
		w.open = false
		return
	}
	if el.hasChild && !el.hasText {
		w.newLine(n - 1)
	}
	w.buf.WriteString("</")
	w.buf.WriteString(el.name)
	w.buf.WriteByte('>')
}

// escape writes s, replacing the markup characters.
// quote is the attribute delimiter, or 0 for text content.
func (w *xmlWriter) escape(s string, quote byte) {
	last := 0
	for i := 0; i < len(s); i++ {
		var esc string
		switch s[i] {
		case '&':
			esc = "&amp;"
		case '<':
			esc = "&lt;"
		case '>':
			esc = "&gt;"
		case '"':
			if quote == '"' {
				esc = "&quot;"
			}
		case '\'':
			if quote == '\'' {
				esc = "&apos;"
			}
		}
		if esc == "" {
			continue
		}
		w.buf.WriteString(s[last:i])
		w.buf.WriteString(esc)
		last = i + 1
	}
	w.buf.WriteString(s[last:])
}

// formatNumber writes v with at most precision decimals,
// without trailing zeros.
func formatNumber(v float64, precision uint8) string {
	s := strconv.FormatFloat(v, 'f', int(precision), 64)
	if strings.IndexByte(s, '.') != -1 {
		s = strings.TrimRight(s, "0")
		s = strings.TrimSuffix(s, ".")
	}
	if s == "-0" {
		s = "0"
	}
	return s
}
