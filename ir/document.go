package ir

import (
	"strings"
)

// DefaultIndent is the indentation of one nesting level in documents
// which do not show one of their own.
const DefaultIndent = "    "

// Document is a parsed HOCON file. Rendering Lead, Root and Trail in that
// order reproduces the file.
type Document struct {
	// Lead and Trail surround a braced root object. They are empty for a
	// braceless root, whose surrounding text is held by its fields and Tail.
	Lead  string
	Root  *Node
	Trail string

	// EOL is the line ending used for new lines, "\n" or "\r\n".
	EOL string
}

// NewDocument returns an empty document with a braceless root.
func NewDocument() *Document {
	return &Document{
		Root: Object(false),
		EOL:  "\n",
	}
}

func (d *Document) Clone() *Document {
	res := &Document{}
	*res = *d
	res.Root = d.Root.Clone()
	return res
}

// IndentUnit returns the indentation of one nesting level as used by the
// first indented section of d, or DefaultIndent.
func (d *Document) IndentUnit() string {
	if d.Root.Braces && len(d.Root.Fields) > 0 {
		if in := IndentOf(d.Root.Fields[0].Lead); in != "" && HasBreak(d.Root.Fields[0].Lead) {
			return in
		}
	}
	if unit := indentUnit(d.Root); unit != "" {
		return unit
	}
	return DefaultIndent
}

func indentUnit(obj *Node) string {
	for _, f := range obj.Fields {
		if f.Include || f.Value.Type != ObjectType {
			continue
		}
		sub := f.Value
		if len(sub.Fields) > 0 && HasBreak(sub.Fields[0].Lead) {
			parent := IndentOf(f.Lead)
			child := IndentOf(sub.Fields[0].Lead)
			if len(child) > len(parent) && strings.HasPrefix(child, parent) {
				return child[len(parent):]
			}
		}
		if unit := indentUnit(sub); unit != "" {
			return unit
		}
	}
	return ""
}

// IndentOf returns the indentation at the end of lead: the spaces and tabs
// following its last line break.
func IndentOf(lead string) string {
	s := lead[strings.LastIndexByte(lead, '\n')+1:]
	if strings.Trim(s, " \t") != "" {
		return ""
	}
	return s
}

// HasBreak reports whether s contains a line break.
func HasBreak(s string) bool {
	return strings.IndexByte(s, '\n') != -1
}

// DetectEOL returns "\r\n" if the first line break in d is preceded by a
// carriage return and "\n" otherwise.
func DetectEOL(d []byte) string {
	for i, c := range d {
		if c == '\n' {
			if i > 0 && d[i-1] == '\r' {
				return "\r\n"
			}
			return "\n"
		}
	}
	return "\n"
}
