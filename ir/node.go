package ir

import (
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

// Node is a value in a HOCON document.
//
// Objects hold Fields, arrays hold Elems and values hold the text of a
// scalar or a concatenation of scalars exactly as written.
type Node struct {
	Type Type

	Fields []*Field
	Elems  []*Elem
	Raw    string

	// Braces is set when an object is delimited by { }. Only the root
	// object of a document may be written without them.
	Braces bool
	// Tail holds the text between the last entry and the closing bracket,
	// or the end of the document for a braceless root.
	Tail string
}

// Field is one entry of an object.
type Field struct {
	// Lead is the whitespace and comments before the key, starting with
	// the line break which ends the previous entry.
	Lead string
	// KeyRaw is the key as written, e.g. `a.b."c d"`.
	KeyRaw string
	// Key is the decoded path expression of KeyRaw.
	Key setpath.Path
	// Sep is the text between key and value, separator included.
	Sep   string
	Value *Node
	// Trail is the text after the value up to the end of its line: spaces,
	// a comma and a comment.
	Trail string

	// Include marks an include statement, which is held verbatim in KeyRaw
	// and has no Value.
	Include bool
}

// Elem is one entry of an array.
type Elem struct {
	Lead  string
	Value *Node
	Trail string
}

func Scalar(raw string) *Node {
	return &Node{Type: ValueType, Raw: raw}
}

func Object(braces bool) *Node {
	return &Node{Type: ObjectType, Braces: braces}
}

func Array() *Node {
	return &Node{Type: ArrayType}
}

// IsEmpty reports whether an object or array has no entries.
func (n *Node) IsEmpty() bool {
	return len(n.Fields) == 0 && len(n.Elems) == 0
}

func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	res := &Node{}
	*res = *n
	if n.Fields != nil {
		res.Fields = make([]*Field, len(n.Fields))
		for i, f := range n.Fields {
			res.Fields[i] = f.Clone()
		}
	}
	if n.Elems != nil {
		res.Elems = make([]*Elem, len(n.Elems))
		for i, e := range n.Elems {
			res.Elems[i] = &Elem{Lead: e.Lead, Value: e.Value.Clone(), Trail: e.Trail}
		}
	}
	return res
}

func (f *Field) Clone() *Field {
	res := &Field{}
	*res = *f
	res.Key = append(setpath.Path(nil), f.Key...)
	res.Value = f.Value.Clone()
	return res
}

// Index returns the index of f in the fields of n, or -1.
func (n *Node) Index(f *Field) int {
	for i, g := range n.Fields {
		if g == f {
			return i
		}
	}
	return -1
}
