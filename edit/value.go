package edit

import (
	"fmt"
	"strings"

	"github.com/h0tw1r3/puppetlabs-hocon/encode"
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/parse"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

// Style selects how strings are written.
type Style int

const (
	// Native leaves strings bare unless they need quotes.
	Native Style = iota
	// JSON quotes every string.
	JSON
)

// styleOf returns JSON for root fields and for replacing a quoted value,
// Native otherwise.
func styleOf(old *ir.Node, root bool) Style {
	if old != nil && old.Type == ir.ValueType {
		if strings.HasPrefix(old.Raw, `"`) {
			return JSON
		}
		return Native
	}
	if root {
		return JSON
	}
	return Native
}

// Value is a value to be written to a document.
type Value interface {
	// Node returns a new node holding the value.
	Node(s Style) *ir.Node
	// Equal reports whether n already holds the value.
	Equal(n *ir.Node) bool
}

type stringValue string

// String returns the string s, quoted as needed.
func String(s string) Value {
	return stringValue(s)
}

func (v stringValue) Node(s Style) *ir.Node {
	return ir.Scalar(encodeString(string(v), s))
}

func (v stringValue) Equal(n *ir.Node) bool {
	return scalarEqual(n, string(v))
}

type quotedValue string

// Quoted returns the string s, always quoted.
func Quoted(s string) Value {
	return quotedValue(s)
}

func (v quotedValue) Node(Style) *ir.Node {
	return ir.Scalar(token.Quote(string(v)))
}

func (v quotedValue) Equal(n *ir.Node) bool {
	return n.Type == ir.ValueType && strings.HasPrefix(n.Raw, `"`) && scalarEqual(n, string(v))
}

type bareValue string

// Bare returns s written as is. It is meant for numbers and booleans.
func Bare(s string) Value {
	return bareValue(s)
}

func (v bareValue) Node(Style) *ir.Node {
	return ir.Scalar(string(v))
}

func (v bareValue) Equal(n *ir.Node) bool {
	return n.Type == ir.ValueType && n.Raw == string(v)
}

type textValue struct {
	text string
	node *ir.Node
}

// Text returns a value given as HOCON text, which may be an object or
// an array.
func Text(s string) (Value, error) {
	s = strings.TrimSpace(s)
	doc, err := parse.Parse([]byte("v = " + s))
	if err != nil {
		return nil, err
	}
	if len(doc.Root.Fields) != 1 || doc.Root.Fields[0].Trail != "" || doc.Root.Tail != "" {
		return nil, fmt.Errorf("%w: %q is not a single value", parse.ErrValue, s)
	}
	return &textValue{text: s, node: doc.Root.Fields[0].Value}, nil
}

func (v *textValue) Node(Style) *ir.Node {
	return v.node.Clone()
}

func (v *textValue) Equal(n *ir.Node) bool {
	if n.Type != v.node.Type {
		return false
	}
	if n.Type == ir.ValueType {
		a, errA := encode.Decode(n.Raw)
		b, errB := encode.Decode(v.node.Raw)
		return errA == nil && errB == nil && a == b
	}
	return encode.MustString(n) == v.text
}

type listValue []string

// List returns an array of strings written on one line.
func List(items ...string) Value {
	return listValue(items)
}

func (v listValue) Node(s Style) *ir.Node {
	arr := ir.Array()
	for i, item := range v {
		e := &ir.Elem{Value: ir.Scalar(encodeString(item, s))}
		if i > 0 {
			e.Lead = " "
			arr.Elems[i-1].Trail = ","
		}
		arr.Elems = append(arr.Elems, e)
	}
	return arr
}

func (v listValue) Equal(n *ir.Node) bool {
	if n.Type != ir.ArrayType || len(n.Elems) != len(v) {
		return false
	}
	for i, e := range n.Elems {
		if !scalarEqual(e.Value, v[i]) {
			return false
		}
	}
	return true
}

func encodeString(s string, style Style) string {
	if style == JSON {
		return encode.ValueJSON(s)
	}
	return encode.Value(s)
}

// scalarEqual reports whether n is a scalar reading as s.
func scalarEqual(n *ir.Node, s string) bool {
	if n == nil || n.Type != ir.ValueType {
		return false
	}
	got, err := encode.Decode(n.Raw)
	return err == nil && got == s
}
