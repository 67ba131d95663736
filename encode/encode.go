package encode

import (
	"bytes"
	"io"
	"strings"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

type EncState struct {
	Color func(ir.Type, ColorAttr, string) string
}

// Encode writes doc to w. Without options the output is exactly the text
// the document was parsed from, with any edits applied.
func Encode(doc *ir.Document, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	if err := writeTrivia(w, doc.Lead, es); err != nil {
		return err
	}
	if err := encode(doc.Root, w, es); err != nil {
		return err
	}
	return writeTrivia(w, doc.Trail, es)
}

// EncodeNode writes node to w.
func EncodeNode(node *ir.Node, w io.Writer, opts ...EncodeOption) error {
	es := &EncState{}
	for _, opt := range opts {
		opt(es)
	}
	return encode(node, w, es)
}

// Render returns the text of doc.
func Render(doc *ir.Document) []byte {
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf); err != nil {
		panic(err)
	}
	return buf.Bytes()
}

func encode(node *ir.Node, w io.Writer, es *EncState) error {
	switch node.Type {
	case ir.ObjectType:
		return encodeObject(node, w, es)
	case ir.ArrayType:
		return encodeArray(node, w, es)
	default:
		return writeString(w, es.color(ir.ValueType, scalarAttr(node.Raw), node.Raw))
	}
}

func encodeObject(node *ir.Node, w io.Writer, es *EncState) error {
	if node.Braces {
		if err := writeString(w, es.color(ir.ObjectType, SepColor, "{")); err != nil {
			return err
		}
	}
	for _, f := range node.Fields {
		if err := writeTrivia(w, f.Lead, es); err != nil {
			return err
		}
		if f.Include {
			if err := writeString(w, es.color(ir.ObjectType, IncludeColor, f.KeyRaw)); err != nil {
				return err
			}
		} else {
			if err := writeString(w, es.color(ir.ObjectType, FieldColor, f.KeyRaw)); err != nil {
				return err
			}
			if err := writeString(w, es.color(ir.ValueType, SepColor, f.Sep)); err != nil {
				return err
			}
			if err := encode(f.Value, w, es); err != nil {
				return err
			}
		}
		if err := writeTrivia(w, f.Trail, es); err != nil {
			return err
		}
	}
	if err := writeTrivia(w, node.Tail, es); err != nil {
		return err
	}
	if node.Braces {
		return writeString(w, es.color(ir.ObjectType, SepColor, "}"))
	}
	return nil
}

func encodeArray(node *ir.Node, w io.Writer, es *EncState) error {
	if err := writeString(w, es.color(ir.ArrayType, SepColor, "[")); err != nil {
		return err
	}
	for _, e := range node.Elems {
		if err := writeTrivia(w, e.Lead, es); err != nil {
			return err
		}
		if err := encode(e.Value, w, es); err != nil {
			return err
		}
		if err := writeTrivia(w, e.Trail, es); err != nil {
			return err
		}
	}
	if err := writeTrivia(w, node.Tail, es); err != nil {
		return err
	}
	return writeString(w, es.color(ir.ArrayType, SepColor, "]"))
}

// writeTrivia writes whitespace, commas and comments, coloring the
// comments.
func writeTrivia(w io.Writer, s string, es *EncState) error {
	if es.Color == nil || !strings.ContainsAny(s, "#/") {
		return writeString(w, s)
	}
	toks, err := token.Tokenize([]byte(s))
	if err != nil {
		return writeString(w, s)
	}
	for i := range toks {
		t := &toks[i]
		v := string(t.Bytes)
		if t.Type == token.TComment {
			v = es.Color(ir.ValueType, CommentColor, v)
		}
		if err := writeString(w, v); err != nil {
			return err
		}
	}
	return nil
}

func (es *EncState) color(t ir.Type, a ColorAttr, s string) string {
	if es.Color == nil || s == "" {
		return s
	}
	return es.Color(t, a, s)
}

func writeString(w io.Writer, s string) error {
	_, err := io.WriteString(w, s)
	return err
}
