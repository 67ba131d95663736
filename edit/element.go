package edit

import (
	"errors"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

// PresentElement makes sure the array at path has an element reading
// as item, appending it if needed. A missing array is created.
func PresentElement(doc *ir.Document, path setpath.Path, item string) (Outcome, error) {
	h, err := Resolve(doc, path, true)
	if err != nil {
		return Unchanged, err
	}
	n := h.Node()
	if n == nil {
		return h.Set(List(item)), nil
	}
	if n.Type != ir.ArrayType {
		return Unchanged, &ConflictError{Path: path, At: path, Type: n.Type, Want: ir.ArrayType}
	}
	for _, e := range n.Elems {
		if scalarEqual(e.Value, item) {
			return Unchanged, nil
		}
	}
	style := Native
	if len(n.Elems) > 0 {
		style = styleOf(n.Elems[len(n.Elems)-1].Value, false)
	} else if h.AtRoot() {
		style = JSON
	}
	n.AppendElem(&ir.Elem{Value: ir.Scalar(encodeString(item, style))}, doc.EOL)
	return Changed, nil
}

// AbsentElement removes every element reading as item from the array at
// path. The array itself is kept, even if left empty.
func AbsentElement(doc *ir.Document, path setpath.Path, item string) (Outcome, error) {
	h, err := Resolve(doc, path, false)
	var cErr *ConflictError
	switch {
	case errors.Is(err, ErrNotFound), errors.As(err, &cErr):
		return Unchanged, nil
	case err != nil:
		return Unchanged, err
	}
	n := h.Node()
	if n == nil || n.Type != ir.ArrayType {
		return Unchanged, nil
	}
	out := Unchanged
	for i := len(n.Elems) - 1; i >= 0; i-- {
		if scalarEqual(n.Elems[i].Value, item) {
			n.RemoveElem(i)
			out = Changed
		}
	}
	return out, nil
}

func PresentElementOp(path setpath.Path, item string) Op {
	return func(doc *ir.Document) (Outcome, error) {
		return PresentElement(doc, path, item)
	}
}

func AbsentElementOp(path setpath.Path, item string) Op {
	return func(doc *ir.Document) (Outcome, error) {
		return AbsentElement(doc, path, item)
	}
}
