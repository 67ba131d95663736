// Package edit applies setting changes to HOCON documents.
//
// Changes rewrite only the entries they concern: everything else in the
// document, comments and layout included, is rendered as it was parsed.
// Applying the same change twice leaves the document as the first
// application did.
package edit

import (
	"errors"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

type Outcome int

const (
	Unchanged Outcome = iota
	Changed
)

func (o Outcome) String() string {
	switch o {
	case Unchanged:
		return "unchanged"
	case Changed:
		return "changed"
	default:
		return "unknown"
	}
}

// Op is a change to a document.
type Op func(*ir.Document) (Outcome, error)

// Apply applies op to a copy of doc. It returns the copy if op changed
// it and doc otherwise.
func Apply(doc *ir.Document, op Op) (*ir.Document, Outcome, error) {
	res := doc.Clone()
	out, err := op(res)
	if err != nil || out == Unchanged {
		return doc, Unchanged, err
	}
	return res, out, nil
}

// Present makes v the value of path, adding the setting and any missing
// objects on the way.
func Present(doc *ir.Document, path setpath.Path, v Value) (Outcome, error) {
	h, err := Resolve(doc, path, true)
	if err != nil {
		return Unchanged, err
	}
	return h.Set(v), nil
}

// Absent removes path. Every entry defining it is removed, and the objects
// left empty by the removal are removed in turn. A missing setting, or
// one crossing a value which is not an object, is left as is.
func Absent(doc *ir.Document, path setpath.Path) (Outcome, error) {
	out := Unchanged
	for {
		h, err := Resolve(doc, path, false)
		var cErr *ConflictError
		switch {
		case errors.Is(err, ErrNotFound), errors.As(err, &cErr):
			return out, nil
		case err != nil:
			return out, err
		}
		h.Remove()
		out = Changed
	}
}

// PresentOp returns the Op of Present.
func PresentOp(path setpath.Path, v Value) Op {
	return func(doc *ir.Document) (Outcome, error) {
		return Present(doc, path, v)
	}
}

// AbsentOp returns the Op of Absent.
func AbsentOp(path setpath.Path) Op {
	return func(doc *ir.Document) (Outcome, error) {
		return Absent(doc, path)
	}
}
