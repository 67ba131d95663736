package edit

import (
	"errors"
	"fmt"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

var (
	ErrNotFound     = errors.New("setting not found")
	ErrPathConflict = errors.New("path conflict")
)

// ConflictError reports a setting path which crosses an entry that is not
// an object, or an element operation on an entry that is not an array.
type ConflictError struct {
	Path setpath.Path
	At   setpath.Path
	Type ir.Type
	Want ir.Type
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s: cannot resolve %s, %s is %s %s, not %s %s", ErrPathConflict,
		e.Path, e.At, article(e.Type), e.Type, article(e.Want), e.Want)
}

func (e *ConflictError) Unwrap() error {
	return ErrPathConflict
}

func article(t ir.Type) string {
	if t == ir.ObjectType || t == ir.ArrayType {
		return "an"
	}
	return "a"
}
