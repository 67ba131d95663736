package hocon

import (
	"errors"
	"fmt"

	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/registry"
)

var (
	ErrParse            = ir.ErrParse
	ErrPathConflict     = edit.ErrPathConflict
	ErrDuplicate        = registry.ErrDuplicate
	ErrPathNotQualified = errors.New("file paths must be fully qualified")
	ErrMissingValue     = errors.New("value is a required parameter")
	ErrInvalidSetting   = errors.New("invalid setting")
	ErrInvalidEnsure    = errors.New("invalid ensure")
	ErrInvalidType      = errors.New("invalid value type")
	ErrInvalidValue     = errors.New("invalid value")
)

// OpError is the error of one Operation.
type OpError struct {
	Name string
	Path string
	Err  error
}

func (e *OpError) Error() string {
	return fmt.Sprintf("%s: %v", e.Name, e.Err)
}

func (e *OpError) Unwrap() error {
	return e.Err
}
