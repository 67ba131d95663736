package parse

import (
	"fmt"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

var (
	ErrParse      = ir.ErrParse
	ErrRootArray  = fmt.Errorf("%w: document root must be an object", ErrParse)
	ErrUnclosed   = fmt.Errorf("%w: unclosed", ErrParse)
	ErrNoSep      = fmt.Errorf("%w: expected line break or ','", ErrParse)
	ErrKey        = fmt.Errorf("%w: bad key", ErrParse)
	ErrValue      = fmt.Errorf("%w: expected value", ErrParse)
	ErrUnexpected = fmt.Errorf("%w: unexpected", ErrParse)
)

// ParseError is the error returned for malformed documents.
type ParseError struct {
	Pos *token.Pos
	Err error
}

func (e *ParseError) Error() string {
	if e.Pos == nil {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s: %s", e.Pos.Short(), e.Err.Error())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func newErr(pos *token.Pos, err error, format string, args ...any) *ParseError {
	if format != "" {
		err = fmt.Errorf("%w "+format, append([]any{err}, args...)...)
	}
	return &ParseError{Pos: pos, Err: err}
}
