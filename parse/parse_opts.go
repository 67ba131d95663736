package parse

import (
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

type parseOpts struct {
	filename  string
	positions map[*ir.Node]*token.Pos
}

type ParseOption func(*parseOpts)

// ParsePositions records the position of the first token of every parsed
// node in m.
func ParsePositions(m map[*ir.Node]*token.Pos) ParseOption {
	return func(o *parseOpts) {
		o.positions = m
	}
}

// ParseFilename sets the name used in error positions.
func ParseFilename(name string) ParseOption {
	return func(o *parseOpts) { o.filename = name }
}
