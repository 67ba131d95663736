// Package setpath provides dotted setting paths.
//
// A setting path such as "one.two" names the field two of the object
// found at field one of a document root. Segments are separated by '.'
// and taken literally: there is no quoting or escaping in a setting path.
package setpath

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrEmpty        = errors.New("empty setting path")
	ErrEmptySegment = errors.New("empty path segment")
)

// Path is a non empty sequence of non empty segments.
type Path []string

// Parse splits s on '.'.
func Parse(s string) (Path, error) {
	if s == "" {
		return nil, ErrEmpty
	}
	res := strings.Split(s, ".")
	off := 0
	for _, seg := range res {
		if seg == "" {
			return nil, fmt.Errorf("%w at offset %d in %q", ErrEmptySegment, off, s)
		}
		off += len(seg) + 1
	}
	return Path(res), nil
}

func MustParse(s string) Path {
	p, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return p
}

// String returns the canonical form of p.
func (p Path) String() string {
	return strings.Join(p, ".")
}

func (p Path) Equal(o Path) bool {
	if len(p) != len(o) {
		return false
	}
	for i := range p {
		if p[i] != o[i] {
			return false
		}
	}
	return true
}

// HasPrefix reports whether the first len(q) segments of p are q.
func (p Path) HasPrefix(q Path) bool {
	return len(q) <= len(p) && p[:len(q)].Equal(q)
}

func (p Path) Last() string {
	if len(p) == 0 {
		return ""
	}
	return p[len(p)-1]
}
