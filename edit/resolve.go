package edit

import (
	"errors"
	"strings"

	"github.com/h0tw1r3/puppetlabs-hocon/encode"
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

// Handle is a setting located in a document.
type Handle struct {
	Doc  *ir.Document
	Path setpath.Path

	// Parent is the object holding Field, or the object a missing setting
	// is to be added to.
	Parent *ir.Node
	// Field is the entry holding the setting, nil if it is missing.
	Field *ir.Field
	// Key is the path of the setting relative to Parent.
	Key setpath.Path
	// Implicit is set when the key of Field extends Key, so the setting
	// is an object defined through dotted keys such as `a.b.c = 1`.
	Implicit bool

	unit  string
	chain []link
}

// link is an object on the way from the document root to a setting.
type link struct {
	obj *ir.Node
	// owner is the field holding obj, nil for the root.
	owner *ir.Field
	// indent is the indentation of new fields of obj and close that of
	// its closing brace.
	indent, close string
}

// Resolve locates path in doc.
//
// Fields are searched last to first, so the entry found is the one that
// takes effect when a key is defined more than once. Objects defined more
// than once are searched in turn. Include statements are never matched.
//
// If the setting is missing Resolve returns ErrNotFound, or with create
// set a Handle with a nil Field whose Parent is the deepest existing
// object on the path. A path crossing an entry that is not an object
// fails with a *ConflictError.
func Resolve(doc *ir.Document, path setpath.Path, create bool) (*Handle, error) {
	if len(path) == 0 {
		return nil, setpath.ErrEmpty
	}
	r := &resolver{doc: doc, path: path, unit: doc.IndentUnit()}
	root := []link{r.root()}
	h, err := r.find(root, path)
	if errors.Is(err, ErrNotFound) && create {
		return r.container(root, path), nil
	}
	return h, err
}

type resolver struct {
	doc  *ir.Document
	path setpath.Path
	unit string
}

func (r *resolver) root() link {
	if r.doc.Root.Braces {
		return link{obj: r.doc.Root, indent: r.unit}
	}
	return link{obj: r.doc.Root}
}

func (r *resolver) child(parent link, f *ir.Field) link {
	own := parent.indent
	if ir.HasBreak(f.Lead) {
		own = ir.IndentOf(f.Lead)
	}
	return link{obj: f.Value, owner: f, indent: own + r.unit, close: own}
}

func (r *resolver) handle(chain []link, f *ir.Field, rest setpath.Path, implicit bool) *Handle {
	return &Handle{
		Doc:      r.doc,
		Path:     r.path,
		Parent:   chain[len(chain)-1].obj,
		Field:    f,
		Key:      rest,
		Implicit: implicit,
		unit:     r.unit,
		chain:    chain,
	}
}

func (r *resolver) find(chain []link, rest setpath.Path) (*Handle, error) {
	cur := chain[len(chain)-1]
	merged := false
	for i := len(cur.obj.Fields) - 1; i >= 0; i-- {
		f := cur.obj.Fields[i]
		if f.Include {
			continue
		}
		switch {
		case f.Key.Equal(rest):
			return r.handle(chain, f, rest, false), nil
		case f.Key.HasPrefix(rest):
			return r.handle(chain, f, rest, true), nil
		case rest.HasPrefix(f.Key):
			if f.Value.Type != ir.ObjectType {
				if merged {
					// shadowed by a later object
					return nil, ErrNotFound
				}
				return nil, &ConflictError{
					Path: r.path,
					At:   r.path[:len(r.path)-len(rest)+len(f.Key)],
					Type: f.Value.Type,
					Want: ir.ObjectType,
				}
			}
			h, err := r.find(extend(chain, r.child(cur, f)), rest[len(f.Key):])
			if !errors.Is(err, ErrNotFound) {
				return h, err
			}
			merged = true
		}
	}
	return nil, ErrNotFound
}

// container returns the handle for a missing setting: new entries go
// into the last object on the path which exists.
func (r *resolver) container(chain []link, rest setpath.Path) *Handle {
	cur := chain[len(chain)-1]
	for i := len(cur.obj.Fields) - 1; i >= 0; i-- {
		f := cur.obj.Fields[i]
		if f.Include || len(f.Key) >= len(rest) || !rest.HasPrefix(f.Key) {
			continue
		}
		if f.Value.Type != ir.ObjectType {
			continue
		}
		return r.container(extend(chain, r.child(cur, f)), rest[len(f.Key):])
	}
	return r.handle(chain, nil, rest, false)
}

func extend(chain []link, l link) []link {
	return append(chain[:len(chain):len(chain)], l)
}

// Node returns the value of the setting, nil if it is missing or
// implicit.
func (h *Handle) Node() *ir.Node {
	if h.Field == nil || h.Implicit {
		return nil
	}
	return h.Field.Value
}

// AtRoot reports whether the setting is, or would be, a field of the
// document root.
func (h *Handle) AtRoot() bool {
	return h.Parent == h.Doc.Root && (h.Field != nil || len(h.Key) == 1)
}

// Set makes v the value of the setting, creating missing objects on the
// way. Only the value of an existing entry is rewritten; its key, comments
// and layout are kept.
func (h *Handle) Set(v Value) Outcome {
	root := h.AtRoot()
	switch {
	case h.Field == nil:
		h.create(v)
	case h.Implicit:
		h.Field.KeyRaw = encode.Key(h.Key)
		h.Field.Key = h.Key
		h.Field.Sep = sepFor(h.Field.Sep, root)
		h.Field.Value = v.Node(styleOf(nil, root))
		h.Implicit = false
	default:
		if v.Equal(h.Field.Value) {
			return Unchanged
		}
		h.Field.Sep = sepFor(h.Field.Sep, root)
		h.Field.Value = v.Node(styleOf(h.Field.Value, root))
	}
	return Changed
}

func (h *Handle) create(v Value) {
	cur := h.chain[len(h.chain)-1]
	eol := h.Doc.EOL
	for _, seg := range h.Key[:len(h.Key)-1] {
		f := &ir.Field{
			KeyRaw: encode.Key(setpath.Path{seg}),
			Key:    setpath.Path{seg},
			Sep:    " ",
			Value:  ir.Object(true),
		}
		cur.obj.AppendField(f, eol, cur.indent, cur.close)
		own := ir.IndentOf(f.Lead)
		cur = link{obj: f.Value, owner: f, indent: own + h.unit, close: own}
		h.chain = append(h.chain, cur)
	}
	root := cur.obj == h.Doc.Root
	leaf := setpath.Path{h.Key.Last()}
	f := &ir.Field{
		KeyRaw: encode.Key(leaf),
		Key:    leaf,
		Sep:    sepFor("", root),
		Value:  v.Node(styleOf(nil, root)),
	}
	cur.obj.AppendField(f, eol, cur.indent, cur.close)
	h.Parent = cur.obj
	h.Field = f
	h.Key = leaf
}

// sepFor returns the separator for a field holding a value, keeping sep
// when it has one. Root fields use ':' and others '='.
func sepFor(sep string, root bool) string {
	switch {
	case strings.Contains(sep, "+="):
		return strings.Replace(sep, "+=", "=", 1)
	case strings.ContainsAny(sep, "=:"):
		return sep
	case root:
		return ": "
	default:
		return " = "
	}
}

// Remove removes the entry holding the setting and then every object on
// the way to it left empty, stopping below the document root.
func (h *Handle) Remove() bool {
	if h.Field == nil {
		return false
	}
	h.Parent.RemoveField(h.Parent.Index(h.Field))
	for j := len(h.chain) - 1; j > 0; j-- {
		l := h.chain[j]
		if !l.obj.IsEmpty() {
			break
		}
		p := h.chain[j-1].obj
		p.RemoveField(p.Index(l.owner))
	}
	h.Field = nil
	return true
}
