// Package parse reads HOCON documents into the formatting preserving tree
// of package ir.
package parse

import (
	"errors"
	"fmt"
	"strings"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

// Parse parses d. Empty input, or input holding only whitespace and
// comments, yields a document with an empty braceless root.
//
// Rendering the result with package encode reproduces d byte for byte.
func Parse(d []byte, opts ...ParseOption) (*ir.Document, error) {
	pOpts := &parseOpts{}
	for _, f := range opts {
		f(pOpts)
	}
	toks, err := token.Tokenize(d, token.TokenName(pOpts.filename))
	if err != nil {
		tErr := &token.TokenizeErr{}
		if errors.As(err, &tErr) {
			return nil, &ParseError{Pos: &tErr.Pos, Err: fmt.Errorf("%w: %w", ErrParse, tErr.Err)}
		}
		return nil, &ParseError{Err: fmt.Errorf("%w: %w", ErrParse, err)}
	}
	p := &parser{d: d, toks: toks, opts: pOpts}
	doc := &ir.Document{EOL: ir.DetectEOL(d)}
	p.skipTrivia()
	switch p.peek() {
	case token.TLCurl:
		doc.Lead = p.text(0, p.i)
		root, err := p.value()
		if err != nil {
			return nil, err
		}
		doc.Root = root
		start := p.i
		p.skipTrivia()
		if p.i < len(p.toks) {
			return nil, newErr(p.pos(p.i), ErrUnexpected, "%s after root object", p.tok().Type)
		}
		doc.Trail = p.text(start, p.i)
	case token.TLSquare:
		return nil, newErr(p.pos(p.i), ErrRootArray, "")
	default:
		p.i = 0
		root := ir.Object(false)
		trackPos(root, p.pos(0), pOpts)
		if err := p.body(root); err != nil {
			return nil, err
		}
		doc.Root = root
	}
	return doc, nil
}

func trackPos(node *ir.Node, pos *token.Pos, opts *parseOpts) {
	if opts.positions != nil && pos != nil {
		opts.positions[node] = pos
	}
}

// eof is the token type reported by peek past the last token.
const eof token.TokenType = -1

type parser struct {
	d    []byte
	toks []token.Token
	i    int
	opts *parseOpts
}

func (p *parser) peek() token.TokenType {
	return p.peekAt(p.i)
}

func (p *parser) peekAt(i int) token.TokenType {
	if i >= len(p.toks) {
		return eof
	}
	return p.toks[i].Type
}

func (p *parser) tok() *token.Token {
	return &p.toks[p.i]
}

// off returns the byte offset of token i.
func (p *parser) off(i int) int {
	if i >= len(p.toks) {
		return len(p.d)
	}
	return p.toks[i].Pos.I
}

// text returns the input covered by tokens [i, j).
func (p *parser) text(i, j int) string {
	return string(p.d[p.off(i):p.off(j)])
}

func (p *parser) pos(i int) *token.Pos {
	if i < len(p.toks) {
		return p.toks[i].Pos
	}
	if len(p.toks) > 0 {
		return p.toks[0].Pos.D.Pos(len(p.d))
	}
	return token.NewPosDoc(p.opts.filename, p.d).Pos(len(p.d))
}

func (p *parser) skipTrivia() {
	for p.peek().IsTrivia() {
		p.i++
	}
}

func (p *parser) skipSpace() {
	for p.peek() == token.TSpace {
		p.i++
	}
}

// body parses the fields of obj up to and including its closing brace,
// or up to the end of input for a braceless object.
func (p *parser) body(obj *ir.Node) error {
	var prev *ir.Field
	for {
		start := p.i
		comma := prev != nil && !ir.HasComma(prev.Trail)
		sep := !comma
	lead:
		for {
			switch p.peek() {
			case token.TNewline:
				sep = true
			case token.TSpace, token.TComment:
			case token.TComma:
				if !comma {
					return newErr(p.pos(p.i), ErrUnexpected, "','")
				}
				comma = false
				sep = true
			default:
				break lead
			}
			p.i++
		}
		switch p.peek() {
		case eof:
			if obj.Braces {
				return newErr(p.pos(p.i), ErrUnclosed, "object, expected '}'")
			}
			obj.Tail = p.text(start, p.i)
			return nil
		case token.TRCurl:
			if !obj.Braces {
				return newErr(p.pos(p.i), ErrUnexpected, "'}'")
			}
			obj.Tail = p.text(start, p.i)
			p.i++
			return nil
		}
		if !sep {
			return newErr(p.pos(p.i), ErrNoSep, "between fields")
		}
		lead := p.text(start, p.i)
		f, err := p.field()
		if err != nil {
			return err
		}
		f.Lead = lead
		obj.Fields = append(obj.Fields, f)
		prev = f
	}
}

func (p *parser) field() (*ir.Field, error) {
	if p.isInclude() {
		start := p.i
		end := p.i
	include:
		for ; p.i < len(p.toks); p.i++ {
			switch p.peek() {
			case token.TNewline, token.TComment, token.TComma, token.TRCurl:
				break include
			case token.TSpace:
			default:
				end = p.i + 1
			}
		}
		p.i = end
		return &ir.Field{
			KeyRaw:  p.text(start, end),
			Include: true,
			Trail:   p.trail(),
		}, nil
	}
	keyStart := p.i
	keyEnd := p.i
key:
	for {
		switch p.peek() {
		case token.TLiteral, token.TString:
			p.i++
			keyEnd = p.i
		case token.TSpace:
			p.i++
		case token.TEquals, token.TColon, token.TPlusEquals, token.TLCurl:
			break key
		case eof:
			return nil, newErr(p.pos(p.i), ErrKey, "%q, expected separator", p.text(keyStart, keyEnd))
		default:
			return nil, newErr(p.pos(p.i), ErrKey, "%q, unexpected %s", p.text(keyStart, keyEnd), p.tok().Type)
		}
	}
	if keyEnd == keyStart {
		return nil, newErr(p.pos(keyStart), ErrKey, "missing")
	}
	path, err := p.key(keyStart, keyEnd)
	if err != nil {
		return nil, err
	}
	p.i = keyEnd
	p.skipSpace()
	sepTok := p.peek()
	if sepTok != token.TLCurl {
		p.i++
		for p.peek() == token.TSpace || p.peek() == token.TNewline {
			p.i++
		}
		if p.peek() == token.TLCurl && sepTok == token.TPlusEquals {
			return nil, newErr(p.pos(p.i), ErrValue, "for '+=', got object")
		}
	}
	f := &ir.Field{
		KeyRaw: p.text(keyStart, keyEnd),
		Key:    path,
		Sep:    p.text(keyEnd, p.i),
	}
	f.Value, err = p.value()
	if err != nil {
		return nil, err
	}
	f.Trail = p.trail()
	return f, nil
}

// isInclude reports whether an include statement starts at the current
// token.
func (p *parser) isInclude() bool {
	if p.peek() != token.TLiteral || string(p.tok().Bytes) != "include" {
		return false
	}
	if p.peekAt(p.i+1) != token.TSpace {
		return false
	}
	switch p.peekAt(p.i + 2) {
	case token.TString:
		return true
	case token.TLiteral:
		arg := string(p.toks[p.i+2].Bytes)
		for _, pre := range []string{"required(", "file(", "url(", "classpath("} {
			if strings.HasPrefix(arg, pre) {
				return true
			}
		}
	}
	return false
}

// key decodes the path expression held in tokens [i, j). Unquoted text is
// split at '.'; quoted text and whitespace between them are taken
// literally.
func (p *parser) key(i, j int) (setpath.Path, error) {
	var (
		res    setpath.Path
		cur    strings.Builder
		quoted bool
	)
	finish := func(at int) error {
		s := cur.String()
		if s == "" && !quoted {
			return newErr(p.pos(at), ErrKey, "%q has an empty path element", p.text(i, j))
		}
		res = append(res, s)
		cur.Reset()
		quoted = false
		return nil
	}
	for k := i; k < j; k++ {
		t := &p.toks[k]
		switch t.Type {
		case token.TString:
			cur.WriteString(t.String())
			quoted = true
		case token.TSpace:
			cur.Write(t.Bytes)
		case token.TLiteral:
			parts := strings.Split(string(t.Bytes), ".")
			cur.WriteString(parts[0])
			for _, part := range parts[1:] {
				if err := finish(k); err != nil {
					return nil, err
				}
				cur.WriteString(part)
			}
		}
	}
	if err := finish(j); err != nil {
		return nil, err
	}
	return res, nil
}

func (p *parser) value() (*ir.Node, error) {
	start := p.i
	pos := p.pos(p.i)
	switch p.peek() {
	case token.TLCurl:
		p.i++
		obj := ir.Object(true)
		trackPos(obj, pos, p.opts)
		if err := p.body(obj); err != nil {
			return nil, err
		}
		return obj, nil
	case token.TLSquare:
		p.i++
		arr := ir.Array()
		trackPos(arr, pos, p.opts)
		if err := p.elems(arr); err != nil {
			return nil, err
		}
		return arr, nil
	case token.TString, token.TMString, token.TSubst, token.TLiteral:
	case eof:
		return nil, newErr(pos, ErrValue, "at end of input")
	default:
		return nil, newErr(pos, ErrValue, "got %s", p.tok().Type)
	}
	end := p.i
	for j := p.i; j < len(p.toks); j++ {
		tt := p.toks[j].Type
		if tt.IsScalar() {
			end = j + 1
			continue
		}
		if tt != token.TSpace {
			break
		}
	}
	p.i = end
	v := ir.Scalar(p.text(start, end))
	trackPos(v, pos, p.opts)
	return v, nil
}

// elems parses the elements of arr up to and including the closing
// bracket.
func (p *parser) elems(arr *ir.Node) error {
	var prev *ir.Elem
	for {
		start := p.i
		comma := prev != nil && !ir.HasComma(prev.Trail)
		sep := !comma
	lead:
		for {
			switch p.peek() {
			case token.TNewline:
				sep = true
			case token.TSpace, token.TComment:
			case token.TComma:
				if !comma {
					return newErr(p.pos(p.i), ErrUnexpected, "','")
				}
				comma = false
				sep = true
			default:
				break lead
			}
			p.i++
		}
		switch p.peek() {
		case eof:
			return newErr(p.pos(p.i), ErrUnclosed, "array, expected ']'")
		case token.TRSquare:
			arr.Tail = p.text(start, p.i)
			p.i++
			return nil
		}
		if !sep {
			return newErr(p.pos(p.i), ErrNoSep, "between elements")
		}
		vStart := p.i
		v, err := p.value()
		if err != nil {
			return err
		}
		e := &ir.Elem{Lead: p.text(start, vStart), Value: v}
		e.Trail = p.trail()
		arr.Elems = append(arr.Elems, e)
		prev = e
	}
}

// trail consumes the rest of the line after an entry when it holds a
// comma or a comment, and returns it.
func (p *parser) trail() string {
	start := p.i
	end := p.i
	j := p.i
	for p.peekAt(j) == token.TSpace {
		j++
	}
	if p.peekAt(j) == token.TComma {
		j++
		end = j
		for p.peekAt(j) == token.TSpace {
			j++
		}
	}
	if p.peekAt(j) == token.TComment {
		j++
		end = j
	}
	p.i = end
	return p.text(start, end)
}
