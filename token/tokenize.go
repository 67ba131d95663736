package token

import (
	"bytes"
	"unicode"
	"unicode/utf8"
)

// forbidden holds the characters which may not appear in unquoted text.
const forbidden = "$\"{}[]:=,+#`^?!@*&\\"

// IsForbidden reports whether r is reserved by HOCON and so cannot occur
// in unquoted text.
func IsForbidden(r rune) bool {
	return r < utf8.RuneSelf && bytes.IndexByte([]byte(forbidden), byte(r)) != -1
}

// IsSpace reports whether r is HOCON whitespace other than a line break.
func IsSpace(r rune) bool {
	if r == '\n' {
		return false
	}
	return r == '\uFEFF' || unicode.IsSpace(r) || unicode.Is(unicode.Zs, r)
}

type TokenOpt func(*tokenOpts)

type tokenOpts struct {
	name string
}

// TokenName sets the document name used in positions.
func TokenName(name string) TokenOpt {
	return func(o *tokenOpts) { o.name = name }
}

// Tokenize splits d into tokens. The tokenization is lossless: the
// concatenation of the Bytes of all returned tokens is d.
func Tokenize(d []byte, opts ...TokenOpt) ([]Token, error) {
	o := &tokenOpts{}
	for _, f := range opts {
		f(o)
	}
	posDoc := NewPosDoc(o.name, d)
	var res []Token
	i := 0
	n := len(d)
	for i < n {
		start := i
		r, sz := utf8.DecodeRune(d[i:])
		if r == utf8.RuneError && sz <= 1 {
			return nil, NewTokenizeErr(ErrBadUTF8, posDoc.Pos(i))
		}
		var tt TokenType
		switch {
		case r == '\n':
			posDoc.nl(i)
			i++
			tt = TNewline
		case r == '\r' && i+1 < n && d[i+1] == '\n':
			posDoc.nl(i + 1)
			i += 2
			tt = TNewline
		case IsSpace(r):
			for i < n {
				r, sz := utf8.DecodeRune(d[i:])
				if !IsSpace(r) || (r == '\r' && i+1 < n && d[i+1] == '\n') {
					break
				}
				i += sz
			}
			tt = TSpace
		case r == '#' || (r == '/' && i+1 < n && d[i+1] == '/'):
			i = lineEnd(d, i)
			tt = TComment
		case r == '{':
			i++
			tt = TLCurl
		case r == '}':
			i++
			tt = TRCurl
		case r == '[':
			i++
			tt = TLSquare
		case r == ']':
			i++
			tt = TRSquare
		case r == ',':
			i++
			tt = TComma
		case r == '=':
			i++
			tt = TEquals
		case r == ':':
			i++
			tt = TColon
		case r == '+':
			if i+1 >= n || d[i+1] != '=' {
				return nil, UnexpectedErr("'+'", posDoc.Pos(i))
			}
			i += 2
			tt = TPlusEquals
		case r == '"':
			if bytes.HasPrefix(d[i:], []byte(`"""`)) {
				end, err := tripleQuoted(d, i, posDoc)
				if err != nil {
					return nil, err
				}
				i = end
				tt = TMString
				break
			}
			sz, err := bsEscQuoted(d[i:])
			if err != nil {
				return nil, NewTokenizeErr(err, posDoc.Pos(i))
			}
			i += sz
			tt = TString
		case r == '$':
			end, err := substitution(d, i, posDoc)
			if err != nil {
				return nil, err
			}
			i = end
			tt = TSubst
		case IsForbidden(r):
			return nil, NewTokenizeErr(ErrReserved, posDoc.Pos(i))
		default:
			i = unquotedEnd(d, i)
			tt = TLiteral
		}
		res = append(res, Token{
			Type:  tt,
			Pos:   posDoc.Pos(start),
			Bytes: d[start:i],
		})
	}
	return res, nil
}

// lineEnd returns the offset of the line break ending the line containing
// i, not including any '\r' of a "\r\n" pair.
func lineEnd(d []byte, i int) int {
	j := bytes.IndexByte(d[i:], '\n')
	if j == -1 {
		return len(d)
	}
	j += i
	if j > i && d[j-1] == '\r' {
		j--
	}
	return j
}

func unquotedEnd(d []byte, i int) int {
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		switch {
		case r == utf8.RuneError && sz <= 1:
			return i
		case r == '\n' || IsSpace(r) || IsForbidden(r):
			return i
		case r == '/' && i+1 < n && d[i+1] == '/':
			return i
		}
		i += sz
	}
	return i
}

func tripleQuoted(d []byte, i int, posDoc *PosDoc) (int, error) {
	j := bytes.Index(d[i+3:], []byte(`"""`))
	if j == -1 {
		return 0, NewTokenizeErr(ErrUnterminated, posDoc.Pos(i))
	}
	end := i + 3 + j + 3
	// extra quotes belong to the string content
	for end < len(d) && d[end] == '"' {
		end++
	}
	for k := i; k < end; k++ {
		if d[k] == '\n' {
			posDoc.nl(k)
		}
	}
	return end, nil
}

func substitution(d []byte, i int, posDoc *PosDoc) (int, error) {
	if i+1 >= len(d) || d[i+1] != '{' {
		return 0, UnexpectedErr("'$'", posDoc.Pos(i))
	}
	j := i + 2
	for j < len(d) {
		switch d[j] {
		case '}':
			return j + 1, nil
		case '\n':
			return 0, NewTokenizeErr(ErrUnterminated, posDoc.Pos(i))
		case '"':
			sz, err := bsEscQuoted(d[j:])
			if err != nil {
				return 0, NewTokenizeErr(err, posDoc.Pos(j))
			}
			j += sz
		default:
			j++
		}
	}
	return 0, NewTokenizeErr(ErrUnterminated, posDoc.Pos(i))
}
