package token

import (
	"fmt"
)

type TokenType int

const (
	TSpace TokenType = iota
	TNewline
	TComment
	TLCurl
	TRCurl
	TLSquare
	TRSquare
	TComma
	TEquals
	TColon
	TPlusEquals
	TString
	TMString
	TSubst
	TLiteral
)

func (t TokenType) String() string {
	return map[TokenType]string{
		TSpace:      "TSpace",
		TNewline:    "TNewline",
		TComment:    "TComment",
		TLCurl:      "TLCurl",
		TRCurl:      "TRCurl",
		TLSquare:    "TLSquare",
		TRSquare:    "TRSquare",
		TComma:      "TComma",
		TEquals:     "TEquals",
		TColon:      "TColon",
		TPlusEquals: "TPlusEquals",
		TString:     "TString",
		TMString:    "TMString",
		TSubst:      "TSubst",
		TLiteral:    "TLiteral",
	}[t]
}

// IsTrivia reports whether tokens of type t carry no value: whitespace,
// line breaks and comments.
func (t TokenType) IsTrivia() bool {
	switch t {
	case TSpace, TNewline, TComment:
		return true
	default:
		return false
	}
}

// IsScalar reports whether tokens of type t may take part in a value
// concatenation.
func (t TokenType) IsScalar() bool {
	switch t {
	case TString, TMString, TSubst, TLiteral:
		return true
	default:
		return false
	}
}

type Token struct {
	Type  TokenType
	Pos   *Pos
	Bytes []byte
}

// String returns the logical text of the token: quoted strings are
// unescaped, triple quoted strings lose their delimiters and everything
// else is returned as written.
func (t *Token) String() string {
	switch t.Type {
	case TString:
		return QuotedToString(t.Bytes)
	case TMString:
		return string(t.Bytes[3 : len(t.Bytes)-3])
	default:
		return string(t.Bytes)
	}
}

type TokenizeErr struct {
	Err error
	Pos Pos
}

func (t *TokenizeErr) Unwrap() error {
	return t.Err
}

func NewTokenizeErr(e error, p *Pos) *TokenizeErr {
	return &TokenizeErr{Err: e, Pos: *p}
}

func (e *TokenizeErr) Error() string {
	return fmt.Sprintf("%s at %s", e.Err.Error(), e.Pos.String())
}

func UnexpectedErr(what string, p *Pos) error {
	return NewTokenizeErr(fmt.Errorf("%w %s", ErrUnexpected, what), p)
}
