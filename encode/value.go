package encode

import (
	"errors"
	"fmt"
	"strings"

	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

var ErrNotScalar = errors.New("not a scalar value")

// Value returns the HOCON text for the string v, quoting it only when a
// reader would not read the bare text back as v.
func Value(v string) string {
	if token.NeedsQuote(v) {
		return token.Quote(v)
	}
	return v
}

// ValueJSON returns the JSON compatible text for v: numbers, booleans and
// null are written bare and everything else is quoted.
func ValueJSON(v string) string {
	if IsBare(v) {
		return v
	}
	return token.Quote(v)
}

// IsBare reports whether v reads as a JSON number, boolean or null.
func IsBare(v string) bool {
	switch v {
	case "true", "false", "null":
		return true
	}
	return token.IsNumber(v)
}

// Key returns the key text addressing p, quoting the elements which
// would otherwise be split or misread.
func Key(p setpath.Path) string {
	parts := make([]string, len(p))
	for i, seg := range p {
		if token.KeyNeedsQuote(seg) {
			seg = token.Quote(seg)
		}
		parts[i] = seg
	}
	return strings.Join(parts, ".")
}

// Decode returns the string value of the scalar text raw as a HOCON
// reader would see it: quoted parts are unescaped, triple quoted parts
// lose their delimiters and the parts of a concatenation are joined with
// the whitespace between them. Substitutions are kept as written.
func Decode(raw string) (string, error) {
	toks, err := token.Tokenize([]byte(raw))
	if err != nil {
		return "", err
	}
	for len(toks) > 0 && toks[0].Type == token.TSpace {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].Type == token.TSpace {
		toks = toks[:len(toks)-1]
	}
	if len(toks) == 0 {
		return "", fmt.Errorf("%w: %q", ErrNotScalar, raw)
	}
	var b strings.Builder
	for i := range toks {
		t := &toks[i]
		switch {
		case t.Type.IsScalar():
			b.WriteString(t.String())
		case t.Type == token.TSpace:
			b.Write(t.Bytes)
		default:
			return "", fmt.Errorf("%w: %q", ErrNotScalar, raw)
		}
	}
	return b.String(), nil
}
