package token

import (
	"encoding/hex"
	"errors"
	"strings"
	"unicode"
	"unicode/utf16"
	"unicode/utf8"
)

// NeedsQuote reports whether v must be written as a quoted string to be
// read back as the same value when it appears in value position.
//
// Bare words, numbers and booleans stay unquoted. Anything that would be
// split, reinterpreted or rejected by a HOCON reader is quoted: the empty
// string, values with whitespace or control characters, reserved
// characters, comment starts, and values which look numeric without being
// numbers.
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	if strings.Contains(v, "//") {
		return true
	}
	for _, r := range v {
		if r == '\n' || IsSpace(r) || IsForbidden(r) || unicode.IsControl(r) {
			return true
		}
	}
	switch v[0] {
	case '0', '1', '2', '3', '4', '5', '6', '7', '8', '9', '-', '.':
		return !IsNumber(v)
	}
	return false
}

// KeyNeedsQuote reports whether v must be quoted to be read back as a
// single path element in key position.
func KeyNeedsQuote(v string) bool {
	if v == "" || v == "include" {
		return true
	}
	if strings.Contains(v, "//") {
		return true
	}
	for _, r := range v {
		if r == '.' || r == '\n' || IsSpace(r) || IsForbidden(r) || unicode.IsControl(r) {
			return true
		}
	}
	return false
}

// Quote returns v as a double quoted string with JSON escapes.
func Quote(v string) string {
	d := make([]byte, 1, len(v)+2)
	d[0] = '"'
	ucs := []byte{0, 0}
	cps := []byte{0, 0, 0, 0}
	for _, r := range v {
		switch r {
		case '"':
			d = append(d, '\\', '"')
		case '\\':
			d = append(d, '\\', '\\')
		case '\b':
			d = append(d, '\\', 'b')
		case '\f':
			d = append(d, '\\', 'f')
		case '\n':
			d = append(d, '\\', 'n')
		case '\r':
			d = append(d, '\\', 'r')
		case '\t':
			d = append(d, '\\', 't')
		default:
			if unicode.IsControl(r) {
				ucs[0] = byte(r >> 8)
				ucs[1] = byte(r)
				cps = hex.AppendEncode(cps[:0], ucs)
				d = append(d, '\\', 'u', cps[0], cps[1], cps[2], cps[3])
			} else {
				d = utf8.AppendRune(d, r)
			}
		}
	}
	d = append(d, '"')
	return string(d)
}

// Unquote returns the logical value of the double quoted string v.
func Unquote(v string) (string, error) {
	b := []byte(v)
	n, err := bsEscQuoted(b)
	if err != nil {
		return "", err
	}
	if n != len(v) {
		return "", ErrUnterminated
	}
	return QuotedToString(b), nil
}

// bsEscQuoted returns the length of the quoted string at the start of d,
// validating its escapes.
func bsEscQuoted(d []byte) (int, error) {
	if len(d) == 0 || d[0] != '"' {
		return -1, errors.New("invalid")
	}
	escaped := false
	i := 1
	n := len(d)
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		i += sz
		switch {
		case r == utf8.RuneError && sz <= 1:
			return 0, ErrBadUTF8
		case r == '\n':
			return 0, ErrUnterminated
		case escaped:
			escaped = false
			switch r {
			case '"', '\\', '/', 'b', 'f', 'n', 'r', 't':
			case 'u':
				if i+4 > n {
					return i, ErrUnterminated
				}
				if !allHex(d[i : i+4]) {
					return i, ErrBadUnicode
				}
				i += 4
			default:
				return i, ErrBadEscape
			}
		case r == '\\':
			escaped = true
		case r == '"':
			return i, nil
		}
	}
	return i, ErrUnterminated
}

func allHex(d []byte) bool {
	for _, c := range d {
		if c >= '0' && c <= '9' {
			continue
		}
		if c >= 'a' && c <= 'f' {
			continue
		}
		if c >= 'A' && c <= 'F' {
			continue
		}
		return false
	}
	return true
}

// QuotedToString decodes a quoted string which has already been validated.
func QuotedToString(d []byte) string {
	b := &strings.Builder{}
	i := 1
	n := len(d) - 1
	for i < n {
		r, sz := utf8.DecodeRune(d[i:])
		i += sz
		if r != '\\' {
			b.WriteRune(r)
			continue
		}
		e := d[i]
		i++
		switch e {
		case 't':
			b.WriteByte('\t')
		case 'n':
			b.WriteByte('\n')
		case 'f':
			b.WriteByte('\f')
		case 'r':
			b.WriteByte('\r')
		case 'b':
			b.WriteByte('\b')
		case 'u':
			r := hexRune(d[i : i+4])
			i += 4
			if utf16.IsSurrogate(r) && i+6 <= n && d[i] == '\\' && d[i+1] == 'u' {
				if r2 := hexRune(d[i+2 : i+6]); utf16.DecodeRune(r, r2) != unicode.ReplacementChar {
					r = utf16.DecodeRune(r, r2)
					i += 6
				}
			}
			b.WriteRune(r)
		default:
			b.WriteByte(e)
		}
	}
	return b.String()
}

func hexRune(d []byte) rune {
	dst := []byte{0, 0}
	if _, err := hex.Decode(dst, d); err != nil {
		return utf8.RuneError
	}
	return rune(dst[0])<<8 | rune(dst[1])
}
