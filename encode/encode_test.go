package encode

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/fatih/color"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

func TestValue(t *testing.T) {
	tests := []struct {
		in, want, json string
	}{
		{in: "bar", want: "bar", json: `"bar"`},
		{in: "level", want: "level", json: `"level"`},
		{in: "42", want: "42", json: "42"},
		{in: "-1.5e3", want: "-1.5e3", json: "-1.5e3"},
		{in: "true", want: "true", json: "true"},
		{in: "null", want: "null", json: "null"},
		{in: "", want: `""`, json: `""`},
		{in: "two words", want: `"two words"`, json: `"two words"`},
		{in: "a:b", want: `"a:b"`, json: `"a:b"`},
		{in: "http://x", want: `"http://x"`, json: `"http://x"`},
		{in: "1.2.3", want: `"1.2.3"`, json: `"1.2.3"`},
		{in: "01", want: `"01"`, json: `"01"`},
		{in: "a.b", want: "a.b", json: `"a.b"`},
		{in: "x\ny", want: `"x\ny"`, json: `"x\ny"`},
		{in: `q"`, want: `"q\""`, json: `"q\""`},
		{in: "${x}", want: `"${x}"`, json: `"${x}"`},
	}
	for _, tc := range tests {
		if got := Value(tc.in); got != tc.want {
			t.Errorf("Value(%q) = %s want %s", tc.in, got, tc.want)
		}
		if got := ValueJSON(tc.in); got != tc.json {
			t.Errorf("ValueJSON(%q) = %s want %s", tc.in, got, tc.json)
		}
		for _, enc := range []string{Value(tc.in), ValueJSON(tc.in)} {
			dec, err := Decode(enc)
			if err != nil {
				t.Errorf("Decode(%s): %v", enc, err)
				continue
			}
			if dec != tc.in {
				t.Errorf("Decode(%s) = %q want %q", enc, dec, tc.in)
			}
		}
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{in: `bar`, want: "bar"},
		{in: `"bar"`, want: "bar"},
		{in: ` bar `, want: "bar"},
		{in: `a b  c`, want: "a b  c"},
		{in: `"a" b`, want: "a b"},
		{in: `"A\t"`, want: "A\t"},
		{in: `"""raw \n"""`, want: `raw \n`},
		{in: `${HOME}/bin`, want: "${HOME}/bin"},
	}
	for _, tc := range tests {
		got, err := Decode(tc.in)
		if err != nil {
			t.Errorf("Decode(%s): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("Decode(%s) = %q want %q", tc.in, got, tc.want)
		}
	}
	for _, in := range []string{``, `  `, `[1]`, `{a=1}`, `a = b`, `"open`} {
		if _, err := Decode(in); err == nil {
			t.Errorf("Decode(%s): expected error", in)
		}
	}
	if _, err := Decode(`[1]`); !errors.Is(err, ErrNotScalar) {
		t.Errorf("Decode([1]): got %v", err)
	}
}

func TestKey(t *testing.T) {
	tests := []struct {
		in   setpath.Path
		want string
	}{
		{in: setpath.Path{"a"}, want: "a"},
		{in: setpath.Path{"a", "b"}, want: "a.b"},
		{in: setpath.Path{"a b", "c"}, want: `"a b".c`},
		{in: setpath.Path{"a.b"}, want: `"a.b"`},
		{in: setpath.Path{"include"}, want: `"include"`},
		{in: setpath.Path{""}, want: `""`},
	}
	for _, tc := range tests {
		if got := Key(tc.in); got != tc.want {
			t.Errorf("Key(%v) = %s want %s", tc.in, got, tc.want)
		}
	}
}

func TestEncodeNew(t *testing.T) {
	doc := ir.NewDocument()
	sub := ir.Object(true)
	sub.AppendField(&ir.Field{
		KeyRaw: "two",
		Key:    setpath.Path{"two"},
		Sep:    " = ",
		Value:  ir.Scalar("three"),
	}, doc.EOL, ir.DefaultIndent, "")
	doc.Root.AppendField(&ir.Field{
		KeyRaw: "one",
		Key:    setpath.Path{"one"},
		Sep:    " ",
		Value:  sub,
	}, doc.EOL, "", "")
	want := "one {\n    two = three\n}\n"
	if got := string(Render(doc)); got != want {
		t.Errorf("got %q want %q", got, want)
	}
	if got := MustString(sub); got != "{\n    two = three\n}" {
		t.Errorf("MustString: got %q", got)
	}
}

func TestEncodeColors(t *testing.T) {
	saved := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = saved }()

	doc := ir.NewDocument()
	doc.Root.AppendField(&ir.Field{
		KeyRaw: "a",
		Key:    setpath.Path{"a"},
		Sep:    " = ",
		Value:  ir.Scalar("1"),
		Trail:  " # note",
	}, doc.EOL, "", "")
	buf := bytes.NewBuffer(nil)
	if err := Encode(doc, buf, EncodeColors(NewColors())); err != nil {
		t.Fatal(err)
	}
	got := buf.String()
	if !strings.Contains(got, "\x1b[") {
		t.Errorf("expected escape sequences in %q", got)
	}
	if !strings.Contains(got, "# note") {
		t.Errorf("comment lost in %q", got)
	}
	if string(Render(doc)) != "a = 1 # note\n" {
		t.Errorf("plain render: %q", Render(doc))
	}
}

func TestScalarAttr(t *testing.T) {
	tests := map[string]ColorAttr{
		"bar":       ValueColor,
		`"true"`:    ValueColor,
		"true":      LiteralColor,
		"null":      LiteralColor,
		"-1.5":      NumberColor,
		"${HOME}":   SubstColor,
		"${?X}":     SubstColor,
		"${a} ${b}": ValueColor,
	}
	for raw, want := range tests {
		if got := scalarAttr(raw); got != want {
			t.Errorf("scalarAttr(%s) = %d want %d", raw, got, want)
		}
	}
}
