package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
)

func field(lead, key string, v *Node) *Field {
	return &Field{Lead: lead, KeyRaw: key, Key: setpath.Path{key}, Sep: " = ", Value: v}
}

func TestIndentOf(t *testing.T) {
	tests := map[string]string{
		"":            "",
		"  ":          "  ",
		"\n\t":        "\t",
		"\n  # c\n  ": "  ",
		" # c":        "",
	}
	for in, want := range tests {
		if got := IndentOf(in); got != want {
			t.Errorf("IndentOf(%q) = %q want %q", in, got, want)
		}
	}
}

func TestDetectEOL(t *testing.T) {
	for in, want := range map[string]string{"": "\n", "a\r\nb": "\r\n", "a\nb\r\n": "\n", "a\r": "\n"} {
		if got := DetectEOL([]byte(in)); got != want {
			t.Errorf("DetectEOL(%q) = %q", in, got)
		}
	}
}

func TestIndentUnit(t *testing.T) {
	doc := NewDocument()
	if got := doc.IndentUnit(); got != DefaultIndent {
		t.Errorf("empty: %q", got)
	}
	sub := Object(true)
	sub.Fields = []*Field{field("\n  ", "b", Scalar("1"))}
	sub.Tail = "\n"
	doc.Root.Fields = []*Field{field("", "a", sub)}
	if got := doc.IndentUnit(); got != "  " {
		t.Errorf("nested: %q", got)
	}
}

func TestAppendField(t *testing.T) {
	tests := []struct {
		name   string
		obj    *Node
		indent string
		close  string
		lead   string
		tail   string
	}{
		{name: "empty root", obj: Object(false), lead: "", tail: "\n"},
		{
			name:   "empty section",
			obj:    Object(true),
			indent: "    ",
			lead:   "\n    ",
			tail:   "\n",
		},
		{
			name: "follows last",
			obj: &Node{Type: ObjectType, Braces: true, Tail: "\n",
				Fields: []*Field{field("\n\t", "x", Scalar("1"))}},
			indent: "    ",
			lead:   "\n\t",
			tail:   "\n",
		},
		{
			name: "one line section",
			obj: &Node{Type: ObjectType, Braces: true, Tail: " ",
				Fields: []*Field{field(" ", "x", Scalar("1"))}},
			indent: "  ",
			lead:   "\n  ",
			tail:   "\n",
		},
	}
	for _, tc := range tests {
		f := field("", "n", Scalar("v"))
		tc.obj.AppendField(f, "\n", tc.indent, tc.close)
		got := [2]string{f.Lead, tc.obj.Tail}
		if diff := cmp.Diff([2]string{tc.lead, tc.tail}, got); diff != "" {
			t.Errorf("%s (-want +got):\n%s", tc.name, diff)
		}
		if tc.obj.Fields[len(tc.obj.Fields)-1] != f {
			t.Errorf("%s: not appended", tc.name)
		}
	}
}

func TestClone(t *testing.T) {
	sub := Object(true)
	sub.Fields = []*Field{field(" ", "b", Scalar("1"))}
	doc := NewDocument()
	doc.Root.Fields = []*Field{field("", "a", sub)}
	c := doc.Clone()
	c.Root.Fields[0].Value.Fields[0].Value.Raw = "2"
	if sub.Fields[0].Value.Raw != "1" {
		t.Error("clone shares nodes")
	}
}
