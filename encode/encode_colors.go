package encode

import (
	"strings"

	"github.com/fatih/color"

	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

type Colorable struct {
	Type ir.Type
	Attr ColorAttr
}

type ColorAttr int

const (
	CommentColor ColorAttr = iota
	FieldColor
	SepColor
	IncludeColor
	// ValueColor is for strings; the other scalars have their own.
	ValueColor
	NumberColor
	LiteralColor
	SubstColor
)

type Colors struct {
	Default func(string, ...any) string
	Map     map[Colorable]func(string, ...any) string
}

var scalarColors = map[ColorAttr]*color.Color{
	ValueColor:   color.RGB(8, 196, 16),
	NumberColor:  color.RGB(128, 216, 236),
	LiteralColor: color.New(color.FgCyan),
	SubstColor:   color.RGB(198, 198, 46),
}

// NewColors returns the terminal palette: comments blue, keys steel,
// punctuation magenta, and one color per kind of scalar.
func NewColors() *Colors {
	c := &Colors{
		Default: colorDefault,
		Map:     map[Colorable]func(string, ...any) string{},
	}
	for _, t := range ir.Types() {
		c.set(Colorable{Type: t, Attr: CommentColor}, color.New(color.FgBlue))
		c.set(Colorable{Type: t, Attr: SepColor}, color.RGB(255, 0, 196))
	}
	c.set(Colorable{Type: ir.ObjectType, Attr: FieldColor}, color.RGB(128, 168, 196))
	c.set(Colorable{Type: ir.ObjectType, Attr: IncludeColor}, color.RGB(196, 168, 128))
	for a, col := range scalarColors {
		c.set(Colorable{Type: ir.ValueType, Attr: a}, col)
	}
	return c
}

// set registers col for able. Text is printed as is, never as a format.
func (c *Colors) set(able Colorable, col *color.Color) {
	c.Map[able] = func(v string, _ ...any) string {
		return col.Sprint(v)
	}
}

func colorDefault(v string, _ ...any) string { return v }

func (c *Colors) Color(t ir.Type, a ColorAttr, s string) string {
	return c.Get(t, a)(s)
}

func (c *Colors) Get(t ir.Type, a ColorAttr) func(string, ...any) string {
	f := c.Map[Colorable{Type: t, Attr: a}]
	if f == nil {
		return c.Default
	}
	return f
}

// scalarAttr classifies the scalar text raw for coloring.
func scalarAttr(raw string) ColorAttr {
	switch {
	case raw == "true" || raw == "false" || raw == "null":
		return LiteralColor
	case token.IsNumber(raw):
		return NumberColor
	case strings.HasPrefix(raw, "${") && strings.HasSuffix(raw, "}") && !strings.ContainsAny(raw, " \t"):
		return SubstColor
	default:
		return ValueColor
	}
}
