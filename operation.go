package hocon

import (
	"fmt"
	"path/filepath"

	"github.com/h0tw1r3/puppetlabs-hocon/edit"
	"github.com/h0tw1r3/puppetlabs-hocon/ir"
	"github.com/h0tw1r3/puppetlabs-hocon/ir/setpath"
	"github.com/h0tw1r3/puppetlabs-hocon/token"
)

type Ensure int

const (
	Present Ensure = iota
	Absent
)

func (e Ensure) String() string {
	switch e {
	case Present:
		return "present"
	case Absent:
		return "absent"
	default:
		return "unknown"
	}
}

// ParseEnsure parses "present" or "absent". The empty string is present.
func ParseEnsure(s string) (Ensure, error) {
	switch s {
	case "", "present":
		return Present, nil
	case "absent":
		return Absent, nil
	default:
		return Present, fmt.Errorf("%w %q, expected present or absent", ErrInvalidEnsure, s)
	}
}

// ValueType selects how the value of an Operation is written.
type ValueType int

const (
	// TypeAuto writes strings bare where possible, numbers and booleans
	// bare.
	TypeAuto ValueType = iota
	// TypeString always quotes.
	TypeString
	TypeNumber
	TypeBoolean
	// TypeText writes the value as given; it must be a HOCON value.
	TypeText
	// TypeArray writes Values as an array.
	TypeArray
	// TypeArrayElement manages the elements Values in an array, leaving
	// other elements alone.
	TypeArrayElement
)

var valueTypes = map[ValueType]string{
	TypeAuto:         "auto",
	TypeString:       "string",
	TypeNumber:       "number",
	TypeBoolean:      "boolean",
	TypeText:         "text",
	TypeArray:        "array",
	TypeArrayElement: "array_element",
}

func (t ValueType) String() string {
	if s, ok := valueTypes[t]; ok {
		return s
	}
	return "unknown"
}

// ParseValueType parses the name of a value type. The empty string is
// TypeAuto.
func ParseValueType(s string) (ValueType, error) {
	if s == "" {
		return TypeAuto, nil
	}
	for t, name := range valueTypes {
		if name == s {
			return t, nil
		}
	}
	return TypeAuto, fmt.Errorf("%w %q", ErrInvalidType, s)
}

// Operation declares the state of one setting of one file.
type Operation struct {
	// Name identifies the operation in errors. It is the setting when
	// Setting is empty.
	Name string
	// Path is the absolute path of the file.
	Path    string
	Setting string
	// Value is the value of a present setting. Array types take Values,
	// or Value as a single item.
	Value  *string
	Values []string
	Ensure Ensure
	Type   ValueType

	setting setpath.Path
}

// SettingPath returns the parsed setting, valid after Validate.
func (op *Operation) SettingPath() setpath.Path {
	return op.setting
}

func (op *Operation) err(err error) error {
	return &OpError{Name: op.Name, Path: op.Path, Err: err}
}

// Validate checks op without touching the file system.
func (op *Operation) Validate() error {
	if op.Name == "" {
		op.Name = op.Setting
	}
	if !filepath.IsAbs(op.Path) {
		return op.err(fmt.Errorf("%w, not %q", ErrPathNotQualified, op.Path))
	}
	setting := op.Setting
	if setting == "" {
		setting = op.Name
	}
	p, err := setpath.Parse(setting)
	if err != nil {
		return op.err(fmt.Errorf("%w %q: %w", ErrInvalidSetting, setting, err))
	}
	op.setting = p
	switch op.Ensure {
	case Present, Absent:
	default:
		return op.err(fmt.Errorf("%w %d", ErrInvalidEnsure, op.Ensure))
	}
	if _, ok := valueTypes[op.Type]; !ok {
		return op.err(fmt.Errorf("%w %d", ErrInvalidType, op.Type))
	}
	items := op.items()
	switch {
	case op.Ensure == Absent && op.Type != TypeArrayElement:
		return nil
	case op.Type == TypeArray || op.Type == TypeArrayElement:
		if items == nil {
			return op.err(ErrMissingValue)
		}
	case op.Value == nil:
		return op.err(ErrMissingValue)
	}
	for _, v := range items {
		if err := op.Type.check(v); err != nil {
			return op.err(err)
		}
	}
	return nil
}

// items returns the values of op: Values, else Value alone.
func (op *Operation) items() []string {
	if op.Values != nil {
		return op.Values
	}
	if op.Value != nil {
		return []string{*op.Value}
	}
	return nil
}

func (t ValueType) check(v string) error {
	switch t {
	case TypeNumber:
		if !token.IsNumber(v) {
			return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, v)
		}
	case TypeBoolean:
		if v != "true" && v != "false" {
			return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, v)
		}
	case TypeText:
		if _, err := edit.Text(v); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidValue, err)
		}
	}
	return nil
}

// EditOp returns the change op makes to a document. op must be valid.
func (op *Operation) EditOp() edit.Op {
	p := op.setting
	if op.Type == TypeArrayElement {
		var ops []edit.Op
		for _, v := range op.items() {
			if op.Ensure == Absent {
				ops = append(ops, edit.AbsentElementOp(p, v))
			} else {
				ops = append(ops, edit.PresentElementOp(p, v))
			}
		}
		return all(ops...)
	}
	if op.Ensure == Absent {
		return edit.AbsentOp(p)
	}
	return edit.PresentOp(p, op.value())
}

func (op *Operation) value() edit.Value {
	switch op.Type {
	case TypeString:
		return edit.Quoted(*op.Value)
	case TypeNumber, TypeBoolean:
		return edit.Bare(*op.Value)
	case TypeText:
		v, err := edit.Text(*op.Value)
		if err != nil {
			panic(err)
		}
		return v
	case TypeArray:
		return edit.List(op.items()...)
	default:
		return edit.String(*op.Value)
	}
}

func all(ops ...edit.Op) edit.Op {
	return func(doc *ir.Document) (edit.Outcome, error) {
		res := edit.Unchanged
		for _, op := range ops {
			out, err := op(doc)
			if err != nil {
				return res, err
			}
			if out == edit.Changed {
				res = edit.Changed
			}
		}
		return res, nil
	}
}
