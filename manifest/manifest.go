// Package manifest reads lists of setting declarations from YAML.
//
//	path: /etc/app/app.conf
//	settings:
//	- setting: server.port
//	  value: 8080
//	- name: drop legacy
//	  setting: legacy
//	  ensure: absent
//	- setting: server.hosts
//	  type: array_element
//	  value: [a, b]
//
// A top level path applies to entries without their own.
package manifest

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-yaml"
	"github.com/goccy/go-yaml/ast"

	hocon "github.com/h0tw1r3/puppetlabs-hocon"
)

var ErrManifest = errors.New("invalid manifest")

type Manifest struct {
	Path     string  `yaml:"path"`
	Settings []Entry `yaml:"settings"`
}

// Entry is one declaration. Value is a scalar or a list of scalars, kept
// as parsed so numbers retain their source text.
type Entry struct {
	Name    string   `yaml:"name"`
	Path    string   `yaml:"path"`
	Setting string   `yaml:"setting"`
	Value   ast.Node `yaml:"value"`
	Ensure  string   `yaml:"ensure"`
	Type    string   `yaml:"type"`
}

// Parse decodes a manifest, rejecting unknown keys.
func Parse(d []byte) (*Manifest, error) {
	m := &Manifest{}
	if err := yaml.UnmarshalWithOptions(d, m, yaml.DisallowUnknownField()); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrManifest, err)
	}
	return m, nil
}

// ReadFile parses the manifest in file.
func ReadFile(file string) (*Manifest, error) {
	d, err := os.ReadFile(file)
	if err != nil {
		return nil, err
	}
	m, err := Parse(d)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", file, err)
	}
	return m, nil
}

// Operations returns the operations declared by m, in order. They are not
// validated.
func (m *Manifest) Operations() ([]*hocon.Operation, error) {
	ops := make([]*hocon.Operation, 0, len(m.Settings))
	for i := range m.Settings {
		op, err := m.Settings[i].operation(m.Path)
		if err != nil {
			return nil, fmt.Errorf("%w: settings[%d]: %w", ErrManifest, i, err)
		}
		ops = append(ops, op)
	}
	return ops, nil
}

func (e *Entry) operation(path string) (*hocon.Operation, error) {
	op := &hocon.Operation{
		Name:    e.Name,
		Path:    e.Path,
		Setting: e.Setting,
	}
	if op.Path == "" {
		op.Path = path
	}
	var err error
	if op.Ensure, err = hocon.ParseEnsure(e.Ensure); err != nil {
		return nil, err
	}
	if op.Type, err = hocon.ParseValueType(e.Type); err != nil {
		return nil, err
	}
	switch v := unwrap(e.Value).(type) {
	case nil, *ast.NullNode:
	case *ast.SequenceNode:
		op.Values = make([]string, len(v.Values))
		for i, item := range v.Values {
			if op.Values[i], err = scalar(item); err != nil {
				return nil, err
			}
		}
		if op.Type == hocon.TypeAuto {
			op.Type = hocon.TypeArray
		}
	default:
		s, err := scalar(v)
		if err != nil {
			return nil, err
		}
		op.Value = &s
	}
	return op, nil
}

// unwrap returns the node an anchor or tag applies to.
func unwrap(n ast.Node) ast.Node {
	for {
		switch v := n.(type) {
		case *ast.AnchorNode:
			n = v.Value
		case *ast.TagNode:
			n = v.Value
		default:
			return n
		}
	}
}

// scalar returns the text of a YAML scalar. Numbers keep their source
// text, so 1.0 stays 1.0 and 0x1F stays 0x1F.
func scalar(n ast.Node) (string, error) {
	switch v := unwrap(n).(type) {
	case nil, *ast.NullNode:
		return "null", nil
	case *ast.StringNode:
		return v.Value, nil
	case *ast.BoolNode:
		return strconv.FormatBool(v.Value), nil
	case *ast.IntegerNode, *ast.FloatNode, *ast.InfinityNode, *ast.NanNode:
		return v.GetToken().Value, nil
	case *ast.AliasNode:
		return "", fmt.Errorf("alias %s is not supported", v)
	default:
		return "", fmt.Errorf("value %s is not a scalar", v)
	}
}
