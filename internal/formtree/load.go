package formtree

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// ErrInvalidSetting is returned when x-actions or x-operations is neither a
// list nor false.
var ErrInvalidSetting = errors.New("setting must be a list or false")

type rawNode struct {
	Type       string              `yaml:"type"`
	Title      string              `yaml:"title"`
	Component  string              `yaml:"x-component"`
	Props      map[string]any      `yaml:"x-component-props"`
	Properties map[string]*rawNode `yaml:"properties"`
	Items      *rawNode            `yaml:"items"`
	Default    any                 `yaml:"default"`
	Actions    yaml.Node           `yaml:"x-actions"`
	Operations yaml.Node           `yaml:"x-operations"`
}

// LoadFile reads and parses a YAML form tree from path.
func LoadFile(path string) (*Node, error) {
	data, err := os.ReadFile(path) //nolint:gosec // G304: schema path is provided by the user
	if err != nil {
		return nil, fmt.Errorf("reading schema: %w", err)
	}
	root, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", path, err)
	}
	return root, nil
}

// Parse decodes a YAML form tree.
//
//	type: object
//	properties:
//	  contacts:
//	    type: array
//	    x-actions: [up, down, remove]
//	    items:
//	      type: object
//	      properties:
//	        name: {type: string, title: Name}
//	        remove: {type: void, x-component: ArrayItems.Remove}
func Parse(data []byte) (*Node, error) {
	var raw rawNode
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, err
	}
	return convert("", &raw)
}

func convert(name string, raw *rawNode) (*Node, error) {
	if raw == nil {
		return nil, nil
	}
	n := &Node{
		Name:            name,
		Kind:            kindOf(raw),
		Title:           raw.Title,
		DeclaredControl: raw.Component,
		Props:           raw.Props,
		Default:         raw.Default,
	}

	var err error
	if n.Actions, err = decodeSetting(&raw.Actions); err != nil {
		return nil, fmt.Errorf("%s: x-actions: %w", name, err)
	}
	if n.OperationsOrder, err = decodeSetting(&raw.Operations); err != nil {
		return nil, fmt.Errorf("%s: x-operations: %w", name, err)
	}

	if len(raw.Properties) > 0 {
		n.Properties = make(map[string]*Node, len(raw.Properties))
		for childName, child := range raw.Properties {
			c, err := convert(childName, child)
			if err != nil {
				return nil, err
			}
			if c != nil {
				n.Properties[childName] = c
			}
		}
	}
	if raw.Items != nil {
		if n.Items, err = convert("items", raw.Items); err != nil {
			return nil, err
		}
	}
	return n, nil
}

func kindOf(raw *rawNode) Kind {
	switch raw.Type {
	case "object":
		return KindObject
	case "array":
		return KindArray
	case "void":
		return KindVoid
	case "":
		if len(raw.Properties) > 0 {
			return KindObject
		}
		if raw.Items != nil {
			return KindArray
		}
		return KindVoid
	default:
		return KindPrimitive
	}
}

func decodeSetting(node *yaml.Node) (Setting, error) {
	switch node.Kind {
	case 0:
		return Setting{}, nil
	case yaml.ScalarNode:
		if node.Tag == "!!null" {
			return Setting{}, nil
		}
		var b bool
		if err := node.Decode(&b); err != nil {
			return Setting{}, ErrInvalidSetting
		}
		if b {
			// "true" means "use the defaults", same as leaving it out.
			return Setting{}, nil
		}
		return Setting{Present: true, Disabled: true}, nil
	case yaml.SequenceNode:
		var values []any
		if err := node.Decode(&values); err != nil {
			return Setting{}, err
		}
		if values == nil {
			values = []any{}
		}
		return Setting{Present: true, Values: values}, nil
	default:
		return Setting{}, ErrInvalidSetting
	}
}
