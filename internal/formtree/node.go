// Package formtree models the recursive form tree that array sections are
// rendered from, and loads it from YAML.
package formtree

import (
	"slices"
	"strings"
)

// Kind identifies the shape of a node.
type Kind string

const (
	KindObject    Kind = "object"
	KindArray     Kind = "array"
	KindPrimitive Kind = "primitive"
	KindVoid      Kind = "void"
)

// Node is one node of the form tree.
//
// DeclaredControl carries the identifier the schema author gave the node's
// component (e.g. "ArrayItems.Remove"); the slot scanner matches it by suffix.
// Items is only meaningful for KindArray and describes a single row.
type Node struct {
	Name            string
	Kind            Kind
	Title           string
	DeclaredControl string
	Props           map[string]any
	Properties      map[string]*Node
	Items           *Node
	Default         any

	// Field-level settings for array nodes.
	Actions         Setting
	OperationsOrder Setting
}

// Setting is a tri-state list setting: absent, explicitly false, or a list.
// Values holds the raw YAML entries (strings or maps) for the list case.
type Setting struct {
	Present  bool
	Disabled bool
	Values   []any
}

// IsList reports whether the setting carries an explicit list.
func (s Setting) IsList() bool {
	return s.Present && !s.Disabled
}

// IsArray reports whether n is a repeating section.
func (n *Node) IsArray() bool {
	return n != nil && n.Kind == KindArray
}

// PropString returns the string value of a component prop, or "".
func (n *Node) PropString(key string) string {
	if n == nil {
		return ""
	}
	if v, ok := n.Props[key].(string); ok {
		return v
	}
	return ""
}

// PropertyNames returns the child property names in sorted order.
// Every traversal goes through this so that visit order is stable.
func (n *Node) PropertyNames() []string {
	if n == nil || len(n.Properties) == 0 {
		return nil
	}
	names := make([]string, 0, len(n.Properties))
	for name := range n.Properties {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// VisitFunc is called for every visited node with its depth below the walk root.
// Returning false skips the node's subtree.
type VisitFunc func(node *Node, depth int) bool

// Walk visits root and its descendants depth-first (pre-order, properties in
// sorted order, then Items).
func Walk(root *Node, fn VisitFunc) {
	walk(root, 0, fn)
}

func walk(n *Node, depth int, fn VisitFunc) {
	if n == nil {
		return
	}
	if !fn(n, depth) {
		return
	}
	for _, name := range n.PropertyNames() {
		walk(n.Properties[name], depth+1, fn)
	}
	if n.Items != nil {
		walk(n.Items, depth+1, fn)
	}
}

// Find returns the first node whose dotted path from root matches path.
// Array items are addressed with "items", e.g. "contacts.items.phone".
func Find(root *Node, path string) *Node {
	if root == nil || path == "" {
		return root
	}
	cur := root
	for _, part := range strings.Split(path, ".") {
		if cur == nil {
			return nil
		}
		if part == "items" && cur.Items != nil {
			cur = cur.Items
			continue
		}
		cur = cur.Properties[part]
	}
	return cur
}

// Arrays returns the addresses of all array nodes in the tree, in walk order.
func Arrays(root *Node) []string {
	var out []string
	var rec func(n *Node, prefix string)
	rec = func(n *Node, prefix string) {
		if n == nil {
			return
		}
		if n.IsArray() {
			out = append(out, prefix)
		}
		for _, name := range n.PropertyNames() {
			rec(n.Properties[name], join(prefix, name))
		}
		if n.Items != nil {
			rec(n.Items, join(prefix, "items"))
		}
	}
	rec(root, "")
	return out
}

func join(prefix, name string) string {
	if prefix == "" {
		return name
	}
	return prefix + "." + name
}
