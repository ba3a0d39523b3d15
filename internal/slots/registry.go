package slots

import (
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/log"
)

// Entry is the renderer chosen for one slot.
type Entry struct {
	Slot         Slot
	Renderer     Renderer
	UserDeclared bool
}

// Defaults is the built-in renderer table supplied by the widget layer.
type Defaults map[Slot]Renderer

// RowSchema returns the schema of a single row of root: its item template
// when root is an array, root itself otherwise.
func RowSchema(root *formtree.Node) *formtree.Node {
	if root.IsArray() {
		return root.Items
	}
	return root
}

// Scan discovers the controls declared in root's row schema.
//
// Only the row's own nodes are visited; nested array sections own their own
// scan. When several nodes declare the same slot the last visited one wins.
// The result only holds discovered slots and is empty (not nil) when nothing
// matched.
func Scan(root *formtree.Node, nodes NodeRenderer) map[Slot]Entry {
	found := make(map[Slot]Entry)
	item := RowSchema(root)
	if item == nil {
		return found
	}

	walkRow(item, func(n *formtree.Node) {
		slot, ok := ForControl(n.DeclaredControl)
		if !ok {
			return
		}
		if prev, dup := found[slot]; dup {
			log.Debug(log.CatSlots, "duplicate declared control, last one wins",
				"slot", slot, "previous", DeclaredNode(prev).Name, "node", n.Name)
		}
		found[slot] = Entry{
			Slot:         slot,
			UserDeclared: true,
			Renderer:     DeclaredRenderer{Slot: slot, Node: n, Nodes: nodes},
		}
	})
	return found
}

// DeclaredNode returns the schema node behind a user-declared entry, or nil.
func DeclaredNode(e Entry) *formtree.Node {
	if d, ok := e.Renderer.(DeclaredRenderer); ok {
		return d.Node
	}
	return nil
}

// Registry holds exactly one entry per slot.
type Registry struct {
	entries [slotCount]Entry
}

// BuildRegistry combines the scan of root with the built-in defaults.
// Every slot is filled; slots missing from defaults render nothing.
func BuildRegistry(root *formtree.Node, defaults Defaults, nodes NodeRenderer) Registry {
	return registryFrom(Scan(root, nodes), defaults)
}

func registryFrom(declared map[Slot]Entry, defaults Defaults) Registry {
	var reg Registry
	for _, s := range All {
		if e, ok := declared[s]; ok {
			reg.entries[s] = e
			continue
		}
		r := defaults[s]
		if r == nil {
			r = Nothing
		}
		reg.entries[s] = Entry{Slot: s, Renderer: r}
	}
	return reg
}

// Get returns the entry for s.
func (r Registry) Get(s Slot) Entry {
	if s < 0 || s >= slotCount {
		return Entry{Slot: s, Renderer: Nothing}
	}
	return r.entries[s]
}

// Entries returns all entries in registry iteration order.
func (r Registry) Entries() []Entry {
	out := make([]Entry, 0, slotCount)
	for _, s := range All {
		out = append(out, r.entries[s])
	}
	return out
}

// Declared returns only the user-declared entries, keyed by slot.
func (r Registry) Declared() map[Slot]Entry {
	out := make(map[Slot]Entry)
	for _, e := range r.entries {
		if e.UserDeclared {
			out[e.Slot] = e
		}
	}
	return out
}

// Len is always the number of slots. It exists for callers that want to
// assert completeness.
func (r Registry) Len() int {
	n := 0
	for _, e := range r.entries {
		if e.Renderer != nil {
			n++
		}
	}
	return n
}
