// Package slots derives the per-row component slots of an array section.
//
// A slot is a named role a row control can fill (Remove, MoveUp, Index, ...).
// For each slot exactly one renderer is chosen: a control the schema author
// declared inside the row's item schema, or the widget layer's built-in
// default. Declared controls are discovered by matching a node's declared
// component identifier against a fixed suffix table.
package slots

import "strings"

// Slot is one of the fixed roles a per-row control can fill.
type Slot int

const (
	Addition Slot = iota
	Remove
	MoveUp
	MoveDown
	Copy
	Edit
	Index
	Empty
	Label

	slotCount
)

// All lists every slot in registry iteration order.
var All = [slotCount]Slot{Addition, Remove, MoveUp, MoveDown, Copy, Edit, Index, Empty, Label}

var slotNames = [slotCount]string{
	Addition: "Addition",
	Remove:   "Remove",
	MoveUp:   "MoveUp",
	MoveDown: "MoveDown",
	Copy:     "Copy",
	Edit:     "Edit",
	Index:    "Index",
	Empty:    "Empty",
	Label:    "Label",
}

func (s Slot) String() string {
	if s < 0 || s >= slotCount {
		return "Unknown"
	}
	return slotNames[s]
}

// IsOperation reports whether s takes part in operation filtering and ordering.
// Addition, Index and Empty are display slots and are rendered on their own.
func (s Slot) IsOperation() bool {
	switch s {
	case Remove, MoveUp, MoveDown, Copy, Edit, Label:
		return true
	}
	return false
}

// suffixRule ties a declared-control suffix to the slot it fills.
type suffixRule struct {
	slot   Slot
	suffix string
}

// suffixTable is the only place declared identifiers are interpreted.
// Matching is exact and case-sensitive on the final ".Role" segment.
var suffixTable = func() []suffixRule {
	rules := make([]suffixRule, 0, slotCount)
	for _, s := range All {
		rules = append(rules, suffixRule{slot: s, suffix: "." + s.String()})
	}
	return rules
}()

// ForControl returns the slot a declared component identifier fills.
func ForControl(id string) (Slot, bool) {
	if id == "" {
		return 0, false
	}
	for _, r := range suffixTable {
		if strings.HasSuffix(id, r.suffix) {
			return r.slot, true
		}
	}
	return 0, false
}

// actionNames maps the lowercase action vocabulary used in settings to slots.
var actionNames = map[string]Slot{
	"up":     MoveUp,
	"down":   MoveDown,
	"copy":   Copy,
	"edit":   Edit,
	"remove": Remove,
	"label":  Label,
	"index":  Index,
	"empty":  Empty,
	"add":    Addition,
}

// Parse resolves a slot from either its lowercase action name ("up") or its
// slot name ("MoveUp").
func Parse(name string) (Slot, bool) {
	if s, ok := actionNames[name]; ok {
		return s, true
	}
	for _, s := range All {
		if s.String() == name {
			return s, true
		}
	}
	return 0, false
}
