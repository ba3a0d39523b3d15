// Package actions resolves the per-row action list of an array section and
// decides, for each action and row, what to render.
//
// An action list is merged from three tiers: form-level defaults, the
// field's own setting, and transform hooks. Each resolved Item is then turned
// into an Instruction by a Decider: a schema-declared control, a built-in
// operation button, a toggle, or a generic custom button.
package actions

import (
	"context"

	"github.com/pixpilot/arrayrows/internal/slots"
)

// Operation names a built-in row operation.
type Operation string

const (
	OpUp     Operation = "up"
	OpDown   Operation = "down"
	OpCopy   Operation = "copy"
	OpEdit   Operation = "edit"
	OpRemove Operation = "remove"
)

var operationSlots = map[Operation]slots.Slot{
	OpUp:     slots.MoveUp,
	OpDown:   slots.MoveDown,
	OpCopy:   slots.Copy,
	OpEdit:   slots.Edit,
	OpRemove: slots.Remove,
}

// Valid reports whether o is one of the built-in operations.
func (o Operation) Valid() bool {
	_, ok := operationSlots[o]
	return ok
}

// Slot returns the component slot that renders o.
func (o Operation) Slot() (slots.Slot, bool) {
	s, ok := operationSlots[o]
	return s, ok
}

// ForSlot returns the built-in operation a slot performs. Label has none.
func ForSlot(s slots.Slot) (Operation, bool) {
	for op, slot := range operationSlots {
		if slot == s {
			return op, true
		}
	}
	return "", false
}

// Predicate computes a hidden or disabled flag for a row.
// A nil Predicate is false.
type Predicate func(ac Context) bool

// Static returns a Predicate with a fixed value.
func Static(v bool) Predicate {
	return func(Context) bool { return v }
}

// Eval evaluates p for ac.
func (p Predicate) Eval(ac Context) bool {
	if p == nil {
		return false
	}
	return p(ac)
}

// Handler runs an action for a row.
type Handler func(ctx context.Context, ac Context) error

// Item is one entry of an action list. The variants are BuiltIn, Override,
// Toggle and Custom.
type Item interface {
	isItem()
}

// BuiltIn is a bare built-in operation with no overrides.
type BuiltIn Operation

// Override customizes a built-in operation. When OnClick is set it replaces
// the operation's intrinsic behaviour.
type Override struct {
	Type     Operation
	Icon     string
	Tooltip  string
	OnClick  Handler
	Hidden   Predicate
	Disabled Predicate
}

// Toggle is a stateful two-state control.
type Toggle struct {
	Key             string
	Icon            string
	ActiveIcon      string
	Tooltip         string
	ActiveTooltip   string
	InactiveTooltip string
	IsActive        func(ac Context) bool
	OnToggle        func(ctx context.Context, ac Context, next bool) error
	OnClick         Handler
	Hidden          Predicate
	Disabled        Predicate
}

// Custom is an arbitrary icon button.
type Custom struct {
	Key      string
	Icon     string
	Tooltip  string
	OnClick  Handler
	Hidden   Predicate
	Disabled Predicate
}

func (BuiltIn) isItem()  {}
func (Override) isItem() {}
func (Toggle) isItem()   {}
func (Custom) isItem()   {}

// TypeOf returns the built-in operation an item stands for, if any.
func TypeOf(it Item) (Operation, bool) {
	switch v := it.(type) {
	case BuiltIn:
		return Operation(v), Operation(v).Valid()
	case Override:
		return v.Type, v.Type.Valid()
	}
	return "", false
}

// KeyOf returns a stable render key for it.
func KeyOf(it Item) string {
	switch v := it.(type) {
	case BuiltIn:
		return string(v)
	case Override:
		return string(v.Type)
	case Toggle:
		return v.Key
	case Custom:
		return v.Key
	}
	return ""
}
