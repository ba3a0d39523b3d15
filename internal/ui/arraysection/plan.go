package arraysection

import (
	"context"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/slots"
)

// Planner computes what each row of one array section shows. It holds no
// per-row state; every call builds a fresh action context.
type Planner struct {
	Root       *formtree.Node
	Array      actions.ArrayField
	Registries *slots.RegistryCache

	// Form-level settings, used when the array node has none of its own.
	FormActions actions.ActionList
	Ordering    slots.Ordering

	Policy         actions.Policy
	RowTransform   actions.Transform
	FieldTransform actions.Transform

	OnEdit   actions.Handler
	OnCustom func(ctx context.Context, key string, ac actions.Context) error
}

// RowPlan is everything rendered on one row.
type RowPlan struct {
	Index int

	// Items is the resolved action list after host adjustments.
	Items []actions.Item

	// Actions are the decided, visible items in list order.
	Actions []actions.Instruction

	// Operations are the row's declared or explicitly ordered operation
	// controls that Actions does not already show. They are only mounted
	// when the field's actions are false or an operation order is set.
	Operations []actions.Instruction
}

// Controls returns Actions followed by Operations.
func (p RowPlan) Controls() []actions.Instruction {
	out := make([]actions.Instruction, 0, len(p.Actions)+len(p.Operations))
	out = append(out, p.Actions...)
	return append(out, p.Operations...)
}

// Focusable returns the controls that can be activated.
func (p RowPlan) Focusable() []actions.Instruction {
	var out []actions.Instruction
	for _, in := range p.Controls() {
		if in.Activate != nil {
			out = append(out, in)
		}
	}
	return out
}

// Registry returns the slot registry of the section's schema.
func (p Planner) Registry() slots.Registry {
	return p.Registries.Get(p.Root)
}

// Order returns the operation ordering in effect: the array node's
// x-operations when given, the form-level ordering otherwise.
func (p Planner) Order() slots.Ordering {
	if p.Root != nil && p.Root.OperationsOrder.Present {
		return slots.OrderingFromSetting(p.Root.OperationsOrder)
	}
	return p.Ordering
}

// Plan computes row i.
func (p Planner) Plan(i int) RowPlan {
	plan := RowPlan{Index: i, Items: []actions.Item{}}
	ac := actions.NewContext(p.Array, i)
	if ac == nil || p.Root == nil {
		return plan
	}

	global, local := actions.Effective(actions.FromSetting(p.Root.Actions), p.FormActions, p.Policy.ShowEditAction)
	plan.Items = p.Policy.Apply(actions.Resolve(global, local, p.RowTransform, p.FieldTransform, ac))

	reg := p.Registry()
	d := actions.Decider{Registry: reg, OnEdit: p.OnEdit, OnCustom: p.OnCustom}
	plan.Actions = d.DecideAll(plan.Items, *ac)

	shown := make(map[slots.Slot]bool)
	for _, in := range plan.Actions {
		if in.Kind == actions.KindDeclared || in.Kind == actions.KindBuiltIn {
			shown[in.Slot] = true
		}
	}

	order := p.Order()
	if !local.IsSuppressed() && order == nil {
		return plan
	}
	for _, e := range slots.FilterSort(reg, order) {
		if shown[e.Slot] || (e.Slot == slots.Edit && p.Policy.StripEditAction) {
			continue
		}
		op, ok := actions.ForSlot(e.Slot)
		if !ok {
			kind := actions.KindBuiltIn
			if e.UserDeclared {
				kind = actions.KindDeclared
			}
			plan.Operations = append(plan.Operations, actions.Instruction{
				Kind:     kind,
				Key:      e.Slot.String(),
				Index:    i,
				Slot:     e.Slot,
				Renderer: e.Renderer,
			})
			continue
		}
		if in := d.Decide(actions.BuiltIn(op), *ac); in.Visible() {
			plan.Operations = append(plan.Operations, in)
		}
	}
	return plan
}

// NewRowValue builds the value of a freshly added row from its schema:
// the declared default, or an object of its properties' defaults.
func NewRowValue(n *formtree.Node) any {
	if n == nil {
		return nil
	}
	if n.Default != nil {
		return n.Default
	}
	switch n.Kind {
	case formtree.KindObject:
		rec := make(map[string]any)
		for _, name := range n.PropertyNames() {
			if v := NewRowValue(n.Properties[name]); v != nil {
				rec[name] = v
			}
		}
		return rec
	case formtree.KindArray:
		return []any{}
	}
	return nil
}
