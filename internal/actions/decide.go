package actions

import (
	"context"
	"fmt"
	"maps"

	"github.com/pixpilot/arrayrows/internal/slots"
)

// Kind is what an Instruction renders.
type Kind int

const (
	KindNone     Kind = iota // hidden
	KindDeclared             // schema-declared control
	KindBuiltIn              // built-in operation renderer
	KindToggle               // stateful toggle button
	KindCustom               // generic icon button
)

func (k Kind) String() string {
	switch k {
	case KindNone:
		return "none"
	case KindDeclared:
		return "declared"
	case KindBuiltIn:
		return "builtin"
	case KindToggle:
		return "toggle"
	case KindCustom:
		return "custom"
	}
	return "unknown"
}

// Instruction is the outcome of deciding one action for one row.
type Instruction struct {
	Kind     Kind
	Key      string
	Index    int
	Slot     slots.Slot
	Renderer slots.Renderer // set for KindDeclared and KindBuiltIn
	Icon     string
	Tooltip  string
	Disabled bool
	Active   bool

	// Activate performs the action. Hosts never call it on a disabled or
	// hidden instruction.
	Activate func(ctx context.Context) error
}

// Visible reports whether anything should be rendered.
func (in Instruction) Visible() bool {
	return in.Kind != KindNone
}

// Props returns the props to hand to in.Renderer.
func (in Instruction) Props(focused bool) slots.Props {
	if in.Kind == KindDeclared {
		return slots.Props{Index: in.Index, Focused: focused}
	}
	return slots.Props{
		Index:    in.Index,
		Icon:     in.Icon,
		Tooltip:  in.Tooltip,
		Disabled: in.Disabled,
		Active:   in.Active,
		Focused:  focused,
	}
}

// Decider turns resolved items into instructions for the rows of one array
// section.
type Decider struct {
	// Registry is built from the array section's schema; its declared entries
	// are the row's own controls.
	Registry slots.Registry

	// OnEdit is the intrinsic edit behaviour. Nil makes edit a no-op.
	OnEdit Handler

	// OnCustom runs custom actions that carry no handler of their own.
	OnCustom func(ctx context.Context, key string, ac Context) error
}

func noop(context.Context) error { return nil }

// Decide computes the instruction for item on the row described by ac.
func (d Decider) Decide(item Item, ac Context) Instruction {
	switch v := item.(type) {
	case BuiltIn:
		if !Operation(v).Valid() {
			return d.malformed(string(v), ac)
		}
		return d.operation(Override{Type: Operation(v)}, false, ac)
	case Override:
		if !v.Type.Valid() {
			return d.malformed(string(v.Type), ac)
		}
		return d.operation(v, true, ac)
	case Toggle:
		return d.toggle(v, ac)
	case Custom:
		return d.custom(v, ac)
	default:
		return d.malformed(fmt.Sprintf("%T", item), ac)
	}
}

// DecideAll decides every item and drops hidden ones.
func (d Decider) DecideAll(items []Item, ac Context) []Instruction {
	out := make([]Instruction, 0, len(items))
	for _, it := range items {
		if in := d.Decide(it, ac); in.Visible() {
			out = append(out, in)
		}
	}
	return out
}

func (d Decider) operation(o Override, overridden bool, ac Context) Instruction {
	slot, _ := o.Type.Slot()
	hidden := Instruction{Kind: KindNone, Key: string(o.Type), Index: ac.Index, Slot: slot}
	if o.Hidden.Eval(ac) || !ac.editable() {
		return hidden
	}

	intrinsic := d.intrinsic(o.Type, ac)

	if !overridden {
		if e, ok := d.Registry.Declared()[slot]; ok {
			return Instruction{
				Kind:     KindDeclared,
				Key:      string(o.Type),
				Index:    ac.Index,
				Slot:     slot,
				Renderer: e.Renderer,
				Disabled: ac.fieldDisabled(),
				Activate: intrinsic,
			}
		}
	}

	activate := intrinsic
	if o.OnClick != nil {
		onClick := o.OnClick
		activate = func(ctx context.Context) error { return onClick(ctx, ac) }
	}

	return Instruction{
		Kind:     KindBuiltIn,
		Key:      string(o.Type),
		Index:    ac.Index,
		Slot:     slot,
		Renderer: d.Registry.Get(slot).Renderer,
		Icon:     o.Icon,
		Tooltip:  o.Tooltip,
		Disabled: o.Disabled.Eval(ac) || ac.fieldDisabled() || atBoundary(o.Type, ac),
		Activate: activate,
	}
}

func atBoundary(op Operation, ac Context) bool {
	switch op {
	case OpUp:
		return ac.isFirst()
	case OpDown:
		return ac.isLast()
	}
	return false
}

func (d Decider) intrinsic(op Operation, ac Context) func(context.Context) error {
	i := ac.Index
	arr := ac.Array
	wrap := func(err error) error {
		if err != nil {
			return fmt.Errorf("%s row %d of %s: %w", op, i, arr.Address(), err)
		}
		return nil
	}

	switch op {
	case OpUp:
		return func(ctx context.Context) error { return wrap(arr.MoveUp(ctx, i)) }
	case OpDown:
		return func(ctx context.Context) error { return wrap(arr.MoveDown(ctx, i)) }
	case OpRemove:
		return func(ctx context.Context) error { return wrap(arr.Remove(ctx, i)) }
	case OpCopy:
		value := cloneValue(ac.Record)
		return func(ctx context.Context) error { return wrap(arr.Insert(ctx, i+1, value)) }
	case OpEdit:
		if d.OnEdit == nil {
			return noop
		}
		onEdit := d.OnEdit
		return func(ctx context.Context) error { return wrap(onEdit(ctx, ac)) }
	}
	return noop
}

func (d Decider) toggle(t Toggle, ac Context) Instruction {
	if t.Hidden.Eval(ac) {
		return Instruction{Kind: KindNone, Key: t.Key, Index: ac.Index}
	}

	active := t.IsActive != nil && t.IsActive(ac)

	icon := t.Icon
	if active && t.ActiveIcon != "" {
		icon = t.ActiveIcon
	}
	tooltip := t.Tooltip
	if active && t.ActiveTooltip != "" {
		tooltip = t.ActiveTooltip
	} else if !active && t.InactiveTooltip != "" {
		tooltip = t.InactiveTooltip
	}

	return Instruction{
		Kind:     KindToggle,
		Key:      t.Key,
		Index:    ac.Index,
		Icon:     icon,
		Tooltip:  tooltip,
		Disabled: t.Disabled.Eval(ac),
		Active:   active,
		Activate: func(ctx context.Context) error {
			if t.OnClick != nil {
				if err := t.OnClick(ctx, ac); err != nil {
					return err
				}
			}
			if t.OnToggle == nil {
				return nil
			}
			next := !(t.IsActive != nil && t.IsActive(ac))
			return t.OnToggle(ctx, ac, next)
		},
	}
}

func (d Decider) custom(c Custom, ac Context) Instruction {
	if c.Hidden.Eval(ac) {
		return Instruction{Kind: KindNone, Key: c.Key, Index: ac.Index}
	}

	activate := noop
	switch {
	case c.OnClick != nil:
		activate = func(ctx context.Context) error { return c.OnClick(ctx, ac) }
	case d.OnCustom != nil:
		onCustom := d.OnCustom
		activate = func(ctx context.Context) error { return onCustom(ctx, c.Key, ac) }
	}

	return Instruction{
		Kind:     KindCustom,
		Key:      c.Key,
		Index:    ac.Index,
		Icon:     c.Icon,
		Tooltip:  c.Tooltip,
		Disabled: c.Disabled.Eval(ac),
		Activate: activate,
	}
}

// malformed renders an unrecognized item as an icon-less custom button.
func (d Decider) malformed(key string, ac Context) Instruction {
	return d.custom(Custom{Key: key}, ac)
}

// cloneValue deep-copies the map/slice shapes produced by YAML decoding so a
// copied row does not share state with its source.
func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []any:
		out := make([]any, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case map[string]string:
		return maps.Clone(val)
	default:
		return v
	}
}
