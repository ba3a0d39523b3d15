package actions

import "slices"

type listMode int

const (
	listUnset listMode = iota
	listSuppressed
	listSet
)

// ActionList is a tri-state action setting: unset, suppressed (false), or an
// explicit list. The zero value is unset.
type ActionList struct {
	mode  listMode
	items []Item
}

// Unset returns an ActionList that defers to the next tier.
func Unset() ActionList { return ActionList{} }

// Suppressed returns an ActionList that disables all actions.
func Suppressed() ActionList { return ActionList{mode: listSuppressed} }

// List returns an explicit action list. List() with no items is an explicit
// empty list, not Unset.
func List(items ...Item) ActionList {
	return ActionList{mode: listSet, items: slices.Clone(items)}
}

// IsUnset reports whether the setting was not given.
func (l ActionList) IsUnset() bool { return l.mode == listUnset }

// IsSuppressed reports whether the setting is false.
func (l ActionList) IsSuppressed() bool { return l.mode == listSuppressed }

// Items returns the explicit list, or nil.
func (l ActionList) Items() []Item {
	if l.mode != listSet {
		return nil
	}
	return slices.Clone(l.items)
}

// Transform rewrites a merged action list for one row.
type Transform func(items []Item, ac Context) []Item

// DefaultOperations is the built-in list used when neither the field nor the
// form configures actions.
func DefaultOperations(showEdit bool) []Item {
	items := []Item{BuiltIn(OpUp), BuiltIn(OpDown), BuiltIn(OpRemove)}
	if showEdit {
		items = append(items, BuiltIn(OpEdit))
	}
	return items
}

// Effective applies the field/form precedence rules and returns the global and
// local lists to pass to Resolve.
//
// A field-level list or false always wins and empties the global tier. With
// no field setting, a form-level list becomes the global tier, a form-level
// false empties it, and with neither the built-in operations are used.
func Effective(field, form ActionList, showEdit bool) ([]Item, ActionList) {
	switch {
	case !field.IsUnset():
		return []Item{}, field
	case form.mode == listSet:
		return form.Items(), Unset()
	case form.IsSuppressed():
		return []Item{}, Unset()
	default:
		return DefaultOperations(showEdit), Unset()
	}
}

// Resolve merges the action tiers for one row.
//
// A suppressed local list yields no actions. Otherwise local items are
// appended after global ones, rowTransform is applied, and fieldTransform is
// applied last. A nil ac (no row context) yields no actions. The result never
// aliases global or local.
func Resolve(global []Item, local ActionList, rowTransform, fieldTransform Transform, ac *Context) []Item {
	if ac == nil || local.IsSuppressed() {
		return []Item{}
	}

	merged := make([]Item, 0, len(global)+len(local.items))
	merged = append(merged, global...)
	merged = append(merged, local.items...)

	if rowTransform != nil {
		merged = rowTransform(merged, *ac)
	}
	if fieldTransform != nil {
		merged = fieldTransform(merged, *ac)
	}
	if merged == nil {
		return []Item{}
	}
	return merged
}

// EnsureEdit appends a bare edit operation when items has none.
func EnsureEdit(items []Item) []Item {
	if slices.ContainsFunc(items, isEdit) {
		return items
	}
	return append(slices.Clip(items), BuiltIn(OpEdit))
}

// StripEdit removes every edit operation from items.
func StripEdit(items []Item) []Item {
	if !slices.ContainsFunc(items, isEdit) {
		return items
	}
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if !isEdit(it) {
			out = append(out, it)
		}
	}
	return out
}

func isEdit(it Item) bool {
	op, ok := TypeOf(it)
	return ok && op == OpEdit
}

// Policy carries the host's edit-action flags.
type Policy struct {
	ShowEditAction   bool
	EnsureEditAction bool
	StripEditAction  bool
}

// Apply runs the host adjustments on a resolved list. Strip wins over ensure.
func (p Policy) Apply(items []Item) []Item {
	if p.EnsureEditAction && !p.StripEditAction {
		items = EnsureEdit(items)
	}
	if p.StripEditAction {
		items = StripEdit(items)
	}
	return items
}
