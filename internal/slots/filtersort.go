package slots

import (
	"slices"

	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/log"
)

// Ordering is an explicit operation order. A nil Ordering means no order was
// given (the setting was absent or false); a non-nil empty Ordering is an
// explicit, empty order.
type Ordering []Slot

// FilterSort returns the operation entries to mount, in mount order.
//
// Without an ordering only user-declared entries surface, in registry order.
// With an ordering, entries listed in it come first in its order, followed by
// unlisted user-declared entries in registry order. Unlisted built-in entries
// are dropped.
func FilterSort(reg Registry, order Ordering) []Entry {
	var candidates []Entry
	for _, e := range reg.Entries() {
		if !e.Slot.IsOperation() {
			continue
		}
		if e.UserDeclared || (order != nil && slices.Contains(order, e.Slot)) {
			candidates = append(candidates, e)
		}
	}
	if order == nil {
		return candidates
	}

	rank := func(s Slot) int {
		if i := slices.Index(order, s); i >= 0 {
			return i
		}
		return len(order)
	}
	slices.SortStableFunc(candidates, func(a, b Entry) int {
		return rank(a.Slot) - rank(b.Slot)
	})
	return candidates
}

// ParseOrdering converts raw setting values (strings) into an Ordering.
// Unknown names and non-operation slots are skipped and returned so the
// caller can report them.
func ParseOrdering(values []any) (Ordering, []string) {
	order := make(Ordering, 0, len(values))
	var skipped []string
	for _, v := range values {
		name, ok := v.(string)
		if !ok {
			skipped = append(skipped, "<non-string>")
			continue
		}
		s, ok := Parse(name)
		if !ok || !s.IsOperation() {
			skipped = append(skipped, name)
			continue
		}
		if !slices.Contains(order, s) {
			order = append(order, s)
		}
	}
	return order, skipped
}

// OrderingFromSetting maps a node's x-operations setting to an Ordering.
func OrderingFromSetting(s formtree.Setting) Ordering {
	if !s.IsList() {
		return nil
	}
	order, skipped := ParseOrdering(s.Values)
	if len(skipped) > 0 {
		log.Warn(log.CatSlots, "ignoring unknown operations in ordering", "names", skipped)
	}
	return order
}
