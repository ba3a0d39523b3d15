package actions

import (
	"context"
	"errors"
	"fmt"

	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/log"
)

// ErrNoRecordWriter is returned by config-defined toggles when the array
// field cannot store values.
var ErrNoRecordWriter = errors.New("array field does not support writing row values")

// RecordWriter is implemented by array fields that can set a value inside a
// row record. Config-defined toggles use it to flip their bound key.
type RecordWriter interface {
	SetValue(ctx context.Context, i int, key string, value any) error
}

// ParseItem converts one raw setting entry (a YAML string or map) into an
// Item. Anything unrecognizable becomes an icon-less Custom.
//
//	up                                  -> BuiltIn
//	{type: remove, icon: x, hidden: true} -> Override
//	{type: toggle, key: pinned, icon: ☆, active_icon: ★}
//	{key: info, icon: i, tooltip: Details} -> Custom
func ParseItem(raw any) Item {
	switch v := raw.(type) {
	case string:
		if Operation(v).Valid() {
			return BuiltIn(v)
		}
		log.Warn(log.CatActions, "unknown action name, rendering as custom", "name", v)
		return Custom{Key: v}
	case map[string]any:
		return parseMap(v)
	default:
		log.Warn(log.CatActions, "malformed action entry, rendering as custom", "value", fmt.Sprint(raw))
		return Custom{Key: fmt.Sprint(raw)}
	}
}

// ParseItems converts every entry of values.
func ParseItems(values []any) []Item {
	items := make([]Item, 0, len(values))
	for _, v := range values {
		items = append(items, ParseItem(v))
	}
	return items
}

// FromSetting maps a node's x-actions setting to an ActionList.
func FromSetting(s formtree.Setting) ActionList {
	switch {
	case !s.Present:
		return Unset()
	case s.Disabled:
		return Suppressed()
	default:
		return List(ParseItems(s.Values)...)
	}
}

func parseMap(m map[string]any) Item {
	typ := str(m, "type")
	switch {
	case typ == "toggle":
		return parseToggle(m)
	case Operation(typ).Valid():
		return Override{
			Type:     Operation(typ),
			Icon:     str(m, "icon"),
			Tooltip:  str(m, "tooltip"),
			Hidden:   flag(m, "hidden"),
			Disabled: flag(m, "disabled"),
		}
	case typ == "" && str(m, "key") != "":
		return Custom{
			Key:      str(m, "key"),
			Icon:     str(m, "icon"),
			Tooltip:  str(m, "tooltip"),
			Hidden:   flag(m, "hidden"),
			Disabled: flag(m, "disabled"),
		}
	}
	key := str(m, "key")
	if key == "" {
		key = typ
	}
	log.Warn(log.CatActions, "malformed action entry, rendering as custom", "type", typ, "key", key)
	return Custom{Key: key}
}

// parseToggle builds a toggle bound to a boolean key of the row record.
// The key defaults to the toggle's own key.
func parseToggle(m map[string]any) Item {
	key := str(m, "key")
	field := str(m, "field")
	if field == "" {
		field = key
	}
	isActive := func(ac Context) bool {
		rec, ok := ac.Record.(map[string]any)
		if !ok {
			return false
		}
		b, _ := rec[field].(bool)
		return b
	}
	return Toggle{
		Key:             key,
		Icon:            str(m, "icon"),
		ActiveIcon:      str(m, "active_icon"),
		Tooltip:         str(m, "tooltip"),
		ActiveTooltip:   str(m, "active_tooltip"),
		InactiveTooltip: str(m, "inactive_tooltip"),
		IsActive:        isActive,
		OnToggle: func(ctx context.Context, ac Context, next bool) error {
			w, ok := ac.Array.(RecordWriter)
			if !ok {
				return ErrNoRecordWriter
			}
			return w.SetValue(ctx, ac.Index, field, next)
		},
		Hidden:   flag(m, "hidden"),
		Disabled: flag(m, "disabled"),
	}
}

func str(m map[string]any, key string) string {
	if s, ok := m[key].(string); ok {
		return s
	}
	return ""
}

// flag reads a literal boolean, or a string naming a boolean key of the row
// record ("hidden: archived").
func flag(m map[string]any, key string) Predicate {
	switch v := m[key].(type) {
	case bool:
		return Static(v)
	case string:
		return func(ac Context) bool {
			rec, ok := ac.Record.(map[string]any)
			if !ok {
				return false
			}
			b, _ := rec[v].(bool)
			return b
		}
	}
	return nil
}
