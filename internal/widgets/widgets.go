// Package widgets holds the built-in terminal renderers for array section
// slots and the renderer for schema-declared controls.
package widgets

import (
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/ui/styles"
)

// Default icons of the built-in operation buttons.
const (
	IconAdd    = "+"
	IconRemove = "✕"
	IconUp     = "↑"
	IconDown   = "↓"
	IconCopy   = "⧉"
	IconEdit   = "✎"
)

const (
	emptyText    = "No items"
	additionText = "Add item"
	ellipsis     = "…"
)

// Defaults returns the built-in renderer for every slot.
func Defaults() slots.Defaults {
	return slots.Defaults{
		slots.Addition: slots.RendererFunc(renderAddition),
		slots.Remove:   Button{Icon: IconRemove, Danger: true},
		slots.MoveUp:   Button{Icon: IconUp},
		slots.MoveDown: Button{Icon: IconDown},
		slots.Copy:     Button{Icon: IconCopy},
		slots.Edit:     Button{Icon: IconEdit},
		slots.Index:    slots.RendererFunc(renderIndex),
		slots.Empty:    slots.RendererFunc(renderEmpty),
		slots.Label:    slots.RendererFunc(renderLabel),
	}
}

// Button is an icon button. Props override the icon when set.
type Button struct {
	Icon   string
	Danger bool
}

// Render implements slots.Renderer.
func (b Button) Render(p slots.Props) string {
	icon := p.Icon
	if icon == "" {
		icon = b.Icon
	}
	return buttonStyle(p, b.Danger).Render(" " + icon + " ")
}

func buttonStyle(p slots.Props, danger bool) lipgloss.Style {
	switch {
	case p.Disabled:
		return styles.ActionDisabledStyle
	case p.Focused:
		return styles.ActionFocusedStyle
	case p.Active:
		return styles.ActionActiveStyle
	case danger:
		return styles.ActionDangerStyle
	default:
		return styles.ActionStyle
	}
}

func renderAddition(p slots.Props) string {
	title := p.Title
	if title == "" {
		title = additionText
	}
	style := styles.AdditionStyle
	if p.Focused {
		style = styles.ActionFocusedStyle
	}
	return style.Render(IconAdd + " " + title)
}

func renderIndex(p slots.Props) string {
	return styles.IndexStyle.Render(fmt.Sprintf("%d.", p.Index+1))
}

func renderEmpty(p slots.Props) string {
	text := p.Title
	if text == "" {
		text = emptyText
	}
	return styles.EmptyStyle.Render(text)
}

func renderLabel(p slots.Props) string {
	if p.Title == "" {
		return ""
	}
	return styles.IndexStyle.Render(p.Title)
}

// Nodes renders schema-declared controls. A declared node shows its
// x-component-props icon, else its title, else its name.
type Nodes struct{}

// RenderNode implements slots.NodeRenderer.
func (Nodes) RenderNode(node *formtree.Node, p slots.Props) string {
	text := node.PropString("icon")
	if text == "" {
		text = node.Title
	}
	if text == "" {
		text = node.Name
	}

	slot, ok := slots.ForControl(node.DeclaredControl)
	switch {
	case !ok:
		return text
	case slot == slots.Index:
		return styles.IndexStyle.Render(fmt.Sprintf("%s%d", node.PropString("prefix"), p.Index+1))
	case slot == slots.Empty:
		return styles.EmptyStyle.Render(text)
	case slot == slots.Addition:
		return renderAddition(slots.Props{Title: text, Focused: p.Focused})
	case slot == slots.Label:
		return styles.ValueStyle.Render(text)
	case slot.IsOperation():
		return buttonStyle(p, slot == slots.Remove).Render("[" + text + "]")
	}
	return text
}

// Instruction renders one decided action. Declared and built-in operations use
// their slot renderer; toggles and custom actions render as buttons labelled
// by icon, or by key when the icon is missing.
func Instruction(in actions.Instruction, focused bool) string {
	if !in.Visible() {
		return ""
	}
	if in.Renderer != nil {
		return in.Renderer.Render(in.Props(focused))
	}
	label := in.Icon
	if label == "" {
		label = in.Key
	}
	return Button{Icon: label}.Render(in.Props(focused))
}

// AdditionTooltip is the tooltip of the addition control.
const AdditionTooltip = "Add a row"

var defaultTooltips = map[slots.Slot]string{
	slots.Addition: AdditionTooltip,
	slots.Remove:   "Remove row",
	slots.MoveUp:   "Move up",
	slots.MoveDown: "Move down",
	slots.Copy:     "Copy row",
	slots.Edit:     "Edit row",
}

// TooltipFor returns the instruction's tooltip, falling back to the built-in
// text of its slot for operations.
func TooltipFor(in actions.Instruction) string {
	if in.Tooltip != "" {
		return in.Tooltip
	}
	if in.Kind == actions.KindBuiltIn || in.Kind == actions.KindDeclared {
		return defaultTooltips[in.Slot]
	}
	return ""
}

// Tooltip renders text truncated to width cells.
func Tooltip(text string, width int) string {
	if text == "" || width <= 0 {
		return ""
	}
	return styles.TooltipStyle.Render(ansi.Truncate(text, width, ellipsis))
}

// Value summarizes a row record on a single line of at most width cells.
// Records print as "key: value" pairs in key order.
func Value(v any, width int) string {
	var s string
	switch val := v.(type) {
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		slices.Sort(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s: %v", k, val[k]))
		}
		s = strings.Join(parts, ", ")
	case nil:
		s = ""
	default:
		s = fmt.Sprint(val)
	}
	if width > 0 {
		s = ansi.Truncate(s, width, ellipsis)
	}
	return styles.ValueStyle.Render(s)
}
