// Package report prints what every row of an array section resolves to, as a
// terminal table or as markdown.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/charmbracelet/x/ansi"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/ui/arraysection"
	"github.com/pixpilot/arrayrows/internal/ui/styles"
	"github.com/pixpilot/arrayrows/internal/widgets"
)

// Control is one decided control of a row.
type Control struct {
	Key      string
	Kind     actions.Kind
	Slot     string
	Label    string
	Disabled bool
	Active   bool
}

// Row is the report line of one record.
type Row struct {
	Index    int
	Value    string
	Controls []Control
}

// Build plans every row of the planner's array.
func Build(p arraysection.Planner) []Row {
	if p.Array == nil {
		return nil
	}
	n := p.Array.Len()
	rows := make([]Row, 0, n)
	for i := range n {
		plan := p.Plan(i)
		row := Row{Index: i, Value: widgets.Value(p.Array.Value(i), 0)}
		for _, in := range plan.Controls() {
			row.Controls = append(row.Controls, controlOf(in))
		}
		rows = append(rows, row)
	}
	return rows
}

func controlOf(in actions.Instruction) Control {
	c := Control{
		Key:      in.Key,
		Kind:     in.Kind,
		Disabled: in.Disabled,
		Active:   in.Active,
		Label:    in.Icon,
	}
	if in.Kind == actions.KindDeclared || in.Kind == actions.KindBuiltIn {
		c.Slot = in.Slot.String()
	}
	if c.Label == "" {
		c.Label = stripped(widgets.Instruction(in, false))
	}
	return c
}

// String renders c as "key" with its flags, e.g. "up(builtin, disabled)".
func (c Control) String() string {
	flags := []string{c.Kind.String()}
	if c.Disabled {
		flags = append(flags, "disabled")
	}
	if c.Active {
		flags = append(flags, "active")
	}
	return fmt.Sprintf("%s(%s)", c.Key, strings.Join(flags, ", "))
}

// Text renders rows as a bordered terminal table.
func Text(address string, rows []Row) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("#", "value", "controls")
	for _, r := range rows {
		t.Row(fmt.Sprint(r.Index+1), r.Value, controlList(r.Controls))
	}
	title := styles.TitleStyle.Render(fmt.Sprintf("%s (%s)", address, rowWord(len(rows))))
	return title + "\n" + t.Render()
}

// Markdown renders rows as a markdown document.
func Markdown(address string, rows []Row) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n\n", address)
	if len(rows) == 0 {
		sb.WriteString("_No rows._\n")
		return sb.String()
	}
	sb.WriteString("| # | value | controls |\n|---|---|---|\n")
	for _, r := range rows {
		fmt.Fprintf(&sb, "| %d | %s | %s |\n", r.Index+1, escape(r.Value), escape(controlList(r.Controls)))
	}
	return sb.String()
}

// Slots renders a registry and its filtered, sorted operations.
func Slots(reg slots.Registry, order slots.Ordering) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(styles.BorderDefaultColor)).
		Headers("slot", "source", "preview")
	for _, e := range reg.Entries() {
		source := "default"
		if e.UserDeclared {
			source = "declared"
			if n := slots.DeclaredNode(e); n != nil {
				source += " " + n.Name
			}
		}
		preview := ""
		if e.Renderer != nil {
			preview = stripped(e.Renderer.Render(slots.Props{}))
		}
		t.Row(e.Slot.String(), source, preview)
	}

	var ops []string
	for _, e := range slots.FilterSort(reg, order) {
		ops = append(ops, e.Slot.String())
	}
	line := "operations: " + strings.Join(ops, ", ")
	if len(ops) == 0 {
		line = "operations: none"
	}
	return t.Render() + "\n" + line
}

func controlList(cs []Control) string {
	if len(cs) == 0 {
		return "-"
	}
	parts := make([]string, len(cs))
	for i, c := range cs {
		parts[i] = c.String()
	}
	return strings.Join(parts, " ")
}

func rowWord(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}

func stripped(s string) string {
	return strings.TrimSpace(ansi.Strip(s))
}

func escape(s string) string {
	return strings.ReplaceAll(s, "|", `\|`)
}
