package arraysection

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/muesli/reflow/wordwrap"

	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/ui/styles"
	"github.com/pixpilot/arrayrows/internal/widgets"
)

const defaultWidth = 80

// View renders the section, the focused control's tooltip, the status bar
// and help.
func (m Model) View() string {
	width := m.sectionWidth()
	inner := width - 2
	n := m.store.Len()

	var lines []string
	if m.planner.Root == nil {
		lines = append(lines, " "+styles.EmptyStyle.Render("no schema loaded"))
	} else {
		reg := m.planner.Registry()
		if n == 0 {
			lines = append(lines, " "+reg.Get(slots.Empty).Renderer.Render(slots.Props{}))
		}
		for i := range n {
			lines = append(lines, m.renderRow(i, reg, inner))
		}
		if m.canAdd() {
			add := reg.Get(slots.Addition).Renderer.Render(slots.Props{
				Index:   n,
				Title:   m.planner.Root.PropString("addition"),
				Focused: m.onAddition(),
			})
			lines = append(lines, "  "+zone.Mark(m.additionZone(), add))
		}
	}

	title := m.title
	if title == "" && m.planner.Root != nil {
		title = m.planner.Root.Title
	}
	parts := []string{styles.RenderSection(lines, title, rowCount(n), width, true)}

	if m.showTooltips {
		if tip := m.focusedTooltip(); tip != "" {
			parts = append(parts, " "+widgets.Tooltip(tip, inner))
		}
	}
	if m.status != "" {
		style := styles.StatusBarStyle
		if m.statusErr {
			style = styles.ErrorStyle
		}
		parts = append(parts, style.Render(wordwrap.String(m.status, inner)))
	}
	if m.showStatusBar {
		parts = append(parts, styles.StatusBarStyle.Render(m.statusBar(n)))
	}
	parts = append(parts, m.help.View(m.keys))

	return zone.Scan(strings.Join(parts, "\n"))
}

func (m Model) renderRow(i int, reg slots.Registry, inner int) string {
	focusedRow := m.row == i
	plan := m.planner.Plan(i)

	indicator := "  "
	if focusedRow {
		indicator = styles.SelectionIndicatorStyle.Render("> ")
	}
	prefix := indicator + reg.Get(slots.Index).Renderer.Render(slots.Props{Index: i, Focused: focusedRow}) + " "

	var controls []string
	f := 0
	for _, in := range plan.Controls() {
		if in.Activate == nil {
			controls = append(controls, widgets.Instruction(in, false))
			continue
		}
		rendered := widgets.Instruction(in, focusedRow && m.col == f)
		controls = append(controls, zone.Mark(m.controlZone(i, f), rendered))
		f++
	}
	bar := strings.Join(controls, "")

	valueWidth := max(inner-lipgloss.Width(prefix)-lipgloss.Width(bar)-2, 1)
	value := widgets.Value(m.store.Value(i), valueWidth)
	pad := max(inner-lipgloss.Width(prefix)-lipgloss.Width(value)-lipgloss.Width(bar), 1)

	return prefix + value + strings.Repeat(" ", pad) + bar
}

func (m Model) focusedTooltip() string {
	if m.onAddition() {
		return widgets.AdditionTooltip
	}
	ctls := m.focusable()
	if m.col >= len(ctls) {
		return ""
	}
	return widgets.TooltipFor(ctls[m.col])
}

func (m Model) statusBar(n int) string {
	if n == 0 || m.row >= n {
		return fmt.Sprintf("%s · %s", m.store.Address(), m.store.Pattern())
	}
	return fmt.Sprintf("%s · %s · row %d/%d", m.store.Address(), m.store.Pattern(), m.row+1, n)
}

func (m Model) sectionWidth() int {
	switch {
	case m.fixedWidth > 0:
		return m.fixedWidth
	case m.width > 0:
		return m.width
	}
	return defaultWidth
}

func (m Model) controlZone(row, ctl int) string {
	return fmt.Sprintf("%srow-%d-ctl-%d", m.zones, row, ctl)
}

func (m Model) additionZone() string {
	return m.zones + "addition"
}

func rowCount(n int) string {
	if n == 1 {
		return "1 row"
	}
	return fmt.Sprintf("%d rows", n)
}
