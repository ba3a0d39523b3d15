package widgets

import (
	"context"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/require"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/slots"
)

func plain(s string) string { return ansi.Strip(s) }

func TestDefaults_CoverEverySlot(t *testing.T) {
	d := Defaults()
	for _, s := range slots.All {
		require.NotNil(t, d[s], s.String())
	}
}

func TestDefaults_Render(t *testing.T) {
	d := Defaults()
	tests := []struct {
		slot  slots.Slot
		props slots.Props
		want  string
	}{
		{slots.Remove, slots.Props{}, " ✕ "},
		{slots.MoveUp, slots.Props{}, " ↑ "},
		{slots.MoveDown, slots.Props{Icon: "v"}, " v "},
		{slots.Copy, slots.Props{Disabled: true}, " ⧉ "},
		{slots.Edit, slots.Props{Focused: true}, " ✎ "},
		{slots.Index, slots.Props{Index: 4}, "5."},
		{slots.Empty, slots.Props{}, "No items"},
		{slots.Empty, slots.Props{Title: "Nothing yet"}, "Nothing yet"},
		{slots.Addition, slots.Props{}, "+ Add item"},
		{slots.Label, slots.Props{}, ""},
		{slots.Label, slots.Props{Title: "Contact"}, "Contact"},
	}
	for _, tt := range tests {
		t.Run(tt.slot.String(), func(t *testing.T) {
			require.Equal(t, tt.want, plain(d[tt.slot].Render(tt.props)))
		})
	}
}

func TestNodes_RenderNode(t *testing.T) {
	n := Nodes{}
	require.Equal(t, "[Delete]", plain(n.RenderNode(&formtree.Node{
		Name: "del", Title: "Delete", DeclaredControl: "ArrayCards.Remove",
	}, slots.Props{})))
	require.Equal(t, "[🗑]", plain(n.RenderNode(&formtree.Node{
		Name: "del", Title: "Delete", DeclaredControl: "ArrayCards.Remove",
		Props: map[string]any{"icon": "🗑"},
	}, slots.Props{})))
	require.Equal(t, "#3", plain(n.RenderNode(&formtree.Node{
		Name: "idx", DeclaredControl: "ArrayItems.Index",
		Props: map[string]any{"prefix": "#"},
	}, slots.Props{Index: 2})))
	require.Equal(t, "+ New contact", plain(n.RenderNode(&formtree.Node{
		Name: "add", Title: "New contact", DeclaredControl: "ArrayItems.Addition",
	}, slots.Props{})))
	require.Equal(t, "Contact", plain(n.RenderNode(&formtree.Node{
		Name: "label", Title: "Contact", DeclaredControl: "ArrayItems.Label",
	}, slots.Props{})))
	require.Equal(t, "plain", plain(n.RenderNode(&formtree.Node{
		Name: "plain", DeclaredControl: "Input",
	}, slots.Props{})))
}

func TestInstruction(t *testing.T) {
	require.Empty(t, Instruction(actions.Instruction{Kind: actions.KindNone}, false))

	builtin := actions.Instruction{
		Kind:     actions.KindBuiltIn,
		Renderer: Button{Icon: IconUp},
		Icon:     "⇑",
	}
	require.Equal(t, " ⇑ ", plain(Instruction(builtin, false)))

	custom := actions.Instruction{Kind: actions.KindCustom, Key: "info"}
	require.Equal(t, " info ", plain(Instruction(custom, false)))

	toggle := actions.Instruction{Kind: actions.KindToggle, Key: "pin", Icon: "★", Active: true}
	require.Equal(t, " ★ ", plain(Instruction(toggle, true)))
}

func TestInstruction_DeclaredUsesNode(t *testing.T) {
	node := &formtree.Node{Name: "up", Title: "Raise", DeclaredControl: "ArrayItems.MoveUp"}
	in := actions.Instruction{
		Kind:     actions.KindDeclared,
		Renderer: slots.DeclaredRenderer{Slot: slots.MoveUp, Node: node, Nodes: Nodes{}},
		Icon:     "ignored",
		Activate: func(context.Context) error { return nil },
	}
	require.Equal(t, "[Raise]", plain(Instruction(in, false)))
}

func TestTooltip(t *testing.T) {
	require.Empty(t, Tooltip("", 10))
	require.Empty(t, Tooltip("Move up", 0))
	require.Equal(t, "Move up", plain(Tooltip("Move up", 10)))
	require.Equal(t, "Remo…", plain(Tooltip("Remove this row", 5)))
}

func TestValue(t *testing.T) {
	require.Equal(t, "email: a@x.io, name: Ann", plain(Value(map[string]any{"name": "Ann", "email": "a@x.io"}, 0)))
	require.Equal(t, "email…", plain(Value(map[string]any{"name": "Ann", "email": "a@x.io"}, 6)))
	require.Equal(t, "42", plain(Value(42, 10)))
	require.Empty(t, plain(Value(nil, 10)))
}

func TestTooltipFor(t *testing.T) {
	require.Equal(t, "Delete", TooltipFor(actions.Instruction{Kind: actions.KindBuiltIn, Slot: slots.Remove, Tooltip: "Delete"}))
	require.Equal(t, "Remove row", TooltipFor(actions.Instruction{Kind: actions.KindBuiltIn, Slot: slots.Remove}))
	require.Equal(t, "Move up", TooltipFor(actions.Instruction{Kind: actions.KindDeclared, Slot: slots.MoveUp}))
	require.Empty(t, TooltipFor(actions.Instruction{Kind: actions.KindCustom, Key: "info"}))
}

func forceColor(t *testing.T) {
	t.Helper()
	prev := lipgloss.ColorProfile()
	lipgloss.SetColorProfile(termenv.ANSI256)
	t.Cleanup(func() { lipgloss.SetColorProfile(prev) })
}

func TestButton_StatesAreStyledApart(t *testing.T) {
	forceColor(t)
	b := Button{Icon: IconRemove, Danger: true}

	plainOut := b.Render(slots.Props{})
	focused := b.Render(slots.Props{Focused: true})
	disabled := b.Render(slots.Props{Disabled: true, Focused: true})
	active := Button{Icon: "★"}.Render(slots.Props{Active: true})

	require.NotEqual(t, plainOut, focused)
	require.NotEqual(t, focused, disabled, "disabled wins over focus")
	require.NotEqual(t, Button{Icon: "★"}.Render(slots.Props{}), active)
	require.Equal(t, plain(plainOut), plain(disabled))
}
