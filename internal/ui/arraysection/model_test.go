package arraysection

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/x/ansi"
	"github.com/charmbracelet/x/exp/teatest"
	zone "github.com/lrstanley/bubblezone"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/codes"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/pubsub"
	"github.com/pixpilot/arrayrows/internal/rowstore"
	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/widgets"
)

func TestMain(m *testing.M) {
	zone.NewGlobal()
	os.Exit(m.Run())
}

const contactsSchema = `
type: array
title: Contacts
items:
  type: object
  properties:
    name: {type: string, default: New}
    email: {type: string}
`

func contacts() []any {
	return []any{
		map[string]any{"name": "Ann"},
		map[string]any{"name": "Bob"},
		map[string]any{"name": "Cid"},
	}
}

func parse(t *testing.T, schema string) *formtree.Node {
	t.Helper()
	root, err := formtree.Parse([]byte(schema))
	require.NoError(t, err)
	return root
}

func newModel(t *testing.T, schema string, values []any, opts ...func(*Config)) Model {
	t.Helper()
	store := rowstore.New("contacts", values)
	t.Cleanup(store.Close)
	cfg := Config{
		Planner: Planner{
			Root:       parse(t, schema),
			Registries: slots.NewRegistryCache(widgets.Defaults(), widgets.Nodes{}),
		},
		Store:         store,
		ShowTooltips:  true,
		ShowStatusBar: true,
		Width:         60,
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	return New(cfg)
}

func view(m Model) string {
	return ansi.Strip(m.View())
}

func names(s *rowstore.Store) []string {
	var out []string
	for _, v := range s.Values() {
		out = append(out, v.(map[string]any)["name"].(string))
	}
	return out
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var enter = tea.KeyMsg{Type: tea.KeyEnter}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func TestView_DefaultActions(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	out := view(m)

	require.Contains(t, out, "Contacts (3 rows)")
	require.Contains(t, out, "1. name: Ann")
	require.Contains(t, out, "3. name: Cid")
	require.Contains(t, out, "> 1.")
	require.Equal(t, 3, strings.Count(out, " ↑ "))
	require.Equal(t, 3, strings.Count(out, " ✕ "))
	require.Contains(t, out, "+ Add item")
	require.Contains(t, out, "Move up")
	require.Contains(t, out, "contacts · editable · row 1/3")
}

func TestView_Empty(t *testing.T) {
	m := newModel(t, contactsSchema, nil)
	out := view(m)
	require.Contains(t, out, "No items")
	require.Contains(t, out, "0 rows")
	require.Contains(t, out, "+ Add item")
}

func TestView_DeclaredEmptyAndAddition(t *testing.T) {
	m := newModel(t, `
type: array
items:
  type: object
  properties:
    nothing: {type: void, x-component: ArrayItems.Empty, title: Start by adding a contact}
`, nil)
	out := view(m)
	require.Contains(t, out, "Start by adding a contact")
	require.Contains(t, out, "+ Add item")

	m = newModel(t, `
type: array
x-component-props: {addition: New contact}
items: {type: object}
`, nil)
	require.Contains(t, view(m), "+ New contact")
}

func TestView_SuppressedActions(t *testing.T) {
	m := newModel(t, `
type: array
x-actions: false
items: {type: object}
`, contacts())
	out := view(m)
	require.NotContains(t, out, " ✕ ")
	require.NotContains(t, out, " ↑ ")
	require.Contains(t, out, "name: Bob")
}

func TestView_DeclaredControlsAndOrdering(t *testing.T) {
	m := newModel(t, `
type: array
x-operations: [copy, remove]
items:
  type: object
  properties:
    name: {type: string}
    remove: {type: void, x-component: ArrayItems.Remove, title: Delete}
`, contacts())
	out := view(m)
	require.Equal(t, 3, strings.Count(out, "[Delete]"))
	require.Equal(t, 3, strings.Count(out, " ⧉ "))
	require.NotContains(t, out, " ✕ ")
}

func TestView_ReadOnly(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	m.store.SetPattern(actions.PatternReadOnly)
	out := view(m)
	require.NotContains(t, out, "Add item")
	require.NotContains(t, out, "✕")
	require.Contains(t, out, "readOnly")
}

func TestPlan_DefaultList(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	p := m.planner

	first := p.Plan(0)
	require.Len(t, first.Actions, 3)
	require.Equal(t, "up", first.Actions[0].Key)
	require.True(t, first.Actions[0].Disabled)
	require.Equal(t, "down", first.Actions[1].Key)
	require.Equal(t, "remove", first.Actions[2].Key)
	require.Empty(t, first.Operations)

	last := p.Plan(2)
	require.False(t, last.Actions[0].Disabled)
	require.True(t, last.Actions[1].Disabled)

	missing := p.Plan(3)
	require.Empty(t, missing.Items)
	require.Empty(t, missing.Controls())
}

func TestPlan_PolicyAndTransforms(t *testing.T) {
	m := newModel(t, contactsSchema, contacts(), func(c *Config) {
		c.Planner.Policy = actions.Policy{EnsureEditAction: true}
		c.Planner.RowTransform = func(items []actions.Item, ac actions.Context) []actions.Item {
			if ac.Index%2 == 0 {
				items = append(items, actions.Custom{Key: "even"})
			}
			return items
		}
		c.Planner.FieldTransform = func(items []actions.Item, ac actions.Context) []actions.Item {
			return append(items, actions.Custom{Key: "field"})
		}
	})

	keys := func(p RowPlan) []string {
		var out []string
		for _, in := range p.Actions {
			out = append(out, in.Key)
		}
		return out
	}
	require.Equal(t, []string{"up", "down", "remove", "even", "field", "edit"}, keys(m.planner.Plan(0)))
	require.Equal(t, []string{"up", "down", "remove", "field", "edit"}, keys(m.planner.Plan(1)))
}

func TestPlan_FormLevelSettings(t *testing.T) {
	m := newModel(t, contactsSchema, contacts(), func(c *Config) {
		c.Planner.FormActions = actions.List(actions.BuiltIn(actions.OpCopy))
		c.Planner.Ordering = slots.Ordering{slots.Edit}
	})
	p := m.planner.Plan(1)
	require.Len(t, p.Actions, 1)
	require.Equal(t, "copy", p.Actions[0].Key)
	require.Len(t, p.Operations, 1)
	require.Equal(t, slots.Edit, p.Operations[0].Slot)

	m.planner.Policy.StripEditAction = true
	require.Empty(t, m.planner.Plan(1).Operations)
}

func TestPlan_DeclaredOperationsNeedSuppressedActions(t *testing.T) {
	const schema = `
type: array
x-actions: [remove]
items:
  type: object
  properties:
    up: {type: void, x-component: ArrayItems.MoveUp, title: Raise}
`
	m := newModel(t, schema, contacts())
	p := m.planner.Plan(1)
	require.Len(t, p.Controls(), 1)
	require.Equal(t, "remove", p.Controls()[0].Key)
	require.Empty(t, p.Operations)
	require.NotContains(t, view(m), "Raise")

	m = newModel(t, strings.Replace(schema, "[remove]", "false", 1), contacts())
	p = m.planner.Plan(1)
	require.Empty(t, p.Actions)
	require.Len(t, p.Operations, 1)
	require.Equal(t, slots.MoveUp, p.Operations[0].Slot)
	require.Equal(t, actions.KindDeclared, p.Operations[0].Kind)
}

func TestPlan_LabelIsNotFocusable(t *testing.T) {
	m := newModel(t, `
type: array
x-actions: false
items:
  type: object
  properties:
    label: {type: void, x-component: ArrayItems.Label, title: Contact}
`, contacts())
	p := m.planner.Plan(0)
	require.Len(t, p.Operations, 1)
	require.Equal(t, actions.KindDeclared, p.Operations[0].Kind)
	require.Empty(t, p.Focusable())
	require.Contains(t, view(m), "Contact")
}

func TestNewRowValue(t *testing.T) {
	root := parse(t, `
type: array
items:
  type: object
  properties:
    name: {type: string, default: New}
    tags: {type: array, items: {type: string}}
    note: {type: string}
`)
	require.Equal(t, map[string]any{"name": "New", "tags": []any{}}, NewRowValue(root.Items))
	require.Nil(t, NewRowValue(nil))
}

func TestUpdate_Navigation(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())

	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, runes("l"))
	row, col := m.Cursor()
	require.Equal(t, 1, row)
	require.Equal(t, 2, col, "stops at the last control")

	m, _ = update(t, m, runes("k"))
	row, col = m.Cursor()
	require.Equal(t, 0, row)
	require.Equal(t, 0, col)

	for range 5 {
		m, _ = update(t, m, runes("j"))
	}
	row, _ = m.Cursor()
	require.Equal(t, 3, row, "addition row is the last stop")
	require.Contains(t, view(m), "Add a row")
}

func TestUpdate_ActivateMoveDown(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())

	m, _ = update(t, m, runes("l"))
	m, cmd := update(t, m, enter)
	require.NotNil(t, cmd)

	msg := cmd()
	require.Equal(t, OperationDoneMsg{Key: "down", Index: 0, Kind: actions.KindBuiltIn}, msg)
	require.Equal(t, []string{"Bob", "Ann", "Cid"}, names(m.store))

	m, _ = update(t, m, msg)
	row, _ := m.Cursor()
	require.Equal(t, 1, row, "focus follows the moved row")
	status, isErr := m.Status()
	require.Equal(t, "down row 1", status)
	require.False(t, isErr)
}

func TestUpdate_DisabledControl(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())

	m, cmd := update(t, m, enter)
	require.Nil(t, cmd)
	status, _ := m.Status()
	require.Equal(t, "up is disabled on row 1", status)
	require.Equal(t, []string{"Ann", "Bob", "Cid"}, names(m.store))
}

func TestUpdate_FailureShowsStatus(t *testing.T) {
	m := newModel(t, `
type: array
x-actions: [{key: explode, icon: "!"}]
items: {type: object}
`, contacts(), func(c *Config) {
		c.Planner.OnCustom = func(_ context.Context, key string, ac actions.Context) error {
			return errors.New("boom on " + key)
		}
	})

	m, cmd := update(t, m, enter)
	require.NotNil(t, cmd)
	msg := cmd()
	failed, ok := msg.(OperationFailedMsg)
	require.True(t, ok)
	require.Equal(t, "explode", failed.Key)

	m, _ = update(t, m, msg)
	status, isErr := m.Status()
	require.Equal(t, "boom on explode", status)
	require.True(t, isErr)
	require.Contains(t, view(m), "boom on explode")

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	status, _ = m.Status()
	require.Empty(t, status)
}

func TestUpdate_StoreErrorIsWrapped(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	m, _ = update(t, m, runes("l"))
	m, _ = update(t, m, runes("l"))
	m, cmd := update(t, m, enter)
	require.NotNil(t, cmd)

	// The row disappears before the command runs.
	require.NoError(t, m.store.Remove(context.Background(), 2))
	require.NoError(t, m.store.Remove(context.Background(), 1))
	require.NoError(t, m.store.Remove(context.Background(), 0))

	failed, ok := cmd().(OperationFailedMsg)
	require.True(t, ok)
	require.ErrorIs(t, failed.Err, rowstore.ErrIndexOutOfRange)
	require.Contains(t, failed.Err.Error(), "remove row 0 of contacts")
}

func TestUpdate_AddRow(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())

	m, cmd := update(t, m, runes("a"))
	require.NotNil(t, cmd)
	msg := cmd()
	require.Equal(t, OperationDoneMsg{Key: "add", Index: 3}, msg)
	require.Equal(t, 4, m.store.Len())
	require.Equal(t, map[string]any{"name": "New"}, m.store.Value(3))

	m, _ = update(t, m, msg)
	row, _ := m.Cursor()
	require.Equal(t, 3, row)
	status, _ := m.Status()
	require.Equal(t, "added row 4", status)
}

func TestUpdate_TracesActivations(t *testing.T) {
	rec := tracetest.NewSpanRecorder()
	tracer := sdktrace.NewTracerProvider(sdktrace.WithSpanProcessor(rec)).Tracer("test")
	m := newModel(t, contactsSchema, contacts(), func(c *Config) { c.Tracer = tracer })

	m, _ = update(t, m, runes("l"))
	m, cmd := update(t, m, enter)
	cmd()
	_, cmd = update(t, m, runes("a"))
	cmd()

	spans := rec.Ended()
	require.Len(t, spans, 2)
	require.Equal(t, "row.down", spans[0].Name())
	require.Equal(t, codes.Ok, spans[0].Status().Code)
	require.Equal(t, "row.add", spans[1].Name())
}

func TestUpdate_AddDisabledWhenReadOnly(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	m.store.SetPattern(actions.PatternReadOnly)
	_, cmd := update(t, m, runes("a"))
	require.Nil(t, cmd)
}

func TestUpdate_StoreEventClampsCursor(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("j"))
	m, _ = update(t, m, runes("j"))

	require.NoError(t, m.store.Remove(context.Background(), 0))
	require.NoError(t, m.store.Remove(context.Background(), 0))

	m, cmd := update(t, m, pubsub.Event[rowstore.Change]{Type: pubsub.DeletedEvent})
	require.NotNil(t, cmd, "keeps listening")
	row, _ := m.Cursor()
	require.Equal(t, 1, row)
}

func TestUpdate_SchemaReload(t *testing.T) {
	next := parse(t, "type: array\nx-actions: false\nitems: {type: object}\n")
	var loadErr error
	m := newModel(t, contactsSchema, contacts(), func(c *Config) {
		c.Load = func() (*formtree.Node, error) { return next, loadErr }
	})

	m, cmd := update(t, m, runes("r"))
	require.NotNil(t, cmd)
	m, _ = update(t, m, cmd())
	require.Same(t, next, m.Root())
	require.NotContains(t, view(m), "✕")

	loadErr = errors.New("bad yaml")
	m, cmd = update(t, m, runes("r"))
	m, _ = update(t, m, cmd())
	require.Same(t, next, m.Root(), "keeps the last good schema")
	status, isErr := m.Status()
	require.Equal(t, "bad yaml", status)
	require.True(t, isErr)
}

func TestWaitForChange(t *testing.T) {
	require.Nil(t, waitForChange(context.Background(), nil))

	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	require.Equal(t, SchemaChangedMsg{}, waitForChange(context.Background(), ch)())

	close(ch)
	require.Nil(t, waitForChange(context.Background(), ch)())
}

func TestMouse_ClickControl(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	id := m.controlZone(1, 1)

	var z *zone.ZoneInfo
	require.Eventually(t, func() bool {
		_ = m.View()
		z = zone.Get(id)
		return z != nil && !z.IsZero()
	}, time.Second, 10*time.Millisecond)

	m, cmd := update(t, m, tea.MouseMsg{
		X:      z.StartX,
		Y:      z.StartY,
		Button: tea.MouseButtonLeft,
		Action: tea.MouseActionRelease,
	})
	require.NotNil(t, cmd)
	require.Equal(t, OperationDoneMsg{Key: "down", Index: 1, Kind: actions.KindBuiltIn}, cmd())
	require.Equal(t, []string{"Ann", "Cid", "Bob"}, names(m.store))
}

func TestProgram_NavigateAndQuit(t *testing.T) {
	m := newModel(t, contactsSchema, contacts())
	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(70, 30))

	teatest.WaitFor(t, tm.Output(), func(bts []byte) bool {
		return strings.Contains(string(bts), "Add item")
	}, teatest.WithDuration(3*time.Second))

	tm.Send(runes("j"))
	tm.Send(runes("q"))
	tm.WaitFinished(t, teatest.WithFinalTimeout(3*time.Second))

	final, ok := tm.FinalModel(t).(Model)
	require.True(t, ok)
	row, _ := final.Cursor()
	require.Equal(t, 1, row)
}
