// Package arraysection is the Bubble Tea host of one array section: it asks
// the planner for every row's controls, renders them, and dispatches the
// chosen instruction as a command.
package arraysection

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"go.opentelemetry.io/otel/trace"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/formtree"
	"github.com/pixpilot/arrayrows/internal/keys"
	"github.com/pixpilot/arrayrows/internal/log"
	"github.com/pixpilot/arrayrows/internal/pubsub"
	"github.com/pixpilot/arrayrows/internal/rowstore"
	"github.com/pixpilot/arrayrows/internal/tracing"
)

const addKey = "add"

// OperationDoneMsg reports a control that ran without error.
type OperationDoneMsg struct {
	Key   string
	Index int
	Kind  actions.Kind
}

// OperationFailedMsg reports a control whose activation returned an error.
type OperationFailedMsg struct {
	Key   string
	Index int
	Err   error
}

// SchemaChangedMsg is sent when the schema file changed on disk.
type SchemaChangedMsg struct{}

// SchemaLoadedMsg carries a freshly loaded schema.
type SchemaLoadedMsg struct {
	Root *formtree.Node
}

// SchemaFailedMsg reports a schema that could not be reloaded.
type SchemaFailedMsg struct {
	Err error
}

// Config configures a Model.
type Config struct {
	Title   string
	Planner Planner
	Store   *rowstore.Store

	// Load re-reads the schema. Nil disables reloading.
	Load func() (*formtree.Node, error)

	// Changes signals schema file changes, typically from a watcher.
	Changes <-chan struct{}

	// Tracer records a span per activated control. Nil disables tracing.
	Tracer trace.Tracer

	ShowTooltips  bool
	ShowStatusBar bool
	Width         int
}

// Model is the array section preview.
type Model struct {
	planner Planner
	store   *rowstore.Store
	load    func() (*formtree.Node, error)
	changes <-chan struct{}
	tracer  trace.Tracer

	keys     keys.KeyMap
	help     help.Model
	ctx      context.Context
	cancel   context.CancelFunc
	listener *pubsub.ContinuousListener[rowstore.Change]
	zones    string

	title         string
	showTooltips  bool
	showStatusBar bool
	fixedWidth    int
	width         int

	row, col  int
	status    string
	statusErr bool
}

// New creates a model for cfg.
func New(cfg Config) Model {
	ctx, cancel := context.WithCancel(context.Background())
	cfg.Planner.Array = cfg.Store
	return Model{
		planner:       cfg.Planner,
		store:         cfg.Store,
		load:          cfg.Load,
		changes:       cfg.Changes,
		tracer:        cfg.Tracer,
		keys:          keys.DefaultKeyMap(),
		help:          help.New(),
		ctx:           ctx,
		cancel:        cancel,
		listener:      pubsub.NewContinuousListener(ctx, cfg.Store.Broker()),
		zones:         zone.NewPrefix(),
		title:         cfg.Title,
		showTooltips:  cfg.ShowTooltips,
		showStatusBar: cfg.ShowStatusBar,
		fixedWidth:    cfg.Width,
	}
}

// Init starts listening for row changes and schema changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.listener.Listen(), waitForChange(m.ctx, m.changes))
}

// Cursor returns the focused row and control.
func (m Model) Cursor() (row, col int) {
	return m.row, m.col
}

// Status returns the status line text and whether it reports an error.
func (m Model) Status() (string, bool) {
	return m.status, m.statusErr
}

// Root returns the schema currently rendered.
func (m Model) Root() *formtree.Node {
	return m.planner.Root
}

// Update handles messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		if msg.Button == tea.MouseButtonLeft && msg.Action == tea.MouseActionRelease {
			return m.handleClick(msg)
		}
		return m, nil

	case pubsub.Event[rowstore.Change]:
		m.clampCursor()
		return m, m.listener.Listen()

	case OperationDoneMsg:
		m.followCursor(msg)
		m.setStatus(doneText(msg), false)
		return m, nil

	case OperationFailedMsg:
		log.ErrorErr(log.CatUI, "row control failed", msg.Err, "key", msg.Key, "index", msg.Index)
		m.setStatus(msg.Err.Error(), true)
		return m, nil

	case SchemaChangedMsg:
		return m, tea.Batch(m.loadCmd(), waitForChange(m.ctx, m.changes))

	case SchemaLoadedMsg:
		if m.planner.Root != nil {
			m.planner.Registries.Forget(m.planner.Root)
		}
		m.planner.Root = msg.Root
		log.Info(log.CatSchema, "schema reloaded", "address", m.store.Address())
		m.clampCursor()
		m.setStatus("schema reloaded", false)
		return m, nil

	case SchemaFailedMsg:
		log.ErrorErr(log.CatSchema, "schema reload failed", msg.Err)
		m.setStatus(msg.Err.Error(), true)
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.cancel()
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Close):
		m.setStatus("", false)
	case key.Matches(msg, m.keys.Up):
		if m.row > 0 {
			m.row--
			m.col = 0
		}
	case key.Matches(msg, m.keys.Down):
		if m.row < m.lastRow() {
			m.row++
			m.col = 0
		}
	case key.Matches(msg, m.keys.Left):
		if m.col > 0 {
			m.col--
		}
	case key.Matches(msg, m.keys.Right):
		if m.col < len(m.focusable())-1 {
			m.col++
		}
	case key.Matches(msg, m.keys.Add):
		return m, m.addCmd()
	case key.Matches(msg, m.keys.Activate):
		if m.onAddition() {
			return m, m.addCmd()
		}
		ctls := m.focusable()
		if m.col >= len(ctls) {
			return m, nil
		}
		return m.activate(ctls[m.col])
	case key.Matches(msg, m.keys.Reload):
		return m, m.loadCmd()
	}
	return m, nil
}

func (m Model) handleClick(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.canAdd() {
		if z := zone.Get(m.additionZone()); z != nil && z.InBounds(msg) {
			m.row = m.store.Len()
			m.col = 0
			return m, m.addCmd()
		}
	}
	for i := range m.store.Len() {
		for j, in := range m.planner.Plan(i).Focusable() {
			if z := zone.Get(m.controlZone(i, j)); z != nil && z.InBounds(msg) {
				m.row, m.col = i, j
				return m.activate(in)
			}
		}
	}
	return m, nil
}

func (m Model) activate(in actions.Instruction) (tea.Model, tea.Cmd) {
	if in.Disabled {
		m.setStatus(fmt.Sprintf("%s is disabled on row %d", in.Key, in.Index+1), false)
		return m, nil
	}
	ctx := m.ctx
	run := tracing.Traced(m.tracer, m.operation(in.Key, in.Kind, in.Index), in.Activate)
	return m, func() tea.Msg {
		if err := run(ctx); err != nil {
			return OperationFailedMsg{Key: in.Key, Index: in.Index, Err: err}
		}
		return OperationDoneMsg{Key: in.Key, Index: in.Index, Kind: in.Kind}
	}
}

func (m Model) addCmd() tea.Cmd {
	if !m.canAdd() {
		return nil
	}
	ctx := m.ctx
	store := m.store
	value := NewRowValue(m.planner.Root.Items)
	push := tracing.Traced(m.tracer, m.operation(addKey, actions.KindNone, store.Len()), func(ctx context.Context) error {
		return store.Push(ctx, value)
	})
	return func() tea.Msg {
		if err := push(ctx); err != nil {
			return OperationFailedMsg{Key: addKey, Index: store.Len(), Err: err}
		}
		return OperationDoneMsg{Key: addKey, Index: store.Len() - 1}
	}
}

func (m Model) operation(key string, kind actions.Kind, index int) tracing.Operation {
	return tracing.Operation{
		Key:     key,
		Kind:    kind.String(),
		Index:   index,
		Address: m.store.Address(),
		Count:   m.store.Len(),
	}
}

func (m Model) loadCmd() tea.Cmd {
	if m.load == nil {
		return nil
	}
	load := m.load
	return func() tea.Msg {
		root, err := load()
		if err != nil {
			return SchemaFailedMsg{Err: err}
		}
		return SchemaLoadedMsg{Root: root}
	}
}

func waitForChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return SchemaChangedMsg{}
		}
	}
}

func (m *Model) setStatus(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}

func (m Model) canAdd() bool {
	return m.planner.Root != nil && m.store.Pattern() == actions.PatternEditable
}

// lastRow is the last focusable row; the addition control sits one past the
// last record.
func (m Model) lastRow() int {
	n := m.store.Len()
	if m.canAdd() {
		return n
	}
	return max(n-1, 0)
}

func (m Model) onAddition() bool {
	return m.canAdd() && m.row == m.store.Len()
}

func (m Model) focusable() []actions.Instruction {
	if m.row >= m.store.Len() {
		return nil
	}
	return m.planner.Plan(m.row).Focusable()
}

func (m *Model) clampCursor() {
	m.row = min(max(m.row, 0), m.lastRow())
	m.col = min(m.col, max(len(m.focusable())-1, 0))
}

// followCursor keeps focus on the row a move, copy or add produced.
func (m *Model) followCursor(msg OperationDoneMsg) {
	switch msg.Key {
	case string(actions.OpUp):
		m.row = msg.Index - 1
	case string(actions.OpDown), string(actions.OpCopy):
		m.row = msg.Index + 1
	case addKey:
		m.row = msg.Index
		m.col = 0
	}
	m.clampCursor()
}

func doneText(msg OperationDoneMsg) string {
	switch {
	case msg.Key == addKey:
		return fmt.Sprintf("added row %d", msg.Index+1)
	case msg.Kind == actions.KindCustom || msg.Kind == actions.KindToggle:
		return fmt.Sprintf("%s on row %d", msg.Key, msg.Index+1)
	}
	return fmt.Sprintf("%s row %d", msg.Key, msg.Index+1)
}
