package slots

import "github.com/pixpilot/arrayrows/internal/formtree"

// Props is what a slot renderer is given for one row.
// Declared renderers receive the row index and focus only; the other fields
// are filled for built-in renderers.
type Props struct {
	Index    int
	Icon     string
	Tooltip  string
	Title    string
	Disabled bool
	Active   bool
	Focused  bool
}

// Renderer draws one slot.
type Renderer interface {
	Render(p Props) string
}

// RendererFunc adapts a function to Renderer.
type RendererFunc func(p Props) string

// Render calls f(p).
func (f RendererFunc) Render(p Props) string { return f(p) }

// Nothing renders an empty string. It fills slots that have no default.
var Nothing Renderer = RendererFunc(func(Props) string { return "" })

// NodeRenderer draws a schema-declared node. It is supplied by the widget
// layer, the same way the built-in defaults are.
type NodeRenderer interface {
	RenderNode(node *formtree.Node, p Props) string
}

// DeclaredRenderer draws the schema node the author declared for a slot.
// Rendering is deferred to the widget layer's NodeRenderer and happens on
// every Render call; no props are synthesized beyond index and focus.
type DeclaredRenderer struct {
	Slot  Slot
	Node  *formtree.Node
	Nodes NodeRenderer
}

// Render implements Renderer.
func (d DeclaredRenderer) Render(p Props) string {
	if d.Nodes == nil || d.Node == nil {
		return ""
	}
	return d.Nodes.RenderNode(d.Node, Props{Index: p.Index, Focused: p.Focused})
}

// walkRow visits the row schema and its descendants, stopping at nested
// array sections (which scan their own rows). A row schema that is itself an
// array is such a section.
func walkRow(item *formtree.Node, visit func(n *formtree.Node)) {
	formtree.Walk(item, func(n *formtree.Node, _ int) bool {
		if n.IsArray() {
			return false
		}
		visit(n)
		return true
	})
}
