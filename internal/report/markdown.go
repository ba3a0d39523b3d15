package report

import (
	"github.com/charmbracelet/glamour"
)

// noMarginStyle removes glamour's document margins.
const noMarginStyle = `{
	"document": {
		"margin": 0,
		"block_prefix": "",
		"block_suffix": ""
	}
}`

// Renderer renders markdown reports for the terminal.
type Renderer struct {
	renderer *glamour.TermRenderer
	width    int
}

// NewRenderer creates a renderer wrapping at width. style is "dark",
// "light" or "notty"; empty means "dark". A fixed style avoids the
// terminal background query WithAutoStyle performs.
func NewRenderer(width int, style string) (*Renderer, error) {
	if style == "" {
		style = "dark"
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithStylesFromJSONBytes([]byte(noMarginStyle)),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return nil, err
	}
	return &Renderer{renderer: r, width: width}, nil
}

// Width returns the word wrap width.
func (r *Renderer) Width() int {
	return r.width
}

// Render transforms markdown into styled terminal output.
func (r *Renderer) Render(markdown string) (string, error) {
	return r.renderer.Render(markdown)
}
