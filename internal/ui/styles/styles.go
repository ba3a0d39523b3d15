// Package styles contains Lip Gloss style definitions.
package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Text hierarchy
	TextPrimaryColor   = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"} // Row values
	TextSecondaryColor = lipgloss.AdaptiveColor{Light: "#555555", Dark: "#BBBBBB"} // Row index, field names
	TextMutedColor     = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, empty state, help

	// Borders
	BorderDefaultColor = lipgloss.AdaptiveColor{Light: "#AAAAAA", Dark: "#696969"} // Unfocused section
	BorderFocusColor   = lipgloss.AdaptiveColor{Light: "#54A0FF", Dark: "#54A0FF"} // Focused section

	// Status
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	// Selection indicator color (">" prefix on the focused row)
	SelectionIndicatorColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	// Action buttons
	ActionColor         = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#8EC5FC"}
	ActionFocusBgColor  = lipgloss.AdaptiveColor{Light: "#3498DB", Dark: "#3498DB"}
	ActionActiveColor   = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#F9E2AF"} // Toggled-on toggles
	ActionDangerColor   = lipgloss.AdaptiveColor{Light: "#922B21", Dark: "#FF8787"} // Remove
	ActionDisabledColor = lipgloss.AdaptiveColor{Light: "#CCCCCC", Dark: "#4A4A4A"}

	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	ActionStyle         = lipgloss.NewStyle().Foreground(ActionColor)
	ActionFocusedStyle  = lipgloss.NewStyle().Foreground(ButtonTextColor).Background(ActionFocusBgColor).Bold(true)
	ActionActiveStyle   = lipgloss.NewStyle().Foreground(ActionActiveColor).Bold(true)
	ActionDangerStyle   = lipgloss.NewStyle().Foreground(ActionDangerColor)
	ActionDisabledStyle = lipgloss.NewStyle().Foreground(ActionDisabledColor).Strikethrough(true)

	ButtonTextColor = lipgloss.AdaptiveColor{Light: "#FFFFFF", Dark: "#FFFFFF"}

	IndexStyle    = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ValueStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	EmptyStyle    = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	AdditionStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	TooltipStyle  = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	TitleStyle    = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)

	// Status bar
	StatusBarStyle = lipgloss.NewStyle().
			Foreground(TextSecondaryColor).
			Padding(0, 1)

	// Error line under the section
	ErrorStyle = lipgloss.NewStyle().
			Foreground(StatusErrorColor).
			Bold(true).
			Padding(0, 1)
)
