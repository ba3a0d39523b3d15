package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// These are the keys users can override under theme.colors in their config.
const (
	TokenTextPrimary   ColorToken = "text.primary"
	TokenTextSecondary ColorToken = "text.secondary"
	TokenTextMuted     ColorToken = "text.muted"

	TokenBorderDefault ColorToken = "border.default"
	TokenBorderFocus   ColorToken = "border.focus"

	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	TokenSelectionIndicator ColorToken = "selection.indicator"

	TokenButtonText     ColorToken = "button.text"
	TokenActionDefault  ColorToken = "action.default"
	TokenActionFocusBg  ColorToken = "action.focus"
	TokenActionActive   ColorToken = "action.active"
	TokenActionDanger   ColorToken = "action.danger"
	TokenActionDisabled ColorToken = "action.disabled"
)

// AllTokens returns every themeable token in display order.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextSecondary,
		TokenTextMuted,
		TokenBorderDefault,
		TokenBorderFocus,
		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,
		TokenSelectionIndicator,
		TokenButtonText,
		TokenActionDefault,
		TokenActionFocusBg,
		TokenActionActive,
		TokenActionDanger,
		TokenActionDisabled,
	}
}
