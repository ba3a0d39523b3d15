package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Colors map[string]string
}

// ApplyTheme applies a complete theme configuration: the default preset,
// then the named preset, then individual overrides. Styles are rebuilt last
// because lipgloss.Style captures colors at creation time.
func ApplyTheme(cfg ThemeConfig) error {
	colors := maps.Clone(DefaultPreset.Colors)

	if cfg.Preset != "" && cfg.Preset != "default" {
		preset, ok := Presets[cfg.Preset]
		if !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
		maps.Copy(colors, preset.Colors)
	}

	for key, value := range cfg.Colors {
		token := ColorToken(key)
		if !isValidToken(token) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
		colors[token] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// colorTargets maps each token to the variables it drives.
func colorTargets() map[ColorToken][]*lipgloss.AdaptiveColor {
	return map[ColorToken][]*lipgloss.AdaptiveColor{
		TokenTextPrimary:        {&TextPrimaryColor},
		TokenTextSecondary:      {&TextSecondaryColor},
		TokenTextMuted:          {&TextMutedColor},
		TokenBorderDefault:      {&BorderDefaultColor},
		TokenBorderFocus:        {&BorderFocusColor},
		TokenStatusSuccess:      {&StatusSuccessColor},
		TokenStatusWarning:      {&StatusWarningColor},
		TokenStatusError:        {&StatusErrorColor},
		TokenSelectionIndicator: {&SelectionIndicatorColor},
		TokenButtonText:         {&ButtonTextColor},
		TokenActionDefault:      {&ActionColor},
		TokenActionFocusBg:      {&ActionFocusBgColor},
		TokenActionActive:       {&ActionActiveColor},
		TokenActionDanger:       {&ActionDangerColor},
		TokenActionDisabled:     {&ActionDisabledColor},
	}
}

func applyColors(colors map[ColorToken]string) {
	targets := colorTargets()
	for token, hex := range colors {
		for _, c := range targets[token] {
			*c = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func rebuildStyles() {
	SelectionIndicatorStyle = lipgloss.NewStyle().Bold(true).Foreground(SelectionIndicatorColor)

	ActionStyle = lipgloss.NewStyle().Foreground(ActionColor)
	ActionFocusedStyle = lipgloss.NewStyle().Foreground(ButtonTextColor).Background(ActionFocusBgColor).Bold(true)
	ActionActiveStyle = lipgloss.NewStyle().Foreground(ActionActiveColor).Bold(true)
	ActionDangerStyle = lipgloss.NewStyle().Foreground(ActionDangerColor)
	ActionDisabledStyle = lipgloss.NewStyle().Foreground(ActionDisabledColor).Strikethrough(true)

	IndexStyle = lipgloss.NewStyle().Foreground(TextSecondaryColor)
	ValueStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	EmptyStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	AdditionStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	TooltipStyle = lipgloss.NewStyle().Foreground(TextMutedColor).Italic(true)
	TitleStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor).Bold(true)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(TextSecondaryColor).
		Padding(0, 1)

	ErrorStyle = lipgloss.NewStyle().
		Foreground(StatusErrorColor).
		Bold(true).
		Padding(0, 1)
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
