package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":       DefaultPreset,
	"dracula":       DraculaPreset,
	"nord":          NordPreset,
	"high-contrast": HighContrastPreset,
}

// DefaultPreset matches the Dark values of the AdaptiveColor definitions.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default arrayrows theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#CCCCCC",
		TokenTextSecondary:      "#BBBBBB",
		TokenTextMuted:          "#696969",
		TokenBorderDefault:      "#696969",
		TokenBorderFocus:        "#54A0FF",
		TokenStatusSuccess:      "#73F59F",
		TokenStatusWarning:      "#FECA57",
		TokenStatusError:        "#FF8787",
		TokenSelectionIndicator: "#FFFFFF",
		TokenButtonText:         "#FFFFFF",
		TokenActionDefault:      "#8EC5FC",
		TokenActionFocusBg:      "#3498DB",
		TokenActionActive:       "#F9E2AF",
		TokenActionDanger:       "#FF8787",
		TokenActionDisabled:     "#4A4A4A",
	},
}

var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dracula dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#F8F8F2",
		TokenTextSecondary:      "#BFBFBF",
		TokenTextMuted:          "#6272A4",
		TokenBorderDefault:      "#6272A4",
		TokenBorderFocus:        "#BD93F9",
		TokenStatusSuccess:      "#50FA7B",
		TokenStatusWarning:      "#F1FA8C",
		TokenStatusError:        "#FF5555",
		TokenSelectionIndicator: "#FF79C6",
		TokenButtonText:         "#282A36",
		TokenActionDefault:      "#8BE9FD",
		TokenActionFocusBg:      "#BD93F9",
		TokenActionActive:       "#FFB86C",
		TokenActionDanger:       "#FF5555",
		TokenActionDisabled:     "#44475A",
	},
}

var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#ECEFF4",
		TokenTextSecondary:      "#D8DEE9",
		TokenTextMuted:          "#4C566A",
		TokenBorderDefault:      "#4C566A",
		TokenBorderFocus:        "#88C0D0",
		TokenStatusSuccess:      "#A3BE8C",
		TokenStatusWarning:      "#EBCB8B",
		TokenStatusError:        "#BF616A",
		TokenSelectionIndicator: "#88C0D0",
		TokenButtonText:         "#2E3440",
		TokenActionDefault:      "#81A1C1",
		TokenActionFocusBg:      "#88C0D0",
		TokenActionActive:       "#EBCB8B",
		TokenActionDanger:       "#BF616A",
		TokenActionDisabled:     "#3B4252",
	},
}

var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "Maximum contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary:        "#FFFFFF",
		TokenTextSecondary:      "#FFFFFF",
		TokenTextMuted:          "#AAAAAA",
		TokenBorderDefault:      "#FFFFFF",
		TokenBorderFocus:        "#FFFF00",
		TokenStatusSuccess:      "#00FF00",
		TokenStatusWarning:      "#FFFF00",
		TokenStatusError:        "#FF0000",
		TokenSelectionIndicator: "#FFFF00",
		TokenButtonText:         "#000000",
		TokenActionDefault:      "#00FFFF",
		TokenActionFocusBg:      "#FFFF00",
		TokenActionActive:       "#FF00FF",
		TokenActionDanger:       "#FF0000",
		TokenActionDisabled:     "#555555",
	},
}
