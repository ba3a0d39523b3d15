// Package config provides configuration types and defaults for arrayrows.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/pixpilot/arrayrows/internal/actions"
	"github.com/pixpilot/arrayrows/internal/log"
	"github.com/pixpilot/arrayrows/internal/slots"
	"github.com/pixpilot/arrayrows/internal/tracing"
)

// Config holds all configuration options for arrayrows.
type Config struct {
	Schema string      `mapstructure:"schema"` // default schema file for the preview
	Watch  bool        `mapstructure:"watch"`  // reload the schema when it changes
	Array  ArrayConfig `mapstructure:"array"`
	UI     UIConfig    `mapstructure:"ui"`
	Theme  ThemeConfig `mapstructure:"theme"`

	Tracing tracing.Config `mapstructure:"tracing"`
}

// ArrayConfig holds the form-level action settings applied to every array
// section that has no x-actions of its own.
type ArrayConfig struct {
	// Actions is unset (nil), false, or a list of action entries.
	Actions any `mapstructure:"actions"`

	// Operations orders the row operations (up, down, copy, edit, remove,
	// label). Nil keeps only the controls the row schema declares.
	Operations []string `mapstructure:"operations"`

	ShowEditAction   bool `mapstructure:"show_edit_action"`
	EnsureEditAction bool `mapstructure:"ensure_edit_action"`
	StripEditAction  bool `mapstructure:"strip_edit_action"`
}

// UIConfig holds user interface configuration options.
type UIConfig struct {
	ShowTooltips  bool `mapstructure:"show_tooltips"`
	ShowStatusBar bool `mapstructure:"show_status_bar"`
	Width         int  `mapstructure:"width"` // section width; 0 follows the terminal
}

// ThemeConfig holds all theme customization options.
type ThemeConfig struct {
	// Preset loads a built-in theme as the base (optional).
	// Valid values: "default", "dracula", "nord", "high-contrast"
	Preset string `mapstructure:"preset"`

	// Colors overrides individual color tokens, nested or in dot notation:
	//   colors:
	//     action:
	//       danger: "#FF0000"
	// or
	//   colors:
	//     "action.danger": "#FF0000"
	Colors map[string]any `mapstructure:"colors"`
}

// FlattenedColors returns the Colors map flattened to dot-notation keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	result := make(map[string]string)
	flattenColors("", t.Colors, result)
	return result
}

func flattenColors(prefix string, m map[string]any, result map[string]string) {
	for k, v := range m {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}

		switch val := v.(type) {
		case string:
			result[key] = val
		case map[string]any:
			flattenColors(key, val, result)
		case map[any]any:
			converted := make(map[string]any)
			for mk, mv := range val {
				if strKey, ok := mk.(string); ok {
					converted[strKey] = mv
				}
			}
			flattenColors(key, converted, result)
		}
	}
}

// ErrInvalidActions is returned when array.actions is neither a list nor a
// boolean.
var ErrInvalidActions = errors.New("array.actions must be a list or false")

// FormActions converts array.actions into the form-level action setting.
// true is treated like unset.
func (a ArrayConfig) FormActions() actions.ActionList {
	switch v := a.Actions.(type) {
	case nil:
		return actions.Unset()
	case bool:
		if v {
			return actions.Unset()
		}
		return actions.Suppressed()
	case []any:
		return actions.List(actions.ParseItems(v)...)
	case []string:
		raw := make([]any, len(v))
		for i, s := range v {
			raw[i] = s
		}
		return actions.List(actions.ParseItems(raw)...)
	}
	log.Warn(log.CatConfig, "ignoring array.actions", "type", fmt.Sprintf("%T", a.Actions))
	return actions.Unset()
}

// Ordering converts array.operations into a slot ordering. Unknown names are
// dropped and logged.
func (a ArrayConfig) Ordering() slots.Ordering {
	if a.Operations == nil {
		return nil
	}
	raw := make([]any, len(a.Operations))
	for i, s := range a.Operations {
		raw[i] = s
	}
	order, skipped := slots.ParseOrdering(raw)
	if len(skipped) > 0 {
		log.Warn(log.CatConfig, "ignoring unknown operations", "names", skipped)
	}
	return order
}

// Policy returns the host's edit-action flags.
func (a ArrayConfig) Policy() actions.Policy {
	return actions.Policy{
		ShowEditAction:   a.ShowEditAction,
		EnsureEditAction: a.EnsureEditAction,
		StripEditAction:  a.StripEditAction,
	}
}

// ValidateArray checks the shape of the array section.
func ValidateArray(a ArrayConfig) error {
	switch a.Actions.(type) {
	case nil, bool, []any, []string:
	default:
		return fmt.Errorf("%w, got %T", ErrInvalidActions, a.Actions)
	}
	_, skipped := slots.ParseOrdering(toAny(a.Operations))
	if len(skipped) > 0 {
		return fmt.Errorf("array.operations: unknown operation %q", skipped[0])
	}
	return nil
}

// ValidateUI checks the ui section.
func ValidateUI(ui UIConfig) error {
	if ui.Width < 0 {
		return fmt.Errorf("ui.width must not be negative, got %d", ui.Width)
	}
	return nil
}

// Validate checks the whole configuration.
func (c Config) Validate() error {
	if err := ValidateArray(c.Array); err != nil {
		return err
	}
	return ValidateUI(c.UI)
}

func toAny(ss []string) []any {
	out := make([]any, len(ss))
	for i, s := range ss {
		out[i] = s
	}
	return out
}

// Defaults returns a Config with sensible default values.
func Defaults() Config {
	return Config{
		Watch: true,
		Array: ArrayConfig{
			ShowEditAction: false,
		},
		UI: UIConfig{
			ShowTooltips:  true,
			ShowStatusBar: true,
		},
		Tracing: tracing.DefaultConfig(),
	}
}

// DefaultConfigTemplate returns the default config as a YAML string with comments.
func DefaultConfigTemplate() string {
	return `# arrayrows configuration

# Schema file opened when none is given on the command line
# schema: ./contacts.schema.yaml

# Reload the preview when the schema file changes
watch: true

# Form-level array settings. Array sections with their own x-actions ignore
# the actions list below.
array:
  # Actions shown on every row: a list, or false to hide them all.
  # Leave unset to use the built-in up, down and remove.
  # actions:
  #   - up
  #   - down
  #   - copy
  #   - { type: remove, icon: "🗑", tooltip: "Delete row" }
  #   - { type: toggle, key: pinned, icon: "☆", active_icon: "★" }
  #   - { key: details, icon: "i", tooltip: "Show details" }

  # Order of the row operations. Operations listed here are shown even when
  # the row schema declares no control for them.
  # operations: [up, down, copy, remove]

  show_edit_action: false    # Add edit to the built-in action list
  ensure_edit_action: false  # Append edit when a row's list has none
  strip_edit_action: false   # Remove every edit action (wins over ensure)

# UI settings
ui:
  show_tooltips: true     # Show the focused action's tooltip
  show_status_bar: true   # Show status bar at bottom
  # width: 80             # Section width (default: terminal width)

# Theme configuration
theme:
  # Use a preset:
  # preset: nord
  #
  # Available presets:
  #   default        - Default arrayrows theme
  #   dracula        - Dark theme with vibrant colors
  #   nord           - Arctic, north-bluish palette
  #   high-contrast  - High contrast for accessibility
  #
  # Override specific colors (works with or without preset):
  # colors:
  #   action.danger: "#FF0000"
  #   border.focus: "#54A0FF"

# Record every row operation as an OpenTelemetry span
tracing:
  enabled: false
  exporter: file          # file, stdout, otlp or none
  file_path: traces.jsonl
  # otlp_endpoint: localhost:4317
`
}

// WriteDefaultConfig creates a config file at the given path with default settings and comments.
// Creates the parent directory if it doesn't exist.
func WriteDefaultConfig(configPath string) error {
	log.Debug(log.CatConfig, "Writing default config", "path", configPath)

	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to create config directory", err, "dir", dir)
		return fmt.Errorf("creating config directory: %w", err)
	}

	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		log.ErrorErr(log.CatConfig, "Failed to write config file", err, "path", configPath)
		return fmt.Errorf("writing config file: %w", err)
	}

	log.Info(log.CatConfig, "Created default config", "path", configPath)
	return nil
}
