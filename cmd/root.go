package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pixpilot/arrayrows/internal/config"
	"github.com/pixpilot/arrayrows/internal/log"
	"github.com/pixpilot/arrayrows/internal/tracing"
	"github.com/pixpilot/arrayrows/internal/ui/arraysection"
	"github.com/pixpilot/arrayrows/internal/ui/styles"
	"github.com/pixpilot/arrayrows/internal/watcher"
)

func init() {
	// Force lipgloss/termenv to query terminal background color BEFORE
	// any Bubble Tea program starts. This prevents the terminal's OSC 11
	// response from racing with Bubble Tea's input loop.
	//
	// See: https://github.com/charmbracelet/bubbletea/issues/1036
	_ = lipgloss.HasDarkBackground()
}

const defaultConfigPath = ".arrayrows/config.yaml"

var (
	version   = "dev"
	cfgFile   string
	debugFlag bool
	cfg       config.Config

	// "::" keeps dotted color tokens like "action.danger" as single keys.
	v = viper.NewWithOptions(viper.KeyDelimiter("::"))
)

var rootCmd = &cobra.Command{
	Use:   "arrayrows [schema.yaml]",
	Short: "Preview the per-row actions of an array form section",
	Long: `Preview an array section of a form schema in the terminal.

Every row shows the actions its schema and the form-level settings resolve to:
schema-declared controls, built-in operations (up, down, copy, edit, remove),
toggles and custom buttons. Operations run against an in-memory copy of the
rows so their effect can be tried out.`,
	Version: version,
	Args:    cobra.MaximumNArgs(1),
	RunE:    runApp,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "",
		"config file (default: ~/.config/arrayrows/config.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&debugFlag, "debug", "d", false,
		"write debug logs (also ARRAYROWS_DEBUG)")
	addSectionFlags(rootCmd)
	rootCmd.Flags().Bool("no-watch", false, "do not reload the schema when it changes")
}

func initConfig() {
	defaults := config.Defaults()
	v.SetDefault("watch", defaults.Watch)
	v.SetDefault("array::show_edit_action", defaults.Array.ShowEditAction)
	v.SetDefault("array::ensure_edit_action", defaults.Array.EnsureEditAction)
	v.SetDefault("array::strip_edit_action", defaults.Array.StripEditAction)
	v.SetDefault("ui::show_tooltips", defaults.UI.ShowTooltips)
	v.SetDefault("ui::show_status_bar", defaults.UI.ShowStatusBar)
	v.SetDefault("tracing::enabled", defaults.Tracing.Enabled)
	v.SetDefault("tracing::exporter", defaults.Tracing.Exporter)
	v.SetDefault("tracing::file_path", defaults.Tracing.FilePath)
	v.SetDefault("tracing::otlp_endpoint", defaults.Tracing.OTLPEndpoint)
	v.SetDefault("tracing::sample_rate", defaults.Tracing.SampleRate)
	v.SetDefault("tracing::service_name", defaults.Tracing.ServiceName)

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		// Config lookup order:
		// 1. .arrayrows/config.yaml (current directory)
		// 2. ~/.config/arrayrows/config.yaml (user config)
		if _, err := os.Stat(defaultConfigPath); err == nil {
			v.SetConfigFile(defaultConfigPath)
		} else {
			home, _ := os.UserHomeDir()
			v.AddConfigPath(filepath.Join(home, ".config", "arrayrows"))
			v.SetConfigName("config")
			v.SetConfigType("yaml")
		}
	}

	if err := v.ReadInConfig(); err != nil {
		// No config file found anywhere - create default at .arrayrows/config.yaml
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			if writeErr := config.WriteDefaultConfig(defaultConfigPath); writeErr == nil {
				v.SetConfigFile(defaultConfigPath)
				_ = v.ReadInConfig()
			}
		}
	}

	_ = v.Unmarshal(&cfg)
}

// configFilePath is where settings changed from the CLI are saved.
func configFilePath() string {
	if p := v.ConfigFileUsed(); p != "" {
		return p
	}
	return defaultConfigPath
}

// initLogging enables the debug log when requested. The returned cleanup is
// never nil.
func initLogging(prefix string) (func(), error) {
	if os.Getenv("ARRAYROWS_DEBUG") == "" && !debugFlag {
		return func() {}, nil
	}
	logPath := os.Getenv("ARRAYROWS_LOG")
	if logPath == "" {
		logPath = "debug.log"
	}
	cleanup, err := log.InitWithTeaLog(logPath, prefix)
	if err != nil {
		return nil, fmt.Errorf("initializing logging: %w", err)
	}
	log.Info(log.CatConfig, "arrayrows starting", "debug", true, "logPath", logPath)
	return cleanup, nil
}

func runApp(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if err := styles.ApplyTheme(styles.ThemeConfig{
		Preset: cfg.Theme.Preset,
		Colors: cfg.Theme.FlattenedColors(),
	}); err != nil {
		return fmt.Errorf("applying theme: %w", err)
	}

	cleanup, err := initLogging("arrayrows")
	if err != nil {
		return err
	}
	defer cleanup()

	schemaPath, err := schemaArg(args)
	if err != nil {
		return err
	}
	sec, err := openSection(cmd, schemaPath)
	if err != nil {
		return err
	}
	defer sec.store.Close()

	traces, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("initializing tracing: %w", err)
	}
	defer func() {
		if err := traces.Shutdown(context.Background()); err != nil {
			log.ErrorErr(log.CatConfig, "trace shutdown failed", err)
		}
	}()

	var changes <-chan struct{}
	noWatch, _ := cmd.Flags().GetBool("no-watch")
	if cfg.Watch && !noWatch {
		w, err := watcher.New(watcher.DefaultConfig(schemaPath))
		if err != nil {
			return fmt.Errorf("creating watcher: %w", err)
		}
		ch, err := w.Start()
		if err != nil {
			log.ErrorErr(log.CatWatcher, "schema watch disabled", err, "path", schemaPath)
		} else {
			changes = ch
		}
		defer func() { _ = w.Stop() }()
	}

	zone.NewGlobal()
	model := arraysection.New(arraysection.Config{
		Planner:       sec.planner,
		Store:         sec.store,
		Load:          sec.reload,
		Changes:       changes,
		Tracer:        traces.Tracer(),
		ShowTooltips:  cfg.UI.ShowTooltips,
		ShowStatusBar: cfg.UI.ShowStatusBar,
		Width:         cfg.UI.Width,
	})
	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return nil
}

// schemaArg returns the schema path from the arguments or the config file.
func schemaArg(args []string) (string, error) {
	if len(args) > 0 {
		return args[0], nil
	}
	if cfg.Schema != "" {
		return cfg.Schema, nil
	}
	return "", fmt.Errorf("no schema given: pass a schema file or set schema in %s", configFilePath())
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

// SetVersion sets the version string (called from main with ldflags)
func SetVersion(ver string) {
	version = ver
	rootCmd.Version = ver
}
