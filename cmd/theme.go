package cmd

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pixpilot/arrayrows/internal/config"
	"github.com/pixpilot/arrayrows/internal/ui/styles"
)

var themeCmd = &cobra.Command{
	Use:   "theme [preset]",
	Short: "List theme presets or save one to the config file",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTheme,
}

func init() {
	rootCmd.AddCommand(themeCmd)
}

func runTheme(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	if len(args) == 0 {
		names := make([]string, 0, len(styles.Presets))
		for name := range styles.Presets {
			names = append(names, name)
		}
		slices.Sort(names)
		for _, name := range names {
			fmt.Fprintf(out, "%-14s %s\n", name, styles.Presets[name].Description)
		}
		return nil
	}

	preset := strings.TrimSpace(args[0])
	if _, ok := styles.Presets[preset]; !ok {
		return fmt.Errorf("unknown theme preset: %s", preset)
	}
	path := configFilePath()
	if err := config.SavePreset(path, preset); err != nil {
		return fmt.Errorf("saving theme: %w", err)
	}
	fmt.Fprintf(out, "theme %s saved to %s\n", preset, path)
	return nil
}
