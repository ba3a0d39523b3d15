package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixpilot/arrayrows/internal/report"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <schema.yaml>",
	Short: "Print the controls every row of an array section resolves to",
	Long: `Print, for every row of an array section, the controls it resolves to
with the current configuration.

Examples:
  # Resolve the first array section of a schema
  arrayrows resolve contacts.schema.yaml

  # A nested section, seeded from a rows file, as markdown
  arrayrows resolve form.yaml --array team.members --rows members.yaml --format markdown

  # What a read-only form shows
  arrayrows resolve contacts.schema.yaml --pattern readOnly`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	addSectionFlags(resolveCmd)
	resolveCmd.Flags().StringP("format", "f", "text", "output format: text or markdown")
	resolveCmd.Flags().Int("width", 100, "word wrap width for markdown output")
}

func runResolve(cmd *cobra.Command, args []string) error {
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	format, _ := cmd.Flags().GetString("format")
	width, _ := cmd.Flags().GetInt("width")

	sec, err := openSection(cmd, args[0])
	if err != nil {
		return err
	}
	defer sec.store.Close()

	rows := report.Build(sec.planner)
	out := cmd.OutOrStdout()

	switch format {
	case "text":
		_, err = fmt.Fprintln(out, report.Text(sec.store.Address(), rows))
		return err
	case "markdown", "md":
		r, err := report.NewRenderer(width, "")
		if err != nil {
			return fmt.Errorf("creating markdown renderer: %w", err)
		}
		rendered, err := r.Render(report.Markdown(sec.store.Address(), rows))
		if err != nil {
			return fmt.Errorf("rendering markdown: %w", err)
		}
		_, err = fmt.Fprint(out, rendered)
		return err
	}
	return fmt.Errorf("unknown format %q: want text or markdown", format)
}
