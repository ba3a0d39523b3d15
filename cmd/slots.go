package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/pixpilot/arrayrows/internal/report"
)

var slotsCmd = &cobra.Command{
	Use:   "slots <schema.yaml>",
	Short: "Print the component slots of an array section",
	Long: `Print which renderer fills every component slot of an array section,
whether it was declared in the row schema or is the built-in default, and the
row operations left after filtering and ordering.`,
	Args: cobra.ExactArgs(1),
	RunE: runSlots,
}

func init() {
	rootCmd.AddCommand(slotsCmd)
	addSectionFlags(slotsCmd)
}

func runSlots(cmd *cobra.Command, args []string) error {
	sec, err := openSection(cmd, args[0])
	if err != nil {
		return err
	}
	defer sec.store.Close()

	_, err = fmt.Fprintln(cmd.OutOrStdout(), report.Slots(sec.planner.Registry(), sec.planner.Order()))
	return err
}
