package cmd

import (
	"github.com/spf13/cobra"
	"modedit.dev/pkg/modedit/internal/controller"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view FILE",
		Short: "Browse the export object interactively",
		Long:  "Show the listing of FILE in a scrollable terminal view. Falls back to plain output when stdout is not a terminal.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEntries(cmd, args[0], controller.WithTitle(args[0]), controller.WithPager())
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
