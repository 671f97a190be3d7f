package cmd

import (
	"github.com/spf13/cobra"
	"modedit.dev/pkg/modedit/internal/controller"
	"modedit.dev/pkg/modedit/internal/domain"
)

// listCmd represents the list command.
var listCmd = newListCmd()

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list FILE",
		Short: "List every value of the export object",
		Long:  "List the path, shape and source text of every leaf value in the export object of FILE.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return showEntries(cmd, args[0], controller.WithTitle(args[0]))
		},
	}
}

func showEntries(cmd *cobra.Command, path string, options ...controller.DisplayOption) error {
	ctx := cmd.Context()

	_, doc, err := loadDocument(ctx, path)
	if err != nil {
		return err
	}

	return ui.DisplayEntries(ctx, domain.Flatten(doc.Export), options...)
}

func init() {
	rootCmd.AddCommand(listCmd)
}
