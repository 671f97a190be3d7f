package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"modedit.dev/pkg/modedit/internal/adapter"
	"modedit.dev/pkg/modedit/internal/domain"
)

// getCmd represents the get command.
var getCmd = newGetCmd()

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get FILE [PATH]",
		Short: "Print the source text of a value",
		Long: `Print the source text of the value at PATH inside the export object,
exactly as it is written in FILE. Without PATH the whole object is printed.

Paths use dots for keys and brackets for indices or quoted keys:
  output.path   module.rules[0]   resolve["alias"]["@"]`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var pathText string
			if len(args) == 2 {
				pathText = args[1]
			}

			path, err := domain.ParsePath(pathText)
			if err != nil {
				return err
			}

			source, doc, err := loadDocument(ctx, args[0])
			if err != nil {
				return err
			}

			node, err := domain.LookupNode(doc.Export, path)
			if err != nil {
				return err
			}

			text, err := adapter.NewLocalPrinterAdapter(printOptionsFromConfig()).PrintNode(source, node)
			if err != nil {
				return fmt.Errorf("print: %w", err)
			}

			return ui.DisplayValue(ctx, string(text))
		},
	}
}

func init() {
	rootCmd.AddCommand(getCmd)
}
