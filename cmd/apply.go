package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	m "modedit.dev/pkg/modedit/internal/model"
)

const scriptFlagName = "script"

// applyCmd represents the apply command.
var applyCmd = newApplyCmd()

func newApplyCmd() *cobra.Command {
	var scriptFlag string

	cmd := &cobra.Command{
		Use:   "apply FILE...",
		Short: "Apply an edit script",
		Long: `Apply the edits listed in a YAML script, in order, to every file.
Nothing is written unless every file can be edited.

  - op: set
    path: output.path
    value: dist
  - op: append
    path: plugins
    value: {name: banner}

` + filePatternsHelp,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			script, err := scriptAdapter.LoadScript(ctx, m.Path(scriptFlag))
			if err != nil {
				return fmt.Errorf("load script: %w", err)
			}

			return runScript(ctx, args, script)
		},
	}

	cmd.Flags().StringVarP(&scriptFlag, scriptFlagName, "s", "", "path to the YAML edit script")
	_ = cmd.MarkFlagRequired(scriptFlagName)

	return cmd
}

func init() {
	rootCmd.AddCommand(applyCmd)
}
