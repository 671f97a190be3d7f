package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	m "modedit.dev/pkg/modedit/internal/model"
)

const (
	pathFlagName  = "path"
	valueFlagName = "value"
)

// setCmd, deleteCmd, appendCmd and mergeCmd edit a single path.
var setCmd = newSetCmd()
var deleteCmd = newDeleteCmd()
var appendCmd = newAppendCmd()
var mergeCmd = newMergeCmd()

func newSetCmd() *cobra.Command {
	return newEditCmd(m.OpSet, "set FILE...", "Set the value at a path",
		`Set the value at --path to --value (YAML or JSON). Missing intermediate
keys are created as objects; an index equal to the array length appends.

`+filePatternsHelp)
}

func newDeleteCmd() *cobra.Command {
	return newEditCmd(m.OpDelete, "delete FILE...", "Delete the key or element at a path",
		`Remove the key or array element at --path.

`+filePatternsHelp)
}

func newAppendCmd() *cobra.Command {
	return newEditCmd(m.OpAppend, "append FILE...", "Append a value to an array",
		`Append --value to the array at --path. A missing key is created as a
one-element array.

`+filePatternsHelp)
}

func newMergeCmd() *cobra.Command {
	return newEditCmd(m.OpMerge, "merge FILE...", "Merge an object into the object at a path",
		`Copy every key of the object --value into the object at --path, merging
nested objects. Without --path the export object itself is merged into.

`+filePatternsHelp)
}

func newEditCmd(op m.EditOp, use, short, long string) *cobra.Command {
	var pathFlag, valueFlag string

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Long:  long,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			edit := m.Edit{Op: op, Path: pathFlag}

			if op != m.OpDelete {
				if !cmd.Flags().Changed(valueFlagName) {
					return fmt.Errorf("--%s is required for %s", valueFlagName, op)
				}

				value, err := scriptAdapter.ParseValue(valueFlag)
				if err != nil {
					return fmt.Errorf("parse --%s: %w", valueFlagName, err)
				}

				edit.Value = value
			}

			return runScript(cmd.Context(), args, m.EditScript{Edits: []m.Edit{edit}})
		},
	}

	cmd.Flags().StringVar(&pathFlag, pathFlagName, "", "key path inside the export object, e.g. output.path or rules[0]")

	if op == m.OpDelete {
		_ = cmd.MarkFlagRequired(pathFlagName)
	} else {
		cmd.Flags().StringVar(&valueFlag, valueFlagName, "", "value as YAML or JSON, e.g. 42, \"text\", [1, 2] or {a: 1}")
	}

	return cmd
}

func init() {
	rootCmd.AddCommand(setCmd, deleteCmd, appendCmd, mergeCmd)
}
