// Package cmd provides the root command and CLI setup for modedit.
package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"modedit.dev/pkg/modedit/internal/adapter"
	"modedit.dev/pkg/modedit/internal/controller"
	"modedit.dev/pkg/modedit/internal/domain"
	m "modedit.dev/pkg/modedit/internal/model"
)

var fsAdapter adapter.SourceFSAdapter
var parserAdapter adapter.JSParserAdapter
var scriptAdapter adapter.EditScriptAdapter
var ui controller.UI

var dryRunFlag bool
var diffFlag bool
var runParallelFlag int
var verboseFlag bool

func init() {
	configureRootFlags(rootCmd)

	// Initialize shared dependencies.
	ui = controller.NewUI(rootCmd, controller.IsTTY(os.Stdout))
	fsAdapter = adapter.NewLocalSourceFSAdapter()
	parserAdapter = adapter.NewTreeSitterJSParserAdapter()
	scriptAdapter = adapter.NewYAMLEditScriptAdapter()
}

const filePatternsHelp = `FILE arguments may be glob patterns:
  - webpack.config.js     a single file
  - configs/*.config.js   every matching file`

const rootLongDescription = `Modedit edits the object assigned to module.exports in JavaScript
configuration files. Only the values you change are rewritten: comments,
quoting and layout of everything else stay exactly as they were.

` + filePatternsHelp

// rootCmd represents the base command when called without any subcommands.
var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:           "modedit",
		Short:         "Edit module.exports objects without reformatting",
		Long:          rootLongDescription,
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			configureLogger(viper.GetString(logFilenameKey), viper.GetBool(logVerboseKey))
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			return cmd.Help()
		},
	}
}

func configureRootFlags(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&dryRunFlag, dryRunFlagName, viper.GetBool(dryRunConfigKey), "compute edits without writing files")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(dryRunFlagName), dryRunConfigKey)

	cmd.PersistentFlags().BoolVar(&diffFlag, diffFlagName, viper.GetBool(diffConfigKey), "show a unified diff of every changed file")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(diffFlagName), diffConfigKey)

	cmd.PersistentFlags().IntVarP(&runParallelFlag, runParallelFlagName, "p", viper.GetInt(runParallelConfigKey), "number of files edited in parallel")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(runParallelFlagName), runParallelConfigKey)

	cmd.PersistentFlags().BoolVarP(&verboseFlag, verboseFlagName, "v", viper.GetBool(logVerboseKey), "write debug logs")
	bindFlagToConfig(cmd.PersistentFlags().Lookup(verboseFlagName), logVerboseKey)
}

// bindFlagToConfig wires a Cobra flag to a Viper key so config/env values feed the flag.
func bindFlagToConfig(flag *pflag.Flag, key string) {
	if flag == nil {
		cobra.CheckErr(fmt.Errorf("flag for config key %q not found", key))
		return
	}

	cobra.CheckErr(viper.BindPFlag(key, flag))
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func newUpdater() domain.Updater {
	return domain.NewUpdater(parserAdapter, adapter.NewLocalPrinterAdapter(printOptionsFromConfig()))
}

func newEditor() domain.Editor {
	return domain.NewEditor(fsAdapter, newUpdater())
}

func applyOptionsFromConfig() domain.ApplyOptions {
	return domain.ApplyOptions{
		DryRun:   viper.GetBool(dryRunConfigKey),
		Diff:     viper.GetBool(diffConfigKey),
		Parallel: viper.GetInt(runParallelConfigKey),
	}
}

// runScript expands patterns and applies script to every matching file.
func runScript(ctx context.Context, patterns []string, script m.EditScript) error {
	files, err := fsAdapter.Expand(ctx, patterns...)
	if err != nil {
		return fmt.Errorf("expand files: %w", err)
	}

	if len(files) == 0 {
		return fmt.Errorf("no files match %v", patterns)
	}

	reports, err := newEditor().Apply(ctx, files, script, applyOptionsFromConfig())

	return ui.DisplayReports(ctx, reports, err)
}

// loadDocument reads one file and locates its export object.
func loadDocument(ctx context.Context, path string) ([]byte, *domain.Document, error) {
	source, err := fsAdapter.ReadFile(ctx, m.Path(path))
	if err != nil {
		return nil, nil, err
	}

	doc, err := newUpdater().Load(ctx, source)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return source, doc, nil
}
