package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"
)

const parserModule = "github.com/smacker/go-tree-sitter"

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the JavaScript parser version used to build this tool.",
		Run: func(cmd *cobra.Command, _ []string) {
			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("version: unknown")
				return
			}

			cmd.Println("tool version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)

			if parser := parserVersion(info); parser != "" {
				cmd.Println("parser version\t", parser)
			}
		},
	}
}

// parserVersion returns the version of the tree-sitter binding in info.
func parserVersion(info *debug.BuildInfo) string {
	for _, dep := range info.Deps {
		if dep.Path == parserModule {
			return dep.Version
		}
	}

	return ""
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
