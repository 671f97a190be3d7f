package cmd

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

const forceFlagName = "force"

// initCmd represents the init command.
var initCmd = newInitCmd()

func newInitCmd() *cobra.Command {
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Generate a default modedit.yaml configuration file",
		Long: `Create a modedit.yaml in the current working directory populated with the
current CLI defaults so it can be edited manually.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			targetPath := filepath.Join(configFolderPath, configFileName)

			if _, err := os.Stat(targetPath); err == nil && !forceFlag {
				return fmt.Errorf("failed to write config file: %s already exists", targetPath)
			}

			content, err := renderConfig(viper.AllSettings())
			if err != nil {
				return fmt.Errorf("failed to render config: %w", err)
			}

			if err := os.WriteFile(targetPath, content, 0o644); err != nil {
				return fmt.Errorf("failed to write config file: %w", err)
			}

			cmd.Printf("wrote %s\n", targetPath)

			return nil
		},
	}

	cmd.Flags().BoolVar(&forceFlag, forceFlagName, false, "overwrite an existing configuration file")

	return cmd
}

// renderConfig encodes settings as YAML with sorted keys.
func renderConfig(settings map[string]any) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# modedit configuration. print.quote: auto|double|single, print.indent: auto|tab|<spaces>\n")

	encoder := yaml.NewEncoder(&buf)
	encoder.SetIndent(2)

	if err := encoder.Encode(settings); err != nil {
		return nil, err
	}

	if err := encoder.Close(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

func init() {
	rootCmd.AddCommand(initCmd)
}
