package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"modedit.dev/pkg/modedit/internal/controller"
	m "modedit.dev/pkg/modedit/internal/model"
)

const webpackConfig = `const path = require('path');

module.exports = {
  mode: 'development',
  output: {
    path: 'dist', // build dir
  },
  tags: ['a'],
};
`

// mockUI records what commands hand to the UI.
type mockUI struct {
	mock.Mock
}

func (u *mockUI) DisplayReports(ctx context.Context, reports []m.Report, err error) error {
	args := u.Called(ctx, reports, err)
	return args.Error(0)
}

func (u *mockUI) DisplayValue(ctx context.Context, text string) error {
	args := u.Called(ctx, text)
	return args.Error(0)
}

func (u *mockUI) DisplayEntries(ctx context.Context, entries []m.Entry, options ...controller.DisplayOption) error {
	args := u.Called(ctx, entries, len(options))
	return args.Error(0)
}

// newTestRoot builds a root command with subs, logging into a temp dir and
// printing through a SimpleUI into the returned buffer.
func newTestRoot(t *testing.T, subs ...*cobra.Command) (*cobra.Command, *bytes.Buffer) {
	t.Helper()

	viper.Set(logFilenameKey, filepath.Join(t.TempDir(), "modedit.log"))

	cmd := newRootCmd()
	configureRootFlags(cmd)
	cmd.AddCommand(subs...)

	out := &bytes.Buffer{}
	cmd.SetOut(out)
	cmd.SetErr(&bytes.Buffer{})

	useUI(t, controller.NewSimpleUI(cmd))

	t.Cleanup(func() {
		viper.Set(logFilenameKey, defaultLogFilename)
	})

	return cmd, out
}

func useUI(t *testing.T, replacement controller.UI) {
	t.Helper()

	original := ui
	ui = replacement

	t.Cleanup(func() { ui = original })
}

func writeConfigFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	return string(data)
}
