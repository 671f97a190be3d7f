package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	m "modedit.dev/pkg/modedit/internal/model"
)

func hasEntry(want m.Entry) any {
	return mock.MatchedBy(func(entries []m.Entry) bool {
		for _, entry := range entries {
			if entry == want {
				return true
			}
		}

		return false
	})
}

func TestListCmd_DisplaysEntries(t *testing.T) {
	file := writeConfigFile(t, t.TempDir(), "webpack.config.js", webpackConfig)

	cmd, _ := newTestRoot(t, newListCmd())

	display := &mockUI{}
	display.On("DisplayEntries", mock.Anything,
		hasEntry(m.Entry{Path: "output.path", Shape: m.LiteralShape, Text: "'dist'"}), 1).Return(nil)
	useUI(t, display)

	cmd.SetArgs([]string{"list", file})
	require.NoError(t, cmd.Execute())

	display.AssertExpectations(t)
}

func TestListCmd_SimpleOutput(t *testing.T) {
	file := writeConfigFile(t, t.TempDir(), "webpack.config.js", webpackConfig)

	cmd, out := newTestRoot(t, newListCmd())
	cmd.SetArgs([]string{"list", file})

	require.NoError(t, cmd.Execute())

	output := out.String()
	assert.Contains(t, output, file)
	assert.Contains(t, output, "tags[0]")
	assert.Contains(t, output, "'development'")
}

func TestViewCmd_AsksForPager(t *testing.T) {
	file := writeConfigFile(t, t.TempDir(), "webpack.config.js", webpackConfig)

	cmd, _ := newTestRoot(t, newViewCmd())

	display := &mockUI{}
	display.On("DisplayEntries", mock.Anything,
		hasEntry(m.Entry{Path: "mode", Shape: m.LiteralShape, Text: "'development'"}), 2).Return(nil)
	useUI(t, display)

	cmd.SetArgs([]string{"view", file})
	require.NoError(t, cmd.Execute())

	display.AssertExpectations(t)
}

func TestViewCmd_PositionalArgsAreChecked(t *testing.T) {
	cmd, _ := newTestRoot(t, newViewCmd())
	useUI(t, &mockUI{})

	cmd.SetArgs([]string{"view"})
	require.Error(t, cmd.Execute())

	cmd.SetArgs([]string{"view", "a.js", "b.js"})
	require.Error(t, cmd.Execute())
}
