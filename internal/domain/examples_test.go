package domain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"modedit.dev/pkg/modedit/internal/adapter"
	m "modedit.dev/pkg/modedit/internal/model"
)

const examplesDir = "../../examples"

func newDetectingUpdater() Updater {
	printer := adapter.NewLocalPrinterAdapter(adapter.PrintOptions{DetectQuote: true, DetectIndent: true})
	return NewUpdater(adapter.NewTreeSitterJSParserAdapter(), printer)
}

func readExample(t *testing.T, name string) []byte {
	t.Helper()

	data, err := os.ReadFile(filepath.Join(examplesDir, name))
	require.NoError(t, err)

	return data
}

func TestExamples_RoundTrip(t *testing.T) {
	for _, name := range []string{
		"webpack/webpack.config.js",
		"eslint/.eslintrc.js",
		"babel/babel.config.js",
	} {
		t.Run(name, func(t *testing.T) {
			source := readExample(t, name)

			out, err := newDetectingUpdater().Update(context.Background(), source, nil)
			require.NoError(t, err)
			assert.Equal(t, string(source), string(out))
		})
	}
}

func TestExamples_WebpackScript(t *testing.T) {
	script, err := adapter.NewYAMLEditScriptAdapter().LoadScript(context.Background(), m.Path(filepath.Join(examplesDir, "webpack", "edits.yaml")))
	require.NoError(t, err)

	mutate, err := ScriptMutator(script)
	require.NoError(t, err)

	out, err := newDetectingUpdater().Update(context.Background(), readExample(t, "webpack/webpack.config.js"), mutate)
	require.NoError(t, err)

	newGolden(t).Assert(t, "example_webpack", out)
}

func TestExamples_ESLintKeepsTabsAndQuotes(t *testing.T) {
	out, err := newDetectingUpdater().Update(context.Background(), readExample(t, "eslint/.eslintrc.js"), func(v m.Value) (m.Value, error) {
		set(t, v, "rules.semi", m.NewSequence(m.String("error"), m.String("always")))
		return nil, nil
	})
	require.NoError(t, err)

	assert.Contains(t, string(out), "\t\t\"max-len\": [\"error\", { code: 100, ignoreUrls: true }],\n\t\tsemi: [\"error\", \"always\"]\n\t}")
}

func TestExamples_Invalid(t *testing.T) {
	_, err := newDetectingUpdater().Update(context.Background(), readExample(t, "invalid/broken.config.js"), nil)

	var syntaxErr *m.SyntaxError
	require.True(t, errors.As(err, &syntaxErr), "got %v", err)
}
