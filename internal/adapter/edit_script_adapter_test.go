package adapter

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modedit.dev/pkg/modedit/internal/model"
)

const sampleScript = `
- op: set
  path: output.path
  value: dist
- op: delete
  path: devtool
- op: append
  path: plugins
  value: {name: banner, raw: true}
- op: merge
  path: resolve
  value:
    extensions: [".js", ".ts"]
`

func TestYAMLEditScriptAdapter_ParseScript(t *testing.T) {
	script, err := NewYAMLEditScriptAdapter().ParseScript([]byte(sampleScript))
	require.NoError(t, err)
	require.Len(t, script.Edits, 4)

	assert.Equal(t, m.Edit{Op: m.OpSet, Path: "output.path", Value: m.String("dist")}, script.Edits[0])
	assert.Equal(t, m.Edit{Op: m.OpDelete, Path: "devtool"}, script.Edits[1])

	plugin, ok := script.Edits[2].Value.(*m.Mapping)
	require.True(t, ok)
	assert.Equal(t, []string{"name", "raw"}, plugin.Keys())

	raw, _ := plugin.Get("raw")
	assert.Equal(t, m.Bool(true), raw)

	resolve, ok := script.Edits[3].Value.(*m.Mapping)
	require.True(t, ok)

	exts, _ := resolve.Get("extensions")
	assert.Equal(t, []any{".js", ".ts"}, m.ToNative(exts))
}

func TestYAMLEditScriptAdapter_ParseScriptJSON(t *testing.T) {
	script, err := NewYAMLEditScriptAdapter().ParseScript([]byte(`[{"op": "set", "path": "mode", "value": "production"}]`))
	require.NoError(t, err)
	require.Len(t, script.Edits, 1)
	assert.Equal(t, m.String("production"), script.Edits[0].Value)
}

func TestYAMLEditScriptAdapter_ParseScriptErrors(t *testing.T) {
	tests := []struct {
		name   string
		script string
		want   string
	}{
		{name: "not a list", script: "op: set\n", want: "must be a list"},
		{name: "item not a mapping", script: "- set\n", want: "must be a mapping"},
		{name: "unknown op", script: "- op: rename\n  path: a\n", want: `unknown edit op "rename"`},
		{name: "missing value", script: "- op: set\n  path: a\n", want: "needs a value"},
		{name: "unknown field", script: "- op: delete\n  path: a\n  force: true\n", want: `unknown edit field "force"`},
		{name: "bad yaml", script: "- op: [\n", want: "failed to decode edit script"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewYAMLEditScriptAdapter().ParseScript([]byte(tt.script))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestYAMLEditScriptAdapter_ParseScriptEmpty(t *testing.T) {
	script, err := NewYAMLEditScriptAdapter().ParseScript(nil)
	require.NoError(t, err)
	assert.Empty(t, script.Edits)
}

func TestYAMLEditScriptAdapter_ParseValue(t *testing.T) {
	adapter := NewYAMLEditScriptAdapter()

	tests := []struct {
		text string
		want any
	}{
		{text: "42", want: float64(42)},
		{text: "1.5", want: 1.5},
		{text: "hello", want: "hello"},
		{text: `"42"`, want: "42"},
		{text: "true", want: true},
		{text: "null", want: nil},
		{text: "", want: nil},
		{text: "[1, two, null]", want: []any{float64(1), "two", nil}},
		{text: "2024-01-02", want: "2024-01-02"},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			v, err := adapter.ParseValue(tt.text)
			require.NoError(t, err)
			assert.Equal(t, tt.want, m.ToNative(v))
		})
	}

	t.Run("mapping keeps key order", func(t *testing.T) {
		v, err := adapter.ParseValue(`{zeta: 1, alpha: {nested: [x]}}`)
		require.NoError(t, err)

		mapping, ok := v.(*m.Mapping)
		require.True(t, ok)
		assert.Equal(t, []string{"zeta", "alpha"}, mapping.Keys())
	})

	t.Run("invalid yaml", func(t *testing.T) {
		_, err := adapter.ParseValue("{a: [")
		assert.Error(t, err)
	})
}

func TestYAMLEditScriptAdapter_LoadScript(t *testing.T) {
	adapter := NewYAMLEditScriptAdapter()
	path := filepath.Join(t.TempDir(), "edits.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleScript), 0o644))

	script, err := adapter.LoadScript(context.Background(), m.Path(path))
	require.NoError(t, err)
	assert.Len(t, script.Edits, 4)

	_, err = adapter.LoadScript(context.Background(), m.Path(filepath.Join(t.TempDir(), "missing.yaml")))
	assert.ErrorContains(t, err, "failed to read edit script")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = adapter.LoadScript(ctx, m.Path(path))
	assert.ErrorIs(t, err, context.Canceled)
}
