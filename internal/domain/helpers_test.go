package domain

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"modedit.dev/pkg/modedit/internal/adapter"
	m "modedit.dev/pkg/modedit/internal/model"
)

const configSource = `var thereIsSomethingBefore = true;

module.exports = {
  anObject: {
    oldProperty: 2  // there is a comment here
  },
  anArray: [
    { "hello": "world" }
  ],
  isSomething: true,
  aFunc: callback
}

function callback() {

}
`

func parseModule(t *testing.T, source string) *m.Module {
	t.Helper()

	mod, err := adapter.NewTreeSitterJSParserAdapter().Parse(context.Background(), []byte(source))
	require.NoError(t, err)

	return mod
}

func parseExport(t *testing.T, source string) *m.Object {
	t.Helper()

	export, err := Locate(parseModule(t, source))
	require.NoError(t, err)

	return export
}

func newTestUpdater() Updater {
	return NewUpdater(adapter.NewTreeSitterJSParserAdapter(), adapter.NewLocalPrinterAdapter(adapter.DefaultPrintOptions()))
}

func mapping(kv ...any) *m.Mapping {
	out := m.NewMapping()

	for i := 0; i+1 < len(kv); i += 2 {
		out.Set(kv[i].(string), kv[i+1].(m.Value))
	}

	return out
}

func get(t *testing.T, v m.Value, path string) m.Value {
	t.Helper()

	p, err := ParsePath(path)
	require.NoError(t, err)

	out, err := Lookup(v, p)
	require.NoError(t, err)

	return out
}
