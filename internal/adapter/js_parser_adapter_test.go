package adapter

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	m "modedit.dev/pkg/modedit/internal/model"
)

func parseSource(t *testing.T, source string) *m.Module {
	t.Helper()

	mod, err := NewTreeSitterJSParserAdapter().Parse(context.Background(), []byte(source))
	require.NoError(t, err)

	return mod
}

func exportedObject(t *testing.T, source string) *m.Object {
	t.Helper()

	mod := parseSource(t, source)

	for _, stmt := range mod.Body {
		if stmt.Assignment != nil && stmt.Assignment.Target == "module.exports" {
			obj, ok := stmt.Assignment.Value.(*m.Object)
			require.True(t, ok, "export is %T", stmt.Assignment.Value)

			return obj
		}
	}

	t.Fatalf("no module.exports assignment in %q", source)

	return nil
}

func TestTreeSitterJSParserAdapter_Statements(t *testing.T) {
	source := "// header\n'use strict';\nconst path = require('path');\nmodule.exports = {};\nexports.extra = 1;\n"
	mod := parseSource(t, source)

	require.Len(t, mod.Body, 4)
	assert.Equal(t, []byte(source), mod.Source)

	assert.Nil(t, mod.Body[0].Assignment)
	assert.Nil(t, mod.Body[1].Assignment)

	require.NotNil(t, mod.Body[2].Assignment)
	assert.Equal(t, "module.exports", mod.Body[2].Assignment.Target)
	assert.Equal(t, "module.exports = {};", source[mod.Body[2].Start:mod.Body[2].End])

	require.NotNil(t, mod.Body[3].Assignment)
	assert.Equal(t, "exports.extra", mod.Body[3].Assignment.Target)
}

func TestTreeSitterJSParserAdapter_SubscriptTarget(t *testing.T) {
	mod := parseSource(t, `module["exports"] = { a: 1 };`)

	require.Len(t, mod.Body, 1)
	require.NotNil(t, mod.Body[0].Assignment)
	assert.Equal(t, "module.exports", mod.Body[0].Assignment.Target)
}

func TestTreeSitterJSParserAdapter_Literals(t *testing.T) {
	obj := exportedObject(t, `module.exports = {
  str: 'it\'s',
  dbl: "x",
  int: 42,
  hex: 0x10,
  neg: -2,
  yes: true,
  no: false,
  nothing: null,
};`)

	want := []struct {
		key string
		val m.Scalar
		raw string
	}{
		{key: "str", val: m.String("it's"), raw: `'it\'s'`},
		{key: "dbl", val: m.String("x"), raw: `"x"`},
		{key: "int", val: m.Number(42), raw: "42"},
		{key: "hex", val: m.Number(16), raw: "0x10"},
		{key: "neg", val: m.Number(-2), raw: "-2"},
		{key: "yes", val: m.Bool(true), raw: "true"},
		{key: "no", val: m.Bool(false), raw: "false"},
		{key: "nothing", val: m.Null{}, raw: "null"},
	}

	require.Len(t, obj.Properties, len(want))

	for i, w := range want {
		prop := obj.Properties[i]
		assert.Equal(t, w.key, prop.Key)

		lit, ok := prop.Value.(*m.Literal)
		require.True(t, ok, "%s is %T", w.key, prop.Value)
		assert.Equal(t, w.val, lit.Value)
		require.NotNil(t, lit.Origin)
		assert.Equal(t, w.raw, lit.Origin.Raw)
		assert.Equal(t, w.val, lit.Origin.Value)
	}

	assert.True(t, obj.Origin.TrailingComma)
}

func TestTreeSitterJSParserAdapter_Keys(t *testing.T) {
	obj := exportedObject(t, `module.exports = { plain: 1, "quoted key": 2, 3: 'n', [dyn]: 4, short, ...rest, run() {} };`)

	require.Len(t, obj.Properties, 7)

	tests := []struct {
		key    string
		bad    bool
		inline bool
	}{
		{key: "plain"},
		{key: "quoted key"},
		{bad: true},
		{bad: true},
		{key: "short", inline: true},
		{bad: true, inline: true},
		{key: "run", inline: true},
	}

	for i, tt := range tests {
		prop := obj.Properties[i]
		require.NotNil(t, prop.Origin)
		assert.Equal(t, tt.bad, prop.Origin.BadKey, "property %d", i)
		assert.Equal(t, tt.inline, prop.Origin.Inline, "property %d", i)

		if !tt.bad {
			assert.Equal(t, tt.key, prop.Key, "property %d", i)
		}
	}

	assert.Equal(t, `"quoted key"`, obj.Properties[1].Origin.KeyText)
	assert.IsType(t, &m.Other{}, obj.Properties[4].Value)
	assert.IsType(t, &m.Other{}, obj.Properties[6].Value)
}

func TestTreeSitterJSParserAdapter_OtherExpressions(t *testing.T) {
	obj := exportedObject(t, "module.exports = { plugins: [new Plugin()], entry: path.join(__dirname, 'src'), tpl: `x` };")

	require.Len(t, obj.Properties, 3)

	arr, ok := obj.Properties[0].Value.(*m.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 1)

	other, ok := arr.Elements[0].(*m.Other)
	require.True(t, ok)
	assert.Equal(t, "new Plugin()", other.Text)

	other, ok = obj.Properties[1].Value.(*m.Other)
	require.True(t, ok)
	assert.Equal(t, "path.join(__dirname, 'src')", other.Text)

	assert.IsType(t, &m.Other{}, obj.Properties[2].Value)
}

func TestTreeSitterJSParserAdapter_ArrayHoles(t *testing.T) {
	obj := exportedObject(t, `module.exports = { list: [1, , 3] };`)

	arr, ok := obj.Properties[0].Value.(*m.Array)
	require.True(t, ok)
	require.Len(t, arr.Elements, 3)

	hole, ok := arr.Elements[1].(*m.Other)
	require.True(t, ok)
	assert.True(t, hole.Hole())
	assert.Len(t, arr.Origin.Items, 3)
}

func TestTreeSitterJSParserAdapter_Layout(t *testing.T) {
	obj := exportedObject(t, "module.exports = {\n  a: 1, // one\n  b: 2\n};\n")

	origin := obj.Origin
	require.NotNil(t, origin)
	require.Len(t, origin.Items, 2)

	assert.Equal(t, m.ItemLayout{Lead: "\n  ", Comma: true, Trailer: " // one"}, origin.Items[0])
	assert.Equal(t, m.ItemLayout{Lead: "\n  "}, origin.Items[1])
	assert.Equal(t, "\n", origin.Tail)
	assert.False(t, origin.TrailingComma)

	assert.Equal(t, origin.Items[0], obj.Properties[0].Origin.Layout)
}

func TestTreeSitterJSParserAdapter_SyntaxError(t *testing.T) {
	for _, source := range []string{
		"not valid code {{",
		"module.exports = { a: };",
		"module.exports = { a: 1",
	} {
		t.Run(source, func(t *testing.T) {
			_, err := NewTreeSitterJSParserAdapter().Parse(context.Background(), []byte(source))
			require.Error(t, err)

			var syntaxErr *m.SyntaxError
			require.True(t, errors.As(err, &syntaxErr), "got %T", err)
			assert.Equal(t, 1, syntaxErr.Line)
			assert.GreaterOrEqual(t, syntaxErr.Column, 1)
			assert.NotEmpty(t, syntaxErr.Msg)
		})
	}
}
