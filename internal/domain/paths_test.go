package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	m "modedit.dev/pkg/modedit/internal/model"
)

func TestParsePath(t *testing.T) {
	tests := []struct {
		in   string
		want Path
	}{
		{"", nil},
		{"a", Path{{Key: "a"}}},
		{"a.b", Path{{Key: "a"}, {Key: "b"}}},
		{"a[0]", Path{{Key: "a"}, {Index: 0, IsIndex: true}}},
		{"a[-1].b", Path{{Key: "a"}, {Index: -1, IsIndex: true}, {Key: "b"}}},
		{`a["c d"]`, Path{{Key: "a"}, {Key: "c d"}}},
		{`['x.y']`, Path{{Key: "x.y"}}},
		{`["quo\"te"][2]`, Path{{Key: `quo"te`}, {Index: 2, IsIndex: true}}},
		{"rules[0].use[1].options", Path{
			{Key: "rules"}, {Index: 0, IsIndex: true}, {Key: "use"}, {Index: 1, IsIndex: true}, {Key: "options"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParsePath(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParsePath_Errors(t *testing.T) {
	for _, in := range []string{".a", "a.", "a..b", "a.[0]", "a[0", "a[x]", `a["b]`, `a["b"`, "a[0]b", `a["k"]b`} {
		t.Run(in, func(t *testing.T) {
			_, err := ParsePath(in)

			var pathErr *m.PathError
			require.ErrorAs(t, err, &pathErr)
			assert.Equal(t, in, pathErr.Path)
		})
	}
}

func TestPath_String(t *testing.T) {
	tests := []struct {
		path Path
		want string
	}{
		{nil, ""},
		{Path{{Key: "a"}, {Key: "b"}}, "a.b"},
		{Path{{Key: "a"}, {Index: 3, IsIndex: true}}, "a[3]"},
		{Path{{Key: "x.y"}}, `["x.y"]`},
		{Path{{Key: ""}}, `[""]`},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.path.String())

			back, err := ParsePath(tt.path.String())
			require.NoError(t, err)
			assert.Equal(t, tt.path, back)
		})
	}
}

func newRoot() *m.Mapping {
	return mapping(
		"a", mapping("b", m.Number(1)),
		"list", m.NewSequence(m.String("x"), m.String("y")),
	)
}

func mustPath(t *testing.T, s string) Path {
	t.Helper()

	p, err := ParsePath(s)
	require.NoError(t, err)

	return p
}

func TestLookup(t *testing.T) {
	root := newRoot()

	assert.Equal(t, m.Number(1), get(t, root, "a.b"))
	assert.Equal(t, m.String("y"), get(t, root, "list[-1]"))
	assert.Same(t, root, get(t, root, ""))

	for _, path := range []string{"missing", "a.c", "list[2]", "list.x", "a[0]", "a.b.c"} {
		_, err := Lookup(root, mustPath(t, path))

		var pathErr *m.PathError
		assert.ErrorAs(t, err, &pathErr, path)
	}
}

func TestSetPath(t *testing.T) {
	root := newRoot()

	require.NoError(t, SetPath(root, mustPath(t, "a.b"), m.Number(2)))
	require.NoError(t, SetPath(root, mustPath(t, "x.y.z"), m.Bool(true)))
	require.NoError(t, SetPath(root, mustPath(t, "list[2]"), m.String("z")))
	require.NoError(t, SetPath(root, mustPath(t, "list[-1]"), m.String("last")))

	assert.Equal(t, m.Number(2), get(t, root, "a.b"))
	assert.Equal(t, m.Bool(true), get(t, root, "x.y.z"))
	assert.Equal(t, []string{"a", "list", "x"}, root.Keys())
	assert.Equal(t, []m.Value{m.String("x"), m.String("y"), m.String("last")}, get(t, root, "list").(*m.Sequence).Values())
}

func TestSetPath_Errors(t *testing.T) {
	tests := []string{"", "list[5]", "list.key", "a[0]", "a.b.c", "list[9].x"}

	for _, path := range tests {
		t.Run(path, func(t *testing.T) {
			err := SetPath(newRoot(), mustPath(t, path), m.Null{})

			var pathErr *m.PathError
			require.ErrorAs(t, err, &pathErr)
		})
	}
}

func TestDeletePath(t *testing.T) {
	root := newRoot()

	require.NoError(t, DeletePath(root, mustPath(t, "a.b")))
	require.NoError(t, DeletePath(root, mustPath(t, "list[0]")))

	assert.Equal(t, 0, get(t, root, "a").(*m.Mapping).Len())
	assert.Equal(t, []m.Value{m.String("y")}, get(t, root, "list").(*m.Sequence).Values())

	for _, path := range []string{"a.b", "list[3]", "nope.x", ""} {
		assert.Error(t, DeletePath(root, mustPath(t, path)), path)
	}
}

func TestAppendPath(t *testing.T) {
	root := newRoot()

	require.NoError(t, AppendPath(root, mustPath(t, "list"), m.String("z")))
	require.NoError(t, AppendPath(root, mustPath(t, "a.plugins"), m.Number(1)))

	assert.Equal(t, 3, get(t, root, "list").(*m.Sequence).Len())
	assert.Equal(t, []m.Value{m.Number(1)}, get(t, root, "a.plugins").(*m.Sequence).Values())

	var pathErr *m.PathError
	require.ErrorAs(t, AppendPath(root, mustPath(t, "a.b"), m.Number(1)), &pathErr)
}

func TestMergePath(t *testing.T) {
	root := newRoot()

	require.NoError(t, MergePath(root, mustPath(t, "a"), mapping("c", m.Number(3), "b", m.Number(10))))
	require.NoError(t, MergePath(root, nil, mapping("a", mapping("d", m.Null{}))))
	require.NoError(t, MergePath(root, mustPath(t, "fresh"), mapping("k", m.String("v"))))

	a := get(t, root, "a").(*m.Mapping)
	assert.Equal(t, []string{"b", "c", "d"}, a.Keys())
	assert.Equal(t, m.Number(10), get(t, root, "a.b"))
	assert.Equal(t, m.String("v"), get(t, root, "fresh.k"))

	assert.Error(t, MergePath(root, mustPath(t, "list"), mapping("k", m.Null{})))
	assert.Error(t, MergePath(root, mustPath(t, "a"), m.Number(1)))
}

func TestLookupNode(t *testing.T) {
	export := parseExport(t, configSource)

	node, err := LookupNode(export, mustPath(t, "anArray[0].hello"))
	require.NoError(t, err)
	assert.Equal(t, `"world"`, node.(*m.Literal).Origin.Raw)

	node, err = LookupNode(export, nil)
	require.NoError(t, err)
	assert.Same(t, export, node)

	_, err = LookupNode(export, mustPath(t, "anArray[1]"))
	assert.Error(t, err)

	_, err = LookupNode(export, mustPath(t, "aFunc.x"))
	assert.Error(t, err)
}
