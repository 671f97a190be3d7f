package domain

import (
	"fmt"

	m "modedit.dev/pkg/modedit/internal/model"
)

// Flatten lists every leaf under node in source order. Empty objects and
// arrays are leaves too.
func Flatten(node m.Node) []m.Entry {
	var entries []m.Entry

	flatten(node, nil, &entries)

	return entries
}

func flatten(node m.Node, path Path, entries *[]m.Entry) {
	leaf := func(text string) {
		*entries = append(*entries, m.Entry{Path: path.String(), Shape: node.Shape(), Text: text})
	}

	switch n := node.(type) {
	case *m.Object:
		if len(n.Properties) == 0 {
			leaf("{}")
			return
		}

		for _, prop := range n.Properties {
			flatten(prop.Value, extend(path, Segment{Key: prop.Key}), entries)
		}
	case *m.Array:
		if len(n.Elements) == 0 {
			leaf("[]")
			return
		}

		for i, elem := range n.Elements {
			flatten(elem, extend(path, Segment{Index: i, IsIndex: true}), entries)
		}
	case *m.Literal:
		if n.Origin != nil && n.Origin.Value == n.Value {
			leaf(n.Origin.Raw)
			return
		}

		leaf(scalarText(n.Value))
	case *m.Other:
		leaf(n.Text)
	}
}

func extend(path Path, seg Segment) Path {
	out := make(Path, len(path), len(path)+1)
	copy(out, path)

	return append(out, seg)
}

func scalarText(v m.Scalar) string {
	switch s := v.(type) {
	case m.String:
		return fmt.Sprintf("%q", string(s))
	case m.Null:
		return "null"
	}

	return fmt.Sprint(v)
}
