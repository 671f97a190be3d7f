package domain

import (
	"strconv"
	"strings"

	m "modedit.dev/pkg/modedit/internal/model"
)

// Segment is one step of a Path: an object key or an array index.
type Segment struct {
	Key     string
	Index   int
	IsIndex bool
}

// Path addresses a value inside the export object, e.g. a.b[0]["c.d"].
// The empty path is the export object itself.
type Path []Segment

// ParsePath parses dotted paths with bracketed indices and quoted keys.
func ParsePath(s string) (Path, error) {
	var path Path

	bad := func(reason string) (Path, error) {
		return nil, &m.PathError{Path: s, Reason: reason}
	}

	for i := 0; i < len(s); {
		switch c := s[i]; {
		case c == '.':
			if i == 0 || i+1 >= len(s) || s[i+1] == '.' || s[i+1] == '[' {
				return bad("empty key")
			}

			i++
		case c == '[':
			end := strings.IndexByte(s[i:], ']')
			if end < 0 {
				return bad("unclosed [")
			}

			inner := s[i+1 : i+end]
			if inner != "" && (inner[0] == '"' || inner[0] == '\'') {
				end = closingQuote(s, i+1)
				if end < 0 || end+1 >= len(s) || s[end+1] != ']' {
					return bad("unclosed quoted key")
				}

				key, err := unquoteKey(s[i+1 : end+1])
				if err != nil {
					return bad(err.Error())
				}

				path = append(path, Segment{Key: key})
				i = end + 2

				continue
			}

			n, err := strconv.Atoi(inner)
			if err != nil {
				return bad("index must be an integer")
			}

			path = append(path, Segment{Index: n, IsIndex: true})
			i += end + 1
		default:
			if i > 0 && s[i-1] == ']' {
				return bad("missing . before key")
			}

			end := strings.IndexAny(s[i:], ".[")
			if end < 0 {
				end = len(s) - i
			}

			path = append(path, Segment{Key: s[i : i+end]})
			i += end
		}
	}

	return path, nil
}

func closingQuote(s string, start int) int {
	quote := s[start]

	for i := start + 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case quote:
			return i
		}
	}

	return -1
}

func unquoteKey(quoted string) (string, error) {
	if quoted[0] == '\'' {
		quoted = `"` + strings.ReplaceAll(strings.ReplaceAll(quoted[1:len(quoted)-1], `\'`, `'`), `"`, `\"`) + `"`
	}

	return strconv.Unquote(quoted)
}

func (p Path) String() string {
	var b strings.Builder

	for i, seg := range p {
		switch {
		case seg.IsIndex:
			b.WriteString("[" + strconv.Itoa(seg.Index) + "]")
		case seg.Key != "" && !strings.ContainsAny(seg.Key, ".[]\"' \t\n"):
			if i > 0 {
				b.WriteByte('.')
			}

			b.WriteString(seg.Key)
		default:
			b.WriteString("[" + strconv.Quote(seg.Key) + "]")
		}
	}

	return b.String()
}

func (p Path) errorf(reason string) error {
	return &m.PathError{Path: p.String(), Reason: reason}
}

// resolveIndex maps negative indices from the end.
func resolveIndex(i, n int) int {
	if i < 0 {
		return n + i
	}

	return i
}

// Lookup returns the value at path.
func Lookup(root m.Value, path Path) (m.Value, error) {
	cur := root

	for depth, seg := range path {
		next, ok := child(cur, seg)
		if !ok {
			return nil, path[:depth+1].errorf("not found")
		}

		cur = next
	}

	return cur, nil
}

func child(v m.Value, seg Segment) (m.Value, bool) {
	switch val := v.(type) {
	case *m.Mapping:
		if seg.IsIndex {
			return nil, false
		}

		return val.Get(seg.Key)
	case *m.Sequence:
		if !seg.IsIndex {
			return nil, false
		}

		i := resolveIndex(seg.Index, val.Len())
		if i < 0 || i >= val.Len() {
			return nil, false
		}

		return val.At(i), true
	}

	return nil, false
}

// parent walks to the container holding the last segment, creating
// missing objects along the way when create is set.
func parent(root m.Value, path Path, create bool) (m.Value, error) {
	if len(path) == 0 {
		return nil, path.errorf("empty path")
	}

	cur := root

	for depth, seg := range path[:len(path)-1] {
		next, ok := child(cur, seg)

		switch {
		case ok:
		case create && !seg.IsIndex:
			mapping, isMapping := cur.(*m.Mapping)
			if !isMapping {
				return nil, path[:depth+1].errorf("parent is not an object")
			}

			next = m.NewMapping()
			mapping.Set(seg.Key, next)
		default:
			return nil, path[:depth+1].errorf("not found")
		}

		cur = next
	}

	return cur, nil
}

// SetPath stores v at path. Missing intermediate keys become objects; an
// index equal to the array length appends.
func SetPath(root m.Value, path Path, v m.Value) error {
	container, err := parent(root, path, true)
	if err != nil {
		return err
	}

	last := path[len(path)-1]

	switch c := container.(type) {
	case *m.Mapping:
		if last.IsIndex {
			return path.errorf("index into an object")
		}

		c.Set(last.Key, v)

		return nil
	case *m.Sequence:
		if !last.IsIndex {
			return path.errorf("key into an array")
		}

		i := resolveIndex(last.Index, c.Len())

		switch {
		case i == c.Len():
			c.Append(v)
		case i >= 0 && i < c.Len():
			c.Set(i, v)
		default:
			return path.errorf("index out of range")
		}

		return nil
	}

	return path.errorf("parent is not an object or array")
}

// DeletePath removes the key or element at path.
func DeletePath(root m.Value, path Path) error {
	container, err := parent(root, path, false)
	if err != nil {
		return err
	}

	last := path[len(path)-1]

	switch c := container.(type) {
	case *m.Mapping:
		if last.IsIndex || !c.Delete(last.Key) {
			return path.errorf("not found")
		}

		return nil
	case *m.Sequence:
		i := resolveIndex(last.Index, c.Len())
		if !last.IsIndex || i < 0 || i >= c.Len() {
			return path.errorf("not found")
		}

		c.Remove(i)

		return nil
	}

	return path.errorf("parent is not an object or array")
}

// AppendPath appends v to the array at path, creating the array when the
// key is missing.
func AppendPath(root m.Value, path Path, v m.Value) error {
	target, err := Lookup(root, path)
	if err != nil {
		if setErr := SetPath(root, path, m.NewSequence(v)); setErr != nil {
			return err
		}

		return nil
	}

	seq, ok := target.(*m.Sequence)
	if !ok {
		return path.errorf("not an array")
	}

	seq.Append(v)

	return nil
}

// MergePath copies every key of v into the object at path, creating the
// object when the key is missing. Nested objects are merged recursively.
func MergePath(root m.Value, path Path, v m.Value) error {
	src, ok := v.(*m.Mapping)
	if !ok {
		return path.errorf("merge value is not an object")
	}

	target, err := Lookup(root, path)
	if err != nil {
		if setErr := SetPath(root, path, m.NewMapping()); setErr != nil {
			return err
		}

		target, _ = Lookup(root, path)
	}

	dst, ok := target.(*m.Mapping)
	if !ok {
		return path.errorf("not an object")
	}

	mergeMappings(dst, src)

	return nil
}

func mergeMappings(dst, src *m.Mapping) {
	for key, v := range src.All() {
		existing, ok := dst.Get(key)
		if nested, isMapping := v.(*m.Mapping); isMapping && ok {
			if into, intoMapping := existing.(*m.Mapping); intoMapping {
				mergeMappings(into, nested)
				continue
			}
		}

		dst.Set(key, v)
	}
}

// LookupNode returns the syntax node at path, following the first
// property with each key.
func LookupNode(root m.Node, path Path) (m.Node, error) {
	cur := root

	for depth, seg := range path {
		var next m.Node

		switch n := cur.(type) {
		case *m.Object:
			if prop, ok := n.Lookup(seg.Key); ok && !seg.IsIndex {
				next = prop.Value
			}
		case *m.Array:
			i := resolveIndex(seg.Index, len(n.Elements))
			if seg.IsIndex && i >= 0 && i < len(n.Elements) {
				next = n.Elements[i]
			}
		}

		if next == nil {
			return nil, path[:depth+1].errorf("not found")
		}

		cur = next
	}

	return cur, nil
}
