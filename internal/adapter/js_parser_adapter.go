package adapter

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/javascript"

	m "modedit.dev/pkg/modedit/internal/model"
)

// JSParserAdapter turns JavaScript source into the editor's module model so
// the domain layer never deals with the concrete parser.
type JSParserAdapter interface {
	// Parse builds a Module for source. Malformed input yields a
	// *model.SyntaxError.
	Parse(ctx context.Context, source []byte) (*m.Module, error)
}

// TreeSitterJSParserAdapter parses with the tree-sitter JavaScript grammar.
type TreeSitterJSParserAdapter struct{}

// NewTreeSitterJSParserAdapter constructs a TreeSitterJSParserAdapter.
func NewTreeSitterJSParserAdapter() *TreeSitterJSParserAdapter {
	return &TreeSitterJSParserAdapter{}
}

// Parse parses source. A fresh tree-sitter parser is used per call since
// parsers are not safe for concurrent use.
func (a *TreeSitterJSParserAdapter) Parse(ctx context.Context, source []byte) (*m.Module, error) {
	parser := sitter.NewParser()
	defer parser.Close()

	parser.SetLanguage(javascript.GetLanguage())

	tree, err := parser.ParseCtx(ctx, nil, source)
	if err != nil {
		slog.Error("tree-sitter parse failed", "error", err)
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return nil, syntaxError(root, source)
	}

	b := &moduleBuilder{src: source}

	return b.module(root), nil
}

// syntaxError reports the first ERROR or MISSING node in document order.
func syntaxError(root *sitter.Node, source []byte) error {
	bad := firstError(root)
	if bad == nil {
		return &m.SyntaxError{Line: 1, Column: 1, Msg: "invalid source"}
	}

	pos := bad.StartPoint()
	err := &m.SyntaxError{Line: int(pos.Row) + 1, Column: int(pos.Column) + 1}

	if bad.IsMissing() {
		err.Msg = fmt.Sprintf("missing %q", bad.Type())
		return err
	}

	text := bad.Content(source)
	if i := strings.IndexAny(text, "\r\n"); i >= 0 {
		text = text[:i]
	}

	if len(text) > 32 {
		text = text[:32]
	}

	err.Msg = fmt.Sprintf("unexpected %q", strings.TrimSpace(text))

	return err
}

func firstError(n *sitter.Node) *sitter.Node {
	if n.Type() == "ERROR" || n.IsMissing() {
		return n
	}

	if !n.HasError() {
		return nil
	}

	for i := 0; i < int(n.ChildCount()); i++ {
		if bad := firstError(n.Child(i)); bad != nil {
			return bad
		}
	}

	return nil
}

type moduleBuilder struct {
	src []byte
}

func (b *moduleBuilder) text(n *sitter.Node) string {
	return string(b.src[n.StartByte():n.EndByte()])
}

func spanOf(n *sitter.Node) m.Span {
	return m.Span{Start: int(n.StartByte()), End: int(n.EndByte())}
}

func (b *moduleBuilder) module(root *sitter.Node) *m.Module {
	mod := &m.Module{Source: b.src}

	for i := 0; i < int(root.NamedChildCount()); i++ {
		child := root.NamedChild(i)
		if child.Type() == "comment" || child.Type() == "hash_bang_line" {
			continue
		}

		stmt := &m.Statement{Span: spanOf(child)}
		stmt.Assignment = b.assignment(child)
		mod.Body = append(mod.Body, stmt)
	}

	return mod
}

// assignment recognises `<member> = <expr>;` statements.
func (b *moduleBuilder) assignment(stmt *sitter.Node) *m.Assignment {
	if stmt.Type() != "expression_statement" {
		return nil
	}

	expr := firstNamed(stmt)
	if expr == nil || expr.Type() != "assignment_expression" {
		return nil
	}

	left := expr.ChildByFieldName("left")
	right := expr.ChildByFieldName("right")

	if left == nil || right == nil {
		return nil
	}

	target, ok := b.memberPath(left)
	if !ok {
		return nil
	}

	return &m.Assignment{Target: target, Value: b.node(right)}
}

// memberPath renders a.b and a["b"] chains as "a.b".
func (b *moduleBuilder) memberPath(n *sitter.Node) (string, bool) {
	switch n.Type() {
	case "identifier":
		return b.text(n), true
	case "member_expression":
		object, ok := b.memberPath(n.ChildByFieldName("object"))
		property := n.ChildByFieldName("property")

		if !ok || property == nil {
			return "", false
		}

		return object + "." + b.text(property), true
	case "subscript_expression":
		object, ok := b.memberPath(n.ChildByFieldName("object"))
		index := n.ChildByFieldName("index")

		if !ok || index == nil || index.Type() != "string" {
			return "", false
		}

		key, err := unquoteString(b.text(index))
		if err != nil {
			return "", false
		}

		return object + "." + key, true
	case "parenthesized_expression":
		if inner := firstNamed(n); inner != nil {
			return b.memberPath(inner)
		}
	}

	return "", false
}

func firstNamed(n *sitter.Node) *sitter.Node {
	for i := 0; i < int(n.NamedChildCount()); i++ {
		if child := n.NamedChild(i); child.Type() != "comment" {
			return child
		}
	}

	return nil
}

// node converts an expression. Anything outside the modelled grammar
// becomes an Other holding its source text.
func (b *moduleBuilder) node(n *sitter.Node) m.Node {
	switch n.Type() {
	case "object":
		return b.object(n)
	case "array":
		return b.array(n)
	case "string":
		if s, err := unquoteString(b.text(n)); err == nil {
			return b.literal(n, m.String(s))
		}
	case "number":
		if f, ok := parseNumber(b.text(n)); ok {
			return b.literal(n, m.Number(f))
		}
	case "true":
		return b.literal(n, m.Bool(true))
	case "false":
		return b.literal(n, m.Bool(false))
	case "null":
		return b.literal(n, m.Null{})
	case "unary_expression":
		if lit, ok := b.signedNumber(n); ok {
			return lit
		}
	}

	return b.other(n)
}

func (b *moduleBuilder) literal(n *sitter.Node, v m.Scalar) *m.Literal {
	return &m.Literal{
		Value: v,
		Origin: &m.LiteralOrigin{
			Span:  spanOf(n),
			Raw:   b.text(n),
			Value: v,
		},
	}
}

// signedNumber treats -1 and +1 as numeric literals.
func (b *moduleBuilder) signedNumber(n *sitter.Node) (*m.Literal, bool) {
	op := n.ChildByFieldName("operator")
	arg := n.ChildByFieldName("argument")

	if op == nil || arg == nil || arg.Type() != "number" {
		return nil, false
	}

	f, ok := parseNumber(b.text(arg))
	if !ok {
		return nil, false
	}

	switch op.Type() {
	case "-":
		return b.literal(n, m.Number(-f)), true
	case "+":
		return b.literal(n, m.Number(f)), true
	}

	return nil, false
}

func (b *moduleBuilder) other(n *sitter.Node) *m.Other {
	span := spanOf(n)
	return &m.Other{Text: b.text(n), Origin: &span}
}

func (b *moduleBuilder) object(n *sitter.Node) *m.Object {
	items, origin := b.list(n, false)
	obj := &m.Object{Origin: origin, Properties: make([]*m.Property, 0, len(items))}

	for i, item := range items {
		prop := b.property(item.node)
		prop.Origin.Layout = origin.Items[i]
		obj.Properties = append(obj.Properties, prop)
	}

	return obj
}

func (b *moduleBuilder) property(n *sitter.Node) *m.Property {
	origin := &m.PropertyOrigin{Span: spanOf(n), ValueSpan: spanOf(n), Inline: true}
	prop := &m.Property{Origin: origin}

	switch n.Type() {
	case "pair":
		key := n.ChildByFieldName("key")
		value := n.ChildByFieldName("value")
		prop.Key, origin.BadKey = b.propertyKey(key)
		origin.KeyText = b.text(key)
		prop.Value = b.node(value)
		origin.ValueSpan = spanOf(value)
		origin.Inline = false
	case "shorthand_property_identifier":
		prop.Key = b.text(n)
		origin.KeyText = prop.Key
		prop.Value = b.other(n)
	case "method_definition":
		name := n.ChildByFieldName("name")
		prop.Key, origin.BadKey = b.propertyKey(name)
		origin.KeyText = b.text(name)
		prop.Value = b.other(n)
	default:
		// spread elements and anything else without a usable key
		origin.BadKey = true
		origin.KeyText = b.text(n)
		prop.Value = b.other(n)
	}

	origin.Value = prop.Value

	return prop
}

// propertyKey resolves a key node to its name; bad reports keys that are
// not string literals or identifiers.
func (b *moduleBuilder) propertyKey(key *sitter.Node) (name string, bad bool) {
	if key == nil {
		return "", true
	}

	switch key.Type() {
	case "property_identifier", "identifier":
		return b.text(key), false
	case "string":
		s, err := unquoteString(b.text(key))
		if err != nil {
			return "", true
		}

		return s, false
	}

	return "", true
}

func (b *moduleBuilder) array(n *sitter.Node) *m.Array {
	items, origin := b.list(n, true)
	arr := &m.Array{Origin: origin, Elements: make([]m.Node, 0, len(items))}

	for _, item := range items {
		if item.node == nil {
			span := m.Span{Start: item.pos, End: item.pos}
			arr.Elements = append(arr.Elements, &m.Other{Origin: &span})

			continue
		}

		arr.Elements = append(arr.Elements, b.node(item.node))
	}

	return arr
}

// listItem is one element of a bracketed list; node is nil for an array hole.
type listItem struct {
	node *sitter.Node
	pos  int
}

// list splits an object or array into items and records the text around
// each of them. Comments on the same line right after an item's comma (or
// after the last item) travel with that item.
func (b *moduleBuilder) list(n *sitter.Node, holes bool) ([]listItem, *m.ListOrigin) {
	count := int(n.ChildCount())
	origin := &m.ListOrigin{Span: spanOf(n)}

	var items []listItem

	boundary := int(n.Child(0).EndByte())
	lastEnd := boundary
	lastRow := n.Child(0).EndPoint().Row
	expectItem := true

	for i := 1; i < count-1; i++ {
		child := n.Child(i)

		switch child.Type() {
		case "comment":
			continue
		case ",":
			start := int(child.StartByte())

			if expectItem {
				if !holes {
					continue
				}

				items = append(items, listItem{pos: start})
				origin.Items = append(origin.Items, m.ItemLayout{Lead: string(b.src[boundary:start])})
				lastEnd = start
			}

			layout := &origin.Items[len(origin.Items)-1]
			layout.Mid = string(b.src[lastEnd:start])
			layout.Comma = true
			boundary = int(child.EndByte())

			var trailerEnd int
			trailerEnd, i = b.sameLineComments(n, i+1, child.EndPoint().Row, boundary)
			i--

			layout.Trailer = string(b.src[boundary:trailerEnd])
			boundary = trailerEnd
			expectItem = true
		default:
			start := int(child.StartByte())
			items = append(items, listItem{node: child, pos: start})
			origin.Items = append(origin.Items, m.ItemLayout{Lead: string(b.src[boundary:start])})
			lastEnd = int(child.EndByte())
			lastRow = child.EndPoint().Row
			boundary = lastEnd
			expectItem = false
		}
	}

	if len(origin.Items) > 0 {
		last := &origin.Items[len(origin.Items)-1]
		origin.TrailingComma = last.Comma

		if !last.Comma {
			trailerEnd, _ := b.sameLineComments(n, lastItemIndex(n)+1, lastRow, boundary)
			last.Trailer = string(b.src[boundary:trailerEnd])
			boundary = trailerEnd
		}
	}

	closing := n.Child(count - 1)
	origin.Tail = string(b.src[boundary:closing.StartByte()])

	return items, origin
}

// sameLineComments consumes comment children starting at index from that
// begin on row. It returns the end offset of the last one (or end when
// there are none) and the index of the first child not consumed.
func (b *moduleBuilder) sameLineComments(n *sitter.Node, from int, row uint32, end int) (int, int) {
	i := from

	for ; i < int(n.ChildCount())-1; i++ {
		child := n.Child(i)
		if child.Type() != "comment" || child.StartPoint().Row != row {
			break
		}

		end = int(child.EndByte())
		row = child.EndPoint().Row

		// a // comment may end with the \r of a CRLF line ending
		for end > int(child.StartByte()) && b.src[end-1] == '\r' {
			end--
		}
	}

	return end, i
}

// lastItemIndex returns the child index of the last non-comment,
// non-comma child before the closing bracket.
func lastItemIndex(n *sitter.Node) int {
	for i := int(n.ChildCount()) - 2; i > 0; i-- {
		if t := n.Child(i).Type(); t != "comment" && t != "," {
			return i
		}
	}

	return 0
}
