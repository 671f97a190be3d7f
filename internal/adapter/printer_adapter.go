package adapter

import (
	"bytes"
	"fmt"
	"strings"

	m "modedit.dev/pkg/modedit/internal/model"
)

// PrintOptions control how freshly built syntax is rendered. Parsed syntax
// that did not change is always reproduced as written.
type PrintOptions struct {
	// Quote is the quote character for new strings and keys.
	Quote byte
	// Indent is one indentation step for new multi-line objects and arrays.
	Indent string
	// QuoteKeys forces quoting of new keys even when they are identifiers.
	QuoteKeys bool
	// DetectQuote and DetectIndent take Quote and Indent from the source
	// being printed instead.
	DetectQuote  bool
	DetectIndent bool
	// Newline ends new lines. Empty follows the source being printed.
	Newline string
}

// DefaultPrintOptions returns double quotes and two-space indentation.
func DefaultPrintOptions() PrintOptions {
	return PrintOptions{Quote: '"', Indent: "  "}
}

// PrinterAdapter renders a module model back to source text.
type PrinterAdapter interface {
	// Print renders the whole module.
	Print(mod *m.Module) ([]byte, error)
	// PrintNode renders one node; source is the text the node was parsed from.
	PrintNode(source []byte, node m.Node) ([]byte, error)
}

// LocalPrinterAdapter reprints modules, copying the original text of every
// span that was not touched.
type LocalPrinterAdapter struct {
	opts PrintOptions
}

// NewLocalPrinterAdapter constructs a LocalPrinterAdapter.
func NewLocalPrinterAdapter(opts PrintOptions) *LocalPrinterAdapter {
	defaults := DefaultPrintOptions()

	if opts.Quote != '\'' && opts.Quote != '"' {
		opts.Quote = defaults.Quote
	}

	if opts.Indent == "" {
		opts.Indent = defaults.Indent
	}

	return &LocalPrinterAdapter{opts: opts}
}

// Print renders mod, substituting each top-level assignment value.
func (a *LocalPrinterAdapter) Print(mod *m.Module) ([]byte, error) {
	p := &printer{src: mod.Source, opts: a.resolve(mod.Source)}
	pos := 0

	for _, stmt := range mod.Body {
		if stmt.Assignment == nil {
			continue
		}

		span, ok := nodeSpan(stmt.Assignment.Value)
		if !ok || span.Start < pos {
			return nil, fmt.Errorf("assignment value has no source position")
		}

		p.buf.Write(mod.Source[pos:span.Start])

		if err := p.node(stmt.Assignment.Value); err != nil {
			return nil, err
		}

		pos = span.End
	}

	p.buf.Write(mod.Source[pos:])

	return p.buf.Bytes(), nil
}

// PrintNode renders a single node.
func (a *LocalPrinterAdapter) PrintNode(source []byte, node m.Node) ([]byte, error) {
	p := &printer{src: source, opts: a.resolve(source)}
	if err := p.node(node); err != nil {
		return nil, err
	}

	return p.buf.Bytes(), nil
}

func (a *LocalPrinterAdapter) resolve(source []byte) PrintOptions {
	opts := a.opts
	if opts.Newline == "" {
		opts.Newline = detectNewline(source)
	}

	if !opts.DetectQuote && !opts.DetectIndent {
		return opts
	}

	detected := DetectStyle(source)

	if opts.DetectQuote {
		opts.Quote = detected.Quote
	}

	if opts.DetectIndent {
		opts.Indent = detected.Indent
	}

	return opts
}

func nodeSpan(n m.Node) (m.Span, bool) {
	switch n := n.(type) {
	case *m.Object:
		if n.Origin != nil {
			return n.Origin.Span, true
		}
	case *m.Array:
		if n.Origin != nil {
			return n.Origin.Span, true
		}
	case *m.Literal:
		if n.Origin != nil {
			return n.Origin.Span, true
		}
	case *m.Other:
		if n.Origin != nil {
			return *n.Origin, true
		}
	}

	return m.Span{}, false
}

type printer struct {
	src  []byte
	opts PrintOptions
	buf  bytes.Buffer
	// lineComment is set when the last trivia written ended in a // comment,
	// so the next item must start on a new line.
	lineComment bool
}

func (p *printer) write(s string) {
	if s == "" {
		return
	}

	p.buf.WriteString(s)
	p.lineComment = false
}

func (p *printer) writeTrivia(s string) {
	p.write(s)

	if s != "" {
		p.lineComment = endsInLineComment(s)
	}
}

func (p *printer) node(n m.Node) error {
	switch n := n.(type) {
	case *m.Object:
		return p.object(n)
	case *m.Array:
		return p.array(n)
	case *m.Literal:
		p.literal(n)
		return nil
	case *m.Other:
		p.write(n.Text)
		return nil
	}

	return fmt.Errorf("cannot print node %T", n)
}

func (p *printer) literal(n *m.Literal) {
	if n.Origin != nil && n.Origin.Value == n.Value {
		p.write(n.Origin.Raw)
		return
	}

	quote := p.opts.Quote
	if n.Origin != nil && strings.HasPrefix(n.Origin.Raw, "'") {
		quote = '\''
	} else if n.Origin != nil && strings.HasPrefix(n.Origin.Raw, `"`) {
		quote = '"'
	}

	p.write(renderScalar(n.Value, quote))
}

func renderScalar(v m.Scalar, quote byte) string {
	switch v := v.(type) {
	case m.String:
		return quoteString(string(v), quote)
	case m.Number:
		return formatNumber(float64(v))
	case m.Bool:
		if v {
			return "true"
		}

		return "false"
	}

	return "null"
}

func (p *printer) object(n *m.Object) error {
	if n.Origin == nil || (len(n.Origin.Items) == 0 && len(n.Properties) > 0) {
		return p.freshObject(n)
	}

	if len(n.Properties) == 0 {
		p.emptyList(n.Origin, "{", "}")
		return nil
	}

	p.write("{")

	for k, prop := range n.Properties {
		last := k == len(n.Properties)-1

		if prop.Origin == nil {
			p.write(p.newItemLead(n.Origin, k))

			if err := p.property(prop); err != nil {
				return err
			}

			p.comma(!last || n.Origin.TrailingComma)

			continue
		}

		layout := prop.Origin.Layout
		p.write(layout.Lead)

		if err := p.property(prop); err != nil {
			return err
		}

		p.write(layout.Mid)
		p.comma(!last || n.Origin.TrailingComma)
		p.writeTrivia(layout.Trailer)
	}

	p.write(n.Origin.Tail)
	p.write("}")

	return nil
}

func (p *printer) property(prop *m.Property) error {
	o := prop.Origin

	switch {
	case o == nil:
		p.key(prop.Key)
		p.write(": ")
	case o.Inline && prop.Value != o.Value:
		p.write(o.KeyText)
		p.write(": ")
	default:
		p.write(string(p.src[o.Start:o.ValueSpan.Start]))

		if err := p.node(prop.Value); err != nil {
			return err
		}

		p.write(string(p.src[o.ValueSpan.End:o.End]))

		return nil
	}

	return p.node(prop.Value)
}

func (p *printer) key(key string) {
	if !p.opts.QuoteKeys && isIdentifier(key) {
		p.write(key)
		return
	}

	p.write(quoteString(key, p.opts.Quote))
}

func (p *printer) array(n *m.Array) error {
	if n.Origin == nil || (len(n.Origin.Items) == 0 && len(n.Elements) > 0) {
		return p.freshArray(n)
	}

	if len(n.Elements) == 0 {
		p.emptyList(n.Origin, "[", "]")
		return nil
	}

	p.write("[")

	for k, elem := range n.Elements {
		last := k == len(n.Elements)-1
		hole := isHole(elem)

		if k >= len(n.Origin.Items) {
			p.write(p.newItemLead(n.Origin, k))

			if err := p.node(elem); err != nil {
				return err
			}

			p.comma(!last || n.Origin.TrailingComma || hole)

			continue
		}

		layout := n.Origin.Items[k]
		p.write(layout.Lead)

		if err := p.node(elem); err != nil {
			return err
		}

		p.write(layout.Mid)
		p.comma(!last || n.Origin.TrailingComma || hole)
		p.writeTrivia(layout.Trailer)
	}

	p.write(n.Origin.Tail)
	p.write("]")

	return nil
}

func isHole(n m.Node) bool {
	other, ok := n.(*m.Other)
	return ok && other.Hole()
}

func (p *printer) comma(ok bool) {
	if ok {
		p.write(",")
	}
}

// emptyList prints a list whose items were all removed. A list that was
// empty to begin with keeps its inner text.
func (p *printer) emptyList(origin *m.ListOrigin, open, closing string) {
	p.write(open)

	if len(origin.Items) == 0 || strings.TrimSpace(origin.Tail) != "" {
		p.write(origin.Tail)
	}

	p.write(closing)
}

// newItemLead derives the text before an item added to a parsed list from
// the parsed item in the same slot, or the last one: same line ending and
// indentation on a new line, or a single space for lists written on one line.
func (p *printer) newItemLead(origin *m.ListOrigin, k int) string {
	ref := ""

	switch {
	case k < len(origin.Items):
		ref = origin.Items[k].Lead
	case len(origin.Items) > 0:
		ref = origin.Items[len(origin.Items)-1].Lead
	}

	if i := strings.LastIndexByte(ref, '\n'); i >= 0 {
		if i > 0 && ref[i-1] == '\r' {
			return "\r\n" + leadingSpace(ref[i+1:])
		}

		return "\n" + leadingSpace(ref[i+1:])
	}

	if p.lineComment {
		return p.opts.Newline + p.currentIndent() + p.opts.Indent
	}

	if k == 0 {
		return leadingSpace(ref)
	}

	return " "
}

func (p *printer) freshObject(n *m.Object) error {
	if len(n.Properties) == 0 {
		p.write("{}")
		return nil
	}

	indent := p.currentIndent()
	p.write("{")

	for k, prop := range n.Properties {
		p.write(p.opts.Newline + indent + p.opts.Indent)

		if err := p.property(prop); err != nil {
			return err
		}

		p.comma(k < len(n.Properties)-1)
	}

	p.write(p.opts.Newline + indent + "}")

	return nil
}

func (p *printer) freshArray(n *m.Array) error {
	if len(n.Elements) == 0 {
		p.write("[]")
		return nil
	}

	if flat(n.Elements) {
		p.write("[")

		for k, elem := range n.Elements {
			if k > 0 {
				p.write(", ")
			}

			if err := p.node(elem); err != nil {
				return err
			}
		}

		p.write("]")

		return nil
	}

	indent := p.currentIndent()
	p.write("[")

	for k, elem := range n.Elements {
		p.write(p.opts.Newline + indent + p.opts.Indent)

		if err := p.node(elem); err != nil {
			return err
		}

		p.comma(k < len(n.Elements)-1)
	}

	p.write(p.opts.Newline + indent + "]")

	return nil
}

// flat reports whether elements can share one line.
func flat(elems []m.Node) bool {
	for _, elem := range elems {
		if _, ok := elem.(*m.Literal); !ok {
			return false
		}
	}

	return true
}

// currentIndent returns the leading whitespace of the line being written.
func (p *printer) currentIndent() string {
	out := p.buf.Bytes()
	line := out[bytes.LastIndexByte(out, '\n')+1:]

	return leadingSpace(string(line))
}

func leadingSpace(s string) string {
	return s[:len(s)-len(strings.TrimLeft(s, " \t"))]
}

// endsInLineComment reports whether the last line of s holds a // comment.
func endsInLineComment(s string) bool {
	line := s[strings.LastIndexByte(s, '\n')+1:]
	return strings.Contains(line, "//")
}
