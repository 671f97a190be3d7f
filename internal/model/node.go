package model

// Shape tags a syntax Node.
type Shape int

const (
	// ObjectShape is an object literal.
	ObjectShape Shape = iota
	// ArrayShape is an array literal.
	ArrayShape
	// LiteralShape is a string, number, boolean or null literal.
	LiteralShape
	// OtherShape is any other expression, kept as source text.
	OtherShape
)

func (s Shape) String() string {
	switch s {
	case ObjectShape:
		return "object"
	case ArrayShape:
		return "array"
	case LiteralShape:
		return "literal"
	case OtherShape:
		return "other"
	}

	return "unknown"
}

// Node is a sealed interface over the syntax fragments the editor models.
type Node interface {
	Shape() Shape
	node()
}

// Span is a half-open byte range into Module.Source.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}

// ItemLayout keeps the source text around one list item so it can be
// reprinted unchanged: Lead precedes the item, Mid sits between the item
// and its comma, Trailer is a comment on the same line after the comma.
type ItemLayout struct {
	Lead    string
	Mid     string
	Trailer string
	// Comma reports whether a comma followed the item in the source.
	Comma bool
}

// ListOrigin records where a parsed object or array came from.
type ListOrigin struct {
	Span
	// Items is parallel to the list as it was parsed.
	Items []ItemLayout
	// Tail is the text between the last item (or its trailer) and the
	// closing bracket.
	Tail string
	// TrailingComma reports whether the last item was followed by a comma.
	TrailingComma bool
}

// Object is an object literal.
type Object struct {
	Properties []*Property
	Origin     *ListOrigin
}

// Property is one key/value pair of an Object.
type Property struct {
	Key   string
	Value Node
	// Origin is nil for properties created by the editor.
	Origin *PropertyOrigin
}

// PropertyOrigin records the source of a parsed Property.
type PropertyOrigin struct {
	Span
	// Layout is the property's slot in its parent list.
	Layout ItemLayout
	// ValueSpan is where the parsed value sat inside Span.
	ValueSpan Span
	// Value is the parsed value node; a different Property.Value means the
	// value was replaced.
	Value Node
	// KeyText is the key as written, quotes included.
	KeyText string
	// Inline reports a property written without a colon (shorthand or
	// method). Its key and value cannot be split when the value changes.
	Inline bool
	// BadKey reports a key that is neither a string literal nor an
	// identifier: numeric, computed or a spread element.
	BadKey bool
}

// Array is an array literal.
type Array struct {
	Elements []Node
	Origin   *ListOrigin
}

// Literal is a scalar literal.
type Literal struct {
	Value  Scalar
	Origin *LiteralOrigin
}

// LiteralOrigin records the source of a parsed literal.
type LiteralOrigin struct {
	Span
	Raw   string
	Value Scalar
}

// Other is syntax the editor does not model. It is only ever produced by
// parsing and prints back as its original text.
type Other struct {
	Text   string
	Origin *Span
}

func (*Object) Shape() Shape  { return ObjectShape }
func (*Array) Shape() Shape   { return ArrayShape }
func (*Literal) Shape() Shape { return LiteralShape }
func (*Other) Shape() Shape   { return OtherShape }

func (*Object) node()  {}
func (*Array) node()   {}
func (*Literal) node() {}
func (*Other) node()   {}

// Lookup returns the first property named key.
func (o *Object) Lookup(key string) (*Property, bool) {
	for _, p := range o.Properties {
		if p.Key == key {
			return p, true
		}
	}

	return nil, false
}

// Hole reports whether an Other stands for an elided array element.
func (o *Other) Hole() bool {
	return o.Text == ""
}
