package model

import "fmt"

// SyntaxError reports source text that does not parse.
type SyntaxError struct {
	Line   int
	Column int
	Msg    string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("syntax error at %d:%d: %s", e.Line, e.Column, e.Msg)
}

// ExportShapeError reports a missing export assignment, or one whose value
// is not an object literal.
type ExportShapeError struct{}

func (e *ExportShapeError) Error() string {
	return ExportTarget + " is not of type 'object'"
}

// KeyTypeError reports an object key that is neither a string literal nor
// an identifier.
type KeyTypeError struct {
	// Key is the key as written.
	Key string
}

func (e *KeyTypeError) Error() string {
	return fmt.Sprintf("key for object must be a string, got %s", e.Key)
}

// UnsupportedValueError reports a value that has no literal syntax.
type UnsupportedValueError struct {
	Type string
}

func (e *UnsupportedValueError) Error() string {
	return fmt.Sprintf("value type '%s' not supported", e.Type)
}

// TypeMismatchError reports a value whose shape cannot be patched onto a node.
type TypeMismatchError struct {
	ValueType string
	NodeShape Shape
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("types do not match %s to %s", e.ValueType, e.NodeShape)
}

// PathError reports a key path that is malformed or does not resolve.
type PathError struct {
	Path   string
	Reason string
}

func (e *PathError) Error() string {
	return fmt.Sprintf("path %q: %s", e.Path, e.Reason)
}
