// Package pkg exposes the export-object editor to other Go programs.
//
// Update parses a JavaScript module, hands the value assigned to
// module.exports to a Mutator and reprints the source. Only the parts of the
// object that changed are rewritten; comments, quoting and layout elsewhere
// are kept as written.
package pkg

import (
	"context"

	"modedit.dev/pkg/modedit/internal/adapter"
	"modedit.dev/pkg/modedit/internal/domain"
	"modedit.dev/pkg/modedit/internal/model"
)

// Value types of the extracted export object.
type (
	Value    = model.Value
	Mapping  = model.Mapping
	Sequence = model.Sequence
	String   = model.String
	Number   = model.Number
	Bool     = model.Bool
	Null     = model.Null
	Opaque   = model.Opaque
)

// Mutator edits the export value in place (returning nil) or returns a
// replacement.
type Mutator = domain.Mutator

// PrintOptions control how new syntax is rendered.
type PrintOptions = adapter.PrintOptions

// Errors reported by Update.
type (
	SyntaxError           = model.SyntaxError
	ExportShapeError      = model.ExportShapeError
	KeyTypeError          = model.KeyTypeError
	UnsupportedValueError = model.UnsupportedValueError
	TypeMismatchError     = model.TypeMismatchError
)

// NewMapping returns an empty ordered object.
func NewMapping() *Mapping {
	return model.NewMapping()
}

// NewSequence returns an array holding items.
func NewSequence(items ...Value) *Sequence {
	return model.NewSequence(items...)
}

// FromNative converts maps, slices and scalars into a Value.
func FromNative(x any) (Value, error) {
	return model.FromNative(x)
}

// ToNative converts a Value into maps, slices and scalars.
func ToNative(v Value) any {
	return model.ToNative(v)
}

// DefaultPrintOptions follows the quoting and indentation of the source being
// edited.
func DefaultPrintOptions() PrintOptions {
	opts := adapter.DefaultPrintOptions()
	opts.DetectQuote = true
	opts.DetectIndent = true

	return opts
}

// Update rewrites the export object of source with mutate, using
// DefaultPrintOptions.
func Update(source string, mutate Mutator) (string, error) {
	out, err := UpdateContext(context.Background(), []byte(source), mutate, DefaultPrintOptions())
	if err != nil {
		return "", err
	}

	return string(out), nil
}

// UpdateContext is Update with a context and explicit print options.
func UpdateContext(ctx context.Context, source []byte, mutate Mutator, opts PrintOptions) ([]byte, error) {
	updater := domain.NewUpdater(adapter.NewTreeSitterJSParserAdapter(), adapter.NewLocalPrinterAdapter(opts))
	return updater.Update(ctx, source, mutate)
}

// Extract returns the export object of source as a Value.
func Extract(source string) (Value, error) {
	updater := domain.NewUpdater(adapter.NewTreeSitterJSParserAdapter(), adapter.NewLocalPrinterAdapter(DefaultPrintOptions()))

	doc, err := updater.Load(context.Background(), []byte(source))
	if err != nil {
		return nil, err
	}

	return domain.Extract(doc.Export)
}
