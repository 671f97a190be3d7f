// Package domain contains the export-object editing logic: extraction,
// patching and the workflows built on them.
package domain

import (
	"context"
	"fmt"
	"log/slog"

	"modedit.dev/pkg/modedit/internal/adapter"
	m "modedit.dev/pkg/modedit/internal/model"
)

// Mutator edits the extracted export value. It may change the value in
// place and return nil, or return a replacement value.
type Mutator func(value m.Value) (m.Value, error)

// Document is a parsed module together with its export object.
type Document struct {
	Module *m.Module
	Export *m.Object
}

// Updater rewrites the export object of a module source.
type Updater interface {
	// Load parses source and locates its export object.
	Load(ctx context.Context, source []byte) (*Document, error)
	// Update runs mutate over the export value and returns the rewritten source.
	Update(ctx context.Context, source []byte, mutate Mutator) ([]byte, error)
}

type updater struct {
	parser  adapter.JSParserAdapter
	printer adapter.PrinterAdapter
}

// NewUpdater creates an Updater backed by the given parser and printer.
func NewUpdater(parser adapter.JSParserAdapter, printer adapter.PrinterAdapter) Updater {
	return &updater{
		parser:  parser,
		printer: printer,
	}
}

func (u *updater) Load(ctx context.Context, source []byte) (*Document, error) {
	if u.parser == nil || u.printer == nil {
		return nil, fmt.Errorf("missing adapters")
	}

	mod, err := u.parser.Parse(ctx, source)
	if err != nil {
		return nil, err
	}

	export, err := Locate(mod)
	if err != nil {
		return nil, err
	}

	return &Document{Module: mod, Export: export}, nil
}

func (u *updater) Update(ctx context.Context, source []byte, mutate Mutator) ([]byte, error) {
	doc, err := u.Load(ctx, source)
	if err != nil {
		return nil, err
	}

	original, err := Extract(doc.Export)
	if err != nil {
		return nil, err
	}

	target := original

	if mutate != nil {
		replacement, err := mutate(original)
		if err != nil {
			return nil, err
		}

		if replacement != nil {
			target = replacement
		}
	}

	if err := Patch(doc.Export, target); err != nil {
		slog.Debug("patch failed", "error", err)
		return nil, err
	}

	return u.printer.Print(doc.Module)
}
