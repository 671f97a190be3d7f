package domain

import (
	"log/slog"
	"slices"

	m "modedit.dev/pkg/modedit/internal/model"
)

// Patch mutates node in place so that it represents value, keeping every
// part of the tree whose shape still matches. Inner shape changes are
// resolved by replacing the affected child; only a mismatch at node itself
// is an error.
func Patch(node m.Node, value m.Value) error {
	if value == nil {
		value = m.Null{}
	}

	switch n := node.(type) {
	case *m.Object:
		if mapping, ok := value.(*m.Mapping); ok {
			return patchObject(n, mapping)
		}
	case *m.Array:
		if seq, ok := value.(*m.Sequence); ok {
			return patchArray(n, seq)
		}
	case *m.Literal:
		if scalar, ok := value.(m.Scalar); ok {
			if err := checkScalar(scalar); err != nil {
				return err
			}

			n.Value = scalar

			return nil
		}
	case *m.Other:
		if _, ok := value.(m.Opaque); ok {
			return nil
		}
	}

	return &m.TypeMismatchError{ValueType: value.TypeName(), NodeShape: node.Shape()}
}

// patchObject updates retained keys where they stand, appends new keys in
// mapping order and drops keys the mapping no longer has. With duplicate
// keys only the first occurrence is updated.
func patchObject(obj *m.Object, mapping *m.Mapping) error {
	if dups := duplicateKeys(obj); len(dups) > 0 {
		slog.Debug("duplicate object keys, patching the first occurrence", "keys", dups)
	}

	for key, value := range mapping.All() {
		prop, ok := obj.Lookup(key)
		if !ok {
			prop, err := injectProperty(key, value)
			if err != nil {
				return err
			}

			obj.Properties = append(obj.Properties, prop)

			continue
		}

		child, err := reconcile(prop.Value, value)
		if err != nil {
			return err
		}

		prop.Value = child
	}

	obj.Properties = slices.DeleteFunc(obj.Properties, func(p *m.Property) bool {
		return !mapping.Has(p.Key)
	})

	return nil
}

func duplicateKeys(obj *m.Object) []string {
	seen := make(map[string]bool, len(obj.Properties))

	var dups []string

	for _, prop := range obj.Properties {
		if seen[prop.Key] && !slices.Contains(dups, prop.Key) {
			dups = append(dups, prop.Key)
		}

		seen[prop.Key] = true
	}

	return dups
}

// patchArray reconciles elements index by index, then grows or truncates.
func patchArray(arr *m.Array, seq *m.Sequence) error {
	arr.Elements = arr.Elements[:min(len(arr.Elements), seq.Len())]

	for i, value := range seq.All() {
		if i >= len(arr.Elements) {
			node, err := Inject(value)
			if err != nil {
				return err
			}

			arr.Elements = append(arr.Elements, node)

			continue
		}

		child, err := reconcile(arr.Elements[i], value)
		if err != nil {
			return err
		}

		arr.Elements[i] = child
	}

	return nil
}

// reconcile patches node when the shapes match and otherwise returns a
// fresh node built from value.
func reconcile(node m.Node, value m.Value) (m.Node, error) {
	if Matches(node, value) {
		if err := Patch(node, value); err != nil {
			return nil, err
		}

		return node, nil
	}

	return Inject(value)
}
