package domain

import (
	m "modedit.dev/pkg/modedit/internal/model"
)

// Extract converts a syntax subtree into a Value. Every node yields a value;
// the only failure is an object key that is not a string.
func Extract(node m.Node) (m.Value, error) {
	switch n := node.(type) {
	case *m.Object:
		return extractObject(n)
	case *m.Array:
		seq := m.NewSequence()

		for _, elem := range n.Elements {
			v, err := Extract(elem)
			if err != nil {
				return nil, err
			}

			seq.Append(v)
		}

		return seq, nil
	case *m.Literal:
		return n.Value, nil
	}

	return m.Opaque{}, nil
}

// extractObject keeps the first occurrence of a duplicated key.
func extractObject(obj *m.Object) (*m.Mapping, error) {
	mapping := m.NewMapping()

	for _, prop := range obj.Properties {
		if prop.Origin != nil && prop.Origin.BadKey {
			return nil, &m.KeyTypeError{Key: prop.Origin.KeyText}
		}

		v, err := Extract(prop.Value)
		if err != nil {
			return nil, err
		}

		if mapping.Has(prop.Key) {
			continue
		}

		mapping.Set(prop.Key, v)
	}

	return mapping, nil
}
