package domain

import (
	"math"

	m "modedit.dev/pkg/modedit/internal/model"
)

// Inject builds a fresh syntax subtree for value. Opaque values and
// non-finite numbers have no literal syntax and are rejected.
func Inject(value m.Value) (m.Node, error) {
	switch v := value.(type) {
	case nil:
		return &m.Literal{Value: m.Null{}}, nil
	case *m.Sequence:
		arr := &m.Array{Elements: make([]m.Node, 0, v.Len())}

		for _, elem := range v.All() {
			node, err := Inject(elem)
			if err != nil {
				return nil, err
			}

			arr.Elements = append(arr.Elements, node)
		}

		return arr, nil
	case m.Scalar:
		if err := checkScalar(v); err != nil {
			return nil, err
		}

		return &m.Literal{Value: v}, nil
	case *m.Mapping:
		obj := &m.Object{Properties: make([]*m.Property, 0, v.Len())}

		for key, elem := range v.All() {
			prop, err := injectProperty(key, elem)
			if err != nil {
				return nil, err
			}

			obj.Properties = append(obj.Properties, prop)
		}

		return obj, nil
	}

	return nil, &m.UnsupportedValueError{Type: value.TypeName()}
}

func injectProperty(key string, value m.Value) (*m.Property, error) {
	node, err := Inject(value)
	if err != nil {
		return nil, err
	}

	return &m.Property{Key: key, Value: node}, nil
}

// checkScalar rejects numbers that print as identifiers instead of literals.
func checkScalar(v m.Scalar) error {
	n, ok := v.(m.Number)
	if !ok {
		return nil
	}

	switch f := float64(n); {
	case math.IsNaN(f):
		return &m.UnsupportedValueError{Type: "NaN"}
	case math.IsInf(f, 1):
		return &m.UnsupportedValueError{Type: "Infinity"}
	case math.IsInf(f, -1):
		return &m.UnsupportedValueError{Type: "-Infinity"}
	}

	return nil
}
