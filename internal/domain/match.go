package domain

import (
	m "modedit.dev/pkg/modedit/internal/model"
)

// Matches reports whether node and value have the same shape class, which
// decides between patching in place and replacing.
func Matches(node m.Node, value m.Value) bool {
	if value == nil {
		value = m.Null{}
	}

	switch node.Shape() {
	case m.ObjectShape:
		return value.Kind() == m.KindMapping
	case m.ArrayShape:
		return value.Kind() == m.KindSequence
	case m.LiteralShape:
		return value.Kind() == m.KindScalar
	case m.OtherShape:
		return value.Kind() == m.KindOpaque
	}

	return false
}
